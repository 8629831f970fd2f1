// This file writes the deliverable runs seeded with a new engagement.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

// insertSeedRuns inserts each seed run inside tx, assigning IDs, the parent
// engagement ID, and updated_at. The seed slice is updated in place so the
// caller sees the persisted values.
func (b *Backend) insertSeedRuns(ctx context.Context, tx *sql.Tx, engagementID string, seed []types.DeliverableRun, now string) error {
	stmt, err := tx.PrepareContext(ctx, b.q(
		"INSERT INTO deliverable_runs ("+deliverableRunColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)"))
	if err != nil {
		return fmt.Errorf("preparing seed insert: %w", err)
	}
	defer stmt.Close()

	for i := range seed {
		run := &seed[i]
		if run.ID == "" {
			id, err := newUUID()
			if err != nil {
				return err
			}
			run.ID = id
		}
		run.EngagementID = engagementID
		run.UpdatedAt = now

		_, err := stmt.ExecContext(ctx,
			run.ID, run.EngagementID, run.Key, run.Title,
			run.Status, run.Notes, run.ArtifactPath, run.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("seeding deliverable %s: %w", run.Key, err)
		}
	}
	return nil
}

// This file implements deliverable run persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

const deliverableRunColumns = `id, engagement_id, "key", title, status, notes, artifact_path, updated_at`

func hydrateDeliverableRun(row rowScanner) (*types.DeliverableRun, error) {
	var r types.DeliverableRun
	err := row.Scan(&r.ID, &r.EngagementID, &r.Key, &r.Title,
		&r.Status, &r.Notes, &r.ArtifactPath, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListDeliverableRuns returns the runs of one engagement ordered by title
// ascending. Never returns a nil slice on success.
func (b *Backend) ListDeliverableRuns(ctx context.Context, engagementID string) ([]types.DeliverableRun, error) {
	if engagementID == "" {
		return nil, types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	rows, err := b.db.QueryContext(ctx, b.q(
		"SELECT "+deliverableRunColumns+" FROM deliverable_runs WHERE engagement_id = ? ORDER BY title ASC, id ASC"),
		engagementID)
	if err != nil {
		return nil, fmt.Errorf("list deliverable runs: %w", err)
	}
	defer rows.Close()

	runs := []types.DeliverableRun{}
	for rows.Next() {
		r, err := hydrateDeliverableRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning deliverable run: %w", err)
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deliverable runs: %w", err)
	}
	return runs, nil
}

// CountDeliverableRuns returns the number of runs stored per engagement ID.
// Engagements without runs are absent from the map.
func (b *Backend) CountDeliverableRuns(ctx context.Context) (map[string]int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	rows, err := b.db.QueryContext(ctx,
		"SELECT engagement_id, COUNT(*) FROM deliverable_runs GROUP BY engagement_id")
	if err != nil {
		return nil, fmt.Errorf("count deliverable runs: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scanning run count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// GetDeliverableRun retrieves a run by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (b *Backend) GetDeliverableRun(ctx context.Context, id string) (*types.DeliverableRun, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	row := b.db.QueryRowContext(ctx,
		b.q("SELECT "+deliverableRunColumns+" FROM deliverable_runs WHERE id = ?"), id)
	r, err := hydrateDeliverableRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting deliverable run %s: %w", id, err)
	}
	return r, nil
}

// UpdateDeliverableRun applies the present fields of patch, refreshes
// updated_at, and returns the updated row. The patch is validated again
// here so no caller can write an unknown status.
func (b *Backend) UpdateDeliverableRun(ctx context.Context, id string, patch types.DeliverableRunPatch) (*types.DeliverableRun, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var sets []string
	var args []any
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *patch.Notes)
	}
	if patch.ArtifactPath != nil {
		sets = append(sets, "artifact_path = ?")
		args = append(args, *patch.ArtifactPath)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, b.timestamp(), id)

	query := "UPDATE deliverable_runs SET " + strings.Join(sets, ", ") +
		" WHERE id = ? RETURNING " + deliverableRunColumns
	r, err := hydrateDeliverableRun(b.db.QueryRowContext(ctx, b.q(query), args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("updating deliverable run %s: %w", id, err)
	}
	return r, nil
}

// DeleteDeliverableRun removes a single run. The parent engagement is not
// touched, and deleting a missing ID is not an error.
func (b *Backend) DeleteDeliverableRun(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.ErrDetached
	}

	if _, err := b.db.ExecContext(ctx, b.q("DELETE FROM deliverable_runs WHERE id = ?"), id); err != nil {
		return fmt.Errorf("deleting deliverable run %s: %w", id, err)
	}
	return nil
}

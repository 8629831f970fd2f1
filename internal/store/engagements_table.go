// This file implements engagement persistence, including the seeded
// creation that writes an engagement and its deliverable runs together.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

const engagementColumns = "id, company_name, contact_email, status, created_at"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func hydrateEngagement(row rowScanner) (*types.Engagement, error) {
	var e types.Engagement
	if err := row.Scan(&e.ID, &e.CompanyName, &e.ContactEmail, &e.Status, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEngagements returns all engagements ordered by creation time,
// newest first. Never returns a nil slice on success.
func (b *Backend) ListEngagements(ctx context.Context) ([]types.Engagement, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	rows, err := b.db.QueryContext(ctx,
		"SELECT "+engagementColumns+" FROM engagements ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list engagements: %w", err)
	}
	defer rows.Close()

	engagements := []types.Engagement{}
	for rows.Next() {
		e, err := hydrateEngagement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning engagement: %w", err)
		}
		engagements = append(engagements, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list engagements: %w", err)
	}
	return engagements, nil
}

// CreateEngagement inserts e and its seed runs in one transaction. Missing
// IDs are generated (UUID v7) and timestamps are set to now. On any failure
// the transaction is rolled back, so no engagement survives without its
// runs.
func (b *Backend) CreateEngagement(ctx context.Context, e *types.Engagement, seed []types.DeliverableRun) error {
	if e == nil {
		return types.ErrInvalidData
	}
	if e.CompanyName == "" || e.ContactEmail == "" {
		return types.ErrRequiredField
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.ErrDetached
	}

	if e.ID == "" {
		id, err := newUUID()
		if err != nil {
			return err
		}
		e.ID = id
	}
	if e.Status == "" {
		e.Status = types.EngagementStatusActive
	}
	now := b.timestamp()
	e.CreatedAt = now

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		b.q("INSERT INTO engagements ("+engagementColumns+") VALUES (?, ?, ?, ?, ?)"),
		e.ID, e.CompanyName, e.ContactEmail, e.Status, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting engagement: %w", err)
	}

	if err := b.insertSeedRuns(ctx, tx, e.ID, seed, now); err != nil {
		return fmt.Errorf("seeding deliverables: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing engagement: %w", err)
	}
	return nil
}

// GetEngagement retrieves an engagement by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (b *Backend) GetEngagement(ctx context.Context, id string) (*types.Engagement, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	row := b.db.QueryRowContext(ctx,
		b.q("SELECT "+engagementColumns+" FROM engagements WHERE id = ?"), id)
	e, err := hydrateEngagement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting engagement %s: %w", id, err)
	}
	return e, nil
}

// UpdateEngagement applies the present fields of patch and returns the
// updated row. Returns ErrEmptyPatch for an empty patch and ErrNotFound if
// no row has the ID.
func (b *Backend) UpdateEngagement(ctx context.Context, id string, patch types.EngagementPatch) (*types.Engagement, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if patch.Empty() {
		return nil, types.ErrEmptyPatch
	}

	var sets []string
	var args []any
	if patch.CompanyName != nil {
		sets = append(sets, "company_name = ?")
		args = append(args, *patch.CompanyName)
	}
	if patch.ContactEmail != nil {
		sets = append(sets, "contact_email = ?")
		args = append(args, *patch.ContactEmail)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	args = append(args, id)

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	query := "UPDATE engagements SET " + strings.Join(sets, ", ") +
		" WHERE id = ? RETURNING " + engagementColumns
	e, err := hydrateEngagement(b.db.QueryRowContext(ctx, b.q(query), args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("updating engagement %s: %w", id, err)
	}
	return e, nil
}

// DeleteEngagement removes the engagement row. Deliverable runs that
// reference it are left in place, and deleting a missing ID is not an error.
func (b *Backend) DeleteEngagement(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.ErrDetached
	}

	if _, err := b.db.ExecContext(ctx, b.q("DELETE FROM engagements WHERE id = ?"), id); err != nil {
		return fmt.Errorf("deleting engagement %s: %w", id, err)
	}
	return nil
}

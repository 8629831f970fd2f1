package store

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

// InsertLead persists a lead. Empty optional fields are stored as NULL.
func (b *Backend) InsertLead(ctx context.Context, lead *types.Lead) error {
	if lead == nil {
		return types.ErrInvalidData
	}
	if err := lead.Validate(); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.ErrDetached
	}

	if lead.ID == "" {
		id, err := newUUID()
		if err != nil {
			return err
		}
		lead.ID = id
	}
	if lead.CreatedAt == "" {
		lead.CreatedAt = b.timestamp()
	}

	_, err := b.db.ExecContext(ctx, b.q(
		"INSERT INTO reliability_leads (id, name, email, team_size, use_case, source, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"),
		lead.ID, lead.Name, lead.Email,
		nullIfEmpty(lead.TeamSize), nullIfEmpty(lead.UseCase),
		lead.Source, lead.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting lead: %w", err)
	}
	return nil
}

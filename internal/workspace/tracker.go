package workspace

import (
	"context"
	"strings"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

// Tracker manages individual deliverable runs.
type Tracker struct {
	store types.Store
}

// NewTracker returns a Tracker backed by store.
func NewTracker(store types.Store) *Tracker {
	return &Tracker{store: store}
}

// Get returns a run. Returns ErrNotFound if it does not exist.
func (t *Tracker) Get(ctx context.Context, id string) (*types.DeliverableRun, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if t.store == nil {
		return nil, types.ErrNotConfigured
	}
	return t.store.GetDeliverableRun(ctx, id)
}

// Update applies a partial update. An unknown status or an empty patch is
// rejected before any write.
func (t *Tracker) Update(ctx context.Context, id string, patch types.DeliverableRunPatch) (*types.DeliverableRun, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if t.store == nil {
		return nil, types.ErrNotConfigured
	}
	return t.store.UpdateDeliverableRun(ctx, id, patch)
}

// Delete removes a run without touching its engagement.
func (t *Tracker) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.ErrInvalidID
	}
	if t.store == nil {
		return types.ErrNotConfigured
	}
	return t.store.DeleteDeliverableRun(ctx, id)
}

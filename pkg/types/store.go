package types

import (
	"context"
	"errors"
)

// Store defines the data store adapter used by the workspace services.
// Implementations own connection management; callers pass a context on
// every operation.
type Store interface {
	// InsertLead persists a lead. ID and CreatedAt are assigned by the store
	// when empty.
	InsertLead(ctx context.Context, lead *Lead) error

	// ListEngagements returns all engagements, newest first.
	ListEngagements(ctx context.Context) ([]Engagement, error)

	// CreateEngagement inserts the engagement and its seed runs in a single
	// transaction. Either every row is written or none is.
	CreateEngagement(ctx context.Context, e *Engagement, seed []DeliverableRun) error

	// GetEngagement returns ErrNotFound if no engagement has the ID.
	GetEngagement(ctx context.Context, id string) (*Engagement, error)

	// UpdateEngagement applies a non-empty patch and returns the updated row.
	// Returns ErrNotFound if no engagement has the ID.
	UpdateEngagement(ctx context.Context, id string, patch EngagementPatch) (*Engagement, error)

	// DeleteEngagement removes the engagement row only; its runs are kept.
	DeleteEngagement(ctx context.Context, id string) error

	// ListDeliverableRuns returns the runs of an engagement ordered by title.
	ListDeliverableRuns(ctx context.Context, engagementID string) ([]DeliverableRun, error)

	// CountDeliverableRuns returns the number of runs per engagement ID.
	CountDeliverableRuns(ctx context.Context) (map[string]int, error)

	// GetDeliverableRun returns ErrNotFound if no run has the ID.
	GetDeliverableRun(ctx context.Context, id string) (*DeliverableRun, error)

	// UpdateDeliverableRun applies a non-empty patch, refreshes updated_at,
	// and returns the updated row. Returns ErrNotFound if no run has the ID.
	UpdateDeliverableRun(ctx context.Context, id string, patch DeliverableRunPatch) (*DeliverableRun, error)

	// DeleteDeliverableRun removes a single run.
	DeleteDeliverableRun(ctx context.Context, id string) error
}

// Store lifecycle errors.
var (
	ErrDetached        = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrNotConfigured   = errors.New("store is not configured")
)

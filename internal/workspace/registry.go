package workspace

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

// EngagementDetail is an engagement with its deliverable runs ordered by
// title.
type EngagementDetail struct {
	Engagement      *types.Engagement      `json:"engagement"`
	DeliverableRuns []types.DeliverableRun `json:"deliverableRuns"`
}

// AuditFinding reports an engagement with fewer runs than
// ExpectedRunCount.
type AuditFinding struct {
	Engagement types.Engagement `json:"engagement"`
	Expected   int              `json:"expected"`
	Found      int              `json:"found"`
}

// String renders the finding the way the workspace view flags it.
func (f AuditFinding) String() string {
	return fmt.Sprintf("%s (%s): expected %d, found %d",
		f.Engagement.CompanyName, f.Engagement.ID, f.Expected, f.Found)
}

// Registry manages engagements.
type Registry struct {
	store types.Store
}

// NewRegistry returns a Registry backed by store.
func NewRegistry(store types.Store) *Registry {
	return &Registry{store: store}
}

// List returns all engagements, newest first.
func (r *Registry) List(ctx context.Context) ([]types.Engagement, error) {
	if r.store == nil {
		return nil, types.ErrNotConfigured
	}
	return r.store.ListEngagements(ctx)
}

// Create validates the input and stores a new active engagement together
// with its eight seeded deliverable runs. Both fields are trimmed and
// required.
func (r *Registry) Create(ctx context.Context, companyName, contactEmail string) (*types.Engagement, error) {
	companyName = strings.TrimSpace(companyName)
	contactEmail = strings.TrimSpace(contactEmail)
	if companyName == "" || contactEmail == "" {
		return nil, types.ErrRequiredField
	}
	if r.store == nil {
		return nil, types.ErrNotConfigured
	}

	e := &types.Engagement{
		CompanyName:  companyName,
		ContactEmail: contactEmail,
		Status:       types.EngagementStatusActive,
	}
	if err := r.store.CreateEngagement(ctx, e, SeedRuns()); err != nil {
		return nil, err
	}
	return e, nil
}

// Get returns an engagement and its runs. Returns ErrNotFound if the
// engagement does not exist.
func (r *Registry) Get(ctx context.Context, id string) (*EngagementDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, types.ErrInvalidID
	}
	if r.store == nil {
		return nil, types.ErrNotConfigured
	}

	e, err := r.store.GetEngagement(ctx, id)
	if err != nil {
		return nil, err
	}
	runs, err := r.store.ListDeliverableRuns(ctx, id)
	if err != nil {
		return nil, err
	}
	return &EngagementDetail{Engagement: e, DeliverableRuns: runs}, nil
}

// Update applies a partial update. Present fields are trimmed; an empty
// patch or a blank field is rejected before any write.
func (r *Registry) Update(ctx context.Context, id string, patch types.EngagementPatch) (*types.Engagement, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, types.ErrInvalidID
	}
	patch.Normalize()
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if r.store == nil {
		return nil, types.ErrNotConfigured
	}
	return r.store.UpdateEngagement(ctx, id, patch)
}

// Delete removes the engagement row; its runs are left in place.
func (r *Registry) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.ErrInvalidID
	}
	if r.store == nil {
		return types.ErrNotConfigured
	}
	return r.store.DeleteEngagement(ctx, id)
}

// Audit lists engagements with fewer than ExpectedRunCount runs, oldest
// first. It reports only; nothing is repaired.
func (r *Registry) Audit(ctx context.Context) ([]AuditFinding, error) {
	if r.store == nil {
		return nil, types.ErrNotConfigured
	}
	engagements, err := r.store.ListEngagements(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := r.store.CountDeliverableRuns(ctx)
	if err != nil {
		return nil, err
	}

	findings := []AuditFinding{}
	for _, e := range engagements {
		if n := counts[e.ID]; n < ExpectedRunCount {
			findings = append(findings, AuditFinding{Engagement: e, Expected: ExpectedRunCount, Found: n})
		}
	}
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Engagement.CreatedAt < findings[j].Engagement.CreatedAt
	})
	return findings, nil
}

// Export loads an engagement and renders its summary document.
func (r *Registry) Export(ctx context.Context, id string) (*Summary, error) {
	detail, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Filename: SummaryFilename(detail.Engagement.ID),
		Content:  RenderSummary(*detail.Engagement, detail.DeliverableRuns),
	}, nil
}

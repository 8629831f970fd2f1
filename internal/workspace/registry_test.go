package workspace

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

func TestSeedRuns(t *testing.T) {
	runs := SeedRuns()
	require.Len(t, runs, 8)
	for i, r := range runs {
		assert.Equal(t, types.StandardDeliverables[i].Key, r.Key)
		assert.Equal(t, types.StandardDeliverables[i].Title, r.Title)
		assert.Equal(t, types.StatusTodo, r.Status)
		assert.Empty(t, r.Notes)
		assert.Empty(t, r.ArtifactPath)
		assert.Empty(t, r.ID)
	}
}

func TestRegistryCreateSeedsStandardDeliverables(t *testing.T) {
	reg := NewRegistry(setupStore(t))
	ctx := context.Background()

	e, err := reg.Create(ctx, "  Acme Inc ", " owner@acme.com\t")
	require.NoError(t, err)
	assert.Equal(t, "Acme Inc", e.CompanyName)
	assert.Equal(t, "owner@acme.com", e.ContactEmail)
	assert.Equal(t, types.EngagementStatusActive, e.Status)

	detail, err := reg.Get(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, detail.DeliverableRuns, 8)

	var gotKeys, wantKeys []string
	for _, r := range detail.DeliverableRuns {
		gotKeys = append(gotKeys, r.Key)
		assert.Equal(t, e.ID, r.EngagementID)
		assert.Equal(t, types.StatusTodo, r.Status)
		assert.Empty(t, r.Notes)
		assert.Empty(t, r.ArtifactPath)
	}
	for _, d := range types.StandardDeliverables {
		wantKeys = append(wantKeys, d.Key)
	}
	sort.Strings(gotKeys)
	sort.Strings(wantKeys)
	assert.Equal(t, wantKeys, gotKeys)

	assert.True(t, sort.SliceIsSorted(detail.DeliverableRuns, func(i, j int) bool {
		return detail.DeliverableRuns[i].Title < detail.DeliverableRuns[j].Title
	}), "runs ordered by title")
}

func TestRegistryCreateValidation(t *testing.T) {
	tests := []struct {
		name, company, email string
	}{
		{"missing company", "", "owner@acme.com"},
		{"blank company", "   ", "owner@acme.com"},
		{"missing email", "Acme Inc", ""},
		{"both blank", " ", "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingStore{Store: setupStore(t)}
			_, err := NewRegistry(rec).Create(context.Background(), tt.company, tt.email)
			assert.ErrorIs(t, err, types.ErrRequiredField)
			assert.True(t, types.IsValidation(err))
			assert.Equal(t, 0, rec.Writes())
		})
	}
}

func TestRegistryWithoutStore(t *testing.T) {
	reg := NewRegistry(nil)
	ctx := context.Background()

	_, err := reg.List(ctx)
	assert.ErrorIs(t, err, types.ErrNotConfigured)
	_, err = reg.Create(ctx, "Acme", "a@acme.com")
	assert.ErrorIs(t, err, types.ErrNotConfigured)
	_, err = reg.Create(ctx, "", "a@acme.com")
	assert.ErrorIs(t, err, types.ErrRequiredField, "validation runs first")
}

func TestRegistryUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("empty patch performs no write", func(t *testing.T) {
		rec := &recordingStore{Store: setupStore(t)}
		reg := NewRegistry(rec)
		e, err := reg.Create(ctx, "Acme Inc", "owner@acme.com")
		require.NoError(t, err)
		writes := rec.Writes()

		_, err = reg.Update(ctx, e.ID, types.EngagementPatch{})
		assert.ErrorIs(t, err, types.ErrEmptyPatch)
		assert.Equal(t, writes, rec.Writes())
	})

	t.Run("present fields are trimmed", func(t *testing.T) {
		reg := NewRegistry(setupStore(t))
		e, err := reg.Create(ctx, "Acme Inc", "owner@acme.com")
		require.NoError(t, err)

		got, err := reg.Update(ctx, e.ID, types.EngagementPatch{
			CompanyName: strPtr("  Acme Corp  "),
			Status:      strPtr(" completed "),
		})
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", got.CompanyName)
		assert.Equal(t, "completed", got.Status)
		assert.Equal(t, "owner@acme.com", got.ContactEmail)
	})

	t.Run("missing engagement is not found", func(t *testing.T) {
		reg := NewRegistry(setupStore(t))
		_, err := reg.Update(ctx, "missing", types.EngagementPatch{Status: strPtr("paused")})
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestRegistryDeleteThenGet(t *testing.T) {
	reg := NewRegistry(setupStore(t))
	ctx := context.Background()

	e, err := reg.Create(ctx, "Acme Inc", "owner@acme.com")
	require.NoError(t, err)
	require.NoError(t, reg.Delete(ctx, e.ID))

	_, err = reg.Get(ctx, e.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, reg.Delete(ctx, " "), types.ErrInvalidID)
}

func TestRegistryAudit(t *testing.T) {
	b := setupStore(t)
	reg := NewRegistry(b)
	tracker := NewTracker(b)
	ctx := context.Background()

	complete, err := reg.Create(ctx, "Complete Co", "a@complete.co")
	require.NoError(t, err)
	short, err := reg.Create(ctx, "Short Co", "a@short.co")
	require.NoError(t, err)

	detail, err := reg.Get(ctx, short.ID)
	require.NoError(t, err)
	require.NoError(t, tracker.Delete(ctx, detail.DeliverableRuns[0].ID))
	require.NoError(t, tracker.Delete(ctx, detail.DeliverableRuns[1].ID))

	bare := &types.Engagement{CompanyName: "Bare Co", ContactEmail: "a@bare.co"}
	require.NoError(t, b.CreateEngagement(ctx, bare, nil))

	extra := SeedRuns()
	extra = append(extra, types.DeliverableRun{Key: "retro", Title: "Retrospective", Status: types.StatusTodo})
	surplus := &types.Engagement{CompanyName: "Surplus Co", ContactEmail: "a@surplus.co"}
	require.NoError(t, b.CreateEngagement(ctx, surplus, extra))

	findings, err := reg.Audit(ctx)
	require.NoError(t, err)
	require.Len(t, findings, 2)

	byID := map[string]AuditFinding{}
	for _, f := range findings {
		byID[f.Engagement.ID] = f
	}
	assert.NotContains(t, byID, complete.ID)
	assert.NotContains(t, byID, surplus.ID, "more runs than expected is not short")
	assert.Equal(t, 6, byID[short.ID].Found)
	assert.Equal(t, 0, byID[bare.ID].Found)
	assert.Equal(t, 8, byID[bare.ID].Expected)
	assert.Contains(t, byID[short.ID].String(), "expected 8, found 6")
}

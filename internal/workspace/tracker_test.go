package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

func TestTrackerUpdate(t *testing.T) {
	tests := []struct {
		name    string
		patch   types.DeliverableRunPatch
		wantErr error
	}{
		{
			name:    "status outside the enumeration is rejected",
			patch:   types.DeliverableRunPatch{Status: strPtr("archived")},
			wantErr: types.ErrInvalidStatus,
		},
		{
			name:    "empty patch is rejected",
			patch:   types.DeliverableRunPatch{},
			wantErr: types.ErrEmptyPatch,
		},
		{
			name:  "done with notes",
			patch: types.DeliverableRunPatch{Status: strPtr(types.StatusDone), Notes: strPtr("shipped")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			rec := &recordingStore{Store: setupStore(t)}
			reg := NewRegistry(rec)
			tracker := NewTracker(rec)

			e, err := reg.Create(ctx, "Acme Inc", "owner@acme.com")
			require.NoError(t, err)
			detail, err := reg.Get(ctx, e.ID)
			require.NoError(t, err)
			before := detail.DeliverableRuns[0]
			writes := rec.Writes()

			got, err := tracker.Update(ctx, before.ID, tt.patch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, writes, rec.Writes(), "no write performed")
				stored, err := tracker.Get(ctx, before.ID)
				require.NoError(t, err)
				assert.Equal(t, before, *stored)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, types.StatusDone, got.Status)
			assert.Equal(t, "shipped", got.Notes)
		})
	}
}

func TestTrackerGetAndDelete(t *testing.T) {
	ctx := context.Background()
	b := setupStore(t)
	reg := NewRegistry(b)
	tracker := NewTracker(b)

	e, err := reg.Create(ctx, "Acme Inc", "owner@acme.com")
	require.NoError(t, err)
	detail, err := reg.Get(ctx, e.ID)
	require.NoError(t, err)
	id := detail.DeliverableRuns[3].ID

	got, err := tracker.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.EngagementID)

	require.NoError(t, tracker.Delete(ctx, id))
	_, err = tracker.Get(ctx, id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = reg.Get(ctx, e.ID)
	assert.NoError(t, err, "engagement survives run deletion")

	_, err = tracker.Get(ctx, "")
	assert.ErrorIs(t, err, types.ErrInvalidID)
	_, err = tracker.Update(ctx, "missing", types.DeliverableRunPatch{Notes: strPtr("x")})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

package workspace

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/conchdesk/internal/store"
	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

func strPtr(s string) *string { return &s }

// setupStore attaches a SQLite backend in a temp directory.
func setupStore(t *testing.T) *store.Backend {
	t.Helper()
	b := store.NewBackend()
	require.NoError(t, b.Attach(types.StoreConfig{
		Backend: types.BackendSQLite,
		URL:     filepath.Join(t.TempDir(), "conchdesk.db"),
	}))
	t.Cleanup(func() { b.Detach() })
	return b
}

// recordingStore wraps a Store and counts write calls. Methods it does not
// override go to the embedded store.
type recordingStore struct {
	types.Store

	mu     sync.Mutex
	writes int
	leads  []types.Lead

	insertLeadErr error
}

func (s *recordingStore) record() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
}

func (s *recordingStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *recordingStore) InsertLead(ctx context.Context, lead *types.Lead) error {
	s.record()
	if s.insertLeadErr != nil {
		return s.insertLeadErr
	}
	s.mu.Lock()
	s.leads = append(s.leads, *lead)
	s.mu.Unlock()
	if s.Store == nil {
		return nil
	}
	return s.Store.InsertLead(ctx, lead)
}

func (s *recordingStore) CreateEngagement(ctx context.Context, e *types.Engagement, seed []types.DeliverableRun) error {
	s.record()
	return s.Store.CreateEngagement(ctx, e, seed)
}

func (s *recordingStore) UpdateEngagement(ctx context.Context, id string, p types.EngagementPatch) (*types.Engagement, error) {
	s.record()
	return s.Store.UpdateEngagement(ctx, id, p)
}

func (s *recordingStore) UpdateDeliverableRun(ctx context.Context, id string, p types.DeliverableRunPatch) (*types.DeliverableRun, error) {
	s.record()
	return s.Store.UpdateDeliverableRun(ctx, id, p)
}

// notifierFunc adapts a function to Notifier.
type notifierFunc func(text string)

func (f notifierFunc) Notify(text string) { f(text) }

// Package store provides the public API for the conchdesk data store.
// It exposes the backend factory while keeping the implementation in
// internal/store.
package store

import (
	"context"

	"github.com/mesh-intelligence/conchdesk/internal/store"
	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

// Backend is a Store with connection lifecycle and JSONL snapshot support.
type Backend interface {
	types.Store

	// Attach connects to the store described by config and applies the
	// schema. Returns ErrAlreadyAttached if already attached.
	Attach(config types.StoreConfig) error
	// Detach closes the connection. Safe to call more than once.
	Detach() error
	// Dialect names the attached backend, or "" when detached.
	Dialect() string

	Dump(ctx context.Context, dir string) (map[string]int, error)
	Restore(ctx context.Context, dir string) (map[string]int, error)
}

// NewBackend creates a backend that serves both SQLite and Postgres. It is
// not attached; call Attach with a StoreConfig to connect.
//
// Example:
//
//	backend := store.NewBackend()
//	err := backend.Attach(types.StoreConfig{
//	    Backend: types.BackendSQLite,
//	    URL:     ".conchdesk-db/conchdesk.db",
//	})
//	defer backend.Detach()
func NewBackend() Backend {
	return store.NewBackend()
}

// Package store implements the relational data store adapter for conchdesk.
// One Backend serves both dialects: SQLite through modernc.org/sqlite for
// local use and tests, and hosted Postgres through the pgx database/sql
// driver.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

// Compile-time interface check: Backend must implement Store.
var _ types.Store = (*Backend)(nil)

// attachTimeout bounds the ping and schema steps of Attach.
const attachTimeout = 30 * time.Second

// Backend implements types.Store on top of database/sql.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.StoreConfig
	db       *sql.DB
	dialect  dialect

	// now is the clock used for created_at/updated_at; tests override it.
	now func() time.Time
}

// NewBackend creates a new backend instance.
// The backend is not attached; call Attach with a StoreConfig to connect.
func NewBackend() *Backend {
	return &Backend{now: time.Now}
}

// Attach validates the config, opens the connection, verifies it with a
// ping, and applies the schema. Schema statements are idempotent so Attach
// is safe against an existing database.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.StoreConfig) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	d, err := dialectFor(config.Backend)
	if err != nil {
		return err
	}

	db, err := d.open(config)
	if err != nil {
		return fmt.Errorf("open %s store: %w", config.Backend, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), attachTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping %s store: %w", config.Backend, err)
	}

	if err := applySchema(ctx, db); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.dialect = d
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the connection. After Detach, all operations return
// ErrDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	return nil
}

// Dialect returns the attached backend name, or "" when detached.
func (b *Backend) Dialect() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return ""
	}
	return b.config.Backend
}

// q rebinds a query written with ? placeholders for the attached dialect.
func (b *Backend) q(query string) string {
	return b.dialect.rebind(query)
}

// timestamp returns the current time in the stored layout.
func (b *Backend) timestamp() string {
	return types.FormatTime(b.now())
}

// newUUID generates a UUID v7 string for entity IDs.
func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	return id.String(), nil
}

// nullIfEmpty maps an empty string to SQL NULL.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

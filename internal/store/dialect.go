package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

// dialect captures the few differences between the supported stores.
type dialect struct {
	name        string
	dollarBinds bool
	open        func(cfg types.StoreConfig) (*sql.DB, error)
}

var (
	sqliteDialect = dialect{
		name: types.BackendSQLite,
		open: openSQLite,
	}
	postgresDialect = dialect{
		name:        types.BackendPostgres,
		dollarBinds: true,
		open:        openPostgres,
	}
)

func dialectFor(backend string) (dialect, error) {
	switch backend {
	case types.BackendSQLite:
		return sqliteDialect, nil
	case types.BackendPostgres:
		return postgresDialect, nil
	default:
		return dialect{}, types.ErrBackendUnknown
	}
}

// rebind rewrites ? placeholders as $1, $2, ... for Postgres. Queries in
// this package never carry a literal question mark.
func (d dialect) rebind(query string) string {
	if !d.dollarBinds {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteByte(query[i])
	}
	return sb.String()
}

// openSQLite opens a SQLite file, creating its directory if needed.
// A single connection serializes writers; SQLite allows one at a time.
func openSQLite(cfg types.StoreConfig) (*sql.DB, error) {
	if dir := filepath.Dir(cfg.URL); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", cfg.URL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// openPostgres opens a pgx-backed database/sql pool. The store key is the
// privileged credential and becomes the password when the DSN has none.
func openPostgres(cfg types.StoreConfig) (*sql.DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse store url: %w", err)
	}
	if connConfig.Password == "" {
		connConfig.Password = cfg.Key
	}
	return stdlib.OpenDB(*connConfig), nil
}

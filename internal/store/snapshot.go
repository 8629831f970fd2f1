// This file implements JSONL snapshots of the store: Dump writes every table
// to <table>.jsonl with atomic persistence, Restore loads them back. Snapshots
// move data between a local SQLite file and the hosted Postgres store.
package store

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

// snapshotTable maps a table to its JSONL file and column list. Every
// column is TEXT; NULL is written as JSON null. required lists the NOT NULL
// columns, and check enforces any remaining table constraint, so Restore can
// skip a row instead of failing the transaction on it.
type snapshotTable struct {
	file     string
	table    string
	columns  []string
	required []string
	check    func(row map[string]any) bool
}

var snapshotTables = []snapshotTable{
	{
		file:     "reliability_leads.jsonl",
		table:    types.LeadsTable,
		columns:  []string{"id", "name", "email", "team_size", "use_case", "source", "created_at"},
		required: []string{"id", "name", "email", "source", "created_at"},
	},
	{
		file:     "engagements.jsonl",
		table:    types.EngagementsTable,
		columns:  []string{"id", "company_name", "contact_email", "status", "created_at"},
		required: []string{"id", "company_name", "contact_email", "status", "created_at"},
	},
	{
		file:     "deliverable_runs.jsonl",
		table:    types.DeliverableRunsTable,
		columns:  []string{"id", "engagement_id", "key", "title", "status", "notes", "artifact_path", "updated_at"},
		required: []string{"id", "engagement_id", "key", "title", "status", "notes", "artifact_path", "updated_at"},
		check: func(row map[string]any) bool {
			status, _ := row["status"].(string)
			return types.ValidDeliverableStatus(status)
		},
	},
}

// fits reports whether row satisfies the table's constraints.
func (st snapshotTable) fits(row map[string]any) bool {
	for _, c := range st.required {
		if row[c] == nil {
			return false
		}
	}
	return st.check == nil || st.check(row)
}

func quoteColumns(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = `"` + c + `"`
	}
	return strings.Join(quoted, ", ")
}

// Dump writes every table to dir as JSONL, one object per row ordered by id,
// and reports the number of rows written per table.
func (b *Backend) Dump(ctx context.Context, dir string) (map[string]int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	counts := make(map[string]int)
	for _, st := range snapshotTables {
		records, err := b.dumpTable(ctx, st.table, st.columns)
		if err != nil {
			return nil, err
		}
		if err := writeJSONL(filepath.Join(dir, st.file), records); err != nil {
			return nil, fmt.Errorf("writing %s: %w", st.file, err)
		}
		counts[st.table] = len(records)
	}
	return counts, nil
}

func (b *Backend) dumpTable(ctx context.Context, table string, columns []string) ([]json.RawMessage, error) {
	rows, err := b.db.QueryContext(ctx,
		"SELECT "+quoteColumns(columns)+" FROM "+table+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("dumping %s: %w", table, err)
	}
	defer rows.Close()

	var records []json.RawMessage
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		obj := make(map[string]any, len(columns))
		for i, c := range columns {
			if values[i].Valid {
				obj[c] = values[i].String
			} else {
				obj[c] = nil
			}
		}
		rec, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("encoding %s row: %w", table, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Restore loads the JSONL files in dir into the store inside one
// transaction. Rows whose id already exists are skipped. Malformed lines and
// rows that violate a column constraint are ignored, and a missing file
// counts as an empty table.
func (b *Backend) Restore(ctx context.Context, dir string) (map[string]int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning restore transaction: %w", err)
	}
	defer tx.Rollback()

	counts := make(map[string]int)
	for _, st := range snapshotTables {
		path := filepath.Join(dir, st.file)
		records, err := readJSONL(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", st.file, err)
		}
		n, err := b.restoreTable(ctx, tx, st, records)
		if err != nil {
			return nil, fmt.Errorf("restoring %s: %w", st.table, err)
		}
		counts[st.table] = n
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing restore: %w", err)
	}
	return counts, nil
}

func (b *Backend) restoreTable(ctx context.Context, tx *sql.Tx, st snapshotTable, records []json.RawMessage) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	columns := st.columns
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.PrepareContext(ctx, b.q(
		"INSERT INTO "+st.table+" ("+quoteColumns(columns)+") VALUES ("+placeholders+") ON CONFLICT (id) DO NOTHING"))
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}
		for c, v := range obj {
			if v != nil {
				if _, ok := v.(string); !ok {
					obj[c] = fmt.Sprint(v)
				}
			}
		}
		if !st.fits(obj) {
			continue
		}
		args := make([]any, len(columns))
		for i, c := range columns {
			args[i] = obj[c]
		}
		res, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return inserted, err
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage. Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail(fmt.Errorf("writing record: %w", err))
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail(fmt.Errorf("writing newline: %w", err))
		}
	}
	if err := w.Flush(); err != nil {
		return fail(fmt.Errorf("flushing buffer: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

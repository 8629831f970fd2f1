package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema DDL for all tables. The statements are portable between SQLite and
// Postgres and safe to re-run. Timestamps are stored as fixed-width UTC text
// (types.TimeLayout).
const (
	createLeads = `CREATE TABLE IF NOT EXISTS reliability_leads (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    team_size TEXT,
    use_case TEXT,
    source TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createEngagements = `CREATE TABLE IF NOT EXISTS engagements (
    id TEXT PRIMARY KEY,
    company_name TEXT NOT NULL,
    contact_email TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'active',
    created_at TEXT NOT NULL
);`

	// engagement_id is deliberately not a foreign key: deleting an
	// engagement leaves its runs in place.
	createDeliverableRuns = `CREATE TABLE IF NOT EXISTS deliverable_runs (
    id TEXT PRIMARY KEY,
    engagement_id TEXT NOT NULL,
    "key" TEXT NOT NULL,
    title TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('todo', 'in_progress', 'done')),
    notes TEXT NOT NULL DEFAULT '',
    artifact_path TEXT NOT NULL DEFAULT '',
    updated_at TEXT NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxEngagementsCreated       = `CREATE INDEX IF NOT EXISTS idx_engagements_created ON engagements(created_at);`
	idxDeliverableRunsEngagment = `CREATE INDEX IF NOT EXISTS idx_deliverable_runs_engagement ON deliverable_runs(engagement_id);`
	idxLeadsCreated             = `CREATE INDEX IF NOT EXISTS idx_reliability_leads_created ON reliability_leads(created_at);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createLeads,
	createEngagements,
	createDeliverableRuns,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxEngagementsCreated,
	idxDeliverableRunsEngagment,
	idxLeadsCreated,
}

// applySchema creates missing tables and indexes.
func applySchema(ctx context.Context, db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}

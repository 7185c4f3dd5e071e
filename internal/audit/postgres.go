package audit

import (
	"context"
	"database/sql"
)

// Postgres records ingest runs into the import_runs table.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an already-connected *sql.DB.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const createTable = `
CREATE TABLE IF NOT EXISTS import_runs (
	id         SERIAL PRIMARY KEY,
	started_at TIMESTAMPTZ NOT NULL,
	source     TEXT NOT NULL,
	ingested   INTEGER NOT NULL,
	error      TEXT NOT NULL DEFAULT ''
)`

// EnsureSchema creates the import_runs table if it does not already exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, createTable)
	return err
}

func (p *Postgres) Record(ctx context.Context, run Run) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO import_runs (started_at, source, ingested, error) VALUES ($1, $2, $3, $4)`,
		run.StartedAt, run.Source, run.Ingested, run.Err)
	return err
}

package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/agora/internal/models"
)

const schemaQuery = `
	CREATE TABLE IF NOT EXISTS report_runs (
		run_id     BIGSERIAL PRIMARY KEY,
		kind       TEXT NOT NULL,
		plus_code  TEXT NOT NULL,
		file_name  TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS report_entries (
		run_id   BIGINT NOT NULL REFERENCES report_runs (run_id) ON DELETE CASCADE,
		position INT NOT NULL,
		name     TEXT NOT NULL,
		payload  JSONB NOT NULL,
		PRIMARY KEY (run_id, position)
	);
`

const insertRunQuery = `
	INSERT INTO report_runs (kind, plus_code, file_name, created_at)
	VALUES ($1, $2, $3, $4)
	RETURNING run_id;
`

const insertEntryQuery = `
	INSERT INTO report_entries (run_id, position, name, payload)
	VALUES ($1, $2, $3, $4);
`

// EnsureSchema creates the archive tables if they do not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaQuery); err != nil {
		return fmt.Errorf("failed to create archive schema: %w", err)
	}

	return nil
}

// SaveReport stores a report run and its entries in a single transaction.
// Entries keep their report order in the position column.
func (r *Repository) SaveReport(ctx context.Context, run models.ReportRun) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var runID int64
	err = tx.QueryRow(ctx, insertRunQuery, run.Kind, run.PlusCode, run.FileName, run.CreatedAt).Scan(&runID)
	if err != nil {
		r.rollback(ctx, tx.Rollback)
		return fmt.Errorf("failed to insert report run: %w", err)
	}

	for idx, entry := range run.Entries {
		if _, err = tx.Exec(ctx, insertEntryQuery, runID, idx, entry.Name, entry.Payload); err != nil {
			r.rollback(ctx, tx.Rollback)
			return fmt.Errorf("failed to insert report entry: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit report: %w", err)
	}

	r.log.DebugContext(ctx, "Report archived", "run", runID, "kind", run.Kind, "entries", len(run.Entries))

	return nil
}

func (r *Repository) rollback(ctx context.Context, rollback func(context.Context) error) {
	if err := rollback(ctx); err != nil {
		r.log.ErrorContext(ctx, "failed to rollback transaction", "error", err)
	}
}

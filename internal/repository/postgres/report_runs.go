package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const reportRunsSchema = `
CREATE TABLE IF NOT EXISTS report_runs (
	id          BIGSERIAL PRIMARY KEY,
	report_date DATE        NOT NULL,
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ,
	row_count   INTEGER     NOT NULL DEFAULT 0,
	artifacts   INTEGER     NOT NULL DEFAULT 0,
	status      TEXT        NOT NULL,
	error       TEXT
)`

// ReportRun is one execution of the daily report job.
type ReportRun struct {
	ID         int64          `db:"id" json:"id"`
	ReportDate string         `db:"report_date" json:"reportDate"`
	StartedAt  time.Time      `db:"started_at" json:"startedAt"`
	FinishedAt sql.NullTime   `db:"finished_at" json:"finishedAt"`
	RowCount   int            `db:"row_count" json:"rowCount"`
	Artifacts  int            `db:"artifacts" json:"artifacts"`
	Status     string         `db:"status" json:"status"`
	Error      sql.NullString `db:"error" json:"error"`
}

// ReportRunRepository persists a job audit trail for the daily report. It is
// optional infrastructure: when no DSN is configured the service runs
// without it.
type ReportRunRepository struct {
	db *DB
}

func NewReportRunRepository(db *DB) *ReportRunRepository {
	return &ReportRunRepository{db: db}
}

// EnsureSchema creates the report_runs table when absent.
func (r *ReportRunRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, reportRunsSchema); err != nil {
		return fmt.Errorf("create report_runs table: %w", err)
	}
	return nil
}

// retentionDays bounds how long finished runs are kept.
const retentionDays = 90

// Create inserts a running entry and returns its id. Runs older than the
// retention window are pruned in the same transaction.
func (r *ReportRunRepository) Create(ctx context.Context, reportDate string) (int64, error) {
	var id int64
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM report_runs
			 WHERE started_at < NOW() - make_interval(days => $1)`,
			retentionDays,
		); err != nil {
			return fmt.Errorf("prune report runs: %w", err)
		}
		return tx.QueryRowContext(ctx,
			`INSERT INTO report_runs (report_date, started_at, status)
			 VALUES ($1, NOW(), 'running') RETURNING id`,
			reportDate,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("insert report run: %w", err)
	}
	return id, nil
}

// Complete marks a run as finished with its row and artifact counts.
func (r *ReportRunRepository) Complete(ctx context.Context, id int64, rowCount, artifacts int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE report_runs
		 SET finished_at = NOW(), row_count = $2, artifacts = $3, status = 'completed'
		 WHERE id = $1`,
		id, rowCount, artifacts,
	)
	if err != nil {
		return fmt.Errorf("complete report run: %w", err)
	}
	return nil
}

// Fail marks a run as failed with the error message.
func (r *ReportRunRepository) Fail(ctx context.Context, id int64, runErr error) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE report_runs
		 SET finished_at = NOW(), status = 'failed', error = $2
		 WHERE id = $1`,
		id, runErr.Error(),
	)
	if err != nil {
		return fmt.Errorf("fail report run: %w", err)
	}
	return nil
}

// Recent returns the latest n runs, newest first.
func (r *ReportRunRepository) Recent(ctx context.Context, n int) ([]ReportRun, error) {
	runs := []ReportRun{}
	err := r.db.SelectContext(ctx, &runs,
		`SELECT id, report_date, started_at, finished_at, row_count, artifacts, status, error
		 FROM report_runs ORDER BY started_at DESC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("list report runs: %w", err)
	}
	return runs, nil
}

package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// Failure is one row of crawl failure bookkeeping. Attempts counts every
// time the url failed, across runs.
type Failure struct {
	Source        string
	Stream        string
	URL           string
	Attempts      int64
	LastError     string
	FirstFailedAt int64
	LastFailedAt  int64
}

const createRun = `
INSERT INTO runs (source, started_at)
VALUES (?, ?)
`

type CreateRunParams struct {
	Source    string
	StartedAt int64
}

func (q *Queries) CreateRun(ctx context.Context, arg CreateRunParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createRun, arg.Source, arg.StartedAt)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const finishRun = `
UPDATE runs
SET finished_at = ?, emitted = ?, skipped = ?, failed = ?
WHERE id = ?
`

type FinishRunParams struct {
	FinishedAt int64
	Emitted    int64
	Skipped    int64
	Failed     int64
	ID         int64
}

func (q *Queries) FinishRun(ctx context.Context, arg FinishRunParams) error {
	_, err := q.db.ExecContext(ctx, finishRun,
		arg.FinishedAt, arg.Emitted, arg.Skipped, arg.Failed, arg.ID)
	return err
}

const markCompleted = `
INSERT OR REPLACE INTO completed (source, stream, id, url, completed_at)
VALUES (?, ?, ?, ?, ?)
`

type MarkCompletedParams struct {
	Source      string
	Stream      string
	ID          string
	URL         string
	CompletedAt int64
}

func (q *Queries) MarkCompleted(ctx context.Context, arg MarkCompletedParams) error {
	_, err := q.db.ExecContext(ctx, markCompleted,
		arg.Source, arg.Stream, arg.ID, arg.URL, arg.CompletedAt)
	return err
}

const recordFailure = `
INSERT INTO failures (source, stream, url, attempts, last_error, first_failed_at, last_failed_at)
VALUES (?, ?, ?, 1, ?, ?, ?)
ON CONFLICT (source, stream, url) DO UPDATE SET
    attempts = attempts + 1,
    last_error = excluded.last_error,
    last_failed_at = excluded.last_failed_at
`

type RecordFailureParams struct {
	Source   string
	Stream   string
	URL      string
	Error    string
	FailedAt int64
}

func (q *Queries) RecordFailure(ctx context.Context, arg RecordFailureParams) error {
	_, err := q.db.ExecContext(ctx, recordFailure,
		arg.Source, arg.Stream, arg.URL, arg.Error, arg.FailedAt, arg.FailedAt)
	return err
}

const clearFailure = `
DELETE FROM failures
WHERE source = ? AND stream = ? AND url = ?
`

type ClearFailureParams struct {
	Source string
	Stream string
	URL    string
}

func (q *Queries) ClearFailure(ctx context.Context, arg ClearFailureParams) error {
	_, err := q.db.ExecContext(ctx, clearFailure, arg.Source, arg.Stream, arg.URL)
	return err
}

const listFailures = `
SELECT source, stream, url, attempts, last_error, first_failed_at, last_failed_at
FROM failures
WHERE source = ?
ORDER BY last_failed_at
`

func (q *Queries) ListFailures(ctx context.Context, source string) ([]Failure, error) {
	rows, err := q.db.QueryContext(ctx, listFailures, source)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Failure
	for rows.Next() {
		var i Failure
		if err := rows.Scan(
			&i.Source, &i.Stream, &i.URL,
			&i.Attempts, &i.LastError, &i.FirstFailedAt, &i.LastFailedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listRetryable = `
SELECT source, stream, url, attempts, last_error, first_failed_at, last_failed_at
FROM failures
WHERE source = ? AND attempts < ?
ORDER BY last_failed_at
`

type ListRetryableParams struct {
	Source      string
	MaxAttempts int64
}

func (q *Queries) ListRetryable(ctx context.Context, arg ListRetryableParams) ([]Failure, error) {
	rows, err := q.db.QueryContext(ctx, listRetryable, arg.Source, arg.MaxAttempts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Failure
	for rows.Next() {
		var i Failure
		if err := rows.Scan(
			&i.Source, &i.Stream, &i.URL,
			&i.Attempts, &i.LastError, &i.FirstFailedAt, &i.LastFailedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

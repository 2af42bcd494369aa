package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a recorded run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// cutoffLayout stores cutoff dates as plain calendar days.
const cutoffLayout = "2006-01-02"

// Run captures one pipeline invocation.
type Run struct {
	ID                string     `json:"id"`
	Status            Status     `json:"status"`
	InputPath         string     `json:"input_path"`
	OutputPath        string     `json:"output_path"`
	Cutoff            time.Time  `json:"cutoff"`
	RowsRead          int        `json:"rows_read"`
	UnparseableDates  int        `json:"unparseable_dates"`
	RowsAfterFilter   int        `json:"rows_after_filter"`
	DuplicatesDropped int        `json:"duplicates_dropped"`
	RowsWritten       int        `json:"rows_written"`
	ErrorMessage      string     `json:"error_message,omitempty"`
	StartedAt         time.Time  `json:"started_at"`
	FinishedAt        *time.Time `json:"finished_at,omitempty"`
}

// Duration returns the elapsed time of a finished run, or zero.
func (r *Run) Duration() time.Duration {
	if r == nil || r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Begin records a new run in the running state.
func (s *Store) Begin(ctx context.Context, run *Run) error {
	if run == nil || strings.TrimSpace(run.ID) == "" {
		return errors.New("run id is required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	run.Status = StatusRunning

	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO runs (
            id, status, input_path, output_path, cutoff, started_at
        ) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		string(run.Status),
		run.InputPath,
		run.OutputPath,
		run.Cutoff.Format(cutoffLayout),
		run.StartedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Finish stores the final counters and status for a run started with Begin.
func (s *Store) Finish(ctx context.Context, run *Run) error {
	if run == nil || strings.TrimSpace(run.ID) == "" {
		return errors.New("run id is required")
	}
	if run.FinishedAt == nil {
		now := time.Now().UTC()
		run.FinishedAt = &now
	}
	if run.Status == "" || run.Status == StatusRunning {
		run.Status = StatusSucceeded
		if run.ErrorMessage != "" {
			run.Status = StatusFailed
		}
	}

	res, err := s.execWithRetry(
		ctx,
		`UPDATE runs SET
            status = ?, rows_read = ?, unparseable_dates = ?, rows_after_filter = ?,
            duplicates_dropped = ?, rows_written = ?, error_message = ?, finished_at = ?
        WHERE id = ?`,
		string(run.Status),
		run.RowsRead,
		run.UnparseableDates,
		run.RowsAfterFilter,
		run.DuplicatesDropped,
		run.RowsWritten,
		nullableString(run.ErrorMessage),
		run.FinishedAt.UTC().Format(timeLayout),
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update run: no run with id %s", run.ID)
	}
	return nil
}

const selectRunColumns = `SELECT id, status, input_path, output_path, cutoff,
    rows_read, unparseable_dates, rows_after_filter, duplicates_dropped, rows_written,
    error_message, started_at, finished_at FROM runs`

// List returns up to limit runs, newest first. A limit <= 0 returns all runs.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	ctx = ensureContext(ctx)
	query := selectRunColumns + " ORDER BY started_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Get returns the run with the given id, or nil when it does not exist. A
// unique id prefix is accepted.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	ctx = ensureContext(ctx)
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("run id is required")
	}

	row := s.db.QueryRowContext(ctx, selectRunColumns+" WHERE id = ?", id)
	run, err := scanRun(row)
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// Literal, case-sensitive prefix match.
	rows, err := s.db.QueryContext(ctx,
		selectRunColumns+" WHERE substr(id, 1, length(?)) = ? LIMIT 2", id, id)
	if err != nil {
		return nil, fmt.Errorf("lookup run prefix: %w", err)
	}
	defer rows.Close()

	var matches []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}

// Prune deletes all but the newest keep runs and returns the number removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, errors.New("keep must be non-negative")
	}
	res, err := s.execWithRetry(
		ctx,
		`DELETE FROM runs WHERE id NOT IN (
            SELECT id FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?
        )`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run         Run
		status      string
		cutoffRaw   string
		errorMsg    sql.NullString
		startedRaw  string
		finishedRaw sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&status,
		&run.InputPath,
		&run.OutputPath,
		&cutoffRaw,
		&run.RowsRead,
		&run.UnparseableDates,
		&run.RowsAfterFilter,
		&run.DuplicatesDropped,
		&run.RowsWritten,
		&errorMsg,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}

	run.Status = Status(status)
	run.ErrorMessage = errorMsg.String
	if cutoff, err := time.Parse(cutoffLayout, cutoffRaw); err == nil {
		run.Cutoff = cutoff
	}
	started, err := time.Parse(timeLayout, startedRaw)
	if err != nil {
		return nil, fmt.Errorf("parse started_at %q: %w", startedRaw, err)
	}
	run.StartedAt = started
	if finishedRaw.Valid && finishedRaw.String != "" {
		finished, err := time.Parse(timeLayout, finishedRaw.String)
		if err != nil {
			return nil, fmt.Errorf("parse finished_at %q: %w", finishedRaw.String, err)
		}
		run.FinishedAt = &finished
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

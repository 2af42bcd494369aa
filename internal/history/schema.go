package history

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// runsLayout is stored in the database header via PRAGMA user_version.
const runsLayout = 1

// ErrSchemaMismatch means the database was not written by this layout of the run log.
var ErrSchemaMismatch = errors.New("run history layout mismatch")

func (s *Store) initSchema(ctx context.Context) error {
	var layout int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&layout); err != nil {
		return fmt.Errorf("read history layout: %w", err)
	}
	hasRuns, err := s.hasRunsTable(ctx)
	if err != nil {
		return err
	}

	switch {
	case layout == 0 && !hasRuns:
		return s.createRunsTable(ctx)
	case layout == 0:
		return fmt.Errorf("%w: %s holds a runs table ucclean did not create", ErrSchemaMismatch, s.path)
	case layout != runsLayout:
		return fmt.Errorf("%w: %s has layout %d, expected %d (delete it to reset run history)",
			ErrSchemaMismatch, s.path, layout, runsLayout)
	case !hasRuns:
		return fmt.Errorf("%w: %s is missing the runs table", ErrSchemaMismatch, s.path)
	}
	return nil
}

func (s *Store) hasRunsTable(ctx context.Context) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = 'runs'",
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("look up runs table: %w", err)
	}
	return n > 0, nil
}

func (s *Store) createRunsTable(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history setup: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}
	// PRAGMA values cannot be bound as parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", runsLayout)); err != nil {
		return fmt.Errorf("stamp history layout: %w", err)
	}
	return tx.Commit()
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"ucclean/internal/csvio"
	"ucclean/internal/history"
	"ucclean/internal/logging"
)

// ErrSameFile is returned when the output path resolves to the input path.
var ErrSameFile = errors.New("output path would overwrite input")

// Recorder persists run lifecycle rows. *history.Store satisfies it.
type Recorder interface {
	Begin(ctx context.Context, run *history.Run) error
	Finish(ctx context.Context, run *history.Run) error
}

// RunOptions extends Options with the file locations and an optional
// history recorder. LockDir holds the output write lock; empty means the
// system temp directory.
type RunOptions struct {
	Options
	InputPath  string
	OutputPath string
	LockDir    string
	History    Recorder
}

// Run loads the input file, processes it and writes the survivors to the
// output file. The returned Stats carry the generated run ID.
func Run(ctx context.Context, opts RunOptions) (Stats, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Options = opts.withDefaults()

	input, err := filepath.Abs(opts.InputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("resolve input path: %w", err)
	}
	output, err := filepath.Abs(opts.OutputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("resolve output path: %w", err)
	}
	if input == output {
		return Stats{}, fmt.Errorf("%w: %s", ErrSameFile, output)
	}

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "run"))

	record := &history.Run{
		ID:         runID,
		InputPath:  input,
		OutputPath: output,
		Cutoff:     opts.Cutoff,
	}
	recorder := opts.History
	if recorder != nil {
		if err := recorder.Begin(ctx, record); err != nil {
			logging.WarnWithContext(logger, "run history unavailable", "history_begin_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check state_dir permissions or run with --no-history"),
				logging.String(logging.FieldImpact, "this run will not appear in history"),
			)
			recorder = nil
		}
	}

	logger.Info("run started",
		logging.String("input", input),
		logging.String("output", output),
		logging.String("cutoff", opts.Cutoff.Format("2006-01-02")),
	)

	stats, runErr := execute(ctx, opts, input, output)
	stats.RunID = runID

	if recorder != nil {
		record.RowsRead = stats.RowsRead
		record.UnparseableDates = stats.UnparseableDates
		record.RowsAfterFilter = stats.RowsAfterFilter
		record.DuplicatesDropped = stats.DuplicatesDropped
		record.RowsWritten = stats.RowsWritten
		if runErr != nil {
			record.ErrorMessage = runErr.Error()
		}
		// Record the outcome even when ctx was cancelled.
		if err := recorder.Finish(context.WithoutCancel(ctx), record); err != nil {
			logging.WarnWithContext(logger, "failed to record run outcome", "history_finish_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "history shows this run as running"),
			)
		}
	}

	if runErr != nil {
		logging.ErrorWithContext(logger, "run failed", "run_failed", logging.Error(runErr))
		return stats, runErr
	}

	logger.Info("run complete",
		logging.Int("rows_read", stats.RowsRead),
		logging.Int("rows_after_filter", stats.RowsAfterFilter),
		logging.Int("duplicates_dropped", stats.DuplicatesDropped),
		logging.Int("rows_written", stats.RowsWritten),
	)
	return stats, nil
}

func execute(ctx context.Context, opts RunOptions, input, output string) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	tbl, err := csvio.Load(input)
	if err != nil {
		return Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return Stats{RowsRead: tbl.Len()}, err
	}

	result, stats, err := ProcessContext(ctx, tbl, opts.Options)
	if err != nil {
		return stats, err
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}

	if err := csvio.Save(output, result, opts.LockDir); err != nil {
		return stats, err
	}
	return stats, nil
}

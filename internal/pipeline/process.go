package pipeline

import (
	"context"
	"errors"

	"ucclean/internal/logging"
	"ucclean/internal/records"
)

// Stats summarizes one pass through the pipeline.
type Stats struct {
	RunID             string   `json:"run_id,omitempty"`
	RowsRead          int      `json:"rows_read"`
	UnparseableDates  int      `json:"unparseable_dates"`
	RowsAfterFilter   int      `json:"rows_after_filter"`
	DuplicatesDropped int      `json:"duplicates_dropped"`
	RowsWritten       int      `json:"rows_written"`
	Columns           []string `json:"columns"`
}

// Process filters, ranks, sorts and deduplicates tbl. The input table is not
// modified; the result shares its header.
func Process(tbl *records.Table, opts Options) (*records.Table, Stats, error) {
	return ProcessContext(context.Background(), tbl, opts)
}

// ProcessContext is Process with cancellation checked between steps.
func ProcessContext(ctx context.Context, tbl *records.Table, opts Options) (*records.Table, Stats, error) {
	if tbl == nil {
		return nil, Stats{}, errors.New("process: table is nil")
	}
	opts = opts.withDefaults()
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "pipeline"))

	stats := Stats{
		RowsRead: tbl.Len(),
		Columns:  append([]string(nil), tbl.Columns...),
	}

	LogColumns(logger, tbl)

	idx, err := ValidateColumns(tbl, opts.Columns)
	if err != nil {
		return nil, stats, err
	}
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	dated, unparseable := ParseDates(logger, tbl.Records, idx.FilingDate, opts.DateLayout)
	stats.UnparseableDates = unparseable
	if unparseable > 0 {
		logger.Info("skipped records with unparseable filing dates", logging.Int("count", unparseable))
	}

	filtered := FilterAfter(dated, opts.Cutoff)
	stats.RowsAfterFilter = len(filtered)
	logger.Debug("applied cutoff filter",
		logging.String("cutoff", opts.Cutoff.Format("2006-01-02")),
		logging.Int("kept", len(filtered)),
	)
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	ranked := Annotate(filtered, idx.Designation, opts.Ranker)
	order := InferKeyOrder(tbl.Records, idx.FilingID)
	sorted := SortStable(ranked, idx.FilingID, order)
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	kept, dropped := Dedupe(sorted, idx.FilingID, order)
	stats.DuplicatesDropped = dropped
	stats.RowsWritten = len(kept)
	logger.Debug("deduplicated filings",
		logging.String("key_order", order.String()),
		logging.Int("dropped", dropped),
	)

	return tbl.WithRecords(Strip(kept)), stats, nil
}

package pipeline

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
	"time"

	"ucclean/internal/logging"
	"ucclean/internal/ranking"
	"ucclean/internal/records"
)

// Ranked is a record augmented with its parsed filing date and priority.
// It only lives between date parsing and Strip.
type Ranked struct {
	Record   records.Record
	Date     time.Time
	HasDate  bool
	Priority int
	key      filingKey
}

// ColumnIndex holds the header positions of the required columns.
type ColumnIndex struct {
	FilingID    int
	Designation int
	FilingDate  int
}

// LogColumns reports the detected header.
func LogColumns(logger *slog.Logger, tbl *records.Table) {
	logger.Info("detected columns",
		logging.Int("count", len(tbl.Columns)),
		logging.String("columns", strings.Join(tbl.Columns, ", ")),
	)
}

// ValidateColumns checks that every required column is present and returns
// their positions. Missing columns are reported in required order.
func ValidateColumns(tbl *records.Table, cols Columns) (ColumnIndex, error) {
	var missing []string
	for _, name := range cols.Required() {
		if !tbl.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return ColumnIndex{}, &SchemaError{Missing: missing}
	}
	return ColumnIndex{
		FilingID:    tbl.Index(cols.FilingID),
		Designation: tbl.Index(cols.Designation),
		FilingDate:  tbl.Index(cols.FilingDate),
	}, nil
}

// ParseDates parses the date column of every record. Records whose date does
// not match layout keep HasDate=false; the second result counts them.
func ParseDates(logger *slog.Logger, recs []records.Record, dateIndex int, layout string) ([]Ranked, int) {
	out := make([]Ranked, len(recs))
	unparseable := 0
	for i, rec := range recs {
		out[i].Record = rec
		raw := rec.Field(dateIndex)
		parsed, err := time.Parse(layout, strings.TrimSpace(raw))
		if err != nil {
			unparseable++
			logger.Debug("unparseable filing date",
				logging.Int("line", rec.Line),
				logging.String("value", raw),
			)
			continue
		}
		out[i].Date = parsed
		out[i].HasDate = true
	}
	return out, unparseable
}

// FilterAfter keeps rows dated strictly after cutoff. Undated rows are dropped.
func FilterAfter(rows []Ranked, cutoff time.Time) []Ranked {
	out := make([]Ranked, 0, len(rows))
	for _, row := range rows {
		if row.HasDate && row.Date.After(cutoff) {
			out = append(out, row)
		}
	}
	return out
}

// Annotate returns a copy of rows with Priority set from the designation
// column. An empty cell ranks as a missing value.
func Annotate(rows []Ranked, designationIndex int, ranker *ranking.Ranker) []Ranked {
	out := make([]Ranked, len(rows))
	for i, row := range rows {
		out[i] = row
		designation := row.Record.Field(designationIndex)
		if designation == "" {
			out[i].Priority = ranker.RankMissing()
			continue
		}
		out[i].Priority = ranker.Rank(designation)
	}
	return out
}

// SortStable returns a copy of rows ordered by filing identifier, then
// priority. Equal rows keep their relative order.
func SortStable(rows []Ranked, idIndex int, order KeyOrder) []Ranked {
	out := make([]Ranked, len(rows))
	for i, row := range rows {
		out[i] = row
		out[i].key = makeKey(row.Record.Field(idIndex), order)
	}
	slices.SortStableFunc(out, func(a, b Ranked) int {
		if c := compareKeys(a.key, b.key); c != 0 {
			return c
		}
		return cmp.Compare(a.Priority, b.Priority)
	})
	return out
}

// Dedupe keeps the first row for each filing identifier and returns the
// number of rows dropped.
func Dedupe(rows []Ranked, idIndex int, order KeyOrder) ([]Ranked, int) {
	seen := make(map[filingKey]struct{}, len(rows))
	out := make([]Ranked, 0, len(rows))
	for _, row := range rows {
		key := makeKey(row.Record.Field(idIndex), order)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out, len(rows) - len(out)
}

// Strip discards the transient fields and returns the plain records.
func Strip(rows []Ranked) []records.Record {
	out := make([]records.Record, len(rows))
	for i, row := range rows {
		out[i] = row.Record
	}
	return out
}

package pipeline

import (
	"errors"
	"log/slog"
	"time"

	"ucclean/internal/config"
	"ucclean/internal/logging"
	"ucclean/internal/ranking"
)

// DateLayout is the accepted filing date form (month/day/4-digit-year).
// Single-digit months and days are accepted as well as zero-padded ones.
const DateLayout = "1/2/2006"

// DefaultCutoff is the date filings must be strictly after to survive.
var DefaultCutoff = time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC)

// Columns names the required header fields.
type Columns struct {
	FilingID    string
	Designation string
	FilingDate  string
}

// DefaultColumns returns the column names of the filing export.
func DefaultColumns() Columns {
	return Columns{
		FilingID:    "Filing Number",
		Designation: "Official Designation",
		FilingDate:  "Filing Date",
	}
}

// Required lists the column names in validation order.
func (c Columns) Required() []string {
	return []string{c.FilingID, c.Designation, c.FilingDate}
}

// Options configures Process. Zero values fall back to the defaults.
type Options struct {
	Columns    Columns
	Cutoff     time.Time
	DateLayout string
	Ranker     *ranking.Ranker
	Logger     *slog.Logger
}

// OptionsFromConfig builds pipeline options from application configuration.
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) (Options, error) {
	if cfg == nil {
		return Options{}, errors.New("config is required")
	}
	cutoff, err := cfg.CutoffDate()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Columns: Columns{
			FilingID:    cfg.Columns.FilingID,
			Designation: cfg.Columns.Designation,
			FilingDate:  cfg.Columns.FilingDate,
		},
		Cutoff:     cutoff,
		DateLayout: DateLayout,
		Ranker:     ranking.New(cfg.Ranking.Hierarchy, cfg.Ranking.OverrideKeywords),
		Logger:     logger,
	}, nil
}

func (o Options) withDefaults() Options {
	defaults := DefaultColumns()
	if o.Columns.FilingID == "" {
		o.Columns.FilingID = defaults.FilingID
	}
	if o.Columns.Designation == "" {
		o.Columns.Designation = defaults.Designation
	}
	if o.Columns.FilingDate == "" {
		o.Columns.FilingDate = defaults.FilingDate
	}
	if o.Cutoff.IsZero() {
		o.Cutoff = DefaultCutoff
	}
	if o.DateLayout == "" {
		o.DateLayout = DateLayout
	}
	if o.Ranker == nil {
		o.Ranker = ranking.Default()
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	return o
}

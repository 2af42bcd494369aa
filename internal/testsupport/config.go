package testsupport

import (
	"path/filepath"
	"testing"

	"ucclean/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Input = filepath.Join(base, "input.csv")
	cfgVal.Paths.Output = filepath.Join(base, "out", "output.csv")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCutoff overrides filter.cutoff on the test config.
func WithCutoff(cutoff string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Filter.Cutoff = cutoff
	}
}

// WithHistoryDisabled turns off run history on the test config.
func WithHistoryDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// WithInputRows writes a CSV input file for the test config.
func WithInputRows(header []string, rows ...[]string) ConfigOption {
	return func(b *configBuilder) {
		WriteCSV(b.t, b.cfg.Paths.Input, header, rows...)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.Input)
}

package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"ucclean/internal/pipeline"
	"ucclean/internal/testsupport"
)

func sampleRows() [][]string {
	return [][]string{
		{"F1", "Owner", "09/05/2024", "Acme"},
		{"F1", "Manager", "09/06/2024", "Acme"},
		{"F2", "Vice President", "09/01/2024", "Beta"},
		{"F2", "President", "09/02/2024", "Beta"},
		{"F3", "Unknown Title", "08/30/2024", "Gamma"},
	}
}

func TestRunCommandWritesSummary(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithInputRows(testsupport.FilingHeader, sampleRows()...))

	out, _, err := runCLI(t, []string{"run"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "[OK] wrote 2 of 5 rows")
	requireContains(t, out, "Duplicates dropped")

	rows := testsupport.ReadCSV(t, env.cfg.Paths.Output)
	want := [][]string{
		testsupport.FilingHeader,
		{"F1", "Owner", "09/05/2024", "Acme"},
		{"F2", "Vice President", "09/01/2024", "Beta"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("output = %v, want %v", rows, want)
	}
	if _, err := os.Stat(env.cfg.Paths.Output + ".lock"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("lock file left next to output (err=%v)", err)
	}
}

func TestRunCommandJSONWithOverrides(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithHistoryDisabled())
	input := filepath.Join(env.baseDir, "other.csv")
	output := filepath.Join(env.baseDir, "other-out.csv")
	testsupport.WriteCSV(t, input, testsupport.FilingHeader, sampleRows()...)

	out, _, err := runCLI(t, []string{"run", "--input", input, "--output", output, "--cutoff", "2024-09-01", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var stats pipeline.Stats
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("decode stats %q: %v", out, err)
	}
	// The 09/01 vice president row falls on the cutoff, so F2 keeps the president.
	if stats.RowsAfterFilter != 3 || stats.RowsWritten != 2 || stats.RunID == "" {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	rows := testsupport.ReadCSV(t, output)
	if len(rows) != 3 || rows[2][1] != "President" {
		t.Fatalf("unexpected output rows: %v", rows)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.StateDir, "history.db")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("history disabled but database exists (err=%v)", err)
	}
}

func TestRunCommandMissingColumns(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithInputRows([]string{"Filing Number", "Filing Date"}, []string{"F1", "09/05/2024"}))

	_, _, err := runCLI(t, []string{"run"}, env.configPath)
	if err == nil {
		t.Fatal("expected schema error")
	}
	if err.Error() != "missing required columns: Official Designation" {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, statErr := os.Stat(env.cfg.Paths.Output); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("expected no output file, stat err = %v", statErr)
	}
}

func TestRunCommandRejectsBadCutoff(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithInputRows(testsupport.FilingHeader))

	_, _, err := runCLI(t, []string{"run", "--cutoff", "08/31/2024"}, env.configPath)
	if err == nil {
		t.Fatal("expected cutoff error")
	}
	requireContains(t, err.Error(), "--cutoff")
}

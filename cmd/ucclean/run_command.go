package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ucclean/internal/config"
	"ucclean/internal/history"
	"ucclean/internal/logging"
	"ucclean/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var inputFlag string
	var outputFlag string
	var cutoffFlag string
	var jsonOut bool
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Filter, rank and deduplicate the filing export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			effective := *cfg
			if v := strings.TrimSpace(inputFlag); v != "" {
				effective.Paths.Input = v
			}
			if v := strings.TrimSpace(outputFlag); v != "" {
				effective.Paths.Output = v
			}
			if v := strings.TrimSpace(cutoffFlag); v != "" {
				if _, err := time.Parse(config.CutoffLayout, v); err != nil {
					return fmt.Errorf("--cutoff: expected YYYY-MM-DD, got %q", v)
				}
				effective.Filter.Cutoff = v
			}

			opts, err := pipeline.OptionsFromConfig(&effective, logger)
			if err != nil {
				return err
			}
			runOpts := pipeline.RunOptions{
				Options:    opts,
				InputPath:  effective.Paths.Input,
				OutputPath: effective.Paths.Output,
				LockDir:    effective.Paths.StateDir,
			}

			var store *history.Store
			if effective.History.Enabled && !noHistory {
				store, err = history.Open(effective.Paths.StateDir)
				if err != nil {
					logging.WarnWithContext(logger, "run history unavailable", "history_open_failed",
						logging.Error(err),
						logging.String(logging.FieldImpact, "this run will not appear in history"),
					)
				} else {
					defer store.Close()
					runOpts.History = store
				}
			}

			stats, runErr := pipeline.Run(cmd.Context(), runOpts)

			if store != nil && effective.History.Keep > 0 {
				if _, err := store.Prune(cmd.Context(), effective.History.Keep); err != nil {
					logger.Warn("history prune failed", logging.Error(err))
				}
			}

			if runErr != nil {
				return runErr
			}

			if jsonOut {
				return writeJSON(cmd, stats)
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderStatusLine(summaryKind(stats),
				fmt.Sprintf("wrote %d of %d rows to %s", stats.RowsWritten, stats.RowsRead, effective.Paths.Output), colorize))
			fmt.Fprintln(out, renderFields(summaryFields(stats)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFlag, "input", "i", "", "Input CSV path (overrides paths.input)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output CSV path (overrides paths.output)")
	cmd.Flags().StringVar(&cutoffFlag, "cutoff", "", "Keep filings dated strictly after this day (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit run statistics as JSON")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in history")
	return cmd
}

func summaryKind(stats pipeline.Stats) statusKind {
	switch {
	case stats.RowsWritten == 0:
		return statusWarn
	case stats.UnparseableDates > 0:
		return statusWarn
	default:
		return statusOK
	}
}

func summaryFields(stats pipeline.Stats) [][2]string {
	return [][2]string{
		{"Run", stats.RunID},
		{"Columns", strconv.Itoa(len(stats.Columns))},
		{"Rows read", strconv.Itoa(stats.RowsRead)},
		{"Unparseable dates", strconv.Itoa(stats.UnparseableDates)},
		{"After cutoff", strconv.Itoa(stats.RowsAfterFilter)},
		{"Duplicates dropped", strconv.Itoa(stats.DuplicatesDropped)},
		{"Rows written", strconv.Itoa(stats.RowsWritten)},
	}
}

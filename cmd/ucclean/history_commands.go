package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ucclean/internal/history"
)

const displayTimeLayout = "2006-01-02 15:04:05"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded pipeline runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOut {
					if runs == nil {
						runs = []*history.Run{}
					}
					return writeJSON(cmd, runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, renderStatusLine(statusInfo, "No runs recorded", shouldColorize(out)))
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Started", "Status", "Read", "Written", "Dropped", "Duration"},
					historyRows(runs),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	historyCmd.Flags().BoolVar(&jsonOut, "json", false, "Emit runs as JSON")

	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryPruneCommand(ctx))
	return historyCmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one run by ID or unique ID prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				run, err := store.Get(cmd.Context(), strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("run %s not found", args[0])
				}
				if jsonOut {
					return writeJSON(cmd, run)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderStatusLine(runStatusKind(run.Status), "run "+string(run.Status), shouldColorize(out)))
				fmt.Fprintln(out, renderFields(runFields(run)))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run as JSON")
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keep < 0 {
				return errors.New("--keep must not be negative")
			}
			return ctx.withHistory(func(store *history.Store) error {
				removed, err := store.Prune(cmd.Context(), keep)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s)\n", removed)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 0, "Number of newest runs to keep")
	return cmd
}

func historyRows(runs []*history.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			run.StartedAt.Local().Format(displayTimeLayout),
			string(run.Status),
			strconv.Itoa(run.RowsRead),
			strconv.Itoa(run.RowsWritten),
			strconv.Itoa(run.DuplicatesDropped),
			formatDuration(run),
		})
	}
	return rows
}

func runFields(run *history.Run) [][2]string {
	finished := "-"
	if run.FinishedAt != nil {
		finished = run.FinishedAt.Local().Format(displayTimeLayout)
	}
	errText := run.ErrorMessage
	if errText == "" {
		errText = "-"
	}
	return [][2]string{
		{"ID", run.ID},
		{"Status", string(run.Status)},
		{"Input", run.InputPath},
		{"Output", run.OutputPath},
		{"Cutoff", run.Cutoff.Format("2006-01-02")},
		{"Started", run.StartedAt.Local().Format(displayTimeLayout)},
		{"Finished", finished},
		{"Duration", formatDuration(run)},
		{"Rows read", strconv.Itoa(run.RowsRead)},
		{"Unparseable dates", strconv.Itoa(run.UnparseableDates)},
		{"After cutoff", strconv.Itoa(run.RowsAfterFilter)},
		{"Duplicates dropped", strconv.Itoa(run.DuplicatesDropped)},
		{"Rows written", strconv.Itoa(run.RowsWritten)},
		{"Error", errText},
	}
}

func runStatusKind(status history.Status) statusKind {
	switch status {
	case history.StatusSucceeded:
		return statusOK
	case history.StatusFailed:
		return statusError
	default:
		return statusInfo
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDuration(run *history.Run) string {
	if run.FinishedAt == nil {
		return "-"
	}
	return run.Duration().Round(time.Millisecond).String()
}

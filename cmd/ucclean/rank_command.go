package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ucclean/internal/ranking"
)

type rankResult struct {
	Designation string `json:"designation"`
	ranking.Match
}

func newRankCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "rank DESIGNATION...",
		Short: "Show the priority assigned to designations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ranker := ranking.New(cfg.Ranking.Hierarchy, cfg.Ranking.OverrideKeywords)

			results := make([]rankResult, 0, len(args))
			for _, arg := range args {
				results = append(results, rankResult{Designation: arg, Match: ranker.Explain(arg)})
			}

			if jsonOut {
				return writeJSON(cmd, results)
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rule := r.Rule
				if r.Kind == ranking.MatchNone {
					rule = "-"
				}
				rows = append(rows, []string{r.Designation, strconv.Itoa(r.Priority), string(r.Kind), rule})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Designation", "Priority", "Match", "Rule"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit results as JSON")
	return cmd
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var runsFlags struct {
	limit int
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs, newest first",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&runsFlags.limit, "limit", 0, "Maximum runs to list (0 for all)")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := cmd.Context()
	if err := client.Init(ctx); err != nil {
		return err
	}

	items, err := client.Runs(ctx, runsFlags.limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}
	for _, item := range items {
		winner := item.Winner
		if winner == "" {
			winner = "-"
		}
		fmt.Fprintf(out, "%s  seed=%d rounds=%d reason=%s winner=%s [%s]\n",
			item.RunID, item.Seed, item.Rounds, item.Reason, winner, strings.Join(item.Strategies, ","))
	}
	return nil
}

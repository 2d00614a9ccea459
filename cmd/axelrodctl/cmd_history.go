package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyFlags struct {
	runID string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the per-round score vectors of a run",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyFlags.runID, "run-id", "", "Run identifier (required)")
	_ = historyCmd.MarkFlagRequired("run-id")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := cmd.Context()
	if err := client.Init(ctx); err != nil {
		return err
	}

	history, err := client.ScoreHistory(ctx, historyFlags.runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for round, scores := range history {
		fmt.Fprintf(out, "round %d:", round)
		for _, score := range scores {
			fmt.Fprintf(out, " %.4f", score)
		}
		fmt.Fprintln(out)
	}
	return nil
}

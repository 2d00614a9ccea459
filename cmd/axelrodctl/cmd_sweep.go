package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sweepFlags struct {
	configPath  string
	parallelism int
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run every variant/seed combination from a YAML sweep config",
	RunE:  runSweep,
}

func init() {
	f := sweepCmd.Flags()
	f.StringVarP(&sweepFlags.configPath, "config", "f", "", "Sweep config YAML path (required)")
	f.IntVar(&sweepFlags.parallelism, "parallel", 1, "Runs in flight at once")

	_ = sweepCmd.MarkFlagRequired("config")
}

func runSweep(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := cmd.Context()
	if err := client.Init(ctx); err != nil {
		return err
	}

	summary, err := client.Sweep(ctx, sweepFlags.configPath, sweepFlags.parallelism)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Completed %d runs\n", len(summary.Runs))
	for _, run := range summary.Runs {
		if run.Winner != "" {
			fmt.Fprintf(out, "  %s: %s after %d rounds (%s)\n", run.RunID, run.Winner, run.Rounds, run.Reason)
			continue
		}
		fmt.Fprintf(out, "  %s: no winner after %d rounds (%s)\n", run.RunID, run.Rounds, run.Reason)
	}
	return nil
}

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var snapshotsFlags struct {
	runID string
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Show the population distribution after each round of a run",
	RunE:  runSnapshots,
}

func init() {
	snapshotsCmd.Flags().StringVar(&snapshotsFlags.runID, "run-id", "", "Run identifier (required)")
	_ = snapshotsCmd.MarkFlagRequired("run-id")
}

func runSnapshots(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := cmd.Context()
	if err := client.Init(ctx); err != nil {
		return err
	}

	snapshots, err := client.Snapshots(ctx, snapshotsFlags.runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, snapshot := range snapshots {
		fmt.Fprintf(out, "round %d:", snapshot.Round)
		names := make([]string, 0, len(snapshot.Counts))
		for name := range snapshot.Counts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, " %s=%d", name, snapshot.Counts[name])
		}
		fmt.Fprintln(out)
	}
	return nil
}

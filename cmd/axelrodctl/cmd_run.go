package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ariefrahman95/Axelrod/pkg/axelrod"
)

var runFlags struct {
	runID         string
	strategies    []string
	seed          int64
	turns         int
	maximumRound  int
	noise         float64
	noiseBias     bool
	probEnd       float64
	replaceAmount int
	workers       int
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play one Case process to completion",
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.runID, "run-id", "", "Run identifier (generated when empty)")
	f.StringSliceVar(&runFlags.strategies, "strategy", nil, "Strategy registry key, repeatable (at least 2)")
	f.Int64Var(&runFlags.seed, "seed", 0, "Random seed")
	f.IntVar(&runFlags.turns, "turns", 0, "Turns per match")
	f.IntVar(&runFlags.maximumRound, "rounds", 0, "Maximum process rounds")
	f.Float64Var(&runFlags.noise, "noise", 0, "Action flip probability per turn")
	f.BoolVar(&runFlags.noiseBias, "noise-bias", false, "Restrict noise to cooperation flips")
	f.Float64Var(&runFlags.probEnd, "prob-end", 0, "Per-turn probability of match ending early")
	f.IntVar(&runFlags.replaceAmount, "replace", 0, "Players replaced per round")
	f.IntVar(&runFlags.workers, "workers", 0, "Parallel match workers per round")

	_ = runCmd.MarkFlagRequired("strategy")
}

func runRun(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := cmd.Context()
	if err := client.Init(ctx); err != nil {
		return err
	}

	summary, err := client.Run(ctx, axelrod.RunRequest{
		RunID:         runFlags.runID,
		Strategies:    runFlags.strategies,
		Seed:          runFlags.seed,
		Turns:         runFlags.turns,
		MaximumRound:  runFlags.maximumRound,
		Noise:         runFlags.noise,
		NoiseBias:     runFlags.noiseBias,
		ProbEnd:       runFlags.probEnd,
		ReplaceAmount: runFlags.replaceAmount,
		Workers:       runFlags.workers,
	})
	if err != nil {
		return fmt.Errorf("run case: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run:     %s\n", summary.RunID)
	fmt.Fprintf(out, "Rounds:  %d\n", summary.Rounds)
	fmt.Fprintf(out, "Reason:  %s\n", summary.Reason)
	if summary.Winner != "" {
		fmt.Fprintf(out, "Winner:  %s\n", summary.Winner)
	}
	if len(summary.Populations) > 0 {
		final := summary.Populations[len(summary.Populations)-1]
		fmt.Fprintf(out, "Final population:\n")
		names := make([]string, 0, len(final.Counts))
		for name := range final.Counts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "  %s: %d\n", name, final.Counts[name])
		}
	}
	if summary.ArtifactsDir != "" {
		fmt.Fprintf(out, "Artifacts: %s\n", summary.ArtifactsDir)
	}
	return nil
}

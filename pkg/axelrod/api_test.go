package axelrod

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(Options{
		ArtifactsDir: t.TempDir(),
		ExportsDir:   t.TempDir(),
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	if err := client.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return client
}

func TestClientRunAndListAndExport(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Run(ctx, RunRequest{
		RunID:        "run-1",
		Strategies:   []string{"cooperator", "defector", "tit_for_tat", "tit_for_tat"},
		Seed:         42,
		Turns:        10,
		MaximumRound: 20,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Winner != "Tit For Tat" || summary.Reason != "fixation" {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	runs, err := client.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != "run-1" {
		t.Fatalf("unexpected runs: %+v", runs)
	}

	history, err := client.ScoreHistory(ctx, "run-1")
	if err != nil {
		t.Fatalf("score history: %v", err)
	}
	if len(history) != summary.Rounds {
		t.Fatalf("expected %d score vectors, got %d", summary.Rounds, len(history))
	}

	snapshots, err := client.Snapshots(ctx, "run-1")
	if err != nil {
		t.Fatalf("snapshots: %v", err)
	}
	if len(snapshots) != summary.Rounds+1 {
		t.Fatalf("expected %d snapshots, got %d", summary.Rounds+1, len(snapshots))
	}

	export, err := client.Export(ExportRequest{Latest: true})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if export.RunID != "run-1" {
		t.Fatalf("unexpected export: %+v", export)
	}
	if _, err := os.Stat(filepath.Join(export.Directory, "outcome.json")); err != nil {
		t.Fatalf("missing exported outcome: %v", err)
	}
}

func TestClientRunValidatesAndDefaults(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Run(ctx, RunRequest{Strategies: []string{"cooperator"}}); err == nil {
		t.Fatal("expected error for single strategy")
	}

	summary, err := client.Run(ctx, RunRequest{
		Strategies: []string{"cooperator", "cooperator"},
		Seed:       1,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.RunID == "" {
		t.Fatal("expected generated run id")
	}
	// A homogeneous population fixates before playing any round.
	if summary.Reason != "fixation" || summary.Rounds != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestClientStrategies(t *testing.T) {
	client := newTestClient(t)
	names := client.Strategies()
	if len(names) != 8 {
		t.Fatalf("expected 8 built-in strategies, got %d: %v", len(names), names)
	}
}

func TestClientMissingRunErrors(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.ScoreHistory(ctx, "missing"); err == nil {
		t.Fatal("expected error for unknown run")
	}
	if _, err := client.Snapshots(ctx, "missing"); err == nil {
		t.Fatal("expected error for unknown run")
	}
	if _, err := client.Export(ExportRequest{RunID: "missing"}); err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestClientSweepFromYAML(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	path := filepath.Join(t.TempDir(), "sweep.yaml")
	config := `name: demo
turns: 5
maximum_round: 10
replace_amount: 1
seeds: [1, 2]
variants:
  - name: base
    strategies: [cooperator, defector, tit_for_tat]
`
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	summary, err := client.Sweep(ctx, path, 2)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(summary.Runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(summary.Runs))
	}
}

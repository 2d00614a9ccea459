// Package axelrod is the public facade over the Case process simulator. It
// wires the storage backend, the strategy registry and the run artifacts
// directory together behind a small request/response API.
package axelrod

import (
	"context"
	"fmt"
	"time"

	"github.com/ariefrahman95/Axelrod/internal/game"
	"github.com/ariefrahman95/Axelrod/internal/model"
	"github.com/ariefrahman95/Axelrod/internal/platform"
	"github.com/ariefrahman95/Axelrod/internal/stats"
	"github.com/ariefrahman95/Axelrod/internal/storage"
	"github.com/ariefrahman95/Axelrod/internal/strategy"
)

const (
	defaultArtifactsDir = "artifacts"
	defaultExportsDir   = "exports"
	defaultDBPath       = "axelrod.db"
)

type Options struct {
	StoreKind    string
	DBPath       string
	ArtifactsDir string
	ExportsDir   string
}

type Client struct {
	store    storage.Store
	registry *strategy.Registry
	lab      *platform.Lab

	artifactsDir string
	exportsDir   string
}

type RunRequest struct {
	RunID         string
	Strategies    []string
	Seed          int64
	Turns         int
	MaximumRound  int
	Noise         float64
	NoiseBias     bool
	ProbEnd       float64
	ReplaceAmount int
	Workers       int
}

type RunSummary struct {
	RunID        string
	Reason       string
	Winner       string
	Rounds       int
	Populations  []model.SnapshotRecord
	ArtifactsDir string
}

type RunItem struct {
	RunID        string
	CreatedAtUTC string
	Strategies   []string
	Seed         int64
	Rounds       int
	Reason       string
	Winner       string
}

type SweepSummary struct {
	Runs []RunSummary
}

type ExportRequest struct {
	RunID  string
	Latest bool
	OutDir string
}

type ExportSummary struct {
	RunID     string
	Directory string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	artifactsDir := opts.ArtifactsDir
	if artifactsDir == "" {
		artifactsDir = defaultArtifactsDir
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	registry := strategy.DefaultRegistry()
	return &Client{
		store:        store,
		registry:     registry,
		lab:          platform.NewLab(store, registry, artifactsDir),
		artifactsDir: artifactsDir,
		exportsDir:   exportsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.lab.Init(ctx)
}

// Strategies lists the registry keys available for run requests.
func (c *Client) Strategies() []string {
	return c.registry.Names()
}

func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if len(req.Strategies) < 2 {
		return RunSummary{}, fmt.Errorf("at least 2 strategies are required")
	}
	if req.Turns <= 0 {
		req.Turns = game.DefaultTurns
	}
	if req.MaximumRound <= 0 {
		req.MaximumRound = 50
	}
	if req.ReplaceAmount <= 0 {
		req.ReplaceAmount = 1
	}
	if req.RunID == "" {
		req.RunID = fmt.Sprintf("case-%d-%d", req.Seed, time.Now().UTC().Unix())
	}

	result, err := c.lab.RunCase(ctx, platform.CaseRunConfig{
		RunID:         req.RunID,
		Strategies:    req.Strategies,
		Seed:          req.Seed,
		Turns:         req.Turns,
		MaximumRound:  req.MaximumRound,
		Noise:         req.Noise,
		NoiseBias:     req.NoiseBias,
		ProbEnd:       req.ProbEnd,
		ReplaceAmount: req.ReplaceAmount,
		Workers:       req.Workers,
	})
	if err != nil {
		return RunSummary{}, err
	}
	return RunSummary{
		RunID:        result.RunID,
		Reason:       string(result.Reason),
		Winner:       result.Winner,
		Rounds:       result.Rounds,
		Populations:  result.Populations,
		ArtifactsDir: result.ArtifactsDir,
	}, nil
}

func (c *Client) Sweep(ctx context.Context, configPath string, parallelism int) (SweepSummary, error) {
	cfg, err := platform.LoadSweepConfig(configPath)
	if err != nil {
		return SweepSummary{}, err
	}
	results, err := c.lab.Sweep(ctx, cfg, parallelism)
	if err != nil {
		return SweepSummary{}, err
	}
	summary := SweepSummary{Runs: make([]RunSummary, 0, len(results))}
	for _, result := range results {
		summary.Runs = append(summary.Runs, RunSummary{
			RunID:        result.RunID,
			Reason:       string(result.Reason),
			Winner:       result.Winner,
			Rounds:       result.Rounds,
			Populations:  result.Populations,
			ArtifactsDir: result.ArtifactsDir,
		})
	}
	return summary, nil
}

func (c *Client) Runs(ctx context.Context, limit int) ([]RunItem, error) {
	records, err := c.store.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	items := make([]RunItem, 0, len(records))
	for _, record := range records {
		items = append(items, RunItem{
			RunID:        record.ID,
			CreatedAtUTC: record.CreatedAt,
			Strategies:   record.Strategies,
			Seed:         record.Seed,
			Rounds:       record.Rounds,
			Reason:       record.Reason,
			Winner:       record.Winner,
		})
	}
	return items, nil
}

func (c *Client) ScoreHistory(ctx context.Context, runID string) ([][]float64, error) {
	history, ok, err := c.store.GetScoreHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no score history for run %s", runID)
	}
	return history, nil
}

func (c *Client) Snapshots(ctx context.Context, runID string) ([]model.SnapshotRecord, error) {
	snapshots, ok, err := c.store.GetSnapshots(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no snapshots for run %s", runID)
	}
	return snapshots, nil
}

func (c *Client) Export(req ExportRequest) (ExportSummary, error) {
	runID := req.RunID
	if req.Latest {
		index, err := stats.ListRunIndex(c.artifactsDir)
		if err != nil {
			return ExportSummary{}, err
		}
		if len(index) == 0 {
			return ExportSummary{}, fmt.Errorf("no runs recorded under %s", c.artifactsDir)
		}
		runID = index[0].RunID
	}
	if runID == "" {
		return ExportSummary{}, fmt.Errorf("run id is required")
	}
	outDir := req.OutDir
	if outDir == "" {
		outDir = c.exportsDir
	}
	dir, err := stats.ExportRunArtifacts(c.artifactsDir, runID, outDir)
	if err != nil {
		return ExportSummary{}, err
	}
	return ExportSummary{RunID: runID, Directory: dir}, nil
}

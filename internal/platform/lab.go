// Package platform coordinates Case process runs: it builds player rosters,
// drives the simulation, and persists results through the storage and stats
// layers.
package platform

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/ariefrahman95/Axelrod/internal/evo"
	"github.com/ariefrahman95/Axelrod/internal/game"
	"github.com/ariefrahman95/Axelrod/internal/model"
	"github.com/ariefrahman95/Axelrod/internal/stats"
	"github.com/ariefrahman95/Axelrod/internal/storage"
	"github.com/ariefrahman95/Axelrod/internal/strategy"
)

// Lab runs Case processes and records their results.
type Lab struct {
	store        storage.Store
	registry     *strategy.Registry
	artifactsDir string

	// indexMu serializes run index updates; the index file is read, patched
	// and rewritten whole.
	indexMu sync.Mutex
}

func NewLab(store storage.Store, registry *strategy.Registry, artifactsDir string) *Lab {
	if registry == nil {
		registry = strategy.DefaultRegistry()
	}
	return &Lab{store: store, registry: registry, artifactsDir: artifactsDir}
}

func (l *Lab) Init(ctx context.Context) error {
	return l.store.Init(ctx)
}

// RegisterStrategy adds a custom strategy factory under the given key.
func (l *Lab) RegisterStrategy(name string, factory strategy.Factory) error {
	return l.registry.Register(name, factory)
}

// CaseRunConfig describes one run. Strategies are registry keys; repeats are
// allowed and occupy separate population slots.
type CaseRunConfig struct {
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

type CaseRunResult struct {
	RunID        string
	Reason       evo.TerminationReason
	Winner       string
	Rounds       int
	Populations  []model.SnapshotRecord
	ScoreHistory [][]float64
	ArtifactsDir string
}

// BuildPlayers instantiates the named strategies. Stochastic strategies get
// distinct per-slot seeds derived from the run seed so repeated names do not
// mirror each other.
func (l *Lab) BuildPlayers(names []string, seed int64) ([]game.Player, error) {
	players := make([]game.Player, 0, len(names))
	for i, name := range names {
		player, err := l.registry.New(name, seed+1000+int64(i))
		if err != nil {
			return nil, fmt.Errorf("build player %d: %w", i, err)
		}
		players = append(players, player)
	}
	return players, nil
}

// RunCase plays a full Case process and persists the record, score history,
// snapshots and on-disk artifacts.
func (l *Lab) RunCase(ctx context.Context, cfg CaseRunConfig) (CaseRunResult, error) {
	if cfg.RunID == "" {
		return CaseRunResult{}, fmt.Errorf("run id is required")
	}
	players, err := l.BuildPlayers(cfg.Strategies, cfg.Seed)
	if err != nil {
		return CaseRunResult{}, err
	}

	process, err := evo.NewCaseProcess(evo.CaseConfig{
		Players:       players,
		Turns:         cfg.Turns,
		MaximumRound:  cfg.MaximumRound,
		Noise:         cfg.Noise,
		NoiseBias:     cfg.NoiseBias,
		ProbEnd:       cfg.ProbEnd,
		ReplaceAmount: cfg.ReplaceAmount,
		Rand:          rand.New(rand.NewSource(cfg.Seed)),
		Workers:       cfg.Workers,
	})
	if err != nil {
		return CaseRunResult{}, err
	}

	outcome, err := process.Play(ctx)
	if err != nil {
		return CaseRunResult{}, err
	}

	snapshots := make([]model.SnapshotRecord, 0, len(outcome.Populations))
	for round, snapshot := range outcome.Populations {
		snapshots = append(snapshots, model.SnapshotRecord{Round: round, Counts: snapshot})
	}

	createdAt := time.Now().UTC().Format(time.RFC3339)
	record := model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:            cfg.RunID,
		Strategies:    append([]string(nil), cfg.Strategies...),
		Seed:          cfg.Seed,
		Turns:         cfg.Turns,
		MaximumRound:  cfg.MaximumRound,
		Noise:         cfg.Noise,
		NoiseBias:     cfg.NoiseBias,
		ProbEnd:       cfg.ProbEnd,
		ReplaceAmount: cfg.ReplaceAmount,
		Rounds:        outcome.Rounds,
		Reason:        string(outcome.Reason),
		Winner:        outcome.Winner,
		CreatedAt:     createdAt,
	}
	if err := l.store.SaveRun(ctx, record); err != nil {
		return CaseRunResult{}, err
	}
	if err := l.store.SaveScoreHistory(ctx, cfg.RunID, outcome.ScoreHistory); err != nil {
		return CaseRunResult{}, err
	}
	if err := l.store.SaveSnapshots(ctx, cfg.RunID, snapshots); err != nil {
		return CaseRunResult{}, err
	}

	result := CaseRunResult{
		RunID:        cfg.RunID,
		Reason:       outcome.Reason,
		Winner:       outcome.Winner,
		Rounds:       outcome.Rounds,
		Populations:  snapshots,
		ScoreHistory: outcome.ScoreHistory,
	}

	if l.artifactsDir != "" {
		runDir, err := stats.WriteRunArtifacts(l.artifactsDir, stats.RunArtifacts{
			Config: stats.RunConfig{
				RunID:         cfg.RunID,
				Strategies:    record.Strategies,
				Seed:          cfg.Seed,
				Turns:         cfg.Turns,
				MaximumRound:  cfg.MaximumRound,
				Noise:         cfg.Noise,
				NoiseBias:     cfg.NoiseBias,
				ProbEnd:       cfg.ProbEnd,
				ReplaceAmount: cfg.ReplaceAmount,
				Workers:       cfg.Workers,
			},
			ScoreHistory: outcome.ScoreHistory,
			Populations:  snapshots,
			Outcome: stats.RunOutcome{
				Reason: string(outcome.Reason),
				Winner: outcome.Winner,
				Rounds: outcome.Rounds,
			},
		})
		if err != nil {
			return CaseRunResult{}, err
		}
		result.ArtifactsDir = runDir

		l.indexMu.Lock()
		err = stats.AppendRunIndex(l.artifactsDir, stats.RunIndexEntry{
			RunID:        cfg.RunID,
			Strategies:   len(cfg.Strategies),
			Seed:         cfg.Seed,
			Rounds:       outcome.Rounds,
			Reason:       string(outcome.Reason),
			Winner:       outcome.Winner,
			CreatedAtUTC: createdAt,
		})
		l.indexMu.Unlock()
		if err != nil {
			return CaseRunResult{}, err
		}
	}

	return result, nil
}

package platform

import (
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// SweepConfig describes a batch of Case runs: every variant is run once per
// seed. Variant fields override the sweep-level defaults when set.
type SweepConfig struct {
	Name          string         `yaml:"name"`
	Turns         int            `yaml:"turns"`
	MaximumRound  int            `yaml:"maximum_round"`
	ProbEnd       float64        `yaml:"prob_end"`
	ReplaceAmount int            `yaml:"replace_amount"`
	Workers       int            `yaml:"workers"`
	Seeds         []int64        `yaml:"seeds"`
	Variants      []SweepVariant `yaml:"variants"`
}

type SweepVariant struct {
	Name       string   `yaml:"name"`
	Strategies []string `yaml:"strategies"`
	Noise      float64  `yaml:"noise"`
	NoiseBias  bool     `yaml:"noise_bias"`
}

func LoadSweepConfig(path string) (SweepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SweepConfig{}, err
	}
	var cfg SweepConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SweepConfig{}, fmt.Errorf("parse sweep config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return SweepConfig{}, err
	}
	return cfg, nil
}

func (c SweepConfig) validate() error {
	if c.Name == "" {
		return fmt.Errorf("sweep name is required")
	}
	if len(c.Seeds) == 0 {
		return fmt.Errorf("sweep needs at least one seed")
	}
	if len(c.Variants) == 0 {
		return fmt.Errorf("sweep needs at least one variant")
	}
	for i, variant := range c.Variants {
		if variant.Name == "" {
			return fmt.Errorf("variant %d needs a name", i)
		}
		if len(variant.Strategies) < 2 {
			return fmt.Errorf("variant %q needs at least 2 strategies", variant.Name)
		}
	}
	return nil
}

// Sweep runs every variant for every seed with at most parallelism runs in
// flight. Run IDs are deterministic so repeated sweeps overwrite in place.
func (l *Lab) Sweep(ctx context.Context, cfg SweepConfig, parallelism int) ([]CaseRunResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if parallelism <= 0 {
		parallelism = 1
	}

	type job struct {
		run CaseRunConfig
		idx int
	}
	jobs := make([]job, 0, len(cfg.Variants)*len(cfg.Seeds))
	for _, variant := range cfg.Variants {
		for _, seed := range cfg.Seeds {
			jobs = append(jobs, job{
				run: CaseRunConfig{
					RunID:         fmt.Sprintf("%s-%s-seed-%d", cfg.Name, variant.Name, seed),
					Strategies:    variant.Strategies,
					Seed:          seed,
					Turns:         cfg.Turns,
					MaximumRound:  cfg.MaximumRound,
					Noise:         variant.Noise,
					NoiseBias:     variant.NoiseBias,
					ProbEnd:       cfg.ProbEnd,
					ReplaceAmount: cfg.ReplaceAmount,
					Workers:       cfg.Workers,
				},
				idx: len(jobs),
			})
		}
	}

	results := make([]CaseRunResult, len(jobs))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(parallelism)
	for _, j := range jobs {
		j := j
		group.Go(func() error {
			result, err := l.RunCase(groupCtx, j.run)
			if err != nil {
				return fmt.Errorf("run %s: %w", j.run.RunID, err)
			}
			mu.Lock()
			results[j.idx] = result
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

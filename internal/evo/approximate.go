package evo

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/ariefrahman95/Axelrod/internal/game"
)

// ErrMissingOutcome reports a strategy pairing with no outcome distribution
// under either key orientation.
var ErrMissingOutcome = errors.New("no outcome distribution for pairing")

// PairKey names an ordered strategy pairing in an outcome table.
type PairKey struct {
	First  string
	Second string
}

func (k PairKey) reversed() PairKey {
	return PairKey{First: k.Second, Second: k.First}
}

// ApproximateConfig configures an approximate Case process, which samples
// per-round scores from precomputed outcome distributions instead of
// playing matches.
type ApproximateConfig struct {
	Players       []game.Player
	Outcomes      map[PairKey]*Pdf
	MaximumRound  int
	ReplaceAmount int
	Rand          *rand.Rand
}

// NewApproximateCaseProcess builds a Case process whose rounds draw from the
// outcome table keyed by strategy names. Match parameters are neutralized:
// sampled distributions already embody turns, noise and payoffs.
func NewApproximateCaseProcess(cfg ApproximateConfig) (*CaseProcess, error) {
	if len(cfg.Outcomes) == 0 {
		return nil, fmt.Errorf("outcome table is required")
	}
	p, err := NewCaseProcess(CaseConfig{
		Players:       cfg.Players,
		Turns:         1,
		MaximumRound:  cfg.MaximumRound,
		ReplaceAmount: cfg.ReplaceAmount,
		Rand:          cfg.Rand,
	})
	if err != nil {
		return nil, err
	}
	outcomes := make(map[PairKey]*Pdf, len(cfg.Outcomes))
	for key, pdf := range cfg.Outcomes {
		outcomes[key] = pdf
	}
	p.scoreRound = func() ([]float64, error) {
		return p.scoreFromOutcomes(outcomes)
	}
	return p, nil
}

// scoreFromOutcomes accumulates one sampled score pair per unordered slot
// pair. A pairing stored under the reversed key has its sampled pair
// reversed so the first sampled value always lands on the first slot.
func (p *CaseProcess) scoreFromOutcomes(outcomes map[PairKey]*Pdf) ([]float64, error) {
	scores := make([]float64, len(p.players))
	for i := 0; i < len(p.players); i++ {
		for j := i + 1; j < len(p.players); j++ {
			key := PairKey{First: p.players[i].Name(), Second: p.players[j].Name()}
			pdf, ok := outcomes[key]
			if ok {
				sample := pdf.Sample(p.rng)
				scores[i] += sample.First
				scores[j] += sample.Second
				continue
			}
			pdf, ok = outcomes[key.reversed()]
			if !ok {
				return nil, fmt.Errorf("%w: %q vs %q", ErrMissingOutcome, key.First, key.Second)
			}
			sample := pdf.Sample(p.rng)
			scores[i] += sample.Second
			scores[j] += sample.First
		}
	}
	p.scoreHistory = append(p.scoreHistory, scores)
	return scores, nil
}

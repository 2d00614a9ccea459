package evo

import (
	"fmt"
	"math/rand"
	"sort"
)

// Outcome is a per-turn score pair observed for a matchup, from the first
// player's perspective.
type Outcome struct {
	First  float64
	Second float64
}

// Pdf is a discrete probability distribution over match outcomes. Outcomes
// are held in a deterministic order so sampling depends only on the random
// source, not on map iteration.
type Pdf struct {
	outcomes   []Outcome
	cumulative []float64
}

// NewPdf normalizes weighted outcome counts into a distribution. The total
// weight must be positive.
func NewPdf(counts map[Outcome]float64) (*Pdf, error) {
	total := 0.0
	for _, weight := range counts {
		if weight < 0 {
			return nil, fmt.Errorf("outcome weight must be >= 0, got %g", weight)
		}
		total += weight
	}
	if total <= 0 {
		return nil, fmt.Errorf("outcome weights must sum to a positive total")
	}

	outcomes := make([]Outcome, 0, len(counts))
	for outcome := range counts {
		outcomes = append(outcomes, outcome)
	}
	sort.Slice(outcomes, func(i, j int) bool {
		if outcomes[i].First != outcomes[j].First {
			return outcomes[i].First < outcomes[j].First
		}
		return outcomes[i].Second < outcomes[j].Second
	})

	cumulative := make([]float64, len(outcomes))
	running := 0.0
	for i, outcome := range outcomes {
		running += counts[outcome] / total
		cumulative[i] = running
	}
	cumulative[len(cumulative)-1] = 1.0

	return &Pdf{outcomes: outcomes, cumulative: cumulative}, nil
}

// Sample draws one outcome according to the distribution.
func (p *Pdf) Sample(rng *rand.Rand) Outcome {
	u := rng.Float64()
	for i, edge := range p.cumulative {
		if u <= edge {
			return p.outcomes[i]
		}
	}
	return p.outcomes[len(p.outcomes)-1]
}

package evo

import (
	"context"
	"math/rand"
	"testing"

	"github.com/ariefrahman95/Axelrod/internal/game"
	"github.com/ariefrahman95/Axelrod/internal/graph"
	"github.com/ariefrahman95/Axelrod/internal/strategy"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestNewCaseProcessValidation(t *testing.T) {
	if _, err := NewCaseProcess(CaseConfig{Players: []game.Player{strategy.NewCooperator()}, Rand: newRand()}); err == nil {
		t.Fatal("expected error for fewer than 2 players")
	}

	pair := []game.Player{strategy.NewCooperator(), strategy.NewDefector()}
	if _, err := NewCaseProcess(CaseConfig{Players: pair, ReplaceAmount: 2, Rand: newRand()}); err == nil {
		t.Fatal("expected error for replace amount >= population size")
	}
	if _, err := NewCaseProcess(CaseConfig{Players: pair, Noise: 1.5, Rand: newRand()}); err == nil {
		t.Fatal("expected error for noise out of range")
	}
	if _, err := NewCaseProcess(CaseConfig{Players: pair, ProbEnd: -1, Rand: newRand()}); err == nil {
		t.Fatal("expected error for prob end out of range")
	}
	if _, err := NewCaseProcess(CaseConfig{Players: pair}); err == nil {
		t.Fatal("expected error for missing random source")
	}
}

func TestHomogeneousPopulationFixatesImmediately(t *testing.T) {
	p, err := NewCaseProcess(CaseConfig{
		Players: []game.Player{strategy.NewCooperator(), strategy.NewCooperator(), strategy.NewCooperator()},
		Rand:    newRand(),
	})
	if err != nil {
		t.Fatalf("new process: %v", err)
	}

	result, err := p.Step()
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !result.Terminated || result.Reason != TerminationFixation {
		t.Fatalf("expected immediate fixation, got %+v", result)
	}
	if result.Round != 0 {
		t.Fatalf("expected termination at round 0, got %d", result.Round)
	}
	winner, ok := p.WinningStrategyName()
	if !ok || winner != "Cooperator" {
		t.Fatalf("unexpected winner: %q (%v)", winner, ok)
	}
	if p.Len() != 1 {
		t.Fatalf("expected only the initial snapshot, got %d", p.Len())
	}
}

func TestMatchupEnumerationCoversAllPairsOnce(t *testing.T) {
	p, err := NewCaseProcess(CaseConfig{
		Players: []game.Player{
			strategy.NewCooperator(), strategy.NewDefector(),
			strategy.NewTitForTat(), strategy.NewGrudger(),
		},
		Rand: newRand(),
	})
	if err != nil {
		t.Fatalf("new process: %v", err)
	}

	pairs := p.matchupIndices()
	if len(pairs) != 6 {
		t.Fatalf("expected 6 matchups for 4 players, got %d", len(pairs))
	}
	seen := make(map[[2]int]struct{})
	for _, pair := range pairs {
		lo, hi := pair[0], pair[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		key := [2]int{lo, hi}
		if _, dup := seen[key]; dup {
			t.Fatalf("pair %v enumerated twice", key)
		}
		seen[key] = struct{}{}
	}
}

func TestSuppliedTopologiesAreSuperseded(t *testing.T) {
	// A line topology would give only 3 matchups for 4 players; the process
	// always plays on the complete graph regardless.
	line := graph.New([][2]int{{0, 1}, {1, 2}, {2, 3}}, false)
	p, err := NewCaseProcess(CaseConfig{
		Players: []game.Player{
			strategy.NewCooperator(), strategy.NewDefector(),
			strategy.NewTitForTat(), strategy.NewGrudger(),
		},
		InteractionGraph:  line,
		ReproductionGraph: line,
		Rand:              newRand(),
	})
	if err != nil {
		t.Fatalf("new process: %v", err)
	}
	if got := len(p.matchupIndices()); got != 6 {
		t.Fatalf("expected complete-graph matchups, got %d", got)
	}
}

func TestCaseProcessFixation(t *testing.T) {
	p, err := NewCaseProcess(CaseConfig{
		Players: []game.Player{
			strategy.NewCooperator(), strategy.NewDefector(),
			strategy.NewTitForTat(), strategy.NewTitForTat(),
		},
		Turns:        10,
		MaximumRound: 20,
		Rand:         newRand(),
	})
	if err != nil {
		t.Fatalf("new process: %v", err)
	}

	result, err := p.Play(context.Background())
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if result.Reason != TerminationFixation {
		t.Fatalf("expected fixation, got %s", result.Reason)
	}
	if result.Winner != "Tit For Tat" {
		t.Fatalf("expected tit for tat to fixate, got %q", result.Winner)
	}
	// Round 1 removes the cooperator, rounds 2 and 3 remove the defectors.
	if result.Rounds != 3 {
		t.Fatalf("expected 3 rounds, got %d", result.Rounds)
	}
	if len(result.ScoreHistory) != 3 {
		t.Fatalf("expected 3 score vectors, got %d", len(result.ScoreHistory))
	}
	if len(result.Populations) != 4 {
		t.Fatalf("expected 4 snapshots, got %d", len(result.Populations))
	}

	final := result.Populations[len(result.Populations)-1]
	if final["Tit For Tat"] != 4 || len(final) != 1 {
		t.Fatalf("unexpected final population: %v", final)
	}
}

func TestFirstRoundScoresMatchHandComputation(t *testing.T) {
	p, err := NewCaseProcess(CaseConfig{
		Players: []game.Player{
			strategy.NewCooperator(), strategy.NewDefector(),
			strategy.NewTitForTat(), strategy.NewTitForTat(),
		},
		Turns:        10,
		MaximumRound: 20,
		Rand:         newRand(),
	})
	if err != nil {
		t.Fatalf("new process: %v", err)
	}

	result, err := p.Step()
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if result.Terminated {
		t.Fatalf("unexpected termination: %+v", result)
	}

	// Per-turn payoffs over 10-turn matches: the cooperator collects
	// 0 + 3 + 3, the defector 5 + 1.4 + 1.4, each tit for tat 0.9 + 3 + 3.
	want := []float64{6.0, 7.8, 6.9, 6.9}
	const eps = 1e-9
	for i, score := range result.Scores {
		if diff := score - want[i]; diff > eps || diff < -eps {
			t.Fatalf("slot %d: expected score %g, got %g", i, want[i], score)
		}
	}
}

func TestAllEqualScoresCollapseWithoutWinner(t *testing.T) {
	// These three strategies cooperate unconditionally against each other,
	// so every score is identical and selection has nothing to act on.
	p, err := NewCaseProcess(CaseConfig{
		Players: []game.Player{
			strategy.NewCooperator(), strategy.NewTitForTat(), strategy.NewTitFor2Tats(),
		},
		Turns: 5,
		Rand:  newRand(),
	})
	if err != nil {
		t.Fatalf("new process: %v", err)
	}

	result, err := p.Step()
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !result.Terminated || result.Reason != TerminationScoreCollapse {
		t.Fatalf("expected score collapse, got %+v", result)
	}
	if _, ok := p.WinningStrategyName(); ok {
		t.Fatal("expected no winner after collapse")
	}
	// The collapse round still contributes a snapshot.
	if p.Len() != 2 {
		t.Fatalf("expected 2 snapshots, got %d", p.Len())
	}
	if len(p.ScoreHistory()) != 1 {
		t.Fatalf("expected 1 score vector, got %d", len(p.ScoreHistory()))
	}
}

func TestRoundCapStopsIteration(t *testing.T) {
	p, err := NewCaseProcess(CaseConfig{
		Players: []game.Player{
			strategy.NewCooperator(), strategy.NewCooperator(), strategy.NewDefector(),
		},
		Turns:        5,
		MaximumRound: 1,
		Rand:         newRand(),
	})
	if err != nil {
		t.Fatalf("new process: %v", err)
	}

	result, err := p.Play(context.Background())
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if result.Reason != TerminationRoundCap {
		t.Fatalf("expected round cap, got %s", result.Reason)
	}
	if result.Rounds != 1 {
		t.Fatalf("expected 1 round, got %d", result.Rounds)
	}
	if result.Winner != "" {
		t.Fatalf("expected no winner, got %q", result.Winner)
	}
}

func TestReplaceAmountRemovesMultiplePlayers(t *testing.T) {
	p, err := NewCaseProcess(CaseConfig{
		Players: []game.Player{
			strategy.NewCooperator(), strategy.NewCooperator(),
			strategy.NewCooperator(), strategy.NewDefector(),
		},
		Turns:         5,
		ReplaceAmount: 2,
		MaximumRound:  10,
		Rand:          newRand(),
	})
	if err != nil {
		t.Fatalf("new process: %v", err)
	}

	result, err := p.Step()
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if result.Terminated {
		t.Fatalf("unexpected termination: %+v", result)
	}
	// Each replacement unit re-draws the victim against the same frozen
	// score vector, so the second draw may hit the already replaced slot.
	snapshot := p.Populations()[1]
	if snapshot["Defector"] < 2 || snapshot["Defector"]+snapshot["Cooperator"] != 4 {
		t.Fatalf("expected at least one cooperator replaced, got %v", snapshot)
	}
}

func TestPlayHonorsContextCancellation(t *testing.T) {
	p, err := NewCaseProcess(CaseConfig{
		Players: []game.Player{strategy.NewCooperator(), strategy.NewDefector()},
		Rand:    newRand(),
	})
	if err != nil {
		t.Fatalf("new process: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Play(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

func TestResetReplaysFromTheStart(t *testing.T) {
	p, err := NewCaseProcess(CaseConfig{
		Players: []game.Player{
			strategy.NewCooperator(), strategy.NewDefector(),
			strategy.NewTitForTat(), strategy.NewTitForTat(),
		},
		Turns:        10,
		MaximumRound: 20,
		Rand:         newRand(),
	})
	if err != nil {
		t.Fatalf("new process: %v", err)
	}

	first, err := p.Play(context.Background())
	if err != nil {
		t.Fatalf("first play: %v", err)
	}

	p.Reset()
	if p.CurrentRound() != 0 {
		t.Fatalf("expected round counter rewound, got %d", p.CurrentRound())
	}
	if p.Len() != 1 {
		t.Fatalf("expected only the initial snapshot after reset, got %d", p.Len())
	}
	if _, ok := p.WinningStrategyName(); ok {
		t.Fatal("expected winner cleared after reset")
	}

	second, err := p.Play(context.Background())
	if err != nil {
		t.Fatalf("second play: %v", err)
	}
	if second.Winner != first.Winner || second.Rounds != first.Rounds {
		t.Fatalf("expected identical replay, got %+v vs %+v", second, first)
	}
}

func TestParallelScoringMatchesSequential(t *testing.T) {
	build := func(workers int) *CaseProcess {
		p, err := NewCaseProcess(CaseConfig{
			Players: []game.Player{
				strategy.NewCooperator(), strategy.NewDefector(),
				strategy.NewTitForTat(), strategy.NewGrudger(),
				strategy.NewDetective(), strategy.NewWinStayLoseShift(),
			},
			Turns:        20,
			MaximumRound: 30,
			Rand:         rand.New(rand.NewSource(7)),
			Workers:      workers,
		})
		if err != nil {
			t.Fatalf("new process: %v", err)
		}
		return p
	}

	sequential, err := build(1).Play(context.Background())
	if err != nil {
		t.Fatalf("sequential play: %v", err)
	}
	parallel, err := build(4).Play(context.Background())
	if err != nil {
		t.Fatalf("parallel play: %v", err)
	}

	if sequential.Winner != parallel.Winner || sequential.Rounds != parallel.Rounds || sequential.Reason != parallel.Reason {
		t.Fatalf("parallel run diverged: %+v vs %+v", parallel, sequential)
	}
	if len(sequential.ScoreHistory) != len(parallel.ScoreHistory) {
		t.Fatalf("score history lengths differ: %d vs %d", len(sequential.ScoreHistory), len(parallel.ScoreHistory))
	}
	for round := range sequential.ScoreHistory {
		for slot := range sequential.ScoreHistory[round] {
			if sequential.ScoreHistory[round][slot] != parallel.ScoreHistory[round][slot] {
				t.Fatalf("round %d slot %d: %g vs %g", round, slot,
					sequential.ScoreHistory[round][slot], parallel.ScoreHistory[round][slot])
			}
		}
	}
}

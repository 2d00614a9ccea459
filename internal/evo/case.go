// Package evo implements the Case process: an agent-based birth/death
// simulation over a population of strategic players. Each round every player
// plays a match against its topology neighbors, the best scorer is cloned
// over the worst scorers, and the process runs until one strategy takes over
// the whole population or the round limit is reached.
package evo

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/ariefrahman95/Axelrod/internal/game"
	"github.com/ariefrahman95/Axelrod/internal/graph"
)

// TerminationReason tags why a process stopped iterating.
type TerminationReason string

const (
	// TerminationFixation means every slot holds the same strategy.
	TerminationFixation TerminationReason = "fixation"
	// TerminationRoundCap means the configured round limit ran out.
	TerminationRoundCap TerminationReason = "round_cap"
	// TerminationScoreCollapse means the chosen reproducer and victim scored
	// equally, so no selection pressure remains.
	TerminationScoreCollapse TerminationReason = "score_collapse"
)

// Snapshot counts the occurrences of each strategy name in the population.
type Snapshot map[string]int

// StepResult reports the outcome of a single round transition. Terminated
// signals a normal end of the process, never an error.
type StepResult struct {
	Round      int
	Scores     []float64
	Terminated bool
	Reason     TerminationReason
}

// RunResult is the full outcome of a process played to completion.
type RunResult struct {
	Populations  []Snapshot
	ScoreHistory [][]float64
	Reason       TerminationReason
	Winner       string
	Rounds       int
}

const defaultMaximumRound = 10

// CaseConfig configures a Case process. Rand is required: all tie-breaking
// draws go through it so runs are reproducible from the caller's seed.
type CaseConfig struct {
	Players       []game.Player
	Turns         int
	MaximumRound  int
	Noise         float64
	NoiseBias     bool
	ProbEnd       float64
	ReplaceAmount int
	Game          game.Game
	Cache         *game.DeterministicCache
	Rand          *rand.Rand

	// InteractionGraph and ReproductionGraph are accepted but superseded: the
	// process always runs on a complete interaction graph and a complete
	// reproduction graph with self-loops, matching the observed behavior of
	// the original simulator.
	InteractionGraph  *graph.Graph
	ReproductionGraph *graph.Graph

	// Workers > 1 evaluates a round's matches on a worker pool. Match
	// outcomes and tie-breaking stay reproducible: every matchup draws its
	// own derived seed from Rand in deterministic matchup order.
	Workers int
}

// CaseProcess is the population-update state machine. It is not safe for
// concurrent use; all parallelism lives inside a single round's scoring.
type CaseProcess struct {
	turns         int
	maximumRound  int
	noise         float64
	noiseBias     bool
	probEnd       float64
	replaceAmount int
	payoffs       game.Game
	cache         *game.DeterministicCache
	rng           *rand.Rand
	workers       int

	interaction  *graph.Graph
	reproduction *graph.Graph
	locations    []int
	slotByVertex map[int]int

	initialPlayers []game.Player
	players        []game.Player

	currentRound  int
	currentScores []float64
	scoreHistory  [][]float64
	populations   []Snapshot
	winningName   string

	scoreRound func() ([]float64, error)
}

// NewCaseProcess validates the configuration and builds a ready-to-iterate
// process with the initial population snapshot recorded.
func NewCaseProcess(cfg CaseConfig) (*CaseProcess, error) {
	if len(cfg.Players) < 2 {
		return nil, fmt.Errorf("at least 2 players are required, got %d", len(cfg.Players))
	}
	if cfg.ReplaceAmount <= 0 {
		cfg.ReplaceAmount = 1
	}
	if cfg.ReplaceAmount >= len(cfg.Players) {
		return nil, fmt.Errorf("replace amount must be < population size: %d >= %d", cfg.ReplaceAmount, len(cfg.Players))
	}
	if cfg.Noise < 0 || cfg.Noise > 1 {
		return nil, fmt.Errorf("noise must be in [0, 1], got %g", cfg.Noise)
	}
	if cfg.ProbEnd < 0 || cfg.ProbEnd > 1 {
		return nil, fmt.Errorf("prob end must be in [0, 1], got %g", cfg.ProbEnd)
	}
	if cfg.Rand == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if cfg.Turns <= 0 {
		cfg.Turns = game.DefaultTurns
	}
	if cfg.MaximumRound <= 0 {
		cfg.MaximumRound = defaultMaximumRound
	}
	if (cfg.Game == game.Game{}) {
		cfg.Game = game.DefaultGame()
	}
	cache := cfg.Cache
	if cache == nil {
		cache = game.NewDeterministicCache()
	}

	// Supplied topologies are superseded; see CaseConfig.
	interaction := graph.Complete(len(cfg.Players), false)
	reproduction := graph.New(interaction.Edges(), interaction.Directed())
	reproduction.AddSelfLoops()
	if err := checkEqualVertices(interaction, reproduction); err != nil {
		return nil, err
	}

	locations := interaction.Vertices()
	slotByVertex := make(map[int]int, len(locations))
	for slot, vertex := range locations {
		slotByVertex[vertex] = slot
	}

	p := &CaseProcess{
		turns:          cfg.Turns,
		maximumRound:   cfg.MaximumRound,
		noise:          cfg.Noise,
		noiseBias:      cfg.NoiseBias,
		probEnd:        cfg.ProbEnd,
		replaceAmount:  cfg.ReplaceAmount,
		payoffs:        cfg.Game,
		cache:          cache,
		rng:            cfg.Rand,
		workers:        cfg.Workers,
		interaction:    interaction,
		reproduction:   reproduction,
		locations:      locations,
		slotByVertex:   slotByVertex,
		initialPlayers: append([]game.Player(nil), cfg.Players...),
	}
	p.scoreRound = p.scoreAllMatches
	p.setPlayers()
	return p, nil
}

func checkEqualVertices(interaction, reproduction *graph.Graph) error {
	v1 := interaction.Vertices()
	v2 := reproduction.Vertices()
	if len(v1) != len(v2) {
		return fmt.Errorf("topology vertex sets differ: %d != %d", len(v1), len(v2))
	}
	for i := range v1 {
		if v1[i] != v2[i] {
			return fmt.Errorf("topology vertex sets differ at index %d: %d != %d", i, v1[i], v2[i])
		}
	}
	return nil
}

// setPlayers restores the initial players into their slots, resetting each
// one, and rewinds the snapshot history to the initial distribution.
func (p *CaseProcess) setPlayers() {
	p.players = make([]game.Player, 0, len(p.initialPlayers))
	for _, player := range p.initialPlayers {
		player.Reset()
		p.players = append(p.players, player)
	}
	p.populations = []Snapshot{p.populationDistribution()}
}

// Reset rewinds the process so it can be replayed from round zero. The
// random source keeps its state; reseeding is the caller's job.
func (p *CaseProcess) Reset() {
	p.winningName = ""
	p.scoreHistory = nil
	p.currentScores = nil
	p.currentRound = 0
	p.setPlayers()
}

func (p *CaseProcess) populationDistribution() Snapshot {
	distribution := make(Snapshot, len(p.players))
	for _, player := range p.players {
		distribution[player.Name()]++
	}
	return distribution
}

// fixationCheck reports whether every slot holds the same strategy and
// records the winning name when it does.
func (p *CaseProcess) fixationCheck() bool {
	names := make(map[string]struct{}, len(p.players))
	for _, player := range p.players {
		names[player.Name()] = struct{}{}
	}
	if len(names) == 1 {
		p.winningName = p.players[0].Name()
		return true
	}
	return false
}

// matchupIndices enumerates the round's unordered slot pairs in a fixed
// order: vertices ascending, out-neighbors ascending, duplicates skipped.
func (p *CaseProcess) matchupIndices() [][2]int {
	emitted := make(map[[2]int]struct{})
	pairs := make([][2]int, 0)
	for _, source := range p.locations {
		i := p.slotByVertex[source]
		for _, target := range p.interaction.OutVertices(source) {
			j := p.slotByVertex[target]
			if p.players[i] == nil || p.players[j] == nil {
				continue
			}
			if _, ok := emitted[[2]int{i, j}]; ok {
				continue
			}
			if _, ok := emitted[[2]int{j, i}]; ok {
				continue
			}
			emitted[[2]int{i, j}] = struct{}{}
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}

// scoreAllMatches plays every matchup of the round and accumulates per-turn
// scores into a fresh score vector, which is appended to the history.
func (p *CaseProcess) scoreAllMatches() ([]float64, error) {
	pairs := p.matchupIndices()
	scores := make([]float64, len(p.players))

	// Seeds are drawn in matchup order before any match runs so results do
	// not depend on worker interleaving.
	seeds := make([]int64, len(pairs))
	for k := range pairs {
		seeds[k] = p.rng.Int63()
	}

	type outcome struct {
		first  float64
		second float64
	}
	outcomes := make([]outcome, len(pairs))

	playPair := func(k int) error {
		pair := pairs[k]
		match := game.Match{
			First:     p.players[pair[0]].Clone(),
			Second:    p.players[pair[1]].Clone(),
			Turns:     p.turns,
			ProbEnd:   p.probEnd,
			Noise:     p.noise,
			NoiseBias: p.noiseBias,
			Game:      p.payoffs,
			Cache:     p.cache,
			Rand:      rand.New(rand.NewSource(seeds[k])),
		}
		first, second, err := match.Play()
		if err != nil {
			return err
		}
		outcomes[k] = outcome{first: first, second: second}
		return nil
	}

	workerCount := p.workers
	if workerCount > len(pairs) {
		workerCount = len(pairs)
	}
	if workerCount <= 1 {
		for k := range pairs {
			if err := playPair(k); err != nil {
				return nil, err
			}
		}
	} else {
		jobs := make(chan int)
		errs := make(chan error, len(pairs))

		var wg sync.WaitGroup
		wg.Add(workerCount)
		for w := 0; w < workerCount; w++ {
			go func() {
				defer wg.Done()
				for k := range jobs {
					errs <- playPair(k)
				}
			}()
		}
		for k := range pairs {
			jobs <- k
		}
		close(jobs)
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}

	for k, pair := range pairs {
		scores[pair[0]] += outcomes[k].first
		scores[pair[1]] += outcomes[k].second
	}
	p.scoreHistory = append(p.scoreHistory, scores)
	return scores, nil
}

// birth selects the reproducer: a uniform draw among the slots holding the
// maximum score of the current round.
func (p *CaseProcess) birth() (int, float64) {
	return p.extremeSlot(func(score, best float64) bool { return score > best })
}

// death selects the victim: a uniform draw among the slots holding the
// minimum score of the current round.
func (p *CaseProcess) death() (int, float64) {
	return p.extremeSlot(func(score, best float64) bool { return score < best })
}

func (p *CaseProcess) extremeSlot(better func(score, best float64) bool) (int, float64) {
	best := p.currentScores[0]
	for _, score := range p.currentScores[1:] {
		if better(score, best) {
			best = score
		}
	}
	candidates := make([]int, 0, len(p.currentScores))
	for slot, score := range p.currentScores {
		if score == best {
			candidates = append(candidates, slot)
		}
	}
	return candidates[p.rng.Intn(len(candidates))], best
}

// Step performs one round transition. A Terminated result is the normal end
// of the process; errors only report match or configuration failures.
func (p *CaseProcess) Step() (StepResult, error) {
	if p.fixationCheck() {
		return StepResult{Round: p.currentRound, Terminated: true, Reason: TerminationFixation}, nil
	}
	if p.currentRound >= p.maximumRound {
		return StepResult{Round: p.currentRound, Terminated: true, Reason: TerminationRoundCap}, nil
	}

	scores, err := p.scoreRound()
	if err != nil {
		return StepResult{}, err
	}
	p.currentScores = scores

	// One birth per round; deaths are re-drawn per replacement unit against
	// the same frozen score vector.
	birthSlot, birthScore := p.birth()
	collapsed := false
	for unit := 0; unit < p.replaceAmount; unit++ {
		deathSlot, deathScore := p.death()
		if deathScore == birthScore {
			collapsed = true
			break
		}
		p.players[deathSlot] = p.players[birthSlot].Clone()
	}

	p.populations = append(p.populations, p.populationDistribution())
	if collapsed {
		return StepResult{Round: p.currentRound, Scores: scores, Terminated: true, Reason: TerminationScoreCollapse}, nil
	}
	// Record fixation eagerly so the winner is known before the next step.
	p.fixationCheck()
	round := p.currentRound
	p.currentRound++
	return StepResult{Round: round, Scores: scores}, nil
}

// Play iterates the process to completion, checking ctx before every round.
func (p *CaseProcess) Play(ctx context.Context) (RunResult, error) {
	for {
		if err := ctx.Err(); err != nil {
			return RunResult{}, err
		}
		result, err := p.Step()
		if err != nil {
			return RunResult{}, err
		}
		if result.Terminated {
			return RunResult{
				Populations:  p.Populations(),
				ScoreHistory: p.ScoreHistory(),
				Reason:       result.Reason,
				Winner:       p.winningName,
				Rounds:       p.currentRound,
			}, nil
		}
	}
}

// Len is the number of recorded population snapshots: completed rounds plus
// one for the initial population.
func (p *CaseProcess) Len() int {
	return len(p.populations)
}

func (p *CaseProcess) CurrentRound() int {
	return p.currentRound
}

// WinningStrategyName returns the fixated strategy, if fixation occurred.
func (p *CaseProcess) WinningStrategyName() (string, bool) {
	return p.winningName, p.winningName != ""
}

// Populations returns a copy of the snapshot history.
func (p *CaseProcess) Populations() []Snapshot {
	out := make([]Snapshot, 0, len(p.populations))
	for _, snapshot := range p.populations {
		copied := make(Snapshot, len(snapshot))
		for name, count := range snapshot {
			copied[name] = count
		}
		out = append(out, copied)
	}
	return out
}

// ScoreHistory returns a copy of the per-round score vectors.
func (p *CaseProcess) ScoreHistory() [][]float64 {
	out := make([][]float64, 0, len(p.scoreHistory))
	for _, scores := range p.scoreHistory {
		out = append(out, append([]float64(nil), scores...))
	}
	return out
}

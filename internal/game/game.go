package game

import "fmt"

// Game holds the payoff matrix for a single turn. R is the reward for mutual
// cooperation, P the punishment for mutual defection, S the sucker payoff and
// T the temptation to defect.
type Game struct {
	R float64 `json:"r"`
	P float64 `json:"p"`
	S float64 `json:"s"`
	T float64 `json:"t"`
}

// DefaultGame is the conventional prisoner's dilemma matrix.
func DefaultGame() Game {
	return Game{R: 3, P: 1, S: 0, T: 5}
}

// Score returns the per-turn payoffs for the two given actions.
func (g Game) Score(first, second Action) (float64, float64) {
	switch {
	case first == Cooperate && second == Cooperate:
		return g.R, g.R
	case first == Defect && second == Defect:
		return g.P, g.P
	case first == Cooperate && second == Defect:
		return g.S, g.T
	default:
		return g.T, g.S
	}
}

// Fingerprint identifies the matrix for cache keying.
func (g Game) Fingerprint() string {
	return fmt.Sprintf("r%g_p%g_s%g_t%g", g.R, g.P, g.S, g.T)
}

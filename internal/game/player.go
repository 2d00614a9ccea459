package game

// Player is a strategic agent in repeated pairwise matches. A player keeps its
// own move history for the current match; the match engine records the noisy
// action actually observed by the opponent, not the intended one.
type Player interface {
	Name() string
	// Play decides the next action given the opponent's visible state.
	Play(opponent Player) Action
	// History returns the actions recorded so far in the current match.
	History() []Action
	Record(a Action)
	// Reset clears all internal match state back to its initial value.
	Reset()
	// Clone returns an independent copy with empty history. The clone never
	// aliases mutable state with its source.
	Clone() Player
}

// StochasticPlayer marks players whose decisions draw on randomness; matches
// against them are never cached.
type StochasticPlayer interface {
	Player
	Stochastic() bool
}

func isStochastic(p Player) bool {
	sp, ok := p.(StochasticPlayer)
	return ok && sp.Stochastic()
}

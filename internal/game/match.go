package game

import (
	"fmt"
	"math/rand"
)

// DefaultTurns is the match length used when a caller does not specify one.
const DefaultTurns = 200

// Match plays two players against each other for up to Turns turns and
// reports their final scores normalized per turn actually played.
//
// With ProbEnd > 0 each turn ends the match with that probability. With
// Noise > 0 each player's chosen action is flipped with that probability
// before being recorded; NoiseBias restricts flips to cooperate->defect.
type Match struct {
	First     Player
	Second    Player
	Turns     int
	ProbEnd   float64
	Noise     float64
	NoiseBias bool
	Game      Game
	Cache     *DeterministicCache
	Rand      *rand.Rand
}

// Play runs the match. Both players are reset before the first turn. The
// cache is consulted and filled only for fully deterministic matches.
func (m Match) Play() (float64, float64, error) {
	if m.First == nil || m.Second == nil {
		return 0, 0, fmt.Errorf("match requires two players")
	}
	if m.Turns <= 0 {
		return 0, 0, fmt.Errorf("turns must be > 0, got %d", m.Turns)
	}
	if m.Noise < 0 || m.Noise > 1 {
		return 0, 0, fmt.Errorf("noise must be in [0, 1], got %g", m.Noise)
	}
	if m.ProbEnd < 0 || m.ProbEnd > 1 {
		return 0, 0, fmt.Errorf("prob end must be in [0, 1], got %g", m.ProbEnd)
	}
	stochastic := m.Noise > 0 || m.ProbEnd > 0
	if stochastic && m.Rand == nil {
		return 0, 0, fmt.Errorf("random source is required for noisy or stochastically ending matches")
	}

	cacheable := !stochastic && !isStochastic(m.First) && !isStochastic(m.Second) && m.Cache != nil
	if cacheable {
		if scores, ok := m.Cache.Get(m.First.Name(), m.Second.Name(), m.Turns, m.Game); ok {
			return scores[0], scores[1], nil
		}
	}

	m.First.Reset()
	m.Second.Reset()

	var totalFirst, totalSecond float64
	played := 0
	for turn := 0; turn < m.Turns; turn++ {
		actionFirst := m.flip(m.First.Play(m.Second))
		actionSecond := m.flip(m.Second.Play(m.First))
		m.First.Record(actionFirst)
		m.Second.Record(actionSecond)

		scoreFirst, scoreSecond := m.Game.Score(actionFirst, actionSecond)
		totalFirst += scoreFirst
		totalSecond += scoreSecond
		played++

		if m.ProbEnd > 0 && m.Rand.Float64() < m.ProbEnd {
			break
		}
	}

	perTurnFirst := totalFirst / float64(played)
	perTurnSecond := totalSecond / float64(played)
	if cacheable {
		m.Cache.Put(m.First.Name(), m.Second.Name(), m.Turns, m.Game, [2]float64{perTurnFirst, perTurnSecond})
	}
	return perTurnFirst, perTurnSecond, nil
}

func (m Match) flip(a Action) Action {
	if m.Noise <= 0 {
		return a
	}
	if m.NoiseBias && a != Cooperate {
		return a
	}
	if m.Rand.Float64() < m.Noise {
		return Flip(a)
	}
	return a
}

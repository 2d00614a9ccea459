package strategy

import (
	"math/rand"

	"github.com/ariefrahman95/Axelrod/internal/game"
)

// Cooperator always cooperates.
type Cooperator struct{ base }

func NewCooperator() *Cooperator {
	return &Cooperator{base{name: "Cooperator"}}
}

func (c *Cooperator) Play(_ game.Player) game.Action {
	return game.Cooperate
}

func (c *Cooperator) Clone() game.Player {
	return NewCooperator()
}

// Defector always defects.
type Defector struct{ base }

func NewDefector() *Defector {
	return &Defector{base{name: "Defector"}}
}

func (d *Defector) Play(_ game.Player) game.Action {
	return game.Defect
}

func (d *Defector) Clone() game.Player {
	return NewDefector()
}

// TitForTat cooperates first, then repeats the opponent's previous action.
type TitForTat struct{ base }

func NewTitForTat() *TitForTat {
	return &TitForTat{base{name: "Tit For Tat"}}
}

func (t *TitForTat) Play(opponent game.Player) game.Action {
	last, ok := lastAction(opponent.History())
	if !ok {
		return game.Cooperate
	}
	return last
}

func (t *TitForTat) Clone() game.Player {
	return NewTitForTat()
}

// TitFor2Tats defects only after two consecutive opponent defections.
type TitFor2Tats struct{ base }

func NewTitFor2Tats() *TitFor2Tats {
	return &TitFor2Tats{base{name: "Tit For 2 Tats"}}
}

func (t *TitFor2Tats) Play(opponent game.Player) game.Action {
	history := opponent.History()
	if len(history) >= 2 && history[len(history)-1] == game.Defect && history[len(history)-2] == game.Defect {
		return game.Defect
	}
	return game.Cooperate
}

func (t *TitFor2Tats) Clone() game.Player {
	return NewTitFor2Tats()
}

// Grudger cooperates until the opponent defects once, then defects forever.
type Grudger struct{ base }

func NewGrudger() *Grudger {
	return &Grudger{base{name: "Grudger"}}
}

func (g *Grudger) Play(opponent game.Player) game.Action {
	if defections(opponent.History()) > 0 {
		return game.Defect
	}
	return game.Cooperate
}

func (g *Grudger) Clone() game.Player {
	return NewGrudger()
}

// WinStayLoseShift cooperates first; afterwards it repeats its own previous
// action when the opponent cooperated and switches when the opponent
// defected.
type WinStayLoseShift struct{ base }

func NewWinStayLoseShift() *WinStayLoseShift {
	return &WinStayLoseShift{base{name: "Win-Stay Lose-Shift"}}
}

func (w *WinStayLoseShift) Play(opponent game.Player) game.Action {
	own, ok := lastAction(w.History())
	if !ok {
		return game.Cooperate
	}
	opp, _ := lastAction(opponent.History())
	if opp == game.Cooperate {
		return own
	}
	return game.Flip(own)
}

func (w *WinStayLoseShift) Clone() game.Player {
	return NewWinStayLoseShift()
}

// Detective opens with cooperate, defect, cooperate, cooperate. From the
// fifth turn on it plays tit for tat if the opponent has ever retaliated,
// otherwise it exploits the opponent by defecting.
type Detective struct{ base }

func NewDetective() *Detective {
	return &Detective{base{name: "Detective"}}
}

func (d *Detective) Play(opponent game.Player) game.Action {
	switch len(d.History()) {
	case 0, 2, 3:
		return game.Cooperate
	case 1:
		return game.Defect
	}
	history := opponent.History()
	if defections(history) > 0 {
		if last, ok := lastAction(history); ok && last == game.Defect {
			return game.Defect
		}
		return game.Cooperate
	}
	return game.Defect
}

func (d *Detective) Clone() game.Player {
	return NewDetective()
}

// Random cooperates with probability 0.5 on every turn, drawing from a
// private source so runs stay reproducible. Reset rewinds the source to its
// seed; clones start from the same seed with empty history.
type Random struct {
	base
	seed int64
	rng  *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{
		base: base{name: "Random"},
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (r *Random) Play(_ game.Player) game.Action {
	if r.rng.Float64() < 0.5 {
		return game.Cooperate
	}
	return game.Defect
}

func (r *Random) Reset() {
	r.base.Reset()
	r.rng = rand.New(rand.NewSource(r.seed))
}

func (r *Random) Clone() game.Player {
	return NewRandom(r.seed)
}

func (r *Random) Stochastic() bool {
	return true
}

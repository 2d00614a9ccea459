// Package strategy provides the built-in player roster for evolutionary
// Case simulations. Every strategy implements game.Player; decisions consult
// only the two players' visible histories plus any internal state that a
// reset restores.
package strategy

import "github.com/ariefrahman95/Axelrod/internal/game"

type base struct {
	name    string
	history []game.Action
}

func (b *base) Name() string {
	return b.name
}

func (b *base) History() []game.Action {
	return b.history
}

func (b *base) Record(a game.Action) {
	b.history = append(b.history, a)
}

func (b *base) Reset() {
	b.history = nil
}

func defections(history []game.Action) int {
	count := 0
	for _, a := range history {
		if a == game.Defect {
			count++
		}
	}
	return count
}

func lastAction(history []game.Action) (game.Action, bool) {
	if len(history) == 0 {
		return game.Cooperate, false
	}
	return history[len(history)-1], true
}

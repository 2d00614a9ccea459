package game

// Action is a single move in the iterated prisoner's dilemma.
type Action int

const (
	Cooperate Action = iota
	Defect
)

func (a Action) String() string {
	switch a {
	case Cooperate:
		return "C"
	case Defect:
		return "D"
	default:
		return "?"
	}
}

// Flip returns the opposite action.
func Flip(a Action) Action {
	if a == Cooperate {
		return Defect
	}
	return Cooperate
}

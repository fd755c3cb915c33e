package game

import "fmt"

// Cell is the content of one board intersection.
type Cell int8

const (
	Empty Cell = iota
	PlayerA
	PlayerB
)

// Terminal sentinels. Every heuristic value produced by the evaluators lies
// in [Loss, Win].
const (
	Win  = 1_000_000.0
	Loss = -Win
)

// Other returns the opposing player. Empty has no opponent.
func (c Cell) Other() Cell {
	switch c {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	}
	return Empty
}

// IsPlayer reports whether c is PlayerA or PlayerB.
func (c Cell) IsPlayer() bool {
	return c == PlayerA || c == PlayerB
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "."
	case PlayerA:
		return "1"
	case PlayerB:
		return "2"
	}
	return fmt.Sprintf("Cell(%d)", int8(c))
}

// Clamp bounds a score to the terminal sentinels.
func Clamp(score float64) float64 {
	if score > Win {
		return Win
	}
	if score < Loss {
		return Loss
	}
	return score
}

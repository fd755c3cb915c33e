package game

import "fmt"

// Move is a placement at (Row, Col).
type Move struct {
	Row int
	Col int
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// Axis is one of the four lines through a cell. Step points "left"; the
// opposite side is reached with the negated step.
type Axis struct {
	DR int
	DC int
}

// Axes lists row, column, forward diagonal and backward diagonal.
var Axes = [4]Axis{
	{DR: 0, DC: -1},
	{DR: -1, DC: 0},
	{DR: -1, DC: 1},
	{DR: -1, DC: -1},
}

// Directions are the eight principal directions around a cell.
var Directions = [8]Axis{
	{DR: 0, DC: -1},
	{DR: 0, DC: 1},
	{DR: -1, DC: 0},
	{DR: 1, DC: 0},
	{DR: -1, DC: 1},
	{DR: 1, DC: -1},
	{DR: -1, DC: -1},
	{DR: 1, DC: 1},
}

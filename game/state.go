package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadBoard = errors.New("malformed board")

// Board is a square grid of cells. It is mutated in place by the search;
// callers that need a private copy use Copy.
type Board struct {
	size  int
	cells []Cell
}

// NewBoard returns an empty size x size board.
func NewBoard(size int) *Board {
	if size <= 0 {
		panic(fmt.Sprintf("invalid board size %d", size))
	}
	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}
}

// FromRows builds a board from a square grid of cells.
func FromRows(rows [][]Cell) (*Board, error) {
	size := len(rows)
	if size == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadBoard)
	}
	b := NewBoard(size)
	for r, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadBoard, r, len(row), size)
		}
		for c, cell := range row {
			if cell != Empty && !cell.IsPlayer() {
				return nil, fmt.Errorf("%w: invalid cell %d at (%d,%d)", ErrBadBoard, cell, r, c)
			}
			b.cells[r*size+c] = cell
		}
	}
	return b, nil
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) InBounds(r, c int) bool {
	return r >= 0 && r < b.size && c >= 0 && c < b.size
}

func (b *Board) At(r, c int) Cell {
	return b.cells[r*b.size+c]
}

func (b *Board) Set(r, c int, cell Cell) {
	b.cells[r*b.size+c] = cell
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// Equal reports whether both boards have the same size and contents.
func (b *Board) Equal(other *Board) bool {
	if b.size != other.size {
		return false
	}
	for i, cell := range b.cells {
		if other.cells[i] != cell {
			return false
		}
	}
	return true
}

// Count returns how many cells hold the given value.
func (b *Board) Count(cell Cell) int {
	n := 0
	for _, v := range b.cells {
		if v == cell {
			n++
		}
	}
	return n
}

// Full reports whether no empty cell remains.
func (b *Board) Full() bool {
	return b.Count(Empty) == 0
}

// HasOccupiedNeighbour reports whether any of the eight cells around (r, c)
// holds a piece.
func (b *Board) HasOccupiedNeighbour(r, c int) bool {
	for _, d := range Directions {
		rr, cc := r+d.DR, c+d.DC
		if b.InBounds(rr, cc) && b.At(rr, cc) != Empty {
			return true
		}
	}
	return false
}

// String renders the board one row per line, '.' for empty cells and the
// player number otherwise.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(b.size * (b.size + 1))
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			sb.WriteString(b.At(r, c).String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard reads the format written by String. Blank lines and spaces are
// ignored; '.', '0', '-' and '_' are empty cells.
func ParseBoard(s string) (*Board, error) {
	var rows [][]Cell
	for i, line := range strings.Split(s, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if line == "" {
			continue
		}
		row := make([]Cell, 0, len(line))
		for j, ch := range line {
			switch ch {
			case '.', '0', '-', '_':
				row = append(row, Empty)
			case '1', 'x', 'X':
				row = append(row, PlayerA)
			case '2', 'o', 'O':
				row = append(row, PlayerB)
			default:
				return nil, fmt.Errorf("%w: unexpected %q at line %d column %d", ErrBadBoard, ch, i+1, j+1)
			}
		}
		rows = append(rows, row)
	}
	return FromRows(rows)
}

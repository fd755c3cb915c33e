package eval

import (
	"math"

	"gomoku/game"
)

const (
	PieceBase  = 0.1
	PieceDecay = 0.8
	PieceMax   = 30
)

// Run bonuses indexed by run length, saturating at five or more.
var (
	OwnRun   = [...]float64{0, 1, 3, 6, 10, game.Win}
	OtherRun = [...]float64{0, -1, -3, -6, -10, game.Loss}
)

func ownRun(n int) float64 {
	return OwnRun[min(n, len(OwnRun)-1)]
}

func otherRun(n int) float64 {
	return OtherRun[min(n, len(OtherRun)-1)]
}

// BreadthFirst visits every cell reachable from (r, c) through
// 8-neighbourhoods, passing the BFS layer of each cell to visit.
func BreadthFirst(size, r, c int, visit func(r, c, layer int)) {
	visited := make([]bool, size*size)
	visited[r*size+c] = true
	frontier := []game.Move{{Row: r, Col: c}}
	for layer := 0; len(frontier) > 0; layer++ {
		var next []game.Move
		for _, m := range frontier {
			visit(m.Row, m.Col, layer)
			for _, d := range neighbourOrder {
				rr, cc := m.Row+d.DR, m.Col+d.DC
				if rr < 0 || rr >= size || cc < 0 || cc >= size || visited[rr*size+cc] {
					continue
				}
				visited[rr*size+cc] = true
				next = append(next, game.Move{Row: rr, Col: cc})
			}
		}
		frontier = next
	}
}

// N, NW, W, SW, S, SE, E, NE
var neighbourOrder = [8]game.Axis{
	{DR: -1, DC: 0},
	{DR: -1, DC: -1},
	{DR: 0, DC: -1},
	{DR: 1, DC: -1},
	{DR: 1, DC: 0},
	{DR: 1, DC: 1},
	{DR: 0, DC: 1},
	{DR: -1, DC: 1},
}

// Proximity scores a whole board from one player's side: pieces near the
// centre earn a small decaying bonus, and every run of consecutive pieces
// along a row, column or diagonal earns a superlinear bonus (own) or
// penalty (opponent).
type Proximity struct {
	board  *game.Board
	player game.Cell
	other  game.Cell
	centre []float64
}

func NewProximity(board *game.Board, player game.Cell) *Proximity {
	size := board.Size()
	centre := make([]float64, size*size)
	mid := size / 2
	BreadthFirst(size, mid, mid, func(r, c, layer int) {
		centre[r*size+c] = PieceBase * math.Pow(PieceDecay, float64(min(layer, PieceMax-1)))
	})
	return &Proximity{
		board:  board,
		player: player,
		other:  player.Other(),
		centre: centre,
	}
}

// CentreBonus is the static bonus of a piece at (r, c).
func (p *Proximity) CentreBonus(r, c int) float64 {
	return p.centre[r*p.board.Size()+c]
}

// Evaluate scores the board, clamped to [game.Loss, game.Win].
func (p *Proximity) Evaluate() float64 {
	size := p.board.Size()
	score := 0.0
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			switch p.board.At(r, c) {
			case p.player:
				score += p.centre[r*size+c]
			case p.other:
				score -= p.centre[r*size+c]
			}
		}
	}

	var own, other int
	flush := func() {
		score += ownRun(own) + otherRun(other)
		own, other = 0, 0
	}
	line := func(r, c, dr, dc int) {
		for ; r >= 0 && r < size && c >= 0 && c < size; r, c = r+dr, c+dc {
			switch p.board.At(r, c) {
			case p.player:
				own++
				score += otherRun(other)
				other = 0
			case p.other:
				other++
				score += ownRun(own)
				own = 0
			default:
				flush()
			}
		}
		flush()
	}

	for i := 0; i < size; i++ {
		line(i, 0, 0, 1) // row
		line(0, i, 1, 0) // column
	}
	// forward diagonals run up and to the right
	for r := 0; r < size; r++ {
		line(r, 0, -1, 1)
	}
	for c := 1; c < size; c++ {
		line(size-1, c, -1, 1)
	}
	// backward diagonals run down and to the right
	for c := 0; c < size; c++ {
		line(0, c, 1, 1)
	}
	for r := 1; r < size; r++ {
		line(r, 0, 1, 1)
	}
	return game.Clamp(score)
}

// Package agent keeps every empty cell of a board ranked by how good it
// would be for one player to play there, and updates the ranking
// incrementally as moves are made and taken back.
package agent

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"gomoku/eval"
	"gomoku/game"
	"gomoku/scoreindex"
)

// UpdateDistance is how far along each of the eight directions a placement
// can change other cells' scores.
const UpdateDistance = 4

// Change records the key a cell held before a move touched it.
type Change struct {
	Row int
	Col int
	Key float64
}

// Agent scores moves for one player over a shared board. The board is read,
// never written; whoever places a piece must call ApplyMove afterwards.
type Agent struct {
	board       *game.Board
	player      game.Cell
	otherPlayer game.Cell
	evaluator   *eval.LinkBlock
	scores      *scoreindex.Index
	locations   []scoreindex.Handle
}

// New scores every cell of board for player. Occupied cells are scored and
// then erased, so their node still holds a key for board evaluation.
func New(board *game.Board, player game.Cell) *Agent {
	if !player.IsPlayer() {
		panic(fmt.Sprintf("agent: %v is not a player", player))
	}
	size := board.Size()
	a := &Agent{
		board:       board,
		player:      player,
		otherPlayer: player.Other(),
		evaluator:   eval.NewLinkBlock(board, player),
		scores:      scoreindex.New(size * size),
		locations:   make([]scoreindex.Handle, size*size),
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			h := a.scores.Insert(r, c, a.evaluator.EvaluateMove(r, c))
			a.locations[r*size+c] = h
			if board.At(r, c) != game.Empty {
				a.scores.Erase(h)
			}
		}
	}
	return a
}

func (a *Agent) Player() game.Cell {
	return a.player
}

func (a *Agent) OtherPlayer() game.Cell {
	return a.otherPlayer
}

// Len is the number of cells still available.
func (a *Agent) Len() int {
	return a.scores.Len()
}

func (a *Agent) handle(r, c int) scoreindex.Handle {
	return a.locations[r*a.board.Size()+c]
}

// Key is the current score of (r, c). For an occupied cell it is the score
// the cell had when it was taken.
func (a *Agent) Key(r, c int) float64 {
	return a.scores.Node(a.handle(r, c)).Key
}

// Available reports whether (r, c) is still in the ranking.
func (a *Agent) Available(r, c int) bool {
	return a.scores.Live(a.handle(r, c))
}

// EvaluateMove scores (r, c) against the current board.
func (a *Agent) EvaluateMove(r, c int) float64 {
	return a.evaluator.EvaluateMove(r, c)
}

// Best yields available cells from best to worst, ties in row then column
// order.
func (a *Agent) Best() iter.Seq[scoreindex.Entry] {
	return a.scores.Descend()
}

// Worst yields available cells from worst to best.
func (a *Agent) Worst() iter.Seq[scoreindex.Entry] {
	return a.scores.Ascend()
}

// ApplyMove updates the ranking after a piece was placed at (r, c). The
// returned log restores the previous ranking through RevertMove; its first
// entry is always (r, c) itself. Applying a move to a cell that is no longer
// available is a programming error.
func (a *Agent) ApplyMove(r, c int) []Change {
	h := a.handle(r, c)
	if !a.scores.Live(h) {
		panic(fmt.Sprintf("agent: move (%d,%d) applied to an unavailable cell", r, c))
	}
	log := make([]Change, 0, 1+len(game.Directions)*UpdateDistance)
	log = append(log, Change{Row: r, Col: c, Key: a.scores.Node(h).Key})
	a.scores.Erase(h)

	for _, d := range game.Directions {
		for moved := 1; moved <= UpdateDistance; moved++ {
			rr, cc := r+d.DR*moved, c+d.DC*moved
			if !a.board.InBounds(rr, cc) {
				break
			}
			log = append(log, a.update(rr, cc))
		}
	}
	return log
}

func (a *Agent) update(r, c int) Change {
	h := a.handle(r, c)
	old := a.scores.Node(h).Key
	if a.board.At(r, c) == game.Empty {
		a.scores.ChangeKey(h, a.evaluator.EvaluateMove(r, c))
	}
	return Change{Row: r, Col: c, Key: old}
}

// RevertMove undoes ApplyMove. The board must already be back to the state
// it was in before the move.
func (a *Agent) RevertMove(log []Change) {
	for i, ch := range log {
		h := a.handle(ch.Row, ch.Col)
		// taken cells stay out of the ranking and only get their key back
		a.scores.ChangeKey(h, ch.Key)
		if i == 0 {
			a.scores.Reinsert(h)
		}
	}
}

// Scores returns the current key of every cell, row by row.
func (a *Agent) Scores() [][]float64 {
	size := a.board.Size()
	out := make([][]float64, size)
	for r := range out {
		out[r] = make([]float64, size)
		for c := range out[r] {
			out[r][c] = a.Key(r, c)
		}
	}
	return out
}

// FormatScores renders a score grid with tab separated columns, "." for
// cells that are not available.
func (a *Agent) FormatScores(precision int) string {
	var sb strings.Builder
	size := a.board.Size()
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if c > 0 {
				sb.WriteByte('\t')
			}
			if !a.Available(r, c) {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(strconv.FormatFloat(a.Key(r, c), 'g', precision, 64))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Dispose releases the ranking. The agent must not be used afterwards.
func (a *Agent) Dispose() {
	a.scores.Clear()
	a.locations = nil
	a.evaluator = nil
}

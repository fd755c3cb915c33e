package session

import (
	"gomoku/eval"
	"gomoku/game"
	"gomoku/searcher"
)

// proximityVisitor searches the cells around the centre in BFS order and
// scores whole boards with eval.Proximity.
type proximityVisitor struct {
	board      *game.Board
	player     game.Cell
	other      game.Cell
	evaluator  *eval.Proximity
	candidates []searcher.Candidate
}

// The candidate list is fixed when the session starts; cells taken later are
// skipped by the search.
func newProximityVisitor(board *game.Board, player game.Cell, radius int) *proximityVisitor {
	v := &proximityVisitor{
		board:     board,
		player:    player,
		other:     player.Other(),
		evaluator: eval.NewProximity(board, player),
	}
	mid := board.Size() / 2
	eval.BreadthFirst(board.Size(), mid, mid, func(r, c, layer int) {
		if radius > 0 && layer > radius {
			return
		}
		if board.At(r, c) == game.Empty {
			v.candidates = append(v.candidates, searcher.Candidate{
				Move: game.Move{Row: r, Col: c},
				Key:  v.evaluator.CentreBonus(r, c),
			})
		}
	})
	return v
}

func (v *proximityVisitor) OrderedCandidates(bool) []searcher.Candidate {
	return v.candidates
}

func (v *proximityVisitor) Occupied(move game.Move) bool {
	return v.board.At(move.Row, move.Col) != game.Empty
}

// EarlyReject skips cells with no piece around them below the root. This
// narrows the search to contact moves and can miss quiet ones.
func (v *proximityVisitor) EarlyReject(move game.Move, ply int) bool {
	if ply == 0 {
		return false
	}
	return !v.board.HasOccupiedNeighbour(move.Row, move.Col)
}

func (v *proximityVisitor) IsTerminal(candidate searcher.Candidate, maximizing bool) bool {
	return v.board.CompletesFive(candidate.Row, candidate.Col, v.mover(maximizing))
}

func (v *proximityVisitor) mover(maximizing bool) game.Cell {
	if maximizing {
		return v.player
	}
	return v.other
}

func (v *proximityVisitor) ApplyMove(move game.Move, maximizing bool) {
	v.board.Set(move.Row, move.Col, v.mover(maximizing))
}

func (v *proximityVisitor) RevertMove(move game.Move) {
	v.board.Set(move.Row, move.Col, game.Empty)
}

func (v *proximityVisitor) Evaluate() float64 {
	return v.evaluator.Evaluate()
}

// Real moves only change the board, which the evaluator reads directly.
func (v *proximityVisitor) place(int, int) {}

func (v *proximityVisitor) dispose() {
	v.candidates = nil
	v.evaluator = nil
}

package session

import (
	"fmt"

	"gomoku/agent"
	"gomoku/game"
	"gomoku/searcher"
)

type undo struct {
	move  game.Move
	own   []agent.Change
	other []agent.Change
}

// linkBlockVisitor orders moves by the incremental agent rankings. The own
// agent ranks moves for the maximizing side, the other agent for the
// minimizing side.
type linkBlockVisitor struct {
	board *game.Board
	own   *agent.Agent
	other *agent.Agent
	undo  []undo
}

func newLinkBlockVisitor(board *game.Board, player game.Cell) *linkBlockVisitor {
	return &linkBlockVisitor{
		board: board,
		own:   agent.New(board, player),
		other: agent.New(board, player.Other()),
	}
}

func (v *linkBlockVisitor) OrderedCandidates(maximizing bool) []searcher.Candidate {
	a := v.other
	if maximizing {
		a = v.own
	}
	out := make([]searcher.Candidate, 0, a.Len())
	for e := range a.Best() {
		out = append(out, searcher.Candidate{Move: game.Move{Row: e.Row, Col: e.Col}, Key: e.Key})
	}
	return out
}

func (v *linkBlockVisitor) Occupied(move game.Move) bool {
	return v.board.At(move.Row, move.Col) != game.Empty
}

func (v *linkBlockVisitor) EarlyReject(game.Move, int) bool {
	return false
}

// A candidate scoring exactly Win completes five for the side ranking it.
func (v *linkBlockVisitor) IsTerminal(candidate searcher.Candidate, _ bool) bool {
	return candidate.Key == game.Win
}

func (v *linkBlockVisitor) ApplyMove(move game.Move, maximizing bool) {
	piece := v.other.Player()
	if maximizing {
		piece = v.own.Player()
	}
	v.board.Set(move.Row, move.Col, piece)
	v.undo = append(v.undo, undo{
		move:  move,
		own:   v.own.ApplyMove(move.Row, move.Col),
		other: v.other.ApplyMove(move.Row, move.Col),
	})
}

func (v *linkBlockVisitor) RevertMove(move game.Move) {
	last := v.undo[len(v.undo)-1]
	if last.move != move {
		panic(fmt.Sprintf("session: reverting %v but the last move applied was %v", move, last.move))
	}
	v.undo = v.undo[:len(v.undo)-1]
	v.board.Set(move.Row, move.Col, game.Empty)
	v.own.RevertMove(last.own)
	v.other.RevertMove(last.other)
}

// Evaluate credits each piece with the score its cell had when it was taken,
// from its owner's point of view.
func (v *linkBlockVisitor) Evaluate() float64 {
	size := v.board.Size()
	score := 0.0
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			switch v.board.At(r, c) {
			case v.own.Player():
				score += v.own.Key(r, c)
			case v.other.Player():
				score -= v.other.Key(r, c)
			}
		}
	}
	return game.Clamp(score)
}

func (v *linkBlockVisitor) place(r, c int) {
	v.own.ApplyMove(r, c)
	v.other.ApplyMove(r, c)
}

func (v *linkBlockVisitor) dispose() {
	v.own.Dispose()
	v.other.Dispose()
	v.undo = nil
}

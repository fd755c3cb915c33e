package searcher

import (
	"gomoku/game"
)

const (
	WIN  = game.Win
	LOSS = game.Loss
)

// Candidate is a move offered for exploration together with the score that
// ranked it.
type Candidate struct {
	game.Move
	Key float64
}

// Visitor supplies everything game specific to the search: move ordering,
// move application and position scoring. The search itself holds no board
// state; it relies on every ApplyMove being paired with a RevertMove.
type Visitor interface {
	// OrderedCandidates lists moves best first for the side to move.
	OrderedCandidates(maximizing bool) []Candidate
	// Occupied reports whether the move's cell is already taken.
	Occupied(move game.Move) bool
	// EarlyReject may veto a candidate before it is explored. ply is 0 at
	// the root.
	EarlyReject(move game.Move, ply int) bool
	// IsTerminal reports whether the candidate wins outright for the mover.
	IsTerminal(candidate Candidate, maximizing bool) bool
	ApplyMove(move game.Move, maximizing bool)
	// RevertMove undoes the most recent ApplyMove of move.
	RevertMove(move game.Move)
	// Evaluate scores the current position for the maximizing side.
	Evaluate() float64
}

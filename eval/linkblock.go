// Package eval scores gomoku positions.
//
// LinkBlock rates a single empty cell for one player by scanning the four
// axes through it. Proximity rates a whole board.
package eval

import (
	"fmt"

	"gomoku/game"
)

// Ranked situation scores. Link counts the mover's own pieces joined by the
// placement, block counts opponent pieces it interrupts.
const (
	BlockMoreThan4 = 40.0
	Block4Both     = 30.0
	Block4One      = 25.0
	Link4Both      = 20.0
	Block3Both     = 10.0
	Link3Both      = 8.0
	Block3One      = 7.0
	Link4One       = 5.0
	Link3One       = 3.0
	Block2Both     = 2.0
	Block2One      = 1.0

	LinkUnit  = 2.0
	BlockUnit = 1.0

	SpaceBase  = 0.1
	SpaceDecay = 0.8
	SpaceMax   = 30
)

const (
	linkMax  = 4
	blockMin = 5
	blockMax = 9
)

const (
	left  = 0
	right = 1
)

// Space[d] is the bonus for d empty cells beyond a run.
var Space = spaceTable()

func spaceTable() [SpaceMax + 1]float64 {
	var t [SpaceMax + 1]float64
	unit := SpaceBase
	for d := 1; d <= SpaceMax; d++ {
		t[d] = t[d-1] + unit
		unit *= SpaceDecay
	}
	return t
}

func spaceScore(space [2]int) float64 {
	return Space[min(space[left], SpaceMax)] + Space[min(space[right], SpaceMax)]
}

// linking follows the mover's own run outward.
type linking struct {
	player, other game.Cell
	linked        int
	space         [2]int
	stopped       bool
}

func (l *linking) start() {
	l.linked = 0
	l.space = [2]int{}
	l.stopped = false
}

func (l *linking) consume(piece game.Cell, side int) {
	switch {
	case l.stopped:
	case piece == l.other || l.linked == linkMax:
		l.stopped = true
	case piece == l.player:
		// own pieces beyond a gap do not link
		if l.space[side] == 0 {
			l.linked++
		}
	default:
		l.space[side]++
	}
}

func (l *linking) score() float64 {
	l.stopped = true
	if l.space[left]+l.space[right]+l.linked < linkMax {
		return 0
	}
	open := l.space[left] > 0 && l.space[right] > 0
	switch l.linked {
	case 0, 1:
		return spaceScore(l.space) + float64(l.linked)*LinkUnit
	case 2:
		if open {
			return Link3Both + spaceScore(l.space)
		}
		return Link3One + spaceScore(l.space)
	case 3:
		if open {
			return Link4Both
		}
		return Link4One
	case linkMax:
		return game.Win
	default:
		panic(fmt.Sprintf("eval: linked run of %d is outside the scored tiers", l.linked))
	}
}

// blocking follows the opponent's run outward.
type blocking struct {
	player, other game.Cell
	blocked       int
	space         [2]int
	stopped       bool
}

func (b *blocking) start() {
	b.blocked = 0
	b.space = [2]int{}
	b.stopped = false
}

func (b *blocking) consume(piece game.Cell, side int) {
	switch {
	case b.stopped:
	case piece == b.player || b.blocked == blockMax:
		b.stopped = true
	case piece == b.other:
		if b.space[side] == 0 {
			b.blocked++
		}
	default:
		b.space[side]++
	}
}

func (b *blocking) score() float64 {
	b.stopped = true
	if b.space[left]+b.space[right]+b.blocked < blockMin {
		return 0
	}
	open := b.space[left] > 0 && b.space[right] > 0
	switch b.blocked {
	case 0, 1:
		return spaceScore(b.space) + float64(b.blocked)*BlockUnit
	case 2:
		if open {
			return Block2Both + spaceScore(b.space)
		}
		return Block2One + spaceScore(b.space)
	case 3:
		if open {
			return Block3Both
		}
		return Block3One
	case 4:
		if open {
			return Block4Both
		}
		return Block4One
	default:
		return BlockMoreThan4
	}
}

// LinkBlock evaluates hypothetical placements for one player. It keeps
// scratch state and must not be shared between goroutines.
type LinkBlock struct {
	board *game.Board
	link  linking
	block blocking
}

func NewLinkBlock(board *game.Board, player game.Cell) *LinkBlock {
	other := player.Other()
	return &LinkBlock{
		board: board,
		link:  linking{player: player, other: other},
		block: blocking{player: player, other: other},
	}
}

func (e *LinkBlock) Player() game.Cell {
	return e.link.player
}

// EvaluateMove scores placing the player's piece at (r, c) without touching
// the board. The cell itself is never read. A placement that completes five
// scores exactly game.Win.
func (e *LinkBlock) EvaluateMove(r, c int) float64 {
	score := 0.0
	size := e.board.Size()
	for _, axis := range game.Axes {
		e.link.start()
		e.block.start()
		for moved := 1; ; moved++ {
			lr, lc := r+axis.DR*moved, c+axis.DC*moved
			rr, rc := r-axis.DR*moved, c-axis.DC*moved
			goLeft := lr >= 0 && lr < size && lc >= 0 && lc < size
			goRight := rr >= 0 && rr < size && rc >= 0 && rc < size
			if (!goLeft && !goRight) || (e.link.stopped && e.block.stopped) {
				break
			}
			if goLeft {
				piece := e.board.At(lr, lc)
				e.link.consume(piece, left)
				e.block.consume(piece, left)
			}
			if goRight {
				piece := e.board.At(rr, rc)
				e.link.consume(piece, right)
				e.block.consume(piece, right)
			}
		}
		linkScore := e.link.score()
		if linkScore == game.Win {
			return game.Win
		}
		score += linkScore + e.block.score()
	}
	return score
}

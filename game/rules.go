package game

// Connect is the run length that wins the game.
const Connect = 5

// CompletesFive reports whether placing player at (r, c) would connect at
// least Connect pieces along some axis. The cell itself is not read, so the
// check works before and after the piece is placed.
func (b *Board) CompletesFive(r, c int, player Cell) bool {
	for _, axis := range Axes {
		if 1+b.run(r, c, axis.DR, axis.DC, player)+b.run(r, c, -axis.DR, -axis.DC, player) >= Connect {
			return true
		}
	}
	return false
}

// Winner returns the player owning a run of Connect pieces, or Empty.
func (b *Board) Winner() Cell {
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			p := b.At(r, c)
			if p == Empty {
				continue
			}
			for _, axis := range Axes {
				// only count from the start of a run
				pr, pc := r+axis.DR, c+axis.DC
				if b.InBounds(pr, pc) && b.At(pr, pc) == p {
					continue
				}
				if 1+b.run(r, c, -axis.DR, -axis.DC, p) >= Connect {
					return p
				}
			}
		}
	}
	return Empty
}

func (b *Board) run(r, c, dr, dc int, player Cell) int {
	n := 0
	for rr, cc := r+dr, c+dc; b.InBounds(rr, cc) && b.At(rr, cc) == player; rr, cc = rr+dr, cc+dc {
		n++
	}
	return n
}

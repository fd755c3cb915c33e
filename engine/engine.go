package engine

import (
	"gomoku/experiments/metrics"
	"gomoku/game"
)

// Engine plays a complete game.
type Engine interface {
	// Run plays until a player connects five, the board fills up, a side
	// has no move left or the move limit is reached. The winner is
	// game.Empty for a draw.
	Run() (winner game.Cell, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

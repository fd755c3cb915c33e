package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/session"
)

type countingObserver struct {
	searches int
}

func (o *countingObserver) ObserveSearch(metrics.SearchMetric) {
	o.searches++
}

func TestLocalEngine(t *testing.T) {
	linkBlock := metrics.AgentConfig{ID: 1, Strategy: "linkblock", Depth: 2}
	proximity := metrics.AgentConfig{ID: 2, Strategy: "proximity", Depth: 2, Radius: 3}

	t.Run("plays a game to the end", func(t *testing.T) {
		o := &countingObserver{}
		e := NewLocalEngine(9, linkBlock, linkBlock,
			WithOpening(2, rand.New(rand.NewSource(3))),
			WithObserver(o),
		)

		winner, gameMetric, moveMetrics, err := e.Run()
		require.NoError(t, err)

		board := e.Board()
		require.Equal(t, winner, board.Winner())
		require.Equal(t, int(winner), gameMetric.Winner)
		require.Equal(t, 2+len(moveMetrics), gameMetric.TotalMoves)
		require.Equal(t, gameMetric.TotalMoves, board.Count(game.PlayerA)+board.Count(game.PlayerB))
		require.Equal(t, len(moveMetrics), o.searches)
		if winner == game.Empty {
			require.True(t, board.Full())
		}
		for i, m := range moveMetrics {
			require.Equal(t, i+1, m.Step)
			require.Equal(t, 2, m.Depth)
			require.Positive(t, m.Nodes)
			// the opening leaves player A to move
			require.Equal(t, 1+i%2, m.Player)
		}
	})

	t.Run("mixed strategies", func(t *testing.T) {
		e := NewLocalEngine(9, proximity, linkBlock, WithMaxMoves(6))

		winner, _, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, game.Empty, winner)
		require.Len(t, moveMetrics, 6)
	})

	t.Run("stops at the move limit", func(t *testing.T) {
		e := NewLocalEngine(9, linkBlock, linkBlock, WithMaxMoves(3))

		winner, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, game.Empty, winner)
		require.Len(t, moveMetrics, 3)
		require.Equal(t, 3, gameMetric.TotalMoves)
	})

	t.Run("rejects unknown strategies", func(t *testing.T) {
		bad := metrics.AgentConfig{ID: 3, Strategy: "mcts", Depth: 2}
		e := NewLocalEngine(9, linkBlock, bad)

		_, _, _, err := e.Run()

		require.ErrorIs(t, err, session.ErrBadStrategy)
	})

	t.Run("small boards are rejected", func(t *testing.T) {
		require.Panics(t, func() { NewLocalEngine(4, linkBlock, linkBlock) })
	})
}

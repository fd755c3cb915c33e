package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"gomoku/game"
)

func TestBreadthFirst(t *testing.T) {
	const size = 7
	seen := make(map[game.Move]int)
	BreadthFirst(size, 3, 3, func(r, c, layer int) {
		_, dup := seen[game.Move{Row: r, Col: c}]
		require.False(t, dup, "cell (%d,%d) visited twice", r, c)
		seen[game.Move{Row: r, Col: c}] = layer
	})

	require.Len(t, seen, size*size)
	for m, layer := range seen {
		dr, dc := m.Row-3, m.Col-3
		want := max(dr, -dr, dc, -dc)
		require.Equal(t, want, layer, "layer of %v", m)
	}
}

func TestProximityCentreBonus(t *testing.T) {
	p := NewProximity(game.NewBoard(19), A)

	require.InDelta(t, 0.1, p.CentreBonus(9, 9), 1e-12)
	require.InDelta(t, 0.08, p.CentreBonus(8, 10), 1e-12)
	require.InDelta(t, 0.1*math.Pow(0.8, 9), p.CentreBonus(0, 18), 1e-12)
}

func TestProximityEvaluate(t *testing.T) {
	t.Run("empty board is neutral", func(t *testing.T) {
		require.Equal(t, 0.0, NewProximity(game.NewBoard(9), A).Evaluate())
	})

	t.Run("a lone piece counts once per axis", func(t *testing.T) {
		board := game.NewBoard(9)
		board.Set(4, 4, A)

		require.InDelta(t, 4+0.1, NewProximity(board, A).Evaluate(), 1e-12)
		require.InDelta(t, -4-0.1, NewProximity(board, B).Evaluate(), 1e-12)
	})

	t.Run("runs are superlinear", func(t *testing.T) {
		two := game.NewBoard(9)
		two.Set(4, 3, A)
		two.Set(4, 4, A)
		three := two.Copy()
		three.Set(4, 5, A)

		gainTwo := NewProximity(two, A).Evaluate()
		gainThree := NewProximity(three, A).Evaluate()
		require.Greater(t, gainThree-gainTwo, gainTwo/2)
	})

	t.Run("five in a row saturates", func(t *testing.T) {
		board := game.NewBoard(9)
		for c := 0; c < 5; c++ {
			board.Set(2, c, B)
		}
		require.Equal(t, game.Loss, NewProximity(board, A).Evaluate())
		require.Equal(t, game.Win, NewProximity(board, B).Evaluate())
	})

	t.Run("perspectives are antisymmetric", func(t *testing.T) {
		board, err := game.ParseBoard(`
			.......
			..12...
			..211..
			...2...
			....1..
			.......
			.......`)
		require.NoError(t, err)

		require.InDelta(t, -NewProximity(board, A).Evaluate(), NewProximity(board, B).Evaluate(), 1e-9)
	})

	t.Run("diagonals are scanned", func(t *testing.T) {
		board := game.NewBoard(9)
		for i := 0; i < 5; i++ {
			board.Set(8-i, i, A)
		}
		require.Equal(t, game.Win, NewProximity(board, A).Evaluate())

		board = game.NewBoard(9)
		for i := 0; i < 5; i++ {
			board.Set(i+3, i+4, A)
		}
		require.Equal(t, game.Win, NewProximity(board, A).Evaluate())
	})
}

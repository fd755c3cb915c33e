package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCell(t *testing.T) {
	require.Equal(t, PlayerB, PlayerA.Other())
	require.Equal(t, PlayerA, PlayerB.Other())
	require.Equal(t, Empty, Empty.Other())
	require.False(t, Empty.IsPlayer())
	require.Equal(t, "Cell(7)", Cell(7).String())
	require.Equal(t, Win, Clamp(3*Win))
	require.Equal(t, Loss, Clamp(-3*Win))
	require.Equal(t, 12.5, Clamp(12.5))
}

func TestBoard(t *testing.T) {
	t.Run("copies are independent", func(t *testing.T) {
		b := NewBoard(5)
		b.Set(2, 2, PlayerA)
		c := b.Copy()
		c.Set(0, 0, PlayerB)

		require.Equal(t, Empty, b.At(0, 0))
		require.False(t, b.Equal(c))
		c.Set(0, 0, Empty)
		require.True(t, b.Equal(c))
		require.False(t, b.Equal(NewBoard(6)))
	})

	t.Run("counts and neighbours", func(t *testing.T) {
		b := NewBoard(5)
		b.Set(0, 0, PlayerA)
		b.Set(4, 4, PlayerB)

		require.Equal(t, 23, b.Count(Empty))
		require.False(t, b.Full())
		require.True(t, b.HasOccupiedNeighbour(1, 1))
		require.True(t, b.HasOccupiedNeighbour(3, 4))
		require.False(t, b.HasOccupiedNeighbour(2, 2))
		require.False(t, b.InBounds(5, 0))
		require.False(t, b.InBounds(0, -1))
	})

	t.Run("invalid size", func(t *testing.T) {
		require.Panics(t, func() { NewBoard(0) })
	})
}

func TestParseBoard(t *testing.T) {
	t.Run("round trips through String", func(t *testing.T) {
		b := NewBoard(4)
		b.Set(0, 1, PlayerA)
		b.Set(3, 2, PlayerB)

		parsed, err := ParseBoard(b.String())

		require.NoError(t, err)
		require.True(t, b.Equal(parsed))
		require.Equal(t, ".1..\n....\n....\n..2.\n", b.String())
	})

	t.Run("accepts alternative symbols", func(t *testing.T) {
		parsed, err := ParseBoard("\n x o - \n 0 _ X\n O . 2\n\n")

		require.NoError(t, err)
		require.Equal(t, 3, parsed.Size())
		require.Equal(t, PlayerA, parsed.At(0, 0))
		require.Equal(t, PlayerB, parsed.At(0, 1))
		require.Equal(t, PlayerA, parsed.At(1, 2))
		require.Equal(t, PlayerB, parsed.At(2, 0))
		require.Equal(t, 4, parsed.Count(Empty))
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for name, text := range map[string]string{
			"empty":        "",
			"ragged":       "...\n..\n...\n",
			"not square":   "...\n...\n",
			"unknown char": "..\n.z\n",
		} {
			_, err := ParseBoard(text)
			require.ErrorIs(t, err, ErrBadBoard, name)
		}
	})

	t.Run("rejects invalid cells", func(t *testing.T) {
		_, err := FromRows([][]Cell{{Empty, 3}, {Empty, Empty}})

		require.ErrorIs(t, err, ErrBadBoard)
	})
}

func TestRules(t *testing.T) {
	t.Run("five on every axis", func(t *testing.T) {
		lines := [][]Move{
			{{2, 0}, {2, 1}, {2, 2}, {2, 3}, {2, 4}},
			{{0, 5}, {1, 5}, {2, 5}, {3, 5}, {4, 5}},
			{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}},
			{{5, 1}, {4, 2}, {3, 3}, {2, 4}, {1, 5}},
		}
		for _, line := range lines {
			b := NewBoard(7)
			for _, m := range line[:4] {
				b.Set(m.Row, m.Col, PlayerB)
			}
			last := line[4]

			require.True(t, b.CompletesFive(last.Row, last.Col, PlayerB), "%v", line)
			require.False(t, b.CompletesFive(last.Row, last.Col, PlayerA), "%v", line)
			require.Equal(t, Empty, b.Winner())

			b.Set(last.Row, last.Col, PlayerB)
			require.Equal(t, PlayerB, b.Winner())
			require.True(t, b.CompletesFive(last.Row, last.Col, PlayerB), "placed piece is not double counted")
		}
	})

	t.Run("gap in the middle", func(t *testing.T) {
		b := NewBoard(9)
		for _, c := range []int{1, 2, 4, 5} {
			b.Set(4, c, PlayerA)
		}

		require.True(t, b.CompletesFive(4, 3, PlayerA))
		require.False(t, b.CompletesFive(4, 6, PlayerA))
	})

	t.Run("six in a row also wins", func(t *testing.T) {
		b := NewBoard(9)
		for _, c := range []int{0, 1, 2, 4, 5} {
			b.Set(0, c, PlayerA)
		}

		require.True(t, b.CompletesFive(0, 3, PlayerA))
	})
}

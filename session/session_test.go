package session

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"gomoku/game"
	"gomoku/searcher"
)

func randomBoard(rng *rand.Rand, size int, fill float64) *game.Board {
	board := game.NewBoard(size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if rng.Float64() < fill {
				board.Set(r, c, game.Cell(1+rng.Intn(2)))
			}
		}
	}
	return board
}

func place(board *game.Board, player game.Cell, moves ...game.Move) {
	for _, m := range moves {
		board.Set(m.Row, m.Col, player)
	}
}

func row(r int, cols ...int) []game.Move {
	out := make([]game.Move, len(cols))
	for i, c := range cols {
		out[i] = game.Move{Row: r, Col: c}
	}
	return out
}

func TestNew(t *testing.T) {
	t.Run("rejects bad arguments", func(t *testing.T) {
		board := game.NewBoard(9)

		_, err := New(board, game.Empty, 3)
		require.ErrorIs(t, err, ErrBadPlayer)

		_, err = New(board, game.PlayerA, 0)
		require.ErrorIs(t, err, ErrBadDepth)

		_, err = New(board, game.PlayerA, 3, WithStrategy("random"))
		require.ErrorIs(t, err, ErrBadStrategy)
	})

	t.Run("works on a private copy of the board", func(t *testing.T) {
		board := game.NewBoard(9)
		s, err := New(board, game.PlayerA, 2)
		require.NoError(t, err)

		board.Set(4, 4, game.PlayerB)

		require.Equal(t, game.Empty, s.Board().At(4, 4))
	})

	t.Run("parses strategies", func(t *testing.T) {
		strategy, err := ParseStrategy("proximity")
		require.NoError(t, err)
		require.Equal(t, Proximity, strategy)

		_, err = ParseStrategy("mcts")
		require.ErrorIs(t, err, ErrBadStrategy)
	})
}

func TestGetMove(t *testing.T) {
	for _, strategy := range []Strategy{LinkBlock, Proximity} {
		t.Run(string(strategy)+" completes an open four", func(t *testing.T) {
			board := game.NewBoard(19)
			place(board, game.PlayerA, row(9, 9, 10, 11, 12)...)
			s, err := New(board, game.PlayerA, 2, WithStrategy(strategy))
			require.NoError(t, err)

			result, err := s.Search()
			require.NoError(t, err)

			require.Equal(t, searcher.WIN, result.Value)
			move, ok := result.Move()
			require.True(t, ok)
			require.Equal(t, game.Move{Row: 9, Col: 8}, move)
		})
	}

	t.Run("blocks a closed four", func(t *testing.T) {
		board := game.NewBoard(19)
		place(board, game.PlayerB, row(9, 9, 10, 11, 12)...)
		place(board, game.PlayerA, game.Move{Row: 9, Col: 8})
		s, err := New(board, game.PlayerA, 2)
		require.NoError(t, err)

		move, ok, err := s.GetMove()

		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, game.Move{Row: 9, Col: 13}, move)
	})

	t.Run("full board has no move", func(t *testing.T) {
		board := game.NewBoard(5)
		for r := 0; r < 5; r++ {
			for c := 0; c < 5; c++ {
				board.Set(r, c, game.Cell(1+(r+c/2)%2))
			}
		}
		for _, strategy := range []Strategy{LinkBlock, Proximity} {
			s, err := New(board, game.PlayerA, 3, WithStrategy(strategy))
			require.NoError(t, err)

			_, ok, err := s.GetMove()

			require.NoError(t, err)
			require.False(t, ok)
		}
	})

	t.Run("search leaves the board and rankings untouched", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		for i := 0; i < 5; i++ {
			board := randomBoard(rng, 7, 0.3)
			s, err := New(board, game.PlayerB, 3)
			require.NoError(t, err)
			v := s.visitor.(*linkBlockVisitor)
			own, other := v.own.Scores(), v.other.Scores()

			_, err = s.Search()
			require.NoError(t, err)

			require.True(t, board.Equal(s.board))
			require.Equal(t, own, v.own.Scores())
			require.Equal(t, other, v.other.Scores())
			require.Empty(t, v.undo)
		}
	})
}

func TestPruningEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for _, strategy := range []Strategy{LinkBlock, Proximity} {
		t.Run(string(strategy), func(t *testing.T) {
			for i := 0; i < 10; i++ {
				board := randomBoard(rng, 5, 0.3)
				for depth := 1; depth <= 3; depth++ {
					pruned, err := New(board, game.PlayerA, depth, WithStrategy(strategy))
					require.NoError(t, err)
					full, err := New(board, game.PlayerA, depth, WithStrategy(strategy), WithPruning(false))
					require.NoError(t, err)

					want, err := full.Search()
					require.NoError(t, err)
					got, err := pruned.Search()
					require.NoError(t, err)

					require.Equal(t, want.Value, got.Value, "board %d depth %d\n%s", i, depth, board)
					wantMove, wantOK := want.Move()
					gotMove, gotOK := got.Move()
					require.Equal(t, wantOK, gotOK)
					require.Equal(t, wantMove, gotMove, "board %d depth %d\n%s", i, depth, board)
					require.True(t, board.Equal(pruned.board))
				}
			}
		})
	}
}

func TestApplyExternalMove(t *testing.T) {
	t.Run("keeps the rankings in step with the board", func(t *testing.T) {
		s, err := New(game.NewBoard(9), game.PlayerA, 2)
		require.NoError(t, err)
		v := s.visitor.(*linkBlockVisitor)

		require.NoError(t, s.ApplyExternalMove(4, 4, game.PlayerB))
		require.NoError(t, s.ApplyExternalMove(4, 5, game.PlayerA))

		require.Equal(t, game.PlayerB, s.board.At(4, 4))
		require.False(t, v.own.Available(4, 4))
		require.False(t, v.other.Available(4, 5))
		require.Equal(t, 79, v.own.Len())
		require.Equal(t, 79, v.other.Len())
		require.Equal(t, v.own.EvaluateMove(4, 3), v.own.Key(4, 3))
	})

	t.Run("rejects illegal moves", func(t *testing.T) {
		s, err := New(game.NewBoard(9), game.PlayerA, 2)
		require.NoError(t, err)
		require.NoError(t, s.ApplyExternalMove(0, 0, game.PlayerA))

		require.ErrorIs(t, s.ApplyExternalMove(0, 0, game.PlayerB), ErrOccupied)
		require.ErrorIs(t, s.ApplyExternalMove(9, 0, game.PlayerB), ErrOutOfBounds)
		require.ErrorIs(t, s.ApplyExternalMove(-1, 3, game.PlayerB), ErrOutOfBounds)
		require.ErrorIs(t, s.ApplyExternalMove(1, 1, game.Empty), ErrBadPlayer)
	})

	t.Run("suggested moves can be played back", func(t *testing.T) {
		s, err := New(game.NewBoard(9), game.PlayerA, 2)
		require.NoError(t, err)

		for i := 0; i < 4; i++ {
			move, ok, err := s.GetMove()
			require.NoError(t, err)
			require.True(t, ok)
			player := game.PlayerA
			if i%2 == 1 {
				player = game.PlayerB
			}
			require.NoError(t, s.ApplyExternalMove(move.Row, move.Col, player))
		}
		require.Equal(t, 4, s.board.Count(game.PlayerA)+s.board.Count(game.PlayerB))
	})
}

func TestSetSearchDepth(t *testing.T) {
	s, err := New(game.NewBoard(9), game.PlayerA, 2)
	require.NoError(t, err)

	require.NoError(t, s.SetSearchDepth(4))
	require.Equal(t, 4, s.Depth())
	require.ErrorIs(t, s.SetSearchDepth(0), ErrBadDepth)
	require.Equal(t, 4, s.Depth())
}

func TestDispose(t *testing.T) {
	s, err := New(game.NewBoard(9), game.PlayerA, 2)
	require.NoError(t, err)

	s.Dispose()
	s.Dispose()

	_, _, err = s.GetMove()
	require.ErrorIs(t, err, ErrDisposed)
	require.ErrorIs(t, s.ApplyExternalMove(1, 1, game.PlayerA), ErrDisposed)
	require.ErrorIs(t, s.SetSearchDepth(3), ErrDisposed)
}

func TestProximityVisitor(t *testing.T) {
	t.Run("radius limits candidates", func(t *testing.T) {
		board := game.NewBoard(9)
		board.Set(4, 4, game.PlayerB)

		v := newProximityVisitor(board, game.PlayerA, 1)

		require.Len(t, v.candidates, 8)
		require.Equal(t, game.Move{Row: 3, Col: 4}, v.candidates[0].Move)
		require.Len(t, newProximityVisitor(board, game.PlayerA, 0).candidates, 80)
	})

	t.Run("only rejects below the root", func(t *testing.T) {
		board := game.NewBoard(9)
		board.Set(4, 4, game.PlayerB)
		v := newProximityVisitor(board, game.PlayerA, 0)

		require.False(t, v.EarlyReject(game.Move{Row: 0, Col: 0}, 0))
		require.True(t, v.EarlyReject(game.Move{Row: 0, Col: 0}, 1))
		require.False(t, v.EarlyReject(game.Move{Row: 3, Col: 3}, 2))
	})

	t.Run("terminal for the side to move", func(t *testing.T) {
		board := game.NewBoard(9)
		place(board, game.PlayerB, row(2, 1, 2, 3, 4)...)
		v := newProximityVisitor(board, game.PlayerA, 0)
		candidate := searcher.Candidate{Move: game.Move{Row: 2, Col: 5}}

		require.False(t, v.IsTerminal(candidate, true))
		require.True(t, v.IsTerminal(candidate, false))
	})
}

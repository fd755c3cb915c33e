// Package session is the host facing side of the AI: it owns a private copy
// of the board, keeps the evaluation state in step with real moves and runs
// searches on request.
package session

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"
)

var (
	ErrDisposed    = errors.New("session disposed")
	ErrOutOfBounds = errors.New("move out of bounds")
	ErrOccupied    = errors.New("cell occupied")
	ErrBadPlayer   = errors.New("invalid player")
	ErrBadDepth    = errors.New("invalid search depth")
	ErrBadStrategy = errors.New("unknown strategy")
)

// DefaultDepth is the search depth used when none is configured.
const DefaultDepth = 5

type Strategy string

const (
	LinkBlock Strategy = "linkblock"
	Proximity Strategy = "proximity"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case LinkBlock, Proximity:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrBadStrategy, s)
}

// visitor is a searcher.Visitor that also follows real moves.
type visitor interface {
	searcher.Visitor
	// place updates the visitor after a real move was written to the board.
	place(r, c int)
	dispose()
}

type Option func(s *Session)

// WithStrategy selects the evaluator. LinkBlock is the default.
func WithStrategy(strategy Strategy) Option {
	return func(s *Session) {
		s.strategy = strategy
	}
}

// WithRadius limits proximity candidates to cells within radius BFS layers
// of the centre. Zero means the whole board.
func WithRadius(radius int) Option {
	return func(s *Session) {
		s.radius = radius
	}
}

// WithMetrics fills in Result.Metric for every search.
func WithMetrics() Option {
	return func(s *Session) {
		s.searchOptions = append(s.searchOptions, searcher.WithMetrics())
	}
}

func WithObserver(o metrics.Observer) Option {
	return func(s *Session) {
		s.searchOptions = append(s.searchOptions, searcher.WithObserver(o))
	}
}

func WithPruning(enabled bool) Option {
	return func(s *Session) {
		s.searchOptions = append(s.searchOptions, searcher.WithPruning(enabled))
	}
}

// Session plays one side of one game. It is not safe for concurrent use;
// the host must serialize calls.
type Session struct {
	board         *game.Board
	player        game.Cell
	strategy      Strategy
	radius        int
	searchOptions []searcher.Option
	minimax       *searcher.Minimax
	visitor       visitor
	disposed      bool
}

// New starts a session for player on a copy of board.
func New(board *game.Board, player game.Cell, depth int, options ...Option) (*Session, error) {
	if !player.IsPlayer() {
		return nil, fmt.Errorf("%w: %d", ErrBadPlayer, player)
	}
	if depth < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadDepth, depth)
	}
	s := &Session{ // Default values
		board:    board.Copy(),
		player:   player,
		strategy: LinkBlock,
	}
	for _, option := range options {
		option(s)
	}
	if s.radius < 0 {
		return nil, fmt.Errorf("proximity radius must not be negative, got %d", s.radius)
	}

	switch s.strategy {
	case LinkBlock:
		s.visitor = newLinkBlockVisitor(s.board, player)
	case Proximity:
		s.visitor = newProximityVisitor(s.board, player, s.radius)
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadStrategy, s.strategy)
	}
	s.minimax = searcher.NewMinimax(depth, s.searchOptions...)

	log.Debug().
		Str("strategy", string(s.strategy)).
		Int("player", int(player)).
		Int("size", board.Size()).
		Int("depth", depth).
		Msg("session started")
	return s, nil
}

func (s *Session) Player() game.Cell {
	return s.player
}

func (s *Session) Strategy() Strategy {
	return s.strategy
}

func (s *Session) Depth() int {
	return s.minimax.Depth()
}

// Board returns a copy of the session's view of the board.
func (s *Session) Board() *game.Board {
	return s.board.Copy()
}

// Search runs a full search for the session's player. The board is left
// exactly as it was found.
func (s *Session) Search() (searcher.Result, error) {
	if s.disposed {
		return searcher.Result{}, ErrDisposed
	}
	return s.minimax.Search(s.visitor), nil
}

// GetMove searches and returns the move to play. It returns false when no
// move is available, which the host should treat as a draw.
func (s *Session) GetMove() (game.Move, bool, error) {
	result, err := s.Search()
	if err != nil {
		return game.Move{}, false, err
	}
	move, ok := result.Move()
	return move, ok, nil
}

// ApplyExternalMove records a real move by either side. Every move of the
// game must be reported, including the ones suggested by GetMove.
func (s *Session) ApplyExternalMove(r, c int, player game.Cell) error {
	if s.disposed {
		return ErrDisposed
	}
	if !player.IsPlayer() {
		return fmt.Errorf("%w: %d", ErrBadPlayer, player)
	}
	if !s.board.InBounds(r, c) {
		return fmt.Errorf("%w: (%d,%d) on a %dx%d board", ErrOutOfBounds, r, c, s.board.Size(), s.board.Size())
	}
	if s.board.At(r, c) != game.Empty {
		return fmt.Errorf("%w: (%d,%d) holds %v", ErrOccupied, r, c, s.board.At(r, c))
	}
	s.board.Set(r, c, player)
	s.visitor.place(r, c)
	log.Debug().Int("row", r).Int("col", c).Int("player", int(player)).Msg("external move applied")
	return nil
}

func (s *Session) SetSearchDepth(depth int) error {
	if s.disposed {
		return ErrDisposed
	}
	if depth < 1 {
		return fmt.Errorf("%w: %d", ErrBadDepth, depth)
	}
	s.minimax.SetDepth(depth)
	return nil
}

// Dispose releases the evaluation state. Later calls return ErrDisposed.
// Disposing twice is a no-op.
func (s *Session) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.visitor.dispose()
	s.visitor = nil
	log.Debug().Str("strategy", string(s.strategy)).Msg("session disposed")
}

package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/meta"
	"gomoku/session"
)

type Option func(e *LocalEngine)

// WithOpening plays n random moves before the agents take over.
func WithOpening(n int, rng *rand.Rand) Option {
	return func(e *LocalEngine) {
		e.openingMoves = n
		e.rng = rng
	}
}

func WithMaxMoves(n int) Option {
	return func(e *LocalEngine) {
		e.maxMoves = n
	}
}

func WithObserver(o metrics.Observer) Option {
	return func(e *LocalEngine) {
		e.observer = o
	}
}

// LocalEngine pits two agents against each other on one board. Player A
// moves first.
type LocalEngine struct {
	size         int
	agents       [2]metrics.AgentConfig
	openingMoves int
	rng          *rand.Rand
	maxMoves     int
	observer     metrics.Observer
	board        *game.Board
}

var _ Engine = (*LocalEngine)(nil)

func NewLocalEngine(size int, agent1, agent2 metrics.AgentConfig, options ...Option) *LocalEngine {
	if size < game.Connect {
		panic(fmt.Sprintf("board size %d is too small to connect %d", size, game.Connect))
	}
	e := &LocalEngine{ // Default values
		size:     size,
		agents:   [2]metrics.AgentConfig{agent1, agent2},
		maxMoves: meta.MAX_MOVES,
	}
	for _, option := range options {
		option(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return e
}

// Board returns a copy of the board of the last game.
func (e *LocalEngine) Board() *game.Board {
	if e.board == nil {
		return nil
	}
	return e.board.Copy()
}

func (e *LocalEngine) Run() (game.Cell, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(game.PlayerA),
		StartTime:      time.Now(),
	}
	e.board = game.NewBoard(e.size)
	current, opening := e.playOpening()

	var sessions [2]*session.Session
	for i, config := range e.agents {
		s, err := e.newSession(game.Cell(i+1), config)
		if err != nil {
			return game.Empty, gameMetric, nil, fmt.Errorf("agent %d: %w", config.ID, err)
		}
		defer s.Dispose()
		sessions[i] = s
	}

	log.Info().
		Int("size", e.size).
		Int("opening", opening).
		Int("agent1", e.agents[0].ID).
		Int("agent2", e.agents[1].ID).
		Msg("game started")

	winner := game.Empty
	var moveMetrics []metrics.MoveMetric
	for step := 1; step <= e.maxMoves && !e.board.Full(); step++ {
		result, err := sessions[current-1].Search()
		if err != nil {
			return game.Empty, gameMetric, moveMetrics, err
		}
		move, ok := result.Move()
		if !ok {
			log.Info().Int("player", int(current)).Msg("no move left")
			break
		}
		for _, s := range sessions {
			if err := s.ApplyExternalMove(move.Row, move.Col, current); err != nil {
				return game.Empty, gameMetric, moveMetrics, fmt.Errorf("step %d: %w", step, err)
			}
		}
		e.board.Set(move.Row, move.Col, current)
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       int(current),
			Row:          move.Row,
			Col:          move.Col,
			SearchMetric: result.Metric,
		})

		if e.board.CompletesFive(move.Row, move.Col, current) {
			winner = current
			break
		}
		current = current.Other()
	}

	gameMetric.Winner = int(winner)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = opening + len(moveMetrics)

	summary := metrics.Summarize(moveMetrics)
	log.Info().
		Int("winner", int(winner)).
		Int("moves", gameMetric.TotalMoves).
		Int("nodes", summary.Nodes).
		Dur("mean_search", summary.MeanDuration).
		Dur("duration", gameMetric.Duration).
		Msg("game over")
	return winner, gameMetric, moveMetrics, nil
}

// playOpening places random pieces, alternating from player A, and returns
// the player to move next and the number of pieces placed. Placements that
// would connect five are skipped.
func (e *LocalEngine) playOpening() (game.Cell, int) {
	player := game.PlayerA
	played := 0
	for ; played < e.openingMoves; played++ {
		var free []game.Move
		for r := 0; r < e.size; r++ {
			for c := 0; c < e.size; c++ {
				if e.board.At(r, c) == game.Empty && !e.board.CompletesFive(r, c, player) {
					free = append(free, game.Move{Row: r, Col: c})
				}
			}
		}
		if len(free) == 0 {
			break
		}
		m := free[e.rng.Intn(len(free))]
		e.board.Set(m.Row, m.Col, player)
		player = player.Other()
	}
	return player, played
}

func (e *LocalEngine) newSession(player game.Cell, config metrics.AgentConfig) (*session.Session, error) {
	strategy, err := session.ParseStrategy(config.Strategy)
	if err != nil {
		return nil, err
	}
	options := []session.Option{
		session.WithStrategy(strategy),
		session.WithRadius(config.Radius),
		session.WithMetrics(),
	}
	if e.observer != nil {
		options = append(options, session.WithObserver(e.observer))
	}
	return session.New(e.board, player, config.Depth, options...)
}

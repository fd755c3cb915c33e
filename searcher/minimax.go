package searcher

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"gomoku/experiments/metrics"
	"gomoku/game"
)

type Option func(m *Minimax)

// WithPruning turns alpha-beta cut-offs on or off. Without pruning the
// search is plain minimax, which is only useful to check the pruned result.
func WithPruning(enabled bool) Option {
	return func(m *Minimax) {
		m.pruning = enabled
	}
}

// WithMetrics makes every search count nodes, prunes and the like.
func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = true
	}
}

// WithObserver reports every completed search to o. It implies WithMetrics.
func WithObserver(o metrics.Observer) Option {
	return func(m *Minimax) {
		if o != nil {
			m.metrics = true
			m.observer = o
		}
	}
}

// Minimax is a depth limited minimax search with alpha-beta pruning.
type Minimax struct {
	depth    int
	pruning  bool
	metrics  bool
	observer metrics.Observer
}

func NewMinimax(depth int, options ...Option) *Minimax {
	m := &Minimax{ // Default values
		pruning: true,
	}
	m.SetDepth(depth)
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Depth() int {
	return m.depth
}

func (m *Minimax) SetDepth(depth int) {
	if depth < 1 {
		panic(fmt.Sprintf("search depth must be at least 1, got %d", depth))
	}
	m.depth = depth
}

// Result of one search.
type Result struct {
	Value float64
	// Variation is the principal variation, deepest move first; the move
	// to play is the last element.
	Variation []game.Move
	// Scoreboard holds the value found for every root move explored.
	Scoreboard map[game.Move]float64
	Metric     metrics.SearchMetric
}

// Move returns the move to play, or false when no legal move was found.
func (r Result) Move() (game.Move, bool) {
	if len(r.Variation) == 0 {
		return game.Move{}, false
	}
	return r.Variation[len(r.Variation)-1], true
}

// FindMove searches from the maximizing side and returns the move to play.
func (m *Minimax) FindMove(v Visitor) (game.Move, bool) {
	return m.Search(v).Move()
}

// Search runs a full search from the maximizing side. It blocks until the
// configured depth has been searched.
func (m *Minimax) Search(v Visitor) Result {
	s := &search{
		visitor:    v,
		maxDepth:   m.depth,
		pruning:    m.pruning,
		collector:  metrics.NewDummyCollector(),
		scoreboard: make(map[game.Move]float64),
	}
	if m.metrics {
		s.collector = metrics.NewCollector()
	}

	s.collector.Start(m.depth)
	value, variation := s.minimax(m.depth, true, LOSS, WIN)
	metric := s.collector.Complete(value)
	if m.observer != nil {
		m.observer.ObserveSearch(metric)
	}

	log.Debug().
		Int("depth", m.depth).
		Float64("value", value).
		Strs("variation", lo.Map(variation, func(mv game.Move, _ int) string { return mv.String() })).
		Int("nodes", metric.Nodes).
		Int("prunes", metric.Prunes).
		Msg("search complete")

	return Result{
		Value:      value,
		Variation:  variation,
		Scoreboard: s.scoreboard,
		Metric:     metric,
	}
}

type search struct {
	visitor    Visitor
	maxDepth   int
	pruning    bool
	collector  metrics.Collector
	scoreboard map[game.Move]float64
}

func (s *search) minimax(depth int, maximizing bool, alpha, beta float64) (float64, []game.Move) {
	s.collector.AddNode()
	if depth == 0 {
		return s.visitor.Evaluate(), nil
	}
	ply := s.maxDepth - depth

	value := math.Inf(1)
	if maximizing {
		value = math.Inf(-1)
	}
	var (
		best      game.Move
		variation []game.Move
		found     bool
	)
	for _, candidate := range s.visitor.OrderedCandidates(maximizing) {
		move := candidate.Move
		if s.visitor.Occupied(move) {
			continue
		}
		if s.visitor.EarlyReject(move, ply) {
			s.collector.AddEarlyReject()
			continue
		}

		if s.visitor.IsTerminal(candidate, maximizing) {
			s.collector.AddTerminal()
			value = LOSS
			if maximizing {
				value = WIN
			}
			best, variation, found = move, nil, true
			if ply == 0 {
				s.scoreboard[move] = value
			}
			break
		}

		s.visitor.ApplyMove(move, maximizing)
		moveValue, line := s.minimax(depth-1, !maximizing, alpha, beta)
		s.visitor.RevertMove(move)

		if maximizing {
			if moveValue > value {
				value = moveValue
				best, variation, found = move, line, true
			}
			if value > alpha {
				alpha = value
				s.collector.AddAlphaUpdate()
			}
		} else {
			if moveValue < value {
				value = moveValue
				best, variation, found = move, line, true
			}
			if value < beta {
				beta = value
				s.collector.AddBetaUpdate()
			}
		}
		if ply == 0 {
			s.scoreboard[move] = moveValue
		}
		if s.pruning && beta <= alpha {
			s.collector.AddPrune()
			break
		}
	}

	if !found {
		// nothing playable here; score the position as it stands
		return s.visitor.Evaluate(), nil
	}
	return value, append(variation, best)
}

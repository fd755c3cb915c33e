package metrics

import (
	"time"

	"github.com/samber/lo"
)

// Summary aggregates the searches of one game or experiment.
type Summary struct {
	Searches     int
	Nodes        int
	Prunes       int
	MeanDuration time.Duration
	MaxDuration  time.Duration
}

func Summarize(moves []MoveMetric) Summary {
	if len(moves) == 0 {
		return Summary{}
	}
	total := lo.SumBy(moves, func(m MoveMetric) time.Duration { return m.Duration })
	return Summary{
		Searches:     len(moves),
		Nodes:        lo.SumBy(moves, func(m MoveMetric) int { return m.Nodes }),
		Prunes:       lo.SumBy(moves, func(m MoveMetric) int { return m.Prunes }),
		MeanDuration: total / time.Duration(len(moves)),
		MaxDuration: lo.MaxBy(moves, func(a, b MoveMetric) bool {
			return a.Duration > b.Duration
		}).Duration,
	}
}

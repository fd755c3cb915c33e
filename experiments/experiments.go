// Package experiments runs batches of self-play games and stores their
// metrics as CSV.
package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"gomoku/engine"
	"gomoku/experiments/metrics"
	"gomoku/game"
)

type Experiment struct {
	Name         string
	OutputDir    string // empty skips writing results
	BoardSize    int
	Games        int // per match up
	OpeningMoves int
	MaxMoves     int
	Seed         uint64
	Configs      []metrics.AgentConfig
	MatchUps     [][2]metrics.AgentConfig
	Observer     metrics.Observer
}

// Outcome tallies the games of an experiment.
type Outcome struct {
	Games       []metrics.GameRecord
	Moves       []metrics.MoveRecord
	Wins        map[int]int // by agent id
	Draws       int
	Dir         string
	MoveSummary metrics.Summary
}

// Run plays every match up Games times. Openings are drawn from one seeded
// source so a seed reproduces the whole experiment.
func Run(x Experiment) (Outcome, error) {
	rng := rand.New(rand.NewSource(x.Seed))
	outcome := Outcome{Wins: make(map[int]int)}
	count := 0
	moves := []metrics.MoveMetric{}

	log.Info().Msgf("starting %s experiment...", x.Name)

	for mi, matchup := range x.MatchUps {
		config1, config2 := matchup[0], matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(x.MatchUps), config1, config2)

		for i := 0; i < x.Games; i++ {
			options := []engine.Option{engine.WithOpening(x.OpeningMoves, rng)}
			if x.MaxMoves > 0 {
				options = append(options, engine.WithMaxMoves(x.MaxMoves))
			}
			if x.Observer != nil {
				options = append(options, engine.WithObserver(x.Observer))
			}
			e := engine.NewLocalEngine(x.BoardSize, config1, config2, options...)

			winner, gameMetric, moveMetrics, err := e.Run()
			if err != nil {
				return outcome, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			outcome.Games = append(outcome.Games, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				outcome.Moves = append(outcome.Moves, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
			moves = append(moves, moveMetrics...)

			switch winner {
			case game.PlayerA:
				outcome.Wins[config1.ID]++
			case game.PlayerB:
				outcome.Wins[config2.ID]++
			default:
				outcome.Draws++
			}
			log.Info().Msgf("completed matchup %d of %d game %d with winner: %v", mi+1, len(x.MatchUps), i+1, winner)
		}
	}
	outcome.MoveSummary = metrics.Summarize(moves)

	log.Info().
		Int("games", count).
		Int("draws", outcome.Draws).
		Int("searches", outcome.MoveSummary.Searches).
		Dur("mean_search", outcome.MoveSummary.MeanDuration).
		Msgf("completed %s experiment", x.Name)

	if x.OutputDir == "" {
		return outcome, nil
	}
	dir, err := store(x, outcome)
	outcome.Dir = dir
	return outcome, err
}

func store(x Experiment, outcome Outcome) (string, error) {
	writer, err := metrics.NewWriter(x.OutputDir, x.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(x.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(outcome.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(outcome.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment results")
	return writer.Dir(), nil
}

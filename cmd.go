package main

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"gomoku/config"
	"gomoku/experiments"
	"gomoku/experiments/metrics"
	"gomoku/game"
	"gomoku/searcher"
	"gomoku/session"
)

var (
	cfg        config.Config
	configPath string

	movePlayer int
	moveScores bool
)

var rootCmd = &cobra.Command{
	Use:           "gomoku",
	Short:         "Five in a row AI",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if err := applyFlags(cmd); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		zerolog.SetGlobalLevel(cfg.Level())
		return nil
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <board-file>",
	Short: "Search a position and print the move to play",
	Long: "Reads a board with one row per line, '.' for empty cells and '1' or '2' " +
		"for pieces, and prints the best move for the player to move. Use '-' to read stdin.",
	Args: cobra.ExactArgs(1),
	RunE: runMove,
}

var selfPlayCmd = &cobra.Command{
	Use:   "selfplay",
	Short: "Play the AI against itself and record metrics",
	Args:  cobra.NoArgs,
	RunE:  runSelfPlay,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML config file")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Int("size", 0, "board size")
	flags.Int("depth", 0, "search depth")
	flags.String("strategy", "", "evaluator: linkblock or proximity")
	flags.Int("radius", 0, "proximity candidate radius, 0 for the whole board")

	moveCmd.Flags().IntVar(&movePlayer, "player", 0, "player to move (1 or 2); inferred from the piece count when 0")
	moveCmd.Flags().BoolVar(&moveScores, "scores", false, "print the value of every root move")

	sp := selfPlayCmd.Flags()
	sp.Int("games", 0, "games per match up")
	sp.Int("opening", 0, "random opening moves")
	sp.Uint64("seed", 0, "random seed, 0 for a clock seed")
	sp.Int("max-moves", 0, "move limit per game")
	sp.String("out", "", "directory for CSV results")
	sp.String("metrics-addr", "", "serve Prometheus metrics on this address")
	sp.String("opponent-strategy", "", "strategy of the second agent")
	sp.Int("opponent-depth", 0, "search depth of the second agent")

	rootCmd.AddCommand(moveCmd, selfPlayCmd)
}

// applyFlags lets explicitly set flags win over the config file.
func applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	var errs []error
	str := func(name string, dst *string) {
		if flags.Changed(name) {
			v, err := flags.GetString(name)
			errs = append(errs, err)
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if flags.Changed(name) {
			v, err := flags.GetInt(name)
			errs = append(errs, err)
			*dst = v
		}
	}
	str("log-level", &cfg.LogLevel)
	num("size", &cfg.BoardSize)
	num("depth", &cfg.SearchDepth)
	str("strategy", &cfg.Strategy)
	num("radius", &cfg.ProximityRadius)
	if cmd == selfPlayCmd {
		num("games", &cfg.Games)
		num("opening", &cfg.OpeningMoves)
		num("max-moves", &cfg.MaxMoves)
		str("out", &cfg.OutputDir)
		str("metrics-addr", &cfg.MetricsAddr)
		str("opponent-strategy", &cfg.OpponentStrategy)
		num("opponent-depth", &cfg.OpponentDepth)
		if flags.Changed("seed") {
			v, err := flags.GetUint64("seed")
			errs = append(errs, err)
			cfg.Seed = v
		}
	}
	return errors.Join(errs...)
}

func readBoard(path string, stdin io.Reader) (*game.Board, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return game.ParseBoard(string(data))
}

// playerToMove assumes player 1 moved first.
func playerToMove(board *game.Board) game.Cell {
	if board.Count(game.PlayerA) > board.Count(game.PlayerB) {
		return game.PlayerB
	}
	return game.PlayerA
}

func runMove(cmd *cobra.Command, args []string) error {
	board, err := readBoard(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	player := game.Cell(movePlayer)
	if movePlayer == 0 {
		player = playerToMove(board)
	}
	strategy, err := session.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}

	s, err := session.New(board, player, cfg.SearchDepth,
		session.WithStrategy(strategy),
		session.WithRadius(cfg.ProximityRadius),
		session.WithMetrics(),
	)
	if err != nil {
		return err
	}
	defer s.Dispose()

	result, err := s.Search()
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), player, result)
	if moveScores {
		printScoreboard(cmd.OutOrStdout(), result.Scoreboard)
	}
	return nil
}

func printResult(w io.Writer, player game.Cell, result searcher.Result) {
	move, ok := result.Move()
	if !ok {
		fmt.Fprintf(w, "player %v has no move\n", player)
		return
	}
	// root move first
	line := lo.Map(result.Variation, func(m game.Move, _ int) string { return m.String() })
	slices.Reverse(line)
	fmt.Fprintf(w, "player %v plays %d %d\n", player, move.Row, move.Col)
	fmt.Fprintf(w, "value %g after %d nodes in %v\n", result.Value, result.Metric.Nodes, result.Metric.Duration.Round(time.Microsecond))
	fmt.Fprintf(w, "line %v\n", line)
}

func printScoreboard(w io.Writer, scoreboard map[game.Move]float64) {
	entries := lo.Entries(scoreboard)
	slices.SortFunc(entries, func(a, b lo.Entry[game.Move, float64]) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Key.Row, b.Key.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.Key.Col, b.Key.Col)
	})
	for _, e := range entries {
		fmt.Fprintf(w, "%v\t%g\n", e.Key, e.Value)
	}
}

func runSelfPlay(cmd *cobra.Command, args []string) error {
	first := metrics.AgentConfig{ID: 1, Strategy: cfg.Strategy, Depth: cfg.SearchDepth, Radius: cfg.ProximityRadius}
	second := first
	second.ID = 2
	if cfg.OpponentStrategy != "" {
		second.Strategy = cfg.OpponentStrategy
	}
	if cfg.OpponentDepth > 0 {
		second.Depth = cfg.OpponentDepth
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	x := experiments.Experiment{
		Name:         "selfplay",
		OutputDir:    cfg.OutputDir,
		BoardSize:    cfg.BoardSize,
		Games:        cfg.Games,
		OpeningMoves: cfg.OpeningMoves,
		MaxMoves:     cfg.MaxMoves,
		Seed:         seed,
		Configs:      []metrics.AgentConfig{first, second},
		MatchUps:     [][2]metrics.AgentConfig{{first, second}, {second, first}},
	}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		x.Observer = metrics.NewPrometheusObserver(reg)
		server := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
		defer server.Close()
		log.Info().Str("addr", cfg.MetricsAddr).Msg("serving metrics")
	}

	log.Info().Uint64("seed", seed).Msg("self-play")
	outcome, err := experiments.Run(x)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "agent 1 wins %d, agent 2 wins %d, draws %d\n",
		outcome.Wins[first.ID], outcome.Wins[second.ID], outcome.Draws)
	if outcome.Dir != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "results in %s\n", outcome.Dir)
	}
	return nil
}

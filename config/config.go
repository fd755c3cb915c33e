// Package config loads command line settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"gomoku/game"
	"gomoku/meta"
	"gomoku/session"
)

type Config struct {
	BoardSize       int    `yaml:"board_size"`
	SearchDepth     int    `yaml:"search_depth"`
	Strategy        string `yaml:"strategy"`
	ProximityRadius int    `yaml:"proximity_radius"`

	// Self-play. The opponent uses the main settings unless overridden.
	OpponentStrategy string `yaml:"opponent_strategy"`
	OpponentDepth    int    `yaml:"opponent_depth"`
	Games            int    `yaml:"games"`
	OpeningMoves     int    `yaml:"opening_moves"`
	Seed             uint64 `yaml:"seed"` // 0 picks a seed from the clock
	MaxMoves         int    `yaml:"max_moves"`
	OutputDir        string `yaml:"output_dir"`

	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"` // empty disables the endpoint
}

func Default() Config {
	return Config{
		BoardSize:    meta.BOARD_SIZE,
		SearchDepth:  meta.SEARCH_DEPTH,
		Strategy:     string(session.LinkBlock),
		Games:        1,
		OpeningMoves: meta.OPENING_MOVES,
		MaxMoves:     meta.MAX_MOVES,
		OutputDir:    "experiments",
		LogLevel:     zerolog.InfoLevel.String(),
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(data, &config); err != nil {
		return config, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// Decode overlays YAML onto config. Unknown keys are an error.
func Decode(data []byte, config *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.BoardSize < game.Connect {
		errs = append(errs, fmt.Errorf("board_size must be at least %d, got %d", game.Connect, c.BoardSize))
	}
	if c.SearchDepth < 1 {
		errs = append(errs, fmt.Errorf("search_depth must be at least 1, got %d", c.SearchDepth))
	}
	if c.OpponentDepth < 0 {
		errs = append(errs, fmt.Errorf("opponent_depth must not be negative, got %d", c.OpponentDepth))
	}
	if _, err := session.ParseStrategy(c.Strategy); err != nil {
		errs = append(errs, fmt.Errorf("strategy: %w", err))
	}
	if c.OpponentStrategy != "" {
		if _, err := session.ParseStrategy(c.OpponentStrategy); err != nil {
			errs = append(errs, fmt.Errorf("opponent_strategy: %w", err))
		}
	}
	if c.ProximityRadius < 0 {
		errs = append(errs, fmt.Errorf("proximity_radius must not be negative, got %d", c.ProximityRadius))
	}
	if c.Games < 1 {
		errs = append(errs, fmt.Errorf("games must be at least 1, got %d", c.Games))
	}
	if c.OpeningMoves < 0 {
		errs = append(errs, fmt.Errorf("opening_moves must not be negative, got %d", c.OpeningMoves))
	}
	if c.MaxMoves < 1 {
		errs = append(errs, fmt.Errorf("max_moves must be at least 1, got %d", c.MaxMoves))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Level is the parsed log level; call after Validate.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

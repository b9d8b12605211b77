package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/lk16/flippy/reversi/internal/ai"
)

const (
	DefaultBlackLevel = ai.Intermediate
	DefaultWhiteLevel = ai.Advanced
	DefaultGames      = 1
)

// SelfPlayConfig holds the configuration of the selfplay command.
type SelfPlayConfig struct {
	Black ai.Level
	White ai.Level
	Games int

	// Parallel is the number of games played at the same time, zero uses all CPUs.
	Parallel int

	// Coach grades every move.
	Coach bool
}

// LoadSelfPlayConfig loads configuration from environment variables. Unset variables get defaults.
func LoadSelfPlayConfig() (*SelfPlayConfig, error) {
	var err error
	cfg := &SelfPlayConfig{}

	if cfg.Black, err = getEnvLevel("REVERSI_BLACK_LEVEL", DefaultBlackLevel); err != nil {
		return nil, err
	}
	if cfg.White, err = getEnvLevel("REVERSI_WHITE_LEVEL", DefaultWhiteLevel); err != nil {
		return nil, err
	}
	if cfg.Games, err = getEnvInt("REVERSI_GAMES", DefaultGames); err != nil {
		return nil, err
	}
	if cfg.Parallel, err = getEnvInt("REVERSI_PARALLEL", 0); err != nil {
		return nil, err
	}
	if cfg.Coach, err = getEnvBool("REVERSI_COACH", false); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadSelfPlayConfigMust loads the configuration or logs a fatal error.
func LoadSelfPlayConfigMust() *SelfPlayConfig {
	cfg, err := LoadSelfPlayConfig()
	if err != nil {
		slog.Error("Cannot load configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

// RegisterFlags adds flags to fs that override the loaded values.
func (c *SelfPlayConfig) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("black", "level of the black player (default "+c.Black.String()+")", levelFlag(&c.Black))
	fs.Func("white", "level of the white player (default "+c.White.String()+")", levelFlag(&c.White))
	fs.IntVar(&c.Games, "games", c.Games, "number of games, colors swap after every game")
	fs.IntVar(&c.Parallel, "parallel", c.Parallel, "number of games played at the same time, 0 uses all CPUs")
	fs.BoolVar(&c.Coach, "coach", c.Coach, "grade every move")
}

// Validate checks the configuration.
func (c *SelfPlayConfig) Validate() error {
	if c.Games < 1 {
		return errors.New("games must be at least 1")
	}
	if c.Parallel < 0 {
		return errors.New("parallel cannot be negative")
	}
	return nil
}

func levelFlag(level *ai.Level) func(string) error {
	return func(value string) error {
		parsed, err := ai.ParseLevel(value)
		if err != nil {
			return err
		}
		*level = parsed
		return nil
	}
}

func getEnvLevel(key string, fallback ai.Level) (ai.Level, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	level, err := ai.ParseLevel(value)
	if err != nil {
		return 0, fmt.Errorf("cannot load environment variable %s: %w", key, err)
	}
	return level, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("cannot load environment variable %s, it must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	if value != "true" && value != "false" {
		return false, fmt.Errorf("cannot load environment variable %s, it must be \"true\" or \"false\"", key)
	}
	return value == "true", nil
}

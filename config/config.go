// Package config loads agent settings from defaults, an optional YAML file
// and ISOLATION_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"isolation/game"
	"isolation/searcher"

	"github.com/spf13/viper"
)

// Search modes.
const (
	ModeMinimax = "minimax"
	ModeMCTS    = "mcts"
)

type Config struct {
	Mode        string        // minimax or mcts
	Depth       int           // Minimax search depth
	Heuristic   string        // Evaluation heuristic name
	Exploration float64       // MCTS UCT exploration constant
	Budget      time.Duration // MCTS time budget
	Safety      float64       // Fraction of the budget actually spent searching
	BoardWidth  int
	BoardHeight int
	Deadline    time.Duration // Per-move deadline enforced by the engine
}

func Default() *Config {
	return &Config{
		Mode:        ModeMinimax,
		Depth:       searcher.DefaultDepth,
		Heuristic:   string(game.HeuristicMobility),
		Exploration: searcher.DefaultExploration,
		Budget:      searcher.DefaultBudget,
		Safety:      searcher.DefaultSafety,
		BoardWidth:  game.DefaultWidth,
		BoardHeight: game.DefaultHeight,
		Deadline:    time.Second,
	}
}

// Load reads configuration from the given file (optional, "" to skip) with
// environment overrides applied on top of defaults.
func Load(path string) (*Config, error) {
	d := Default()

	v := viper.New()
	v.SetDefault("mode", d.Mode)
	v.SetDefault("depth", d.Depth)
	v.SetDefault("heuristic", d.Heuristic)
	v.SetDefault("exploration", d.Exploration)
	v.SetDefault("budget", d.Budget)
	v.SetDefault("safety", d.Safety)
	v.SetDefault("board_width", d.BoardWidth)
	v.SetDefault("board_height", d.BoardHeight)
	v.SetDefault("deadline", d.Deadline)

	v.SetEnvPrefix("isolation")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	c := &Config{
		Mode:        v.GetString("mode"),
		Depth:       v.GetInt("depth"),
		Heuristic:   v.GetString("heuristic"),
		Exploration: v.GetFloat64("exploration"),
		Budget:      v.GetDuration("budget"),
		Safety:      v.GetFloat64("safety"),
		BoardWidth:  v.GetInt("board_width"),
		BoardHeight: v.GetInt("board_height"),
		Deadline:    v.GetDuration("deadline"),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Mode != ModeMinimax && c.Mode != ModeMCTS {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", c.Depth)
	}
	if _, err := game.ParseHeuristic(c.Heuristic); err != nil {
		return err
	}
	if c.Exploration <= 0 {
		return fmt.Errorf("exploration must be positive, got %g", c.Exploration)
	}
	if c.Budget < 0 {
		return fmt.Errorf("budget must not be negative, got %s", c.Budget)
	}
	if c.Safety <= 0 || c.Safety > 1 {
		return fmt.Errorf("safety must be in (0, 1], got %g", c.Safety)
	}
	if c.BoardWidth < 2 || c.BoardHeight < 2 {
		return fmt.Errorf("board must be at least 2x2, got %dx%d", c.BoardWidth, c.BoardHeight)
	}
	if c.Deadline <= 0 {
		return fmt.Errorf("deadline must be positive, got %s", c.Deadline)
	}
	return nil
}

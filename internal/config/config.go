// Package config loads the slidepuzzle settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/bestfirst"
)

// Config contains all settings. Fields missing from a file keep their defaults.
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Puzzle  PuzzleConfig  `yaml:"puzzle"`
	Logging LoggingConfig `yaml:"logging"`
}

// SearchConfig bounds a single search run.
type SearchConfig struct {
	// MaxExpansions stops a run after this many expansions. 0 means unlimited.
	MaxExpansions int `yaml:"max_expansions"`

	// Timeout cancels a run through its context. 0 means no deadline.
	Timeout time.Duration `yaml:"timeout"`

	// Tracing sends a span per run to the global otel provider.
	Tracing bool `yaml:"tracing"`
}

// PuzzleConfig describes the generated puzzle.
type PuzzleConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`

	// ShuffleMoves is the random walk length. 0 uses rows*cols*2.
	ShuffleMoves int `yaml:"shuffle_moves"`

	// Seed for the shuffle. 0 picks one from the clock.
	Seed int64 `yaml:"seed"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the settings used without a config file.
func Default() Config {
	return Config{
		Search: SearchConfig{
			MaxExpansions: 2_000_000,
			Timeout:       time.Minute,
		},
		Puzzle: PuzzleConfig{
			Rows: 3,
			Cols: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Search.MaxExpansions < 0 {
		errs = append(errs, fmt.Errorf("search.max_expansions must be >= 0, got %d", c.Search.MaxExpansions))
	}
	if c.Search.Timeout < 0 {
		errs = append(errs, fmt.Errorf("search.timeout must be >= 0, got %s", c.Search.Timeout))
	}
	if c.Puzzle.Rows < 1 || c.Puzzle.Cols < 1 || c.Puzzle.Rows*c.Puzzle.Cols < 2 {
		errs = append(errs, fmt.Errorf("puzzle must have at least two cells, got %dx%d", c.Puzzle.Rows, c.Puzzle.Cols))
	}
	if c.Puzzle.ShuffleMoves < 0 {
		errs = append(errs, fmt.Errorf("puzzle.shuffle_moves must be >= 0, got %d", c.Puzzle.ShuffleMoves))
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// Options translates the search settings into engine options. The timeout
// is not included; callers apply it to the context.
func (s SearchConfig) Options() []bestfirst.Option {
	var options []bestfirst.Option
	if s.MaxExpansions > 0 {
		options = append(options, bestfirst.WithMaxExpansions(s.MaxExpansions))
	}
	if s.Tracing {
		options = append(options, bestfirst.WithTracer(bestfirst.GlobalTracer()))
	}
	return options
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/internal/config"
	"github.com/pdrpinto/bestfirst/internal/logging"
	"github.com/pdrpinto/bestfirst/puzzle"
)

// app is the state shared by all commands once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "slidepuzzle",
		Short: "Generate and solve sliding-tile puzzles",
		Long: `slidepuzzle shuffles a solved sliding-tile puzzle and finds the
shortest sequence of moves back to the solved grid using A* with the
Manhattan-distance heuristic.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().Int("rows", 0, "puzzle rows (overrides config)")
	rootCmd.PersistentFlags().Int("cols", 0, "puzzle columns (overrides config)")
	rootCmd.PersistentFlags().Int("moves", 0, "shuffle walk length (overrides config)")
	rootCmd.PersistentFlags().Int64("seed", 0, "shuffle seed (overrides config)")

	rootCmd.AddCommand(a.solveCmd(), a.shuffleCmd(), a.serveCmd())
	return rootCmd
}

func (a *app) load(cmd *cobra.Command) error {
	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		a.cfg.Puzzle.Rows, _ = flags.GetInt("rows")
	}
	if flags.Changed("cols") {
		a.cfg.Puzzle.Cols, _ = flags.GetInt("cols")
	}
	if flags.Changed("moves") {
		a.cfg.Puzzle.ShuffleMoves, _ = flags.GetInt("moves")
	}
	if flags.Changed("seed") {
		a.cfg.Puzzle.Seed, _ = flags.GetInt64("seed")
	}
	if a.logLevel != "" {
		a.cfg.Logging.Level = a.logLevel
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), a.cfg.Logging.Level, a.cfg.Logging.Format)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// newPuzzle builds the shuffled puzzle described by the config.
func (a *app) newPuzzle() (puzzle.State, int64, error) {
	p := a.cfg.Puzzle
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	moves := p.ShuffleMoves
	if moves == 0 {
		moves = puzzle.DefaultShuffleMoves(p.Rows, p.Cols)
	}
	state, err := puzzle.Shuffled(p.Rows, p.Cols, moves, rand.New(rand.NewSource(seed)))
	return state, seed, err
}

func (a *app) searchOptions() []bestfirst.Option {
	return append(a.cfg.Search.Options(), bestfirst.WithLogger(a.logger))
}

func (a *app) searchContext(parent context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.Search.Timeout > 0 {
		return context.WithTimeout(parent, a.cfg.Search.Timeout)
	}
	return context.WithCancel(parent)
}

func (a *app) solveCmd() *cobra.Command {
	var grid string
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Shuffle a puzzle (or read one with --grid) and print the solution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				initial puzzle.State
				err     error
			)
			if grid != "" {
				initial, err = parseGrid(grid)
			} else {
				var seed int64
				initial, seed, err = a.newPuzzle()
				a.logger.Debug("puzzle generated", slog.Int64("seed", seed))
			}
			if err != nil {
				return err
			}
			if !initial.Solvable() {
				return fmt.Errorf("%w:\n%v", puzzle.ErrUnsolvable, initial)
			}

			ctx, cancel := a.searchContext(cmd.Context())
			defer cancel()
			actions, result, err := puzzle.Solve(ctx, initial, a.searchOptions()...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%v\n\n", initial)
			fmt.Fprintf(out, "moves (%d): %s\n", len(actions), joinActions(actions))
			fmt.Fprintf(out, "expanded %d nodes in %s\n", result.Expanded, result.Elapsed.Round(time.Microsecond))
			return nil
		},
	}
	cmd.Flags().StringVar(&grid, "grid", "", `puzzle rows separated by "/", tiles by spaces or commas, e.g. "3 1 2/0 4 5/6 7 8"`)
	return cmd
}

func (a *app) shuffleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shuffle",
		Short: "Print a shuffled, solvable puzzle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, seed, err := a.newPuzzle()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# seed %d\n%v\n", seed, state)
			return nil
		},
	}
}

func joinActions(actions []puzzle.Action) string {
	names := make([]string, len(actions))
	for i, action := range actions {
		names[i] = action.String()
	}
	return strings.Join(names, " ")
}

// parseGrid reads "r0c0 r0c1/r1c0 r1c1". Blank may be written as 0 or _.
func parseGrid(text string) (puzzle.State, error) {
	var grid [][]int
	for _, line := range strings.Split(text, "/") {
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
		row := make([]int, 0, len(fields))
		for _, field := range fields {
			if field == "_" {
				row = append(row, 0)
				continue
			}
			tile, err := strconv.Atoi(field)
			if err != nil {
				return puzzle.State{}, fmt.Errorf("%w: tile %q", puzzle.ErrInvalidGrid, field)
			}
			row = append(row, tile)
		}
		grid = append(grid, row)
	}
	return puzzle.FromGrid(grid)
}

// thecell is a terminal puzzle game: cross a 5x5 board of rooms from the
// center to the exit, stepping between rooms and rotating whole rows and
// columns while standing inside them.
//
// Usage:
//
//	thecell list             - List available game variants
//	thecell play [variant]   - Play a variant (default: thecell)
//	thecell menu             - Pick variants interactively, with a run journal
//	thecell board            - Print the board generated for a seed
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Board seed (any integer; default: configured seed)
//	--random             - Use a time-derived seed
//	--config <path>      - Custom configuration YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-file <path>    - Write logs to a file
//	--log-level <level>  - Log level: debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/JocelynWeiss/theCell/internal/config"
	"github.com/JocelynWeiss/theCell/internal/games/thecell"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagRandom     bool
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "thecell",
	Short: "The Cell - escape a shifting 5x5 board in your terminal",
	Long: `The Cell is a terminal puzzle game. You wake up in the central room of a
5x5 board. Some rooms kill, some play tricks on you, one leads out.
Step between rooms, or rotate the row or column you stand in to bring
the exit closer. Rotations carry you along with your room.

Available commands:
  list     - Show all game variants
  play     - Play a variant directly
  menu     - Interactive variant picker with a run journal
  board    - Print the board generated for a seed

Examples:
  thecell play
  thecell play thecell_classic
  thecell play --seed 42 --difficulty hard
  thecell board --seed 1966 --probe-row 2`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (input polls per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Board seed (default: configured seed)")
	rootCmd.PersistentFlags().BoolVar(&flagRandom, "random", false, "Use a time-derived seed")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(boardCmd)
}

// newLogger builds the CLI logger. Interactive commands own the terminal,
// so without --log-file their logs are discarded; other commands log to stderr.
// The returned function closes the log file.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "thecell",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadConfig loads the configuration, applies --difficulty and hands the
// result and logger to the game package.
func loadConfig(logger *log.Logger) (config.CellConfig, error) {
	cfg, err := config.LoadCell(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	if !config.IsFixedPreset(preset) {
		config.ApplyCellPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	thecell.SetConfig(cfg)
	thecell.SetLogger(logger)
	logger.Debug("config loaded", "difficulty", preset, "deadly", cfg.Board.DeadlyCells,
		"effect", cfg.Board.EffectCells, "lives", cfg.Session.Lives)
	return cfg, nil
}

// resolveSeed returns the seed requested on the command line and whether
// one was requested at all. Without one the game uses its configured default.
func resolveSeed(cmd *cobra.Command) (seed int64, set bool) {
	if flagRandom {
		return time.Now().UnixNano(), true
	}
	return flagSeed, cmd.Flags().Changed("seed")
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

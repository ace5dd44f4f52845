// snake is a terminal snake game with a replayable run journal.
//
// Usage:
//
//	snake                    - Play (same as snake play)
//	snake play               - Play in the terminal
//	snake autoplay <pilot>   - Let a pilot play headless
//	snake runs               - List recorded runs
//	snake replay <run-id>    - Re-simulate a recorded run and verify it
//	snake pilots             - List available pilots
//	snake config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>   - Custom snake.yaml
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set database path (default: ~/.snake/runs.db)
//	--speed <preset>  - slow, normal or fast
//	--log-level <lvl> - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/logging"

	// Import pilots to register them
	_ "github.com/vovakirdan/tui-snake/internal/pilot"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagSpeed    string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic, in your terminal",
	Long: `Snake is a terminal snake game. Every run is journaled and can be
replayed tick for tick from its seed and action list.

Available commands:
  play      - Play in the terminal (default)
  autoplay  - Watch a pilot play headless
  runs      - List or browse recorded runs
  replay    - Re-simulate a recorded run
  pilots    - List available pilots
  config    - Print the effective configuration

Examples:
  snake
  snake play --speed fast
  snake autoplay cautious --games 10 --turbo
  snake runs --browse
  snake replay 3f2a9c1d --watch`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/runs.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(autoplayCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(pilotsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings resolves the config file and applies --speed.
func loadSettings() config.SnakeConfig {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := config.ApplySpeedPreset(&cfg, config.SpeedPreset(flagSpeed)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger logs to stderr, or to a rotating file under ~/.snake when the
// terminal belongs to the game.
func newLogger(toFile bool) *logging.Logger {
	opts := logging.Options{Level: flagLogLevel, Prefix: "snake"}
	if toFile {
		opts.File = config.AppPath("snake.log")
	}

	lg, err := logging.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return lg
}

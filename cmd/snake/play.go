package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagPilot string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  Arrows/WASD/HJKL - Turn
  Space/P          - Pause/resume
  R                - Restart
  Ctrl+S           - Save a text screenshot
  ?                - Toggle help
  Q/Ctrl+C         - Quit

The grid size and speed are fixed for the whole session. Without --speed
or --config, a speed picker is shown first. Pass --pilot to
watch a pilot play instead; keys still work and are journaled.

Examples:
  snake play
  snake play --speed fast --seed 42
  snake play --pilot cautious
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPilot, "pilot", "", "Let a pilot play (see 'snake pilots')")
}

func runPlay(cmd *cobra.Command, args []string) {
	var pilot registry.Pilot
	if flagPilot != "" {
		p, err := registry.Create(flagPilot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'snake pilots' to see available pilots.")
			os.Exit(1)
		}
		pilot = p
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Without --speed or a config file, ask before the game starts.
	if flagSpeed == "" && flagConfig == "" {
		preset, err := tui.RunSpeedSelector(core.RuntimeConfig{ScreenW: width, ScreenH: height})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if preset == "" {
			return
		}
		flagSpeed = string(preset)
	}

	cfg := loadSettings()

	logger := newLogger(true)
	defer logger.Close()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	engine := snake.New(cfg.Engine(flagSeed))
	logger.Info("session start", "seed", engine.Seed(), "grid", cfg.Grid.Size, "interval", cfg.TickInterval())

	opts := tui.Options{
		Interval: cfg.TickInterval(),
		Width:    width,
		Height:   height,
		Pilot:    pilot,
		Logger:   logger.Logger,
	}
	// A nil *storage.Store in the interface would not compare equal to nil.
	if store != nil {
		opts.Store = store
	}

	final, err := tui.Run(engine, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s := engine.Snapshot()
	fmt.Printf("Score: %d  Length: %d  Ticks: %d\n", s.Score, s.Len(), s.Tick)
	if id := final.LastRunID(); id != "" {
		fmt.Printf("Run saved as %s. Replay it with 'snake replay %s'.\n", id, shortID(id))
	}
}

// openStore opens the run journal. The game works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		return nil
	}
	return store
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/loop"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagGames    int
	flagTurbo    bool
	flagShow     bool
	flagMaxTicks uint64
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay [pilot]",
	Short: "Let a pilot play headless",
	Long: `Run games driven by a pilot without a terminal UI. Each game is
journaled like a human one and can be replayed afterwards.

The pilot defaults to cautious. Games restart automatically until --games
have been played or the command is interrupted.

Examples:
  snake autoplay
  snake autoplay greedy --games 20 --turbo
  snake autoplay random --seed 7 --show`,
	Args: cobra.MaximumNArgs(1),
	Run:  runAutoplay,
}

func init() {
	autoplayCmd.Flags().IntVarP(&flagGames, "games", "n", 1, "Number of games to play")
	autoplayCmd.Flags().BoolVar(&flagTurbo, "turbo", false, "Tick as fast as possible (1ms)")
	autoplayCmd.Flags().BoolVar(&flagShow, "show", false, "Print the final board of each game")
	autoplayCmd.Flags().Uint64Var(&flagMaxTicks, "max-ticks", 10000, "End a game after this many ticks (0 = no cap)")
}

func runAutoplay(cmd *cobra.Command, args []string) {
	pilotID := "cautious"
	if len(args) > 0 {
		pilotID = args[0]
	}
	pilot, err := registry.Create(pilotID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'snake pilots' to see available pilots.")
		os.Exit(1)
	}
	if flagGames < 1 {
		fmt.Fprintln(os.Stderr, "Error: --games must be at least 1")
		os.Exit(1)
	}

	cfg := loadSettings()
	interval := cfg.TickInterval()
	if flagTurbo {
		interval = time.Millisecond
	}

	logger := newLogger(false)
	defer logger.Close()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := snake.New(cfg.Engine(flagSeed))
	runs := make(chan storage.Run, 2)
	sess := loop.NewSession(engine, loop.Options{
		Interval: interval,
		Logger:   logger.Logger,
		Driver:   pilot,
		MaxTicks: flagMaxTicks,
		OnRun:    func(r storage.Run) { runs <- r },
	})

	logger.Info("autoplay", "pilot", pilot.ID(), "games", flagGames, "interval", interval, "seed", engine.Seed())
	sess.Start(ctx)

	var (
		played int
		best   int
		total  int
	)

	report := func(r storage.Run) {
		played++
		total += r.Score
		best = max(best, r.Score)

		id := "-"
		if store != nil {
			saved, err := store.SaveRun(r)
			if err != nil {
				logger.Error("saving run", "err", err)
			} else {
				id = shortID(saved)
			}
		}
		fmt.Printf("game %-3d  %-8s  score %-5d  len %-4d  ticks %-6d  %s\n",
			played, id, r.Score, r.Length, r.Ticks, r.EndReason)

		if flagShow {
			printBoard(sess.Snapshot(), pilot.Title())
		}
	}

games:
	for played < flagGames {
		select {
		case <-ctx.Done():
			break games
		case r := <-runs:
			report(r)
			if played < flagGames {
				sess.Dispatch(core.ActionRestart)
			}
		}
	}

	// Journal an interrupted game, if any.
	sess.Stop()
	for drained := false; !drained; {
		select {
		case r := <-runs:
			report(r)
		default:
			drained = true
		}
	}

	st := sess.Stats()
	logger.Debug("session stats", "ticks", st.Ticks, "moves", st.Moves, "meals", st.Meals,
		"accepted", st.Accepted, "rejected", st.Rejected)

	if played > 0 {
		fmt.Printf("\n%s: %d games, best %d, average %.1f\n",
			pilot.Title(), played, best, float64(total)/float64(played))
	}
}

// printBoard renders a snapshot to stdout as plain text.
func printBoard(s snake.State, pilot string) {
	w, h := tui.BoardSize(s.GridSize)
	screen := core.NewScreen(w, h)
	tui.DrawBoard(screen, s, tui.HUD{Pilot: pilot})
	fmt.Println(screen.String())
}

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagWatch      bool
	flagReplayShow bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Re-simulate a recorded run",
	Long: `Replay a run from its seed and recorded actions and check that it
ends with the recorded score, length and tick count.

Any unique prefix of the run ID works.

Examples:
  snake replay 3f2a9c1d
  snake replay 3f2a --show
  snake replay 3f2a --watch --speed fast`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Animate the replay in the terminal")
	replayCmd.Flags().BoolVar(&flagReplayShow, "show", false, "Print the final board")
}

func runReplay(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	id, err := store.ResolveID(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'snake runs' to see recorded runs.")
		os.Exit(1)
	}
	replayRun(store, id)
}

// replayRun re-simulates a stored run and reports whether it reproduced.
func replayRun(store *storage.Store, id string) {
	run, err := store.RunByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var onStep func(snake.State)
	if flagWatch {
		onStep = watcher(run.GridSize)
	}

	final, err := replay.Play(*run, onStep)
	if flagReplayShow && !flagWatch {
		printBoard(final, run.Pilot)
	}

	fmt.Printf("Run %s  seed %d  %dx%d  %d actions\n",
		shortID(run.ID), run.Seed, run.GridSize, run.GridSize, len(run.Actions))
	fmt.Printf("  recorded  score %-5d len %-4d ticks %-6d %s\n", run.Score, run.Length, run.Ticks, run.EndReason)
	fmt.Printf("  replayed  score %-5d len %-4d ticks %-6d %s\n", final.Score, final.Len(), final.Tick, final.End)

	switch {
	case errors.Is(err, replay.ErrDiverged):
		fmt.Fprintf(os.Stderr, "Replay diverged: %v\n", err)
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Replay matches the recording.")
}

// watcher returns a step callback that redraws the board in place at the
// configured speed.
func watcher(gridSize int) func(snake.State) {
	delay := loadSettings().TickInterval()
	w, h := tui.BoardSize(gridSize)
	screen := core.NewScreen(w, h)

	return func(s snake.State) {
		tui.DrawBoard(screen, s, tui.HUD{Flash: "replay"})
		fmt.Print("\033[H\033[2J")
		fmt.Println(tui.RenderScreen(screen))
		time.Sleep(delay)
	}
}

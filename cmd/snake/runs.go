package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit  int
	flagBrowse bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Long: `Display the most recent runs in the journal.

With --browse, opens an interactive table: enter replays the selected run,
x deletes it.

Examples:
  snake runs
  snake runs --limit 50
  snake runs --browse
  snake runs delete 3f2a9c1d`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	Run:   runRunsDelete,
}

func init() {
	runsCmd.Flags().IntVarP(&flagLimit, "limit", "l", 20, "Number of runs to show")
	runsCmd.Flags().BoolVarP(&flagBrowse, "browse", "b", false, "Browse runs interactively")
	runsCmd.AddCommand(runsDeleteCmd)
}

func runRuns(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagBrowse {
		browseRuns(store)
		return
	}

	runs, err := store.RecentRuns(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to record the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-8s  %-16s  %6s  %4s  %6s  %-9s  %s\n", "Run", "Date", "Score", "Len", "Ticks", "End", "Pilot")
	fmt.Printf("  %-8s  %-16s  %6s  %4s  %6s  %-9s  %s\n", "---", "----", "-----", "---", "-----", "---", "-----")

	for _, r := range runs {
		pilot := r.Pilot
		if pilot == "" {
			pilot = "-"
		}
		fmt.Printf("  %-8s  %-16s  %6d  %4d  %6d  %-9s  %s\n",
			shortID(r.ID), r.CreatedAt.Format("2006-01-02 15:04"), r.Score, r.Length, r.Ticks, r.EndReason, pilot)
	}

	fmt.Println()
	fmt.Println("Run 'snake replay <run>' to re-simulate a run.")
}

func browseRuns(store *storage.Store) {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	id, err := tui.RunRunsBrowser(store, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if id == "" {
		return
	}
	replayRun(store, id)
}

func runRunsDelete(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	id, err := store.ResolveID(args[0])
	if err == nil {
		err = store.DeleteRun(id)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted run %s.\n", shortID(id))
}

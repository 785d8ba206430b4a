package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/moofield/internal/platform/tui"
	"github.com/vovakirdan/moofield/internal/registry"
	"github.com/vovakirdan/moofield/internal/storage"
)

var (
	flagRunsLimit       int
	flagRunsInteractive bool
	flagRunsClear       bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [mode]",
	Short: "Show recorded runs",
	Long: `Without a mode, lists the most recent runs across all modes.
With a mode, lists that mode's best runs and a summary.

Examples:
  moofield runs
  moofield runs survival --limit 20
  moofield runs -i
  moofield runs sandbox --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVarP(&flagRunsInteractive, "interactive", "i", false, "Browse runs in a table")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete every run of the given mode")
}

func runRuns(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening run database: %w", err)
	}
	defer store.Close()

	if flagRunsInteractive {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, width, height)
	}

	if len(args) == 0 {
		if flagRunsClear {
			return fmt.Errorf("--clear needs a mode")
		}
		runs, err := store.RecentRuns(flagRunsLimit)
		if err != nil {
			return err
		}
		fmt.Println("Recent runs")
		fmt.Println()
		printRuns(runs)
		return nil
	}

	mode := args[0]
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q; run 'moofield modes' to see available modes", mode)
	}

	if flagRunsClear {
		if err := store.ClearRuns(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared runs for %s\n", mode)
		return nil
	}

	runs, err := store.TopRuns(mode, flagRunsLimit)
	if err != nil {
		return err
	}
	fmt.Printf("Best runs - %s\n", mode)
	fmt.Println()
	printRuns(runs)

	st, err := store.Stats(mode)
	if err == nil && st.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Oldest age: %d  Kills: %d  Longest: %s\n",
			st.Runs, st.BestScore, st.AvgScore, st.BestAge, st.TotalKills, clock(st.LongestSecs))
	}
	return nil
}

func printRuns(runs []storage.RunRecord) {
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'moofield play' or 'moofield sim' to record one.")
		return
	}

	fmt.Printf("  %-4s  %-9s  %-6s  %8s  %4s  %5s  %8s  %7s  %s\n", "#", "Mode", "Source", "Score", "Age", "Kills", "Gold", "Time", "Date")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-9s  %-6s  %8d  %4d  %5d  %8d  %7s  %s\n",
			i+1, r.Mode, r.Source, r.Score, r.Age, r.Kills, r.Gold, clock(r.SurvivedSec), r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func clock(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

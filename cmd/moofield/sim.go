package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/moofield/internal/autopilot"
	"github.com/vovakirdan/moofield/internal/core"
	"github.com/vovakirdan/moofield/internal/games/survival"
	"github.com/vovakirdan/moofield/internal/registry"
	"github.com/vovakirdan/moofield/internal/sim"
	"github.com/vovakirdan/moofield/internal/storage"
)

var (
	flagSimMode     string
	flagSimRuns     int
	flagSimTicks    int
	flagSimParallel int
	flagSimNoSave   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Let the autopilot play headless runs",
	Long: `Run the autopilot against fresh worlds without a terminal.
Each run uses seed, seed+1, ... so a batch is reproducible with --seed.
Finished runs are recorded with source "sim".

Examples:
  moofield sim
  moofield sim --runs 16 --parallel 4 --ticks 72000
  moofield sim --seed 42 --difficulty hard --no-save`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimMode, "mode", "survival", "Mode to simulate")
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 36000, "Tick limit per run (0 = until death)")
	simCmd.Flags().IntVar(&flagSimParallel, "parallel", runtime.NumCPU(), "Runs played at once")
	simCmd.Flags().BoolVar(&flagSimNoSave, "no-save", false, "Do not record runs")
}

type simResult struct {
	seed  int64
	stats core.RunStats
	err   error
}

func runSim(_ *cobra.Command, _ []string) error {
	if !registry.Exists(flagSimMode) {
		return fmt.Errorf("unknown mode %q; run 'moofield modes' to see available modes", flagSimMode)
	}
	if flagSimRuns < 1 {
		return fmt.Errorf("--runs must be at least 1")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	base := flagSeed
	if base == 0 {
		base = time.Now().UnixNano()
	}
	cat := survival.Catalog()
	mode := survival.Mode(flagSimMode)
	dt := core.RuntimeConfig{TickRate: flagFPS}.TickMs()

	results := make([]simResult, flagSimRuns)
	sem := make(chan struct{}, max(flagSimParallel, 1))
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			seed := base + int64(i)
			w := sim.New(cat, seed, survival.WorldOptions(mode)...)
			bot := autopilot.New(w, logger.With("run", i+1, "seed", seed))
			st, err := bot.Run(ctx, flagSimTicks, dt)
			results[i] = simResult{seed: seed, stats: st, err: err}
		}()
	}
	wg.Wait()

	var store *storage.Store
	if !flagSimNoSave {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	fmt.Printf("  %-4s  %-20s  %8s  %4s  %5s  %8s  %7s\n", "#", "Seed", "Score", "Age", "Kills", "Gold", "Time")
	var failed error
	for i, r := range results {
		if r.err != nil && !errors.Is(r.err, context.Canceled) {
			logger.Error("run failed", "run", i+1, "seed", r.seed, "error", r.err)
			failed = r.err
			continue
		}
		fmt.Printf("  %-4d  %-20d  %8d  %4d  %5d  %8d  %7s\n",
			i+1, r.seed, r.stats.Score, r.stats.Age, r.stats.Kills, r.stats.Gold, clock(r.stats.SurvivedSec))
		if store != nil && r.err == nil {
			if _, err := store.SaveRun(storage.NewRunRecord(flagSimMode, storage.SourceSim, r.seed, r.stats)); err != nil {
				logger.Error("could not save run", "run", i+1, "error", err)
			}
		}
	}
	return failed
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/moofield/internal/core"
	"github.com/vovakirdan/moofield/internal/platform/tui"
	"github.com/vovakirdan/moofield/internal/registry"
	"github.com/vovakirdan/moofield/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (survival by default).

Controls:
  WASD/Arrows   - Move
  Mouse         - Aim
  Space/Click   - Use the active slot (hold to keep swinging)
  1-8           - Select toolbar slot (press again to cycle a group)
  F             - Dash (gear permitting)
  C             - Charge (gear permitting)
  E             - Shop
  Enter/Esc     - Confirm/close panels
  P             - Pause
  R             - Restart (after death)
  ?             - Help
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at the catalog's initial level

Examples:
  moofield play
  moofield play sandbox
  moofield play --difficulty hard --seed 42
  moofield play --catalog ./my-catalog.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// runtimeConfig sizes the session to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the run history. Play goes on without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	modeID := "survival"
	if len(args) == 1 {
		modeID = args[0]
	}
	if !registry.Exists(modeID) {
		return fmt.Errorf("unknown mode %q; run 'moofield modes' to see available modes", modeID)
	}

	game, err := registry.Create(modeID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// runMenu starts the mode picker session.
func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	return tui.RunSession(store, runtimeConfig(), logger)
}

// Package registry holds the game-mode factories. Modes register themselves in
// init() so the CLI and the TUI can list and start them by id.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/moofield/internal/core"
)

// Game is one playable session. Implementations hold pure simulation state;
// the platform owns input sampling, timing and terminal output.
type Game interface {
	// ID is the mode identifier used on the command line and in run history.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh session. Called once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the session by one tick of cfg.TickMs().
	Step(in core.Intent) core.StepResult

	// Render draws the session into a pre-cleared screen.
	Render(dst *core.Screen)

	// State reports score, game over and pause.
	State() core.GameState
}

// ModeInfo describes a registered mode.
type ModeInfo struct {
	ID      string
	Title   string
	Summary string
}

// Factory creates a new, not yet reset game.
type Factory func() Game

type entry struct {
	info    ModeInfo
	factory Factory
}

var (
	modes = make(map[string]entry)
	mu    sync.RWMutex
)

// Register adds a mode. Panics on a duplicate id.
func Register(id, summary string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}
	modes[id] = entry{
		info:    ModeInfo{ID: id, Title: f().Title(), Summary: summary},
		factory: f,
	}
}

// List returns every registered mode, sorted by id.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(modes))
	for _, e := range modes {
		result = append(result, e.info)
	}
	slices.SortFunc(result, func(a, b ModeInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// Create instantiates a mode by id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := modes[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}

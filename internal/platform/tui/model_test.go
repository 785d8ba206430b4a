package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/moofield/internal/core"
	"github.com/vovakirdan/moofield/internal/storage"
)

// fakeGame records what the model hands it.
type fakeGame struct {
	resets   int
	lastCfg  core.RuntimeConfig
	steps    []core.Intent
	aimCalls [][4]int
	over     bool
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.lastCfg = cfg
	g.over = false
}

func (g *fakeGame) Step(in core.Intent) core.StepResult {
	g.steps = append(g.steps, in.Clone())
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }

func (g *fakeGame) State() core.GameState {
	if !g.over {
		return core.GameState{Score: 10}
	}
	return core.GameState{Score: 42, GameOver: true, Final: &core.RunStats{Score: 42, Age: 3, Kills: 2, Gold: 7, SurvivedSec: 65}}
}

func (g *fakeGame) ScreenToWorld(x, y, w, h int) core.Vec2 {
	g.aimCalls = append(g.aimCalls, [4]int{x, y, w, h})
	return core.V(float64(x), float64(y))
}

func (g *fakeGame) last() core.Intent { return g.steps[len(g.steps)-1] }

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, store *storage.Store) (Model, *fakeGame) {
	t.Helper()
	g := &fakeGame{}
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 5}, storage.SourcePlay, nil)
	m.now = func() time.Time { return t0 }
	m.Init()
	return m, g
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func tick(t *testing.T, m Model, at time.Duration) Model {
	t.Helper()
	return update(t, m, TickMsg(t0.Add(at)))
}

func TestMovementLatch(t *testing.T) {
	m, g := newTestModel(t, nil)
	m = update(t, m, runeKey('d'))

	m = tick(t, m, 100*time.Millisecond)
	if in := g.last(); in.MoveX != 1 || in.MoveY != 0 {
		t.Errorf("within latch: move = (%d,%d), want (1,0)", in.MoveX, in.MoveY)
	}

	m = tick(t, m, 200*time.Millisecond)
	if in := g.last(); in.MoveX != 0 {
		t.Errorf("after latch: MoveX = %d, want 0", in.MoveX)
	}
}

func TestDiagonalLatch(t *testing.T) {
	m, g := newTestModel(t, nil)
	m = update(t, m, runeKey('w'))
	m = update(t, m, runeKey('a'))
	tick(t, m, 10*time.Millisecond)
	if in := g.last(); in.MoveX != -1 || in.MoveY != -1 {
		t.Errorf("move = (%d,%d), want (-1,-1)", in.MoveX, in.MoveY)
	}
}

func TestOneShotsClearedAfterTick(t *testing.T) {
	m, g := newTestModel(t, nil)
	m = update(t, m, runeKey('4'))
	m = update(t, m, runeKey('e'))

	m = tick(t, m, time.Millisecond)
	if in := g.last(); in.Slot != 4 || !in.Has(core.ActionShop) {
		t.Errorf("first tick intent = %+v, want slot 4 and shop", in)
	}

	tick(t, m, 2*time.Millisecond)
	if in := g.last(); in.Slot != 0 || in.Has(core.ActionShop) {
		t.Errorf("second tick intent = %+v, want cleared", in)
	}
}

func TestSpaceHoldsFire(t *testing.T) {
	m, g := newTestModel(t, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = tick(t, m, 50*time.Millisecond)
	if in := g.last(); !in.ActionHeld || !in.Has(core.ActionUse) {
		t.Errorf("intent = %+v, want held and use", in)
	}
	tick(t, m, time.Second)
	if g.last().ActionHeld {
		t.Error("held should expire without key repeat")
	}
}

func TestMouseAimAndHold(t *testing.T) {
	m, g := newTestModel(t, nil)
	m = update(t, m, tea.MouseMsg{X: 30, Y: 9, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = tick(t, m, time.Second)

	in := g.last()
	if !in.ActionHeld || !in.Has(core.ActionUse) {
		t.Errorf("press: intent = %+v, want held and use", in)
	}
	if in.Aim != core.V(30, 9) {
		t.Errorf("Aim = %v, want mouse cell (30,9)", in.Aim)
	}

	m = update(t, m, tea.MouseMsg{X: 31, Y: 9, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	tick(t, m, 2*time.Second)
	if g.last().ActionHeld {
		t.Error("release should clear held")
	}
}

func TestKeyboardAimAhead(t *testing.T) {
	m, g := newTestModel(t, nil)
	m = update(t, m, tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion})
	m = update(t, m, runeKey('w'))
	tick(t, m, time.Millisecond)

	want := core.V(40, 12-keyAimRows)
	if got := g.last().Aim; got != want {
		t.Errorf("Aim = %v, want %v ahead of the center", got, want)
	}
}

func TestRunSavedOnceAndRestart(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m, g := newTestModel(t, store)
	g.over = true
	m = tick(t, m, time.Millisecond)
	m = tick(t, m, 2*time.Millisecond)

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	if r := runs[0]; r.Mode != "fake" || r.Score != 42 || r.Age != 3 || r.Seed != 5 || r.Source != storage.SourcePlay {
		t.Errorf("saved run = %+v", r)
	}

	resets := g.resets
	m = update(t, m, runeKey('r'))
	m = tick(t, m, 3*time.Millisecond)
	if g.resets != resets+1 {
		t.Fatalf("restart should reset the game")
	}
	if m.runSaved || m.State().GameOver {
		t.Error("restart should clear the saved flag and game over state")
	}
}

func TestBackAfterGameOver(t *testing.T) {
	m, g := newTestModel(t, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back during play should not leave the game")
	}

	g.over = true
	m = tick(t, m, time.Millisecond)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back after game over should return to the menu")
	}
}

func TestResizeKeepsWorld(t *testing.T) {
	m, g := newTestModel(t, nil)
	resets := g.resets
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if g.resets != resets {
		t.Error("resize should not reset the game")
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, want 120x40", m.screen.Width(), m.screen.Height())
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = update(t, m, runeKey('?'))
	if m.screen.Height() >= 24 {
		t.Errorf("help should shrink the game screen, height = %d", m.screen.Height())
	}
	if !strings.Contains(m.View(), "shop") {
		t.Error("help block should list the shop binding")
	}
	m = update(t, m, runeKey('?'))
	if m.screen.Height() != 24 {
		t.Errorf("screen height = %d after closing help, want 24", m.screen.Height())
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = update(t, m, runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit and blank the view")
	}
}

package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/moofield/internal/core"
	"github.com/vovakirdan/moofield/internal/registry"
	"github.com/vovakirdan/moofield/internal/storage"
)

func init() {
	registry.Register("fake", "A stand-in mode.", func() registry.Game { return &fakeGame{} })
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestSessionFlow(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	if _, err := store.SaveRun(storage.NewRunRecord("fake", storage.SourceSSH, 1, core.RunStats{Score: 99})); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	m := NewSessionModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, storage.SourceSSH, nil)
	if !strings.Contains(m.View(), "best 99") {
		t.Error("menu should show the best score per mode")
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.active != screenHistory {
		t.Fatalf("tab should open history, active = %v", m.active)
	}
	if !strings.Contains(m.View(), "RUN HISTORY") {
		t.Error("history view missing title")
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.active != screenMenu {
		t.Fatalf("esc should return to the menu, active = %v", m.active)
	}

	for m.menu.items[m.menu.cursor].ModeID != "fake" {
		m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.active != screenGame || m.game == nil {
		t.Fatalf("enter should start the mode, active = %v", m.active)
	}
	if m.game.source != storage.SourceSSH {
		t.Errorf("game source = %q, want ssh", m.game.source)
	}

	m = updateSession(t, m, runeKey('q'))
	if !m.quitting || m.View() != "" {
		t.Error("q in game should end the session")
	}
}

func TestHistoryTabs(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	for _, s := range []int{5, 50} {
		store.SaveRun(storage.NewRunRecord("fake", storage.SourcePlay, 1, core.RunStats{Score: s}))
	}

	h := NewHistoryModel(store, 100, 30)
	if h.tabs[0].mode != "" || len(h.runs) != 2 || h.runs[0].Score != 50 {
		t.Fatalf("recent tab runs = %+v", h.runs)
	}

	for h.tabs[h.tab].mode != "fake" {
		next, _ := h.Update(tea.KeyMsg{Type: tea.KeyTab})
		h = next.(HistoryModel)
	}
	if h.stats == nil || h.stats.Runs != 2 || h.stats.BestScore != 50 {
		t.Errorf("fake tab stats = %+v", h.stats)
	}
	if !strings.Contains(h.View(), "2 runs") {
		t.Error("history view should summarize the mode")
	}
}

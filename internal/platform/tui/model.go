package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/moofield/internal/core"
	"github.com/vovakirdan/moofield/internal/registry"
	"github.com/vovakirdan/moofield/internal/storage"
)

// aimer is implemented by modes that map screen cells to world coordinates.
type aimer interface {
	ScreenToWorld(x, y, screenW, screenH int) core.Vec2
}

// Keyboard aim offset from the screen center, in cells.
const (
	keyAimCols = 10
	keyAimRows = 5
)

// Model is the Bubble Tea model for one running session.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	store    *storage.Store
	config   core.RuntimeConfig
	source   string
	logger   *log.Logger
	keys     KeyMap
	help     help.Model
	showHelp bool
	now      func() time.Time

	intent core.Intent
	latch  inputLatch

	// Aim state: the last mouse cell, or the last keyboard heading.
	aimX, aimY   int
	mouseAim     bool
	faceX, faceY int

	gameState  core.GameState
	quitting   bool
	backToMenu bool
	exitOnBack bool
	runSaved   bool // Whether the run has been recorded for the current game over
	lastRunID  int64
}

// NewModel creates a new Bubble Tea model for the given game.
// Source tags saved runs (storage.SourcePlay or storage.SourceSSH).
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, source string, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.ShowAll = true

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		source: source,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   h,
		now:    time.Now,
		intent: core.NewIntent(),
		faceX:  1,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey records the key in the latch or as a one-shot action.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ev := m.keys.Translate(msg)
	switch {
	case ev.Quit:
		m.quitting = true
		return m, tea.Quit
	case ev.Shot:
		m.saveScreenshot()
		return m, nil
	case ev.Help:
		m.showHelp = !m.showHelp
		m.layout()
		return m, nil
	}

	if m.gameState.GameOver && ev.Action == core.ActionBack {
		if m.exitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	}

	if ev.MoveX != 0 || ev.MoveY != 0 {
		m.mouseAim = false
		m.faceX, m.faceY = ev.MoveX, ev.MoveY
	}
	m.latch.press(ev, m.now())
	if ev.Action != core.ActionNone {
		m.intent.Set(ev.Action)
	}
	if ev.Slot > 0 {
		m.intent.Slot = ev.Slot
	}
	return m, nil
}

// handleMouse tracks the aim cell and left button state.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.aimX, m.aimY = msg.X, msg.Y
	m.mouseAim = true

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.latch.mouseHeld = true
			m.intent.Set(core.ActionUse)
		}
	case tea.MouseActionRelease:
		m.latch.mouseHeld = false
	}
	return m, nil
}

// handleResize processes window resize events. The world keeps running;
// only the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.layout()
	return m, nil
}

// layout sizes the game screen, leaving room for the help block when shown.
func (m *Model) layout() {
	h := m.config.ScreenH
	if m.showHelp {
		h -= strings.Count(m.help.View(m.keys), "\n") + 1
	}
	m.screen.Resize(m.config.ScreenW, max(h, 0))
}

// handleTick builds the intent for this tick and steps the game.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.intent.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.latch.reset()
		m.intent.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	in := m.intent
	in.MoveX, in.MoveY, in.ActionHeld = m.latch.sample(now)
	in.Aim = m.aim()

	result := m.game.Step(in)
	m.gameState = result.State

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	m.intent.Clear()
	return m, tickCmd(m.config.TickRate)
}

// aim resolves the aim point: the mouse cell if the mouse moved last,
// otherwise a point ahead of the last keyboard heading.
func (m Model) aim() core.Vec2 {
	a, ok := m.game.(aimer)
	if !ok {
		return core.Vec2{}
	}
	w, h := m.screen.Width(), m.screen.Height()
	x, y := m.aimX, m.aimY
	if !m.mouseAim {
		x = w/2 + m.faceX*keyAimCols
		y = h/2 + m.faceY*keyAimRows
	}
	return a.ScreenToWorld(x, y, w, h)
}

// saveRun records the finished session. Failures are logged and the game continues.
func (m *Model) saveRun() {
	if m.store == nil || m.gameState.Final == nil {
		return
	}
	rec := storage.NewRunRecord(m.game.ID(), m.source, m.config.Seed, *m.gameState.Final)
	id, err := m.store.SaveRun(rec)
	if err != nil {
		m.logger.Error("could not save run", "mode", rec.Mode, "error", err)
		return
	}
	m.lastRunID = id
	m.logger.Debug("run saved", "id", id, "mode", rec.Mode, "score", rec.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".moofield", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)
	if m.showHelp {
		out += "\n" + helpStyle.Render(m.help.View(m.keys))
	}
	return out
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user left a finished game for the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last reported game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for a single local session.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, storage.SourcePlay, logger)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // Aim follows the pointer
	)

	_, err := p.Run()
	return err
}

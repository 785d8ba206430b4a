// Package survival adapts the simulation to the platform's Game interface:
// it owns the world, the overlay panels and the camera.
package survival

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/moofield/internal/config"
	"github.com/vovakirdan/moofield/internal/core"
	"github.com/vovakirdan/moofield/internal/registry"
	"github.com/vovakirdan/moofield/internal/sim"
)

// Mode selects the starting stock.
type Mode string

const (
	ModeSurvival Mode = "survival"
	ModeSandbox  Mode = "sandbox"
)

// Sandbox starting stock.
const (
	sandboxGold  = 9999999
	sandboxWood  = 9999990
	sandboxStone = 99990
)

// Panel is the overlay currently shown over the world.
type Panel int

const (
	PanelNone Panel = iota
	PanelAgeUp
	PanelShop
)

// Package-level settings, applied on the next Reset.
var (
	configPath       string
	difficultyPreset string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom catalog file.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetLogger routes session and simulation logs.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// feedLine is a transient HUD message.
type feedLine struct {
	text  string
	color core.Color
	ttl   float64 // ms
}

// Game is one survival session.
type Game struct {
	mode  Mode
	cfg   core.RuntimeConfig
	world *sim.World

	panel    Panel
	cursor   int
	shopSlot sim.GearSlot
	paused   bool

	feed   []feedLine
	notice feedLine
}

// New creates a survival-mode game.
func New() *Game {
	return &Game{mode: ModeSurvival}
}

// NewSandbox creates a game with effectively unlimited materials.
func NewSandbox() *Game {
	return &Game{mode: ModeSandbox}
}

func init() {
	registry.Register(string(ModeSurvival), "Gather, build and outlive the wildlife", func() registry.Game {
		return New()
	})
	registry.Register(string(ModeSandbox), "Unlimited materials for trying out builds", func() registry.Game {
		return NewSandbox()
	})
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSandbox {
		return "Moofield (Sandbox)"
	}
	return "Moofield"
}

// Catalog resolves the catalog for a new session from the configured path
// and difficulty. Load errors fall back to the built-in defaults so a bad
// file never blocks play.
func Catalog() *config.Catalog {
	cat, err := config.LoadCatalog(configPath)
	if err != nil {
		logger.Warn("using built-in catalog", "err", err)
		cat = config.DefaultCatalog()
	}
	if difficultyPreset != "" {
		if preset, ok := config.ParsePreset(difficultyPreset); ok {
			config.ApplyPreset(cat, preset)
		} else {
			logger.Warn("ignoring unknown difficulty", "preset", difficultyPreset)
		}
	}
	return cat
}

// WorldOptions returns the world options a mode starts with.
func WorldOptions(mode Mode) []sim.Option {
	opts := []sim.Option{sim.WithLogger(logger)}
	if mode == ModeSandbox {
		opts = append(opts, sim.WithStartingStock(sandboxGold, sandboxWood, sandboxStone))
	}
	return opts
}

// Reset starts a fresh session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.ResetWith(Catalog())
}

// ResetWith starts a fresh session from an explicit catalog.
func (g *Game) ResetWith(cat *config.Catalog) {
	g.world = sim.New(cat, g.cfg.Seed, WorldOptions(g.mode)...)
	g.panel = PanelNone
	g.cursor = 0
	g.shopSlot = sim.GearHat
	g.paused = false
	g.feed = nil
	g.notice = feedLine{}
	g.collectEvents()
	logger.Debug("session started", "mode", g.mode, "seed", g.cfg.Seed)
}

// World exposes the running simulation.
func (g *Game) World() *sim.World {
	return g.world
}

// Panel returns the open overlay.
func (g *Game) Panel() Panel {
	return g.panel
}

// Step handles panel commands and advances the world by one tick.
func (g *Game) Step(in core.Intent) core.StepResult {
	if g.world == nil {
		g.Reset(g.cfg)
	}
	dt := g.cfg.TickMs()
	g.ageFeed(dt)

	if g.world.Over() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.panel == PanelNone {
		g.paused = !g.paused
	}
	if g.world.Pending() != nil {
		if g.panel != PanelAgeUp {
			g.panel, g.cursor = PanelAgeUp, 0
		}
	} else if g.panel == PanelAgeUp {
		g.panel, g.cursor = PanelNone, 0
	}

	switch g.panel {
	case PanelAgeUp:
		g.stepAgeUp(in)
	case PanelShop:
		g.stepShop(in)
	default:
		if in.Has(core.ActionShop) {
			g.panel, g.cursor = PanelShop, 0
			break
		}
		if !g.paused {
			g.world.Tick(in, dt)
		}
	}
	g.collectEvents()
	return core.StepResult{State: g.State()}
}

// State reports the session state. Any open panel counts as paused.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	st := g.world.State()
	st.Paused = st.Paused || g.paused || g.panel != PanelNone
	return st
}

func (g *Game) moveCursor(in core.Intent, n int) {
	if n == 0 {
		g.cursor = 0
		return
	}
	if in.Has(core.ActionUp) {
		g.cursor = (g.cursor - 1 + n) % n
	}
	if in.Has(core.ActionDown) {
		g.cursor = (g.cursor + 1) % n
	}
	g.cursor = core.Clamp(g.cursor, 0, n-1)
}

func (g *Game) stepAgeUp(in core.Intent) {
	pc := g.world.Pending()
	if pc == nil {
		return
	}
	g.moveCursor(in, len(pc.Options))
	switch {
	case in.Has(core.ActionConfirm):
		if err := g.world.ChooseUnlock(pc.Options[g.cursor]); err != nil {
			g.setNotice(err.Error())
			return
		}
		g.cursor = 0
	case in.Has(core.ActionBack):
		if err := g.world.SkipUnlock(); err == nil {
			g.cursor = 0
		}
	}
	if g.world.Pending() == nil {
		g.panel = PanelNone
	}
}

func (g *Game) stepShop(in core.Intent) {
	if in.Has(core.ActionShop) || in.Has(core.ActionBack) {
		g.panel, g.cursor = PanelNone, 0
		return
	}
	switch in.Slot {
	case 1:
		g.shopSlot, g.cursor = sim.GearHat, 0
	case 2:
		g.shopSlot, g.cursor = sim.GearAccessory, 0
	}
	items := g.world.ShopListing(g.shopSlot)
	g.moveCursor(in, len(items))
	if in.Has(core.ActionConfirm) && len(items) > 0 {
		if err := g.world.ShopSelect(g.shopSlot, items[g.cursor].ID); err != nil {
			g.setNotice(err.Error())
		}
	}
}

func (g *Game) setNotice(text string) {
	g.notice = feedLine{text: text, color: core.ColorYellow, ttl: 2000}
}

const (
	feedTTL   = 4000
	feedLines = 5
)

// collectEvents turns simulation events into HUD lines.
func (g *Game) collectEvents() {
	for _, e := range g.world.DrainEvents() {
		switch e.Kind {
		case sim.EventAnnounce:
			g.pushFeed(e.Text, core.ColorBrightYellow)
		case sim.EventKillFeed:
			g.pushFeed(e.Text, core.ColorWhite)
		case sim.EventUnlock:
			g.pushFeed("Unlocked "+g.world.Catalog().DisplayName(e.Text), core.ColorBrightGreen)
		case sim.EventNotice:
			g.setNotice(e.Text)
		case sim.EventDeath:
			g.pushFeed("You died", core.ColorBrightRed)
		}
	}
}

func (g *Game) pushFeed(text string, c core.Color) {
	g.feed = append(g.feed, feedLine{text: text, color: c, ttl: feedTTL})
	if len(g.feed) > feedLines {
		g.feed = g.feed[len(g.feed)-feedLines:]
	}
}

func (g *Game) ageFeed(dt float64) {
	for i := range g.feed {
		g.feed[i].ttl -= dt
	}
	g.feed = slices.DeleteFunc(g.feed, func(l feedLine) bool { return l.ttl <= 0 })
	g.notice.ttl = max(0, g.notice.ttl-dt)
}

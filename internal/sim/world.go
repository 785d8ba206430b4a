package sim

import (
	"io"
	"math"
	"math/rand"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/moofield/internal/config"
	"github.com/vovakirdan/moofield/internal/core"
)

// World owns every entity of one session. It is not safe for concurrent use;
// a single goroutine drives Tick and reads Snapshot between ticks.
type World struct {
	cat  *config.Catalog
	rng  *rand.Rand
	log  *log.Logger
	diff *config.DifficultyManager

	player      Player
	resources   []Resource
	buildings   []Building
	enemies     []Enemy
	projectiles []Projectile
	shots       []pendingShot
	choices     []PendingChoice

	events []Event
	nextID EntityID
	ticks  uint64
	final  *core.RunStats
}

// Option configures a World.
type Option func(*World)

// WithLogger routes simulation logs to l.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithStartingStock overrides the catalog's starting materials.
func WithStartingStock(gold, wood, stone float64) Option {
	return func(w *World) {
		w.player.Gold = gold
		w.player.Wood = wood
		w.player.Stone = stone
	}
}

// New creates a world populated from the catalog. The same catalog and seed
// always produce the same session.
func New(cat *config.Catalog, seed int64, opts ...Option) *World {
	w := &World{
		cat:  cat,
		rng:  rand.New(rand.NewSource(seed)),
		log:  log.New(io.Discard),
		diff: config.NewDifficultyManager(cat.Difficulty),
	}
	w.player = newPlayer(cat)
	for _, opt := range opts {
		opt(w)
	}
	w.recomputeMods()
	w.populate()
	return w
}

func (w *World) allocID() EntityID {
	w.nextID++
	return w.nextID
}

// Catalog returns the catalog the world was built from.
func (w *World) Catalog() *config.Catalog {
	return w.cat
}

// Over reports whether the player has died.
func (w *World) Over() bool {
	return w.final != nil
}

// Final returns the death stats, or nil while the player lives.
func (w *World) Final() *core.RunStats {
	return w.final
}

// Paused reports whether an age-up choice is waiting.
func (w *World) Paused() bool {
	return len(w.choices) > 0
}

// State summarises the session for the platform layer.
func (w *World) State() core.GameState {
	return core.GameState{
		Score:    int(w.player.Score),
		GameOver: w.Over(),
		Paused:   w.Paused(),
		Final:    w.final,
	}
}

// Tick advances the world by dtMs, clamped to the catalog's max step. Nothing
// moves while the player is dead or an age-up choice is pending.
func (w *World) Tick(in core.Intent, dtMs float64) core.StepResult {
	if w.Over() || w.Paused() {
		return core.StepResult{State: w.State()}
	}
	dt := min(dtMs, w.cat.Clock.MaxDtMs)
	if dt <= 0 {
		return core.StepResult{State: w.State()}
	}
	w.ticks++

	w.tickPlayer(in, dt)
	if !w.Over() {
		w.tickEnemies(dt)
		w.tickBuildings(dt)
		w.tickSpawns(dt)
		w.tickProjectiles(dt)
		w.tickCosmetic(dt)
	}
	return core.StepResult{State: w.State()}
}

// Snapshot is a deep, read-only copy of the world between ticks.
type Snapshot struct {
	Tick        uint64
	Player      Player
	Resources   []Resource
	Buildings   []Building
	Enemies     []Enemy
	Projectiles []Projectile
	Pending     *PendingChoice
	Final       *core.RunStats
}

// Snapshot copies the current state. Mutating the copy never affects the world.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:        w.ticks,
		Player:      w.player.clone(),
		Resources:   slices.Clone(w.resources),
		Buildings:   slices.Clone(w.buildings),
		Enemies:     slices.Clone(w.enemies),
		Projectiles: slices.Clone(w.projectiles),
		Pending:     w.Pending(),
	}
	for i := range s.Projectiles {
		s.Projectiles[i].Hits = slices.Clone(s.Projectiles[i].Hits)
	}
	if w.final != nil {
		f := *w.final
		s.Final = &f
	}
	return s
}

// Player returns a copy of the player.
func (w *World) Player() Player {
	return w.player.clone()
}

func (w *World) die() {
	p := &w.player
	if !p.Alive {
		return
	}
	p.Alive = false
	p.Health = 0
	w.final = &core.RunStats{
		Score:       int(p.Score),
		Age:         p.Age,
		Kills:       p.Kills,
		Gold:        int(p.Gold),
		SurvivedSec: int(p.TimeSurvived / 1000),
	}
	w.emit(Event{Kind: EventDeath, Pos: p.Pos})
	w.log.Info("player died",
		"score", w.final.Score,
		"age", w.final.Age,
		"kills", w.final.Kills,
		"survived", w.final.SurvivedSec)
}

func (w *World) tickCosmetic(dt float64) {
	for i := range w.buildings {
		b := &w.buildings[i]
		if !b.Alive {
			continue
		}
		if def, ok := w.cat.Building(b.Kind); ok && def.Spins {
			b.SpinPhase = math.Mod(b.SpinPhase+dt/1000*2*math.Pi, 2*math.Pi)
		}
	}
}

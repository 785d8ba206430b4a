// Package autopilot drives a world without a terminal. A Bot observes a
// snapshot each tick, decides on an intent and feeds it back, the same way
// a human session does through the TUI.
package autopilot

import (
	"cmp"
	"context"
	"errors"
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/moofield/internal/config"
	"github.com/vovakirdan/moofield/internal/core"
	"github.com/vovakirdan/moofield/internal/sim"
)

const (
	threatRange    = 260.0  // Aggressive enemies closer than this are fought
	placeEveryMs   = 5000.0 // Time between building attempts
	shopEveryTicks = 120
	eatBelow       = 0.5 // Eat when health falls under this fraction
	hungryBelow    = 0.3 // or food under this one
)

// ErrNoProgress is returned when the world stops advancing before the run ends.
var ErrNoProgress = errors.New("autopilot: world is not advancing")

// Bot plays one world.
type Bot struct {
	w   *sim.World
	cat *config.Catalog
	log *log.Logger

	sincePlace float64
	ticks      int
}

// New creates a bot for w. A nil logger discards output.
func New(w *sim.World, l *log.Logger) *Bot {
	if l == nil {
		l = log.New(io.Discard)
	}
	return &Bot{w: w, cat: w.Catalog(), log: l}
}

// Run plays until the player dies, maxTicks elapse or ctx is cancelled,
// and returns the final tally. A run cut short reports the stats so far.
func (b *Bot) Run(ctx context.Context, maxTicks int, dtMs float64) (core.RunStats, error) {
	for i := 0; maxTicks <= 0 || i < maxTicks; i++ {
		select {
		case <-ctx.Done():
			return b.stats(), ctx.Err()
		default:
		}

		if b.w.Over() {
			break
		}
		b.manage()
		if b.w.Paused() {
			return b.stats(), ErrNoProgress
		}
		b.w.Tick(b.Decide(), dtMs)
		b.w.DrainEvents()
		b.sincePlace += dtMs
		b.ticks++
	}
	st := b.stats()
	b.log.Info("run finished", "ticks", b.ticks, "score", st.Score, "age", st.Age, "kills", st.Kills, "dead", b.w.Over())
	return st, nil
}

func (b *Bot) stats() core.RunStats {
	if f := b.w.Final(); f != nil {
		return *f
	}
	p := b.w.Player()
	return core.RunStats{
		Score:       int(p.Score),
		Age:         p.Age,
		Kills:       p.Kills,
		Gold:        int(p.Gold),
		SurvivedSec: int(p.TimeSurvived / 1000),
	}
}

// manage handles the menus: age-up choices and the shop.
func (b *Bot) manage() {
	for pc := b.w.Pending(); pc != nil; pc = b.w.Pending() {
		if len(pc.Options) == 0 {
			if err := b.w.SkipUnlock(); err != nil {
				b.log.Warn("skip unlock failed", "error", err)
				return
			}
			continue
		}
		pick := b.pickUnlock(pc.Options)
		if err := b.w.ChooseUnlock(pick); err != nil {
			b.log.Warn("unlock failed", "item", pick, "error", err)
			return
		}
		b.log.Debug("unlocked", "age", pc.Age, "item", pick)
	}

	if b.ticks%shopEveryTicks == 0 {
		b.shop(sim.GearHat)
		b.shop(sim.GearAccessory)
	}
}

// pickUnlock prefers weapons, then mills, then whatever is first.
func (b *Bot) pickUnlock(options []string) string {
	for _, id := range options {
		if b.cat.Kind(id) == config.ItemWeapon && !b.cat.Weapon(id).Secondary {
			return id
		}
	}
	for _, id := range options {
		if def, ok := b.cat.Building(id); ok && def.PassiveGold > 0 {
			return id
		}
	}
	return options[0]
}

// shop buys the most expensive affordable item the player does not own yet.
func (b *Bot) shop(slot sim.GearSlot) {
	gold := b.w.Player().Gold
	var best *sim.ShopItem
	for _, item := range b.w.ShopListing(slot) {
		if item.Owned || item.Def.Cost > gold {
			continue
		}
		if best == nil || item.Def.Cost > best.Def.Cost {
			best = &item
		}
	}
	if best == nil || best.Def.Cost == 0 {
		return
	}
	if err := b.w.ShopSelect(slot, best.ID); err != nil {
		b.log.Warn("purchase failed", "slot", slot, "item", best.ID, "error", err)
		return
	}
	b.log.Debug("bought", "slot", slot, "item", best.ID, "cost", best.Def.Cost)
}

// Decide picks this tick's intent: eat when hurt, fight nearby threats,
// place a mill now and then, otherwise gather the nearest resource.
func (b *Bot) Decide() core.Intent {
	in := core.NewIntent()
	snap := b.w.Snapshot()
	p := &snap.Player
	if !p.Alive || snap.Pending != nil {
		return in
	}
	in.Aim = p.Pos.Add(core.FromAngle(p.Angle, 50))

	hurt := p.Health < p.MaxHealth*eatBelow
	hungry := p.Food < p.MaxFood*hungryBelow
	if (hurt || hungry) && b.canEat(p) {
		b.useSlot(&in, p, sim.SlotConsumable)
		return in
	}

	weapon := b.cat.Weapon(b.w.SlotItem(sim.SlotPrimary).ID)
	reach := max(weapon.Range, 30)

	if e := b.nearestThreat(&snap); e != nil {
		def, _ := b.cat.Enemy(e.Kind)
		b.engage(&in, p, e.Pos, def.Size+reach*0.8)
		return in
	}

	if b.sincePlace >= placeEveryMs {
		b.sincePlace = 0
		if item := b.w.SlotItem(sim.SlotMill); item.ID != "" && b.affordable(p, item.ID) {
			b.useSlot(&in, p, sim.SlotMill)
			return in
		}
	}

	if r := b.nearestResource(&snap); r != nil {
		b.engage(&in, p, r.Pos, r.Size+reach*0.8)
		return in
	}

	// Nothing in sight: wander toward the middle of the map.
	mid := core.V(b.cat.World.Width/2, b.cat.World.Height/2)
	b.moveToward(&in, p.Pos, mid)
	return in
}

// engage walks to within stand of target and swings the primary weapon.
func (b *Bot) engage(in *core.Intent, p *sim.Player, target core.Vec2, stand float64) {
	in.Aim = target
	b.selectSlot(in, p, sim.SlotPrimary)
	if core.Dist(p.Pos, target) > stand {
		b.moveToward(in, p.Pos, target)
		return
	}
	in.ActionHeld = true
}

func (b *Bot) moveToward(in *core.Intent, from, to core.Vec2) {
	d := to.Sub(from)
	in.MoveX = axis(d.X)
	in.MoveY = axis(d.Y)
}

func axis(v float64) int {
	const dead = 8.0
	switch {
	case v > dead:
		return 1
	case v < -dead:
		return -1
	}
	return 0
}

// useSlot selects slot i if needed and triggers it once.
func (b *Bot) useSlot(in *core.Intent, p *sim.Player, i int) {
	b.selectSlot(in, p, i)
	in.Set(core.ActionUse)
}

// selectSlot requests slot i. Re-selecting the active slot would cycle its
// group, so the request is only made on change.
func (b *Bot) selectSlot(in *core.Intent, p *sim.Player, i int) {
	if p.ActiveSlot != i {
		in.Slot = i + 1
	}
}

// canEat reports whether the consumable slot would do any good right now.
func (b *Bot) canEat(p *sim.Player) bool {
	id := b.w.SlotItem(sim.SlotConsumable).ID
	def, ok := b.cat.Consumable(id)
	if !ok || p.AttackTimer > 0 || p.Food < def.FoodCost {
		return false
	}
	heals := def.HealthRestore > 0 || def.HealthRegen > 0
	return heals || p.Food+def.FoodRestore <= p.MaxFood
}

func (b *Bot) affordable(p *sim.Player, id string) bool {
	def, ok := b.cat.Building(id)
	if !ok {
		return false
	}
	return p.Wood >= def.Cost.Wood && p.Stone >= def.Cost.Stone && p.Food >= def.Cost.Food
}

// nearestThreat returns the closest living enemy that will attack the player.
func (b *Bot) nearestThreat(snap *sim.Snapshot) *sim.Enemy {
	var best *sim.Enemy
	bestD := math.Inf(1)
	for i := range snap.Enemies {
		e := &snap.Enemies[i]
		if !e.Alive {
			continue
		}
		def, _ := b.cat.Enemy(e.Kind)
		if !def.Aggressive && !e.Boss {
			continue
		}
		if d := core.Dist(snap.Player.Pos, e.Pos); d < threatRange && d < bestD {
			best, bestD = e, d
		}
	}
	return best
}

// nearestResource returns the closest living resource that yields something
// and does not hurt to touch.
func (b *Bot) nearestResource(snap *sim.Snapshot) *sim.Resource {
	alive := slices.DeleteFunc(slices.Clone(snap.Resources), func(r sim.Resource) bool {
		def, ok := b.cat.Resource(r.Kind)
		return !r.Alive || !ok || def.Yield == nil || def.TouchDamage > 0
	})
	if len(alive) == 0 {
		return nil
	}
	from := snap.Player.Pos
	r := slices.MinFunc(alive, func(x, y sim.Resource) int {
		return cmp.Compare(core.Dist(from, x.Pos), core.Dist(from, y.Pos))
	})
	return &r
}

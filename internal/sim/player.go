package sim

import (
	"math"
	"slices"

	"github.com/vovakirdan/moofield/internal/config"
	"github.com/vovakirdan/moofield/internal/core"
)

// Player is the single controllable entity.
type Player struct {
	Pos   core.Vec2
	Vel   core.Vec2
	Aim   core.Vec2
	Angle float64
	Size  float64

	Health        float64
	MaxHealth     float64
	BaseMaxHealth float64 // MaxHealth before gear bonuses
	Food          float64
	MaxFood       float64

	Age   int
	XP    int
	Gold  float64
	Wood  float64
	Stone float64

	Score        float64
	Kills        int
	TimeSurvived float64 // ms

	HatID         string
	AccessoryID   string
	PrimaryWeapon string

	UnlockedWeapons     []string
	UnlockedBuildings   []string
	UnlockedConsumables []string
	OwnedHats           []string
	OwnedAccessories    []string

	AttackTimer    float64
	DashCooldown   float64
	FlashTimer     float64
	TurretCooldown float64
	Poison         Status
	Burn           Status
	Regen          Status // Heal over time from food

	Mods              Modifiers
	Alive             bool
	Charging          bool
	LegendaryUnlocked bool
	ActiveSlot        int
	SlotCursor        [core.SlotCount]int

	pad EntityID // Pad the player is standing on
}

func newPlayer(cat *config.Catalog) Player {
	pc := cat.Player
	p := Player{
		Pos:                 core.V(cat.World.Width/2, cat.World.Height/2),
		Size:                pc.Size,
		Health:              pc.MaxHealth,
		MaxHealth:           pc.MaxHealth,
		BaseMaxHealth:       pc.MaxHealth,
		Food:                pc.MaxFood,
		MaxFood:             pc.MaxFood,
		Age:                 1,
		Gold:                pc.StartGold,
		Wood:                pc.StartWood,
		Stone:               pc.StartStone,
		HatID:               config.NoneID,
		AccessoryID:         config.NoneID,
		PrimaryWeapon:       pc.StartWeapon,
		UnlockedWeapons:     []string{pc.StartWeapon},
		UnlockedBuildings:   slices.Clone(pc.StartBuildings),
		UnlockedConsumables: slices.Clone(pc.StartConsumables),
		OwnedHats:           []string{config.NoneID},
		OwnedAccessories:    []string{config.NoneID},
		Mods:                NeutralModifiers(),
		Alive:               true,
	}
	p.Aim = p.Pos
	return p
}

func (p Player) clone() Player {
	p.UnlockedWeapons = slices.Clone(p.UnlockedWeapons)
	p.UnlockedBuildings = slices.Clone(p.UnlockedBuildings)
	p.UnlockedConsumables = slices.Clone(p.UnlockedConsumables)
	p.OwnedHats = slices.Clone(p.OwnedHats)
	p.OwnedAccessories = slices.Clone(p.OwnedAccessories)
	return p
}

// HealthFrac returns health as a fraction of max health.
func (p *Player) HealthFrac() float64 {
	if p.MaxHealth <= 0 {
		return 0
	}
	return p.Health / p.MaxHealth
}

// material returns a pointer to the stock of the named material.
func (p *Player) material(name string) *float64 {
	switch name {
	case config.MaterialWood:
		return &p.Wood
	case config.MaterialStone:
		return &p.Stone
	case config.MaterialFood:
		return &p.Food
	case config.MaterialGold:
		return &p.Gold
	default:
		return nil
	}
}

func (p *Player) heal(amount float64) float64 {
	if amount <= 0 || p.Mods.NoHeal {
		return 0
	}
	before := p.Health
	p.Health = min(p.MaxHealth, p.Health+amount)
	return p.Health - before
}

func (p *Player) feed(amount float64) {
	p.Food = core.ClampF(p.Food+amount, 0, p.MaxFood)
}

func appendUnique(list []string, id string) []string {
	if slices.Contains(list, id) {
		return list
	}
	return append(list, id)
}

// tickPlayer is the player stage: input, movement, timers, upkeep and death.
func (w *World) tickPlayer(in core.Intent, dt float64) {
	p := &w.player
	rules := &w.cat.Rules
	world := &w.cat.World

	if in.Slot >= 1 && in.Slot <= core.SlotCount {
		w.selectSlot(in.Slot - 1)
	}

	// Facing
	p.Aim = in.Aim
	p.Angle = core.AngleTo(p.Pos, in.Aim)

	// Movement
	dir := in.Move().Normalize()
	if p.Mods.ChargeEnabled && in.Has(core.ActionCharge) {
		heading := dir
		if heading == (core.Vec2{}) {
			heading = core.FromAngle(p.Angle, 1)
		}
		p.Charging = true
		p.Vel = heading.Scale(rules.PlayerChargeSpeed)
		if p.Health > 1 {
			p.Health = max(1, p.Health-p.Mods.HealthDrain*dt/1000)
		}
	} else {
		p.Charging = false
		p.Vel = core.LerpVec(p.Vel, dir.Scale(w.playerSpeed()), rules.MoveBlend)
	}
	if in.Has(core.ActionDash) {
		w.Dash()
	}

	p.Pos = p.Pos.Add(p.Vel)
	w.clampToWorld(&p.Pos, p.Size)

	if world.RiverEnabled && math.Abs(p.Pos.X-world.Width*world.RiverX) < world.RiverWidth/2 {
		p.Pos.Y += world.RiverCurrent * (1 - p.Mods.RiverResist)
		w.clampToWorld(&p.Pos, p.Size)
	}
	w.usePads()

	// Cooldowns
	p.AttackTimer = max(0, p.AttackTimer-dt)
	p.DashCooldown = max(0, p.DashCooldown-dt)
	p.FlashTimer = max(0, p.FlashTimer-dt)
	p.TurretCooldown = max(0, p.TurretCooldown-dt)

	// Upkeep
	p.Food = max(0, p.Food-w.cat.Player.FoodDecayRate)
	if p.Food > w.cat.Player.RegenFoodThreshold {
		p.heal(w.cat.Player.HealthRegenRate)
	}
	p.heal(p.Mods.RegenPerTick())
	p.heal(p.Regen.advance(dt))
	for i := range w.buildings {
		b := &w.buildings[i]
		if !b.Armed() {
			continue
		}
		def, _ := w.cat.Building(b.Kind)
		if def.Heal != nil && core.Dist(p.Pos, b.Pos) < def.Heal.Radius {
			p.heal(def.Heal.Rate)
		}
	}

	p.Health -= p.Poison.advance(dt) + p.Burn.advance(dt)

	for i := range w.resources {
		r := &w.resources[i]
		if !r.Alive {
			continue
		}
		def, _ := w.cat.Resource(r.Kind)
		if def.TouchDamage > 0 && core.Dist(p.Pos, r.Pos) < p.Size+r.Size {
			p.Health -= def.TouchDamage * dt / 1000
		}
	}

	for i := range w.buildings {
		b := &w.buildings[i]
		if b.Owner != OwnerPlayer || !b.Armed() {
			continue
		}
		if def, _ := w.cat.Building(b.Kind); def.PassiveGold > 0 {
			p.Gold += def.PassiveGold * dt / 1000
		}
	}

	p.Health = core.ClampF(p.Health, 0, p.MaxHealth)
	p.Food = core.ClampF(p.Food, 0, p.MaxFood)
	if p.Health <= 0 {
		w.die()
		return
	}

	// Actions
	if in.Has(core.ActionUse) || (in.ActionHeld && p.AttackTimer <= 0) {
		w.ResolveAction()
	}
	w.fireTurretHat()
	w.firePendingShots(dt)

	p.TimeSurvived += dt
	p.Score += dt / 1000
}

// playerSpeed is the base speed with gear and the wielded weapon applied.
func (w *World) playerSpeed() float64 {
	p := &w.player
	base := w.cat.Player.Speed
	if item := w.SlotItem(p.ActiveSlot); item.Kind == config.ItemWeapon {
		if m := w.cat.Weapon(item.ID).SpeedMult; m > 0 {
			base *= m
		}
	}
	return p.Mods.Speed(base, p.HealthFrac())
}

// Dash launches the player toward the aim point if the gear allows it.
func (w *World) Dash() {
	p := &w.player
	if !p.Mods.CanDash || p.DashCooldown > 0 {
		return
	}
	p.Vel = core.FromAngle(p.Angle, w.cat.Rules.DashSpeed)
	p.DashCooldown = p.Mods.DashCooldownMs
	if p.DashCooldown <= 0 {
		p.DashCooldown = w.cat.Rules.DashCooldownMs
	}
}

// usePads triggers boost pads and teleporters when the player steps onto one.
func (w *World) usePads() {
	p := &w.player
	var on *Building
	for i := range w.buildings {
		b := &w.buildings[i]
		if b.Armed() && core.Dist(p.Pos, b.Pos) < p.Size+b.Size {
			if def, _ := w.cat.Building(b.Kind); def.BoostForce > 0 || def.Teleports {
				on = b
				break
			}
		}
	}
	if on == nil {
		p.pad = 0
		return
	}
	if on.ID == p.pad {
		return
	}
	p.pad = on.ID

	def, _ := w.cat.Building(on.Kind)
	if def.BoostForce > 0 {
		p.Vel = p.Vel.Add(core.FromAngle(on.Angle, def.BoostForce))
		return
	}
	for i := range w.buildings {
		dst := &w.buildings[i]
		if dst.ID != on.ID && dst.Kind == on.Kind && dst.Armed() {
			p.Pos = dst.Pos
			p.pad = dst.ID
			return
		}
	}
}

func (w *World) fireTurretHat() {
	p := &w.player
	if !p.Mods.IsTurret || p.TurretCooldown > 0 {
		return
	}
	target := w.nearestEnemy(p.Pos, w.cat.Rules.TurretHatRange)
	if target == nil {
		return
	}
	dmg := p.Mods.TurretDamage * p.Mods.DamageMultiplier(p.HealthFrac())
	w.spawnProjectile(p.Pos, core.AngleTo(p.Pos, target.Pos), w.cat.Rules.TurretSpeed, w.cat.Rules.TurretShotRange, dmg, false)
	p.TurretCooldown = p.Mods.TurretRateMs
	if p.TurretCooldown <= 0 {
		p.TurretCooldown = 1200
	}
}

func (w *World) clampToWorld(pos *core.Vec2, size float64) {
	pos.X = core.ClampF(pos.X, size, w.cat.World.Width-size)
	pos.Y = core.ClampF(pos.Y, size, w.cat.World.Height-size)
}

func (w *World) nearestEnemy(from core.Vec2, within float64) *Enemy {
	var best *Enemy
	bestD := within
	for i := range w.enemies {
		e := &w.enemies[i]
		if !e.Alive {
			continue
		}
		if d := core.Dist(from, e.Pos); d < bestD {
			best, bestD = e, d
		}
	}
	return best
}

func (w *World) recomputeMods() {
	p := &w.player
	p.Mods = Recompute(w.cat, p.HatID, p.AccessoryID)
	p.MaxHealth = p.BaseMaxHealth + p.Mods.MaxHealthBonus
	p.Health = core.ClampF(p.Health, 0, p.MaxHealth)
}

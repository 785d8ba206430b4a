package sim

import (
	"fmt"
	"math"
	"slices"

	"github.com/vovakirdan/moofield/internal/config"
	"github.com/vovakirdan/moofield/internal/core"
)

// pendingShot is a queued burst projectile waiting for its stagger delay.
type pendingShot struct {
	delay  float64
	damage float64
	speed  float64
	rng    float64
	pierce bool
}

// ResolveAction uses whatever the active toolbar slot holds: places a
// building, eats a consumable, or swings/fires a weapon. An empty slot
// behaves as bare hands.
func (w *World) ResolveAction() {
	p := &w.player
	if !p.Alive {
		return
	}
	item := w.SlotItem(p.ActiveSlot)
	switch item.Kind {
	case config.ItemBuilding:
		w.placeBuilding(item.ID)
		p.AttackTimer = max(p.AttackTimer, w.cat.Rules.ActionCooldownMs)
	case config.ItemConsumable:
		w.useConsumable(item.ID)
		p.AttackTimer = max(p.AttackTimer, w.cat.Rules.ActionCooldownMs)
	default:
		id := item.ID
		if id == "" {
			id = config.FallbackWeaponID
		}
		w.attack(id)
	}
}

func (w *World) placeBuilding(id string) {
	p := &w.player
	def, ok := w.cat.Building(id)
	if !ok {
		w.notice(fmt.Sprintf("Unknown building %q", id))
		return
	}
	if def.AgeRequired > p.Age {
		w.notice(fmt.Sprintf("%s requires age %d", def.Name, def.AgeRequired))
		return
	}
	if p.Wood < def.Cost.Wood || p.Stone < def.Cost.Stone || p.Food < def.Cost.Food {
		w.notice("Not enough resources for " + def.Name)
		return
	}
	if def.MaxCount > 0 && w.countBuildings(id) >= def.MaxCount {
		w.notice(fmt.Sprintf("Max %d %s placed", def.MaxCount, def.Name))
		return
	}

	p.Wood -= def.Cost.Wood
	p.Stone -= def.Cost.Stone
	p.Food -= def.Cost.Food

	pos := p.Aim
	if core.Dist(p.Pos, pos) > w.cat.Rules.PlacementRange {
		pos = p.Pos.Add(core.FromAngle(core.AngleTo(p.Pos, p.Aim), w.cat.Rules.PlacementRange))
	}
	w.buildings = append(w.buildings, Building{
		ID:        w.allocID(),
		Kind:      id,
		Pos:       pos,
		Angle:     core.AngleTo(p.Pos, pos),
		Health:    def.Health,
		MaxHealth: def.Health,
		Owner:     OwnerPlayer,
		Size:      def.Size,
		ArmTimer:  w.cat.Rules.ArmingDelayMs,
		GrowTimer: def.GrowMs,
		Alive:     true,
	})
	p.Score += w.cat.Rules.BuildScore
}

func (w *World) countBuildings(kind string) int {
	n := 0
	for i := range w.buildings {
		b := &w.buildings[i]
		if b.Alive && b.Owner == OwnerPlayer && b.Kind == kind {
			n++
		}
	}
	return n
}

func (w *World) useConsumable(id string) {
	p := &w.player
	def, ok := w.cat.Consumable(id)
	if !ok {
		w.notice(fmt.Sprintf("Unknown item %q", id))
		return
	}
	if p.Food < def.FoodCost {
		w.notice("Not enough food for " + def.Name)
		return
	}
	p.Food -= def.FoodCost

	if healed := p.heal(def.HealthRestore * p.Mods.FoodEffect); healed > 0 {
		w.emit(Event{Kind: EventHeal, Pos: p.Pos, Amount: healed})
	}
	p.feed(def.FoodRestore * p.Mods.FoodEffect)

	regen := def.HealthRegen
	if def.HealthRestore > 0 {
		regen += p.Mods.ConsumableRegen
	}
	if regen > 0 && w.cat.Rules.HealOverTimeMs > 0 {
		p.Regen = Status{
			DPS:       regen * 1000 / w.cat.Rules.HealOverTimeMs,
			Remaining: w.cat.Rules.HealOverTimeMs,
		}
	}
}

func (w *World) attack(id string) {
	p := &w.player
	if p.AttackTimer > 0 {
		return
	}
	wd := w.cat.Weapon(id)
	p.AttackTimer = wd.CooldownMs
	if p.AttackTimer <= 0 {
		p.AttackTimer = w.cat.Rules.ActionCooldownMs
	}
	if wd.Ranged != nil {
		w.fire(wd)
		return
	}
	w.melee(wd)
}

func (w *World) melee(wd config.WeaponDef) {
	p := &w.player
	gather := wd.Gather + wd.GatherBonus + p.Mods.GatherBonus

	for i := range w.resources {
		r := &w.resources[i]
		if !r.Alive || core.Dist(p.Pos, r.Pos) > wd.Range+r.Size {
			continue
		}
		r.Health = max(0, r.Health-1)
		w.AddXP(w.cat.Rules.GatherXP)
		p.Score += w.cat.Rules.GatherScore
		if r.Health <= 0 {
			w.depleteResource(r, gather)
		}
	}

	mult := p.Mods.DamageMultiplier(p.HealthFrac()) * p.Mods.MeleeDamageMult
	if p.Charging {
		mult *= p.Mods.ChargeDamageMult
	}
	dmg := math.Round(wd.Damage * mult)
	for i := range w.enemies {
		e := &w.enemies[i]
		if !e.Alive || e.State == StateTrapped || core.Dist(p.Pos, e.Pos) > wd.Range+e.Size {
			continue
		}
		if p.Mods.PoisonOnHit && !e.Poison.Active() {
			dps := p.Mods.PoisonDPS
			if dps <= 0 {
				dps = w.cat.Rules.HitPoisonDPS
			}
			e.Poison = Status{DPS: dps, Remaining: w.cat.Rules.HitPoisonMs}
		}
		if p.Mods.BurnOnHit {
			e.Burn = Status{DPS: w.cat.Rules.HitBurnDPS, Remaining: w.cat.Rules.HitBurnMs}
		}
		w.HurtEnemy(e, dmg, core.AngleTo(p.Pos, e.Pos), wd.Knockback)
	}
}

func (w *World) depleteResource(r *Resource, gather float64) {
	p := &w.player
	def, _ := w.cat.Resource(r.Kind)
	r.Alive = false
	r.RespawnTimer = def.RespawnMs
	if def.Yield == nil {
		return
	}
	amount := math.Round(def.Yield.Amount * gather)
	if stock := p.material(def.Yield.Material); stock != nil && amount > 0 {
		*stock += amount
		if def.Yield.Material == config.MaterialFood {
			p.Food = min(p.Food, p.MaxFood)
		}
		w.emit(Event{Kind: EventResource, Pos: r.Pos, Amount: amount, Text: def.Yield.Material, Target: r.ID})
	}
}

func (w *World) fire(wd config.WeaponDef) {
	p := &w.player
	rd := wd.Ranged
	stock := p.material(rd.AmmoMaterial)
	if stock == nil || *stock < rd.AmmoCost {
		w.notice(fmt.Sprintf("Need %g %s to fire %s", rd.AmmoCost, rd.AmmoMaterial, wd.Name))
		return
	}
	*stock -= rd.AmmoCost

	shot := pendingShot{
		damage: math.Round(wd.Damage * p.Mods.DamageMultiplier(p.HealthFrac())),
		speed:  rd.ProjectileSpeed * p.Mods.ProjectileSpeedMult,
		rng:    wd.Range * p.Mods.ProjectileRangeMult,
		pierce: rd.Pierce,
	}
	w.shoot(shot)
	for i := 1; i < rd.Burst; i++ {
		next := shot
		next.delay = float64(i) * rd.BurstIntervalMs
		w.shots = append(w.shots, next)
	}
}

// firePendingShots counts down queued burst shots and fires those that are due.
func (w *World) firePendingShots(dt float64) {
	if len(w.shots) == 0 {
		return
	}
	kept := w.shots[:0]
	for _, s := range w.shots {
		s.delay -= dt
		if s.delay <= 0 {
			w.shoot(s)
			continue
		}
		kept = append(kept, s)
	}
	w.shots = kept
}

func (w *World) shoot(s pendingShot) {
	p := &w.player
	origin := p.Pos.Add(core.FromAngle(p.Angle, p.Size))
	w.spawnProjectile(origin, p.Angle, s.speed, s.rng, s.damage, s.pierce)
}

func (w *World) spawnProjectile(from core.Vec2, angle, speed, rng, dmg float64, pierce bool) {
	w.projectiles = append(w.projectiles, Projectile{
		ID:        w.allocID(),
		Pos:       from,
		Vel:       core.FromAngle(angle, speed),
		Damage:    dmg,
		Range:     rng,
		Knockback: w.cat.Rules.ProjectileKnockback,
		Owner:     SidePlayer,
		Pierce:    pierce,
		Alive:     true,
	})
}

// HurtEnemy deals damage to an enemy, applies lifesteal and knockback, and
// kills it at zero health.
func (w *World) HurtEnemy(e *Enemy, dmg, angle, knock float64) {
	if !e.Alive || dmg < 0 {
		return
	}
	p := &w.player
	e.Health = max(0, e.Health-dmg)
	e.FlashTimer = 200
	w.emit(Event{Kind: EventDamage, Pos: e.Pos, Amount: dmg, Target: e.ID})

	if p.Mods.Lifesteal > 0 {
		if healed := p.heal(math.Round(dmg * p.Mods.Lifesteal)); healed > 0 {
			w.emit(Event{Kind: EventHeal, Pos: p.Pos, Amount: healed})
		}
	}
	if knock != 0 {
		e.Vel = e.Vel.Add(core.FromAngle(angle, knock))
	}
	if e.Health <= 0 {
		w.KillEnemy(e)
	}
}

// KillEnemy pays out an enemy's drops and schedules its respawn.
func (w *World) KillEnemy(e *Enemy) {
	if !e.Alive {
		return
	}
	p := &w.player
	def, _ := w.cat.Enemy(e.Kind)

	e.Alive = false
	e.Health = 0
	e.State = StateWander
	e.Poison, e.Burn = Status{}, Status{}
	e.Vel = core.Vec2{}
	e.RespawnTimer = w.cat.Rules.EnemyRespawnMs
	if e.Boss {
		e.RespawnTimer = w.cat.Rules.BossRespawnMs
	}

	p.Kills++
	p.Score += 2 * float64(def.XPDrop)
	p.feed(def.FoodDrop)
	w.AddXP(def.XPDrop)

	if def.GoldDrop > 0 {
		gold := def.GoldDrop * (1 + p.Mods.GoldOnKill)
		p.Gold += gold
		w.emit(Event{Kind: EventGold, Pos: e.Pos, Amount: gold})
		w.announce(fmt.Sprintf("%s defeated! +%.0f gold", def.Name, gold))
		w.log.Info("boss defeated", "kind", e.Kind, "gold", gold)
		return
	}
	w.emit(Event{Kind: EventKillFeed, Pos: e.Pos, Text: "Killed " + def.Name, Target: e.ID})
}

// HurtPlayer applies already-mitigated damage to the player.
func (w *World) HurtPlayer(dmg float64) {
	p := &w.player
	if !p.Alive || dmg <= 0 {
		return
	}
	p.Health = max(0, p.Health-dmg)
	p.FlashTimer = 200
	w.emit(Event{Kind: EventDamage, Pos: p.Pos, Amount: dmg})
	if p.Health <= 0 {
		w.die()
	}
}

// tickProjectiles moves projectiles, resolves hits and compacts the spent ones.
func (w *World) tickProjectiles(dt float64) {
	p := &w.player
	hitRadius := w.cat.Rules.ProjectileSize
	for i := range w.projectiles {
		pr := &w.projectiles[i]
		if !pr.Alive {
			continue
		}
		pr.Pos = pr.Pos.Add(pr.Vel)
		pr.Range -= pr.Vel.Len()

		switch pr.Owner {
		case SidePlayer:
			heading := math.Atan2(pr.Vel.Y, pr.Vel.X)
			for j := range w.enemies {
				e := &w.enemies[j]
				if !e.Alive || slices.Contains(pr.Hits, e.ID) {
					continue
				}
				if core.Dist(pr.Pos, e.Pos) >= e.Size+hitRadius {
					continue
				}
				w.HurtEnemy(e, pr.Damage, heading, pr.Knockback)
				if !pr.Pierce {
					pr.Alive = false
					break
				}
				pr.Hits = append(pr.Hits, e.ID)
			}
		case SideHostile:
			if p.Alive && core.Dist(pr.Pos, p.Pos) < p.Size+hitRadius {
				w.HurtPlayer(p.Mods.Mitigate(pr.Damage))
				pr.Alive = false
			}
		}

		if pr.Range <= 0 {
			pr.Alive = false
		}
	}
	w.projectiles = slices.DeleteFunc(w.projectiles, func(pr Projectile) bool {
		return !pr.Alive
	})
}

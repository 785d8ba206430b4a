package sim

import (
	"math"

	"github.com/vovakirdan/moofield/internal/config"
	"github.com/vovakirdan/moofield/internal/core"
)

// tickEnemies is the enemy stage. Buildings are consulted as they stood at
// the start of the tick; the building stage runs afterwards.
func (w *World) tickEnemies(dt float64) {
	for i := range w.enemies {
		e := &w.enemies[i]
		if !e.Alive {
			continue
		}
		def, _ := w.cat.Enemy(e.Kind)
		w.tickEnemy(e, &def, dt)
	}
}

func (w *World) tickEnemy(e *Enemy, def *config.EnemyDef, dt float64) {
	p := &w.player
	rules := &w.cat.Rules

	e.FlashTimer = max(0, e.FlashTimer-dt)
	e.AttackCooldown = max(0, e.AttackCooldown-dt)

	if dot := e.Poison.advance(dt) + e.Burn.advance(dt); dot > 0 {
		e.Health = max(0, e.Health-dot)
		if e.Health <= 0 {
			w.KillEnemy(e)
			return
		}
	}

	if e.State == StateTrapped {
		e.TrapTimer -= dt
		if e.TrapTimer <= 0 {
			e.TrapTimer = 0
			e.State = StateWander
		}
		return
	}

	if w.damageFromBuildings(e, dt) {
		return
	}

	if p.Mods.AnimalsPassive && !e.Boss {
		e.State = StateWander
		return
	}

	d := core.Dist(e.Pos, p.Pos)
	switch {
	case def.Aggressive:
		w.aggressive(e, def, d, dt)
		if !e.Alive {
			return
		}
	default:
		if d < def.FleeRange {
			e.State = StateFlee
			away := core.AngleTo(p.Pos, e.Pos)
			e.Vel = core.LerpVec(e.Vel, core.FromAngle(away, def.Speed*1.4), 0.18)
			e.Angle = away
		} else {
			e.State = StateWander
			w.wander(e, dt, def.Speed*0.35)
		}
	}

	e.Pos = e.Pos.Add(e.Vel)
	w.clampToWorld(&e.Pos, e.Size)
	e.Vel = e.Vel.Scale(rules.EnemyFriction)

	for j := range w.buildings {
		b := &w.buildings[j]
		if !b.Armed() || core.Dist(e.Pos, b.Pos) >= b.Size+e.Size {
			continue
		}
		if bd, _ := w.cat.Building(b.Kind); bd.Traps {
			e.State = StateTrapped
			e.TrapTimer = rules.TrapMs
			e.ChargeTimer = 0
			e.Vel = core.Vec2{}
			break
		}
	}
}

// damageFromBuildings applies contact damage from armed spikes and reports whether the enemy died.
func (w *World) damageFromBuildings(e *Enemy, dt float64) bool {
	for j := range w.buildings {
		b := &w.buildings[j]
		if !b.Armed() {
			continue
		}
		bd, _ := w.cat.Building(b.Kind)
		if bd.Damage <= 0 || core.Dist(e.Pos, b.Pos) >= b.Size+e.Size {
			continue
		}
		if bd.Poison != nil && !e.Poison.Active() {
			e.Poison = Status{DPS: bd.Poison.DPS, Remaining: bd.Poison.DurationMs}
		}
		if bd.Burn != nil && !e.Burn.Active() {
			e.Burn = Status{DPS: bd.Burn.DPS, Remaining: bd.Burn.DurationMs}
		}
		e.Health = max(0, e.Health-bd.Damage*dt/60)
		if e.Health <= 0 {
			w.KillEnemy(e)
			return true
		}
	}
	return false
}

func (w *World) aggressive(e *Enemy, def *config.EnemyDef, d, dt float64) {
	p := &w.player
	detection := def.DetectionRange
	if p.Mods.Stealth {
		detection /= 2
	}

	if def.Charge != nil && e.State != StateCharge && d > def.AttackRange && d < def.Charge.Range {
		e.State = StateCharge
		e.ChargeTimer = w.cat.Rules.ChargeMs
		e.ChargeAngle = core.AngleTo(e.Pos, p.Pos)
	}

	switch {
	case e.State == StateCharge:
		e.ChargeTimer -= dt
		e.Vel = core.FromAngle(e.ChargeAngle, def.Charge.Speed)
		e.Angle = e.ChargeAngle
		if e.ChargeTimer <= 0 {
			e.ChargeTimer = 0
			e.State = StateWander
		}
	case d < detection:
		e.State = StatePursue
		a := core.AngleTo(e.Pos, p.Pos)
		e.Vel = core.LerpVec(e.Vel, core.FromAngle(a, def.Speed), 0.12)
		e.Angle = a
	default:
		e.State = StateWander
		w.wander(e, dt, def.Speed*0.4)
	}

	if d < def.AttackRange && e.AttackCooldown <= 0 {
		dmg := p.Mods.Mitigate(e.Damage)
		if block := w.blockReduction(); block > 0 {
			dmg *= 1 - min(block, 1)
		}
		if p.Mods.ReflectDamage > 0 {
			w.HurtEnemy(e, math.Round(e.Damage*p.Mods.ReflectDamage), core.AngleTo(p.Pos, e.Pos), 0)
		}
		w.HurtPlayer(dmg)
		e.AttackCooldown = def.AttackCooldownMs
		if e.AttackCooldown <= 0 {
			e.AttackCooldown = 1000
		}
	}

	if def.CanBreakWalls {
		for j := range w.buildings {
			b := &w.buildings[j]
			if !b.Alive || core.Dist(e.Pos, b.Pos) >= b.Size+e.Size {
				continue
			}
			b.Health = max(0, b.Health-w.cat.Rules.WallBreakDPS*dt/1000)
			if b.Health <= 0 {
				w.destroyBuilding(b)
			}
		}
	}
}

// blockReduction is the melee block of the wielded weapon, if any.
func (w *World) blockReduction() float64 {
	item := w.SlotItem(w.player.ActiveSlot)
	if item.Kind != config.ItemWeapon {
		return 0
	}
	return w.cat.Weapon(item.ID).BlockReduction
}

// wander eases toward a heading that is resampled every few seconds.
func (w *World) wander(e *Enemy, dt, speed float64) {
	e.WanderTimer -= dt
	if e.WanderTimer <= 0 {
		e.WanderTimer = 2000 + w.rng.Float64()*2000
		e.WanderAngle = w.rng.Float64() * 2 * math.Pi
	}
	e.Vel = core.LerpVec(e.Vel, core.FromAngle(e.WanderAngle, speed), 0.04)
	e.Angle = e.WanderAngle
}

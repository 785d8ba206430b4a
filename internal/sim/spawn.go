package sim

import (
	"fmt"

	"github.com/vovakirdan/moofield/internal/config"
	"github.com/vovakirdan/moofield/internal/core"
)

// populate creates every catalogued resource and enemy. Kinds are visited in
// sorted order so a seed always yields the same layout.
func (w *World) populate() {
	for _, kind := range w.cat.ResourceKinds() {
		def, _ := w.cat.Resource(kind)
		for range def.Count {
			r := Resource{ID: w.allocID(), Kind: kind}
			w.reinitResource(&r, &def)
			w.resources = append(w.resources, r)
		}
	}

	boss := false
	for _, kind := range w.cat.EnemyKinds() {
		def, _ := w.cat.Enemy(kind)
		for range def.Count {
			e := Enemy{ID: w.allocID(), Kind: kind, Boss: def.Boss}
			w.reinitEnemy(&e, &def)
			w.enemies = append(w.enemies, e)
			boss = boss || def.Boss
		}
	}
	if boss && w.cat.Rules.BossWarning != "" {
		w.announce(w.cat.Rules.BossWarning)
	}
}

func (w *World) randRange(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + w.rng.Float64()*(hi-lo)
}

// reinitResource places a resource at a fresh random spot with full health. Its ID is kept.
func (w *World) reinitResource(r *Resource, def *config.ResourceDef) {
	m := w.cat.World.ResourceMargin
	r.Pos = core.V(w.randRange(m, w.cat.World.Width-m), w.randRange(m, w.cat.World.Height-m))
	r.Size = w.randRange(def.MinSize, def.MaxSize)
	r.Health = def.Health
	r.MaxHealth = def.Health
	r.RespawnTimer = 0
	r.Alive = true
}

// reinitEnemy places an enemy at a fresh random spot with difficulty-scaled stats. Its ID is kept.
func (w *World) reinitEnemy(e *Enemy, def *config.EnemyDef) {
	ww, wh := w.cat.World.Width, w.cat.World.Height
	m := w.cat.World.EnemyMargin
	minX, maxX, minY, maxY := m, ww-m, m, wh-m
	if r := def.SpawnRegion; r != nil {
		minX, maxX = max(minX, r.MinX*ww), min(maxX, r.MaxX*ww)
		minY, maxY = max(minY, r.MinY*wh), min(maxY, r.MaxY*wh)
	}

	sec := w.player.TimeSurvived / 1000
	e.Pos = core.V(w.randRange(minX, maxX), w.randRange(minY, maxY))
	e.Vel = core.Vec2{}
	e.Size = def.Size
	e.MaxHealth = def.Health * w.diff.HealthScale(sec, w.player.Age)
	e.Health = e.MaxHealth
	e.Damage = def.Damage * w.diff.DamageScale(sec, w.player.Age)
	e.State = StateWander
	e.Poison, e.Burn = Status{}, Status{}
	e.TrapTimer, e.ChargeTimer, e.AttackCooldown = 0, 0, 0
	e.WanderTimer = 0
	e.RespawnTimer = 0
	e.Alive = true
}

// tickSpawns counts down dead resources and enemies and revives them in place.
func (w *World) tickSpawns(dt float64) {
	for i := range w.resources {
		r := &w.resources[i]
		if r.Alive || r.Grown {
			continue
		}
		r.RespawnTimer -= dt
		if r.RespawnTimer <= 0 {
			def, _ := w.cat.Resource(r.Kind)
			w.reinitResource(r, &def)
		}
	}
	for i := range w.enemies {
		e := &w.enemies[i]
		if e.Alive {
			continue
		}
		e.RespawnTimer -= dt
		if e.RespawnTimer <= 0 {
			def, _ := w.cat.Enemy(e.Kind)
			w.reinitEnemy(e, &def)
			w.log.Debug("enemy respawned", "kind", e.Kind, "id", e.ID)
		}
	}
}

// tickBuildings is the building stage: arming, turrets, saplings and mines.
func (w *World) tickBuildings(dt float64) {
	for i := range w.buildings {
		b := &w.buildings[i]
		if !b.Alive {
			continue
		}
		if b.ArmTimer > 0 {
			b.ArmTimer = max(0, b.ArmTimer-dt)
			continue
		}
		def, _ := w.cat.Building(b.Kind)
		switch {
		case def.Turret != nil:
			w.tickTurret(b, def.Turret, dt)
		case def.GrowMs > 0:
			w.tickSapling(b, &def, dt)
		case def.MineDamage > 0:
			w.tickMine(b, &def)
		}
	}
}

func (w *World) tickTurret(b *Building, t *config.TurretDef, dt float64) {
	b.TurretCooldown = max(0, b.TurretCooldown-dt)
	if b.TurretCooldown > 0 {
		return
	}
	target := w.nearestEnemy(b.Pos, t.Range)
	if target == nil {
		return
	}
	b.Angle = core.AngleTo(b.Pos, target.Pos)
	w.spawnProjectile(b.Pos, b.Angle, w.cat.Rules.TurretSpeed, t.ShotRange, t.Damage, false)
	b.TurretCooldown = t.RateMs
}

// tickSapling grows a sapling; on maturity it is replaced by one extra resource.
func (w *World) tickSapling(b *Building, def *config.BuildingDef, dt float64) {
	b.GrowTimer -= dt
	if b.GrowTimer > 0 {
		return
	}
	w.destroyBuilding(b)

	rd, ok := w.cat.Resource(def.GrowsInto)
	if !ok {
		return
	}
	size := w.cat.Rules.GrownTreeSize
	if size <= 0 {
		size = rd.MinSize
	}
	w.resources = append(w.resources, Resource{
		ID:        w.allocID(),
		Kind:      def.GrowsInto,
		Pos:       b.Pos,
		Size:      size,
		Health:    rd.Health,
		MaxHealth: rd.Health,
		Alive:     true,
		Grown:     true,
	})
	w.emit(Event{Kind: EventAnnounce, Pos: b.Pos, Text: fmt.Sprintf("A %s has grown", rd.Name)})
}

// tickMine detonates on the first overlapping enemy, hurting everything in the blast.
func (w *World) tickMine(b *Building, def *config.BuildingDef) {
	if b.Triggered {
		return
	}
	triggered := false
	for j := range w.enemies {
		e := &w.enemies[j]
		if e.Alive && core.Dist(b.Pos, e.Pos) < b.Size+e.Size {
			triggered = true
			break
		}
	}
	if !triggered {
		return
	}
	b.Triggered = true
	w.destroyBuilding(b)
	for j := range w.enemies {
		e := &w.enemies[j]
		if e.Alive && core.Dist(b.Pos, e.Pos) < w.cat.Rules.MineRadius {
			w.HurtEnemy(e, def.MineDamage, core.AngleTo(b.Pos, e.Pos), w.cat.Rules.MineKnockback)
		}
	}
}

// destroyBuilding leaves the building in place as an inert record.
func (w *World) destroyBuilding(b *Building) {
	b.Alive = false
	b.Health = 0
	w.log.Debug("building destroyed", "kind", b.Kind, "id", b.ID)
}

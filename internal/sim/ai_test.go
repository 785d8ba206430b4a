package sim

import (
	"testing"

	"github.com/vovakirdan/moofield/internal/core"
)

func TestChargeKeepsHeading(t *testing.T) {
	w := newTestWorld(t, nil)
	bull := w.addEnemy("bull", w.player.Pos.Add(core.V(-200, 0)))

	w.tickEnemies(16)
	if bull.State != StateCharge {
		t.Fatalf("state = %s, want charge", bull.State)
	}
	if bull.ChargeAngle != 0 {
		t.Fatalf("ChargeAngle = %v, want 0", bull.ChargeAngle)
	}

	// The player steps aside; the bull must not steer.
	w.player.Pos.Y -= 500
	ticks := 1
	for bull.State == StateCharge && ticks < 200 {
		w.tickEnemies(16)
		ticks++
		if bull.ChargeAngle != 0 || bull.Vel.Y != 0 || bull.Vel.X <= 0 {
			t.Fatalf("tick %d: heading changed: angle %v vel %+v", ticks, bull.ChargeAngle, bull.Vel)
		}
	}
	if ticks != 75 {
		t.Errorf("charge lasted %d ticks, want 75", ticks)
	}
}

func TestPitTrap(t *testing.T) {
	w := newTestWorld(t, nil)
	pos := w.player.Pos.Add(core.V(1000, 0))
	w.addBuilding("pit_trap", pos, true)
	e := w.addEnemy("rabbit", pos)

	w.tickEnemies(16)
	if e.State != StateTrapped {
		t.Fatalf("state = %s, want trapped", e.State)
	}
	held := e.Pos
	for range 187 {
		w.tickEnemies(16)
		if e.Pos != held {
			t.Fatalf("trapped enemy moved to %+v", e.Pos)
		}
	}
	if e.State != StateTrapped {
		t.Fatalf("released early, state %s", e.State)
	}
	w.tickEnemies(16)
	if e.State == StateTrapped && e.TrapTimer > 0 {
		t.Errorf("still trapped after %v ms", w.cat.Rules.TrapMs)
	}
}

func TestSpikeContact(t *testing.T) {
	tests := []struct {
		name  string
		armed bool
		want  float64
	}{
		{"armed", true, 975},
		{"arming", false, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, nil)
			pos := w.player.Pos.Add(core.V(1000, 0))
			w.addBuilding("spike", pos, tt.armed)
			e := w.addEnemy("wolf", pos)
			e.Health, e.MaxHealth = 1000, 1000

			w.tickEnemies(60)

			if !approx(e.Health, tt.want) {
				t.Errorf("health = %v, want %v", e.Health, tt.want)
			}
		})
	}
}

func TestDamageOverTimeStacks(t *testing.T) {
	w := newTestWorld(t, nil)
	e := w.addEnemy("wolf", w.player.Pos.Add(core.V(1000, 1000)))
	e.Health, e.MaxHealth = 1000, 1000
	e.Poison = Status{DPS: 5, Remaining: 5000}
	e.Burn = Status{DPS: 8, Remaining: 2000}

	for range 10 {
		w.tickEnemies(100)
	}
	if !approx(e.Health, 1000-13) {
		t.Errorf("health after 1s = %v, want 987", e.Health)
	}
	for range 20 {
		w.tickEnemies(100)
	}
	// Burn expired at 2s: 16 burn + 15 poison.
	if !approx(e.Health, 1000-31) {
		t.Errorf("health after 3s = %v, want 969", e.Health)
	}
	if e.Burn.Active() || !e.Poison.Active() {
		t.Errorf("burn/poison active = %v/%v, want false/true", e.Burn.Active(), e.Poison.Active())
	}
}

func TestPoisonSpikeApplies(t *testing.T) {
	w := newTestWorld(t, nil)
	pos := w.player.Pos.Add(core.V(1000, 0))
	w.addBuilding("spike_poison", pos, true)
	e := w.addEnemy("wolf", pos)
	e.Health, e.MaxHealth = 1000, 1000

	w.tickEnemies(16)
	if !e.Poison.Active() {
		t.Error("poison spike did not poison")
	}
}

func TestAggressiveAttack(t *testing.T) {
	tests := []struct {
		name       string
		reduction  float64
		reflect    float64
		wantPlayer float64
		wantWolf   float64
	}{
		{"plain", 0, 0, 85, 80},
		{"armored", 0.5, 0, 92.5, 80},
		{"reflect", 0, 0.5, 85, 72},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, nil)
			w.player.Mods.DamageReduction = tt.reduction
			w.player.Mods.ReflectDamage = tt.reflect
			e := w.addEnemy("wolf", w.player.Pos.Add(core.V(20, 0)))

			w.tickEnemies(16)

			if !approx(w.player.Health, tt.wantPlayer) {
				t.Errorf("player health = %v, want %v", w.player.Health, tt.wantPlayer)
			}
			if e.Health != tt.wantWolf {
				t.Errorf("wolf health = %v, want %v", e.Health, tt.wantWolf)
			}
			if e.State != StatePursue {
				t.Errorf("state = %s, want pursue", e.State)
			}

			// Attack cooldown holds the next bite.
			hp := w.player.Health
			w.tickEnemies(16)
			if w.player.Health != hp {
				t.Error("wolf bit again during cooldown")
			}
		})
	}
}

func TestShieldBlocks(t *testing.T) {
	w := newTestWorld(t, nil)
	w.player.UnlockedWeapons = append(w.player.UnlockedWeapons, "shield")
	w.player.ActiveSlot = SlotSecondary
	w.addEnemy("wolf", w.player.Pos.Add(core.V(20, 0)))

	w.tickEnemies(16)
	if !approx(w.player.Health, 97) {
		t.Errorf("health = %v, want 97", w.player.Health)
	}
}

func TestStealthHalvesDetection(t *testing.T) {
	w := newTestWorld(t, nil)
	w.player.Mods.Stealth = true
	e := w.addEnemy("wolf", w.player.Pos.Add(core.V(200, 0)))

	w.tickEnemies(16)
	if e.State != StateWander {
		t.Errorf("state = %s, want wander", e.State)
	}
}

func TestAnimalsPassive(t *testing.T) {
	w := newTestWorld(t, nil)
	w.player.Mods.AnimalsPassive = true
	wolf := w.addEnemy("wolf", w.player.Pos.Add(core.V(20, 0)))
	w.addEnemy("boss", w.player.Pos.Add(core.V(-30, 0)))
	boss := &w.enemies[1]
	wolf = &w.enemies[0]

	wolfStart := wolf.Pos

	w.tickEnemies(16)

	if wolf.State != StateWander {
		t.Errorf("wolf state = %s, want wander", wolf.State)
	}
	if wolf.Pos != wolfStart {
		t.Errorf("passive wolf moved from %+v to %+v", wolfStart, wolf.Pos)
	}
	if boss.State != StatePursue {
		t.Errorf("boss state = %s, want pursue", boss.State)
	}
	if !approx(w.player.Health, 50) {
		t.Errorf("health = %v, want 50 (boss bite only)", w.player.Health)
	}
}

func TestPassiveFlees(t *testing.T) {
	w := newTestWorld(t, nil)
	start := w.player.Pos.Add(core.V(50, 0))
	e := w.addEnemy("rabbit", start)

	w.tickEnemies(16)
	if e.State != StateFlee {
		t.Fatalf("state = %s, want flee", e.State)
	}
	if e.Pos.X <= start.X {
		t.Errorf("rabbit moved toward the player: %+v", e.Pos)
	}
	if w.player.Health != w.player.MaxHealth {
		t.Error("passive animal hurt the player")
	}
}

func TestBossBreaksWalls(t *testing.T) {
	w := newTestWorld(t, nil)
	pos := w.player.Pos.Add(core.V(1500, 0))
	w.addBuilding("wall_wood", pos, true)
	w.addEnemy("boss", pos)
	wall := &w.buildings[0]
	wall.Health = 4

	w.tickEnemies(80)

	if wall.Alive {
		t.Error("wall survived the boss")
	}
	if len(w.buildings) != 1 {
		t.Errorf("buildings = %d, want the dead record kept", len(w.buildings))
	}
}

func TestWanderStaysInBounds(t *testing.T) {
	w := newTestWorld(t, nil)
	e := w.addEnemy("rabbit", core.V(20, 20))
	for range 2000 {
		w.tickEnemies(16)
		if e.Pos.X < e.Size || e.Pos.Y < e.Size ||
			e.Pos.X > w.cat.World.Width-e.Size || e.Pos.Y > w.cat.World.Height-e.Size {
			t.Fatalf("enemy left the world: %+v", e.Pos)
		}
	}
}

package sim

import (
	"testing"

	"github.com/vovakirdan/moofield/internal/config"
	"github.com/vovakirdan/moofield/internal/core"
)

func TestPlayerUpkeep(t *testing.T) {
	tests := []struct {
		name       string
		food       float64
		setup      func(w *World)
		wantHealth float64
	}{
		{"fed regen", 100, nil, 50.025},
		{"hungry", 40, nil, 50},
		{"gear regen", 100, func(w *World) { w.player.Mods.RegenRate = 3 }, 50.075},
		{"gear regen while hungry", 40, func(w *World) { w.player.Mods.RegenRate = 3 }, 50.05},
		{"healing pad", 100, func(w *World) { w.addBuilding("healing_pad", w.player.Pos.Add(core.V(30, 0)), true) }, 50.275},
		{"healing pad arming", 100, func(w *World) { w.addBuilding("healing_pad", w.player.Pos.Add(core.V(30, 0)), false) }, 50.025},
		{"no heal", 100, func(w *World) { w.player.Mods.NoHeal = true }, 50},
		{"poison", 0, func(w *World) { w.player.Poison = Status{DPS: 10, Remaining: 5000} }, 49.84},
		{"cactus", 0, func(w *World) { w.addResource("cactus", w.player.Pos, 20) }, 49.44},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, nil)
			w.player.Health, w.player.Food = 50, tt.food
			if tt.setup != nil {
				tt.setup(w)
			}
			w.tickPlayer(idle(w), 16)
			if !approx(w.player.Health, tt.wantHealth) {
				t.Errorf("health = %v, want %v", w.player.Health, tt.wantHealth)
			}
		})
	}
}

func TestFoodDecay(t *testing.T) {
	w := newTestWorld(t, nil)
	w.tickPlayer(idle(w), 16)
	if !approx(w.player.Food, 99.996) {
		t.Errorf("food = %v, want 99.996", w.player.Food)
	}
	w.player.Food = 0.001
	w.tickPlayer(idle(w), 16)
	if w.player.Food != 0 {
		t.Errorf("food = %v, want 0", w.player.Food)
	}
}

func TestPassiveGold(t *testing.T) {
	tests := []struct {
		name  string
		armed bool
		want  float64
	}{
		{"armed windmill", true, 100.016},
		{"arming windmill", false, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, nil)
			w.addBuilding("windmill", w.player.Pos.Add(core.V(300, 0)), tt.armed)
			w.tickPlayer(idle(w), 16)
			if !approx(w.player.Gold, tt.want) {
				t.Errorf("gold = %v, want %v", w.player.Gold, tt.want)
			}
		})
	}
}

func TestPlayerDeath(t *testing.T) {
	w := newTestWorld(t, nil)
	w.player.Score = 42.7
	w.player.Kills = 3
	w.player.TimeSurvived = 61_500
	w.player.Health, w.player.Food = 0.1, 0
	w.player.Poison = Status{DPS: 100, Remaining: 1000}

	res := w.Tick(idle(w), 16)

	if !res.State.GameOver || !w.Over() {
		t.Fatal("expected game over")
	}
	f := w.Final()
	if f == nil || f.Score != 42 || f.Kills != 3 || f.Age != 1 || f.SurvivedSec != 61 {
		t.Errorf("final = %+v", f)
	}
	if countEvents(w.DrainEvents(), EventDeath) != 1 {
		t.Error("expected one death event")
	}

	survived := w.Player().TimeSurvived
	w.Tick(idle(w), 16)
	if w.Player().TimeSurvived != survived {
		t.Error("dead world kept ticking")
	}
}

func TestPlayerBounds(t *testing.T) {
	w := newTestWorld(t, nil)
	w.player.Pos = core.V(5, 5)
	in := idle(w)
	in.MoveX, in.MoveY = -1, -1
	for range 10 {
		w.tickPlayer(in, 16)
	}
	if w.player.Pos != core.V(22, 22) {
		t.Errorf("pos = %+v, want clamped to (22,22)", w.player.Pos)
	}
}

func TestMovement(t *testing.T) {
	tests := []struct {
		name   string
		weapon string
		want   float64
	}{
		{"fists", "fist", 3.5 * 0.25},
		{"sword slows", "sword", 3.5 * 0.9 * 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, nil)
			w.player.PrimaryWeapon = tt.weapon
			start := w.player.Pos
			in := idle(w)
			in.MoveX = 1
			w.tickPlayer(in, 16)
			if got := w.player.Pos.X - start.X; !approx(got, tt.want) {
				t.Errorf("moved %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRiverCurrent(t *testing.T) {
	tests := []struct {
		name   string
		resist float64
		want   float64
	}{
		{"plain", 0, 1.2},
		{"flippers", 0.5, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, func(c *config.Catalog) { c.World.RiverEnabled = true })
			w.player.Mods.RiverResist = tt.resist
			y := w.player.Pos.Y
			w.tickPlayer(idle(w), 16)
			if got := w.player.Pos.Y - y; !approx(got, tt.want) {
				t.Errorf("drift = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDash(t *testing.T) {
	w := newTestWorld(t, nil)
	w.Dash()
	if w.player.Vel != (core.Vec2{}) {
		t.Fatal("dashed without dash gear")
	}

	w.player.Mods.CanDash = true
	w.Dash()
	if !approx(w.player.Vel.Len(), 18) {
		t.Errorf("dash speed = %v, want 18", w.player.Vel.Len())
	}
	if w.player.DashCooldown != 3000 {
		t.Errorf("DashCooldown = %v, want 3000", w.player.DashCooldown)
	}

	w.player.Vel = core.Vec2{}
	w.Dash()
	if w.player.Vel != (core.Vec2{}) {
		t.Error("dashed during cooldown")
	}
}

func TestCharge(t *testing.T) {
	w := newTestWorld(t, nil)
	w.player.Mods.ChargeEnabled = true
	w.player.Mods.HealthDrain = 0.5
	w.player.Food = 0
	start := w.player.Pos

	in := idle(w)
	in.MoveX = 1
	in.Set(core.ActionCharge)
	w.tickPlayer(in, 16)

	if !w.player.Charging {
		t.Fatal("not charging")
	}
	if got := w.player.Pos.X - start.X; !approx(got, 9) {
		t.Errorf("moved %v, want 9", got)
	}
	if !approx(w.player.Health, 99.992) {
		t.Errorf("health = %v, want 99.992", w.player.Health)
	}
}

func TestHeldActionAutoFires(t *testing.T) {
	w := newTestWorld(t, nil)
	in := idle(w)
	in.ActionHeld = true

	w.tickPlayer(in, 16)
	if w.player.AttackTimer != 500 {
		t.Fatalf("AttackTimer = %v, want 500", w.player.AttackTimer)
	}
	w.tickPlayer(in, 16)
	if w.player.AttackTimer != 484 {
		t.Errorf("AttackTimer = %v, want 484 (no refire during cooldown)", w.player.AttackTimer)
	}
}

func TestSlotSelectFromIntent(t *testing.T) {
	w := newTestWorld(t, nil)
	in := idle(w)
	in.Slot = SlotWall + 1
	w.tickPlayer(in, 16)
	if w.player.ActiveSlot != SlotWall {
		t.Errorf("ActiveSlot = %d, want %d", w.player.ActiveSlot, SlotWall)
	}
}

func TestBoostPad(t *testing.T) {
	w := newTestWorld(t, nil)
	w.addBuilding("boost_pad", w.player.Pos, true)

	w.tickPlayer(idle(w), 16)
	if !approx(w.player.Vel.X, 12) {
		t.Fatalf("vel = %+v, want boost of 12", w.player.Vel)
	}
	w.tickPlayer(idle(w), 16)
	if !approx(w.player.Vel.X, 9) {
		t.Errorf("vel = %+v, want 9 (no second boost on the same pad)", w.player.Vel)
	}
}

func TestTeleporter(t *testing.T) {
	w := newTestWorld(t, nil)
	dst := w.player.Pos.Add(core.V(1000, 0))
	w.addBuilding("teleporter", w.player.Pos, true)
	w.addBuilding("teleporter", dst, true)

	w.tickPlayer(idle(w), 16)
	if w.player.Pos != dst {
		t.Fatalf("pos = %+v, want %+v", w.player.Pos, dst)
	}
	w.tickPlayer(idle(w), 16)
	if w.player.Pos != dst {
		t.Errorf("bounced back to %+v", w.player.Pos)
	}
}

func TestTurretHat(t *testing.T) {
	w := newTestWorld(t, nil)
	w.player.Mods.IsTurret = true
	w.player.Mods.TurretDamage = 10
	w.player.Mods.TurretRateMs = 1500
	w.addEnemy("wolf", w.player.Pos.Add(core.V(300, 0)))

	w.tickPlayer(idle(w), 16)
	if len(w.projectiles) != 1 {
		t.Fatalf("projectiles = %d, want 1", len(w.projectiles))
	}
	if w.player.TurretCooldown != 1500 {
		t.Errorf("TurretCooldown = %v, want 1500", w.player.TurretCooldown)
	}
}

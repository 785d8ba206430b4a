package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/moofield/internal/config"
	"github.com/vovakirdan/moofield/internal/core"
)

func fp(v float64) *float64 { return &v }
func bp(v bool) *bool       { return &v }

// testCatalog is a compact catalog with no random population, so tests place
// every entity themselves.
func testCatalog() *config.Catalog {
	cat := config.DefaultCatalog()
	cat.World.RiverEnabled = false
	cat.Rules.BossWarning = ""

	cat.Resources = map[string]config.ResourceDef{
		"tree":   {Name: "Tree", MinSize: 18, MaxSize: 32, Health: 5, Yield: &config.YieldDef{Material: config.MaterialWood, Amount: 10}, RespawnMs: 1000},
		"stone":  {Name: "Stone", MinSize: 16, MaxSize: 28, Health: 8, Yield: &config.YieldDef{Material: config.MaterialStone, Amount: 10}, RespawnMs: 2000},
		"cactus": {Name: "Cactus", MinSize: 16, MaxSize: 24, Health: 999, TouchDamage: 35, RespawnMs: 99999},
	}

	cat.Weapons["sword"] = config.WeaponDef{Name: "Sword", Damage: 30, Range: 55, Knockback: 4, CooldownMs: 550, Gather: 1, SpeedMult: 0.9}
	cat.Weapons["bat"] = config.WeaponDef{Name: "Bat", Damage: 20, Range: 48, Knockback: 10, CooldownMs: 450, Gather: 1}
	cat.Weapons["katana"] = config.WeaponDef{Name: "Katana", Damage: 40, Range: 60, CooldownMs: 500, Gather: 1, ReqWeapon: "sword"}
	cat.Weapons["shield"] = config.WeaponDef{Name: "Shield", Secondary: true, BlockReduction: 0.8}
	cat.Weapons["bow"] = config.WeaponDef{
		Name: "Bow", Damage: 25, Range: 400, Knockback: 3, CooldownMs: 800, Secondary: true,
		Ranged: &config.RangedDef{AmmoCost: 4, AmmoMaterial: config.MaterialWood, ProjectileSpeed: 10, Burst: 1},
	}
	cat.Weapons["repeater"] = config.WeaponDef{
		Name: "Repeater", Damage: 30, Range: 420, CooldownMs: 250, Secondary: true,
		Ranged: &config.RangedDef{AmmoCost: 10, AmmoMaterial: config.MaterialWood, ProjectileSpeed: 10, Burst: 4, BurstIntervalMs: 60},
	}

	cat.Buildings["spike_poison"] = config.BuildingDef{Name: "Poison Spikes", Health: 400, Size: 30, Cost: config.Cost{Wood: 35, Stone: 15}, MaxCount: 15, Damage: 20, Poison: &config.DOTDef{DPS: 5, DurationMs: 5000}}
	cat.Buildings["spike_caseoh"] = config.BuildingDef{Name: "Legend Spike", Health: 999, Size: 42, MaxCount: 5, Damage: 100, Legendary: true, AgeRequired: 100}
	cat.Buildings["pit_trap"] = config.BuildingDef{Name: "Pit Trap", Health: 500, Size: 30, Cost: config.Cost{Wood: 30, Stone: 20}, Traps: true, Invisible: true}
	cat.Buildings["mine"] = config.BuildingDef{Name: "Mine", Health: 200, Size: 24, Cost: config.Cost{Stone: 30}, MineDamage: 100, Invisible: true}
	cat.Buildings["sapling"] = config.BuildingDef{Name: "Sapling", Health: 150, Size: 20, Cost: config.Cost{Wood: 30}, GrowMs: 20000, GrowsInto: "tree"}
	cat.Buildings["healing_pad"] = config.BuildingDef{Name: "Healing Pad", Health: 200, Size: 28, Heal: &config.HealDef{Rate: 0.25, Radius: 70}}
	cat.Buildings["turret"] = config.BuildingDef{Name: "Turret", Health: 800, Size: 30, Turret: &config.TurretDef{Damage: 25, Range: 350, RateMs: 2000, ShotRange: 400}}
	cat.Buildings["boost_pad"] = config.BuildingDef{Name: "Boost Pad", Health: 150, Size: 28, BoostForce: 12}
	cat.Buildings["teleporter"] = config.BuildingDef{Name: "Teleporter", Health: 250, Size: 28, MaxCount: 2, Teleports: true}

	cat.Consumables["cookie"] = config.ConsumableDef{Name: "Cookie", FoodCost: 15, HealthRestore: 40}
	cat.Consumables["cheese"] = config.ConsumableDef{Name: "Cheese", FoodCost: 25, HealthRestore: 30, HealthRegen: 10}

	cat.Toolbar = config.ToolbarConfig{
		Spikes:      []string{"spike_caseoh", "spike_poison", "spike", "pit_trap", "mine"},
		Walls:       []string{"wall_wood", "healing_pad", "turret", "sapling", "boost_pad", "teleporter"},
		Mills:       []string{"windmill"},
		Consumables: []string{"cheese", "cookie", "apple"},
	}

	cat.Enemies = map[string]config.EnemyDef{
		"rabbit": {Name: "Rabbit", Speed: 2, Size: 14, Health: 30, Damage: 5, DetectionRange: 150, FleeRange: 100, XPDrop: 5, FoodDrop: 3},
		"wolf":   {Name: "Wolf", Speed: 2.8, Size: 18, Health: 80, Damage: 15, Aggressive: true, DetectionRange: 250, AttackRange: 35, AttackCooldownMs: 1000, XPDrop: 15, FoodDrop: 8},
		"bull": {
			Name: "Bull", Speed: 2, Size: 24, Health: 200, Damage: 30, Aggressive: true, DetectionRange: 200,
			AttackRange: 45, AttackCooldownMs: 1500, XPDrop: 40, FoodDrop: 20, Charge: &config.ChargeDef{Speed: 5.5, Range: 300},
		},
		"boss": {
			Name: "Boss", Speed: 4, Size: 36, Health: 3000, Damage: 50, Aggressive: true, DetectionRange: 450,
			AttackRange: 60, AttackCooldownMs: 700, XPDrop: 800, GoldDrop: 10000, Boss: true, CanBreakWalls: true,
		},
	}

	cat.Hats = map[string]config.GearDef{
		config.NoneID: {Name: "None", Free: true},
		"booster":     {Name: "Booster", Cost: 100, Effects: config.GearEffects{SpeedMult: fp(1.2), Stealth: bp(true)}},
		"tank":        {Name: "Tank", Cost: 500, Effects: config.GearEffects{MaxHealthBonus: fp(50), DamageReduction: fp(0.5)}},
		"medic":       {Name: "Medic", Cost: 300, Effects: config.GearEffects{RegenRate: fp(3), DashCooldownMs: fp(1000)}},
		"shame":       {Name: "Shame", Free: true, Hidden: true, Effects: config.GearEffects{NoHeal: bp(true)}},
	}
	cat.Accessories = map[string]config.GearDef{
		config.NoneID: {Name: "None", Free: true},
		"basket":      {Name: "Basket", Cost: 50, Effects: config.GearEffects{SpeedMult: fp(1.5), RegenRate: fp(0.5), Stealth: bp(false), DashCooldownMs: fp(200)}},
	}

	cat.Ages.Unlocks = map[int][]string{
		2: {"sword", "windmill"},
		3: {"katana", "cookie"},
	}
	cat.Ages.Legendary = "spike_caseoh"
	return cat
}

func newTestWorld(t *testing.T, mutate func(*config.Catalog)) *World {
	t.Helper()
	cat := testCatalog()
	if mutate != nil {
		mutate(cat)
	}
	if err := cat.Validate(); err != nil {
		t.Fatalf("test catalog invalid: %v", err)
	}
	return New(cat, 1)
}

// addResource appends a live resource. Pointers into the arena are only valid
// until the next append.
func (w *World) addResource(kind string, pos core.Vec2, size float64) *Resource {
	def, _ := w.cat.Resource(kind)
	w.resources = append(w.resources, Resource{
		ID: w.allocID(), Kind: kind, Pos: pos, Size: size,
		Health: def.Health, MaxHealth: def.Health, Alive: true,
	})
	return &w.resources[len(w.resources)-1]
}

func (w *World) addEnemy(kind string, pos core.Vec2) *Enemy {
	def, _ := w.cat.Enemy(kind)
	w.enemies = append(w.enemies, Enemy{
		ID: w.allocID(), Kind: kind, Pos: pos, Size: def.Size,
		Health: def.Health, MaxHealth: def.Health, Damage: def.Damage,
		Boss: def.Boss, Alive: true,
	})
	return &w.enemies[len(w.enemies)-1]
}

func (w *World) addBuilding(kind string, pos core.Vec2, armed bool) *Building {
	def, _ := w.cat.Building(kind)
	b := Building{
		ID: w.allocID(), Kind: kind, Pos: pos, Size: def.Size,
		Health: def.Health, MaxHealth: def.Health, Owner: OwnerPlayer,
		GrowTimer: def.GrowMs, Alive: true,
	}
	if !armed {
		b.ArmTimer = w.cat.Rules.ArmingDelayMs
	}
	w.buildings = append(w.buildings, b)
	return &w.buildings[len(w.buildings)-1]
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func idle(w *World) core.Intent {
	in := core.NewIntent()
	in.Aim = w.player.Pos.Add(core.V(100, 0))
	return in
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

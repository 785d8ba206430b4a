package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/catalog.yaml
var defaultCatalogYAML []byte

// DefaultYAML returns the embedded default catalog document.
func DefaultYAML() []byte {
	return defaultCatalogYAML
}

// EmbeddedCatalog parses the embedded default catalog.
func EmbeddedCatalog() (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(defaultCatalogYAML, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse embedded catalog: %w", err)
	}
	return &cat, nil
}

// DefaultCatalog returns a small hard-coded catalog: bare hands, the three
// starting buildings and the basic wildlife. Used only if the embedded
// document cannot be parsed.
func DefaultCatalog() *Catalog {
	return &Catalog{
		World: WorldConfig{
			Width:          5600,
			Height:         5600,
			RiverEnabled:   true,
			RiverX:         0.5,
			RiverWidth:     80,
			RiverCurrent:   1.2,
			ResourceMargin: 200,
			EnemyMargin:    300,
		},
		Player: PlayerConfig{
			Speed:              3.5,
			Size:               22,
			MaxHealth:          100,
			MaxFood:            100,
			FoodDecayRate:      0.004,
			HealthRegenRate:    0.025,
			RegenFoodThreshold: 50,
			StartWeapon:        "fist",
			StartBuildings:     []string{"spike", "wall_wood", "windmill"},
			StartConsumables:   []string{"apple"},
			StartGold:          100,
			StartWood:          200,
			StartStone:         100,
			AgeUpHealthBonus:   5,
			AgeUpHeal:          15,
		},
		Clock: ClockConfig{MaxDtMs: 80},
		Difficulty: DifficultyConfig{
			Progression: ProgressionConfig{Type: "none"},
		},
		Rules: Rules{
			PlacementRange:      120,
			ArmingDelayMs:       150,
			BuildScore:          5,
			GatherXP:            5,
			GatherScore:         3,
			MoveBlend:           0.25,
			PlayerChargeSpeed:   9,
			DashSpeed:           18,
			DashCooldownMs:      3000,
			HitPoisonMs:         3000,
			HitPoisonDPS:        5,
			HitBurnMs:           2000,
			HitBurnDPS:          8,
			HealOverTimeMs:      5000,
			ProjectileSize:      7,
			ProjectileKnockback: 3,
			TrapMs:              3000,
			ChargeMs:            1200,
			EnemyRespawnMs:      8000,
			BossRespawnMs:       30000,
			EnemyFriction:       0.85,
			WallBreakDPS:        50,
			MineRadius:          80,
			MineKnockback:       10,
			TurretHatRange:      400,
			TurretSpeed:         12,
			TurretShotRange:     420,
			GrownTreeSize:       22,
			ActionCooldownMs:    250,
		},
		Ages: AgeConfig{
			MaxAge:  100,
			XPTable: []int{0, 100, 200, 350, 500, 750, 1050, 1400, 1800, 2300},
		},
		Toolbar: ToolbarConfig{
			Spikes:      []string{"spike"},
			Walls:       []string{"wall_wood"},
			Mills:       []string{"windmill"},
			Consumables: []string{"apple"},
		},
		Resources: map[string]ResourceDef{
			"tree":  {Name: "Tree", Count: 200, MinSize: 18, MaxSize: 32, Health: 5, Yield: &YieldDef{MaterialWood, 10}, RespawnMs: 15000},
			"bush":  {Name: "Bush", Count: 130, MinSize: 14, MaxSize: 22, Health: 3, Yield: &YieldDef{MaterialFood, 8}, RespawnMs: 12000},
			"stone": {Name: "Stone", Count: 110, MinSize: 16, MaxSize: 28, Health: 8, Yield: &YieldDef{MaterialStone, 10}, RespawnMs: 20000},
		},
		Buildings: map[string]BuildingDef{
			"wall_wood": {Name: "Wood Wall", Category: "wall", Health: 200, Size: 50, Cost: Cost{Wood: 10}},
			"spike":     {Name: "Spikes", Category: "trap", Health: 375, Size: 28, Cost: Cost{Wood: 20, Stone: 5}, MaxCount: 15, Damage: 25},
			"windmill":  {Name: "Windmill", Category: "util", Health: 400, Size: 35, Cost: Cost{Wood: 50, Stone: 10}, MaxCount: 7, PassiveGold: 1},
		},
		Weapons: map[string]WeaponDef{
			"fist": fallbackWeapon,
		},
		Consumables: map[string]ConsumableDef{
			"apple": {Name: "Apple", FoodRestore: 20},
		},
		Hats: map[string]GearDef{
			NoneID: {Name: "None", Free: true},
		},
		Accessories: map[string]GearDef{
			NoneID: {Name: "None", Free: true},
		},
		Enemies: map[string]EnemyDef{
			"rabbit": {Name: "Rabbit", Count: 20, Speed: 2, Size: 14, Health: 30, Damage: 5, DetectionRange: 150, FleeRange: 100, XPDrop: 5, FoodDrop: 3},
			"wolf":   {Name: "Wolf", Count: 12, Speed: 2.8, Size: 18, Health: 80, Damage: 15, Aggressive: true, DetectionRange: 250, AttackRange: 35, AttackCooldownMs: 1000, XPDrop: 15, FoodDrop: 8},
		},
	}
}

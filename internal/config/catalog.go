// Package config provides the YAML-backed catalog of every spawnable and equippable
// kind, the tuning rules read by the simulation, and difficulty presets.
package config

import (
	"maps"
	"slices"
)

// Catalog is the read-only set of type definitions the simulation consumes.
// Nothing in the simulation mutates it after load.
type Catalog struct {
	World       WorldConfig              `yaml:"world"`
	Player      PlayerConfig             `yaml:"player"`
	Clock       ClockConfig              `yaml:"clock"`
	Difficulty  DifficultyConfig         `yaml:"difficulty"`
	Rules       Rules                    `yaml:"rules"`
	Ages        AgeConfig                `yaml:"ages"`
	Toolbar     ToolbarConfig            `yaml:"toolbar"`
	Resources   map[string]ResourceDef   `yaml:"resources"`
	Buildings   map[string]BuildingDef   `yaml:"buildings"`
	Weapons     map[string]WeaponDef     `yaml:"weapons"`
	Consumables map[string]ConsumableDef `yaml:"consumables"`
	Hats        map[string]GearDef       `yaml:"hats"`
	Accessories map[string]GearDef       `yaml:"accessories"`
	Enemies     map[string]EnemyDef      `yaml:"enemies"`
}

// WorldConfig describes the map.
type WorldConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	RiverEnabled   bool    `yaml:"river_enabled"`
	RiverX         float64 `yaml:"river_x"` // Fraction of world width
	RiverWidth     float64 `yaml:"river_width"`
	RiverCurrent   float64 `yaml:"river_current"`
	ResourceMargin float64 `yaml:"resource_margin"`
	EnemyMargin    float64 `yaml:"enemy_margin"`
}

// PlayerConfig holds the player's base stats and starting inventory.
type PlayerConfig struct {
	Speed              float64  `yaml:"speed"`
	Size               float64  `yaml:"size"`
	MaxHealth          float64  `yaml:"max_health"`
	MaxFood            float64  `yaml:"max_food"`
	FoodDecayRate      float64  `yaml:"food_decay_rate"`   // Per tick
	HealthRegenRate    float64  `yaml:"health_regen_rate"` // Per tick, while fed
	RegenFoodThreshold float64  `yaml:"regen_food_threshold"`
	StartWeapon        string   `yaml:"start_weapon"`
	StartBuildings     []string `yaml:"start_buildings"`
	StartConsumables   []string `yaml:"start_consumables"`
	StartGold          float64  `yaml:"start_gold"`
	StartWood          float64  `yaml:"start_wood"`
	StartStone         float64  `yaml:"start_stone"`
	AgeUpHealthBonus   float64  `yaml:"age_up_health_bonus"`
	AgeUpHeal          float64  `yaml:"age_up_heal"`
}

// ClockConfig tunes the tick driver.
type ClockConfig struct {
	MaxDtMs float64 `yaml:"max_dt_ms"`
}

// Rules are the fixed numbers of combat, AI and spawning.
type Rules struct {
	PlacementRange      float64 `yaml:"placement_range"`
	ArmingDelayMs       float64 `yaml:"arming_delay_ms"`
	BuildScore          float64 `yaml:"build_score"`
	GatherXP            int     `yaml:"gather_xp"`
	GatherScore         float64 `yaml:"gather_score"`
	MoveBlend           float64 `yaml:"move_blend"`
	PlayerChargeSpeed   float64 `yaml:"player_charge_speed"`
	DashSpeed           float64 `yaml:"dash_speed"`
	DashCooldownMs      float64 `yaml:"dash_cooldown_ms"`
	HitPoisonMs         float64 `yaml:"hit_poison_ms"`
	HitPoisonDPS        float64 `yaml:"hit_poison_dps"`
	HitBurnMs           float64 `yaml:"hit_burn_ms"`
	HitBurnDPS          float64 `yaml:"hit_burn_dps"`
	HealOverTimeMs      float64 `yaml:"heal_over_time_ms"`
	ProjectileSize      float64 `yaml:"projectile_size"`
	ProjectileKnockback float64 `yaml:"projectile_knockback"`
	TrapMs              float64 `yaml:"trap_ms"`
	ChargeMs            float64 `yaml:"charge_ms"`
	EnemyRespawnMs      float64 `yaml:"enemy_respawn_ms"`
	BossRespawnMs       float64 `yaml:"boss_respawn_ms"`
	EnemyFriction       float64 `yaml:"enemy_friction"`
	WallBreakDPS        float64 `yaml:"wall_break_dps"`
	MineRadius          float64 `yaml:"mine_radius"`
	MineKnockback       float64 `yaml:"mine_knockback"`
	TurretHatRange      float64 `yaml:"turret_hat_range"`
	TurretSpeed         float64 `yaml:"turret_speed"`
	TurretShotRange     float64 `yaml:"turret_shot_range"`
	GrownTreeSize       float64 `yaml:"grown_tree_size"`
	ActionCooldownMs    float64 `yaml:"action_cooldown_ms"` // Placing and eating
	BossWarning         string  `yaml:"boss_warning"`
}

// AgeConfig is the XP table and the per-age unlock offers.
type AgeConfig struct {
	MaxAge    int              `yaml:"max_age"`
	XPTable   []int            `yaml:"xp_table"` // Entry i: XP needed to go from age i to i+1
	Unlocks   map[int][]string `yaml:"unlocks"`
	Legendary string           `yaml:"legendary"` // Building granted at max age
}

// ToolbarConfig lists, best first, the catalog ids each building/consumable slot offers.
type ToolbarConfig struct {
	Spikes      []string `yaml:"spikes"`
	Walls       []string `yaml:"walls"`
	Mills       []string `yaml:"mills"`
	Consumables []string `yaml:"consumables"`
}

// Cost is a material price.
type Cost struct {
	Wood  float64 `yaml:"wood"`
	Stone float64 `yaml:"stone"`
	Food  float64 `yaml:"food"`
}

// Material names used by yields and ammunition.
const (
	MaterialWood  = "wood"
	MaterialStone = "stone"
	MaterialFood  = "food"
	MaterialGold  = "gold"
)

// YieldDef is what a depleted resource pays out before gather scaling.
type YieldDef struct {
	Material string  `yaml:"material"`
	Amount   float64 `yaml:"amount"`
}

// ResourceDef describes a gatherable resource kind.
type ResourceDef struct {
	Name        string    `yaml:"name"`
	Count       int       `yaml:"count"`
	MinSize     float64   `yaml:"min_size"`
	MaxSize     float64   `yaml:"max_size"`
	Health      float64   `yaml:"health"`
	Yield       *YieldDef `yaml:"yield,omitempty"`
	TouchDamage float64   `yaml:"touch_damage"` // Damage per second while overlapping
	RespawnMs   float64   `yaml:"respawn_ms"`
}

// DOTDef is a damage-over-time application.
type DOTDef struct {
	DPS        float64 `yaml:"dps"`
	DurationMs float64 `yaml:"duration_ms"`
}

// HealDef is an area heal around a building.
type HealDef struct {
	Rate   float64 `yaml:"rate"` // Per tick
	Radius float64 `yaml:"radius"`
}

// TurretDef is a building's auto-fire weapon.
type TurretDef struct {
	Damage float64 `yaml:"damage"`
	Range  float64 `yaml:"range"`
	RateMs    float64 `yaml:"rate_ms"`
	ShotRange float64 `yaml:"shot_range"`
}

// BuildingDef describes a placeable structure.
type BuildingDef struct {
	Name        string     `yaml:"name"`
	Desc        string     `yaml:"desc"`
	Category    string     `yaml:"category"`
	Health      float64    `yaml:"health"`
	Size        float64    `yaml:"size"`
	Cost        Cost       `yaml:"cost"`
	MaxCount    int        `yaml:"max_count"` // 0 = unlimited
	Damage      float64    `yaml:"damage"`    // Contact damage rate
	Poison      *DOTDef    `yaml:"poison,omitempty"`
	Burn        *DOTDef    `yaml:"burn,omitempty"`
	PassiveGold float64    `yaml:"passive_gold"` // Gold per second
	Heal        *HealDef   `yaml:"heal,omitempty"`
	Traps       bool       `yaml:"traps"`
	Invisible   bool       `yaml:"invisible"`
	BoostForce  float64    `yaml:"boost_force"`
	MineDamage  float64    `yaml:"mine_damage"`
	Turret      *TurretDef `yaml:"turret,omitempty"`
	GrowMs      float64    `yaml:"grow_ms"`
	GrowsInto   string     `yaml:"grows_into"` // Resource kind
	Spins       bool       `yaml:"spins"`
	ReqBuilding string     `yaml:"req_building"`
	AgeRequired int        `yaml:"age_required"`
	Legendary   bool       `yaml:"legendary"`
	Teleports   bool       `yaml:"teleports"` // Stepping on one moves you to another
}

// RangedDef makes a weapon fire projectiles.
type RangedDef struct {
	AmmoCost        float64 `yaml:"ammo_cost"`
	AmmoMaterial    string  `yaml:"ammo_material"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	Burst           int     `yaml:"burst"`
	BurstIntervalMs float64 `yaml:"burst_interval_ms"`
	Pierce          bool    `yaml:"pierce"`
}

// WeaponDef describes a melee or ranged weapon.
type WeaponDef struct {
	Name            string     `yaml:"name"`
	Desc            string     `yaml:"desc"`
	Damage          float64    `yaml:"damage"`
	Range           float64    `yaml:"range"`
	Knockback       float64    `yaml:"knockback"`
	CooldownMs      float64    `yaml:"cooldown_ms"`
	Gather          float64    `yaml:"gather"`
	GatherBonus     float64    `yaml:"gather_bonus"`
	SpeedMult       float64    `yaml:"speed_mult"`
	StructureDamage float64    `yaml:"structure_damage"`
	Secondary       bool       `yaml:"secondary"`
	BlockReduction  float64    `yaml:"block_reduction"` // Melee damage blocked while held
	ReqWeapon       string     `yaml:"req_weapon"`
	Ranged          *RangedDef `yaml:"ranged,omitempty"`
}

// ConsumableDef describes a usable food item.
type ConsumableDef struct {
	Name          string  `yaml:"name"`
	Desc          string  `yaml:"desc"`
	FoodCost      float64 `yaml:"food_cost"`
	FoodRestore   float64 `yaml:"food_restore"`
	HealthRestore float64 `yaml:"health_restore"`
	HealthRegen   float64 `yaml:"health_regen"` // Total extra HP over heal_over_time_ms
	AgeRequired   int     `yaml:"age_required"`
}

// ChargeDef gives an enemy the locked-heading charge attack.
type ChargeDef struct {
	Speed float64 `yaml:"speed"`
	Range float64 `yaml:"range"`
}

// RegionDef is a spawn box in world fractions.
type RegionDef struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// EnemyDef describes a wildlife or boss kind.
type EnemyDef struct {
	Name             string     `yaml:"name"`
	Count            int        `yaml:"count"`
	Speed            float64    `yaml:"speed"`
	Size             float64    `yaml:"size"`
	Health           float64    `yaml:"health"`
	Damage           float64    `yaml:"damage"`
	Aggressive       bool       `yaml:"aggressive"`
	DetectionRange   float64    `yaml:"detection_range"`
	FleeRange        float64    `yaml:"flee_range"`
	AttackRange      float64    `yaml:"attack_range"`
	AttackCooldownMs float64    `yaml:"attack_cooldown_ms"`
	XPDrop           int        `yaml:"xp_drop"`
	FoodDrop         float64    `yaml:"food_drop"`
	GoldDrop         float64    `yaml:"gold_drop"`
	Boss             bool       `yaml:"boss"`
	CanBreakWalls    bool       `yaml:"can_break_walls"`
	Charge           *ChargeDef `yaml:"charge,omitempty"`
	SpawnRegion      *RegionDef `yaml:"spawn_region,omitempty"`
}

// GearDef is a hat or accessory sold in the shop.
type GearDef struct {
	Name    string      `yaml:"name"`
	Desc    string      `yaml:"desc"`
	Cost    float64     `yaml:"cost"`
	Free    bool        `yaml:"free"`
	Hidden  bool        `yaml:"hidden"` // Not listed in the shop
	Effects GearEffects `yaml:"effects"`
}

// GearEffects lists the modifiers a piece of gear declares. A nil field means
// "not declared", which matters when a hat and an accessory are composed.
type GearEffects struct {
	SpeedMult           *float64 `yaml:"speed_mult,omitempty"`
	DamageMult          *float64 `yaml:"damage_mult,omitempty"`
	MeleeDamageMult     *float64 `yaml:"melee_damage_mult,omitempty"`
	ProjectileSpeedMult *float64 `yaml:"projectile_speed_mult,omitempty"`
	ProjectileRangeMult *float64 `yaml:"projectile_range_mult,omitempty"`
	FoodEffect          *float64 `yaml:"food_effect,omitempty"`
	RegenRate           *float64 `yaml:"regen_rate,omitempty"` // HP per second
	GatherBonus         *float64 `yaml:"gather_bonus,omitempty"`
	DamageReduction     *float64 `yaml:"damage_reduction,omitempty"`
	Lifesteal           *float64 `yaml:"lifesteal,omitempty"`
	MaxHealthBonus      *float64 `yaml:"max_health_bonus,omitempty"`
	DashCooldownMs      *float64 `yaml:"dash_cooldown_ms,omitempty"`
	ChargeDamageMult    *float64 `yaml:"charge_damage_mult,omitempty"`
	HealthDrain         *float64 `yaml:"health_drain,omitempty"`
	RiverResist         *float64 `yaml:"river_resist,omitempty"`
	TurretDamage        *float64 `yaml:"turret_damage,omitempty"`
	TurretRateMs        *float64 `yaml:"turret_rate_ms,omitempty"`
	PoisonDPS           *float64 `yaml:"poison_dps,omitempty"`
	ConsumableRegen     *float64 `yaml:"consumable_regen_bonus,omitempty"`
	ReflectDamage       *float64 `yaml:"reflect_damage,omitempty"`
	GoldOnKill          *float64 `yaml:"gold_on_kill,omitempty"`
	Stealth             *bool    `yaml:"stealth,omitempty"`
	CanDash             *bool    `yaml:"can_dash,omitempty"`
	ChargeEnabled       *bool    `yaml:"charge_enabled,omitempty"`
	IsTurret            *bool    `yaml:"is_turret,omitempty"`
	TurretImmune        *bool    `yaml:"turret_immune,omitempty"` // Display only: no enemy turrets
	PoisonOnHit         *bool    `yaml:"poison_on_hit,omitempty"`
	BurnOnHit           *bool    `yaml:"burn_on_hit,omitempty"`
	AnimalsPassive      *bool    `yaml:"animals_passive,omitempty"`
	PoisonImmune        *bool    `yaml:"poison_immune,omitempty"` // Display only: nothing poisons the player
	LowHealthBonus      *bool    `yaml:"low_health_bonus,omitempty"`
	NoHeal              *bool    `yaml:"no_heal,omitempty"`
}

// NoneID is the empty equip slot.
const NoneID = "none"

// FallbackWeaponID is used when a weapon id is missing from the catalog.
const FallbackWeaponID = "fist"

// fallbackWeapon mirrors bare hands so a bad id never breaks a tick.
var fallbackWeapon = WeaponDef{
	Name:       "Fist",
	Damage:     10,
	Range:      45,
	Knockback:  3,
	CooldownMs: 500,
	Gather:     1,
}

// Weapon returns the weapon definition, falling back to bare hands for unknown ids.
func (c *Catalog) Weapon(id string) WeaponDef {
	if w, ok := c.Weapons[id]; ok {
		return w
	}
	if w, ok := c.Weapons[FallbackWeaponID]; ok {
		return w
	}
	return fallbackWeapon
}

// Building returns the building definition and whether it exists.
func (c *Catalog) Building(id string) (BuildingDef, bool) {
	b, ok := c.Buildings[id]
	return b, ok
}

// Resource returns the resource definition and whether it exists.
func (c *Catalog) Resource(id string) (ResourceDef, bool) {
	r, ok := c.Resources[id]
	return r, ok
}

// Enemy returns the enemy definition and whether it exists.
func (c *Catalog) Enemy(id string) (EnemyDef, bool) {
	e, ok := c.Enemies[id]
	return e, ok
}

// Consumable returns the consumable definition and whether it exists.
func (c *Catalog) Consumable(id string) (ConsumableDef, bool) {
	e, ok := c.Consumables[id]
	return e, ok
}

// Hat returns the hat definition; unknown ids yield empty gear.
func (c *Catalog) Hat(id string) GearDef {
	return c.Hats[id]
}

// Accessory returns the accessory definition; unknown ids yield empty gear.
func (c *Catalog) Accessory(id string) GearDef {
	return c.Accessories[id]
}

// ResourceKinds returns resource ids in a stable order.
func (c *Catalog) ResourceKinds() []string {
	return slices.Sorted(maps.Keys(c.Resources))
}

// EnemyKinds returns enemy ids in a stable order.
func (c *Catalog) EnemyKinds() []string {
	return slices.Sorted(maps.Keys(c.Enemies))
}

// HatIDs returns hat ids in a stable order.
func (c *Catalog) HatIDs() []string {
	return slices.Sorted(maps.Keys(c.Hats))
}

// AccessoryIDs returns accessory ids in a stable order.
func (c *Catalog) AccessoryIDs() []string {
	return slices.Sorted(maps.Keys(c.Accessories))
}

// XPNeeded returns the XP required to advance past the given age. Ages beyond
// the table reuse its last entry. Zero means the age cannot be left.
func (a AgeConfig) XPNeeded(age int) int {
	if len(a.XPTable) == 0 || age < 1 {
		return 0
	}
	return a.XPTable[min(age, len(a.XPTable)-1)]
}

// ItemKind classifies an unlockable id.
type ItemKind int

const (
	ItemUnknown ItemKind = iota
	ItemWeapon
	ItemBuilding
	ItemConsumable
)

func (k ItemKind) String() string {
	switch k {
	case ItemWeapon:
		return "weapon"
	case ItemBuilding:
		return "building"
	case ItemConsumable:
		return "consumable"
	default:
		return "unknown"
	}
}

// Kind reports which table an unlockable id lives in.
func (c *Catalog) Kind(id string) ItemKind {
	if _, ok := c.Weapons[id]; ok {
		return ItemWeapon
	}
	if _, ok := c.Buildings[id]; ok {
		return ItemBuilding
	}
	if _, ok := c.Consumables[id]; ok {
		return ItemConsumable
	}
	return ItemUnknown
}

// DisplayName returns the catalog name for an unlockable id, or the id itself.
func (c *Catalog) DisplayName(id string) string {
	switch c.Kind(id) {
	case ItemWeapon:
		return c.Weapons[id].Name
	case ItemBuilding:
		return c.Buildings[id].Name
	case ItemConsumable:
		return c.Consumables[id].Name
	}
	return id
}

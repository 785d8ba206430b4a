package sim

import "github.com/vovakirdan/moofield/internal/config"

// Modifiers is the fixed-schema effect set derived from equipped gear.
type Modifiers struct {
	SpeedMult           float64
	DamageMult          float64
	MeleeDamageMult     float64
	ProjectileSpeedMult float64
	ProjectileRangeMult float64
	FoodEffect          float64

	RegenRate       float64 // HP per second
	GatherBonus     float64
	DamageReduction float64
	Lifesteal       float64
	MaxHealthBonus  float64

	DashCooldownMs   float64
	ChargeDamageMult float64
	HealthDrain      float64
	RiverResist      float64
	TurretDamage     float64
	TurretRateMs     float64
	PoisonDPS        float64
	ConsumableRegen  float64
	ReflectDamage    float64
	GoldOnKill       float64

	Stealth        bool
	CanDash        bool
	ChargeEnabled  bool
	IsTurret       bool
	PoisonOnHit    bool
	BurnOnHit      bool
	AnimalsPassive bool
	LowHealthBonus bool
	NoHeal         bool
}

// NeutralModifiers is the effect set of bare head and no accessory.
func NeutralModifiers() Modifiers {
	return Modifiers{
		SpeedMult:           1,
		DamageMult:          1,
		MeleeDamageMult:     1,
		ProjectileSpeedMult: 1,
		ProjectileRangeMult: 1,
		FoodEffect:          1,
		ChargeDamageMult:    1,
	}
}

type combineRule uint8

const (
	combineMultiply combineRule = iota
	combineAdd
	combineOverride
)

type numericRule struct {
	combine combineRule
	field   func(*Modifiers) *float64
	decl    func(*config.GearEffects) *float64
}

type flagRule struct {
	field func(*Modifiers) *bool
	decl  func(*config.GearEffects) *bool
}

// modifierRules declares, per field, how an accessory composes with the hat.
// Only speed and damage multiply and only regen adds; the accessory's value
// replaces the hat's for everything else. Flags always override.
var modifierRules = []numericRule{
	{combineMultiply, func(m *Modifiers) *float64 { return &m.SpeedMult }, func(g *config.GearEffects) *float64 { return g.SpeedMult }},
	{combineMultiply, func(m *Modifiers) *float64 { return &m.DamageMult }, func(g *config.GearEffects) *float64 { return g.DamageMult }},

	{combineAdd, func(m *Modifiers) *float64 { return &m.RegenRate }, func(g *config.GearEffects) *float64 { return g.RegenRate }},

	{combineOverride, func(m *Modifiers) *float64 { return &m.MeleeDamageMult }, func(g *config.GearEffects) *float64 { return g.MeleeDamageMult }},
	{combineOverride, func(m *Modifiers) *float64 { return &m.ProjectileSpeedMult }, func(g *config.GearEffects) *float64 { return g.ProjectileSpeedMult }},
	{combineOverride, func(m *Modifiers) *float64 { return &m.ProjectileRangeMult }, func(g *config.GearEffects) *float64 { return g.ProjectileRangeMult }},
	{combineOverride, func(m *Modifiers) *float64 { return &m.FoodEffect }, func(g *config.GearEffects) *float64 { return g.FoodEffect }},
	{combineOverride, func(m *Modifiers) *float64 { return &m.GatherBonus }, func(g *config.GearEffects) *float64 { return g.GatherBonus }},
	{combineOverride, func(m *Modifiers) *float64 { return &m.DamageReduction }, func(g *config.GearEffects) *float64 { return g.DamageReduction }},
	{combineOverride, func(m *Modifiers) *float64 { return &m.Lifesteal }, func(g *config.GearEffects) *float64 { return g.Lifesteal }},
	{combineOverride, func(m *Modifiers) *float64 { return &m.MaxHealthBonus }, func(g *config.GearEffects) *float64 { return g.MaxHealthBonus }},

	{combineOverride, func(m *Modifiers) *float64 { return &m.DashCooldownMs }, func(g *config.GearEffects) *float64 { return g.DashCooldownMs }},
	{combineOverride, func(m *Modifiers) *float64 { return &m.ChargeDamageMult }, func(g *config.GearEffects) *float64 { return g.ChargeDamageMult }},
	{combineOverride, func(m *Modifiers) *float64 { return &m.HealthDrain }, func(g *config.GearEffects) *float64 { return g.HealthDrain }},
	{combineOverride, func(m *Modifiers) *float64 { return &m.RiverResist }, func(g *config.GearEffects) *float64 { return g.RiverResist }},
	{combineOverride, func(m *Modifiers) *float64 { return &m.TurretDamage }, func(g *config.GearEffects) *float64 { return g.TurretDamage }},
	{combineOverride, func(m *Modifiers) *float64 { return &m.TurretRateMs }, func(g *config.GearEffects) *float64 { return g.TurretRateMs }},
	{combineOverride, func(m *Modifiers) *float64 { return &m.PoisonDPS }, func(g *config.GearEffects) *float64 { return g.PoisonDPS }},
	{combineOverride, func(m *Modifiers) *float64 { return &m.ConsumableRegen }, func(g *config.GearEffects) *float64 { return g.ConsumableRegen }},
	{combineOverride, func(m *Modifiers) *float64 { return &m.ReflectDamage }, func(g *config.GearEffects) *float64 { return g.ReflectDamage }},
	{combineOverride, func(m *Modifiers) *float64 { return &m.GoldOnKill }, func(g *config.GearEffects) *float64 { return g.GoldOnKill }},
}

var flagRules = []flagRule{
	{func(m *Modifiers) *bool { return &m.Stealth }, func(g *config.GearEffects) *bool { return g.Stealth }},
	{func(m *Modifiers) *bool { return &m.CanDash }, func(g *config.GearEffects) *bool { return g.CanDash }},
	{func(m *Modifiers) *bool { return &m.ChargeEnabled }, func(g *config.GearEffects) *bool { return g.ChargeEnabled }},
	{func(m *Modifiers) *bool { return &m.IsTurret }, func(g *config.GearEffects) *bool { return g.IsTurret }},
	{func(m *Modifiers) *bool { return &m.PoisonOnHit }, func(g *config.GearEffects) *bool { return g.PoisonOnHit }},
	{func(m *Modifiers) *bool { return &m.BurnOnHit }, func(g *config.GearEffects) *bool { return g.BurnOnHit }},
	{func(m *Modifiers) *bool { return &m.AnimalsPassive }, func(g *config.GearEffects) *bool { return g.AnimalsPassive }},
	{func(m *Modifiers) *bool { return &m.LowHealthBonus }, func(g *config.GearEffects) *bool { return g.LowHealthBonus }},
	{func(m *Modifiers) *bool { return &m.NoHeal }, func(g *config.GearEffects) *bool { return g.NoHeal }},
}

// Recompute derives the modifier set for a hat and accessory. The hat
// applies first, then the accessory composes per modifierRules. Unknown ids
// contribute nothing.
func Recompute(cat *config.Catalog, hatID, accID string) Modifiers {
	m := NeutralModifiers()
	hat := cat.Hat(hatID).Effects
	acc := cat.Accessory(accID).Effects
	m.apply(&hat)
	m.apply(&acc)
	return m
}

func (m *Modifiers) apply(g *config.GearEffects) {
	for _, r := range modifierRules {
		v := r.decl(g)
		if v == nil {
			continue
		}
		dst := r.field(m)
		switch r.combine {
		case combineMultiply:
			*dst *= *v
		case combineAdd:
			*dst += *v
		case combineOverride:
			*dst = *v
		}
	}
	for _, r := range flagRules {
		if v := r.decl(g); v != nil {
			*r.field(m) = *v
		}
	}
}

// berserk reports whether the low-health bonus is active.
func (m Modifiers) berserk(hpFrac float64) bool {
	return m.LowHealthBonus && hpFrac < 0.3
}

// Speed returns the movement speed for a base speed at the given health fraction.
func (m Modifiers) Speed(base, hpFrac float64) float64 {
	s := base * m.SpeedMult
	if m.berserk(hpFrac) {
		s *= 1.5
	}
	return s
}

// DamageMultiplier returns the outgoing damage factor at the given health fraction.
func (m Modifiers) DamageMultiplier(hpFrac float64) float64 {
	d := m.DamageMult
	if m.berserk(hpFrac) {
		d *= 1.25
	}
	return d
}

// RegenPerTick converts the per-second gear regen into a per-tick amount.
func (m Modifiers) RegenPerTick() float64 {
	return m.RegenRate / 60
}

// Mitigate applies damage reduction to incoming damage.
func (m Modifiers) Mitigate(dmg float64) float64 {
	return dmg * (1 - min(m.DamageReduction, 1))
}

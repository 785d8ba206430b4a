// Package sim is the survival simulation: one World owns every entity and
// advances them in a fixed stage order each tick.
package sim

import "github.com/vovakirdan/moofield/internal/core"

// EntityID is a stable identity key. It survives in-place respawn.
type EntityID uint64

// Owner tags who a building belongs to.
type Owner uint8

const (
	OwnerNone Owner = iota
	OwnerPlayer
)

// Side tags who fired a projectile.
type Side uint8

const (
	SidePlayer Side = iota
	SideHostile
)

// AIState is an enemy's behaviour state.
type AIState uint8

const (
	StateWander AIState = iota
	StatePursue
	StateFlee
	StateCharge
	StateTrapped
)

func (s AIState) String() string {
	switch s {
	case StateWander:
		return "wander"
	case StatePursue:
		return "pursue"
	case StateFlee:
		return "flee"
	case StateCharge:
		return "charge"
	case StateTrapped:
		return "trapped"
	default:
		return "unknown"
	}
}

// Status is a timed damage- or heal-over-time effect.
type Status struct {
	DPS       float64
	Remaining float64 // ms
}

// Active reports whether the effect still has time left.
func (s Status) Active() bool {
	return s.Remaining > 0
}

// advance spends dt of the effect and returns the amount it applies.
func (s *Status) advance(dt float64) float64 {
	if s.Remaining <= 0 {
		return 0
	}
	amount := s.DPS * min(dt, s.Remaining) / 1000
	s.Remaining -= dt
	if s.Remaining <= 0 {
		*s = Status{}
	}
	return amount
}

// Resource is a gatherable node.
type Resource struct {
	ID           EntityID
	Kind         string
	Pos          core.Vec2
	Size         float64
	Health       float64
	MaxHealth    float64
	Alive        bool
	RespawnTimer float64
	Grown        bool // Grown from a sapling; outside the catalogued population
}

// Building is a placed structure.
type Building struct {
	ID             EntityID
	Kind           string
	Pos            core.Vec2
	Angle          float64
	Health         float64
	MaxHealth      float64
	Owner          Owner
	Size           float64
	ArmTimer       float64
	TurretCooldown float64
	GrowTimer      float64
	Triggered      bool
	SpinPhase      float64
	Alive          bool
}

// Armed reports whether the building has finished its arming delay.
func (b *Building) Armed() bool {
	return b.Alive && b.ArmTimer <= 0
}

// Enemy is a wildlife or boss instance.
type Enemy struct {
	ID             EntityID
	Kind           string
	Pos            core.Vec2
	Vel            core.Vec2
	Angle          float64
	Size           float64
	Health         float64
	MaxHealth      float64
	Damage         float64 // Difficulty-scaled attack damage
	State          AIState
	Poison         Status
	Burn           Status
	TrapTimer      float64
	ChargeTimer    float64
	ChargeAngle    float64
	AttackCooldown float64
	WanderAngle    float64
	WanderTimer    float64
	FlashTimer     float64
	Boss           bool
	Alive          bool
	RespawnTimer   float64
}

// Projectile is an arrow, bullet or cannonball in flight.
type Projectile struct {
	ID        EntityID
	Pos       core.Vec2
	Vel       core.Vec2
	Damage    float64
	Range     float64 // Remaining travel budget
	Knockback float64
	Owner     Side
	Pierce    bool
	Alive     bool
	Hits      []EntityID // Enemies already struck by a piercing shot
}

package config

import "math"

// DifficultyConfig controls how wildlife grows tougher over a run.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "time", "age", or "none"
	MaxAt int    `yaml:"max_at"` // Seconds or age at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	HealthMultiplier float64 `yaml:"health_multiplier"` // Added to enemy health at max difficulty
	DamageMultiplier float64 `yaml:"damage_multiplier"` // Added to enemy damage at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset; ok is false for unknown names.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the catalog's difficulty based on a preset.
// Fixed freezes wildlife at catalog stats.
func ApplyPreset(cat *Catalog, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cat.Difficulty.Enabled = false
		cat.Difficulty.InitialLevel = 0
		return
	}
	cat.Difficulty.Enabled = true
	cat.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}

// DifficultyManager calculates enemy stat scaling from run progress.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clampF(cfg.InitialLevel, 0.0, 1.0)
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(survivedSec float64, age int) float64 {
	if !d.cfg.Enabled {
		return 0
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "time":
		progress = survivedSec / maxAt
	case "age":
		progress = float64(age-1) / maxAt
	default:
		return d.cfg.InitialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.cfg.InitialLevel + progress*(1.0-d.cfg.InitialLevel)
}

// HealthScale returns the multiplier applied to a spawning enemy's health.
func (d *DifficultyManager) HealthScale(survivedSec float64, age int) float64 {
	return 1.0 + d.Level(survivedSec, age)*d.cfg.Scaling.HealthMultiplier
}

// DamageScale returns the multiplier applied to a spawning enemy's damage.
func (d *DifficultyManager) DamageScale(survivedSec float64, age int) float64 {
	return 1.0 + d.Level(survivedSec, age)*d.cfg.Scaling.DamageMultiplier
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}

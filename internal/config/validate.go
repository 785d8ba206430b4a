package config

import (
	"errors"
	"fmt"
	"slices"
)

var materials = []string{MaterialWood, MaterialStone, MaterialFood, MaterialGold}

// Validate checks that the catalog is internally consistent: positive sizes,
// non-negative populations, and every cross-reference pointing at a real id.
// All problems are reported together.
func (c *Catalog) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.World.Width <= 0 || c.World.Height <= 0 {
		add("world: size must be positive, got %gx%g", c.World.Width, c.World.Height)
	}
	if c.Player.Size <= 0 || c.Player.Speed <= 0 || c.Player.MaxHealth <= 0 || c.Player.MaxFood <= 0 {
		add("player: size, speed, max_health and max_food must be positive")
	}
	if c.Clock.MaxDtMs <= 0 {
		add("clock: max_dt_ms must be positive")
	}
	if c.Ages.MaxAge < 1 {
		add("ages: max_age must be at least 1")
	}

	if _, ok := c.Weapons[c.Player.StartWeapon]; !ok {
		add("player: unknown start_weapon %q", c.Player.StartWeapon)
	}
	for _, id := range c.Player.StartBuildings {
		if _, ok := c.Buildings[id]; !ok {
			add("player: unknown start building %q", id)
		}
	}
	for _, id := range c.Player.StartConsumables {
		if _, ok := c.Consumables[id]; !ok {
			add("player: unknown start consumable %q", id)
		}
	}

	for age, ids := range c.Ages.Unlocks {
		if age < 1 || age > c.Ages.MaxAge {
			add("ages: unlock age %d outside 1..%d", age, c.Ages.MaxAge)
		}
		for _, id := range ids {
			if c.Kind(id) == ItemUnknown {
				add("ages: age %d unlocks unknown item %q", age, id)
			}
		}
	}
	if c.Ages.Legendary != "" {
		if _, ok := c.Buildings[c.Ages.Legendary]; !ok {
			add("ages: unknown legendary building %q", c.Ages.Legendary)
		}
	}

	for _, group := range [][]string{c.Toolbar.Spikes, c.Toolbar.Walls, c.Toolbar.Mills} {
		for _, id := range group {
			if _, ok := c.Buildings[id]; !ok {
				add("toolbar: unknown building %q", id)
			}
		}
	}
	for _, id := range c.Toolbar.Consumables {
		if _, ok := c.Consumables[id]; !ok {
			add("toolbar: unknown consumable %q", id)
		}
	}

	for id, r := range c.Resources {
		if r.Count < 0 {
			add("resource %s: negative count", id)
		}
		if r.MinSize <= 0 || r.MaxSize < r.MinSize {
			add("resource %s: invalid size range %g..%g", id, r.MinSize, r.MaxSize)
		}
		if r.Health <= 0 {
			add("resource %s: health must be positive", id)
		}
		if r.Yield != nil && !slices.Contains(materials, r.Yield.Material) {
			add("resource %s: unknown yield material %q", id, r.Yield.Material)
		}
	}

	for id, b := range c.Buildings {
		if b.Size <= 0 || b.Health <= 0 {
			add("building %s: size and health must be positive", id)
		}
		if b.MaxCount < 0 {
			add("building %s: negative max_count", id)
		}
		if b.GrowsInto != "" {
			if _, ok := c.Resources[b.GrowsInto]; !ok {
				add("building %s: unknown grows_into %q", id, b.GrowsInto)
			}
		}
		if b.ReqBuilding != "" {
			if _, ok := c.Buildings[b.ReqBuilding]; !ok {
				add("building %s: unknown req_building %q", id, b.ReqBuilding)
			}
		}
	}

	for id, w := range c.Weapons {
		if w.ReqWeapon != "" {
			if _, ok := c.Weapons[w.ReqWeapon]; !ok {
				add("weapon %s: unknown req_weapon %q", id, w.ReqWeapon)
			}
		}
		if w.Ranged != nil && !slices.Contains(materials, w.Ranged.AmmoMaterial) {
			add("weapon %s: unknown ammo material %q", id, w.Ranged.AmmoMaterial)
		}
	}

	for id, e := range c.Enemies {
		if e.Count < 0 {
			add("enemy %s: negative count", id)
		}
		if e.Size <= 0 || e.Health <= 0 {
			add("enemy %s: size and health must be positive", id)
		}
	}

	if _, ok := c.Hats[NoneID]; !ok {
		add("hats: missing %q entry", NoneID)
	}
	if _, ok := c.Accessories[NoneID]; !ok {
		add("accessories: missing %q entry", NoneID)
	}

	return errors.Join(errs...)
}

package sim

import (
	"slices"

	"github.com/vovakirdan/moofield/internal/config"
)

// Toolbar slot indexes.
const (
	SlotPrimary = iota
	SlotWeapon2
	SlotWeapon3
	SlotSpike
	SlotWall
	SlotMill
	SlotSecondary
	SlotConsumable
)

// SlotItem is what a toolbar slot currently resolves to. An empty ID means the slot is empty.
type SlotItem struct {
	Kind config.ItemKind
	ID   string
}

// SlotItem resolves toolbar slot i (0-based) from the player's unlocks.
// Group slots pick the best unlocked entry, or the one the player cycled to.
func (w *World) SlotItem(i int) SlotItem {
	p := &w.player
	switch i {
	case SlotPrimary:
		return SlotItem{config.ItemWeapon, p.PrimaryWeapon}
	case SlotWeapon2, SlotWeapon3:
		extra := w.extraWeapons()
		if n := i - SlotWeapon2; n < len(extra) {
			return SlotItem{config.ItemWeapon, extra[n]}
		}
	case SlotSpike:
		return w.pick(i, config.ItemBuilding, w.cat.Toolbar.Spikes, p.UnlockedBuildings)
	case SlotWall:
		return w.pick(i, config.ItemBuilding, w.cat.Toolbar.Walls, p.UnlockedBuildings)
	case SlotMill:
		return w.pick(i, config.ItemBuilding, w.cat.Toolbar.Mills, p.UnlockedBuildings)
	case SlotSecondary:
		var secondary []string
		for _, id := range p.UnlockedWeapons {
			if w.cat.Weapon(id).Secondary {
				secondary = append(secondary, id)
			}
		}
		return w.pick(i, config.ItemWeapon, secondary, secondary)
	case SlotConsumable:
		return w.pick(i, config.ItemConsumable, w.cat.Toolbar.Consumables, p.UnlockedConsumables)
	}
	return SlotItem{}
}

// extraWeapons lists unlocked primary-class weapons other than fists and the wielded one.
func (w *World) extraWeapons() []string {
	p := &w.player
	var out []string
	for _, id := range p.UnlockedWeapons {
		if id == config.FallbackWeaponID || id == p.PrimaryWeapon || w.cat.Weapon(id).Secondary {
			continue
		}
		out = append(out, id)
	}
	return out
}

// pick returns the cursor-selected entry of order that the player has unlocked.
func (w *World) pick(slot int, kind config.ItemKind, order, unlocked []string) SlotItem {
	var avail []string
	for _, id := range order {
		if slices.Contains(unlocked, id) {
			avail = append(avail, id)
		}
	}
	if len(avail) == 0 {
		return SlotItem{}
	}
	return SlotItem{kind, avail[w.player.SlotCursor[slot]%len(avail)]}
}

// selectSlot makes slot i active; selecting the active slot again cycles its group.
func (w *World) selectSlot(i int) {
	p := &w.player
	if i == p.ActiveSlot {
		p.SlotCursor[i]++
		return
	}
	p.ActiveSlot = i
}

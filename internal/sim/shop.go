package sim

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/vovakirdan/moofield/internal/config"
)

// GearSlot is an equip slot sold in the shop.
type GearSlot uint8

const (
	GearHat GearSlot = iota
	GearAccessory
)

func (g GearSlot) String() string {
	if g == GearAccessory {
		return "accessory"
	}
	return "hat"
}

func (w *World) gear(slot GearSlot) (table map[string]config.GearDef, owned *[]string, equipped *string) {
	p := &w.player
	if slot == GearAccessory {
		return w.cat.Accessories, &p.OwnedAccessories, &p.AccessoryID
	}
	return w.cat.Hats, &p.OwnedHats, &p.HatID
}

// ShopSelect acts like clicking an item in the shop: an unowned item is
// bought and equipped, an owned one toggles between equipped and "none".
func (w *World) ShopSelect(slot GearSlot, id string) error {
	if w.Over() {
		return ErrGameOver
	}
	table, owned, equipped := w.gear(slot)
	def, ok := table[id]
	if !ok {
		return fmt.Errorf("%s %q: %w", slot, id, ErrUnknownItem)
	}

	if !slices.Contains(*owned, id) {
		p := &w.player
		if !def.Free {
			if p.Gold < def.Cost {
				return fmt.Errorf("%s %q costs %.0f: %w", slot, id, def.Cost, ErrNotEnoughGold)
			}
			p.Gold -= def.Cost
		}
		*owned = append(*owned, id)
		*equipped = id
		w.log.Debug("gear bought", "slot", slot, "item", id, "cost", def.Cost)
	} else if *equipped == id {
		*equipped = config.NoneID
	} else {
		*equipped = id
	}
	w.recomputeMods()
	return nil
}

// Equip puts an owned item into its slot.
func (w *World) Equip(slot GearSlot, id string) error {
	_, owned, equipped := w.gear(slot)
	if !slices.Contains(*owned, id) {
		return fmt.Errorf("%s %q: %w", slot, id, ErrNotOwned)
	}
	*equipped = id
	w.recomputeMods()
	return nil
}

// ShopItem is one row of the shop listing.
type ShopItem struct {
	ID       string
	Def      config.GearDef
	Owned    bool
	Equipped bool
}

// ShopListing lists the visible items for a slot, cheapest first.
func (w *World) ShopListing(slot GearSlot) []ShopItem {
	table, owned, equipped := w.gear(slot)
	var out []ShopItem
	for id, def := range table {
		if def.Hidden {
			continue
		}
		out = append(out, ShopItem{
			ID:       id,
			Def:      def,
			Owned:    slices.Contains(*owned, id),
			Equipped: *equipped == id,
		})
	}
	slices.SortFunc(out, func(a, b ShopItem) int {
		return cmp.Or(cmp.Compare(a.Def.Cost, b.Def.Cost), strings.Compare(a.ID, b.ID))
	})
	return out
}

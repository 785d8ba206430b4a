package sim

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/moofield/internal/config"
)

// PendingChoice is an age-up offer waiting for the player.
type PendingChoice struct {
	Age     int
	Options []string
}

// Pending returns a copy of the first waiting age-up choice, or nil.
func (w *World) Pending() *PendingChoice {
	if len(w.choices) == 0 {
		return nil
	}
	c := w.choices[0]
	c.Options = slices.Clone(c.Options)
	return &c
}

// AddXP grants experience. Each threshold crossed raises the age by one;
// the grant keeps paying for further ages in the same call, but whatever is
// left after an age-up is dropped and XP restarts from zero.
func (w *World) AddXP(n int) {
	p := &w.player
	if !p.Alive || n <= 0 {
		return
	}
	w.emit(Event{Kind: EventXP, Pos: p.Pos, Amount: float64(n)})

	pool := p.XP + n
	leveled := false
	for p.Age < w.cat.Ages.MaxAge {
		need := w.cat.Ages.XPNeeded(p.Age)
		if need <= 0 || pool < need {
			break
		}
		pool -= need
		p.XP = 0
		p.Age++
		leveled = true
		w.onAgeUp()
	}
	if !leveled {
		p.XP = pool
	}
}

func (w *World) onAgeUp() {
	p := &w.player
	p.BaseMaxHealth += w.cat.Player.AgeUpHealthBonus
	p.MaxHealth = p.BaseMaxHealth + p.Mods.MaxHealthBonus
	p.Health = min(p.MaxHealth, p.Health+w.cat.Player.AgeUpHeal)
	w.emit(Event{Kind: EventAgeUp, Pos: p.Pos, Amount: float64(p.Age)})
	w.log.Info("age up", "age", p.Age)

	if legend := w.cat.Ages.Legendary; p.Age >= w.cat.Ages.MaxAge && legend != "" && !p.LegendaryUnlocked {
		p.LegendaryUnlocked = true
		p.UnlockedBuildings = appendUnique(p.UnlockedBuildings, legend)
		w.emit(Event{Kind: EventUnlock, Text: legend})
		w.announce(fmt.Sprintf("Legendary unlocked: %s", w.cat.DisplayName(legend)))
		w.log.Info("legendary unlocked", "item", legend)
		return
	}

	offers := w.offers(p.Age)
	if len(offers) == 0 {
		w.announce(fmt.Sprintf("Age %d", p.Age))
		return
	}
	w.choices = append(w.choices, PendingChoice{Age: p.Age, Options: offers})
}

// offers filters an age's unlock list down to items the player can take:
// prerequisites owned and not already unlocked.
func (w *World) offers(age int) []string {
	p := &w.player
	var out []string
	for _, id := range w.cat.Ages.Unlocks[age] {
		switch w.cat.Kind(id) {
		case config.ItemWeapon:
			req := w.cat.Weapons[id].ReqWeapon
			if slices.Contains(p.UnlockedWeapons, id) || (req != "" && !slices.Contains(p.UnlockedWeapons, req)) {
				continue
			}
		case config.ItemBuilding:
			req := w.cat.Buildings[id].ReqBuilding
			if slices.Contains(p.UnlockedBuildings, id) || (req != "" && !slices.Contains(p.UnlockedBuildings, req)) {
				continue
			}
		case config.ItemConsumable:
			if slices.Contains(p.UnlockedConsumables, id) {
				continue
			}
		default:
			continue
		}
		out = append(out, id)
	}
	return out
}

// ChooseUnlock takes one item from the waiting age-up offer. Weapons are
// wielded immediately.
func (w *World) ChooseUnlock(id string) error {
	if len(w.choices) == 0 {
		return ErrNoPendingChoice
	}
	if !slices.Contains(w.choices[0].Options, id) {
		return fmt.Errorf("choose %q: %w", id, ErrNotOffered)
	}
	p := &w.player
	switch w.cat.Kind(id) {
	case config.ItemWeapon:
		p.UnlockedWeapons = appendUnique(p.UnlockedWeapons, id)
		if w.cat.Weapon(id).Secondary {
			p.ActiveSlot = SlotSecondary
			p.SlotCursor[SlotSecondary] = w.secondaryIndex(id)
		} else {
			p.PrimaryWeapon = id
			p.ActiveSlot = SlotPrimary
		}
	case config.ItemBuilding:
		p.UnlockedBuildings = appendUnique(p.UnlockedBuildings, id)
	case config.ItemConsumable:
		p.UnlockedConsumables = appendUnique(p.UnlockedConsumables, id)
	default:
		return fmt.Errorf("choose %q: %w", id, ErrUnknownItem)
	}
	w.choices = w.choices[1:]
	w.emit(Event{Kind: EventUnlock, Text: id})
	w.log.Info("unlocked", "item", id, "age", p.Age)
	return nil
}

// SkipUnlock dismisses the waiting age-up offer without taking anything.
func (w *World) SkipUnlock() error {
	if len(w.choices) == 0 {
		return ErrNoPendingChoice
	}
	w.choices = w.choices[1:]
	return nil
}

func (w *World) secondaryIndex(id string) int {
	n := 0
	for _, u := range w.player.UnlockedWeapons {
		if u == id {
			return n
		}
		if w.cat.Weapon(u).Secondary {
			n++
		}
	}
	return 0
}

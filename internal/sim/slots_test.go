package sim

import (
	"testing"

	"github.com/vovakirdan/moofield/internal/config"
)

func TestSlotItems(t *testing.T) {
	w := newTestWorld(t, nil)
	tests := []struct {
		slot int
		want SlotItem
	}{
		{SlotPrimary, SlotItem{config.ItemWeapon, "fist"}},
		{SlotWeapon2, SlotItem{}},
		{SlotSpike, SlotItem{config.ItemBuilding, "spike"}},
		{SlotWall, SlotItem{config.ItemBuilding, "wall_wood"}},
		{SlotMill, SlotItem{config.ItemBuilding, "windmill"}},
		{SlotSecondary, SlotItem{}},
		{SlotConsumable, SlotItem{config.ItemConsumable, "apple"}},
	}
	for _, tt := range tests {
		if got := w.SlotItem(tt.slot); got != tt.want {
			t.Errorf("SlotItem(%d) = %+v, want %+v", tt.slot, got, tt.want)
		}
	}
}

func TestSlotGroupCycles(t *testing.T) {
	w := newTestWorld(t, nil)
	w.player.UnlockedBuildings = append(w.player.UnlockedBuildings, "spike_poison")

	if got := w.SlotItem(SlotSpike).ID; got != "spike_poison" {
		t.Fatalf("best spike = %s, want spike_poison", got)
	}
	w.selectSlot(SlotSpike)
	w.selectSlot(SlotSpike)
	if got := w.SlotItem(SlotSpike).ID; got != "spike" {
		t.Errorf("cycled spike = %s, want spike", got)
	}
	w.selectSlot(SlotSpike)
	if got := w.SlotItem(SlotSpike).ID; got != "spike_poison" {
		t.Errorf("wrapped spike = %s, want spike_poison", got)
	}
}

func TestExtraWeaponSlots(t *testing.T) {
	w := newTestWorld(t, nil)
	p := &w.player
	p.UnlockedWeapons = append(p.UnlockedWeapons, "sword", "bow", "bat")

	if got := w.SlotItem(SlotWeapon2).ID; got != "sword" {
		t.Errorf("slot 2 = %s, want sword", got)
	}
	if got := w.SlotItem(SlotWeapon3).ID; got != "bat" {
		t.Errorf("slot 3 = %s, want bat", got)
	}
	if got := w.SlotItem(SlotSecondary).ID; got != "bow" {
		t.Errorf("secondary = %s, want bow", got)
	}

	p.PrimaryWeapon = "sword"
	if got := w.SlotItem(SlotWeapon2).ID; got != "bat" {
		t.Errorf("slot 2 with sword wielded = %s, want bat", got)
	}
	if got := w.SlotItem(SlotWeapon3); got != (SlotItem{}) {
		t.Errorf("slot 3 = %+v, want empty", got)
	}
}

func TestEmptySlotSwingsFists(t *testing.T) {
	w := newTestWorld(t, nil)
	w.player.ActiveSlot = SlotWeapon3
	w.ResolveAction()
	if w.player.AttackTimer != 500 {
		t.Errorf("AttackTimer = %v, want fist cooldown 500", w.player.AttackTimer)
	}
}

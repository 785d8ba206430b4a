package autopilot

import (
	"context"
	"testing"

	"github.com/vovakirdan/moofield/internal/config"
	"github.com/vovakirdan/moofield/internal/core"
	"github.com/vovakirdan/moofield/internal/sim"
)

// arena is a small world with trees only.
func arena(t *testing.T) *config.Catalog {
	t.Helper()
	cat := config.DefaultCatalog()
	cat.World.Width, cat.World.Height = 1200, 1200
	cat.World.ResourceMargin, cat.World.EnemyMargin = 100, 100
	cat.World.RiverEnabled = false
	cat.Rules.BossWarning = ""
	for id, r := range cat.Resources {
		r.Count = 0
		if id == "tree" {
			r.Count = 10
		}
		cat.Resources[id] = r
	}
	for id, e := range cat.Enemies {
		e.Count = 0
		cat.Enemies[id] = e
	}
	if err := cat.Validate(); err != nil {
		t.Fatalf("catalog invalid: %v", err)
	}
	return cat
}

func TestRunGathers(t *testing.T) {
	w := sim.New(arena(t), 3)
	st, err := New(w, nil).Run(context.Background(), 3000, 16)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if st.Score <= 0 {
		t.Errorf("Score = %d, want the bot to gather something", st.Score)
	}
	if st.Kills != 0 {
		t.Errorf("Kills = %d with no enemies", st.Kills)
	}
	if w.Pending() != nil {
		t.Error("age-up choices should all be resolved")
	}
}

func TestRunDeterministic(t *testing.T) {
	cat := arena(t)
	a, err := New(sim.New(cat, 11), nil).Run(context.Background(), 1500, 16)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	b, err := New(sim.New(cat, 11), nil).Run(context.Background(), 1500, 16)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if a != b {
		t.Errorf("same seed gave %+v and %+v", a, b)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(sim.New(arena(t), 1), nil).Run(ctx, 0, 16)
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunStopsAtDeath(t *testing.T) {
	w := sim.New(arena(t), 1)
	w.HurtPlayer(1e6)
	st, err := New(w, nil).Run(context.Background(), 100, 16)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if st != *w.Final() {
		t.Errorf("stats = %+v, want final %+v", st, *w.Final())
	}
}

func TestDecideEatsWhenHurt(t *testing.T) {
	cat := arena(t)
	apple := cat.Consumables["apple"]
	apple.HealthRestore = 30
	cat.Consumables["apple"] = apple

	w := sim.New(cat, 1)
	w.HurtPlayer(70)
	in := New(w, nil).Decide()
	if in.Slot != sim.SlotConsumable+1 || !in.Has(core.ActionUse) {
		t.Errorf("intent = %+v, want consumable slot and use", in)
	}
}

func TestDecideHeadsForResource(t *testing.T) {
	w := sim.New(arena(t), 5)
	snap := w.Snapshot()
	in := New(w, nil).Decide()
	if in.MoveX == 0 && in.MoveY == 0 && !in.ActionHeld {
		t.Errorf("intent = %+v, want movement or a swing", in)
	}
	if in.Aim == snap.Player.Pos {
		t.Error("aim should point away from the player")
	}
}

func TestPickUnlock(t *testing.T) {
	cat := arena(t)
	cat.Weapons["sword"] = config.WeaponDef{Name: "Sword", Damage: 30, Range: 55, CooldownMs: 550, Gather: 1}
	cat.Weapons["shield"] = config.WeaponDef{Name: "Shield", Secondary: true}
	b := New(sim.New(cat, 1), nil)

	tests := []struct {
		options []string
		want    string
	}{
		{[]string{"windmill", "sword"}, "sword"},
		{[]string{"shield", "windmill"}, "windmill"},
		{[]string{"spike", "shield"}, "spike"},
	}
	for _, tt := range tests {
		if got := b.pickUnlock(tt.options); got != tt.want {
			t.Errorf("pickUnlock(%v) = %q, want %q", tt.options, got, tt.want)
		}
	}
}

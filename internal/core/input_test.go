package core

import "testing"

func TestIntentSetHasClear(t *testing.T) {
	in := NewIntent()
	in.MoveX = 1
	in.Slot = 3
	in.Set(ActionUse)

	if !in.Has(ActionUse) {
		t.Error("Has(ActionUse) should be true after Set")
	}
	if in.Has(ActionDash) {
		t.Error("Has(ActionDash) should be false")
	}

	in.Clear()
	if in.Has(ActionUse) {
		t.Error("Clear should drop one-shot actions")
	}
	if in.Slot != 0 {
		t.Errorf("Clear should reset slot selection, got %d", in.Slot)
	}
	if in.MoveX != 1 {
		t.Errorf("Clear should keep movement, got MoveX=%d", in.MoveX)
	}
}

func TestIntentZeroValue(t *testing.T) {
	var in Intent
	if in.Has(ActionUse) {
		t.Error("zero Intent should have no actions")
	}
	in.Set(ActionDash)
	if !in.Has(ActionDash) {
		t.Error("Set on zero Intent should allocate")
	}
}

func TestIntentMoveClampsAxes(t *testing.T) {
	in := Intent{MoveX: 5, MoveY: -3}
	m := in.Move()
	if m.X != 1 || m.Y != -1 {
		t.Errorf("Move() = %+v, expected (1, -1)", m)
	}
}

func TestIntentClone(t *testing.T) {
	in := NewIntent()
	in.Set(ActionShop)
	clone := in.Clone()
	in.Clear()

	if !clone.Has(ActionShop) {
		t.Error("Clone should not share the action map")
	}
}

func TestActionString(t *testing.T) {
	if ActionDash.String() != "Dash" {
		t.Errorf("ActionDash.String() = %q", ActionDash.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}

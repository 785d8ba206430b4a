package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestDist(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec2
		expected float64
	}{
		{"same point", V(3, 4), V(3, 4), 0},
		{"3-4-5 triangle", V(0, 0), V(3, 4), 5},
		{"negative coords", V(-1, -1), V(2, 3), 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Dist(tc.a, tc.b); math.Abs(got-tc.expected) > eps {
				t.Errorf("Dist() = %f, expected %f", got, tc.expected)
			}
			if got := Dist(tc.b, tc.a); math.Abs(got-tc.expected) > eps {
				t.Errorf("Dist() (reversed) = %f, expected %f", got, tc.expected)
			}
		})
	}
}

func TestAngleToAndFromAngle(t *testing.T) {
	a := V(10, 10)
	b := V(10, 20)

	angle := AngleTo(a, b)
	if math.Abs(angle-math.Pi/2) > eps {
		t.Errorf("AngleTo() = %f, expected pi/2", angle)
	}

	v := FromAngle(angle, 7)
	if math.Abs(v.X) > eps || math.Abs(v.Y-7) > eps {
		t.Errorf("FromAngle() = %+v, expected (0, 7)", v)
	}
}

func TestNormalize(t *testing.T) {
	n := V(3, 4).Normalize()
	if math.Abs(n.Len()-1) > eps {
		t.Errorf("Normalize() length = %f, expected 1", n.Len())
	}

	zero := Vec2{}.Normalize()
	if zero.X != 0 || zero.Y != 0 {
		t.Errorf("Normalize() of zero = %+v, expected zero", zero)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, 10, 0.25); got != 2.5 {
		t.Errorf("Lerp(0, 10, 0.25) = %f, expected 2.5", got)
	}
	got := LerpVec(V(0, 0), V(4, 8), 0.5)
	if got.X != 2 || got.Y != 4 {
		t.Errorf("LerpVec() = %+v, expected (2, 4)", got)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if got := ClampF(-0.5, 0, 1); got != 0 {
		t.Errorf("ClampF(-0.5, 0, 1) = %f, expected 0", got)
	}
	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %f, expected 1", got)
	}
}

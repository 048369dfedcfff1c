package core

import "testing"

func TestBoxOverlapsX(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping", Box{X: 0, W: 10}, Box{X: 5, W: 10}, true},
		{"disjoint", Box{X: 0, W: 10}, Box{X: 15, W: 10}, false},
		{"touching right edge", Box{X: 0, W: 10}, Box{X: 10, W: 10}, true},
		{"touching left edge", Box{X: 20, W: 10}, Box{X: 10, W: 10}, true},
		{"just apart", Box{X: 0, W: 10}, Box{X: 10.001, W: 10}, false},
		{"contained", Box{X: 0, W: 20}, Box{X: 5, W: 5}, true},
		{"vertical position ignored", Box{X: 0, Y: 0, W: 10, H: 1}, Box{X: 5, Y: 500, W: 10, H: 1}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.OverlapsX(tc.b); got != tc.expected {
				t.Errorf("OverlapsX() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.OverlapsX(tc.a); got != tc.expected {
				t.Errorf("OverlapsX() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxShrink(t *testing.T) {
	b := Box{X: 10, Y: 20, W: 44, H: 32}.Shrink(8, 6)

	if b.X != 10 || b.Y != 20 {
		t.Errorf("Shrink() moved origin to (%v, %v)", b.X, b.Y)
	}
	if b.W != 36 || b.H != 26 {
		t.Errorf("Shrink() = %vx%v, expected 36x26", b.W, b.H)
	}

	tiny := Box{W: 4, H: 4}.Shrink(8, 8)
	if tiny.W != 0 || tiny.H != 0 {
		t.Errorf("Shrink() past zero = %vx%v, expected 0x0", tiny.W, tiny.H)
	}
}

func TestBoxEdges(t *testing.T) {
	b := Box{X: 5, Y: 10, W: 20, H: 16}

	if b.Right() != 25 {
		t.Errorf("Right() = %v, expected 25", b.Right())
	}
	if b.Bottom() != 26 {
		t.Errorf("Bottom() = %v, expected 26", b.Bottom())
	}
	cx, cy := b.Center()
	if cx != 15 || cy != 18 {
		t.Errorf("Center() = (%v, %v), expected (15, 18)", cx, cy)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected float64
	}{
		{0.4, -0.5, 1.2, 0.4},
		{-3, -0.5, 1.2, -0.5},
		{9, -0.5, 1.2, 1.2},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return the smaller value")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return the larger value")
	}
}

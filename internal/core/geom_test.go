package core

import (
	"math"
	"testing"
)

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 5, Y: 5, W: 10, H: 10},
			expected: true,
		},
		{
			name:     "separated horizontally",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 15, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "separated vertically",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 0, Y: 10.5, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "touching edges count",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 10, Y: 0, W: 10, H: 10},
			expected: true,
		},
		{
			name:     "contained box",
			a:        Box{X: 0, Y: 0, W: 60, H: 20},
			b:        Box{X: 20, Y: 5, W: 10, H: 10},
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestPenetrationInto(t *testing.T) {
	block := Box{X: 100, Y: 50, W: 60, H: 20}

	tests := []struct {
		name       string
		ball       Box
		horizontal bool
		min        float64
	}{
		{"from below", Box{X: 125, Y: 68, W: 10, H: 10}, false, 2},
		{"from above", Box{X: 125, Y: 42, W: 10, H: 10}, false, 2},
		{"from the left", Box{X: 91, Y: 55, W: 10, H: 10}, true, 1},
		{"from the right", Box{X: 158, Y: 55, W: 10, H: 10}, true, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.ball.PenetrationInto(block)
			if p.Horizontal() != tc.horizontal {
				t.Errorf("Horizontal() = %v, expected %v (%+v)", p.Horizontal(), tc.horizontal, p)
			}
			if p.Min() != tc.min {
				t.Errorf("Min() = %v, expected %v", p.Min(), tc.min)
			}
		})
	}
}

func TestVec2(t *testing.T) {
	v := Vec2{X: 3, Y: -4}

	if v.Len() != 5 {
		t.Errorf("Len() = %v, expected 5", v.Len())
	}
	if got := v.Add(Vec2{X: 1, Y: 1}); got != (Vec2{X: 4, Y: -3}) {
		t.Errorf("Add() = %+v", got)
	}
	if got := v.Scale(2); got != (Vec2{X: 6, Y: -8}) {
		t.Errorf("Scale() = %+v", got)
	}
	if !v.IsFinite() {
		t.Error("finite vector reported as non-finite")
	}
	if (Vec2{X: math.NaN()}).IsFinite() || (Vec2{Y: math.Inf(1)}).IsFinite() {
		t.Error("NaN/Inf vectors must not be finite")
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
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if got := ClampF(1e9, 0, 500); got != 500 {
		t.Errorf("ClampF(1e9, 0, 500) = %v", got)
	}
	if got := ClampF(-3.5, 0, 500); got != 0 {
		t.Errorf("ClampF(-3.5, 0, 500) = %v", got)
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionClick)
	f.MovePointer(250)

	if !f.Has(ActionClick) || f.Has(ActionLeft) {
		t.Error("Has() mismatch")
	}
	if !f.HasPointer || f.PointerX != 250 {
		t.Errorf("pointer = (%v, %v)", f.PointerX, f.HasPointer)
	}

	f.Clear()
	if f.Has(ActionClick) || f.HasPointer {
		t.Error("Clear() should drop actions and pointer")
	}

	var zero InputFrame
	if zero.Has(ActionClick) {
		t.Error("zero frame should have no actions")
	}
}

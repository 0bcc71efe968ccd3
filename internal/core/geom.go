// Package core provides fundamental types and utilities for the game platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a 2D vector in field coordinates.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the magnitude of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsFinite reports whether both components are finite numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Box is an axis-aligned bounding box in field coordinates.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Overlaps reports whether two boxes touch or overlap.
// Edges are inclusive, so boxes sharing an edge count as overlapping.
func (b Box) Overlaps(o Box) bool {
	return b.Right() >= o.X && b.X <= o.Right() &&
		b.Bottom() >= o.Y && b.Y <= o.Bottom()
}

// Penetration holds how deep a moving box reaches past each edge of a target.
type Penetration struct {
	Left, Right, Top, Bottom float64
}

// Min returns the smallest of the four depths.
func (p Penetration) Min() float64 {
	return math.Min(math.Min(p.Left, p.Right), math.Min(p.Top, p.Bottom))
}

// Horizontal reports whether the shallowest depth is on the left or right edge.
// Ties between a horizontal and a vertical edge resolve horizontally.
func (p Penetration) Horizontal() bool {
	m := p.Min()
	return m == p.Left || m == p.Right
}

// PenetrationInto computes the edge depths of b inside target.
// Only meaningful when b.Overlaps(target).
func (b Box) PenetrationInto(target Box) Penetration {
	return Penetration{
		Left:   b.Right() - target.X,
		Right:  target.Right() - b.X,
		Top:    b.Bottom() - target.Y,
		Bottom: target.Bottom() - b.Y,
	}
}

// Rect represents an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

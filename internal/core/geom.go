// Package core provides fundamental types and utilities shared by the game,
// the presentation layer and the terminal platform. It has no external
// dependencies (especially no Bubble Tea) to keep game logic pure and testable.
package core

import "math"

// Box is an axis-aligned box in logical playfield units (pixels).
// The simulation works in these units; the renderer scales them to cells.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// OverlapsX reports whether the horizontal extents of two boxes overlap.
// Extents that exactly touch count as overlapping.
func (b Box) OverlapsX(other Box) bool {
	return !(b.Right() < other.X || b.X > other.Right())
}

// Shrink returns the box reduced by dw and dh on its right and bottom edges.
func (b Box) Shrink(dw, dh float64) Box {
	return Box{X: b.X, Y: b.Y, W: math.Max(0, b.W-dw), H: math.Max(0, b.H-dh)}
}

// Center returns the center point of the box.
func (b Box) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Rect is an integer rectangle in screen cells, used for drawing.
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

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Package core provides fundamental types and utilities for brickwell.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vector2 is a point or direction in world space. World space is y-up.
type Vector2 struct {
	X, Y float64
}

// Vec returns the vector (x, y).
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// AddX returns v shifted horizontally by dx.
func (v Vector2) AddX(dx float64) Vector2 {
	return Vector2{X: v.X + dx, Y: v.Y}
}

// AddY returns v shifted vertically by dy.
func (v Vector2) AddY(dy float64) Vector2 {
	return Vector2{X: v.X, Y: v.Y + dy}
}

// Scale multiplies both components by f.
func (v Vector2) Scale(f float64) Vector2 {
	return Vector2{X: v.X * f, Y: v.Y * f}
}

// HFlip mirrors the horizontal component.
func (v Vector2) HFlip() Vector2 {
	return Vector2{X: -v.X, Y: v.Y}
}

// VFlip mirrors the vertical component.
func (v Vector2) VFlip() Vector2 {
	return Vector2{X: v.X, Y: -v.Y}
}

// Flip mirrors both components.
func (v Vector2) Flip() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// Magnitude returns the Euclidean length of v.
func (v Vector2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// Avg returns the midpoint of a and b.
func Avg(a, b Vector2) Vector2 {
	return Vector2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Lerp interpolates between a and b; t=0 gives a, t=1 gives b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Deg converts degrees to radians.
func Deg(d float64) float64 {
	return d * math.Pi / 180
}

// Rect is an axis-aligned box with Min <= Max componentwise.
// Containment is inclusive on every edge.
type Rect struct {
	Min, Max Vector2
}

// NewRect builds a rect from any two opposite corners.
func NewRect(a, b Vector2) Rect {
	return Rect{
		Min: Vector2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Vector2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// R is shorthand for NewRect(Vec(x1, y1), Vec(x2, y2)).
func R(x1, y1, x2, y2 float64) Rect {
	return NewRect(Vec(x1, y1), Vec(x2, y2))
}

// RectFromCenter returns the rect of the given size centered on c.
func RectFromCenter(c, size Vector2) Rect {
	half := size.Scale(0.5)
	return NewRect(c.Sub(half), c.Add(half))
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ContainsXY is Contains for a bare coordinate pair.
func (r Rect) ContainsXY(x, y float64) bool {
	return r.Contains(Vector2{X: x, Y: y})
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return r.Contains(o.Min) && r.Contains(o.Max)
}

// Intersects reports whether r and o overlap, touching edges included.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X && r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Translate returns r moved by d.
func (r Rect) Translate(d Vector2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Shrink returns r with dx removed from both horizontal sides and dy from both
// vertical sides.
func (r Rect) Shrink(dx, dy float64) Rect {
	return NewRect(r.Min.Add(Vec(dx, dy)), r.Max.Sub(Vec(dx, dy)))
}

// Center returns the middle point.
func (r Rect) Center() Vector2 {
	return Avg(r.Min, r.Max)
}

// TopLeft returns the upper-left corner.
func (r Rect) TopLeft() Vector2 {
	return Vector2{X: r.Min.X, Y: r.Max.Y}
}

// TopCenter returns the middle of the top edge.
func (r Rect) TopCenter() Vector2 {
	return Vector2{X: (r.Min.X + r.Max.X) / 2, Y: r.Max.Y}
}

// TopRight returns the upper-right corner.
func (r Rect) TopRight() Vector2 {
	return r.Max
}

// BottomLeft returns the lower-left corner.
func (r Rect) BottomLeft() Vector2 {
	return r.Min
}

// BottomCenter returns the middle of the bottom edge.
func (r Rect) BottomCenter() Vector2 {
	return Vector2{X: (r.Min.X + r.Max.X) / 2, Y: r.Min.Y}
}

// BottomRight returns the lower-right corner.
func (r Rect) BottomRight() Vector2 {
	return Vector2{X: r.Max.X, Y: r.Min.Y}
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

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

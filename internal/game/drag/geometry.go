// Package drag resolves drop targets for drag-and-drop gestures.
//
// The package is pure geometry: it consumes rectangles and points that
// the presentation layer has already measured, and it never queries a
// rendering surface or mutates game state. Legality of a candidate is
// injected by the caller, keeping the rules package the single source
// of truth.
package drag

import "math"

// Point is a position in the caller's screen space.
type Point struct {
	X float64
	Y float64
}

// DistanceTo returns the Euclidean distance to q.
func (p Point) DistanceTo(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect is an axis-aligned rectangle in the caller's screen space.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// IntersectionArea returns the area shared by r and o, zero when they
// do not overlap.
func (r Rect) IntersectionArea(o Rect) float64 {
	w := math.Min(r.X+r.W, o.X+o.W) - math.Max(r.X, o.X)
	h := math.Min(r.Y+r.H, o.Y+o.H) - math.Max(r.Y, o.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Translate returns a copy of r shifted by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

package core

import "math"

// Vec is a point or offset in world space.
type Vec struct {
	X float64
	Y float64
}

// Add returns v translated by o.
func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v minus o.
func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale multiplies both components by f.
func (v Vec) Scale(f float64) Vec { return Vec{X: v.X * f, Y: v.Y * f} }

// Rect is an axis-aligned rectangle covering [Min.X, Max.X) x [Min.Y, Max.Y).
type Rect struct {
	Min Vec
	Max Vec
}

// RectAt builds a rectangle from its minimum corner and size.
func RectAt(origin Vec, w, h float64) Rect {
	return Rect{Min: origin, Max: Vec{X: origin.X + w, Y: origin.Y + h}}
}

// W returns the rectangle width.
func (r Rect) W() float64 { return r.Max.X - r.Min.X }

// H returns the rectangle height.
func (r Rect) H() float64 { return r.Max.Y - r.Min.Y }

// Center returns the geometric center.
func (r Rect) Center() Vec {
	return Vec{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool { return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y }

// Intersects reports whether the interiors of r and o overlap. Rectangles
// that only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X &&
		r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Shift returns r translated by offset.
func (r Rect) Shift(offset Vec) Rect {
	return Rect{Min: r.Min.Add(offset), Max: r.Max.Add(offset)}
}

// Inflate grows the rectangle by d on every side.
func (r Rect) Inflate(d float64) Rect {
	return Rect{Min: Vec{X: r.Min.X - d, Y: r.Min.Y - d}, Max: Vec{X: r.Max.X + d, Y: r.Max.Y + d}}
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Vec{X: math.Min(r.Min.X, o.Min.X), Y: math.Min(r.Min.Y, o.Min.Y)},
		Max: Vec{X: math.Max(r.Max.X, o.Max.X), Y: math.Max(r.Max.Y, o.Max.Y)},
	}
}

// Covers reports whether p lies inside r or on its boundary.
func (r Rect) Covers(p Vec) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

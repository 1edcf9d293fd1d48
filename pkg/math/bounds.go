package math

import "math"

// Bounds3 is an axis-aligned bounding box.
// A zero-point box is empty: Min is +Inf and Max is -Inf.
type Bounds3 struct {
	Min Vec3
	Max Vec3
}

// EmptyBounds returns a box that contains nothing.
func EmptyBounds() Bounds3 {
	inf := math.Inf(1)
	return Bounds3{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// BoundsOf returns the smallest box containing all points.
func BoundsOf(points ...Vec3) Bounds3 {
	b := EmptyBounds()
	for _, p := range points {
		b = b.Extend(p)
	}
	return b
}

// Extend returns b grown to include p.
func (b Bounds3) Extend(p Vec3) Bounds3 {
	return Bounds3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the box containing both b and other.
func (b Bounds3) Union(other Bounds3) Bounds3 {
	return Bounds3{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// IsEmpty reports whether b contains no points.
func (b Bounds3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// Center returns the midpoint of the box.
func (b Bounds3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent along each axis.
func (b Bounds3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside or on the box.
func (b Bounds3) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

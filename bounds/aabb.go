package bounds

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyAABB returns an AABB primed for repeated Update calls (min = +inf,
// max = -inf), matching the scene-wide accumulation pattern used when
// computing octree root extents.
func EmptyAABB() AABB {
	const inf = float32(1e30)
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// Update grows a to enclose o.
func (a AABB) Update(o AABB) AABB {
	return AABB{
		Min: mgl32.Vec3{min32(a.Min[0], o.Min[0]), min32(a.Min[1], o.Min[1]), min32(a.Min[2], o.Min[2])},
		Max: mgl32.Vec3{max32(a.Max[0], o.Max[0]), max32(a.Max[1], o.Max[1]), max32(a.Max[2], o.Max[2])},
	}
}

// Center returns the midpoint of the box.
func (a AABB) Center() mgl32.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Extents returns Max - Min per axis.
func (a AABB) Extents() mgl32.Vec3 {
	return a.Max.Sub(a.Min)
}

// BoundingSphere returns the sphere centred on the AABB's midpoint with
// radius equal to the half-diagonal, the standard conservative enclosure.
func (a AABB) BoundingSphere() Sphere {
	center := a.Center()
	radius := a.Max.Sub(center).Len()
	return Sphere{Center: center, Radius: radius}
}

// IsCompletelyInside reports whether a fits entirely within o on every axis.
// This is the predicate the octree builder uses to decide which node an
// entity belongs to.
func (a AABB) IsCompletelyInside(o AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Min[i] < o.Min[i] || a.Max[i] > o.Max[i] {
			return false
		}
	}
	return true
}

// Intersects reports whether a and o overlap (touching counts as overlap).
func (a AABB) Intersects(o AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Max[i] < o.Min[i] || a.Min[i] > o.Max[i] {
			return false
		}
	}
	return true
}

// Corners returns the 8 world-space corners of the box, in the fixed
// bit-ordering (bit0=x, bit1=y, bit2=z) used throughout the octree and
// scissor routines.
func (a AABB) Corners() [8]mgl32.Vec3 {
	var c [8]mgl32.Vec3
	for i := 0; i < 8; i++ {
		x := a.Min[0]
		if i&1 != 0 {
			x = a.Max[0]
		}
		y := a.Min[1]
		if i&2 != 0 {
			y = a.Max[1]
		}
		z := a.Min[2]
		if i&4 != 0 {
			z = a.Max[2]
		}
		c[i] = mgl32.Vec3{x, y, z}
	}
	return c
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

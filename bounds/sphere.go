package bounds

import "github.com/go-gl/mathgl/mgl32"

// Sphere is the cheapest and most commonly used bounding volume.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// Union returns the smallest sphere enclosing both s and o. Used when
// computing unified bounds for octree balancing and Model sphere derivation.
func (s Sphere) Union(o Sphere) Sphere {
	d := o.Center.Sub(s.Center)
	dist := d.Len()
	if dist+o.Radius <= s.Radius {
		return s
	}
	if dist+s.Radius <= o.Radius {
		return o
	}
	newRadius := (dist + s.Radius + o.Radius) * 0.5
	if dist < 1e-8 {
		if o.Radius > s.Radius {
			return o
		}
		return s
	}
	center := s.Center.Add(d.Mul((newRadius - s.Radius) / dist))
	return Sphere{Center: center, Radius: newRadius}
}

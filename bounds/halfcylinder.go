package bounds

import "github.com/go-gl/mathgl/mgl32"

// HalfCylinder is a cylinder capped at Endpoint and extending to infinity
// in the direction of Axis. Used for directional-light shadow volumes,
// where the light has no position, only a direction.
type HalfCylinder struct {
	Endpoint mgl32.Vec3
	Axis     mgl32.Vec3
	Radius   float32
}

// EffectiveRadius mirrors Cylinder.EffectiveRadius; the radius projection
// does not depend on the finiteness of the shape.
func (h HalfCylinder) EffectiveRadius(normal mgl32.Vec3) float32 {
	d := h.Axis.Dot(normal)
	v := 1 - d*d
	if v < 0 {
		v = 0
	}
	return h.Radius * sqrt32(v)
}

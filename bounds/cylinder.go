package bounds

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Cylinder is a finite, capped cylinder used for beam-light shadow volumes.
// AxisCoefficients[k] = sqrt(1 - Axis[k]^2), precomputed for the
// effective-radius projection used by several intersection tests.
type Cylinder struct {
	Center           mgl32.Vec3
	Length           float32
	Axis             mgl32.Vec3
	Radius           float32
	AxisCoefficients mgl32.Vec3
}

func NewCylinder(center mgl32.Vec3, length float32, axis mgl32.Vec3, radius float32) Cylinder {
	c := Cylinder{Center: center, Length: length, Axis: axis, Radius: radius}
	for i := 0; i < 3; i++ {
		v := 1 - axis[i]*axis[i]
		if v < 0 {
			v = 0
		}
		c.AxisCoefficients[i] = sqrt32(v)
	}
	return c
}

// Endpoints returns the two centerline endpoints of the cylinder.
func (c Cylinder) Endpoints() (mgl32.Vec3, mgl32.Vec3) {
	p1 := c.Center
	p2 := c.Center.Add(c.Axis.Mul(c.Length))
	return p1, p2
}

// EffectiveRadius is radius * sqrt(1 - dot(axis, normal)^2), the projected
// radius of the cylinder's circular cross-section onto a plane with the
// given normal.
func (c Cylinder) EffectiveRadius(normal mgl32.Vec3) float32 {
	d := c.Axis.Dot(normal)
	v := 1 - d*d
	if v < 0 {
		v = 0
	}
	return c.Radius * sqrt32(v)
}

func sqrt32(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

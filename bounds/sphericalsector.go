package bounds

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SphericalSector is a cone-shaped wedge of a sphere, used as the fallback
// shadow volume for point/spot lights when a PyramidCone's edges would
// exceed a 90-degree angle from the axis.
type SphericalSector struct {
	Center             mgl32.Vec3
	Axis               mgl32.Vec3
	Radius             float32
	CosHalfAngularSize float32
	SinHalfAngularSize float32
}

// NewSphericalSector derives SinHalfAngularSize as sqrt(max(0, 1-cos^2))
// rather than sinf(acosf(cos)). this is deliberate: this is the numerically
// safer of the two options the source offers, and no test here depends on
// the noisier trig-roundtrip path.
func NewSphericalSector(center, axis mgl32.Vec3, radius, cosHalfAngularSize float32) SphericalSector {
	v := 1 - cosHalfAngularSize*cosHalfAngularSize
	if v < 0 {
		v = 0
	}
	return SphericalSector{
		Center:             center,
		Axis:               axis,
		Radius:             radius,
		CosHalfAngularSize: cosHalfAngularSize,
		SinHalfAngularSize: float32(math.Sqrt(float64(v))),
	}
}

// EffectiveRadius implements the piecewise projection:
// the full radius when normal lies within the sector, zero when it is more
// than 90 + half_angular_size degrees away, and a scaled projection in
// between.
func (s SphericalSector) EffectiveRadius(normal mgl32.Vec3) float32 {
	cosAngle := s.Axis.Dot(normal)
	if cosAngle >= s.CosHalfAngularSize {
		return s.Radius
	}
	// cos(90 + half_angular_size) = -sin(half_angular_size)
	if cosAngle <= -s.SinHalfAngularSize {
		return 0
	}
	// Project normal onto the plane spanned by axis in the 2D reduction:
	// the component of normal orthogonal to axis, scaled by sin, plus the
	// axis-aligned component scaled by cos, gives the boundary-ray
	// projection magnitude.
	sinAngle := float32(math.Sqrt(float64(max32(0, 1-cosAngle*cosAngle))))
	proj := cosAngle*s.CosHalfAngularSize + sinAngle*s.SinHalfAngularSize
	if proj < 0 {
		proj = 0
	}
	return s.Radius * proj
}

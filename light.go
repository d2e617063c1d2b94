package sre

import (
	"github.com/gekko3d/sre/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType is the light variant tag: Directional, PointSource, Spot, or
// Beam, matching §3's Light data model.
type LightType int

const (
	LightDirectional LightType = iota
	LightPointSource
	LightSpot
	LightBeam
)

func (t LightType) String() string {
	switch t {
	case LightDirectional:
		return "Directional"
	case LightPointSource:
		return "PointSource"
	case LightSpot:
		return "Spot"
	case LightBeam:
		return "Beam"
	default:
		return "UnknownLightType"
	}
}

// LightFlags are the per-light lifecycle/dynamics bits named in §3.
type LightFlags uint16

const (
	LightDynamicPosition LightFlags = 1 << iota
	LightDynamicDirection
	LightDynamicLightVolume
	LightWorstCaseBoundsSphere
	LightDynamicSpotExponent
	LightDynamicShadowVolume
)

func (f LightFlags) Has(bit LightFlags) bool { return f&bit != 0 }

// Attenuation is the standard constant/linear/quadratic falloff triple.
type Attenuation struct {
	Constant, Linear, Quadratic float32
}

// Light is one scene light. Vector stores position (w=1) or direction
// (w=0) in homogeneous form, per §3. Cylinder is populated for Beam lights
// and SphericalSector for Spot lights; both are nil otherwise.
type Light struct {
	ID          uint32
	Type        LightType
	Vector      mgl32.Vec4
	Color       mgl32.Vec3
	Attenuation Attenuation

	Sphere          bounds.Sphere
	Cylinder        *bounds.Cylinder
	SphericalSector *bounds.SphericalSector

	Flags LightFlags

	// StaticObjectList records, for a static light, every static object its
	// preprocessing pass found to affect; the object side of the pairing
	// holds the precomputed ShadowVolume itself (object.ShadowCache).
	StaticObjectList []uint32

	exists bool
}

// IsPointSource reports whether Vector carries a finite position (w != 0)
// rather than a direction.
func (l *Light) IsPointSource() bool { return l.Vector[3] != 0 }

// Position returns the light's world-space position, dividing out w.
// Callers must not call this on a Directional light.
func (l *Light) Position() mgl32.Vec3 {
	p := mgl32.Vec3{l.Vector[0], l.Vector[1], l.Vector[2]}
	if l.Vector[3] != 0 {
		p = p.Mul(1.0 / l.Vector[3])
	}
	return p
}

// Direction returns the xyz part of Vector as stored, neither normalized
// nor divided by w. For a Directional light this is its direction; for a
// point-type light (PointSource/Spot/Beam) it is the position, and a
// Spot/Beam axis lives in SphericalSector/Cylinder instead.
func (l *Light) Direction() mgl32.Vec3 {
	return mgl32.Vec3{l.Vector[0], l.Vector[1], l.Vector[2]}
}

// BeamAxisLength returns the beam's axis and length for a Beam light; the
// axis is taken from Cylinder.Axis and the length from Cylinder.Length.
// Zero values for any other light type.
func (l *Light) BeamAxisLength() (mgl32.Vec3, float32) {
	if l.Cylinder == nil {
		return mgl32.Vec3{}, 0
	}
	return l.Cylinder.Axis, l.Cylinder.Length
}

// Package shadowvolume constructs, per (object, light) pair, the bounding
// volume that contains every point the object could cast a shadow to within
// the light's volume of influence, and caches the result across frames.
package shadowvolume

import (
	"github.com/gekko3d/sre/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

// LightKind mirrors the scene's Light variant enum, restricted to the shape
// this package's branch needs.
type LightKind int

const (
	Directional LightKind = iota
	PointSource
	Spot
	Beam
)

// Light carries only the fields the shadow-volume constructor needs: a
// homogeneous position/direction (w=0 for directional) and, for beam
// lights, the beam axis and length.
type Light struct {
	Kind       LightKind
	Position   mgl32.Vec4
	BeamAxis   mgl32.Vec3
	BeamLength float32
}

// Construct dispatches to the directional/beam/point-spot branch, given the
// object's world-space sphere (used by directional and beam) and oriented
// box (used by point/spot).
func Construct(sphere bounds.Sphere, box *bounds.Box, light Light) bounds.Volume {
	switch light.Kind {
	case Directional:
		dir := mgl32.Vec3{light.Position[0], light.Position[1], light.Position[2]}
		return ConstructDirectional(sphere, dir)
	case Beam:
		lightPos := mgl32.Vec3{light.Position[0], light.Position[1], light.Position[2]}
		return ConstructBeam(sphere, lightPos, light.BeamAxis, light.BeamLength)
	default:
		lightPos := mgl32.Vec3{light.Position[0], light.Position[1], light.Position[2]}
		if light.Position[3] != 0 {
			lightPos = lightPos.Mul(1.0 / light.Position[3])
		}
		return ConstructPointOrSpot(box, lightPos)
	}
}

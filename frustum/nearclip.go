package frustum

import (
	"github.com/gekko3d/sre/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

// LightPosition classifies a light (homogeneous position/direction) against
// the near plane.
type LightPosition int

const (
	BehindNearPlane LightPosition = iota
	InFrontOfNearPlane
	InNearPlane
)

const nearPlaneEpsilon = 1e-6

// ClassifyLightPosition evaluates dot(near_plane, light) in world space; w=0
// (directional) lights are always treated as InFrontOfNearPlane since they
// have no finite position to be behind anything.
func ClassifyLightPosition(f *Frustum, lightPos mgl32.Vec4) LightPosition {
	if lightPos[3] == 0 {
		return InFrontOfNearPlane
	}
	nearPlane := f.Hull.Plane[0]
	d := nearPlane[0]*lightPos[0] + nearPlane[1]*lightPos[1] + nearPlane[2]*lightPos[2] + nearPlane[3]*lightPos[3]
	switch {
	case d < -nearPlaneEpsilon:
		return BehindNearPlane
	case d > nearPlaneEpsilon:
		return InFrontOfNearPlane
	default:
		return InNearPlane
	}
}

// NearClipVolume builds the convex hull used to decide depth-pass vs depth-
// fail stencil shadow rendering: four side planes from the near-plane
// corners and the light, the near plane itself oriented toward the light,
// and (point lights only) a sixth plane through the light facing the near
// rectangle's center.
func NearClipVolume(f *Frustum, lightPos mgl32.Vec4) *bounds.ConvexHull {
	lightPoint := mgl32.Vec3{lightPos[0], lightPos[1], lightPos[2]}
	if lightPos[3] != 0 {
		lightPoint = lightPoint.Mul(1.0 / lightPos[3])
	}

	corners := [4]mgl32.Vec3{
		f.Corners[cornerNearBL], f.Corners[cornerNearBR],
		f.Corners[cornerNearTR], f.Corners[cornerNearTL],
	}

	var centroid mgl32.Vec3
	for _, c := range corners {
		centroid = centroid.Add(c)
	}
	centroid = centroid.Mul(0.25)

	planes := make([]mgl32.Vec4, 0, 6)
	for i := 0; i < 4; i++ {
		a := corners[i]
		b := corners[(i+1)%4]
		planes = append(planes, bounds.PlaneFromPoints(a, b, lightPoint, centroid))
	}

	nearPlane := f.Hull.Plane[0]
	planes = append(planes, bounds.OrientPlaneTowardsPoint(nearPlane, lightPoint))

	if lightPos[3] != 0 {
		n := centroid.Sub(lightPoint)
		if n.Len() > 0 {
			n = n.Normalize()
		}
		planes = append(planes, mgl32.Vec4{n[0], n[1], n[2], -n.Dot(lightPoint)})
	}

	return &bounds.ConvexHull{Plane: planes}
}

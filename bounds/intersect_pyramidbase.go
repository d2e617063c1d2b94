package bounds

import "github.com/go-gl/mathgl/mgl32"

// IntersectsInfinitePyramidBaseFrustumSides is the dark-cap visibility test
// for a point/spot light's shadow pyramid: whether the infinite extension
// of the pyramid's base beyond apex can still be visible through the
// frustum's four side planes. A fast accept triggers when the base normal
// is within the frustum's maximum half-angular size of the (reversed) near
// plane normal; a fast reject triggers when it is more than
// 90 + half_angular_size away. Otherwise every apex-to-base edge is tested,
// extended infinitely past the base vertex, against all four side planes;
// the pyramid base is invisible only if every edge is rejected by at least
// one side plane.
func IntersectsInfinitePyramidBaseFrustumSides(
	apex mgl32.Vec3, base []mgl32.Vec3, baseNormal mgl32.Vec3,
	nearPlaneNormal mgl32.Vec3, cosMaxHalfAngularSize, sinMaxHalfAngularSize float32,
	sidePlanes []mgl32.Vec4,
) bool {
	cosAngle := baseNormal.Dot(nearPlaneNormal.Mul(-1))
	if cosAngle >= cosMaxHalfAngularSize {
		return true
	}
	if cosAngle <= -sinMaxHalfAngularSize {
		return false
	}
	for _, v := range base {
		edgeDir := v.Sub(apex)
		edgeVisible := true
		for _, sp := range sidePlanes {
			n := mgl32.Vec3{sp[0], sp[1], sp[2]}
			// The edge's infinite projection is outside this plane only
			// if the base vertex itself is outside AND the edge direction
			// points further outside (never crosses back in).
			if PlaneDot(sp, v) <= 0 && n.Dot(edgeDir) <= 0 {
				edgeVisible = false
				break
			}
		}
		if edgeVisible {
			return true
		}
	}
	return false
}

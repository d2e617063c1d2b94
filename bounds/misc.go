package bounds

import "github.com/go-gl/mathgl/mgl32"

// Ellipsoid and Capsule round out the variant set named alongside the others but are not
// exercised by any intersection test the shadow-volume or culling driver
// needs; they are minimal value types so Volume can still tag and carry
// them (e.g. a Model's preferred "Special" BV) without every consumer
// needing a dedicated case.

type Ellipsoid struct {
	Center mgl32.Vec3
	Radii  mgl32.Vec3
}

type Capsule struct {
	P0, P1 mgl32.Vec3
	Radius float32
}

// Hull is a plain convex hull used as a Model-authored bounding shape
// (distinct from ConvexHull, which always represents a frustum-derived or
// shadow-caster-derived hull built by this package). It shares the same
// plane representation.
type Hull struct {
	Plane []mgl32.Vec4
}

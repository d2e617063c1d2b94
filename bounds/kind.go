// Package bounds implements the bounding-volume primitives and pairwise
// intersection tests used by the spatial index, the frustum module, and the
// shadow-volume constructor.
package bounds

// Kind tags which variant a Volume currently holds. The zero value is Empty,
// so a zero Volume is usable without explicit initialization.
type Kind int

const (
	// Empty is the zero value: no volume, intersects nothing.
	Empty Kind = iota
	// Everywhere intersects everything; used for degenerate shadow volumes.
	Everywhere
	KindSphere
	KindAABB
	KindBox
	KindEllipsoid
	KindCylinder
	KindHalfCylinder
	KindCapsule
	KindHull
	KindConvexHull
	KindConvexHullFull
	KindPyramid
	KindPyramidCone
	KindSphericalSector
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Everywhere:
		return "Everywhere"
	case KindSphere:
		return "Sphere"
	case KindAABB:
		return "AABB"
	case KindBox:
		return "Box"
	case KindEllipsoid:
		return "Ellipsoid"
	case KindCylinder:
		return "Cylinder"
	case KindHalfCylinder:
		return "HalfCylinder"
	case KindCapsule:
		return "Capsule"
	case KindHull:
		return "Hull"
	case KindConvexHull:
		return "ConvexHull"
	case KindConvexHullFull:
		return "ConvexHullFull"
	case KindPyramid:
		return "Pyramid"
	case KindPyramidCone:
		return "PyramidCone"
	case KindSphericalSector:
		return "SphericalSector"
	default:
		return "Unknown"
	}
}

// Volume is the tagged union over every supported bounding-volume variant.
// Small variants (Sphere, AABB, Box, Cylinder, HalfCylinder, SphericalSector,
// Ellipsoid, Capsule) are stored inline; the hull-shaped variants with
// dynamic plane/vertex counts (ConvexHull, ConvexHullFull, Pyramid,
// PyramidCone, Hull) are heap-allocated behind a pointer. Clear is simply
// assigning the zero Volume{}; there is no explicit reinitialization step.
type Volume struct {
	Kind Kind

	Sphere          Sphere
	AABB            AABB
	Box             Box
	Cylinder        Cylinder
	HalfCylinder    HalfCylinder
	SphericalSector SphericalSector
	Ellipsoid       Ellipsoid
	Capsule         Capsule

	Hull           *ConvexHull
	ConvexHull     *ConvexHull
	ConvexHullFull *ConvexHullFull
	Pyramid        *Pyramid
	PyramidCone    *PyramidCone
}

func FromSphere(s Sphere) Volume       { return Volume{Kind: KindSphere, Sphere: s} }
func FromAABB(b AABB) Volume           { return Volume{Kind: KindAABB, AABB: b} }
func FromBox(b Box) Volume             { return Volume{Kind: KindBox, Box: b} }
func FromCylinder(c Cylinder) Volume   { return Volume{Kind: KindCylinder, Cylinder: c} }
func FromHalfCylinder(h HalfCylinder) Volume {
	return Volume{Kind: KindHalfCylinder, HalfCylinder: h}
}
func FromSphericalSector(s SphericalSector) Volume {
	return Volume{Kind: KindSphericalSector, SphericalSector: s}
}
func FromConvexHull(h *ConvexHull) Volume         { return Volume{Kind: KindConvexHull, ConvexHull: h} }
func FromConvexHullFull(h *ConvexHullFull) Volume {
	return Volume{Kind: KindConvexHullFull, ConvexHullFull: h}
}
func FromPyramid(p *Pyramid) Volume         { return Volume{Kind: KindPyramid, Pyramid: p} }
func FromPyramidCone(p *PyramidCone) Volume { return Volume{Kind: KindPyramidCone, PyramidCone: p} }

// IsEmpty reports whether the volume is the zero/Empty variant.
func (v Volume) IsEmpty() bool { return v.Kind == Empty }

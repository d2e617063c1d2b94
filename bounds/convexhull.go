package bounds

import "github.com/go-gl/mathgl/mgl32"

// ConvexHull is a set of inward-pointing planes, each Vec4(n, d) such that
// dot(plane, point) gives the signed distance with positive on the
// interior side.
type ConvexHull struct {
	Plane []mgl32.Vec4
}

// Dot returns dot(plane, point) for the homogeneous point (x,y,z,1).
func PlaneDot(plane mgl32.Vec4, point mgl32.Vec3) float32 {
	return plane[0]*point[0] + plane[1]*point[1] + plane[2]*point[2] + plane[3]
}

// PlaneFromPoints builds an inward-pointing plane through three points,
// using the winding p1->p2->p3 for the normal direction, then orienting it
// toward interiorHint if it points away.
func PlaneFromPoints(p1, p2, p3, interiorHint mgl32.Vec3) mgl32.Vec4 {
	n := p2.Sub(p1).Cross(p3.Sub(p1))
	if n.Len() > 0 {
		n = n.Normalize()
	}
	d := -n.Dot(p1)
	plane := mgl32.Vec4{n[0], n[1], n[2], d}
	if PlaneDot(plane, interiorHint) < 0 {
		plane = plane.Mul(-1)
	}
	return plane
}

// OrientPlaneTowardsPoint flips plane if necessary so that interior is on
// the same side as point, matching the source's OrientPlaneTowardsPoint
// used when emitting new shadow-caster-volume planes.
func OrientPlaneTowardsPoint(plane mgl32.Vec4, point mgl32.Vec3) mgl32.Vec4 {
	if PlaneDot(plane, point) < 0 {
		return plane.Mul(-1)
	}
	return plane
}

// ConvexHullFull augments ConvexHull with a center and cheap-reject radii,
// used for pyramid-against-frustum tests where min/max radius sums let the
// caller skip the full per-plane loop in the common case.
type ConvexHullFull struct {
	Plane       []mgl32.Vec4
	Center      mgl32.Vec3
	PlaneRadius []float32
	MinRadius   float32
	MaxRadius   float32
}

// NewConvexHullFull derives PlaneRadius[i] = |dot(plane[i], center)| and the
// min/max radii invariant.
func NewConvexHullFull(planes []mgl32.Vec4, center mgl32.Vec3) *ConvexHullFull {
	h := &ConvexHullFull{Plane: planes, Center: center, PlaneRadius: make([]float32, len(planes))}
	h.MinRadius = 1e30
	h.MaxRadius = 0
	for i, p := range planes {
		r := absf(PlaneDot(p, center))
		h.PlaneRadius[i] = r
		if r < h.MinRadius {
			h.MinRadius = r
		}
		if r > h.MaxRadius {
			h.MaxRadius = r
		}
	}
	if len(planes) == 0 {
		h.MinRadius = 0
	}
	return h
}

func (h *ConvexHullFull) AsConvexHull() *ConvexHull { return &ConvexHull{Plane: h.Plane} }

// Verdict is the enriched containment result returned by
// query_intersection-style tests.
type Verdict int

const (
	Outside Verdict = iota
	PartiallyInside
	CompletelyInside
	CompletelyEncloses
)

func (v Verdict) String() string {
	switch v {
	case Outside:
		return "Outside"
	case PartiallyInside:
		return "PartiallyInside"
	case CompletelyInside:
		return "CompletelyInside"
	case CompletelyEncloses:
		return "CompletelyEncloses"
	default:
		return "Unknown"
	}
}

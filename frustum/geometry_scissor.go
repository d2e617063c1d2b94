package frustum

import (
	"github.com/go-gl/mathgl/mgl32"
)

// GeometryScissor accumulates a screen-space bounding rectangle across one
// or more calls to UpdateWithWorldSpaceBoundingHull, used to bound an
// object's shadow volume (or any other world-space bounding hull) on
// screen. Each call only ever grows the region (property 6: scissor
// monotonicity).
type GeometryScissor struct {
	State Scissor
}

// UpdateWithWorldSpaceBoundingHull clips the world-space polygon/hull
// defined by points against the near plane, projects the retained (and any
// interpolated) vertices through viewProj, and unions the resulting NDC
// extents into the accumulated scissor region. points is expected to be one
// of the shapes named in the data model: 4 (single quad face), 5 (pyramid,
// apex + 4-vertex base), 7 (degenerate box where two corners coincide), or 8
// (full box), connected as a ring for indices [0..n) with an implicit edge
// back from the last to the first for the "base ring" portion; callers
// passing a pyramid additionally connect vertex 0 (apex) to every other
// vertex.
func (gs *GeometryScissor) UpdateWithWorldSpaceBoundingHull(viewProj mgl32.Mat4, nearPlane mgl32.Vec4, points []mgl32.Vec3, isPyramid bool) {
	if len(points) == 0 {
		return
	}

	dist := make([]float32, len(points))
	allBehind, allFront := true, true
	for i, p := range points {
		d := nearPlane[0]*p[0] + nearPlane[1]*p[1] + nearPlane[2]*p[2] + nearPlane[3]
		dist[i] = d
		if d >= 0 {
			allBehind = false
		} else {
			allFront = false
		}
	}

	if allBehind {
		// Nothing to add; existing accumulated state (if any) is untouched
		// so the union stays monotonic.
		return
	}

	var clipped []mgl32.Vec3
	if allFront {
		clipped = points
	} else {
		edges := ringEdges(len(points), isPyramid)
		for _, e := range edges {
			a, b := e[0], e[1]
			da, db := dist[a], dist[b]
			if da >= 0 {
				clipped = append(clipped, points[a])
			}
			if (da >= 0) != (db >= 0) {
				t := da / (da - db)
				clipped = append(clipped, points[a].Add(points[b].Sub(points[a]).Mul(t)))
			}
		}
	}

	if len(clipped) == 0 {
		return
	}
	updateWithPoints(&gs.State, viewProj, clipped)
}

// ringEdges returns the edge list to walk when clipping: for a box (8
// vertices, two 4-rings plus 4 connecting edges) or a pyramid (apex
// connected to every base vertex, plus the base ring). n==4 is a single
// face, its own 4-ring.
func ringEdges(n int, isPyramid bool) [][2]int {
	var edges [][2]int
	if isPyramid && n >= 2 {
		for i := 1; i < n; i++ {
			edges = append(edges, [2]int{0, i})
		}
		for i := 1; i < n; i++ {
			edges = append(edges, [2]int{i, 1 + (i % (n - 1))})
		}
		return edges
	}
	if n == 8 {
		// Box vertices come in the bit ordering of Box.Vertices and
		// AABB.Corners, so each 4-ring is walked as 0,1,3,2.
		ring := [4]int{0, 1, 3, 2}
		for i := 0; i < 4; i++ {
			a, b := ring[i], ring[(i+1)%4]
			edges = append(edges, [2]int{a, b})
			edges = append(edges, [2]int{4 + a, 4 + b})
			edges = append(edges, [2]int{i, 4 + i})
		}
		return edges
	}
	for i := 0; i < n; i++ {
		edges = append(edges, [2]int{i, (i + 1) % n})
	}
	return edges
}

// updateWithPoints projects already-near-plane-side points through viewProj
// and unions the resulting NDC x/y/z extents into s.
func updateWithPoints(s *Scissor, viewProj mgl32.Mat4, points []mgl32.Vec3) {
	first := s.State == ScissorEmpty
	for _, p := range points {
		clip := viewProj.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
		if clip[3] <= 0 {
			continue
		}
		ndc := mgl32.Vec3{clip[0] / clip[3], clip[1] / clip[3], clip[2] / clip[3]}
		if first {
			s.Left, s.Right = ndc[0], ndc[0]
			s.Bottom, s.Top = ndc[1], ndc[1]
			s.Near, s.Far = ndc[2], ndc[2]
			first = false
			s.State = ScissorDefined
			continue
		}
		if ndc[0] < s.Left {
			s.Left = ndc[0]
		}
		if ndc[0] > s.Right {
			s.Right = ndc[0]
		}
		if ndc[1] < s.Bottom {
			s.Bottom = ndc[1]
		}
		if ndc[1] > s.Top {
			s.Top = ndc[1]
		}
		if ndc[2] < s.Near {
			s.Near = ndc[2]
		}
		if ndc[2] > s.Far {
			s.Far = ndc[2]
		}
		s.State = ScissorDefined
	}
}

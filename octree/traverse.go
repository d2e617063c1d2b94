package octree

import (
	"github.com/gekko3d/sre/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

// Visitor is called once per entity id encountered during a Walk. completely
// is true when the containing node was already determined to be entirely
// inside the query volume (CompletelyInside), letting the caller skip a
// redundant per-entity test.
type Visitor func(id uint32, completely bool)

// Walk depth-first traverses a FastOctree, calling test for every node's
// bounds (the caller is expected to test against a frustum convex hull via
// bounds.QueryIntersection) and invoking visit for every entity id in nodes
// that are not rejected. test receives a NodeBounds and must return one of
// bounds.Outside, bounds.PartiallyInside, or
// bounds.CompletelyInside/CompletelyEncloses.
//
// For the non-optimised encodings, node bounds come straight out of
// NodeBounds. For the strict-optimised encodings, NodeBounds is empty and
// bounds are instead reconstructed by halving RootAABB along the descent
// path (§4.2), using the packed octant-index triples the optimised header
// word stores (see optimizedCountShift in finalize.go).
func (f *FastOctree) Walk(test func(b NodeBounds) int, visit Visitor) {
	if len(f.Array) == 0 {
		return
	}
	if f.Mode.isOptimized() {
		f.walkOptimized(0, f.RootAABB, test, visit, false)
		return
	}
	f.walk(0, test, visit, false)
}

const (
	verdictOutside = iota
	verdictPartial
	verdictComplete
)

// walk reads the node index straight out of the header word (the
// non-optimized encoding stores it there for exactly this purpose) rather
// than threading a separate bounds-index parameter through recursion.
func (f *FastOctree) walk(arrayIndex int, test func(b NodeBounds) int, visit Visitor, parentComplete bool) int {
	boundsIndex := int(f.Array[arrayIndex])
	complete := parentComplete
	if !complete {
		v := test(f.NodeBounds[boundsIndex])
		if v == verdictOutside {
			return arrayIndex
		}
		complete = v >= verdictComplete
	}

	count := f.Array[arrayIndex+1]
	nuEntities := f.Array[arrayIndex+2]
	idx := arrayIndex + 3
	for i := uint32(0); i < nuEntities; i++ {
		visit(f.Array[idx], complete)
		idx++
	}
	if count == 0 {
		return idx
	}
	childIndices := make([]uint32, count)
	for i := uint32(0); i < count; i++ {
		childIndices[i] = f.Array[idx]
		idx++
	}
	for i := uint32(0); i < count; i++ {
		f.walk(int(childIndices[i]), test, visit, complete)
	}
	return idx
}

// decodeOptimizedHeader inverts finalize.go's header packing: the count in
// the high bits, then one 3-bit octant index per present child, in order,
// starting at bit 0.
func decodeOptimizedHeader(header uint32) (count int, octants [8]int) {
	count = int((header >> optimizedCountShift) & optimizedCountMask)
	for slot := 0; slot < count; slot++ {
		octants[slot] = int((header >> uint(slot*3)) & 0x7)
	}
	return
}

// nuOctantsForMode returns the child fan-out calculateOctantAABBs should use
// to reconstruct bounds for mode: 4 for the XY-quadtree optimised encoding
// (which never splits z), 8 otherwise.
func nuOctantsForMode(mode Mode) int {
	if mode == QuadtreeXYStrictOptimized {
		return 4
	}
	return 8
}

// walkOptimized is walk's counterpart for the strict-optimised
// encodings: it carries aabb down the recursion instead of reading it from
// NodeBounds, halving it at each level exactly as buildStrict did when the
// tree was built (§4.2).
func (f *FastOctree) walkOptimized(arrayIndex int, aabb bounds.AABB, test func(b NodeBounds) int, visit Visitor, parentComplete bool) int {
	header := f.Array[arrayIndex]
	count, octants := decodeOptimizedHeader(header)
	nuEntities := f.Array[arrayIndex+1]

	complete := parentComplete
	if !complete {
		v := test(NodeBounds{AABB: aabb, Sphere: aabb.BoundingSphere()})
		if v == verdictOutside {
			return arrayIndex
		}
		complete = v >= verdictComplete
	}

	idx := arrayIndex + 2
	for i := uint32(0); i < nuEntities; i++ {
		visit(f.Array[idx], complete)
		idx++
	}
	if count == 0 {
		return idx
	}
	childArrayIndex := make([]uint32, count)
	for i := 0; i < count; i++ {
		childArrayIndex[i] = f.Array[idx]
		idx++
	}

	nuOctants := nuOctantsForMode(f.Mode)
	middle := aabb.Center()
	if nuOctants == 4 {
		middle = mgl32.Vec3{middle[0], middle[1], aabb.Max[2]}
	}
	octantAABB := calculateOctantAABBs(nuOctants, aabb, middle)

	for i := 0; i < count; i++ {
		f.walkOptimized(int(childArrayIndex[i]), octantAABB[octants[i]], test, visit, complete)
	}
	return idx
}

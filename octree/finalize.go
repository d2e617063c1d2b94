package octree

import "github.com/gekko3d/sre/bounds"

// finalizer performs the depth-first flattening pass: each node writes its
// header, entity ids, and a block of child array-index slots that are
// backpatched once the matching child has been recursively written.
type finalizer struct {
	mode       Mode
	array      []uint32
	nodeBounds []NodeBounds
	nodeIndex  uint32
}

// optimizedCountShift/optimizedCountMask carve the node's child count out
// of the high bits of the packed optimised header word; the low 24 bits
// hold up to eight 3-bit octant indices, one per present child in order
// (§4.2: "packs octant-index triples into the first word"). Walk's
// optimised path (traverse.go) inverts this exactly.
const (
	optimizedCountShift = 24
	optimizedCountMask  = 0xF
)

func (f *finalizer) convert(n *node) {
	optimized := f.mode.isOptimized()
	if !optimized {
		f.nodeBounds = append(f.nodeBounds, NodeBounds{AABB: n.aabb, Sphere: n.aabb.BoundingSphere()})
	}

	var childOctants []int
	for i := 0; i < 8; i++ {
		if n.children[i] != nil {
			childOctants = append(childOctants, i)
		}
	}
	count := len(childOctants)

	if optimized {
		header := uint32(count) << optimizedCountShift
		for slot, octant := range childOctants {
			header |= uint32(octant) << uint(slot*3)
		}
		f.array = append(f.array, header, uint32(len(n.entities)))
	} else {
		f.array = append(f.array, f.nodeIndex, uint32(count), uint32(len(n.entities)))
	}
	f.nodeIndex++

	for _, e := range n.entities {
		f.array = append(f.array, packID(e))
	}

	if count == 0 {
		return
	}

	octantIndicesLocation := len(f.array)
	for i := 0; i < count; i++ {
		f.array = append(f.array, 0) // placeholder, backpatched below
	}

	for i, octant := range childOctants {
		f.array[octantIndicesLocation+i] = uint32(len(f.array))
		f.convert(n.children[octant])
	}
}

// Finalize converts a built tree into the compact FastOctree array form,
// counting nodes/entities on the fly via append rather than the source's
// precomputed-size single allocation (Go's slice growth makes the
// two-pass count-then-allocate step unnecessary). rootAABB is recorded
// unconditionally (not just for optimised modes) since it costs nothing.
// In the balanced modes the root node's own NodeBounds[0].AABB can be
// smaller than rootAABB, since buildBalanced may shrink it to the
// entities' union AABB.
func Finalize(root *node, mode Mode, rootAABB bounds.AABB) *FastOctree {
	f := &finalizer{mode: mode}
	f.convert(root)
	return &FastOctree{Mode: mode, Array: f.array, NodeBounds: f.nodeBounds, RootAABB: rootAABB}
}


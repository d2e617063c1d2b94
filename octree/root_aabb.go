package octree

import (
	"math"

	"github.com/gekko3d/sre/bounds"
)

// SelectRootAABB derives the root octree extent from the union AABB of all
// entities that will be inserted, following the two strategies named by
// mode:
//
//   - Balanced / QuadtreeXYBalanced: take the largest-extent axis as-is
//     and center the two smaller axes' content within that extent plus a
//     tiny (0.01%) safety pad. Node balancing absorbs any resulting slack.
//   - Otherwise: cube the max extent, pad by 0.1%, then shift each smaller
//     axis so its entity range aligns with a power-of-two node boundary at
//     the deepest depth that still comfortably contains it — this keeps a
//     flat, ground-level scene from collapsing into one bloated root node.
func SelectRootAABB(union bounds.AABB, mode Mode) bounds.AABB {
	if union.Min[0] > union.Max[0] {
		// No entities: degenerate to the origin point.
		return bounds.AABB{}
	}
	if mode == Balanced || mode == QuadtreeXYBalanced {
		return selectBalancedRootAABB(union)
	}
	return selectRegularRootAABB(union)
}

func selectBalancedRootAABB(union bounds.AABB) bounds.AABB {
	extents := union.Extents()
	largest := 0
	if extents[1] > extents[largest] {
		largest = 1
	}
	if extents[2] > extents[largest] {
		largest = 2
	}
	maxExtent := extents[largest]
	maxExtent += 0.0001 * maxExtent

	var root bounds.AABB
	root.Min[largest] = union.Min[largest]
	root.Max[largest] = union.Max[largest]
	for i := 0; i < 3; i++ {
		if i == largest {
			continue
		}
		space := (maxExtent - extents[i]) * 0.5
		root.Min[i] = union.Min[i] - space
		root.Max[i] = union.Max[i] + space
	}
	return root
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func selectRegularRootAABB(union bounds.AABB) bounds.AABB {
	minxyz := min3(union.Min[0], union.Min[1], union.Min[2])
	maxxyz := max3(union.Max[0], union.Max[1], union.Max[2])
	maxDim := maxxyz - minxyz
	minxyz -= 0.001 * maxDim
	maxxyz += 0.001 * maxDim
	maxDim = maxxyz - minxyz

	var root bounds.AABB
	for i := 0; i < 3; i++ {
		dimOffset := float32(0)
		extent := union.Max[i] - union.Min[i]
		if extent > 0 && maxDim > 0 {
			octreeDepth := math.Floor(float64(math.Log2(float64(maxDim/extent))) - 0.01)
			if octreeDepth > 0 {
				if octreeDepth > MaxDepth {
					octreeDepth = MaxDepth
				}
				nodeSize := float32(maxDim / float32(math.Pow(2, octreeDepth)))
				offset := nodeSize*0.001 + nodeSize - float32(math.Mod(float64(union.Min[i]-minxyz), float64(nodeSize)))
				if minxyz+offset > union.Min[i] || maxxyz+offset < union.Max[i] {
					offset = 0
				}
				dimOffset = offset
			}
		}
		root.Min[i] = minxyz + dimOffset
		root.Max[i] = maxxyz + dimOffset
	}
	return root
}

package octree

import (
	"github.com/gekko3d/sre/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

// calculateOctantAABBs fills octantAABB[0:nuOctants] given a split point
// middle. Three layouts are possible: a regular octree/quadtree-with-no-
// split-in-z split (bit0=x, bit1=y, bit2=z high side), and the two
// quadtree-with-no-split-in-x / no-split-in-y layouts used when a
// dimension has been collapsed to the node's max extent.
func calculateOctantAABBs(nuOctants int, aabb bounds.AABB, middle mgl32.Vec3) [8]bounds.AABB {
	var out [8]bounds.AABB
	if nuOctants == 4 && middle[0] == aabb.Max[0] {
		// Quadtree with no split in x.
		out[0] = bounds.AABB{Min: mgl32.Vec3{aabb.Min[0], aabb.Min[1], aabb.Min[2]}, Max: mgl32.Vec3{aabb.Max[0], middle[1], middle[2]}}
		out[1] = bounds.AABB{Min: mgl32.Vec3{aabb.Min[0], middle[1], aabb.Min[2]}, Max: mgl32.Vec3{aabb.Max[0], aabb.Max[1], middle[2]}}
		out[2] = bounds.AABB{Min: mgl32.Vec3{aabb.Min[0], aabb.Min[1], middle[2]}, Max: mgl32.Vec3{aabb.Max[0], middle[1], aabb.Max[2]}}
		out[3] = bounds.AABB{Min: mgl32.Vec3{aabb.Min[0], middle[1], middle[2]}, Max: mgl32.Vec3{aabb.Max[0], aabb.Max[1], aabb.Max[2]}}
		return out
	}
	if nuOctants == 4 && middle[1] == aabb.Max[1] {
		// Quadtree with no split in y.
		out[0] = bounds.AABB{Min: mgl32.Vec3{aabb.Min[0], aabb.Min[1], aabb.Min[2]}, Max: mgl32.Vec3{middle[0], aabb.Max[1], middle[2]}}
		out[1] = bounds.AABB{Min: mgl32.Vec3{middle[0], aabb.Min[1], aabb.Min[2]}, Max: mgl32.Vec3{aabb.Max[0], aabb.Max[1], middle[2]}}
		out[2] = bounds.AABB{Min: mgl32.Vec3{aabb.Min[0], aabb.Min[1], middle[2]}, Max: mgl32.Vec3{middle[0], aabb.Max[1], aabb.Max[2]}}
		out[3] = bounds.AABB{Min: mgl32.Vec3{middle[0], aabb.Min[1], middle[2]}, Max: mgl32.Vec3{aabb.Max[0], aabb.Max[1], aabb.Max[2]}}
		return out
	}
	// Octree, or quadtree with no split in z (middle.z == aabb.Max.z).
	out[0] = bounds.AABB{Min: aabb.Min, Max: middle}
	out[1] = bounds.AABB{Min: mgl32.Vec3{middle[0], aabb.Min[1], aabb.Min[2]}, Max: mgl32.Vec3{aabb.Max[0], middle[1], middle[2]}}
	out[2] = bounds.AABB{Min: mgl32.Vec3{aabb.Min[0], middle[1], aabb.Min[2]}, Max: mgl32.Vec3{middle[0], aabb.Max[1], middle[2]}}
	out[3] = bounds.AABB{Min: mgl32.Vec3{middle[0], middle[1], aabb.Min[2]}, Max: mgl32.Vec3{aabb.Max[0], aabb.Max[1], middle[2]}}
	if nuOctants == 4 {
		return out
	}
	out[4] = bounds.AABB{Min: mgl32.Vec3{aabb.Min[0], aabb.Min[1], middle[2]}, Max: mgl32.Vec3{middle[0], middle[1], aabb.Max[2]}}
	out[5] = bounds.AABB{Min: mgl32.Vec3{middle[0], aabb.Min[1], middle[2]}, Max: mgl32.Vec3{aabb.Max[0], middle[1], aabb.Max[2]}}
	out[6] = bounds.AABB{Min: mgl32.Vec3{aabb.Min[0], middle[1], middle[2]}, Max: mgl32.Vec3{middle[0], aabb.Max[1], aabb.Max[2]}}
	out[7] = bounds.AABB{Min: middle, Max: aabb.Max}
	return out
}

// middleOffset sets candidate split points at 1/3 and 2/3 into the node
// instead of the exact corners, matching the source's default (the 1/4,3/4
// alternative is commented out there and not wired up).
const middleOffset = float32(0.5 - 1.0/3.0)

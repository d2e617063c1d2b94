package octree

import (
	"github.com/gekko3d/sre/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

// node is the temporary, pointer-linked build-time representation; it is
// frozen into a FastOctree by finalize.go once subdivision is complete.
type node struct {
	aabb     bounds.AABB
	entities []Entity
	children [8]*node
}

// sortedDims returns the three per-axis extents of aabb sorted smallest-first,
// along with which original axis each sorted slot came from.
func sortedDims(aabb bounds.AABB) (dim [3]float32, axis [3]int) {
	extents := aabb.Extents()
	axis = [3]int{0, 1, 2}
	dim = extents
	// simple insertion sort over 3 elements
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && dim[j] < dim[j-1]; j-- {
			dim[j], dim[j-1] = dim[j-1], dim[j]
			axis[j], axis[j-1] = axis[j-1], axis[j]
		}
	}
	return
}

func unifiedAABB(entities []Entity) bounds.AABB {
	u := entities[0].AABB
	for _, e := range entities[1:] {
		u = u.Update(e.AABB)
	}
	return u
}

func averageCenter(entities []Entity) mgl32.Vec3 {
	var sum mgl32.Vec3
	for _, e := range entities {
		sum = sum.Add(e.Sphere.Center)
	}
	return sum.Mul(1.0 / float32(len(entities)))
}

// buildBalanced is a direct port of Octree::AddEntitiesBalanced: it tries
// up to 28 candidate split points (geometric center, entity centroid, 8
// octant-biased offsets, and their quadtree-collapsed variants) and keeps
// whichever minimizes the number of entities that straddle more than one
// subnode. MixedWithQuadtree additionally detects a node whose unified
// entity AABB is much shorter along its smallest axis than along the other
// two, shrinks the node along that axis, and splits it as a 2x2 quadtree
// in the two larger axes instead.
func buildBalanced(entities []Entity, aabb bounds.AABB, depth int, mode Mode) *node {
	n := &node{aabb: aabb}
	if depth >= MaxDepth {
		n.entities = entities
		return n
	}

	customSmallestDimension := -1
	if mode == Balanced || mode == MixedWithQuadtree {
		u := unifiedAABB(entities)
		dim, axis := sortedDims(u)
		if dim[0] > 0 && dim[2]/dim[0] <= 2.0 {
			aabb = u
			n.aabb = aabb
		} else if mode == MixedWithQuadtree && dim[1] > 0 {
			r := dim[2] / dim[1]
			if r <= 2.0 && r >= 0.5 {
				customSmallestDimension = axis[0]
				maxDim0 := u.Min[axis[0]] + max32(dim[1], dim[2])*0.5
				aabb.Min[axis[0]] = u.Min[axis[0]]
				aabb.Min[axis[1]] = u.Min[axis[1]]
				aabb.Min[axis[2]] = u.Min[axis[2]]
				aabb.Max[axis[0]] = maxDim0
				aabb.Max[axis[1]] = u.Max[axis[1]]
				aabb.Max[axis[2]] = u.Max[axis[2]]
				n.aabb = aabb
			}
		}
	}

	center := aabb.Center()
	avgCenter := averageCenter(entities)

	minLeftOver := len(entities) + 1
	var bestMiddle mgl32.Vec3
	bestNuOctants := 8

	for k := 0; k < 28; k++ {
		var middle mgl32.Vec3
		nuOctants := 8
		skip := false

		if customSmallestDimension >= 0 {
			switch customSmallestDimension {
			case 0:
				if k != 12 && k != 13 && (k < 20 || k >= 24) {
					skip = true
				}
			case 1:
				if k != 14 && k != 15 && k < 24 {
					skip = true
				}
			case 2:
				if k != 10 && k != 11 && (k < 16 || k >= 20) {
					skip = true
				}
			}
		} else {
			switch mode {
			case Strict, StrictOptimized:
				if k > 0 {
					skip = true
				}
			case Balanced:
				if k >= 10 {
					skip = true
				}
			case QuadtreeXYStrict, QuadtreeXYStrictOptimized:
				if k != 10 {
					skip = true
				}
			case QuadtreeXYBalanced:
				if k != 10 && k != 11 && (k < 16 || k >= 20) {
					skip = true
				}
			case MixedWithQuadtree:
				// every k tried
			}
		}
		if skip {
			continue
		}

		switch {
		case k == 0:
			middle = center
		case k == 1:
			middle = avgCenter
		case k == 10:
			middle = mgl32.Vec3{center[0], center[1], aabb.Max[2]}
			nuOctants = 4
		case k == 11:
			middle = mgl32.Vec3{avgCenter[0], avgCenter[1], aabb.Max[2]}
			nuOctants = 4
		case k == 12:
			middle = mgl32.Vec3{aabb.Max[0], center[1], center[2]}
			nuOctants = 4
		case k == 13:
			middle = mgl32.Vec3{aabb.Max[0], avgCenter[1], avgCenter[2]}
			nuOctants = 4
		case k == 14:
			middle = mgl32.Vec3{center[0], aabb.Max[1], center[2]}
			nuOctants = 4
		case k == 15:
			middle = mgl32.Vec3{avgCenter[0], aabb.Max[1], avgCenter[2]}
			nuOctants = 4
		case k >= 2 && k < 10:
			dx := (float32((k-2)&1)*2 - 1) * (aabb.Max[0] - aabb.Min[0]) * middleOffset
			dy := (float32((k-2)&2) - 1) * (aabb.Max[1] - aabb.Min[1]) * middleOffset
			dz := (float32((k-2)&4)*0.5 - 1) * (aabb.Max[2] - aabb.Min[2]) * middleOffset
			middle = mgl32.Vec3{center[0] + dx, center[1] + dy, center[2] + dz}
		case k >= 16 && k < 20:
			dx := (float32((k-16)&1)*2 - 1) * (aabb.Max[0] - aabb.Min[0]) * middleOffset
			dy := (float32((k-16)&2) - 1) * (aabb.Max[1] - aabb.Min[1]) * middleOffset
			middle = mgl32.Vec3{center[0] + dx, center[1] + dy, aabb.Max[2]}
			nuOctants = 4
		case k >= 20 && k < 24:
			dy := (float32((k-20)&1)*2 - 1) * (aabb.Max[1] - aabb.Min[1]) * middleOffset
			dz := (float32((k-20)&2) - 1) * (aabb.Max[2] - aabb.Min[2]) * middleOffset
			middle = mgl32.Vec3{aabb.Max[0], center[1] + dy, center[2] + dz}
			nuOctants = 4
		case k >= 24 && k < 28:
			dx := (float32((k-24)&1)*2 - 1) * (aabb.Max[0] - aabb.Min[0]) * middleOffset
			dz := (float32((k-24)&2) - 1) * (aabb.Max[2] - aabb.Min[2]) * middleOffset
			middle = mgl32.Vec3{center[0] + dx, aabb.Max[1], center[2] + dz}
			nuOctants = 4
		default:
			continue
		}

		octantAABB := calculateOctantAABBs(nuOctants, aabb, middle)
		leftOver := len(entities)
		for _, e := range entities {
			for j := 0; j < nuOctants; j++ {
				if e.AABB.IsCompletelyInside(octantAABB[j]) {
					leftOver--
					break
				}
			}
		}
		if leftOver < minLeftOver {
			minLeftOver = leftOver
			bestMiddle = middle
			bestNuOctants = nuOctants
			if minLeftOver == 0 {
				break
			}
		}
	}

	octantAABB := calculateOctantAABBs(bestNuOctants, aabb, bestMiddle)

	subEntities := make([][]Entity, bestNuOctants)
	fitsInNode := make([]int, len(entities))
	leftOver := len(entities)
	for i, e := range entities {
		fitsInNode[i] = -1
		for j := 0; j < bestNuOctants; j++ {
			if e.AABB.IsCompletelyInside(octantAABB[j]) {
				subEntities[j] = append(subEntities[j], e)
				fitsInNode[i] = j
				leftOver--
				break
			}
		}
	}

	// NO_SINGLE_ENTITY_NODES: promote an entity that is the sole occupant
	// of its subnode back up to this node, so no octant ends up with
	// exactly one child.
	nodesWithSingleEntity := 0
	for j := 0; j < bestNuOctants; j++ {
		if len(subEntities[j]) == 1 {
			nodesWithSingleEntity++
		}
	}
	if leftOver+nodesWithSingleEntity > 0 {
		n.entities = make([]Entity, 0, leftOver+nodesWithSingleEntity)
		for i, e := range entities {
			onlyEntityInNode := fitsInNode[i] != -1 && len(subEntities[fitsInNode[i]]) == 1
			if fitsInNode[i] == -1 || onlyEntityInNode {
				n.entities = append(n.entities, e)
			}
		}
	}

	for j := 0; j < bestNuOctants; j++ {
		if len(subEntities[j]) <= 1 {
			continue
		}
		n.children[j] = buildBalanced(subEntities[j], octantAABB[j], depth+1, mode)
	}
	return n
}

// buildStrict is the fixed-midpoint variant: always split at the
// geometric center (8 octants, or 4 for the XY quadtree modes), with the
// same NO_SINGLE_ENTITY_NODES promotion policy.
func buildStrict(entities []Entity, aabb bounds.AABB, depth int, mode Mode) *node {
	n := &node{aabb: aabb}
	if depth >= MaxDepth {
		n.entities = entities
		return n
	}
	nuOctants := 8
	middle := aabb.Center()
	if mode == QuadtreeXYStrict || mode == QuadtreeXYStrictOptimized {
		nuOctants = 4
		middle = mgl32.Vec3{middle[0], middle[1], aabb.Max[2]}
	}
	octantAABB := calculateOctantAABBs(nuOctants, aabb, middle)

	subEntities := make([][]Entity, nuOctants)
	fitsInNode := make([]int, len(entities))
	leftOver := len(entities)
	for i, e := range entities {
		fitsInNode[i] = -1
		for j := 0; j < nuOctants; j++ {
			if e.AABB.IsCompletelyInside(octantAABB[j]) {
				subEntities[j] = append(subEntities[j], e)
				fitsInNode[i] = j
				leftOver--
				break
			}
		}
	}
	nodesWithSingleEntity := 0
	for j := 0; j < nuOctants; j++ {
		if len(subEntities[j]) == 1 {
			nodesWithSingleEntity++
		}
	}
	if leftOver+nodesWithSingleEntity > 0 {
		n.entities = make([]Entity, 0, leftOver+nodesWithSingleEntity)
		for i, e := range entities {
			onlyEntityInNode := fitsInNode[i] != -1 && len(subEntities[fitsInNode[i]]) == 1
			if fitsInNode[i] == -1 || onlyEntityInNode {
				n.entities = append(n.entities, e)
			}
		}
	}
	for j := 0; j < nuOctants; j++ {
		if len(subEntities[j]) <= 1 {
			continue
		}
		n.children[j] = buildStrict(subEntities[j], octantAABB[j], depth+1, mode)
	}
	return n
}

func build(entities []Entity, aabb bounds.AABB, mode Mode) *node {
	if len(entities) == 0 {
		return &node{aabb: aabb}
	}
	switch mode {
	case Balanced, MixedWithQuadtree, QuadtreeXYBalanced:
		return buildBalanced(entities, aabb, 0, mode)
	default:
		return buildStrict(entities, aabb, 0, mode)
	}
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

package octree

import (
	"math"
	"testing"

	"github.com/gekko3d/sre/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

func entityAt(id uint32, center mgl32.Vec3, halfSize float32) Entity {
	aabb := bounds.AABB{
		Min: mgl32.Vec3{center[0] - halfSize, center[1] - halfSize, center[2] - halfSize},
		Max: mgl32.Vec3{center[0] + halfSize, center[1] + halfSize, center[2] + halfSize},
	}
	return Entity{ID: id, Kind: EntityObject, AABB: aabb, Sphere: aabb.BoundingSphere()}
}

// lcg is a tiny deterministic pseudo-random source so the tests never
// depend on math/rand's seeding behaviour across Go versions.
type lcg uint64

func (r *lcg) next() float32 {
	*r = lcg(uint64(*r)*6364136223846793005 + 1442695040888963407)
	return float32(uint32(*r>>32)) / float32(math.MaxUint32)
}

func randomEntities(n int, seed uint64) []Entity {
	r := lcg(seed)
	entities := make([]Entity, n)
	for i := 0; i < n; i++ {
		x := r.next()*2 - 1
		y := r.next()*2 - 1
		z := r.next()*2 - 1
		entities[i] = entityAt(uint32(i), mgl32.Vec3{x, y, z}, 0.001)
	}
	return entities
}

func TestBuildDeterministic(t *testing.T) {
	entities := randomEntities(200, 1)
	root := bounds.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}

	a := BuildTree(entities, root, Balanced)
	b := BuildTree(entities, root, Balanced)

	if len(a.Array) != len(b.Array) {
		t.Fatalf("array length differs: %d vs %d", len(a.Array), len(b.Array))
	}
	for i := range a.Array {
		if a.Array[i] != b.Array[i] {
			t.Fatalf("array diverges at index %d: %d vs %d", i, a.Array[i], b.Array[i])
		}
	}
	if len(a.NodeBounds) != len(b.NodeBounds) {
		t.Fatalf("node bounds length differs: %d vs %d", len(a.NodeBounds), len(b.NodeBounds))
	}
}

// checkContainment walks a finalized tree and verifies that every entity
// stored in a non-root node is completely inside that node's bounds.
func checkContainment(t *testing.T, f *FastOctree, entities []Entity, rootAABB bounds.AABB) {
	t.Helper()
	byID := make(map[uint32]Entity, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
	}

	var walk func(arrayIndex int)
	walk = func(arrayIndex int) {
		boundsIndex := int(f.Array[arrayIndex])
		nodeAABB := f.NodeBounds[boundsIndex].AABB

		count := f.Array[arrayIndex+1]
		nuEntities := f.Array[arrayIndex+2]
		idx := arrayIndex + 3
		for i := uint32(0); i < nuEntities; i++ {
			id := f.Array[idx]
			idx++
			e, ok := byID[id]
			if !ok {
				continue
			}
			if boundsIndex != 0 && !e.AABB.IsCompletelyInside(nodeAABB) {
				t.Errorf("entity %d not completely inside its node's AABB (node %d)", id, boundsIndex)
			}
		}
		childIndices := make([]uint32, count)
		for i := uint32(0); i < count; i++ {
			childIndices[i] = f.Array[idx]
			idx++
		}
		for _, ci := range childIndices {
			walk(int(ci))
		}
	}
	walk(0)
}

func TestContainmentInvariant(t *testing.T) {
	entities := randomEntities(500, 2)
	root := bounds.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	f := BuildTree(entities, root, Balanced)
	checkContainment(t, f, entities, root)
}

func TestBalancedDepthAndOccupancy(t *testing.T) {
	entities := randomEntities(1000, 3)
	root := bounds.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	f := BuildTree(entities, root, Balanced)

	maxDepthSeen := 0
	leafCount := 0
	leafOverCap := 0

	var walk func(arrayIndex, depth int)
	walk = func(arrayIndex, depth int) {
		if depth > maxDepthSeen {
			maxDepthSeen = depth
		}
		count := f.Array[arrayIndex+1]
		nuEntities := f.Array[arrayIndex+2]
		idx := arrayIndex + 3 + int(nuEntities)
		if count == 0 {
			leafCount++
			if nuEntities > 16 {
				leafOverCap++
			}
			return
		}
		childIndices := make([]uint32, count)
		for i := uint32(0); i < count; i++ {
			childIndices[i] = f.Array[idx]
			idx++
		}
		for _, ci := range childIndices {
			walk(int(ci), depth+1)
		}
	}
	walk(0, 0)

	if maxDepthSeen > MaxDepth {
		t.Errorf("max depth %d exceeds MaxDepth %d", maxDepthSeen, MaxDepth)
	}
	if leafCount == 0 {
		t.Fatal("expected at least one leaf")
	}
	fracOverCap := float64(leafOverCap) / float64(leafCount)
	if fracOverCap > 0.05 {
		t.Errorf("%.1f%% of leaves exceed 16 entities, want <= 5%%", fracOverCap*100)
	}
}

func TestBuildFlatHoldsEveryEntity(t *testing.T) {
	entities := randomEntities(50, 4)
	f := BuildFlat(entities)

	if len(f.Array) == 0 {
		t.Fatal("expected a non-empty array")
	}
	nuEntities := f.Array[2]
	if int(nuEntities) != len(entities) {
		t.Fatalf("expected %d entities in the single node, got %d", len(entities), nuEntities)
	}
	count := f.Array[1]
	if count != 0 {
		t.Errorf("flat tree should have no children, got octant count %d", count)
	}
}

func TestWalkVisitsEveryEntity(t *testing.T) {
	entities := randomEntities(300, 5)
	root := bounds.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	f := BuildTree(entities, root, Balanced)

	visited := make(map[uint32]bool)
	f.Walk(
		func(b NodeBounds) int { return verdictComplete },
		func(id uint32, completely bool) {
			if !completely {
				t.Errorf("entity %d visited with completely=false under an always-complete test", id)
			}
			visited[id] = true
		},
	)
	if len(visited) != len(entities) {
		t.Fatalf("visited %d entities, want %d", len(visited), len(entities))
	}
}

func TestWalkRejectsOutsideSubtree(t *testing.T) {
	entities := []Entity{
		entityAt(0, mgl32.Vec3{-0.9, -0.9, -0.9}, 0.01),
		entityAt(1, mgl32.Vec3{0.9, 0.9, 0.9}, 0.01),
	}
	root := bounds.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	f := BuildTree(entities, root, Balanced)

	// Only bounds equal to root are accepted. The balanced build shrinks
	// the root node to the entities' union AABB, so no node matches and
	// every node, the root node included, is rejected.
	visited := 0
	f.Walk(
		func(b NodeBounds) int {
			if b.AABB == root {
				return verdictPartial
			}
			return verdictOutside
		},
		func(id uint32, completely bool) { visited++ },
	)
	if visited != 0 {
		t.Errorf("expected no entities visited once every node is rejected, got %d", visited)
	}
}

func TestWalkOptimizedVisitsEveryEntity(t *testing.T) {
	entities := randomEntities(300, 6)
	root := bounds.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	f := BuildTree(entities, root, StrictOptimized)

	if len(f.NodeBounds) != 0 {
		t.Fatalf("optimised encoding should not store NodeBounds, got %d entries", len(f.NodeBounds))
	}

	visited := make(map[uint32]bool)
	f.Walk(
		func(b NodeBounds) int { return verdictComplete },
		func(id uint32, completely bool) {
			if !completely {
				t.Errorf("entity %d visited with completely=false under an always-complete test", id)
			}
			visited[id] = true
		},
	)
	if len(visited) != len(entities) {
		t.Fatalf("visited %d entities, want %d", len(visited), len(entities))
	}
}

func TestWalkOptimizedReconstructsBoundsByHalving(t *testing.T) {
	entities := randomEntities(300, 7)
	root := bounds.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	f := BuildTree(entities, root, StrictOptimized)

	byID := make(map[uint32]Entity, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
	}

	var seenRoot bool
	var current bounds.AABB
	f.Walk(
		func(b NodeBounds) int {
			if b.AABB == root {
				seenRoot = true
			}
			current = b.AABB
			return verdictPartial
		},
		func(id uint32, completely bool) {
			if e, ok := byID[id]; ok && !e.AABB.IsCompletelyInside(current) {
				t.Errorf("entity %d not completely inside reconstructed node bounds %+v", id, current)
			}
		},
	)
	if !seenRoot {
		t.Fatal("expected the reconstructed root bounds to match the original root AABB")
	}
}

func TestWalkOptimizedMatchesStrictEntitySet(t *testing.T) {
	entities := randomEntities(300, 8)
	root := bounds.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}

	strict := BuildTree(entities, root, Strict)
	optimized := BuildTree(entities, root, StrictOptimized)

	collect := func(f *FastOctree) map[uint32]bool {
		seen := make(map[uint32]bool)
		f.Walk(
			func(b NodeBounds) int { return verdictComplete },
			func(id uint32, completely bool) { seen[id] = true },
		)
		return seen
	}

	strictSeen := collect(strict)
	optimizedSeen := collect(optimized)
	if len(strictSeen) != len(optimizedSeen) {
		t.Fatalf("strict saw %d entities, optimized saw %d", len(strictSeen), len(optimizedSeen))
	}
	for id := range strictSeen {
		if !optimizedSeen[id] {
			t.Errorf("entity %d visited under Strict but not StrictOptimized", id)
		}
	}
}

func TestSelectRootAABBBalancedPadsLargestAxis(t *testing.T) {
	union := bounds.AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{10, 2, 2}}
	root := SelectRootAABB(union, Balanced)
	if root.Min[0] != 0 || root.Max[0] != 10 {
		t.Errorf("largest axis should be kept as-is, got min=%v max=%v", root.Min, root.Max)
	}
	if root.Max[1]-root.Min[1] <= union.Extents()[1] {
		t.Errorf("smaller axis should be padded to match the largest extent")
	}
}

func TestSelectRootAABBEmptyUnion(t *testing.T) {
	root := SelectRootAABB(bounds.EmptyAABB(), Balanced)
	if root != (bounds.AABB{}) {
		t.Errorf("empty union should degenerate to the origin point, got %+v", root)
	}
}

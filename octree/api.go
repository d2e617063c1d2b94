package octree

import "github.com/gekko3d/sre/bounds"

// BuildTree builds a subdivided tree over entities within rootAABB using
// mode, then finalizes it into a FastOctree. Empty scenes produce a
// single-node tree with zero entities, per the builder's failure
// semantics.
func BuildTree(entities []Entity, rootAABB bounds.AABB, mode Mode) *FastOctree {
	root := build(entities, rootAABB, mode)
	return Finalize(root, mode, rootAABB)
}

// BuildFlat produces a single-node octree holding every entity
// unconditionally. Used for the dynamic and infinite-distance roots, which
// the design deliberately keeps flat rather than subdivided: dynamic
// entities move every frame (subdivision would thrash), and
// infinite-distance entities (background geometry, directional-light
// volumes) have no meaningful spatial locality to exploit.
func BuildFlat(entities []Entity) *FastOctree {
	n := &node{entities: entities}
	if len(entities) > 0 {
		n.aabb = unifiedAABB(entities)
	}
	return Finalize(n, Strict, n.aabb)
}

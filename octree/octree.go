// Package octree builds the hybrid strict/balanced spatial index used to
// cull static and dynamic scene entities against the view frustum, and
// converts it into the compact, flat FastOctree array form consumed every
// frame.
package octree

import (
	"github.com/gekko3d/sre/bounds"
)

// Mode selects the subdivision and encoding strategy used when building and
// finalizing an octree.
type Mode int

const (
	Strict Mode = iota
	StrictOptimized
	Balanced
	QuadtreeXYStrict
	QuadtreeXYStrictOptimized
	QuadtreeXYBalanced
	MixedWithQuadtree
)

func (m Mode) isOptimized() bool {
	return m == StrictOptimized || m == QuadtreeXYStrictOptimized
}

// MaxDepth bounds recursive subdivision; beyond it all remaining entities
// are dumped into the current node's entity list regardless of how many
// straddle a further split.
const MaxDepth = 12

// EntityKind distinguishes an object entity from a light entity inside an
// entity id; the MSB of the packed FastOctree id does the same in the
// flattened form.
type EntityKind uint8

const (
	EntityObject EntityKind = iota
	EntityLight
)

// Entity is one object or light handed to the builder. ID is the Scene's
// index for the object/light array; the builder never dereferences the
// Scene itself, keeping this package independent of it.
type Entity struct {
	ID    uint32
	Kind  EntityKind
	AABB  bounds.AABB
	Sphere bounds.Sphere
}

// lightIDBit is the bit the FastOctree packing uses to distinguish a light
// id from an object id; entity ids below this bit are assumed to fit.
const lightIDBit = uint32(1) << 31

func packID(e Entity) uint32 {
	if e.Kind == EntityLight {
		return e.ID | lightIDBit
	}
	return e.ID
}

// DecodeID unpacks a FastOctree-stored entity id back into its original ID
// and EntityKind, undoing packID; used by the culling driver, which sees
// only the flattened array and never the build-time Entity values.
func DecodeID(packed uint32) (id uint32, kind EntityKind) {
	if packed&lightIDBit != 0 {
		return packed &^ lightIDBit, EntityLight
	}
	return packed, EntityObject
}

// NodeBounds is the parallel per-node bounds array referenced by index from
// the flat FastOctree array.
type NodeBounds struct {
	AABB   bounds.AABB
	Sphere bounds.Sphere
}

// FastOctree is the compact, index-addressed encoding produced from a
// built tree. In the default (non-optimised) encoding each node's header is
// [node_index, octant_count, entity_count], followed by its entity ids and
// then a block of child array-index slots. The strict-optimised encoding
// instead packs the octant-count and octant-index triples into a single
// header word and omits NodeBounds (reconstructed by halving on descent).
type FastOctree struct {
	Mode       Mode
	Array      []uint32
	NodeBounds []NodeBounds

	// RootAABB is the extent the tree was built from. The non-optimised
	// encoding never reads it (it uses NodeBounds[0].AABB, which in the
	// balanced modes may be shrunk to the entities' union), but the optimised
	// encoding omits NodeBounds entirely, so Walk needs a starting extent
	// to reconstruct every descendant's bounds by halving.
	RootAABB bounds.AABB
}

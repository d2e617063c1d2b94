package sre

import (
	"github.com/gekko3d/sre/bounds"
	"github.com/google/uuid"
)

// BoundsPreference enumerates which bounding-volume variant the culler
// should prefer for a Model's instances, mirroring bounds_flags.
type BoundsPreference uint8

const (
	PreferSphere BoundsPreference = 1 << iota
	PreferAABB
	PreferSpecial
	PreferBoxLineSegment
)

func (p BoundsPreference) Has(bit BoundsPreference) bool { return p&bit != 0 }

const maxLODs = 3

// LOD is one level-of-detail mesh reference. The mesh payload itself is the
// model-loading collaborator's concern (Non-goal); this only carries the
// handle and the distance/size threshold at which the culler should prefer
// it.
type LOD struct {
	MeshHandle        uuid.UUID
	ThresholdScaling  float32
}

// Model is a geometric template shared by reference across every Object
// instantiated from it. Created once via NewModel and kept
// until scene teardown.
type Model struct {
	Handle uuid.UUID

	LODs [maxLODs]LOD
	NumLODs int

	LocalSphere bounds.Sphere
	LocalAABB   bounds.AABB
	LocalBox    bounds.Box

	// Special holds a model-preferred Ellipsoid/Cylinder bound when
	// BoundsFlags includes PreferSpecial; zero value unused otherwise.
	Special bounds.Volume

	BoundsFlags BoundsPreference

	// referenced is flipped by the first Scene.AddObject that instantiates
	// this model, so a model-loading collaborator can tell whether a model
	// it registered speculatively ever got used.
	referenced bool
}

// NewModel returns a model with a freshly generated random Handle; it does
// no deduplication, and the handle carries no content identity. The core
// only needs an opaque, comparable handle.
func NewModel(sphere bounds.Sphere, aabb bounds.AABB, box bounds.Box) *Model {
	return &Model{
		Handle:      uuid.New(),
		LocalSphere: sphere,
		LocalAABB:   aabb,
		LocalBox:    box,
		BoundsFlags: PreferSphere,
	}
}

// AddLOD appends a level of detail; NumLODs must stay within maxLODs.
func (m *Model) AddLOD(lod LOD) bool {
	if m.NumLODs >= maxLODs {
		return false
	}
	m.LODs[m.NumLODs] = lod
	m.NumLODs++
	return true
}

// Referenced reports whether this model has ever been instantiated into a
// Scene.
func (m *Model) Referenced() bool { return m.referenced }

package sre

import (
	"github.com/gekko3d/sre/bounds"
	"github.com/gekko3d/sre/frustum"
	"github.com/gekko3d/sre/octree"
	"github.com/gekko3d/sre/shadowvolume"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene owns the object and light arrays, the four FastOctree roots, and
// the per-frame scratch arrays the culling driver fills in. It is the
// single owner of all of this state for the duration of rendering (§5).
type Scene struct {
	Config SceneConfig
	Logger Logger

	objects   []Object
	objectIDs handleSet
	lights    []Light
	lightIDs  handleSet

	StaticOctree              *octree.FastOctree
	DynamicOctree             *octree.FastOctree
	StaticInfiniteOctree      *octree.FastOctree
	DynamicInfiniteOctree     *octree.FastOctree

	// VisibleObject/VisibleLight/ShadowCasterObject/FinalPassObject are the
	// per-frame scratch arrays named in §3; capacities grow on demand and
	// never shrink within a frame (§4.5), mirroring the teacher's
	// s.VisibleObjects = s.VisibleObjects[:0] reuse-by-truncation pattern
	// (voxelrt/rt/core/scene.go Commit).
	VisibleObject       []uint32
	VisibleLight        []uint32
	ShadowCasterObject  []uint32
	FinalPassObject     []uint32

	// ShadowScissor holds, for each object appended to ShadowCasterObject
	// this frame, the screen-space scissor of its shadow volume for the
	// light currently being processed. Reset every Render call.
	ShadowScissor map[uint32]frustum.Scissor

	// NearClipVolume and LightScissor hold, for each light in VisibleLight
	// this frame, the near-clip volume (§4.3, used to pick depth-pass vs.
	// depth-fail stencil shadow rendering) and the screen-space light
	// scissor (§4.3, §1's "scissor rectangles" output). Both are reset and
	// repopulated every Render call, alongside ShadowScissor.
	NearClipVolume map[uint32]*bounds.ConvexHull
	LightScissor   map[uint32]frustum.Scissor

	octreesDirty bool
	frame        uint64
}

// NewScene constructs an empty Scene. logger may be nil, in which case a
// no-op Logger is substituted so the rest of the core never needs a nil
// check.
func NewScene(config SceneConfig, logger Logger) *Scene {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Scene{Config: config, Logger: logger, octreesDirty: true}
}

// AddObject instantiates model into the scene at the given transform and
// returns its id. Deleted ids are reused before the object array grows,
// per the Lifecycles invariant in §3.
func (s *Scene) AddObject(model *Model, position mgl32.Vec3, rotation mgl32.Quat, scaling float32, flags ObjectFlags) uint32 {
	id := s.objectIDs.alloc()
	o := Object{
		ID:       id,
		Model:    model,
		Position: position,
		Rotation: rotation,
		Scaling:  scaling,
		Flags:    flags | ObjectExists,
		exists:   true,
	}
	o.recomputeModelMatrix()
	if int(id) == len(s.objects) {
		s.objects = append(s.objects, o)
	} else {
		s.objects[id] = o
	}
	if model != nil {
		model.referenced = true
	}
	s.octreesDirty = true
	return id
}

// object returns a pointer to the slot for id, or nil if id does not name a
// live object. Scene mutation routines are total: every caller of this
// helper must tolerate a nil result silently (delete of a nonexistent id is
// idempotent, per §7).
func (s *Scene) object(id uint32) *Object {
	if int(id) >= len(s.objects) || !s.objects[id].exists {
		return nil
	}
	return &s.objects[id]
}

// ChangePosition updates an object's position, recomputes its world-space
// bounds, and stamps MostRecentPositionChange with the current frame
// number, setting ChangedEveryFrame if the previous stamp was the
// immediately preceding frame.
func (s *Scene) ChangePosition(id uint32, position mgl32.Vec3) {
	o := s.object(id)
	if o == nil {
		return
	}
	o.Position = position
	o.recomputeModelMatrix()
	s.stampPositionChange(o)
	s.octreesDirty = s.octreesDirty || o.Flags.Has(ObjectDynamicPosition) == false
}

// ChangeRotation updates an object's rotation quaternion and recomputes its
// transform and world-space bounds.
func (s *Scene) ChangeRotation(id uint32, rotation mgl32.Quat) {
	o := s.object(id)
	if o == nil {
		return
	}
	o.Rotation = rotation
	o.recomputeModelMatrix()
	s.stampTransformationChange(o)
}

// ChangeRotationMatrix updates an object's rotation from a 3x3 rotation
// matrix, converting it to the cached quaternion representation.
func (s *Scene) ChangeRotationMatrix(id uint32, rot mgl32.Mat3) {
	s.ChangeRotation(id, mgl32.Mat4ToQuat(rot.Mat4()))
}

// ChangePositionAndRotation updates both position and rotation in one call,
// stamping a single transformation-change frame rather than two.
func (s *Scene) ChangePositionAndRotation(id uint32, position mgl32.Vec3, rotation mgl32.Quat) {
	o := s.object(id)
	if o == nil {
		return
	}
	o.Position = position
	o.Rotation = rotation
	o.recomputeModelMatrix()
	s.stampPositionChange(o)
	s.stampTransformationChange(o)
}

// ChangePositionAndRotationMatrix is ChangePositionAndRotation taking a
// rotation matrix instead of a quaternion.
func (s *Scene) ChangePositionAndRotationMatrix(id uint32, position mgl32.Vec3, rot mgl32.Mat3) {
	s.ChangePositionAndRotation(id, position, mgl32.Mat4ToQuat(rot.Mat4()))
}

func (s *Scene) stampPositionChange(o *Object) {
	if o.RapidChange&ChangedThisFrame != 0 && o.MostRecentPositionChange+1 == s.frame {
		o.RapidChange |= ChangedEveryFrame
	} else {
		o.RapidChange &^= ChangedEveryFrame
	}
	o.MostRecentPositionChange = s.frame
	o.RapidChange |= ChangedThisFrame
}

func (s *Scene) stampTransformationChange(o *Object) {
	o.MostRecentTransformationChange = s.frame
	o.RapidChange |= ChangedThisFrame
}

// DeleteObject removes id from the scene and returns it to the free list.
// Deleting a nonexistent id is silently idempotent (§7).
func (s *Scene) DeleteObject(id uint32) {
	o := s.object(id)
	if o == nil {
		return
	}
	o.exists = false
	o.Flags &^= ObjectExists
	o.Model = nil
	s.objectIDs.release(id)
	s.octreesDirty = true
}

// ObjectCount returns the number of slots ever allocated (live + free),
// i.e. the backing array length.
func (s *Scene) ObjectCount() int { return len(s.objects) }

// Object returns a read-only view of the object at id, or nil if it does
// not exist. Intended for tests and the demo layer; the culling driver
// indexes s.objects directly.
func (s *Scene) Object(id uint32) *Object { return s.object(id) }

// AddLight registers a new light and returns its id.
func (s *Scene) AddLight(l Light) uint32 {
	id := s.lightIDs.alloc()
	l.ID = id
	l.exists = true
	if int(id) == len(s.lights) {
		s.lights = append(s.lights, l)
	} else {
		s.lights[id] = l
	}
	s.octreesDirty = true
	return id
}

func (s *Scene) light(id uint32) *Light {
	if int(id) >= len(s.lights) || !s.lights[id].exists {
		return nil
	}
	return &s.lights[id]
}

// Light returns a read-only view of the light at id, or nil if it does not
// exist.
func (s *Scene) Light(id uint32) *Light { return s.light(id) }

// ChangeLightPosition updates a point-type light's position in place.
func (s *Scene) ChangeLightPosition(id uint32, position mgl32.Vec3) {
	l := s.light(id)
	if l == nil {
		return
	}
	l.Vector = position.Vec4(1)
	l.Sphere.Center = position
	if !l.Flags.Has(LightDynamicPosition) {
		s.octreesDirty = true
	}
}

// ChangeLightDirection updates a directional-type light's direction.
func (s *Scene) ChangeLightDirection(id uint32, direction mgl32.Vec3) {
	l := s.light(id)
	if l == nil {
		return
	}
	l.Vector = direction.Vec4(0)
}

// DeleteLight removes id and returns it to the free list. Idempotent on a
// nonexistent id.
func (s *Scene) DeleteLight(id uint32) {
	l := s.light(id)
	if l == nil {
		return
	}
	for i := range s.objects {
		if s.objects[i].exists {
			s.objects[i].ShadowCache.Invalidate(id)
		}
	}
	l.exists = false
	s.lightIDs.release(id)
	s.octreesDirty = true
}

// LightCount returns the number of slots ever allocated (live + free).
func (s *Scene) LightCount() int { return len(s.lights) }

// CreateOctrees (re)builds the four spatial indices from the current set
// of live objects and lights: static objects plus every light without
// LightDynamicPosition, bounded or not (lights are not sorted by
// boundedness), use a subdivided tree (octree.BuildTree with
// s.Config.OctreeBuild.Mode);
// dynamic and infinite-distance entities always build flat
// (octree.BuildFlat), per §4.2's "Dynamic and infinite-distance octrees
// are flat" rule.
func (s *Scene) CreateOctrees() {
	var staticEntities, dynamicEntities, staticInfinite, dynamicInfinite []octree.Entity

	for i := range s.objects {
		o := &s.objects[i]
		if !o.exists {
			continue
		}
		e := octree.Entity{ID: o.ID, Kind: octree.EntityObject, AABB: o.AABB, Sphere: o.Sphere}
		switch {
		case o.Flags.Has(ObjectInfiniteDistance) && o.Flags.Has(ObjectDynamicPosition):
			dynamicInfinite = append(dynamicInfinite, e)
		case o.Flags.Has(ObjectInfiniteDistance):
			staticInfinite = append(staticInfinite, e)
		case o.Flags.Has(ObjectDynamicPosition):
			dynamicEntities = append(dynamicEntities, e)
		default:
			staticEntities = append(staticEntities, e)
		}
	}

	for i := range s.lights {
		l := &s.lights[i]
		if !l.exists {
			continue
		}
		r := mgl32.Vec3{l.Sphere.Radius, l.Sphere.Radius, l.Sphere.Radius}
		e := octree.Entity{
			ID:     l.ID,
			Kind:   octree.EntityLight,
			AABB:   bounds.AABB{Min: l.Sphere.Center.Sub(r), Max: l.Sphere.Center.Add(r)},
			Sphere: l.Sphere,
		}
		if l.Flags.Has(LightDynamicPosition) {
			dynamicEntities = append(dynamicEntities, e)
		} else {
			staticEntities = append(staticEntities, e)
		}
	}

	mode := s.Config.OctreeBuild.Mode
	s.StaticOctree = buildRootOrFlat(staticEntities, mode)
	s.StaticInfiniteOctree = octree.BuildFlat(staticInfinite)
	s.DynamicOctree = octree.BuildFlat(dynamicEntities)
	s.DynamicInfiniteOctree = octree.BuildFlat(dynamicInfinite)

	s.octreesDirty = false
}

func buildRootOrFlat(entities []octree.Entity, mode octree.Mode) *octree.FastOctree {
	if len(entities) == 0 {
		return octree.BuildFlat(entities)
	}
	union := bounds.EmptyAABB()
	for _, e := range entities {
		union = union.Update(e.AABB)
	}
	root := octree.SelectRootAABB(union, mode)
	return octree.BuildTree(entities, root, mode)
}

// PrepareForRendering runs scene-preparation preprocessing (static light
// lists, static shadow-volume precompute) and (re)builds the octrees,
// allocating/resetting the per-frame scratch arrays. It is the one place
// besides backend init that can return a fatal error: UnsupportedGeometry
// for a Model with no LODs (§7).
func (s *Scene) PrepareForRendering() error {
	for i := range s.objects {
		o := &s.objects[i]
		if !o.exists || o.Model == nil {
			continue
		}
		if o.Model.NumLODs == 0 {
			return newError(UnsupportedGeometry, "object %d: model has no LODs", o.ID)
		}
	}

	for i := range s.objects {
		o := &s.objects[i]
		if !o.exists {
			continue
		}
		if !finite3(o.Position) {
			s.Logger.Warnf("object %d: degenerate (non-finite) position, hiding", o.ID)
			o.Flags |= ObjectHidden
		}
	}

	s.precomputeStaticShadowVolumes()

	if s.octreesDirty || s.StaticOctree == nil {
		s.CreateOctrees()
	}

	s.VisibleObject = s.VisibleObject[:0]
	s.VisibleLight = s.VisibleLight[:0]
	s.ShadowCasterObject = s.ShadowCasterObject[:0]
	s.FinalPassObject = s.FinalPassObject[:0]

	return nil
}

// precomputeStaticShadowVolumes pairs every static, shadow-casting object
// with every static light and stores the resulting ShadowVolume in the
// object's cache plus the light's StaticObjectList, per §3's "per-light
// static shadow volumes precomputed in preprocessing". Dynamic (object,
// light) combinations are computed per-frame instead (§4.4 caching note).
func (s *Scene) precomputeStaticShadowVolumes() {
	for li := range s.lights {
		l := &s.lights[li]
		if !l.exists || l.Flags.Has(LightDynamicPosition) || l.Flags.Has(LightDynamicShadowVolume) {
			continue
		}
		l.StaticObjectList = l.StaticObjectList[:0]
		for oi := range s.objects {
			o := &s.objects[oi]
			if !o.exists || o.Flags.Has(ObjectDynamicPosition) || !o.Flags.Has(ObjectCastShadows) {
				continue
			}
			v := shadowvolume.Construct(o.Sphere, &o.Box, toShadowLight(l))
			if v.IsEmpty() {
				continue
			}
			o.ShadowCache.Store(l.ID, v, o.MostRecentTransformationChange)
			l.StaticObjectList = append(l.StaticObjectList, o.ID)
		}
	}
}

func toShadowLight(l *Light) shadowvolume.Light {
	sl := shadowvolume.Light{Position: l.Vector}
	switch l.Type {
	case LightDirectional:
		sl.Kind = shadowvolume.Directional
	case LightBeam:
		sl.Kind = shadowvolume.Beam
		if l.Cylinder != nil {
			sl.BeamAxis = l.Cylinder.Axis
			sl.BeamLength = l.Cylinder.Length
		}
	case LightSpot:
		sl.Kind = shadowvolume.Spot
	default:
		sl.Kind = shadowvolume.PointSource
	}
	return sl
}

func finite3(v mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if v[i] != v[i] { // NaN check without importing math
			return false
		}
		if v[i] > 3.4e38 || v[i] < -3.4e38 {
			return false
		}
	}
	return true
}

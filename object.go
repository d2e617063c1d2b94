package sre

import (
	"github.com/gekko3d/sre/bounds"
	"github.com/gekko3d/sre/shadowvolume"
	"github.com/go-gl/mathgl/mgl32"
)

// ObjectFlags are the per-object lifecycle bits named in §3.
type ObjectFlags uint16

const (
	ObjectExists ObjectFlags = 1 << iota
	ObjectDynamicPosition
	ObjectInfiniteDistance
	ObjectNoPhysics
	ObjectCastShadows
	ObjectHidden
	ObjectUseObjectShadowCache
	ObjectParticleSystem
	ObjectBillboard
	ObjectLightHalo
)

func (f ObjectFlags) Has(bit ObjectFlags) bool { return f&bit != 0 }

// RapidChangeFlags are the cheap "changed this frame" / "changed every
// frame" bits: every ChangePosition*/ChangeRotation* call sets
// ChangedThisFrame, and position changes set ChangedEveryFrame by comparing
// MostRecentPositionChange with the current frame (supplemented from
// original_source/scene.cpp per SPEC_FULL.md).
type RapidChangeFlags uint8

const (
	ChangedThisFrame RapidChangeFlags = 1 << iota
	ChangedEveryFrame
)

// MicrofacetParams carries the optional per-instance microfacet material
// parameters named in §3.
type MicrofacetParams struct {
	DiffuseFraction float32
	Roughness       [2]float32
	Weights         [2]float32
	Anisotropic     bool
}

// TextureHandle is an opaque, content-independent handle to a texture
// resource owned by the (out-of-scope) texture-decoding collaborator; the
// core never interprets it.
type TextureHandle uint32

// Material is an object's per-instance surface material.
type Material struct {
	DiffuseReflectionColor  mgl32.Vec3
	SpecularReflectionColor mgl32.Vec3
	SpecularExponent        float32

	DiffuseTexture  *TextureHandle
	SpecularTexture *TextureHandle

	Microfacet *MicrofacetParams
}

// LODSettings is an object's level-of-detail preference, named in §3.
type LODSettings struct {
	Flags            uint8
	Level            int
	ThresholdScaling float32
}

// Object is a scene instance of a Model with its own world transform,
// material, lifecycle flags, and instantiated world-space bounds.
type Object struct {
	ID    uint32
	Model *Model

	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scaling  float32

	ModelMatrix        mgl32.Mat4
	InverseModelMatrix mgl32.Mat4
	UnitRotation       mgl32.Quat

	Material Material
	Flags    ObjectFlags

	// Sphere/AABB/Box are the world-space instantiations of Model's
	// local-space bounds, recomputed whenever the transform changes.
	Sphere bounds.Sphere
	AABB   bounds.AABB
	Box    bounds.Box

	LOD LODSettings

	// AttachedLight, when non-nil, is the id of a Light this object carries
	// (e.g. a torch); AttachmentPoint is the attachment point in the
	// object's local space.
	AttachedLight   *uint32
	AttachmentPoint mgl32.Vec3

	// ShadowCache holds this object's precomputed static shadow volumes,
	// one entry per affecting light, invalidated by the generation stamp
	// derived from MostRecentTransformationChange (supplemented feature,
	// see SPEC_FULL.md "Shadow-volume cache reuse across frames").
	ShadowCache shadowvolume.Cache

	MostRecentPositionChange       uint64
	MostRecentTransformationChange uint64
	RapidChange                    RapidChangeFlags

	exists bool
}

// recomputeModelMatrix rebuilds ModelMatrix/InverseModelMatrix/UnitRotation
// from Position/Rotation/Scaling (model_matrix = T * R * S, per §3) and
// re-instantiates the world-space Sphere/AABB/Box from the Model's
// local-space bounds, grounded on the teacher's
// Transform.ObjectToWorld/WorldToObject (voxelrt/rt/core/transform.go),
// generalized here from a fixed non-uniform Scale vector to the engine's
// scalar Scaling plus a cached unit rotation.
func (o *Object) recomputeModelMatrix() {
	unit := o.Rotation.Normalize()
	o.UnitRotation = unit

	translate := mgl32.Translate3D(o.Position[0], o.Position[1], o.Position[2])
	rotate := unit.Mat4()
	scale := mgl32.Scale3D(o.Scaling, o.Scaling, o.Scaling)
	o.ModelMatrix = translate.Mul4(rotate).Mul4(scale)

	invScale := mgl32.Scale3D(1.0/o.Scaling, 1.0/o.Scaling, 1.0/o.Scaling)
	invRotate := unit.Conjugate().Mat4()
	invTranslate := mgl32.Translate3D(-o.Position[0], -o.Position[1], -o.Position[2])
	o.InverseModelMatrix = invScale.Mul4(invRotate).Mul4(invTranslate)

	o.recomputeWorldBounds()
}

// recomputeWorldBounds re-instantiates Sphere/AABB/Box from the owning
// Model's local-space bounds under the current ModelMatrix. AABB is
// rebuilt conservatively from the transformed Box corners rather than from
// the local AABB corners directly, since a rotated AABB's corners do not
// bound the object as tightly as its oriented box's corners do.
func (o *Object) recomputeWorldBounds() {
	if o.Model == nil {
		return
	}
	center := o.ModelMatrix.Mul4x1(o.Model.LocalSphere.Center.Vec4(1))
	o.Sphere = bounds.Sphere{
		Center: mgl32.Vec3{center[0], center[1], center[2]},
		Radius: o.Model.LocalSphere.Radius * o.Scaling,
	}

	localBox := o.Model.LocalBox
	var pca [3]bounds.PCAAxis
	for i := 0; i < 3; i++ {
		dir4 := o.ModelMatrix.Mul4x1(localBox.PCA[i].Direction.Vec4(0))
		dir := mgl32.Vec3{dir4[0], dir4[1], dir4[2]}
		if dir.Len() > 0 {
			dir = dir.Normalize()
		}
		pca[i] = bounds.NewPCAAxis(dir, localBox.PCA[i].Size*o.Scaling)
	}
	worldCenter := o.ModelMatrix.Mul4x1(localBox.Center.Vec4(1))
	o.Box = bounds.NewBox(mgl32.Vec3{worldCenter[0], worldCenter[1], worldCenter[2]}, pca)

	aabb := bounds.AABB{Min: o.Box.Vertices()[0], Max: o.Box.Vertices()[0]}
	for _, v := range o.Box.Vertices()[1:] {
		aabb = aabb.Update(bounds.AABB{Min: v, Max: v})
	}
	o.AABB = aabb
}

// HasChangedThisFrame reports whether either the position or the full
// transform changed on frame. This is the cheap per-frame test §3 names;
// it is a direct counter comparison rather than a flag lookup because the
// counters already carry that information at no extra cost.
func (o *Object) HasChangedThisFrame(frame uint64) bool {
	return o.MostRecentPositionChange == frame || o.MostRecentTransformationChange == frame
}

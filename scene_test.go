package sre

import (
	"testing"

	"github.com/gekko3d/sre/bounds"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitCubeModel() *Model {
	sphere := bounds.Sphere{Center: mgl32.Vec3{0, 0, 0}, Radius: 1}
	aabb := bounds.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	pca := [3]bounds.PCAAxis{
		bounds.NewPCAAxis(mgl32.Vec3{1, 0, 0}, 1),
		bounds.NewPCAAxis(mgl32.Vec3{0, 1, 0}, 1),
		bounds.NewPCAAxis(mgl32.Vec3{0, 0, 1}, 1),
	}
	box := bounds.NewBox(mgl32.Vec3{0, 0, 0}, pca)
	m := NewModel(sphere, aabb, box)
	m.AddLOD(LOD{ThresholdScaling: 1})
	return m
}

func TestScene_AddObjectReusesFreedIDs(t *testing.T) {
	s := NewScene(NewSceneConfig(), nil)
	model := unitCubeModel()

	id1 := s.AddObject(model, mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent(), 1, 0)
	id2 := s.AddObject(model, mgl32.Vec3{5, 0, 0}, mgl32.QuatIdent(), 1, 0)
	require.NotEqual(t, id1, id2)
	require.Equal(t, 2, s.ObjectCount())

	s.DeleteObject(id1)
	require.Nil(t, s.Object(id1), "deleted object should no longer be visible")

	id3 := s.AddObject(model, mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent(), 1, 0)
	assert.Equal(t, id1, id3, "freed id should be reused before the array grows")
	assert.Equal(t, 2, s.ObjectCount(), "reusing a freed slot must not grow the backing array")
}

func TestScene_DeleteObjectIsIdempotent(t *testing.T) {
	s := NewScene(NewSceneConfig(), nil)
	assert.NotPanics(t, func() {
		s.DeleteObject(42)
		s.DeleteObject(42)
	})
}

func TestScene_ChangePositionRecomputesWorldBounds(t *testing.T) {
	s := NewScene(NewSceneConfig(), nil)
	model := unitCubeModel()
	id := s.AddObject(model, mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent(), 1, 0)

	s.ChangePosition(id, mgl32.Vec3{10, 0, 0})

	o := s.Object(id)
	require.NotNil(t, o)
	assert.InDelta(t, 10, o.Sphere.Center[0], 1e-5)
	assert.True(t, o.HasChangedThisFrame(s.frame))
}

func TestScene_ChangePositionStampsRapidChange(t *testing.T) {
	s := NewScene(NewSceneConfig(), nil)
	model := unitCubeModel()
	id := s.AddObject(model, mgl32.Vec3{}, mgl32.QuatIdent(), 1, 0)

	s.frame = 1
	s.ChangePosition(id, mgl32.Vec3{1, 0, 0})
	o := s.Object(id)
	require.NotNil(t, o)
	assert.Equal(t, uint64(1), o.MostRecentPositionChange)
	assert.False(t, o.RapidChange&ChangedEveryFrame != 0, "first change should not be flagged as every-frame yet")

	s.frame = 2
	s.ChangePosition(id, mgl32.Vec3{2, 0, 0})
	assert.True(t, o.RapidChange&ChangedEveryFrame != 0, "consecutive-frame changes should set ChangedEveryFrame")
}

func TestScene_AddLightAndDeleteInvalidatesShadowCache(t *testing.T) {
	s := NewScene(NewSceneConfig(), nil)
	model := unitCubeModel()
	objID := s.AddObject(model, mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent(), 1, ObjectCastShadows)

	lightID := s.AddLight(Light{
		Type:   LightDirectional,
		Vector: mgl32.Vec3{0, -1, 0}.Vec4(0),
		Sphere: bounds.Sphere{Center: mgl32.Vec3{}, Radius: 1e6},
	})
	require.NotNil(t, s.Light(lightID))

	o := s.Object(objID)
	o.ShadowCache.Store(lightID, bounds.Volume{}, 0)

	s.DeleteLight(lightID)
	assert.Nil(t, s.Light(lightID))
	_, ok := o.ShadowCache.Lookup(lightID, 0)
	assert.False(t, ok, "deleting a light must invalidate its cached shadow volumes on every object")
}

func TestScene_PrepareForRenderingRejectsModelWithoutLODs(t *testing.T) {
	s := NewScene(NewSceneConfig(), nil)
	bareModel := NewModel(bounds.Sphere{Radius: 1}, bounds.EmptyAABB(), bounds.Box{})
	s.AddObject(bareModel, mgl32.Vec3{}, mgl32.QuatIdent(), 1, 0)

	err := s.PrepareForRendering()
	require.Error(t, err)
	sreErr, ok := err.(*SreError)
	require.True(t, ok)
	assert.Equal(t, UnsupportedGeometry, sreErr.Kind)
}

func TestScene_PrepareForRenderingHidesDegeneratePosition(t *testing.T) {
	s := NewScene(NewSceneConfig(), nil)
	model := unitCubeModel()
	nan := float32(0)
	nan = nan / nan
	id := s.AddObject(model, mgl32.Vec3{nan, 0, 0}, mgl32.QuatIdent(), 1, 0)

	require.NoError(t, s.PrepareForRendering())
	o := s.Object(id)
	require.NotNil(t, o)
	assert.True(t, o.Flags.Has(ObjectHidden))
}

func TestScene_CreateOctreesRoutesEntitiesByFlags(t *testing.T) {
	s := NewScene(NewSceneConfig(), nil)
	model := unitCubeModel()

	s.AddObject(model, mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent(), 1, 0)
	s.AddObject(model, mgl32.Vec3{100, 0, 0}, mgl32.QuatIdent(), 1, ObjectDynamicPosition)

	s.CreateOctrees()

	require.NotNil(t, s.StaticOctree)
	require.NotNil(t, s.DynamicOctree)
	assert.NotEmpty(t, s.StaticOctree.Array)
	assert.NotEmpty(t, s.DynamicOctree.Array)
}

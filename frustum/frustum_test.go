package frustum

import (
	"testing"

	"github.com/gekko3d/sre/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

func lookAtOrigin() mgl32.Mat4 {
	return mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
}

func TestNewFrustumHasSixPlanes(t *testing.T) {
	f := New(Params{VerticalAngleDeg: 60, Aspect: 16.0 / 9.0, NearD: 1, FarD: 1000}, lookAtOrigin())
	if len(f.Hull.Plane) != 6 {
		t.Fatalf("expected 6 planes, got %d", len(f.Hull.Plane))
	}
	if len(f.HullNoFar.Plane) != 5 {
		t.Fatalf("expected 5 planes without far, got %d", len(f.HullNoFar.Plane))
	}
}

func TestFrustumContainsItsOwnCentroid(t *testing.T) {
	f := New(Params{VerticalAngleDeg: 60, Aspect: 16.0 / 9.0, NearD: 1, FarD: 1000}, lookAtOrigin())
	for i, p := range f.Hull.Plane {
		if bounds.PlaneDot(p, f.Sphere.Center) < -1e-3 {
			t.Errorf("plane %d rejects the frustum's own centroid", i)
		}
	}
}

func TestClassifyLightPositionPointInFront(t *testing.T) {
	f := New(Params{VerticalAngleDeg: 60, Aspect: 16.0 / 9.0, NearD: 1, FarD: 1000}, lookAtOrigin())
	got := ClassifyLightPosition(f, mgl32.Vec4{0, 0, -50, 1})
	if got != InFrontOfNearPlane {
		t.Errorf("got %v, want InFrontOfNearPlane", got)
	}
}

func TestClassifyLightPositionBehind(t *testing.T) {
	f := New(Params{VerticalAngleDeg: 60, Aspect: 16.0 / 9.0, NearD: 1, FarD: 1000}, lookAtOrigin())
	got := ClassifyLightPosition(f, mgl32.Vec4{0, 0, 5, 1})
	if got != BehindNearPlane {
		t.Errorf("got %v, want BehindNearPlane", got)
	}
}

func TestNearClipVolumePointLightHasSixPlanes(t *testing.T) {
	f := New(Params{VerticalAngleDeg: 60, Aspect: 16.0 / 9.0, NearD: 1, FarD: 1000}, lookAtOrigin())
	hull := NearClipVolume(f, mgl32.Vec4{0, 0, -50, 1})
	if len(hull.Plane) != 6 {
		t.Errorf("expected 6 planes for a point light, got %d", len(hull.Plane))
	}
}

func TestShadowCasterVolumeInsideFrustumEqualsNoFarHull(t *testing.T) {
	f := New(Params{VerticalAngleDeg: 60, Aspect: 16.0 / 9.0, NearD: 1, FarD: 1000}, lookAtOrigin())
	hull := ShadowCasterVolume(f, mgl32.Vec4{0, 0, -50, 1})
	if len(hull.Plane) != len(f.HullNoFar.Plane) {
		t.Errorf("expected the 5-plane frustum hull when the light is inside it, got %d planes", len(hull.Plane))
	}
}

func TestGeometryScissorMonotonicUnion(t *testing.T) {
	viewProj := mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 1, 1000).Mul4(lookAtOrigin())
	nearPlane := mgl32.Vec4{0, 0, -1, -1} // z <= -1 is in front, matches NearD=1

	var gs GeometryScissor
	a := []mgl32.Vec3{{-1, -1, -10}, {1, -1, -10}, {1, 1, -10}, {-1, 1, -10}}
	b := []mgl32.Vec3{{-5, -5, -20}, {5, -5, -20}, {5, 5, -20}, {-5, 5, -20}}

	gs.UpdateWithWorldSpaceBoundingHull(viewProj, nearPlane, a, false)
	afterA := gs.State
	gs.UpdateWithWorldSpaceBoundingHull(viewProj, nearPlane, b, false)
	afterB := gs.State

	if afterB.Left > afterA.Left || afterB.Right < afterA.Right {
		t.Errorf("union should only grow: afterA=%+v afterB=%+v", afterA, afterB)
	}
}

func TestPointLightScissorBehindCameraIsEmpty(t *testing.T) {
	p := Params{VerticalAngleDeg: 60, Aspect: 16.0 / 9.0, NearD: 1, FarD: 1000}
	s := PointLightScissor(lookAtOrigin(), p, bounds.Sphere{Center: mgl32.Vec3{0, 0, 10}, Radius: 1})
	if s.State != ScissorEmpty {
		t.Errorf("light entirely behind the camera should yield an empty scissor, got %v", s.State)
	}
}

package shadowvolume

import (
	"testing"

	"github.com/gekko3d/sre/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

func approxEqualVec3(a, b mgl32.Vec3, eps float32) bool {
	return absf32(a[0]-b[0]) < eps && absf32(a[1]-b[1]) < eps && absf32(a[2]-b[2]) < eps
}

// scenario: object sphere center=(0,0,-20) radius=1, directional light
// direction=(0,0,-1) -> expect HalfCylinder{endpoint=(0,0,-19), axis=(0,0,-1),
// radius=1}.
func TestConstructDirectionalExactValues(t *testing.T) {
	sphere := bounds.Sphere{Center: mgl32.Vec3{0, 0, -20}, Radius: 1}
	dir := mgl32.Vec3{0, 0, -1}
	v := ConstructDirectional(sphere, dir)
	if v.Kind != bounds.KindHalfCylinder {
		t.Fatalf("expected HalfCylinder, got %v", v.Kind)
	}
	want := mgl32.Vec3{0, 0, -19}
	if !approxEqualVec3(v.HalfCylinder.Endpoint, want, 1e-5) {
		t.Fatalf("endpoint = %v, want %v", v.HalfCylinder.Endpoint, want)
	}
	if !approxEqualVec3(v.HalfCylinder.Axis, dir, 1e-5) {
		t.Fatalf("axis = %v, want %v", v.HalfCylinder.Axis, dir)
	}
	if absf32(v.HalfCylinder.Radius-1) > 1e-5 {
		t.Fatalf("radius = %v, want 1", v.HalfCylinder.Radius)
	}
}

func TestConstructDirectionalViaDispatch(t *testing.T) {
	sphere := bounds.Sphere{Center: mgl32.Vec3{0, 0, -20}, Radius: 1}
	v := Construct(sphere, nil, Light{
		Kind:     Directional,
		Position: mgl32.Vec4{0, 0, -1, 0},
	})
	if v.Kind != bounds.KindHalfCylinder {
		t.Fatalf("expected HalfCylinder, got %v", v.Kind)
	}
}

// scenario S3: beam position=(0,0,0) axis=(1,0,0) length=10 radius=1; object
// at (-5,0,0) radius=0.5, entirely behind the beam's origin -> Empty.
func TestConstructBeamDisjointIsEmpty(t *testing.T) {
	sphere := bounds.Sphere{Center: mgl32.Vec3{-5, 0, 0}, Radius: 0.5}
	v := ConstructBeam(sphere, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, 10)
	if v.Kind != bounds.Empty {
		t.Fatalf("expected Empty, got %v", v.Kind)
	}
}

// Same scenario via the object-beyond-the-beam-end direction.
func TestConstructBeamPastEndIsEmpty(t *testing.T) {
	sphere := bounds.Sphere{Center: mgl32.Vec3{20, 0, 0}, Radius: 0.5}
	v := ConstructBeam(sphere, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, 10)
	if v.Kind != bounds.Empty {
		t.Fatalf("expected Empty, got %v", v.Kind)
	}
}

func TestConstructBeamOverlappingIsCylinder(t *testing.T) {
	sphere := bounds.Sphere{Center: mgl32.Vec3{5, 0, 0}, Radius: 1}
	v := ConstructBeam(sphere, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, 10)
	if v.Kind != bounds.KindCylinder {
		t.Fatalf("expected Cylinder, got %v", v.Kind)
	}
}

// scenario S4: point light at origin, flat box lying exactly in the plane
// z=0 that also contains the light -> Empty (the light can't illuminate a
// face it's coplanar with, so there's no shadow to bound).
func TestConstructPointOrSpotFlatBoxThroughLightIsEmpty(t *testing.T) {
	box := bounds.NewBox(mgl32.Vec3{0, 0, 0}, [3]bounds.PCAAxis{
		bounds.NewPCAAxis(mgl32.Vec3{1, 0, 0}, 2),
		bounds.NewPCAAxis(mgl32.Vec3{0, 1, 0}, 2),
		bounds.NewPCAAxis(mgl32.Vec3{0, 0, 1}, 0),
	})
	// Light sits exactly in the flat box's own plane, inside its extent.
	v := ConstructPointOrSpot(&box, mgl32.Vec3{0, 0, 0})
	if v.Kind != bounds.Empty {
		t.Fatalf("expected Empty, got %v", v.Kind)
	}
}

func TestConstructPointOrSpotLightInsideBoxIsEverywhere(t *testing.T) {
	box := bounds.NewBox(mgl32.Vec3{0, 0, 0}, [3]bounds.PCAAxis{
		bounds.NewPCAAxis(mgl32.Vec3{1, 0, 0}, 2),
		bounds.NewPCAAxis(mgl32.Vec3{0, 1, 0}, 2),
		bounds.NewPCAAxis(mgl32.Vec3{0, 0, 1}, 2),
	})
	v := ConstructPointOrSpot(&box, mgl32.Vec3{0, 0, 0})
	if v.Kind != bounds.Everywhere {
		t.Fatalf("expected Everywhere, got %v", v.Kind)
	}
}

// property 4: for any non-degenerate point-light/box pair that yields a
// PyramidCone, min_i cos(angle(axis, vertex[i]-apex)) == CosHalfAngularSize.
func TestConstructPointOrSpotPyramidConeAngleInvariant(t *testing.T) {
	box := bounds.NewBox(mgl32.Vec3{0, 0, -10}, [3]bounds.PCAAxis{
		bounds.NewPCAAxis(mgl32.Vec3{1, 0, 0}, 1),
		bounds.NewPCAAxis(mgl32.Vec3{0, 1, 0}, 1),
		bounds.NewPCAAxis(mgl32.Vec3{0, 0, 1}, 1),
	})
	light := mgl32.Vec3{0, 0, 0}
	v := ConstructPointOrSpot(&box, light)
	if v.Kind != bounds.KindPyramidCone {
		t.Fatalf("expected PyramidCone for this near-on-axis case, got %v", v.Kind)
	}
	got := v.PyramidCone.MinEdgeCosAngle()
	if absf32(got-v.PyramidCone.CosHalfAngularSize) > 1e-4 {
		t.Fatalf("MinEdgeCosAngle() = %v, want CosHalfAngularSize %v", got, v.PyramidCone.CosHalfAngularSize)
	}
}

func TestConstructPointOrSpotWideAngleFallsBackToSphericalSector(t *testing.T) {
	// A wide panel seen from near its edge: the silhouette vertex on the
	// far corner sits more than 90 degrees from the light-to-center axis,
	// so no uniform-edge-length PyramidCone can enclose it and the
	// SphericalSector fallback is required.
	box := bounds.NewBox(mgl32.Vec3{0, 0, -1}, [3]bounds.PCAAxis{
		bounds.NewPCAAxis(mgl32.Vec3{1, 0, 0}, 10),
		bounds.NewPCAAxis(mgl32.Vec3{0, 1, 0}, 10),
		bounds.NewPCAAxis(mgl32.Vec3{0, 0, 1}, 0.1),
	})
	light := mgl32.Vec3{9, 9, 0}
	v := ConstructPointOrSpot(&box, light)
	if v.Kind != bounds.KindSphericalSector {
		t.Fatalf("expected SphericalSector fallback, got %v", v.Kind)
	}
}

func TestCacheLookupMissThenStoreThenHit(t *testing.T) {
	var c Cache
	if _, ok := c.Lookup(1, 0); ok {
		t.Fatal("expected miss on empty cache")
	}
	vol := bounds.FromSphere(bounds.Sphere{Radius: 1})
	c.Store(1, vol, 5)
	got, ok := c.Lookup(1, 5)
	if !ok || got.Kind != bounds.KindSphere {
		t.Fatalf("expected hit with stored volume, got ok=%v vol=%v", ok, got)
	}
	if _, ok := c.Lookup(1, 6); ok {
		t.Fatal("expected miss after generation bump")
	}
}

func TestCacheInvalidateRemovesEntry(t *testing.T) {
	var c Cache
	c.Store(1, bounds.FromSphere(bounds.Sphere{Radius: 1}), 1)
	c.Invalidate(1)
	if _, ok := c.Lookup(1, 1); ok {
		t.Fatal("expected miss after invalidate")
	}
}

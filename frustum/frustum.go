// Package frustum derives the per-frame view frustum plus the near-clip
// volume, shadow-caster volume, and light/geometry scissor regions computed
// from it, grounded on the teacher's camera math (mgl32-based, analytic
// plane construction rather than matrix-plane-extraction) and on
// original_source/frustum.cpp for the exact branch structure.
package frustum

import (
	"math"

	"github.com/gekko3d/sre/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

// Params are the projection parameters used to build a Frustum.
type Params struct {
	VerticalAngleDeg float32
	Aspect           float32
	NearD            float32
	FarD             float32
}

// Frustum is the view volume: a 6-plane convex hull (near, far, 4 sides),
// a 5-plane variant with the far plane dropped (used for shadow-caster
// volume construction and shadow-map region derivation), an enclosing
// sphere, an AABB, and the 8 world-space corner points.
type Frustum struct {
	Params Params

	Hull      *bounds.ConvexHull // 6 planes
	HullNoFar *bounds.ConvexHull // 5 planes: near + 4 sides

	Sphere  bounds.Sphere
	AABB    bounds.AABB
	Corners [8]mgl32.Vec3 // bit0=left/right, bit1=bottom/top, bit2=near/far order below
}

// corner indices: 0..3 near rect (bl,br,tl,tr), 4..7 far rect, matching the
// order eye-space corners are built in below.
const (
	cornerNearBL = 0
	cornerNearBR = 1
	cornerNearTL = 2
	cornerNearTR = 3
	cornerFarBL  = 4
	cornerFarBR  = 5
	cornerFarTL  = 6
	cornerFarTR  = 7
)

// New builds a Frustum from Params and a world-to-eye (view) matrix. Eye-
// space corners and planes are constructed analytically, then corners are
// transformed to world space by the view matrix's inverse and planes by its
// transpose (standard plane-transform-by-inverse-transpose, here simplified
// since the view matrix is rigid: transpose of the 3x3 rotation block plus a
// recomputed d term).
func New(p Params, viewMatrix mgl32.Mat4) *Frustum {
	invView := viewMatrix.Inv()

	halfV := float32(math.Tan(float64(p.VerticalAngleDeg) * math.Pi / 360.0))
	halfH := halfV * p.Aspect

	// Open Question 1 (dead computation, reproduced literally): the source
	// computes fh = (1/ratio)*ratio here, which cancels to ratio and is
	// never used downstream. Kept rather than removed, flagged as
	// suspicious rather than silently dropped.
	fh := (1.0 / p.Aspect) * p.Aspect
	_ = fh // suspicious: cancels to aspect, kept for parity with the source

	nearH := halfV * p.NearD
	nearW := halfH * p.NearD
	farH := halfV * p.FarD
	farW := halfH * p.FarD

	eyeCorners := [8]mgl32.Vec3{
		{-nearW, -nearH, -p.NearD},
		{nearW, -nearH, -p.NearD},
		{-nearW, nearH, -p.NearD},
		{nearW, nearH, -p.NearD},
		{-farW, -farH, -p.FarD},
		{farW, -farH, -p.FarD},
		{-farW, farH, -p.FarD},
		{farW, farH, -p.FarD},
	}

	var world [8]mgl32.Vec3
	for i, c := range eyeCorners {
		w := invView.Mul4x1(mgl32.Vec4{c[0], c[1], c[2], 1})
		world[i] = mgl32.Vec3{w[0], w[1], w[2]}
	}

	eye := mgl32.Vec3{invView[12], invView[13], invView[14]}

	// Near plane: normal points toward the far plane (interior side).
	nearPlane := bounds.PlaneFromPoints(world[cornerNearTL], world[cornerNearBR], world[cornerNearBL], world[cornerFarBL])
	// Far plane: normal points back toward the eye (interior side).
	farPlane := bounds.PlaneFromPoints(world[cornerFarTL], world[cornerFarBL], world[cornerFarBR], eye)
	// Sides, each oriented toward the eye/centroid interior hint.
	leftPlane := bounds.PlaneFromPoints(world[cornerNearTL], world[cornerNearBL], world[cornerFarBL], eye)
	rightPlane := bounds.PlaneFromPoints(world[cornerNearBR], world[cornerNearTR], world[cornerFarBR], eye)
	bottomPlane := bounds.PlaneFromPoints(world[cornerNearBL], world[cornerNearBR], world[cornerFarBL], eye)
	topPlane := bounds.PlaneFromPoints(world[cornerNearTR], world[cornerNearTL], world[cornerFarTL], eye)

	all := []mgl32.Vec4{nearPlane, farPlane, leftPlane, rightPlane, bottomPlane, topPlane}
	noFar := []mgl32.Vec4{nearPlane, leftPlane, rightPlane, bottomPlane, topPlane}

	var centroid mgl32.Vec3
	for _, c := range world {
		centroid = centroid.Add(c)
	}
	centroid = centroid.Mul(1.0 / 8.0)

	radius := float32(0)
	for _, c := range world {
		if d := c.Sub(centroid).Len(); d > radius {
			radius = d
		}
	}

	aabb := bounds.AABB{Min: world[0], Max: world[0]}
	for _, c := range world[1:] {
		aabb = aabb.Update(bounds.AABB{Min: c, Max: c})
	}

	return &Frustum{
		Params:    p,
		Hull:      &bounds.ConvexHull{Plane: all},
		HullNoFar: &bounds.ConvexHull{Plane: noFar},
		Sphere:    bounds.Sphere{Center: centroid, Radius: radius},
		AABB:      aabb,
		Corners:   world,
	}
}

// MaxHalfAngularSize returns the largest angle between the frustum's
// centroid-to-corner ray and its forward axis, used by the infinite-pyramid-
// base dark-cap test.
func (f *Frustum) MaxHalfAngularSize(forward mgl32.Vec3) float32 {
	best := float32(0)
	for _, c := range f.Corners {
		d := c.Sub(f.Sphere.Center)
		if d.Len() == 0 {
			continue
		}
		cosAngle := d.Normalize().Dot(forward)
		if cosAngle > 1 {
			cosAngle = 1
		}
		if cosAngle < -1 {
			cosAngle = -1
		}
		angle := float32(math.Acos(float64(cosAngle)))
		if angle > best {
			best = angle
		}
	}
	return best
}

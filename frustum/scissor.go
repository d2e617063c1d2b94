package frustum

import (
	"math"

	"github.com/gekko3d/sre/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

// ScissorState distinguishes whether a Scissor rectangle has any useful
// information, matching §7's ScissorsDegenerate handling: a degenerate
// geometry scissor becomes Undefined rather than an error, and the caller
// substitutes the full viewport.
type ScissorState int

const (
	ScissorEmpty ScissorState = iota
	ScissorUndefined
	ScissorDefined
)

// Scissor is a screen-space (NDC, [-1,1]) rectangle plus depth bounds.
type Scissor struct {
	State                    ScissorState
	Left, Right              float32
	Bottom, Top              float32
	Near, Far                float32
}

func emptyScissor() Scissor { return Scissor{State: ScissorEmpty} }

// cotHalfAngle is e = cot(half_vertical_angle), used to project an eye-space
// tangent point to NDC x/y the same way the projection matrix would.
func cotHalfAngle(verticalAngleDeg float32) float32 {
	return 1.0 / float32(math.Tan(float64(verticalAngleDeg)*math.Pi/360.0))
}

// PointLightScissor derives the light-scissors rectangle for a point light's
// bounding sphere via the analytic tangent-plane construction: for each of
// the four eye-space projection axes (±x, ±y) solve the tangent-plane
// quadratic, reject tangent points behind the camera, and project the
// tangency x/y to NDC through x = Nz*e/Nx, clamped to [-1,1].
func PointLightScissor(viewMatrix mgl32.Mat4, p Params, sphereWorld bounds.Sphere) Scissor {
	eye := viewMatrix.Mul4x1(mgl32.Vec4{sphereWorld.Center[0], sphereWorld.Center[1], sphereWorld.Center[2], 1})
	cx, cy, cz := eye[0], eye[1], eye[2]
	r := sphereWorld.Radius

	if -cz < p.NearD-r || -cz > p.FarD+r {
		// Sphere's near/far extent never reaches the view volume at all.
		if -cz+r < p.NearD || -cz-r > p.FarD {
			return emptyScissor()
		}
	}

	ex := cotHalfAngle(p.VerticalAngleDeg) / p.Aspect
	ey := cotHalfAngle(p.VerticalAngleDeg)

	left, right, ok1 := tangentExtent(cx, cz, r)
	bottom, top, ok2 := tangentExtent(cy, cz, r)
	if !ok1 && !ok2 {
		return emptyScissor()
	}

	s := Scissor{State: ScissorDefined}
	s.Left = clamp(left*ex, -1, 1)
	s.Right = clamp(right*ex, -1, 1)
	s.Bottom = clamp(bottom*ey, -1, 1)
	s.Top = clamp(top*ey, -1, 1)
	s.Near = clamp(-cz-r, p.NearD, p.FarD)
	s.Far = clamp(-cz+r, p.NearD, p.FarD)
	return s
}

// tangentExtent solves for the two tangent-line x-intercepts (at z=-1, i.e.
// the normalised projection plane) of the circle of radius r centred at
// (c, -cz) in the (axis, -z) plane, returning false if the sphere straddles
// the eye (no well-defined tangent).
func tangentExtent(c, cz, r float32) (lo, hi float32, ok bool) {
	d2 := c*c + cz*cz
	if d2 <= r*r {
		return 0, 0, false
	}
	d := float32(math.Sqrt(float64(d2)))
	// Tangent line angle offset from the center direction.
	theta := float32(math.Asin(float64(r / d)))
	baseAngle := float32(math.Atan2(float64(c), float64(-cz)))
	lo = float32(math.Tan(float64(baseAngle - theta)))
	hi = float32(math.Tan(float64(baseAngle + theta)))
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CylinderLightScissor approximates a spot/beam light's bounding cylinder by
// its 8 world-space corners and reuses the generic bounding-box scissor
// updater, clamped to the viewport ([-1,1] NDC square).
func CylinderLightScissor(viewProj mgl32.Mat4, endpoints [2]mgl32.Vec3, radius float32) Scissor {
	axis := endpoints[1].Sub(endpoints[0])
	length := axis.Len()
	if length < 1e-8 {
		return emptyScissor()
	}
	axis = axis.Mul(1.0 / length)
	ortho1 := orthogonalTo(axis)
	ortho2 := axis.Cross(ortho1)

	var corners []mgl32.Vec3
	for _, end := range endpoints {
		for _, sx := range []float32{-1, 1} {
			for _, sy := range []float32{-1, 1} {
				corners = append(corners, end.Add(ortho1.Mul(sx*radius)).Add(ortho2.Mul(sy*radius)))
			}
		}
	}

	s := emptyScissor()
	updateWithPoints(&s, viewProj, corners)
	if s.State == ScissorDefined {
		s.Left = clamp(s.Left, -1, 1)
		s.Right = clamp(s.Right, -1, 1)
		s.Bottom = clamp(s.Bottom, -1, 1)
		s.Top = clamp(s.Top, -1, 1)
	}
	return s
}

func orthogonalTo(v mgl32.Vec3) mgl32.Vec3 {
	up := mgl32.Vec3{0, 1, 0}
	if math.Abs(float64(v.Dot(up))) > 0.99 {
		up = mgl32.Vec3{1, 0, 0}
	}
	return v.Cross(up).Normalize()
}

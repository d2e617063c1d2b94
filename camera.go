package sre

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraMode selects which of the three view-matrix derivation strategies
// Camera.ViewMatrix uses, supplemented from original_source/demo4.cpp's
// look-at / follow-object / forward+ascend movement modes (SPEC_FULL.md
// "View/camera movement modes"); grounded in shape on the teacher's
// CameraState (voxelrt/rt/core/camera.go), generalized from a single
// fly-cam mode to the three the original demo exposes.
type CameraMode int

const (
	// CameraLookAt derives the view matrix from Position/Target/Up
	// directly via mgl32.LookAtV.
	CameraLookAt CameraMode = iota
	// CameraFollowObject keeps the camera at a fixed world-space offset
	// from FollowObject's position, looking at that position; the
	// object's rotation is not applied to the offset.
	CameraFollowObject
	// CameraForwardAscend is a free-fly camera driven by yaw/pitch plus
	// forward/ascend velocity, matching the teacher's CameraState.
	CameraForwardAscend
)

// Camera holds the state needed to derive a world-to-eye view matrix under
// any of the three CameraMode strategies. It never touches input directly
// (that is the back-end/demo layer's job, per §1's Non-goals); the demo
// layer is expected to update Yaw/Pitch/Position from polled input and
// call ViewMatrix once per frame.
type Camera struct {
	Mode CameraMode

	// CameraLookAt fields.
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	// CameraFollowObject fields.
	FollowObject uint32
	FollowOffset mgl32.Vec3

	// CameraForwardAscend fields, grounded on CameraState's
	// Yaw/Pitch/Speed/Sensitivity plus the pitch clamp named in §6's input
	// mapping ([-80 deg, +10 deg]).
	Yaw, Pitch         float32
	Speed, Sensitivity float32
}

// NewCamera returns a Camera in CameraForwardAscend mode at (0, 2, 20)
// looking down -Z, matching the teacher's NewCameraState defaults.
func NewCamera() *Camera {
	return &Camera{
		Mode:        CameraForwardAscend,
		Position:    mgl32.Vec3{0, 2, 20},
		Up:          mgl32.Vec3{0, 1, 0},
		Speed:       10.0,
		Sensitivity: 0.003,
	}
}

const (
	pitchClampMinDeg = -80
	pitchClampMaxDeg = 10
)

// ClampPitch restricts Pitch (in degrees) to the input-mapping's vertical
// clamp named in §6.
func (c *Camera) ClampPitch() {
	if c.Pitch < pitchClampMinDeg {
		c.Pitch = pitchClampMinDeg
	}
	if c.Pitch > pitchClampMaxDeg {
		c.Pitch = pitchClampMaxDeg
	}
}

// Forward returns the forward-ascend camera's current look direction,
// derived from Yaw/Pitch exactly as CameraState.GetForward does.
func (c *Camera) Forward() mgl32.Vec3 {
	yaw := float64(c.Yaw) * math.Pi / 180
	pitch := float64(c.Pitch) * math.Pi / 180
	return mgl32.Vec3{
		float32(math.Cos(pitch) * math.Sin(yaw)),
		float32(math.Sin(pitch)),
		float32(-math.Cos(pitch) * math.Cos(yaw)),
	}
}

// ViewMatrix derives the world-to-eye matrix for the camera's current
// Mode. scene is used only by CameraFollowObject, to read the followed
// object's current world position.
func (c *Camera) ViewMatrix(scene *Scene) mgl32.Mat4 {
	switch c.Mode {
	case CameraLookAt:
		up := c.Up
		if up.Len() == 0 {
			up = mgl32.Vec3{0, 1, 0}
		}
		return mgl32.LookAtV(c.Position, c.Target, up)
	case CameraFollowObject:
		target := c.Position
		eye := c.Position.Add(c.FollowOffset)
		if scene != nil {
			if o := scene.Object(c.FollowObject); o != nil {
				target = o.Position
				eye = o.Position.Add(c.FollowOffset)
			}
		}
		return mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0})
	default:
		forward := c.Forward()
		return mgl32.LookAtV(c.Position, c.Position.Add(forward), mgl32.Vec3{0, 1, 0})
	}
}

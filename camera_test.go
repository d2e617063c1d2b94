package sre

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCamera_ClampPitch(t *testing.T) {
	c := NewCamera()

	c.Pitch = -200
	c.ClampPitch()
	if c.Pitch != pitchClampMinDeg {
		t.Fatalf("Pitch = %v, want clamp floor %v", c.Pitch, pitchClampMinDeg)
	}

	c.Pitch = 200
	c.ClampPitch()
	if c.Pitch != pitchClampMaxDeg {
		t.Fatalf("Pitch = %v, want clamp ceiling %v", c.Pitch, pitchClampMaxDeg)
	}

	c.Pitch = 0
	c.ClampPitch()
	if c.Pitch != 0 {
		t.Fatalf("Pitch = %v, want unchanged 0", c.Pitch)
	}
}

func TestCamera_ForwardAtZeroYawPitch(t *testing.T) {
	c := NewCamera()
	c.Yaw, c.Pitch = 0, 0
	fwd := c.Forward()
	want := mgl32.Vec3{0, 0, -1}
	const eps = 1e-5
	for i := 0; i < 3; i++ {
		if fwd[i] < want[i]-eps || fwd[i] > want[i]+eps {
			t.Fatalf("Forward() = %v, want %v", fwd, want)
		}
	}
}

func TestCamera_ViewMatrixLookAt(t *testing.T) {
	c := &Camera{
		Mode:     CameraLookAt,
		Position: mgl32.Vec3{0, 0, 5},
		Target:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
	}
	view := c.ViewMatrix(nil)
	// The camera sits on +Z looking at the origin; its own position should
	// transform to the origin of eye space.
	eyeOrigin := view.Mul4x1(c.Position.Vec4(1))
	const eps = 1e-4
	if eyeOrigin[0] > eps || eyeOrigin[0] < -eps || eyeOrigin[1] > eps || eyeOrigin[1] < -eps || eyeOrigin[2] > eps || eyeOrigin[2] < -eps {
		t.Fatalf("eye-space position of the camera itself should be ~origin, got %v", eyeOrigin)
	}
}

func TestCamera_ViewMatrixFollowsObject(t *testing.T) {
	s := NewScene(NewSceneConfig(), nil)
	model := unitCubeModel()
	id := s.AddObject(model, mgl32.Vec3{10, 0, 0}, mgl32.QuatIdent(), 1, 0)

	c := &Camera{Mode: CameraFollowObject, FollowObject: id, FollowOffset: mgl32.Vec3{0, 2, 5}}
	view := c.ViewMatrix(s)

	eyeOfTarget := view.Mul4x1(mgl32.Vec3{10, 0, 0}.Vec4(1))
	const eps = 1e-4
	if eyeOfTarget[0] > eps || eyeOfTarget[0] < -eps {
		t.Fatalf("followed object should project near the eye-space X=0 axis, got %v", eyeOfTarget)
	}
}

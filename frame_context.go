package sre

import (
	"github.com/gekko3d/sre/frustum"
	"github.com/go-gl/mathgl/mgl32"
)

// ShadowMode selects the stencil shadow-volume rendering technique; input
// mapping keys 1/2/3 cycle through these (§6).
type ShadowMode int

const (
	ShadowModeNone ShadowMode = iota
	ShadowModeDepthPass
	ShadowModeDepthFail
)

// StopSignal values, per §6: the main loop polls a scalar and exits after
// the current frame on any nonzero value.
type StopSignal int32

const (
	StopNone   StopSignal = 0
	StopQuit   StopSignal = 1
	StopCustom StopSignal = 2
)

// ViewMatrices is the per-frame snapshot the demo/back-end layer hands to
// the culling core: the world-to-eye matrix plus the derived
// view-projection matrix used for scissor projection.
type ViewMatrices struct {
	View           mgl32.Mat4
	ViewProjection mgl32.Mat4
}

// FrameContext replaces the source's sre_internal_* globals (view
// matrices, shadow mode, frame counter) with an explicit value threaded
// through the culling and scissor routines, per Design Notes "Global
// engine state". Scene.Render takes one of these by reference each frame;
// the Scene does not store the pointer, so it is used only for the
// duration of that Render call.
type FrameContext struct {
	FrameNumber uint64
	Time        float64

	Views  ViewMatrices
	Params frustum.Params

	ShadowMode    ShadowMode
	DepthFail     bool
	StopSignal    StopSignal

	Logger Logger
}

// NewFrameContext returns a FrameContext with config's default frustum
// params and DepthFail setting and the given logger (a no-op logger when
// logger is nil); the demo layer overwrites Views/Time every
// frame before calling Scene.Render.
func NewFrameContext(config RenderConfig, logger Logger) *FrameContext {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &FrameContext{Params: config.Frustum, DepthFail: config.DepthFail, Logger: logger}
}

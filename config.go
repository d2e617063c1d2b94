package sre

import (
	"github.com/gekko3d/sre/frustum"
	"github.com/gekko3d/sre/octree"
	"github.com/go-gl/mathgl/mgl32"
)

// OctreeBuildConfig parameterizes CreateOctrees the way the teacher's
// ...Module structs parameterize a subsystem: a plain struct with a
// defaulted constructor rather than a zero-value struct a caller has to
// know how to fill in.
type OctreeBuildConfig struct {
	// Mode selects the subdivision/encoding strategy (§4.2) used for the
	// one subdivided root (static); the dynamic and infinite-distance
	// roots always build flat regardless of Mode.
	Mode octree.Mode
}

// NewOctreeBuildConfig returns the default build configuration: Balanced
// subdivision, matching the teacher's NewPlatformWindow(width, height,
// title)-style "defaulted constructor over zero-value struct" pattern.
func NewOctreeBuildConfig() OctreeBuildConfig {
	return OctreeBuildConfig{Mode: octree.Balanced}
}

// SceneConfig bundles the knobs a Scene needs at construction time.
type SceneConfig struct {
	OctreeBuild  OctreeBuildConfig
	AmbientColor mgl32.Vec3
}

// NewSceneConfig returns a SceneConfig with a Balanced octree build and a
// dim neutral-gray ambient term.
func NewSceneConfig() SceneConfig {
	return SceneConfig{
		OctreeBuild:  NewOctreeBuildConfig(),
		AmbientColor: mgl32.Vec3{0.05, 0.05, 0.05},
	}
}

// RenderConfig bundles the per-run frustum/shadow settings that would
// otherwise live in sre_internal_* globals (Design Notes: "Global engine
// state"); a FrameContext carries one of these plus the frame's view
// matrices.
type RenderConfig struct {
	Frustum frustum.Params
	// ShadowVolumesVisible mirrors the source's debug toggle for rendering
	// shadow-volume wireframes; the core never draws, but the demo-layer
	// collaborator reads this flag back out of the FrameContext.
	ShadowVolumesVisible bool
	// DepthFail selects stencil depth-fail rendering (robust, camera-inside-
	// volume safe) over depth-pass (cheaper); the near-clip volume drives
	// the per-light choice, this is the engine-wide default fallback.
	DepthFail bool
}

// NewRenderConfig returns a RenderConfig with a 60-degree vertical FOV,
// 16:9 aspect, and a 0.1..1000 near/far range — reasonable defaults for a
// first frame before the demo layer has measured its actual framebuffer.
func NewRenderConfig() RenderConfig {
	return RenderConfig{
		Frustum: frustum.Params{
			VerticalAngleDeg: 60,
			Aspect:           16.0 / 9.0,
			NearD:            0.1,
			FarD:             1000,
		},
	}
}

// Package sre implements the spatial culling and shadow geometry subsystem:
// the Scene/Object/Light/Model entity model (§3), the per-frame culling
// driver (§4.5), and the thin back-end/input seam (§6) that the rest of a
// rendering engine builds on. The bounding-volume library, octree builder,
// frustum/scissor module, and shadow-volume constructor live in their own
// subpackages (bounds, octree, frustum, shadowvolume) and are wired
// together here.
package sre

import (
	"github.com/gekko3d/sre/bounds"
	"github.com/gekko3d/sre/frustum"
	"github.com/gekko3d/sre/octree"
	"github.com/gekko3d/sre/shadowvolume"
	"github.com/go-gl/mathgl/mgl32"
)

// Render executes one frame's culling pass (§4.5):
//
//  1. Derive the Frustum from ctx.
//  2. Depth-first traverse the static and dynamic octrees, testing node
//     bounds against the frustum and appending visible object/light ids.
//  3. For each visible light, derive its near-clip volume, shadow-caster
//     volume, and light scissor; for every shadow-casting object inside
//     the shadow-caster volume not already flagged this frame, fetch or
//     compute its ShadowVolume, test it against the frustum, and if it
//     survives append it to ShadowCasterObject with its own scissor.
//  4. Particle-system/billboard/light-halo objects are routed to FinalPassObject
//     instead of VisibleObject, for a second render pass after opaques.
func (s *Scene) Render(ctx *FrameContext) {
	s.frame = ctx.FrameNumber

	fr := frustum.New(ctx.Params, ctx.Views.View)

	s.VisibleObject = s.VisibleObject[:0]
	s.VisibleLight = s.VisibleLight[:0]
	s.ShadowCasterObject = s.ShadowCasterObject[:0]
	s.FinalPassObject = s.FinalPassObject[:0]
	s.ShadowScissor = make(map[uint32]frustum.Scissor, len(s.ShadowScissor))
	s.NearClipVolume = make(map[uint32]*bounds.ConvexHull, len(s.NearClipVolume))
	s.LightScissor = make(map[uint32]frustum.Scissor, len(s.LightScissor))

	shadowFlagged := make([]bool, len(s.objects))

	s.walkVisible(s.StaticOctree, fr.Hull)
	s.walkVisible(s.DynamicOctree, fr.Hull)
	s.walkVisible(s.StaticInfiniteOctree, fr.Hull)
	s.walkVisible(s.DynamicInfiniteOctree, fr.Hull)

	for _, lightID := range s.VisibleLight {
		l := s.light(lightID)
		if l == nil {
			continue
		}
		s.NearClipVolume[lightID] = frustum.NearClipVolume(fr, l.Vector)
		s.LightScissor[lightID] = LightScissor(ctx, l)

		caster := frustum.ShadowCasterVolume(fr, l.Vector)
		s.collectShadowCasters(ctx, fr, caster, l, shadowFlagged)
	}
}

// walkVisible traverses tree, appending every contained object id to
// VisibleObject (or FinalPassObject for particle-system/billboard/
// light-halo objects) and every light id to VisibleLight. A nil tree (an octree that
// was never built, e.g. CreateOctrees not yet called) is a no-op.
func (s *Scene) walkVisible(tree *octree.FastOctree, hull *bounds.ConvexHull) {
	if tree == nil {
		return
	}
	tree.Walk(
		func(b octree.NodeBounds) int {
			// bounds.Verdict's ordinals (Outside=0, PartiallyInside=1,
			// CompletelyInside=2, CompletelyEncloses=3) are defined to line
			// up with octree's own internal verdict ints, so a plain
			// conversion is valid here without octree needing to import
			// bounds.Verdict itself.
			v := bounds.QueryIntersection(bounds.FromSphere(b.Sphere), hull)
			if v == bounds.PartiallyInside && !bounds.IntersectsAABBConvexHull(b.AABB, hull) {
				return int(bounds.Outside)
			}
			return int(v)
		},
		func(id uint32, completely bool) {
			entityID, kind := octree.DecodeID(id)
			if kind == octree.EntityLight {
				s.VisibleLight = append(s.VisibleLight, entityID)
				return
			}
			o := s.object(entityID)
			if o == nil || o.Flags.Has(ObjectHidden) {
				return
			}
			if !completely && !s.objectVisible(o, hull) {
				return
			}
			if o.Flags.Has(ObjectParticleSystem) || o.Flags.Has(ObjectBillboard) || o.Flags.Has(ObjectLightHalo) {
				s.FinalPassObject = append(s.FinalPassObject, entityID)
				return
			}
			s.VisibleObject = append(s.VisibleObject, entityID)
		},
	)
}

// objectVisible tests o's preferred bounding volume (per its Model's
// BoundsFlags, §3) against hull, used when the containing octree node was
// only PartiallyInside and a per-entity test is required.
func (s *Scene) objectVisible(o *Object, hull *bounds.ConvexHull) bool {
	if o.Model == nil {
		return bounds.IntersectsSphereConvexHull(o.Sphere, hull)
	}
	switch {
	case o.Model.BoundsFlags.Has(PreferSpecial) && !o.Model.Special.IsEmpty():
		return bounds.Intersects(o.Model.Special, hull)
	case o.Model.BoundsFlags.Has(PreferAABB):
		return bounds.IntersectsAABBConvexHull(o.AABB, hull)
	case o.Model.BoundsFlags.Has(PreferBoxLineSegment):
		return bounds.IntersectsBoxConvexHull(o.Box, hull)
	default:
		return bounds.IntersectsSphereConvexHull(o.Sphere, hull)
	}
}

// collectShadowCasters implements §4.5 step 3's inner loop: every
// shadow-casting object whose sphere intersects caster and hasn't already
// been flagged this frame gets its ShadowVolume fetched or computed, and
// — if that volume actually reaches the frustum — appended to
// ShadowCasterObject with its own geometry scissor.
func (s *Scene) collectShadowCasters(ctx *FrameContext, fr *frustum.Frustum, caster *bounds.ConvexHull, l *Light, flagged []bool) {
	for i := range s.objects {
		o := &s.objects[i]
		if !o.exists || o.Flags.Has(ObjectHidden) || !o.Flags.Has(ObjectCastShadows) {
			continue
		}
		if int(o.ID) >= len(flagged) || flagged[o.ID] {
			continue
		}
		if !bounds.IntersectsSphereConvexHull(o.Sphere, caster) {
			continue
		}

		v := s.shadowVolumeFor(o, l)
		if v.IsEmpty() {
			continue
		}
		if v.Kind != bounds.Everywhere && !bounds.Intersects(v, fr.Hull) {
			continue
		}

		flagged[o.ID] = true
		s.ShadowCasterObject = append(s.ShadowCasterObject, o.ID)
		s.ShadowScissor[o.ID] = ShadowVolumeScissor(ctx.Views.ViewProjection, fr.Hull.Plane[0], ctx.Params.FarD, v)
	}
}

// shadowVolumeFor fetches o's cached static shadow volume for l if one was
// precomputed and is still current, otherwise constructs it fresh — the
// dynamic-pair path described in §4.4's caching note.
func (s *Scene) shadowVolumeFor(o *Object, l *Light) bounds.Volume {
	if v, ok := o.ShadowCache.Lookup(l.ID, o.MostRecentTransformationChange); ok {
		return v
	}
	return shadowvolume.Construct(o.Sphere, &o.Box, toShadowLight(l))
}

// LightScissor derives the screen-space scissor rectangle for l (§4.3):
// the analytic tangent-plane construction for point lights, the bounding-
// cylinder approximation for spot/beam lights, and the full-viewport
// Undefined state for directional lights (whose influence is, by
// definition, the entire frustum).
func LightScissor(ctx *FrameContext, l *Light) frustum.Scissor {
	switch l.Type {
	case LightPointSource:
		return frustum.PointLightScissor(ctx.Views.View, ctx.Params, l.Sphere)
	case LightBeam:
		if l.Cylinder == nil {
			return frustum.Scissor{State: frustum.ScissorUndefined}
		}
		p0, p1 := l.Cylinder.Endpoints()
		return frustum.CylinderLightScissor(ctx.Views.ViewProjection, [2]mgl32.Vec3{p0, p1}, l.Cylinder.Radius)
	case LightSpot:
		if l.SphericalSector == nil {
			return frustum.Scissor{State: frustum.ScissorUndefined}
		}
		sector := l.SphericalSector
		end := sector.Center.Add(sector.Axis.Mul(sector.Radius))
		radius := sector.Radius * sector.SinHalfAngularSize
		return frustum.CylinderLightScissor(ctx.Views.ViewProjection, [2]mgl32.Vec3{sector.Center, end}, radius)
	default:
		return frustum.Scissor{State: frustum.ScissorUndefined}
	}
}

// ShadowVolumeScissor derives the screen-space geometry scissor for v
// (§4.3's "geometry scissor routine"), dispatching on v.Kind: the exact
// near-plane-clipped polygon path for the two polygonal shadow-volume
// shapes (Pyramid, PyramidCone), and a bounding-cylinder approximation for
// the curved shapes (HalfCylinder, Cylinder, SphericalSector), mirroring
// the approximation LightScissor already uses for spot/beam light volumes.
// Everywhere and Empty map directly to Undefined/Empty scissor states.
func ShadowVolumeScissor(viewProj mgl32.Mat4, nearPlane mgl32.Vec4, farD float32, v bounds.Volume) frustum.Scissor {
	gs := &frustum.GeometryScissor{}
	switch v.Kind {
	case bounds.Empty:
		return frustum.Scissor{State: frustum.ScissorEmpty}
	case bounds.Everywhere:
		return frustum.Scissor{State: frustum.ScissorUndefined}
	case bounds.KindPyramid:
		gs.UpdateWithWorldSpaceBoundingHull(viewProj, nearPlane, v.Pyramid.Vertices, true)
	case bounds.KindPyramidCone:
		gs.UpdateWithWorldSpaceBoundingHull(viewProj, nearPlane, v.PyramidCone.Vertices, true)
	case bounds.KindHalfCylinder:
		far := v.HalfCylinder.Endpoint.Add(v.HalfCylinder.Axis.Mul(farD))
		return frustum.CylinderLightScissor(viewProj, [2]mgl32.Vec3{v.HalfCylinder.Endpoint, far}, v.HalfCylinder.Radius)
	case bounds.KindCylinder:
		p0, p1 := v.Cylinder.Endpoints()
		return frustum.CylinderLightScissor(viewProj, [2]mgl32.Vec3{p0, p1}, v.Cylinder.Radius)
	case bounds.KindSphericalSector:
		end := v.SphericalSector.Center.Add(v.SphericalSector.Axis.Mul(v.SphericalSector.Radius))
		radius := v.SphericalSector.Radius * v.SphericalSector.SinHalfAngularSize
		return frustum.CylinderLightScissor(viewProj, [2]mgl32.Vec3{v.SphericalSector.Center, end}, radius)
	default:
		return frustum.Scissor{State: frustum.ScissorUndefined}
	}
	return gs.State
}

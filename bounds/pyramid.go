package bounds

import "github.com/go-gl/mathgl/mgl32"

// Pyramid is a dynamic-n shadow-volume shape: Vertices[0] is the apex
// (typically the light position), Vertices[1:] are the base polygon
// vertices, and BaseNormal is the outward normal of the base plane.
type Pyramid struct {
	Vertices   []mgl32.Vec3
	BaseNormal mgl32.Vec3
}

// VertexList exposes the full vertex list, matching Box.Vertices and
// Pyramid's role as a near-plane-clippable hull in the geometry scissor
// routine (supplemented from bounding_volume.cpp's ConstructVertices).
func (p *Pyramid) VertexList() []mgl32.Vec3 { return p.Vertices }

// Apex returns the pyramid's apex vertex.
func (p *Pyramid) Apex() mgl32.Vec3 { return p.Vertices[0] }

// Base returns the base polygon vertices (everything after the apex).
func (p *Pyramid) Base() []mgl32.Vec3 { return p.Vertices[1:] }

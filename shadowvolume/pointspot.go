package shadowvolume

import (
	"github.com/gekko3d/sre/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

const nearNinetyEpsilon = 1e-3

// ConstructPointOrSpot builds the point/spot-light shadow volume for box:
// the box's silhouette as seen from light, turned into a PyramidCone whose
// base vertices are the silhouette corners rescaled to a common edge
// length, or a SphericalSector fallback when that cone's edges would exceed
// a 90-degree angle from its axis.
func ConstructPointOrSpot(box *bounds.Box, light mgl32.Vec3) bounds.Volume {
	if box.FlatNormal != nil {
		d := box.FlatNormal.Dot(light.Sub(box.Center))
		if absf32(d) < 1e-6 {
			return bounds.Volume{Kind: bounds.Empty}
		}
	}
	if lightInsideBox(box, light) {
		return bounds.Volume{Kind: bounds.Everywhere}
	}

	verts := box.Vertices()
	silhouette := silhouetteVertices(box, light, verts)
	if len(silhouette) == 0 {
		return bounds.Volume{Kind: bounds.Everywhere}
	}

	primary := box.Center.Sub(light)
	if primary.Len() == 0 {
		return bounds.Volume{Kind: bounds.Everywhere}
	}
	primary = primary.Normalize()

	vol, ok := buildPyramidConeOrSector(light, silhouette, primary)
	if ok {
		return vol
	}

	// Corner case: an edge landed near exactly 90 degrees from the primary
	// axis. Retry with the box's narrowest PCA direction before giving up.
	alt := narrowestPCADirection(box)
	vol, ok = buildPyramidConeOrSector(light, silhouette, alt)
	if ok {
		return vol
	}
	return bounds.Volume{Kind: bounds.Everywhere}
}

func lightInsideBox(box *bounds.Box, light mgl32.Vec3) bool {
	for _, p := range box.Plane {
		if bounds.PlaneDot(p, light) < 0 {
			return false
		}
	}
	return true
}

// silhouetteVertices returns the box corners touched by any plane the light
// is on the outside of (dot < 0), i.e. the faces that face away from the
// light and therefore bound its silhouette.
func silhouetteVertices(box *bounds.Box, light mgl32.Vec3, verts []mgl32.Vec3) []mgl32.Vec3 {
	include := make(map[int]bool)
	for planeIdx, p := range box.Plane {
		if bounds.PlaneDot(p, light) >= 0 {
			continue
		}
		axis := planeIdx / 2
		wantBit := planeIdx%2 == 0 // even plane index -> the +axis face (bit set) is the one facing away from light
		for vi := 0; vi < 8; vi++ {
			bitSet := vi&(1<<uint(axis)) != 0
			if bitSet == wantBit {
				include[vi] = true
			}
		}
	}
	out := make([]mgl32.Vec3, 0, len(include))
	for vi := range include {
		out = append(out, verts[vi])
	}
	return out
}

// buildPyramidConeOrSector rescales every silhouette vertex's edge from
// light to a common length (the farthest one, enclosing the true
// silhouette), then checks whether every such edge is within 90 degrees of
// axis. If so, it returns a PyramidCone (exact for uniform edge length); if
// not and the widest edge does not sit within nearNinetyEpsilon of exactly
// 90 degrees, it
// falls back to a SphericalSector built from the same axis/radius/angle
// (the general >=90-degree case). ok is false only for the ambiguous
// near-90-degree corner case, signalling the caller should retry with a
// different axis.
func buildPyramidConeOrSector(light mgl32.Vec3, silhouette []mgl32.Vec3, axis mgl32.Vec3) (bounds.Volume, bool) {
	radius := float32(0)
	dirs := make([]mgl32.Vec3, len(silhouette))
	for i, v := range silhouette {
		edge := v.Sub(light)
		l := edge.Len()
		if l > radius {
			radius = l
		}
		if l > 0 {
			dirs[i] = edge.Mul(1 / l)
		}
	}
	if radius == 0 {
		return bounds.Volume{Kind: bounds.Everywhere}, true
	}

	minCos := float32(2)
	for _, d := range dirs {
		cos := axis.Dot(d)
		if cos < minCos {
			minCos = cos
		}
	}

	if absf32(minCos) < nearNinetyEpsilon {
		return bounds.Volume{}, false
	}

	if minCos > 0 {
		verts := make([]mgl32.Vec3, 0, len(dirs)+1)
		verts = append(verts, light)
		for _, d := range dirs {
			verts = append(verts, light.Add(d.Mul(radius)))
		}
		return bounds.FromPyramidCone(&bounds.PyramidCone{
			Vertices:           verts,
			Axis:               axis,
			Radius:             radius,
			CosHalfAngularSize: minCos,
		}), true
	}

	sector := bounds.NewSphericalSector(light, axis, radius, minCos)
	return bounds.FromSphericalSector(sector), true
}

func narrowestPCADirection(box *bounds.Box) mgl32.Vec3 {
	best := 0
	for i := 1; i < 3; i++ {
		if box.PCA[i].Size < box.PCA[best].Size {
			best = i
		}
	}
	return box.PCA[best].Direction
}

func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

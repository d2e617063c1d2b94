package shadowvolume

import (
	"github.com/gekko3d/sre/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

// ConstructBeam builds the Cylinder shadow volume a beam light casts,
// or Empty if the object's sphere doesn't overlap the beam's length along
// its axis at all (property 5 / scenario S3).
func ConstructBeam(sphere bounds.Sphere, lightPos, axis mgl32.Vec3, beamLength float32) bounds.Volume {
	d := axis.Dot(sphere.Center.Sub(lightPos))
	r := sphere.Radius
	if d <= -r || d >= beamLength+r {
		return bounds.Volume{Kind: bounds.Empty}
	}

	start := d - r
	if start < 0 {
		start = 0
	}
	center := lightPos.Add(axis.Mul(start))
	length := beamLength - start
	return bounds.FromCylinder(bounds.NewCylinder(center, length, axis, r))
}

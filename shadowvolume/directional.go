package shadowvolume

import (
	"github.com/gekko3d/sre/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

// ConstructDirectional builds the HalfCylinder a directional light casts
// from an object's bounding sphere: exact for spheres, conservative for any
// other object geometry. endpoint sits on the near side of the sphere
// (toward the light), axis points away from the light along lightDir.
func ConstructDirectional(sphere bounds.Sphere, lightDir mgl32.Vec3) bounds.Volume {
	endpoint := sphere.Center.Sub(lightDir.Mul(sphere.Radius))
	return bounds.FromHalfCylinder(bounds.HalfCylinder{
		Endpoint: endpoint,
		Axis:     lightDir,
		Radius:   sphere.Radius,
	})
}

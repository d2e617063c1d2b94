package bounds

import "github.com/go-gl/mathgl/mgl32"

// PyramidCone is the tighter shadow-volume variant used when every
// apex-to-base edge has equal length (Radius): it permits an un-normalised
// dot-product angle test instead of per-edge normalisation.
//
// Invariant: all edges from Vertices[0] to Vertices[1:] have length
// Radius.
type PyramidCone struct {
	Vertices           []mgl32.Vec3
	Axis               mgl32.Vec3
	Radius             float32
	CosHalfAngularSize float32
}

func (p *PyramidCone) Apex() mgl32.Vec3 { return p.Vertices[0] }
func (p *PyramidCone) Base() []mgl32.Vec3 { return p.Vertices[1:] }

// MinEdgeCosAngle recomputes min_i cos(angle(Axis, Vertices[i]-Vertices[0]))
// directly from the stored vertices; used by the property test asserting
// it equals CosHalfAngularSize.
func (p *PyramidCone) MinEdgeCosAngle() float32 {
	apex := p.Apex()
	min := float32(2) // cos is always <= 1
	for _, v := range p.Base() {
		edge := v.Sub(apex)
		if edge.Len() == 0 {
			continue
		}
		cos := p.Axis.Dot(edge) / p.Radius
		if cos < min {
			min = cos
		}
	}
	return min
}

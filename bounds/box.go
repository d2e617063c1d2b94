package bounds

import "github.com/go-gl/mathgl/mgl32"

// BoxFlags records cheap-to-test properties of an oriented Box computed
// once, at octree-build or model-prepare time, and consulted repeatedly by
// the intersection library.
type BoxFlags uint8

const (
	// IsAxisAligned is set for a static, AABB-preferring object whose
	// rotation preserves axis alignment after the octree build.
	IsAxisAligned BoxFlags = 1 << iota
	// PreferBoxLineSegment selects the line-segment-clip box/convex-hull
	// test over the standard radius-projection test; better for
	// elongated boxes such as beams or corridors.
	PreferBoxLineSegment
)

func (f BoxFlags) Has(bit BoxFlags) bool { return f&bit != 0 }

// PCAAxis is one of a Box's three principal-component axes: a unit
// direction with a half-extent (Size) and its precomputed reciprocal
// (ScaleFactor), avoiding a division on every projection test.
type PCAAxis struct {
	Direction   mgl32.Vec3
	Size        float32
	ScaleFactor float32
}

func NewPCAAxis(direction mgl32.Vec3, size float32) PCAAxis {
	scale := float32(0)
	if size != 0 {
		scale = 1.0 / size
	}
	return PCAAxis{Direction: direction, Size: size, ScaleFactor: scale}
}

// Box is an oriented bounding box described by its center and three
// principal-component axes. A flat box (PCA[2].Size == 0, e.g. a ground
// plane or billboard quad) stores FlatNormal instead of a usable third
// axis direction, mirroring the source's T_normal special case.
type Box struct {
	Center     mgl32.Vec3
	PCA        [3]PCAAxis
	Plane      [6]mgl32.Vec4
	FlatNormal *mgl32.Vec3
	Flags      BoxFlags
}

// NewBox builds a Box from its center and three PCA axes, deriving the six
// inward-pointing face planes. If the third axis has zero size, FlatNormal
// is set from the cross product of the other two.
func NewBox(center mgl32.Vec3, pca [3]PCAAxis) Box {
	b := Box{Center: center, PCA: pca}
	if pca[2].Size == 0 {
		n := pca[0].Direction.Cross(pca[1].Direction).Normalize()
		b.FlatNormal = &n
	}
	for i := 0; i < 3; i++ {
		n := pca[i].Direction
		d := -n.Dot(center) + pca[i].Size
		b.Plane[2*i] = mgl32.Vec4{n[0], n[1], n[2], d}
		negN := n.Mul(-1)
		d2 := -negN.Dot(center) + pca[i].Size
		b.Plane[2*i+1] = mgl32.Vec4{negN[0], negN[1], negN[2], d2}
	}
	return b
}

// Vertices returns the box's 8 world-space corners in the fixed
// bit-ordering (bit0 = +PCA[0], bit1 = +PCA[1], bit2 = +PCA[2]) that the
// geometry-scissor clipper expects. Supplemented from the original's
// ConstructVertices (bounding_volume.cpp) since the distilled spec only
// mentions the need for it, not its layout.
func (b Box) Vertices() []mgl32.Vec3 {
	verts := make([]mgl32.Vec3, 8)
	for i := 0; i < 8; i++ {
		p := b.Center
		for axis := 0; axis < 3; axis++ {
			sign := float32(-1)
			if i&(1<<axis) != 0 {
				sign = 1
			}
			p = p.Add(b.PCA[axis].Direction.Mul(sign * b.PCA[axis].Size))
		}
		verts[i] = p
	}
	return verts
}

// EffectiveRadius returns the projection of the box's half-extents onto
// normal, i.e. sum_i |dot(PCA[i].Direction, normal)| * PCA[i].Size. This is
// the r_eff used by the standard (non-line-segment) box/convex-hull test.
func (b Box) EffectiveRadius(normal mgl32.Vec3) float32 {
	var r float32
	for i := 0; i < 3; i++ {
		r += absf(b.PCA[i].Direction.Dot(normal)) * b.PCA[i].Size
	}
	return r
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

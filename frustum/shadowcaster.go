package frustum

import (
	"github.com/gekko3d/sre/bounds"
	"github.com/go-gl/mathgl/mgl32"
)

// adjacentPlane lists, for each of the 5 HullNoFar planes (near + 4 sides in
// the order built by New: near, left, right, bottom, top), the indices of
// the planes adjacent to it (sharing an edge), mirroring the source's
// adjacent_plane[12] table restricted to the 5-plane no-far frustum. The
// near plane touches all 4 sides; each side touches the near plane plus the
// two sides it isn't opposite to.
var adjacentPlane = [5][]int{
	{1, 2, 3, 4}, // near
	{0, 3, 4},    // left
	{0, 3, 4},    // right
	{0, 1, 2},    // bottom
	{0, 1, 2},    // top
}

// ShadowCasterVolume builds the convex hull enclosing the view frustum and
// the light: any object entirely outside it cannot cast a shadow into the
// visible frustum. If a point light lies inside the frustum, the frustum's
// own 5 no-far planes already enclose both and are returned directly.
func ShadowCasterVolume(f *Frustum, lightPos mgl32.Vec4) *bounds.ConvexHull {
	lightPoint := mgl32.Vec3{lightPos[0], lightPos[1], lightPos[2]}
	isPointLight := lightPos[3] != 0
	if isPointLight {
		lightPoint = lightPoint.Mul(1.0 / lightPos[3])
		if insideHull(f.HullNoFar, lightPoint) {
			return f.HullNoFar
		}
	}

	noFar := f.HullNoFar.Plane
	dot := make([]float32, len(noFar))
	for i, p := range noFar {
		if isPointLight {
			dot[i] = bounds.PlaneDot(p, lightPoint)
		} else {
			// Directional light: use the plane normal dotted with the
			// (reversed) light direction, since there is no finite position.
			dir := mgl32.Vec3{lightPos[0], lightPos[1], lightPos[2]}
			dot[i] = p[0]*(-dir[0]) + p[1]*(-dir[1]) + p[2]*(-dir[2])
		}
	}

	var planes []mgl32.Vec4
	anyQualified := false
	for i, d := range dot {
		if d > 0 {
			planes = append(planes, noFar[i])
			anyQualified = true
		}
	}

	for i := range noFar {
		for _, j := range adjacentPlane[i] {
			if j <= i {
				continue
			}
			if (dot[i] > 0) != (dot[j] > 0) {
				var newPlane mgl32.Vec4
				if isPointLight {
					newPlane = edgePlaneThroughPoint(f, i, j, lightPoint)
				} else {
					dir := mgl32.Vec3{lightPos[0], lightPos[1], lightPos[2]}
					newPlane = edgePlaneParallelToDirection(f, i, j, dir)
				}
				planes = append(planes, bounds.OrientPlaneTowardsPoint(newPlane, f.Sphere.Center))
			}
		}
	}

	if !anyQualified && isPointLight {
		// Degenerate case: light is a point light entirely behind the
		// camera with no qualifying frustum plane. Emit 4 planes parallel
		// to the frustum sides but translated to contain the light.
		planes = planes[:0]
		for _, p := range noFar[1:] {
			n := mgl32.Vec3{p[0], p[1], p[2]}
			d := -n.Dot(lightPoint)
			planes = append(planes, mgl32.Vec4{n[0], n[1], n[2], d})
		}
	}

	return &bounds.ConvexHull{Plane: planes}
}

func insideHull(h *bounds.ConvexHull, point mgl32.Vec3) bool {
	for _, p := range h.Plane {
		if bounds.PlaneDot(p, point) < 0 {
			return false
		}
	}
	return true
}

// edgePlaneThroughPoint builds a plane through the shared edge of frustum
// planes i and j (approximated by the pair of frustum corners common to
// both, taken from the near-rectangle corners which is exact for the 4 side
// planes adjacent to the near plane) and the light.
func edgePlaneThroughPoint(f *Frustum, i, j int, point mgl32.Vec3) mgl32.Vec4 {
	a, b := sharedEdge(f, i, j)
	return bounds.PlaneFromPoints(a, b, point, f.Sphere.Center)
}

func edgePlaneParallelToDirection(f *Frustum, i, j int, dir mgl32.Vec3) mgl32.Vec4 {
	a, b := sharedEdge(f, i, j)
	far := a.Add(dir)
	return bounds.PlaneFromPoints(a, b, far, f.Sphere.Center)
}

// sharedEdge returns the two frustum corners shared by the side planes
// indexed i,j in the near/left/right/bottom/top ordering New builds.
func sharedEdge(f *Frustum, i, j int) (mgl32.Vec3, mgl32.Vec3) {
	edges := map[[2]int][2]int{
		{0, 1}: {cornerNearTL, cornerNearBL},
		{0, 2}: {cornerNearBR, cornerNearTR},
		{0, 3}: {cornerNearBL, cornerNearBR},
		{0, 4}: {cornerNearTR, cornerNearTL},
		{1, 3}: {cornerNearBL, cornerFarBL},
		{2, 4}: {cornerNearTR, cornerFarTR},
		{1, 4}: {cornerNearTL, cornerFarTL},
		{2, 3}: {cornerNearBR, cornerFarBR},
	}
	key := [2]int{i, j}
	if i > j {
		key = [2]int{j, i}
	}
	c, ok := edges[key]
	if !ok {
		return f.Corners[cornerNearBL], f.Corners[cornerFarBL]
	}
	return f.Corners[c[0]], f.Corners[c[1]]
}

package picking

import (
	gomath "math"

	"github.com/Faultbox/scenepick/pkg/math"
)

// float32Epsilon is the machine epsilon of float32 (2^-23).
const float32Epsilon = 0x1p-23

// Triangle is a mesh face.
type Triangle struct {
	V0, V1, V2 math.Vec3
}

// Normal returns the unnormalized face normal (v1-v0) x (v2-v0).
func (tri Triangle) Normal() math.Vec3 {
	return tri.V1.Sub(tri.V0).Cross(tri.V2.Sub(tri.V0))
}

// Intersect tests the ray against the triangle. Unlike Quad.Intersect the
// test is bounded only at the origin: any t >= 0 counts, including hits
// beyond the far point. Both faces of the triangle are pickable.
func (tri Triangle) Intersect(ray Ray) (t float32, hit bool) {
	n := tri.Normal()

	nDotDir := n.Dot(ray.Direction)
	if gomath.Abs(float64(nDotDir)) < float32Epsilon {
		// Parallel to the plane
		return 0, false
	}

	d := -n.Dot(tri.V0)
	t = -(n.Dot(ray.Origin) + d) / nDotDir
	if t < 0 {
		return 0, false
	}

	p := ray.At(t)

	// P must lie on the inner side of every edge.
	edges := [3][2]math.Vec3{
		{tri.V0, tri.V1},
		{tri.V1, tri.V2},
		{tri.V2, tri.V0},
	}
	for _, e := range edges {
		c := e[1].Sub(e[0]).Cross(p.Sub(e[0]))
		if n.Dot(c) < 0 {
			return 0, false
		}
	}

	return t, true
}

// Bounds returns the axis-aligned box around the triangle.
func (tri Triangle) Bounds() AABB {
	return NewAABBFromPoints(tri.V0, tri.V1, tri.V2)
}

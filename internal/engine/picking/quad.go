package picking

import (
	"github.com/Faultbox/scenepick/pkg/math"
)

// Quad is a bounded planar face spanned by two edges from Origin.
// Normal must point to the front side; only its direction matters.
// Origin, EdgeA, EdgeB and Normal must describe a non-degenerate face.
type Quad struct {
	Origin math.Vec3
	EdgeA  math.Vec3
	EdgeB  math.Vec3
	Normal math.Vec3
}

// axisPair selects two coordinate rows of the 3x2 edge system.
type axisPair struct {
	i, j int
}

// Rows tried in order when decomposing a point into edge coordinates.
// A face lying in a coordinate plane makes some pairs singular, but one
// pair is always solvable for a non-degenerate quad.
var axisPairs = [3]axisPair{{0, 1}, {0, 2}, {1, 2}}

// localCoords expresses rhs as x*edgeA + y*edgeB using the first axis pair
// whose 2x2 system is solvable. pair is the index into axisPairs that was
// used, or -1 when all three are singular.
func localCoords(edgeA, edgeB, rhs math.Vec3) (x, y float64, pair int, ok bool) {
	for n, p := range axisPairs {
		x, y, ok = math.Solve2x2(
			float64(edgeA.Axis(p.i)), float64(edgeA.Axis(p.j)),
			float64(edgeB.Axis(p.i)), float64(edgeB.Axis(p.j)),
			float64(rhs.Axis(p.i)), float64(rhs.Axis(p.j)),
		)
		if ok {
			return x, y, n, true
		}
	}
	return 0, 0, -1, false
}

// Intersect tests the ray segment against the front side of the quad.
// Hits are accepted for t in [0, 1] and strictly inside the face; points
// on an edge are rejected.
func (q Quad) Intersect(ray Ray) (t float32, hit bool) {
	denom := ray.Direction.Dot(q.Normal)

	// cos(angle) has the sign of denom. Rays arriving from behind or
	// running parallel to the face never hit.
	if denom >= 0 {
		return 0, false
	}

	t = q.Origin.Sub(ray.Origin).Dot(q.Normal) / denom
	if t < 0 || t > 1 {
		return 0, false
	}

	rhs := ray.At(t).Sub(q.Origin)

	// The first solvable pair decides; a failed bounds check does not
	// retry with another pair.
	x, y, _, ok := localCoords(q.EdgeA, q.EdgeB, rhs)
	if !ok {
		return 0, false
	}
	if x > 0 && x < 1 && y > 0 && y < 1 {
		return t, true
	}
	return 0, false
}

// Corners returns the four corners in winding order.
func (q Quad) Corners() [4]math.Vec3 {
	return [4]math.Vec3{
		q.Origin,
		q.Origin.Add(q.EdgeA),
		q.Origin.Add(q.EdgeA).Add(q.EdgeB),
		q.Origin.Add(q.EdgeB),
	}
}

// Bounds returns the axis-aligned box around the quad.
func (q Quad) Bounds() AABB {
	c := q.Corners()
	return NewAABBFromPoints(c[:]...)
}

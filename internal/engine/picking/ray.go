// Package picking resolves which box face or mesh triangle a pointer ray hits first.
package picking

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scenepick/pkg/math"
)

// ErrInvalidViewport is returned when the viewport has no area.
var ErrInvalidViewport = errors.New("viewport must have positive width and height")

// Ray is a pick segment. Points on it are Origin + t*Direction; Direction
// is not normalized, so t=0 is the near point and t=1 the far point.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// NewSegmentRay creates the ray running from near to far.
func NewSegmentRay(near, far math.Vec3) Ray {
	return Ray{Origin: near, Direction: far.Sub(near)}
}

// At returns the point at parameter t.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts pointer coordinates to a world-space pick segment.
// x, y are pixel coordinates with the origin at the top-left corner, width
// and height are the viewport dimensions. The pointer is unprojected on the
// near (depth 0) and far (depth 1) planes.
func ScreenToRay(x, y, width, height float32, view, proj mgl32.Mat4) (Ray, error) {
	if width <= 0 || height <= 0 {
		return Ray{}, ErrInvalidViewport
	}

	w := int(gomath.Round(float64(width)))
	h := int(gomath.Round(float64(height)))

	// Window coordinates grow upwards
	winY := height - y

	near, err := mgl32.UnProject(mgl32.Vec3{x, winY, 0}, view, proj, 0, 0, w, h)
	if err != nil {
		return Ray{}, fmt.Errorf("unprojecting near point: %w", err)
	}
	far, err := mgl32.UnProject(mgl32.Vec3{x, winY, 1}, view, proj, 0, 0, w, h)
	if err != nil {
		return Ray{}, fmt.Errorf("unprojecting far point: %w", err)
	}

	return NewSegmentRay(math.FromMgl(near), math.FromMgl(far)), nil
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABBFromPoints returns the smallest box containing all points.
func NewAABBFromPoints(points ...math.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box
}

// Union returns a box enclosing both boxes.
func (b AABB) Union(other AABB) AABB {
	return AABB{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Expand grows the box by pad on every side.
func (b AABB) Expand(pad float32) AABB {
	p := math.Vec3{X: pad, Y: pad, Z: pad}
	return AABB{Min: b.Min.Sub(p), Max: b.Max.Add(p)}
}

// clip runs the slab test and returns the parameter interval of the ray
// line inside the box. ok is false when the line misses the box.
func (r Ray) clip(box AABB) (tmin, tmax float32, ok bool) {
	tmin = float32(-gomath.MaxFloat32)
	tmax = float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o := r.Origin.Axis(axis)
		d := r.Direction.Axis(axis)
		lo := box.Min.Axis(axis)
		hi := box.Max.Axis(axis)

		if d == 0 {
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin {
		return 0, 0, false
	}
	return tmin, tmax, true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin, tmax, ok := r.clip(box)
	if !ok || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

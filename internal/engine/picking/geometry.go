package picking

import (
	"errors"
	"fmt"

	"github.com/Faultbox/scenepick/pkg/math"
)

// ErrInvalidIndices is returned for index lists that do not describe triangles.
var ErrInvalidIndices = errors.New("invalid triangle indices")

// Object is a pickable scene element made of addressable faces.
// Objects must not change while a pick over them is in progress.
type Object interface {
	// ID identifies the object in pick results.
	ID() uint32
	// FaceCount returns the number of faces; face ids run from 0 to FaceCount()-1.
	FaceCount() int
	// IntersectFace tests the ray against a single face.
	IntersectFace(face int, ray Ray) (t float32, hit bool)
	// Bounds returns a box enclosing every face.
	Bounds() AABB
}

// Geometry is a collection of pickable objects, iterated in order.
type Geometry interface {
	Objects() []Object
}

// Objects adapts a slice to Geometry.
type Objects []Object

// Objects returns the slice itself.
func (o Objects) Objects() []Object {
	return o
}

// Box face ids.
const (
	FaceFront  = iota // +Z
	FaceBack          // -Z
	FaceRight         // +X
	FaceLeft          // -X
	FaceTop           // +Y
	FaceBottom        // -Y

	BoxFaceCount
)

// Box is an axis-aligned box exposing six outward-facing quads.
type Box struct {
	id          uint32
	Center      math.Vec3
	HalfExtents math.Vec3
	faces       [BoxFaceCount]Quad
	bounds      AABB
}

// NewBox creates a box around center. halfExtents are half the size on each
// axis, so (1,1,1) creates a 2x2x2 box.
func NewBox(id uint32, center, halfExtents math.Vec3) *Box {
	b := &Box{
		id:          id,
		Center:      center,
		HalfExtents: halfExtents,
	}
	b.generateFaces()
	return b
}

// generateFaces builds the six faces from the eight corners.
func (b *Box) generateFaces() {
	corners := [8]math.Vec3{
		{X: -1, Y: -1, Z: -1}, // 0: left-bottom-back
		{X: 1, Y: -1, Z: -1},  // 1: right-bottom-back
		{X: 1, Y: 1, Z: -1},   // 2: right-top-back
		{X: -1, Y: 1, Z: -1},  // 3: left-top-back
		{X: -1, Y: -1, Z: 1},  // 4: left-bottom-front
		{X: 1, Y: -1, Z: 1},   // 5: right-bottom-front
		{X: 1, Y: 1, Z: 1},    // 6: right-top-front
		{X: -1, Y: 1, Z: 1},   // 7: left-top-front
	}
	for i := range corners {
		corners[i] = corners[i].Mul(b.HalfExtents).Add(b.Center)
	}

	face := func(origin, a, bb int, normal math.Vec3) Quad {
		return Quad{
			Origin: corners[origin],
			EdgeA:  corners[a].Sub(corners[origin]),
			EdgeB:  corners[bb].Sub(corners[origin]),
			Normal: normal,
		}
	}

	b.faces[FaceFront] = face(4, 5, 7, math.V3(0, 0, 1))
	b.faces[FaceBack] = face(1, 0, 2, math.V3(0, 0, -1))
	b.faces[FaceRight] = face(5, 1, 6, math.V3(1, 0, 0))
	b.faces[FaceLeft] = face(0, 4, 3, math.V3(-1, 0, 0))
	b.faces[FaceTop] = face(3, 7, 2, math.V3(0, 1, 0))
	b.faces[FaceBottom] = face(4, 0, 5, math.V3(0, -1, 0))

	b.bounds = NewAABBFromPoints(corners[:]...)
}

// ID implements Object.
func (b *Box) ID() uint32 { return b.id }

// FaceCount implements Object; boxes always have six faces.
func (b *Box) FaceCount() int { return BoxFaceCount }

// Face returns the quad for a face id.
func (b *Box) Face(face int) Quad { return b.faces[face] }

// IntersectFace implements Object.
func (b *Box) IntersectFace(face int, ray Ray) (float32, bool) {
	return b.faces[face].Intersect(ray)
}

// Bounds implements Object.
func (b *Box) Bounds() AABB { return b.bounds }

// Mesh is an append-only list of triangles; face ids are triangle indices.
type Mesh struct {
	id        uint32
	triangles []Triangle
	bounds    AABB
}

// NewMesh creates an empty mesh.
func NewMesh(id uint32) *Mesh {
	return &Mesh{id: id}
}

// NewIndexedMesh builds a mesh from a vertex list and zero-based triangle indices.
func NewIndexedMesh(id uint32, vertices []math.Vec3, indices []int) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: count %d is not a multiple of 3", ErrInvalidIndices, len(indices))
	}

	m := &Mesh{id: id, triangles: make([]Triangle, 0, len(indices)/3)}
	for i := 0; i < len(indices); i += 3 {
		var v [3]math.Vec3
		for k := 0; k < 3; k++ {
			idx := indices[i+k]
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("%w: index %d out of range (%d vertices)", ErrInvalidIndices, idx, len(vertices))
			}
			v[k] = vertices[idx]
		}
		m.Append(Triangle{V0: v[0], V1: v[1], V2: v[2]})
	}
	return m, nil
}

// Append adds a triangle; its face id is the previous triangle count.
func (m *Mesh) Append(tri Triangle) int {
	if len(m.triangles) == 0 {
		m.bounds = tri.Bounds()
	} else {
		m.bounds = m.bounds.Union(tri.Bounds())
	}
	m.triangles = append(m.triangles, tri)
	return len(m.triangles) - 1
}

// Triangle returns the triangle for a face id.
func (m *Mesh) Triangle(face int) Triangle { return m.triangles[face] }

// ID implements Object.
func (m *Mesh) ID() uint32 { return m.id }

// FaceCount implements Object.
func (m *Mesh) FaceCount() int { return len(m.triangles) }

// IntersectFace implements Object.
func (m *Mesh) IntersectFace(face int, ray Ray) (float32, bool) {
	return m.triangles[face].Intersect(ray)
}

// Bounds implements Object. An empty mesh has a zero box.
func (m *Mesh) Bounds() AABB { return m.bounds }

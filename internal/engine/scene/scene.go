// Package scene holds the pickable boxes and meshes of a view and keeps
// pick queries and highlight updates from overlapping.
package scene

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/scenepick/internal/engine/picking"
	"github.com/Faultbox/scenepick/pkg/math"
)

var (
	// ErrNoSelection is returned when highlighting a result without a hit.
	ErrNoSelection = errors.New("pick result has no selection")
	// ErrUnknownObject is returned for object ids not in the scene.
	ErrUnknownObject = errors.New("unknown object")
	// ErrUnknownFace is returned for face ids outside the object.
	ErrUnknownFace = errors.New("unknown face")
)

// Scene owns pickable objects and their per-face colors.
//
// Pick holds a read lock for the whole scan and Highlight a write lock,
// so colors never change while a pick is iterating.
type Scene struct {
	mu          sync.RWMutex
	objects     []picking.Object
	base        [][]Color
	colors      [][]Color
	highlighted uint32

	picker *picking.Picker
	log    *zap.Logger
}

// Option configures a Scene.
type Option func(*Scene)

// WithPicker sets the picker used by Pick.
func WithPicker(p *picking.Picker) Option {
	return func(s *Scene) {
		if p != nil {
			s.picker = p
		}
	}
}

// WithLogger sets the scene logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scene) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates an empty scene.
func New(opts ...Option) *Scene {
	s := &Scene{
		highlighted: picking.NoObject,
		picker:      picking.NewPicker(),
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// add registers an object built for the next id.
func (s *Scene) add(build func(id uint32) picking.Object, faceColor func(face int) Color) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uint32(len(s.objects))
	obj := build(id)

	base := make([]Color, obj.FaceCount())
	for i := range base {
		base[i] = faceColor(i)
	}

	s.objects = append(s.objects, obj)
	s.base = append(s.base, base)
	s.colors = append(s.colors, append([]Color(nil), base...))
	return id
}

// AddBox adds an axis-aligned box and returns its object id.
func (s *Scene) AddBox(center, halfExtents math.Vec3) uint32 {
	return s.add(
		func(id uint32) picking.Object { return picking.NewBox(id, center, halfExtents) },
		func(face int) Color { return boxPalette[face] },
	)
}

// AddBoxes adds every box spec in order and returns the assigned ids.
func (s *Scene) AddBoxes(specs []BoxSpec) []uint32 {
	ids := make([]uint32, len(specs))
	for i, b := range specs {
		ids[i] = s.AddBox(b.Center, b.HalfExtents)
	}
	return ids
}

// AddTriangles adds a mesh made of tris and returns its object id.
func (s *Scene) AddTriangles(tris []picking.Triangle) uint32 {
	return s.add(
		func(id uint32) picking.Object {
			m := picking.NewMesh(id)
			for _, tri := range tris {
				m.Append(tri)
			}
			return m
		},
		func(int) Color { return ColorMesh },
	)
}

// AddIndexedMesh adds a mesh from vertices and zero-based triangle indices.
func (s *Scene) AddIndexedMesh(vertices []math.Vec3, indices []int) (uint32, error) {
	// Validate before taking an id.
	m, err := picking.NewIndexedMesh(0, vertices, indices)
	if err != nil {
		return 0, err
	}
	tris := make([]picking.Triangle, m.FaceCount())
	for i := range tris {
		tris[i] = m.Triangle(i)
	}
	return s.AddTriangles(tris), nil
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Objects returns a snapshot of the scene's objects. Objects are never
// modified after being added, so the snapshot can be picked against
// without holding the scene lock.
func (s *Scene) Objects() []picking.Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]picking.Object(nil), s.objects...)
}

// Pick returns the closest face hit by ray.
func (s *Scene) Pick(ray picking.Ray) picking.Result {
	start := time.Now()

	s.mu.RLock()
	res, st := s.picker.Pick(ray, picking.Objects(s.objects))
	s.mu.RUnlock()

	elapsed := time.Since(start)
	if !res.Hit() {
		s.log.Debug("pick missed",
			zap.Int("faces", st.FacesTested),
			zap.Duration("elapsed", elapsed))
		return res
	}

	s.log.Info("pick successful",
		zap.Uint32("object", res.ObjectID),
		zap.Uint32("face", res.FaceID),
		zap.Float32("t", res.Distance),
		zap.Int("faces", st.FacesTested),
		zap.Int("skipped", st.ObjectsSkipped),
		zap.Duration("elapsed", elapsed))
	return res
}

// Highlight recolors the picked object: the hit face turns red and the
// remaining faces light gray. The previously highlighted object returns
// to its base colors. It returns the ids of objects whose colors changed.
func (s *Scene) Highlight(res picking.Result) ([]uint32, error) {
	if !res.Hit() {
		return nil, ErrNoSelection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if int64(res.ObjectID) >= int64(len(s.objects)) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownObject, res.ObjectID)
	}
	colors := s.colors[res.ObjectID]
	if int(res.FaceID) >= len(colors) {
		return nil, fmt.Errorf("%w: object %d face %d", ErrUnknownFace, res.ObjectID, res.FaceID)
	}

	var dirty []uint32
	if prev := s.highlighted; prev != picking.NoObject && prev != res.ObjectID {
		copy(s.colors[prev], s.base[prev])
		dirty = append(dirty, prev)
	}

	for i := range colors {
		colors[i] = ColorSelectedBox
	}
	colors[res.FaceID] = ColorSelectedFace
	s.highlighted = res.ObjectID
	dirty = append(dirty, res.ObjectID)

	s.log.Debug("highlighted",
		zap.Uint32("object", res.ObjectID),
		zap.Uint32("face", res.FaceID))
	return dirty, nil
}

// ClearHighlight restores the highlighted object's base colors.
// It returns the id of the restored object, or false if none was highlighted.
func (s *Scene) ClearHighlight() (uint32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.highlighted
	if prev == picking.NoObject {
		return 0, false
	}
	copy(s.colors[prev], s.base[prev])
	s.highlighted = picking.NoObject
	return prev, true
}

// Highlighted returns the highlighted object id, or picking.NoObject.
func (s *Scene) Highlighted() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highlighted
}

// FaceColors returns a copy of an object's current face colors.
func (s *Scene) FaceColors(id uint32) ([]Color, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if int64(id) >= int64(len(s.colors)) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownObject, id)
	}
	return append([]Color(nil), s.colors[id]...), nil
}

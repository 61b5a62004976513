package scene

import (
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/scenepick/internal/engine/picking"
	"github.com/Faultbox/scenepick/pkg/math"
)

// towardOrigin is a pick segment from (x, y, 10) to (x, y, -10).
func towardOrigin(x, y float32) picking.Ray {
	return picking.NewSegmentRay(math.V3(x, y, 10), math.V3(x, y, -10))
}

func TestScene_AddBox(t *testing.T) {
	s := New()
	a := s.AddBox(math.V3(0, 0, 0), math.V3(1, 1, 1))
	b := s.AddBox(math.V3(5, 0, 0), math.V3(1, 1, 1))

	if a != 0 || b != 1 {
		t.Errorf("ids = %d, %d, want 0, 1", a, b)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}

	colors, err := s.FaceColors(b)
	if err != nil {
		t.Fatalf("FaceColors() error: %v", err)
	}
	if len(colors) != 6 {
		t.Fatalf("got %d face colors, want 6", len(colors))
	}
	for face, c := range colors {
		if c != boxPalette[face] {
			t.Errorf("face %d color = %v, want %v", face, c, boxPalette[face])
		}
	}

	objs := s.Objects()
	if len(objs) != 2 || objs[1].ID() != 1 {
		t.Errorf("Objects() = %v", objs)
	}
}

func TestScene_PickNearest(t *testing.T) {
	s := New()
	s.AddBox(math.V3(0, 0, -4), math.V3(1, 1, 1))
	near := s.AddBox(math.V3(0, 0, 2), math.V3(1, 1, 1))

	res := s.Pick(towardOrigin(0.5, 0.5))
	if res.ObjectID != near || res.FaceID != picking.FaceFront {
		t.Errorf("Pick() = %+v, want object %d front face", res, near)
	}
	// Front face of the near box sits at z=3: t = (10-3)/20
	if res.Distance != 0.35 {
		t.Errorf("Distance = %v, want 0.35", res.Distance)
	}
}

func TestScene_PickMiss(t *testing.T) {
	s := New()
	s.AddBox(math.V3(0, 0, 0), math.V3(1, 1, 1))

	if res := s.Pick(towardOrigin(5, 5)); res.Hit() {
		t.Errorf("Pick() = %+v, want miss", res)
	}
	if res := New().Pick(towardOrigin(0, 0)); res.Hit() {
		t.Errorf("empty scene Pick() = %+v, want miss", res)
	}
}

func TestScene_PickWithPrefilter(t *testing.T) {
	flat := New()
	culled := New(WithPicker(picking.NewPicker(picking.WithBoundsPrefilter(true))))
	for _, s := range []*Scene{flat, culled} {
		for i := 0; i < 5; i++ {
			s.AddBox(math.V3(float32(i)*3, 0, float32(-i)), math.V3(1, 1, 1))
		}
	}

	for _, x := range []float32{-0.5, 0.5, 2.5, 3.2, 6.1, 9, 12.5, 20} {
		ray := towardOrigin(x, 0.25)
		if got, want := culled.Pick(ray), flat.Pick(ray); got != want {
			t.Errorf("x=%v: prefiltered %+v, flat %+v", x, got, want)
		}
	}
}

func TestScene_Highlight(t *testing.T) {
	s := New()
	first := s.AddBox(math.V3(0, 0, 0), math.V3(1, 1, 1))
	second := s.AddBox(math.V3(5, 0, 0), math.V3(1, 1, 1))

	dirty, err := s.Highlight(picking.Result{Distance: 0.5, ObjectID: first, FaceID: picking.FaceTop})
	if err != nil {
		t.Fatalf("Highlight() error: %v", err)
	}
	if len(dirty) != 1 || dirty[0] != first {
		t.Errorf("dirty = %v, want [%d]", dirty, first)
	}

	colors, _ := s.FaceColors(first)
	for face, c := range colors {
		want := ColorSelectedBox
		if face == picking.FaceTop {
			want = ColorSelectedFace
		}
		if c != want {
			t.Errorf("face %d color = %v, want %v", face, c, want)
		}
	}

	// Selecting another object restores the first.
	dirty, err = s.Highlight(picking.Result{Distance: 0.5, ObjectID: second, FaceID: picking.FaceFront})
	if err != nil {
		t.Fatalf("Highlight() error: %v", err)
	}
	if len(dirty) != 2 || dirty[0] != first || dirty[1] != second {
		t.Errorf("dirty = %v, want [%d %d]", dirty, first, second)
	}
	colors, _ = s.FaceColors(first)
	if colors[picking.FaceTop] != boxPalette[picking.FaceTop] {
		t.Errorf("first box not restored: %v", colors)
	}
	if s.Highlighted() != second {
		t.Errorf("Highlighted() = %d, want %d", s.Highlighted(), second)
	}

	// Same object, different face: only that object is dirty.
	dirty, _ = s.Highlight(picking.Result{Distance: 0.5, ObjectID: second, FaceID: picking.FaceBack})
	if len(dirty) != 1 || dirty[0] != second {
		t.Errorf("dirty = %v, want [%d]", dirty, second)
	}
	colors, _ = s.FaceColors(second)
	if colors[picking.FaceFront] != ColorSelectedBox || colors[picking.FaceBack] != ColorSelectedFace {
		t.Errorf("unexpected colors after reselect: %v", colors)
	}
}

func TestScene_HighlightErrors(t *testing.T) {
	s := New()
	s.AddBox(math.V3(0, 0, 0), math.V3(1, 1, 1))

	tests := []struct {
		name string
		res  picking.Result
		want error
	}{
		{"no selection", picking.NewResult(), ErrNoSelection},
		{"unknown object", picking.Result{ObjectID: 3}, ErrUnknownObject},
		{"unknown face", picking.Result{ObjectID: 0, FaceID: 6}, ErrUnknownFace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Highlight(tt.res); !errors.Is(err, tt.want) {
				t.Errorf("Highlight() error = %v, want %v", err, tt.want)
			}
		})
	}

	if s.Highlighted() != picking.NoObject {
		t.Error("failed highlight changed the selection")
	}
	if _, err := s.FaceColors(10); !errors.Is(err, ErrUnknownObject) {
		t.Errorf("FaceColors() error = %v, want ErrUnknownObject", err)
	}
}

func TestScene_ClearHighlight(t *testing.T) {
	s := New()
	id := s.AddBox(math.V3(0, 0, 0), math.V3(1, 1, 1))

	if _, ok := s.ClearHighlight(); ok {
		t.Error("ClearHighlight() on fresh scene reported a restore")
	}

	res := s.Pick(towardOrigin(0, 0.5))
	if _, err := s.Highlight(res); err != nil {
		t.Fatalf("Highlight() error: %v", err)
	}

	restored, ok := s.ClearHighlight()
	if !ok || restored != id {
		t.Errorf("ClearHighlight() = (%d, %v), want (%d, true)", restored, ok, id)
	}
	colors, _ := s.FaceColors(id)
	for face, c := range colors {
		if c != boxPalette[face] {
			t.Errorf("face %d color = %v, want base %v", face, c, boxPalette[face])
		}
	}
}

func TestScene_Meshes(t *testing.T) {
	s := New()
	s.AddBox(math.V3(0, 0, -5), math.V3(2, 2, 2))

	vertices := []math.Vec3{
		math.V3(-1, -1, 1), math.V3(1, -1, 1), math.V3(1, 1, 1), math.V3(-1, 1, 1),
	}
	mesh, err := s.AddIndexedMesh(vertices, []int{0, 1, 2, 0, 2, 3})
	if err != nil {
		t.Fatalf("AddIndexedMesh() error: %v", err)
	}

	res := s.Pick(towardOrigin(-0.5, 0.5))
	if res.ObjectID != mesh || res.FaceID != 1 {
		t.Fatalf("Pick() = %+v, want mesh %d triangle 1", res, mesh)
	}

	if _, err := s.Highlight(res); err != nil {
		t.Fatalf("Highlight() error: %v", err)
	}
	colors, _ := s.FaceColors(mesh)
	if colors[0] != ColorSelectedBox || colors[1] != ColorSelectedFace {
		t.Errorf("mesh colors = %v", colors)
	}

	if _, err := s.AddIndexedMesh(vertices, []int{0, 1}); !errors.Is(err, picking.ErrInvalidIndices) {
		t.Errorf("AddIndexedMesh() error = %v, want ErrInvalidIndices", err)
	}
	if s.Len() != 2 {
		t.Errorf("failed mesh was added: Len() = %d", s.Len())
	}
}

func TestScene_LogsPicks(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := New(WithLogger(zap.New(core)))
	s.AddBox(math.V3(0, 0, 0), math.V3(1, 1, 1))

	s.Pick(towardOrigin(0, 0.5))
	s.Pick(towardOrigin(9, 9))

	hits := logs.FilterMessage("pick successful").All()
	if len(hits) != 1 {
		t.Fatalf("got %d pick successful entries, want 1", len(hits))
	}
	if obj := hits[0].ContextMap()["object"]; obj != uint32(0) {
		t.Errorf("logged object = %v (%T), want 0", obj, obj)
	}
	if logs.FilterMessage("pick missed").Len() != 1 {
		t.Error("expected one pick missed entry")
	}
}

func TestScene_ConcurrentPickAndHighlight(t *testing.T) {
	s := NewFromConfig(testSceneConfig(60, 4))

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(2)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				ray := picking.NewSegmentRay(
					math.V3(float32(i%10)-5, 40, float32(g)),
					math.V3(float32(i%7)-3, -10, float32(-g)),
				)
				first := s.Pick(ray)
				if second := s.Pick(ray); first != second {
					t.Errorf("pick not repeatable: %+v vs %+v", first, second)
					return
				}
			}
		}(g)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				id := uint32((g*50 + i) % s.Len())
				if _, err := s.Highlight(picking.Result{ObjectID: id, FaceID: uint32(i % 6)}); err != nil {
					t.Errorf("Highlight() error: %v", err)
					return
				}
			}
		}(g)
	}
	wg.Wait()
}

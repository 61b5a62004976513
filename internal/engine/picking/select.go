package picking

import (
	gomath "math"

	"go.uber.org/zap"
)

// NoObject marks a Result without a hit.
const NoObject = gomath.MaxUint32

// farDistance is larger than any valid quad hit parameter, so the first
// real hit always replaces it.
const farDistance float32 = 2.0

// Result is the closest hit found by a pick query.
type Result struct {
	Distance float32 // ray parameter of the hit
	ObjectID uint32
	FaceID   uint32
}

// NewResult returns a result with no hit.
func NewResult() Result {
	return Result{Distance: farDistance, ObjectID: NoObject}
}

// Hit reports whether the result identifies a face.
func (r Result) Hit() bool {
	return r.ObjectID != NoObject
}

// consider records a candidate hit if it is strictly closer than the
// current best. Ties keep the hit found first.
func (r *Result) consider(t float32, objectID uint32, face int) bool {
	if t < r.Distance {
		r.Distance = t
		r.ObjectID = objectID
		r.FaceID = uint32(face)
		return true
	}
	return false
}

// flatScan is the picker behind Select: no logging, no prefilter.
var flatScan = NewPicker()

// Select scans every face of every object and returns the closest hit.
// It holds no state between calls.
func Select(ray Ray, geom Geometry) Result {
	res, _ := flatScan.Pick(ray, geom)
	return res
}

// Stats describes the work done by one Picker query.
type Stats struct {
	ObjectsTested  int
	ObjectsSkipped int // rejected by the bounds prefilter
	FacesTested    int
	Hits           int
}

// Picker runs nearest-hit queries with optional logging and bounds prefiltering.
// A Picker is immutable and safe for concurrent use.
type Picker struct {
	log       *zap.Logger
	prefilter bool
}

// Option configures a Picker.
type Option func(*Picker)

// WithLogger logs every candidate hit at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(p *Picker) {
		if log != nil {
			p.log = log
		}
	}
}

// WithBoundsPrefilter skips objects whose bounds the ray cannot reach
// before the current best hit. Results are identical either way.
func WithBoundsPrefilter(enabled bool) Option {
	return func(p *Picker) {
		p.prefilter = enabled
	}
}

// NewPicker creates a Picker.
func NewPicker(opts ...Option) *Picker {
	p := &Picker{log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// boundsPad is the padding applied to object bounds, relative to the
// magnitude of the coordinates involved, so rounding in the slab test
// never culls a face hit lying on the boundary.
const boundsPad = 1e-3

// Pick returns the closest hit along ray.
func (p *Picker) Pick(ray Ray, geom Geometry) (Result, Stats) {
	res := NewResult()
	var st Stats

	for _, obj := range geom.Objects() {
		n := obj.FaceCount()
		if n == 0 {
			continue
		}
		if p.prefilter && !p.reachable(ray, obj.Bounds(), res.Distance) {
			st.ObjectsSkipped++
			continue
		}
		st.ObjectsTested++

		for face := 0; face < n; face++ {
			st.FacesTested++
			t, hit := obj.IntersectFace(face, ray)
			if !hit {
				continue
			}
			st.Hits++
			p.log.Debug("face intersects pick ray",
				zap.Uint32("object", obj.ID()),
				zap.Int("face", face),
				zap.Float32("t", t))
			res.consider(t, obj.ID(), face)
		}
	}

	return res, st
}

// reachable reports whether a hit inside box could beat best.
func (p *Picker) reachable(ray Ray, box AABB, best float32) bool {
	scale := max(box.Max.Sub(box.Min).Length(), box.Min.Length(), box.Max.Length(), ray.Origin.Length(), 1)
	padded := box.Expand(boundsPad * scale)

	tmin, tmax, ok := ray.clip(padded)
	if !ok || tmax < 0 {
		return false
	}
	return tmin < best
}

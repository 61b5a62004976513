package scene

import (
	"math/rand/v2"

	"github.com/Faultbox/scenepick/internal/config"
	"github.com/Faultbox/scenepick/pkg/math"
)

// BoxSpec describes a box before it is added to a scene.
type BoxSpec struct {
	Center      math.Vec3
	HalfExtents math.Vec3
}

// halfSize converts a full width/height/depth triple to half extents.
func halfSize(size [3]float32) math.Vec3 {
	return math.V3(size[0]/2, size[1]/2, size[2]/2)
}

// GridBoxes scatters cfg.BoxCount boxes over a GridDim x GridDim grid on
// the XZ plane. Boxes landing in an occupied cell stack on top of the
// previous ones. The layout depends only on the seed.
func GridBoxes(cfg config.SceneConfig) []BoxSpec {
	if cfg.BoxCount <= 0 || cfg.GridDim <= 0 {
		return nil
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	half := halfSize(cfg.BoxSize)
	perCell := make([]int, cfg.GridDim*cfg.GridDim)
	offset := -cfg.GridDim / 2

	specs := make([]BoxSpec, 0, cfg.BoxCount)
	for i := 0; i < cfg.BoxCount; i++ {
		x := rng.IntN(cfg.GridDim)
		z := rng.IntN(cfg.GridDim)
		level := perCell[x*cfg.GridDim+z]
		perCell[x*cfg.GridDim+z]++

		specs = append(specs, BoxSpec{
			Center: math.V3(
				float32(offset+x)*cfg.Spacing,
				float32(level)*cfg.Spacing+half.Y,
				float32(offset+z)*cfg.Spacing,
			),
			HalfExtents: half,
		})
	}
	return specs
}

// BoxesAtPoints places one box of the given full size centered on each point.
func BoxesAtPoints(points []math.Vec3, size [3]float32) []BoxSpec {
	half := halfSize(size)
	specs := make([]BoxSpec, len(points))
	for i, p := range points {
		specs[i] = BoxSpec{Center: p, HalfExtents: half}
	}
	return specs
}

// NewFromConfig creates a scene filled with the configured box grid.
func NewFromConfig(cfg config.SceneConfig, opts ...Option) *Scene {
	s := New(opts...)
	s.AddBoxes(GridBoxes(cfg))
	return s
}

// Package camera places the viewer that pointer positions are unprojected from.
package camera

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scenepick/internal/config"
	"github.com/Faultbox/scenepick/internal/engine/picking"
	"github.com/Faultbox/scenepick/pkg/math"
)

// ErrDegenerateView is returned when the eye sits on the center point.
var ErrDegenerateView = errors.New("camera eye and center coincide")

// Camera looks from Eye at Center through a perspective lens.
type Camera struct {
	Eye    math.Vec3
	Center math.Vec3
	Up     math.Vec3

	// Lens
	FovY      float32 // Vertical field of view (radians)
	Near, Far float32
}

// New creates a camera from config.
func New(cfg config.CameraConfig) (*Camera, error) {
	c := &Camera{
		Eye:    math.V3(cfg.Eye[0], cfg.Eye[1], cfg.Eye[2]),
		Center: math.V3(cfg.Center[0], cfg.Center[1], cfg.Center[2]),
		Up:     math.V3(cfg.Up[0], cfg.Up[1], cfg.Up[2]),
		FovY:   mgl32.DegToRad(cfg.FovY),
		Near:   cfg.Near,
		Far:    cfg.Far,
	}
	if c.Eye == c.Center {
		return nil, ErrDegenerateView
	}
	return c, nil
}

// ViewMatrix returns the view matrix for this camera.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye.Mgl(), c.Center.Mgl(), c.Up.Mgl())
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// PickRay unprojects a pointer position in a width x height viewport.
func (c *Camera) PickRay(x, y float32, width, height int) (picking.Ray, error) {
	if width <= 0 || height <= 0 {
		return picking.Ray{}, picking.ErrInvalidViewport
	}
	w, h := float32(width), float32(height)
	return picking.ScreenToRay(x, y, w, h, c.ViewMatrix(), c.ProjectionMatrix(w/h))
}

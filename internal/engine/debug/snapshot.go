// Package debug provides pick diagnostics.
package debug

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/scenepick/internal/engine/camera"
	"github.com/Faultbox/scenepick/internal/engine/picking"
	"github.com/Faultbox/scenepick/internal/engine/scene"
)

// ErrUnknownFormat is returned for image formats other than png and bmp.
var ErrUnknownFormat = errors.New("unknown snapshot format")

// Background fills samples where the pick ray hits nothing.
var Background = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}

// PickMap samples the viewport every step pixels and colors each sample
// with the current color of the face its pick ray hits. The result is
// ceil(width/step) x ceil(height/step) pixels. hits counts the samples
// that hit a face.
func PickMap(s *scene.Scene, cam *camera.Camera, width, height, step int) (img *image.NRGBA, hits int, err error) {
	if step <= 0 {
		return nil, 0, fmt.Errorf("invalid sample step %d", step)
	}
	if width <= 0 || height <= 0 {
		return nil, 0, picking.ErrInvalidViewport
	}

	cols := (width + step - 1) / step
	rows := (height + step - 1) / step
	img = image.NewNRGBA(image.Rect(0, 0, cols, rows))

	// Sampling goes through the object snapshot so thousands of rays do
	// not each log a pick.
	objects := picking.Objects(s.Objects())
	faceColors := make(map[uint32][]scene.Color)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := float32(col*step) + float32(step)/2
			y := float32(row*step) + float32(step)/2

			ray, err := cam.PickRay(x, y, width, height)
			if err != nil {
				return nil, 0, err
			}

			res := picking.Select(ray, objects)
			if !res.Hit() {
				img.SetNRGBA(col, row, Background)
				continue
			}
			hits++

			colors, ok := faceColors[res.ObjectID]
			if !ok {
				if colors, err = s.FaceColors(res.ObjectID); err != nil {
					return nil, 0, err
				}
				faceColors[res.ObjectID] = colors
			}
			img.SetNRGBA(col, row, colors[res.FaceID].NRGBA())
		}
	}
	return img, hits, nil
}

// Encode writes img as png or bmp.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// SnapshotWriter saves pick maps to timestamped files.
type SnapshotWriter struct {
	outputDir string
	prefix    string
	format    string
	now       func() time.Time
}

// NewSnapshotWriter creates a writer for outputDir. format is png or bmp.
func NewSnapshotWriter(outputDir, prefix, format string) *SnapshotWriter {
	return &SnapshotWriter{
		outputDir: outputDir,
		prefix:    prefix,
		format:    format,
		now:       time.Now,
	}
}

// GenerateFilename generates a snapshot filename without saving.
func (sw *SnapshotWriter) GenerateFilename() string {
	timestamp := sw.now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s.%s", sw.prefix, timestamp, sw.format)
	if sw.outputDir != "" {
		filename = filepath.Join(sw.outputDir, filename)
	}
	return filename
}

// Save writes img and returns the file path.
func (sw *SnapshotWriter) Save(img image.Image) (string, error) {
	if sw.format != "png" && sw.format != "bmp" {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, sw.format)
	}

	// Create output directory if needed
	if sw.outputDir != "" {
		if err := os.MkdirAll(sw.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := sw.GenerateFilename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := Encode(file, img, sw.format); err != nil {
		return "", fmt.Errorf("encoding %s: %w", sw.format, err)
	}
	return filename, nil
}

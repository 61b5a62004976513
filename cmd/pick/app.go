package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/scenepick/internal/config"
	"github.com/Faultbox/scenepick/internal/engine/camera"
	"github.com/Faultbox/scenepick/internal/engine/debug"
	"github.com/Faultbox/scenepick/internal/engine/picking"
	"github.com/Faultbox/scenepick/internal/engine/scene"
	"github.com/Faultbox/scenepick/internal/logger"
)

// app answers pointer positions against the configured scene.
type app struct {
	cfg   *config.Config
	cam   *camera.Camera
	scene *scene.Scene
	snaps *debug.SnapshotWriter
	out   io.Writer
	log   *zap.Logger
}

func newApp(cfg *config.Config, out io.Writer) (*app, error) {
	cam, err := camera.New(cfg.Camera)
	if err != nil {
		return nil, err
	}

	picker := picking.NewPicker(
		picking.WithLogger(logger.Named("picking")),
		picking.WithBoundsPrefilter(cfg.Picking.BoundsPrefilter),
	)
	s := scene.NewFromConfig(cfg.Scene,
		scene.WithPicker(picker),
		scene.WithLogger(logger.Named("scene")),
	)

	log := logger.Named("pick")
	log.Info("scene ready",
		zap.Int("objects", s.Len()),
		zap.Uint64("seed", cfg.Scene.Seed),
		zap.Bool("prefilter", cfg.Picking.BoundsPrefilter))

	return &app{
		cfg:   cfg,
		cam:   cam,
		scene: s,
		snaps: debug.NewSnapshotWriter(cfg.Snapshot.Dir, "pickmap", cfg.Snapshot.Format),
		out:   out,
		log:   log,
	}, nil
}

// pickAt picks the pointer position, highlights the hit and reports it.
func (a *app) pickAt(x, y float32) error {
	ray, err := a.cam.PickRay(x, y, a.cfg.Viewport.Width, a.cfg.Viewport.Height)
	if err != nil {
		return err
	}

	res := a.scene.Pick(ray)
	if !res.Hit() {
		fmt.Fprintf(a.out, "miss x=%g y=%g\n", x, y)
		return nil
	}

	dirty, err := a.scene.Highlight(res)
	if err != nil {
		return err
	}
	a.log.Debug("recolored", zap.Uint32s("objects", dirty))

	fmt.Fprintf(a.out, "hit x=%g y=%g object=%d face=%d t=%.6f\n", x, y, res.ObjectID, res.FaceID, res.Distance)
	return nil
}

func (a *app) clear() {
	if id, ok := a.scene.ClearHighlight(); ok {
		fmt.Fprintf(a.out, "cleared object=%d\n", id)
		return
	}
	fmt.Fprintln(a.out, "cleared")
}

func (a *app) snapshot() error {
	img, hits, err := debug.PickMap(a.scene, a.cam, a.cfg.Viewport.Width, a.cfg.Viewport.Height, a.cfg.Snapshot.Step)
	if err != nil {
		return err
	}
	path, err := a.snaps.Save(img)
	if err != nil {
		return err
	}
	a.log.Info("snapshot saved", zap.String("path", path), zap.Int("hits", hits))
	fmt.Fprintf(a.out, "snapshot %s\n", path)
	return nil
}

// run reads one command per line until EOF or quit:
//
//	<x> <y>    pick at a pointer position
//	clear      drop the highlight
//	snapshot   save a pick map image
//	quit       stop reading
//
// Malformed lines are reported and skipped.
func (a *app) run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "quit", "exit":
			return nil
		case "clear":
			a.clear()
		case "snapshot":
			err = a.snapshot()
		default:
			var x, y float32
			if x, y, err = parsePointer(fields); err == nil {
				err = a.pickAt(x, y)
			}
		}

		if err != nil {
			a.log.Warn("command failed", zap.Int("line", line), zap.Error(err))
			fmt.Fprintf(a.out, "error line %d: %v\n", line, err)
		}
	}
	return sc.Err()
}

func parsePointer(fields []string) (x, y float32, err error) {
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want \"x y\", got %d fields", len(fields))
	}
	xv, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing x: %w", err)
	}
	yv, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing y: %w", err)
	}
	return float32(xv), float32(yv), nil
}

package main

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/schollz/progressbar/v3"

	"github.com/taigrr/raster/pkg/config"
	"github.com/taigrr/raster/pkg/math3d"
	"github.com/taigrr/raster/pkg/models"
	"github.com/taigrr/raster/pkg/render"
)

func testScene(t *testing.T) (*scene, *render.Renderer) {
	t.Helper()
	m := models.NewMesh("tri")
	m.AddTriangle(
		models.Vertex{Position: math3d.V3(-0.5, -0.5, 0), Normal: math3d.V3(0, 0, 1)},
		models.Vertex{Position: math3d.V3(0.5, -0.5, 0), Normal: math3d.V3(0, 0, 1)},
		models.Vertex{Position: math3d.V3(0, 0.5, 0), Normal: math3d.V3(0, 0, 1)},
	)
	m.CalculateBounds()

	s := &scene{
		cfg:   config.Default(),
		mesh:  m,
		light: models.PointLight{Position: math3d.V3(-5, 5, 5), Intensity: 200},
		lines: render.LineBresenham,
	}
	r, err := s.newRenderer(16, 16)
	if err != nil {
		t.Fatalf("newRenderer() error: %v", err)
	}
	return s, r
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	return len(entries)
}

func TestTurntableRender(t *testing.T) {
	s, r := testScene(t)
	tt := turntable{frames: 3, jobs: 2, dir: t.TempDir()}
	bar := progressbar.NewOptions(tt.frames, progressbar.OptionSetWriter(io.Discard))

	if err := tt.render(t.Context(), s, r, bar); err != nil {
		t.Fatalf("render() error: %v", err)
	}
	if n := countFiles(t, tt.dir); n != 3 {
		t.Errorf("wrote %d frames, want 3", n)
	}
}

func TestTurntableCanceled(t *testing.T) {
	s, r := testScene(t)
	tt := turntable{frames: 3, jobs: 1, dir: t.TempDir()}
	bar := progressbar.NewOptions(tt.frames, progressbar.OptionSetWriter(io.Discard))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	err := tt.render(ctx, s, r, bar)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("render() = %v, want context.Canceled", err)
	}
	if n := countFiles(t, tt.dir); n != 0 {
		t.Errorf("wrote %d frames after cancel", n)
	}
}

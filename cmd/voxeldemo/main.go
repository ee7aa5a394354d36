// Command voxeldemo runs the voxel simulation headless and renders two
// images: a first-person view through the software rasterizer and a
// top-down debug map.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/Noxitanius/govoxel"
	"github.com/Noxitanius/govoxel/game"
	"github.com/Noxitanius/govoxel/render"
)

func main() {
	var (
		width   = flag.Int("width", 800, "render width")
		height  = flag.Int("height", 600, "render height")
		ticks   = flag.Int("ticks", 60, "simulation ticks to run before rendering")
		walk    = flag.Int("walk", 20, "ticks spent walking forward")
		output  = flag.String("output", "view.png", "first-person view output file")
		mapOut  = flag.String("map", "map.png", "debug map output file")
		verbose = flag.Bool("v", false, "log simulation state")
	)
	flag.Parse()

	if *verbose {
		govoxel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	g := game.New()

	// Scripted input: settle, walk toward the wall, then stop and let the
	// player come to rest.
	for i := range *ticks {
		var input game.InputState
		if i >= 5 && i < 5+*walk {
			input.MoveFwd = true
		}
		g.Tick(input)
	}

	mesh := g.MeshIfDirty()
	if mesh == nil {
		log.Fatal("no geometry produced")
	}

	eye, dir := g.CameraPose()
	cam := govoxel.NewCamera()
	frame := &render.Frame{
		ViewProj: cam.ViewProj(eye, dir, *width, *height),
		Mesh:     mesh,
	}

	view := render.NewPixmapTarget(*width, *height)
	if err := render.NewSoftwareRenderer().Render(view, frame); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := savePNG(*output, view); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	mapTarget := render.NewPixmapTarget(*width, *height)
	render.NewDebugView().Draw(mapTarget, g)
	if err := savePNG(*mapOut, mapTarget); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("View saved to %s, map to %s (%dx%d, %d triangles)\n",
		*output, *mapOut, *width, *height, mesh.TriangleCount())
}

func savePNG(path string, target *render.PixmapTarget) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, target.Image()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

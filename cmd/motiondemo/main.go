// Command motiondemo plays a motion path headless and prints or renders
// the resulting samples.
//
// Usage:
//
//	motiondemo [-scene file.yaml] [-fps 30] [-frames dir] [-gallery out.png] [-svg] [-v]
//
// Without a scene the default line path from (50,50) to the opposite frame
// corner is played with the default easing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/npillmayer/motion/easing"
	"github.com/npillmayer/motion/playback"
	"github.com/npillmayer/motion/render"
	"github.com/npillmayer/motion/scene"
	"github.com/npillmayer/motion/stage"
	"github.com/npillmayer/schuko/tracing"
	"honnef.co/go/curve"
)

var traceKeys = []string{"motion", "easing", "path", "playback", "scene", "stage", "render"}

func main() {
	scenePtr := flag.String("scene", "", "scene file (YAML); default line path if empty")
	fpsPtr := flag.Int("fps", 30, "frames per second")
	framesPtr := flag.String("frames", "", "directory to write one PNG per frame into")
	galleryPtr := flag.String("gallery", "", "write a PNG contact sheet of all easing curves and exit")
	columnsPtr := flag.Int("columns", 8, "gallery columns")
	surfacePtr := flag.Bool("surfaces", false, "load the scene's surface images for frame rendering")
	svgPtr := flag.Bool("svg", false, "print the path guide as SVG path data")
	savePtr := flag.String("save", "", "write the scene that was played to this file")
	verbosePtr := flag.Bool("v", false, "debug tracing")
	flag.Parse()

	level := tracing.LevelInfo
	if *verbosePtr {
		level = tracing.LevelDebug
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}

	if *galleryPtr != "" {
		if err := writeGallery(*galleryPtr, *columnsPtr); err != nil {
			log.Fatalf("gallery: %v", err)
		}
		fmt.Printf("wrote %s\n", *galleryPtr)
		return
	}

	st := stage.New(stage.WithSeed())
	if *scenePtr != "" {
		f, err := scene.ReadFile(*scenePtr)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if err := st.Load(f); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if *svgPtr {
		fmt.Println(render.GuideSVG(st.Model()))
	}
	if !st.CanPlay() {
		log.Fatalf("path incomplete: %d of %d points", st.Model().Len(), st.Model().Max())
	}

	cfg := st.Config()
	req := cfg.Request(st.Points(), st.Model().Generation())
	samples, err := playback.Simulate(req, *fpsPtr)
	if err != nil {
		log.Fatalf("play: %v", err)
	}
	for _, s := range samples {
		fmt.Printf("%d %.4f %8.2f %8.2f\n", s.Object, s.Fraction, s.Position.X(), s.Position.Y())
	}

	if *framesPtr != "" {
		var surfaces [2]string
		if *surfacePtr {
			surfaces = cfg.Surfaces
		}
		n, err := writeFrames(*framesPtr, st, samples, surfaces)
		if err != nil {
			log.Fatalf("frames: %v", err)
		}
		fmt.Printf("wrote %d frames to %s\n", n, *framesPtr)
	}
	if *savePtr != "" {
		f, err := st.Save()
		if err != nil {
			log.Fatalf("save: %v", err)
		}
		if err := scene.WriteFile(*savePtr, f); err != nil {
			log.Fatalf("save: %v", err)
		}
	}
}

func writeGallery(name string, columns int) error {
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	opts := render.GalleryOptions{Cell: curve.Sz(120, 120), Columns: columns, Labels: true}
	if err := render.Gallery(context.Background(), out, easing.CatalogueSpecs(), opts); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// writeFrames groups the samples by step, one sample per object and step,
// and renders one image per step.
func writeFrames(dir string, st *stage.Stage, samples []playback.Sample, surfaces [2]string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	fr := render.FrameOf(st.Model(), nil)
	for i, ref := range surfaces {
		if ref == "" {
			continue
		}
		img, err := render.LoadImage(ref)
		if err != nil {
			return 0, err
		}
		fr.Surfaces[i] = img
	}
	objects := 1
	if st.Config().Comparison {
		objects = 2
	}
	n := 0
	for i := 0; i < len(samples); i += objects {
		fr.Samples = samples[i:min(i+objects, len(samples))]
		name := filepath.Join(dir, fmt.Sprintf("frame%04d.png", n))
		if err := render.SavePNG(name, fr.Draw()); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

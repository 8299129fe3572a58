// Command capture grabs frames from a camera and saves them as PNG files.
//
// Examples:
//
//	# Capture 5 frames in the default mode.
//	capture
//
//	# Pick a mode by loose name and save thumbnails next to the frames.
//	capture -format "mono 1024x768 8-bit" -count 10 -thumbs
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/disintegration/imaging"
	"github.com/go1394/iidc"
	"github.com/go1394/iidc/pkg/sim"
)

func main() {
	camera := flag.Int("camera", 0, "camera index")
	format := flag.String("format", "", "format query, e.g. \"800x600 mono 8-bit\" (default: leave the open-time mode)")
	count := flag.Int("count", 5, "number of frames to capture")
	output := flag.String("output", "frame", "output filename prefix (saved as <prefix>_N.png)")
	thumbs := flag.Bool("thumbs", false, "also save 160px-wide thumbnails")
	rgb := flag.Bool("rgb", false, "use the driver's RGB conversion instead of layout inference")
	flag.Parse()

	reg, err := iidc.NewRegistry(sim.New(&sim.Camera{Name: "Simulated 1394 Camera"}))
	if err != nil {
		log.Fatalf("Failed to enumerate cameras: %v", err)
	}
	defer reg.Close()

	s, err := reg.Open(*camera)
	if err != nil {
		log.Fatalf("Failed to open camera %d: %v", *camera, err)
	}

	if *format != "" {
		d, err := s.SetFormatByName(*format)
		if err != nil {
			log.Fatalf("Failed to set format %q: %v", *format, err)
		}
		log.Printf("Selected %s", d.Name)
	}

	if err := s.Start(); err != nil {
		log.Fatalf("Failed to start acquisition: %v", err)
	}
	defer s.Stop()

	for i := 0; i < *count; i++ {
		img, err := captureOne(s, *rgb)
		if err != nil {
			log.Fatalf("Failed to capture frame %d: %v", i, err)
		}
		name := fmt.Sprintf("%s_%d.png", *output, i)
		if err := savePNG(name, img); err != nil {
			log.Fatalf("Failed to save %s: %v", name, err)
		}
		log.Printf("Saved %s (%dx%d)", name, img.Bounds().Dx(), img.Bounds().Dy())

		if *thumbs {
			thumb := imaging.Resize(img, 160, 0, imaging.Lanczos)
			tname := fmt.Sprintf("%s_%d_thumb.png", *output, i)
			if err := savePNG(tname, thumb); err != nil {
				log.Fatalf("Failed to save %s: %v", tname, err)
			}
		}
	}
}

func captureOne(s *iidc.Session, rgb bool) (image.Image, error) {
	if rgb {
		return s.CaptureRGB()
	}
	return s.CaptureImage()
}

func savePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

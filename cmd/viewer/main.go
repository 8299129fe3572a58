// Command viewer shows a live camera feed in a window.
package main

import (
	"flag"
	"image"
	"log"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/go1394/iidc"
	"github.com/go1394/iidc/pkg/sim"
)

type Display struct {
	frame atomic.Value // *ebiten.Image
}

func (g *Display) Update() error {
	return nil
}

func (g *Display) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.frame.Load().(*ebiten.Image), &ebiten.DrawImageOptions{})
}

func (g *Display) Layout(outsideWidth, outsideHeight int) (int, int) {
	frame := g.frame.Load().(*ebiten.Image)
	return frame.Bounds().Dx(), frame.Bounds().Dy()
}

func main() {
	camera := flag.Int("camera", 0, "camera index")
	format := flag.String("format", "", "format query, e.g. \"640x480 mono 8-bit\"")
	width := flag.Int("width", 640, "window width")
	height := flag.Int("height", 480, "window height")
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
		if _, err := s.SetFormatByName(*format); err != nil {
			log.Fatalf("Failed to set format %q: %v", *format, err)
		}
	}
	if err := s.Start(); err != nil {
		log.Fatalf("Failed to start acquisition: %v", err)
	}
	defer s.Stop()

	g := &Display{}
	g.frame.Store(ebiten.NewImage(*width, *height))

	go func() {
		scaled := image.NewRGBA(image.Rect(0, 0, *width, *height))
		for {
			img, err := s.CaptureImage()
			if err != nil {
				log.Printf("capture: %v", err)
				continue
			}
			xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
			g.frame.Store(ebiten.NewImageFromImage(scaled))
		}
	}()

	ebiten.SetWindowTitle("go-iidc viewer")
	ebiten.SetWindowSize(*width, *height)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("viewer exited: %v", err)
	}
}

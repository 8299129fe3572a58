// Command inspect is a terminal UI for browsing cameras, their supported
// formats and rates, and previewing live frames.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/go1394/iidc"
	"github.com/go1394/iidc/pkg/formats"
	"github.com/go1394/iidc/pkg/sim"
)

func main() {
	cameras := flag.Int("cameras", 2, "number of simulated cameras")
	flag.Parse()

	var cams []*sim.Camera
	for i := 0; i < *cameras; i++ {
		cams = append(cams, &sim.Camera{Name: fmt.Sprintf("Simulated 1394 Camera %d", i)})
	}

	reg, err := iidc.NewRegistry(sim.New(cams...))
	if err != nil {
		log.Fatalf("Failed to enumerate cameras: %v", err)
	}
	defer reg.Close()

	app := tview.NewApplication()

	cameraList := tview.NewList()
	cameraList.SetBorder(true).SetTitle("Cameras")

	formatList := tview.NewList()
	formatList.SetBorder(true).SetTitle("Formats")

	rateList := tview.NewList().ShowSecondaryText(false)
	rateList.SetBorder(true).SetTitle("Rates")

	preview := tview.NewImage()
	preview.SetColors(256).SetDithering(tview.DitheringNone).SetBorder(true).SetTitle("Preview")

	logText := tview.NewTextView()
	logText.SetMaxLines(10).SetBorder(true).SetTitle("Log")

	log.SetOutput(logText)

	var session *iidc.Session

	showRates := func(desc formats.Descriptor) {
		rateList.Clear()
		for _, r := range session.SupportedRates(desc) {
			rate := r
			rateList.AddItem(fmt.Sprintf("%g fps", rate.FPS), "", 0, func() {
				if err := session.SetFrameRate(rate); err != nil {
					log.Printf("set rate: %v", err)
					return
				}
				refreshPreview(session, preview)
			})
		}
	}

	showFormats := func() {
		formatList.Clear()
		rateList.Clear()
		for _, d := range session.SupportedFormats() {
			desc := d
			formatList.AddItem(desc.Name, fmt.Sprintf("group %d mode %d", desc.Group, desc.Mode), 0, func() {
				if err := session.SetFormat(desc); err != nil {
					log.Printf("set format: %v", err)
					return
				}
				showRates(desc)
				refreshPreview(session, preview)
				app.SetFocus(rateList)
			})
		}
	}

	for _, info := range reg.Cameras() {
		idx := info.Index
		cameraList.AddItem(info.Name, info.ID, 0, func() {
			s, err := reg.Open(idx)
			if err != nil {
				log.Printf("open camera %d: %v", idx, err)
				return
			}
			session = s
			showFormats()
			app.SetFocus(formatList)
		})
	}

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(cameraList, 0, 1, true).
		AddItem(formatList, 0, 2, false).
		AddItem(rateList, 0, 1, false)
	root := tview.NewFlex().
		AddItem(left, 0, 1, true).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(preview, 0, 3, false).
			AddItem(logText, 0, 1, false), 0, 2, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' || event.Key() == tcell.KeyEscape {
			app.Stop()
			return nil
		}
		return event
	})

	if err := app.SetRoot(root, true).Run(); err != nil {
		log.Fatalf("inspect exited: %v", err)
	}
}

func refreshPreview(s *iidc.Session, preview *tview.Image) {
	img, err := s.CaptureRGB()
	if err != nil {
		log.Printf("capture: %v", err)
		return
	}
	s.Stop()
	preview.SetImage(img)
}

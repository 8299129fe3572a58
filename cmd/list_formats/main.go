// Command list_formats prints the IIDC mode catalog and, for each camera
// the backend reports, the modes and frame rates it supports.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/go1394/iidc"
	"github.com/go1394/iidc/pkg/formats"
	"github.com/go1394/iidc/pkg/sim"
)

func main() {
	cameras := flag.Int("cameras", 1, "number of simulated cameras")
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

	fmt.Println("=== Catalog ===")
	for _, d := range formats.All() {
		fmt.Printf("  group %d mode %d: %s\n", d.Group, d.Mode, d.Name)
	}
	fmt.Println("\n=== Frame rates ===")
	for _, r := range formats.Rates() {
		fmt.Printf("  index %d: %g fps\n", r.Index, r.FPS)
	}

	for _, info := range reg.Cameras() {
		fmt.Printf("\n=== Camera %d: %s ===\n", info.Index, info.Name)
		s, err := reg.Open(info.Index)
		if err != nil {
			log.Printf("Failed to open camera %d: %v", info.Index, err)
			continue
		}
		for _, d := range s.SupportedFormats() {
			fmt.Printf("  %s:", d.Name)
			for _, r := range s.SupportedRates(d) {
				fmt.Printf(" %g", r.FPS)
			}
			fmt.Println(" fps")
		}
		if cur, ok := s.CurrentFormat(); ok {
			rate, _ := s.CurrentRate()
			fmt.Printf("  current: %s @ %g fps\n", cur.Name, rate.FPS)
		}
	}
}

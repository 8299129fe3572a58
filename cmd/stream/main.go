// Command stream serves camera frames as JPEG over a websocket, one binary
// message per frame.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/jpeg"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/go1394/iidc"
	"github.com/go1394/iidc/pkg/sim"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// latestFrame holds the most recent encoded frame for all connections; the
// capture loop is the single producer.
type latestFrame struct {
	mu  sync.RWMutex
	buf []byte
	seq uint64
}

func (l *latestFrame) set(buf []byte) {
	l.mu.Lock()
	l.buf = buf
	l.seq++
	l.mu.Unlock()
}

func (l *latestFrame) get() ([]byte, uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.buf, l.seq
}

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	camera := flag.Int("camera", 0, "camera index")
	format := flag.String("format", "", "format query, e.g. \"640x480 mono 8-bit\"")
	interval := flag.Duration("interval", 66*time.Millisecond, "delay between captures")
	quality := flag.Int("quality", 80, "JPEG quality")
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

	latest := &latestFrame{}

	// The session is single-threaded, so one goroutine owns all captures
	// and connections only read the encoded result.
	go func() {
		for {
			img, err := s.CaptureRGB()
			if err != nil {
				log.Printf("capture: %v", err)
				time.Sleep(*interval)
				continue
			}
			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: *quality}); err != nil {
				log.Printf("encode: %v", err)
				continue
			}
			latest.set(buf.Bytes())
			time.Sleep(*interval)
		}
	}()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("websocket upgrade: %v", err)
			return
		}
		defer conn.Close()
		log.Printf("client connected: %s", r.RemoteAddr)

		var sent uint64
		for {
			buf, seq := latest.get()
			if buf == nil || seq == sent {
				time.Sleep(*interval / 2)
				continue
			}
			if err := conn.WriteMessage(websocket.BinaryMessage, buf); err != nil {
				log.Printf("client %s gone: %v", r.RemoteAddr, err)
				return
			}
			sent = seq
		}
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Streaming on ws://localhost%s/ws", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("server: %v", err)
	}
}

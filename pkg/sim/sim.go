// Package sim provides an in-memory camera backend for tests and for the
// demo tools, so nothing in this repository needs FireWire hardware.
package sim

import (
	"fmt"
	"strings"

	"github.com/go1394/iidc"
	"github.com/go1394/iidc/pkg/formats"
)

// Camera describes one simulated device and its fault-injection knobs.
type Camera struct {
	Name string
	// Formats the camera reports as supported. Empty means the whole
	// catalog.
	Formats []formats.Descriptor
	// Rates holds the supported rate indexes, applied to every mode.
	// Empty means indexes 0 through 4 (1.875 to 30 fps).
	Rates []int
	// FailInit makes Init return an error.
	FailInit bool
	// AcquireStatus, if nonzero, is returned by every AcquireFrame call.
	AcquireStatus iidc.Status
	// StopStatus, if nonzero, is returned by every StopAcquisition call.
	StopStatus iidc.Status
}

func (c *Camera) hasMode(group, mode int) bool {
	for _, d := range c.Formats {
		if d.Group == group && d.Mode == mode {
			return true
		}
	}
	return false
}

func (c *Camera) hasRate(index int) bool {
	for _, r := range c.Rates {
		if r == index {
			return true
		}
	}
	return false
}

// Backend implements iidc.Backend over a fixed list of simulated cameras.
type Backend struct {
	cameras   []*Camera
	sel       int
	inited    bool
	acquiring bool
	group     int
	mode      int
	rate      int
	width     int
	height    int
	frame     []byte
	counter   uint8
}

// New returns a backend exposing the given cameras, in index order.
func New(cameras ...*Camera) *Backend {
	for _, c := range cameras {
		if len(c.Formats) == 0 {
			c.Formats = formats.All()
		}
		if len(c.Rates) == 0 {
			c.Rates = []int{0, 1, 2, 3, 4}
		}
	}
	return &Backend{cameras: cameras, sel: -1}
}

func (b *Backend) selected() *Camera {
	if b.sel < 0 || b.sel >= len(b.cameras) {
		return nil
	}
	return b.cameras[b.sel]
}

func (b *Backend) Count() (int, error) { return len(b.cameras), nil }

func (b *Backend) Description(index int) (string, error) {
	if index < 0 || index >= len(b.cameras) {
		return "", fmt.Errorf("no camera at index %d", index)
	}
	return b.cameras[index].Name, nil
}

func (b *Backend) Select(index int) error {
	if index < 0 || index >= len(b.cameras) {
		return fmt.Errorf("no camera at index %d", index)
	}
	b.sel = index
	b.inited = false
	b.acquiring = false
	return nil
}

func (b *Backend) Init() error {
	cam := b.selected()
	if cam == nil {
		return fmt.Errorf("no camera selected")
	}
	if cam.FailInit {
		return fmt.Errorf("simulated init failure for %q", cam.Name)
	}
	b.inited = true
	// Power-on defaults: first supported mode at 15 fps.
	d := cam.Formats[0]
	b.group, b.mode, b.rate = d.Group, d.Mode, 3
	return nil
}

func (b *Backend) IsAcquiring() bool { return b.acquiring }

func (b *Backend) StartAcquisition() iidc.Status {
	if !b.inited {
		return iidc.StatusNotInitialized
	}
	d, ok := formats.LookupMode(b.group, b.mode)
	if !ok {
		return iidc.StatusInvalidVideoSettings
	}
	b.width, b.height = d.Width, d.Height
	b.frame = make([]byte, frameBytes(d))
	b.acquiring = true
	return iidc.StatusSuccess
}

func (b *Backend) StopAcquisition() iidc.Status {
	cam := b.selected()
	b.acquiring = false
	if cam != nil && cam.StopStatus != iidc.StatusSuccess {
		return cam.StopStatus
	}
	return iidc.StatusSuccess
}

func (b *Backend) HasMode(group, mode int) bool {
	cam := b.selected()
	return cam != nil && cam.hasMode(group, mode)
}

func (b *Backend) HasRate(group, mode, rate int) bool {
	cam := b.selected()
	return cam != nil && cam.hasMode(group, mode) && cam.hasRate(rate)
}

func (b *Backend) Format() int { return b.group }
func (b *Backend) Mode() int   { return b.mode }
func (b *Backend) Rate() int   { return b.rate }

func (b *Backend) SetFormat(group int) iidc.Status {
	cam := b.selected()
	if cam == nil || !b.inited {
		return iidc.StatusNotInitialized
	}
	for _, d := range cam.Formats {
		if d.Group == group {
			b.group = group
			return iidc.StatusSuccess
		}
	}
	return iidc.StatusUnsupported
}

func (b *Backend) SetMode(mode int) iidc.Status {
	cam := b.selected()
	if cam == nil || !b.inited {
		return iidc.StatusNotInitialized
	}
	if !cam.hasMode(b.group, mode) {
		return iidc.StatusUnsupported
	}
	b.mode = mode
	return iidc.StatusSuccess
}

func (b *Backend) SetRate(rate int) iidc.Status {
	cam := b.selected()
	if cam == nil || !b.inited {
		return iidc.StatusNotInitialized
	}
	if !cam.hasRate(rate) {
		return iidc.StatusUnsupported
	}
	b.rate = rate
	return iidc.StatusSuccess
}

func (b *Backend) AcquireFrame() iidc.Status {
	cam := b.selected()
	if cam == nil || !b.inited {
		return iidc.StatusNotInitialized
	}
	if !b.acquiring {
		return iidc.StatusError
	}
	if cam.AcquireStatus != iidc.StatusSuccess {
		return cam.AcquireStatus
	}
	b.fill()
	b.counter++
	return iidc.StatusSuccess
}

// RawBuffer returns the backend's single frame buffer. Like a real driver
// buffer it is overwritten by the next AcquireFrame call.
func (b *Backend) RawBuffer() []byte { return b.frame }

func (b *Backend) Dimensions() (int, int) { return b.width, b.height }

func (b *Backend) ConvertRGB(buf []byte) iidc.Status {
	if !b.acquiring {
		return iidc.StatusNotInitialized
	}
	if len(buf) != b.width*b.height*3 {
		return iidc.StatusParamOutOfRange
	}
	i := 0
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			v := uint8(x + y + int(b.counter))
			buf[i], buf[i+1], buf[i+2] = v, v, v
			i += 3
		}
	}
	return iidc.StatusSuccess
}

// fill writes a deterministic gradient shifted by the frame counter so
// consecutive frames differ.
func (b *Backend) fill() {
	d, ok := formats.LookupMode(b.group, b.mode)
	if !ok {
		return
	}
	switch {
	case strings.HasSuffix(d.Name, "Mono 16-bit"):
		i := 0
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				// big-endian, as the bus delivers it
				v := uint16(x+y)<<4 + uint16(b.counter)
				b.frame[i] = byte(v >> 8)
				b.frame[i+1] = byte(v)
				i += 2
			}
		}
	case strings.HasSuffix(d.Name, "RGB 24-bit"):
		i := 0
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				b.frame[i] = uint8(x + int(b.counter))
				b.frame[i+1] = uint8(y + int(b.counter))
				b.frame[i+2] = uint8(x + y)
				i += 3
			}
		}
	default:
		// mono 8 and the packed YUV layouts get a plain byte gradient;
		// YUV consumers are expected to go through ConvertRGB anyway
		for i := range b.frame {
			b.frame[i] = uint8(i + int(b.counter))
		}
	}
}

// frameBytes returns the raw buffer size the driver would deliver for a
// mode, derived from its pixel layout.
func frameBytes(d formats.Descriptor) int {
	n := d.Width * d.Height
	switch {
	case strings.HasSuffix(d.Name, "Mono 16-bit"):
		return 2 * n
	case strings.HasSuffix(d.Name, "RGB 24-bit"):
		return 3 * n
	case strings.HasSuffix(d.Name, "YUV 4:4:4"):
		return 3 * n
	case strings.HasSuffix(d.Name, "YUV 4:2:2"):
		return 2 * n
	case strings.HasSuffix(d.Name, "YUV 4:1:1"):
		return 3 * n / 2
	}
	return n
}

// Package iidc is a backend-agnostic core for IIDC (DCAM) FireWire
// cameras: device registry, session state machine, format negotiation and
// frame decoding. The bus protocol itself lives behind the Backend
// interface; pkg/sim provides an in-memory backend and pkg/dc1394 a
// libdc1394 binding.
package iidc

// Backend is the capability surface a camera driver exposes to the core.
//
// Calls that talk to the selected camera return a [Status] mirroring the
// driver's own code; everything else returns an error directly.
// Implementations hold one selected camera at a time, so callers must
// serialize access across sessions sharing a backend.
type Backend interface {
	// Count returns the number of cameras on the bus.
	Count() (int, error)
	// Description returns a human-readable identity for the camera at
	// index, e.g. "Sony XCD-X710 (00:01:02:03)".
	Description(index int) (string, error)
	// Select binds subsequent calls to the camera at index.
	Select(index int) error
	// Init initializes the selected camera.
	Init() error

	IsAcquiring() bool
	StartAcquisition() Status
	StopAcquisition() Status

	// HasMode reports whether the selected camera supports the given
	// format group and mode pair.
	HasMode(group, mode int) bool
	// HasRate reports whether the given rate index is supported for the
	// format group and mode pair.
	HasRate(group, mode, rate int) bool

	Format() int
	Mode() int
	Rate() int
	SetFormat(group int) Status
	SetMode(mode int) Status
	SetRate(rate int) Status

	AcquireFrame() Status
	// RawBuffer returns the driver-owned buffer holding the last acquired
	// frame. The buffer is invalidated by the next AcquireFrame call, so
	// consumers must copy out before acquiring again.
	RawBuffer() []byte
	// Dimensions returns the pixel width and height of the last acquired
	// frame.
	Dimensions() (width, height int)
	// ConvertRGB fills buf with the last frame converted to interleaved
	// 8-bit RGB. buf must be width*height*3 bytes.
	ConvertRGB(buf []byte) Status
}

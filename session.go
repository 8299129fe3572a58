package iidc

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/go1394/iidc/pkg/decode"
	"github.com/go1394/iidc/pkg/formats"
)

// State of a session. Mode and rate changes are only valid while idle;
// applying them while acquiring stops acquisition first.
type State int

const (
	StateUninitialized State = iota
	StateIdle
	StateAcquiring
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAcquiring:
		return "acquiring"
	}
	return "uninitialized"
}

// Some cameras deliver garbage until the isochronous stream settles, so
// Start waits this long before returning.
const settleDelay = 250 * time.Millisecond

// Defaults applied at open time.
const (
	defaultFormatName = "640x480 Mono 8-bit"
	defaultFPS        = 15
)

// Session drives one camera through the driver's required call order:
// init, then format/mode/rate selection while idle, then start, acquire,
// stop. A Session is not safe for concurrent use; give each session its
// own goroutine or lock around it.
type Session struct {
	backend Backend
	info    Info
	state   State
}

func openSession(b Backend, info Info) (*Session, error) {
	if err := b.Select(info.Index); err != nil {
		return nil, fmt.Errorf("select camera %d: %w", info.Index, err)
	}
	if err := b.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitFailed, err)
	}
	s := &Session{backend: b, info: info, state: StateIdle}

	// Not every camera supports the default mode. The session stays open
	// either way; the caller just has to pick a mode explicitly.
	if desc, ok := formats.Lookup(defaultFormatName); ok {
		if err := s.SetFormat(desc); err != nil {
			log.Printf("iidc: camera %q: default format %s not applied: %v", info.Name, desc.Name, err)
		} else if idx, ok := formats.RateIndex(defaultFPS); ok {
			if rate, ok := formats.RateByIndex(idx); ok {
				if err := s.SetFrameRate(rate); err != nil {
					log.Printf("iidc: camera %q: default rate %g fps not applied: %v", info.Name, rate.FPS, err)
				}
			}
		}
	}
	return s, nil
}

// Info returns the enumeration identity this session was opened with.
func (s *Session) Info() Info { return s.info }

// State returns the session's current state.
func (s *Session) State() State { return s.state }

// IsAcquiring reports whether the session is acquiring frames.
func (s *Session) IsAcquiring() bool { return s.state == StateAcquiring }

// SupportedFormats returns the catalog entries the camera reports as
// supported. The set is queried fresh on every call.
func (s *Session) SupportedFormats() []formats.Descriptor {
	var out []formats.Descriptor
	for _, d := range formats.All() {
		if s.backend.HasMode(d.Group, d.Mode) {
			out = append(out, d)
		}
	}
	return out
}

// SupportedRates returns the ladder entries the camera supports for the
// given format.
func (s *Session) SupportedRates(desc formats.Descriptor) []formats.Rate {
	var out []formats.Rate
	for _, r := range formats.Rates() {
		if s.backend.HasRate(desc.Group, desc.Mode, r.Index) {
			out = append(out, r)
		}
	}
	return out
}

// CurrentFormat returns the catalog entry for the camera's current format
// group and mode, if the pair is catalogued.
func (s *Session) CurrentFormat() (formats.Descriptor, bool) {
	return formats.LookupMode(s.backend.Format(), s.backend.Mode())
}

// CurrentRate returns the camera's current frame rate.
func (s *Session) CurrentRate() (formats.Rate, bool) {
	return formats.RateByIndex(s.backend.Rate())
}

// ensureIdle stops acquisition if it is running so settings can be
// applied. Stop is idempotent, so this is safe in any state.
func (s *Session) ensureIdle() error {
	if s.state == StateUninitialized {
		return ErrNotInitialized
	}
	if s.state == StateAcquiring {
		s.Stop()
	}
	return nil
}

// SetFormat applies a catalogued format. If the session is acquiring it is
// stopped first and stays stopped; call Start to resume.
func (s *Session) SetFormat(desc formats.Descriptor) error {
	if err := s.ensureIdle(); err != nil {
		return err
	}
	if !s.backend.HasMode(desc.Group, desc.Mode) {
		return fmt.Errorf("%w: %s", ErrUnsupported, desc.Name)
	}
	if st := s.backend.SetFormat(desc.Group); st != StatusSuccess {
		return fmt.Errorf("set format group %d: %w", desc.Group, st.Err())
	}
	if st := s.backend.SetMode(desc.Mode); st != StatusSuccess {
		return fmt.Errorf("set mode %d: %w", desc.Mode, st.Err())
	}
	return nil
}

// SetFormatByName resolves a loosely specified format string against the
// camera's live capability set and applies the result. See
// [formats.Resolve] for the matching rules.
func (s *Session) SetFormatByName(query string) (formats.Descriptor, error) {
	supported := s.SupportedFormats()
	names := make([]string, len(supported))
	for i, d := range supported {
		names[i] = d.Name
	}
	desc, err := formats.Resolve(query, names)
	if err != nil {
		return formats.Descriptor{}, err
	}
	return desc, s.SetFormat(desc)
}

// SetFrameRate applies a ladder entry for the current format. If the
// session is acquiring it is stopped first.
func (s *Session) SetFrameRate(rate formats.Rate) error {
	if err := s.ensureIdle(); err != nil {
		return err
	}
	if !s.backend.HasRate(s.backend.Format(), s.backend.Mode(), rate.Index) {
		return fmt.Errorf("%w: %g fps", ErrUnsupported, rate.FPS)
	}
	if st := s.backend.SetRate(rate.Index); st != StatusSuccess {
		return fmt.Errorf("set frame rate %g: %w", rate.FPS, st.Err())
	}
	return nil
}

// Start begins acquisition and waits out the hardware settle delay. It is
// a no-op if the session is already acquiring.
func (s *Session) Start() error {
	if s.state == StateUninitialized {
		return ErrNotInitialized
	}
	if s.state == StateAcquiring {
		return nil
	}
	if st := s.backend.StartAcquisition(); st != StatusSuccess {
		return fmt.Errorf("start acquisition: %w", st.Err())
	}
	s.state = StateAcquiring
	time.Sleep(settleDelay)
	return nil
}

// Stop halts acquisition. It is a no-op if the session is not acquiring
// and never returns an error, so teardown paths can call it
// unconditionally; backend failures are logged.
func (s *Session) Stop() {
	if s.state != StateAcquiring {
		return
	}
	if st := s.backend.StopAcquisition(); st != StatusSuccess {
		log.Printf("iidc: camera %q: stop acquisition: %v", s.info.Name, st.Err())
	}
	s.state = StateIdle
}

// Capture pulls one frame, starting acquisition first if needed. The
// returned RawFrame aliases the driver's buffer and is only valid until
// the next Capture call; [decode.Decode] copies out.
func (s *Session) Capture() (decode.RawFrame, error) {
	if s.state != StateAcquiring {
		if err := s.Start(); err != nil {
			return decode.RawFrame{}, err
		}
	}
	if st := s.backend.AcquireFrame(); st != StatusSuccess {
		return decode.RawFrame{}, fmt.Errorf("acquire frame: %w", st.Err())
	}
	w, h := s.backend.Dimensions()
	return decode.RawFrame{Bytes: s.backend.RawBuffer(), Width: w, Height: h}, nil
}

// CaptureImage captures one frame and decodes it by layout inference.
func (s *Session) CaptureImage() (image.Image, error) {
	raw, err := s.Capture()
	if err != nil {
		return nil, err
	}
	return decode.Decode(raw)
}

// CaptureRGB captures one frame and has the driver convert it to
// interleaved 8-bit RGB. This works for every mode, including the YUV
// layouts CaptureImage cannot infer.
func (s *Session) CaptureRGB() (*decode.RGB, error) {
	raw, err := s.Capture()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, raw.Width*raw.Height*3)
	if st := s.backend.ConvertRGB(buf); st != StatusSuccess {
		return nil, fmt.Errorf("convert frame to RGB: %w", st.Err())
	}
	return decode.DecodeRGB(buf, raw.Width, raw.Height)
}

// Close stops acquisition if needed and invalidates the session. Safe to
// call more than once; never fails.
func (s *Session) Close() {
	if s.state == StateUninitialized {
		return
	}
	s.Stop()
	s.state = StateUninitialized
}

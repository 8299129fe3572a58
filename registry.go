package iidc

import (
	"fmt"

	"github.com/google/uuid"
)

// Info identifies one camera on the bus at enumeration time.
type Info struct {
	Index int
	Name  string
	// ID is assigned at enumeration and stable until the next Refresh.
	ID string
}

// Registry enumerates cameras and caches open sessions. Sessions are keyed
// by index and name, so a different device plugged into a previously used
// index gets a fresh session rather than its predecessor's.
//
// A Registry is not safe for concurrent use; finish enumeration and Open
// calls before handing sessions to other goroutines.
type Registry struct {
	backend Backend
	cameras []Info
	open    map[string]*Session
}

// NewRegistry enumerates the bus through b and returns the registry.
func NewRegistry(b Backend) (*Registry, error) {
	r := &Registry{backend: b, open: make(map[string]*Session)}
	if err := r.Refresh(); err != nil {
		return nil, err
	}
	return r, nil
}

// Refresh re-enumerates the bus. Previously opened sessions stay cached
// under their old identity.
func (r *Registry) Refresh() error {
	n, err := r.backend.Count()
	if err != nil {
		return fmt.Errorf("enumerate cameras: %w", err)
	}
	cams := make([]Info, 0, n)
	for i := 0; i < n; i++ {
		name, err := r.backend.Description(i)
		if err != nil {
			return fmt.Errorf("describe camera %d: %w", i, err)
		}
		cams = append(cams, Info{Index: i, Name: name, ID: uuid.NewString()})
	}
	r.cameras = cams
	return nil
}

// Cameras returns the cameras found by the last enumeration.
func (r *Registry) Cameras() []Info {
	out := make([]Info, len(r.cameras))
	copy(out, r.cameras)
	return out
}

// Open returns the session for the camera at index, creating and caching
// it on first use.
func (r *Registry) Open(index int) (*Session, error) {
	if index < 0 || index >= len(r.cameras) {
		return nil, fmt.Errorf("%w: index %d with %d cameras enumerated", ErrNotFound, index, len(r.cameras))
	}
	info := r.cameras[index]
	key := fmt.Sprintf("%d/%s", info.Index, info.Name)
	if s, ok := r.open[key]; ok {
		return s, nil
	}
	s, err := openSession(r.backend, info)
	if err != nil {
		return nil, err
	}
	r.open[key] = s
	return s, nil
}

// Close tears down every cached session. Safe to call more than once.
func (r *Registry) Close() {
	for key, s := range r.open {
		s.Close()
		delete(r.open, key)
	}
}

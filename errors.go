package iidc

import (
	"errors"
	"fmt"
)

// Status is a raw status code as returned by the native 1394 camera
// driver. Zero is success; the negative values are fixed by the driver ABI.
type Status int

const (
	StatusSuccess               Status = 0
	StatusError                 Status = -1
	StatusUnsupported           Status = -10
	StatusNotInitialized        Status = -11
	StatusInvalidVideoSettings  Status = -12
	StatusBusy                  Status = -13
	StatusInsufficientResources Status = -14
	StatusParamOutOfRange       Status = -15
	StatusFrameTimeout          Status = -16
)

var (
	ErrNotFound              = errors.New("camera not found")
	ErrInitFailed            = errors.New("camera initialization failed")
	ErrUnsupported           = errors.New("unsupported feature")
	ErrNotInitialized        = errors.New("camera not initialized")
	ErrInvalidSettings       = errors.New("invalid video settings")
	ErrBusy                  = errors.New("camera busy")
	ErrInsufficientResources = errors.New("insufficient bus resources")
	ErrOutOfRange            = errors.New("parameter out of range")
	ErrTimeout               = errors.New("frame timeout")
	ErrBackend               = errors.New("backend error")
)

// Err maps a driver status to the error taxonomy. Success maps to nil.
func (s Status) Err() error {
	switch s {
	case StatusSuccess:
		return nil
	case StatusUnsupported:
		return ErrUnsupported
	case StatusNotInitialized:
		return ErrNotInitialized
	case StatusInvalidVideoSettings:
		return ErrInvalidSettings
	case StatusBusy:
		return ErrBusy
	case StatusInsufficientResources:
		return ErrInsufficientResources
	case StatusParamOutOfRange:
		return ErrOutOfRange
	case StatusFrameTimeout:
		return ErrTimeout
	default:
		return fmt.Errorf("%w: status %d", ErrBackend, int(s))
	}
}

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "generic error"
	case StatusUnsupported:
		return "unsupported feature"
	case StatusNotInitialized:
		return "not initialized"
	case StatusInvalidVideoSettings:
		return "invalid video settings"
	case StatusBusy:
		return "busy"
	case StatusInsufficientResources:
		return "insufficient resources"
	case StatusParamOutOfRange:
		return "parameter out of range"
	case StatusFrameTimeout:
		return "frame timeout"
	}
	return fmt.Sprintf("status %d", int(s))
}

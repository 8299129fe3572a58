package iidc

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusErrMapping(t *testing.T) {
	cases := []struct {
		status Status
		want   error
	}{
		{StatusSuccess, nil},
		{StatusUnsupported, ErrUnsupported},
		{StatusNotInitialized, ErrNotInitialized},
		{StatusInvalidVideoSettings, ErrInvalidSettings},
		{StatusBusy, ErrBusy},
		{StatusInsufficientResources, ErrInsufficientResources},
		{StatusParamOutOfRange, ErrOutOfRange},
		{StatusFrameTimeout, ErrTimeout},
	}
	for _, c := range cases {
		if got := c.status.Err(); !errors.Is(got, c.want) && !(got == nil && c.want == nil) {
			t.Errorf("Status(%d).Err() = %v, want %v", int(c.status), got, c.want)
		}
	}
}

func TestStatusErrGeneric(t *testing.T) {
	err := StatusError.Err()
	if !errors.Is(err, ErrBackend) {
		t.Errorf("StatusError.Err() = %v, want ErrBackend", err)
	}
	// unknown codes also map to the generic backend error
	if err := Status(-42).Err(); !errors.Is(err, ErrBackend) {
		t.Errorf("Status(-42).Err() = %v, want ErrBackend", err)
	}
}

func TestStatusString(t *testing.T) {
	if got := StatusFrameTimeout.String(); got != "frame timeout" {
		t.Errorf("String() = %q, want %q", got, "frame timeout")
	}
	if got := fmt.Sprint(Status(-99)); got != "status -99" {
		t.Errorf("Sprint = %q, want %q", got, "status -99")
	}
}

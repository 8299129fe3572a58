// Package decode turns raw driver frame buffers into typed images.
package decode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
)

// RawFrame is one frame as handed out by the driver. Bytes typically
// aliases driver-owned memory that the next acquisition invalidates, so
// every decode copies into a fresh buffer.
type RawFrame struct {
	Bytes  []byte
	Width  int
	Height int
}

// ErrUnknownLayout is returned when the buffer length matches none of the
// known pixel layouts for the reported dimensions.
var ErrUnknownLayout = errors.New("unknown frame layout")

// Decode infers the pixel layout from the buffer length against the
// reported width and height:
//
//	w*h   -> *image.Gray   (8-bit mono)
//	w*h*2 -> *Mono16       (16-bit mono, big-endian source pairs)
//	w*h*3 -> *RGB          (8-bit interleaved RGB)
//
// Anything else fails with ErrUnknownLayout. The 16-bit case byte-swaps
// each big-endian pair into a native uint16 during the copy.
func Decode(raw RawFrame) (image.Image, error) {
	w, h := raw.Width, raw.Height
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d frame", ErrUnknownLayout, w, h)
	}
	n := w * h
	switch len(raw.Bytes) {
	case n:
		img := image.NewGray(image.Rect(0, 0, w, h))
		copy(img.Pix, raw.Bytes)
		return img, nil
	case 2 * n:
		img := NewMono16(w, h)
		for i := 0; i < n; i++ {
			img.Pix[i] = binary.BigEndian.Uint16(raw.Bytes[2*i:])
		}
		return img, nil
	case 3 * n:
		return DecodeRGB(raw.Bytes, w, h)
	}
	return nil, fmt.Errorf("%w: %d bytes for a %dx%d frame", ErrUnknownLayout, len(raw.Bytes), w, h)
}

// DecodeRGB copies a buffer the driver has already converted to
// interleaved 8-bit RGB. It performs no inference: buf must be exactly
// w*h*3 bytes. This is the path for modes (YUV in particular) whose raw
// layout Decode cannot infer from length alone.
func DecodeRGB(buf []byte, w, h int) (*RGB, error) {
	if w <= 0 || h <= 0 || len(buf) != w*h*3 {
		return nil, fmt.Errorf("%w: %d bytes for a %dx%d RGB frame", ErrUnknownLayout, len(buf), w, h)
	}
	img := &RGB{
		Pix:    make([]uint8, len(buf)),
		Stride: 3 * w,
		Rect:   image.Rect(0, 0, w, h),
	}
	copy(img.Pix, buf)
	return img, nil
}

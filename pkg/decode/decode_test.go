package decode

import (
	"errors"
	"image"
	"testing"
)

func TestDecodeGray8(t *testing.T) {
	raw := RawFrame{
		Bytes:  []byte{0, 1, 2, 3, 4, 5, 6, 7},
		Width:  4,
		Height: 2,
	}
	img, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("Decode returned %T, want *image.Gray", img)
	}
	if gray.Bounds() != image.Rect(0, 0, 4, 2) {
		t.Errorf("bounds = %v, want (0,0)-(4,2)", gray.Bounds())
	}
	for i, b := range raw.Bytes {
		if gray.Pix[i] != b {
			t.Errorf("Pix[%d] = %d, want %d", i, gray.Pix[i], b)
		}
	}
}

func TestDecodeGray8Copies(t *testing.T) {
	buf := []byte{10, 20, 30, 40, 50, 60, 70, 80}
	img, err := Decode(RawFrame{Bytes: buf, Width: 4, Height: 2})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	// a driver would overwrite its buffer on the next acquisition
	for i := range buf {
		buf[i] = 0xff
	}
	if got := img.(*image.Gray).Pix[0]; got != 10 {
		t.Errorf("Pix[0] = %d after input overwrite, want 10", got)
	}
}

func TestDecodeMono16BigEndian(t *testing.T) {
	buf := []byte{
		0x12, 0x34, 0x00, 0x01, 0xff, 0xfe, 0x00, 0x00,
		0x80, 0x00, 0x00, 0x80, 0xab, 0xcd, 0x01, 0x00,
	}
	img, err := Decode(RawFrame{Bytes: buf, Width: 4, Height: 2})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	mono, ok := img.(*Mono16)
	if !ok {
		t.Fatalf("Decode returned %T, want *Mono16", img)
	}
	want := []uint16{0x1234, 0x0001, 0xfffe, 0x0000, 0x8000, 0x0080, 0xabcd, 0x0100}
	for i, w := range want {
		if mono.Pix[i] != w {
			t.Errorf("Pix[%d] = %#04x, want %#04x", i, mono.Pix[i], w)
		}
	}
	if got := mono.Gray16At(0, 0); got != 0x1234 {
		t.Errorf("Gray16At(0, 0) = %#04x, want 0x1234", got)
	}
	if got := mono.Gray16At(3, 1); got != 0x0100 {
		t.Errorf("Gray16At(3, 1) = %#04x, want 0x0100", got)
	}
}

func TestDecodeRGBInterleaved(t *testing.T) {
	buf := make([]byte, 4*2*3)
	for i := range buf {
		buf[i] = byte(i)
	}
	img, err := Decode(RawFrame{Bytes: buf, Width: 4, Height: 2})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	rgb, ok := img.(*RGB)
	if !ok {
		t.Fatalf("Decode returned %T, want *RGB", img)
	}
	if rgb.Stride != 12 {
		t.Errorf("Stride = %d, want 12", rgb.Stride)
	}
	c := rgb.RGBAAt(1, 1)
	if c.R != 15 || c.G != 16 || c.B != 17 {
		t.Errorf("RGBAAt(1, 1) = %v, want {15 16 17 255}", c)
	}
	// mandatory copy-out
	buf[0] = 0xff
	if rgb.Pix[0] != 0 {
		t.Errorf("Pix[0] = %d after input overwrite, want 0", rgb.Pix[0])
	}
}

func TestDecodeUnknownLayout(t *testing.T) {
	_, err := Decode(RawFrame{Bytes: make([]byte, 10), Width: 4, Height: 2})
	if !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("Decode(10 bytes for 4x2) = %v, want ErrUnknownLayout", err)
	}
	_, err = Decode(RawFrame{Bytes: make([]byte, 8), Width: 0, Height: 2})
	if !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("Decode(zero width) = %v, want ErrUnknownLayout", err)
	}
}

func TestDecodeRGBLength(t *testing.T) {
	if _, err := DecodeRGB(make([]byte, 23), 4, 2); !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("DecodeRGB(23 bytes for 4x2) = %v, want ErrUnknownLayout", err)
	}
	img, err := DecodeRGB(make([]byte, 24), 4, 2)
	if err != nil {
		t.Fatalf("DecodeRGB failed: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 2) {
		t.Errorf("bounds = %v, want (0,0)-(4,2)", img.Bounds())
	}
}

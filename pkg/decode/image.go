package decode

import (
	"image"
	"image/color"
)

// RGB is an in-memory image holding interleaved 8-bit R, G, B samples.
type RGB struct {
	// Pix holds the image's pixels in R, G, B order. The pixel at (x, y)
	// starts at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

var _ image.Image = &RGB{}

func (p *RGB) ColorModel() color.Model { return color.RGBAModel }

func (p *RGB) Bounds() image.Rectangle { return p.Rect }

func (p *RGB) At(x, y int) color.Color {
	return p.RGBAAt(x, y)
}

func (p *RGB) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3] // Small cap improves performance, see https://golang.org/issue/27857
	return color.RGBA{s[0], s[1], s[2], 0xff}
}

// PixOffset returns the index of the first element of Pix that corresponds
// to the pixel at (x, y).
func (p *RGB) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

// Mono16 is an in-memory 16-bit grayscale image holding native-endian
// samples. The driver delivers big-endian byte pairs; Decode swaps them
// into Pix during the copy, so Pix indexes like any uint16 slice.
type Mono16 struct {
	Pix []uint16
	// Stride is the Pix stride (in samples) between vertically adjacent
	// pixels.
	Stride int
	Rect   image.Rectangle
}

// NewMono16 returns a zeroed w by h Mono16 image.
func NewMono16(w, h int) *Mono16 {
	return &Mono16{
		Pix:    make([]uint16, w*h),
		Stride: w,
		Rect:   image.Rect(0, 0, w, h),
	}
}

var _ image.Image = &Mono16{}

func (p *Mono16) ColorModel() color.Model { return color.Gray16Model }

func (p *Mono16) Bounds() image.Rectangle { return p.Rect }

func (p *Mono16) At(x, y int) color.Color {
	return color.Gray16{Y: p.Gray16At(x, y)}
}

func (p *Mono16) Gray16At(x, y int) uint16 {
	if !(image.Point{x, y}.In(p.Rect)) {
		return 0
	}
	return p.Pix[p.PixOffset(x, y)]
}

// PixOffset returns the index of the Pix sample that corresponds to the
// pixel at (x, y).
func (p *Mono16) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x - p.Rect.Min.X)
}

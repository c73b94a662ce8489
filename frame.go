package bitfx

import (
	"fmt"
	"image"
	"image/color"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// RGBModel converts any color to RGB by dropping alpha from its
// non-premultiplied form.
var RGBModel = color.ModelFunc(rgbModel)

func rgbModel(c color.Color) color.Color {
	if rgb, ok := c.(RGB); ok {
		return rgb
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// Frame is a rectangular grid of RGB pixels.
//
// Pixels are stored row-major, 3 bytes per pixel. Frame implements
// draw.Image so glyph rasterizers can stamp directly onto it.
//
// A Frame is owned by whichever pipeline step currently holds it; it is not
// safe for concurrent mutation.
type Frame struct {
	width  int
	height int
	pix    []uint8 // RGB format, 3 bytes per pixel
}

// NewFrame creates a black frame with the given dimensions.
// Non-positive dimensions produce an empty 0x0 frame.
func NewFrame(width, height int) *Frame {
	if width <= 0 || height <= 0 {
		return &Frame{}
	}
	return &Frame{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*3),
	}
}

// FrameFromRGB wraps raw RGB24 pixel data. The slice is used directly,
// not copied. It must hold exactly width*height*3 bytes.
func FrameFromRGB(width, height int, pix []uint8) (*Frame, error) {
	if width <= 0 || height <= 0 {
		if len(pix) != 0 {
			return nil, fmt.Errorf("bitfx: %d bytes of pixel data for empty frame", len(pix))
		}
		return &Frame{}, nil
	}
	if want := width * height * 3; len(pix) != want {
		return nil, fmt.Errorf("bitfx: pixel data is %d bytes, want %d for %dx%d", len(pix), want, width, height)
	}
	return &Frame{width: width, height: height, pix: pix}, nil
}

// FrameFromImage converts an image to a Frame, dropping alpha.
func FrameFromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	f := NewFrame(bounds.Dx(), bounds.Dy())
	if f.Empty() {
		return f
	}

	if src, ok := img.(*image.RGBA); ok && isOpaque(src) {
		for y := 0; y < f.height; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+f.width*4]
			dst := f.pix[y*f.width*3 : (y+1)*f.width*3]
			for x := 0; x < f.width; x++ {
				dst[x*3+0] = row[x*4+0]
				dst[x*3+1] = row[x*4+1]
				dst[x*3+2] = row[x*4+2]
			}
		}
		return f
	}

	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			f.SetRGB(x, y, rgbModel(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(RGB))
		}
	}
	return f
}

func isOpaque(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			return false
		}
	}
	return true
}

// Width returns the width of the frame.
func (f *Frame) Width() int {
	return f.width
}

// Height returns the height of the frame.
func (f *Frame) Height() int {
	return f.height
}

// Empty reports whether the frame has zero area.
func (f *Frame) Empty() bool {
	return f.width == 0 || f.height == 0
}

// Pix returns the raw pixel data (RGB format).
func (f *Frame) Pix() []uint8 {
	return f.pix
}

// Stride returns the distance in bytes between vertically adjacent pixels.
func (f *Frame) Stride() int {
	return f.width * 3
}

// InBounds reports whether (x, y) addresses a pixel of the frame.
func (f *Frame) InBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// RGBAt returns the color of a single pixel, or black when out of bounds.
func (f *Frame) RGBAt(x, y int) RGB {
	if !f.InBounds(x, y) {
		return RGB{}
	}
	i := (y*f.width + x) * 3
	return RGB{R: f.pix[i+0], G: f.pix[i+1], B: f.pix[i+2]}
}

// SetRGB sets the color of a single pixel. Out-of-bounds writes are ignored.
func (f *Frame) SetRGB(x, y int, c RGB) {
	if !f.InBounds(x, y) {
		return
	}
	i := (y*f.width + x) * 3
	f.pix[i+0] = c.R
	f.pix[i+1] = c.G
	f.pix[i+2] = c.B
}

// Fill sets every pixel to c.
func (f *Frame) Fill(c RGB) {
	for i := 0; i < len(f.pix); i += 3 {
		f.pix[i+0] = c.R
		f.pix[i+1] = c.G
		f.pix[i+2] = c.B
	}
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{width: f.width, height: f.height}
	if f.pix != nil {
		out.pix = make([]uint8, len(f.pix))
		copy(out.pix, f.pix)
	}
	return out
}

// ToImage converts the frame to an opaque image.RGBA.
func (f *Frame) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for i, j := 0, 0; i < len(f.pix); i, j = i+3, j+4 {
		img.Pix[j+0] = f.pix[i+0]
		img.Pix[j+1] = f.pix[i+1]
		img.Pix[j+2] = f.pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// At implements the image.Image interface.
func (f *Frame) At(x, y int) color.Color {
	return f.RGBAt(x, y)
}

// Bounds implements the image.Image interface.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// ColorModel implements the image.Image interface.
func (f *Frame) ColorModel() color.Model {
	return RGBModel
}

// Set implements the draw.Image interface.
func (f *Frame) Set(x, y int, c color.Color) {
	if !f.InBounds(x, y) {
		return
	}
	f.SetRGB(x, y, rgbModel(c).(RGB))
}

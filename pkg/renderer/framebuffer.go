package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// Framebuffer is a dense row-major grid of linear colors
type Framebuffer struct {
	Width  int
	Height int
	Pix    []core.Color
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]core.Color, width*height),
	}
}

// At returns the color of pixel (x, y)
func (fb *Framebuffer) At(x, y int) core.Color {
	return fb.Pix[y*fb.Width+x]
}

// Set stores the color of pixel (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Color) {
	fb.Pix[y*fb.Width+x] = c
}

// Bounds returns the rectangle covered by the framebuffer
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// RGB returns the pixels inside r as packed row-major RGB bytes
func (fb *Framebuffer) RGB(r image.Rectangle) []byte {
	r = r.Intersect(fb.Bounds())
	buf := make([]byte, 0, r.Dx()*r.Dy()*3)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			red, green, blue := core.ToRGB(fb.At(x, y))
			buf = append(buf, red, green, blue)
		}
	}
	return buf
}

// ToRGBA converts the framebuffer to an opaque 8-bit image
func (fb *Framebuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := core.ToRGB(fb.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

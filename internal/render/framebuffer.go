package render

import "fmt"

// DefaultFill is the color a new framebuffer starts with, so undrawn pixels stand out.
var DefaultFill = Red

// Framebuffer is a fixed-size, row-major grid of colors.
type Framebuffer struct {
	width, height int
	data          []Color
}

// NewFramebuffer creates a width x height framebuffer filled with DefaultFill.
func NewFramebuffer(width, height int) *Framebuffer {
	return NewFramebufferFill(width, height, DefaultFill)
}

// NewFramebufferFill creates a framebuffer filled with c.
// Panics if either dimension is not positive.
func NewFramebufferFill(width, height int, c Color) *Framebuffer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("render: invalid framebuffer size %dx%d", width, height))
	}
	fb := &Framebuffer{
		width:  width,
		height: height,
		data:   make([]Color, width*height),
	}
	fb.Fill(c)
	return fb
}

// Width returns the width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// index converts (x,y) to a data offset. Out-of-range coordinates are a
// programming error and panic rather than wrapping into the next row.
func (fb *Framebuffer) index(x, y int) int {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		panic(fmt.Sprintf("render: pixel (%d,%d) out of range %dx%d", x, y, fb.width, fb.height))
	}
	return x + y*fb.width
}

// Set writes the pixel at (x,y).
func (fb *Framebuffer) Set(x, y int, c Color) {
	fb.data[fb.index(x, y)] = c
}

// At returns the pixel at (x,y).
func (fb *Framebuffer) At(x, y int) Color {
	return fb.data[fb.index(x, y)]
}

// Fill sets every pixel to c.
func (fb *Framebuffer) Fill(c Color) {
	for i := range fb.data {
		fb.data[i] = c
	}
}

// FillColumn fills the rows [y0,y1) of column x with c, clipped to the buffer.
func (fb *Framebuffer) FillColumn(x, y0, y1 int, c Color) {
	if x < 0 || x >= fb.width {
		return
	}
	y0 = max(y0, 0)
	y1 = min(y1, fb.height)
	for y := y0; y < y1; y++ {
		fb.data[x+y*fb.width] = c
	}
}

// Pixels returns the backing row-major slice. Callers must not resize it.
func (fb *Framebuffer) Pixels() []Color {
	return fb.data
}

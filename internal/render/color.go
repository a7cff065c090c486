package render

// Color is an RGBA value. Alpha is carried for callers that blend but is
// dropped when a framebuffer is serialized.
type Color struct {
	R, G, B, A uint8
}

// RGB is a shorthand to create an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA creates a color with an explicit alpha channel.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Bytes returns the four channels in R, G, B, A order.
func (c Color) Bytes() (uint8, uint8, uint8, uint8) {
	return c.R, c.G, c.B, c.A
}

// Predefined colors.
var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
	Red   = RGB(255, 0, 0)
)

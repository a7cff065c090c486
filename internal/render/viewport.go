package render

// Viewport places a framebuffer inside a terminal. Each terminal cell shows two
// pixels stacked vertically, so a cell row covers two framebuffer rows.
type Viewport struct {
	OffsetX, OffsetY int // top-left terminal cell (0-based)
	ViewW, ViewH     int // size in cells
}

// NewViewport scales the framebuffer uniformly to the largest size that fits in
// termW x (termH-hudRows) cells, centered. A terminal too small to show anything
// yields a zero-sized viewport.
func NewViewport(fbW, fbH, termW, termH, hudRows int) Viewport {
	availW := termW
	availH := termH - hudRows
	if fbW <= 0 || fbH <= 0 || availW <= 0 || availH <= 0 {
		return Viewport{}
	}

	// Pixel area available is availW x availH*2.
	viewW := availW
	viewPixH := viewW * fbH / fbW
	if viewPixH > availH*2 {
		viewPixH = availH * 2
		viewW = viewPixH * fbW / fbH
	}
	viewH := (viewPixH + 1) / 2
	if viewW < 1 || viewH < 1 {
		return Viewport{}
	}

	return Viewport{
		OffsetX: (availW - viewW) / 2,
		OffsetY: (availH - viewH) / 2,
		ViewW:   viewW,
		ViewH:   viewH,
	}
}

// Source maps the pixel at cell (cx, cy) half (0 = top, 1 = bottom) back to
// framebuffer coordinates using nearest-neighbor sampling.
func (v Viewport) Source(cx, cy, half, fbW, fbH int) (int, int) {
	sx := cx * fbW / v.ViewW
	sy := (cy*2 + half) * fbH / (v.ViewH * 2)
	if sx >= fbW {
		sx = fbW - 1
	}
	if sy >= fbH {
		sy = fbH - 1
	}
	return sx, sy
}

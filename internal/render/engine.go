package render

import "strings"

const HUDRows = 2

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch            rune
	FgR, FgG, FgB uint8
	BgR, BgG, BgB uint8
	Bold          bool
}

var sentinel = Cell{Ch: '\x00', FgR: 255, BgB: 255, Bold: true}

var (
	hudFg = RGB(230, 230, 230)
	hudBg = RGB(20, 20, 30)
)

// Engine is a per-session double-buffer diff renderer that presents a
// framebuffer on an ANSI terminal.
type Engine struct {
	width, height int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(width, height int) *Engine {
	e := &Engine{
		width:      width,
		height:     height,
		firstFrame: true,
	}
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	return e
}

// Resize adjusts the renderer for a new terminal size.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// Render produces the ANSI byte output for the current frame: the framebuffer
// scaled into the terminal with half-block cells, plus up to HUDRows lines of
// text at the bottom. Only cells that changed since the previous call are emitted.
func (e *Engine) Render(fb *Framebuffer, hud []string, termW, termH int) string {
	if termW != e.width || termH != e.height {
		e.Resize(termW, termH)
	}

	// Clear next buffer
	bgCell := Cell{Ch: ' ', BgR: 10, BgG: 10, BgB: 15}
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			e.next[y][x] = bgCell
		}
	}

	vp := NewViewport(fb.Width(), fb.Height(), termW, termH, HUDRows)
	for cy := 0; cy < vp.ViewH; cy++ {
		ty := vp.OffsetY + cy
		if ty < 0 || ty >= e.height {
			continue
		}
		for cx := 0; cx < vp.ViewW; cx++ {
			tx := vp.OffsetX + cx
			if tx < 0 || tx >= e.width {
				continue
			}
			topX, topY := vp.Source(cx, cy, 0, fb.Width(), fb.Height())
			botX, botY := vp.Source(cx, cy, 1, fb.Width(), fb.Height())
			e.next[ty][tx] = PixelCell(fb.At(topX, topY), fb.At(botX, botY))
		}
	}

	e.drawHUD(hud)

	return e.emitDiff()
}

// emitDiff compares next against current, writes only the changed cells, and
// swaps the buffers.
func (e *Engine) emitDiff() string {
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				// Only emit cursor position if not consecutive
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}

// drawHUD writes the status lines into the bottom rows of the next buffer.
func (e *Engine) drawHUD(lines []string) {
	for i := 0; i < HUDRows && i < len(lines); i++ {
		y := e.height - HUDRows + i
		if y < 0 {
			continue
		}
		x := 0
		for _, ch := range lines[i] {
			if x >= e.width {
				break
			}
			e.next[y][x] = TextCell(ch, hudFg, hudBg, i == 0)
			x++
		}
		for ; x < e.width; x++ {
			e.next[y][x] = TextCell(' ', hudFg, hudBg, false)
		}
	}
}

package render

import (
	"strings"
	"testing"
)

func TestNewViewport(t *testing.T) {
	tests := []struct {
		name              string
		fbW, fbH          int
		termW, termH, hud int
		want              Viewport
	}{
		// 320x200 into 80 cols: 80x50 pixels = 80x25 cells, needs 25 rows.
		{"width bound", 320, 200, 80, 40, 2, Viewport{OffsetX: 0, OffsetY: 6, ViewW: 80, ViewH: 25}},
		// Only 10 rows (20 pixels) available: 32x20 pixels = 32x10 cells.
		{"height bound", 320, 200, 80, 12, 2, Viewport{OffsetX: 24, OffsetY: 0, ViewW: 32, ViewH: 10}},
		{"no room", 320, 200, 80, 2, 2, Viewport{}},
		{"empty framebuffer", 0, 200, 80, 24, 2, Viewport{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewViewport(tt.fbW, tt.fbH, tt.termW, tt.termH, tt.hud)
			if got != tt.want {
				t.Errorf("NewViewport = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestViewportSourceStaysInBounds(t *testing.T) {
	vp := NewViewport(7, 5, 13, 9, 2)
	for cy := 0; cy < vp.ViewH; cy++ {
		for cx := 0; cx < vp.ViewW; cx++ {
			for half := 0; half < 2; half++ {
				x, y := vp.Source(cx, cy, half, 7, 5)
				if x < 0 || x >= 7 || y < 0 || y >= 5 {
					t.Fatalf("Source(%d,%d,%d) = (%d,%d) out of 7x5", cx, cy, half, x, y)
				}
			}
		}
	}
}

func TestEngineRenderDiff(t *testing.T) {
	fb := NewFramebufferFill(4, 4, Black)
	fb.Set(0, 0, White)

	e := NewEngine(4, 4)
	first := e.Render(fb, []string{"hello"}, 4, 4)
	if first == "" {
		t.Fatal("first frame must emit output")
	}
	if !strings.Contains(first, string(HalfBlock)) {
		t.Error("first frame should contain half-block cells")
	}
	if !strings.Contains(first, "h") {
		t.Error("first frame should contain HUD text")
	}

	if again := e.Render(fb, []string{"hello"}, 4, 4); again != "" {
		t.Errorf("unchanged frame emitted %q", again)
	}

	fb.Set(0, 0, Black)
	changed := e.Render(fb, []string{"hello"}, 4, 4)
	if changed == "" {
		t.Fatal("changed pixel must be emitted")
	}
	if !strings.HasPrefix(changed, MoveTo(1, 1)) {
		t.Errorf("diff should start at the changed cell, got %q", changed)
	}
	if !strings.HasSuffix(changed, Reset) {
		t.Error("diff output must end with a reset")
	}
}

func TestEngineResizeRedraws(t *testing.T) {
	fb := NewFramebufferFill(2, 2, Black)
	e := NewEngine(4, 4)
	e.Render(fb, nil, 4, 4)
	if out := e.Render(fb, nil, 6, 5); out == "" {
		t.Error("resize must force a full redraw")
	}
}

func TestPixelCell(t *testing.T) {
	c := PixelCell(RGB(1, 2, 3), RGB(4, 5, 6))
	if c.Ch != HalfBlock || c.FgR != 1 || c.FgB != 3 || c.BgR != 4 || c.BgB != 6 {
		t.Errorf("PixelCell = %+v", c)
	}
}

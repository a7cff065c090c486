// Package ui presents framebuffers in a local terminal using tcell.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"tilecaster/internal/render"
)

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return Wrap(s)
}

// Wrap initializes an existing tcell screen, such as a simulation screen.
func Wrap(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent blocks until the next terminal event. It returns nil once the
// screen is closed.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Size returns the terminal size in cells.
func (s *Screen) Size() (int, int) {
	return s.screen.Size()
}

// Sync forces a complete redraw of the screen.
func (s *Screen) Sync() {
	s.screen.Sync()
}

// Blit draws fb scaled into the terminal with half-block cells and hud in the
// bottom rows, then shows the result.
func (s *Screen) Blit(fb *render.Framebuffer, hud []string) {
	termW, termH := s.screen.Size()
	s.screen.Clear()

	vp := render.NewViewport(fb.Width(), fb.Height(), termW, termH, render.HUDRows)
	for cy := 0; cy < vp.ViewH; cy++ {
		for cx := 0; cx < vp.ViewW; cx++ {
			topX, topY := vp.Source(cx, cy, 0, fb.Width(), fb.Height())
			botX, botY := vp.Source(cx, cy, 1, fb.Width(), fb.Height())
			s.setCell(vp.OffsetX+cx, vp.OffsetY+cy, render.PixelCell(fb.At(topX, topY), fb.At(botX, botY)))
		}
	}

	for i := 0; i < render.HUDRows && i < len(hud); i++ {
		y := termH - render.HUDRows + i
		if y < 0 {
			continue
		}
		x := 0
		for _, ch := range hud[i] {
			if x >= termW {
				break
			}
			s.setCell(x, y, render.TextCell(ch, render.White, render.Black, i == 0))
			x++
		}
	}

	s.screen.Show()
}

func (s *Screen) setCell(x, y int, c render.Cell) {
	s.screen.SetContent(x, y, c.Ch, nil, CellStyle(c))
}

// CellStyle converts a render cell's colors to a tcell style.
func CellStyle(c render.Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(c.FgR), int32(c.FgG), int32(c.FgB))).
		Background(tcell.NewRGBColor(int32(c.BgR), int32(c.BgG), int32(c.BgB))).
		Bold(c.Bold)
}

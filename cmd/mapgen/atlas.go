package main

import (
	"fmt"
	"math"
	"os"

	"tilecaster/internal/maps"
)

type material int

const (
	brick material = iota
	stone
	planks
	panel
)

// swatch is the base colour and pattern of one wall texture.
type swatch struct {
	r, g, b float64
	kind    material
}

var swatches = []swatch{
	{150, 60, 50, brick},
	{120, 120, 125, stone},
	{130, 90, 50, planks},
	{90, 110, 130, panel},
	{170, 160, 120, brick},
	{80, 100, 70, stone},
	{100, 70, 40, planks},
	{150, 150, 160, panel},
}

// generateAtlas paints tileCount noise-based textures side by side.
func generateAtlas(tileSize, tileCount int, seed int64) *maps.Atlas {
	noise := newSimplex(seed)
	a := &maps.Atlas{Width: tileSize * tileCount, Height: tileSize}
	a.Pix = make([]byte, a.Width*a.Height*3)
	for id := 0; id < tileCount; id++ {
		sw := swatches[id%len(swatches)]
		for y := 0; y < tileSize; y++ {
			for x := 0; x < tileSize; x++ {
				// Normalised texture coordinates so patterns survive any tile size.
				u, v := float64(x)/float64(tileSize), float64(y)/float64(tileSize)
				shade := sw.shade(noise, float64(id)*16, u, v)
				i := (y*a.Width + id*tileSize + x) * 3
				a.Pix[i] = channel(sw.r * shade)
				a.Pix[i+1] = channel(sw.g * shade)
				a.Pix[i+2] = channel(sw.b * shade)
			}
		}
	}
	return a
}

// shade returns a brightness multiplier for texture coordinate (u, v).
func (sw swatch) shade(n *simplex, off, u, v float64) float64 {
	grain := n.fbm(u*8+off, v*8, 1, 3)
	switch sw.kind {
	case brick:
		row := math.Floor(v * 4)
		bu := u * 2
		if int(row)%2 == 1 {
			bu += 0.5
		}
		if fract(v*4) < 0.1 || fract(bu) < 0.05 {
			return 0.45 // mortar
		}
		return 0.75 + 0.4*grain
	case stone:
		crack := n.ridged(u*3+off, v*3, 1, 3)
		if crack > 0.93 {
			return 0.5
		}
		return 0.7 + 0.5*grain
	case planks:
		if fract(u*4) < 0.06 {
			return 0.4 // seam
		}
		ring := math.Sin((v*6+n.at(u*4+off, v)*1.5)*math.Pi) * 0.5
		return 0.85 + 0.15*ring + 0.2*(grain-0.5)
	default:
		if fract(u*2) < 0.04 || fract(v*2) < 0.04 {
			return 0.5
		}
		du, dv := fract(u*2)-0.12, fract(v*2)-0.12
		if du*du+dv*dv < 0.002 {
			return 1.3 // rivet
		}
		return 0.9 + 0.2*grain
	}
}

func fract(x float64) float64 { return x - math.Floor(x) }

func channel(v float64) byte {
	return byte(math.Max(0, math.Min(255, v)))
}

func writeAtlas(path string, tileSize, tileCount int, seed int64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := generateAtlas(tileSize, tileCount, seed).EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

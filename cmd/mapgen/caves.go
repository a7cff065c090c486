package main

import (
	"fmt"
	"math/rand"
	"os"

	"tilecaster/internal/maps"
)

// caveThreshold is the noise level above which a cell is rock.
const caveThreshold = 0.56

// generateCaves thresholds fractal noise into open caverns, smooths the result
// with a cellular pass, and then joins every cavern to the one the player
// spawns in.
func generateCaves(w, h, tileCount int, seed int64) *maps.Map {
	rng := rand.New(rand.NewSource(seed))
	noise := newSimplex(seed)
	g := newGrid(w, h, floor)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if g.edge(x, y) || noise.fbm(float64(x), float64(y), 0.09, 4) > caveThreshold {
				g.set(x, y, 1)
			}
		}
	}
	smooth(g)

	sx, sy := g.findSpawn()
	if !g.open(sx, sy) {
		// Solid noise field: open a chamber around the centre.
		for y := max(1, sy-1); y <= min(h-2, sy+1); y++ {
			for x := max(1, sx-1); x <= min(w-2, sx+1); x++ {
				g.set(x, y, floor)
			}
		}
	}
	g.ensureConnectivity(sx, sy, 1, rng)
	g.paintWalls(newSimplex(seed+1), tileCount)

	open := 0
	for _, t := range g.tiles {
		if t == floor {
			open++
		}
	}
	fmt.Fprintf(os.Stderr, "Caves: %d of %d cells open\n", open, len(g.tiles))
	return g.toMap(sx, sy, float64(rng.Intn(4)*90))
}

// smooth applies one 4-5 cellular automaton step to the interior: a cell
// becomes rock with five or more rock neighbours and opens with fewer than
// four.
func smooth(g *grid) {
	next := make([]byte, len(g.tiles))
	copy(next, g.tiles)
	for y := 1; y < g.h-1; y++ {
		for x := 1; x < g.w-1; x++ {
			rock := 0
			for ny := y - 1; ny <= y+1; ny++ {
				for nx := x - 1; nx <= x+1; nx++ {
					if (nx != x || ny != y) && !g.open(nx, ny) {
						rock++
					}
				}
			}
			switch {
			case rock >= 5:
				next[y*g.w+x] = 1
			case rock < 4:
				next[y*g.w+x] = floor
			}
		}
	}
	g.tiles = next
}

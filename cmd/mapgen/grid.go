package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"

	"tilecaster/internal/geom"
	"tilecaster/internal/maps"
)

const floor byte = 0

// grid is the scratch tile layout a generator carves into.
type grid struct {
	w, h  int
	tiles []byte
}

func newGrid(w, h int, fill byte) *grid {
	g := &grid{w: w, h: h, tiles: make([]byte, w*h)}
	for i := range g.tiles {
		g.tiles[i] = fill
	}
	return g
}

func (g *grid) in(x, y int) bool    { return x >= 0 && x < g.w && y >= 0 && y < g.h }
func (g *grid) at(x, y int) byte    { return g.tiles[y*g.w+x] }
func (g *grid) set(x, y int, t byte) { g.tiles[y*g.w+x] = t }
func (g *grid) open(x, y int) bool  { return g.in(x, y) && g.at(x, y) == floor }

// edge reports whether (x, y) is on the outer ring.
func (g *grid) edge(x, y int) bool { return x == 0 || y == 0 || x == g.w-1 || y == g.h-1 }

// paintWalls assigns every wall cell a texture id from low-frequency noise so
// neighbouring walls tend to share a material.
func (g *grid) paintWalls(noise *simplex, tileCount int) {
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if g.at(x, y) == floor {
				continue
			}
			v := noise.fbm(float64(x), float64(y), 0.12, 2)
			id := 1 + int(v*float64(tileCount))
			g.set(x, y, byte(max(1, min(id, tileCount))))
		}
	}
}

func (g *grid) toMap(sx, sy int, angle float64) *maps.Map {
	return &maps.Map{
		Width:      g.w,
		Height:     g.h,
		Spawn:      geom.V(float64(sx)+0.5, float64(sy)+0.5),
		SpawnAngle: angle,
		Tiles:      g.tiles,
	}
}

// findSpawn searches outward from the centre for an open cell with a mostly
// open 3x3 neighbourhood, falling back to any open cell.
func (g *grid) findSpawn() (int, int) {
	cx, cy := g.w/2, g.h/2
	maxR := max(g.w, g.h) / 2
	for r := 0; r <= maxR; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if abs(dx) != r && abs(dy) != r {
					continue // ring perimeter only
				}
				x, y := cx+dx, cy+dy
				if !g.open(x, y) {
					continue
				}
				n := 0
				for ny := y - 1; ny <= y+1; ny++ {
					for nx := x - 1; nx <= x+1; nx++ {
						if g.open(nx, ny) {
							n++
						}
					}
				}
				if n >= 7 {
					return x, y
				}
			}
		}
	}
	for y := 1; y < g.h-1; y++ {
		for x := 1; x < g.w-1; x++ {
			if g.open(x, y) {
				return x, y
			}
		}
	}
	return cx, cy
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

type point struct{ x, y int }

var neighbours = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// floodFill returns the open cells reachable from (sx, sy).
func (g *grid) floodFill(sx, sy int) map[point]bool {
	region := make(map[point]bool)
	if !g.open(sx, sy) {
		return region
	}
	stack := []point{{sx, sy}}
	region[point{sx, sy}] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range neighbours {
			np := point{p.x + d[0], p.y + d[1]}
			if region[np] || !g.open(np.x, np.y) {
				continue
			}
			region[np] = true
			stack = append(stack, np)
		}
	}
	return region
}

// fillThreshold is the size below which an unreachable pocket is walled up
// instead of joined to the main region.
const fillThreshold = 6

// ensureConnectivity makes every open cell reachable from the spawn: small
// pockets are filled with wall and larger ones get a corridor to the main
// region.
func (g *grid) ensureConnectivity(spawnX, spawnY int, wall byte, rng *rand.Rand) {
	mainRegion := g.floodFill(spawnX, spawnY)
	visited := make(map[point]bool, len(mainRegion))
	for p := range mainRegion {
		visited[p] = true
	}

	var islands []map[point]bool
	for y := 1; y < g.h-1; y++ {
		for x := 1; x < g.w-1; x++ {
			p := point{x, y}
			if visited[p] || !g.open(x, y) {
				continue
			}
			island := g.floodFill(x, y)
			for ip := range island {
				visited[ip] = true
			}
			islands = append(islands, island)
		}
	}
	if len(islands) == 0 {
		fmt.Fprintf(os.Stderr, "Connectivity: fully connected (%d open cells)\n", len(mainRegion))
		return
	}

	connected, filled := 0, 0
	for _, island := range islands {
		if joined(island, mainRegion) {
			connected++ // reached by an earlier corridor
			continue
		}
		if len(island) < fillThreshold {
			for p := range island {
				g.set(p.x, p.y, wall)
			}
			filled += len(island)
			continue
		}
		g.carveConnection(mainRegion, island, rng)
		for p := range island {
			for fp := range g.floodFill(p.x, p.y) {
				mainRegion[fp] = true
			}
			break
		}
		connected++
	}
	fmt.Fprintf(os.Stderr, "Connectivity: connected %d islands, filled %d pockets (%d cells)\n",
		connected, len(islands)-connected, filled)
}

func joined(island, region map[point]bool) bool {
	for p := range island {
		return region[p]
	}
	return false
}

// border returns the cells of region that touch a wall, in row-major order so
// a seed always carves the same corridors.
func (g *grid) border(region map[point]bool) []point {
	var out []point
	for p := range region {
		for _, d := range neighbours {
			nx, ny := p.x+d[0], p.y+d[1]
			if g.in(nx, ny) && !g.open(nx, ny) {
				out = append(out, p)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].y != out[j].y {
			return out[i].y < out[j].y
		}
		return out[i].x < out[j].x
	})
	return out
}

// carveConnection digs a corridor between the closest border cells of the two
// regions. Large borders are sampled.
func (g *grid) carveConnection(mainRegion, island map[point]bool, rng *rand.Rand) {
	from, to := g.border(island), g.border(mainRegion)
	if len(from) > 200 {
		rng.Shuffle(len(from), func(i, j int) { from[i], from[j] = from[j], from[i] })
		from = from[:200]
	}
	if len(to) > 500 {
		rng.Shuffle(len(to), func(i, j int) { to[i], to[j] = to[j], to[i] })
		to = to[:500]
	}

	best := math.MaxInt
	var a, b point
	for _, ip := range from {
		for _, mp := range to {
			if d := abs(ip.x-mp.x) + abs(ip.y-mp.y); d < best {
				best, a, b = d, ip, mp
			}
		}
	}

	x, y := a.x, a.y
	for x != b.x || y != b.y {
		if abs(b.x-x) >= abs(b.y-y) {
			x += sign(b.x - x)
		} else {
			y += sign(b.y - y)
		}
		if !g.edge(x, y) {
			g.set(x, y, floor)
		}
	}
}

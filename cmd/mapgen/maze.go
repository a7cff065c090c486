package main

import (
	"math/rand"

	"tilecaster/internal/maps"
)

// generateMaze carves a perfect maze with a randomized depth-first search over
// the odd cells, then knocks out a few extra walls so it has loops. Even
// dimensions are handled by leaving the last row or column solid.
func generateMaze(w, h, tileCount int, seed int64) *maps.Map {
	rng := rand.New(rand.NewSource(seed))
	g := newGrid(w, h, 1)

	cw, ch := (w-1)/2, (h-1)/2
	cell := func(cx, cy int) (int, int) { return 2*cx + 1, 2*cy + 1 }

	seen := make([]bool, cw*ch)
	stack := []point{{0, 0}}
	seen[0] = true
	sx, sy := cell(0, 0)
	g.set(sx, sy, floor)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		var next []point
		for _, d := range neighbours {
			nx, ny := cur.x+d[0], cur.y+d[1]
			if nx >= 0 && nx < cw && ny >= 0 && ny < ch && !seen[ny*cw+nx] {
				next = append(next, point{nx, ny})
			}
		}
		if len(next) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		n := next[rng.Intn(len(next))]
		seen[n.y*cw+n.x] = true
		ax, ay := cell(cur.x, cur.y)
		bx, by := cell(n.x, n.y)
		g.set((ax+bx)/2, (ay+by)/2, floor)
		g.set(bx, by, floor)
		stack = append(stack, n)
	}

	// Open roughly one in ten interior walls that separate two corridors.
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if g.open(x, y) || rng.Intn(10) != 0 {
				continue
			}
			if (g.open(x-1, y) && g.open(x+1, y) && !g.open(x, y-1) && !g.open(x, y+1)) ||
				(g.open(x, y-1) && g.open(x, y+1) && !g.open(x-1, y) && !g.open(x+1, y)) {
				g.set(x, y, floor)
			}
		}
	}

	g.paintWalls(newSimplex(seed), tileCount)

	angle := 0.0
	if !g.open(2, 1) {
		angle = 90
	}
	return g.toMap(sx, sy, angle)
}

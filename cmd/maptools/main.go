package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tilecaster/internal/game"
	"tilecaster/internal/maps"
	"tilecaster/internal/raycast"
	"tilecaster/internal/render"
	"tilecaster/internal/world"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	tileCount := fs.Int("tile-count", 8, "number of wall textures")
	fs.Parse(os.Args[2:])
	args := fs.Args()

	switch cmd {
	case "validate":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: maptools validate [-tile-count N] <maps-dir>")
			os.Exit(1)
		}
		os.Exit(runValidate(os.Stdout, args[0], *tileCount))
	case "viz":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: maptools viz <map-file>")
			os.Exit(1)
		}
		os.Exit(withMap(args[0], func(m *maps.Map) { runViz(os.Stdout, m) }))
	case "stats":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: maptools stats <map-file>")
			os.Exit(1)
		}
		os.Exit(withMap(args[0], func(m *maps.Map) { runStats(os.Stdout, m) }))
	case "all":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: maptools all [-tile-count N] <maps-dir>")
			os.Exit(1)
		}
		os.Exit(runAll(args[0], *tileCount))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: maptools <command> [flags] <path>

Commands:
  validate <maps-dir>   Validate all maps in directory
  viz      <map-file>   Render map as true-color half-block art
  stats    <map-file>   Show tile distribution and walkable %
  all      <maps-dir>   Run validate + viz + stats for all maps`)
}

func withMap(path string, fn func(*maps.Map)) int {
	m, err := maps.LoadMap(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fn(m)
	return 0
}

// --- validate ---

// validateMap returns every problem with m as a room for tileCount textures.
func validateMap(m *maps.Map, tileCount int) []string {
	var problems []string
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			id, _ := m.TileAt(x, y)
			if int(id) > tileCount {
				problems = append(problems, fmt.Sprintf("tile (%d,%d) id %d has no texture (max %d)", x, y, id, tileCount))
			}
			edge := x == 0 || y == 0 || x == m.Width-1 || y == m.Height-1
			if edge && id == 0 {
				problems = append(problems, fmt.Sprintf("border cell (%d,%d) is open", x, y))
			}
		}
	}
	if len(problems) > 0 {
		return problems
	}

	// The atlas is optional here, so texture size does not matter.
	if _, err := game.NewWorld(m, nil, 1, tileCount); err != nil {
		return append(problems, err.Error())
	}
	if open, reached := reachability(m); reached < open {
		problems = append(problems, fmt.Sprintf("%d of %d open cells unreachable from spawn", open-reached, open))
	}
	return problems
}

// reachability counts open cells and how many of them connect to the spawn.
func reachability(m *maps.Map) (open, reached int) {
	for _, id := range m.Tiles {
		if id == 0 {
			open++
		}
	}
	sx, sy := m.Spawn.Cell()
	if id, ok := m.TileAt(sx, sy); !ok || id != 0 {
		return open, 0
	}
	seen := make([]bool, len(m.Tiles))
	stack := [][2]int{{sx, sy}}
	seen[sy*m.Width+sx] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		reached++
		for _, d := range [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
			nx, ny := p[0]+d[0], p[1]+d[1]
			if id, ok := m.TileAt(nx, ny); !ok || id != 0 || seen[ny*m.Width+nx] {
				continue
			}
			seen[ny*m.Width+nx] = true
			stack = append(stack, [2]int{nx, ny})
		}
	}
	return open, reached
}

func runValidate(w io.Writer, dir string, tileCount int) int {
	allMaps, err := maps.LoadMaps(dir)
	if err != nil {
		fmt.Fprintf(w, "FAIL: %v\n", err)
		return 1
	}

	names := make([]string, 0, len(allMaps))
	for name := range allMaps {
		names = append(names, name)
	}
	sort.Strings(names)

	errors := 0
	for _, name := range names {
		m := allMaps[name]
		fmt.Fprintf(w, "Validating %q...\n", name)
		problems := validateMap(m, tileCount)
		for _, p := range problems {
			fmt.Fprintf(w, "  ERROR: %s\n", p)
		}
		errors += len(problems)
		if len(problems) == 0 {
			fmt.Fprintf(w, "  OK (%dx%d, spawn %.2f,%.2f)\n", m.Width, m.Height, m.Spawn.X, m.Spawn.Y)
		}
	}

	if errors > 0 {
		fmt.Fprintf(w, "\n%d error(s) found\n", errors)
		return 1
	}
	fmt.Fprintf(w, "\nAll %d maps valid\n", len(allMaps))
	return 0
}

// --- viz ---

var spawnColor = render.RGB(0, 255, 0)

// runViz draws two map rows per terminal line with half-block cells, in the
// flat wall colors the renderer uses. Floor is grey and the spawn cell green.
func runViz(w io.Writer, m *maps.Map) {
	fmt.Fprintf(w, "%s (%dx%d)\n", m.Name, m.Width, m.Height)

	sx, sy := m.Spawn.Cell()
	colorAt := func(x, y int) render.Color {
		if x == sx && y == sy {
			return spawnColor
		}
		id, ok := m.TileAt(x, y)
		if !ok {
			return render.Black
		}
		if id == 0 {
			return raycast.DefaultFloor
		}
		return world.ColorForTile(id)
	}

	var sb strings.Builder
	for y := 0; y < m.Height; y += 2 {
		for x := 0; x < m.Width; x++ {
			render.WriteCellSGR(&sb, render.PixelCell(colorAt(x, y), colorAt(x, y+1)))
		}
		sb.WriteString(render.Reset)
		sb.WriteByte('\n')
	}
	io.WriteString(w, sb.String())
	fmt.Fprintf(w, "\nSpawn: (%.2f,%.2f) facing %.0f\n", m.Spawn.X, m.Spawn.Y, m.SpawnAngle)
}

// --- stats ---

func runStats(w io.Writer, m *maps.Map) {
	total := m.Width * m.Height
	fmt.Fprintf(w, "%s (%dx%d = %d tiles)\n\n", m.Name, m.Width, m.Height, total)

	counts := make(map[byte]int)
	for _, id := range m.Tiles {
		counts[id]++
	}
	ids := make([]byte, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		pct := float64(counts[id]) / float64(total) * 100
		bar := strings.Repeat("█", int(pct/2))
		fmt.Fprintf(w, "  %-8s %4d (%5.1f%%) %s\n", tileName(id), counts[id], pct, bar)
	}

	open, reached := reachability(m)
	fmt.Fprintf(w, "\nWalkable:  %d/%d (%.1f%%)\n", open, total, float64(open)/float64(total)*100)
	fmt.Fprintf(w, "Reachable: %d/%d\n", reached, open)
}

func tileName(id byte) string {
	if id == 0 {
		return "floor"
	}
	return fmt.Sprintf("wall %d", id)
}

// --- all ---

func runAll(dir string, tileCount int) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading directory: %v\n", err)
		return 1
	}

	// Run validate first
	fmt.Println("=== VALIDATE ===")
	if code := runValidate(os.Stdout, dir, tileCount); code != 0 {
		return code
	}

	// Then viz + stats for each map
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		fmt.Printf("\n=== VIZ: %s ===\n", entry.Name())
		withMap(path, func(m *maps.Map) { runViz(os.Stdout, m) })
		fmt.Printf("\n=== STATS: %s ===\n", entry.Name())
		withMap(path, func(m *maps.Map) { runStats(os.Stdout, m) })
	}
	return 0
}

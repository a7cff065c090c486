package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tilecaster/internal/maps"
)

func main() {
	genType := flag.String("type", "", "map generator (maze, caves)")
	atlasOut := flag.String("atlas", "", "write a procedural texture atlas PNG to this path")
	seed := flag.Int64("seed", 0, "random seed (0 = random)")
	size := flag.String("size", "21x21", "map size as WxH")
	name := flag.String("name", "", "map name (default: generator type)")
	tileSize := flag.Int("tile-size", 64, "atlas texture edge in pixels")
	tileCount := flag.Int("tile-count", 8, "number of wall textures")
	out := flag.String("out", "", "map output file (default: stdout)")
	flag.Parse()

	if *genType == "" && *atlasOut == "" {
		fmt.Fprintln(os.Stderr, "Error: -type or -atlas is required")
		fmt.Fprintln(os.Stderr, "Usage: mapgen -type maze|caves [-seed N] [-size WxH] [-name Name] [-out file.json]")
		fmt.Fprintln(os.Stderr, "       mapgen -atlas atlas.png [-tile-size 64] [-tile-count 8] [-seed N]")
		os.Exit(1)
	}
	if *tileCount < 1 || *tileCount > 255 || *tileSize < 1 {
		fmt.Fprintf(os.Stderr, "Error: invalid tile layout %d x %dpx\n", *tileCount, *tileSize)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	if *atlasOut != "" {
		if err := writeAtlas(*atlasOut, *tileSize, *tileCount, *seed); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d tiles of %dpx)\n", *atlasOut, *tileCount, *tileSize)
	}
	if *genType == "" {
		return
	}

	w, h, err := parseSize(*size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *name == "" {
		*name = strings.ToUpper((*genType)[:1]) + (*genType)[1:]
	}

	fmt.Fprintf(os.Stderr, "Generating %dx%d %s map %q (seed %d)...\n", w, h, *genType, *name, *seed)

	var m *maps.Map
	switch *genType {
	case "maze":
		m = generateMaze(w, h, *tileCount, *seed)
	case "caves":
		m = generateCaves(w, h, *tileCount, *seed)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown generator type %q (available: maze, caves)\n", *genType)
		os.Exit(1)
	}
	m.Name = *name
	fmt.Fprintf(os.Stderr, "Spawn: (%.1f, %.1f)\n", m.Spawn.X, m.Spawn.Y)

	data, err := m.Encode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		os.Exit(1)
	}

	if *out == "" {
		os.Stdout.Write(data)
		os.Stdout.WriteString("\n")
	} else {
		if err := os.WriteFile(*out, append(data, '\n'), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", *out, len(data))
	}

	// Print tile distribution summary
	counts := make(map[byte]int)
	for _, id := range m.Tiles {
		counts[id]++
	}
	total := len(m.Tiles)
	fmt.Fprintf(os.Stderr, "\nTile distribution:\n")
	for id := 0; id <= *tileCount; id++ {
		if c, ok := counts[byte(id)]; ok {
			fmt.Fprintf(os.Stderr, "  %-8s %5d (%5.1f%%)\n", tileLabel(byte(id)), c, float64(c)/float64(total)*100)
		}
	}
}

func tileLabel(id byte) string {
	if id == 0 {
		return "floor"
	}
	return "wall " + strconv.Itoa(int(id))
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 5 {
		return 0, 0, fmt.Errorf("invalid width %q (minimum 5)", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 5 {
		return 0, 0, fmt.Errorf("invalid height %q (minimum 5)", parts[1])
	}
	return w, h, nil
}

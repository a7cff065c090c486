// Package maps loads room assets from disk: tile grids from JSON and wall
// texture atlases from PNG.
package maps

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tilecaster/internal/geom"
)

// Map is a decoded tile grid. Tile id 0 is walkable, anything else is a wall.
type Map struct {
	Name       string
	Width      int
	Height     int
	Spawn      geom.Vec
	SpawnAngle float64
	Tiles      []byte // row-major, len == Width*Height
}

// Spawn defines the spawn pose.
type Spawn struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

// jsonMap is the on-disk JSON format.
type jsonMap struct {
	Name   string  `json:"name"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Spawn  Spawn   `json:"spawn"`
	Tiles  [][]int `json:"tiles"`
}

// LoadMap reads a JSON map file from disk.
func LoadMap(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}
	m, err := ParseMap(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseMap decodes and validates a JSON map document.
func ParseMap(data []byte) (*Map, error) {
	var jm jsonMap
	if err := json.Unmarshal(data, &jm); err != nil {
		return nil, fmt.Errorf("parse map JSON: %w", err)
	}

	// Validate tile dimensions
	if jm.Width <= 0 || jm.Height <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d", jm.Width, jm.Height)
	}
	if len(jm.Tiles) != jm.Height {
		return nil, fmt.Errorf("tile rows %d != declared height %d", len(jm.Tiles), jm.Height)
	}
	tiles := make([]byte, 0, jm.Width*jm.Height)
	for y, row := range jm.Tiles {
		if len(row) != jm.Width {
			return nil, fmt.Errorf("row %d has %d tiles, expected %d", y, len(row), jm.Width)
		}
		for x, id := range row {
			if id < 0 || id > 255 {
				return nil, fmt.Errorf("tile (%d,%d) id %d out of byte range", x, y, id)
			}
			tiles = append(tiles, byte(id))
		}
	}

	spawn := geom.V(jm.Spawn.X, jm.Spawn.Y)
	if !spawn.Finite() || spawn.X < 0 || spawn.Y < 0 || spawn.X >= float64(jm.Width) || spawn.Y >= float64(jm.Height) {
		return nil, fmt.Errorf("spawn (%g,%g) outside %dx%d map", spawn.X, spawn.Y, jm.Width, jm.Height)
	}

	return &Map{
		Name:       jm.Name,
		Width:      jm.Width,
		Height:     jm.Height,
		Spawn:      spawn,
		SpawnAngle: geom.NormalizeAngle(jm.Spawn.Angle),
		Tiles:      tiles,
	}, nil
}

// Encode marshals the map back into its on-disk JSON form.
func (m *Map) Encode() ([]byte, error) {
	jm := jsonMap{
		Name:   m.Name,
		Width:  m.Width,
		Height: m.Height,
		Spawn:  Spawn{X: m.Spawn.X, Y: m.Spawn.Y, Angle: m.SpawnAngle},
		Tiles:  make([][]int, m.Height),
	}
	for y := 0; y < m.Height; y++ {
		row := make([]int, m.Width)
		for x := 0; x < m.Width; x++ {
			row[x] = int(m.Tiles[y*m.Width+x])
		}
		jm.Tiles[y] = row
	}
	return json.MarshalIndent(jm, "", "  ")
}

// TileAt returns the tile id at the given coordinates, or 0 and false when
// out of bounds.
func (m *Map) TileAt(x, y int) (byte, bool) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return 0, false
	}
	return m.Tiles[y*m.Width+x], true
}

// LoadMaps scans a directory for *.json files, loads each as a Map,
// and returns them indexed by Name.
func LoadMaps(dir string) (map[string]*Map, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read maps directory: %w", err)
	}

	allMaps := make(map[string]*Map)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		m, err := LoadMap(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", entry.Name(), err)
		}
		if _, exists := allMaps[m.Name]; exists {
			return nil, fmt.Errorf("duplicate map name %q in %s", m.Name, entry.Name())
		}
		allMaps[m.Name] = m
	}
	return allMaps, nil
}

// DefaultMap returns a walled 16x16 room with a few pillars, used when no map
// file is configured.
func DefaultMap() *Map {
	w, h := 16, 16
	tiles := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || x == w-1 || y == 0 || y == h-1 {
				tiles[y*w+x] = byte(1 + (x+y)%4)
			}
		}
	}
	for _, p := range [][3]int{{4, 4, 2}, {11, 4, 4}, {4, 11, 6}, {11, 11, 7}, {7, 7, 5}, {8, 7, 5}} {
		tiles[p[1]*w+p[0]] = byte(p[2])
	}

	return &Map{
		Name:   "Default",
		Width:  w,
		Height: h,
		Spawn:  geom.V(2.5, 2.5),
		Tiles:  tiles,
	}
}

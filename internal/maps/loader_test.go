package maps

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const smallMap = `{
  "name": "Small",
  "width": 3,
  "height": 2,
  "spawn": {"x": 1.5, "y": 0.5, "angle": -90},
  "tiles": [[1, 0, 2], [0, 0, 8]]
}`

func TestParseMap(t *testing.T) {
	m, err := ParseMap([]byte(smallMap))
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	if m.Name != "Small" || m.Width != 3 || m.Height != 2 {
		t.Errorf("header = %q %dx%d", m.Name, m.Width, m.Height)
	}
	if want := []byte{1, 0, 2, 0, 0, 8}; !bytes.Equal(m.Tiles, want) {
		t.Errorf("Tiles = %v, want %v (row-major)", m.Tiles, want)
	}
	if m.Spawn.X != 1.5 || m.Spawn.Y != 0.5 {
		t.Errorf("Spawn = %+v", m.Spawn)
	}
	if m.SpawnAngle != 270 {
		t.Errorf("SpawnAngle = %v, want normalized 270", m.SpawnAngle)
	}
	if id, ok := m.TileAt(2, 1); !ok || id != 8 {
		t.Errorf("TileAt(2,1) = %d,%v", id, ok)
	}
	if _, ok := m.TileAt(3, 0); ok {
		t.Error("TileAt(3,0) should be out of bounds")
	}
}

func TestParseMapErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bad json", `{`, "parse map JSON"},
		{"zero size", `{"width":0,"height":1,"tiles":[[]]}`, "invalid map size"},
		{"row count", `{"width":1,"height":2,"tiles":[[0]]}`, "tile rows 1 != declared height 2"},
		{"row width", `{"width":2,"height":1,"tiles":[[0]]}`, "row 0 has 1 tiles"},
		{"id range", `{"width":1,"height":1,"tiles":[[256]]}`, "out of byte range"},
		{"spawn outside", `{"width":1,"height":1,"spawn":{"x":1,"y":0},"tiles":[[0]]}`, "spawn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMap([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	m, err := ParseMap([]byte(smallMap))
	if err != nil {
		t.Fatal(err)
	}
	data, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := ParseMap(data)
	if err != nil {
		t.Fatalf("ParseMap(Encode()): %v", err)
	}
	if !bytes.Equal(back.Tiles, m.Tiles) || back.Spawn != m.Spawn || back.SpawnAngle != m.SpawnAngle {
		t.Errorf("round trip mismatch: %+v vs %+v", back, m)
	}
}

func TestLoadMaps(t *testing.T) {
	dir := t.TempDir()
	write := func(name, doc string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.json", smallMap)
	write("notes.txt", "ignored")

	all, err := LoadMaps(dir)
	if err != nil {
		t.Fatalf("LoadMaps: %v", err)
	}
	if len(all) != 1 || all["Small"] == nil {
		t.Errorf("LoadMaps = %v", all)
	}

	write("b.json", smallMap)
	if _, err := LoadMaps(dir); err == nil || !strings.Contains(err.Error(), "duplicate map name") {
		t.Errorf("duplicate names: err = %v", err)
	}
}

func TestLoadMapMissingFile(t *testing.T) {
	_, err := LoadMap(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestDefaultMapIsEnclosed(t *testing.T) {
	m := DefaultMap()
	for x := 0; x < m.Width; x++ {
		for _, y := range []int{0, m.Height - 1} {
			if id, _ := m.TileAt(x, y); id == 0 {
				t.Errorf("border tile (%d,%d) is open", x, y)
			}
		}
	}
	sx, sy := m.Spawn.Cell()
	if id, _ := m.TileAt(sx, sy); id != 0 {
		t.Errorf("spawn cell (%d,%d) is a wall", sx, sy)
	}
}

// stripePNG builds a w x h image where pixel (x,y) = (x, y, 7).
func stripePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeAtlas(t *testing.T) {
	a, err := DecodeAtlas(bytes.NewReader(stripePNG(t, 8, 4)), 4)
	if err != nil {
		t.Fatalf("DecodeAtlas: %v", err)
	}
	if a.Width != 8 || a.Height != 4 || len(a.Pix) != 8*4*3 {
		t.Fatalf("atlas %dx%d, %d bytes", a.Width, a.Height, len(a.Pix))
	}
	i := (2*8 + 5) * 3
	if a.Pix[i] != 5 || a.Pix[i+1] != 2 || a.Pix[i+2] != 7 {
		t.Errorf("pixel (5,2) = %v", a.Pix[i:i+3])
	}

	var buf bytes.Buffer
	if err := a.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	back, err := DecodeAtlas(&buf, 4)
	if err != nil {
		t.Fatalf("decode re-encoded atlas: %v", err)
	}
	if !bytes.Equal(back.Pix, a.Pix) {
		t.Error("re-encoded atlas differs")
	}
}

func TestDecodeAtlasRejectsLayout(t *testing.T) {
	for _, size := range [][2]int{{6, 4}, {8, 5}, {8, 3}} {
		_, err := DecodeAtlas(bytes.NewReader(stripePNG(t, size[0], size[1])), 4)
		if !errors.Is(err, ErrAtlasSize) {
			t.Errorf("%dx%d: err = %v, want ErrAtlasSize", size[0], size[1], err)
		}
	}
	if _, err := DecodeAtlas(strings.NewReader("not a png"), 4); err == nil {
		t.Error("garbage input should fail to decode")
	}
}

func TestLoadAtlasDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "wall_2.png"), stripePNG(t, 4, 4), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "wall_9.png"), stripePNG(t, 4, 4), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := LoadAtlas(dir, 4, 3)
	if err != nil {
		t.Fatalf("LoadAtlas(dir): %v", err)
	}
	if a.Width != 12 || a.Height != 4 {
		t.Fatalf("atlas %dx%d, want 12x4", a.Width, a.Height)
	}
	// Tile 2 occupies x in [4,8); its local (1,3) is atlas (5,3).
	i := (3*12 + 5) * 3
	if a.Pix[i] != 1 || a.Pix[i+1] != 3 || a.Pix[i+2] != 7 {
		t.Errorf("atlas (5,3) = %v", a.Pix[i:i+3])
	}
	// Tile 1 was missing and stays black.
	if a.Pix[0] != 0 || a.Pix[1] != 0 || a.Pix[2] != 0 {
		t.Errorf("missing tile not black: %v", a.Pix[:3])
	}
}

func TestLoadAtlasFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.png")
	if err := os.WriteFile(path, stripePNG(t, 12, 4), 0o644); err != nil {
		t.Fatal(err)
	}
	a, err := LoadAtlas(path, 4, 3)
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}
	if a.Width != 12 {
		t.Errorf("Width = %d", a.Width)
	}
	if _, err := LoadAtlas(filepath.Join(t.TempDir(), "missing.png"), 4, 3); err == nil {
		t.Error("missing atlas should fail")
	}
}

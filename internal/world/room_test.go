package world

import (
	"errors"
	"reflect"
	"testing"

	"tilecaster/internal/geom"
	"tilecaster/internal/render"
)

const (
	testTileSize  = 4
	testTileCount = 3
)

// testAtlas builds a 3-tile atlas of 4x4 textures where the pixel at atlas
// column ax and row y is (tile, ax, y).
func testAtlas() *Atlas {
	w, h := testTileSize*testTileCount, testTileSize
	a := &Atlas{Width: w, Height: h, Pix: make([]byte, w*h*3)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			a.Pix[i] = byte(x/testTileSize + 1)
			a.Pix[i+1] = byte(x)
			a.Pix[i+2] = byte(y)
		}
	}
	return a
}

// buildRoom creates a room from rows of tile ids.
func buildRoom(t *testing.T, rows [][]byte, atlas *Atlas) *Room {
	t.Helper()
	h := len(rows)
	w := 0
	if h > 0 {
		w = len(rows[0])
	}
	var tiles []byte
	for _, row := range rows {
		tiles = append(tiles, row...)
	}
	r, err := NewRoom(w, h, tiles, atlas, testTileSize, testTileCount)
	if err != nil {
		t.Fatalf("NewRoom: %v", err)
	}
	return r
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestTileAtMatchesGrid(t *testing.T) {
	rows := [][]byte{
		{1, 1, 1},
		{1, 0, 2},
		{3, 0, 1},
		{1, 1, 1},
	}
	r := buildRoom(t, rows, nil)
	if r.Width() != 3 || r.Height() != 4 {
		t.Fatalf("size = %dx%d, want 3x4", r.Width(), r.Height())
	}
	for y := range rows {
		for x := range rows[y] {
			if got := r.TileAt(x, y); got != rows[y][x] {
				t.Errorf("TileAt(%d,%d) = %d, want %d", x, y, got, rows[y][x])
			}
		}
	}
}

func TestTileAtRejectsOutOfBounds(t *testing.T) {
	r := buildRoom(t, [][]byte{{0, 0, 0}, {0, 0, 0}}, nil)

	// (3,0) would read (0,1) if the row-major index wrapped.
	for _, c := range [][2]int{{3, 0}, {0, 2}, {-1, 0}, {0, -1}, {3, 1}} {
		mustPanic(t, "TileAt", func() { r.TileAt(c[0], c[1]) })
		if _, err := r.Lookup(c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Lookup(%d,%d) err = %v, want ErrOutOfBounds", c[0], c[1], err)
		}
	}
	if id, err := r.Lookup(2, 1); err != nil || id != 0 {
		t.Errorf("Lookup(2,1) = %d, %v", id, err)
	}
}

func TestTileAtVecTruncates(t *testing.T) {
	r := buildRoom(t, [][]byte{{0, 2}, {3, 0}}, nil)
	if got := r.TileAtVec(geom.V(1.99, 0.01)); got != 2 {
		t.Errorf("TileAtVec(1.99,0.01) = %d, want 2", got)
	}
	if got := r.TileAtVec(geom.V(0.5, 1.5)); got != 3 {
		t.Errorf("TileAtVec(0.5,1.5) = %d, want 3", got)
	}
}

func TestNewRoomValidation(t *testing.T) {
	good := testAtlas()
	tests := []struct {
		name    string
		w, h    int
		tiles   []byte
		atlas   *Atlas
		wantErr error
	}{
		{"short grid", 2, 2, []byte{0, 0, 0}, nil, nil},
		{"unknown tile", 1, 1, []byte{4}, nil, ErrBadTile},
		{"atlas byte length", 1, 1, []byte{0}, &Atlas{Width: 12, Height: 4, Pix: make([]byte, 10)}, ErrAtlasSize},
		{"atlas too narrow", 1, 1, []byte{0}, &Atlas{Width: 8, Height: 4, Pix: make([]byte, 8*4*3)}, ErrAtlasSize},
		{"atlas wrong height", 1, 1, []byte{0}, &Atlas{Width: 12, Height: 3, Pix: make([]byte, 12*3*3)}, ErrAtlasSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoom(tt.w, tt.h, tt.tiles, tt.atlas, testTileSize, testTileCount)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := NewRoom(0, 0, nil, good, testTileSize, testTileCount); err != nil {
		t.Errorf("empty room with atlas: %v", err)
	}
}

func TestNewRoomCopiesGrid(t *testing.T) {
	tiles := []byte{0, 1}
	r, err := NewRoom(2, 1, tiles, nil, testTileSize, testTileCount)
	if err != nil {
		t.Fatal(err)
	}
	tiles[0] = 2
	if r.TileAt(0, 0) != 0 {
		t.Error("room must not alias the caller's grid")
	}
}

func TestColorForTile(t *testing.T) {
	want := map[byte]render.Color{
		0: render.RGB(0, 0, 0),
		1: render.RGB(255, 0, 255),
		2: render.RGB(255, 0, 0),
		3: render.RGB(0, 0, 0),
		4: render.RGB(128, 128, 128),
		5: render.RGB(0, 0, 0),
		6: render.RGB(192, 192, 192),
		7: render.RGB(64, 64, 0),
		8: render.RGB(0, 0, 0),
	}
	for id, c := range want {
		if got := ColorForTile(id); got != c {
			t.Errorf("ColorForTile(%d) = %+v, want %+v", id, got, c)
		}
	}
}

func TestTextureColumnLength(t *testing.T) {
	r := buildRoom(t, [][]byte{{1}}, testAtlas())
	for _, h := range []int{1, 2, 3, 4, 5, 7, 64, 1000} {
		if got := len(r.TextureColumn(2, 1, h)); got != h {
			t.Errorf("len(TextureColumn(2,1,%d)) = %d", h, got)
		}
	}
	if got := len(r.TextureColumn(1, 0, 0)); got != 0 {
		t.Errorf("zero-height column has %d samples", got)
	}
}

func TestTextureColumnSampling(t *testing.T) {
	r := buildRoom(t, [][]byte{{1}}, testAtlas())

	// Tile 2, local x 3 lives at atlas column (2-1)*4+3 = 7.
	tests := []struct {
		name string
		h    int
		rows []byte // expected texture rows
	}{
		{"identity", 4, []byte{0, 1, 2, 3}},
		{"stretched", 8, []byte{0, 0, 1, 1, 2, 2, 3, 3}},
		{"shrunk", 2, []byte{0, 2}},
		{"uneven", 3, []byte{0, 1, 2}}, // 0*4/3, 1*4/3, 2*4/3
		{"single", 1, []byte{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := r.TextureColumn(2, 3, tt.h)
			for y, c := range col {
				want := render.RGB(2, 7, tt.rows[y])
				if c != want {
					t.Errorf("row %d = %+v, want %+v", y, c, want)
				}
			}
		})
	}
}

func TestTextureColumnDeterministic(t *testing.T) {
	r := buildRoom(t, [][]byte{{1}}, testAtlas())
	a := r.TextureColumn(3, 2, 37)
	b := r.TextureColumn(3, 2, 37)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical arguments produced different columns")
	}

	buf := make([]render.Color, 0, 37)
	c := r.AppendTextureColumn(buf[:0], 3, 2, 37)
	if !reflect.DeepEqual(a, c) {
		t.Error("AppendTextureColumn differs from TextureColumn")
	}
}

func TestTextureColumnContractViolations(t *testing.T) {
	r := buildRoom(t, [][]byte{{1}}, testAtlas())
	mustPanic(t, "tile 0", func() { r.TextureColumn(0, 0, 4) })
	mustPanic(t, "tile > count", func() { r.TextureColumn(4, 0, 4) })
	mustPanic(t, "local x", func() { r.TextureColumn(1, testTileSize, 4) })
	mustPanic(t, "negative height", func() { r.TextureColumn(1, 0, -1) })

	flat := buildRoom(t, [][]byte{{1}}, nil)
	mustPanic(t, "no atlas", func() { flat.TextureColumn(1, 0, 4) })
}

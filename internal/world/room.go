// Package world holds the immutable room a player moves through and the
// player's pose within it.
package world

import (
	"errors"
	"fmt"

	"tilecaster/internal/geom"
	"tilecaster/internal/render"
)

var (
	// ErrOutOfBounds is returned by Lookup for coordinates outside the grid.
	ErrOutOfBounds = errors.New("tile out of bounds")
	// ErrBadTile is returned by NewRoom when the grid references an unknown texture.
	ErrBadTile = errors.New("tile id out of range")
	// ErrAtlasSize is returned by NewRoom when the atlas does not match the tile layout.
	ErrAtlasSize = errors.New("atlas size mismatch")
)

// Atlas is raw RGB texture data: Width*Height*3 bytes, row-major, with one
// square texture per wall tile id laid out left to right.
type Atlas struct {
	Width  int
	Height int
	Pix    []byte
}

// Room is a rectangular tile grid plus the wall texture atlas. Tile id 0 is
// walkable; ids 1..TileCount are walls with a texture in the atlas. A Room is
// read-only after construction and safe to share between goroutines.
type Room struct {
	width, height int
	tiles         []byte
	atlas         *Atlas
	tileSize      int
	tileCount     int
}

// NewRoom validates the grid and atlas and builds a room. atlas may be nil, in
// which case only flat colors are available.
func NewRoom(width, height int, tiles []byte, atlas *Atlas, tileSize, tileCount int) (*Room, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid room size %dx%d", width, height)
	}
	if len(tiles) != width*height {
		return nil, fmt.Errorf("grid has %d tiles, want %d for %dx%d", len(tiles), width*height, width, height)
	}
	if tileSize <= 0 || tileCount <= 0 || tileCount > 255 {
		return nil, fmt.Errorf("invalid tile size %d / count %d", tileSize, tileCount)
	}
	for i, id := range tiles {
		if int(id) > tileCount {
			return nil, fmt.Errorf("%w: tile (%d,%d) has id %d, max %d", ErrBadTile, i%width, i/width, id, tileCount)
		}
	}

	if atlas != nil {
		if len(atlas.Pix) != atlas.Width*atlas.Height*3 {
			return nil, fmt.Errorf("%w: %d bytes for %dx%d RGB", ErrAtlasSize, len(atlas.Pix), atlas.Width, atlas.Height)
		}
		if atlas.Width%tileSize != 0 || atlas.Width < tileSize*tileCount || atlas.Height < tileSize {
			return nil, fmt.Errorf("%w: %dx%d cannot hold %d tiles of %dpx", ErrAtlasSize, atlas.Width, atlas.Height, tileCount, tileSize)
		}
	}

	grid := make([]byte, len(tiles))
	copy(grid, tiles)
	return &Room{
		width:     width,
		height:    height,
		tiles:     grid,
		atlas:     atlas,
		tileSize:  tileSize,
		tileCount: tileCount,
	}, nil
}

// Width returns the grid width in tiles.
func (r *Room) Width() int { return r.width }

// Height returns the grid height in tiles.
func (r *Room) Height() int { return r.height }

// TileSize returns the edge length of a texture in pixels.
func (r *Room) TileSize() int { return r.tileSize }

// TileCount returns the number of wall textures.
func (r *Room) TileCount() int { return r.tileCount }

// HasAtlas reports whether wall textures are available.
func (r *Room) HasAtlas() bool { return r.atlas != nil }

// Contains reports whether (x,y) is a cell of the grid.
func (r *Room) Contains(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

// TileAt returns the tile id at (x,y). Coordinates outside the grid are a
// programming error and panic; use Lookup for untrusted input.
func (r *Room) TileAt(x, y int) byte {
	if !r.Contains(x, y) {
		panic(fmt.Sprintf("world: tile (%d,%d) out of bounds %dx%d", x, y, r.width, r.height))
	}
	return r.tiles[y*r.width+x]
}

// Lookup returns the tile id at (x,y) or ErrOutOfBounds.
func (r *Room) Lookup(x, y int) (byte, error) {
	if !r.Contains(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, r.width, r.height)
	}
	return r.tiles[y*r.width+x], nil
}

// TileAtVec returns the tile under a position, truncating each component.
func (r *Room) TileAtVec(p geom.Vec) byte {
	x, y := p.Cell()
	return r.TileAt(x, y)
}

// IsWall reports whether the cell holds a non-zero tile.
func (r *Room) IsWall(x, y int) bool {
	return r.TileAt(x, y) != 0
}

// ColorForTile returns the flat debug color for a tile id, used when no atlas
// is loaded. Unlisted ids, including 0, are black.
func ColorForTile(id byte) render.Color {
	switch id {
	case 1:
		return render.RGB(255, 0, 255)
	case 2:
		return render.RGB(255, 0, 0)
	case 4:
		return render.RGB(128, 128, 128)
	case 6:
		return render.RGB(192, 192, 192)
	case 7:
		return render.RGB(64, 64, 0)
	default:
		return render.RGB(0, 0, 0)
	}
}

// TextureColumn samples one vertical strip of a wall texture, scaled to
// outHeight pixels with nearest-neighbor rows (row y reads texture row
// y*TileSize/outHeight). tile must be in 1..TileCount, localX in
// [0,TileSize), and the room must have an atlas; anything else panics.
func (r *Room) TextureColumn(tile byte, localX, outHeight int) []render.Color {
	return r.AppendTextureColumn(make([]render.Color, 0, max(outHeight, 0)), tile, localX, outHeight)
}

// AppendTextureColumn is TextureColumn appending into dst, so callers can
// reuse one buffer across columns.
func (r *Room) AppendTextureColumn(dst []render.Color, tile byte, localX, outHeight int) []render.Color {
	if r.atlas == nil {
		panic("world: texture column requested without an atlas")
	}
	if tile == 0 || int(tile) > r.tileCount {
		panic(fmt.Sprintf("world: tile id %d has no texture (1..%d)", tile, r.tileCount))
	}
	if localX < 0 || localX >= r.tileSize {
		panic(fmt.Sprintf("world: texture x %d out of range [0,%d)", localX, r.tileSize))
	}
	if outHeight < 0 {
		panic(fmt.Sprintf("world: negative column height %d", outHeight))
	}

	ax := (int(tile)-1)*r.tileSize + localX
	pix, stride := r.atlas.Pix, r.atlas.Width*3
	for y := 0; y < outHeight; y++ {
		ty := y * r.tileSize / outHeight
		i := ty*stride + ax*3
		dst = append(dst, render.RGB(pix[i], pix[i+1], pix[i+2]))
	}
	return dst
}

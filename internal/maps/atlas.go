package maps

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrAtlasSize is returned when an atlas image does not have the expected layout.
var ErrAtlasSize = errors.New("bad atlas size")

// Atlas is a texture atlas decoded to raw RGB bytes: Width*Height*3 bytes,
// row-major, with wall textures laid out left to right.
type Atlas struct {
	Width  int
	Height int
	Pix    []byte
}

// LoadAtlas reads a texture atlas. path is either a single PNG holding all
// tiles side by side, or a directory of per-tile PNGs named wall_<id>.png.
func LoadAtlas(path string, tileSize, tileCount int) (*Atlas, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat atlas: %w", err)
	}
	if info.IsDir() {
		return loadAtlasDir(path, tileSize, tileCount)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	a, err := DecodeAtlas(f, tileSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// DecodeAtlas decodes a PNG atlas. The width must be a multiple of tileSize
// and the height must equal tileSize.
func DecodeAtlas(r io.Reader, tileSize int) (*Atlas, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	bounds := img.Bounds()
	if tileSize <= 0 || bounds.Dx() == 0 || bounds.Dx()%tileSize != 0 || bounds.Dy() != tileSize {
		return nil, fmt.Errorf("%w: %dx%d is not a row of %dx%d tiles", ErrAtlasSize, bounds.Dx(), bounds.Dy(), tileSize, tileSize)
	}
	return atlasFromImage(img), nil
}

func atlasFromImage(img image.Image) *Atlas {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	a := &Atlas{Width: w, Height: h, Pix: make([]byte, w*h*3)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*w + x) * 3
			a.Pix[i], a.Pix[i+1], a.Pix[i+2] = uint8(r>>8), uint8(g>>8), uint8(b>>8)
		}
	}
	return a
}

// loadAtlasDir composes an atlas from wall_1.png .. wall_<tileCount>.png.
// Missing tiles are left black and logged.
func loadAtlasDir(dir string, tileSize, tileCount int) (*Atlas, error) {
	if tileSize <= 0 || tileCount <= 0 {
		return nil, fmt.Errorf("%w: tile size %d, count %d", ErrAtlasSize, tileSize, tileCount)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read atlas dir %s: %w", dir, err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, tileSize*tileCount, tileSize))
	found := make(map[int]bool)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "wall_") || !strings.HasSuffix(name, ".png") {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "wall_"), ".png"))
		if err != nil || id < 1 || id > tileCount {
			log.Printf("Warning: skipping %s: not a tile id in 1..%d", name, tileCount)
			continue
		}

		tile, err := loadTilePNG(filepath.Join(dir, name), tileSize)
		if err != nil {
			return nil, err
		}
		ox := (id - 1) * tileSize
		for y := 0; y < tileSize; y++ {
			for x := 0; x < tileSize; x++ {
				canvas.Set(ox+x, y, tile.At(tile.Bounds().Min.X+x, tile.Bounds().Min.Y+y))
			}
		}
		found[id] = true
	}

	if len(found) == 0 {
		return nil, fmt.Errorf("no wall_<id>.png tiles in %s", dir)
	}
	for id := 1; id <= tileCount; id++ {
		if !found[id] {
			log.Printf("Warning: atlas %s has no texture for tile %d", dir, id)
		}
	}
	return atlasFromImage(canvas), nil
}

func loadTilePNG(path string, tileSize int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != tileSize || bounds.Dy() != tileSize {
		return nil, fmt.Errorf("%s: %w: expected %dx%d, got %dx%d", path, ErrAtlasSize, tileSize, tileSize, bounds.Dx(), bounds.Dy())
	}
	return img, nil
}

// Image converts the atlas back into an image, for encoding and previews.
func (a *Atlas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, a.Width, a.Height))
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			i := (y*a.Width + x) * 3
			img.Set(x, y, color.RGBA{R: a.Pix[i], G: a.Pix[i+1], B: a.Pix[i+2], A: 255})
		}
	}
	return img
}

// EncodePNG writes the atlas as a PNG image.
func (a *Atlas) EncodePNG(w io.Writer) error {
	return png.Encode(w, a.Image())
}

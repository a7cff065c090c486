package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrBadPPM is returned when decoding data that is not a binary P6 image.
var ErrBadPPM = errors.New("malformed ppm")

// EncodePPM writes the framebuffer as a binary P6 image: the header
// "P6\n<w> <h>\n255\n" followed by one RGB triple per pixel, row-major.
// Alpha is dropped.
func (fb *Framebuffer) EncodePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", fb.width, fb.height); err != nil {
		return err
	}
	var px [3]byte
	for _, c := range fb.data {
		px[0], px[1], px[2], _ = c.Bytes()
		if _, err := bw.Write(px[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePPM creates (or truncates) path and writes the framebuffer to it.
func (fb *Framebuffer) WritePPM(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fb.EncodePPM(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// DecodePPM reads a binary P6 image with a max value of 255.
// Decoded pixels are opaque.
func DecodePPM(r io.Reader) (*Framebuffer, error) {
	br := bufio.NewReader(r)

	var magic string
	var width, height, maxVal int
	if _, err := fmt.Fscan(br, &magic, &width, &height, &maxVal); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadPPM, err)
	}
	if magic != "P6" {
		return nil, fmt.Errorf("%w: magic %q", ErrBadPPM, magic)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrBadPPM, width, height)
	}
	if maxVal != 255 {
		return nil, fmt.Errorf("%w: max value %d", ErrBadPPM, maxVal)
	}
	// Exactly one whitespace byte separates the header from the raster.
	if _, err := br.ReadByte(); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadPPM, err)
	}

	raster := make([]byte, width*height*3)
	if _, err := io.ReadFull(br, raster); err != nil {
		return nil, fmt.Errorf("%w: raster: %v", ErrBadPPM, err)
	}

	fb := &Framebuffer{width: width, height: height, data: make([]Color, width*height)}
	for i := range fb.data {
		fb.data[i] = RGB(raster[i*3], raster[i*3+1], raster[i*3+2])
	}
	return fb, nil
}

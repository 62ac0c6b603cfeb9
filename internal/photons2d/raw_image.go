package photons2d

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SaveRawRGB64 dumps the unscaled accumulation buffer, little-endian:
// width and height as int32, rays as int64, light power as float64, then
// width*height (R,G,B) float64 triples row by row.
func SaveRawRGB64(img *Image, path string) error {
	if int64(len(img.pixels)) != int64(img.width)*int64(img.height) {
		return fmt.Errorf("pixel buffer length mismatch: got %d, expected %dx%d", len(img.pixels), img.width, img.height)
	}

	// Make sure parent directory exists.
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeRawRGB64(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeRawRGB64(out io.Writer, img *Image) error {
	w := bufio.NewWriter(out)
	header := []any{int32(img.width), int32(img.height), img.rays, img.lightPower}
	for _, v := range header {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	if len(img.pixels) > 0 {
		if err := binary.Write(w, binary.LittleEndian, img.pixels); err != nil {
			return err
		}
	}
	return w.Flush()
}

// LoadRawRGB64 reads a buffer written by SaveRawRGB64.
func LoadRawRGB64(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readRawRGB64(bufio.NewReader(f))
}

func readRawRGB64(r io.Reader) (*Image, error) {
	var w, h int32
	var rays int64
	var power float64
	for _, v := range []any{&w, &h, &rays, &power} {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("raw header: %w", err)
		}
	}
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("raw header: negative dimensions %dx%d", w, h)
	}
	img := NewImage(int(w), int(h), power)
	img.rays = rays
	if len(img.pixels) > 0 {
		if err := binary.Read(r, binary.LittleEndian, img.pixels); err != nil {
			return nil, fmt.Errorf("raw pixels: %w", err)
		}
	}
	return img, nil
}

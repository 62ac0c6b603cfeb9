package photons2d

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// ToNRGBA tone-maps img (see ToRGB8) into an opaque image.NRGBA.
func (img *Image) ToNRGBA(scale, gammaExponent float64) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.width, img.height))
	data := img.ToRGB8(scale, gammaExponent)
	for y := 0; y < img.height; y++ {
		rowOff := y * out.Stride
		for x := 0; x < img.width; x++ {
			s := (y*img.width + x) * 3
			p := rowOff + x*4
			out.Pix[p+0] = data[s+0]
			out.Pix[p+1] = data[s+1]
			out.Pix[p+2] = data[s+2]
			out.Pix[p+3] = 255
		}
	}
	return out
}

// encodeByExt picks the encoder from the file extension: .png, .tif/.tiff or .bmp.
func encodeByExt(w io.Writer, path string, m image.Image) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(w, m)
	case ".tif", ".tiff":
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case ".bmp":
		return bmp.Encode(w, m)
	default:
		return fmt.Errorf("unsupported image format %q (want .png, .tif, .tiff or .bmp)", ext)
	}
}

func writeImageFile(path string, m image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeByExt(f, path, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveImage tone-maps img with its own scale for exposure and writes it in
// the format named by the file extension.
func SaveImage(img *Image, path string, exposure, gammaExponent float64) error {
	m := img.ToNRGBA(img.Scale(exposure), gammaExponent)
	if err := writeImageFile(path, m); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	DebugLog("Saved %dx%d image to %s", img.width, img.height, path)
	return nil
}

// SavePreview writes a downscaled copy, width pixels wide, keeping the
// aspect ratio. Catmull-Rom resampling keeps thin photon paths visible.
func SavePreview(img *Image, path string, exposure, gammaExponent float64, width int) error {
	if width <= 0 || img.width == 0 || img.height == 0 {
		return fmt.Errorf("preview %s: invalid size %d for %dx%d image", path, width, img.width, img.height)
	}
	height := imax(1, int(float64(img.height)*float64(width)/float64(img.width)+0.5))
	src := img.ToNRGBA(img.Scale(exposure), gammaExponent)
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	if err := writeImageFile(path, dst); err != nil {
		return fmt.Errorf("preview %s: %w", path, err)
	}
	return nil
}

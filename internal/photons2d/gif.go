package photons2d

import (
	"errors"
	"image"
	"image/color/palette"
	"image/gif"
	"os"

	"golang.org/x/image/draw"
)

// SaveAnimatedGIF writes one frame per snapshot, each tone-mapped with its
// own ray count, so the animation shows the render converging.
// delay is in 100ths of a second (e.g., 5 => 20 fps).
func SaveAnimatedGIF(frames []*Image, path string, delay int, exposure, gammaExponent float64) error {
	if len(frames) == 0 {
		return errors.New("no frames to write")
	}
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: 0,
	}

	step := imax(1, len(frames)/100) // ~1%
	for k, frame := range frames {
		if k%step == 0 {
			DebugLog("[GIF] %.2f%%", float64(k+1)*100/float64(len(frames)))
		}
		rgba := frame.ToNRGBA(frame.Scale(exposure), gammaExponent)

		// Quantize to paletted for GIF
		pimg := image.NewPaletted(rgba.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), rgba, image.Point{})

		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, out); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

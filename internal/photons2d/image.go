package photons2d

import (
	"math"

	"github.com/lukaszgryglicki/photons2d/internal/spectrum"
)

// RGB is linear accumulated energy per channel.
type RGB = spectrum.RGB

// Image accumulates photon paths as floating-point energy. Scene and world
// coordinates are pixel coordinates. An Image has a single writer.
type Image struct {
	width, height int
	pixels        []RGB
	rays          int64
	lightPower    float64
}

func NewImage(width, height int, lightPower float64) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{
		width:      width,
		height:     height,
		pixels:     make([]RGB, width*height),
		lightPower: lightPower,
	}
}

func (img *Image) Width() int          { return img.width }
func (img *Image) Height() int         { return img.height }
func (img *Image) Rays() int64         { return img.rays }
func (img *Image) LightPower() float64 { return img.lightPower }

// Pixel returns the accumulated energy at (x,y); outside the canvas is black.
func (img *Image) Pixel(x, y int) RGB {
	if x < 0 || y < 0 || x >= img.width || y >= img.height {
		return RGB{}
	}
	return img.pixels[y*img.width+x]
}

// TotalEnergy sums every channel of every pixel.
func (img *Image) TotalEnergy() float64 {
	var sum float64
	for _, p := range img.pixels {
		sum += p.R + p.G + p.B
	}
	return sum
}

func (img *Image) Clone() *Image {
	c := *img
	c.pixels = append([]RGB(nil), img.pixels...)
	return &c
}

// plot drops pixels outside the canvas.
func (img *Image) plot(c RGB, x, y int64, intensity float64) {
	if x < 0 || y < 0 || x >= int64(img.width) || y >= int64(img.height) {
		return
	}
	p := &img.pixels[y*int64(img.width)+x]
	p.R += c.R * intensity
	p.G += c.G * intensity
	p.B += c.B * intensity
}

// pixelLimit bounds pixel coordinates; segments are clipped to it along
// the major axis and minor-axis indices are clamped.
const pixelLimit = 1 << 40

func toPixel(f float64) int64 {
	return int64(math.Max(-pixelLimit, math.Min(pixelLimit, f)))
}

// DrawLine rasterizes a segment in the colour of wavelength using Xiaolin
// Wu's antialiased line, with brightness scaled so that the energy deposited
// is proportional to the segment's length rather than its major-axis extent.
// Every call counts as one traced ray, including degenerate segments that
// deposit nothing.
func (img *Image) DrawLine(wavelength, x0, y0, x1, y1 float64) {
	img.rays++
	if !isFinite(x0) || !isFinite(y0) || !isFinite(x1) || !isFinite(y1) {
		return
	}
	c := spectrum.WavelengthToColour(wavelength)

	// Axis swap. The virtual x is always the major axis.
	steep := math.Abs(y1-y0) > math.Abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	// x0->x1 runs in the +x direction
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	dx := x1 - x0
	dy := y1 - y0
	if dx == 0 {
		return
	}
	gradient := dy / dx
	br := LineBrightness * math.Hypot(dx, dy) / dx
	if x1 < -pixelLimit || x0 > pixelLimit {
		return
	}
	// clip far endpoints along the major axis so pixel indices stay exact
	if x0 < -pixelLimit {
		y0 += gradient * (-pixelLimit - x0)
		x0 = -pixelLimit
	}
	if x1 > pixelLimit {
		y1 -= gradient * (x1 - pixelLimit)
		x1 = pixelLimit
	}

	plot := func(major, minor int64, intensity float64) {
		if steep {
			img.plot(c, minor, major, intensity)
		} else {
			img.plot(c, major, minor, intensity)
		}
	}

	// first endpoint
	xend := math.Round(x0)
	yend := y0 + gradient*(xend-x0)
	xpxl1 := toPixel(xend)
	ypxl1 := toPixel(math.Floor(yend))
	xgap := br * (1 - (x0 + 0.5) + xend)
	ygap := yend - math.Floor(yend)
	plot(xpxl1, ypxl1, xgap*(1-ygap))
	plot(xpxl1, ypxl1+1, xgap*ygap)
	intery := yend + gradient

	// second endpoint
	xend = math.Round(x1)
	yend = y1 + gradient*(xend-x1)
	xpxl2 := toPixel(xend)
	ypxl2 := toPixel(math.Floor(yend))
	xgap = br * (1 - (x1 + 0.5) + xend)
	ygap = yend - math.Floor(yend)
	plot(xpxl2, ypxl2, xgap*(1-ygap))
	plot(xpxl2, ypxl2+1, xgap*ygap)

	// interior pixels, clipped to the canvas along the major axis
	limit := int64(img.width)
	if steep {
		limit = int64(img.height)
	}
	start, end := xpxl1+1, xpxl2
	if start < 0 {
		intery += gradient * float64(-start)
		start = 0
	}
	if end > limit {
		end = limit
	}
	for x := start; x < end; x++ {
		iy := math.Floor(intery)
		fy := intery - iy
		plot(x, toPixel(iy), br*(1-fy))
		plot(x, toPixel(iy)+1, br*fy)
		intery += gradient
	}
}

// CalculateScale maps accumulated energy to display range:
//
//	exp(1 + 10·exposure) · sqrt(area/RefArea) · lightPower/(255·8192) / rays
//
// An image with no rays scales to 0.
func (img *Image) CalculateScale(lightPower, exposure float64) float64 {
	if img.rays == 0 {
		return 0
	}
	areaScale := math.Sqrt(float64(img.width) * float64(img.height) / RefArea)
	intensityScale := lightPower / (255.0 * spectrum.White)
	scale := math.Exp(1+10*exposure) * areaScale * intensityScale / float64(img.rays)
	DebugLog("Image statistics: rays=%s lightpower=%g scale=%g", count(img.rays), lightPower, scale)
	return scale
}

// Scale is CalculateScale with the scene light power recorded at creation.
func (img *Image) Scale(exposure float64) float64 {
	return img.CalculateScale(img.lightPower, exposure)
}

// ToRGB8 tone-maps to 8-bit samples, row-major, in R, G, B order. Each
// channel gets a dither draw from a fixed-seed stream, so the output is
// reproducible.
func (img *Image) ToRGB8(scale, gammaExponent float64) []byte {
	rng := NewPRNG(DitherSeed)
	out := make([]byte, 0, len(img.pixels)*3)
	channel := func(v float64) byte {
		u := math.Max(0, v*scale)
		w := 255*math.Pow(u, gammaExponent) + rng.UniformF64()
		return byte(math.Max(0, math.Min(255.9, w)))
	}
	for _, p := range img.pixels {
		r := channel(p.R)
		g := channel(p.G)
		b := channel(p.B)
		out = append(out, r, g, b)
	}
	return out
}

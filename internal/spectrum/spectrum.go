// Package spectrum maps photon wavelengths to linear RGB energy and samples
// blackbody emission spectra.
package spectrum

import (
	"math"
	"sort"
	"sync"
)

const (
	// FirstWavelength and LastWavelength bound the tabulated visible range (nm).
	FirstWavelength = 360.0
	LastWavelength  = 830.0
	// White is the per-channel energy returned for the monochromatic-white wavelength 0.
	White = 8192.0
	// BlackbodyCDFTemp is the reference temperature (K) of the tabulated Planck CDF.
	BlackbodyCDFTemp = 5800.0
	// BlackbodyCDFLen is the number of 1 nm CDF steps at the reference temperature.
	BlackbodyCDFLen = 12000
)

// RGB is linear colour energy, not clamped.
type RGB struct {
	R, G, B float64
}

var (
	rgbOnce  sync.Once
	rgbTable []RGB

	cdfOnce  sync.Once
	cdfTable []float64
)

// piecewise Gaussian lobe used by the analytic CIE 1931 fit (Wyman, Sloan, Shirley 2013).
func lobe(x, mu, s1, s2 float64) float64 {
	s := s2
	if x < mu {
		s = s1
	}
	t := (x - mu) / s
	return math.Exp(-0.5 * t * t)
}

// cieXYZ returns the CIE 1931 2° colour matching functions at nm.
func cieXYZ(nm float64) (x, y, z float64) {
	x = 1.056*lobe(nm, 599.8, 37.9, 31.0) + 0.362*lobe(nm, 442.0, 16.0, 26.7) - 0.065*lobe(nm, 501.1, 20.4, 26.2)
	y = 0.821*lobe(nm, 568.8, 46.9, 40.5) + 0.286*lobe(nm, 530.9, 16.3, 31.1)
	z = 1.217*lobe(nm, 437.0, 11.8, 36.0) + 0.681*lobe(nm, 459.0, 26.0, 13.8)
	return
}

// xyzToLinearSRGB uses the sRGB (D65) primaries. Out-of-gamut spectral
// colours come out with negative components, which is intended.
func xyzToLinearSRGB(x, y, z float64) RGB {
	return RGB{
		R: 3.2406*x - 1.5372*y - 0.4986*z,
		G: -0.9689*x + 1.8758*y + 0.0415*z,
		B: 0.0557*x - 0.2040*y + 1.0570*z,
	}
}

func buildRGBTable() {
	n := int(LastWavelength-FirstWavelength) + 1
	rgbTable = make([]RGB, n)
	for i := 0; i < n; i++ {
		c := xyzToLinearSRGB(cieXYZ(FirstWavelength + float64(i)))
		rgbTable[i] = RGB{math.Round(c.R * White), math.Round(c.G * White), math.Round(c.B * White)}
	}
}

// WavelengthToColour returns the RGB energy of a photon of the given wavelength.
// Wavelength 0 is monochromatic white; anything outside the visible range is black.
func WavelengthToColour(nm float64) RGB {
	if nm == 0 {
		return RGB{White, White, White}
	}
	if !(nm >= FirstWavelength && nm <= LastWavelength) {
		return RGB{}
	}
	rgbOnce.Do(buildRGBTable)

	fp := nm - FirstWavelength
	idx := int(math.Floor(fp))
	if idx >= len(rgbTable)-1 {
		return rgbTable[len(rgbTable)-1]
	}
	frac := fp - float64(idx)
	inv := 1 - frac
	c1, c2 := rgbTable[idx], rgbTable[idx+1]
	return RGB{
		R: inv*c1.R + frac*c2.R,
		G: inv*c1.G + frac*c2.G,
		B: inv*c1.B + frac*c2.B,
	}
}

// planck is spectral radiance at wavelength nm and temperature t, up to a constant.
func planck(nm, t float64) float64 {
	const c2 = 1.4387769e7 // second radiation constant, nm·K
	if nm <= 0 {
		return 0
	}
	x := c2 / (nm * t)
	if x > 700 {
		return 0
	}
	return 1 / (math.Pow(nm, 5) * math.Expm1(x))
}

func buildCDF() {
	cdfTable = make([]float64, BlackbodyCDFLen+1)
	sum := 0.0
	for i := 1; i <= BlackbodyCDFLen; i++ {
		// midpoint rule over [i-1, i]
		sum += planck(float64(i)-0.5, BlackbodyCDFTemp)
		cdfTable[i] = sum
	}
	for i := range cdfTable {
		cdfTable[i] /= sum
	}
	cdfTable[BlackbodyCDFLen] = 1
}

// BlackbodyWavelength draws a wavelength (nm) from the Planck spectrum of a
// body at temp kelvin, driven by noise in [0,1). The inverse CDF is tabulated
// once at BlackbodyCDFTemp and rescaled with Wien's displacement law.
// A non-positive temperature yields 0, the monochromatic-white wavelength.
func BlackbodyWavelength(temp, noise float64) float64 {
	if temp <= 0 {
		return 0
	}
	cdfOnce.Do(buildCDF)

	idx := sort.SearchFloat64s(cdfTable[1:], noise) + 1
	if idx >= len(cdfTable) {
		idx = len(cdfTable) - 1
	}
	lower, upper := cdfTable[idx-1], cdfTable[idx]
	lerp := float64(idx - 1)
	if upper > lower {
		lerp += (noise - lower) / (upper - lower)
	}
	return lerp * (BlackbodyCDFTemp / temp)
}

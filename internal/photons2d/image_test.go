package photons2d

import (
	"math"
	"testing"
)

func energy(c RGB) float64 { return c.R + c.G + c.B }

func TestDrawLineDepositsOnRow(t *testing.T) {
	img := NewImage(100, 100, 1)
	img.DrawLine(0, 10, 20, 50, 20)
	if img.Rays() != 1 {
		t.Fatalf("rays: %d", img.Rays())
	}
	if energy(img.Pixel(30, 20)) <= 0 {
		t.Fatal("interior pixel must be lit")
	}
	if energy(img.Pixel(30, 50)) != 0 || energy(img.Pixel(70, 20)) != 0 {
		t.Fatal("pixels off the line must stay black")
	}
	if img.TotalEnergy() <= 0 {
		t.Fatal("no energy deposited")
	}
}

func TestDrawLineSteepIsTransposed(t *testing.T) {
	h := NewImage(80, 80, 1)
	v := NewImage(80, 80, 1)
	h.DrawLine(0, 10.3, 20.6, 50.2, 31.1)
	v.DrawLine(0, 20.6, 10.3, 31.1, 50.2)
	for y := 0; y < 80; y++ {
		for x := 0; x < 80; x++ {
			if h.Pixel(x, y) != v.Pixel(y, x) {
				t.Fatalf("pixel (%d,%d): %+v vs %+v", x, y, h.Pixel(x, y), v.Pixel(y, x))
			}
		}
	}
}

func TestDrawLineDirectionIndependent(t *testing.T) {
	a := NewImage(60, 60, 1)
	b := NewImage(60, 60, 1)
	a.DrawLine(0, 5.5, 7.25, 40.1, 22.9)
	b.DrawLine(0, 40.1, 22.9, 5.5, 7.25)
	if a.TotalEnergy() != b.TotalEnergy() {
		t.Fatalf("energy depends on direction: %v vs %v", a.TotalEnergy(), b.TotalEnergy())
	}
}

func TestDrawLineEnergyScalesWithLength(t *testing.T) {
	short := NewImage(400, 400, 1)
	long := NewImage(400, 400, 1)
	short.DrawLine(0, 100, 100, 150, 150)
	long.DrawLine(0, 100, 100, 200, 200)
	ratio := long.TotalEnergy() / short.TotalEnergy()
	if !approxEqual(ratio, 2, 0.1) {
		t.Fatalf("doubling length should double energy, ratio %v", ratio)
	}
}

func TestDrawLineClipsAndCountsDegenerate(t *testing.T) {
	img := NewImage(32, 16, 1)
	img.DrawLine(0, -1e12, -5, 1e12, 300)
	img.DrawLine(0, -100, -100, -50, -50)
	img.DrawLine(0, 1e300, 0, -1e300, 8)
	img.DrawLine(0, 5, 5, 5, 5)
	img.DrawLine(0, math.NaN(), 0, 1, 1)
	img.DrawLine(0, math.Inf(1), 0, 1, 1)
	if img.Rays() != 6 {
		t.Fatalf("every call counts as a ray, got %d", img.Rays())
	}
	clean := NewImage(32, 16, 1)
	clean.DrawLine(0, -100, -100, -50, -50)
	clean.DrawLine(0, 5, 5, 5, 5)
	if clean.TotalEnergy() != 0 {
		t.Fatalf("off-canvas and zero-length segments deposit nothing, got %v", clean.TotalEnergy())
	}
}

func TestDrawLineOutOfSpectrumIsBlack(t *testing.T) {
	img := NewImage(20, 20, 1)
	img.DrawLine(1200, 0, 10, 20, 10)
	if img.TotalEnergy() != 0 || img.Rays() != 1 {
		t.Fatalf("infrared photon: energy %v rays %d", img.TotalEnergy(), img.Rays())
	}
}

func TestCalculateScale(t *testing.T) {
	img := NewImage(1024, 576, 1)
	if img.CalculateScale(1, DefaultExposure) != 0 {
		t.Fatal("no rays must scale to 0")
	}
	img.rays = 10
	s1 := img.CalculateScale(1, DefaultExposure)
	img.rays = 20
	s2 := img.CalculateScale(1, DefaultExposure)
	if !approxEqual(s2*2, s1, s1*1e-12) {
		t.Fatalf("doubling rays should halve scale: %v %v", s1, s2)
	}
	if !approxEqual(img.CalculateScale(2, DefaultExposure), 2*s2, s2*1e-12) {
		t.Fatal("scale is linear in light power")
	}
	want := math.Exp(1+10*DefaultExposure) / (255.0 * 8192) / 20
	if !approxEqual(s2, want, want*1e-12) {
		t.Fatalf("reference-area scale: got %v want %v", s2, want)
	}
	if img.Scale(DefaultExposure) != s2 {
		t.Fatal("Scale uses the recorded light power")
	}
}

func TestToRGB8(t *testing.T) {
	img := NewImage(7, 3, 1)
	out := img.ToRGB8(img.Scale(DefaultExposure), DefaultGamma)
	if len(out) != 7*3*3 {
		t.Fatalf("length %d", len(out))
	}
	for i, b := range out {
		if b != 0 {
			t.Fatalf("empty image must be black, byte %d = %d", i, b)
		}
	}

	img.DrawLine(0, 0, 1, 7, 1)
	s := img.Scale(DefaultExposure)
	a := img.ToRGB8(s, DefaultGamma)
	b := img.ToRGB8(s, DefaultGamma)
	lit := 0
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("tone mapping must be reproducible")
		}
		if a[i] > 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("traced image is black")
	}
	// saturates instead of wrapping
	hot := img.ToRGB8(1e9, 1)
	if hot[(1*7+3)*3] != 255 {
		t.Fatalf("saturated channel: %d", hot[(1*7+3)*3])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	img := NewImage(10, 10, 3)
	img.DrawLine(0, 0, 5, 10, 5)
	c := img.Clone()
	img.DrawLine(0, 0, 2, 10, 2)
	if c.Rays() != 1 || img.Rays() != 2 {
		t.Fatalf("rays: clone %d, original %d", c.Rays(), img.Rays())
	}
	if c.TotalEnergy() >= img.TotalEnergy() {
		t.Fatal("clone shares pixels with the original")
	}
	if c.LightPower() != 3 || c.Width() != 10 || c.Height() != 10 {
		t.Fatal("clone metadata")
	}
}

func TestToRGB8ChannelOrder(t *testing.T) {
	img := NewImage(4, 1, 1)
	img.plot(RGB{R: 1000}, 1, 0, 1)
	img.plot(RGB{G: 1000}, 2, 0, 1)
	img.plot(RGB{B: 1000}, 3, 0, 1)
	out := img.ToRGB8(1, 1)
	want := []byte{
		0, 0, 0,
		255, 0, 0,
		0, 255, 0,
		0, 0, 255,
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("got %v, want %v", out, want)
		}
	}
	m := img.ToNRGBA(1, 1)
	if c := m.NRGBAAt(1, 0); c.R != 255 || c.G != 0 || c.B != 0 {
		t.Fatalf("NRGBA red pixel: %+v", c)
	}
}

func TestDrawLineFarEndpoint(t *testing.T) {
	const g = 1.0 / (1 << 20)
	near := NewImage(16, 8, 1)
	near.DrawLine(0, -100, 3.25-g*110, 10, 3.25)
	far := NewImage(16, 8, 1)
	far.DrawLine(0, -1e15, 3.25-g*(1e15+10), 10, 3.25)
	lit := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			a, b := near.Pixel(x, y), far.Pixel(x, y)
			if !approxEqual(a.R, b.R, 1e-3*a.R+1e-6) {
				t.Fatalf("pixel (%d,%d): near %v far %v", x, y, a.R, b.R)
			}
			if a.R > 0 {
				lit++
			}
		}
	}
	if lit < 10 {
		t.Fatalf("only %d lit pixels", lit)
	}
}

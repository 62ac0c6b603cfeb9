package photons2d

import (
	"errors"
	"math"
	"testing"
)

func constLine(x0, y0, dx, dy float64) *Line {
	return NewLine(Constant(x0), Constant(y0), Constant(dx), Constant(dy), DefaultHQZLegacy())
}

func TestLineHit(t *testing.T) {
	l := constLine(0, 0, 10, 10)
	h, ok := l.GetHit(Point{10, 0}, Vector{-1, 1}, NewPRNG(0))
	if !ok {
		t.Fatal("expected a hit")
	}
	if h.Point != (Point{5, 5}) {
		t.Fatalf("hit point: %+v", h.Point)
	}
	if h.Normal != (Vector{-10, 10}) {
		t.Fatalf("normal: %+v", h.Normal)
	}
	if h.Alpha != 0.5 {
		t.Fatalf("alpha: %v", h.Alpha)
	}
}

func TestLineMisses(t *testing.T) {
	l := constLine(0, 0, 10, 10)
	rng := NewPRNG(0)
	// parallel
	if _, ok := l.GetHit(Point{1, 0}, Vector{1, 1}, rng); ok {
		t.Fatal("parallel ray must miss")
	}
	// line is behind the ray
	if _, ok := l.GetHit(Point{10, 0}, Vector{1, -1}, rng); ok {
		t.Fatal("backwards ray must miss")
	}
	// beyond the segment end
	if _, ok := l.GetHit(Point{30, 0}, Vector{-1, 1}, rng); ok {
		t.Fatal("ray past the segment must miss")
	}
	// origin on the line: dist 0 is not forward
	if _, ok := l.GetHit(Point{5, 5}, Vector{1, -1}, rng); ok {
		t.Fatal("zero distance must miss")
	}
}

func TestLineHitEndpointsInclusive(t *testing.T) {
	l := constLine(0, 0, 10, 0)
	h, ok := l.GetHit(Point{0, -5}, Vector{0, 1}, NewPRNG(0))
	if !ok || h.Alpha != 0 {
		t.Fatalf("start endpoint: ok=%v alpha=%v", ok, h.Alpha)
	}
	h, ok = l.GetHit(Point{10, -5}, Vector{0, 1}, NewPRNG(0))
	if !ok || h.Alpha != 1 {
		t.Fatalf("end endpoint: ok=%v alpha=%v", ok, h.Alpha)
	}
}

func TestLineBounds(t *testing.T) {
	r, err := constLine(10, 5, -4, 3).Bounds()
	if err != nil {
		t.Fatal(err)
	}
	if r != RectFromPoints(Point{6, 5}, Point{10, 8}) {
		t.Fatalf("bounds: %+v", r)
	}

	j := NewLine(Range(2, 0), Constant(0), Range(5, -1), Constant(1), DefaultHQZLegacy())
	r, err = j.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	if r.Left() != -1 || r.Right() != 7 || r.Top() != 0 || r.Bottom() != 1 {
		t.Fatalf("jittered bounds: %+v", r)
	}
	// every jittered draw lies inside
	rng := NewPRNG(4)
	for i := 0; i < 1000; i++ {
		x0, dx := j.X0.Val(rng), j.DX.Val(rng)
		if x0 < r.Left() || x0+dx > r.Right() || x0+dx < r.Left() {
			t.Fatalf("draw escaped bounds: x0=%v dx=%v", x0, dx)
		}
	}

	inf := NewLine(Blackbody(5000), Constant(0), Constant(1), Constant(1), DefaultHQZLegacy())
	r, err = inf.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(r.Left(), -1) || !math.IsInf(r.Bottom(), 1) {
		t.Fatalf("unbounded sampler must give an infinite rect: %+v", r)
	}
}

func TestLineGetHitDrawOrder(t *testing.T) {
	// a jittered line draws x0, y0, dx, dy from the caller's stream
	l := NewLine(Range(1, 0), Range(1, 0), Range(1, 0), Range(1, 0), DefaultHQZLegacy())
	a, b := NewPRNG(8), NewPRNG(8)
	l.GetHit(Point{-100, -100}, Vector{1, 0}, a)
	for i := 0; i < 4; i++ {
		b.NextU32()
	}
	if a.NextU32() != b.NextU32() {
		t.Fatal("GetHit must draw four values")
	}
}

func TestCurveUnimplemented(t *testing.T) {
	c := &Curve{Mat: DefaultHQZLegacy()}
	if _, err := c.Bounds(); !errors.Is(err, ErrCurveUnimplemented) {
		t.Fatalf("bounds: %v", err)
	}
	if _, ok := c.GetHit(Point{}, Vector{1, 0}, NewPRNG(0)); ok {
		t.Fatal("curves never hit")
	}
	if c.Material() == nil {
		t.Fatal("material")
	}
}

func TestLightValidation(t *testing.T) {
	ok := Constant(0)
	if _, err := NewLight(Constant(0), ok, ok, ok, ok, ok, ok); err == nil {
		t.Fatal("zero power must be rejected")
	}
	if _, err := NewLight(Blackbody(5000), ok, ok, ok, ok, ok, ok); err == nil {
		t.Fatal("unbounded power must be rejected")
	}
	l, err := NewLight(Range(2, -1), ok, ok, ok, ok, ok, ok)
	if err != nil {
		t.Fatal(err)
	}
	if l.MaxPower() != 2 {
		t.Fatalf("max power: %v", l.MaxPower())
	}
}

func TestLightSpawn(t *testing.T) {
	l, err := NewLight(Constant(1), Constant(10), Constant(20), Constant(math.Pi/2), Constant(2),
		Constant(180), Constant(550))
	if err != nil {
		t.Fatal(err)
	}
	origin, dir, wl := l.spawn(NewPRNG(0))
	if !approxEqual(origin.X, 10, 1e-12) || !approxEqual(origin.Y, 22, 1e-12) {
		t.Fatalf("origin: %+v", origin)
	}
	if !approxEqual(dir.X, -1, 1e-12) || !approxEqual(dir.Y, 0, 1e-12) {
		t.Fatalf("direction: %+v", dir)
	}
	if wl != 550 {
		t.Fatalf("wavelength: %v", wl)
	}
}

package photons2d

import (
	"math"
	"sort"
	"testing"
)

// ksD returns the Kolmogorov–Smirnov distance between xs and the CDF F.
func ksD(xs []float64, F func(float64) float64) float64 {
	sort.Float64s(xs)
	n := len(xs)
	var d float64
	for i, x := range xs {
		Fi := F(x)
		empUpper := float64(i+1) / float64(n)
		empLower := float64(i) / float64(n)
		di := math.Max(Fi-empLower, empUpper-Fi)
		if di > d {
			d = di
		}
	}
	return d
}

func TestPRNGKnownSequence(t *testing.T) {
	want := []uint32{446393351, 2589264021, 4046186614, 151173657, 552706628}
	p := NewPRNG(0)
	for i, w := range want {
		if got := p.NextU32(); got != w {
			t.Fatalf("draw %d: got %d want %d", i, got, w)
		}
	}
}

func TestPRNGReproducible(t *testing.T) {
	a, b := NewPRNG(1234), NewPRNG(1234)
	for i := 0; i < 10000; i++ {
		if x, y := a.NextU32(), b.NextU32(); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
	c, d := NewPRNG(1), NewPRNG(2)
	same := 0
	for i := 0; i < 100; i++ {
		if c.NextU32() == d.NextU32() {
			same++
		}
	}
	if same > 2 {
		t.Fatalf("different seeds produced %d equal draws out of 100", same)
	}
}

func TestUniformF64InUnitInterval(t *testing.T) {
	p := NewPRNG(0)
	for i := 0; i < 100000; i++ {
		if v := p.UniformF64(); v < 0 || v >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, v)
		}
	}
}

func TestUniformRangeBoundsAndUniformity(t *testing.T) {
	p := NewPRNG(99)
	const lo, hi = -3.5, 12.0
	xs := make([]float64, 20000)
	for i := range xs {
		v := p.UniformRange(hi, lo)
		if v < lo || v > hi {
			t.Fatalf("draw %v outside [%v,%v]", v, lo, hi)
		}
		xs[i] = v
	}
	D := ksD(xs, func(x float64) float64 { return (x - lo) / (hi - lo) })
	if D > 0.02 {
		t.Fatalf("KS distance too large: %.4f", D)
	}
}

func TestUniformRangeDegenerate(t *testing.T) {
	p := NewPRNG(5)
	for i := 0; i < 100; i++ {
		if v := p.UniformRange(2, 2); v != 2 {
			t.Fatalf("got %v want 2", v)
		}
	}
}

func TestUniformRangePanicsOnInvertedBounds(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for hi < lo")
		}
	}()
	NewPRNG(0).UniformRange(0, 1)
}

func TestForkConsumesOneDraw(t *testing.T) {
	a, b := NewPRNG(7), NewPRNG(7)
	child := a.Fork()
	seed := b.NextU32()
	if a.NextU32() != b.NextU32() {
		t.Fatal("Fork must advance the parent by exactly one draw")
	}
	if child.NextU32() != NewPRNG(seed).NextU32() {
		t.Fatal("child must be seeded from the parent draw")
	}
}

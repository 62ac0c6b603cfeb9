package photons2d

import (
	"errors"
	"math"
)

// Hit is where a ray met an object. Normal is perpendicular to the surface
// but not normalized; Alpha is the position along the object in [0,1].
type Hit struct {
	Point  Point
	Normal Vector
	Alpha  float64
}

// Object is anything a photon can hit.
//
// GetHit draws the object's geometry from rng on every call, so objects with
// non-constant samplers are jittered per test. Bounds is pure and encloses
// every shape GetHit can draw.
type Object interface {
	Bounds() (Rect, error)
	GetHit(origin Point, dir Vector, rng *PRNG) (Hit, bool)
	Material() Material
}

var ErrCurveUnimplemented = errors.New("curve objects are not implemented")

// Line is a segment from (X0,Y0) to (X0+DX,Y0+DY).
type Line struct {
	X0, Y0 Sample
	DX, DY Sample
	Mat    Material
}

func NewLine(x0, y0, dx, dy Sample, mat Material) *Line {
	return &Line{X0: x0, Y0: y0, DX: dx, DY: dy, Mat: mat}
}

func (l *Line) Material() Material { return l.Mat }

// axisExtent returns the min and max of start and start+extent over every
// combination of their bounds.
func axisExtent(start, extent Sample) (float64, float64) {
	slo, shi := start.Bounds()
	elo, ehi := extent.Bounds()
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range [...]float64{slo, shi, slo + elo, slo + ehi, shi + elo, shi + ehi} {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Bounds never fails for a line. Unbounded samplers give an infinite rect.
func (l *Line) Bounds() (Rect, error) {
	slo, shi := l.X0.Bounds()
	elo, ehi := l.DX.Bounds()
	ylo, yhi := l.Y0.Bounds()
	dylo, dyhi := l.DY.Bounds()
	for _, v := range [...]float64{slo, shi, elo, ehi, ylo, yhi, dylo, dyhi} {
		if !isFinite(v) {
			inf := math.Inf(1)
			return Rect{Point{-inf, -inf}, Point{inf, inf}}, nil
		}
	}
	x0, x1 := axisExtent(l.X0, l.DX)
	y0, y1 := axisExtent(l.Y0, l.DY)
	return Rect{Point{x0, y0}, Point{x1, y1}}, nil
}

// GetHit draws x0, y0, dx, dy in that order.
func (l *Line) GetHit(origin Point, dir Vector, rng *PRNG) (Hit, bool) {
	s1 := Point{l.X0.Val(rng), l.Y0.Val(rng)}
	sd := Vector{l.DX.Val(rng), l.DY.Val(rng)}
	alpha, dist, ok := intersectSegment(origin, dir, s1, sd)
	if !ok {
		return Hit{}, false
	}
	return Hit{
		Point:  origin.Add(dir.Mul(dist)),
		Normal: Vector{-sd.Y, sd.X},
		Alpha:  alpha,
	}, true
}

// intersectSegment solves [sd | -dir]·(alpha, dist) = origin - s1.
// It accepts alpha in [0,1] and strictly forward dist; a parallel ray
// (zero determinant) never hits.
func intersectSegment(origin Point, dir Vector, s1 Point, sd Vector) (alpha, dist float64, ok bool) {
	m := Matrix{
		A1: sd.X, B1: -dir.X,
		A2: sd.Y, B2: -dir.Y,
	}
	inv, ok := m.Inverse()
	if !ok {
		return 0, 0, false
	}
	r := inv.MulVec(origin.Sub(s1))
	if r.X >= 0 && r.X <= 1 && r.Y > 0 {
		return r.X, r.Y, true
	}
	return 0, 0, false
}

// Curve is a quadratic segment through a control point. It can be declared
// in a scene description but cannot be traced: scenes reject it.
type Curve struct {
	X0, Y0 Sample
	DX, DY Sample
	CX, CY Sample
	Mat    Material
}

func (c *Curve) Bounds() (Rect, error)                    { return NullRect(), ErrCurveUnimplemented }
func (c *Curve) GetHit(Point, Vector, *PRNG) (Hit, bool) { return Hit{}, false }
func (c *Curve) Material() Material                       { return c.Mat }

package photons2d

import "math"

// Point represents a position in the 2D scene.
type Point struct {
	X, Y float64
}

// Add lets you translate a Point by a Vector.
func (p Point) Add(v Vector) Point { return Point{p.X + v.X, p.Y + v.Y} }

// SubVec translates a Point by -v.
func (p Point) SubVec(v Vector) Point { return Point{p.X - v.X, p.Y - v.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector { return Vector{p.X - q.X, p.Y - q.Y} }

func (p Point) Distance(q Point) float64 { return math.Sqrt(p.Distance2(q)) }

func (p Point) Distance2(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

func (p Point) CloseTo(q Point, eps float64) bool { return p.Distance2(q) < eps*eps }

package photons2d

import "math"

// Vector represents a direction (not a position) in 2D space.
type Vector struct {
	X, Y float64
}

// Vector functions
func (a Vector) Add(b Vector) Vector { return Vector{a.X + b.X, a.Y + b.Y} }
func (a Vector) Sub(b Vector) Vector { return Vector{a.X - b.X, a.Y - b.Y} }
func (v Vector) Mul(s float64) Vector { return Vector{v.X * s, v.Y * s} }
func (v Vector) Neg() Vector          { return Vector{-v.X, -v.Y} }

// MulE multiplies element-wise.
func (a Vector) MulE(b Vector) Vector         { return Vector{a.X * b.X, a.Y * b.Y} }
func (v Vector) ScaleE(sx, sy float64) Vector { return Vector{v.X * sx, v.Y * sy} }

func (a Vector) Dot(b Vector) float64 { return a.X*b.X + a.Y*b.Y }

// Cross returns the z component of the 3D cross product.
func (a Vector) Cross(b Vector) float64 { return a.X*b.Y - a.Y*b.X }

// Magnitude returns the Euclidean length of the vector.
func (v Vector) Magnitude() float64 { return math.Sqrt(v.Dot(v)) }

// Normalized divides by the magnitude; a zero vector yields NaNs.
func (v Vector) Normalized() Vector {
	m := v.Magnitude()
	return Vector{v.X / m, v.Y / m}
}

// Reflect mirrors v about the line with the given normal.
// The normal does not need to be unit length.
func (v Vector) Reflect(normal Vector) Vector {
	t := 2 * normal.Dot(v) / normal.Dot(normal)
	return Vector{v.X - t*normal.X, v.Y - t*normal.Y}
}

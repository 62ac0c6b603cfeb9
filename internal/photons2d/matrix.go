package photons2d

// Matrix is a row-major 2x2 matrix:
//
//	| A1 B1 |
//	| A2 B2 |
type Matrix struct {
	A1, B1 float64
	A2, B2 float64
}

func (m Matrix) Add(n Matrix) Matrix {
	return Matrix{m.A1 + n.A1, m.B1 + n.B1, m.A2 + n.A2, m.B2 + n.B2}
}

func (m Matrix) Sub(n Matrix) Matrix {
	return Matrix{m.A1 - n.A1, m.B1 - n.B1, m.A2 - n.A2, m.B2 - n.B2}
}

func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A1: m.A1*n.A1 + m.B1*n.A2,
		B1: m.A1*n.B1 + m.B1*n.B2,
		A2: m.A2*n.A1 + m.B2*n.A2,
		B2: m.A2*n.B1 + m.B2*n.B2,
	}
}

func (m Matrix) Scale(s float64) Matrix {
	return Matrix{m.A1 * s, m.B1 * s, m.A2 * s, m.B2 * s}
}

func (m Matrix) MulPoint(p Point) Point {
	return Point{m.A1*p.X + m.B1*p.Y, m.A2*p.X + m.B2*p.Y}
}

func (m Matrix) MulVec(v Vector) Vector {
	return Vector{m.A1*v.X + m.B1*v.Y, m.A2*v.X + m.B2*v.Y}
}

func (m Matrix) Det() float64 { return m.A1*m.B2 - m.B1*m.A2 }

// Inverse returns the adjugate divided by the determinant. ok is false only
// when the determinant is exactly zero; nearly singular matrices invert.
func (m Matrix) Inverse() (Matrix, bool) {
	det := m.Det()
	if det == 0 {
		return Matrix{}, false
	}
	return Matrix{A1: m.B2, B1: -m.B1, A2: -m.A2, B2: m.A1}.Scale(1 / det), true
}

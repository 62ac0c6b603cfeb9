package photons2d

import "math"

// Rect is an axis-aligned bounding box. Y grows downwards, so TopLeft holds
// the componentwise minimum. The null rect has NaN corners.
type Rect struct {
	TopLeft     Point
	BottomRight Point
}

// NullRect returns the empty rect; any point expands it to that point.
func NullRect() Rect {
	nan := math.NaN()
	return Rect{Point{nan, nan}, Point{nan, nan}}
}

// NullRectAt returns a zero-sized rect at p.
func NullRectAt(p Point) Rect { return Rect{p, p} }

// RectFromPoints returns the smallest rect containing both points.
func RectFromPoints(p1, p2 Point) Rect {
	r := NullRectAt(p1)
	r.ExpandToInclude(p2)
	return r
}

// RectFromPointAndSize panics unless size is strictly positive on both axes.
func RectFromPointAndSize(p Point, size Vector) Rect {
	if !(size.X > 0) || !(size.Y > 0) {
		panic("photons2d: rect size must be positive")
	}
	return Rect{p, p.Add(size)}
}

func RectCenteredWithRadius(p Point, radius float64) Rect {
	v := Vector{radius, radius}
	return RectFromPoints(p.SubVec(v), p.Add(v))
}

func (r Rect) IsNull() bool {
	return math.IsNaN(r.TopLeft.X) || math.IsNaN(r.TopLeft.Y) ||
		math.IsNaN(r.BottomRight.X) || math.IsNaN(r.BottomRight.Y)
}

func (r Rect) Width() float64  { return r.BottomRight.X - r.TopLeft.X }
func (r Rect) Height() float64 { return r.BottomRight.Y - r.TopLeft.Y }
func (r Rect) Left() float64   { return r.TopLeft.X }
func (r Rect) Right() float64  { return r.BottomRight.X }
func (r Rect) Top() float64    { return r.TopLeft.Y }
func (r Rect) Bottom() float64 { return r.BottomRight.Y }

func (r Rect) TopRight() Point   { return Point{r.BottomRight.X, r.TopLeft.Y} }
func (r Rect) BottomLeft() Point { return Point{r.TopLeft.X, r.BottomRight.Y} }

func (r Rect) North() Point { return Point{r.Left() + r.Width()/2, r.Top()} }
func (r Rect) South() Point { return Point{r.Left() + r.Width()/2, r.Bottom()} }
func (r Rect) West() Point  { return Point{r.Left(), r.Top() + r.Height()/2} }
func (r Rect) East() Point  { return Point{r.Right(), r.Top() + r.Height()/2} }

func (r Rect) Midpoint() Point {
	return r.TopLeft.Add(Vector{r.Width() / 2, r.Height() / 2})
}

// Expand grows the rect outwards by the given margins.
func (r Rect) Expand(left, top, right, bottom float64) Rect {
	return Rect{
		TopLeft:     r.TopLeft.SubVec(Vector{left, top}),
		BottomRight: r.BottomRight.Add(Vector{right, bottom}),
	}
}

// nanMin and nanMax ignore a NaN operand so that a null rect absorbs points.
func nanMin(a, b float64) float64 {
	switch {
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	case a < b:
		return a
	}
	return b
}

func nanMax(a, b float64) float64 {
	switch {
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	case a > b:
		return a
	}
	return b
}

func (r *Rect) ExpandToInclude(p Point) {
	r.TopLeft.X = nanMin(r.TopLeft.X, p.X)
	r.TopLeft.Y = nanMin(r.TopLeft.Y, p.Y)
	r.BottomRight.X = nanMax(r.BottomRight.X, p.X)
	r.BottomRight.Y = nanMax(r.BottomRight.Y, p.Y)
}

func (r Rect) ExpandedBy(p Point) Rect {
	r.ExpandToInclude(p)
	return r
}

func (r Rect) UnionWith(o Rect) Rect {
	r.ExpandToInclude(o.TopLeft)
	r.ExpandToInclude(o.BottomRight)
	return r
}

// Contains uses half-open [lo,hi) bounds on both axes.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.TopLeft.X && p.X < r.BottomRight.X &&
		p.Y >= r.TopLeft.Y && p.Y < r.BottomRight.Y
}

// DoesIntersect reports overlap; touching edges count as intersecting.
func (r Rect) DoesIntersect(o Rect) bool {
	if r.IsNull() || o.IsNull() {
		return false
	}
	return !(o.Left() > r.Right() || o.Right() < r.Left() ||
		o.Top() > r.Bottom() || o.Bottom() < r.Top())
}

// IntersectWith returns the overlap, or the null rect when disjoint.
func (r Rect) IntersectWith(o Rect) Rect {
	if !r.DoesIntersect(o) {
		return NullRect()
	}
	return RectFromPoints(
		Point{math.Max(r.Left(), o.Left()), math.Max(r.Top(), o.Top())},
		Point{math.Min(r.Right(), o.Right()), math.Min(r.Bottom(), o.Bottom())},
	)
}

// SplitVert splits into left and right halves.
func (r Rect) SplitVert() (Rect, Rect) {
	half := Vector{r.Width() / 2, r.Height()}
	return RectFromPointAndSize(r.TopLeft, half),
		RectFromPointAndSize(r.TopLeft.Add(Vector{r.Width() / 2, 0}), half)
}

// SplitHori splits into top and bottom halves.
func (r Rect) SplitHori() (Rect, Rect) {
	half := Vector{r.Width(), r.Height() / 2}
	return RectFromPointAndSize(r.TopLeft, half),
		RectFromPointAndSize(r.TopLeft.Add(Vector{0, r.Height() / 2}), half)
}

// SplitQuad returns the quadrants in reading order: top-left, top-right,
// bottom-left, bottom-right.
func (r Rect) SplitQuad() [4]Rect {
	half := Vector{r.Width() / 2, r.Height() / 2}
	return [4]Rect{
		RectFromPointAndSize(r.TopLeft, half),
		RectFromPointAndSize(Point{r.TopLeft.X + half.X, r.TopLeft.Y}, half),
		RectFromPointAndSize(Point{r.TopLeft.X, r.TopLeft.Y + half.Y}, half),
		RectFromPointAndSize(r.TopLeft.Add(half), half),
	}
}

func (r Rect) CloseTo(o Rect, eps float64) bool {
	return r.TopLeft.CloseTo(o.TopLeft, eps) && r.BottomRight.CloseTo(o.BottomRight, eps)
}

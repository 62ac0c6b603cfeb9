package photons2d

import (
	"errors"
	"fmt"
	"math"
)

// ErrRayOutsideViewport means a photon hit nothing and its path never
// crosses the viewport boundary: the scene emits light from outside the
// region it declares.
var ErrRayOutsideViewport = errors.New("ray does not intersect the viewport")

// Ray is one straight leg of a photon's path. Rays are not modified once
// created; a bounce produces a new Ray that inherits the photon's private
// random stream.
type Ray struct {
	origin     Point
	direction  Vector
	wavelength float64
	bounces    int
	rng        *PRNG
}

// Segment is a resolved leg ready for rasterization.
type Segment struct {
	From, To   Point
	Wavelength float64
	Outcome    Category
}

// objectHit is the nearest accepted hit of a ray.
type objectHit struct {
	hit  Hit
	dist float64
	obj  Object
	idx  int // position in the scene's object list, for tie breaking
}

// hitFinder locates the nearest object hit along a ray.
type hitFinder interface {
	nearestHit(r *Ray) (objectHit, bool)
}

// objectList is the linear-scan hitFinder.
type objectList []Object

func (l objectList) nearestHit(r *Ray) (objectHit, bool) { return r.NearestHit(l) }

// NewRay spawns a photon from l. The emission parameters are drawn from rng,
// then the photon's private stream is forked from it, so the caller's stream
// advances identically whoever traces the photon afterwards.
func NewRay(l *Light, rng *PRNG) *Ray {
	origin, dir, wavelength := l.spawn(rng)
	return &Ray{
		origin:     origin,
		direction:  dir,
		wavelength: wavelength,
		bounces:    MaxBounces,
		rng:        rng.Fork(),
	}
}

func (r *Ray) Origin() Point       { return r.origin }
func (r *Ray) Direction() Vector   { return r.direction }
func (r *Ray) Wavelength() float64 { return r.wavelength }
func (r *Ray) Bounces() int        { return r.bounces }

func (r *Ray) String() string {
	return fmt.Sprintf("ray{o=(%g,%g) d=(%g,%g) λ=%gnm bounces=%d}",
		r.origin.X, r.origin.Y, r.direction.X, r.direction.Y, r.wavelength, r.bounces)
}

// testObject runs the object's hit test with the photon's stream and
// rejects hits closer than MinHitDistance.
func (r *Ray) testObject(obj Object, idx int) (objectHit, bool) {
	h, ok := obj.GetHit(r.origin, r.direction, r.rng)
	if !ok {
		return objectHit{}, false
	}
	dist := r.origin.Distance(h.Point)
	if dist < MinHitDistance {
		return objectHit{}, false
	}
	return objectHit{hit: h, dist: dist, obj: obj, idx: idx}, true
}

// NearestHit scans all objects in order; on equal distance the first wins.
func (r *Ray) NearestHit(objects []Object) (objectHit, bool) {
	best := objectHit{dist: math.Inf(1)}
	found := false
	for i, o := range objects {
		if oh, ok := r.testObject(o, i); ok && oh.dist < best.dist {
			best, found = oh, true
		}
	}
	return best, found
}

// Bounce tests a single object and, on a hit, asks its material for the
// continuation. It does not look at the bounce budget.
func (r *Ray) Bounce(obj Object) (*Ray, bool) {
	oh, ok := r.testObject(obj, 0)
	if !ok {
		return nil, false
	}
	return r.scatter(oh)
}

func (r *Ray) scatter(oh objectHit) (*Ray, bool) {
	mat := oh.obj.Material()
	if mat == nil {
		return nil, false
	}
	dir, ok := mat.Outcome(r.direction, oh.hit.Normal, r.wavelength, oh.hit.Alpha, r.rng)
	if !ok {
		return nil, false
	}
	return &Ray{
		origin:     oh.hit.Point,
		direction:  dir,
		wavelength: r.wavelength,
		bounces:    r.bounces - 1,
		rng:        r.rng,
	}, true
}

// Shade resolves the material interaction at a hit. The returned category
// tells why no continuation was produced.
func (r *Ray) Shade(oh objectHit) (*Ray, Category) {
	if r.bounces <= 1 {
		return nil, Exhausted
	}
	next, ok := r.scatter(oh)
	if !ok {
		return nil, Absorbed
	}
	return next, Bounced
}

// FurthestExit returns the furthest forward crossing of the viewport's four
// edges. From inside the viewport that is where the ray leaves it.
func (r *Ray) FurthestExit(viewport Rect) (Point, bool) {
	horizontal := Vector{viewport.Width(), 0}
	vertical := Vector{0, viewport.Height()}
	edges := [...]struct {
		start Point
		span  Vector
	}{
		{viewport.TopLeft, horizontal},      // top
		{viewport.BottomLeft(), horizontal}, // bottom
		{viewport.TopLeft, vertical},        // left
		{viewport.TopRight(), vertical},     // right
	}
	maxDist, found := 0.0, false
	for _, e := range edges {
		if _, d, ok := intersectSegment(r.origin, r.direction, e.start, e.span); ok && (!found || d > maxDist) {
			maxDist, found = d, true
		}
	}
	if !found {
		return Point{}, false
	}
	return r.origin.Add(r.direction.Mul(maxDist)), true
}

// boundaryEps absorbs rounding in hit points computed on viewport edges.
const boundaryEps = 1e-6

func onOrInside(r Rect, p Point) bool {
	return p.X >= r.Left()-boundaryEps && p.X <= r.Right()+boundaryEps &&
		p.Y >= r.Top()-boundaryEps && p.Y <= r.Bottom()+boundaryEps
}

// resolve finds where this leg ends. hit reports whether it ended on an
// object; otherwise the segment runs to the viewport exit.
func (r *Ray) resolve(f hitFinder, viewport Rect) (seg Segment, oh objectHit, hit bool, err error) {
	seg = Segment{From: r.origin, Wavelength: r.wavelength}
	if h, ok := f.nearestHit(r); ok {
		seg.To = h.hit.Point
		return seg, h, true, nil
	}
	end, ok := r.FurthestExit(viewport)
	if !ok {
		// a photon sitting on the boundary and heading out leaves at once
		if !onOrInside(viewport, r.origin) {
			return Segment{}, objectHit{}, false, fmt.Errorf("%w: %s viewport=%v", ErrRayOutsideViewport, r, viewport)
		}
		end = r.origin
	}
	seg.To = end
	seg.Outcome = Exited
	return seg, objectHit{}, false, nil
}

func (r *Ray) collide(f hitFinder, viewport Rect) (Segment, *Ray, error) {
	seg, oh, hit, err := r.resolve(f, viewport)
	if err != nil || !hit {
		return seg, nil, err
	}
	next, cat := r.Shade(oh)
	seg.Outcome = cat
	return seg, next, nil
}

// CollisionList traces this leg against objects: it returns the segment to
// draw and the continuation ray, which is nil when the photon was absorbed,
// ran out of bounces or left the viewport.
func (r *Ray) CollisionList(objects []Object, viewport Rect) (Segment, *Ray, error) {
	return r.collide(objectList(objects), viewport)
}

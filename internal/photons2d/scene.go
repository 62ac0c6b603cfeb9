package photons2d

import (
	"errors"
	"fmt"
)

var (
	ErrNoLights          = errors.New("scene has no lights")
	ErrInvalidViewport   = errors.New("invalid viewport")
	ErrInvalidResolution = errors.New("invalid resolution")
)

// HitIndex selects how a render finds the nearest object along a ray.
type HitIndex string

const (
	IndexAuto   HitIndex = ""       // BVH from AABBBVHFromNObjects objects, linear scan below
	IndexLinear HitIndex = "linear" // test every object
	IndexBVH    HitIndex = "bvh"    // bounding volume hierarchy
	IndexRTree  HitIndex = "rtree"  // R-tree of object bounds
)

func (h HitIndex) valid() bool {
	switch h {
	case IndexAuto, IndexLinear, IndexBVH, IndexRTree:
		return true
	}
	return false
}

// Scene is everything a render needs: the lights, the objects, the viewport
// photons are traced within and the output resolution. World coordinates are
// pixel coordinates of the output image.
type Scene struct {
	Lights   []*Light
	Objects  []Object
	Viewport Rect
	ResX     int
	ResY     int
	Seed     uint32
	Index    HitIndex
}

// NewScene creates an empty scene with seed 0.
func NewScene(resX, resY int, viewport Rect) *Scene {
	s := &Scene{ResX: resX, ResY: resY, Viewport: viewport}
	DebugLog("Created scene resolution=(%d, %d), viewport=%+v", resX, resY, viewport)
	return s
}

func (s *Scene) AddLight(l *Light) {
	s.Lights = append(s.Lights, l)
}

// AddObject rejects objects without usable bounds (curves) or material.
func (s *Scene) AddObject(o Object) error {
	b, err := o.Bounds()
	if err != nil {
		return fmt.Errorf("object %d: %w", len(s.Objects), err)
	}
	if o.Material() == nil {
		return fmt.Errorf("object %d: %w: no material", len(s.Objects), ErrInvalidMaterial)
	}
	if !s.Viewport.IsNull() && !b.IsNull() && rectFinite(b) && !s.Viewport.DoesIntersect(b) {
		Logger().Warn("object lies outside the viewport", "index", len(s.Objects), "bounds", b)
	}
	s.Objects = append(s.Objects, o)
	return nil
}

func (s *Scene) SetSeed(seed uint32) { s.Seed = seed }

// TotalLightPower is the sum of each light's upper power bound.
func (s *Scene) TotalLightPower() float64 {
	total := 0.0
	for _, l := range s.Lights {
		total += l.MaxPower()
	}
	return total
}

// Validate reports the first reason the scene cannot be rendered.
func (s *Scene) Validate() error {
	if s.ResX <= 0 || s.ResY <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, s.ResX, s.ResY)
	}
	v := s.Viewport
	if v.IsNull() || !rectFinite(v) || !(v.Width() > 0) || !(v.Height() > 0) {
		return fmt.Errorf("%w: %+v", ErrInvalidViewport, v)
	}
	if !s.Index.valid() {
		return fmt.Errorf("unknown hit index %q", s.Index)
	}
	if len(s.Lights) == 0 {
		return ErrNoLights
	}
	if total := s.TotalLightPower(); !(total > 0) || !isFinite(total) {
		return fmt.Errorf("%w: total light power %g", ErrNoLights, total)
	}
	return nil
}

// chooseLight picks a light with probability proportional to its power:
// a threshold in [0,total) against a running sum of power samples. The last
// light catches rounding overshoot.
func (s *Scene) chooseLight(total float64, rng *PRNG) *Light {
	threshold := rng.UniformRange(total, 0)
	sum := 0.0
	for _, l := range s.Lights {
		sum += l.Power.Val(rng)
		if threshold <= sum {
			return l
		}
	}
	return s.Lights[len(s.Lights)-1]
}

// spawn draws the next photon from the scene stream.
func (s *Scene) spawn(total float64, rng *PRNG) *Ray {
	return NewRay(s.chooseLight(total, rng), rng)
}

// hitFinder builds the nearest-hit strategy named by Index. The automatic
// choice honours AlwaysBVH and NeverBVH.
func (s *Scene) hitFinder() (hitFinder, error) {
	index := s.Index
	if index == IndexAuto {
		index = IndexLinear
		if !NeverBVH && (AlwaysBVH || len(s.Objects) >= AABBBVHFromNObjects) {
			index = IndexBVH
		}
	}
	switch index {
	case IndexLinear:
		return objectList(s.Objects), nil
	case IndexBVH:
		t, err := newObjectBVH(s.Objects)
		if err != nil {
			return nil, err
		}
		DebugLogOnce("Using BVH for %d objects, depth %d", len(s.Objects), t.root.depth())
		return t, nil
	case IndexRTree:
		t, err := newObjectRTree(s.Objects)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, fmt.Errorf("unknown hit index %q", s.Index)
}

package photons2d

import (
	"fmt"
	"runtime"
	"time"
)

// Renderer traces a fixed number of photons through a scene.
//
// Every renderer draws photons from one stream seeded with Scene.Seed in the
// same order (choose light, spawn, fork), so for a given seed they trace the
// same photon paths; only the order in which segments are summed into the
// image may differ.
type Renderer interface {
	Render(s *Scene, rays int) (*Image, error)
}

// prepare validates the scene and builds what every renderer needs.
func prepare(s *Scene, rays int) (hitFinder, *Image, error) {
	if rays < 0 {
		return nil, nil, fmt.Errorf("ray count must not be negative; got %d", rays)
	}
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	finder, err := s.hitFinder()
	if err != nil {
		return nil, nil, err
	}
	return finder, NewImage(s.ResX, s.ResY, s.TotalLightPower()), nil
}

// Sequential traces one photon at a time on the calling goroutine.
type Sequential struct {
	Hooks
}

func (r Sequential) Render(s *Scene, rays int) (*Image, error) {
	finder, img, err := prepare(s, rays)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	acc := accumulator{img: img, hooks: r.Hooks}
	rng := NewPRNG(s.Seed)
	total := s.TotalLightPower()
	prog := newProgress(int64(rays))
	for i := 0; i < rays; i++ {
		ray := s.spawn(total, rng)
		for ray != nil {
			seg, next, err := ray.collide(finder, s.Viewport)
			if err != nil {
				return nil, err
			}
			acc.add(seg)
			ray = next
		}
		prog.tick()
	}
	raysStats(r.Log)
	Logger().Info("render finished", "strategy", "sequential", "photons", count(int64(rays)),
		"segments", count(img.Rays()), "took", time.Since(start).Round(time.Millisecond))
	return img, nil
}

// Pipeline traces photons concurrently: a dispatcher feeds a pool of
// colliders, an optional pool of shaders evaluates materials, and a single
// aggregator goroutine owns the image.
//
// Zero values pick defaults: one collider per CPU, no shader stage and
// DefaultInFlightPerWorker photons in flight per collider.
type Pipeline struct {
	Colliders   int
	Shaders     int
	MaxInFlight int
	Hooks
}

func (r Pipeline) workers() (colliders, shaders, maxInFlight int) {
	colliders = r.Colliders
	if colliders <= 0 {
		colliders = runtime.NumCPU()
	}
	shaders = r.Shaders
	if shaders < 0 {
		shaders = 0
	}
	maxInFlight = r.MaxInFlight
	if maxInFlight <= 0 {
		maxInFlight = colliders * DefaultInFlightPerWorker
	}
	return
}

func (r Pipeline) Render(s *Scene, rays int) (*Image, error) {
	finder, img, err := prepare(s, rays)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	colliders, shaders, maxInFlight := r.workers()
	DebugLog("Pipeline: %d colliders, %d shaders, %d photons in flight", colliders, shaders, maxInFlight)

	p := newPipeline(finder, s.Viewport, maxInFlight, colliders, shaders)
	agg := newAggregator(img, r.Hooks, p.segments)
	cp := newColliderPool(colliders, p)
	var sp *shaderPool
	if shaders > 0 {
		sp = newShaderPool(shaders, p)
	}

	rng := NewPRNG(s.Seed)
	total := s.TotalLightPower()
	prog := newProgress(int64(rays))
	for i := 0; i < rays && !p.errs.failed.Load(); i++ {
		p.dispatch(s.spawn(total, rng))
		prog.tick()
	}

	// drain, then terminate and join every stage in pipeline order
	p.photons.Wait()
	cp.Close()
	sp.Close()
	agg.Close()

	if err := p.errs.err(); err != nil {
		return nil, err
	}
	raysStats(r.Log)
	Logger().Info("render finished", "strategy", "pipeline", "photons", count(int64(rays)),
		"segments", count(img.Rays()), "took", time.Since(start).Round(time.Millisecond))
	return img, nil
}

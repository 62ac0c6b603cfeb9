package photons2d

import (
	"runtime"
	"sync"
)

// EstimateSegments traces trials probe photons, without drawing them, and
// returns the mean number of segments per photon. Probe streams are derived
// from the scene seed so the estimate is reproducible but independent of the
// render's own stream.
func EstimateSegments(s *Scene, trials int) (float64, error) {
	if trials <= 0 {
		return 0, nil
	}
	if err := s.Validate(); err != nil {
		return 0, err
	}
	finder, err := s.hitFinder()
	if err != nil {
		return 0, err
	}
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > trials {
		workers = trials
	}
	total := s.TotalLightPower()

	type result struct {
		segments int64
		err      error
	}
	per, rem := trials/workers, trials%workers
	var wg sync.WaitGroup
	results := make(chan result, workers)

	for w := 0; w < workers; w++ {
		n := per
		if w < rem {
			n++
		}
		wg.Add(1)
		go func(wid, n int) {
			defer wg.Done()
			// independent stream per worker
			rng := NewPRNG(s.Seed ^ (uint32(wid+1) * 0x9e3779b9))
			var segs int64
			for i := 0; i < n; i++ {
				ray := s.spawn(total, rng)
				for ray != nil {
					_, next, err := ray.collide(finder, s.Viewport)
					if err != nil {
						results <- result{err: err}
						return
					}
					segs++
					ray = next
				}
			}
			results <- result{segments: segs}
		}(w, n)
	}

	wg.Wait()
	close(results)

	var segments int64
	for r := range results {
		if r.err != nil {
			return 0, r.err
		}
		segments += r.segments
	}
	mean := float64(segments) / float64(trials)
	DebugLog("Estimated %.3f segments per photon from %s probes", mean, count(int64(trials)))
	return mean, nil
}

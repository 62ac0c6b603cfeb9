package photons2d

import (
	"sync"
	"time"
)

// Hooks are optional observers of a render.
type Hooks struct {
	// Log receives segment and photon counts.
	Log *RayLog
	// OnSnapshot gets a copy of the image every SnapshotEvery segments.
	SnapshotEvery int64
	OnSnapshot    func(*Image)
}

// accumulator is the only writer of a render's Image.
type accumulator struct {
	img      *Image
	hooks    Hooks
	segments int64
}

func (a *accumulator) add(seg Segment) {
	a.img.DrawLine(seg.Wavelength, seg.From.X, seg.From.Y, seg.To.X, seg.To.Y)
	a.hooks.Log.logSegment(seg.Outcome)
	if seg.Outcome != Bounced {
		a.hooks.Log.logPhoton()
	}
	a.segments++
	if a.hooks.OnSnapshot != nil && a.hooks.SnapshotEvery > 0 && a.segments%a.hooks.SnapshotEvery == 0 {
		a.hooks.OnSnapshot(a.img.Clone())
	}
}

// aggregator runs an accumulator on its own goroutine, fed by the pipeline.
type aggregator struct {
	acc  accumulator
	in   chan message[Segment]
	done sync.WaitGroup
}

func newAggregator(img *Image, hooks Hooks, in chan message[Segment]) *aggregator {
	a := &aggregator{acc: accumulator{img: img, hooks: hooks}, in: in}
	a.done.Add(1)
	go a.run()
	return a
}

func (a *aggregator) run() {
	defer a.done.Done()
	for msg := range a.in {
		if msg.terminate {
			return
		}
		a.acc.add(msg.next)
	}
}

// Close drains the queued segments and waits for the aggregator to stop.
func (a *aggregator) Close() *Image {
	a.in <- terminateMsg[Segment]()
	a.done.Wait()
	return a.acc.img
}

// progress logs about every 1% of a known amount of work.
type progress struct {
	total, step int64
	done        int64
	start       time.Time
}

func newProgress(total int64) *progress {
	step := int64(1)
	if total >= 100 {
		step = total / 100 // ~1%
	}
	return &progress{total: total, step: step, start: time.Now()}
}

// tick is not safe for concurrent use.
func (p *progress) tick() {
	p.done++
	if p.done%p.step == 0 || p.done == p.total {
		Logger().Info("progress",
			"photons", count(p.done),
			"pct", float64(p.done)*100/float64(p.total),
			"elapsed", time.Since(p.start).Round(time.Millisecond),
		)
	}
}

package photons2d

import (
	"errors"
	"sync"
	"sync/atomic"
)

// message is what travels between pipeline stages: either the next unit of
// work or a request for one worker to stop.
type message[T any] struct {
	terminate bool
	next      T
}

func nextMsg[T any](v T) message[T]  { return message[T]{next: v} }
func terminateMsg[T any]() message[T] { return message[T]{terminate: true} }

// hitData is a resolved hit waiting for its material: collider -> shader.
type hitData struct {
	ray *Ray
	hit objectHit
	seg Segment
}

// errorCollector keeps every worker error; err joins them in arrival order.
type errorCollector struct {
	mu     sync.Mutex
	errs   []error
	failed atomic.Bool
}

func (c *errorCollector) add(err error) {
	c.mu.Lock()
	c.errs = append(c.errs, err)
	c.mu.Unlock()
	c.failed.Store(true)
}

func (c *errorCollector) err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return errors.Join(c.errs...)
}

// pipeline is the state shared by the stages of one concurrent render.
//
// A photon is in flight from dispatch until its last segment has been handed
// to the aggregator. inFlight bounds that number, and every queue a photon
// can sit in holds at least that many messages, so the self-feeding
// collider loop never blocks for good.
type pipeline struct {
	finder   hitFinder
	viewport Rect

	rays     chan message[*Ray]    // collider input
	hits     chan message[hitData] // shader input, nil without a shader stage
	segments chan message[Segment] // aggregator input

	inFlight chan struct{}
	photons  sync.WaitGroup
	errs     errorCollector
}

func newPipeline(finder hitFinder, viewport Rect, maxInFlight, colliders, shaders int) *pipeline {
	p := &pipeline{
		finder:   finder,
		viewport: viewport,
		rays:     make(chan message[*Ray], imax(maxInFlight, colliders)),
		segments: make(chan message[Segment], maxInFlight),
		inFlight: make(chan struct{}, maxInFlight),
	}
	if shaders > 0 {
		p.hits = make(chan message[hitData], imax(maxInFlight, shaders))
	}
	return p
}

// dispatch blocks until a photon slot is free, then queues r.
func (p *pipeline) dispatch(r *Ray) {
	p.inFlight <- struct{}{}
	p.photons.Add(1)
	p.rays <- nextMsg(r)
}

func (p *pipeline) finish() {
	<-p.inFlight
	p.photons.Done()
}

func (p *pipeline) fail(err error) {
	p.errs.add(err)
	p.finish()
}

// shade applies the material and routes the result: the segment to the
// aggregator, the continuation back to the colliders.
func (p *pipeline) shade(r *Ray, oh objectHit, seg Segment) {
	next, cat := r.Shade(oh)
	seg.Outcome = cat
	p.segments <- nextMsg(seg)
	if next != nil {
		p.rays <- nextMsg(next)
		return
	}
	p.finish()
}

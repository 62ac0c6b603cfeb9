package photons2d

import "sync"

// colliderPool resolves ray legs against the scene. Workers share one input
// queue; a channel receive hands each ray to exactly one worker.
type colliderPool struct {
	p    *pipeline
	size int
	wg   sync.WaitGroup
}

func newColliderPool(size int, p *pipeline) *colliderPool {
	if size <= 0 {
		panic("photons2d: collider pool needs at least one worker")
	}
	cp := &colliderPool{p: p, size: size}
	cp.wg.Add(size)
	for id := 0; id < size; id++ {
		go cp.run(id)
	}
	return cp
}

func (cp *colliderPool) run(id int) {
	defer cp.wg.Done()
	for msg := range cp.p.rays {
		if msg.terminate {
			DebugLog("Collider %d terminating", id)
			return
		}
		cp.work(msg.next)
	}
}

func (cp *colliderPool) work(r *Ray) {
	p := cp.p
	seg, oh, hit, err := r.resolve(p.finder, p.viewport)
	if err != nil {
		p.fail(err)
		return
	}
	if !hit {
		p.segments <- nextMsg(seg)
		p.finish()
		return
	}
	if p.hits != nil {
		p.hits <- nextMsg(hitData{ray: r, hit: oh, seg: seg})
		return
	}
	p.shade(r, oh, seg)
}

// Close stops every worker once the queue ahead of the terminate messages
// has drained, and waits for them.
func (cp *colliderPool) Close() {
	for i := 0; i < cp.size; i++ {
		cp.p.rays <- terminateMsg[*Ray]()
	}
	cp.wg.Wait()
}

package photons2d

import "sync"

// shaderPool evaluates materials for hits found by the colliders and feeds
// continuations back to them.
type shaderPool struct {
	p    *pipeline
	size int
	wg   sync.WaitGroup
}

func newShaderPool(size int, p *pipeline) *shaderPool {
	if size <= 0 || p.hits == nil {
		panic("photons2d: shader pool needs workers and a hit queue")
	}
	sp := &shaderPool{p: p, size: size}
	sp.wg.Add(size)
	for id := 0; id < size; id++ {
		go sp.run(id)
	}
	return sp
}

func (sp *shaderPool) run(id int) {
	defer sp.wg.Done()
	for msg := range sp.p.hits {
		if msg.terminate {
			DebugLog("Shader %d terminating", id)
			return
		}
		h := msg.next
		sp.p.shade(h.ray, h.hit, h.seg)
	}
}

// Close is a no-op on a nil pool.
func (sp *shaderPool) Close() {
	if sp == nil {
		return
	}
	for i := 0; i < sp.size; i++ {
		sp.p.hits <- terminateMsg[hitData]()
	}
	sp.wg.Wait()
}

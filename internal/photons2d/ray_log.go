package photons2d

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Category is how a traced segment ended.
type Category uint8

const (
	Bounced   Category = iota // hit an object and continued
	Absorbed                  // hit an object and was absorbed
	Exited                    // hit nothing and left through the viewport
	Exhausted                 // hit an object with no bounces left
	numCategories
)

func (c Category) String() string {
	switch c {
	case Bounced:
		return "bounced"
	case Absorbed:
		return "absorbed"
	case Exited:
		return "exited"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// RayLog counts segment outcomes and photons. It is safe for concurrent use
// although renderers only write it from one goroutine.
type RayLog struct {
	photons  atomic.Int64
	segments [numCategories]atomic.Int64
}

func (l *RayLog) logPhoton() {
	if l != nil {
		l.photons.Add(1)
	}
}

func (l *RayLog) logSegment(c Category) {
	if l != nil && c < numCategories {
		l.segments[c].Add(1)
	}
}

func (l *RayLog) Photons() int64 { return l.photons.Load() }

func (l *RayLog) Count(c Category) int64 {
	if c >= numCategories {
		return 0
	}
	return l.segments[c].Load()
}

// Segments is the total over all categories.
func (l *RayLog) Segments() int64 {
	var n int64
	for i := range l.segments {
		n += l.segments[i].Load()
	}
	return n
}

func (l *RayLog) String() string {
	var b strings.Builder
	b.WriteString("photons=" + count(l.Photons()))
	for c := Category(0); c < numCategories; c++ {
		b.WriteString(" " + c.String() + "=" + count(l.Count(c)))
	}
	return b.String()
}

// raysStats logs the counters at debug level.
func raysStats(l *RayLog) {
	if l == nil {
		return
	}
	Logger().Debug("ray statistics",
		"photons", l.Photons(),
		"segments", l.Segments(),
		"bounced", l.Count(Bounced),
		"absorbed", l.Count(Absorbed),
		"exited", l.Count(Exited),
		"exhausted", l.Count(Exhausted),
	)
}

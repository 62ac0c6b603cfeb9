package photons2d

// PRNG is Bob Jenkins' small noncryptographic generator, as used by HQZ.
// It is tiny, fast and bit-reproducible across platforms; a *PRNG must not be
// shared between goroutines (use Fork to hand out substreams instead).
type PRNG struct {
	rng0, rng1, rng2, rng3 uint32
}

// NewPRNG seeds a generator and runs it long enough to mix the state.
func NewPRNG(seed uint32) *PRNG {
	p := &PRNG{rng0: 0xf1ea5eed, rng1: seed, rng2: seed, rng3: seed}
	for i := 0; i < 20; i++ {
		p.NextU32()
	}
	return p
}

func rotl(x uint32, k uint) uint32 { return (x << k) | (x >> (32 - k)) }

// NextU32 advances the state and returns the next word.
func (p *PRNG) NextU32() uint32 {
	rng4 := p.rng0 - rotl(p.rng1, 27)
	p.rng0 = p.rng1 ^ rotl(p.rng2, 17)
	p.rng1 = p.rng2 + p.rng3
	p.rng2 = p.rng3 + rng4
	p.rng3 = rng4 + p.rng0
	return p.rng3
}

// UniformF64 returns a value in [0,1).
func (p *PRNG) UniformF64() float64 {
	const inv32 = 1.0 / 4294967296.0 // 2^-32
	return float64(p.NextU32()) * inv32
}

// UniformRange returns a value in [lo,hi]. The larger bound comes first;
// hi < lo is a caller bug and panics.
func (p *PRNG) UniformRange(hi, lo float64) float64 {
	if hi < lo {
		panic("photons2d: UniformRange called with hi < lo")
	}
	return lo + p.UniformF64()*(hi-lo)
}

// Fork returns an independent substream seeded from one draw of p.
func (p *PRNG) Fork() *PRNG {
	return NewPRNG(p.NextU32())
}

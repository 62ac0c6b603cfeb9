package photons2d

import (
	"errors"
	"fmt"
	"math"
)

// Material decides what happens to a photon hitting a surface.
//
// Outcome returns the direction of the bounced photon, or ok == false when
// it is absorbed. normal is perpendicular to the surface but not necessarily
// unit length (Vector.Reflect copes with that). alpha is the position along
// the object where the hit happened, in [0,1]. Implementations draw any
// randomness from rng, which belongs to the photon being shaded.
type Material interface {
	Outcome(direction, normal Vector, wavelength, alpha float64, rng *PRNG) (Vector, bool)
}

var ErrInvalidMaterial = errors.New("invalid material")

// HQZLegacy models the shaders of the original HQZ renderer: fixed
// probabilities of diffuse reflection, specular reflection and transmission;
// the remainder is absorbed.
type HQZLegacy struct {
	D, R, T float64
}

// NewHQZLegacy validates that the probabilities are non-negative and sum to at most 1.
func NewHQZLegacy(d, r, t float64) (HQZLegacy, error) {
	if d < 0 || r < 0 || t < 0 {
		return HQZLegacy{}, fmt.Errorf("%w: negative coefficient d=%g r=%g t=%g", ErrInvalidMaterial, d, r, t)
	}
	if d+r+t > 1.0 {
		return HQZLegacy{}, fmt.Errorf("%w: d+r+t = %g > 1", ErrInvalidMaterial, d+r+t)
	}
	return HQZLegacy{D: d, R: r, T: t}, nil
}

// DefaultHQZLegacy is d=0.1, r=0.4, t=0.4 (absorbs 0.1).
func DefaultHQZLegacy() HQZLegacy { return HQZLegacy{D: 0.1, R: 0.4, T: 0.4} }

// Absorb is the probability that a photon is absorbed.
func (m HQZLegacy) Absorb() float64 { return 1 - m.D - m.R - m.T }

// Outcome dispatches on one uniform draw with cumulative thresholds in the
// fixed order diffuse, specular, transmit.
func (m HQZLegacy) Outcome(direction, normal Vector, _, _ float64, rng *PRNG) (Vector, bool) {
	f := rng.UniformF64()
	if f <= m.D {
		angle := rng.UniformRange(2*math.Pi, 0)
		return Vector{math.Cos(angle), math.Sin(angle)}, true
	}
	if f <= m.D+m.R {
		return direction.Reflect(normal), true
	}
	if f <= m.D+m.R+m.T {
		return direction, true
	}
	return Vector{}, false
}

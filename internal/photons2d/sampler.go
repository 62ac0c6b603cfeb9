package photons2d

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/lukaszgryglicki/photons2d/internal/spectrum"
)

type sampleKind uint8

const (
	sampleConstant sampleKind = iota
	sampleRange
	sampleBlackbody
)

// Sample is a stochastically sampled scalar: a constant, a uniform range, or
// a blackbody spectrum of a given temperature (only useful for wavelengths).
// The zero value is Constant(0).
type Sample struct {
	kind   sampleKind
	hi, lo float64 // constant and blackbody keep their value in hi
}

var ErrInvalidRange = errors.New("range upper bound is below lower bound")

func Constant(v float64) Sample { return Sample{kind: sampleConstant, hi: v, lo: v} }

// Range samples uniformly in [lo,hi]. The larger value comes first;
// hi < lo panics. Use NewRange for untrusted input.
func Range(hi, lo float64) Sample {
	s, err := NewRange(hi, lo)
	if err != nil {
		panic(err)
	}
	return s
}

func NewRange(hi, lo float64) (Sample, error) {
	if !(hi >= lo) {
		return Sample{}, fmt.Errorf("%w: Range(%g, %g)", ErrInvalidRange, hi, lo)
	}
	return Sample{kind: sampleRange, hi: hi, lo: lo}, nil
}

// Blackbody samples wavelengths (nm) from Planck's law at temp kelvin.
func Blackbody(temp float64) Sample { return Sample{kind: sampleBlackbody, hi: temp} }

// Val draws the next value. Only Range and Blackbody consume rng.
func (s Sample) Val(rng *PRNG) float64 {
	switch s.kind {
	case sampleRange:
		return rng.UniformRange(s.hi, s.lo)
	case sampleBlackbody:
		return spectrum.BlackbodyWavelength(s.hi, rng.UniformF64())
	default:
		return s.hi
	}
}

// Bounds returns the inclusive (lo, hi) range of values Val can produce.
// A blackbody is unbounded.
func (s Sample) Bounds() (lo, hi float64) {
	if s.kind == sampleBlackbody {
		return math.Inf(-1), math.Inf(1)
	}
	return s.lo, s.hi
}

func (s Sample) String() string {
	switch s.kind {
	case sampleRange:
		return fmt.Sprintf("Range(%g, %g)", s.hi, s.lo)
	case sampleBlackbody:
		return fmt.Sprintf("Blackbody(%gK)", s.hi)
	default:
		return fmt.Sprintf("Constant(%g)", s.hi)
	}
}

type sampleJSON struct {
	Constant  *float64  `json:"constant,omitempty"`
	Range     []float64 `json:"range,omitempty"`
	Blackbody *float64  `json:"blackbody,omitempty"`
}

// MarshalJSON writes constants as bare numbers and the other kinds as objects.
func (s Sample) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case sampleRange:
		return json.Marshal(sampleJSON{Range: []float64{s.hi, s.lo}})
	case sampleBlackbody:
		t := s.hi
		return json.Marshal(sampleJSON{Blackbody: &t})
	default:
		return json.Marshal(s.hi)
	}
}

// UnmarshalJSON accepts 1.5, {"constant":1.5}, {"range":[hi,lo]} or {"blackbody":5800}.
func (s *Sample) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("sample: %w", err)
		}
		*s = Constant(v)
		return nil
	}
	var raw sampleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("sample: %w", err)
	}
	set := 0
	if raw.Constant != nil {
		*s = Constant(*raw.Constant)
		set++
	}
	if raw.Range != nil {
		if len(raw.Range) != 2 {
			return fmt.Errorf("sample: range needs [hi, lo], got %d values", len(raw.Range))
		}
		r, err := NewRange(raw.Range[0], raw.Range[1])
		if err != nil {
			return fmt.Errorf("sample: %w", err)
		}
		*s = r
		set++
	}
	if raw.Blackbody != nil {
		*s = Blackbody(*raw.Blackbody)
		set++
	}
	if set != 1 {
		return fmt.Errorf("sample: exactly one of constant, range, blackbody required, got %s", data)
	}
	return nil
}

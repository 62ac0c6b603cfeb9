package photons2d

import (
	"errors"
	"fmt"
	"math"
)

// Light is a photon emitter. Every field is sampled per photon:
// the emission point is (X,Y) offset by PolarDistance along PolarAngle
// (radians), the photon heads along RayAngle (degrees) and carries
// Wavelength nanometres. Power weights how often this light is chosen.
type Light struct {
	Power         Sample
	X, Y          Sample
	PolarAngle    Sample
	PolarDistance Sample
	RayAngle      Sample
	Wavelength    Sample
}

// NewLight checks that the light can actually emit: its power must be
// bounded and not entirely negative.
func NewLight(power, x, y, polarAngle, polarDistance, rayAngle, wavelength Sample) (*Light, error) {
	l := &Light{
		Power:         power,
		X:             x,
		Y:             y,
		PolarAngle:    polarAngle,
		PolarDistance: polarDistance,
		RayAngle:      rayAngle,
		Wavelength:    wavelength,
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	DebugLog("Created light %s", l)
	return l, nil
}

func (l *Light) validate() error {
	lo, hi := l.Power.Bounds()
	if !isFinite(lo) || !isFinite(hi) {
		return errors.New("light power must be bounded; got " + l.Power.String())
	}
	if hi <= 0 {
		return fmt.Errorf("light power must be positive; got %s", l.Power)
	}
	return nil
}

// MaxPower is the light's contribution to the scene's total light power.
func (l *Light) MaxPower() float64 {
	_, hi := l.Power.Bounds()
	return hi
}

// spawn samples the emission point, direction and wavelength, in that order.
func (l *Light) spawn(rng *PRNG) (Point, Vector, float64) {
	cx := l.X.Val(rng)
	cy := l.Y.Val(rng)
	polarAngle := l.PolarAngle.Val(rng)
	polarDist := l.PolarDistance.Val(rng)
	origin := Point{
		X: cx + math.Cos(polarAngle)*polarDist,
		Y: cy + math.Sin(polarAngle)*polarDist,
	}
	rayAngle := l.RayAngle.Val(rng) * (math.Pi / 180.0)
	dir := Vector{math.Cos(rayAngle), math.Sin(rayAngle)}
	return origin, dir, l.Wavelength.Val(rng)
}

func (l *Light) String() string {
	return fmt.Sprintf("{power=%s pos=(%s,%s) polar=(%s,%s) angle=%s wavelength=%s}",
		l.Power, l.X, l.Y, l.PolarAngle, l.PolarDistance, l.RayAngle, l.Wavelength)
}

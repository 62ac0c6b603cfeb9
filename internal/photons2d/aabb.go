package photons2d

import "math"

type rayRecips struct {
	invX, invY float64
	parX, parY bool // parallel flags (|D| < eps)
}

func newRayRecips(D Vector) rayRecips {
	const eps = 1e-12
	rr := rayRecips{parX: math.Abs(D.X) < eps, parY: math.Abs(D.Y) < eps}
	if !rr.parX {
		rr.invX = 1 / D.X
	}
	if !rr.parY {
		rr.invY = 1 / D.Y
	}
	return rr
}

// rayRect is the slab test against a closed box. It returns the parametric
// entry distance (clamped to 0 when the origin is inside).
func rayRect(O Point, r Rect, rr rayRecips) (bool, float64) {
	ok, tmin, _ := raySlab(O, r, rr)
	return ok, tmin
}

// raySlab returns the forward parametric interval [tmin,tmax] the ray spends
// inside r.
func raySlab(O Point, r Rect, rr rayRecips) (bool, float64, float64) {
	tmin, tmax := 0.0, math.Inf(1)

	// X
	if !rr.parX {
		t1 := (r.Left() - O.X) * rr.invX
		t2 := (r.Right() - O.X) * rr.invX
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if O.X < r.Left() || O.X > r.Right() {
		return false, 0, 0
	}

	// Y
	if !rr.parY {
		t1 := (r.Top() - O.Y) * rr.invY
		t2 := (r.Bottom() - O.Y) * rr.invY
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if O.Y < r.Top() || O.Y > r.Bottom() {
		return false, 0, 0
	}

	// NaN from an infinite slab (0 * Inf) never rejects.
	if tmin > tmax {
		return false, 0, 0
	}
	return true, tmin, tmax
}

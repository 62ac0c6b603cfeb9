package photons2d

import "math"

// closer orders hits by distance, then by object index, which makes the
// tree agree with the linear scan regardless of traversal order.
func closer(a, b objectHit) bool {
	return a.dist < b.dist || (a.dist == b.dist && a.idx < b.idx)
}

// nearestHit returns the same hit as Ray.NearestHit over the original object
// list, visiting only the boxes the ray can reach. Prunes by current best distance.
func (t *objectBVH) nearestHit(r *Ray) (objectHit, bool) {
	best := objectHit{dist: math.Inf(1)}
	found := false
	consider := func(l *bvhLeaf) {
		if oh, ok := r.testObject(l.obj, l.idx); ok && (!found || closer(oh, best)) {
			best, found = oh, true
		}
	}
	for i := range t.unbounded {
		consider(&t.unbounded[i])
	}
	if t.root == nil {
		return best, found
	}

	rr := newRayRecips(r.direction)
	scale := r.direction.Magnitude()
	// box entry distances are parametric; allow rounding slack so ties on a box face are still visited
	beyond := func(tmin float64) bool {
		return tmin*scale > best.dist*(1+1e-9)+1e-9
	}

	stack := []*AABBNode{t.root}
	for len(stack) > 0 {
		// pop
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ok, tmin := rayRect(r.origin, n.bounds, rr)
		if !ok || beyond(tmin) {
			continue
		}

		if n.leafObjs != nil {
			for i := range n.leafObjs {
				consider(&n.leafObjs[i])
			}
			continue
		}

		// order children near→far (push far first so near is processed next)
		var lOK, rOK bool
		var lT, rT float64
		if n.left != nil {
			lOK, lT = rayRect(r.origin, n.left.bounds, rr)
			lOK = lOK && !beyond(lT)
		}
		if n.right != nil {
			rOK, rT = rayRect(r.origin, n.right.bounds, rr)
			rOK = rOK && !beyond(rT)
		}
		switch {
		case lOK && rOK:
			if lT < rT {
				stack = append(stack, n.right, n.left)
			} else {
				stack = append(stack, n.left, n.right)
			}
		case lOK:
			stack = append(stack, n.left)
		case rOK:
			stack = append(stack, n.right)
		}
	}
	return best, found
}

package photons2d

import (
	"math"
	"sort"
)

type bvhLeaf struct {
	bounds Rect
	obj    Object
	idx    int
}

type AABBNode struct {
	bounds   Rect
	left     *AABBNode
	right    *AABBNode
	leafObjs []bvhLeaf // non-nil ⇒ leaf
}

// objectBVH is a hitFinder over an AABB tree. Objects with unbounded
// geometry cannot be placed in the tree and are always tested.
type objectBVH struct {
	root      *AABBNode
	unbounded []bvhLeaf
}

func newObjectBVH(objects []Object) (*objectBVH, error) {
	t := &objectBVH{}
	leaves := make([]bvhLeaf, 0, len(objects))
	for i, o := range objects {
		b, err := o.Bounds()
		if err != nil {
			return nil, err
		}
		l := bvhLeaf{bounds: b, obj: o, idx: i}
		if !rectFinite(b) {
			t.unbounded = append(t.unbounded, l)
			continue
		}
		leaves = append(leaves, l)
	}
	if len(leaves) > 0 {
		t.root = buildBVHRec(leaves, 0)
	}
	DebugLog("BVH: %d bounded objects, %d unbounded", len(leaves), len(t.unbounded))
	return t, nil
}

func rectFinite(r Rect) bool {
	return isFinite(r.Left()) && isFinite(r.Right()) && isFinite(r.Top()) && isFinite(r.Bottom())
}

func buildBVHRec(objs []bvhLeaf, depth int) *AABBNode {
	n := len(objs)
	if n == 0 {
		return nil
	}
	bounds := objs[0].bounds
	for i := 1; i < n; i++ {
		bounds = bounds.UnionWith(objs[i].bounds)
	}
	if n <= AABBBVHMaxLeafSize {
		return &AABBNode{bounds: bounds, leafObjs: objs}
	}

	// Centroid spread per axis
	c0 := objs[0].bounds.Midpoint()
	cmin, cmax := c0, c0
	for i := 1; i < n; i++ {
		c := objs[i].bounds.Midpoint()
		cmin.X, cmax.X = math.Min(cmin.X, c.X), math.Max(cmax.X, c.X)
		cmin.Y, cmax.Y = math.Min(cmin.Y, c.Y), math.Max(cmax.Y, c.Y)
	}
	axisY := cmax.Y-cmin.Y > cmax.X-cmin.X

	// If all centroids coincide (degenerate), fall back to longest box extent axis.
	if math.Max(cmax.X-cmin.X, cmax.Y-cmin.Y) <= 1e-18 {
		axisY = bounds.Height() > bounds.Width()
	}

	// Sort by chosen centroid axis, split at median
	sort.SliceStable(objs, func(i, j int) bool {
		ci, cj := objs[i].bounds.Midpoint(), objs[j].bounds.Midpoint()
		if axisY {
			return ci.Y < cj.Y
		}
		return ci.X < cj.X
	})
	mid := n / 2
	return &AABBNode{
		bounds: bounds,
		left:   buildBVHRec(objs[:mid], depth+1),
		right:  buildBVHRec(objs[mid:], depth+1),
	}
}

// depth returns the height of the tree, for diagnostics.
func (n *AABBNode) depth() int {
	if n == nil {
		return 0
	}
	return 1 + imax(n.left.depth(), n.right.depth())
}

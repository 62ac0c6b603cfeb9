package photons2d

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// rtreeBoundEps pads boxes: the R-tree treats touching boxes as disjoint
// and rejects zero-length sides.
const rtreeBoundEps = 1e-6

// rtreeEntry is an object stored in the R-tree.
type rtreeEntry struct {
	bbox *rtreego.Rect
	leaf bvhLeaf
}

func (e *rtreeEntry) Bounds() *rtreego.Rect { return e.bbox }

// objectRTree is a hitFinder over an R-tree of object bounds. A ray is
// clipped to the box enclosing every bounded object and only the objects
// whose boxes overlap that stretch of the ray are tested.
type objectRTree struct {
	tree      *rtreego.Rtree
	world     Rect
	unbounded []bvhLeaf
}

func toRTreeRect(r Rect) (*rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{r.Left() - rtreeBoundEps, r.Top() - rtreeBoundEps},
		[]float64{r.Width() + 2*rtreeBoundEps, r.Height() + 2*rtreeBoundEps},
	)
}

func newObjectRTree(objects []Object) (*objectRTree, error) {
	t := &objectRTree{
		tree:  rtreego.NewTree(2, RTreeMinChildren, RTreeMaxChildren),
		world: NullRect(),
	}
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
		bbox, err := toRTreeRect(b)
		if err != nil {
			return nil, err
		}
		t.tree.Insert(&rtreeEntry{bbox: bbox, leaf: l})
		t.world = t.world.UnionWith(b)
	}
	DebugLog("R-tree: %d bounded objects, %d unbounded", t.tree.Size(), len(t.unbounded))
	return t, nil
}

// query returns the box covering the part of the ray inside the world box.
func (t *objectRTree) query(r *Ray) (*rtreego.Rect, bool) {
	if t.tree.Size() == 0 || t.world.IsNull() {
		return nil, false
	}
	ok, tmin, tmax := raySlab(r.origin, t.world, newRayRecips(r.direction))
	if !ok || math.IsInf(tmax, 1) {
		return nil, false
	}
	span := RectFromPoints(r.origin.Add(r.direction.Mul(tmin)), r.origin.Add(r.direction.Mul(tmax)))
	bbox, err := toRTreeRect(span)
	if err != nil {
		return nil, false
	}
	return bbox, true
}

// nearestHit tests candidates in object order so that jittered objects draw
// from the photon stream deterministically.
func (t *objectRTree) nearestHit(r *Ray) (objectHit, bool) {
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
	q, ok := t.query(r)
	if !ok {
		return best, found
	}
	cands := t.tree.SearchIntersect(q)
	sort.Slice(cands, func(i, j int) bool {
		return cands[i].(*rtreeEntry).leaf.idx < cands[j].(*rtreeEntry).leaf.idx
	})
	for _, c := range cands {
		consider(&c.(*rtreeEntry).leaf)
	}
	return best, found
}

package photons2d

import (
	"math"
	"strings"
	"testing"
)

func randomLines(n int, size float64, rng *PRNG) []Object {
	objs := make([]Object, 0, n)
	for i := 0; i < n; i++ {
		x := rng.UniformRange(size, 0)
		y := rng.UniformRange(size, 0)
		dx := rng.UniformRange(60, -60)
		dy := rng.UniformRange(60, -60)
		objs = append(objs, constLine(x, y, dx, dy))
	}
	return objs
}

func TestBVHMatchesLinearScan(t *testing.T) {
	rng := NewPRNG(123)
	objs := randomLines(200, 500, rng)
	// exact duplicate: ties must resolve to the lower index
	objs = append(objs, objs[17])

	tree, err := newObjectBVH(objs)
	if err != nil {
		t.Fatal(err)
	}
	if tree.root == nil || tree.root.depth() < 2 || len(tree.unbounded) != 0 {
		t.Fatalf("unexpected tree shape: depth=%d unbounded=%d", tree.root.depth(), len(tree.unbounded))
	}
	list := objectList(objs)

	hits := 0
	for i := 0; i < 5000; i++ {
		a := rng.UniformRange(2*math.Pi, 0)
		r := testRay(Point{rng.UniformRange(500, 0), rng.UniformRange(500, 0)}, Vector{math.Cos(a), math.Sin(a)}, MaxBounces)
		want, wok := list.nearestHit(r)
		got, gok := tree.nearestHit(r)
		if wok != gok {
			t.Fatalf("ray %d (%s): linear found=%v, bvh found=%v", i, r, wok, gok)
		}
		if !wok {
			continue
		}
		hits++
		if got.idx != want.idx || got.dist != want.dist {
			t.Fatalf("ray %d (%s): linear idx=%d dist=%v, bvh idx=%d dist=%v",
				i, r, want.idx, want.dist, got.idx, got.dist)
		}
	}
	if hits == 0 {
		t.Fatal("test rays never hit anything")
	}
}

func TestBVHTieBreaksByIndex(t *testing.T) {
	objs := make([]Object, 0, 12)
	for i := 0; i < 10; i++ {
		objs = append(objs, constLine(float64(200+i*10), 0, 0, 100))
	}
	objs = append(objs, constLine(100, 0, 0, 100), constLine(100, 0, 0, 100))
	tree, err := newObjectBVH(objs)
	if err != nil {
		t.Fatal(err)
	}
	r := testRay(Point{0, 50}, Vector{1, 0}, MaxBounces)
	oh, ok := tree.nearestHit(r)
	if !ok || oh.idx != 10 {
		t.Fatalf("want index 10, got %d (ok=%v)", oh.idx, ok)
	}
}

func TestBVHKeepsUnboundedObjects(t *testing.T) {
	objs := []Object{
		constLine(10, 10, 5, 5),
		NewLine(Blackbody(5000), Constant(0), Constant(1), Constant(1), DefaultHQZLegacy()),
		constLine(40, 40, 5, 5),
	}
	tree, err := newObjectBVH(objs)
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.unbounded) != 1 || tree.unbounded[0].idx != 1 {
		t.Fatalf("unbounded: %+v", tree.unbounded)
	}
	if _, err := newObjectBVH([]Object{&Curve{}}); err == nil {
		t.Fatal("curves have no bounds")
	}
}

func TestBVHEmpty(t *testing.T) {
	tree, err := newObjectBVH(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tree.nearestHit(testRay(Point{}, Vector{1, 0}, 1)); ok {
		t.Fatal("empty tree hit")
	}
}

func TestSceneHitFinderSelection(t *testing.T) {
	defer func(a, n bool) { AlwaysBVH, NeverBVH = a, n }(AlwaysBVH, NeverBVH)
	s := NewScene(100, 100, RectFromPoints(Point{}, Point{100, 100}))
	for _, o := range randomLines(AABBBVHFromNObjects-1, 100, NewPRNG(1)) {
		if err := s.AddObject(o); err != nil {
			t.Fatal(err)
		}
	}
	AlwaysBVH, NeverBVH = false, false
	if f, _ := s.hitFinder(); !isObjectList(f) {
		t.Fatal("few objects should use a linear scan")
	}
	AlwaysBVH = true
	if f, _ := s.hitFinder(); isObjectList(f) {
		t.Fatal("AlwaysBVH should force the tree")
	}
	AlwaysBVH = false
	_ = s.AddObject(constLine(1, 1, 2, 2))
	if f, _ := s.hitFinder(); isObjectList(f) {
		t.Fatalf("%d objects should use the tree", len(s.Objects))
	}
	NeverBVH = true
	if f, _ := s.hitFinder(); !isObjectList(f) {
		t.Fatal("NeverBVH should force the linear scan")
	}
}

func isObjectList(f hitFinder) bool {
	_, ok := f.(objectList)
	return ok
}

func TestRTreeMatchesLinearScan(t *testing.T) {
	rng := NewPRNG(321)
	objs := randomLines(150, 400, rng)
	objs = append(objs, objs[3], constLine(-500, 1000, 0, 50), constLine(10, 10, 100, 0))
	tree, err := newObjectRTree(objs)
	if err != nil {
		t.Fatal(err)
	}
	list := objectList(objs)
	hits := 0
	for i := 0; i < 5000; i++ {
		a := rng.UniformRange(2*math.Pi, 0)
		r := testRay(Point{rng.UniformRange(600, -200), rng.UniformRange(600, -200)}, Vector{math.Cos(a), math.Sin(a)}, MaxBounces)
		want, wok := list.nearestHit(r)
		got, gok := tree.nearestHit(r)
		if wok != gok || (wok && (got.idx != want.idx || got.dist != want.dist)) {
			t.Fatalf("ray %d (%s): linear %v idx=%d, rtree %v idx=%d", i, r, wok, want.idx, gok, got.idx)
		}
		if wok {
			hits++
		}
	}
	if hits == 0 {
		t.Fatal("test rays never hit anything")
	}
	// a ray starting on a zero-height box
	r := testRay(Point{50, 10}, Vector{0, 1}, MaxBounces)
	want, _ := list.nearestHit(r)
	got, _ := tree.nearestHit(r)
	if got.idx != want.idx {
		t.Fatalf("flat box: linear idx=%d rtree idx=%d", want.idx, got.idx)
	}
}

func TestRTreeEmptyAndUnbounded(t *testing.T) {
	tree, err := newObjectRTree(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tree.nearestHit(testRay(Point{}, Vector{1, 0}, 1)); ok {
		t.Fatal("empty tree hit")
	}
	tree, err = newObjectRTree([]Object{
		NewLine(Range(60, 50), Constant(0), Constant(0), Constant(100), HQZLegacy{}),
		NewLine(Constant(1), Constant(0), Constant(0), Blackbody(3000), HQZLegacy{}),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.unbounded) != 1 {
		t.Fatalf("unbounded: %d", len(tree.unbounded))
	}
	oh, ok := tree.nearestHit(testRay(Point{0, 50}, Vector{1, 0}, 1))
	if !ok || oh.idx != 0 {
		t.Fatalf("jittered line: ok=%v idx=%d", ok, oh.idx)
	}
}

func TestSceneIndexSelection(t *testing.T) {
	s := testScene(t, 1)
	for index, check := range map[HitIndex]func(hitFinder) bool{
		IndexLinear: isObjectList,
		IndexBVH:    func(f hitFinder) bool { _, ok := f.(*objectBVH); return ok },
		IndexRTree:  func(f hitFinder) bool { _, ok := f.(*objectRTree); return ok },
	} {
		s.Index = index
		f, err := s.hitFinder()
		if err != nil || !check(f) {
			t.Fatalf("%s: %T %v", index, f, err)
		}
	}
	s.Index = "octree"
	if err := s.Validate(); err == nil {
		t.Fatal("unknown index must fail validation")
	}
	if _, err := s.hitFinder(); err == nil {
		t.Fatal("unknown index must fail")
	}
}

func TestRenderIndexesAgree(t *testing.T) {
	const rays = 2000
	var want *Image
	for _, index := range []HitIndex{IndexLinear, IndexBVH, IndexRTree} {
		s := testScene(t, 11)
		// constant geometry only: every index then draws the same photon streams
		s.Objects[2] = constLine(92, 5, -10, 60)
		s.Index = index
		img, err := Sequential{}.Render(s, rays)
		if err != nil {
			t.Fatalf("%s: %v", index, err)
		}
		if want == nil {
			want = img
			continue
		}
		sameRender(t, string(index), want, img)
	}
}

func TestDumpBVH(t *testing.T) {
	s := NewScene(500, 500, RectFromPoints(Point{}, Point{500, 500}))
	for _, o := range randomLines(40, 500, NewPRNG(8)) {
		if err := s.AddObject(o); err != nil {
			t.Fatal(err)
		}
	}
	var sb strings.Builder
	ok, err := DumpBVH(s, &sb)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	out := sb.String()
	if !strings.HasPrefix(out, "[BVH] root: nodes=") || !strings.Contains(out, "objs=40") {
		t.Fatalf("unexpected header:\n%s", out)
	}
	if strings.Count(out, "LEAF") == 0 || !strings.Contains(out, "\tLEAF") {
		t.Fatalf("no nested leaves:\n%s", out)
	}

	sb.Reset()
	ok, err = DumpBVH(NewScene(10, 10, RectFromPoints(Point{}, Point{10, 10})), &sb)
	if err != nil || ok || !strings.Contains(sb.String(), "<empty>") {
		t.Fatalf("empty scene: ok=%v err=%v %q", ok, err, sb.String())
	}
}

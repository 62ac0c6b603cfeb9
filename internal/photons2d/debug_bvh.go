package photons2d

import (
	"fmt"
	"io"
	"strings"
)

type bvhCounts struct {
	nodes  int
	leaves int
	objs   int
}

// DumpBVH writes the scene's BVH with one tab of indentation per level:
// subtree counts and the box of every node. Returns false when the scene has
// no bounded objects.
func DumpBVH(s *Scene, w io.Writer) (bool, error) {
	t, err := newObjectBVH(s.Objects)
	if err != nil {
		return false, err
	}
	if t.root == nil {
		_, err = fmt.Fprintf(w, "[BVH] <empty> unbounded=%d\n", len(t.unbounded))
		return false, err
	}
	memo := make(map[*AABBNode]bvhCounts, 64)
	c := bvhCount(t.root, memo)
	if _, err = fmt.Fprintf(w, "[BVH] root: nodes=%d leaves=%d objs=%d unbounded=%d depth=%d\n",
		c.nodes, c.leaves, c.objs, len(t.unbounded), t.root.depth()); err != nil {
		return false, err
	}
	return true, bvhPrint(w, t.root, 0, memo)
}

func bvhCount(n *AABBNode, memo map[*AABBNode]bvhCounts) bvhCounts {
	if n == nil {
		return bvhCounts{}
	}
	if c, ok := memo[n]; ok {
		return c
	}
	var c bvhCounts
	if n.leafObjs != nil {
		c = bvhCounts{nodes: 1, leaves: 1, objs: len(n.leafObjs)}
	} else {
		l, r := bvhCount(n.left, memo), bvhCount(n.right, memo)
		c = bvhCounts{nodes: 1 + l.nodes + r.nodes, leaves: l.leaves + r.leaves, objs: l.objs + r.objs}
	}
	memo[n] = c
	return c
}

func bvhPrint(w io.Writer, n *AABBNode, depth int, memo map[*AABBNode]bvhCounts) error {
	if n == nil {
		return nil
	}
	ind := strings.Repeat("\t", depth)
	b := n.bounds
	if n.leafObjs != nil {
		idx := make([]string, len(n.leafObjs))
		for i, l := range n.leafObjs {
			idx[i] = fmt.Sprint(l.idx)
		}
		_, err := fmt.Fprintf(w, "%sLEAF  objs=[%s] | min=(%.5g,%.5g) max=(%.5g,%.5g)\n",
			ind, strings.Join(idx, ","), b.Left(), b.Top(), b.Right(), b.Bottom())
		return err
	}
	c := memo[n]
	if _, err := fmt.Fprintf(w, "%sNODE  nodes=%d leaves=%d objs=%d | min=(%.5g,%.5g) max=(%.5g,%.5g)\n",
		ind, c.nodes, c.leaves, c.objs, b.Left(), b.Top(), b.Right(), b.Bottom()); err != nil {
		return err
	}
	if err := bvhPrint(w, n.left, depth+1, memo); err != nil {
		return err
	}
	return bvhPrint(w, n.right, depth+1, memo)
}

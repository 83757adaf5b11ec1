package kdtree

import (
	"fmt"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/vecscan/core"
	"github.com/hupe1980/vecscan/distance"
	"github.com/hupe1980/vecscan/internal/visited"
	"github.com/hupe1980/vecscan/relation"
)

const none int32 = -1

type node struct {
	axis   int
	split  float64
	bucket []core.ID
	left   int32
	right  int32
	parent int32
}

// Tree is a median-split spatial index over a dense vector relation.
type Tree struct {
	rel   relation.Relation[distance.Vector]
	dist  distance.Spatial
	dim   int
	nodes []node
	root  int32
	depth int
	size  int

	// bounds is the bounding box of the relation; it seeds the pruning box.
	bounds distance.Box

	scratch sync.Pool // *queryState
}

// New builds a tree over rel. dist must implement distance.Spatial, otherwise
// New fails with core.ErrUnsupported.
func New(rel relation.Relation[distance.Vector], dist distance.Function[distance.Vector], optFns ...func(o *Options)) (*Tree, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	spatial, ok := dist.(distance.Spatial)
	if !ok {
		return nil, fmt.Errorf("kdtree: distance %q has no box bound: %w", dist.Name(), core.ErrUnsupported)
	}

	n := rel.Len()
	dim := rel.Dimensionality()
	if n > 0 && dim <= 0 {
		return nil, core.NewArgumentError("dimensionality", dim, "must be positive")
	}

	t := &Tree{
		rel:  rel,
		dist: spatial,
		dim:  dim,
		root: none,
		size: n,
	}

	start := time.Now()
	if n > 0 {
		b := &builder{
			t:    t,
			ids:  append([]core.ID(nil), rel.IDs()...),
			vals: make([]float64, n),
		}
		t.nodes = make([]node, 0, 2*n-1)
		t.root = b.build(0, n, 0, none)
	}

	if err := t.checkCoverage(); err != nil {
		return nil, err
	}
	t.bounds = relation.MinMax(rel)

	t.scratch.New = func() any {
		return &queryState{
			seen: visited.New(len(t.nodes)),
			box: distance.Box{
				Min: append(distance.Vector(nil), t.bounds.Min...),
				Max: append(distance.Vector(nil), t.bounds.Max...),
			},
		}
	}

	opts.Logger.Debug("kdtree built",
		"size", n,
		"dimension", dim,
		"nodes", len(t.nodes),
		"depth", t.depth,
		"distance", dist.Name(),
		"duration", time.Since(start),
	)
	return t, nil
}

// Len returns the number of indexed elements.
func (t *Tree) Len() int { return t.size }

// Depth returns the number of levels of the tree. An empty tree has depth 0.
func (t *Tree) Depth() int { return t.depth }

// Nodes returns the number of arena nodes.
func (t *Tree) Nodes() int { return len(t.nodes) }

// Bounds returns the bounding box of the indexed vectors.
func (t *Tree) Bounds() distance.Box { return t.bounds }

// Dimensionality returns the dimensionality of the indexed vectors.
func (t *Tree) Dimensionality() int { return t.dim }

// Distance returns the distance function used by the tree.
func (t *Tree) Distance() distance.Spatial { return t.dist }

// Relation returns the indexed relation.
func (t *Tree) Relation() relation.Relation[distance.Vector] { return t.rel }

// NodeInfo describes one node during Walk.
type NodeInfo struct {
	Depth int
	Axis  int
	Split float64
	// IDs are the elements equal to Split on Axis. The slice must not be modified.
	IDs      []core.ID
	HasLeft  bool
	HasRight bool
}

// Walk visits every node in pre-order until fn returns false.
func (t *Tree) Walk(fn func(NodeInfo) bool) {
	if t.root == none {
		return
	}
	type frame struct {
		idx   int32
		depth int
	}
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[f.idx]
		if !fn(NodeInfo{
			Depth:    f.depth,
			Axis:     n.axis,
			Split:    n.split,
			IDs:      n.bucket,
			HasLeft:  n.left != none,
			HasRight: n.right != none,
		}) {
			return
		}
		if n.right != none {
			stack = append(stack, frame{n.right, f.depth + 1})
		}
		if n.left != none {
			stack = append(stack, frame{n.left, f.depth + 1})
		}
	}
}

// Covered returns the set of identifiers stored in the tree.
func (t *Tree) Covered() *roaring.Bitmap {
	bm := roaring.New()
	t.Walk(func(n NodeInfo) bool {
		for _, id := range n.IDs {
			bm.Add(uint32(id))
		}
		return true
	})
	return bm
}

// checkCoverage verifies that every relation id is stored exactly once.
func (t *Tree) checkCoverage() error {
	covered := t.Covered()
	stored := 0
	t.Walk(func(n NodeInfo) bool {
		stored += len(n.IDs)
		return true
	})
	if stored != t.size || covered.GetCardinality() != uint64(t.size) {
		return fmt.Errorf("kdtree: index stores %d ids (%d distinct), relation has %d", stored, covered.GetCardinality(), t.size)
	}
	return nil
}

type builder struct {
	t    *Tree
	ids  []core.ID
	vals []float64
}

// build creates the subtree over ids[lo:hi] and returns its arena index.
func (b *builder) build(lo, hi, depth int, parent int32) int32 {
	if lo >= hi {
		return none
	}
	if depth+1 > b.t.depth {
		b.t.depth = depth + 1
	}

	axis := depth % b.t.dim
	ids := b.ids[lo:hi]

	vals := b.vals[:len(ids)]
	for i, id := range ids {
		v, _ := b.t.rel.Get(id)
		vals[i] = v[axis]
	}
	split := relation.Median(vals)

	lt, gt := b.partition(ids, axis, split)

	idx := int32(len(b.t.nodes))
	b.t.nodes = append(b.t.nodes, node{
		axis:   axis,
		split:  split,
		bucket: append([]core.ID(nil), ids[lt:gt]...),
		left:   none,
		right:  none,
		parent: parent,
	})

	left := b.build(lo, lo+lt, depth+1, idx)
	right := b.build(lo+gt, hi, depth+1, idx)

	n := &b.t.nodes[idx]
	n.left = left
	n.right = right
	return idx
}

// partition reorders ids into less, equal and greater than split on axis and
// returns the bounds of the equal run.
func (b *builder) partition(ids []core.ID, axis int, split float64) (int, int) {
	lt, i, gt := 0, 0, len(ids)
	for i < gt {
		v, _ := b.t.rel.Get(ids[i])
		switch x := v[axis]; {
		case x < split:
			ids[lt], ids[i] = ids[i], ids[lt]
			lt++
			i++
		case x > split:
			gt--
			ids[i], ids[gt] = ids[gt], ids[i]
		default:
			i++
		}
	}
	return lt, gt
}

package kdtree

import (
	"fmt"

	"github.com/hupe1980/vecscan/core"
	"github.com/hupe1980/vecscan/distance"
	"github.com/hupe1980/vecscan/internal/visited"
	"github.com/hupe1980/vecscan/knn"
)

// queryState is the per-query scratch space. It is pooled on the tree.
type queryState struct {
	seen *visited.Set
	box  distance.Box
}

// sink receives candidates during a traversal.
type sink interface {
	// bound is the current pruning distance.
	bound() float64
	offer(id core.ID, d float64)
}

type knnSink struct{ c *knn.Collector }

func (s knnSink) bound() float64 { return s.c.Worst() }

func (s knnSink) offer(id core.ID, d float64) {
	if d <= s.c.Worst() {
		s.c.Insert(id, d)
	}
}

type rangeSink struct {
	eps float64
	out knn.List
}

func (s *rangeSink) bound() float64 { return s.eps }

func (s *rangeSink) offer(id core.ID, d float64) {
	if d <= s.eps {
		s.out = append(s.out, knn.Neighbor{ID: id, Distance: d})
	}
}

// KNN returns the k nearest elements to q. The result equals a linear scan
// with the same distance function.
func (t *Tree) KNN(q distance.Vector, k int) (knn.List, error) {
	c, err := knn.NewCollector(k)
	if err != nil {
		return nil, err
	}
	if t.root == none {
		return knn.List{}, nil
	}
	if err := knn.CheckQuery(t.rel, q); err != nil {
		return nil, err
	}
	if err := t.search(q, knnSink{c}); err != nil {
		return nil, err
	}
	return c.List(), nil
}

// KNNByID returns the k nearest elements to the element stored under id.
// The element itself is part of the result.
func (t *Tree) KNNByID(id core.ID, k int) (knn.List, error) {
	q, err := knn.Lookup(t.rel, id)
	if err != nil {
		return nil, err
	}
	return t.KNN(q, k)
}

// Range returns every element within distance eps of q, sorted ascending.
func (t *Tree) Range(q distance.Vector, eps float64) (knn.List, error) {
	if err := knn.CheckEpsilon(eps); err != nil {
		return nil, err
	}
	if t.root == none {
		return knn.List{}, nil
	}
	if err := knn.CheckQuery(t.rel, q); err != nil {
		return nil, err
	}

	s := &rangeSink{eps: eps, out: knn.List{}}
	if err := t.search(q, s); err != nil {
		return nil, err
	}
	s.out.Sort()
	return s.out, nil
}

// RangeByID is Range around a stored element.
func (t *Tree) RangeByID(id core.ID, eps float64) (knn.List, error) {
	q, err := knn.Lookup(t.rel, id)
	if err != nil {
		return nil, err
	}
	return t.Range(q, eps)
}

// search runs the backtracking traversal for q.
func (t *Tree) search(q distance.Vector, s sink) error {
	st := t.scratch.Get().(*queryState)
	defer func() {
		st.seen.Reset()
		t.scratch.Put(st)
	}()

	w := walker{t: t, q: q, s: s, st: st}

	cur := t.entry(q)
	w.visit(cur)
	for w.err == nil {
		parent := t.nodes[cur].parent
		if parent == none {
			break
		}
		if !st.seen.Has(int(parent)) {
			w.visit(parent)
		}
		cur = parent
	}
	return w.err
}

// entry descends from the root along the children matching q and returns the
// deepest node reached.
func (t *Tree) entry(q distance.Vector) int32 {
	cur := t.root
	for {
		n := &t.nodes[cur]
		next := n.right
		if q[n.axis] < n.split {
			next = n.left
		}
		if next == none {
			return cur
		}
		cur = next
	}
}

type walker struct {
	t   *Tree
	q   distance.Vector
	s   sink
	st  *queryState
	err error
}

// visit evaluates the bucket of node idx and then explores its unvisited
// children, nearer side first, while their half-space can still improve the
// result.
func (w *walker) visit(idx int32) {
	if w.err != nil || !w.st.seen.Mark(int(idx)) {
		return
	}
	n := &w.t.nodes[idx]

	for _, id := range n.bucket {
		v, _ := w.t.rel.Get(id)
		d, err := w.t.dist.Distance(w.q, v)
		if err != nil {
			w.err = fmt.Errorf("kdtree: distance to %d: %w", id, err)
			return
		}
		w.s.offer(id, d)
	}

	near, far := n.left, n.right
	if w.q[n.axis] >= n.split {
		near, far = far, near
	}
	for _, child := range [2]int32{near, far} {
		if child == none || w.st.seen.Has(int(child)) {
			continue
		}
		bound, err := w.halfSpaceDist(n, child == n.left)
		if err != nil {
			w.err = fmt.Errorf("kdtree: box bound: %w", err)
			return
		}
		if bound <= w.s.bound() {
			w.visit(child)
		}
		if w.err != nil {
			return
		}
	}
}

// halfSpaceDist bounds the distance from q to the part of the bounding box on
// one side of n's split.
func (w *walker) halfSpaceDist(n *node, left bool) (float64, error) {
	box, bounds := w.st.box, w.t.bounds
	if left {
		box.Max[n.axis] = n.split
		defer func() { box.Max[n.axis] = bounds.Max[n.axis] }()
	} else {
		box.Min[n.axis] = n.split
		defer func() { box.Min[n.axis] = bounds.Min[n.axis] }()
	}
	return w.t.dist.MinDist(w.q, box)
}

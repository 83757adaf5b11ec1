package knn

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vecscan/core"
	"github.com/hupe1980/vecscan/distance"
	"github.com/hupe1980/vecscan/relation"
)

// LinearScan answers k-NN and range queries by evaluating the distance to
// every element of the relation. It is safe for concurrent use as long as the
// relation is not modified.
type LinearScan[V any] struct {
	rel  relation.Relation[V]
	dist distance.Function[V]
	opts Options

	// Set when dist is a distance.Reducer over dense vectors.
	reducer distance.Reducer
	score   func(a, b V) (float64, error)
}

// New creates a linear scan over rel using dist.
func New[V any](rel relation.Relation[V], dist distance.Function[V], optFns ...func(o *Options)) *LinearScan[V] {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MinChunk < 1 {
		opts.MinChunk = 1
	}

	ls := &LinearScan[V]{
		rel:   rel,
		dist:  dist,
		opts:  opts,
		score: dist.Distance,
	}

	var zero V
	if r, ok := any(dist).(distance.Reducer); ok {
		if _, dense := any(zero).(distance.Vector); dense {
			ls.reducer = r
			ls.score = func(a, b V) (float64, error) {
				return r.ReducedDistance(any(a).(distance.Vector), any(b).(distance.Vector))
			}
		}
	}
	return ls
}

// Len returns the size of the scanned relation.
func (ls *LinearScan[V]) Len() int { return ls.rel.Len() }

// Distance returns the distance function.
func (ls *LinearScan[V]) Distance() distance.Function[V] { return ls.dist }

// Relation returns the scanned relation.
func (ls *LinearScan[V]) Relation() relation.Relation[V] { return ls.rel }

// KNN returns the k nearest elements to q.
func (ls *LinearScan[V]) KNN(q V, k int) (List, error) {
	c, err := NewCollector(k)
	if err != nil {
		return nil, err
	}
	if ls.rel.Len() == 0 {
		return List{}, nil
	}
	if err := CheckQuery(ls.rel, q); err != nil {
		return nil, err
	}
	if err := ls.scan(ls.rel.IDs(), []V{q}, []*Collector{c}); err != nil {
		return nil, err
	}
	return ls.finish(c), nil
}

// KNNByID returns the k nearest elements to the element stored under id.
// The element itself is part of the result.
func (ls *LinearScan[V]) KNNByID(id core.ID, k int) (List, error) {
	q, err := Lookup(ls.rel, id)
	if err != nil {
		return nil, err
	}
	return ls.KNN(q, k)
}

// BulkKNN answers len(qs) k-NN queries with a single pass over the relation.
// Result i belongs to qs[i].
func (ls *LinearScan[V]) BulkKNN(qs []V, k int) ([]List, error) {
	if k <= 0 {
		return nil, core.NewArgumentError("k", k, "must be positive")
	}
	out := make([]List, len(qs))
	if len(qs) == 0 {
		return out, nil
	}
	if ls.rel.Len() == 0 {
		for i := range out {
			out[i] = List{}
		}
		return out, nil
	}
	for i, q := range qs {
		if err := CheckQuery(ls.rel, q); err != nil {
			return nil, fmt.Errorf("knn: query %d: %w", i, err)
		}
	}

	collectors, err := newCollectors(len(qs), k)
	if err != nil {
		return nil, err
	}

	ids := ls.rel.IDs()
	workers := ls.workers(len(ids))
	if workers < 2 {
		if err := ls.scan(ids, qs, collectors); err != nil {
			return nil, err
		}
	} else {
		if err := ls.parallelScan(ids, qs, collectors, k, workers); err != nil {
			return nil, err
		}
	}

	for i, c := range collectors {
		out[i] = ls.finish(c)
	}
	return out, nil
}

// BulkKNNByID is BulkKNN for stored elements.
func (ls *LinearScan[V]) BulkKNNByID(ids []core.ID, k int) ([]List, error) {
	qs := make([]V, len(ids))
	for i, id := range ids {
		q, err := Lookup(ls.rel, id)
		if err != nil {
			return nil, err
		}
		qs[i] = q
	}
	return ls.BulkKNN(qs, k)
}

// Range returns every element within distance eps of q, sorted ascending.
func (ls *LinearScan[V]) Range(q V, eps float64) (List, error) {
	if err := CheckEpsilon(eps); err != nil {
		return nil, err
	}
	if ls.rel.Len() == 0 {
		return List{}, nil
	}
	if err := CheckQuery(ls.rel, q); err != nil {
		return nil, err
	}

	out := List{}
	for _, id := range ls.rel.IDs() {
		v, _ := ls.rel.Get(id)
		d, err := ls.score(q, v)
		if err != nil {
			return nil, fmt.Errorf("knn: distance to %d: %w", id, err)
		}
		// eps is in real units.
		if ls.reducer != nil {
			d = ls.reducer.FromReduced(d)
		}
		if d <= eps {
			out = append(out, Neighbor{ID: id, Distance: d})
		}
	}
	sortList(out)
	return out, nil
}

// RangeByID is Range around a stored element.
func (ls *LinearScan[V]) RangeByID(id core.ID, eps float64) (List, error) {
	q, err := Lookup(ls.rel, id)
	if err != nil {
		return nil, err
	}
	return ls.Range(q, eps)
}

// scan offers every element of ids to each collector.
func (ls *LinearScan[V]) scan(ids []core.ID, qs []V, collectors []*Collector) error {
	for _, id := range ids {
		v, _ := ls.rel.Get(id)
		for i, q := range qs {
			d, err := ls.score(q, v)
			if err != nil {
				return fmt.Errorf("knn: distance to %d: %w", id, err)
			}
			c := collectors[i]
			if c.Full() && d > c.Worst() {
				continue
			}
			c.Insert(id, d)
		}
	}
	return nil
}

// parallelScan splits ids into disjoint ranges. Each worker fills private
// collectors which are merged into collectors once all workers finished.
func (ls *LinearScan[V]) parallelScan(ids []core.ID, qs []V, collectors []*Collector, k, workers int) error {
	chunk := (len(ids) + workers - 1) / workers
	partial := make([][]*Collector, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(ids))
		if lo >= hi {
			break
		}
		local, err := newCollectors(len(qs), k)
		if err != nil {
			return err
		}
		partial[w] = local
		g.Go(func() error {
			return ls.scan(ids[lo:hi], qs, local)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, local := range partial {
		for i, c := range local {
			collectors[i].Merge(c)
		}
	}
	return nil
}

func (ls *LinearScan[V]) workers(n int) int {
	w := ls.opts.Parallelism
	if limit := n / ls.opts.MinChunk; w > limit {
		w = limit
	}
	return w
}

func (ls *LinearScan[V]) finish(c *Collector) List {
	if ls.reducer != nil {
		c.Map(ls.reducer.FromReduced)
	}
	return c.List()
}

func newCollectors(m, k int) ([]*Collector, error) {
	out := make([]*Collector, m)
	for i := range out {
		c, err := NewCollector(k)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// Lookup returns the object stored under id or an argument error.
func Lookup[V any](rel relation.Relation[V], id core.ID) (V, error) {
	v, ok := rel.Get(id)
	if !ok {
		return v, core.NewArgumentError("id", id, "not in relation")
	}
	return v, nil
}

// CheckEpsilon validates a range query radius. +Inf is accepted.
func CheckEpsilon(eps float64) error {
	if math.IsNaN(eps) || eps < 0 {
		return core.NewArgumentError("eps", eps, "must be a non-negative number")
	}
	return nil
}

// CheckQuery verifies that a vector query is set and matches the relation's
// dimensionality.
func CheckQuery[V any](rel relation.Relation[V], q V) error {
	if x, ok := any(q).(*distance.SparseVector); ok && x == nil {
		return core.NewArgumentError("query", nil, "nil sparse vector")
	}
	want := rel.Dimensionality()
	if want == 0 {
		return nil
	}
	var got int
	switch x := any(q).(type) {
	case distance.Vector:
		got = len(x)
	case interface{ Dimensionality() int }:
		got = x.Dimensionality()
	default:
		return nil
	}
	if got != want {
		return &core.DimensionMismatchError{Expected: want, Actual: got}
	}
	return nil
}

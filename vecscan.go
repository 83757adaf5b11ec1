package vecscan

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vecscan/blobstore"
	"github.com/hupe1980/vecscan/core"
	"github.com/hupe1980/vecscan/distance"
	"github.com/hupe1980/vecscan/kdtree"
	"github.com/hupe1980/vecscan/knn"
	"github.com/hupe1980/vecscan/optics"
	"github.com/hupe1980/vecscan/precomputed"
	"github.com/hupe1980/vecscan/relation"
)

type (
	// Neighbor is one query result.
	Neighbor = knn.Neighbor

	// List is a result list sorted by ascending distance.
	List = knn.List

	// ClusterOrder is the result of OPTICS.
	ClusterOrder = optics.ClusterOrder
)

// searcher is the query surface shared by both engines.
type searcher[V any] interface {
	KNN(q V, k int) (knn.List, error)
	KNNByID(id core.ID, k int) (knn.List, error)
	Range(q V, eps float64) (knn.List, error)
	RangeByID(id core.ID, eps float64) (knn.List, error)
}

// Explorer answers k-NN, range and OPTICS queries over one relation with one
// distance function. It is safe for concurrent use as long as the relation is
// not modified.
type Explorer[V any] struct {
	rel     relation.Relation[V]
	dist    distance.Function[V]
	engine  Engine
	search  searcher[V]
	linear  *knn.LinearScan[V]
	tree    *kdtree.Tree
	opts    options
	metrics MetricsCollector
	logger  *Logger
}

// New creates an Explorer over rel. The engine is chosen according to
// WithEngine; EngineTree requires dense vectors and a distance with a box
// bound and fails with ErrUnsupported otherwise.
func New[V any](rel relation.Relation[V], dist distance.Function[V], optFns ...Option) (*Explorer[V], error) {
	start := time.Now()
	opts := applyOptions(optFns)

	e := &Explorer[V]{
		rel:     rel,
		dist:    dist,
		opts:    opts,
		metrics: opts.metricsCollector,
		logger:  opts.logger.WithDimension(rel.Dimensionality()),
	}

	engine, err := e.resolveEngine(opts.engine)
	if err == nil {
		err = e.build(engine)
	}

	ctx := context.Background()
	e.metrics.RecordBuild(engine, rel.Len(), time.Since(start), err)
	e.logger.LogBuild(ctx, engine, rel.Len(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// LoadPrecomputed loads a distance file from store and returns an Explorer
// over the identifiers it covers.
func LoadPrecomputed(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Explorer[core.ID], error) {
	cache, err := precomputed.Load(ctx, store, name)
	if err != nil {
		return nil, err
	}
	return New[core.ID](cache.Relation(), cache, optFns...)
}

func (e *Explorer[V]) resolveEngine(engine Engine) (Engine, error) {
	switch engine {
	case EngineLinear, EngineTree:
		return engine, nil
	case EngineAuto:
		vrel, dense := any(e.rel).(relation.Relation[distance.Vector])
		_, spatial := any(e.dist).(distance.Spatial)
		if dense && spatial && (vrel.Len() == 0 || vrel.Dimensionality() > 0) {
			return EngineTree, nil
		}
		return EngineLinear, nil
	default:
		return engine, fmt.Errorf("vecscan: %s: %w", engine, ErrInvalidEngine)
	}
}

func (e *Explorer[V]) build(engine Engine) error {
	e.engine = engine

	if engine == EngineLinear {
		e.linear = knn.New(e.rel, e.dist, knn.WithParallelism(e.opts.parallelism))
		e.search = e.linear
		return nil
	}

	vrel, ok := any(e.rel).(relation.Relation[distance.Vector])
	vdist, vok := any(e.dist).(distance.Function[distance.Vector])
	if !ok || !vok {
		return fmt.Errorf("vecscan: %s engine needs dense vectors: %w", engine, ErrUnsupported)
	}
	tree, err := kdtree.New(vrel, vdist, kdtree.WithLogger(e.logger.Logger))
	if err != nil {
		return err
	}
	e.tree = tree
	e.search = treeSearcher[V]{tree: tree}
	return nil
}

// Engine returns the engine in use.
func (e *Explorer[V]) Engine() Engine { return e.engine }

// Len returns the size of the relation.
func (e *Explorer[V]) Len() int { return e.rel.Len() }

// Relation returns the relation the Explorer was built on.
func (e *Explorer[V]) Relation() relation.Relation[V] { return e.rel }

// Distance returns the distance function.
func (e *Explorer[V]) Distance() distance.Function[V] { return e.dist }

// KNN returns the k nearest elements to q, sorted by ascending distance.
func (e *Explorer[V]) KNN(ctx context.Context, q V, k int) (List, error) {
	return e.knn(ctx, k, func() (List, error) { return e.search.KNN(q, k) })
}

// KNNByID returns the k nearest elements to the element stored under id.
// The element itself is part of the result.
func (e *Explorer[V]) KNNByID(ctx context.Context, id core.ID, k int) (List, error) {
	return e.knn(ctx, k, func() (List, error) { return e.search.KNNByID(id, k) })
}

func (e *Explorer[V]) knn(ctx context.Context, k int, fn func() (List, error)) (List, error) {
	start := time.Now()

	var res List
	err := ctx.Err()
	if err == nil {
		res, err = fn()
	}

	e.metrics.RecordSearch(k, time.Since(start), err)
	e.logger.LogSearch(ctx, k, len(res), err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// BulkKNN answers one k-NN query per element of qs. Result i belongs to qs[i]
// and equals KNN(ctx, qs[i], k).
func (e *Explorer[V]) BulkKNN(ctx context.Context, qs []V, k int) ([]List, error) {
	start := time.Now()

	var (
		res []List
		err = ctx.Err()
	)
	if err == nil {
		if e.linear != nil {
			res, err = e.linear.BulkKNN(qs, k)
		} else {
			res, err = e.bulkTree(ctx, qs, k)
		}
	}

	e.metrics.RecordBulkSearch(len(qs), k, time.Since(start), err)
	e.logger.LogBulkSearch(ctx, len(qs), k, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// bulkTree runs independent tree queries on a bounded worker pool.
func (e *Explorer[V]) bulkTree(ctx context.Context, qs []V, k int) ([]List, error) {
	if k <= 0 {
		return nil, core.NewArgumentError("k", k, "must be positive")
	}

	out := make([]List, len(qs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, e.opts.parallelism))
	for i, q := range qs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.search.KNN(q, k)
			if err != nil {
				return fmt.Errorf("vecscan: query %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Range returns every element within distance eps of q, sorted by ascending distance.
func (e *Explorer[V]) Range(ctx context.Context, q V, eps float64) (List, error) {
	return e.rangeQuery(ctx, eps, func() (List, error) { return e.search.Range(q, eps) })
}

// RangeByID is Range around the element stored under id.
func (e *Explorer[V]) RangeByID(ctx context.Context, id core.ID, eps float64) (List, error) {
	return e.rangeQuery(ctx, eps, func() (List, error) { return e.search.RangeByID(id, eps) })
}

func (e *Explorer[V]) rangeQuery(ctx context.Context, eps float64, fn func() (List, error)) (List, error) {
	start := time.Now()

	var res List
	err := ctx.Err()
	if err == nil {
		res, err = fn()
	}

	e.metrics.RecordRange(len(res), time.Since(start), err)
	e.logger.LogRange(ctx, eps, len(res), err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// OPTICS computes the cluster ordering of the relation for radius eps
// (math.Inf(1) for no cutoff) and density threshold minPts. Cancelling ctx
// aborts the run between two range queries.
func (e *Explorer[V]) OPTICS(ctx context.Context, eps float64, minPts int) (*ClusterOrder, error) {
	start := time.Now()

	var (
		order *ClusterOrder
		err   = ctx.Err()
	)
	if err == nil {
		engine := optics.New(ctxRangeQuery{ctx: ctx, query: e.search},
			optics.WithLogger(e.logger.Logger),
			optics.WithLogInterval(e.opts.logInterval),
			optics.WithProgress(e.opts.progress),
		)
		order, err = engine.Run(e.rel, eps, minPts)
	}

	size := 0
	if order != nil {
		size = order.Len()
	}
	e.metrics.RecordOPTICS(size, time.Since(start), err)
	e.logger.LogOPTICS(ctx, eps, minPts, size, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return order, nil
}

type ctxRangeQuery struct {
	ctx   context.Context
	query optics.RangeQuery
}

func (q ctxRangeQuery) RangeByID(id core.ID, eps float64) (knn.List, error) {
	if err := q.ctx.Err(); err != nil {
		return nil, err
	}
	return q.query.RangeByID(id, eps)
}

// treeSearcher adapts the vector-typed tree to the generic searcher. It is
// only constructed when V is distance.Vector.
type treeSearcher[V any] struct {
	tree *kdtree.Tree
}

func (t treeSearcher[V]) KNN(q V, k int) (knn.List, error) {
	return t.tree.KNN(any(q).(distance.Vector), k)
}

func (t treeSearcher[V]) KNNByID(id core.ID, k int) (knn.List, error) {
	return t.tree.KNNByID(id, k)
}

func (t treeSearcher[V]) Range(q V, eps float64) (knn.List, error) {
	return t.tree.Range(any(q).(distance.Vector), eps)
}

func (t treeSearcher[V]) RangeByID(id core.ID, eps float64) (knn.List, error) {
	return t.tree.RangeByID(id, eps)
}

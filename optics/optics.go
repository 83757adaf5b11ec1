package optics

import (
	"fmt"
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/time/rate"

	"github.com/hupe1980/vecscan/core"
	"github.com/hupe1980/vecscan/knn"
	"github.com/hupe1980/vecscan/queue"
)

// RangeQuery answers range queries around stored elements. Results must be
// sorted by ascending distance and include the query element itself.
// *knn.LinearScan and *kdtree.Tree satisfy it.
type RangeQuery interface {
	RangeByID(id core.ID, eps float64) (knn.List, error)
}

// Relation is the part of a relation the engine iterates.
type Relation interface {
	Len() int
	IDs() []core.ID
}

// Engine runs OPTICS on top of a RangeQuery. An Engine holds no run state and
// may be reused; concurrent runs each own their queue.
type Engine struct {
	query RangeQuery
	opts  Options
}

// New creates an engine backed by query.
func New(query RangeQuery, optFns ...func(o *Options)) *Engine {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{query: query, opts: opts}
}

// Run computes the cluster order of rel for radius eps (+Inf for no cutoff)
// and density threshold minPts.
func (e *Engine) Run(rel Relation, eps float64, minPts int) (*ClusterOrder, error) {
	if minPts <= 0 {
		return nil, core.NewArgumentError("minPts", minPts, "must be positive")
	}
	if err := knn.CheckEpsilon(eps); err != nil {
		return nil, err
	}

	r := &run{
		engine:    e,
		eps:       eps,
		minPts:    minPts,
		total:     rel.Len(),
		members:   roaring.New(),
		processed: roaring.New(),
		queue:     queue.NewUpdatable[core.ID](64),
		order:     NewClusterOrder(rel.Len()),
		logEvery:  rate.Sometimes{Interval: e.opts.LogInterval},
	}

	start := time.Now()
	ids := rel.IDs()
	for _, id := range ids {
		r.members.Add(uint32(id))
	}

	for _, id := range ids {
		if r.processed.Contains(uint32(id)) {
			continue
		}
		r.queue.Push(id, math.Inf(1), core.NoID)
		if err := r.drain(); err != nil {
			return nil, err
		}
		r.expansions++
	}

	e.opts.Logger.Debug("optics finished",
		"size", r.order.Len(),
		"eps", eps,
		"min_pts", minPts,
		"expansions", r.expansions,
		"core_points", r.corePoints,
		"duration", time.Since(start),
	)
	return r.order, nil
}

type run struct {
	engine *Engine
	eps    float64
	minPts int
	total  int

	members    *roaring.Bitmap
	processed  *roaring.Bitmap
	queue      *queue.Updatable[core.ID]
	order      *ClusterOrder
	logEvery   rate.Sometimes
	expansions int
	corePoints int
}

// drain expands the queue until it is empty.
func (r *run) drain() error {
	for {
		cur, ok := r.queue.Pop()
		if !ok {
			return nil
		}
		r.processed.Add(uint32(cur.ID))

		neighbors, err := r.engine.query.RangeByID(cur.ID, r.eps)
		if err != nil {
			return fmt.Errorf("optics: range query around %d: %w", cur.ID, err)
		}

		coreDist := math.Inf(1)
		if len(neighbors) >= r.minPts {
			coreDist = neighbors[r.minPts-1].Distance
			r.corePoints++
			for _, n := range neighbors {
				if r.processed.Contains(uint32(n.ID)) {
					continue
				}
				if !r.members.Contains(uint32(n.ID)) {
					return fmt.Errorf("optics: neighbor %d of %d is not part of the relation: %w", n.ID, cur.ID, core.ErrInvalidArgument)
				}
				r.queue.Push(n.ID, math.Max(coreDist, n.Distance), cur.ID)
			}
		}

		if err := r.order.Append(Entry{
			ID:           cur.ID,
			Predecessor:  cur.Payload,
			Reachability: cur.Key,
			CoreDistance: coreDist,
		}); err != nil {
			return err
		}
		r.report()
	}
}

func (r *run) report() {
	n := r.order.Len()
	if fn := r.engine.opts.Progress; fn != nil {
		fn(n, r.total)
	}
	r.logEvery.Do(func() {
		r.engine.opts.Logger.Debug("optics progress", "processed", n, "total", r.total)
	})
}

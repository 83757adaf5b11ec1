package knn

import (
	"math"

	"github.com/hupe1980/vecscan/core"
)

// Collector retains the k best (identifier, distance) pairs offered to it.
// It is a bounded max-heap: the root is the worst pair kept. Pairs with equal
// distance are ranked by identifier, so the kept set does not depend on the
// order in which candidates arrive.
//
// A Collector is owned by a single query and is not safe for concurrent use.
type Collector struct {
	k     int
	items []Neighbor
}

// NewCollector creates a collector of capacity k.
func NewCollector(k int) (*Collector, error) {
	if k <= 0 {
		return nil, core.NewArgumentError("k", k, "must be positive")
	}
	return &Collector{
		k:     k,
		items: make([]Neighbor, 0, min(k, 1024)),
	}, nil
}

// K returns the capacity.
func (c *Collector) K() int { return c.k }

// Len returns the number of pairs kept.
func (c *Collector) Len() int { return len(c.items) }

// Full reports whether k pairs are kept.
func (c *Collector) Full() bool { return len(c.items) >= c.k }

// Worst returns the largest kept distance, or +Inf while the collector is not
// full. It is the pruning bound of every query engine.
func (c *Collector) Worst() float64 {
	if len(c.items) < c.k {
		return math.Inf(1)
	}
	return c.items[0].Distance
}

// Insert offers a candidate and reports whether it was kept.
// When full, a candidate that does not rank before the current worst pair is
// ignored; otherwise the worst pair is evicted.
func (c *Collector) Insert(id core.ID, d float64) bool {
	n := Neighbor{ID: id, Distance: d}
	if len(c.items) < c.k {
		c.items = append(c.items, n)
		c.siftUp(len(c.items) - 1)
		return true
	}
	if compareNeighbors(n, c.items[0]) >= 0 {
		return false
	}
	c.items[0] = n
	c.siftDown(0)
	return true
}

// Merge offers every pair kept by other.
func (c *Collector) Merge(other *Collector) {
	for _, n := range other.items {
		c.Insert(n.ID, n.Distance)
	}
}

// Map replaces every kept distance d with fn(d). fn must be monotonically
// non-decreasing, which keeps the heap order intact.
func (c *Collector) Map(fn func(float64) float64) {
	for i := range c.items {
		c.items[i].Distance = fn(c.items[i].Distance)
	}
}

// List returns the kept pairs sorted ascending. The collector stays usable.
func (c *Collector) List() List {
	l := make(List, len(c.items))
	copy(l, c.items)
	sortList(l)
	return l
}

// Reset drops all kept pairs.
func (c *Collector) Reset() {
	c.items = c.items[:0]
}

// less reports whether items[i] ranks after items[j] (max-heap order).
func (c *Collector) less(i, j int) bool {
	return compareNeighbors(c.items[i], c.items[j]) > 0
}

func (c *Collector) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !c.less(i, parent) {
			break
		}
		c.items[i], c.items[parent] = c.items[parent], c.items[i]
		i = parent
	}
}

func (c *Collector) siftDown(i int) {
	n := len(c.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		child := left
		if right := left + 1; right < n && c.less(right, left) {
			child = right
		}
		if !c.less(child, i) {
			break
		}
		c.items[i], c.items[child] = c.items[child], c.items[i]
		i = child
	}
}

package precomputed

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/vecscan/core"
	"github.com/hupe1980/vecscan/distance"
	"github.com/hupe1980/vecscan/relation"
)

var _ distance.Function[core.ID] = (*Cache)(nil)

// Pair is one stored distance with A <= B.
type Pair struct {
	A, B     core.ID
	Distance float64
}

// Cache is a symmetric map of identifier pairs to distances.
// It is not safe for concurrent writes; once populated it may be read concurrently.
type Cache struct {
	pairs    map[uint64]float64
	min, max core.ID
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		pairs: make(map[uint64]float64),
		min:   core.NoID,
	}
}

func pairKey(a, b core.ID) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(b)
}

// Put stores the distance between a and b. A later Put of the same pair
// replaces the earlier one. Distances must be non-negative numbers and the
// distance of an identifier to itself must be zero.
func (c *Cache) Put(a, b core.ID, d float64) error {
	if !a.Valid() || !b.Valid() {
		return core.NewArgumentError("id", core.NoID, "reserved identifier")
	}
	if math.IsNaN(d) || d < 0 {
		return core.NewArgumentError("distance", d, "must be a non-negative number")
	}
	if a == b && d != 0 {
		return core.NewArgumentError("distance", d, fmt.Sprintf("distance of %d to itself must be 0", a))
	}

	c.pairs[pairKey(a, b)] = d
	c.min = min(c.min, a, b)
	if len(c.pairs) == 1 {
		c.max = max(a, b)
	} else {
		c.max = max(c.max, a, b)
	}
	return nil
}

// Get returns the distance between a and b. The distance of an identifier to
// itself is always known.
func (c *Cache) Get(a, b core.ID) (float64, bool) {
	if a == b {
		return 0, true
	}
	d, ok := c.pairs[pairKey(a, b)]
	return d, ok
}

// Contains reports whether the pair was stored explicitly.
func (c *Cache) Contains(a, b core.ID) bool {
	_, ok := c.pairs[pairKey(a, b)]
	return ok
}

// Len returns the number of stored pairs.
func (c *Cache) Len() int { return len(c.pairs) }

// Bounds returns the smallest and the largest identifier seen.
// ok is false for an empty cache.
func (c *Cache) Bounds() (lo, hi core.ID, ok bool) {
	if len(c.pairs) == 0 {
		return 0, 0, false
	}
	return c.min, c.max, true
}

// Validate checks that every pair of distinct identifiers in [lo, hi] is
// present. Pairs of an identifier with itself are implied.
func (c *Cache) Validate() error {
	lo, hi, ok := c.Bounds()
	if !ok {
		return nil
	}
	for i := lo; i < hi; i++ {
		for j := i + 1; j <= hi; j++ {
			if !c.Contains(i, j) {
				return core.NewDataFormatError(0, fmt.Sprintf("distance value for %d to %d is missing", i, j), nil)
			}
		}
	}
	return nil
}

// Distance implements distance.Function.
func (c *Cache) Distance(a, b core.ID) (float64, error) {
	d, ok := c.Get(a, b)
	if !ok {
		return 0, fmt.Errorf("precomputed: no distance for %d to %d: %w", a, b, core.ErrInvalidArgument)
	}
	return d, nil
}

// Name implements distance.Function.
func (c *Cache) Name() string { return "precomputed" }

// Relation returns the relation of identifiers covered by the cache.
func (c *Cache) Relation() *relation.IDRange {
	lo, hi, ok := c.Bounds()
	if !ok {
		return relation.NewIDRange(1, 0)
	}
	return relation.NewIDRange(lo, hi)
}

// Pairs returns all stored pairs ordered by (A, B).
func (c *Cache) Pairs() []Pair {
	out := make([]Pair, 0, len(c.pairs))
	for key, d := range c.pairs {
		out = append(out, Pair{A: core.ID(key >> 32), B: core.ID(key), Distance: d})
	}
	slices.SortFunc(out, func(x, y Pair) int {
		if r := cmp.Compare(x.A, y.A); r != 0 {
			return r
		}
		return cmp.Compare(x.B, y.B)
	})
	return out
}

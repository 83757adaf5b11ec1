package testutil

import (
	"cmp"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/vecscan/core"
	"github.com/hupe1980/vecscan/distance"
	"github.com/hupe1980/vecscan/relation"
)

// Neighbor is a reference result.
type Neighbor struct {
	ID       core.ID
	Distance float64
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformVectors generates random vectors with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformVectors(num, dim int) []distance.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	vectors := make([]distance.Vector, num)
	for i := range num {
		vec := data[i*dim : (i+1)*dim : (i+1)*dim]
		for j := range vec {
			vec[j] = r.rand.Float64()
		}
		vectors[i] = vec
	}
	return vectors
}

// GaussianVectors generates vectors from a standard normal distribution.
func (r *RNG) GaussianVectors(num, dim int) []distance.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()

	vectors := make([]distance.Vector, num)
	for i := range num {
		vec := make(distance.Vector, dim)
		for j := range vec {
			vec[j] = r.rand.NormFloat64()
		}
		vectors[i] = vec
	}
	return vectors
}

// ClusteredVectors generates vectors around clusters uniform centers in
// [0, 10)^dim with Gaussian noise of the given spread. Vector i belongs to
// cluster i % clusters.
func (r *RNG) ClusteredVectors(num, dim, clusters int, spread float64) []distance.Vector {
	centers := r.UniformVectors(clusters, dim)

	r.mu.Lock()
	defer r.mu.Unlock()

	vectors := make([]distance.Vector, num)
	for i := range num {
		center := centers[i%clusters]
		vec := make(distance.Vector, dim)
		for j := range vec {
			vec[j] = center[j]*10 + r.rand.NormFloat64()*spread
		}
		vectors[i] = vec
	}
	return vectors
}

// GridVectors generates vectors with integer coordinates in [0, side).
// Small grids produce many duplicate coordinates and exact distance ties.
func (r *RNG) GridVectors(num, dim, side int) []distance.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()

	vectors := make([]distance.Vector, num)
	for i := range num {
		vec := make(distance.Vector, dim)
		for j := range vec {
			vec[j] = float64(r.rand.Intn(side))
		}
		vectors[i] = vec
	}
	return vectors
}

// SparseVectors generates sparse vectors where each dimension is defined with
// probability density.
func (r *RNG) SparseVectors(num, dim int, density float64) []*distance.SparseVector {
	r.mu.Lock()
	defer r.mu.Unlock()

	vectors := make([]*distance.SparseVector, num)
	for i := range num {
		values := make(map[uint32]float64)
		for j := 0; j < dim; j++ {
			if r.rand.Float64() < density {
				values[uint32(j)] = r.rand.NormFloat64()
			}
		}
		v, err := distance.NewSparseVector(dim, values)
		if err != nil {
			panic(err)
		}
		vectors[i] = v
	}
	return vectors
}

// UniformRelation returns a relation of uniform vectors with ids 0..num-1.
func (r *RNG) UniformRelation(num, dim int) *relation.Memory[distance.Vector] {
	return mustRelation(r.UniformVectors(num, dim))
}

// ClusteredRelation returns a relation of clustered vectors with ids 0..num-1.
func (r *RNG) ClusteredRelation(num, dim, clusters int, spread float64) *relation.Memory[distance.Vector] {
	return mustRelation(r.ClusteredVectors(num, dim, clusters, spread))
}

// GridRelation returns a relation of grid vectors with ids 0..num-1.
func (r *RNG) GridRelation(num, dim, side int) *relation.Memory[distance.Vector] {
	return mustRelation(r.GridVectors(num, dim, side))
}

func mustRelation(vectors []distance.Vector) *relation.Memory[distance.Vector] {
	rel, err := relation.FromVectors(vectors)
	if err != nil {
		panic(err)
	}
	return rel
}

// SortedNeighbors computes the distance from q to every element of rel and
// returns all of them sorted by (distance, id).
func SortedNeighbors[V any](rel relation.Relation[V], dist distance.Function[V], q V) []Neighbor {
	out := make([]Neighbor, 0, rel.Len())
	for _, id := range rel.IDs() {
		v, _ := rel.Get(id)
		d, err := dist.Distance(q, v)
		if err != nil {
			panic(err)
		}
		out = append(out, Neighbor{ID: id, Distance: d})
	}
	slices.SortFunc(out, func(a, b Neighbor) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// ExactKNN returns the first k entries of SortedNeighbors.
func ExactKNN[V any](rel relation.Relation[V], dist distance.Function[V], q V, k int) []Neighbor {
	all := SortedNeighbors(rel, dist, q)
	if len(all) > k {
		all = all[:k]
	}
	return all
}

// ExactRange returns every entry of SortedNeighbors within eps.
func ExactRange[V any](rel relation.Relation[V], dist distance.Function[V], q V, eps float64) []Neighbor {
	var out []Neighbor
	for _, n := range SortedNeighbors(rel, dist, q) {
		if n.Distance > eps {
			break
		}
		out = append(out, n)
	}
	return out
}

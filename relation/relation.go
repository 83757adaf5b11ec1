// Package relation provides the random-access mapping from identifiers to
// objects that every query engine consumes.
package relation

import (
	"errors"
	"fmt"

	"github.com/hupe1980/vecscan/core"
	"github.com/hupe1980/vecscan/distance"
)

// Relation is a read-only mapping ID → V with a known size and a stable
// iteration order.
type Relation[V any] interface {
	// Len returns the number of elements.
	Len() int

	// IDs returns all identifiers in canonical order. The slice must not be modified.
	IDs() []core.ID

	// Get returns the object stored for id.
	Get(id core.ID) (V, bool)

	// Dimensionality returns the shared vector dimensionality, or 0 if not applicable.
	Dimensionality() int
}

// Memory is an in-memory Relation. It is not safe for concurrent writes;
// once populated it may be read concurrently.
type Memory[V any] struct {
	ids   []core.ID
	pos   map[core.ID]int
	data  []V
	dim   int
	dimFn func(V) int
	check func(V) error
}

// NewMemory creates an empty relation. dimFn reports the dimensionality of an
// object; it may be nil for non-vector objects.
func NewMemory[V any](dimFn func(V) int) *Memory[V] {
	return &Memory[V]{
		pos:   make(map[core.ID]int),
		dimFn: dimFn,
	}
}

// NewVectors creates an empty relation of dense vectors.
func NewVectors() *Memory[distance.Vector] {
	return NewMemory(func(v distance.Vector) int { return len(v) })
}

// NewSparseVectors creates an empty relation of sparse vectors.
func NewSparseVectors() *Memory[*distance.SparseVector] {
	m := NewMemory(func(v *distance.SparseVector) int { return v.Dimensionality() })
	m.check = func(v *distance.SparseVector) error {
		if v == nil {
			return errors.New("nil sparse vector")
		}
		return nil
	}
	return m
}

// FromVectors builds a dense relation with identifiers 0..n-1.
func FromVectors(vectors []distance.Vector) (*Memory[distance.Vector], error) {
	rel := NewVectors()
	for i, v := range vectors {
		if err := rel.Add(core.ID(i), v); err != nil {
			return nil, err
		}
	}
	return rel, nil
}

// Add appends id → v. Duplicate identifiers, NoID and objects of a different
// dimensionality than the first one are rejected.
func (m *Memory[V]) Add(id core.ID, v V) error {
	if !id.Valid() {
		return core.NewArgumentError("id", id, "reserved identifier")
	}
	if _, ok := m.pos[id]; ok {
		return core.NewArgumentError("id", id, "duplicate identifier")
	}
	if m.check != nil {
		if err := m.check(v); err != nil {
			return core.NewArgumentError("object", id, err.Error())
		}
	}
	if m.dimFn != nil {
		dim := m.dimFn(v)
		if len(m.ids) == 0 {
			m.dim = dim
		} else if dim != m.dim {
			return fmt.Errorf("relation: add %d: %w", id, &core.DimensionMismatchError{Expected: m.dim, Actual: dim})
		}
	}
	m.pos[id] = len(m.ids)
	m.ids = append(m.ids, id)
	m.data = append(m.data, v)
	return nil
}

// Len implements Relation.
func (m *Memory[V]) Len() int { return len(m.ids) }

// IDs implements Relation.
func (m *Memory[V]) IDs() []core.ID { return m.ids }

// Get implements Relation.
func (m *Memory[V]) Get(id core.ID) (V, bool) {
	i, ok := m.pos[id]
	if !ok {
		var zero V
		return zero, false
	}
	return m.data[i], true
}

// Dimensionality implements Relation.
func (m *Memory[V]) Dimensionality() int { return m.dim }

// IDRange is a relation whose objects are the identifiers themselves, covering
// [Min, Max]. It pairs with distance functions defined on identifiers, such as
// a precomputed distance matrix.
type IDRange struct {
	ids []core.ID
}

// NewIDRange returns the relation of identifiers lo..hi inclusive.
// An empty relation is returned when hi < lo.
func NewIDRange(lo, hi core.ID) *IDRange {
	r := &IDRange{}
	if hi < lo || !hi.Valid() {
		return r
	}
	r.ids = make([]core.ID, 0, int(hi-lo)+1)
	for id := lo; ; id++ {
		r.ids = append(r.ids, id)
		if id == hi {
			break
		}
	}
	return r
}

// Len implements Relation.
func (r *IDRange) Len() int { return len(r.ids) }

// IDs implements Relation.
func (r *IDRange) IDs() []core.ID { return r.ids }

// Get implements Relation.
func (r *IDRange) Get(id core.ID) (core.ID, bool) {
	if len(r.ids) == 0 || id < r.ids[0] || id > r.ids[len(r.ids)-1] {
		return core.NoID, false
	}
	return id, true
}

// Dimensionality implements Relation.
func (r *IDRange) Dimensionality() int { return 0 }

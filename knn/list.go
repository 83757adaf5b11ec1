package knn

import (
	"cmp"
	"slices"

	"github.com/hupe1980/vecscan/core"
)

// Neighbor is a single query result.
type Neighbor struct {
	ID       core.ID
	Distance float64
}

// List is a ranked result list, sorted by ascending distance.
type List []Neighbor

// IDs returns the identifiers in rank order.
func (l List) IDs() []core.ID {
	ids := make([]core.ID, len(l))
	for i, n := range l {
		ids[i] = n.ID
	}
	return ids
}

// Distances returns the distances in rank order.
func (l List) Distances() []float64 {
	ds := make([]float64, len(l))
	for i, n := range l {
		ds[i] = n.Distance
	}
	return ds
}

// Contains reports whether id is part of the list.
func (l List) Contains(id core.ID) bool {
	return slices.ContainsFunc(l, func(n Neighbor) bool { return n.ID == id })
}

// Sort orders the list by distance, then by identifier.
func (l List) Sort() { sortList(l) }

// compareNeighbors orders by distance, then by identifier.
func compareNeighbors(a, b Neighbor) int {
	if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func sortList(l List) {
	slices.SortFunc(l, compareNeighbors)
}

package optics

import (
	"fmt"

	"github.com/hupe1980/vecscan/core"
)

// Entry is one element of a cluster order.
type Entry struct {
	ID core.ID
	// Predecessor is the element the entry was reached from, or core.NoID
	// for the first element of an expansion.
	Predecessor core.ID
	// Reachability is +Inf for the first element of an expansion.
	Reachability float64
	// CoreDistance is +Inf unless the element is a core point.
	CoreDistance float64
}

// HasPredecessor reports whether the entry was reached from another element.
func (e Entry) HasPredecessor() bool { return e.Predecessor != core.NoID }

// ClusterOrder is an append-only sequence of entries in which every
// identifier appears at most once.
type ClusterOrder struct {
	entries []Entry
	pos     map[core.ID]int
}

// NewClusterOrder creates an empty order.
func NewClusterOrder(capacity int) *ClusterOrder {
	return &ClusterOrder{
		entries: make([]Entry, 0, capacity),
		pos:     make(map[core.ID]int, capacity),
	}
}

// Append adds e at the end. Appending an identifier twice is an error.
func (o *ClusterOrder) Append(e Entry) error {
	if _, ok := o.pos[e.ID]; ok {
		return fmt.Errorf("optics: %d already in cluster order: %w", e.ID, core.ErrInvalidArgument)
	}
	o.pos[e.ID] = len(o.entries)
	o.entries = append(o.entries, e)
	return nil
}

// Len returns the number of entries.
func (o *ClusterOrder) Len() int { return len(o.entries) }

// Entries returns the entries in extraction order. The slice must not be modified.
func (o *ClusterOrder) Entries() []Entry { return o.entries }

// At returns the i-th entry.
func (o *ClusterOrder) At(i int) Entry { return o.entries[i] }

// Get returns the entry of id.
func (o *ClusterOrder) Get(id core.ID) (Entry, bool) {
	i, ok := o.pos[id]
	if !ok {
		return Entry{}, false
	}
	return o.entries[i], true
}

// Position returns the index of id in the order.
func (o *ClusterOrder) Position(id core.ID) (int, bool) {
	i, ok := o.pos[id]
	return i, ok
}

// Predecessor returns the predecessor of id. ok is false if id is unknown or
// starts an expansion.
func (o *ClusterOrder) Predecessor(id core.ID) (core.ID, bool) {
	e, ok := o.Get(id)
	if !ok || !e.HasPredecessor() {
		return core.NoID, false
	}
	return e.Predecessor, true
}

// IDs returns the identifiers in extraction order.
func (o *ClusterOrder) IDs() []core.ID {
	ids := make([]core.ID, len(o.entries))
	for i, e := range o.entries {
		ids[i] = e.ID
	}
	return ids
}

// Reachabilities returns the reachability plot values in extraction order.
func (o *ClusterOrder) Reachabilities() []float64 {
	out := make([]float64, len(o.entries))
	for i, e := range o.entries {
		out[i] = e.Reachability
	}
	return out
}

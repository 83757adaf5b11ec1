// Package queue provides an updatable min-priority queue keyed by identifier.
package queue

import (
	"container/heap"

	"github.com/hupe1980/vecscan/core"
)

// Item is a live queue entry.
type Item[P any] struct {
	ID      core.ID
	Key     float64
	Payload P
}

type entry[P any] struct {
	Item[P]
	seq uint64
}

// entries implements heap.Interface. It may hold stale entries.
type entries[P any] []entry[P]

// Compile time check to ensure entries satisfies the heap interface.
var _ heap.Interface = (*entries[core.ID])(nil)

func (e entries[P]) Len() int { return len(e) }

// Less orders by key; equal keys pop in the order they were pushed.
func (e entries[P]) Less(i, j int) bool {
	if e[i].Key != e[j].Key {
		return e[i].Key < e[j].Key
	}
	return e[i].seq < e[j].seq
}

func (e entries[P]) Swap(i, j int) { e[i], e[j] = e[j], e[i] }

func (e *entries[P]) Push(x any) { *e = append(*e, x.(entry[P])) }

func (e *entries[P]) Pop() any {
	old := *e
	n := len(old)
	item := old[n-1]
	old[n-1] = entry[P]{}
	*e = old[:n-1]
	return item
}

// Updatable is a min-priority queue in which every identifier is present at
// most once. Pushing a queued identifier with a smaller key replaces its
// entry (decrease-key). Superseded heap entries are discarded lazily when
// they surface.
//
// An Updatable is not safe for concurrent use.
type Updatable[P any] struct {
	items entries[P]
	live  map[core.ID]entry[P]
	seq   uint64
}

// NewUpdatable creates an empty queue.
func NewUpdatable[P any](capacity int) *Updatable[P] {
	return &Updatable[P]{
		items: make(entries[P], 0, capacity),
		live:  make(map[core.ID]entry[P], capacity),
	}
}

// Len returns the number of queued identifiers.
func (q *Updatable[P]) Len() int { return len(q.live) }

// Contains reports whether id is queued.
func (q *Updatable[P]) Contains(id core.ID) bool {
	_, ok := q.live[id]
	return ok
}

// Get returns the live entry of id.
func (q *Updatable[P]) Get(id core.ID) (Item[P], bool) {
	e, ok := q.live[id]
	return e.Item, ok
}

// Push queues id with key and payload. If id is already queued with a key
// less than or equal to key nothing changes. It reports whether the queue was
// modified.
func (q *Updatable[P]) Push(id core.ID, key float64, payload P) bool {
	if cur, ok := q.live[id]; ok && cur.Key <= key {
		return false
	}
	q.seq++
	e := entry[P]{Item: Item[P]{ID: id, Key: key, Payload: payload}, seq: q.seq}
	q.live[id] = e
	heap.Push(&q.items, e)
	return true
}

// Pop removes and returns the entry with the smallest key.
func (q *Updatable[P]) Pop() (Item[P], bool) {
	for len(q.items) > 0 {
		e := heap.Pop(&q.items).(entry[P])
		cur, ok := q.live[e.ID]
		if !ok || cur.seq != e.seq {
			continue
		}
		delete(q.live, e.ID)
		return e.Item, true
	}
	return Item[P]{}, false
}

// Peek returns the entry with the smallest key without removing it.
func (q *Updatable[P]) Peek() (Item[P], bool) {
	for len(q.items) > 0 {
		e := q.items[0]
		if cur, ok := q.live[e.ID]; ok && cur.seq == e.seq {
			return e.Item, true
		}
		heap.Pop(&q.items)
	}
	return Item[P]{}, false
}

// Reset empties the queue.
func (q *Updatable[P]) Reset() {
	clear(q.items)
	q.items = q.items[:0]
	clear(q.live)
}

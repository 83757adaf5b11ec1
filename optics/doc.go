// Package optics computes the OPTICS cluster ordering of a relation.
//
// The engine consumes range queries around stored elements, so any exact
// query engine can back it: a linear scan, the spatial index, or a
// precomputed distance matrix. Each run seeds an updatable min-queue with an
// unprocessed element and drains it completely, which expands one connected
// density region. The result lists every element exactly once together with
// its predecessor, reachability distance and core distance.
package optics

// Package testutil provides testing utilities for vecscan.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded generators for dense and sparse relations and an exact
// sort-based reference for k-NN results.
//
// # Random Relations
//
//	rng := testutil.NewRNG(seed)
//	rel := rng.UniformRelation(1000, 8)      // uniform [0, 1)
//	rel = rng.ClusteredRelation(1000, 8, 5, 0.05)
//	rel = rng.GridRelation(1000, 3, 4)       // many exact ties
//
// # Ground Truth
//
//	want := testutil.SortedNeighbors(rel, dist, query)
package testutil

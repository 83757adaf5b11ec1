// Package distance provides the pluggable distance functions used by the
// linear scan, the spatial index and OPTICS.
//
// Every function implements Function. Functions usable with the spatial index
// additionally implement Spatial (a lower bound from a point to an
// axis-aligned box), and functions with a cheaper order-preserving form
// implement Reducer.
//
// # Supported Metrics
//
//   - MetricEuclidean: L2 distance, reduced form is the squared distance
//   - MetricSquaredEuclidean: squared L2, a monotonic surrogate of L2
//   - MetricManhattan: (weighted) L1 distance with a specialized box bound
//   - MetricLp: weighted Minkowski distance for any p > 0
//   - MetricMaximum: Chebyshev (L-infinity) distance
//
// SparseLpNorm operates on SparseVector values instead of dense vectors.
//
// # Usage
//
//	m, _ := distance.ParseMetric("manhattan")
//	fn, _ := distance.New(m, distance.WithWeights(w))
//	d, err := fn.Distance(a, b)
package distance

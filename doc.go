// Package vecscan provides exact nearest-neighbor search and OPTICS density
// ordering over in-memory relations.
//
// An Explorer wraps one relation and one distance function and answers k-NN,
// range and OPTICS queries through either a linear scan or a median-split
// KD tree. Both engines return identical results; ties are broken by
// identifier.
//
// # Quick Start
//
//	rel, _ := relation.FromVectors([]distance.Vector{{0, 0}, {1, 0}, {5, 5}, {5, 6}})
//	ex, _ := vecscan.New(rel, distance.Euclidean{})
//
//	nn, _ := ex.KNN(ctx, distance.Vector{0, 0}, 2)
//	order, _ := ex.OPTICS(ctx, 2, 2)
//
// # Engines
//
// EngineAuto picks the KD tree for dense vectors with a distance that has a
// box bound (Euclidean, squared Euclidean, weighted Lp, maximum) and the
// linear scan for everything else, such as sparse vectors or precomputed
// distance matrices. Use WithEngine to force one.
//
// # Precomputed distances
//
// Distance matrices stored as text in a blob store (local disk, memory, S3 or
// MinIO) can be queried directly:
//
//	store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("matrices/"))
//	ex, _ := vecscan.LoadPrecomputed(ctx, store, "pairs.txt.zst")
//	order, _ := ex.OPTICS(ctx, math.Inf(1), 5)
//
// # Observability
//
// Operations are logged through a slog-based Logger (WithLogger, WithLogLevel)
// and reported to a MetricsCollector (WithMetricsCollector). The prommetrics
// package exports them to Prometheus.
package vecscan

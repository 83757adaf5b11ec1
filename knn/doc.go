// Package knn provides exact k-nearest-neighbor and range queries by linear
// scan, and the bounded result collector shared with the spatial index.
//
// A LinearScan evaluates the distance function once per relation element.
// When the function implements distance.Reducer the scan runs in surrogate
// units and converts the retained distances back before returning.
//
// Bulk queries make a single pass over the relation and update one collector
// per query. They can be split across goroutines over disjoint id ranges;
// results are identical to independent single-query calls.
package knn

// Package kdtree implements an exact median-split spatial index with
// backtracking k-nearest-neighbor and range search.
//
// The tree is built once over a dense vector relation. At depth d a node
// splits on axis d mod dim at the exact median of its subset. Elements equal
// to the split value stay in the node's bucket, the rest go to the left
// (less) or right (greater) child. Nodes live in an arena and refer to each
// other by index.
//
// A search descends to the entry node matching the query, evaluates buckets,
// explores a child only when the distance function's box bound to the child's
// half-space does not exceed the current pruning bound, then walks up through
// the parents. A per-query visited set ensures every node is evaluated at most
// once. After New returns the tree is immutable and safe for concurrent
// queries.
package kdtree

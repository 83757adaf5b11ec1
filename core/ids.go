// Package core holds the identifier type and error taxonomy shared by every
// vecscan package.
package core

// ID is an opaque, stable handle to one element of a relation.
// It is usable as a map or bitmap key; algorithms never rely on its value order.
type ID uint32

// NoID is the reserved "none" identifier, e.g. the predecessor of the first
// entry of an OPTICS expansion. Relations must not store it.
const NoID = ^ID(0)

// Valid reports whether id is not the reserved NoID sentinel.
func (id ID) Valid() bool { return id != NoID }

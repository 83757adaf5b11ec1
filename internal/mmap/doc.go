// Package mmap maps files read-only into memory.
//
//	m, err := mmap.Open("distances.txt")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes() // valid until Close
package mmap

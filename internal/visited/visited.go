// Package visited provides a resettable bitset over dense node indices.
package visited

// Set records which nodes a traversal has already handled. Reset only touches
// the words that were written, so a single Set can serve many traversals of
// the same structure.
type Set struct {
	words   []uint64
	touched []int
	count   int
}

// New returns a set sized for n nodes. It grows on demand.
func New(n int) *Set {
	return &Set{
		words:   make([]uint64, (n+63)/64),
		touched: make([]int, 0, 32),
	}
}

// Mark records node i and reports whether it was unmarked before.
func (s *Set) Mark(i int) bool {
	w := i >> 6
	bit := uint64(1) << uint(i&63)

	if w >= len(s.words) {
		s.grow(w + 1)
	}
	if s.words[w]&bit != 0 {
		return false
	}
	if s.words[w] == 0 {
		s.touched = append(s.touched, w)
	}
	s.words[w] |= bit
	s.count++
	return true
}

// Has reports whether node i is marked.
func (s *Set) Has(i int) bool {
	w := i >> 6
	if i < 0 || w >= len(s.words) {
		return false
	}
	return s.words[w]&(uint64(1)<<uint(i&63)) != 0
}

// Len returns the number of marked nodes.
func (s *Set) Len() int { return s.count }

// Reset unmarks every node.
func (s *Set) Reset() {
	for _, w := range s.touched {
		s.words[w] = 0
	}
	s.touched = s.touched[:0]
	s.count = 0
}

func (s *Set) grow(n int) {
	size := 2 * len(s.words)
	if size < n {
		size = n
	}
	words := make([]uint64, size)
	copy(words, s.words)
	s.words = words
}

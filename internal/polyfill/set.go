package polyfill

// Set collects the overloads requested while generating one shader module,
// so each helper is emitted once no matter how many call sites need it.
//
// The zero value is an empty set ready to use. A Set is not safe for
// concurrent use; each module being generated owns its own.
type Set struct {
	seen  map[Overload]struct{}
	order []Overload
}

// Add records o and reports whether it was not already present.
func (s *Set) Add(o Overload) bool {
	if _, ok := s.seen[o]; ok {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[Overload]struct{})
	}
	s.seen[o] = struct{}{}
	s.order = append(s.order, o)
	return true
}

// Len returns the number of distinct overloads.
func (s *Set) Len() int {
	return len(s.order)
}

// Overloads returns the distinct overloads in the order they were first
// added. The caller may modify the returned slice.
func (s *Set) Overloads() []Overload {
	out := make([]Overload, len(s.order))
	copy(out, s.order)
	return out
}

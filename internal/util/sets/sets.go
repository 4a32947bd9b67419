// Package sets holds a small generic set used to de-duplicate feature lists
// and watch roots while keeping their order.
package sets

// Set is a hash set for comparable keys.
type Set[T comparable] map[T]struct{}

// New creates a set pre-populated with the provided values.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts v and reports whether it was not present before.
func (s Set[T]) Add(v T) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

// Has returns true if v is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Ordered collects values once each, in first-seen order. The zero value is
// ready to use.
type Ordered[T comparable] struct {
	seen  Set[T]
	items []T
}

// Add appends v unless it was added before or is the zero value.
func (o *Ordered[T]) Add(vals ...T) {
	var zero T
	if o.seen == nil {
		o.seen = Set[T]{}
	}
	for _, v := range vals {
		if v != zero && o.seen.Add(v) {
			o.items = append(o.items, v)
		}
	}
}

// Items returns the collected values.
func (o *Ordered[T]) Items() []T { return o.items }

package model

// OrderedSet is a set that remembers insertion order. Iteration order is the
// order in which elements were first added, which keeps every downstream
// computation reproducible.
type OrderedSet[T comparable] struct {
	items []T
	index map[T]int
}

// NewOrderedSet returns a set seeded with the given items.
func NewOrderedSet[T comparable](items ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{index: make(map[T]int, len(items))}
	for _, item := range items {
		s.Add(item)
	}

	return s
}

// Add inserts item and reports whether it was not present before.
func (s *OrderedSet[T]) Add(item T) bool {
	if s.index == nil {
		s.index = make(map[T]int)
	}

	if _, ok := s.index[item]; ok {
		return false
	}

	s.index[item] = len(s.items)
	s.items = append(s.items, item)

	return true
}

// Remove deletes item and reports whether it was present.
func (s *OrderedSet[T]) Remove(item T) bool {
	pos, ok := s.index[item]
	if !ok {
		return false
	}

	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, item)

	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i]] = i
	}

	return true
}

// Contains reports whether item is in the set.
func (s *OrderedSet[T]) Contains(item T) bool {
	if s == nil {
		return false
	}

	_, ok := s.index[item]

	return ok
}

// Len returns the number of elements.
func (s *OrderedSet[T]) Len() int {
	if s == nil {
		return 0
	}

	return len(s.items)
}

// Items returns a copy of the elements in insertion order.
func (s *OrderedSet[T]) Items() []T {
	if s == nil {
		return nil
	}

	out := make([]T, len(s.items))
	copy(out, s.items)

	return out
}

// Clone returns an independent copy of the set.
func (s *OrderedSet[T]) Clone() *OrderedSet[T] {
	if s == nil {
		return NewOrderedSet[T]()
	}

	return NewOrderedSet(s.items...)
}

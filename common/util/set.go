package util

import "sort"

type Set[V comparable] struct {
	values map[V]bool
}

func NewSet[V comparable]() *Set[V] {
	return &Set[V]{
		values: map[V]bool{},
	}
}

func NewSetOf[V comparable](values ...V) *Set[V] {
	set := NewSet[V]()
	for _, value := range values {
		set.Add(value)
	}
	return set
}

func (s *Set[V]) Add(value V) {
	s.values[value] = true
}
func (s *Set[V]) Remove(value V) {
	delete(s.values, value)
}
func (s *Set[V]) Contains(value V) bool {
	return s.values[value]
}
func (s *Set[V]) Len() int {
	return len(s.values)
}
func (s *Set[V]) Clear() {
	s.values = map[V]bool{}
}

// Values returns the members in no particular order.
func (s *Set[V]) Values() []V {
	values := make([]V, 0, len(s.values))
	for value := range s.values {
		values = append(values, value)
	}
	return values
}

// SortedValues returns the members ordered by less.
func (s *Set[V]) SortedValues(less func(a V, b V) bool) []V {
	values := s.Values()
	sort.Slice(values, func(i, j int) bool {
		return less(values[i], values[j])
	})
	return values
}

package collections

import (
	"cmp"
	"slices"
	"strings"
)

// Set is an unordered collection of distinct values
type Set[T cmp.Ordered] map[T]struct{}

// NewSet creates a Set holding vs
func NewSet[T cmp.Ordered](vs ...T) Set[T] {
	s := make(Set[T], len(vs))
	s.Add(vs...)
	return s
}

// Add inserts vs, ignoring values already present
func (s Set[T]) Add(vs ...T) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

// Has reports whether v is in the set
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Union returns a new set holding the members of s and other
func (s Set[T]) Union(other Set[T]) Set[T] {
	u := make(Set[T], len(s)+len(other))
	for v := range s {
		u.Add(v)
	}
	for v := range other {
		u.Add(v)
	}
	return u
}

// Sorted returns the members in ascending order
func (s Set[T]) Sorted() []T {
	r := make([]T, 0, len(s))
	for v := range s {
		r = append(r, v)
	}
	slices.Sort(r)
	return r
}

// FoldedSet is a string Set whose members are stored lower-cased
type FoldedSet struct {
	Set[string]
}

// NewFoldedSet creates a FoldedSet holding vs
func NewFoldedSet(vs ...string) FoldedSet {
	f := FoldedSet{Set: NewSet[string]()}
	f.Add(vs...)
	return f
}

// Add inserts the lower-cased form of each value
func (f FoldedSet) Add(vs ...string) {
	for _, v := range vs {
		f.Set.Add(strings.ToLower(v))
	}
}

// Has reports whether v is a member, ignoring case
func (f FoldedSet) Has(v string) bool {
	return f.Set.Has(strings.ToLower(v))
}

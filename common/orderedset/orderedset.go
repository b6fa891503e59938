// Package orderedset provides an insertion-ordered collection that never holds
// two elements with the same key.
package orderedset

import (
	"encoding/json"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/pilacorp/go-diddoc/common/errs"
)

// Set is an ordered sequence of T in which no two elements share key(T).
//
// A Set is not safe for concurrent mutation. Readers may share an unmutated Set.
type Set[T any, K comparable] struct {
	items []T
	key   func(T) K
}

// New returns an empty Set using key to extract element identity.
func New[T any, K comparable](key func(T) K) *Set[T, K] {
	return &Set[T, K]{key: key}
}

// FromSlice builds a Set by appending items in order. The first duplicate key
// aborts construction with errs.ErrInvalidSet.
func FromSlice[T any, K comparable](key func(T) K, items []T) (*Set[T, K], error) {
	set := &Set[T, K]{key: key, items: make([]T, 0, len(items))}

	for i, item := range items {
		if !set.Append(item) {
			return nil, fmt.Errorf("%w: key %v at position %d", errs.ErrInvalidSet, key(item), i)
		}
	}

	return set, nil
}

// Len returns the number of elements.
func (s *Set[T, K]) Len() int {
	if s == nil {
		return 0
	}

	return len(s.items)
}

// IsEmpty reports whether the set has no elements.
func (s *Set[T, K]) IsEmpty() bool {
	return s.Len() == 0
}

// At returns the element at position i.
func (s *Set[T, K]) At(i int) T {
	return s.items[i]
}

// Head returns the first element.
func (s *Set[T, K]) Head() (T, bool) {
	var zero T
	if s.IsEmpty() {
		return zero, false
	}

	return s.items[0], true
}

// Tail returns the last element.
func (s *Set[T, K]) Tail() (T, bool) {
	var zero T
	if s.IsEmpty() {
		return zero, false
	}

	return s.items[len(s.items)-1], true
}

// Items returns a copy of the elements in order.
func (s *Set[T, K]) Items() []T {
	if s == nil {
		return nil
	}

	return slices.Clone(s.items)
}

// Index returns the position of the element with the given key, or -1.
func (s *Set[T, K]) Index(key K) int {
	if s == nil {
		return -1
	}

	return slices.IndexFunc(s.items, func(item T) bool { return s.key(item) == key })
}

// Contains reports whether an element with the given key exists.
func (s *Set[T, K]) Contains(key K) bool {
	return s.Index(key) >= 0
}

// Get returns the element with the given key.
func (s *Set[T, K]) Get(key K) (T, bool) {
	var zero T

	i := s.Index(key)
	if i < 0 {
		return zero, false
	}

	return s.items[i], true
}

// Append pushes item to the back. It is a no-op returning false when an
// element with the same key exists.
func (s *Set[T, K]) Append(item T) bool {
	if s.Contains(s.key(item)) {
		return false
	}

	s.items = append(s.items, item)

	return true
}

// Prepend pushes item to the front. It is a no-op returning false when an
// element with the same key exists.
func (s *Set[T, K]) Prepend(item T) bool {
	if s.Contains(s.key(item)) {
		return false
	}

	s.items = slices.Insert(s.items, 0, item)

	return true
}

// Replace locates the first element keyed either current or key(replacement),
// drops it together with every later element colliding with either key, and
// inserts replacement at the located position. It reports whether a match was
// found; without one the set is unchanged.
func (s *Set[T, K]) Replace(current K, replacement T) bool {
	next := s.key(replacement)

	collides := func(item T) bool {
		k := s.key(item)
		return k == current || k == next
	}

	index := slices.IndexFunc(s.items, collides)
	if index < 0 {
		return false
	}

	tail := slices.DeleteFunc(slices.Clone(s.items[index:]), collides)

	s.items = append(s.items[:index], replacement)
	s.items = append(s.items, tail...)

	return true
}

// Update replaces the element sharing replacement's key, keeping its position.
func (s *Set[T, K]) Update(replacement T) bool {
	return s.Replace(s.key(replacement), replacement)
}

// Remove deletes the element with the given key and reports whether it existed.
func (s *Set[T, K]) Remove(key K) bool {
	i := s.Index(key)
	if i < 0 {
		return false
	}

	s.items = slices.Delete(s.items, i, i+1)

	return true
}

// MarshalJSON encodes the set as a JSON array in order.
func (s *Set[T, K]) MarshalJSON() ([]byte, error) {
	if s == nil || s.items == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(s.items)
}

// Package openset provides a lock-free Set built on top of
// [bucket.FixedSizeHashBucket]. The hash bucket itself is wait-free but
// requires the caller to supply a probe offset and handle collisions; Set
// is that caller, advancing the offset until it finds a free slot or
// exhausts capacity.
package openset

import (
	"errors"
	"fmt"
	"iter"

	"github.com/theraot/hashbucket/pkg/bucket"
)

// ErrFull is returned when a Set has probed every slot in its table without
// finding one to claim.
//
// Recovery: construct a new, larger Set and re-add the existing elements;
// this package does not resize on its own.
var ErrFull = errors.New("openset: table is full")

// Set is a lock-free collection of unique keys, built on one
// [bucket.FixedSizeHashBucket]. Unlike the hash bucket it wraps, Set's
// operations are lock-free rather than wait-free: a probe sequence may take
// an unbounded (though practically small) number of steps under heavy
// collision.
//
// A Set must be constructed with [New]; the zero value is not usable.
type Set[K comparable] struct {
	table *bucket.FixedSizeHashBucket[K, struct{}]
}

// New creates a Set whose capacity is capacity rounded up to the next power
// of two, using hash to place keys.
func New[K comparable](capacity int, hash func(K) uint64) *Set[K] {
	return &Set[K]{table: bucket.NewFixedSizeHashBucket[K, struct{}](capacity, hash)}
}

// Capacity returns the Set's fixed capacity (a power of two).
func (s *Set[K]) Capacity() int {
	return s.table.Capacity()
}

// Count returns the number of elements currently in the Set.
func (s *Set[K]) Count() int {
	return s.table.Count()
}

// Add inserts k into the Set, retrying with an incrementing probe offset on
// every collision. It reports true if k was newly added, false if it was
// already present. It returns ErrFull if every slot collided without ever
// landing on k itself or an empty slot.
func (s *Set[K]) Add(k K) (bool, error) {
	// A freed slot earlier in k's probe sequence would otherwise accept a
	// second copy of a k that already sits further along.
	if s.Contains(k) {
		return false, nil
	}

	capacity := uint64(s.table.Capacity())

	for o := uint64(0); o < capacity; o++ {
		index, collision := s.table.Add(k, struct{}{}, o)
		if index >= 0 {
			return true, nil
		}

		if !collision {
			// Same key already occupies this probe's slot: duplicate, not
			// an error.
			return false, nil
		}
	}

	return false, fmt.Errorf("%w: %d slots probed", ErrFull, capacity)
}

// Contains reports whether k is present in the Set.
func (s *Set[K]) Contains(k K) bool {
	capacity := uint64(s.table.Capacity())

	for o := uint64(0); o < capacity; o++ {
		if s.table.ContainsKey(k, o) >= 0 {
			return true
		}
	}

	return false
}

// Remove deletes k from the Set if present, reporting whether it was
// found.
func (s *Set[K]) Remove(k K) bool {
	capacity := uint64(s.table.Capacity())

	for o := uint64(0); o < capacity; o++ {
		if s.table.Remove(k, o) >= 0 {
			return true
		}
	}

	return false
}

// Keys iterates over the Set's elements in underlying slot-index order.
func (s *Set[K]) Keys() iter.Seq[K] {
	return s.table.Keys()
}

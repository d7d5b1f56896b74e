package bucket

import "iter"

// entry is what actually lives in the underlying Bucket's Slots: a key
// alongside its value, so that a probe landing on an Occupied slot can
// compare keys without a second lookup.
type entry[K comparable, V any] struct {
	key K
	val V
}

// FixedSizeHashBucket is a wait-free, open-addressed hash table built over a
// single [Bucket]. It does not probe on its own: the caller supplies the
// probe offset o on every call, and a collision (a different key occupying
// the target slot) is reported back to the caller to retry with o+1. This
// keeps every FixedSizeHashBucket operation bounded-work (wait-free); any
// probing loop lives one layer up, in a caller such as this module's own
// openset package.
//
// A FixedSizeHashBucket must be constructed with [NewFixedSizeHashBucket];
// the zero value is not usable.
type FixedSizeHashBucket[K comparable, V any] struct {
	b    *Bucket[entry[K, V]]
	hash func(K) uint64
}

// NewFixedSizeHashBucket creates a FixedSizeHashBucket whose capacity is
// capacity rounded up to the next power of two, using hash to map keys to
// their home slot.
func NewFixedSizeHashBucket[K comparable, V any](capacity int, hash func(K) uint64) *FixedSizeHashBucket[K, V] {
	return &FixedSizeHashBucket[K, V]{
		b:    NewBucket[entry[K, V]](capacity),
		hash: hash,
	}
}

// Capacity returns the table's fixed capacity (a power of two).
func (h *FixedSizeHashBucket[K, V]) Capacity() int {
	return h.b.Capacity()
}

// Count returns the number of live entries.
func (h *FixedSizeHashBucket[K, V]) Count() int {
	return h.b.Count()
}

// Index computes the slot index for key k at probe offset o:
// (hash(k) + o) & (capacity - 1).
func (h *FixedSizeHashBucket[K, V]) Index(k K, o uint64) int {
	mask := uint64(h.b.Capacity() - 1)

	return int((h.hash(k) + o) & mask)
}

// Add inserts a new entry for key k at probe offset o. If the target slot
// is Empty, the insert succeeds: index >= 0, collision == false. If the
// slot is Occupied by a different key, Add reports a collision
// (index == -1, collision == true) so the caller can retry with o+1. If the
// slot is Occupied by the same key, Add reports a duplicate
// (index == -1, collision == false) without touching the entry.
func (h *FixedSizeHashBucket[K, V]) Add(k K, v V, o uint64) (index int, collision bool) {
	i := h.Index(k, o)

	inserted, prev, hadPrev := h.b.InsertPrev(i, entry[K, V]{key: k, val: v})
	if inserted {
		return i, false
	}

	if hadPrev && prev.key == k {
		return -1, false
	}

	return -1, true
}

// ContainsKey reports the slot index holding key k at probe offset o, or -1
// if that slot is Empty or holds a different key.
func (h *FixedSizeHashBucket[K, V]) ContainsKey(k K, o uint64) int {
	i := h.Index(k, o)

	e, ok := h.b.TryGet(i)
	if !ok || e.key != k {
		return -1
	}

	return i
}

// TryGetValue returns the value stored for key k at probe offset o, and the
// slot index it was found at, or the zero value and -1 if absent.
func (h *FixedSizeHashBucket[K, V]) TryGetValue(k K, o uint64) (V, int) {
	i := h.Index(k, o)

	e, ok := h.b.TryGet(i)
	if !ok || e.key != k {
		var zero V

		return zero, -1
	}

	return e.val, i
}

// Set replaces the value for key k at probe offset o if the target slot is
// Empty or already holds k, reporting the slot index and whether the entry
// was newly created. It reports index == -1 if the slot is occupied by a
// different key.
func (h *FixedSizeHashBucket[K, V]) Set(k K, v V, o uint64) (index int, isNew bool) {
	i := h.Index(k, o)

	ok, wasNew := h.b.SetIf(i, entry[K, V]{key: k, val: v}, func(e entry[K, V]) bool {
		return e.key == k
	})
	if !ok {
		return -1, false
	}

	return i, wasNew
}

// Remove deletes the entry for key k at probe offset o if the target slot
// still holds it, reporting the slot index it was removed from, or -1 if
// the slot was Empty or held a different key.
func (h *FixedSizeHashBucket[K, V]) Remove(k K, o uint64) int {
	i := h.Index(k, o)

	_, ok := h.b.RemoveIf(i, func(e entry[K, V]) bool {
		return e.key == k
	})
	if !ok {
		return -1
	}

	return i
}

// Keys iterates over the keys of live entries in slot-index order.
func (h *FixedSizeHashBucket[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, e := range h.b.All() {
			if !yield(e.key) {
				return
			}
		}
	}
}

// Values iterates over the values of live entries in slot-index order.
func (h *FixedSizeHashBucket[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, e := range h.b.All() {
			if !yield(e.val) {
				return
			}
		}
	}
}

// All iterates over the (key, value) pairs of live entries in slot-index
// order. Like [Bucket.All], iteration is snapshot-free.
func (h *FixedSizeHashBucket[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range h.b.All() {
			if !yield(e.key, e.val) {
				return
			}
		}
	}
}

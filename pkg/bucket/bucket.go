package bucket

import (
	"fmt"
	"iter"
	"sync/atomic"
)

// nextPowerOfTwo rounds n up to the next power of two. n <= 1 rounds to 1.
// It panics if the result would exceed maxCapacity: every container in this
// package, including a Deque's doubling on growth, allocates its backing
// slots through this function, so this is the single chokepoint enforcing
// the package's hardcoded capacity ceiling.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	if uint64(p) > maxCapacity {
		panic(fmt.Sprintf("bucket: requested capacity %d rounds up to %d, exceeding the %d limit", n, p, maxCapacity))
	}

	return p
}

// Bucket is a fixed-capacity, power-of-two-sized array of Slots with an
// atomic live count. Every operation mirrors the underlying Slot operation;
// on success that changes occupancy, the live count is updated after the
// Slot transition via a single atomic increment or decrement. The observed
// count may momentarily lag a concurrent transition but never goes negative
// or exceeds capacity.
//
// A Bucket must be constructed with [NewBucket]; the zero value is not
// usable.
type Bucket[V any] struct {
	slots []Slot[V]
	count atomic.Int64
}

// NewBucket creates a Bucket whose capacity is capacity rounded up to the
// next power of two.
func NewBucket[V any](capacity int) *Bucket[V] {
	n := nextPowerOfTwo(capacity)

	return &Bucket[V]{slots: make([]Slot[V], n)}
}

// Capacity returns the Bucket's fixed capacity (a power of two).
func (b *Bucket[V]) Capacity() int {
	return len(b.slots)
}

// Count returns the number of live (Occupied) slots. It is eventually
// consistent with the underlying Slot states, not a hard snapshot.
func (b *Bucket[V]) Count() int {
	return int(b.count.Load())
}

// Insert succeeds iff slot i was Empty, transitioning it to Occupied(v).
func (b *Bucket[V]) Insert(i int, v V) bool {
	ok := b.slots[i].Insert(v)
	if ok {
		b.count.Add(1)
	}

	return ok
}

// InsertPrev is Insert, additionally reporting the value that occupied slot
// i if insertion failed.
func (b *Bucket[V]) InsertPrev(i int, v V) (inserted bool, prev V, hadPrev bool) {
	inserted, prev, hadPrev = b.slots[i].InsertPrev(v)
	if inserted {
		b.count.Add(1)
	}

	return inserted, prev, hadPrev
}

// TryGet returns the current value of slot i if Occupied, else reports
// Empty. It never mutates the Bucket.
func (b *Bucket[V]) TryGet(i int) (V, bool) {
	return b.slots[i].TryGet()
}

// Set unconditionally replaces slot i's contents and reports whether it was
// newly occupied (wasNew).
func (b *Bucket[V]) Set(i int, v V) (wasNew bool) {
	wasNew = b.slots[i].Set(v)
	if wasNew {
		b.count.Add(1)
	}

	return wasNew
}

// SetIf replaces slot i's contents iff it is Empty or Occupied by a value
// for which pred reports true. Used internally by FixedSizeHashBucket.Set to
// implement "replace if empty or same key".
func (b *Bucket[V]) SetIf(i int, v V, pred func(V) bool) (ok bool, wasNew bool) {
	ok, wasNew = b.slots[i].SetIf(v, pred)
	if ok && wasNew {
		b.count.Add(1)
	}

	return ok, wasNew
}

// RemoveAt succeeds iff slot i was Occupied, returning the removed value and
// transitioning it to Empty.
func (b *Bucket[V]) RemoveAt(i int) (V, bool) {
	v, ok := b.slots[i].RemoveAt()
	if ok {
		b.count.Add(-1)
	}

	return v, ok
}

// RemoveIf succeeds iff slot i is Occupied by a value for which pred reports
// true. Used internally by FixedSizeHashBucket.Remove to implement
// "remove only if the key still matches".
func (b *Bucket[V]) RemoveIf(i int, pred func(V) bool) (V, bool) {
	v, ok := b.slots[i].RemoveIf(pred)
	if ok {
		b.count.Add(-1)
	}

	return v, ok
}

// All iterates over occupied slots in index order. Iteration is
// snapshot-free: it gives no consistency guarantee against concurrent
// modification, and a slot observed Occupied at one moment may be Empty (or
// hold a different value) by the time the iterator visits it.
func (b *Bucket[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for i := range b.slots {
			if v, ok := b.slots[i].TryGet(); ok {
				if !yield(i, v) {
					return
				}
			}
		}
	}
}

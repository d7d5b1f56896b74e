package bucket

import (
	"iter"
	"sync/atomic"
)

// FixedSizeDeque is a wait-free, fixed-capacity double-ended queue built
// over a single [Bucket]. Front and back grow toward each other from
// opposite ends of the ring: indexFront starts at 0 and walks upward as
// items are pushed to the front, indexBack starts at capacity-1 and walks
// downward as items are pushed to the back. Both counters are monotonic and
// unbounded; the ring position for a counter value is always
// value & (capacity-1).
//
// Admission is gated by preCount, incremented before every add attempt so
// that an over-full deque can be rejected without scanning the ring. Because
// of an asymmetry preserved from the original design, a failed slot insert
// rolls preCount back on AddFront but not on AddBack; see the preCount field
// doc for what this means for admission.
//
// A FixedSizeDeque must be constructed with [NewFixedSizeDeque]; the zero
// value is not usable.
type FixedSizeDeque[V any] struct {
	bucket *Bucket[V]

	indexFront atomic.Uint64
	indexBack  atomic.Uint64

	// preCount is an admission counter, incremented before every add attempt
	// regardless of whether the subsequent slot insert succeeds. AddFront
	// rolls it back on a failed insert; AddBack does not. Combined with
	// TryTakeFront/TryTakeBack always decrementing it on success, preCount
	// can drift upward of true occupancy over time. It is a monotonic upper
	// bound on live slots, not an exact occupancy counter, by design.
	preCount atomic.Int64
}

// NewFixedSizeDeque creates a FixedSizeDeque whose capacity is capacity
// rounded up to the next power of two.
func NewFixedSizeDeque[V any](capacity int) *FixedSizeDeque[V] {
	d := &FixedSizeDeque[V]{bucket: NewBucket[V](capacity)}
	d.indexBack.Store(uint64(d.bucket.Capacity() - 1))

	return d
}

// Capacity returns the deque's fixed capacity (a power of two).
func (d *FixedSizeDeque[V]) Capacity() int {
	return d.bucket.Capacity()
}

// Count returns the number of live entries, taken from the underlying
// Bucket's live count. It does not read preCount, so preCount's drift (see
// the field doc) does not affect it.
func (d *FixedSizeDeque[V]) Count() int {
	return d.bucket.Count()
}

func (d *FixedSizeDeque[V]) mask() uint64 {
	return uint64(d.bucket.Capacity() - 1)
}

// AddFront pushes v to the front of the deque. It reports false if the
// deque is at or beyond capacity (checked via preCount before any slot is
// touched) or if the target slot was unexpectedly occupied, in which case
// preCount is rolled back to reflect the failed attempt.
func (d *FixedSizeDeque[V]) AddFront(v V) bool {
	if d.preCount.Add(1) > int64(d.bucket.Capacity()) {
		return false
	}

	pos := d.indexFront.Add(1) - 1
	idx := int(pos & d.mask())

	ok := d.bucket.Insert(idx, v)
	if !ok {
		d.preCount.Add(-1)
	}

	return ok
}

// AddBack pushes v to the back of the deque. It reports false if the deque
// is at or beyond capacity (checked via preCount before any slot is
// touched) or if the target slot was unexpectedly occupied. Unlike
// AddFront, a failed slot insert here does not roll preCount back; this
// asymmetry is preserved intentionally, not a bug to fix.
func (d *FixedSizeDeque[V]) AddBack(v V) bool {
	if d.preCount.Add(1) > int64(d.bucket.Capacity()) {
		return false
	}

	pos := d.indexBack.Add(^uint64(0)) + 1
	idx := int(pos & d.mask())

	return d.bucket.Insert(idx, v)
}

// TryTakeFront removes and returns the item at the front of the deque, or
// reports false if it is empty.
func (d *FixedSizeDeque[V]) TryTakeFront() (V, bool) {
	pos := d.indexFront.Add(^uint64(0))
	idx := int(pos & d.mask())

	v, ok := d.bucket.RemoveAt(idx)
	if ok {
		d.preCount.Add(-1)
	}

	return v, ok
}

// TryTakeBack removes and returns the item at the back of the deque, or
// reports false if it is empty.
func (d *FixedSizeDeque[V]) TryTakeBack() (V, bool) {
	pos := d.indexBack.Add(1)
	idx := int(pos & d.mask())

	v, ok := d.bucket.RemoveAt(idx)
	if ok {
		d.preCount.Add(-1)
	}

	return v, ok
}

// PeekFront returns the item at the front of the deque without removing it.
// It panics with an [InvalidOperationError] if the deque is empty.
func (d *FixedSizeDeque[V]) PeekFront() V {
	idx := int((d.indexFront.Load() - 1) & d.mask())

	v, ok := d.bucket.TryGet(idx)
	if !ok {
		panicEmpty("PeekFront")
	}

	return v
}

// PeekBack returns the item at the back of the deque without removing it.
// It panics with an [InvalidOperationError] if the deque is empty.
//
// PeekBack reads the back counter (indexBack); an earlier revision of this
// logic read the front counter for both peeks, which is wrong whenever
// front and back hold different items.
func (d *FixedSizeDeque[V]) PeekBack() V {
	idx := int((d.indexBack.Load() + 1) & d.mask())

	v, ok := d.bucket.TryGet(idx)
	if !ok {
		panicEmpty("PeekBack")
	}

	return v
}

// TryGet returns the raw slot at absolute index i, bypassing the front/back
// counters entirely. Used for positional inspection, including by
// [Deque.TryGet].
func (d *FixedSizeDeque[V]) TryGet(i int) (V, bool) {
	return d.bucket.TryGet(i)
}

// All iterates over occupied slots in index order. Like [Bucket.All],
// iteration is snapshot-free and gives no FIFO or positional guarantee.
func (d *FixedSizeDeque[V]) All() iter.Seq2[int, V] {
	return d.bucket.All()
}

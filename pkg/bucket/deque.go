package bucket

import (
	"iter"
	"runtime"
	"sync/atomic"
)

// Deque status values. Numeric values are part of the design, not an
// implementation detail: the status word is a single int32 moved by CAS.
const (
	statusStable int32 = iota
	statusResizeRequested
	statusResizing
	statusCopying
	statusCleanup
)

// Deque is an unbounded, lock-free double-ended queue. It wraps a single
// growable [FixedSizeDeque] and, when that ring fills up, cooperatively
// migrates every live entry into a new ring of double the capacity while
// other goroutines continue to add and take. No goroutine ever blocks on a
// lock; a goroutine that arrives mid-resize helps finish it instead of
// waiting for it.
//
// Growth is driven by a single status word moving through five states:
// Stable, ResizeRequested, Resizing, Copying, Cleanup. Every user-facing
// operation follows the same shape: check the status is safe to operate
// against, attempt the op on the current ring, then re-check that nothing
// moved underneath it before trusting the result. An operation that raced a
// resize is retried rather than trusted.
//
// A Deque must be constructed with [NewDeque]; the zero value is not
// usable.
type Deque[V any] struct {
	entriesNew atomic.Pointer[FixedSizeDeque[V]]
	entriesOld atomic.Pointer[FixedSizeDeque[V]]

	status         atomic.Int32
	revision       atomic.Uint64
	copyingThreads atomic.Int32
	count          atomic.Int64
}

// NewDeque creates a Deque with an initial capacity rounded up to the next
// power of two. It grows on demand; capacity is never a hard ceiling.
func NewDeque[V any](capacity int) *Deque[V] {
	d := &Deque[V]{}
	d.entriesNew.Store(NewFixedSizeDeque[V](capacity))

	return d
}

// Capacity returns the current capacity of the active ring. It is a
// snapshot: concurrent growth may change it immediately after this call
// returns.
func (d *Deque[V]) Capacity() int {
	return d.entriesNew.Load().Capacity()
}

// Count returns the number of live entries.
func (d *Deque[V]) Count() int {
	return int(d.count.Load())
}

func (d *Deque[V]) isOperationSafe() bool {
	return d.status.Load() == statusStable && d.copyingThreads.Load() == 0
}

func (d *Deque[V]) confirmed(rev uint64, fd *FixedSizeDeque[V]) bool {
	return d.revision.Load() == rev &&
		d.entriesNew.Load() == fd &&
		d.status.Load() == statusStable &&
		d.copyingThreads.Load() == 0
}

// requestResize promotes Stable to ResizeRequested. It is a no-op if some
// other goroutine already made the same request or a resize is already
// under way.
func (d *Deque[V]) requestResize() {
	if d.status.CompareAndSwap(statusStable, statusResizeRequested) {
		d.revision.Add(1)
	}
}

// cooperativeGrow performs one step of the resize protocol appropriate to
// the current status, then returns. Callers loop: the overall resize
// completes across many calls from possibly many goroutines, not in one
// call on one goroutine.
func (d *Deque[V]) cooperativeGrow() {
	switch d.status.Load() {
	case statusResizeRequested:
		if d.status.CompareAndSwap(statusResizeRequested, statusResizing) {
			d.growWinner()
		}
	case statusResizing:
		runtime.Gosched()
	case statusCopying:
		d.copyStep()
	case statusCleanup:
		d.cleanupStep()
	}
}

// growWinner is run by the single goroutine that wins the Resizing CAS. It
// allocates the doubled ring and publishes it, then hands off to Copying.
//
// LockOSThread pins this goroutine to its OS thread for the duration of the
// allocate-and-swap so the Go scheduler cannot preempt it mid-swap onto a
// thread shared with a spinning helper; it is restored on every exit path,
// the idiomatic Go stand-in for a priority boost that is released even on
// failure.
func (d *Deque[V]) growWinner() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	old := d.entriesNew.Load()
	grown := NewFixedSizeDeque[V](old.Capacity() * 2)

	d.entriesNew.Store(grown)
	d.entriesOld.Store(old)

	d.status.CompareAndSwap(statusResizing, statusCopying)
	d.revision.Add(1)
}

// copyStep drains whatever remains of entriesOld into entriesNew. Any
// number of goroutines may run this concurrently; tryTakeFront on the old
// ring is itself safe for concurrent callers, so helpers simply race to
// drain it empty. Whichever helper observes it empty attempts the 3->4
// transition; the rest are no-ops.
func (d *Deque[V]) copyStep() {
	d.copyingThreads.Add(1)
	defer d.copyingThreads.Add(-1)

	d.revision.Add(1)

	old := d.entriesOld.Load()
	newBuf := d.entriesNew.Load()

	if old != nil {
		for {
			v, ok := old.TryTakeFront()
			if !ok {
				break
			}

			newBuf.AddFront(v)
		}
	}

	d.status.CompareAndSwap(statusCopying, statusCleanup)
}

// cleanupStep drops the reference to the drained old ring so the garbage
// collector can reclaim it, then returns to Stable. The 4->2->0 detour
// serializes cleanup to a single winner without introducing a dedicated
// sixth status.
func (d *Deque[V]) cleanupStep() {
	if d.status.CompareAndSwap(statusCleanup, statusResizing) {
		d.entriesOld.Store(nil)
		d.status.CompareAndSwap(statusResizing, statusStable)
	}
}

// addGeneric implements the common retry skeleton for AddFront and AddBack.
func (d *Deque[V]) addGeneric(v V, op func(*FixedSizeDeque[V], V) bool) {
	for {
		if !d.isOperationSafe() {
			d.cooperativeGrow()

			continue
		}

		rev := d.revision.Load()
		fd := d.entriesNew.Load()

		ok := op(fd, v)

		switch {
		case ok && d.confirmed(rev, fd):
			d.count.Add(1)

			return
		case ok:
			// Unconfirmed success: a resize started, or entriesNew moved,
			// between the attempt and this check. fd may be about to
			// become entriesOld and get drained, or may already have been
			// drained past this insert. Either way the insert is not
			// trusted; help the resize along and retry the whole
			// operation against whatever ring is current afterward.
			d.cooperativeGrow()
		default:
			// Failure, confirmed or not: the ring reported full, or raced
			// a resize badly enough that the attempt can't be trusted
			// either way. Ask for growth and retry.
			d.requestResize()
			d.cooperativeGrow()
		}
	}
}

// takeGeneric implements the common retry skeleton for TryTakeFront and
// TryTakeBack. Unlike addGeneric, a successful op is never discarded: op is
// a physical RemoveAt on fd, so once it reports true the item is already
// gone from fd and would be lost for good if the result were thrown away
// on an unconfirmed revision. Only a failed ("empty") result is retried
// when unconfirmed.
func (d *Deque[V]) takeGeneric(op func(*FixedSizeDeque[V]) (V, bool)) (V, bool) {
	for {
		if !d.isOperationSafe() {
			d.cooperativeGrow()

			continue
		}

		rev := d.revision.Load()
		fd := d.entriesNew.Load()

		v, ok := op(fd)

		if ok {
			// A physical RemoveAt already happened: the item is out of fd
			// and cannot be put back or re-observed by copyStep, confirmed
			// or not. Returning it here is the only way it is not lost, so
			// unlike addGeneric's symmetric case, an unconfirmed success is
			// still trusted. A concurrent resize is still helped along, but
			// only after the result is secured.
			d.count.Add(-1)

			if !d.confirmed(rev, fd) {
				d.cooperativeGrow()
			}

			return v, true
		}

		if !d.confirmed(rev, fd) {
			// Unconfirmed failure: a resize moved underneath this attempt
			// and the "empty" result can't be trusted either way. Help it
			// along and retry against whatever ring is current afterward.
			d.cooperativeGrow()

			continue
		}

		return v, false
	}
}

// AddFront pushes v to the front of the deque. It never fails: if the
// active ring is full, Deque grows it and retries.
func (d *Deque[V]) AddFront(v V) {
	d.addGeneric(v, (*FixedSizeDeque[V]).AddFront)
}

// AddBack pushes v to the back of the deque. It never fails: if the active
// ring is full, Deque grows it and retries.
func (d *Deque[V]) AddBack(v V) {
	d.addGeneric(v, (*FixedSizeDeque[V]).AddBack)
}

// TryTakeFront removes and returns the item at the front of the deque, or
// reports false if it is empty.
func (d *Deque[V]) TryTakeFront() (V, bool) {
	return d.takeGeneric((*FixedSizeDeque[V]).TryTakeFront)
}

// TryTakeBack removes and returns the item at the back of the deque, or
// reports false if it is empty.
func (d *Deque[V]) TryTakeBack() (V, bool) {
	return d.takeGeneric((*FixedSizeDeque[V]).TryTakeBack)
}

// PeekFront returns the item at the front of the deque without removing it.
// It panics with an [InvalidOperationError] if the deque is empty.
func (d *Deque[V]) PeekFront() V {
	return d.entriesNew.Load().PeekFront()
}

// PeekBack returns the item at the back of the deque without removing it.
// It panics with an [InvalidOperationError] if the deque is empty.
func (d *Deque[V]) PeekBack() V {
	return d.entriesNew.Load().PeekBack()
}

// TryGet returns the raw slot at absolute index i of the currently active
// ring. Indices are not stable across a resize.
func (d *Deque[V]) TryGet(i int) (V, bool) {
	return d.entriesNew.Load().TryGet(i)
}

// Clear removes every entry from the deque. It is a best-effort bulk drain,
// not a single atomic step: a concurrent Add racing Clear may or may not
// see its entry survive.
func (d *Deque[V]) Clear() {
	fd := d.entriesNew.Load()

	for {
		_, ok := fd.TryTakeFront()
		if !ok {
			return
		}

		d.count.Add(-1)
	}
}

// All iterates over the occupied slots of the currently active ring in
// index order. Like [Bucket.All], iteration is snapshot-free; it gives no
// guarantee against a concurrent resize swapping the ring out from under
// it.
func (d *Deque[V]) All() iter.Seq2[int, V] {
	return d.entriesNew.Load().All()
}

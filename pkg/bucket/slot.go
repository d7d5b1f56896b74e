package bucket

import "sync/atomic"

// Slot is a single logical cell holding either "empty" or a value. Every
// transition is a single linearization point: the Empty/Occupied bit and the
// value change together from any other goroutine's point of view, because
// both are encoded in one pointer.
//
// A Slot does not remember past occupants after a removal completes; the
// pointer to the removed value is simply dropped.
//
// The zero value is an empty Slot, ready to use.
type Slot[V any] struct {
	v atomic.Pointer[V]
}

// Insert succeeds iff the Slot was Empty, transitioning it to Occupied(v).
// It is a single compare-and-swap: on failure (already occupied) it does not
// retry, matching the wait-free, bounded-steps contract.
func (s *Slot[V]) Insert(v V) bool {
	return s.v.CompareAndSwap(nil, &v)
}

// InsertPrev is Insert, additionally reporting the value that occupied the
// Slot if insertion failed because it was already Occupied.
func (s *Slot[V]) InsertPrev(v V) (inserted bool, prev V, hadPrev bool) {
	if s.v.CompareAndSwap(nil, &v) {
		return true, prev, false
	}

	cur := s.v.Load()
	if cur == nil {
		// Raced with a concurrent removal between the failed CAS and this
		// load; there is no previous value to report. Not a retry of the
		// insert itself, just a best-effort read for the caller's benefit.
		return false, prev, false
	}

	return false, *cur, true
}

// TryGet returns the current value if Occupied, else reports Empty. It
// never mutates the Slot.
func (s *Slot[V]) TryGet() (V, bool) {
	cur := s.v.Load()
	if cur == nil {
		var zero V

		return zero, false
	}

	return *cur, true
}

// Set unconditionally replaces the Slot's contents and reports whether it
// was Empty beforehand (wasNew).
func (s *Slot[V]) Set(v V) (wasEmpty bool) {
	old := s.v.Swap(&v)

	return old == nil
}

// SetIf replaces the Slot's contents iff it is Empty or Occupied by a value
// for which pred reports true. It reports whether the replacement happened,
// and whether the Slot was Empty beforehand. A single CAS attempt: on a
// race that invalidates the read, it reports failure rather than retrying.
func (s *Slot[V]) SetIf(v V, pred func(V) bool) (ok bool, wasEmpty bool) {
	cur := s.v.Load()
	if cur != nil && !pred(*cur) {
		return false, false
	}

	if s.v.CompareAndSwap(cur, &v) {
		return true, cur == nil
	}

	return false, false
}

// RemoveAt succeeds iff the Slot was Occupied, returning the removed value
// and transitioning it to Empty. A single CAS attempt: if the Slot's
// contents changed between the read and the CAS, the removal is a no-op and
// RemoveAt reports failure rather than retrying.
func (s *Slot[V]) RemoveAt() (V, bool) {
	cur := s.v.Load()
	if cur == nil {
		var zero V

		return zero, false
	}

	if s.v.CompareAndSwap(cur, nil) {
		return *cur, true
	}

	var zero V

	return zero, false
}

// RemoveIf succeeds iff the Slot is Occupied by a value for which pred
// reports true, returning the removed value and transitioning it to Empty.
// Like RemoveAt, this is a single CAS attempt with no internal retry: a
// concurrent change between the read and the CAS is reported as failure.
func (s *Slot[V]) RemoveIf(pred func(V) bool) (V, bool) {
	cur := s.v.Load()
	if cur == nil || !pred(*cur) {
		var zero V

		return zero, false
	}

	if s.v.CompareAndSwap(cur, nil) {
		return *cur, true
	}

	var zero V

	return zero, false
}

// Package bucket provides wait-free and lock-free in-memory container
// primitives for multi-threaded producer/consumer workloads: a fixed-capacity
// slot array ([Bucket]), a wait-free open-addressed hash table built over it
// ([FixedSizeHashBucket]), a wait-free fixed-capacity ring deque
// ([FixedSizeDeque]), and an unbounded lock-free deque ([Deque]) that grows
// by cooperatively migrating entries between two FixedSizeDeques.
//
// # Basic Usage
//
//	b := bucket.NewBucket[string](16)
//	b.Insert(0, "hello")
//	v, ok := b.TryGet(0)
//
//	h := bucket.NewFixedSizeHashBucket[int, string](16, func(k int) uint64 { return uint64(k) })
//	idx, collision := h.Add(42, "answer", 0)
//
//	d := bucket.NewDeque[int](4)
//	d.AddBack(1)
//	d.AddBack(2)
//	v, ok := d.TryTakeFront()
//
// # Concurrency
//
// Every operation documented as wait-free or lock-free is safe for
// concurrent use by multiple goroutines without external locking. None of
// these types block: every method either makes progress or returns a
// definite negative result ("full", "empty", "not found", "collision").
// There is no suspend/wait API anywhere in this package.
//
// # Error Handling
//
// Expected negative outcomes (full, empty, missing, collision) are reported
// by boolean or sentinel-int (-1) return values, never by error. The single
// exception is [FixedSizeDeque.PeekFront]/[FixedSizeDeque.PeekBack] and their
// [Deque] equivalents, which panic with an [InvalidOperationError] when
// called on an empty deque — a precondition violation, not an expected
// outcome.
//
// # Non-goals
//
// This package does not provide stable iteration snapshots, detect
// concurrent modification during enumeration, shrink capacity, guarantee
// FIFO ordering across a [Deque] resize, or persist any state to disk or
// over the network.
package bucket

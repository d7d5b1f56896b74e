package bucket_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theraot/hashbucket/pkg/bucket"
)

// Test_FixedSizeDeque_Concurrent_AddBack_Sums_To_Capacity pins SPEC_FULL §8
// scenario 5: capacity 1024, 8 goroutines x 512 AddBack each. Exactly 1024
// succeed regardless of scheduling; the 8*512-1024 = 3072 remaining calls
// see a full ring and report false.
func Test_FixedSizeDeque_Concurrent_AddBack_Sums_To_Capacity(t *testing.T) {
	t.Parallel()

	const (
		capacity = 1024
		goros    = 8
		perGoro  = 512
	)

	d := bucket.NewFixedSizeDeque[int](capacity)

	done := make(chan int, goros)

	for g := 0; g < goros; g++ {
		go func() {
			successes := 0

			for i := 0; i < perGoro; i++ {
				if d.AddBack(i) {
					successes++
				}
			}

			done <- successes
		}()
	}

	total := 0
	for g := 0; g < goros; g++ {
		total += <-done
	}

	assert.Equal(t, capacity, total)

	taken := 0

	for {
		_, ok := d.TryTakeBack()
		if !ok {
			break
		}

		taken++
	}

	assert.Equal(t, capacity, taken)

	_, ok := d.TryTakeBack()
	assert.False(t, ok)
}

// Test_FixedSizeDeque_Concurrent_AddFront_And_AddBack_Never_Exceed_Capacity
// mixes pushers at both ends and asserts the combined admission gate never
// lets more than capacity items live at once, while also never losing a
// successfully admitted item.
func Test_FixedSizeDeque_Concurrent_AddFront_And_AddBack_Never_Exceed_Capacity(t *testing.T) {
	t.Parallel()

	const (
		capacity = 512
		goros    = 8
		perGoro  = 256
	)

	d := bucket.NewFixedSizeDeque[int](capacity)

	done := make(chan int, goros*2)

	for g := 0; g < goros; g++ {
		go func() {
			successes := 0

			for i := 0; i < perGoro; i++ {
				if d.AddFront(i) {
					successes++
				}
			}

			done <- successes
		}()

		go func() {
			successes := 0

			for i := 0; i < perGoro; i++ {
				if d.AddBack(i) {
					successes++
				}
			}

			done <- successes
		}()
	}

	total := 0
	for g := 0; g < goros*2; g++ {
		total += <-done
	}

	assert.LessOrEqual(t, total, capacity)

	taken := 0

	for {
		_, ok := d.TryTakeFront()
		if !ok {
			break
		}

		taken++
	}

	assert.Equal(t, total, taken, "every item admitted by Add must be retrievable by Take")
}

package bucket_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theraot/hashbucket/pkg/bucket"
)

func Test_FixedSizeDeque_Scenario_From_Spec_Capacity_2(t *testing.T) {
	t.Parallel()

	d := bucket.NewFixedSizeDeque[string](2)

	assert.True(t, d.AddFront("x"))
	assert.True(t, d.AddBack("y"))
	assert.False(t, d.AddFront("z"), "preCount=3 > capacity 2")

	v, ok := d.TryTakeFront()
	require.True(t, ok)
	assert.Equal(t, "x", v)

	v, ok = d.TryTakeBack()
	require.True(t, ok)
	assert.Equal(t, "y", v)

	_, ok = d.TryTakeFront()
	assert.False(t, ok)
}

func Test_FixedSizeDeque_PeekFront_And_PeekBack(t *testing.T) {
	t.Parallel()

	d := bucket.NewFixedSizeDeque[int](4)

	require.True(t, d.AddFront(1))
	require.True(t, d.AddBack(2))
	require.True(t, d.AddFront(3))

	assert.Equal(t, 3, d.PeekFront(), "PeekFront must reflect the most recently pushed front item")
	assert.Equal(t, 2, d.PeekBack(), "PeekBack must reflect the most recently pushed back item, not the front")
}

func Test_FixedSizeDeque_PeekFront_Panics_When_Empty(t *testing.T) {
	t.Parallel()

	d := bucket.NewFixedSizeDeque[int](2)

	assert.Panics(t, func() { d.PeekFront() })
}

func Test_FixedSizeDeque_PeekBack_Panics_When_Empty(t *testing.T) {
	t.Parallel()

	d := bucket.NewFixedSizeDeque[int](2)

	assert.Panics(t, func() { d.PeekBack() })
}

func Test_FixedSizeDeque_PeekFront_Panics_With_InvalidOperationError(t *testing.T) {
	t.Parallel()

	d := bucket.NewFixedSizeDeque[int](2)

	defer func() {
		r := recover()
		require.NotNil(t, r)

		_, ok := r.(*bucket.InvalidOperationError)
		assert.True(t, ok, "panic value should be an *InvalidOperationError, got %T", r)
	}()

	d.PeekFront()
}

func Test_FixedSizeDeque_AddFront_Behaves_As_A_Stack_At_The_Front_End(t *testing.T) {
	t.Parallel()

	d := bucket.NewFixedSizeDeque[int](4)

	require.True(t, d.AddFront(1))
	require.True(t, d.AddFront(2))

	v, ok := d.TryTakeFront()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	require.True(t, d.AddFront(3))

	v, ok = d.TryTakeFront()
	require.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = d.TryTakeFront()
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func Test_FixedSizeDeque_TryGet_Is_Raw_Slot_Access(t *testing.T) {
	t.Parallel()

	d := bucket.NewFixedSizeDeque[string](4)

	require.True(t, d.AddBack("y"))

	v, ok := d.TryGet(3)
	require.True(t, ok)
	assert.Equal(t, "y", v)
}

func Test_FixedSizeDeque_All_Iterates_Live_Entries(t *testing.T) {
	t.Parallel()

	d := bucket.NewFixedSizeDeque[int](4)

	require.True(t, d.AddFront(1))
	require.True(t, d.AddBack(2))

	count := 0
	for range d.All() {
		count++
	}

	assert.Equal(t, 2, count)
	assert.Equal(t, 2, d.Count())
}

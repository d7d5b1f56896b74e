package bucket_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theraot/hashbucket/pkg/bucket"
)

func Test_Slot_Insert_Succeeds_When_Empty(t *testing.T) {
	t.Parallel()

	var s bucket.Slot[string]

	ok := s.Insert("a")
	require.True(t, ok, "Insert should succeed on an empty slot")

	v, ok := s.TryGet()
	require.True(t, ok)
	assert.Equal(t, "a", v)
}

func Test_Slot_Insert_Fails_When_Occupied(t *testing.T) {
	t.Parallel()

	var s bucket.Slot[string]

	require.True(t, s.Insert("a"))
	ok := s.Insert("b")
	assert.False(t, ok, "Insert should fail on an occupied slot")

	v, _ := s.TryGet()
	assert.Equal(t, "a", v, "occupied slot should retain the first value")
}

func Test_Slot_InsertPrev_Reports_Previous_Occupant(t *testing.T) {
	t.Parallel()

	var s bucket.Slot[string]

	require.True(t, s.Insert("a"))

	inserted, prev, hadPrev := s.InsertPrev("b")
	assert.False(t, inserted)
	assert.True(t, hadPrev)
	assert.Equal(t, "a", prev)
}

func Test_Slot_InsertPrev_Succeeds_When_Empty(t *testing.T) {
	t.Parallel()

	var s bucket.Slot[int]

	inserted, _, hadPrev := s.InsertPrev(7)
	assert.True(t, inserted)
	assert.False(t, hadPrev)
}

func Test_Slot_TryGet_Reports_Empty_On_Zero_Value(t *testing.T) {
	t.Parallel()

	var s bucket.Slot[int]

	_, ok := s.TryGet()
	assert.False(t, ok)
}

func Test_Slot_Set_Reports_WasEmpty(t *testing.T) {
	t.Parallel()

	var s bucket.Slot[int]

	wasEmpty := s.Set(1)
	assert.True(t, wasEmpty)

	wasEmpty = s.Set(2)
	assert.False(t, wasEmpty)

	v, ok := s.TryGet()
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func Test_Slot_SetIf_Replaces_Only_When_Predicate_Matches(t *testing.T) {
	t.Parallel()

	var s bucket.Slot[int]

	require.True(t, s.Insert(10))

	ok, wasEmpty := s.SetIf(20, func(v int) bool { return v == 99 })
	assert.False(t, ok, "SetIf should not replace when predicate rejects current value")
	assert.False(t, wasEmpty)

	ok, wasEmpty = s.SetIf(20, func(v int) bool { return v == 10 })
	assert.True(t, ok)
	assert.False(t, wasEmpty)

	v, _ := s.TryGet()
	assert.Equal(t, 20, v)
}

func Test_Slot_SetIf_Replaces_Empty_Unconditionally(t *testing.T) {
	t.Parallel()

	var s bucket.Slot[int]

	ok, wasEmpty := s.SetIf(5, func(int) bool { return false })
	assert.True(t, ok)
	assert.True(t, wasEmpty)
}

func Test_Slot_RemoveAt_Succeeds_When_Occupied(t *testing.T) {
	t.Parallel()

	var s bucket.Slot[int]

	require.True(t, s.Insert(42))

	v, ok := s.RemoveAt()
	require.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = s.TryGet()
	assert.False(t, ok, "slot should be empty after RemoveAt")
}

func Test_Slot_RemoveAt_Fails_When_Empty(t *testing.T) {
	t.Parallel()

	var s bucket.Slot[int]

	_, ok := s.RemoveAt()
	assert.False(t, ok)
}

func Test_Slot_RemoveIf_Requires_Predicate_Match(t *testing.T) {
	t.Parallel()

	var s bucket.Slot[string]

	require.True(t, s.Insert("keep"))

	_, ok := s.RemoveIf(func(v string) bool { return v == "other" })
	assert.False(t, ok)

	v, ok := s.RemoveIf(func(v string) bool { return v == "keep" })
	require.True(t, ok)
	assert.Equal(t, "keep", v)
}

package openset_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theraot/hashbucket/pkg/bucket/openset"
)

func identityHash(k int) uint64 {
	return uint64(k)
}

func Test_Set_Add_Reports_New_Versus_Duplicate(t *testing.T) {
	t.Parallel()

	s := openset.New[int](8, identityHash)

	added, err := s.Add(1)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Add(1)
	require.NoError(t, err)
	assert.False(t, added, "re-adding the same key should report false, not an error")

	assert.Equal(t, 1, s.Count())
}

func Test_Set_Add_Probes_Past_Collisions(t *testing.T) {
	t.Parallel()

	s := openset.New[int](4, identityHash)

	_, err := s.Add(0)
	require.NoError(t, err)

	// 4 & 3 == 0 & 3: same home slot as 0, forces a probe to offset 1.
	added, err := s.Add(4)
	require.NoError(t, err)
	assert.True(t, added)

	assert.True(t, s.Contains(0))
	assert.True(t, s.Contains(4))
	assert.Equal(t, 2, s.Count())
}

func Test_Set_Add_Returns_ErrFull_When_Table_Exhausted(t *testing.T) {
	t.Parallel()

	s := openset.New[int](2, identityHash)

	_, err := s.Add(0)
	require.NoError(t, err)

	_, err = s.Add(1)
	require.NoError(t, err)

	_, err = s.Add(2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, openset.ErrFull))
}

func Test_Set_Remove_Deletes_Present_Key(t *testing.T) {
	t.Parallel()

	s := openset.New[int](8, identityHash)

	_, err := s.Add(5)
	require.NoError(t, err)

	removed := s.Remove(5)
	assert.True(t, removed)
	assert.False(t, s.Contains(5))

	removed = s.Remove(5)
	assert.False(t, removed, "removing an absent key should report false")
}

func Test_Set_Keys_Iterates_All_Added_Elements(t *testing.T) {
	t.Parallel()

	s := openset.New[int](16, identityHash)

	for _, k := range []int{1, 2, 3} {
		_, err := s.Add(k)
		require.NoError(t, err)
	}

	found := make(map[int]bool)
	for k := range s.Keys() {
		found[k] = true
	}

	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, found)
}

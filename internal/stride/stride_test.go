package stride

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCounts(t *testing.T) {
	t.Run("prefix sums", func(t *testing.T) {
		tbl, err := FromCounts([]int{2, 1})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 2, 3}, tbl.Offsets())
		assert.Equal(t, 2, tbl.Len())
		assert.Equal(t, 3, tbl.Total())
		assert.Equal(t, 2, tbl.Count(0))
		assert.Equal(t, 1, tbl.Count(1))
	})

	t.Run("empty", func(t *testing.T) {
		tbl, err := FromCounts(nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0}, tbl.Offsets())
		assert.Equal(t, 0, tbl.Len())
		assert.Equal(t, 0, tbl.Total())
	})

	t.Run("negative count", func(t *testing.T) {
		_, err := FromCounts([]int{1, -1})
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestFromOffsets(t *testing.T) {
	tbl, err := FromOffsets([]int{0, 0, 4, 4, 7})
	require.NoError(t, err)
	assert.Equal(t, 4, tbl.Len())
	assert.Equal(t, 7, tbl.Total())

	_, err = FromOffsets(nil)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = FromOffsets([]int{1, 2})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = FromOffsets([]int{0, 3, 2})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestFromOffsetsCopies(t *testing.T) {
	in := []int{0, 1, 2}
	tbl, err := FromOffsets(in)
	require.NoError(t, err)
	in[1] = 99
	assert.Equal(t, []int{0, 1, 2}, tbl.Offsets())
}

func TestLocate(t *testing.T) {
	// Structures 0 and 2 are empty.
	tbl, err := FromCounts([]int{0, 3, 0, 2})
	require.NoError(t, err)

	cases := []struct {
		ordinal int
		want    int
	}{
		{0, 1},
		{2, 1},
		{3, 3}, // boundary belongs to the structure starting there
		{4, 3},
	}
	for _, c := range cases {
		got, ok := tbl.Locate(c.ordinal)
		require.True(t, ok, "ordinal %d", c.ordinal)
		assert.Equal(t, c.want, got, "ordinal %d", c.ordinal)
		lo, hi := tbl.Bounds(got)
		assert.True(t, lo <= c.ordinal && c.ordinal < hi)
	}

	_, ok := tbl.Locate(5)
	assert.False(t, ok)
	_, ok = tbl.Locate(-1)
	assert.False(t, ok)
}

func TestLocateZeroValue(t *testing.T) {
	var tbl Table
	assert.Equal(t, 0, tbl.Len())
	_, ok := tbl.Locate(0)
	assert.False(t, ok)
}

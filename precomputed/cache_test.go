package precomputed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecscan/core"
)

func TestCache(t *testing.T) {
	c := NewCache()
	_, _, ok := c.Bounds()
	assert.False(t, ok)
	assert.Equal(t, 0, c.Relation().Len())

	require.NoError(t, c.Put(3, 1, 0.5))
	require.NoError(t, c.Put(1, 2, 1.5))
	require.NoError(t, c.Put(2, 2, 0))

	d, ok := c.Get(1, 3)
	require.True(t, ok)
	assert.Equal(t, 0.5, d)

	d, ok = c.Get(7, 7)
	assert.True(t, ok)
	assert.Equal(t, 0.0, d)

	_, ok = c.Get(2, 3)
	assert.False(t, ok)

	lo, hi, ok := c.Bounds()
	require.True(t, ok)
	assert.Equal(t, core.ID(1), lo)
	assert.Equal(t, core.ID(3), hi)
	assert.Equal(t, []core.ID{1, 2, 3}, c.Relation().IDs())
	assert.Equal(t, 3, c.Len())

	assert.ErrorIs(t, c.Validate(), core.ErrDataFormat)
	require.NoError(t, c.Put(2, 3, 2))
	assert.NoError(t, c.Validate())

	t.Run("Replace", func(t *testing.T) {
		require.NoError(t, c.Put(1, 3, 0.25))
		d, _ := c.Get(3, 1)
		assert.Equal(t, 0.25, d)
		assert.Equal(t, 4, c.Len())
	})

	t.Run("Pairs", func(t *testing.T) {
		assert.Equal(t, []Pair{
			{A: 1, B: 2, Distance: 1.5},
			{A: 1, B: 3, Distance: 0.25},
			{A: 2, B: 2, Distance: 0},
			{A: 2, B: 3, Distance: 2},
		}, c.Pairs())
	})
}

func TestCache_Put_Invalid(t *testing.T) {
	c := NewCache()

	tests := []struct {
		name string
		a, b core.ID
		d    float64
	}{
		{"Negative", 0, 1, -1},
		{"NaN", 0, 1, math.NaN()},
		{"SelfNonZero", 4, 4, 0.1},
		{"Reserved", core.NoID, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, c.Put(tt.a, tt.b, tt.d), core.ErrInvalidArgument)
		})
	}
	assert.Equal(t, 0, c.Len())
}

func TestCache_Distance(t *testing.T) {
	c := NewCache()
	require.NoError(t, c.Put(0, 1, 4))

	assert.Equal(t, "precomputed", c.Name())

	d, err := c.Distance(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 4.0, d)

	_, err = c.Distance(0, 9)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

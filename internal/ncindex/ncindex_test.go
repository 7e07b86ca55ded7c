package ncindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexSetGetDeleteOrder(t *testing.T) {
	idx := New[int](0)
	idx.Set("lat", 0)
	idx.Set("lon", 1)
	idx.Set("time", 2)

	v, ok := idx.Get("lon")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	assert.Equal(t, []string{"lat", "lon", "time"}, idx.Names())

	idx.Delete("lon")
	_, ok = idx.Get("lon")
	assert.False(t, ok)
	assert.Equal(t, []string{"lat", "time"}, idx.Names())
	assert.Equal(t, 2, idx.Len())
}

func TestIndexReset(t *testing.T) {
	idx := New[int](0)
	idx.Set("a", 1)
	idx.Set("b", 2)

	idx.Reset()

	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Names())
	_, ok := idx.Get("a")
	assert.False(t, ok)
}

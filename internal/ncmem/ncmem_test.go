package ncmem

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBackingRoundTrip(t *testing.T) {
	data := []byte("hello netcdf")
	b, err := NewBacking("test", data)
	require.NoError(t, err)
	defer b.Close()

	got, err := os.ReadFile(b.Path())
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestNewBackingEmpty(t *testing.T) {
	b, err := NewBacking("empty", nil)
	require.NoError(t, err)
	defer b.Close()

	got, err := os.ReadFile(b.Path())
	require.NoError(t, err)
	require.Empty(t, got)
}

package ncstr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeUTF8PassesValidThrough(t *testing.T) {
	assert.Equal(t, "hello", SanitizeUTF8([]byte("hello")))
}

func TestSanitizeUTF8ReplacesInvalidBytes(t *testing.T) {
	bad := []byte{'a', 0xff, 'b'}
	got := SanitizeUTF8(bad)
	assert.Equal(t, "a�b", got)
}

func TestLegacyRoundTrip(t *testing.T) {
	s := "café"
	enc, err := EncodeLegacy(s)
	require.NoError(t, err)
	dec, err := DecodeLegacy(enc)
	require.NoError(t, err)
	assert.Equal(t, s, dec)
}

func TestStripBOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)
	got, err := StripBOM(withBOM)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

package nctypeinstall

import (
	"testing"

	"github.com/ncgo/netcdf/pkg/nctypes"
	"github.com/stretchr/testify/assert"
)

func TestAtomicWireIDRoundTrip(t *testing.T) {
	for _, at := range []nctypes.AtomicType{
		nctypes.Byte, nctypes.UByte, nctypes.Short, nctypes.UShort,
		nctypes.Int, nctypes.UInt, nctypes.Int64, nctypes.UInt64,
		nctypes.Float, nctypes.Double, nctypes.Char, nctypes.String,
	} {
		id := AtomicWireID(at)
		got, ok := WireToAtomic(id)
		assert.True(t, ok)
		assert.Equal(t, at, got)
	}
}

func TestEnumValueEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		base nctypes.AtomicType
		v    int64
	}{
		{nctypes.Byte, -5},
		{nctypes.UByte, 200},
		{nctypes.Short, -1000},
		{nctypes.UShort, 40000},
		{nctypes.Int, -70000},
		{nctypes.UInt, 3000000000},
		{nctypes.Int64, -9000000000},
		{nctypes.UInt64, 9000000000},
	}
	for _, c := range cases {
		buf := encodeEnumValue(c.base, c.v)
		assert.Equal(t, c.base.Size(), len(buf))
		assert.Equal(t, c.v, decodeEnumValue(c.base, buf))
	}
}

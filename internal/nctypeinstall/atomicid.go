// Package nctypeinstall implements the by-name lookup/install
// flow for the user-defined type system: atomic types map directly onto the
// C library's built-in type ids, while opaque/enum/vlen/compound types are
// searched for by name in a target group and, when recursive is set,
// installed on demand (recursing into a vlen's element type or a compound's
// field types first).
package nctypeinstall

import "github.com/ncgo/netcdf/pkg/nctypes"

// atomicToWire mirrors the builtin NC_* type id constants so the mapping
// itself stays testable without a linked C library.
var atomicToWire = map[nctypes.AtomicType]int32{
	nctypes.Byte:   1,
	nctypes.Char:   2,
	nctypes.Short:  3,
	nctypes.Int:    4,
	nctypes.Float:  5,
	nctypes.Double: 6,
	nctypes.UByte:  7,
	nctypes.UShort: 8,
	nctypes.UInt:   9,
	nctypes.Int64:  10,
	nctypes.UInt64: 11,
	nctypes.String: 12,
}

var wireToAtomic = func() map[int32]nctypes.AtomicType {
	out := make(map[int32]nctypes.AtomicType, len(atomicToWire))
	for k, v := range atomicToWire {
		out[v] = k
	}
	return out
}()

const (
	wireCompound int32 = 100
	wireVlen     int32 = 101
	wireEnum     int32 = 102
	wireOpaque   int32 = 103
)

// AtomicWireID returns the builtin type id for an atomic type.
func AtomicWireID(t nctypes.AtomicType) int32 { return atomicToWire[t] }

// WireToAtomic reverses AtomicWireID, ok is false for non-atomic ids.
func WireToAtomic(id int32) (nctypes.AtomicType, bool) {
	t, ok := wireToAtomic[id]
	return t, ok
}

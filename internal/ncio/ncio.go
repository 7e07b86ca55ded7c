// Package ncio implements the typed hyperslab I/O dispatch: a
// monomorphic function per atomic host type, accepting an implicit numeric
// conversion against any numeric on-disk variable type and otherwise
// requiring the on-disk type to match exactly.
package ncio

import (
	"unsafe"

	"github.com/ncgo/netcdf/bindings"
	"github.com/ncgo/netcdf/internal/nctypeinstall"
	"github.com/ncgo/netcdf/pkg/nctypes"
)

// Request addresses one hyperslab: the resolved (start, count, stride)
// triples from pkg/extent, already canonicalized and bounds-checked.
type Request struct {
	Ncid, Varid bindings.ID
	Start       []uint64
	Count       []uint64
	Stride      []int64
}

func elemCount(count []uint64) int {
	n := 1
	for _, c := range count {
		n *= int(c)
	}
	return n
}

// checkNumericCompatible implements the compatibility check before dispatch: a
// numeric host type may be written/read against any numeric on-disk type
// (the C library performs the actual conversion and range-checks); anything
// else requires the on-disk descriptor to match the host type exactly.
func checkNumericCompatible(varType *nctypes.TypeDescriptor, host nctypes.AtomicType) error {
	if varType.IsAtomicNumeric() && host.IsNumeric() {
		return nil
	}
	if varType.Kind == nctypes.KindAtomic && varType.Atomic == host {
		return nil
	}
	return &nctypes.Error{
		Kind: nctypes.ErrKindTypeMismatch,
		Msg:  "host buffer type " + host.String() + " is not compatible with on-disk type " + varType.String(),
		Err:  nctypes.ErrTypeMismatch,
	}
}

func atomicTypeOf[T nctypes.Numeric]() nctypes.AtomicType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return nctypes.Byte
	case uint8:
		return nctypes.UByte
	case int16:
		return nctypes.Short
	case uint16:
		return nctypes.UShort
	case int32:
		return nctypes.Int
	case uint32:
		return nctypes.UInt
	case int64:
		return nctypes.Int64
	case uint64:
		return nctypes.UInt64
	case float32:
		return nctypes.Float
	case float64:
		return nctypes.Double
	default:
		panic("ncio: unreachable atomic type")
	}
}

func wireID(t nctypes.AtomicType) bindings.ID {
	return bindings.ID(nctypeinstall.AtomicWireID(t))
}

// AtomicTypeOf exposes atomicTypeOf to callers outside this package that
// need to validate a host type against a TypeDescriptor before dispatching
// (e.g. fill-value mutators, which compare rather than convert).
func AtomicTypeOf[T nctypes.Numeric]() nctypes.AtomicType { return atomicTypeOf[T]() }

// OneToBytes encodes a single host value in its native on-disk byte layout,
// for callers that hand raw bytes to a C entry point expecting one element
// (nc_def_var_fill's fill value argument).
func OneToBytes[T nctypes.Numeric](v T) []byte {
	return append([]byte(nil), numericBytes([]T{v})...)
}

// BytesToOne decodes a single element previously encoded with OneToBytes or
// returned by an nc_inq_var_fill-style call.
func BytesToOne[T nctypes.Numeric](buf []byte) T {
	out := bytesToNumeric[T](buf)
	if len(out) == 0 {
		var zero T
		return zero
	}
	return out[0]
}

// GetInto reads a hyperslab into a caller-supplied buffer, whose length the
// caller has already checked against the resolved element count.
func GetInto[T nctypes.Numeric](req Request, varType *nctypes.TypeDescriptor, buf []T) error {
	host := atomicTypeOf[T]()
	if err := checkNumericCompatible(varType, host); err != nil {
		return err
	}
	var ptr unsafe.Pointer
	if len(buf) > 0 {
		ptr = unsafe.Pointer(&buf[0])
	}
	return bindings.GetVars(req.Ncid, req.Varid, req.Start, req.Count, req.Stride, wireID(host), ptr)
}

// PutNumeric writes data against a variable whose on-disk element type is
// varType, enforcing the numeric-only implicit conversion rule.
func PutNumeric[T nctypes.Numeric](req Request, varType *nctypes.TypeDescriptor, data []T) error {
	host := atomicTypeOf[T]()
	if err := checkNumericCompatible(varType, host); err != nil {
		return err
	}
	if got, want := len(data), elemCount(req.Count); got != want {
		return nctypes.BufferLenError(want, got)
	}
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	return bindings.PutVars(req.Ncid, req.Varid, req.Start, req.Count, req.Stride, wireID(host), ptr)
}

// GetNumeric reads a hyperslab into a freshly allocated []T.
func GetNumeric[T nctypes.Numeric](req Request, varType *nctypes.TypeDescriptor) ([]T, error) {
	host := atomicTypeOf[T]()
	if err := checkNumericCompatible(varType, host); err != nil {
		return nil, err
	}
	out := make([]T, elemCount(req.Count))
	var ptr unsafe.Pointer
	if len(out) > 0 {
		ptr = unsafe.Pointer(&out[0])
	}
	if err := bindings.GetVars(req.Ncid, req.Varid, req.Start, req.Count, req.Stride, wireID(host), ptr); err != nil {
		return nil, err
	}
	return out, nil
}

// PutString writes a hyperslab of an NC_STRING-typed variable.
func PutString(req Request, varType *nctypes.TypeDescriptor, values []string) error {
	if varType.Kind != nctypes.KindAtomic || varType.Atomic != nctypes.String {
		return &nctypes.Error{Kind: nctypes.ErrKindTypeMismatch, Msg: "variable is not string-typed", Err: nctypes.ErrTypeMismatch}
	}
	if got, want := len(values), elemCount(req.Count); got != want {
		return nctypes.BufferLenError(want, got)
	}
	return bindings.PutVarsString(req.Ncid, req.Varid, req.Start, req.Count, req.Stride, values)
}

// GetString reads a hyperslab of an NC_STRING-typed variable.
func GetString(req Request, varType *nctypes.TypeDescriptor) ([]string, error) {
	if varType.Kind != nctypes.KindAtomic || varType.Atomic != nctypes.String {
		return nil, &nctypes.Error{Kind: nctypes.ErrKindTypeMismatch, Msg: "variable is not string-typed", Err: nctypes.ErrTypeMismatch}
	}
	return bindings.GetVarsString(req.Ncid, req.Varid, req.Start, req.Count, req.Stride, elemCount(req.Count))
}

// PutRaw writes a hyperslab whose element is byte-identical to varType's
// on-disk layout (opaque, enum, compound, vlen, or plain char): no implicit
// conversion happens here, so wireType must already be the exact installed
// type id for varType (internal/nctypeinstall.Resolve with recursive=false
// having already confirmed varType matches what's on disk).
func PutRaw(req Request, wireType bindings.ID, buf []byte) error {
	var ptr unsafe.Pointer
	if len(buf) > 0 {
		ptr = unsafe.Pointer(&buf[0])
	}
	return bindings.PutVars(req.Ncid, req.Varid, req.Start, req.Count, req.Stride, wireType, ptr)
}

// GetRaw reads a hyperslab of elemSize-byte elements into a freshly
// allocated buffer.
func GetRaw(req Request, wireType bindings.ID, elemSize int) ([]byte, error) {
	buf := make([]byte, elemCount(req.Count)*elemSize)
	var ptr unsafe.Pointer
	if len(buf) > 0 {
		ptr = unsafe.Pointer(&buf[0])
	}
	if err := bindings.GetVars(req.Ncid, req.Varid, req.Start, req.Count, req.Stride, wireType, ptr); err != nil {
		return nil, err
	}
	return buf, nil
}

// --- Vlen element I/O --------------------------------------------------------
//
// A vlen element is read/written one at a time (index, not a hyperslab).
// The on-disk payload is reinterpreted in place rather than decoded
// field-by-field: it arrives from bindings already in the host's native
// byte order and element width, so a slice-header reinterpretation (the
// same technique bindings/wrapper.go uses for C array round-trips) is
// sufficient. The reinterpreted bytes are still copied once into the
// destination slice (bytesToNumeric) or into C memory (PutVar1Vlen).

// PutVlen writes one vlen element whose base type matches T.
func PutVlen[T nctypes.Numeric](ncid, varid bindings.ID, index []uint64, varType *nctypes.TypeDescriptor, values []T) error {
	if varType.Kind != nctypes.KindVlen {
		return &nctypes.Error{Kind: nctypes.ErrKindTypeMismatch, Msg: "variable is not vlen-typed", Err: nctypes.ErrTypeMismatch}
	}
	host := atomicTypeOf[T]()
	if err := checkNumericCompatible(varType.VlenElem, host); err != nil {
		return err
	}
	buf := numericBytes(values)
	return bindings.PutVar1Vlen(ncid, varid, index, host.Size(), buf)
}

// GetVlen reads one vlen element whose base type matches T.
func GetVlen[T nctypes.Numeric](ncid, varid bindings.ID, index []uint64, varType *nctypes.TypeDescriptor) ([]T, error) {
	if varType.Kind != nctypes.KindVlen {
		return nil, &nctypes.Error{Kind: nctypes.ErrKindTypeMismatch, Msg: "variable is not vlen-typed", Err: nctypes.ErrTypeMismatch}
	}
	host := atomicTypeOf[T]()
	if err := checkNumericCompatible(varType.VlenElem, host); err != nil {
		return nil, err
	}
	buf, err := bindings.GetVar1Vlen(ncid, varid, index, host.Size())
	if err != nil {
		return nil, err
	}
	return bytesToNumeric[T](buf), nil
}

func numericBytes[T nctypes.Numeric](values []T) []byte {
	if len(values) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*int(unsafe.Sizeof(values[0])))
}

func bytesToNumeric[T nctypes.Numeric](buf []byte) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if len(buf) == 0 || size == 0 {
		return nil
	}
	n := len(buf) / size
	src := unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), n)
	out := make([]T, n)
	copy(out, src)
	return out
}

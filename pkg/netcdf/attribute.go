package netcdf

import (
	"encoding/binary"
	"math"

	"github.com/ncgo/netcdf/bindings"
	"github.com/ncgo/netcdf/internal/nctypeinstall"
	"github.com/ncgo/netcdf/internal/ncstr"
	"github.com/ncgo/netcdf/pkg/nctypes"
)

// Attribute is a read-only view of one attribute attached to a variable or
// to a group/file as a whole. It carries only the owning
// (ncid, varid) pair and the attribute's name; every accessor re-queries
// the C library rather than caching metadata a concurrent writer could
// invalidate out from under a read-only view.
type Attribute struct {
	ncid, varid bindings.ID
	name        string
}

// Name returns the attribute's name.
func (a *Attribute) Name() string { return a.name }

// Len returns the attribute's element count.
func (a *Attribute) Len() (uint64, error) {
	info, ok, err := bindings.InqAtt(a.ncid, a.varid, a.name)
	if err != nil {
		return 0, wrapErr(err)
	}
	if !ok {
		return 0, nctypes.NotFoundError("attribute " + a.name)
	}
	return info.Len, nil
}

// TypeDescriptor returns the attribute's on-disk element type, letting a
// caller inspect it before committing to a typed Value call.
func (a *Attribute) TypeDescriptor() (*nctypes.TypeDescriptor, error) {
	info, ok, err := bindings.InqAtt(a.ncid, a.varid, a.name)
	if err != nil {
		return nil, wrapErr(err)
	}
	if !ok {
		return nil, nctypes.NotFoundError("attribute " + a.name)
	}
	return describeAttrType(a.ncid, info.XType)
}

// Value reads the attribute's full value, dispatching on its stored type.
func (a *Attribute) Value() (nctypes.AttributeValue, error) {
	info, ok, err := bindings.InqAtt(a.ncid, a.varid, a.name)
	if err != nil {
		return nctypes.AttributeValue{}, wrapErr(err)
	}
	if !ok {
		return nctypes.AttributeValue{}, nctypes.NotFoundError("attribute " + a.name)
	}
	kind, ok := atomicKindOf(info.XType)
	if !ok {
		return nctypes.AttributeValue{}, &nctypes.Error{
			Kind: nctypes.ErrKindTypeMismatch,
			Msg:  "attribute value is not an atomic type",
			Err:  nctypes.ErrTypeMismatch,
		}
	}
	if kind == nctypes.String {
		strs, err := bindings.GetAttString(a.ncid, a.varid, a.name, int(info.Len))
		if err != nil {
			return nctypes.AttributeValue{}, wrapErr(err)
		}
		return nctypes.NewStrings(strs), nil
	}
	if kind == nctypes.Char {
		buf := make([]byte, info.Len)
		if err := bindings.GetAttRaw(a.ncid, a.varid, a.name, buf); err != nil {
			return nctypes.AttributeValue{}, wrapErr(err)
		}
		return nctypes.NewString(nctypes.Char, ncstr.SanitizeUTF8(buf)), nil
	}
	buf := make([]byte, int(info.Len)*kind.Size())
	if err := bindings.GetAttRaw(a.ncid, a.varid, a.name, buf); err != nil {
		return nctypes.AttributeValue{}, wrapErr(err)
	}
	return decodeAttributeValue(kind, buf), nil
}

// --- group/variable-level attribute helpers, shared by Group and Variable --

func findAttribute(ncid, varid bindings.ID, name string) (*Attribute, bool, error) {
	_, ok, err := bindings.InqAtt(ncid, varid, name)
	if err != nil {
		return nil, false, wrapErr(err)
	}
	if !ok {
		return nil, false, nil
	}
	return &Attribute{ncid: ncid, varid: varid, name: name}, true, nil
}

func listAttributes(ncid, varid bindings.ID) ([]*Attribute, error) {
	n, err := bindings.InqNatts(ncid, varid)
	if err != nil {
		return nil, wrapErr(err)
	}
	out := make([]*Attribute, n)
	for i := 0; i < n; i++ {
		name, err := bindings.InqAttName(ncid, varid, i)
		if err != nil {
			return nil, wrapErr(err)
		}
		out[i] = &Attribute{ncid: ncid, varid: varid, name: name}
	}
	return out, nil
}

func putAttribute(ncid, varid bindings.ID, name string, value nctypes.AttributeValue) error {
	if strs, ok := value.Strings(); ok {
		if value.Kind == nctypes.Char {
			wire := bindings.ID(nctypeinstall.AtomicWireID(nctypes.Char))
			return wrapErr(bindings.PutAttRaw(ncid, varid, name, wire, len(strs[0]), []byte(strs[0])))
		}
		return wrapErr(bindings.PutAttString(ncid, varid, name, strs))
	}
	buf := encodeAttributeValue(value)
	wire := bindings.ID(nctypeinstall.AtomicWireID(value.Kind))
	return wrapErr(bindings.PutAttRaw(ncid, varid, name, wire, value.Len(), buf))
}

// --- raw atomic (de/en)coding, host-native byte order (written directly
// into C memory by PutAttRaw/GetAttRaw, never crossing a byte-order
// boundary of its own) --------------------------------------------------

func atomicKindOf(xtype bindings.ID) (nctypes.AtomicType, bool) {
	return nctypeinstall.WireToAtomic(int32(xtype))
}

func describeAttrType(ncid bindings.ID, xtype bindings.ID) (*nctypes.TypeDescriptor, error) {
	if kind, ok := atomicKindOf(xtype); ok {
		return &nctypes.TypeDescriptor{Kind: nctypes.KindAtomic, Atomic: kind}, nil
	}
	return nil, &nctypes.Error{Kind: nctypes.ErrKindTypeMismatch, Msg: "attribute holds a user-defined type"}
}

func encodeAttributeValue(v nctypes.AttributeValue) []byte {
	n := v.Len()
	buf := make([]byte, n*v.Kind.Size())
	if ints, ok := v.Ints(); ok {
		for i, x := range ints {
			putInt(buf[i*v.Kind.Size():], v.Kind, x)
		}
		return buf
	}
	if uints, ok := v.UInts(); ok {
		for i, x := range uints {
			putUint(buf[i*v.Kind.Size():], v.Kind, x)
		}
		return buf
	}
	floats, _ := v.Floats()
	for i, x := range floats {
		putFloat(buf[i*v.Kind.Size():], v.Kind, x)
	}
	return buf
}

func putInt(b []byte, kind nctypes.AtomicType, x int64) {
	switch kind {
	case nctypes.Byte:
		b[0] = byte(int8(x))
	case nctypes.Short:
		binary.NativeEndian.PutUint16(b, uint16(int16(x)))
	case nctypes.Int:
		binary.NativeEndian.PutUint32(b, uint32(int32(x)))
	case nctypes.Int64:
		binary.NativeEndian.PutUint64(b, uint64(x))
	}
}

func putUint(b []byte, kind nctypes.AtomicType, x uint64) {
	switch kind {
	case nctypes.UByte:
		b[0] = byte(x)
	case nctypes.UShort:
		binary.NativeEndian.PutUint16(b, uint16(x))
	case nctypes.UInt:
		binary.NativeEndian.PutUint32(b, uint32(x))
	case nctypes.UInt64:
		binary.NativeEndian.PutUint64(b, x)
	}
}

func putFloat(b []byte, kind nctypes.AtomicType, x float64) {
	switch kind {
	case nctypes.Float:
		binary.NativeEndian.PutUint32(b, math.Float32bits(float32(x)))
	case nctypes.Double:
		binary.NativeEndian.PutUint64(b, math.Float64bits(x))
	}
}

func decodeAttributeValue(kind nctypes.AtomicType, buf []byte) nctypes.AttributeValue {
	size := kind.Size()
	n := len(buf) / size
	if kind.IsFloat() {
		out := make([]float64, n)
		for i := range out {
			chunk := buf[i*size:]
			if kind == nctypes.Float {
				out[i] = float64(math.Float32frombits(binary.NativeEndian.Uint32(chunk)))
			} else {
				out[i] = math.Float64frombits(binary.NativeEndian.Uint64(chunk))
			}
		}
		return nctypes.NewNumeric(kind, out...)
	}
	if kind.Signed() {
		out := make([]int64, n)
		for i := range out {
			chunk := buf[i*size:]
			switch kind {
			case nctypes.Byte:
				out[i] = int64(int8(chunk[0]))
			case nctypes.Short:
				out[i] = int64(int16(binary.NativeEndian.Uint16(chunk)))
			case nctypes.Int:
				out[i] = int64(int32(binary.NativeEndian.Uint32(chunk)))
			case nctypes.Int64:
				out[i] = int64(binary.NativeEndian.Uint64(chunk))
			}
		}
		return nctypes.NewNumeric(kind, out...)
	}
	out := make([]uint64, n)
	for i := range out {
		chunk := buf[i*size:]
		switch kind {
		case nctypes.UByte:
			out[i] = uint64(chunk[0])
		case nctypes.UShort:
			out[i] = uint64(binary.NativeEndian.Uint16(chunk))
		case nctypes.UInt:
			out[i] = uint64(binary.NativeEndian.Uint32(chunk))
		case nctypes.UInt64:
			out[i] = binary.NativeEndian.Uint64(chunk)
		}
	}
	return nctypes.NewNumeric(kind, out...)
}

package nctypeinstall

import (
	"encoding/binary"
	"fmt"

	"github.com/ncgo/netcdf/bindings"
	"github.com/ncgo/netcdf/pkg/nctypes"
)

// Resolve finds or installs the wire type id for a descriptor in the group
// ncid:
//
//   - an atomic descriptor maps directly to its builtin id, no lookup;
//   - a user-defined descriptor (opaque/enum/vlen/compound) is looked up by
//     name in ncid; a name hit whose on-disk shape does not match d is a
//     type-equality error (ErrTypeMismatch); a name miss installs d when
//     recursive is true, resolving (and if needed installing) each inner
//     type before it is referenced: a vlen's element before the vlen is
//     defined, and each compound field's type after the compound is defined
//     but before that field is inserted. It fails with ErrNotFound when
//     recursive is false.
func Resolve(ncid bindings.ID, d *nctypes.TypeDescriptor, recursive bool) (bindings.ID, error) {
	if d.Kind == nctypes.KindAtomic {
		return bindings.ID(AtomicWireID(d.Atomic)), nil
	}

	existing, ok, err := bindings.InqTypeID(ncid, d.Name)
	if err != nil {
		return 0, err
	}
	if ok {
		got, err := Describe(ncid, existing)
		if err != nil {
			return 0, err
		}
		if !got.Equal(d) {
			return 0, &nctypes.Error{
				Kind: nctypes.ErrKindTypeMismatch,
				Msg:  fmt.Sprintf("type %q already exists in this group with a different shape", d.Name),
				Err:  nctypes.ErrTypeMismatch,
			}
		}
		return existing, nil
	}
	if !recursive {
		return 0, &nctypes.Error{Kind: nctypes.ErrKindNotFound, Msg: fmt.Sprintf("type %q not found and recursive install disabled", d.Name), Err: nctypes.ErrNotFound}
	}
	return install(ncid, d)
}

func install(ncid bindings.ID, d *nctypes.TypeDescriptor) (bindings.ID, error) {
	switch d.Kind {
	case nctypes.KindOpaque:
		return bindings.DefOpaque(ncid, d.Name, d.OpaqueSize)

	case nctypes.KindEnum:
		typeid, err := bindings.DefEnum(ncid, bindings.ID(AtomicWireID(d.EnumBase)), d.Name)
		if err != nil {
			return 0, err
		}
		for _, m := range d.EnumMembers {
			buf := encodeEnumValue(d.EnumBase, m.Value)
			if err := bindings.InsertEnumMember(ncid, typeid, m.Name, rawPointer(buf)); err != nil {
				return 0, err
			}
		}
		return typeid, nil

	case nctypes.KindVlen:
		elemID, err := Resolve(ncid, d.VlenElem, true)
		if err != nil {
			return 0, err
		}
		return bindings.DefVlen(ncid, d.Name, elemID)

	case nctypes.KindCompound:
		typeid, err := bindings.DefCompound(ncid, d.Name, d.CompoundSize)
		if err != nil {
			return 0, err
		}
		for _, f := range d.CompoundFields {
			fieldID, err := Resolve(ncid, f.Elem, true)
			if err != nil {
				return 0, err
			}
			if len(f.ArrayDims) == 0 {
				if err := bindings.InsertCompoundField(ncid, typeid, f.Name, f.Offset, fieldID); err != nil {
					return 0, err
				}
				continue
			}
			if err := bindings.InsertCompoundArrayField(ncid, typeid, f.Name, f.Offset, fieldID, f.ArrayDims); err != nil {
				return 0, err
			}
		}
		return typeid, nil

	default:
		return 0, &nctypes.Error{Kind: nctypes.ErrKindConversion, Msg: fmt.Sprintf("cannot install descriptor kind %s", d.Kind)}
	}
}

// encodeEnumValue narrows a widened enum value to the base type's native
// on-disk width, in native byte order (the C API never byte-swaps values
// passed across the insert/inquire boundary — only stored variable data is
// subject to DefVarEndian).
func encodeEnumValue(base nctypes.AtomicType, v int64) []byte {
	buf := make([]byte, base.Size())
	switch base.Size() {
	case 1:
		buf[0] = byte(v)
	case 2:
		binary.NativeEndian.PutUint16(buf, uint16(v))
	case 4:
		binary.NativeEndian.PutUint32(buf, uint32(v))
	case 8:
		binary.NativeEndian.PutUint64(buf, uint64(v))
	}
	return buf
}

func decodeEnumValue(base nctypes.AtomicType, buf []byte) int64 {
	switch base.Size() {
	case 1:
		if base.Signed() {
			return int64(int8(buf[0]))
		}
		return int64(buf[0])
	case 2:
		u := binary.NativeEndian.Uint16(buf)
		if base.Signed() {
			return int64(int16(u))
		}
		return int64(u)
	case 4:
		u := binary.NativeEndian.Uint32(buf)
		if base.Signed() {
			return int64(int32(u))
		}
		return int64(u)
	case 8:
		u := binary.NativeEndian.Uint64(buf)
		return int64(u)
	default:
		return 0
	}
}

package nctypeinstall

import (
	"unsafe"

	"github.com/ncgo/netcdf/bindings"
	"github.com/ncgo/netcdf/pkg/nctypes"
)

// Describe reads an existing on-disk type (atomic or user-defined) back into
// a *nctypes.TypeDescriptor, recursing into a vlen's element type or a
// compound's field types as needed.
func Describe(ncid bindings.ID, xtype bindings.ID) (*nctypes.TypeDescriptor, error) {
	if at, ok := WireToAtomic(int32(xtype)); ok {
		return nctypes.NewAtomicDescriptor(at), nil
	}

	info, err := bindings.InqUserType(ncid, xtype)
	if err != nil {
		return nil, err
	}

	switch info.Class {
	case bindings.ID(wireOpaque):
		return &nctypes.TypeDescriptor{Kind: nctypes.KindOpaque, Name: info.Name, OpaqueSize: info.Size}, nil

	case bindings.ID(wireEnum):
		base, ok := WireToAtomic(int32(info.BaseType))
		if !ok {
			return nil, nctypes.TypeUnknownError(int(info.BaseType))
		}
		members := make([]nctypes.EnumMember, info.NFields)
		for i := 0; i < info.NFields; i++ {
			name, raw, err := bindings.InqEnumMember(ncid, xtype, i, base.Size())
			if err != nil {
				return nil, err
			}
			members[i] = nctypes.EnumMember{Name: name, Value: decodeEnumValue(base, raw)}
		}
		return &nctypes.TypeDescriptor{Kind: nctypes.KindEnum, Name: info.Name, EnumBase: base, EnumMembers: members}, nil

	case bindings.ID(wireVlen):
		elem, err := Describe(ncid, info.BaseType)
		if err != nil {
			return nil, err
		}
		return &nctypes.TypeDescriptor{Kind: nctypes.KindVlen, Name: info.Name, VlenElem: elem}, nil

	case bindings.ID(wireCompound):
		fields := make([]nctypes.CompoundField, info.NFields)
		for i := 0; i < info.NFields; i++ {
			fi, err := bindings.InqCompoundField(ncid, xtype, i)
			if err != nil {
				return nil, err
			}
			elem, err := Describe(ncid, fi.FieldType)
			if err != nil {
				return nil, err
			}
			fields[i] = nctypes.CompoundField{Name: fi.Name, Elem: elem, ArrayDims: fi.Dims, Offset: fi.Offset}
		}
		return &nctypes.TypeDescriptor{Kind: nctypes.KindCompound, Name: info.Name, CompoundSize: info.Size, CompoundFields: fields}, nil

	default:
		return nil, nctypes.TypeUnknownError(int(xtype))
	}
}

func rawPointer(buf []byte) unsafe.Pointer {
	if len(buf) == 0 {
		return nil
	}
	return unsafe.Pointer(&buf[0])
}

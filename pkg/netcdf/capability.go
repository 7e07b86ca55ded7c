package netcdf

import "github.com/ncgo/netcdf/pkg/nctypes"

// NcTypeDescriptor is the capability that bridges static host types to the
// dynamic on-disk type universe: any host type that can name its own
// TypeDescriptor may be used as the element type T of AddVariable and
// AddVariableFromIdentifiers, which ask T for its descriptor.
//
// The capability carries three obligations this package cannot check for
// the caller at compile time, only document:
//
//   - the host layout must exactly match the on-disk layout this
//     descriptor names, field order/offsets/padding included;
//   - any finalization of inner pointers (a string or vlen field the C
//     library allocated when reading) is the host type's responsibility,
//     not this library's;
//   - for an opaque descriptor, TypeDescriptor().Size() must equal the
//     host type's in-memory size exactly.
type NcTypeDescriptor interface {
	NcTypeDescriptor() *nctypes.TypeDescriptor
}

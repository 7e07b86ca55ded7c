package netcdf

import (
	"github.com/ncgo/netcdf/bindings"
	"github.com/ncgo/netcdf/internal/ncio"
	"github.com/ncgo/netcdf/internal/nctypeinstall"
	"github.com/ncgo/netcdf/internal/ncverify"
	"github.com/ncgo/netcdf/pkg/extent"
	"github.com/ncgo/netcdf/pkg/nctypes"
)

// Variable is a read-only view of one variable: a name, an ordered list of
// dimensions, an element type, and optional storage
// properties. It carries only the owning group pointer plus its own id,
// never an owning handle.
type Variable struct {
	group *Group
	id    bindings.ID
	name  string
	dims  []nctypes.DimIdentifier
	elem  *nctypes.TypeDescriptor
}

// VariableMut is an exclusively-borrowed mutable view of a Variable,
// shared with whatever GroupMut/FileMut it was checked out alongside —
// Release gives back that single slot, and is safe to call from exactly
// one of the views born from the same checkout (exclusivity is enforced
// once, at the top of the checkout chain, not per-view).
type VariableMut struct {
	*Variable
	release func()
}

// Release gives back the shared exclusive mutable-borrow slot.
func (m *VariableMut) Release() {
	if m.release != nil {
		m.release()
		m.release = nil
	}
}

// --- metadata ----------------------------------------------------------------

// Name returns the variable's name.
func (v *Variable) Name() string { return v.name }

// Group returns the owning Group.
func (v *Variable) Group() *Group { return v.group }

// Dimensions resolves v's ordered dimension list into Dimension views.
func (v *Variable) Dimensions() ([]*Dimension, error) {
	out := make([]*Dimension, len(v.dims))
	for i, id := range v.dims {
		name, _, err := bindings.InqDim(bindings.ID(id.ContainerID), bindings.ID(id.LocalID))
		if err != nil {
			return nil, wrapErr(err)
		}
		out[i] = &Dimension{id: id, name: name}
	}
	return out, nil
}

// Rank returns the variable's fixed dimensionality.
func (v *Variable) Rank() int { return len(v.dims) }

// ElementType returns the variable's declared on-disk element type.
func (v *Variable) ElementType() *nctypes.TypeDescriptor { return v.elem }

// Len returns the product of the variable's current dimension lengths,
// saturating on overflow.
func (v *Variable) Len() (uint64, error) {
	lens, _, err := dimLens(v.dims)
	if err != nil {
		return 0, err
	}
	total := uint64(1)
	for _, l := range lens {
		if l == 0 {
			return 0, nil
		}
		const maxU64 = ^uint64(0)
		if total > maxU64/l {
			return maxU64, nil
		}
		total *= l
	}
	return total, nil
}

// Endianness reads back the variable's configured byte order.
func (v *Variable) Endianness() (nctypes.Endianness, error) {
	e, err := bindings.InqVarEndian(v.group.ncid, v.id)
	if err != nil {
		return nctypes.EndianNative, wrapErr(err)
	}
	switch e {
	case bindings.EndianLittle:
		return nctypes.EndianLittle, nil
	case bindings.EndianBig:
		return nctypes.EndianBig, nil
	default:
		return nctypes.EndianNative, nil
	}
}

// --- attributes --------------------------------------------------------------

// FindAttribute looks up an attribute on this variable by name.
func (v *Variable) FindAttribute(name string) (*Attribute, bool, error) {
	return findAttribute(v.group.ncid, v.id, name)
}

// AttributeByName is an alias for FindAttribute.
func (v *Variable) AttributeByName(name string) (*Attribute, bool, error) {
	return v.FindAttribute(name)
}

// Attributes lists every attribute attached to this variable.
func (v *Variable) Attributes() ([]*Attribute, error) {
	return listAttributes(v.group.ncid, v.id)
}

// PutAttribute writes an attribute on this variable.
func (vm *VariableMut) PutAttribute(name string, value nctypes.AttributeValue) error {
	return putAttribute(vm.group.ncid, vm.id, name, value)
}

// --- fill value ---------------------------------------------------------------

// FillValue reads back the variable's fill value, returning (zero, false,
// nil) when explicit no-fill is set.
func FillValue[T nctypes.Numeric](v *Variable) (T, bool, error) {
	var zero T
	host := ncio.AtomicTypeOf[T]()
	if v.elem.Kind != nctypes.KindAtomic || v.elem.Atomic != host {
		return zero, false, &nctypes.Error{Kind: nctypes.ErrKindTypeMismatch, Msg: "fill value type does not match variable's element type", Err: nctypes.ErrTypeMismatch}
	}
	noFill, buf, err := bindings.InqVarFill(v.group.ncid, v.id, v.elem.Size())
	if err != nil {
		return zero, false, wrapErr(err)
	}
	if noFill {
		return zero, false, nil
	}
	out := ncio.BytesToOne[T](buf)
	return out, true, nil
}

// SetFillValue sets the fill value the C library writes for never-written
// slots; the element type of T must match the variable's declared type.
// Must be called before the variable's first write.
func SetFillValue[T nctypes.Numeric](vm *VariableMut, value T) error {
	host := ncio.AtomicTypeOf[T]()
	if vm.elem.Kind != nctypes.KindAtomic || vm.elem.Atomic != host {
		return &nctypes.Error{Kind: nctypes.ErrKindTypeMismatch, Msg: "fill value type does not match variable's element type", Err: nctypes.ErrTypeMismatch}
	}
	buf := ncio.OneToBytes(value)
	return wrapErr(bindings.DefVarFill(vm.group.ncid, vm.id, false, buf))
}

// SetNoFill disables the fill policy entirely: reads of never-written
// slots are undefined. The caller accepts that obligation; Go has no
// unsafe-trait mechanism to mark it with.
func (vm *VariableMut) SetNoFill() error {
	return wrapErr(bindings.DefVarFill(vm.group.ncid, vm.id, true, nil))
}

// --- storage mutators ---------------------------------------------------------

// SetCompression sets the deflate level (0-9) and shuffle filter. Must be
// called before the variable's first write; fails if the format does not
// support compression (classic formats).
func (vm *VariableMut) SetCompression(level int, shuffle bool) error {
	if level < 0 || level > 9 {
		return &nctypes.Error{Kind: nctypes.ErrKindConversion, Msg: "compression level must be 0..=9"}
	}
	return wrapErr(bindings.DefVarDeflate(vm.group.ncid, vm.id, shuffle, level))
}

// SetChunking sets the chunk size vector; rank must match the variable's
// and the element count product must not overflow. A no-op for rank-0
// variables, where the C library's chunking call is known to segfault.
func (vm *VariableMut) SetChunking(sizes []uint64) error {
	if len(vm.dims) == 0 {
		return nil
	}
	if len(sizes) != len(vm.dims) {
		return nctypes.DimensionMismatchError(len(vm.dims), len(sizes))
	}
	product := uint64(1)
	for _, s := range sizes {
		if s == 0 {
			continue
		}
		const maxU64 = ^uint64(0)
		if product > maxU64/s {
			return &nctypes.Error{Kind: nctypes.ErrKindOverflow, Msg: "chunk size product overflows"}
		}
		product *= s
	}
	return wrapErr(bindings.DefVarChunking(vm.group.ncid, vm.id, true, sizes))
}

// SetEndianness forces the on-disk byte order.
func (vm *VariableMut) SetEndianness(e nctypes.Endianness) error {
	var wire bindings.ID
	switch e {
	case nctypes.EndianLittle:
		wire = bindings.EndianLittle
	case nctypes.EndianBig:
		wire = bindings.EndianBig
	default:
		wire = bindings.EndianNative
	}
	return wrapErr(bindings.DefVarEndian(vm.group.ncid, vm.id, wire))
}

// --- creation -----------------------------------------------------------------

// descriptorOf resolves T's on-disk TypeDescriptor: a type implementing the
// NcTypeDescriptor capability is asked directly; otherwise T must be one of
// the built-in Go types with a direct atomic mapping (the primitive numeric
// widths and string; byte is uint8 and maps to UByte, and no built-in type
// maps to Char), since Go cannot attach methods to
// those types the way the capability trait would require.
func descriptorOf[T any]() (*nctypes.TypeDescriptor, error) {
	var zero T
	if nt, ok := any(zero).(NcTypeDescriptor); ok {
		return nt.NcTypeDescriptor(), nil
	}
	switch any(zero).(type) {
	case int8:
		return nctypes.NewAtomicDescriptor(nctypes.Byte), nil
	case uint8:
		return nctypes.NewAtomicDescriptor(nctypes.UByte), nil
	case int16:
		return nctypes.NewAtomicDescriptor(nctypes.Short), nil
	case uint16:
		return nctypes.NewAtomicDescriptor(nctypes.UShort), nil
	case int32:
		return nctypes.NewAtomicDescriptor(nctypes.Int), nil
	case uint32:
		return nctypes.NewAtomicDescriptor(nctypes.UInt), nil
	case int64:
		return nctypes.NewAtomicDescriptor(nctypes.Int64), nil
	case uint64:
		return nctypes.NewAtomicDescriptor(nctypes.UInt64), nil
	case float32:
		return nctypes.NewAtomicDescriptor(nctypes.Float), nil
	case float64:
		return nctypes.NewAtomicDescriptor(nctypes.Double), nil
	case string:
		return nctypes.NewAtomicDescriptor(nctypes.String), nil
	default:
		return nil, &nctypes.Error{Kind: nctypes.ErrKindTypeUnknown, Msg: "no NcTypeDescriptor available for this host type"}
	}
}

// AddVariable declares a new variable of element type T, resolving each
// dimension name by walking up the group tree from g, nearest ancestor
// wins. The returned VariableMut shares g's exclusive
// borrow rather than checking out a new one.
func AddVariable[T any](g *GroupMut, name string, dimNames []string) (*VariableMut, error) {
	desc, err := descriptorOf[T]()
	if err != nil {
		return nil, err
	}
	ids := make([]nctypes.DimIdentifier, len(dimNames))
	for i, dn := range dimNames {
		d, err := g.ResolveDimension(dn)
		if err != nil {
			return nil, err
		}
		ids[i] = d.id
	}
	return defineVariable(g, name, ids, desc)
}

// AddVariableFromIdentifiers declares a new variable using fully-qualified
// dimension identifiers, bypassing the ancestor walk.
func AddVariableFromIdentifiers[T any](g *GroupMut, name string, ids []nctypes.DimIdentifier) (*VariableMut, error) {
	desc, err := descriptorOf[T]()
	if err != nil {
		return nil, err
	}
	return defineVariable(g, name, ids, desc)
}

// AddVariableWithType declares a new variable from an explicit
// TypeDescriptor, for element types that cannot be derived from a host Go
// type (compound, enum, opaque, vlen built by hand).
func AddVariableWithType(g *GroupMut, name string, dimNames []string, desc *nctypes.TypeDescriptor) (*VariableMut, error) {
	ids := make([]nctypes.DimIdentifier, len(dimNames))
	for i, dn := range dimNames {
		d, err := g.ResolveDimension(dn)
		if err != nil {
			return nil, err
		}
		ids[i] = d.id
	}
	return defineVariable(g, name, ids, desc)
}

// AddVariableWithTypeFromIdentifiers is AddVariableWithType's
// fully-qualified-identifier counterpart.
func AddVariableWithTypeFromIdentifiers(g *GroupMut, name string, ids []nctypes.DimIdentifier, desc *nctypes.TypeDescriptor) (*VariableMut, error) {
	return defineVariable(g, name, ids, desc)
}

func defineVariable(g *GroupMut, name string, ids []nctypes.DimIdentifier, desc *nctypes.TypeDescriptor) (*VariableMut, error) {
	if err := g.verifyDimOwnership(ids); err != nil {
		return nil, err
	}
	if desc.Kind == nctypes.KindCompound {
		if err := ncverify.CompoundDescriptor(desc); err != nil {
			return nil, err
		}
	}
	if desc.Kind == nctypes.KindEnum {
		if err := ncverify.EnumDescriptor(desc); err != nil {
			return nil, err
		}
	}
	wireType, ok := g.ResolveType(desc)
	if !ok {
		var err error
		wireType, err = nctypeinstall.Resolve(g.ncid, desc, true)
		if err != nil {
			return nil, wrapErr(err)
		}
	}
	wireDims := make([]bindings.ID, len(ids))
	for i, id := range ids {
		wireDims[i] = bindings.ID(id.LocalID)
	}
	varid, err := bindings.DefVar(g.ncid, name, wireType, wireDims)
	if err != nil {
		return nil, wrapErr(err)
	}
	g.vars.Set(name, varid)
	v := &Variable{group: g.Group, id: varid, name: name, dims: ids, elem: desc}
	return &VariableMut{Variable: v, release: g.release}, nil
}

// VariableMut looks up an existing variable defined directly in g for
// mutation, sharing g's exclusive borrow.
func (g *GroupMut) VariableMut(name string) (*VariableMut, bool, error) {
	v, ok, err := g.VariableByName(name)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &VariableMut{Variable: v, release: g.release}, true, nil
}

// --- typed I/O dispatch -------------------------------------------------------

func (v *Variable) request(sel extent.Selector) (ncio.Request, extent.Resolved, error) {
	lens, _, err := dimLens(v.dims)
	if err != nil {
		return ncio.Request{}, extent.Resolved{}, err
	}
	resolved, err := extent.Resolve(sel, lens, nil)
	if err != nil {
		return ncio.Request{}, extent.Resolved{}, err
	}
	start, count, stride := resolved.StartCountStride()
	return ncio.Request{Ncid: v.group.ncid, Varid: v.id, Start: start, Count: count, Stride: stride}, resolved, nil
}

func (vm *VariableMut) requestForWrite(sel extent.Selector, inputShape []uint64) (ncio.Request, extent.Resolved, error) {
	lens, unlim, err := dimLens(vm.dims)
	if err != nil {
		return ncio.Request{}, extent.Resolved{}, err
	}
	resolved, err := extent.ResolveForWrite(sel, lens, unlim, inputShape)
	if err != nil {
		return ncio.Request{}, extent.Resolved{}, err
	}
	start, count, stride := resolved.StartCountStride()
	return ncio.Request{Ncid: vm.group.ncid, Varid: vm.id, Start: start, Count: count, Stride: stride}, resolved, nil
}

// GetValue reads exactly one element; sel must resolve to a total count of 1.
func GetValue[T nctypes.Numeric](v *Variable, sel extent.Selector) (T, error) {
	var zero T
	req, resolved, err := v.request(sel)
	if err != nil {
		return zero, err
	}
	if resolved.TotalCount() != 1 {
		return zero, &nctypes.Error{Kind: nctypes.ErrKindBufferLen, Msg: "GetValue requires an extent resolving to exactly one element"}
	}
	out, err := ncio.GetNumeric[T](req, v.elem)
	if err != nil {
		return zero, wrapErr(err)
	}
	return out[0], nil
}

// GetValues resolves sel and reads the full hyperslab.
func GetValues[T nctypes.Numeric](v *Variable, sel extent.Selector) ([]T, error) {
	req, _, err := v.request(sel)
	if err != nil {
		return nil, err
	}
	out, err := ncio.GetNumeric[T](req, v.elem)
	return out, wrapErr(err)
}

// GetValuesInto reads into a caller-supplied buffer, whose length must
// equal the resolved element count.
func GetValuesInto[T nctypes.Numeric](v *Variable, buf []T, sel extent.Selector) error {
	req, resolved, err := v.request(sel)
	if err != nil {
		return err
	}
	if want := int(resolved.TotalCount()); len(buf) != want {
		return nctypes.BufferLenError(want, len(buf))
	}
	return wrapErr(ncio.GetInto(req, v.elem, buf))
}

// PutValue writes exactly one element.
func PutValue[T nctypes.Numeric](vm *VariableMut, value T, sel extent.Selector) error {
	req, _, err := vm.requestForWrite(sel, onesShape(len(vm.dims)))
	if err != nil {
		return err
	}
	return wrapErr(ncio.PutNumeric(req, vm.elem, []T{value}))
}

// PutValues writes values against the resolved hyperslab, honoring
// growing-dimension semantics when sel is unbounded on an
// unlimited axis.
func PutValues[T nctypes.Numeric](vm *VariableMut, values []T, inputShape []uint64, sel extent.Selector) error {
	req, _, err := vm.requestForWrite(sel, inputShape)
	if err != nil {
		return err
	}
	return wrapErr(ncio.PutNumeric(req, vm.elem, values))
}

func onesShape(rank int) []uint64 {
	if rank < 0 {
		return nil
	}
	out := make([]uint64, rank)
	for i := range out {
		out[i] = 1
	}
	return out
}

// GetString reads exactly one element of a String-typed variable.
func (v *Variable) GetString(sel extent.Selector) (string, error) {
	req, resolved, err := v.request(sel)
	if err != nil {
		return "", err
	}
	if resolved.TotalCount() != 1 {
		return "", &nctypes.Error{Kind: nctypes.ErrKindBufferLen, Msg: "GetString requires an extent resolving to exactly one element"}
	}
	out, err := ncio.GetString(req, v.elem)
	if err != nil {
		return "", wrapErr(err)
	}
	return out[0], nil
}

// GetStrings reads a hyperslab of a String-typed variable.
func (v *Variable) GetStrings(sel extent.Selector) ([]string, error) {
	req, _, err := v.request(sel)
	if err != nil {
		return nil, err
	}
	out, err := ncio.GetString(req, v.elem)
	return out, wrapErr(err)
}

// PutString writes exactly one element of a String-typed variable.
func (vm *VariableMut) PutString(s string, sel extent.Selector) error {
	req, _, err := vm.requestForWrite(sel, onesShape(len(vm.dims)))
	if err != nil {
		return err
	}
	return wrapErr(ncio.PutString(req, vm.elem, []string{s}))
}

// PutStrings writes a hyperslab of a String-typed variable.
func (vm *VariableMut) PutStrings(values []string, inputShape []uint64, sel extent.Selector) error {
	req, _, err := vm.requestForWrite(sel, inputShape)
	if err != nil {
		return err
	}
	return wrapErr(ncio.PutString(req, vm.elem, values))
}

// indexOf converts a Selector that must resolve to a single position (as
// GetVlen/PutVlen require — a vlen has no strided form) into the flat index
// vector nc_get_var1/nc_put_var1 expect.
func (v *Variable) indexOf(sel extent.Selector) ([]uint64, error) {
	req, resolved, err := v.request(sel)
	if err != nil {
		return nil, err
	}
	if resolved.TotalCount() != 1 {
		return nil, &nctypes.Error{Kind: nctypes.ErrKindBufferLen, Msg: "vlen access requires an extent resolving to exactly one element"}
	}
	return req.Start, nil
}

// GetVlen reads one vlen element, copying its payload out and freeing the
// C-allocated inner buffer immediately.
func GetVlen[T nctypes.Numeric](v *Variable, sel extent.Selector) ([]T, error) {
	idx, err := v.indexOf(sel)
	if err != nil {
		return nil, err
	}
	out, err := ncio.GetVlen[T](v.group.ncid, v.id, idx, v.elem)
	return out, wrapErr(err)
}

// PutVlen writes one vlen element.
func PutVlen[T nctypes.Numeric](vm *VariableMut, values []T, sel extent.Selector) error {
	idx, err := vm.indexOf(sel)
	if err != nil {
		return err
	}
	return wrapErr(ncio.PutVlen(vm.group.ncid, vm.id, idx, vm.elem, values))
}

// GetRawValues reads any type as raw bytes; forbidden for String and Vlen
// variables to prevent leaking C-allocated pointers into an opaque buffer.
func (v *Variable) GetRawValues(sel extent.Selector) ([]byte, error) {
	if v.elem.Kind == nctypes.KindVlen || (v.elem.Kind == nctypes.KindAtomic && v.elem.Atomic == nctypes.String) {
		return nil, &nctypes.Error{Kind: nctypes.ErrKindTypeMismatch, Msg: "raw access is forbidden for String/Vlen variables"}
	}
	req, _, err := v.request(sel)
	if err != nil {
		return nil, err
	}
	wireType, err := nctypeinstall.Resolve(v.group.ncid, v.elem, false)
	if err != nil {
		return nil, wrapErr(err)
	}
	out, err := ncio.GetRaw(req, wireType, v.elem.Size())
	return out, wrapErr(err)
}

// PutRawValues writes any type from raw bytes, forbidden for String/Vlen
// for the same reason as GetRawValues.
func (vm *VariableMut) PutRawValues(buf []byte, inputShape []uint64, sel extent.Selector) error {
	if vm.elem.Kind == nctypes.KindVlen || (vm.elem.Kind == nctypes.KindAtomic && vm.elem.Atomic == nctypes.String) {
		return &nctypes.Error{Kind: nctypes.ErrKindTypeMismatch, Msg: "raw access is forbidden for String/Vlen variables"}
	}
	req, _, err := vm.requestForWrite(sel, inputShape)
	if err != nil {
		return err
	}
	wireType, err := nctypeinstall.Resolve(vm.group.ncid, vm.elem, false)
	if err != nil {
		return wrapErr(err)
	}
	return wrapErr(ncio.PutRaw(req, wireType, buf))
}

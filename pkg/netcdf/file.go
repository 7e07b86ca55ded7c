package netcdf

import (
	"github.com/ncgo/netcdf/bindings"
	"github.com/ncgo/netcdf/internal/ncdef"
	"github.com/ncgo/netcdf/internal/ncmem"
	"github.com/ncgo/netcdf/pkg/nctypes"
)

// File owns exactly one container identifier assigned by the C library and
// is the sole owner of that handle: every other
// view in this package (Group, Variable, Dimension, Attribute) only refers
// to it, never holds a copy of ownership. Group and Variable reach the File
// through a back-pointer; Dimension and Attribute carry only ids and names.
type File struct {
	ncid   bindings.ID
	state  *ncdef.State
	closed bool
	mem    ncmem.Backing // non-nil only for OpenFromMemory, closed alongside the file
}

// FileMut is an exclusively-borrowed mutable view of a File, the only form
// that can create dimensions/groups/variables/types or write data.
type FileMut struct {
	*File
}

// OpenWith opens an existing file read-only or read-write, per options.Mode.
func OpenWith(path string, options OpenOptions) (*File, error) {
	ncid, err := bindings.Open(path, bindings.Options(options.Mode))
	if err != nil {
		return nil, wrapErr(err)
	}
	return &File{ncid: ncid, state: ncdef.New(false)}, nil
}

// CreateWith creates a new file; options.Mode defaults to NETCDF4 when the
// zero value is passed. The
// returned FileMut is always in define mode, as the C library leaves a
// freshly created container.
func CreateWith(path string, options CreateOptions) (*FileMut, error) {
	mode := options.Mode
	if mode == 0 {
		mode = nctypes.NETCDF4
	}
	ncid, err := bindings.Create(path, bindings.Options(mode))
	if err != nil {
		return nil, wrapErr(err)
	}
	return &FileMut{File: &File{ncid: ncid, state: ncdef.New(true)}}, nil
}

// AppendWith opens an existing file read-write, forcing the WRITE mode bit
// on.
func AppendWith(path string, options OpenOptions) (*FileMut, error) {
	ncid, err := bindings.Open(path, bindings.Options(options.Mode|nctypes.WRITE))
	if err != nil {
		return nil, wrapErr(err)
	}
	return &FileMut{File: &File{ncid: ncid, state: ncdef.New(false)}}, nil
}

// OpenFromMemory opens an in-memory image. data is copied into a
// memfd-backed (or, off Linux, temp-file-backed) file that lives as long as
// the returned File, and the caller's slice is not retained; that file is
// opened by path so the C library — which for netCDF-4 files always
// needs a path, even under nc_open_mem's HDF5 core driver — has one to
// operate on (internal/ncmem).
func OpenFromMemory(data []byte, options OpenMemoryOptions) (*File, error) {
	name := options.Name
	if name == "" {
		name = "ncgo-mem"
	}
	backing, err := ncmem.NewBacking(name, data)
	if err != nil {
		return nil, err
	}
	ncid, err := bindings.Open(backing.Path(), bindings.Options(options.Mode))
	if err != nil {
		backing.Close()
		return nil, wrapErr(err)
	}
	return &File{ncid: ncid, state: ncdef.New(false), mem: backing}, nil
}

// Path returns the path the container was opened/created with, as the raw
// bytes the C library returns, preserved as-is on platforms where paths
// need not be UTF-8.
func (f *File) Path() ([]byte, error) {
	b, err := bindings.Path(f.ncid)
	if err != nil {
		return nil, wrapErr(err)
	}
	return b, nil
}

// Format reports the on-disk container format variant, used internally by
// Root to decide whether groups are addressable at all.
func (f *File) Format() (nctypes.FormatKind, error) {
	code, err := bindings.Format(f.ncid)
	if err != nil {
		return nctypes.FormatUnknown, wrapErr(err)
	}
	switch code {
	case 1:
		return nctypes.FormatClassic, nil
	case 2:
		return nctypes.Format64BitOffset, nil
	case 3:
		return nctypes.FormatNetCDF4, nil
	case 4:
		return nctypes.FormatNetCDF4Classic, nil
	case 5:
		return nctypes.Format64BitData, nil
	default:
		return nctypes.FormatUnknown, nil
	}
}

// Root returns the root Group, or (nil, false) when the underlying format
// does not address groups at all.
func (f *File) Root() (*Group, bool, error) {
	format, err := f.Format()
	if err != nil {
		return nil, false, err
	}
	if !format.SupportsGroups() {
		return nil, false, nil
	}
	return newGroup(f, f.ncid, nil), true, nil
}

// RootMut returns a mutable view of the root Group, checking out the
// File's single exclusive mutable-borrow slot. Release must be called to
// give it back.
func (fm *FileMut) RootMut() (*GroupMut, bool, error) {
	root, ok, err := fm.Root()
	if err != nil || !ok {
		return nil, ok, err
	}
	release, err := fm.state.Borrow()
	if err != nil {
		return nil, false, wrapErr(err)
	}
	return &GroupMut{Group: root, release: release}, true, nil
}

// --- path-resolving convenience wrappers over Root ---------------------------

func (f *File) rootOrErr() (*Group, error) {
	root, ok, err := f.Root()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nctypes.NotFoundError("root group (format does not support groups)")
	}
	return root, nil
}

// Variable resolves "a/b/name" from the root group.
func (f *File) Variable(path string) (*Variable, bool, error) {
	root, err := f.rootOrErr()
	if err != nil {
		return nil, false, err
	}
	return root.Variable(path)
}

// Variables lists every variable declared directly in the root group.
func (f *File) Variables() ([]*Variable, error) {
	root, err := f.rootOrErr()
	if err != nil {
		return nil, err
	}
	return root.Variables()
}

// Dimension resolves "a/b/name" from the root group.
func (f *File) Dimension(path string) (*Dimension, bool, error) {
	root, err := f.rootOrErr()
	if err != nil {
		return nil, false, err
	}
	parent, stem, err := root.tryResolveParent(path)
	if err != nil || parent == nil {
		return nil, false, err
	}
	d, ok := parent.DimensionByName(stem)
	return d, ok, nil
}

// Dimensions lists every dimension defined directly in the root group.
func (f *File) Dimensions() ([]*Dimension, error) {
	root, err := f.rootOrErr()
	if err != nil {
		return nil, err
	}
	return root.Dimensions()
}

// Group resolves a (possibly nested) group path from the root.
func (f *File) Group(path string) (*Group, bool, error) {
	root, err := f.rootOrErr()
	if err != nil {
		return nil, false, err
	}
	return root.Group(path)
}

// Groups lists every direct child group of the root.
func (f *File) Groups() ([]*Group, error) {
	root, err := f.rootOrErr()
	if err != nil {
		return nil, err
	}
	return root.Groups()
}

// Attribute resolves "a/b/attr" against the root group: prefix segments are
// walked as groups, the tail names a global attribute.
func (f *File) Attribute(path string) (*Attribute, bool, error) {
	root, err := f.rootOrErr()
	if err != nil {
		return nil, false, err
	}
	parent, stem, err := root.tryResolveParent(path)
	if err != nil || parent == nil {
		return nil, false, err
	}
	return parent.FindAttribute(stem)
}

// Attributes lists every global attribute at the root group.
func (f *File) Attributes() ([]*Attribute, error) {
	root, err := f.rootOrErr()
	if err != nil {
		return nil, err
	}
	return root.Attributes()
}

// --- mutation, definition-mode, lifetime ------------------------------------

// AddGroup creates (auto-creating missing intermediates) a group under the
// root.
func (fm *FileMut) AddGroup(path string) (*Group, error) {
	root, ok, err := fm.RootMut()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nctypes.NotFoundError("root group (format does not support groups)")
	}
	defer root.Release()
	return root.AddGroup(path)
}

// AddDimension registers a dimension on the root group.
func (fm *FileMut) AddDimension(name string, length uint64) (*Dimension, error) {
	root, ok, err := fm.RootMut()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nctypes.NotFoundError("root group (format does not support groups)")
	}
	defer root.Release()
	return root.AddDimension(name, length)
}

// PutAttribute writes a global attribute at the root group.
func (fm *FileMut) PutAttribute(name string, value nctypes.AttributeValue) error {
	return putAttribute(fm.ncid, bindings.Global, name, value)
}

// VariableMut resolves "a/b/name" from the root group for mutation,
// sharing the root's exclusive borrow.
func (fm *FileMut) VariableMut(path string) (*VariableMut, bool, error) {
	root, ok, err := fm.RootMut()
	if err != nil || !ok {
		return nil, ok, err
	}
	parent, stem, err := root.tryResolveParent(path)
	if err != nil || parent == nil {
		root.Release()
		return nil, false, err
	}
	pm := &GroupMut{Group: parent, release: root.release}
	return pm.VariableMut(stem)
}

// GroupMut resolves a nested group path from the root for mutation,
// checking out the File's single exclusive slot; the returned view's
// Release gives it back.
func (fm *FileMut) GroupMut(path string) (*GroupMut, bool, error) {
	root, ok, err := fm.RootMut()
	if err != nil || !ok {
		return nil, ok, err
	}
	child, ok, err := root.GroupMut(path)
	if err != nil || !ok {
		root.Release()
		return nil, ok, err
	}
	return child, true, nil
}

// Redef re-enters define mode.
func (fm *FileMut) Redef() error {
	if err := bindings.Redef(fm.ncid); err != nil {
		return wrapErr(err)
	}
	return fm.state.EnterDefine()
}

// EndDef leaves define mode, committing pending metadata changes.
func (fm *FileMut) EndDef() error {
	if err := bindings.EndDef(fm.ncid); err != nil {
		return wrapErr(err)
	}
	return fm.state.LeaveDefine()
}

// Sync flushes buffered writes to stable storage.
func (fm *FileMut) Sync() error {
	return wrapErr(bindings.Sync(fm.ncid))
}

// Close closes the container, returning any error from the C library. Safe
// to call at most meaningfully once; a second call is a no-op returning nil.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	err := bindings.Close(f.ncid)
	if f.mem != nil {
		f.mem.Close()
	}
	return wrapErr(err)
}

// Drop closes the file, discarding any error, for callers that want to
// `defer f.Drop()` instead of handling Close's error explicitly.
func (f *File) Drop() {
	_ = f.Close()
}

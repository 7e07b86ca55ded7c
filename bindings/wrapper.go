// Package bindings provides a Go-idiomatic wrapper around the netCDF-C
// library. The C API is a flat collection of `nc_*` entry points keyed by an
// integer "ncid"/"varid"/"dimid"/"typeid"; this wrapper turns that into
// small typed values (ID) and Go-shaped returns ([]byte, []ID, error)
// instead of out-parameters.
//
// Every exported function here that calls into the C library acquires the
// process-wide serialization lock for its duration (see bindings/nclock);
// a few make more than one C call under that single acquisition.
// netCDF-C is not thread-safe, and callers above this
// package must never interleave two library calls without it.
package bindings

/*
#cgo LDFLAGS: -lnetcdf
#include <stdlib.h>
#include <netcdf.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/ncgo/netcdf/bindings/nclock"
)

// ID is the opaque numeric identifier the C library assigns to open files,
// groups, dimensions, variables, and types. The library never synthesizes
// or mutates one except by handing it back verbatim from a C call.
type ID int32

// Options is the bit-flag set netCDF's open/create mode argument accepts.
// Values map 1:1 onto the NC_* C preprocessor constants.
type Options uint32

const (
	NOWRITE       Options = 0x0000
	WRITE         Options = 0x0001
	NOCLOBBER     Options = 0x0004
	DISKLESS      Options = 0x0008
	_64BIT_DATA   Options = 0x0020
	CLASSIC       Options = 0x0100
	_64BIT_OFFSET Options = 0x0200
	SHARE         Options = 0x0800
	NETCDF4       Options = 0x1000
	INMEMORY      Options = 0x8000
)

// Atomic/user type identifiers, matching the built-in NC_* type constants.
const (
	Byte     ID = 1
	Char     ID = 2
	Short    ID = 3
	Int      ID = 4
	Float    ID = 5
	Double   ID = 6
	UByte    ID = 7
	UShort   ID = 8
	UInt     ID = 9
	Int64    ID = 10
	UInt64   ID = 11
	String   ID = 12
	Compound ID = 100
	Vlen     ID = 101
	Enum     ID = 102
	Opaque   ID = 103
)

// Error wraps a non-zero netCDF status code. The numeric code is preserved
// verbatim so callers can branch on it (see pkg/nctypes.Error).
type Error struct {
	Code int
	msg  string
}

func (e *Error) Error() string { return e.msg }

func newErr(code C.int) error {
	if code == 0 {
		return nil
	}
	return &Error{Code: int(code), msg: C.GoString(C.nc_strerror(code))}
}

// Create opens a new file for writing, failing if it exists and NOCLOBBER
// is set.
func Create(path string, mode Options) (ID, error) {
	defer nclock.Acquire()()
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	var ncid C.int
	err := newErr(C.nc_create(cpath, C.int(mode), &ncid))
	return ID(ncid), err
}

// Open opens an existing file.
func Open(path string, mode Options) (ID, error) {
	defer nclock.Acquire()()
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	var ncid C.int
	err := newErr(C.nc_open(cpath, C.int(mode), &ncid))
	return ID(ncid), err
}

// OpenMem opens an in-memory image of a file. The caller retains ownership
// of data and must keep it alive and unmoved for the lifetime of the
// returned ID. pkg/netcdf's OpenFromMemory does not call this: it copies
// the image into an internal/ncmem backing file and opens that by path.
func OpenMem(name string, mode Options, data []byte) (ID, error) {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var ncid C.int
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	err := newErr(C.nc_open_mem(cname, C.int(mode), C.size_t(len(data)), ptr, &ncid))
	return ID(ncid), err
}

// Close closes a container identifier. Idempotent calls after the first are
// the caller's responsibility to avoid (the C library itself errors on a
// double close); File tracks this so Close/Drop never calls here twice.
func Close(ncid ID) error {
	defer nclock.Acquire()()
	return newErr(C.nc_close(C.int(ncid)))
}

// Sync flushes buffered writes to stable storage.
func Sync(ncid ID) error {
	defer nclock.Acquire()()
	return newErr(C.nc_sync(C.int(ncid)))
}

// Redef re-enters define mode on an already-open file.
func Redef(ncid ID) error {
	defer nclock.Acquire()()
	return newErr(C.nc_redef(C.int(ncid)))
}

// EndDef leaves define mode, committing pending metadata changes.
func EndDef(ncid ID) error {
	defer nclock.Acquire()()
	return newErr(C.nc_enddef(C.int(ncid)))
}

// Path returns the path the container was opened/created with, as raw
// bytes (the C library does not guarantee UTF-8).
func Path(ncid ID) ([]byte, error) {
	defer nclock.Acquire()()
	var n C.size_t
	if err := newErr(C.nc_inq_path(C.int(ncid), &n, nil)); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, int(n))
	if err := newErr(C.nc_inq_path(C.int(ncid), &n, (*C.char)(unsafe.Pointer(&buf[0])))); err != nil {
		return nil, err
	}
	return buf, nil
}

// Format reports the on-disk format variant (classic, 64-bit offset,
// netCDF-4, netCDF-4 classic model, ...).
func Format(ncid ID) (int, error) {
	defer nclock.Acquire()()
	var f C.int
	err := newErr(C.nc_inq_format(C.int(ncid), &f))
	return int(f), err
}

// --- Groups ---------------------------------------------------------------

// DefGrp creates a child group under parent.
func DefGrp(parent ID, name string) (ID, error) {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var grpid C.int
	err := newErr(C.nc_def_grp(C.int(parent), cname, &grpid))
	return ID(grpid), err
}

// InqGrps returns the direct child group ids of ncid.
func InqGrps(ncid ID) ([]ID, error) {
	defer nclock.Acquire()()
	var n C.int
	if err := newErr(C.nc_inq_grps(C.int(ncid), &n, nil)); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	ids := make([]C.int, n)
	if err := newErr(C.nc_inq_grps(C.int(ncid), &n, &ids[0])); err != nil {
		return nil, err
	}
	return toIDs(ids), nil
}

// InqGrpName returns a group's local (not fully qualified) name.
func InqGrpName(ncid ID) (string, error) {
	defer nclock.Acquire()()
	buf := make([]C.char, maxNameLen+1)
	if err := newErr(C.nc_inq_grpname(C.int(ncid), &buf[0])); err != nil {
		return "", err
	}
	return C.GoString(&buf[0]), nil
}

// InqGrpParent returns the parent group id, or an error if ncid is root.
func InqGrpParent(ncid ID) (ID, error) {
	defer nclock.Acquire()()
	var p C.int
	err := newErr(C.nc_inq_grp_parent(C.int(ncid), &p))
	return ID(p), err
}

// InqGrpNcid looks up an immediate child group by name.
func InqGrpNcid(ncid ID, name string) (ID, bool, error) {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var grpid C.int
	err := newErr(C.nc_inq_grp_ncid(C.int(ncid), cname, &grpid))
	if isENOGRP(err) {
		return 0, false, nil
	}
	return ID(grpid), err == nil, err
}

// --- Dimensions -------------------------------------------------------------

// DefDim registers a dimension; length 0 means unlimited.
func DefDim(ncid ID, name string, length uint64) (ID, error) {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var dimid C.int
	err := newErr(C.nc_def_dim(C.int(ncid), cname, C.size_t(length), &dimid))
	return ID(dimid), err
}

// InqDim returns a dimension's name and current length.
func InqDim(ncid, dimid ID) (string, uint64, error) {
	defer nclock.Acquire()()
	buf := make([]C.char, maxNameLen+1)
	var length C.size_t
	err := newErr(C.nc_inq_dim(C.int(ncid), C.int(dimid), &buf[0], &length))
	return C.GoString(&buf[0]), uint64(length), err
}

// InqDimID looks up a dimension by name within ncid (no ancestor walk —
// that's internal/ncwalk's job).
func InqDimID(ncid ID, name string) (ID, bool, error) {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var dimid C.int
	err := newErr(C.nc_inq_dimid(C.int(ncid), cname, &dimid))
	if isEBADDIM(err) {
		return 0, false, nil
	}
	return ID(dimid), err == nil, err
}

// InqDimIDs returns the ids of the dimensions defined directly in ncid
// (dimensions of parent groups are not included).
func InqDimIDs(ncid ID) ([]ID, error) {
	defer nclock.Acquire()()
	var n C.int
	if err := newErr(C.nc_inq_dimids(C.int(ncid), &n, nil, 0)); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	ids := make([]C.int, n)
	if err := newErr(C.nc_inq_dimids(C.int(ncid), &n, &ids[0], 0)); err != nil {
		return nil, err
	}
	return toIDs(ids), nil
}

// InqUnlimdims returns the unlimited-dimension ids visible at ncid.
func InqUnlimdims(ncid ID) ([]ID, error) {
	defer nclock.Acquire()()
	var n C.int
	if err := newErr(C.nc_inq_unlimdims(C.int(ncid), &n, nil)); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	ids := make([]C.int, n)
	if err := newErr(C.nc_inq_unlimdims(C.int(ncid), &n, &ids[0])); err != nil {
		return nil, err
	}
	return toIDs(ids), nil
}

// --- Variables --------------------------------------------------------------

// DefVar declares a new variable with the given element type and dimension
// ids (ordered, outermost first).
func DefVar(ncid ID, name string, xtype ID, dimids []ID) (ID, error) {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cdims := toCInts(dimids)
	var varid C.int
	var dimsPtr *C.int
	if len(cdims) > 0 {
		dimsPtr = &cdims[0]
	}
	err := newErr(C.nc_def_var(C.int(ncid), cname, C.nc_type(xtype), C.int(len(dimids)), dimsPtr, &varid))
	return ID(varid), err
}

// InqVarID looks up a variable by name within ncid.
func InqVarID(ncid ID, name string) (ID, bool, error) {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var varid C.int
	err := newErr(C.nc_inq_varid(C.int(ncid), cname, &varid))
	if isENOTVAR(err) {
		return 0, false, nil
	}
	return ID(varid), err == nil, err
}

// InqVarIDs returns every variable id declared directly in ncid.
func InqVarIDs(ncid ID) ([]ID, error) {
	defer nclock.Acquire()()
	var n C.int
	if err := newErr(C.nc_inq_varids(C.int(ncid), &n, nil)); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	ids := make([]C.int, n)
	if err := newErr(C.nc_inq_varids(C.int(ncid), &n, &ids[0])); err != nil {
		return nil, err
	}
	return toIDs(ids), nil
}

// VarInfo is the fixed metadata returned by a single nc_inq_var call.
type VarInfo struct {
	Name   string
	XType  ID
	DimIDs []ID
	NAtts  int
}

// InqVar returns a variable's declared shape.
func InqVar(ncid, varid ID) (VarInfo, error) {
	defer nclock.Acquire()()
	buf := make([]C.char, maxNameLen+1)
	var xtype C.nc_type
	var ndims, natts C.int
	dimids := make([]C.int, maxDims)
	if err := newErr(C.nc_inq_var(C.int(ncid), C.int(varid), &buf[0], &xtype, &ndims, &dimids[0], &natts)); err != nil {
		return VarInfo{}, err
	}
	return VarInfo{
		Name:   C.GoString(&buf[0]),
		XType:  ID(xtype),
		DimIDs: toIDs(dimids[:ndims]),
		NAtts:  int(natts),
	}, nil
}

// DefVarChunking sets the storage (contiguous vs chunked) and chunk sizes.
func DefVarChunking(ncid, varid ID, chunked bool, chunkSizes []uint64) error {
	defer nclock.Acquire()()
	storage := C.int(0) // NC_CONTIGUOUS
	if chunked {
		storage = 1 // NC_CHUNKED
	}
	sizes := make([]C.size_t, len(chunkSizes))
	for i, s := range chunkSizes {
		sizes[i] = C.size_t(s)
	}
	var ptr *C.size_t
	if len(sizes) > 0 {
		ptr = &sizes[0]
	}
	return newErr(C.nc_def_var_chunking(C.int(ncid), C.int(varid), storage, ptr))
}

// DefVarDeflate sets compression level and shuffle filter.
func DefVarDeflate(ncid, varid ID, shuffle bool, level int) error {
	defer nclock.Acquire()()
	sh, dfl := C.int(0), C.int(0)
	if shuffle {
		sh = 1
	}
	if level > 0 {
		dfl = 1
	}
	return newErr(C.nc_def_var_deflate(C.int(ncid), C.int(varid), sh, dfl, C.int(level)))
}

// Endianness constants, matching NC_ENDIAN_*.
const (
	EndianNative ID = 0
	EndianLittle ID = 1
	EndianBig    ID = 2
)

// DefVarEndian forces the on-disk byte order for a variable.
func DefVarEndian(ncid, varid ID, endian ID) error {
	defer nclock.Acquire()()
	return newErr(C.nc_def_var_endian(C.int(ncid), C.int(varid), C.int(endian)))
}

// InqVarEndian reads back the configured byte order.
func InqVarEndian(ncid, varid ID) (ID, error) {
	defer nclock.Acquire()()
	var e C.int
	err := newErr(C.nc_inq_var_endian(C.int(ncid), C.int(varid), &e))
	return ID(e), err
}

// DefVarFill sets or disables the fill policy; fillValue is raw bytes sized
// to the variable's element type (nil when noFill is true).
func DefVarFill(ncid, varid ID, noFill bool, fillValue []byte) error {
	defer nclock.Acquire()()
	nf := C.int(0)
	if noFill {
		nf = 1
	}
	var ptr unsafe.Pointer
	if len(fillValue) > 0 {
		ptr = unsafe.Pointer(&fillValue[0])
	}
	return newErr(C.nc_def_var_fill(C.int(ncid), C.int(varid), nf, ptr))
}

// InqVarFill reads back the fill policy. size must be the element's byte
// size; the returned slice is nil when no-fill is active.
func InqVarFill(ncid, varid ID, size int) (noFill bool, value []byte, err error) {
	defer nclock.Acquire()()
	var nf C.int
	buf := make([]byte, size)
	e := newErr(C.nc_inq_var_fill(C.int(ncid), C.int(varid), &nf, unsafe.Pointer(&buf[0])))
	if e != nil {
		return false, nil, e
	}
	if nf != 0 {
		return true, nil, nil
	}
	return false, buf, nil
}

// --- Hyperslab I/O ----------------------------------------------------------

func toSizeT(in []uint64) []C.size_t {
	out := make([]C.size_t, len(in))
	for i, v := range in {
		out[i] = C.size_t(v)
	}
	return out
}

func toPtrdiffT(in []int64) []C.ptrdiff_t {
	out := make([]C.ptrdiff_t, len(in))
	for i, v := range in {
		out[i] = C.ptrdiff_t(v)
	}
	return out
}

// PutVars writes a strided hyperslab. ptr must point to a buffer whose
// element type matches xtype exactly (the host-type/variable-type
// compatibility check happens one layer up, in internal/ncio); this
// function dispatches to the matching nc_put_vars_<type> C entry point for
// the known atomic types and falls back to the generic (no-conversion)
// nc_put_vars for everything else (char, opaque, enum, compound, vlen).
func PutVars(ncid, varid ID, start, count []uint64, stride []int64, xtype ID, ptr unsafe.Pointer) error {
	defer nclock.Acquire()()
	s := toSizeT(start)
	c := toSizeT(count)
	st := toPtrdiffT(stride)
	var sp, cp *C.size_t
	var stp *C.ptrdiff_t
	if len(s) > 0 {
		sp, cp = &s[0], &c[0]
	}
	if len(st) > 0 {
		stp = &st[0]
	}
	switch xtype {
	case Byte:
		return newErr(C.nc_put_vars_schar(C.int(ncid), C.int(varid), sp, cp, stp, (*C.schar)(ptr)))
	case UByte:
		return newErr(C.nc_put_vars_uchar(C.int(ncid), C.int(varid), sp, cp, stp, (*C.uchar)(ptr)))
	case Short:
		return newErr(C.nc_put_vars_short(C.int(ncid), C.int(varid), sp, cp, stp, (*C.short)(ptr)))
	case UShort:
		return newErr(C.nc_put_vars_ushort(C.int(ncid), C.int(varid), sp, cp, stp, (*C.ushort)(ptr)))
	case Int:
		return newErr(C.nc_put_vars_int(C.int(ncid), C.int(varid), sp, cp, stp, (*C.int)(ptr)))
	case UInt:
		return newErr(C.nc_put_vars_uint(C.int(ncid), C.int(varid), sp, cp, stp, (*C.uint)(ptr)))
	case Int64:
		return newErr(C.nc_put_vars_longlong(C.int(ncid), C.int(varid), sp, cp, stp, (*C.longlong)(ptr)))
	case UInt64:
		return newErr(C.nc_put_vars_ulonglong(C.int(ncid), C.int(varid), sp, cp, stp, (*C.ulonglong)(ptr)))
	case Float:
		return newErr(C.nc_put_vars_float(C.int(ncid), C.int(varid), sp, cp, stp, (*C.float)(ptr)))
	case Double:
		return newErr(C.nc_put_vars_double(C.int(ncid), C.int(varid), sp, cp, stp, (*C.double)(ptr)))
	case Char:
		return newErr(C.nc_put_vars_text(C.int(ncid), C.int(varid), sp, cp, stp, (*C.char)(ptr)))
	default:
		return newErr(C.nc_put_vars(C.int(ncid), C.int(varid), sp, cp, stp, ptr))
	}
}

// GetVars is the read counterpart of PutVars.
func GetVars(ncid, varid ID, start, count []uint64, stride []int64, xtype ID, ptr unsafe.Pointer) error {
	defer nclock.Acquire()()
	s := toSizeT(start)
	c := toSizeT(count)
	st := toPtrdiffT(stride)
	var sp, cp *C.size_t
	var stp *C.ptrdiff_t
	if len(s) > 0 {
		sp, cp = &s[0], &c[0]
	}
	if len(st) > 0 {
		stp = &st[0]
	}
	switch xtype {
	case Byte:
		return newErr(C.nc_get_vars_schar(C.int(ncid), C.int(varid), sp, cp, stp, (*C.schar)(ptr)))
	case UByte:
		return newErr(C.nc_get_vars_uchar(C.int(ncid), C.int(varid), sp, cp, stp, (*C.uchar)(ptr)))
	case Short:
		return newErr(C.nc_get_vars_short(C.int(ncid), C.int(varid), sp, cp, stp, (*C.short)(ptr)))
	case UShort:
		return newErr(C.nc_get_vars_ushort(C.int(ncid), C.int(varid), sp, cp, stp, (*C.ushort)(ptr)))
	case Int:
		return newErr(C.nc_get_vars_int(C.int(ncid), C.int(varid), sp, cp, stp, (*C.int)(ptr)))
	case UInt:
		return newErr(C.nc_get_vars_uint(C.int(ncid), C.int(varid), sp, cp, stp, (*C.uint)(ptr)))
	case Int64:
		return newErr(C.nc_get_vars_longlong(C.int(ncid), C.int(varid), sp, cp, stp, (*C.longlong)(ptr)))
	case UInt64:
		return newErr(C.nc_get_vars_ulonglong(C.int(ncid), C.int(varid), sp, cp, stp, (*C.ulonglong)(ptr)))
	case Float:
		return newErr(C.nc_get_vars_float(C.int(ncid), C.int(varid), sp, cp, stp, (*C.float)(ptr)))
	case Double:
		return newErr(C.nc_get_vars_double(C.int(ncid), C.int(varid), sp, cp, stp, (*C.double)(ptr)))
	case Char:
		return newErr(C.nc_get_vars_text(C.int(ncid), C.int(varid), sp, cp, stp, (*C.char)(ptr)))
	default:
		return newErr(C.nc_get_vars(C.int(ncid), C.int(varid), sp, cp, stp, ptr))
	}
}

// PutVarsString writes a hyperslab of the NC_STRING type. The C library
// allocates no memory here (the caller-owned pointers are copied in).
func PutVarsString(ncid, varid ID, start, count []uint64, stride []int64, values []string) error {
	cstrs := make([]*C.char, len(values))
	for i, v := range values {
		cstrs[i] = C.CString(v)
	}
	defer func() {
		for _, p := range cstrs {
			C.free(unsafe.Pointer(p))
		}
	}()
	defer nclock.Acquire()()
	s, c, st := toSizeT(start), toSizeT(count), toPtrdiffT(stride)
	var sp, cp *C.size_t
	var stp *C.ptrdiff_t
	if len(s) > 0 {
		sp, cp = &s[0], &c[0]
	}
	if len(st) > 0 {
		stp = &st[0]
	}
	var pp **C.char
	if len(cstrs) > 0 {
		pp = &cstrs[0]
	}
	return newErr(C.nc_put_vars_string(C.int(ncid), C.int(varid), sp, cp, stp, pp))
}

// GetVarsString reads a hyperslab of the NC_STRING type, copying each
// element out and freeing the C-allocated pointer array immediately.
func GetVarsString(ncid, varid ID, start, count []uint64, stride []int64, n int) ([]string, error) {
	ptrs := make([]*C.char, n)
	func() {
		defer nclock.Acquire()()
		s, c, st := toSizeT(start), toSizeT(count), toPtrdiffT(stride)
		var sp, cp *C.size_t
		var stp *C.ptrdiff_t
		if len(s) > 0 {
			sp, cp = &s[0], &c[0]
		}
		if len(st) > 0 {
			stp = &st[0]
		}
		var pp **C.char
		if n > 0 {
			pp = &ptrs[0]
		}
		_ = newErr(C.nc_get_vars_string(C.int(ncid), C.int(varid), sp, cp, stp, pp))
	}()
	out := make([]string, n)
	for i, p := range ptrs {
		if p != nil {
			out[i] = C.GoString(p)
		}
	}
	if n > 0 {
		defer nclock.Acquire()()
		C.nc_free_string(C.size_t(n), &ptrs[0])
	}
	return out, nil
}

// --- Attributes --------------------------------------------------------------

// Global is the library's NC_GLOBAL sentinel, passed in place of a variable
// id to address a group/file-level attribute.
const Global ID = -1

// InqAttName returns the name of the nth attribute at (ncid, varid).
func InqAttName(ncid, varid ID, n int) (string, error) {
	defer nclock.Acquire()()
	buf := make([]C.char, maxNameLen+1)
	err := newErr(C.nc_inq_attname(C.int(ncid), C.int(varid), C.int(n), &buf[0]))
	return C.GoString(&buf[0]), err
}

// AttInfo describes an attribute's stored type and element count.
type AttInfo struct {
	XType ID
	Len   uint64
}

// InqAtt looks up an attribute by name, returning (zero, false, nil) when
// the C library reports "no such attribute".
func InqAtt(ncid, varid ID, name string) (AttInfo, bool, error) {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var xtype C.nc_type
	var length C.size_t
	err := newErr(C.nc_inq_att(C.int(ncid), C.int(varid), cname, &xtype, &length))
	if isENOTATT(err) {
		return AttInfo{}, false, nil
	}
	return AttInfo{XType: ID(xtype), Len: uint64(length)}, err == nil, err
}

// InqNatts returns the attribute count at ncid/varid.
func InqNatts(ncid, varid ID) (int, error) {
	defer nclock.Acquire()()
	var n C.int
	var err error
	if varid == Global {
		err = newErr(C.nc_inq_natts(C.int(ncid), &n))
	} else {
		var dummy [1]C.char
		err = newErr(C.nc_inq_var(C.int(ncid), C.int(varid), &dummy[0], nil, nil, nil, &n))
	}
	return int(n), err
}

// GetAttRaw reads an attribute's value as raw bytes sized to elemSize*Len.
func GetAttRaw(ncid, varid ID, name string, buf []byte) error {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var ptr unsafe.Pointer
	if len(buf) > 0 {
		ptr = unsafe.Pointer(&buf[0])
	}
	return newErr(C.nc_get_att(C.int(ncid), C.int(varid), cname, ptr))
}

// PutAttRaw writes an attribute of an atomic/compound/enum/opaque/vlen type
// from raw bytes already laid out in the target on-disk representation.
func PutAttRaw(ncid, varid ID, name string, xtype ID, n int, buf []byte) error {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var ptr unsafe.Pointer
	if len(buf) > 0 {
		ptr = unsafe.Pointer(&buf[0])
	}
	return newErr(C.nc_put_att(C.int(ncid), C.int(varid), cname, C.nc_type(xtype), C.size_t(n), ptr))
}

// PutAttString writes a string-array attribute.
func PutAttString(ncid, varid ID, name string, values []string) error {
	cstrs := make([]*C.char, len(values))
	for i, v := range values {
		cstrs[i] = C.CString(v)
	}
	defer func() {
		for _, p := range cstrs {
			C.free(unsafe.Pointer(p))
		}
	}()
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var pp **C.char
	if len(cstrs) > 0 {
		pp = &cstrs[0]
	}
	return newErr(C.nc_put_att_string(C.int(ncid), C.int(varid), cname, C.size_t(len(values)), pp))
}

// GetAttString reads a string-array attribute, copying each element out and
// freeing the C-allocated pointer array before returning.
func GetAttString(ncid, varid ID, name string, n int) ([]string, error) {
	cname := C.CString(name)
	ptrs := make([]*C.char, n)
	var callErr error
	func() {
		defer nclock.Acquire()()
		defer C.free(unsafe.Pointer(cname))
		var pp **C.char
		if n > 0 {
			pp = &ptrs[0]
		}
		callErr = newErr(C.nc_get_att_string(C.int(ncid), C.int(varid), cname, pp))
	}()
	out := make([]string, n)
	for i, p := range ptrs {
		if p != nil {
			out[i] = C.GoString(p)
		}
	}
	if n > 0 {
		defer nclock.Acquire()()
		C.nc_free_string(C.size_t(n), &ptrs[0])
	}
	return out, callErr
}

// --- User-defined types ------------------------------------------------------

// InqTypeID looks up a named type visible at ncid (searches only this
// group, per the netCDF-C semantics; internal/ncwalk handles ancestor
// search for the host library's "search upward" rule).
func InqTypeID(ncid ID, name string) (ID, bool, error) {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var typeid C.nc_type
	err := newErr(C.nc_inq_typeid(C.int(ncid), cname, &typeid))
	if isEBADTYPE(err) {
		return 0, false, nil
	}
	return ID(typeid), err == nil, err
}

// TypeInfo is the fixed-size part of nc_inq_type/nc_inq_user_type.
type TypeInfo struct {
	Name     string
	Size     int
	BaseType ID  // meaningful for Enum/Vlen
	NFields  int // meaningful for Compound
	Class    ID  // Compound/Vlen/Enum/Opaque
}

func InqUserType(ncid, xtype ID) (TypeInfo, error) {
	defer nclock.Acquire()()
	buf := make([]C.char, maxNameLen+1)
	var size C.size_t
	var base C.nc_type
	var nfields C.size_t
	var class C.int
	err := newErr(C.nc_inq_user_type(C.int(ncid), C.nc_type(xtype), &buf[0], &size, &base, &nfields, &class))
	return TypeInfo{
		Name:     C.GoString(&buf[0]),
		Size:     int(size),
		BaseType: ID(base),
		NFields:  int(nfields),
		Class:    ID(class),
	}, err
}

// DefCompound begins a new compound type of the given total byte size.
func DefCompound(ncid ID, name string, size int) (ID, error) {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var typeid C.nc_type
	err := newErr(C.nc_def_compound(C.int(ncid), cname, C.size_t(size), &typeid))
	return ID(typeid), err
}

// InsertCompoundField inserts a scalar field at offset into a compound type
// still under construction.
func InsertCompoundField(ncid, typeid ID, name string, offset int, fieldType ID) error {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return newErr(C.nc_insert_compound(C.int(ncid), C.nc_type(typeid), cname, C.size_t(offset), C.nc_type(fieldType)))
}

// InsertCompoundArrayField inserts a fixed-size array field.
func InsertCompoundArrayField(ncid, typeid ID, name string, offset int, fieldType ID, dims []int) error {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cdims := make([]C.int, len(dims))
	for i, d := range dims {
		cdims[i] = C.int(d)
	}
	var dp *C.int
	if len(cdims) > 0 {
		dp = &cdims[0]
	}
	return newErr(C.nc_insert_array_compound(C.int(ncid), C.nc_type(typeid), cname, C.size_t(offset), C.nc_type(fieldType), C.int(len(dims)), dp))
}

// CompoundFieldInfo mirrors one nc_inq_compound_field call.
type CompoundFieldInfo struct {
	Name      string
	Offset    int
	FieldType ID
	NDims     int
	Dims      []int
}

func InqCompoundField(ncid, typeid ID, idx int) (CompoundFieldInfo, error) {
	defer nclock.Acquire()()
	buf := make([]C.char, maxNameLen+1)
	var offset C.size_t
	var ftype C.nc_type
	var ndims C.int
	dims := make([]C.int, maxDims)
	err := newErr(C.nc_inq_compound_field(C.int(ncid), C.nc_type(typeid), C.int(idx), &buf[0], &offset, &ftype, &ndims, &dims[0]))
	out := CompoundFieldInfo{Name: C.GoString(&buf[0]), Offset: int(offset), FieldType: ID(ftype), NDims: int(ndims)}
	for i := 0; i < int(ndims); i++ {
		out.Dims = append(out.Dims, int(dims[i]))
	}
	return out, err
}

// DefEnum begins a new enum type with the given integer base type.
func DefEnum(ncid ID, base ID, name string) (ID, error) {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var typeid C.nc_type
	err := newErr(C.nc_def_enum(C.int(ncid), C.nc_type(base), cname, &typeid))
	return ID(typeid), err
}

// InsertEnumMember inserts one (name, value) pair. value must point to a
// buffer sized to the base type's width.
func InsertEnumMember(ncid, typeid ID, name string, value unsafe.Pointer) error {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return newErr(C.nc_insert_enum(C.int(ncid), C.nc_type(typeid), cname, value))
}

// InqEnumMember reads back one enum member by index.
func InqEnumMember(ncid, typeid ID, idx int, valueSize int) (name string, value []byte, err error) {
	defer nclock.Acquire()()
	buf := make([]C.char, maxNameLen+1)
	val := make([]byte, valueSize)
	e := newErr(C.nc_inq_enum_member(C.int(ncid), C.nc_type(typeid), C.int(idx), &buf[0], unsafe.Pointer(&val[0])))
	return C.GoString(&buf[0]), val, e
}

// DefOpaque defines a fixed-size opaque type.
func DefOpaque(ncid ID, name string, size int) (ID, error) {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var typeid C.nc_type
	err := newErr(C.nc_def_opaque(C.int(ncid), C.size_t(size), cname, &typeid))
	return ID(typeid), err
}

// DefVlen defines a variable-length type over the given base element type.
func DefVlen(ncid ID, name string, base ID) (ID, error) {
	defer nclock.Acquire()()
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var typeid C.nc_type
	err := newErr(C.nc_def_vlen(C.int(ncid), cname, C.nc_type(base), &typeid))
	return ID(typeid), err
}

// --- Vlen element I/O --------------------------------------------------------
//
// A vlen has no strided-hyperslab form (there is no nc_put_vars/nc_get_vars
// counterpart for ragged elements); vlen I/O reads
// and writes exactly one element at a time via nc_get_var1/nc_put_var1.

// PutVar1Vlen writes one vlen element at the fully-qualified index position.
// data is elemSize*n bytes already laid out in the base type's native
// representation; the C library copies it into the file before returning,
// so the local C allocation backing it is freed immediately after the call.
func PutVar1Vlen(ncid, varid ID, index []uint64, elemSize int, data []byte) error {
	defer nclock.Acquire()()
	idx := toSizeT(index)
	var idxPtr *C.size_t
	if len(idx) > 0 {
		idxPtr = &idx[0]
	}
	var vl C.nc_vlen_t
	if elemSize > 0 {
		vl.len = C.size_t(len(data) / elemSize)
	}
	if vl.len > 0 {
		vl.p = C.CBytes(data)
		defer C.free(vl.p)
	}
	return newErr(C.nc_put_var1(C.int(ncid), C.int(varid), idxPtr, unsafe.Pointer(&vl)))
}

// GetVar1Vlen reads one vlen element, copies its payload out, and frees the
// C-allocated buffer the library handed back before returning; vlen
// buffers never outlive the call.
func GetVar1Vlen(ncid, varid ID, index []uint64, elemSize int) ([]byte, error) {
	defer nclock.Acquire()()
	idx := toSizeT(index)
	var idxPtr *C.size_t
	if len(idx) > 0 {
		idxPtr = &idx[0]
	}
	var vl C.nc_vlen_t
	if err := newErr(C.nc_get_var1(C.int(ncid), C.int(varid), idxPtr, unsafe.Pointer(&vl))); err != nil {
		return nil, err
	}
	n := int(vl.len)
	if n == 0 {
		return nil, nil
	}
	out := C.GoBytes(vl.p, C.int(n*elemSize))
	C.nc_free_vlen(&vl)
	return out, nil
}

// --- helpers ----------------------------------------------------------------

const (
	maxNameLen = 256  // NC_MAX_NAME
	maxDims    = 1024 // NC_MAX_VAR_DIMS
)

func toIDs(cs []C.int) []ID {
	out := make([]ID, len(cs))
	for i, c := range cs {
		out[i] = ID(c)
	}
	return out
}

func toCInts(ids []ID) []C.int {
	out := make([]C.int, len(ids))
	for i, id := range ids {
		out[i] = C.int(id)
	}
	return out
}

func isENOTVAR(err error) bool  { return hasCode(err, -49) }  // NC_ENOTVAR
func isENOTATT(err error) bool  { return hasCode(err, -43) }  // NC_ENOTATT
func isENOGRP(err error) bool   { return hasCode(err, -125) } // NC_ENOGRP
func isEBADTYPE(err error) bool { return hasCode(err, -45) }  // NC_EBADTYPE
func isEBADDIM(err error) bool  { return hasCode(err, -46) }  // NC_EBADDIM

func hasCode(err error, code int) bool {
	var e *Error
	if err == nil {
		return false
	}
	if ae, ok := err.(*Error); ok {
		e = ae
	} else {
		return false
	}
	return e.Code == code
}

// DescribeError renders a C status code using the library's own message
// table, for callers that only have the numeric code (e.g. after crossing a
// serialization boundary).
func DescribeError(code int) string {
	defer nclock.Acquire()()
	return fmt.Sprintf("%s (code %d)", C.GoString(C.nc_strerror(C.int(code))), code)
}

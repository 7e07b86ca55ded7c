// Package nctypes holds the public, dependency-light vocabulary shared by
// every layer of this library: the error taxonomy, container/entity
// identifiers, the atomic type enum, type descriptors, and attribute
// values. Errors are a single typed *Error with a stable Kind enum, so
// callers branch on Kind rather than on error text.
package nctypes

import "fmt"

// ErrKind classifies a failure so callers can branch on intent rather than
// on message text.
type ErrKind int

const (
	ErrKindStorageLayer ErrKind = iota
	ErrKindAlreadyExists
	ErrKindIndexLen
	ErrKindSliceLen
	ErrKindDimensionMismatch
	ErrKindIndexMismatch
	ErrKindSliceMismatch
	ErrKindZeroSlice
	ErrKindStride
	ErrKindBufferLen
	ErrKindTypeMismatch
	ErrKindTypeUnknown
	ErrKindAmbiguous
	ErrKindOverflow
	ErrKindNotFound
	ErrKindWrongDataset
	ErrKindUtf8Conversion
	ErrKindNulError
	ErrKindConversion
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindStorageLayer:
		return "StorageLayer"
	case ErrKindAlreadyExists:
		return "AlreadyExists"
	case ErrKindIndexLen:
		return "IndexLen"
	case ErrKindSliceLen:
		return "SliceLen"
	case ErrKindDimensionMismatch:
		return "DimensionMismatch"
	case ErrKindIndexMismatch:
		return "IndexMismatch"
	case ErrKindSliceMismatch:
		return "SliceMismatch"
	case ErrKindZeroSlice:
		return "ZeroSlice"
	case ErrKindStride:
		return "Stride"
	case ErrKindBufferLen:
		return "BufferLen"
	case ErrKindTypeMismatch:
		return "TypeMismatch"
	case ErrKindTypeUnknown:
		return "TypeUnknown"
	case ErrKindAmbiguous:
		return "Ambiguous"
	case ErrKindOverflow:
		return "Overflow"
	case ErrKindNotFound:
		return "NotFound"
	case ErrKindWrongDataset:
		return "WrongDataset"
	case ErrKindUtf8Conversion:
		return "Utf8Conversion"
	case ErrKindNulError:
		return "NulError"
	case ErrKindConversion:
		return "Conversion"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is the single error type this library returns. Code is populated
// only for ErrKindStorageLayer/ErrKindAlreadyExists, carrying the raw
// netCDF-C status, and for ErrKindTypeUnknown, carrying the unrecognized
// type code.
type Error struct {
	Kind ErrKind
	Msg  string
	Code int
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on Kind, so callers can write
// errors.Is(err, &nctypes.Error{Kind: nctypes.ErrKindNotFound}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newErr(kind ErrKind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

// Sentinel errors for Is()-style matching at call sites.
var (
	ErrNotFound      = newErr(ErrKindNotFound, "not found")
	ErrAlreadyExists = newErr(ErrKindAlreadyExists, "already exists")
	ErrWrongDataset  = newErr(ErrKindWrongDataset, "identifier belongs to a different file")
	ErrAmbiguous     = newErr(ErrKindAmbiguous, "ambiguous shape")
	ErrTypeMismatch  = newErr(ErrKindTypeMismatch, "type mismatch")
)

// DimensionMismatchError reports a selector whose rank disagrees with a
// variable's rank.
func DimensionMismatchError(wanted, actual int) *Error {
	return &Error{
		Kind: ErrKindDimensionMismatch,
		Msg:  fmt.Sprintf("dimension mismatch: wanted %d, got %d", wanted, actual),
	}
}

// BufferLenError reports a caller-supplied buffer of the wrong length.
func BufferLenError(wanted, actual int) *Error {
	return &Error{
		Kind: ErrKindBufferLen,
		Msg:  fmt.Sprintf("buffer length mismatch: wanted %d, got %d", wanted, actual),
	}
}

// TypeUnknownError reports an on-disk type code this library does not
// recognize.
func TypeUnknownError(code int) *Error {
	return &Error{Kind: ErrKindTypeUnknown, Msg: fmt.Sprintf("unknown type code %d", code), Code: code}
}

// NotFoundError names the missing entity.
func NotFoundError(what string) *Error {
	return &Error{Kind: ErrKindNotFound, Msg: "not found: " + what}
}

// StorageLayerError wraps a raw netCDF-C status code. Three specific codes
// (NC_EEXIST, NC_ENAMEINUSE and the attribute-exists code) fold into
// ErrKindAlreadyExists for ergonomic branching.
func StorageLayerError(code int, message string) *Error {
	kind := ErrKindStorageLayer
	switch code {
	case -35, -42, -110: // NC_EEXIST, NC_ENAMEINUSE, NC_EATTEXISTS
		kind = ErrKindAlreadyExists
	}
	return &Error{Kind: kind, Msg: message, Code: code}
}

package netcdf

import "github.com/ncgo/netcdf/pkg/nctypes"

// OpenOptions controls File open/append behavior.
type OpenOptions struct {
	Mode nctypes.OpenMode
}

// CreateOptions controls File creation. Mode defaults to NETCDF4 when the
// zero value is passed to CreateWith.
type CreateOptions struct {
	Mode nctypes.OpenMode
}

// OpenMemoryOptions controls OpenFromMemory. Name is an optional label used
// only to name the memfd or temp file that backs the in-memory image.
type OpenMemoryOptions struct {
	Name string
	Mode nctypes.OpenMode
}

// DefaultCreateOptions returns CreateOptions{Mode: NETCDF4}.
func DefaultCreateOptions() CreateOptions {
	return CreateOptions{Mode: nctypes.NETCDF4}
}

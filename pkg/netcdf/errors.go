package netcdf

import (
	"github.com/ncgo/netcdf/bindings"
	"github.com/ncgo/netcdf/internal/nclog"
	"github.com/ncgo/netcdf/pkg/nctypes"
)

// wrapErr translates an error from the bindings layer (a *bindings.Error
// carrying the raw netCDF-C status) into this package's *nctypes.Error
// taxonomy: any non-zero status from the C library becomes a StorageLayer
// error, with the three already-exists codes folded together by
// nctypes.StorageLayerError. nil and any other error (such as an
// *nctypes.Error from an internal package) are returned unchanged.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if be, ok := err.(*bindings.Error); ok {
		nclog.L.Debug("netcdf-c call failed", "code", be.Code, "message", be.Error())
		return nctypes.StorageLayerError(be.Code, be.Error())
	}
	return err
}

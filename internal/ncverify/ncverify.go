// Package ncverify collects the creation-time invariant assertions:
// compound/enum layout sanity, dimension
// identifiers belonging to the file they're used against, and selector rank
// matching a variable's declared rank. One function per invariant.
package ncverify

import (
	"fmt"

	"github.com/ncgo/netcdf/internal/nclayout"
	"github.com/ncgo/netcdf/pkg/nctypes"
)

// CompoundDescriptor re-validates a compound TypeDescriptor's packed-size
// invariant, for descriptors built outside
// internal/nclayout.ComputeOffsets (e.g. read back from disk via
// internal/nctypeinstall.Describe, or constructed by hand before a
// cross-file copy).
func CompoundDescriptor(d *nctypes.TypeDescriptor) error {
	if d.Kind != nctypes.KindCompound {
		return &nctypes.Error{Kind: nctypes.ErrKindConversion, Msg: "not a compound descriptor"}
	}
	specs := make([]nclayout.CompoundFieldSpec, len(d.CompoundFields))
	for i, f := range d.CompoundFields {
		specs[i] = nclayout.CompoundFieldSpec{Name: f.Name, Elem: f.Elem, ArrayDims: f.ArrayDims}
	}
	computed, err := nclayout.ComputeOffsets(specs, d.CompoundSize)
	if err != nil {
		return err
	}
	for i, f := range computed {
		if f.Offset != d.CompoundFields[i].Offset {
			return &nctypes.Error{
				Kind: nctypes.ErrKindConversion,
				Msg:  fmt.Sprintf("compound field %q has offset %d, expected %d", f.Name, d.CompoundFields[i].Offset, f.Offset),
			}
		}
	}
	return nil
}

// EnumDescriptor re-validates an enum TypeDescriptor's member set.
func EnumDescriptor(d *nctypes.TypeDescriptor) error {
	if d.Kind != nctypes.KindEnum {
		return &nctypes.Error{Kind: nctypes.ErrKindConversion, Msg: "not an enum descriptor"}
	}
	return nclayout.ValidateEnum(d.EnumBase, d.EnumMembers)
}

// DimensionOwnership checks that a dimension identifier was obtained from
// the same file as the operation using it, rejecting cross-file reuse with
// ErrWrongDataset.
func DimensionOwnership(dim nctypes.DimIdentifier, file nctypes.ContainerID) error {
	if dim.ContainerID != file {
		return &nctypes.Error{
			Kind: nctypes.ErrKindWrongDataset,
			Msg:  fmt.Sprintf("dimension %d belongs to container %d, not %d", dim.LocalID, dim.ContainerID, file),
			Err:  nctypes.ErrWrongDataset,
		}
	}
	return nil
}

// Rank checks a selector's axis count against a variable's declared rank.
func Rank(selectorRank, variableRank int) error {
	if selectorRank != variableRank {
		return nctypes.DimensionMismatchError(variableRank, selectorRank)
	}
	return nil
}

// Package nclayout computes and validates the on-disk layout of compound
// and enum types: walk fields in
// declaration order, accumulate a running offset, and assert the total
// matches the declared size. No hidden padding is tolerated either way.
package nclayout

import (
	"fmt"

	"github.com/ncgo/netcdf/pkg/nctypes"
)

// CompoundFieldSpec is the layout-free input to ComputeOffsets: just the
// field's type and array shape, in the declaration order the caller wants.
type CompoundFieldSpec struct {
	Name      string
	Elem      *nctypes.TypeDescriptor
	ArrayDims []int
}

// ComputeOffsets walks fields in declaration order, assigning each field's
// offset as the running total and advancing the total by
// basetype.size() * product(array_dims), then asserts the final total
// equals declaredSize. Non-packed layouts are rejected.
func ComputeOffsets(fields []CompoundFieldSpec, declaredSize int) ([]nctypes.CompoundField, error) {
	out := make([]nctypes.CompoundField, len(fields))
	running := 0
	for i, f := range fields {
		if f.Elem == nil {
			return nil, &nctypes.Error{Kind: nctypes.ErrKindConversion, Msg: fmt.Sprintf("compound field %q has no element type", f.Name)}
		}
		n := 1
		for _, d := range f.ArrayDims {
			if d <= 0 {
				return nil, &nctypes.Error{Kind: nctypes.ErrKindConversion, Msg: fmt.Sprintf("compound field %q has non-positive array dimension", f.Name)}
			}
			n *= d
		}
		out[i] = nctypes.CompoundField{
			Name:      f.Name,
			Elem:      f.Elem,
			ArrayDims: append([]int(nil), f.ArrayDims...),
			Offset:    running,
		}
		running += f.Elem.Size() * n
	}
	if running != declaredSize {
		return nil, &nctypes.Error{
			Kind: nctypes.ErrKindConversion,
			Msg:  fmt.Sprintf("compound layout mismatch: fields occupy %d bytes but declared size is %d (non-packed layouts are rejected)", running, declaredSize),
		}
	}
	return out, nil
}

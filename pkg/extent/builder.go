package extent

import "github.com/ncgo/netcdf/pkg/nctypes"

// The constructors below are the ergonomic selector forms: each
// converts a natural host-language shape into the canonical Selector.

// FromIndex builds the rank-1 selector that reads/writes a single element
// at position i.
func FromIndex(i int64) Selector { return Of(Index{I: i}) }

// FromIndices builds a selector of one Index extent per axis — the
// fixed-size-array-of-extents form.
func FromIndices(indices []int64) Selector {
	exts := make([]AxisExtent, len(indices))
	for i, v := range indices {
		exts[i] = Index{I: v}
	}
	return Of(exts...)
}

// FromStartCount builds a selector of SliceCount extents with stride 1,
// the "(start[], count[]) pair" form.
func FromStartCount(start, count []int64) (Selector, error) {
	if len(start) != len(count) {
		return Selector{}, &nctypes.Error{Kind: nctypes.ErrKindSliceLen, Msg: "start and count must have equal length"}
	}
	exts := make([]AxisExtent, len(start))
	for i := range start {
		exts[i] = SliceCount{Start: start[i], Count: count[i], Stride: 1}
	}
	return Of(exts...), nil
}

// FromStartCountStride builds a selector of SliceCount extents, the
// "(start[], count[], stride[]) triple" form.
func FromStartCountStride(start, count, stride []int64) (Selector, error) {
	if len(start) != len(count) || len(start) != len(stride) {
		return Selector{}, &nctypes.Error{Kind: nctypes.ErrKindSliceLen, Msg: "start, count and stride must have equal length"}
	}
	exts := make([]AxisExtent, len(start))
	for i := range start {
		exts[i] = SliceCount{Start: start[i], Count: count[i], Stride: stride[i]}
	}
	return Of(exts...), nil
}

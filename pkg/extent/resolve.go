package extent

import (
	"fmt"
	"math"

	"github.com/ncgo/netcdf/pkg/nctypes"
)

// ResolvedAxis is one axis of a resolved selector: the canonical
// (start, count, stride) triple the storage engine expects, plus whether
// resolving this axis requires its dimension to grow (write path only).
type ResolvedAxis struct {
	Start  uint64
	Count  uint64
	Stride int64
	Grows  bool
	NewLen uint64 // meaningful only when Grows
}

// Resolved is a full resolved selector, one ResolvedAxis per dimension.
type Resolved struct {
	Axes []ResolvedAxis
}

// StartCountStride splits Resolved into the three parallel slices the
// bindings layer's PutVars/GetVars expect.
func (r Resolved) StartCountStride() (start, count []uint64, stride []int64) {
	start = make([]uint64, len(r.Axes))
	count = make([]uint64, len(r.Axes))
	stride = make([]int64, len(r.Axes))
	for i, a := range r.Axes {
		start[i], count[i], stride[i] = a.Start, a.Count, a.Stride
	}
	return
}

// TotalCount returns the product of all resolved counts, saturating.
func (r Resolved) TotalCount() uint64 {
	total := uint64(1)
	for _, a := range r.Axes {
		if a.Count == 0 {
			return 0
		}
		if total > math.MaxUint64/a.Count {
			return math.MaxUint64
		}
		total *= a.Count
	}
	return total
}

func ceilDiv(a, b int64) int64 {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// resolveAxis computes the canonical triple for one axis extent against its
// dimension's current length. It does not enforce
// bounds or growth — the caller does, since that depends on whether this is
// a read or a write and on whether the dimension is unlimited.
func resolveAxis(e AxisExtent, length int64) (start, count, stride int64, err error) {
	switch v := e.(type) {
	case Index:
		return v.I, 1, 1, nil
	case Slice:
		st, serr := positiveStride(v.Stride)
		if serr != nil {
			return 0, 0, 0, serr
		}
		return v.Start, ceilDiv(length-v.Start, st), st, nil
	case SliceEnd:
		st, serr := positiveStride(v.Stride)
		if serr != nil {
			return 0, 0, 0, serr
		}
		return v.Start, ceilDiv(v.End-v.Start, st), st, nil
	case SliceCount:
		st, serr := positiveStride(v.Stride)
		if serr != nil {
			return 0, 0, 0, serr
		}
		return v.Start, v.Count, st, nil
	default:
		return 0, 0, 0, &nctypes.Error{Kind: nctypes.ErrKindConversion, Msg: "unrecognized axis extent"}
	}
}

// positiveStride validates a signed stride: zero and negative strides are
// rejected at resolution time, and overflow during signed/unsigned
// conversion saturates to the maximum signed value.
func positiveStride(s int64) (int64, error) {
	if s == 0 {
		return 0, &nctypes.Error{Kind: nctypes.ErrKindZeroSlice, Msg: "stride must not be zero"}
	}
	if s < 0 {
		return 0, &nctypes.Error{Kind: nctypes.ErrKindStride, Msg: "stride must not be negative"}
	}
	if s > math.MaxInt64-1 {
		return math.MaxInt64, nil // saturate rather than overflow
	}
	return s, nil
}

// checkRank validates the selector's rank against the variable's, expanding
// an All() selector to one axis per dimension.
func checkRank(sel Selector, rank int) ([]AxisExtent, error) {
	if sel.IsAll() {
		exts := make([]AxisExtent, rank)
		for i := range exts {
			exts[i] = Slice{Start: 0, Stride: 1}
		}
		return exts, nil
	}
	if len(sel.extents) != rank {
		return nil, nctypes.DimensionMismatchError(rank, len(sel.extents))
	}
	return sel.extents, nil
}

// Resolve resolves a read selector: no axis may grow a dimension, and every
// resolved axis must fit within its dimension's current length.
func Resolve(sel Selector, dimLens []uint64, _ []bool) (Resolved, error) {
	exts, err := checkRank(sel, len(dimLens))
	if err != nil {
		return Resolved{}, err
	}
	axes := make([]ResolvedAxis, len(exts))
	for i, e := range exts {
		start, count, stride, err := resolveAxis(e, int64(dimLens[i]))
		if err != nil {
			return Resolved{}, err
		}
		if count < 0 {
			count = 0
		}
		if err := boundsCheck(e, uint64(start), uint64(count), stride, dimLens[i]); err != nil {
			return Resolved{}, err
		}
		axes[i] = ResolvedAxis{Start: uint64(start), Count: uint64(count), Stride: stride}
	}
	return Resolved{Axes: axes}, nil
}

// ResolveForWrite resolves a write selector against inputShape, the shape
// of the caller's input array, applying the growing-dimension rule:
// a bare (unbounded) Slice or an Index on an unlimited dimension may
// grow it, taking the input array's axis length as authoritative; any other
// axis whose computed range would exceed the current dimension length is an
// error. Growth is only permitted on a single axis at a time; a selector
// that would grow more than one axis simultaneously is rejected as
// Ambiguous.
func ResolveForWrite(sel Selector, dimLens []uint64, unlimited []bool, inputShape []uint64) (Resolved, error) {
	exts, err := checkRank(sel, len(dimLens))
	if err != nil {
		return Resolved{}, err
	}
	if len(inputShape) != len(exts) {
		return Resolved{}, nctypes.BufferLenError(len(exts), len(inputShape))
	}
	axes := make([]ResolvedAxis, len(exts))
	growingAxes := 0
	for i, e := range exts {
		start, count, stride, err := resolveAxis(e, int64(dimLens[i]))
		if err != nil {
			return Resolved{}, err
		}
		if count < 0 {
			count = 0
		}
		wantCount := inputShape[i]
		grows := false
		newLen := dimLens[i]

		if uint64(count) != wantCount || uint64(start)+wantCount > dimLens[i] {
			// The formula's count disagrees with the input array's axis
			// length, or would overrun the dimension: only a bare Slice or
			// an Index on an unlimited dimension may resolve this by growing.
			if boundedAbove(e) {
				return Resolved{}, sliceMismatch(e)
			}
			if i < len(unlimited) && unlimited[i] {
				count = int64(wantCount)
				grows = true
				if uint64(start)+wantCount > newLen {
					newLen = uint64(start) + wantCount
				}
			} else {
				return Resolved{}, sliceMismatch(e)
			}
		}

		if grows {
			growingAxes++
		} else if err := boundsCheck(e, uint64(start), uint64(count), stride, dimLens[i]); err != nil {
			return Resolved{}, err
		}

		axes[i] = ResolvedAxis{Start: uint64(start), Count: uint64(count), Stride: stride, Grows: grows, NewLen: newLen}
	}
	if growingAxes > 1 {
		return Resolved{}, nctypes.ErrAmbiguous
	}
	return Resolved{Axes: axes}, nil
}

func sliceMismatch(e AxisExtent) error {
	if _, ok := e.(Index); ok {
		return &nctypes.Error{Kind: nctypes.ErrKindIndexMismatch, Msg: "index exceeds current dimension length"}
	}
	return &nctypes.Error{Kind: nctypes.ErrKindSliceMismatch, Msg: "slice exceeds current dimension length or disagrees with input shape"}
}

// boundsCheck verifies the resolved [start, start+(count-1)*stride] range
// fits within [0, length). A resolved position past the end is an
// IndexMismatch regardless of the extent form that produced it: it is a
// concrete out-of-range index, not a shape disagreement.
func boundsCheck(e AxisExtent, start, count uint64, stride int64, length uint64) error {
	if count == 0 {
		return nil
	}
	lastIdx := start + (count-1)*uint64(stride)
	if lastIdx >= length {
		return &nctypes.Error{
			Kind: nctypes.ErrKindIndexMismatch,
			Msg:  fmt.Sprintf("index %d exceeds dimension length %d", lastIdx, length),
		}
	}
	return nil
}

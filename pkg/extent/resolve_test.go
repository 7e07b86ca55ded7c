package extent

import (
	"testing"

	"github.com/ncgo/netcdf/pkg/nctypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAll(t *testing.T) {
	r, err := Resolve(All(), []uint64{6, 12}, []bool{false, false})
	require.NoError(t, err)
	start, count, stride := r.StartCountStride()
	assert.Equal(t, []uint64{0, 0}, start)
	assert.Equal(t, []uint64{6, 12}, count)
	assert.Equal(t, []int64{1, 1}, stride)
	assert.Equal(t, uint64(72), r.TotalCount())
}

func TestResolveRankMismatch(t *testing.T) {
	_, err := Resolve(Of(Index{I: 0}), []uint64{6, 12}, []bool{false, false})
	var nerr *nctypes.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindDimensionMismatch, nerr.Kind)
}

func TestResolveSliceEndStepBy(t *testing.T) {
	// [..7) by 2 over a size-9 axis selects positions 0, 2, 4, 6.
	r, err := Resolve(Of(SliceEnd{Start: 0, End: 7, Stride: 2}), []uint64{9}, []bool{false})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), r.Axes[0].Count)
	assert.Equal(t, uint64(0), r.Axes[0].Start)
	assert.Equal(t, int64(2), r.Axes[0].Stride)
}

func TestResolveExplicitOutOfBoundsIsIndexMismatch(t *testing.T) {
	// An explicit count that walks off the end of the axis (positions
	// 0,3,6,9 on a length-9 axis) must fail, not silently clamp.
	_, err := Resolve(Of(SliceCount{Start: 0, Count: 4, Stride: 3}), []uint64{9}, []bool{false})
	var nerr *nctypes.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindIndexMismatch, nerr.Kind)
}

func TestResolveZeroAndNegativeStride(t *testing.T) {
	_, err := Resolve(Of(Slice{Start: 0, Stride: 0}), []uint64{9}, []bool{false})
	var nerr *nctypes.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindZeroSlice, nerr.Kind)

	_, err = Resolve(Of(Slice{Start: 0, Stride: -1}), []uint64{9}, []bool{false})
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindStride, nerr.Kind)
}

func TestResolveForWriteGrowsUnlimitedDimension(t *testing.T) {
	// Unlimited dimension of current length 0, writing 3 elements at start 5.
	r, err := ResolveForWrite(Of(Slice{Start: 5, Stride: 1}), []uint64{0}, []bool{true}, []uint64{3})
	require.NoError(t, err)
	require.True(t, r.Axes[0].Grows)
	assert.Equal(t, uint64(8), r.Axes[0].NewLen)
	assert.Equal(t, uint64(5), r.Axes[0].Start)
	assert.Equal(t, uint64(3), r.Axes[0].Count)
}

func TestResolveForWriteRejectsBoundedGrowthOnUnlimitedDimension(t *testing.T) {
	// SliceEnd/SliceCount never grow a dimension even if it is unlimited.
	_, err := ResolveForWrite(Of(SliceCount{Start: 0, Count: 5, Stride: 1}), []uint64{3}, []bool{true}, []uint64{5})
	var nerr *nctypes.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindSliceMismatch, nerr.Kind)
}

func TestResolveForWriteRejectsGrowthOnFixedDimension(t *testing.T) {
	_, err := ResolveForWrite(Of(Slice{Start: 0, Stride: 1}), []uint64{3}, []bool{false}, []uint64{5})
	var nerr *nctypes.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindSliceMismatch, nerr.Kind)
}

func TestResolveForWriteRejectsMultiAxisGrowth(t *testing.T) {
	_, err := ResolveForWrite(
		Of(Slice{Start: 0, Stride: 1}, Slice{Start: 0, Stride: 1}),
		[]uint64{0, 0}, []bool{true, true}, []uint64{3, 4},
	)
	assert.ErrorIs(t, err, nctypes.ErrAmbiguous)
}

func TestBuilderFromStartCountStride(t *testing.T) {
	sel, err := FromStartCountStride([]int64{0, 1}, []int64{6, 11}, []int64{1, 1})
	require.NoError(t, err)
	r, err := Resolve(sel, []uint64{6, 12}, []bool{false, false})
	require.NoError(t, err)
	assert.Equal(t, uint64(66), r.TotalCount())
}

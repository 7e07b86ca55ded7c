package nclayout

import (
	"testing"

	"github.com/ncgo/netcdf/pkg/nctypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeOffsetsPacked(t *testing.T) {
	// {i1: int32 offset 0, i2: int32 offset 4}, declared size 8.
	i32 := nctypes.NewAtomicDescriptor(nctypes.Int)
	fields, err := ComputeOffsets([]CompoundFieldSpec{
		{Name: "i1", Elem: i32},
		{Name: "i2", Elem: i32},
	}, 8)
	require.NoError(t, err)
	assert.Equal(t, 0, fields[0].Offset)
	assert.Equal(t, 4, fields[1].Offset)
}

func TestComputeOffsetsRejectsPadding(t *testing.T) {
	i32 := nctypes.NewAtomicDescriptor(nctypes.Int)
	_, err := ComputeOffsets([]CompoundFieldSpec{{Name: "i1", Elem: i32}}, 8)
	var nerr *nctypes.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindConversion, nerr.Kind)
}

func TestComputeOffsetsWithArrayField(t *testing.T) {
	f32 := nctypes.NewAtomicDescriptor(nctypes.Float)
	fields, err := ComputeOffsets([]CompoundFieldSpec{
		{Name: "scalar", Elem: f32},
		{Name: "vec3", Elem: f32, ArrayDims: []int{3}},
	}, 4+4*3)
	require.NoError(t, err)
	assert.Equal(t, 0, fields[0].Offset)
	assert.Equal(t, 4, fields[1].Offset)
}

func TestValidateEnum(t *testing.T) {
	require.NoError(t, ValidateEnum(nctypes.Int, []nctypes.EnumMember{
		{Name: "RED", Value: 0},
		{Name: "BLUE", Value: 5},
	}))

	err := ValidateEnum(nctypes.Float, nil)
	var nerr *nctypes.Error
	require.ErrorAs(t, err, &nerr)

	err = ValidateEnum(nctypes.Byte, []nctypes.EnumMember{{Name: "X", Value: 1000}})
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindOverflow, nerr.Kind)

	err = ValidateEnum(nctypes.Int, []nctypes.EnumMember{{Name: "X", Value: 1}, {Name: "X", Value: 2}})
	require.Error(t, err)
}

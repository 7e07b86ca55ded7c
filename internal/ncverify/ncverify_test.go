package ncverify

import (
	"testing"

	"github.com/ncgo/netcdf/pkg/nctypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompoundDescriptorAcceptsPacked(t *testing.T) {
	i32 := nctypes.NewAtomicDescriptor(nctypes.Int)
	d := &nctypes.TypeDescriptor{
		Kind:         nctypes.KindCompound,
		Name:         "pair",
		CompoundSize: 8,
		CompoundFields: []nctypes.CompoundField{
			{Name: "a", Elem: i32, Offset: 0},
			{Name: "b", Elem: i32, Offset: 4},
		},
	}
	require.NoError(t, CompoundDescriptor(d))
}

func TestCompoundDescriptorRejectsWrongOffset(t *testing.T) {
	i32 := nctypes.NewAtomicDescriptor(nctypes.Int)
	d := &nctypes.TypeDescriptor{
		Kind:         nctypes.KindCompound,
		Name:         "pair",
		CompoundSize: 8,
		CompoundFields: []nctypes.CompoundField{
			{Name: "a", Elem: i32, Offset: 0},
			{Name: "b", Elem: i32, Offset: 8}, // wrong, should be 4
		},
	}
	err := CompoundDescriptor(d)
	require.Error(t, err)
}

func TestDimensionOwnership(t *testing.T) {
	dim := nctypes.DimIdentifier{ContainerID: 3, LocalID: 1}
	require.NoError(t, DimensionOwnership(dim, 3))

	err := DimensionOwnership(dim, 7)
	var nerr *nctypes.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindWrongDataset, nerr.Kind)
}

func TestRank(t *testing.T) {
	require.NoError(t, Rank(2, 2))
	err := Rank(2, 3)
	var nerr *nctypes.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindDimensionMismatch, nerr.Kind)
}

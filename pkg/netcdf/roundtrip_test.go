package netcdf

import (
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/ncgo/netcdf/pkg/extent"
	"github.com/ncgo/netcdf/pkg/nctypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoDimensionalRowMajorRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.nc")
	fm, err := CreateWith(path, DefaultCreateOptions())
	require.NoError(t, err)

	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	_, err = root.AddDimension("x", 6)
	require.NoError(t, err)
	_, err = root.AddDimension("y", 12)
	require.NoError(t, err)
	vm, err := AddVariable[int32](root, "data", []string{"x", "y"})
	require.NoError(t, err)
	require.NoError(t, fm.EndDef())

	values := make([]int32, 72)
	for i := range values {
		values[i] = int32(i)
	}
	require.NoError(t, PutValues(vm, values, []uint64{6, 12}, extent.All()))
	root.Release()
	require.NoError(t, fm.Close())

	f, err := OpenWith(path, OpenOptions{})
	require.NoError(t, err)
	defer f.Drop()

	v, ok, err := f.Variable("data")
	require.NoError(t, err)
	require.True(t, ok)
	got, err := GetValues[int32](v, extent.All())
	require.NoError(t, err)
	require.Len(t, got, 72)
	for i := 0; i < 6; i++ {
		for j := 0; j < 12; j++ {
			assert.Equal(t, int32(i*12+j), got[i*12+j])
		}
	}
}

func TestUnlimitedDimensionGrowsOnWrite(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer root.Release()

	dim, err := root.AddDimension("t", 0)
	require.NoError(t, err)
	unlimited, err := dim.IsUnlimited()
	require.NoError(t, err)
	require.True(t, unlimited)

	vm, err := AddVariable[uint8](root, "v", []string{"t"})
	require.NoError(t, err)
	require.NoError(t, SetFillValue[uint8](vm, 0))
	require.NoError(t, fm.EndDef())

	require.NoError(t, PutValues(vm, []uint8{1, 2, 3}, []uint64{3}, extent.Of(extent.Slice{Start: 5, Stride: 1})))

	length, err := dim.Len()
	require.NoError(t, err)
	assert.Equal(t, uint64(8), length)

	got, err := GetValues[uint8](vm.Variable, extent.Of(extent.SliceEnd{Start: 0, End: 8, Stride: 1}))
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 0, 0, 0, 1, 2, 3}, got)
}

func TestNestedGroupVariableAndAttributeByPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested.nc")
	fm, err := CreateWith(path, DefaultCreateOptions())
	require.NoError(t, err)

	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	gb, err := root.AddGroupMut("a/b")
	require.NoError(t, err)
	_, err = gb.AddDimension("dim", 1)
	require.NoError(t, err)
	vm, err := AddVariable[float64](gb, "var", []string{"dim"})
	require.NoError(t, err)
	require.NoError(t, gb.PutAttribute("attr", nctypes.NewString(nctypes.String, "test")))
	require.NoError(t, fm.EndDef())
	require.NoError(t, PutValues(vm, []float64{42.0}, []uint64{1}, extent.All()))
	root.Release()
	require.NoError(t, fm.Close())

	f, err := OpenWith(path, OpenOptions{})
	require.NoError(t, err)
	defer f.Drop()

	v, ok, err := f.Variable("a/b/var")
	require.NoError(t, err)
	require.True(t, ok)
	got, err := GetValue[float64](v, extent.Of(extent.Index{I: 0}))
	require.NoError(t, err)
	assert.Equal(t, 42.0, got)

	attr, ok, err := f.Attribute("a/b/attr")
	require.NoError(t, err)
	require.True(t, ok)
	val, err := attr.Value()
	require.NoError(t, err)
	strs, ok := val.Strings()
	require.True(t, ok)
	assert.Equal(t, []string{"test"}, strs)
}

func TestCompoundRoundTrip(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer root.Release()

	i32 := nctypes.NewAtomicDescriptor(nctypes.Int)
	desc := &nctypes.TypeDescriptor{
		Kind:         nctypes.KindCompound,
		Name:         "pair",
		CompoundSize: 8,
		CompoundFields: []nctypes.CompoundField{
			{Name: "i1", Elem: i32, Offset: 0},
			{Name: "i2", Elem: i32, Offset: 4},
		},
	}

	_, err = root.AddDimension("x", 6)
	require.NoError(t, err)
	_, err = root.AddDimension("y", 12)
	require.NoError(t, err)
	vm, err := AddVariableWithType(root, "recs", []string{"x", "y"}, desc)
	require.NoError(t, err)
	require.NoError(t, fm.EndDef())

	record := make([]byte, 8)
	binary.NativeEndian.PutUint32(record[0:], uint32(int32(42)))
	binary.NativeEndian.PutUint32(record[4:], uint32(int32(-42)))
	buf := make([]byte, 0, 72*8)
	for i := 0; i < 72; i++ {
		buf = append(buf, record...)
	}
	require.NoError(t, vm.PutRawValues(buf, []uint64{6, 12}, extent.All()))

	got, err := vm.GetRawValues(extent.All())
	require.NoError(t, err)
	require.Len(t, got, 72*8)
	for i := 0; i < 72; i++ {
		i1 := int32(binary.NativeEndian.Uint32(got[i*8:]))
		i2 := int32(binary.NativeEndian.Uint32(got[i*8+4:]))
		assert.Equal(t, int32(42), i1)
		assert.Equal(t, int32(-42), i2)
	}
}

func TestAllAtomicAttributeWidthsRoundTrip(t *testing.T) {
	fm := createTestFile(t)

	numeric := []nctypes.AttributeValue{
		nctypes.NewNumeric[int8](nctypes.Byte, 3),
		nctypes.NewNumeric[uint8](nctypes.UByte, 3),
		nctypes.NewNumeric[int16](nctypes.Short, 3),
		nctypes.NewNumeric[uint16](nctypes.UShort, 3),
		nctypes.NewNumeric[int32](nctypes.Int, 3),
		nctypes.NewNumeric[uint32](nctypes.UInt, 3),
		nctypes.NewNumeric[int64](nctypes.Int64, 3),
		nctypes.NewNumeric[uint64](nctypes.UInt64, 3),
		nctypes.NewNumeric[float32](nctypes.Float, 3.2),
		nctypes.NewNumeric[float64](nctypes.Double, 3.2),
	}
	for _, val := range numeric {
		name := "attr_" + val.Kind.String()
		require.NoError(t, fm.PutAttribute(name, val))

		attr, ok, err := fm.Attribute(name)
		require.NoError(t, err)
		require.True(t, ok)
		got, err := attr.Value()
		require.NoError(t, err)
		require.Equal(t, val.Kind, got.Kind)
		require.True(t, got.Scalar())

		if ints, ok := val.Ints(); ok {
			gotInts, ok := got.Ints()
			require.True(t, ok)
			assert.Equal(t, ints, gotInts)
		} else if uints, ok := val.UInts(); ok {
			gotUInts, ok := got.UInts()
			require.True(t, ok)
			assert.Equal(t, uints, gotUInts)
		} else {
			floats, ok := val.Floats()
			require.True(t, ok)
			gotFloats, ok := got.Floats()
			require.True(t, ok)
			require.Len(t, gotFloats, 1)
			assert.InDelta(t, floats[0], gotFloats[0], 1e-6)
		}
	}

	require.NoError(t, fm.PutAttribute("greeting", nctypes.NewString(nctypes.String, "Hello world!")))
	attr, ok, err := fm.Attribute("greeting")
	require.NoError(t, err)
	require.True(t, ok)
	got, err := attr.Value()
	require.NoError(t, err)
	strs, ok := got.Strings()
	require.True(t, ok)
	assert.Equal(t, []string{"Hello world!"}, strs)
}

func TestStridedWriteThenOutOfBoundsStridedRead(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer root.Release()

	_, err = root.AddDimension("x", 9)
	require.NoError(t, err)
	vm, err := AddVariable[int32](root, "v", []string{"x"})
	require.NoError(t, err)
	require.NoError(t, SetFillValue[int32](vm, 0))
	require.NoError(t, fm.EndDef())

	// [..7) by 2 places the input at positions 0, 2, 4, 6.
	require.NoError(t, PutValues(vm, []int32{10, 20, 30, 40}, []uint64{4},
		extent.Of(extent.SliceEnd{Start: 0, End: 7, Stride: 2})))

	all, err := GetValues[int32](vm.Variable, extent.All())
	require.NoError(t, err)
	assert.Equal(t, []int32{10, 0, 20, 0, 30, 0, 40, 0, 0}, all)

	// Four elements by 3 would land on 0, 3, 6, 9 — position 9 is past the
	// end of the length-9 axis.
	_, err = GetValues[int32](vm.Variable, extent.Of(extent.SliceCount{Start: 0, Count: 4, Stride: 3}))
	require.Error(t, err)
	var nerr *nctypes.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindIndexMismatch, nerr.Kind)
}

func TestDimensionIdentifierFromOtherFileIsRejected(t *testing.T) {
	fmA := createTestFile(t)
	rootA, ok, err := fmA.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	dimA, err := rootA.AddDimension("shared", 4)
	require.NoError(t, err)
	rootA.Release()

	path := filepath.Join(t.TempDir(), "other.nc")
	fmB, err := CreateWith(path, DefaultCreateOptions())
	require.NoError(t, err)
	defer fmB.Drop()
	rootB, ok, err := fmB.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer rootB.Release()

	_, err = AddVariableFromIdentifiers[int32](rootB, "v", []nctypes.DimIdentifier{dimA.Identifier()})
	require.Error(t, err)
	var nerr *nctypes.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindWrongDataset, nerr.Kind)
}

func TestDimensionIdentifierResolvesFromNestedGroup(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer root.Release()

	dim, err := root.AddDimension("outer", 3)
	require.NoError(t, err)
	child, err := root.AddGroupMut("inner")
	require.NoError(t, err)

	vm, err := AddVariableFromIdentifiers[int16](child, "v", []nctypes.DimIdentifier{dim.Identifier()})
	require.NoError(t, err)
	assert.Equal(t, 1, vm.Rank())
}

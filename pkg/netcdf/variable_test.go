package netcdf

import (
	"path/filepath"
	"testing"

	"github.com/ncgo/netcdf/pkg/extent"
	"github.com/ncgo/netcdf/pkg/nctypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestFile(t *testing.T) *FileMut {
	t.Helper()
	path := filepath.Join(t.TempDir(), "var.nc")
	fm, err := CreateWith(path, DefaultCreateOptions())
	require.NoError(t, err)
	t.Cleanup(func() { fm.Drop() })
	return fm
}

func TestAddVariableAndPutGetValues(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer root.Release()

	_, err = root.AddDimension("x", 3)
	require.NoError(t, err)

	vm, err := AddVariable[float64](root, "temp", []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, "temp", vm.Name())
	assert.Equal(t, 1, vm.Rank())

	require.NoError(t, fm.EndDef())

	values := []float64{1.5, 2.5, 3.5}
	require.NoError(t, PutValues(vm, values, []uint64{3}, extent.All()))

	got, err := GetValues[float64](vm.Variable, extent.All())
	require.NoError(t, err)
	assert.Equal(t, values, got)

	single, err := GetValue[float64](vm.Variable, extent.Of(extent.Index{I: 1}))
	require.NoError(t, err)
	assert.Equal(t, 2.5, single)
}

func TestPutGetValueScalarCrossNumeric(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer root.Release()

	_, err = root.AddDimension("n", 1)
	require.NoError(t, err)
	vm, err := AddVariable[int32](root, "count", []string{"n"})
	require.NoError(t, err)
	require.NoError(t, fm.EndDef())

	require.NoError(t, PutValue[int32](vm, 42, extent.Of(extent.Index{I: 0})))

	asFloat, err := GetValue[float64](vm.Variable, extent.Of(extent.Index{I: 0}))
	require.NoError(t, err)
	assert.Equal(t, float64(42), asFloat)
}

func TestGetValueRequiresSingleElement(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer root.Release()

	_, err = root.AddDimension("x", 4)
	require.NoError(t, err)
	vm, err := AddVariable[int32](root, "v", []string{"x"})
	require.NoError(t, err)
	require.NoError(t, fm.EndDef())

	_, err = GetValue[int32](vm.Variable, extent.All())
	require.Error(t, err)
	var nerr *nctypes.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindBufferLen, nerr.Kind)
}

func TestStringVariableRoundTrip(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer root.Release()

	_, err = root.AddDimension("n", 2)
	require.NoError(t, err)
	vm, err := AddVariable[string](root, "labels", []string{"n"})
	require.NoError(t, err)
	require.NoError(t, fm.EndDef())

	require.NoError(t, vm.PutStrings([]string{"alpha", "beta"}, []uint64{2}, extent.All()))

	got, err := vm.GetStrings(extent.All())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, got)

	one, err := vm.GetString(extent.Of(extent.Index{I: 1}))
	require.NoError(t, err)
	assert.Equal(t, "beta", one)
}

func TestFillValueOverrideAndNoFill(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer root.Release()

	_, err = root.AddDimension("x", 5)
	require.NoError(t, err)
	vm, err := AddVariable[int32](root, "v", []string{"x"})
	require.NoError(t, err)

	require.NoError(t, SetFillValue[int32](vm, -999))
	fv, has, err := FillValue[int32](vm.Variable)
	require.NoError(t, err)
	require.True(t, has)
	assert.Equal(t, int32(-999), fv)

	require.NoError(t, vm.SetNoFill())
	_, has, err = FillValue[int32](vm.Variable)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestFillValueTypeMismatchRejected(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer root.Release()

	_, err = root.AddDimension("x", 2)
	require.NoError(t, err)
	vm, err := AddVariable[int32](root, "v", []string{"x"})
	require.NoError(t, err)

	err = SetFillValue[float64](vm, 1.0)
	require.Error(t, err)
	var nerr *nctypes.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindTypeMismatch, nerr.Kind)
}

func TestSetCompressionAndChunking(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer root.Release()

	_, err = root.AddDimension("x", 100)
	require.NoError(t, err)
	vm, err := AddVariable[int32](root, "v", []string{"x"})
	require.NoError(t, err)

	require.NoError(t, vm.SetCompression(6, true))
	require.NoError(t, vm.SetChunking([]uint64{10}))

	err = vm.SetCompression(42, false)
	require.Error(t, err)

	err = vm.SetChunking([]uint64{1, 2})
	require.Error(t, err)
	var nerr *nctypes.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindDimensionMismatch, nerr.Kind)
}

func TestVariableAttributeRoundTrip(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer root.Release()

	_, err = root.AddDimension("x", 2)
	require.NoError(t, err)
	vm, err := AddVariable[int32](root, "v", []string{"x"})
	require.NoError(t, err)

	require.NoError(t, vm.PutAttribute("units", nctypes.NewStrings([]string{"kelvin"})))

	attr, ok, err := vm.FindAttribute("units")
	require.NoError(t, err)
	require.True(t, ok)
	val, err := attr.Value()
	require.NoError(t, err)
	strs, ok := val.Strings()
	require.True(t, ok)
	assert.Equal(t, []string{"kelvin"}, strs)
}

func TestVlenRoundTrip(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer root.Release()

	_, err = root.AddDimension("n", 1)
	require.NoError(t, err)
	base := nctypes.NewAtomicDescriptor(nctypes.Int)
	vlenDesc := &nctypes.TypeDescriptor{Kind: nctypes.KindVlen, Name: "int_vlen", VlenElem: base}
	vm, err := AddVariableWithType(root, "ragged", []string{"n"}, vlenDesc)
	require.NoError(t, err)
	require.NoError(t, fm.EndDef())

	require.NoError(t, PutVlen[int32](vm, []int32{1, 2, 3}, extent.Of(extent.Index{I: 0})))

	got, err := GetVlen[int32](vm.Variable, extent.Of(extent.Index{I: 0}))
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, got)
}

func TestRawValuesForbiddenOnStringVariable(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer root.Release()

	_, err = root.AddDimension("n", 1)
	require.NoError(t, err)
	vm, err := AddVariable[string](root, "s", []string{"n"})
	require.NoError(t, err)
	require.NoError(t, fm.EndDef())

	_, err = vm.GetRawValues(extent.All())
	require.Error(t, err)
	var nerr *nctypes.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindTypeMismatch, nerr.Kind)
}

func TestOpaqueRawRoundTrip(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer root.Release()

	_, err = root.AddDimension("n", 2)
	require.NoError(t, err)
	desc := &nctypes.TypeDescriptor{Kind: nctypes.KindOpaque, Name: "blob8", OpaqueSize: 8}
	vm, err := AddVariableWithType(root, "blobs", []string{"n"}, desc)
	require.NoError(t, err)
	require.NoError(t, fm.EndDef())

	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	require.NoError(t, vm.PutRawValues(buf, []uint64{2}, extent.All()))

	got, err := vm.GetRawValues(extent.All())
	require.NoError(t, err)
	assert.Equal(t, buf, got)
}

func TestVariableMutSharesReleaseWithGroup(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)

	_, err = root.AddDimension("x", 1)
	require.NoError(t, err)
	vm, err := AddVariable[int32](root, "v", []string{"x"})
	require.NoError(t, err)

	vm.Release()

	_, ok, err = fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSetEndianness(t *testing.T) {
	fm := createTestFile(t)
	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer root.Release()

	_, err = root.AddDimension("x", 3)
	require.NoError(t, err)
	vm, err := AddVariable[int32](root, "v", []string{"x"})
	require.NoError(t, err)

	require.NoError(t, vm.SetEndianness(nctypes.EndianBig))
	e, err := vm.Endianness()
	require.NoError(t, err)
	assert.Equal(t, nctypes.EndianBig, e)
}

package netcdf

import (
	"path/filepath"
	"testing"

	"github.com/ncgo/netcdf/pkg/nctypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "round.nc")

	fm, err := CreateWith(path, DefaultCreateOptions())
	require.NoError(t, err)
	require.NoError(t, fm.EndDef())
	require.NoError(t, fm.Close())

	f, err := OpenWith(path, OpenOptions{})
	require.NoError(t, err)
	defer f.Drop()

	format, err := f.Format()
	require.NoError(t, err)
	assert.Equal(t, nctypes.FormatNetCDF4, format)

	root, ok, err := f.Root()
	require.NoError(t, err)
	require.True(t, ok)
	name, err := root.Name()
	require.NoError(t, err)
	assert.Equal(t, "/", name)
}

func TestCreateDefaultsToNetCDF4(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.nc")
	fm, err := CreateWith(path, CreateOptions{})
	require.NoError(t, err)
	defer fm.Drop()
	require.NoError(t, fm.EndDef())

	format, err := fm.Format()
	require.NoError(t, err)
	assert.Equal(t, nctypes.FormatNetCDF4, format)
}

func TestCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "close.nc")
	fm, err := CreateWith(path, DefaultCreateOptions())
	require.NoError(t, err)
	require.NoError(t, fm.EndDef())
	require.NoError(t, fm.Close())
	require.NoError(t, fm.Close())
}

func TestAddDimensionAndGroupAtRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "root.nc")
	fm, err := CreateWith(path, DefaultCreateOptions())
	require.NoError(t, err)
	defer fm.Drop()

	dim, err := fm.AddDimension("x", 10)
	require.NoError(t, err)
	assert.Equal(t, "x", dim.Name())
	length, err := dim.Len()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), length)

	grp, err := fm.AddGroup("nested/deeper")
	require.NoError(t, err)
	name, err := grp.Name()
	require.NoError(t, err)
	assert.Equal(t, "deeper", name)

	found, ok, err := fm.Group("nested/deeper")
	require.NoError(t, err)
	require.True(t, ok)
	foundName, err := found.Name()
	require.NoError(t, err)
	assert.Equal(t, "deeper", foundName)
}

func TestRootMutIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclusive.nc")
	fm, err := CreateWith(path, DefaultCreateOptions())
	require.NoError(t, err)
	defer fm.Drop()

	first, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	defer first.Release()

	_, _, err = fm.RootMut()
	require.Error(t, err)
	var nerr *nctypes.Error
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, nctypes.ErrKindAlreadyExists, nerr.Kind)
}

func TestGlobalAttributeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attrs.nc")
	fm, err := CreateWith(path, DefaultCreateOptions())
	require.NoError(t, err)
	defer fm.Drop()

	require.NoError(t, fm.PutAttribute("title", nctypes.NewStrings([]string{"a test file"})))

	attr, ok, err := fm.Attribute("title")
	require.NoError(t, err)
	require.True(t, ok)
	val, err := attr.Value()
	require.NoError(t, err)
	strs, ok := val.Strings()
	require.True(t, ok)
	assert.Equal(t, []string{"a test file"}, strs)
}

func TestVariableMutFromFilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "varmut.nc")
	fm, err := CreateWith(path, DefaultCreateOptions())
	require.NoError(t, err)
	defer fm.Drop()

	root, ok, err := fm.RootMut()
	require.NoError(t, err)
	require.True(t, ok)
	_, err = root.AddDimension("n", 4)
	require.NoError(t, err)
	_, err = AddVariable[int32](root, "v", []string{"n"})
	require.NoError(t, err)
	root.Release()

	vm, ok, err := fm.VariableMut("v")
	require.NoError(t, err)
	require.True(t, ok)
	defer vm.Release()
	assert.Equal(t, "v", vm.Name())
}

func TestOpenFromMemoryRejectsGarbage(t *testing.T) {
	_, err := OpenFromMemory([]byte("not a netcdf file"), OpenMemoryOptions{})
	require.Error(t, err)
}

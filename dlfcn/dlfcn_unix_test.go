//go:build unix

package dlfcn

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenMissingFile(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "libnothere.so")
	lib, err := Open(path)
	require.Nil(lib)
	var loadErr *LoadError
	require.ErrorAs(err, &loadErr)
	require.Equal(path, loadErr.Path)
	require.Equal("dlopen", loadErr.Op)
	require.NotEmpty(loadErr.Detail)
}

func TestOpenInvalidLibrary(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "libgarbage.so")
	require.NoError(os.WriteFile(path, []byte("this is not an object file"), 0o644))

	lib, err := Open(path)
	require.Nil(lib)
	var loadErr *LoadError
	require.ErrorAs(err, &loadErr)
	require.Equal("dlopen", loadErr.Op)
}

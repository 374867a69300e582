package bindgen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func resetRegistry(t *testing.T) {
	t.Helper()
	registryInit()
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.descs = nil
	registry.lib = ""
}

func TestRegisterKeepsOrder(t *testing.T) {
	resetRegistry(t)
	require := require.New(t)

	Register(Descriptor{Name: "c"})
	Register(Descriptor{Name: "a"})
	Register(Descriptor{Name: "b"})

	descs := Descriptors()
	require.Len(descs, 3)
	require.Equal("c", descs[0].Name)
	require.Equal("a", descs[1].Name)
	require.Equal("b", descs[2].Name)
}

func TestDescriptorsReturnsCopy(t *testing.T) {
	resetRegistry(t)
	require := require.New(t)

	Register(Descriptor{Name: "f"})
	descs := Descriptors()
	descs[0].Name = "mutated"
	require.Equal("f", Descriptors()[0].Name)
}

func TestLibraryName(t *testing.T) {
	resetRegistry(t)
	require := require.New(t)

	require.Equal("module", libraryName())
	SetLibrary("adder")
	require.Equal("adder", libraryName())
}

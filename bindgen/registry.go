// Package bindgen is the runtime half of denobind: the code a native
// module links against so that the denobind CLI can load it and ask it to
// generate TypeScript bindings for itself.
//
// A module registers one [Descriptor] per exported function during its
// init phase, declares its library name with [SetLibrary], and exports the
// entry point from export.go. Everything is in place before the generator
// walks the registry.
package bindgen

import (
	"slices"
	"sync"
)

// Descriptor describes one exported function of a native module.
type Descriptor struct {
	// Exported symbol name.
	Name string
	// Parameter types in declaration order.
	Parameters []Type
	// Result type. The zero value is void.
	Result Type
	// NonBlocking marks the function as safe to run on the host
	// runtime's thread pool; the generated wrapper becomes async.
	NonBlocking bool
}

// The registry is process-wide and ordered. It replaces the link-time
// descriptor aggregation of the macro-based original with an explicit
// registration step: each exportable function registers itself during
// module load, behind a single-initialization barrier, and the generator
// walks the list in registration order.
var registry struct {
	once  sync.Once
	mu    sync.Mutex
	descs []Descriptor
	lib   string
}

func registryInit() {
	registry.once.Do(func() {
		registry.descs = make([]Descriptor, 0, 16)
	})
}

// Register adds a descriptor to the registry. Call it from an init
// function; registration order is the order bindings are emitted in.
func Register(d Descriptor) {
	registryInit()
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.descs = append(registry.descs, d)
}

// SetLibrary declares the crate/library name the generated code uses to
// locate the produced shared library. Modules call this once during init.
func SetLibrary(name string) {
	registryInit()
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.lib = name
}

// Descriptors returns a copy of the registry in registration order.
func Descriptors() []Descriptor {
	registryInit()
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return slices.Clone(registry.descs)
}

func libraryName() string {
	registryInit()
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if registry.lib == "" {
		return "module"
	}
	return registry.lib
}

// Package dlfcn maps a freshly built shared library into the running
// process and invokes its binding-generator entry point.
//
// This is the only package that touches raw symbols and the foreign ABI.
// The surface is kept deliberately narrow: open, look up one symbol,
// verify it, call it once.
package dlfcn

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// InitSymbol is the well-known entry point every bindgen module exports:
//
//	void init_deno_bindgen(const char* out_path, int lazy);
//
// A NULL out_path selects the module's default output location.
const InitSymbol = "init_deno_bindgen"

// LoadError reports a failure to map a shared library or to resolve its
// entry symbol. Detail carries the underlying OS diagnostic verbatim.
type LoadError struct {
	Path   string
	Op     string
	Detail string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %v: %v: %v", e.Path, e.Op, e.Detail)
}

// loadPath returns the path to hand to the system loader. On Windows the
// loader resolves libraries by name and search path rather than accepting
// arbitrary paths rooted elsewhere, so the artifact path must be rewritten
// relative to the working directory first. Everywhere else the path is
// used as-is. Using the wrong form makes the load fail even though the
// file exists.
func loadPath(path, cwd, goos string) string {
	if goos != "windows" {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}

// LoadAndInit maps the shared library at path into the process and invokes
// its generator entry point with (out, lazy). The entry symbol is resolved
// and verified before it is cast and called; an unresolved or NULL symbol
// is never invoked.
//
// The library handle is deliberately retained until process exit. The
// module registers process-global state (its descriptor registry and
// instance store) while it is mapped, and unloading it after the generator
// returns would run teardown in an order we don't control, for a process
// that is about to exit anyway. [Library.Close] exists for tests.
func LoadAndInit(path string, out string, lazy bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	lib, err := Open(loadPath(path, cwd, runtime.GOOS))
	if err != nil {
		return err
	}
	return lib.Init(out, lazy)
}

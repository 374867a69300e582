//go:build unix

package dlfcn

/*
#cgo linux LDFLAGS: -ldl

#include <dlfcn.h>
#include <stdlib.h>

static void* db_dlopen(const char* path) {
	return dlopen(path, RTLD_LAZY | RTLD_LOCAL);
}
static const char* db_dlerror(void) {
	return dlerror();
}
// Clear dlerror, call dlsym, and return the error (if any) alongside the
// symbol. Needed to distinguish "symbol is NULL" from "symbol missing".
static void* db_dlsym_clear(void* h, const char* name, char** err) {
	dlerror();
	void* p = dlsym(h, name);
	char* e = dlerror();
	if (e) { if (err) *err = e; return NULL; }
	if (err) *err = NULL;
	return p;
}
static int db_dlclose(void* h) {
	return dlclose(h);
}

typedef void (*db_init_fn)(const char*, int);
static void db_call_init(void* fn, const char* out, int lazy) {
	((db_init_fn)fn)(out, lazy);
}
*/
import "C"

import (
	"strconv"
	"unsafe"
)

// Library is a shared library mapped into this process.
type Library struct {
	path   string
	handle unsafe.Pointer
}

// dlerr returns the last dlerror as a Go string, or a fallback label.
func dlerr() string {
	e := C.db_dlerror()
	if e != nil {
		return C.GoString(e)
	}
	return "unknown dlerror"
}

// Open maps the shared library at path. A missing file, a library built
// for the wrong platform or architecture, and similar conditions all come
// back as a *LoadError carrying the dlopen diagnostic.
func Open(path string) (*Library, error) {
	cs := C.CString(path)
	defer C.free(unsafe.Pointer(cs))
	h := C.db_dlopen(cs)
	if h == nil {
		return nil, &LoadError{Path: path, Op: "dlopen", Detail: dlerr()}
	}
	return &Library{path: path, handle: h}, nil
}

// Lookup resolves a symbol by name.
func (l *Library) Lookup(name string) (unsafe.Pointer, error) {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	var cerr *C.char
	p := C.db_dlsym_clear(l.handle, cs, &cerr)
	if cerr != nil {
		return nil, &LoadError{Path: l.path, Op: "dlsym " + strconv.Quote(name), Detail: C.GoString(cerr)}
	}
	return p, nil
}

// Init resolves the generator entry point and invokes it synchronously.
func (l *Library) Init(out string, lazy bool) error {
	fn, err := l.Lookup(InitSymbol)
	if err != nil {
		return err
	}
	if fn == nil {
		return &LoadError{Path: l.path, Op: "dlsym " + strconv.Quote(InitSymbol), Detail: "symbol resolved to NULL"}
	}

	var outC *C.char
	if out != "" {
		outC = C.CString(out)
		defer C.free(unsafe.Pointer(outC))
	}
	lazyC := C.int(0)
	if lazy {
		lazyC = 1
	}
	C.db_call_init(fn, outC, lazyC)
	return nil
}

// Close unmaps the library. The pipeline never calls this (see
// [LoadAndInit]); it exists so tests can release handles.
func (l *Library) Close() error {
	if int(C.db_dlclose(l.handle)) != 0 {
		return &LoadError{Path: l.path, Op: "dlclose", Detail: dlerr()}
	}
	l.handle = nil
	return nil
}

//go:build windows

package dlfcn

import (
	"runtime"
	"strconv"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Library is a shared library mapped into this process.
type Library struct {
	path   string
	handle windows.Handle
}

// Open maps the shared library at path.
func Open(path string) (*Library, error) {
	h, err := windows.LoadLibraryEx(path, 0, windows.LOAD_WITH_ALTERED_SEARCH_PATH)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "LoadLibraryEx", Detail: err.Error()}
	}
	return &Library{path: path, handle: h}, nil
}

// Lookup resolves a symbol by name.
func (l *Library) Lookup(name string) (uintptr, error) {
	p, err := windows.GetProcAddress(l.handle, name)
	if err != nil {
		return 0, &LoadError{Path: l.path, Op: "GetProcAddress " + strconv.Quote(name), Detail: err.Error()}
	}
	return p, nil
}

// Init resolves the generator entry point and invokes it synchronously.
func (l *Library) Init(out string, lazy bool) error {
	fn, err := l.Lookup(InitSymbol)
	if err != nil {
		return err
	}
	if fn == 0 {
		return &LoadError{Path: l.path, Op: "GetProcAddress " + strconv.Quote(InitSymbol), Detail: "symbol resolved to NULL"}
	}

	var outPtr *byte
	if out != "" {
		outPtr, err = windows.BytePtrFromString(out)
		if err != nil {
			return err
		}
	}
	lazyArg := uintptr(0)
	if lazy {
		lazyArg = 1
	}
	syscall.SyscallN(fn, uintptr(unsafe.Pointer(outPtr)), lazyArg)
	runtime.KeepAlive(outPtr)
	return nil
}

// Close unmaps the library. The pipeline never calls this (see
// [LoadAndInit]); it exists so tests can release handles.
func (l *Library) Close() error {
	if err := windows.FreeLibrary(l.handle); err != nil {
		return &LoadError{Path: l.path, Op: "FreeLibrary", Detail: err.Error()}
	}
	l.handle = 0
	return nil
}

package bindgen

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"
)

// This file is the module-side half of the entry-point ABI: it makes a
// c-shared build of the module export the well-known generator symbol and
// the free operation paired with outward byte sequences. Nothing else in
// the package touches raw memory.

//export init_deno_bindgen
func init_deno_bindgen(out *C.char, lazy C.int) {
	var opts GenerateOptions
	if out != nil {
		opts.Out = C.GoString(out)
	}
	opts.Lazy = lazy != 0
	if err := Generate(opts); err != nil {
		fmt.Fprintln(os.Stderr, "denobind:", err)
	}
}

//export deno_bindgen_free
func deno_bindgen_free(p unsafe.Pointer) {
	C.free(p)
}

// ReturnBytes copies b into a length-prefixed C allocation for handoff to
// a generated proxy: 4 bytes little-endian length, then the payload. The
// proxy reads it and releases the allocation through deno_bindgen_free.
// A nil slice returns NULL, denoting an absent optional value.
func ReturnBytes(b []byte) unsafe.Pointer {
	if b == nil {
		return nil
	}
	n := len(b)
	p := C.malloc(C.size_t(n + 4))
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(n))
	C.memcpy(p, unsafe.Pointer(&hdr[0]), 4)
	if n > 0 {
		C.memcpy(unsafe.Add(p, 4), unsafe.Pointer(&b[0]), C.size_t(n))
	}
	return p
}

// ArgBytes copies an inward pointer+length pair into a Go slice. A NULL
// or empty pair yields nil (absent optional).
func ArgBytes(p unsafe.Pointer, n uint32) []byte {
	if p == nil || n == 0 {
		return nil
	}
	return C.GoBytes(p, C.int(n))
}

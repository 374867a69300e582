package bindgen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
)

// GenerateOptions are the two knobs the CLI threads through the entry
// point.
type GenerateOptions struct {
	// Output path. Empty selects [DefaultOut].
	Out string
	// Lazy defers foreign symbol resolution in the generated code to
	// first call; eager binds during module evaluation. Both are
	// correct; the choice trades generation-time cost against
	// first-call latency.
	Lazy bool
}

// DefaultOut is where bindings are written when no output path is given,
// colocated with the project.
const DefaultOut = "bindings/bindings.ts"

// Generate renders bindings for the current registry and writes them to
// the output target, creating or truncating it. The output depends only
// on the registry and the options, so repeated runs are byte-identical.
func Generate(opts GenerateOptions) error {
	out := opts.Out
	if out == "" {
		out = DefaultOut
	}
	src := render(Descriptors(), libraryName(), opts.Lazy)
	if dir := filepath.Dir(out); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(out, src, 0o666)
}

// ffiParams returns the quoted Deno FFI parameter list for a descriptor.
// Pointer+length types expand to two positions.
func ffiParams(d Descriptor) []string {
	var params []string
	for _, p := range d.Parameters {
		if p.indirect() {
			params = append(params, `"buffer"`, `"usize"`)
		} else {
			params = append(params, `"`+p.ffi()+`"`)
		}
	}
	return params
}

func ffiResult(d Descriptor) string {
	if d.Result.indirect() {
		return "pointer"
	}
	return d.Result.ffi()
}

func render(descs []Descriptor, lib string, lazy bool) []byte {
	var usesStrParam, usesStrResult, usesRecord, usesOutBytes bool
	var recordNames []string
	seenRecord := map[string]bool{}
	noteRecord := func(name string) {
		usesRecord = true
		if !seenRecord[name] {
			seenRecord[name] = true
			recordNames = append(recordNames, name)
		}
	}
	for _, d := range descs {
		for _, p := range d.Parameters {
			if p.Kind == Str {
				usesStrParam = true
			}
			if p.Kind == Record {
				noteRecord(p.Name)
			}
		}
		if d.Result.indirect() {
			usesOutBytes = true
		}
		if d.Result.Kind == Str {
			usesStrResult = true
		}
		if d.Result.Kind == Record {
			noteRecord(d.Result.Name)
		}
	}

	var cb codeBuilder
	cb.linef(`// Code generated by denobind. DO NOT EDIT.`)
	cb.line()
	if usesRecord {
		cb.linef(`import { decodeCbor, encodeCbor } from "jsr:@std/cbor";`)
		cb.line()
	}

	cb.linef(`const LIB_NAME = %q;`, lib)
	cb.line()
	cb.linef(`function libPath(): string {`)
	cb.indent++
	cb.linef(`const env = Deno.env.get("DENO_BINDGEN_LIB_PATH");`)
	cb.linef(`if (env !== undefined) {`)
	cb.indent++
	cb.linef(`return env;`)
	cb.indent--
	cb.linef(`}`)
	cb.linef(`switch (Deno.build.os) {`)
	cb.indent++
	cb.linef(`case "windows":`)
	cb.indent++
	cb.linef("return `./target/debug/${LIB_NAME}.dll`;")
	cb.indent--
	cb.linef(`case "darwin":`)
	cb.indent++
	cb.linef("return `./target/debug/lib${LIB_NAME}.dylib`;")
	cb.indent--
	cb.linef(`default:`)
	cb.indent++
	cb.linef("return `./target/debug/lib${LIB_NAME}.so`;")
	cb.indent--
	cb.indent--
	cb.linef(`}`)
	cb.indent--
	cb.linef(`}`)
	cb.line()

	cb.linef(`const symbols = {`)
	cb.indent++
	for _, d := range descs {
		cb.linef(`%v: {`, d.Name)
		cb.indent++
		cb.linef(`parameters: [%v],`, strings.Join(ffiParams(d), ", "))
		cb.linef(`result: %q,`, ffiResult(d))
		cb.linef(`nonblocking: %v,`, d.NonBlocking)
		cb.indent--
		cb.linef(`},`)
	}
	// The free operation is always part of the symbol table so proxies
	// can release native-allocated return buffers.
	cb.linef(`deno_bindgen_free: {`)
	cb.indent++
	cb.linef(`parameters: ["pointer"],`)
	cb.linef(`result: "void",`)
	cb.linef(`nonblocking: false,`)
	cb.indent--
	cb.linef(`},`)
	cb.indent--
	cb.linef(`} as const;`)
	cb.line()

	if lazy {
		cb.linef(`let lib: Deno.DynamicLibrary<typeof symbols> | null = null;`)
		cb.line()
		cb.linef(`function dylib(): Deno.DynamicLibrary<typeof symbols> {`)
		cb.indent++
		cb.linef(`if (lib === null) {`)
		cb.indent++
		cb.linef(`lib = Deno.dlopen(libPath(), symbols);`)
		cb.indent--
		cb.linef(`}`)
		cb.linef(`return lib;`)
		cb.indent--
		cb.linef(`}`)
	} else {
		cb.linef(`const lib = Deno.dlopen(libPath(), symbols);`)
		cb.line()
		cb.linef(`function dylib(): Deno.DynamicLibrary<typeof symbols> {`)
		cb.indent++
		cb.linef(`return lib;`)
		cb.indent--
		cb.linef(`}`)
	}

	if usesStrParam || usesStrResult {
		cb.line()
		if usesStrParam {
			cb.linef(`const textEncoder = new TextEncoder();`)
		}
		if usesStrResult {
			cb.linef(`const textDecoder = new TextDecoder();`)
		}
	}

	if usesOutBytes {
		cb.line()
		cb.linef(`function readBytes(ptr: Deno.PointerValue): Uint8Array | null {`)
		cb.indent++
		cb.linef(`if (ptr === null) {`)
		cb.indent++
		cb.linef(`return null;`)
		cb.indent--
		cb.linef(`}`)
		cb.linef(`const view = new Deno.UnsafePointerView(ptr);`)
		cb.linef(`const len = view.getUint32(0);`)
		cb.linef(`const bytes = new Uint8Array(len);`)
		cb.linef(`view.copyInto(bytes, 4);`)
		cb.linef(`dylib().symbols.deno_bindgen_free(ptr);`)
		cb.linef(`return bytes;`)
		cb.indent--
		cb.linef(`}`)
	}

	if usesRecord {
		cb.line()
		cb.linef(`function encodeRecord(v: unknown): Uint8Array {`)
		cb.indent++
		cb.linef(`const body = encodeCbor(v);`)
		cb.linef(`const out = new Uint8Array(body.length + 1);`)
		cb.linef(`out[0] = %d;`, codecVersion)
		cb.linef(`out.set(body, 1);`)
		cb.linef(`return out;`)
		cb.indent--
		cb.linef(`}`)
		cb.line()
		cb.linef(`function decodeRecord(bytes: Uint8Array): unknown {`)
		cb.indent++
		cb.linef(`if (bytes.length === 0 || bytes[0] !== %d) {`, codecVersion)
		cb.indent++
		cb.linef(`throw new TypeError("unsupported record envelope version");`)
		cb.indent--
		cb.linef(`}`)
		cb.linef(`return decodeCbor(bytes.subarray(1));`)
		cb.indent--
		cb.linef(`}`)
	}

	for _, name := range recordNames {
		cb.line()
		cb.linef(`export type %v = Record<string, unknown>;`, name)
	}

	for _, d := range descs {
		cb.line()
		renderWrapper(&cb, d)
	}

	return cb.bytes()
}

// renderWrapper emits the exported TypeScript function for one
// descriptor: the declaration plus a thin proxy marshaling arguments into
// the native calling convention and the return value back out.
func renderWrapper(cb *codeBuilder, d Descriptor) {
	var params []string
	for i, p := range d.Parameters {
		params = append(params, fmt.Sprintf("a%d: %v", i, p.ts()))
	}
	ret := d.Result.ts()
	keyword := "function"
	await := ""
	if d.NonBlocking {
		keyword = "async function"
		await = "await "
		ret = fmt.Sprintf("Promise<%v>", ret)
	}
	cb.linef(`export %v %v(%v): %v {`, keyword, strcase.ToLowerCamel(d.Name), strings.Join(params, ", "), ret)
	cb.indent++

	var args []string
	for i, p := range d.Parameters {
		switch p.Kind {
		case Str:
			cb.linef(`const b%d = a%d === null ? null : textEncoder.encode(a%d);`, i, i, i)
			args = append(args, fmt.Sprintf("b%d", i), fmt.Sprintf("b%d === null ? 0 : b%d.byteLength", i, i))
		case Record:
			cb.linef(`const b%d = a%d === null ? null : encodeRecord(a%d);`, i, i, i)
			args = append(args, fmt.Sprintf("b%d", i), fmt.Sprintf("b%d === null ? 0 : b%d.byteLength", i, i))
		case Buffer:
			args = append(args, fmt.Sprintf("a%d", i), fmt.Sprintf("a%d === null ? 0 : a%d.byteLength", i, i))
		case Bool:
			args = append(args, fmt.Sprintf("a%d ? 1 : 0", i))
		default:
			args = append(args, fmt.Sprintf("a%d", i))
		}
	}
	call := fmt.Sprintf(`%vdylib().symbols.%v(%v)`, await, d.Name, strings.Join(args, ", "))

	switch d.Result.Kind {
	case Void:
		cb.linef(`%v;`, call)
	case Bool:
		cb.linef(`return %v !== 0;`, call)
	case Buffer:
		cb.linef(`const r = %v;`, call)
		cb.linef(`return readBytes(r);`)
	case Str:
		cb.linef(`const r = %v;`, call)
		cb.linef(`const out = readBytes(r);`)
		cb.linef(`return out === null ? null : textDecoder.decode(out);`)
	case Record:
		cb.linef(`const r = %v;`, call)
		cb.linef(`const out = readBytes(r);`)
		cb.linef(`return out === null ? null : decodeRecord(out) as %v;`, d.Result.Name)
	default:
		cb.linef(`return %v;`, call)
	}

	cb.indent--
	cb.linef(`}`)
}

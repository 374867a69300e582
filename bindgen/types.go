package bindgen

// Kind classifies a bindable native type.
type Kind int

const (
	Void Kind = iota
	Bool
	I8
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	Isize
	Usize
	F32
	F64
	// Buffer is a raw byte sequence. Inward it crosses the boundary as a
	// pointer+length pair; outward it comes back as a length-prefixed
	// allocation the generated proxy releases through deno_bindgen_free.
	Buffer
	// Str is a UTF-8 string with Buffer's crossing rules.
	Str
	// Record is a structured value serialized with the versioned record
	// envelope (see [Marshal]) and crossed with Buffer's rules.
	Record
)

// Type describes one parameter or result position of a bound function.
type Type struct {
	Kind Kind
	// Name of the record type as it appears in the generated
	// TypeScript. Only meaningful for Record.
	Name string
}

// RecordType returns the Type for a named record.
func RecordType(name string) Type {
	return Type{Kind: Record, Name: name}
}

// indirect reports whether the type crosses the boundary as a
// pointer+length pair rather than by value. An all-zero pair denotes an
// absent optional value.
func (t Type) indirect() bool {
	switch t.Kind {
	case Buffer, Str, Record:
		return true
	}
	return false
}

// ffi returns the Deno FFI native type for a by-value position.
func (t Type) ffi() string {
	switch t.Kind {
	case Void:
		return "void"
	case Bool:
		return "u8"
	case I8:
		return "i8"
	case U8:
		return "u8"
	case I16:
		return "i16"
	case U16:
		return "u16"
	case I32:
		return "i32"
	case U32:
		return "u32"
	case I64:
		return "i64"
	case U64:
		return "u64"
	case Isize:
		return "isize"
	case Usize:
		return "usize"
	case F32:
		return "f32"
	case F64:
		return "f64"
	}
	panic("not a by-value type")
}

// ts returns the TypeScript-facing type.
func (t Type) ts() string {
	switch t.Kind {
	case Void:
		return "void"
	case Bool:
		return "boolean"
	case I64, U64, Isize, Usize:
		return "bigint"
	case I8, U8, I16, U16, I32, U32, F32, F64:
		return "number"
	case Buffer:
		return "Uint8Array | null"
	case Str:
		return "string | null"
	case Record:
		return t.Name + " | null"
	}
	panic("unknown kind")
}

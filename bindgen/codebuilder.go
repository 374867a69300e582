package bindgen

import (
	"fmt"
	"strings"
)

// codeBuilder is a wrapper around [strings.Builder] that simplifies
// emitting TypeScript.
//
// The zero value is safely ready to use.
type codeBuilder struct {
	// indent is the indentation level (indentation is two spaces).
	indent int

	b strings.Builder
}

// linef writes a single line, prepended by the current indentation.
//
// Takes format and args like [fmt.Printf].
func (w *codeBuilder) linef(format string, args ...any) {
	for i := 0; i < w.indent; i++ {
		w.b.WriteString("  ")
	}
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteString("\n")
}

// line writes a single empty line.
func (w *codeBuilder) line() {
	w.b.WriteString("\n")
}

func (w *codeBuilder) bytes() []byte {
	return []byte(w.b.String())
}

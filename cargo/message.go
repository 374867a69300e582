package cargo

// Message is one line of cargo's --message-format=json output stream.
// Lines whose reason we don't care about are kept in the stream but
// ignored by [ResolveArtifact].
type Message struct {
	Reason    string   `json:"reason"`
	Target    Target   `json:"target"`
	Filenames []string `json:"filenames"`
}

// Target identifies the build target a message refers to.
type Target struct {
	Name string   `json:"name"`
	Kind []string `json:"kind"`
}

const (
	reasonCompilerArtifact = "compiler-artifact"

	// kindCdylib marks a shared/dynamic library target, as opposed to
	// "lib" (static rlib) or "bin".
	kindCdylib = "cdylib"
)

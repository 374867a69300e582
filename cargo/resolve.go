package cargo

import (
	"errors"
	"slices"
)

// Artifact is the shared-library file produced by a successful build.
type Artifact struct {
	Path string
}

// ErrNoArtifact is returned when a build succeeded but emitted no
// shared-library output. This is distinct from a build failure: cargo was
// fine, the project just doesn't produce a cdylib (e.g. missing
// `crate-type = ["cdylib"]`).
var ErrNoArtifact = errors.New(`build succeeded but produced no shared library (is crate-type set to "cdylib"?)`)

// ResolveArtifact selects the shared-library output from a build's message
// stream. A target may be reported multiple times across build stages
// (e.g. after feature resolution); the final report reflects the artifact
// actually present on disk, so the last match wins.
func ResolveArtifact(msgs []Message) (Artifact, error) {
	var artifacts []Artifact
	for _, msg := range msgs {
		if msg.Reason != reasonCompilerArtifact {
			continue
		}
		if !slices.Contains(msg.Target.Kind, kindCdylib) {
			continue
		}
		if len(msg.Filenames) == 0 {
			continue
		}
		artifacts = append(artifacts, Artifact{Path: msg.Filenames[0]})
	}
	if len(artifacts) == 0 {
		return Artifact{}, ErrNoArtifact
	}
	return artifacts[len(artifacts)-1], nil
}

package cargo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func artifactMsg(name string, kind []string, filenames ...string) Message {
	return Message{
		Reason:    reasonCompilerArtifact,
		Target:    Target{Name: name, Kind: kind},
		Filenames: filenames,
	}
}

func TestResolveArtifactSingleMatch(t *testing.T) {
	require := require.New(t)

	msgs := []Message{
		{Reason: "build-script-executed"},
		artifactMsg("mylib", []string{"cdylib"}, "/p/target/debug/libmylib.so"),
		{Reason: "build-finished"},
	}
	artifact, err := ResolveArtifact(msgs)
	require.NoError(err)
	require.Equal("/p/target/debug/libmylib.so", artifact.Path)
}

func TestResolveArtifactLastMatchWins(t *testing.T) {
	require := require.New(t)

	msgs := []Message{
		artifactMsg("mylib", []string{"cdylib"}, "/p/target/debug/stage1.so"),
		artifactMsg("mylib", []string{"cdylib"}, "/p/target/debug/stage2.so"),
		artifactMsg("mylib", []string{"cdylib"}, "/p/target/debug/stage3.so"),
	}
	artifact, err := ResolveArtifact(msgs)
	require.NoError(err)
	require.Equal("/p/target/debug/stage3.so", artifact.Path)
}

func TestResolveArtifactKindFilter(t *testing.T) {
	require := require.New(t)

	// The static "lib" report for the same file must be ignored; only the
	// event whose kind set contains the dynamic-library marker counts.
	msgs := []Message{
		artifactMsg("a", []string{"lib"}, "/p/a.so"),
		artifactMsg("a", []string{"cdylib"}, "/p/a.so"),
	}
	artifact, err := ResolveArtifact(msgs)
	require.NoError(err)
	require.Equal("/p/a.so", artifact.Path)

	msgs = []Message{
		artifactMsg("a", []string{"lib", "cdylib"}, "/p/combined.so"),
	}
	artifact, err = ResolveArtifact(msgs)
	require.NoError(err)
	require.Equal("/p/combined.so", artifact.Path)
}

func TestResolveArtifactNoMatch(t *testing.T) {
	require := require.New(t)

	_, err := ResolveArtifact(nil)
	require.ErrorIs(err, ErrNoArtifact)

	msgs := []Message{
		artifactMsg("a", []string{"lib"}, "/p/liba.rlib"),
		artifactMsg("b", []string{"bin"}, "/p/b"),
		{Reason: "compiler-message"},
	}
	_, err = ResolveArtifact(msgs)
	require.ErrorIs(err, ErrNoArtifact)
}

func TestResolveArtifactIgnoresEmptyFilenames(t *testing.T) {
	require := require.New(t)

	msgs := []Message{
		artifactMsg("a", []string{"cdylib"}, "/p/real.so"),
		artifactMsg("a", []string{"cdylib"}),
	}
	artifact, err := ResolveArtifact(msgs)
	require.NoError(err)
	require.Equal("/p/real.so", artifact.Path)
}

package cargo

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeCargo writes a shell script standing in for the cargo binary and
// returns its path.
func fakeCargo(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake cargo is a shell script")
	}
	path := filepath.Join(t.TempDir(), "cargo")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestBuildRunParsesStream(t *testing.T) {
	require := require.New(t)

	bin := fakeCargo(t, `
echo '{"reason":"build-script-executed","package_id":"x"}'
echo '{"reason":"compiler-artifact","target":{"name":"mylib","kind":["lib"]},"filenames":["/p/libmylib.rlib"]}'
echo 'some build script noise'
echo '{"reason":"compiler-artifact","target":{"name":"mylib","kind":["cdylib"]},"filenames":["/p/libmylib.so"]}'
echo '{"reason":"build-finished","success":true}'
`)

	msgs, err := Build{Bin: bin}.Run(t.TempDir())
	require.NoError(err)
	require.Len(msgs, 4)
	require.Equal("build-script-executed", msgs[0].Reason)
	require.Equal([]string{"cdylib"}, msgs[2].Target.Kind)

	artifact, err := ResolveArtifact(msgs)
	require.NoError(err)
	require.Equal("/p/libmylib.so", artifact.Path)
}

func TestBuildRunReleaseFlag(t *testing.T) {
	require := require.New(t)

	// The script echoes its arguments back as a fake artifact path so the
	// test can see the exact command line cargo was invoked with.
	bin := fakeCargo(t, `
echo "{\"reason\":\"compiler-artifact\",\"target\":{\"kind\":[\"cdylib\"]},\"filenames\":[\"$*\"]}"
`)

	msgs, err := Build{Bin: bin, Release: true}.Run(t.TempDir())
	require.NoError(err)
	require.Len(msgs, 1)
	require.Equal("build --lib --message-format=json --release", msgs[0].Filenames[0])

	msgs, err = Build{Bin: bin}.Run(t.TempDir())
	require.NoError(err)
	require.Equal("build --lib --message-format=json", msgs[0].Filenames[0])
}

func TestBuildRunNonzeroExit(t *testing.T) {
	require := require.New(t)

	bin := fakeCargo(t, `
echo '{"reason":"compiler-artifact","target":{"kind":["cdylib"]},"filenames":["/p/libmylib.so"]}'
exit 101
`)

	msgs, err := Build{Bin: bin}.Run(t.TempDir())
	require.Nil(msgs)
	var exitErr *ExitError
	require.ErrorAs(err, &exitErr)
	require.Equal(bin+" build --lib --message-format=json", exitErr.Cmd)
	require.Contains(exitErr.Status, "exit status 101")
	require.Contains(exitErr.Error(), exitErr.Cmd)
	require.Contains(exitErr.Error(), "exit status 101")
}

func TestMetadataRootPackage(t *testing.T) {
	require := require.New(t)

	bin := fakeCargo(t, `
if [ "$1" != "metadata" ]; then exit 2; fi
cat <<'EOF'
{
  "packages": [
    {"id": "path+file:///p/dep#0.1.0", "name": "dep"},
    {"id": "path+file:///p/mylib#0.1.0", "name": "mylib"}
  ],
  "resolve": {"root": "path+file:///p/mylib#0.1.0"}
}
EOF
`)

	name, err := Build{Bin: bin}.Metadata(t.TempDir())
	require.NoError(err)
	require.Equal("mylib", name)
}

func TestMetadataSinglePackageFallback(t *testing.T) {
	require := require.New(t)

	bin := fakeCargo(t, `
echo '{"packages": [{"id": "x", "name": "onlyone"}], "resolve": null}'
`)

	name, err := Build{Bin: bin}.Metadata(t.TempDir())
	require.NoError(err)
	require.Equal("onlyone", name)
}

func TestMetadataFailure(t *testing.T) {
	require := require.New(t)

	bin := fakeCargo(t, `exit 1`)
	_, err := Build{Bin: bin}.Metadata(t.TempDir())
	require.Error(err)
	require.Contains(err.Error(), "metadata")
}

func TestWriteSummary(t *testing.T) {
	require := require.New(t)

	msgs := []Message{
		artifactMsg("mylib", []string{"lib", "cdylib"}, "/p/libmylib.so"),
		{Reason: "build-finished"},
	}
	var buf bytes.Buffer
	WriteSummary(&buf, msgs)
	out := buf.String()
	require.Contains(out, "mylib")
	require.Contains(out, "cdylib")
	require.Contains(out, "/p/libmylib.so")
	require.NotContains(out, "build-finished")
}

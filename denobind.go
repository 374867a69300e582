package denobind

import (
	"fmt"
	"os"

	"github.com/denobind/denobind/cargo"
	"github.com/denobind/denobind/config"
	"github.com/denobind/denobind/dlfcn"
)

// Options control one binding-generation run. CLI flags win over
// bindgen.toml values, which win over defaults.
type Options struct {
	// Project directory containing Cargo.toml. Empty means the current
	// directory.
	Dir string
	// Build with optimizations.
	Release bool
	// Binding output path. Empty lets the module pick its default
	// location.
	Out string
	// Defer foreign symbol resolution in the generated code to first
	// call.
	LazyInit bool
	// Print build diagnostics and the artifact summary.
	Verbose bool

	Log *Logger
}

// Run executes the full pipeline: build the native module, resolve the
// produced shared-library artifact, load it into this process and invoke
// its binding-generator entry point.
//
// The pipeline is strictly linear and synchronous: no concurrent builds,
// no timeouts. A hang in the build or in the generator blocks the tool,
// which is acceptable for a local interactive developer tool. The loaded
// module stays mapped until process exit (see [dlfcn.LoadAndInit]).
//
// Every failure mode is fatal to the whole run; there is no partial
// success. Either bindings are written, or the caller exits nonzero with
// nothing (or stale previous output) on disk.
func Run(opts Options) error {
	log := opts.Log
	if log == nil {
		log = &Logger{Writer: os.Stderr, Prefix: "denobind", MinLevel: WARN}
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	release := opts.Release || *cfg.Release
	out := opts.Out
	if out == "" {
		out = cfg.Out
	}
	lazy := opts.LazyInit || *cfg.LazyInit

	build := cargo.Build{Release: release, Bin: cfg.Cargo}
	msgs, err := build.Run(dir)
	if err != nil {
		// For a nonzero cargo exit this carries the full command
		// line and exit status; resolution is never attempted.
		return err
	}
	if opts.Verbose {
		cargo.WriteSummary(os.Stderr, msgs)
	}

	artifact, err := cargo.ResolveArtifact(msgs)
	if err != nil {
		return err
	}
	log.Log(INFO, "resolved artifact %v", artifact.Path)

	name, err := build.Metadata(dir)
	if err != nil {
		return err
	}

	fmt.Printf("Initializing %v\n", name)
	if err := dlfcn.LoadAndInit(artifact.Path, out, lazy); err != nil {
		return err
	}
	fmt.Printf("Ready %v\n", name)
	return nil
}

// Package config reads the optional per-project bindgen.toml file.
//
// Everything in it can also be set from the command line; flags win over
// file values, file values win over defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/pelletier/go-toml/v2"
)

// FileName is looked up in the project directory.
const FileName = "bindgen.toml"

type Config struct {
	// Build with optimizations (same as --release).
	Release *bool `toml:"release"`
	// Binding output path. Empty lets the module pick its default
	// location.
	Out string `toml:"out"`
	// Defer foreign symbol resolution in generated code to first call
	// (same as --lazy-init).
	LazyInit *bool `toml:"lazy-init"`
	// Cargo binary override.
	Cargo string `toml:"cargo"`
}

func defaults() Config {
	f := false
	return Config{
		Release:  &f,
		LazyInit: &f,
		Cargo:    "cargo",
	}
}

// Load reads dir/bindgen.toml, filling unset values from the defaults.
// A missing file yields the defaults.
func Load(dir string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err == nil {
		err := toml.NewDecoder(bytes.NewReader(data)).
			DisallowUnknownFields().
			Decode(&cfg)
		if err != nil {
			return Config{}, fmt.Errorf("%v: %w", FileName, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	if err := mergo.Merge(&cfg, defaults()); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Package config loads the interpreter's bootstrap configuration: the
// installation root the stdlib resolves under, the fixed set of
// standard-library module names, and the security allow-list.
//
// Configuration comes from an optional radon.toml next to the working
// directory, falling back to the BASE_DIR environment variable and the
// built-in stdlib set when the file is absent (spec.md §6).
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultStdlibs is the STDLIBS set baked into the build: module names
// resolved under <BaseDir>/stdlib rather than the caller's working
// directory.
var DefaultStdlibs = []string{
	"math",
	"string",
	"array",
	"time",
	"system",
	"random",
}

// Config is the interpreter bootstrap configuration.
type Config struct {
	BaseDir string   `toml:"base_dir"`
	Stdlibs []string `toml:"stdlibs"`
	Allow   []string `toml:"allow"`
}

// Load reads radon.toml from dir when present, then fills gaps from
// the environment and built-in defaults. A missing file is not an
// error; a malformed one is.
func Load(dir string) (Config, error) {
	var cfg Config
	path := filepath.Join(dir, "radon.toml")
	if _, err := os.Stat(path); err == nil {
		if _, derr := toml.DecodeFile(path, &cfg); derr != nil {
			return Config{}, derr
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns the configuration with no file consulted.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.BaseDir == "" {
		c.BaseDir = os.Getenv("BASE_DIR")
	}
	if c.BaseDir == "" {
		if exe, err := os.Executable(); err == nil {
			c.BaseDir = filepath.Dir(exe)
		} else {
			c.BaseDir = "."
		}
	}
	if c.Stdlibs == nil {
		c.Stdlibs = append([]string(nil), DefaultStdlibs...)
	}
}

// IsStdlib reports whether name belongs to the STDLIBS set.
func (c Config) IsStdlib(name string) bool {
	for _, s := range c.Stdlibs {
		if s == name {
			return true
		}
	}
	return false
}

// StdlibPath resolves a stdlib module name to its on-disk script.
func (c Config) StdlibPath(name string) string {
	return filepath.Join(c.BaseDir, "stdlib", name+".rn")
}

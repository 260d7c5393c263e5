package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_TOMLFile(t *testing.T) {
	dir := t.TempDir()
	toml := `base_dir = "/opt/radon"
stdlibs = ["math", "custom"]
allow = ["pyapi_access"]
`
	if err := os.WriteFile(filepath.Join(dir, "radon.toml"), []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseDir != "/opt/radon" {
		t.Fatalf("BaseDir = %q", cfg.BaseDir)
	}
	if !cfg.IsStdlib("custom") || cfg.IsStdlib("random") {
		t.Fatalf("stdlib set wrong: %v", cfg.Stdlibs)
	}
	if len(cfg.Allow) != 1 || cfg.Allow[0] != "pyapi_access" {
		t.Fatalf("allow = %v", cfg.Allow)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseDir == "" {
		t.Fatal("BaseDir must fall back to a non-empty default")
	}
	if !cfg.IsStdlib("math") {
		t.Fatalf("default stdlibs missing math: %v", cfg.Stdlibs)
	}
}

func TestLoad_MalformedFileErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "radon.toml"), []byte("base_dir = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("malformed TOML must error")
	}
}

func TestLoad_EnvFallback(t *testing.T) {
	t.Setenv("BASE_DIR", "/env/base")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseDir != "/env/base" {
		t.Fatalf("BaseDir = %q", cfg.BaseDir)
	}
	if cfg.StdlibPath("math") != "/env/base/stdlib/math.rn" {
		t.Fatalf("StdlibPath = %q", cfg.StdlibPath("math"))
	}
}

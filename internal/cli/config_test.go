package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
base = 1000.0
layout = "circular"
nodesize = 40
nodeshape = "o"
format = "svg,png"
converter = "/opt/gridlabd/bin/gridlabd"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile() error: %v", err)
	}

	if cfg.Base != 1000.0 {
		t.Errorf("Base = %v, want 1000", cfg.Base)
	}
	if cfg.Layout != "circular" {
		t.Errorf("Layout = %q, want circular", cfg.Layout)
	}
	if cfg.NodeSize != 40 {
		t.Errorf("NodeSize = %d, want 40", cfg.NodeSize)
	}
	if cfg.NodeShape != "o" {
		t.Errorf("NodeShape = %q, want o", cfg.NodeShape)
	}
	if cfg.Format != "svg,png" {
		t.Errorf("Format = %q, want svg,png", cfg.Format)
	}
	if cfg.Converter != "/opt/gridlabd/bin/gridlabd" {
		t.Errorf("Converter = %q", cfg.Converter)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	cfg, err := loadConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config should not error, got: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("missing config should be zero, got %+v", cfg)
	}
}

func TestLoadConfigFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("base = [not toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfigFile(path); err == nil {
		t.Error("invalid TOML should error")
	}
}

package model

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dchassin/plot-glm/pkg/errors"
)

func writeModel(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoaderLoadJSON(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "feeder.json", sampleModel)

	l := &Loader{Workdir: dir}
	doc, out, err := l.Load(context.Background(), "feeder.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("no converter output expected for JSON input, got %q", out)
	}
	if doc.Len() != 3 {
		t.Errorf("Len = %d, want 3", doc.Len())
	}
}

func TestLoaderReadAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir, "feeder.json", sampleModel)

	// Absolute paths bypass the working directory.
	l := &Loader{Workdir: "/nonexistent"}
	if _, err := l.Read(path); err != nil {
		t.Fatalf("Read: %v", err)
	}
}

func TestLoaderReadMissingFile(t *testing.T) {
	l := &Loader{Workdir: t.TempDir()}
	_, err := l.Read("nope.json")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("code = %q, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoaderConverterMissing(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "feeder.glm", "object node { phases ABCN; }")

	l := &Loader{Workdir: dir, Converter: "glmplot-test-no-such-converter"}
	_, _, err := l.Load(context.Background(), "feeder.glm")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeConverterMissing) {
		t.Errorf("code = %q, want CONVERTER_NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoaderConvertViaScript(t *testing.T) {
	// A stand-in converter that emits a fixed JSON export, exercising the
	// subprocess path without a GridLAB-D installation.
	dir := t.TempDir()
	writeModel(t, dir, "feeder.glm", "object node { phases ABCN; }")
	script := filepath.Join(dir, "fake-gridlabd")
	if err := os.WriteFile(script, []byte(
		"#!/bin/sh\ncat > \"$6\" <<'JSON'\n"+sampleModel+"\nJSON\necho converted\n"), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	l := &Loader{Workdir: dir, Converter: script}
	doc, out, err := l.Load(context.Background(), filepath.Join(dir, "feeder.glm"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(out) != "converted\n" {
		t.Errorf("converter output = %q", out)
	}
	if doc.Len() != 3 {
		t.Errorf("Len = %d, want 3", doc.Len())
	}
}

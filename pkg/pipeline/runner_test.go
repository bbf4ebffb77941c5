package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/dchassin/plot-glm/pkg/cache"
)

const testModel = `{
  "objects": {
    "n1": {"id": 1, "phases": "ABCN"},
    "n2": {"id": 2, "phases": "AN"},
    "l1": {"id": 3, "from": "n1", "to": "n2", "phases": "A", "power_out": "5000 VA"}
  }
}`

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// fakeConverter writes a shell script that emits testModel as its JSON
// output and counts its invocations in calls.txt.
func fakeConverter(t *testing.T, dir string) string {
	t.Helper()
	script := filepath.Join(dir, "fake-gridlabd")
	body := "#!/bin/sh\necho run >> \"" + filepath.Join(dir, "calls.txt") + "\"\ncat > \"$6\" <<'JSON'\n" + testModel + "\nJSON\n"
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return script
}

func converterCalls(t *testing.T, dir string) int {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "calls.txt"))
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatalf("read calls: %v", err)
	}
	n := 0
	for _, b := range data {
		if b == '\n' {
			n++
		}
	}
	return n
}

func TestLoadModelJSONInput(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "feeder.json"), []byte(testModel), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(cache.NewNullCache(), nil, quietLogger())
	opts := Options{Input: "feeder.json", Workdir: dir}
	opts.SetDefaults()

	result := &Result{}
	doc, err := r.loadModel(context.Background(), opts, result)
	if err != nil {
		t.Fatalf("loadModel: %v", err)
	}
	if doc.Len() != 3 {
		t.Errorf("Len = %d, want 3", doc.Len())
	}
	if result.ModelHash == "" {
		t.Error("ModelHash should be set")
	}
	if result.CacheInfo.ModelHit {
		t.Error("JSON inputs never hit the model cache")
	}
}

func TestLoadModelConversionCached(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "feeder.glm"), []byte("object node {}"), 0644); err != nil {
		t.Fatal(err)
	}
	converter := fakeConverter(t, dir)

	c, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, quietLogger())

	opts := Options{Input: "feeder.glm", Workdir: dir, Converter: converter}
	opts.SetDefaults()

	// First load converts
	result := &Result{}
	doc, err := r.loadModel(context.Background(), opts, result)
	if err != nil {
		t.Fatalf("first loadModel: %v", err)
	}
	if doc.Len() != 3 {
		t.Errorf("Len = %d", doc.Len())
	}
	if result.CacheInfo.ModelHit {
		t.Error("first load should miss")
	}
	if got := converterCalls(t, dir); got != 1 {
		t.Fatalf("converter calls = %d, want 1", got)
	}

	// Second load is served from cache, no subprocess
	result = &Result{}
	doc, err = r.loadModel(context.Background(), opts, result)
	if err != nil {
		t.Fatalf("second loadModel: %v", err)
	}
	if doc.Len() != 3 {
		t.Errorf("Len = %d", doc.Len())
	}
	if !result.CacheInfo.ModelHit {
		t.Error("second load should hit the model cache")
	}
	if got := converterCalls(t, dir); got != 1 {
		t.Errorf("converter calls = %d, want 1 (cached)", got)
	}

	// Refresh bypasses the cache read
	opts.Refresh = true
	result = &Result{}
	if _, err := r.loadModel(context.Background(), opts, result); err != nil {
		t.Fatalf("refresh loadModel: %v", err)
	}
	if result.CacheInfo.ModelHit {
		t.Error("refresh must not hit the cache")
	}
	if got := converterCalls(t, dir); got != 2 {
		t.Errorf("converter calls = %d, want 2 after refresh", got)
	}
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListGLMFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.glm", "a.glm", "notes.txt", "model.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.glm"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := listGLMFiles(dir)
	if err != nil {
		t.Fatalf("listGLMFiles() error: %v", err)
	}

	want := []string{"a.glm", "b.glm"}
	if len(files) != len(want) {
		t.Fatalf("listGLMFiles() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestWriteReport(t *testing.T) {
	results := []testResult{
		{File: "ok.glm", Status: "OK", Details: "converted\n"},
		{File: "skip.glm", Status: "FOUND"},
		{File: "bad.glm", Status: "FAILED", Details: "converter exited 1"},
		{File: "boom.glm", Status: "EXCEPTION", Details: "unknown object"},
	}

	var buf bytes.Buffer
	writeReport(&buf, results)
	report := buf.String()

	if !strings.HasPrefix(report, "*** RUN ") {
		t.Errorf("report should start with run header, got %q", report[:20])
	}
	for _, want := range []string{
		"*** TEST ok.glm OK\nconverted\n",
		"*** TEST bad.glm FAILED\nconverter exited 1\n",
		"*** TEST boom.glm EXCEPTION\nunknown object\n",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "skip.glm") {
		t.Error("FOUND tests should not appear in the report")
	}
}

func TestPrintSummary(t *testing.T) {
	tests := []struct {
		name    string
		results []testResult
		wantErr bool
	}{
		{
			name:    "all passing",
			results: []testResult{{Status: "OK"}, {Status: "FOUND"}},
			wantErr: false,
		},
		{
			name:    "one failed",
			results: []testResult{{Status: "OK"}, {Status: "FAILED"}},
			wantErr: true,
		},
		{
			name:    "exception counts as failure",
			results: []testResult{{Status: "EXCEPTION"}},
			wantErr: true,
		},
		{
			name:    "empty",
			results: nil,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := printSummary(tt.results, "validate.txt")
			if (err != nil) != tt.wantErr {
				t.Errorf("printSummary() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

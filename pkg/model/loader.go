package model

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dchassin/plot-glm/pkg/errors"
)

// DefaultConverter is the external tool used to convert GLM sources to JSON.
const DefaultConverter = "gridlabd"

// Loader reads GridLAB-D models from disk, invoking the external converter
// when the source is not already a JSON export.
//
// The zero value is usable: it runs "gridlabd" from PATH in the current
// directory.
type Loader struct {
	// Converter is the converter executable name or path.
	// Defaults to DefaultConverter when empty.
	Converter string

	// Workdir is the working directory for relative inputs and converter
	// invocations. Defaults to "." when empty.
	Workdir string
}

// converter returns the configured converter executable.
func (l *Loader) converter() string {
	if l.Converter != "" {
		return l.Converter
	}
	return DefaultConverter
}

// workdir returns the configured working directory.
func (l *Loader) workdir() string {
	if l.Workdir != "" {
		return l.Workdir
	}
	return "."
}

// resolve joins a relative path with the working directory.
func (l *Loader) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.workdir(), path)
}

// Load reads the model at input. JSON files decode directly; any other
// extension is first converted to a JSON export next to the source file
// (the ".glm" extension replaced by ".json").
//
// The returned output is the converter's combined stdout/stderr, empty when
// no conversion was needed. It is reported even on success so callers such
// as the validation harness can include it in their reports.
func (l *Loader) Load(ctx context.Context, input string) (*Document, []byte, error) {
	jsonfile := input
	var out []byte
	if !strings.EqualFold(filepath.Ext(input), ".json") {
		jsonfile = strings.TrimSuffix(input, filepath.Ext(input)) + ".json"
		var err error
		out, err = l.Convert(ctx, input, jsonfile)
		if err != nil {
			return nil, out, err
		}
	}

	doc, err := l.Read(jsonfile)
	return doc, out, err
}

// Read decodes a JSON export at path without any conversion step.
func (l *Loader) Read(path string) (*Document, error) {
	f, err := os.Open(l.resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}

// Convert runs the external converter to produce a JSON export of input at
// jsonfile. Both paths are interpreted relative to the working directory.
// The converter's combined output is returned for reporting regardless of
// the outcome.
func (l *Loader) Convert(ctx context.Context, input, jsonfile string) ([]byte, error) {
	bin := l.converter()
	if _, err := exec.LookPath(bin); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConverterMissing, err,
			"%s not found; install GridLAB-D or pass a JSON export directly", bin)
	}

	cmd := exec.CommandContext(ctx, bin, "-W", l.workdir(), "-I", input, "-o", jsonfile)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return out.Bytes(), errors.Wrap(errors.ErrCodeConverter, err,
			"convert %s: %s", input, strings.TrimSpace(out.String()))
	}
	return out.Bytes(), nil
}

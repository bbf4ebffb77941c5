package render

import (
	"slices"
	"testing"

	"github.com/goccy/go-graphviz"

	"github.com/dchassin/plot-glm/pkg/errors"
)

func TestEngine(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   graphviz.Layout
	}{
		{"Default", "", graphviz.NEATO},
		{"KamadaKawai", "kamada_kawai", graphviz.NEATO},
		{"Spring", "spring", graphviz.FDP},
		{"Spectral", "spectral", graphviz.SFDP},
		{"Circular", "circular", graphviz.CIRCO},
		{"Radial", "radial", graphviz.TWOPI},
		{"NativeName", "dot", graphviz.DOT},
		{"CaseInsensitive", "NEATO", graphviz.NEATO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Engine(tt.layout)
			if err != nil {
				t.Fatalf("Engine(%q): %v", tt.layout, err)
			}
			if got != tt.want {
				t.Errorf("Engine(%q) = %v, want %v", tt.layout, got, tt.want)
			}
		})
	}
}

func TestEngineUnknown(t *testing.T) {
	_, err := Engine("hilbert")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("code = %q, want INVALID_LAYOUT", errors.GetCode(err))
	}
}

func TestLayoutsSorted(t *testing.T) {
	names := Layouts()
	if !slices.IsSorted(names) {
		t.Errorf("Layouts() not sorted: %v", names)
	}
	if !slices.Contains(names, "kamada_kawai") {
		t.Error("kamada_kawai missing from layout list")
	}
}

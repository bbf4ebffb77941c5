package pipeline

import (
	"testing"

	"github.com/dchassin/plot-glm/pkg/errors"
	"github.com/dchassin/plot-glm/pkg/graph"
	"github.com/dchassin/plot-glm/pkg/render"
)

func TestOptionsSetDefaults(t *testing.T) {
	opts := Options{Input: "feeder.json"}
	opts.SetDefaults()

	if opts.Workdir != "." {
		t.Errorf("Workdir = %q", opts.Workdir)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatPNG {
		t.Errorf("Formats = %v, want [png]", opts.Formats)
	}
	if opts.PowerBase != graph.DefaultPowerBase {
		t.Errorf("PowerBase = %v", opts.PowerBase)
	}
	if opts.Layout != render.DefaultLayout {
		t.Errorf("Layout = %q", opts.Layout)
	}
	if opts.NodeSize != render.DefaultNodeSize {
		t.Errorf("NodeSize = %d", opts.NodeSize)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v", opts.Scale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		code   errors.Code
	}{
		{"Valid", func(o *Options) {}, ""},
		{"NoInput", func(o *Options) { o.Input = "" }, errors.ErrCodeInvalidInput},
		{"NegativeBase", func(o *Options) { o.PowerBase = -1 }, errors.ErrCodeInvalidInput},
		{"BadLayout", func(o *Options) { o.Layout = "mystery" }, errors.ErrCodeInvalidLayout},
		{"BadFormat", func(o *Options) { o.Formats = []string{"gif"} }, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Input: "feeder.json"}
			opts.SetDefaults()
			tt.mutate(&opts)

			err := opts.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), tt.code)
			}
		})
	}
}

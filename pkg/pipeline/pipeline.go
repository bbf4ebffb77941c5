// Package pipeline provides the core conversion pipeline for glmplot.
//
// The pipeline has three stages, composed sequentially:
//
//  1. Load: read the model, invoking the gridlabd converter for GLM sources
//  2. Build: construct the attributed network graph (pure, no I/O)
//  3. Render: lay the graph out and produce image artifacts
//
// The [Runner] executes the stages with caching so repeated renders of an
// unchanged model skip both the converter subprocess and the layout engine.
// The CLI and the validation harness both drive this package; centralizing
// the logic keeps their behavior identical.
package pipeline

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/dchassin/plot-glm/pkg/errors"
	"github.com/dchassin/plot-glm/pkg/graph"
	"github.com/dchassin/plot-glm/pkg/render"
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// Defaults shared by the CLI and the validation harness.
const (
	// DefaultFormat is the output format when none is requested.
	DefaultFormat = FormatPNG

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0
)

// validFormats is the set of supported output formats.
var validFormats = []string{FormatSVG, FormatPNG, FormatPDF}

// Options configures a pipeline run. The zero value plus an Input is a
// valid configuration after SetDefaults.
type Options struct {
	// Input is the model file: a GLM source or a JSON export.
	Input string

	// Workdir is the working directory for relative paths and converter
	// invocations. Defaults to ".".
	Workdir string

	// Converter overrides the gridlabd executable used for GLM conversion.
	Converter string

	// Formats lists the artifact formats to produce.
	Formats []string

	// PowerBase is the reference power for edge-width encoding.
	// Zero means graph.DefaultPowerBase.
	PowerBase float64

	// Layout selects the layout algorithm by name.
	Layout string

	// NodeSize is the node marker size in points.
	NodeSize int

	// NodeShape forces a uniform marker shape ("" or "auto" keeps the
	// phase-derived per-node shapes).
	NodeShape string

	// Title draws a caption above the graph when non-empty.
	Title string

	// Scale is the PNG resolution multiplier.
	Scale float64

	// Refresh bypasses cache reads (results are still written back).
	Refresh bool

	// Logger receives stage progress. Defaults to log.Default().
	Logger *log.Logger
}

// SetDefaults fills unset options with their defaults.
func (o *Options) SetDefaults() {
	if o.Workdir == "" {
		o.Workdir = "."
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.PowerBase == 0 {
		o.PowerBase = graph.DefaultPowerBase
	}
	if o.Layout == "" {
		o.Layout = render.DefaultLayout
	}
	if o.NodeSize == 0 {
		o.NodeSize = render.DefaultNodeSize
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Validate checks the options, returning a typed error for the first
// problem found.
func (o *Options) Validate() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no input file")
	}
	if o.PowerBase < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "power base must be positive, got %v", o.PowerBase)
	}
	if _, err := render.Engine(o.Layout); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if !slices.Contains(validFormats, f) {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format %q (must be one of: svg, png, pdf)", f)
		}
	}
	return nil
}

// renderOptions projects the graph-drawing subset of the options.
func (o *Options) renderOptions() render.Options {
	return render.Options{
		NodeSize:  o.NodeSize,
		NodeShape: o.NodeShape,
		Title:     o.Title,
	}
}

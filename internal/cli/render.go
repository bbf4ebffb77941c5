package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dchassin/plot-glm/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file path (or base path for multiple formats)
	base      float64 // power base for edge-width encoding
	layout    string  // layout algorithm name
	nodeSize  int     // node marker size in points
	nodeShape string  // uniform node shape override
	title     string  // image title
	workdir   string  // working directory
	converter string  // converter executable override
	scale     float64 // PNG resolution multiplier
	timeout   int     // activity timeout in seconds (0 = none)
	refresh   bool    // bypass cache reads
	noCache   bool    // disable caching entirely
}

// renderCommand creates the render command, the main operation of the tool.
//
// With no input argument the command offers an interactive picker over the
// model files in the working directory. When no output is given the output
// path is the input with its extension replaced by the format.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{workdir: "."}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a model as a network graph image",
		Long: `Render a GridLAB-D model (GLM source or JSON export) as a network
graph image. GLM inputs are converted to JSON with the gridlabd command
first. Edge width encodes power flow on a logarithmic scale relative to
the power base; node and edge colors encode the electrical phases.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			applyConfig(cmd, &opts, &formatsStr, cfg)

			input := ""
			if len(args) == 1 {
				input = args[0]
			} else {
				input, err = pickModelFile(opts.workdir)
				if err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), input, &opts, parseFormats(formatsStr))
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, pdf (comma-separated)")
	cmd.Flags().Float64VarP(&opts.base, "base", "B", 0, "power base for edge-width encoding (default 1kW)")
	cmd.Flags().StringVarP(&opts.layout, "layout", "L", "", "layout algorithm (default kamada_kawai)")
	cmd.Flags().IntVarP(&opts.nodeSize, "nodesize", "Z", 0, "node size in points (default 25)")
	cmd.Flags().StringVarP(&opts.nodeShape, "nodeshape", "N", "", "uniform node shape: o, ^, v, s (default: by phase)")
	cmd.Flags().StringVarP(&opts.title, "title", "T", "", "image title")
	cmd.Flags().StringVarP(&opts.workdir, "workdir", "W", opts.workdir, "working directory")
	cmd.Flags().StringVar(&opts.converter, "converter", "", "converter executable (default gridlabd)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG resolution multiplier (default 2)")
	cmd.Flags().IntVarP(&opts.timeout, "timeout", "t", 0, "activity timeout in seconds")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached conversion and render results")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// applyConfig seeds unset flags from the config file.
func applyConfig(cmd *cobra.Command, opts *renderOpts, formatsStr *string, cfg Config) {
	if !cmd.Flags().Changed("base") && cfg.Base != 0 {
		opts.base = cfg.Base
	}
	if !cmd.Flags().Changed("layout") && cfg.Layout != "" {
		opts.layout = cfg.Layout
	}
	if !cmd.Flags().Changed("nodesize") && cfg.NodeSize != 0 {
		opts.nodeSize = cfg.NodeSize
	}
	if !cmd.Flags().Changed("nodeshape") && cfg.NodeShape != "" {
		opts.nodeShape = cfg.NodeShape
	}
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		*formatsStr = cfg.Format
	}
	if !cmd.Flags().Changed("converter") && cfg.Converter != "" {
		opts.converter = cfg.Converter
	}
}

// pipelineOptions converts CLI flags into pipeline options.
func (o *renderOpts) pipelineOptions(input string, formats []string) pipeline.Options {
	return pipeline.Options{
		Input:     input,
		Workdir:   o.workdir,
		Converter: o.converter,
		Formats:   formats,
		PowerBase: o.base,
		Layout:    o.layout,
		NodeSize:  o.nodeSize,
		NodeShape: o.nodeShape,
		Title:     o.title,
		Scale:     o.scale,
		Refresh:   o.refresh,
	}
}

// runRender executes the pipeline and writes the requested artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts, formats []string) error {
	logger := loggerFromContext(ctx)

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(opts.timeout)*time.Second)
		defer cancel()
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	pr := newProgress(logger)
	result, err := runner.Execute(ctx, opts.pipelineOptions(input, formats))
	if err != nil {
		return err
	}
	pr.done(fmt.Sprintf("Rendered %s", input))

	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)

	for _, format := range formats {
		path := outputPath(opts.output, input, format, len(formats))
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// outputPath derives the artifact path for a format. A single-format run
// with an explicit output uses the output as-is; otherwise the format
// extension is appended to the base path (the output or the input with
// its extension stripped).
func outputPath(output, input, format string, formatCount int) string {
	if output != "" && formatCount == 1 {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else {
		ext := strings.TrimPrefix(filepath.Ext(base), ".")
		if ext == pipeline.FormatSVG || ext == pipeline.FormatPNG || ext == pipeline.FormatPDF {
			base = strings.TrimSuffix(base, "."+ext)
		}
	}
	return base + "." + format
}

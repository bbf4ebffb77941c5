package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dchassin/plot-glm/pkg/cache"
	"github.com/dchassin/plot-glm/pkg/graph"
	"github.com/dchassin/plot-glm/pkg/model"
	"github.com/dchassin/plot-glm/pkg/render"
)

// Runner executes the load → build → render pipeline with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results, so one Runner can serve many conversions.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// Result carries the outcome of a pipeline run.
type Result struct {
	// Graph is the built network graph.
	Graph *graph.Graph

	// Artifacts maps format name to rendered bytes.
	Artifacts map[string][]byte

	// ConverterOutput is the gridlabd output from GLM conversion, empty
	// when the input was already JSON or the conversion was cached.
	ConverterOutput []byte

	// ModelHash identifies the JSON model content.
	ModelHash string

	// Stats records per-stage timing and graph size.
	Stats Stats

	// CacheInfo reports which stages were served from cache.
	CacheInfo CacheInfo
}

// Stats records pipeline timing and graph size.
type Stats struct {
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
	NodeCount  int
	EdgeCount  int
}

// CacheInfo reports cache hits per stage.
type CacheInfo struct {
	ModelHit  bool
	RenderHit bool
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete load → build → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	loadStart := time.Now()
	doc, err := r.loadModel(ctx, opts, result)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded model",
		"input", opts.Input,
		"objects", doc.Len(),
		"cached", result.CacheInfo.ModelHit,
		"duration", result.Stats.LoadTime.Round(time.Millisecond))

	buildStart := time.Now()
	g, err := graph.Build(doc, graph.Config{PowerBase: opts.PowerBase})
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	r.Logger.Info("built graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.BuildTime.Round(time.Millisecond))

	renderStart := time.Now()
	if err := r.renderArtifacts(ctx, g, opts, result); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", result.CacheInfo.RenderHit,
		"duration", result.Stats.RenderTime.Round(time.Millisecond))

	return result, nil
}

// loadModel reads the model document, consulting the model cache before
// running the converter for non-JSON sources.
func (r *Runner) loadModel(ctx context.Context, opts Options, result *Result) (*model.Document, error) {
	loader := &model.Loader{Workdir: opts.Workdir, Converter: opts.Converter}

	src := opts.Input
	if !filepath.IsAbs(src) {
		src = filepath.Join(opts.Workdir, src)
	}

	if strings.EqualFold(filepath.Ext(src), ".json") {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, err
		}
		result.ModelHash = cache.Hash(data)
		return model.Decode(bytes.NewReader(data))
	}

	srcData, err := os.ReadFile(src)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ModelKey(cache.Hash(srcData))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			doc, err := model.Decode(bytes.NewReader(data))
			if err == nil {
				result.CacheInfo.ModelHit = true
				result.ModelHash = cache.Hash(data)
				return doc, nil
			}
			// Corrupt entry: fall through and reconvert
		}
	}

	jsonfile := strings.TrimSuffix(src, filepath.Ext(src)) + ".json"
	out, err := loader.Convert(ctx, src, jsonfile)
	result.ConverterOutput = out
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(jsonfile)
	if err != nil {
		return nil, err
	}
	_ = r.Cache.Set(ctx, key, data, cache.TTLModel)
	result.ModelHash = cache.Hash(data)

	return model.Decode(bytes.NewReader(data))
}

// renderArtifacts produces every requested format, serving from the
// artifact cache when possible. SVG is rendered at most once and reused
// for PNG and PDF conversion.
func (r *Runner) renderArtifacts(ctx context.Context, g *graph.Graph, opts Options, result *Result) error {
	artifacts := make(map[string][]byte, len(opts.Formats))

	missing := make([]string, 0, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(result.ModelHash, r.artifactOpts(opts, format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
			} else {
				missing = append(missing, format)
			}
		}
	} else {
		missing = opts.Formats
	}

	if len(missing) == 0 {
		result.Artifacts = artifacts
		result.CacheInfo.RenderHit = true
		return nil
	}

	dot := render.ToDOT(g, opts.renderOptions())
	svg, err := render.SVG(ctx, dot, opts.Layout)
	if err != nil {
		return err
	}

	for _, format := range missing {
		var data []byte
		switch format {
		case FormatSVG:
			data = svg
		case FormatPNG:
			data, err = render.ToPNG(svg, opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(svg)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data

		key := r.Keyer.ArtifactKey(result.ModelHash, r.artifactOpts(opts, format))
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
	}

	result.Artifacts = artifacts
	return nil
}

// artifactOpts builds the cache-key options for one format.
func (r *Runner) artifactOpts(opts Options, format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Layout:    opts.Layout,
		PowerBase: opts.PowerBase,
		NodeSize:  opts.NodeSize,
		NodeShape: opts.NodeShape,
		Title:     opts.Title,
		Scale:     opts.Scale,
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

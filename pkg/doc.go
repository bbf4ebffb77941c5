// Package pkg provides the core libraries for GridLAB-D network plotting.
//
// # Overview
//
// Glmplot turns a GridLAB-D power-distribution model into an annotated
// network graph image. The pkg directory is organized into five areas:
//
//  1. [model] - Model documents (JSON decoding, GLM conversion, power parsing)
//  2. [graph] - Graph structure and the phase/power visual encoding
//  3. [render] - DOT generation, graphviz layout, and format conversion
//  4. [cache] - Content-addressed caching of converted models and artifacts
//  5. [pipeline] - Orchestration (load, build, render)
//
// # Architecture
//
// The typical data flow:
//
//	GLM source or JSON export
//	         ↓
//	    [model] package (convert + decode the model document)
//	         ↓
//	    [graph] package (phase/power visual encoding)
//	         ↓
//	    [render] package (DOT + graphviz layout)
//	         ↓
//	    SVG/PNG/PDF output
//
// Each stage is cacheable: converted models are keyed by source-file hash
// and rendered artifacts by model hash plus render options.
//
// # Quick Start
//
// Load a model and render it to SVG:
//
//	import (
//	    "context"
//	    "github.com/dchassin/plot-glm/pkg/graph"
//	    "github.com/dchassin/plot-glm/pkg/model"
//	    "github.com/dchassin/plot-glm/pkg/render"
//	)
//
//	ctx := context.Background()
//	loader := &model.Loader{Workdir: "."}
//	doc, _, err := loader.Load(ctx, "network.glm")
//	if err != nil { ... }
//	g, err := graph.Build(doc, graph.Config{})
//	if err != nil { ... }
//	dot := render.ToDOT(g, render.Options{})
//	svg, err := render.SVG(ctx, dot, "kamada_kawai")
//
// Most callers should use the [pipeline] package instead, which wires
// these stages together with caching and logging.
package pkg

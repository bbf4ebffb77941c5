// Package graph builds an annotated network graph from a GridLAB-D model.
//
// This is the core of glmplot: the model-to-graph mapping and
// visual-encoding rules. Model records carrying "from"/"to" endpoints are
// links (lines, transformers); each contributes one undirected edge whose
// color encodes the link's phases and whose weight encodes power flow
// magnitude on a logarithmic scale. Endpoint records become nodes, keyed
// by their "id" property, with color, outline and shape derived from their
// own phase strings.
//
// # Visual Encoding
//
//   - [PhaseColor]: A/B/C drive the red/green/blue channels; a bus with
//     all three reports "black" rather than invisible white
//   - [PhaseShape]: S is round, D points up, everything else points down
//   - [PhaseEdgeColor]: black outline when a neutral is present
//   - [EdgeWeight]: log10(|P|/base + 10), so zero flow still draws a
//     width-1 line and each decade of power adds 1
//
// # Usage
//
//	doc, _, err := loader.Load(ctx, "feeder.glm")
//	if err != nil { ... }
//	g, err := graph.Build(doc, graph.Config{PowerBase: 1e3})
//	if err != nil { ... }
//
// Build is pure and deterministic: no I/O, no shared state, identical
// output for identical input. Rendering of the resulting graph is handled
// by pkg/render.
package graph

package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dchassin/plot-glm/pkg/graph"
)

// DefaultNodeSize is the node marker size in points.
const DefaultNodeSize = 25

// Options configures graph-to-DOT conversion.
type Options struct {
	// NodeSize is the marker size in points. Zero means DefaultNodeSize.
	NodeSize int

	// NodeShape forces a single marker shape for every node. When empty
	// or "auto", each node keeps the shape computed from its own phases.
	// Accepts Graphviz shape names and the plotting shorthand codes
	// "o" (circle), "^" (triangle), "v" (invtriangle), "s" (box).
	NodeShape string

	// Title draws a label above the graph when non-empty.
	Title string
}

// shapeNames maps the renderer-agnostic markers to Graphviz shapes.
var shapeNames = map[graph.Shape]string{
	graph.ShapeRound:        "circle",
	graph.ShapeTriangleUp:   "triangle",
	graph.ShapeTriangleDown: "invtriangle",
}

// shorthandShapes maps single-character plotting codes to Graphviz shapes.
var shorthandShapes = map[string]string{
	"o": "circle",
	"^": "triangle",
	"v": "invtriangle",
	"s": "box",
}

// ToDOT converts a network graph to Graphviz DOT for an undirected
// node-link drawing. Nodes are drawn as small unlabeled filled markers
// using their phase-derived fill, outline and shape attributes; edges use
// their phase color and their power-encoded weight as stroke width.
func ToDOT(g *graph.Graph, opts Options) string {
	size := opts.NodeSize
	if size == 0 {
		size = DefaultNodeSize
	}
	// Marker size in points to Graphviz inches.
	dim := float64(size) / 72

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  outputorder=\"edgesfirst\";\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", opts.Title)
		buf.WriteString("  labelloc=\"t\";\n")
		buf.WriteString("  fontsize=14;\n")
	}
	fmt.Fprintf(&buf,
		"  node [style=filled, label=\"\", fixedsize=true, width=%.3f, height=%.3f];\n",
		dim, dim)
	buf.WriteString("\n")

	uniform := uniformShape(opts.NodeShape)
	for _, n := range g.Nodes() {
		shape := uniform
		if shape == "" {
			shape = shapeNames[n.Shape]
		}
		fmt.Fprintf(&buf, "  %q [fillcolor=%q, color=%q, shape=%s];\n",
			n.ID, n.Color, n.EdgeColor, shape)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -- %q [color=%q, penwidth=%.3f];\n",
			e.From, e.To, e.Color, e.Weight)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// uniformShape resolves the NodeShape override to a Graphviz shape name,
// or "" when per-node shapes should be used.
func uniformShape(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "auto") {
		return ""
	}
	if mapped, ok := shorthandShapes[s]; ok {
		return mapped
	}
	return s
}

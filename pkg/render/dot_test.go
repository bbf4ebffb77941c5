package render

import (
	"strings"
	"testing"

	"github.com/dchassin/plot-glm/pkg/graph"
)

func buildTestGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, n := range []graph.Node{
		{ID: "1", Color: "black", EdgeColor: "white", Shape: graph.ShapeTriangleDown},
		{ID: "2", Color: "#ff0000", EdgeColor: "black", Shape: graph.ShapeRound},
		{ID: "3", Color: "#00ff00", EdgeColor: "black", Shape: graph.ShapeTriangleUp},
	} {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	for _, e := range []graph.Edge{
		{From: "1", To: "2", Name: "l1", Color: "#ff0000", Weight: 1.176},
		{From: "2", To: "3", Name: "l2", Color: "#00ffff", Weight: 2.5},
	} {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(buildTestGraph(t), Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Error("network graphs are undirected")
	}
	if strings.Contains(dot, "->") {
		t.Error("undirected DOT must not contain directed edges")
	}

	wantLines := []string{
		`"1" [fillcolor="black", color="white", shape=invtriangle];`,
		`"2" [fillcolor="#ff0000", color="black", shape=circle];`,
		`"3" [fillcolor="#00ff00", color="black", shape=triangle];`,
		`"1" -- "2" [color="#ff0000", penwidth=1.176];`,
		`"2" -- "3" [color="#00ffff", penwidth=2.500];`,
	}
	for _, want := range wantLines {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}

	if strings.Contains(dot, "label=\"") && !strings.Contains(dot, `label=""`) {
		t.Error("untitled graphs must not carry a label")
	}
}

func TestToDOTUniformShape(t *testing.T) {
	tests := []struct {
		name      string
		nodeShape string
		want      string
	}{
		{"ShorthandCircle", "o", "shape=circle"},
		{"ShorthandTriangle", "^", "shape=triangle"},
		{"ShorthandBox", "s", "shape=box"},
		{"GraphvizName", "diamond", "shape=diamond"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(buildTestGraph(t), Options{NodeShape: tt.nodeShape})
			// Every node line carries the same forced shape
			for _, id := range []string{`"1"`, `"2"`, `"3"`} {
				line := lineContaining(dot, id+" [")
				if !strings.Contains(line, tt.want) {
					t.Errorf("node %s line = %q, want %q", id, line, tt.want)
				}
			}
		})
	}
}

func TestToDOTAutoShapeKeepsPerNode(t *testing.T) {
	for _, mode := range []string{"", "auto", "AUTO"} {
		dot := ToDOT(buildTestGraph(t), Options{NodeShape: mode})
		if !strings.Contains(dot, "shape=circle") ||
			!strings.Contains(dot, "shape=triangle") ||
			!strings.Contains(dot, "shape=invtriangle") {
			t.Errorf("NodeShape=%q should keep per-node shapes\n%s", mode, dot)
		}
	}
}

func TestToDOTTitle(t *testing.T) {
	dot := ToDOT(buildTestGraph(t), Options{Title: "IEEE 13 feeder"})
	if !strings.Contains(dot, `label="IEEE 13 feeder";`) {
		t.Errorf("missing title label\n%s", dot)
	}
	if !strings.Contains(dot, `labelloc="t";`) {
		t.Error("title should sit above the graph")
	}
}

func TestToDOTNodeSize(t *testing.T) {
	dot := ToDOT(buildTestGraph(t), Options{NodeSize: 72})
	if !strings.Contains(dot, "width=1.000") {
		t.Errorf("a 72pt marker is one inch wide\n%s", dot)
	}

	dot = ToDOT(buildTestGraph(t), Options{})
	if !strings.Contains(dot, "width=0.347") {
		t.Errorf("default size should be %dpt\n%s", DefaultNodeSize, dot)
	}
}

func lineContaining(s, substr string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

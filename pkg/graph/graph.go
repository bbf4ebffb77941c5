package graph

import (
	"errors"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Shape is a renderer-agnostic node marker derived from a bus's phase string.
type Shape string

// Node shapes. S-marked (single-phase service) buses are round, delta buses
// point up, everything else points down.
const (
	ShapeRound        Shape = "round"
	ShapeTriangleUp   Shape = "triangle-up"
	ShapeTriangleDown Shape = "triangle-down"
)

// Node is a vertex in the network graph: one electrical bus. The ID is the
// bus object's "id" property, not its name. Visual attributes are derived
// from the bus's own phase string when the node is first created and are
// never overwritten by later links referencing the same bus.
type Node struct {
	ID        string // stable identifier from the model record
	Color     string // fill color from the bus's phases ("black" or "#rrggbb")
	EdgeColor string // outline color: "black" if the bus has a neutral, else "white"
	Shape     Shape  // marker from the bus's service/delta markers
}

// Edge is an undirected connection between two buses: one line or
// transformer. Width encodes power flow magnitude, color encodes the link's
// own phases.
type Edge struct {
	From   string  // source bus ID
	To     string  // destination bus ID
	Name   string  // originating link object name, kept for diagnostics
	Color  string  // from the link's own phases, not the endpoints'
	Weight float64 // log-encoded power magnitude, always > 0 for valid links
}

// Graph is an undirected weighted graph of the power network. Nodes keep
// insertion order so that identical inputs produce identical iteration
// order end to end.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	nodes map[string]*Node
	order []string
	edges []Edge
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode adds a node to the graph. Returns ErrInvalidNodeID for an empty
// ID or ErrDuplicateNodeID if the ID is already present.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

// AddEdge adds an undirected edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode if an endpoint is
// missing. Parallel edges are allowed (feeders can run parallel lines).
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	g.edges = append(g.edges, e)
	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all nodes in insertion order.
// The returned slice is freshly allocated; the nodes are shared.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

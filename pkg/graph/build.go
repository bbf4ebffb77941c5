package graph

import (
	"fmt"
	"math"

	"github.com/dchassin/plot-glm/pkg/errors"
	"github.com/dchassin/plot-glm/pkg/model"
)

// DefaultPowerBase is the reference power magnitude (1 kW) used to
// normalize edge widths when no base is configured.
const DefaultPowerBase = 1e3

// Config holds the settings that affect graph construction. It is passed
// explicitly so that Build stays a pure function of its inputs.
type Config struct {
	// PowerBase is the reference power magnitude for edge-width encoding.
	// A link carrying PowerBase watts gets a width just above 1; every
	// factor of 10 adds 1. Zero means DefaultPowerBase.
	PowerBase float64
}

// base returns the effective power base.
func (c Config) base() float64 {
	if c.PowerBase == 0 {
		return DefaultPowerBase
	}
	return c.PowerBase
}

// validate rejects non-positive explicit bases.
func (c Config) validate() error {
	if c.PowerBase < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "power base must be positive, got %v", c.PowerBase)
	}
	return nil
}

// EdgeWeight computes the width encoding for a power magnitude: the base-10
// logarithm of |power/base| + 10. The +10 offset anchors the scale so zero
// power still yields weight 1, and every decade of power relative to the
// base adds 1.
func EdgeWeight(power, base float64) float64 {
	return math.Log10(math.Abs(power/base) + 10)
}

// validateWeight enforces the positive-width invariant on a computed edge
// weight. The encoding makes a non-positive weight a degenerate-input
// signal (a modeling problem, not a parsing bug), so it is a hard stop
// naming the link and its raw power value.
func validateWeight(weight float64, name, raw string) error {
	if weight <= 0 {
		return errors.New(errors.ErrCodeNonPositiveWeight,
			"%s: weight <= 0; power = %s", name, raw)
	}
	return nil
}

// Build constructs the network graph from a parsed model.
//
// Every record carrying both "from" and "to" endpoints is a link and
// contributes exactly one edge; all other records contribute nothing
// directly and become nodes only when referenced as an endpoint. Endpoints
// are resolved by name and keyed by their "id" property; a node's visual
// attributes come from that endpoint's own phase string and are set exactly
// once.
//
// Build performs no I/O and is deterministic: the same document and config
// produce an identical graph, including node and edge order, because the
// document preserves declaration order.
//
// Errors abort the whole build; no partial graph is returned:
//   - an endpoint name absent from the model (UNKNOWN_OBJECT)
//   - a referenced record missing "id" or "phases", or a link missing
//     "power_out" (MISSING_FIELD)
//   - an unparseable power_out token (BAD_POWER_VALUE)
//   - a computed weight <= 0 (NON_POSITIVE_WEIGHT), naming the link and
//     its raw power_out value
func Build(doc *model.Document, cfg Config) (*Graph, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	g := New()

	for _, obj := range doc.Objects() {
		if !obj.IsLink() {
			continue
		}
		if err := addLink(g, doc, obj, cfg.base()); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// addLink resolves a link's endpoints, creates any nodes not yet present,
// and appends the weighted edge.
func addLink(g *Graph, doc *model.Document, link *model.Object, base float64) error {
	fromName, err := link.From()
	if err != nil {
		return err
	}
	toName, err := link.To()
	if err != nil {
		return err
	}

	fromID, err := ensureNode(g, doc, fromName)
	if err != nil {
		return fmt.Errorf("link %q: %w", link.Name, err)
	}
	toID, err := ensureNode(g, doc, toName)
	if err != nil {
		return fmt.Errorf("link %q: %w", link.Name, err)
	}

	raw, err := link.PowerOut()
	if err != nil {
		return err
	}
	power, err := model.ParsePower(raw)
	if err != nil {
		return fmt.Errorf("link %q: %w", link.Name, err)
	}

	weight := EdgeWeight(power, base)
	if err := validateWeight(weight, link.Name, raw); err != nil {
		return err
	}

	phases, err := link.Phases()
	if err != nil {
		return err
	}

	return g.AddEdge(Edge{
		From:   fromID,
		To:     toID,
		Name:   link.Name,
		Color:  PhaseColor(phases),
		Weight: weight,
	})
}

// ensureNode looks up the endpoint record by name and adds it as a node if
// it is not already present, deriving the visual attributes from the
// endpoint's own phase string. Returns the node key (the record's id).
func ensureNode(g *Graph, doc *model.Document, name string) (string, error) {
	obj, ok := doc.Object(name)
	if !ok {
		return "", errors.New(errors.ErrCodeUnknownObject, "endpoint %q is not in the model", name)
	}

	id, err := obj.ID()
	if err != nil {
		return "", err
	}
	if g.HasNode(id) {
		return id, nil
	}

	phases, err := obj.Phases()
	if err != nil {
		return "", err
	}

	if err := g.AddNode(Node{
		ID:        id,
		Color:     PhaseColor(phases),
		EdgeColor: PhaseEdgeColor(phases),
		Shape:     PhaseShape(phases),
	}); err != nil {
		return "", err
	}
	return id, nil
}

package render

import (
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/dchassin/plot-glm/pkg/errors"
)

// DefaultLayout is the layout used when none is configured. Kamada-Kawai
// is what neato runs under the hood, and it keeps feeder topology readable.
const DefaultLayout = "kamada_kawai"

// layoutEngines maps layout names to Graphviz engines. Force-directed
// names common in plotting tools are accepted as aliases alongside the
// native engine names.
var layoutEngines = map[string]graphviz.Layout{
	"kamada_kawai": graphviz.NEATO,
	"neato":        graphviz.NEATO,
	"spring":       graphviz.FDP,
	"force":        graphviz.FDP,
	"fdp":          graphviz.FDP,
	"sfdp":         graphviz.SFDP,
	"spectral":     graphviz.SFDP,
	"circular":     graphviz.CIRCO,
	"circo":        graphviz.CIRCO,
	"shell":        graphviz.CIRCO,
	"radial":       graphviz.TWOPI,
	"twopi":        graphviz.TWOPI,
	"layered":      graphviz.DOT,
	"dot":          graphviz.DOT,
}

// Engine resolves a layout name to its Graphviz engine.
// Unknown names produce an INVALID_LAYOUT error listing the valid choices.
func Engine(name string) (graphviz.Layout, error) {
	if name == "" {
		name = DefaultLayout
	}
	engine, ok := layoutEngines[strings.ToLower(name)]
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidLayout,
			"unknown layout %q (choose one of: %s)", name, strings.Join(Layouts(), ", "))
	}
	return engine, nil
}

// Layouts returns the accepted layout names, sorted.
func Layouts() []string {
	names := make([]string, 0, len(layoutEngines))
	for name := range layoutEngines {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

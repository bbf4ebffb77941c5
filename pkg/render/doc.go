// Package render draws network graphs as images.
//
// The renderer is a thin pass-through: it converts the attributed graph
// built by pkg/graph to Graphviz DOT ([ToDOT]), lays it out with a named
// force-directed or radial engine and renders SVG ([SVG]), and optionally
// converts the SVG to PNG or PDF via rsvg-convert ([ToPNG], [ToPDF]).
//
// Layout names accepted by [Engine] include the plotting aliases
// (kamada_kawai, spring, spectral, circular, radial) as well as the native
// Graphviz engine names (neato, fdp, sfdp, circo, twopi, dot).
package render

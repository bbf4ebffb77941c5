// Package model loads GridLAB-D power-distribution models.
//
// A model arrives either as a GLM source file or as the JSON export
// produced by the gridlabd converter. This package handles both: JSON
// exports decode directly into a [Document], while GLM sources are first
// converted by invoking gridlabd as a subprocess (see [Loader]).
//
// # Document Structure
//
// The JSON export has a top-level "objects" mapping from object name to a
// record of properties. Records representing links (lines, transformers)
// carry "from" and "to" endpoint names and a "power_out" complex quantity;
// every record carries an "id" and a "phases" string.
//
// Declaration order matters: graph construction iterates objects in the
// order they appear in the document, so [Decode] preserves it rather than
// using a Go map.
//
// # Complex Quantities
//
// GridLAB-D serializes complex values as "1234.5+67.8j VA". [ParsePower]
// extracts the real component of the leading token; [ParseComplex] is the
// underlying rectangular-form parser.
package model

package graph

import (
	"fmt"
	"strings"
)

// PhaseColor maps a phase string to a color. Phases A, B and C each drive
// one 8-bit channel (red, green, blue): 255 when the letter is present,
// 0 otherwise. A fully three-phase bus would come out white, which is
// invisible on a white canvas, so that case reports "black" instead.
//
//	PhaseColor("A")    = "#ff0000"
//	PhaseColor("BC")   = "#00ffff"
//	PhaseColor("ABCN") = "black"
//	PhaseColor("N")    = "#000000"
func PhaseColor(phases string) string {
	r, g, b := 0, 0, 0
	if strings.ContainsRune(phases, 'A') {
		r = 255
	}
	if strings.ContainsRune(phases, 'B') {
		g = 255
	}
	if strings.ContainsRune(phases, 'C') {
		b = 255
	}
	if r == 255 && g == 255 && b == 255 {
		return "black"
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// PhaseShape maps a phase string to a node marker. The S marker
// (single-phase service) takes precedence over D (delta); buses with
// neither get the common triangle-down marker.
func PhaseShape(phases string) Shape {
	switch {
	case strings.ContainsRune(phases, 'S'):
		return ShapeRound
	case strings.ContainsRune(phases, 'D'):
		return ShapeTriangleUp
	default:
		return ShapeTriangleDown
	}
}

// PhaseEdgeColor maps a phase string to a node outline color: black when
// the bus carries a neutral, white otherwise.
func PhaseEdgeColor(phases string) string {
	if strings.ContainsRune(phases, 'N') {
		return "black"
	}
	return "white"
}

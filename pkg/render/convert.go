package render

import (
	"bytes"
	"fmt"
	"os/exec"
)

// converterBin is the external SVG rasterizer. PNG and PDF output both go
// through it, so SVG stays the single rendered source of truth.
const converterBin = "rsvg-convert"

// ToPDF converts rendered SVG bytes to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts rendered SVG bytes to PNG at the given resolution
// multiplier. A scale of 2 doubles the pixel dimensions, which keeps edge
// widths legible on dense feeders.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// rsvgConvert pipes the SVG through the external converter.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath(converterBin); err != nil {
		return nil, fmt.Errorf("%s output needs %s on PATH (part of librsvg); request svg output instead, or install it", format, converterBin)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command(converterBin, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", converterBin, err, errBuf.String())
	}
	return out.Bytes(), nil
}

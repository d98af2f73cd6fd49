// Package export renders calculated boards to SVG, PNG, PDF and DXF, and
// prints QR-coded strip labels.
package export

import (
	"math"
	"strconv"

	"github.com/piwi3910/EndGrain/internal/engine"
)

// rgb is a parsed #RRGGBB colour.
type rgb struct {
	R, G, B int
}

// parseHexColor converts a #RRGGBB string. Anything else renders grey.
func parseHexColor(s string) rgb {
	if len(s) != 7 || s[0] != '#' {
		return rgb{R: 128, G: 128, B: 128}
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return rgb{R: 128, G: 128, B: 128}
	}
	return rgb{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}
}

// viewFit maps a view box onto a square target area of a page or image.
type viewFit struct {
	vp    engine.Viewport
	x, y  float64
	scale float64
}

func newViewFit(vp engine.Viewport, x, y, size float64) viewFit {
	scale := 1.0
	if vp.Width > 0 {
		scale = size / vp.Width
	}
	return viewFit{vp: vp, x: x, y: y, scale: scale}
}

func (f viewFit) point(p engine.Point2D) (float64, float64) {
	return f.x + (p.X-f.vp.X)*f.scale, f.y + (p.Y-f.vp.Y)*f.scale
}

// unitLabel returns the suffix used when printing lengths.
func unitLabel(units string) string {
	if units == "" {
		return "in"
	}
	return units
}

// formatLength prints a length rounded to thousandths without trailing zeros.
func formatLength(v float64, units string) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64) + " " + unitLabel(units)
}

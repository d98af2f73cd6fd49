package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Point2D represents a 2D coordinate in scaled drawing units.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = o[0]
	max = o[0]
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Transform returns a copy of the outline with every point mapped through t.
func (o Outline) Transform(t Transform) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = t.Apply(p)
	}
	return result
}

// Points formats the outline as an SVG points attribute ("x,y x,y ...").
func (o Outline) Points() string {
	parts := make([]string, len(o))
	for i, p := range o {
		parts[i] = formatFloat(p.X) + "," + formatFloat(p.Y)
	}
	return strings.Join(parts, " ")
}

// Polygon is one coloured shape of a scene.
type Polygon struct {
	Outline   Outline `json:"outline"`
	Color     string  `json:"color"`      // #RRGGBB
	WoodIndex int     `json:"wood_index"` // Palette entry the colour came from
	Layer     int     `json:"layer"`      // Zero-based layer that produced the shape
}

// Transformed returns a copy of the polygon mapped through t.
func (p Polygon) Transformed(t Transform) Polygon {
	p.Outline = p.Outline.Transform(t)
	return p
}

// Transform is a 2D affine matrix using the SVG convention:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity returns the transform that leaves every point unchanged.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// Translate returns a pure translation.
func Translate(tx, ty float64) Transform {
	return Transform{A: 1, D: 1, E: tx, F: ty}
}

// Rotate180About returns a half turn about (cx, cy). The coefficients are
// exact so a double application returns the original coordinates bit for bit.
func Rotate180About(cx, cy float64) Transform {
	return Transform{A: -1, D: -1, E: 2 * cx, F: 2 * cy}
}

// MirrorXAbout reflects x about the vertical line through (cx, cy); the
// equivalent of translate(cx,cy) scale(-1,1) translate(-cx,-cy).
func MirrorXAbout(cx, cy float64) Transform {
	return Transform{A: -1, D: 1, E: 2 * cx}
}

// Then returns the transform that applies n first and then t, i.e. the
// matrix product t·n.
func (t Transform) Then(n Transform) Transform {
	return Transform{
		A: t.A*n.A + t.C*n.B,
		B: t.B*n.A + t.D*n.B,
		C: t.A*n.C + t.C*n.D,
		D: t.B*n.C + t.D*n.D,
		E: t.A*n.E + t.C*n.F + t.E,
		F: t.B*n.E + t.D*n.F + t.F,
	}
}

// Apply maps a point through the transform.
func (t Transform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.C*p.Y + t.E,
		Y: t.B*p.X + t.D*p.Y + t.F,
	}
}

// String formats the transform as an SVG matrix().
func (t Transform) String() string {
	return fmt.Sprintf("matrix(%s %s %s %s %s %s)",
		formatFloat(t.A), formatFloat(t.B), formatFloat(t.C),
		formatFloat(t.D), formatFloat(t.E), formatFloat(t.F))
}

func formatFloat(v float64) string {
	if v == 0 {
		// avoid "-0" in output
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package export

import (
	"fmt"

	"github.com/piwi3910/EndGrain/internal/engine"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

const (
	dxfStripLayer = "STRIPS"
	dxfSliceLayer = "SLICE"
)

// ExportDXF writes the cross-section of one slice in board units, one closed
// loop of lines per strip plus the slice boundary, for printing a jig or
// cutting template. The y axis is flipped so the drawing reads like the
// on-screen view.
func ExportDXF(path string, plan engine.Plan) error {
	tmpl := plan.Template
	if len(tmpl.Polygons) == 0 {
		return fmt.Errorf("no layers to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(dxfSliceLayer, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	min, max := boundingBox(tmpl.Polygons)
	boundary := engine.Outline{
		{X: min.X, Y: min.Y},
		{X: min.X, Y: max.Y},
		{X: max.X, Y: max.Y},
		{X: max.X, Y: min.Y},
	}
	if err := drawLoop(d, boundary); err != nil {
		return err
	}

	if _, err := d.AddLayer(dxfStripLayer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer: %w", err)
	}
	for _, p := range tmpl.Polygons {
		if err := drawLoop(d, p.Outline); err != nil {
			return err
		}
	}

	return d.SaveAs(path)
}

func boundingBox(polys []engine.Polygon) (min, max engine.Point2D) {
	for i, p := range polys {
		pMin, pMax := p.Outline.BoundingBox()
		if i == 0 {
			min, max = pMin, pMax
			continue
		}
		if pMin.X < min.X {
			min.X = pMin.X
		}
		if pMin.Y < min.Y {
			min.Y = pMin.Y
		}
		if pMax.X > max.X {
			max.X = pMax.X
		}
		if pMax.Y > max.Y {
			max.Y = pMax.Y
		}
	}
	return min, max
}

// drawLoop adds the closed outline as line entities, converting drawing
// units back to board units.
func drawLoop(d *drawing.Drawing, o engine.Outline) error {
	for i := range o {
		a, b := o[i], o[(i+1)%len(o)]
		if a == b {
			continue
		}
		if _, err := d.Line(a.X/engine.Scale, -a.Y/engine.Scale, 0, b.X/engine.Scale, -b.Y/engine.Scale, 0); err != nil {
			return fmt.Errorf("failed to add line: %w", err)
		}
	}
	return nil
}

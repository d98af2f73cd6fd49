package export

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/piwi3910/EndGrain/internal/engine"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	pngPadding       = 20
	pngCaptionHeight = 30
	pngFontSize      = 14.0
	// DefaultPNGSize is the pixel size of each square view.
	DefaultPNGSize = 600
)

// RenderPNG rasterises both views side by side with a caption under each.
func RenderPNG(plan engine.Plan, size int) (*gg.Context, error) {
	if size <= 0 {
		size = DefaultPNGSize
	}
	width := 2*size + 3*pngPadding
	height := size + 2*pngPadding + pngCaptionHeight

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    pngFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	s := float64(size)
	views := []struct {
		caption string
		fit     viewFit
		polys   []engine.Polygon
	}{
		{
			caption: fmt.Sprintf("End grain: %d slices", plan.Measurements.SliceCount),
			fit:     newViewFit(plan.Scene.EndGrain.Viewport, pngPadding, pngPadding, s),
			polys:   plan.Scene.EndGrain.PlacedPolygons(),
		},
		{
			caption: "Edge grain",
			fit:     newViewFit(plan.Scene.EdgeGrain.Viewport, 2*pngPadding+s, pngPadding, s),
			polys:   plan.Scene.EdgeGrain.Strips,
		},
	}

	for _, v := range views {
		drawPolygonsPNG(dc, v.fit, v.polys, plan.Scene.ShowOutlines)
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(v.caption, v.fit.x+s/2, pngPadding+s+pngCaptionHeight/2, 0.5, 0.5)
	}
	return dc, nil
}

func drawPolygonsPNG(dc *gg.Context, fit viewFit, polys []engine.Polygon, outlines bool) {
	for _, p := range polys {
		if len(p.Outline) == 0 {
			continue
		}
		for i, pt := range p.Outline {
			x, y := fit.point(pt)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()

		c := parseHexColor(p.Color)
		dc.SetRGB255(c.R, c.G, c.B)
		if !outlines {
			dc.Fill()
			continue
		}
		dc.FillPreserve()
		dc.SetColor(color.Black)
		dc.SetLineWidth(1)
		dc.Stroke()
	}
}

// ExportPNG renders the plan and saves it as a PNG file.
func ExportPNG(path string, plan engine.Plan, size int) error {
	dc, err := RenderPNG(plan, size)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}

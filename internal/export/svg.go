package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/EndGrain/internal/engine"
)

const (
	svgNamespace = "http://www.w3.org/2000/svg"
	svgViewSize  = 500.0 // Pixel size of each square view
	svgViewGap   = 20.0
	outlineWidth = "0.5"
)

type svgPolygon struct {
	Points      string `xml:"points,attr"`
	Fill        string `xml:"fill,attr"`
	Stroke      string `xml:"stroke,attr,omitempty"`
	StrokeWidth string `xml:"stroke-width,attr,omitempty"`
}

type svgGroup struct {
	Class     string       `xml:"class,attr,omitempty"`
	Transform string       `xml:"transform,attr,omitempty"`
	Polygons  []svgPolygon `xml:"polygon"`
}

type svgView struct {
	XMLName  xml.Name     `xml:"svg"`
	Class    string       `xml:"class,attr"`
	X        float64      `xml:"x,attr"`
	Y        float64      `xml:"y,attr"`
	Width    float64      `xml:"width,attr"`
	Height   float64      `xml:"height,attr"`
	ViewBox  string       `xml:"viewBox,attr"`
	Groups   []svgGroup   `xml:"g"`
	Polygons []svgPolygon `xml:"polygon"`
}

type svgDocument struct {
	XMLName xml.Name  `xml:"svg"`
	Xmlns   string    `xml:"xmlns,attr"`
	Width   float64   `xml:"width,attr"`
	Height  float64   `xml:"height,attr"`
	Views   []svgView `xml:"svg"`
}

func viewBox(vp engine.Viewport) string {
	return fmt.Sprintf("%g %g %g %g", vp.X, vp.Y, vp.Width, vp.Height)
}

func toSVGPolygons(polys []engine.Polygon, outlines bool) []svgPolygon {
	out := make([]svgPolygon, len(polys))
	for i, p := range polys {
		out[i] = svgPolygon{Points: p.Outline.Points(), Fill: p.Color}
		if outlines {
			out[i].Stroke = "black"
			out[i].StrokeWidth = outlineWidth
		}
	}
	return out
}

// endGrainView draws the template once per slice, each slice a group
// carrying its placement matrix.
func endGrainView(scene engine.Scene) svgView {
	v := svgView{
		Class:   "end-grain",
		Width:   svgViewSize,
		Height:  svgViewSize,
		ViewBox: viewBox(scene.EndGrain.Viewport),
		Groups:  make([]svgGroup, 0, len(scene.EndGrain.Slices)),
	}
	template := toSVGPolygons(scene.EndGrain.Template, scene.ShowOutlines)
	for _, sp := range scene.EndGrain.Slices {
		v.Groups = append(v.Groups, svgGroup{
			Class:     fmt.Sprintf("slice-%d", sp.Index),
			Transform: sp.Transform.String(),
			Polygons:  template,
		})
	}
	return v
}

func edgeGrainView(scene engine.Scene) svgView {
	return svgView{
		Class:    "edge-grain",
		X:        svgViewSize + svgViewGap,
		Width:    svgViewSize,
		Height:   svgViewSize,
		ViewBox:  viewBox(scene.EdgeGrain.Viewport),
		Polygons: toSVGPolygons(scene.EdgeGrain.Strips, scene.ShowOutlines),
	}
}

// WriteSVG writes both views of the plan side by side as one SVG document.
func WriteSVG(w io.Writer, plan engine.Plan) error {
	doc := svgDocument{
		Xmlns:  svgNamespace,
		Width:  2*svgViewSize + svgViewGap,
		Height: svgViewSize,
		Views:  []svgView{endGrainView(plan.Scene), edgeGrainView(plan.Scene)},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode svg: %w", err)
	}
	return enc.Flush()
}

// ExportSVG writes the plan to an SVG file.
func ExportSVG(path string, plan engine.Plan) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSVG(f, plan); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

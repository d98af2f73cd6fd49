package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/EndGrain/internal/engine"
	"github.com/piwi3910/EndGrain/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	captionSpace = 12.0
	viewGap      = 10.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes a two page report: both schematics with the headline
// measurements, then the wood usage, purchase estimate and any warnings.
func ExportPDF(path string, d model.Design, plan engine.Plan, wastePercent float64) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderViewsPage(pdf, d, plan)

	pdf.AddPage()
	renderSummaryPage(pdf, d, plan, wastePercent)

	return pdf.OutputFileAndClose(path)
}

// renderViewsPage draws the end grain and edge grain views side by side.
func renderViewsPage(pdf *fpdf.Fpdf, d model.Design, plan engine.Plan) {
	title := d.Name
	if title == "" {
		title = "End Grain Board"
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	m := plan.Measurements
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Board: %s x %s | Slices: %d | Blank: %s | Leftover: %s",
		formatLength(m.BoardWidth, d.Units), formatLength(m.EndgrainBoardLength, d.Units),
		m.SliceCount, formatLength(m.EdgegrainBoardLength, d.Units), formatLength(m.LeftoverStock, d.Units))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - captionSpace
	size := math.Min((drawWidth-viewGap)/2, drawHeight)
	offsetX := marginLeft + (drawWidth-2*size-viewGap)/2

	endFit := newViewFit(plan.Scene.EndGrain.Viewport, offsetX, drawAreaTop, size)
	edgeFit := newViewFit(plan.Scene.EdgeGrain.Viewport, offsetX+size+viewGap, drawAreaTop, size)

	drawFrame(pdf, endFit, size)
	drawPolygonsPDF(pdf, endFit, plan.Scene.EndGrain.PlacedPolygons(), plan.Scene.ShowOutlines)
	drawCaption(pdf, endFit, size, "End grain")

	drawFrame(pdf, edgeFit, size)
	drawPolygonsPDF(pdf, edgeFit, plan.Scene.EdgeGrain.Strips, plan.Scene.ShowOutlines)
	drawCaption(pdf, edgeFit, size, "Edge grain")
}

func drawFrame(pdf *fpdf.Fpdf, fit viewFit, size float64) {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.2)
	pdf.Rect(fit.x, fit.y, size, size, "D")
}

func drawCaption(pdf *fpdf.Fpdf, fit viewFit, size float64, caption string) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(80, 80, 80)
	w := pdf.GetStringWidth(caption)
	pdf.SetXY(fit.x+(size-w)/2, fit.y+size+2)
	pdf.CellFormat(w, 4, caption, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func drawPolygonsPDF(pdf *fpdf.Fpdf, fit viewFit, polys []engine.Polygon, outlines bool) {
	style := "F"
	if outlines {
		style = "FD"
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(math.Max(0.05, 0.5*fit.scale))
	}
	for _, p := range polys {
		if len(p.Outline) == 0 {
			continue
		}
		points := make([]fpdf.PointType, len(p.Outline))
		for i, pt := range p.Outline {
			x, y := fit.point(pt)
			points[i] = fpdf.PointType{X: x, Y: y}
		}
		c := parseHexColor(p.Color)
		pdf.SetFillColor(c.R, c.G, c.B)
		pdf.Polygon(points, style)
	}
}

// renderSummaryPage lists the measurements, per-wood usage and purchase
// estimate, followed by the cut warnings.
func renderSummaryPage(pdf *fpdf.Fpdf, d model.Design, plan engine.Plan, wastePercent float64) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cut Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	m := plan.Measurements
	s := d.Settings

	y = drawKeyValues(pdf, y, "Measurements", []keyValue{
		{"End grain board width", formatLength(m.BoardWidth, d.Units)},
		{"End grain board length", formatLength(m.EndgrainBoardLength, d.Units)},
		{"Edge grain blank length", formatLength(m.EdgegrainBoardLength, d.Units)},
		{"Slices", fmt.Sprintf("%d", m.SliceCount)},
		{"Leftover stock", formatLength(m.LeftoverStock, d.Units)},
	})
	y += 4

	y = drawKeyValues(pdf, y, "Settings", []keyValue{
		{"Blank thickness", formatLength(s.SourceThickness, d.Units)},
		{"Slice thickness", formatLength(s.EndgrainThickness, d.Units)},
		{"Kerf", formatLength(s.Kerf, d.Units)},
		{"Flip every other", yesNo(s.FlipEveryOther)},
		{"Rotate every other", yesNo(s.RotateEveryOther)},
	})
	y += 4

	y = drawUsageTable(pdf, y, d, plan, wastePercent)

	if len(plan.Warnings) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Bad cuts", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, w := range plan.Warnings {
			if y > pageHeight-marginBottom-8 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(pageWidth-marginLeft-marginRight-5, 5, "- "+w.Message, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by EndGrain - End Grain Cutting Board Designer", "", 0, "C", false, 0, "")
}

type keyValue struct {
	label string
	value string
}

func drawKeyValues(pdf *fpdf.Fpdf, y float64, heading string, items []keyValue) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, heading, "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(55, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}
	return y
}

// drawUsageTable renders one row per wood with a colour swatch.
func drawUsageTable(pdf *fpdf.Fpdf, y float64, d model.Design, plan engine.Plan, wastePercent float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Wood Usage", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{10, 50, 35, 35, 40, 40}
	headers := []string{"", "Wood", "Used", "Wasted", "Board feet", "To buy (+" + fmt.Sprintf("%g%%", wastePercent) + ")"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	usage := plan.Measurements.WoodUsage
	estimate := model.EstimateStock(usage, d.Settings, d.Units, wastePercent)
	colors := woodColors(plan)

	pdf.SetFont("Helvetica", "", 9)
	for i, u := range usage {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		row := []string{
			"",
			u.Name,
			formatLength(u.Used, d.Units),
			formatLength(u.Wasted, d.Units),
			fmt.Sprintf("%.2f", estimate.Woods[i].BoardFeet),
			fmt.Sprintf("%.2f", estimate.Woods[i].BoardFeetBuy),
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}

		if i < len(colors) {
			c := parseHexColor(colors[i])
			pdf.SetFillColor(c.R, c.G, c.B)
			pdf.Rect(marginLeft+3, y+1.5, 4, 3, "F")
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(marginLeft+colWidths[0], y)
	pdf.CellFormat(colWidths[1]+colWidths[2]+colWidths[3], 6, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[4], 6, fmt.Sprintf("%.2f", estimate.TotalBoardFeet), "1", 0, "C", false, 0, "")
	pdf.CellFormat(colWidths[5], 6, fmt.Sprintf("%.2f", estimate.TotalToBuy), "1", 0, "C", false, 0, "")
	return y + 6
}

// woodColors returns the swatch colour of each usage row, in usage order.
func woodColors(plan engine.Plan) []string {
	var colors []string
	for _, u := range plan.Template.Usage {
		for _, p := range plan.Template.Polygons {
			if p.WoodIndex == u.WoodIndex {
				colors = append(colors, p.Color)
				break
			}
		}
	}
	return colors
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

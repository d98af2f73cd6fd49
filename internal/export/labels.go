package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/EndGrain/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each strip label's QR code.
type LabelInfo struct {
	Layer         int     `json:"layer"` // 1-based position in the glue-up
	Wood          string  `json:"wood"`
	Width         float64 `json:"width"`
	TrailingAngle float64 `json:"trailing_angle"`
	Offset        float64 `json:"offset"` // Distance from the first strip's edge
	Length        float64 `json:"length"`
	Units         string  `json:"units"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectLabelInfos returns one label per layer strip, in glue-up order.
// Layers pointing outside the palette are labelled "?".
func CollectLabelInfos(d model.Design) []LabelInfo {
	labels := make([]LabelInfo, 0, len(d.Layers))
	offset := 0.0
	for i, l := range d.Layers {
		wood := "?"
		if l.WoodIndex >= 0 && l.WoodIndex < len(d.Woods) {
			wood = d.Woods[l.WoodIndex].Name
		}
		labels = append(labels, LabelInfo{
			Layer:         i + 1,
			Wood:          wood,
			Width:         l.Width,
			TrailingAngle: l.TrailingAngle,
			Offset:        offset,
			Length:        d.Settings.SourceLength,
			Units:         unitLabel(d.Units),
		})
		offset += l.Width
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded labels, one per layer strip, on a
// standard label sheet (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, d model.Design) error {
	labels := CollectLabelInfos(d)
	if len(labels) == 0 {
		return fmt.Errorf("no layers to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for layer %d: %w", label.Layer, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_layer_%d", info.Layer)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	title := fmt.Sprintf("Layer %d: %s", info.Layer, info.Wood)
	if pdf.GetStringWidth(title) > textW {
		for len(title) > 0 && pdf.GetStringWidth(title+"...") > textW {
			title = title[:len(title)-1]
		}
		title += "..."
	}
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, formatLength(info.Width, info.Units)+" wide", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, "Offset "+formatLength(info.Offset, info.Units), "", 1, "L", false, 0, "")

	if info.TrailingAngle != 0 {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, fmt.Sprintf("Trailing edge %g\xb0", info.TrailingAngle), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

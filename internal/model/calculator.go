package model

// Board-foot volumes. 1 board foot = 12" x 12" x 1" = 144 cubic inches
// = 144 * 16387.064 cubic mm.
const (
	cubicInchesPerBoardFoot = 144.0
	cubicMMPerBoardFoot     = 2359737.216
)

// WoodStock is the stock needed for one wood of a design.
type WoodStock struct {
	Name         string  `json:"name"`
	StripWidth   float64 `json:"strip_width"`    // Total strip width consumed, board units
	Volume       float64 `json:"volume"`         // Cubic board units
	BoardFeet    float64 `json:"board_feet"`     // Exact board feet
	BoardFeetBuy float64 `json:"board_feet_buy"` // Board feet including the waste factor
	WastePercent float64 `json:"waste_percent"`  // Waste factor applied (e.g. 15 for 15%)
}

// StockEstimate holds the purchasing summary for a whole design.
type StockEstimate struct {
	Woods          []WoodStock `json:"woods"`
	TotalBoardFeet float64     `json:"total_board_feet"`
	TotalToBuy     float64     `json:"total_to_buy"`
}

// UsageEntry is the per-wood slice of a calculation's usage report.
type UsageEntry struct {
	Name   string  `json:"name"`
	Used   float64 `json:"used"`
	Wasted float64 `json:"wasted"`
}

// EstimateStock converts per-wood usage into board feet to purchase. Each
// used width is a strip running the full blank length at blank thickness.
func EstimateStock(usage []UsageEntry, s Settings, units string, wastePercent float64) StockEstimate {
	perBoardFoot := cubicInchesPerBoardFoot
	if units == UnitsMillimeters {
		perBoardFoot = cubicMMPerBoardFoot
	}
	wasteFactor := 1.0 + wastePercent/100.0

	est := StockEstimate{Woods: make([]WoodStock, 0, len(usage))}
	for _, u := range usage {
		volume := u.Used * s.SourceThickness * s.SourceLength
		bf := volume / perBoardFoot
		ws := WoodStock{
			Name:         u.Name,
			StripWidth:   u.Used,
			Volume:       volume,
			BoardFeet:    bf,
			BoardFeetBuy: bf * wasteFactor,
			WastePercent: wastePercent,
		}
		est.Woods = append(est.Woods, ws)
		est.TotalBoardFeet += ws.BoardFeet
		est.TotalToBuy += ws.BoardFeetBuy
	}
	return est
}

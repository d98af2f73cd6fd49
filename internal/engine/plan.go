package engine

import (
	"math"

	"github.com/piwi3910/EndGrain/internal/model"
)

// EndGrainView is the end-grain schematic: one template repeated per slice.
type EndGrainView struct {
	Viewport Viewport         `json:"viewport"`
	Template []Polygon        `json:"template"`
	Slices   []SlicePlacement `json:"slices"`
}

// PlacedPolygons returns every polygon of every slice with its placement applied.
func (v EndGrainView) PlacedPolygons() []Polygon {
	out := make([]Polygon, 0, len(v.Template)*len(v.Slices))
	for _, sp := range v.Slices {
		for _, p := range v.Template {
			out = append(out, p.Transformed(sp.Transform))
		}
	}
	return out
}

// EdgeGrainView is the long-side schematic.
type EdgeGrainView struct {
	Viewport Viewport  `json:"viewport"`
	Strips   []Polygon `json:"strips"`
}

// Scene is everything a renderer needs to draw both views.
type Scene struct {
	ShowOutlines bool          `json:"show_outlines"`
	EndGrain     EndGrainView  `json:"end_grain"`
	EdgeGrain    EdgeGrainView `json:"edge_grain"`
}

// Measurements are reported in board units; Scale never leaks into them.
type Measurements struct {
	BoardWidth           float64            `json:"board_width"`
	EndgrainBoardLength  float64            `json:"endgrain_board_length"`
	EdgegrainBoardLength float64            `json:"edgegrain_board_length"`
	SliceCount           int                `json:"slice_count"`
	LeftoverStock        float64            `json:"leftover_stock"`
	WoodUsage            []model.UsageEntry `json:"wood_usage"`
}

// TotalUsed sums the material consumed across all woods.
func (m Measurements) TotalUsed() float64 {
	var total float64
	for _, u := range m.WoodUsage {
		total += u.Used
	}
	return total
}

// TotalWasted sums the kerf and trim loss across all woods.
func (m Measurements) TotalWasted() float64 {
	var total float64
	for _, u := range m.WoodUsage {
		total += u.Wasted
	}
	return total
}

// Plan is the full result of one calculation.
type Plan struct {
	Dimensions   BoardDimensions           `json:"dimensions"`
	Template     LayerTemplate             `json:"template"`
	EdgeGrain    EdgeGrainStrip            `json:"edge_grain"`
	Scene        Scene                     `json:"scene"`
	Measurements Measurements              `json:"measurements"`
	Warnings     []model.ValidationWarning `json:"warnings"`
}

// Calculate validates the inputs and computes the geometry and usage of a
// board. A DataError aborts the call with no partial plan; angle problems come
// back as warnings on an otherwise complete plan.
func Calculate(s model.Settings, layers []model.Layer, woods []model.WoodInfo) (Plan, error) {
	if err := model.Validate(s, layers, woods); err != nil {
		return Plan{}, err
	}

	dims, err := ComputeBoardDimensions(s)
	if err != nil {
		return Plan{}, err
	}
	tmpl, warnings, err := BuildLayerTemplate(layers, s, woods)
	if err != nil {
		return Plan{}, err
	}
	strip, err := BuildEdgeGrainStrip(layers, s, woods)
	if err != nil {
		return Plan{}, err
	}
	slices := ReplicateSlices(tmpl, dims, s)
	view := ComputeViewport(tmpl, dims, strip)

	return Plan{
		Dimensions: dims,
		Template:   tmpl,
		EdgeGrain:  strip,
		Scene: Scene{
			ShowOutlines: s.ShowOutlines,
			EndGrain: EndGrainView{
				Viewport: view.EndGrain,
				Template: tmpl.Polygons,
				Slices:   slices,
			},
			EdgeGrain: EdgeGrainView{
				Viewport: view.EdgeGrain,
				Strips:   strip.Polygons,
			},
		},
		Measurements: measure(tmpl, dims, woods),
		Warnings:     warnings,
	}, nil
}

func measure(t LayerTemplate, dims BoardDimensions, woods []model.WoodInfo) Measurements {
	usage := make([]model.UsageEntry, 0, len(t.Usage))
	for _, u := range t.Usage {
		usage = append(usage, model.UsageEntry{
			Name:   woods[u.WoodIndex].Name,
			Used:   u.Used,
			Wasted: u.Wasted,
		})
	}
	return Measurements{
		BoardWidth:           math.Max(t.FinalLeftY, t.FinalRightY) / Scale,
		EndgrainBoardLength:  t.RightX * float64(dims.EndgrainLayers) / Scale,
		EdgegrainBoardLength: dims.ScaledEdgeGrainLength / Scale,
		SliceCount:           dims.EndgrainLayers,
		LeftoverStock:        dims.EndgrainLeftover,
		WoodUsage:            usage,
	}
}

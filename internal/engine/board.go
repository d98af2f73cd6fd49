package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/EndGrain/internal/model"
)

// Scale converts board units to drawing units. It only affects polygon
// coordinates; every reported measurement is divided back out.
const Scale = 20.0

// leftoverTolerance absorbs floating point noise in the packing arithmetic.
const leftoverTolerance = 1e-9

// BoardDimensions describes how the blank is crosscut into endgrain slices.
type BoardDimensions struct {
	EndgrainLayers        int     `json:"endgrain_layers"`          // Number of slices
	EndgrainLength        float64 `json:"endgrain_length"`          // Slices laid side by side, board units
	EndgrainLeftover      float64 `json:"endgrain_leftover"`        // Stock left after the last cut
	ScaledEdgeGrainLength float64 `json:"scaled_edge_grain_length"` // Blank length in drawing units
}

// UsageTotals accumulates the material for one wood.
type UsageTotals struct {
	WoodIndex int     `json:"wood_index"`
	Used      float64 `json:"used"`
	Wasted    float64 `json:"wasted"`
}

// WoodUsage keeps per-wood totals in the order the woods first appear in
// the layer sequence.
type WoodUsage []UsageTotals

func (u *WoodUsage) add(woodIndex int, used, wasted float64) {
	for i := range *u {
		if (*u)[i].WoodIndex == woodIndex {
			(*u)[i].Used += used
			(*u)[i].Wasted += wasted
			return
		}
	}
	*u = append(*u, UsageTotals{WoodIndex: woodIndex, Used: used, Wasted: wasted})
}

// Get returns the totals for one wood.
func (u WoodUsage) Get(woodIndex int) (UsageTotals, bool) {
	for _, t := range u {
		if t.WoodIndex == woodIndex {
			return t, true
		}
	}
	return UsageTotals{}, false
}

// LayerTemplate is the cross-section of one endgrain slice.
type LayerTemplate struct {
	Polygons    []Polygon `json:"polygons"`
	FinalLeftY  float64   `json:"final_left_y"`
	FinalRightY float64   `json:"final_right_y"`
	RightX      float64   `json:"right_x"`
	Usage       WoodUsage `json:"usage"`
}

// Center is the pivot used when rotating or mirroring alternate slices.
func (t LayerTemplate) Center() Point2D {
	return Point2D{X: t.RightX / 2, Y: t.FinalLeftY / 2}
}

// SlicePlacement positions one copy of the template in the endgrain board.
type SlicePlacement struct {
	Index     int       `json:"index"`
	Transform Transform `json:"transform"`
	Rotated   bool      `json:"rotated"`
	Mirrored  bool      `json:"mirrored"`
}

// Polygons returns the template polygons as placed by this slice.
func (sp SlicePlacement) Polygons(t LayerTemplate) []Polygon {
	out := make([]Polygon, len(t.Polygons))
	for i, p := range t.Polygons {
		out[i] = p.Transformed(sp.Transform)
	}
	return out
}

// EdgeGrainStrip is the long view of the glued-up blank.
type EdgeGrainStrip struct {
	Polygons   []Polygon `json:"polygons"`
	FinalWidth float64   `json:"final_width"` // Scaled
	Length     float64   `json:"length"`      // Scaled
}

// Viewport is an SVG-style view box.
type Viewport struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Viewports holds the shared-size view boxes for both schematics.
type Viewports struct {
	EndGrain  Viewport `json:"end_grain"`
	EdgeGrain Viewport `json:"edge_grain"`
}

// ComputeBoardDimensions packs as many slices as fit into the blank length,
// charging one kerf per cut between slices.
func ComputeBoardDimensions(s model.Settings) (BoardDimensions, error) {
	if err := model.ValidateSettings(s); err != nil {
		return BoardDimensions{}, err
	}

	t, k, l := s.EndgrainThickness, s.Kerf, s.SourceLength
	n := int(math.Floor(l / (t + k)))
	if t*float64(n+1)+float64(n)*k <= l {
		n++
	}

	// With no slice (l < t) this reports l + k, one kerf more than the stock.
	leftover := l - (float64(n)*t + float64(n-1)*k)
	if leftover < 0 {
		if leftover < -leftoverTolerance {
			return BoardDimensions{}, fmt.Errorf("%w: leftover %g after %d slices", model.ErrInvariant, leftover, n)
		}
		leftover = 0
	}

	return BoardDimensions{
		EndgrainLayers:        n,
		EndgrainLength:        float64(n) * s.SourceThickness,
		EndgrainLeftover:      leftover,
		ScaledEdgeGrainLength: l * Scale,
	}, nil
}

func woodFor(layers []model.Layer, i int, woods []model.WoodInfo) (model.WoodInfo, error) {
	idx := layers[i].WoodIndex
	if idx < 0 || idx >= len(woods) {
		return model.WoodInfo{}, &model.DataError{
			Field:  "layer.wood_index",
			Index:  i,
			Reason: fmt.Sprintf("wood %d is not in a palette of %d", idx, len(woods)),
		}
	}
	return woods[idx], nil
}

// BuildLayerTemplate walks the layers once and produces the cross-section of
// a single slice. A trailing angle that would cut back through the previous
// layer is reported as a warning and the degenerate geometry is kept.
func BuildLayerTemplate(layers []model.Layer, s model.Settings, woods []model.WoodInfo) (LayerTemplate, []model.ValidationWarning, error) {
	thickness := s.SourceThickness
	rightX := thickness * Scale

	tmpl := LayerTemplate{
		Polygons: make([]Polygon, 0, len(layers)),
		RightX:   rightX,
	}
	var warnings []model.ValidationWarning

	leftY, rightY := 0.0, 0.0
	for i, layer := range layers {
		wood, err := woodFor(layers, i, woods)
		if err != nil {
			return LayerTemplate{}, nil, err
		}

		newLeftY := leftY + layer.Width*Scale
		newRightY := leftY + (layer.Width+thickness*math.Tan(layer.TrailingAngle*math.Pi/180))*Scale

		if newRightY < rightY {
			warnings = append(warnings, model.ValidationWarning{
				Layer: i + 1,
				Message: fmt.Sprintf("The trailing angle of layer %d is too low, or the trailing angle of layer %d is too high. This causes a bad cut.",
					i+1, i),
			})
		}

		tmpl.Polygons = append(tmpl.Polygons, Polygon{
			Outline: Outline{
				{X: 0, Y: leftY},
				{X: 0, Y: newLeftY},
				{X: rightX, Y: newRightY},
				{X: rightX, Y: rightY},
			},
			Color:     wood.Color,
			WoodIndex: layer.WoodIndex,
			Layer:     i,
		})

		used := s.Kerf + (math.Max(newLeftY, newRightY)-math.Min(leftY, rightY))/Scale
		wasted := s.Kerf + (math.Abs(newLeftY-newRightY)+math.Abs(leftY-rightY))/Scale
		tmpl.Usage.add(layer.WoodIndex, used, wasted)

		leftY, rightY = newLeftY, newRightY
	}

	tmpl.FinalLeftY = leftY
	tmpl.FinalRightY = rightY
	return tmpl, warnings, nil
}

// ReplicateSlices lays out one copy of the template per slice. Odd slices are
// optionally rotated half a turn and/or mirrored about the template centre.
func ReplicateSlices(t LayerTemplate, dims BoardDimensions, s model.Settings) []SlicePlacement {
	center := t.Center()
	placements := make([]SlicePlacement, 0, dims.EndgrainLayers)

	for i := 0; i < dims.EndgrainLayers; i++ {
		sp := SlicePlacement{
			Index:     i,
			Transform: Translate(float64(i)*s.SourceThickness*Scale, 0),
		}
		if i%2 == 1 && s.RotateEveryOther {
			sp.Transform = sp.Transform.Then(Rotate180About(center.X, center.Y))
			sp.Rotated = true
		}
		if i%2 == 1 && s.FlipEveryOther {
			sp.Transform = sp.Transform.Then(MirrorXAbout(center.X, center.Y))
			sp.Mirrored = true
		}
		placements = append(placements, sp)
	}
	return placements
}

// BuildEdgeGrainStrip stacks the layers as full-length rectangles.
func BuildEdgeGrainStrip(layers []model.Layer, s model.Settings, woods []model.WoodInfo) (EdgeGrainStrip, error) {
	length := s.SourceLength * Scale
	strip := EdgeGrainStrip{
		Polygons: make([]Polygon, 0, len(layers)),
		Length:   length,
	}

	y := 0.0
	for i, layer := range layers {
		wood, err := woodFor(layers, i, woods)
		if err != nil {
			return EdgeGrainStrip{}, err
		}
		newY := y + layer.Width*Scale
		strip.Polygons = append(strip.Polygons, Polygon{
			Outline: Outline{
				{X: 0, Y: y},
				{X: 0, Y: newY},
				{X: length, Y: newY},
				{X: length, Y: y},
			},
			Color:     wood.Color,
			WoodIndex: layer.WoodIndex,
			Layer:     i,
		})
		y = newY
	}

	strip.FinalWidth = y
	return strip, nil
}

// ComputeViewport sizes both views into the same square so the schematics
// share a scale, centring each view inside it.
func ComputeViewport(t LayerTemplate, dims BoardDimensions, strip EdgeGrainStrip) Viewports {
	endWidth := math.Max(t.FinalLeftY, t.FinalRightY)
	endLength := t.RightX * float64(dims.EndgrainLayers)
	edgeLength := dims.ScaledEdgeGrainLength
	edgeWidth := strip.FinalWidth

	side := math.Max(math.Max(endLength, edgeLength), math.Max(endWidth, edgeWidth))

	return Viewports{
		EndGrain: Viewport{
			X:      (endLength - side) / 2,
			Y:      (endWidth - side) / 2,
			Width:  side,
			Height: side,
		},
		EdgeGrain: Viewport{
			X:      (edgeLength - side) / 2,
			Y:      (edgeWidth - side) / 2,
			Width:  side,
			Height: side,
		},
	}
}

package model

import (
	"strings"

	"github.com/google/uuid"
)

// DesignVersion is written into every saved design. Only the major part is
// compared when a design is loaded back.
const DesignVersion = "3.0.0"

// Supported length units. Units only change labels and board-feet math; the
// calculator itself is unit agnostic.
const (
	UnitsInches      = "in"
	UnitsMillimeters = "mm"
)

// Angle bounds for a layer's trailing cut, in degrees.
const (
	MinTrailingAngle = -89.0
	MaxTrailingAngle = 89.0
)

// WoodInfo is one entry of the wood palette. Layers refer to woods by their
// position in the palette, so the palette is never sparse.
type WoodInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"` // #RRGGBB
}

func NewWood(name, color string) WoodInfo {
	return WoodInfo{
		ID:    uuid.New().String()[:8],
		Name:  name,
		Color: strings.ToUpper(color),
	}
}

// Layer is one glued-up strip of the edge-grain blank.
type Layer struct {
	WoodIndex     int     `json:"wood_index"`     // Index into the wood palette
	Width         float64 `json:"width"`          // Strip width, board units
	TrailingAngle float64 `json:"trailing_angle"` // Degrees, [-89, 89]
}

// Settings holds the stock and slicing configuration.
type Settings struct {
	SourceLength      float64 `json:"source_length"`      // Length of the glued-up blank
	SourceThickness   float64 `json:"source_thickness"`   // Thickness of the glued-up blank
	EndgrainThickness float64 `json:"endgrain_thickness"` // Thickness of each crosscut slice
	Kerf              float64 `json:"kerf"`               // Blade width lost per cut

	ShowOutlines     bool `json:"show_outlines"`
	FlipEveryOther   bool `json:"flip_every_other"`
	RotateEveryOther bool `json:"rotate_every_other"`
}

func DefaultSettings() Settings {
	return Settings{
		SourceLength:      24,
		SourceThickness:   1.75,
		EndgrainThickness: 1.5,
		Kerf:              0.125,
		ShowOutlines:      true,
		FlipEveryOther:    false,
		RotateEveryOther:  false,
	}
}

// Design ties everything together for save/load.
type Design struct {
	Name     string     `json:"name"`
	Version  string     `json:"version"`
	Units    string     `json:"units"`
	Settings Settings   `json:"settings"`
	Woods    []WoodInfo `json:"woods"`
	Layers   []Layer    `json:"layers"`
}

// DefaultWoods returns the stock palette offered to every new design.
func DefaultWoods() []WoodInfo {
	return []WoodInfo{
		NewWood("Cherry", "#6F0011"),
		NewWood("Ebony", "#292117"),
		NewWood("Jatoba", "#B56816"),
		NewWood("Maple", "#FDE96D"),
		NewWood("Purpleheart", "#AF0B7B"),
		NewWood("Walnut", "#4B351A"),
	}
}

// SampleLayers is a walnut and maple stripe pattern against DefaultWoods.
func SampleLayers() []Layer {
	return []Layer{
		{WoodIndex: 5, Width: 1, TrailingAngle: 0},
		{WoodIndex: 3, Width: 0.25, TrailingAngle: 0},
		{WoodIndex: 5, Width: 0.25, TrailingAngle: 0},
		{WoodIndex: 3, Width: 0.25, TrailingAngle: 0},
		{WoodIndex: 5, Width: 1, TrailingAngle: 0},
		{WoodIndex: 1, Width: 0.5, TrailingAngle: 0},
		{WoodIndex: 3, Width: 1, TrailingAngle: 0},
		{WoodIndex: 5, Width: 0.25, TrailingAngle: 0},
		{WoodIndex: 3, Width: 0.25, TrailingAngle: 0},
		{WoodIndex: 5, Width: 0.25, TrailingAngle: 0},
		{WoodIndex: 3, Width: 1, TrailingAngle: 0},
	}
}

// NewDesign returns the sample design the tool starts with.
func NewDesign() Design {
	return Design{
		Name:     "Untitled",
		Version:  DesignVersion,
		Units:    UnitsInches,
		Settings: DefaultSettings(),
		Woods:    DefaultWoods(),
		Layers:   SampleLayers(),
	}
}

// Clone returns a deep copy of the design.
func (d Design) Clone() Design {
	cp := d
	cp.Woods = CopyWoods(d.Woods)
	cp.Layers = CopyLayers(d.Layers)
	return cp
}

// LayersUsingWood returns the positions of all layers that reference the
// given wood index.
func (d Design) LayersUsingWood(index int) []int {
	var used []int
	for i, l := range d.Layers {
		if l.WoodIndex == index {
			used = append(used, i)
		}
	}
	return used
}

// WoodIndexByName finds a palette entry by case-insensitive name.
func WoodIndexByName(woods []WoodInfo, name string) (int, bool) {
	name = strings.TrimSpace(name)
	for i, w := range woods {
		if strings.EqualFold(w.Name, name) {
			return i, true
		}
	}
	return -1, false
}

// CopyWoods returns a copy of a palette; nil becomes an empty slice.
func CopyWoods(woods []WoodInfo) []WoodInfo {
	cp := make([]WoodInfo, len(woods))
	copy(cp, woods)
	return cp
}

// CopyLayers returns a copy of a layer list; nil becomes an empty slice.
func CopyLayers(layers []Layer) []Layer {
	cp := make([]Layer, len(layers))
	copy(cp, layers)
	return cp
}

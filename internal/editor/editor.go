// Package editor owns the design being worked on: the wood palette, the layer
// sequence and the board settings, with undo history over every change.
package editor

import (
	"fmt"
	"strings"

	"github.com/piwi3910/EndGrain/internal/engine"
	"github.com/piwi3910/EndGrain/internal/model"
)

const (
	DefaultWoodName  = "New Wood"
	DefaultWoodColor = "#808080"
)

// Notifier receives the non-fatal problems found while recalculating.
type Notifier interface {
	Warn(w model.ValidationWarning)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(w model.ValidationWarning)

// Warn calls f(w).
func (f NotifierFunc) Warn(w model.ValidationWarning) { f(w) }

// WoodInUseError blocks removing a wood that a layer still references.
type WoodInUseError struct {
	Wood  int // Zero-based palette entry
	Layer int // Zero-based first layer using it
}

func (e *WoodInUseError) Error() string {
	return fmt.Sprintf("That wood is in use at layer %d.", e.Layer+1)
}

// Editor is a single-threaded store for one design.
type Editor struct {
	design   model.Design
	history  *History
	notifier Notifier
}

// New creates an editor over a copy of d. A nil notifier discards warnings.
func New(d model.Design, n Notifier) *Editor {
	return NewWithHistory(d, n, NewHistory())
}

// NewWithHistory is New with a caller-supplied history, e.g. one sized from
// the application config.
func NewWithHistory(d model.Design, n Notifier, h *History) *Editor {
	if h == nil {
		h = NewHistory()
	}
	return &Editor{design: d.Clone(), history: h, notifier: n}
}

// Design returns a copy of the current design.
func (e *Editor) Design() model.Design {
	return e.design.Clone()
}

// Woods returns a copy of the palette.
func (e *Editor) Woods() []model.WoodInfo {
	return model.CopyWoods(e.design.Woods)
}

// Layers returns a copy of the layer sequence.
func (e *Editor) Layers() []model.Layer {
	return model.CopyLayers(e.design.Layers)
}

// Settings returns the board settings.
func (e *Editor) Settings() model.Settings {
	return e.design.Settings
}

// History exposes the undo stack.
func (e *Editor) History() *History {
	return e.history
}

// Load replaces the whole design. The change is undoable.
func (e *Editor) Load(d model.Design, label string) {
	e.save(label)
	e.design = d.Clone()
}

func (e *Editor) save(label string) {
	e.history.Push(MakeSnapshot(e.design, label))
}

func (e *Editor) checkWood(i int) error {
	if i < 0 || i >= len(e.design.Woods) {
		return fmt.Errorf("wood %d out of range (palette has %d)", i, len(e.design.Woods))
	}
	return nil
}

func (e *Editor) checkLayer(i int) error {
	if i < 0 || i >= len(e.design.Layers) {
		return fmt.Errorf("layer %d out of range (design has %d)", i, len(e.design.Layers))
	}
	return nil
}

func checkColor(i int, color string) error {
	if !model.IsHexColor(color) {
		return &model.DataError{Field: "wood.color", Index: i, Reason: fmt.Sprintf("expected #RRGGBB, got %q", color)}
	}
	return nil
}

func (e *Editor) checkLayerValue(i int, l model.Layer) error {
	err := model.ValidateLayers([]model.Layer{l}, len(e.design.Woods))
	for _, de := range model.DataErrors(err) {
		de.Index = i
	}
	return err
}

// AddWood appends a palette entry and returns its index.
func (e *Editor) AddWood(name, color string) (int, error) {
	if strings.TrimSpace(name) == "" {
		return -1, &model.DataError{Field: "wood.name", Index: len(e.design.Woods), Reason: "must not be empty"}
	}
	if err := checkColor(len(e.design.Woods), color); err != nil {
		return -1, err
	}
	e.save("Add Wood")
	e.design.Woods = append(e.design.Woods, model.NewWood(name, color))
	return len(e.design.Woods) - 1, nil
}

// AddDefaultWood appends a grey placeholder wood.
func (e *Editor) AddDefaultWood() int {
	i, _ := e.AddWood(DefaultWoodName, DefaultWoodColor)
	return i
}

// RenameWood changes the display name of a palette entry.
func (e *Editor) RenameWood(i int, name string) error {
	if err := e.checkWood(i); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return &model.DataError{Field: "wood.name", Index: i, Reason: "must not be empty"}
	}
	e.save("Rename Wood")
	e.design.Woods[i].Name = name
	return nil
}

// RecolorWood changes the colour of a palette entry.
func (e *Editor) RecolorWood(i int, color string) error {
	if err := e.checkWood(i); err != nil {
		return err
	}
	if err := checkColor(i, color); err != nil {
		return err
	}
	e.save("Recolor Wood")
	e.design.Woods[i].Color = strings.ToUpper(color)
	return nil
}

// RemoveWood deletes a palette entry no layer uses. Layers referencing a
// later entry are renumbered so they keep pointing at the same wood.
func (e *Editor) RemoveWood(i int) error {
	if err := e.checkWood(i); err != nil {
		return err
	}
	if users := e.design.LayersUsingWood(i); len(users) > 0 {
		return &WoodInUseError{Wood: i, Layer: users[0]}
	}

	e.save("Remove Wood")
	e.design.Woods = append(e.design.Woods[:i], e.design.Woods[i+1:]...)
	for j := range e.design.Layers {
		if e.design.Layers[j].WoodIndex > i {
			e.design.Layers[j].WoodIndex--
		}
	}
	return nil
}

// AddLayer appends a layer and returns its index.
func (e *Editor) AddLayer(l model.Layer) (int, error) {
	pos := len(e.design.Layers)
	if err := e.InsertLayer(pos, l); err != nil {
		return -1, err
	}
	return pos, nil
}

// AddDefaultLayer appends a one unit square-cut layer of the first wood.
func (e *Editor) AddDefaultLayer() (int, error) {
	if len(e.design.Woods) == 0 {
		return -1, fmt.Errorf("add a wood before adding layers")
	}
	return e.AddLayer(model.Layer{WoodIndex: 0, Width: 1, TrailingAngle: 0})
}

// InsertLayer places l so it becomes layer pos.
func (e *Editor) InsertLayer(pos int, l model.Layer) error {
	if pos < 0 || pos > len(e.design.Layers) {
		return fmt.Errorf("insert position %d out of range (design has %d)", pos, len(e.design.Layers))
	}
	if err := e.checkLayerValue(pos, l); err != nil {
		return err
	}
	e.save("Add Layer")
	e.design.Layers = append(e.design.Layers, model.Layer{})
	copy(e.design.Layers[pos+1:], e.design.Layers[pos:])
	e.design.Layers[pos] = l
	return nil
}

// UpdateLayer replaces layer i.
func (e *Editor) UpdateLayer(i int, l model.Layer) error {
	if err := e.checkLayer(i); err != nil {
		return err
	}
	if err := e.checkLayerValue(i, l); err != nil {
		return err
	}
	if e.design.Layers[i] == l {
		return nil
	}
	e.save("Edit Layer")
	e.design.Layers[i] = l
	return nil
}

// RemoveLayer deletes layer i.
func (e *Editor) RemoveLayer(i int) error {
	if err := e.checkLayer(i); err != nil {
		return err
	}
	e.save("Remove Layer")
	e.design.Layers = append(e.design.Layers[:i], e.design.Layers[i+1:]...)
	return nil
}

// MoveLayerUp swaps layer i with the one before it. Moving the first layer
// is a no-op.
func (e *Editor) MoveLayerUp(i int) error {
	if err := e.checkLayer(i); err != nil {
		return err
	}
	if i == 0 {
		return nil
	}
	e.save("Move Layer")
	e.design.Layers[i-1], e.design.Layers[i] = e.design.Layers[i], e.design.Layers[i-1]
	return nil
}

// MoveLayerDown swaps layer i with the one after it. Moving the last layer
// is a no-op.
func (e *Editor) MoveLayerDown(i int) error {
	if err := e.checkLayer(i); err != nil {
		return err
	}
	if i == len(e.design.Layers)-1 {
		return nil
	}
	e.save("Move Layer")
	e.design.Layers[i], e.design.Layers[i+1] = e.design.Layers[i+1], e.design.Layers[i]
	return nil
}

// ClearLayers removes every layer, keeping the palette and settings.
func (e *Editor) ClearLayers() {
	if len(e.design.Layers) == 0 {
		return
	}
	e.save("Clear Layers")
	e.design.Layers = []model.Layer{}
}

// UpdateSettings replaces the board settings after validating them.
func (e *Editor) UpdateSettings(s model.Settings) error {
	if err := model.ValidateSettings(s); err != nil {
		return err
	}
	if e.design.Settings == s {
		return nil
	}
	e.save("Edit Settings")
	e.design.Settings = s
	return nil
}

// Undo reverts the last change. It returns false when there is nothing to undo.
func (e *Editor) Undo() bool {
	snap, ok := e.history.Undo(MakeSnapshot(e.design, ""))
	if !ok {
		return false
	}
	e.design = snap.Design
	return true
}

// Redo reapplies the last undone change.
func (e *Editor) Redo() bool {
	snap, ok := e.history.Redo(MakeSnapshot(e.design, ""))
	if !ok {
		return false
	}
	e.design = snap.Design
	return true
}

// Recalculate computes the plan for the current design and forwards every
// warning to the notifier.
func (e *Editor) Recalculate() (engine.Plan, error) {
	plan, err := engine.Calculate(e.design.Settings, e.design.Layers, e.design.Woods)
	if err != nil {
		return engine.Plan{}, err
	}
	if e.notifier != nil {
		for _, w := range plan.Warnings {
			e.notifier.Warn(w)
		}
	}
	return plan, nil
}

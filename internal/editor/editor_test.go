package editor

import (
	"errors"
	"testing"

	"github.com/piwi3910/EndGrain/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	warnings []model.ValidationWarning
}

func (r *recorder) Warn(w model.ValidationWarning) {
	r.warnings = append(r.warnings, w)
}

func newSampleEditor() *Editor {
	return New(model.NewDesign(), nil)
}

func TestNewCopiesDesign(t *testing.T) {
	d := model.NewDesign()
	e := New(d, nil)

	d.Layers[0].Width = 42
	assert.Equal(t, 1.0, e.Layers()[0].Width)

	layers := e.Layers()
	layers[0].Width = 7
	assert.Equal(t, 1.0, e.Design().Layers[0].Width)
}

func TestAddWood(t *testing.T) {
	e := newSampleEditor()

	i, err := e.AddWood("Padauk", "#c2452d")
	require.NoError(t, err)
	assert.Equal(t, 6, i)
	assert.Equal(t, "Padauk", e.Woods()[i].Name)
	assert.Equal(t, "#C2452D", e.Woods()[i].Color)
	assert.NotEmpty(t, e.Woods()[i].ID)
	assert.True(t, e.History().CanUndo())
}

func TestAddWood_Rejects(t *testing.T) {
	e := newSampleEditor()

	_, err := e.AddWood("", "#123456")
	assert.True(t, model.IsDataError(err))

	_, err = e.AddWood("Oak", "brown")
	assert.True(t, model.IsDataError(err))

	assert.Len(t, e.Woods(), 6)
	assert.False(t, e.History().CanUndo())
}

func TestAddDefaultWood(t *testing.T) {
	e := newSampleEditor()
	i := e.AddDefaultWood()

	w := e.Woods()[i]
	assert.Equal(t, DefaultWoodName, w.Name)
	assert.Equal(t, DefaultWoodColor, w.Color)
}

func TestRenameAndRecolorWood(t *testing.T) {
	e := newSampleEditor()

	require.NoError(t, e.RenameWood(0, "Black Cherry"))
	require.NoError(t, e.RecolorWood(0, "#aa0000"))
	assert.Equal(t, "Black Cherry", e.Woods()[0].Name)
	assert.Equal(t, "#AA0000", e.Woods()[0].Color)

	assert.Error(t, e.RenameWood(10, "x"))
	assert.Error(t, e.RenameWood(0, " "))
	assert.True(t, model.IsDataError(e.RecolorWood(0, "#GG0000")))
}

func TestRemoveWood_InUse(t *testing.T) {
	e := newSampleEditor()

	// Walnut is referenced by the first sample layer
	err := e.RemoveWood(5)
	var inUse *WoodInUseError
	require.True(t, errors.As(err, &inUse))
	assert.Equal(t, 5, inUse.Wood)
	assert.Equal(t, 0, inUse.Layer)
	assert.Equal(t, "That wood is in use at layer 1.", err.Error())
	assert.Len(t, e.Woods(), 6)
	assert.False(t, e.History().CanUndo())
}

func TestRemoveWood_RenumbersLayers(t *testing.T) {
	e := newSampleEditor()
	before := e.Layers()

	// Cherry (0) is unused in the sample; everything above shifts down
	require.NoError(t, e.RemoveWood(0))

	assert.Len(t, e.Woods(), 5)
	assert.Equal(t, "Ebony", e.Woods()[0].Name)
	after := e.Layers()
	for i := range after {
		assert.Equal(t, before[i].WoodIndex-1, after[i].WoodIndex, "layer %d", i)
	}

	// Still describes the same woods
	plan, err := e.Recalculate()
	require.NoError(t, err)
	assert.Equal(t, "Walnut", plan.Measurements.WoodUsage[0].Name)
}

func TestRemoveWood_Undo(t *testing.T) {
	e := newSampleEditor()
	require.NoError(t, e.RemoveWood(2))
	require.True(t, e.Undo())

	assert.Equal(t, model.NewDesign().Layers, e.Layers())
	assert.Equal(t, "Jatoba", e.Woods()[2].Name)
}

func TestLayerOperations(t *testing.T) {
	e := New(model.NewDesign(), nil)
	e.ClearLayers()
	require.Empty(t, e.Layers())

	i, err := e.AddDefaultLayer()
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Equal(t, model.Layer{WoodIndex: 0, Width: 1}, e.Layers()[0])

	_, err = e.AddLayer(model.Layer{WoodIndex: 5, Width: 0.5, TrailingAngle: 10})
	require.NoError(t, err)
	require.NoError(t, e.InsertLayer(1, model.Layer{WoodIndex: 3, Width: 0.25}))

	layers := e.Layers()
	require.Len(t, layers, 3)
	assert.Equal(t, 0, layers[0].WoodIndex)
	assert.Equal(t, 3, layers[1].WoodIndex)
	assert.Equal(t, 5, layers[2].WoodIndex)

	require.NoError(t, e.MoveLayerUp(2))
	assert.Equal(t, 5, e.Layers()[1].WoodIndex)
	require.NoError(t, e.MoveLayerDown(0))
	assert.Equal(t, 0, e.Layers()[1].WoodIndex)
	assert.Equal(t, 5, e.Layers()[0].WoodIndex)

	require.NoError(t, e.UpdateLayer(2, model.Layer{WoodIndex: 1, Width: 2, TrailingAngle: -20}))
	assert.Equal(t, -20.0, e.Layers()[2].TrailingAngle)

	require.NoError(t, e.RemoveLayer(0))
	assert.Len(t, e.Layers(), 2)
}

func TestLayerOperations_Bounds(t *testing.T) {
	e := newSampleEditor()
	n := len(e.Layers())

	assert.Error(t, e.RemoveLayer(n))
	assert.Error(t, e.UpdateLayer(-1, model.Layer{Width: 1}))
	assert.Error(t, e.InsertLayer(n+1, model.Layer{Width: 1}))
	assert.Error(t, e.MoveLayerUp(n))

	// Edge moves are no-ops and leave no history
	require.NoError(t, e.MoveLayerUp(0))
	require.NoError(t, e.MoveLayerDown(n-1))
	assert.False(t, e.History().CanUndo())
}

func TestLayerOperations_InvalidLayer(t *testing.T) {
	e := newSampleEditor()

	err := e.UpdateLayer(3, model.Layer{WoodIndex: 9, Width: 1})
	require.True(t, model.IsDataError(err))
	errs := model.DataErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, 3, errs[0].Index)

	_, err = e.AddLayer(model.Layer{WoodIndex: 0, Width: 0})
	assert.True(t, model.IsDataError(err))

	_, err = e.AddLayer(model.Layer{WoodIndex: 0, Width: 1, TrailingAngle: 90})
	assert.True(t, model.IsDataError(err))
}

func TestAddDefaultLayer_NeedsWood(t *testing.T) {
	d := model.NewDesign()
	d.Woods = nil
	d.Layers = nil
	e := New(d, nil)

	_, err := e.AddDefaultLayer()
	assert.Error(t, err)
}

func TestUpdateSettings(t *testing.T) {
	e := newSampleEditor()

	s := e.Settings()
	s.RotateEveryOther = true
	require.NoError(t, e.UpdateSettings(s))
	assert.True(t, e.Settings().RotateEveryOther)

	bad := s
	bad.Kerf = -0.1
	assert.True(t, model.IsDataError(e.UpdateSettings(bad)))
	assert.Equal(t, s, e.Settings())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	e := newSampleEditor()
	original := e.Design()

	require.NoError(t, e.RemoveLayer(0))
	_, err := e.AddWood("Oak", "#C8A165")
	require.NoError(t, err)
	edited := e.Design()

	require.True(t, e.Undo())
	require.True(t, e.Undo())
	assert.Equal(t, original, e.Design())
	assert.False(t, e.Undo())

	require.True(t, e.Redo())
	require.True(t, e.Redo())
	assert.Equal(t, edited, e.Design())
	assert.False(t, e.Redo())
}

func TestUndoLabel(t *testing.T) {
	e := newSampleEditor()
	e.ClearLayers()
	assert.Equal(t, "Clear Layers", e.History().UndoLabel())

	require.True(t, e.Undo())
	assert.Empty(t, e.History().UndoLabel())
	require.True(t, e.Redo())
	assert.Equal(t, "Clear Layers", e.History().UndoLabel())
	assert.Empty(t, e.Layers())
}

func TestLoad(t *testing.T) {
	e := newSampleEditor()
	d := model.NewDesign()
	d.Name = "Other"
	d.Layers = d.Layers[:2]

	e.Load(d, "Load Template")
	assert.Equal(t, "Other", e.Design().Name)
	require.True(t, e.Undo())
	assert.Equal(t, "Untitled", e.Design().Name)
}

func TestRecalculateForwardsWarnings(t *testing.T) {
	rec := &recorder{}
	d := model.NewDesign()
	d.Layers[0].TrailingAngle = 60
	d.Layers[1].TrailingAngle = -60
	e := New(d, rec)

	plan, err := e.Recalculate()
	require.NoError(t, err)
	assert.Equal(t, plan.Warnings, rec.warnings)
	assert.NotEmpty(t, rec.warnings)
}

func TestRecalculateNotifierFunc(t *testing.T) {
	var got []string
	d := model.NewDesign()
	d.Layers[0].TrailingAngle = 60
	d.Layers[1].TrailingAngle = -60
	e := New(d, NotifierFunc(func(w model.ValidationWarning) {
		got = append(got, w.Message)
	}))

	_, err := e.Recalculate()
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestRecalculateNilNotifier(t *testing.T) {
	e := newSampleEditor()
	plan, err := e.Recalculate()
	require.NoError(t, err)
	assert.Equal(t, 14, plan.Measurements.SliceCount)
}

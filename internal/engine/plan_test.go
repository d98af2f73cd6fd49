package engine

import (
	"testing"

	"github.com/piwi3910/EndGrain/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_SampleDesign(t *testing.T) {
	d := model.NewDesign()

	plan, err := Calculate(d.Settings, d.Layers, d.Woods)
	require.NoError(t, err)

	m := plan.Measurements
	assert.InDelta(t, 6.0, m.BoardWidth, tolerance)
	assert.Equal(t, 14, m.SliceCount)
	assert.InDelta(t, 14*1.75, m.EndgrainBoardLength, tolerance)
	assert.InDelta(t, 24.0, m.EdgegrainBoardLength, tolerance)
	assert.InDelta(t, 1.375, m.LeftoverStock, tolerance)
	assert.Empty(t, plan.Warnings)

	require.Len(t, m.WoodUsage, 3)
	assert.Equal(t, "Walnut", m.WoodUsage[0].Name)
	assert.Equal(t, "Maple", m.WoodUsage[1].Name)
	assert.Equal(t, "Ebony", m.WoodUsage[2].Name)
	assert.InDelta(t, 2.75+5*0.125, m.WoodUsage[0].Used, tolerance)
	assert.InDelta(t, 5*0.125, m.WoodUsage[0].Wasted, tolerance)
	assert.InDelta(t, 0.5+0.125, m.WoodUsage[2].Used, tolerance)

	assert.Len(t, plan.Scene.EndGrain.Template, 11)
	assert.Len(t, plan.Scene.EndGrain.Slices, 14)
	assert.Len(t, plan.Scene.EndGrain.PlacedPolygons(), 11*14)
	assert.Len(t, plan.Scene.EdgeGrain.Strips, 11)
	assert.True(t, plan.Scene.ShowOutlines)
}

func TestCalculate_Idempotent(t *testing.T) {
	d := model.NewDesign()
	d.Settings.FlipEveryOther = true
	d.Settings.RotateEveryOther = true
	d.Layers[2].TrailingAngle = 15

	first, err := Calculate(d.Settings, d.Layers, d.Woods)
	require.NoError(t, err)
	second, err := Calculate(d.Settings, d.Layers, d.Woods)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculate_DoesNotMutateInputs(t *testing.T) {
	d := model.NewDesign()
	before := d.Clone()

	_, err := Calculate(d.Settings, d.Layers, d.Woods)
	require.NoError(t, err)

	assert.Equal(t, before, d)
}

func TestCalculate_InvalidWoodIndex(t *testing.T) {
	d := model.NewDesign()
	d.Layers[4].WoodIndex = len(d.Woods)

	plan, err := Calculate(d.Settings, d.Layers, d.Woods)
	require.Error(t, err)
	assert.True(t, model.IsDataError(err))
	assert.Equal(t, Plan{}, plan)

	errs := model.DataErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, 4, errs[0].Index)
}

func TestCalculate_CollectsEveryDataError(t *testing.T) {
	d := model.NewDesign()
	d.Settings.Kerf = 0
	d.Layers[0].Width = -1
	d.Woods[1].Color = "black"

	_, err := Calculate(d.Settings, d.Layers, d.Woods)
	require.Error(t, err)
	assert.Len(t, model.DataErrors(err), 3)
}

func TestCalculate_EmptyLayers(t *testing.T) {
	s := model.DefaultSettings()

	plan, err := Calculate(s, nil, model.DefaultWoods())
	require.NoError(t, err)

	assert.Empty(t, plan.Scene.EndGrain.Template)
	assert.Empty(t, plan.Scene.EdgeGrain.Strips)
	assert.Empty(t, plan.Measurements.WoodUsage)
	assert.Equal(t, 0.0, plan.Measurements.BoardWidth)
	assert.Equal(t, 14, plan.Measurements.SliceCount)
	// 14 slices of 1.75 outgrow the 24 long blank
	assert.InDelta(t, 14*1.75*Scale, plan.Scene.EndGrain.Viewport.Width, tolerance)
}

func TestCalculate_BadCutStillDraws(t *testing.T) {
	d := model.NewDesign()
	d.Layers[0].TrailingAngle = 60
	d.Layers[1].TrailingAngle = -60

	plan, err := Calculate(d.Settings, d.Layers, d.Woods)
	require.NoError(t, err)

	require.NotEmpty(t, plan.Warnings)
	assert.Equal(t, 2, plan.Warnings[0].Layer)
	assert.Len(t, plan.Scene.EndGrain.Template, len(d.Layers))
}

func TestCalculate_ScaleDoesNotLeak(t *testing.T) {
	s := model.DefaultSettings()
	layers := []model.Layer{{WoodIndex: 0, Width: 2}}
	woods := []model.WoodInfo{{Name: "Cherry", Color: "#9F5D3E"}}

	plan, err := Calculate(s, layers, woods)
	require.NoError(t, err)

	assert.Equal(t, 2.0, plan.Measurements.BoardWidth)
	assert.Equal(t, 2*Scale, plan.Template.FinalLeftY)
	assert.InDelta(t, 2+s.Kerf, plan.Measurements.TotalUsed(), tolerance)
	assert.InDelta(t, s.Kerf, plan.Measurements.TotalWasted(), tolerance)
}

func TestMeasurementsTotals(t *testing.T) {
	m := Measurements{WoodUsage: []model.UsageEntry{
		{Name: "a", Used: 1.5, Wasted: 0.25},
		{Name: "b", Used: 2, Wasted: 0.5},
	}}
	assert.Equal(t, 3.5, m.TotalUsed())
	assert.Equal(t, 0.75, m.TotalWasted())
}

package model

import (
	"errors"
	"math"
	"testing"
)

func TestValidateSettingsRejectsNonPositive(t *testing.T) {
	s := DefaultSettings()
	s.Kerf = 0
	s.SourceLength = math.NaN()

	err := ValidateSettings(s)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsDataError(err) {
		t.Fatalf("expected DataError, got %T", err)
	}
	if got := len(DataErrors(err)); got != 2 {
		t.Errorf("expected 2 data errors, got %d", got)
	}
}

func TestValidateSettingsRejectsInfinity(t *testing.T) {
	s := DefaultSettings()
	s.EndgrainThickness = math.Inf(1)

	if err := ValidateSettings(s); !IsDataError(err) {
		t.Errorf("expected DataError for infinite thickness, got %v", err)
	}
}

func TestValidateLayersWoodIndex(t *testing.T) {
	layers := []Layer{
		{WoodIndex: 0, Width: 1},
		{WoodIndex: 6, Width: 1},
		{WoodIndex: -1, Width: 1},
	}

	errs := DataErrors(ValidateLayers(layers, 6))
	if len(errs) != 2 {
		t.Fatalf("expected 2 data errors, got %d", len(errs))
	}
	if errs[0].Index != 1 || errs[0].Field != "layer.wood_index" {
		t.Errorf("unexpected first error: %+v", errs[0])
	}
}

func TestValidateLayersWidthAndAngle(t *testing.T) {
	layers := []Layer{
		{WoodIndex: 0, Width: 0},
		{WoodIndex: 0, Width: 1, TrailingAngle: 90},
		{WoodIndex: 0, Width: 1, TrailingAngle: -89},
		{WoodIndex: 0, Width: 1, TrailingAngle: 89},
	}

	errs := DataErrors(ValidateLayers(layers, 1))
	if len(errs) != 2 {
		t.Fatalf("expected 2 data errors, got %d: %v", len(errs), errs)
	}
	if errs[0].Field != "layer.width" {
		t.Errorf("expected width error first, got %s", errs[0].Field)
	}
	if errs[1].Field != "layer.trailing_angle" || errs[1].Index != 1 {
		t.Errorf("expected angle error on layer index 1, got %+v", errs[1])
	}
}

func TestValidateWoods(t *testing.T) {
	woods := []WoodInfo{
		{Name: "Oak", Color: "#A0522D"},
		{Name: "", Color: "#000000"},
		{Name: "Ash", Color: "red"},
	}

	errs := DataErrors(ValidateWoods(woods))
	if len(errs) != 2 {
		t.Fatalf("expected 2 data errors, got %d", len(errs))
	}
}

func TestDataErrorMessage(t *testing.T) {
	e := &DataError{Field: "layer.width", Index: 2, Reason: "must be positive"}
	if e.Error() != "invalid layer.width at 3: must be positive" {
		t.Errorf("unexpected message %q", e.Error())
	}

	s := &DataError{Field: "kerf", Index: -1, Reason: "must be positive"}
	if s.Error() != "invalid kerf: must be positive" {
		t.Errorf("unexpected message %q", s.Error())
	}
}

func TestIsDataErrorFalseForOtherErrors(t *testing.T) {
	if IsDataError(errors.New("boom")) {
		t.Error("plain error reported as DataError")
	}
	if IsDataError(nil) {
		t.Error("nil reported as DataError")
	}
}

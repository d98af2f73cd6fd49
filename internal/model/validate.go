package model

import (
	"errors"
	"fmt"
	"math"
	"regexp"

	"go.uber.org/multierr"
)

// ErrInvariant marks a result the calculator should never be able to produce,
// such as a negative leftover after packing slices.
var ErrInvariant = errors.New("calculation invariant violated")

// DataError reports input the calculator cannot work with. It is fatal to a
// single calculation; nothing partial is returned alongside it.
type DataError struct {
	Field  string // e.g. "kerf", "layer.wood_index"
	Index  int    // Zero-based layer or wood position, -1 for settings
	Reason string
}

func (e *DataError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid %s at %d: %s", e.Field, e.Index+1, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsDataError reports whether err is, or contains, a DataError.
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}

// DataErrors flattens a combined validation error into its DataErrors.
func DataErrors(err error) []*DataError {
	var out []*DataError
	for _, e := range multierr.Errors(err) {
		var de *DataError
		if errors.As(e, &de) {
			out = append(out, de)
		}
	}
	return out
}

// ValidationWarning is a non-fatal problem found while building the geometry.
// Layer is the 1-based number of the offending layer.
type ValidationWarning struct {
	Layer   int    `json:"layer"`
	Message string `json:"message"`
}

func (w ValidationWarning) String() string {
	return w.Message
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsHexColor reports whether s has the #RRGGBB form.
func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}

func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// ValidateSettings checks that every numeric setting is finite and positive.
func ValidateSettings(s Settings) error {
	var err error
	fields := []struct {
		name  string
		value float64
	}{
		{"source_length", s.SourceLength},
		{"source_thickness", s.SourceThickness},
		{"endgrain_thickness", s.EndgrainThickness},
		{"kerf", s.Kerf},
	}
	for _, f := range fields {
		if !positive(f.value) {
			err = multierr.Append(err, &DataError{
				Field:  f.name,
				Index:  -1,
				Reason: fmt.Sprintf("must be a finite positive number, got %v", f.value),
			})
		}
	}
	return err
}

// ValidateWoods checks palette entries for a name and a #RRGGBB colour.
func ValidateWoods(woods []WoodInfo) error {
	var err error
	for i, w := range woods {
		if w.Name == "" {
			err = multierr.Append(err, &DataError{Field: "wood.name", Index: i, Reason: "must not be empty"})
		}
		if !IsHexColor(w.Color) {
			err = multierr.Append(err, &DataError{
				Field:  "wood.color",
				Index:  i,
				Reason: fmt.Sprintf("expected #RRGGBB, got %q", w.Color),
			})
		}
	}
	return err
}

// ValidateLayers checks every layer against the palette size.
func ValidateLayers(layers []Layer, numWoods int) error {
	var err error
	for i, l := range layers {
		if l.WoodIndex < 0 || l.WoodIndex >= numWoods {
			err = multierr.Append(err, &DataError{
				Field:  "layer.wood_index",
				Index:  i,
				Reason: fmt.Sprintf("wood %d is not in a palette of %d", l.WoodIndex, numWoods),
			})
		}
		if !positive(l.Width) {
			err = multierr.Append(err, &DataError{
				Field:  "layer.width",
				Index:  i,
				Reason: fmt.Sprintf("must be a finite positive number, got %v", l.Width),
			})
		}
		if math.IsNaN(l.TrailingAngle) || l.TrailingAngle < MinTrailingAngle || l.TrailingAngle > MaxTrailingAngle {
			err = multierr.Append(err, &DataError{
				Field:  "layer.trailing_angle",
				Index:  i,
				Reason: fmt.Sprintf("must be within [%g, %g], got %v", MinTrailingAngle, MaxTrailingAngle, l.TrailingAngle),
			})
		}
	}
	return err
}

// Validate runs every input check the calculator relies on.
func Validate(s Settings, layers []Layer, woods []WoodInfo) error {
	return multierr.Combine(
		ValidateSettings(s),
		ValidateWoods(woods),
		ValidateLayers(layers, len(woods)),
	)
}

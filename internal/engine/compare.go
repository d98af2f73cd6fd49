package engine

import (
	"fmt"

	"github.com/piwi3910/EndGrain/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the plan and computed statistics for a single scenario.
type ComparisonResult struct {
	Scenario       ComparisonScenario
	Plan           Plan
	Err            error
	SliceCount     int
	Leftover       float64
	EndgrainLength float64
	TotalUsed      float64
	TotalWasted    float64
	WastePercent   float64
	WarningCount   int
}

// CompareScenarios runs the calculator for each scenario against the same
// layers and palette and returns the results in scenario order. A scenario
// whose settings are invalid carries its error instead of a plan.
func CompareScenarios(scenarios []ComparisonScenario, layers []model.Layer, woods []model.WoodInfo) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		plan, err := Calculate(scenario.Settings, layers, woods)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}

		m := plan.Measurements
		used := m.TotalUsed()
		wasted := m.TotalWasted()
		wastePercent := 0.0
		if used > 0 {
			wastePercent = wasted / used * 100.0
		}

		results = append(results, ComparisonResult{
			Scenario:       scenario,
			Plan:           plan,
			SliceCount:     m.SliceCount,
			Leftover:       m.LeftoverStock,
			EndgrainLength: m.EndgrainBoardLength,
			TotalUsed:      used,
			TotalWasted:    wasted,
			WastePercent:   wastePercent,
			WarningCount:   len(plan.Warnings),
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(base model.Settings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	// Thinner blade
	thinKerf := base
	thinKerf.Kerf = base.Kerf * 0.5
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Kerf %g (half)", thinKerf.Kerf),
		Settings: thinKerf,
	})

	// Thinner and thicker slices
	thin := base
	thin.EndgrainThickness = base.EndgrainThickness * 0.75
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Slices %g thick", thin.EndgrainThickness),
		Settings: thin,
	})

	thick := base
	thick.EndgrainThickness = base.EndgrainThickness * 1.25
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Slices %g thick", thick.EndgrainThickness),
		Settings: thick,
	})

	// Alternate patterning
	flipped := base
	flipped.FlipEveryOther = !base.FlipEveryOther
	name := "Flip every other slice"
	if base.FlipEveryOther {
		name = "No flipping"
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     name,
		Settings: flipped,
	})

	return scenarios
}

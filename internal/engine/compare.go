package engine

import (
	"fmt"

	"github.com/piwi3910/ChipPlace/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.PlaceSettings
}

// ComparisonResult holds the run result and derived statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario ComparisonScenario
	Result   model.PlaceResult
	Stats    model.PlacementStats
}

// CompareScenarios runs a full annealing pass for each scenario and returns
// the results in scenario order. This enables side-by-side comparison of
// different annealing parameters (cooling rates, move policies, weights).
func CompareScenarios(scenarios []ComparisonScenario, nl model.Netlist) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		result, err := Place(nl, scenario.Settings)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		results = append(results, ComparisonResult{
			Scenario: scenario,
			Result:   result,
			Stats:    model.ComputeStats(nl, result.Placement),
		})
	}
	return results, nil
}

// BuildDefaultScenarios generates comparison scenarios based on the current
// settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(base model.PlaceSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Settings: base},
	}

	// Scenario: the other move policy
	altMove := base
	if base.MovePolicy == model.MoveUniform {
		altMove.MovePolicy = model.MoveWindow
		scenarios = append(scenarios, ComparisonScenario{Name: "Window Moves", Settings: altMove})
	} else {
		altMove.MovePolicy = model.MoveUniform
		scenarios = append(scenarios, ComparisonScenario{Name: "Uniform Moves", Settings: altMove})
	}

	// Scenario: slower cooling (closer to 1 = more exploration)
	slowCool := base
	slowCool.CoolingRate = base.CoolingRate + (1.0-base.CoolingRate)/2
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Cooling %.4f (slower)", slowCool.CoolingRate),
		Settings: slowCool,
	})

	// Scenario: heavier overlap penalty
	if base.OverlapWeight > 0 {
		strict := base
		strict.OverlapWeight = base.OverlapWeight * 2
		strict.BoundaryWeight = base.BoundaryWeight * 2
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Overlap Weight %.0f (double)", strict.OverlapWeight),
			Settings: strict,
		})
	}

	return scenarios
}

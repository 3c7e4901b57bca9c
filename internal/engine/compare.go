package engine

import (
	"fmt"

	"github.com/piwi3910/PanelCut/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.LayoutSettings
}

// ComparisonResult holds the layout result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario       ComparisonScenario
	Result         model.CutLayoutResult
	SheetsUsed     int
	PlacementCount int
	WastePercent   float64
	UnplacedCount  int
}

// CompareScenarios runs the layout for each scenario over the same items and
// returns the results in scenario order.
func CompareScenarios(scenarios []ComparisonScenario, items []model.RawItem) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result := New(scenario.Settings).Layout(items)

		waste := 0.0
		if len(result.Sheets) > 0 {
			waste = 100.0 - result.TotalEfficiency()
		}

		results = append(results, ComparisonResult{
			Scenario:       scenario,
			Result:         result,
			SheetsUsed:     len(result.Sheets),
			PlacementCount: result.PlacementCount(),
			WastePercent:   waste,
			UnplacedCount:  len(result.Unplaced),
		})
	}

	return results
}

// BuildDefaultScenarios derives what-if variants from the current settings.
func BuildDefaultScenarios(base model.LayoutSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	// Thinner blade
	if base.KerfWidth > 1.0 {
		thin := base
		thin.KerfWidth = base.KerfWidth * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Kerf %.1fmm (half)", thin.KerfWidth),
			Settings: thin,
		})
	}

	// Sheet turned on the saw table
	if base.SheetWidth != base.SheetHeight {
		turned := base
		turned.SheetWidth, turned.SheetHeight = base.SheetHeight, base.SheetWidth
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Sheet %.0fx%.0f", turned.SheetWidth, turned.SheetHeight),
			Settings: turned,
		})
	}

	return scenarios
}

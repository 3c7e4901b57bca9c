package cnc

import "github.com/piwi3910/PanelCut/internal/model"

// Documents is the pair of machine texts produced for one layout.
type Documents struct {
	Panel           model.CncPanel
	Drills          []model.CncDrillOperation
	CuttingPath     string
	DrillingPattern string
}

// DefaultPanel is used for document headers when the layout has no sheets.
func DefaultPanel() model.CncPanel {
	return model.CncPanel{
		Width:     model.DefaultSheetWidth,
		Height:    model.DefaultSheetHeight,
		Thickness: model.DefaultSheetThickness,
	}
}

// PanelFor converts a sheet into the panel description used by the drilling format.
func PanelFor(sheet model.SheetResult) model.CncPanel {
	return model.CncPanel{
		Width:      sheet.Sheet.Width,
		Height:     sheet.Sheet.Height,
		Thickness:  sheet.Sheet.Thickness,
		MaterialID: sheet.Sheet.MaterialID,
	}
}

// Export selects the first sheet as the representative panel, derives its
// corner holes and runs both generators.
func Export(layout model.CutLayoutResult, kerf float64) Documents {
	g := New(kerf)

	panel := DefaultPanel()
	var drills []model.CncDrillOperation
	if len(layout.Sheets) > 0 {
		panel = PanelFor(layout.Sheets[0])
		drills = BuildDrillOperations(layout.Sheets[0].Placements)
	}

	return Documents{
		Panel:           panel,
		Drills:          drills,
		CuttingPath:     g.GenerateCuttingPath(layout),
		DrillingPattern: g.GenerateDrillingPattern(panel, drills),
	}
}

// ExportSheets returns one drilling-pattern document per sheet, in result order.
func ExportSheets(layout model.CutLayoutResult) []string {
	g := New(0)
	docs := make([]string, 0, len(layout.Sheets))
	for _, s := range layout.Sheets {
		docs = append(docs, g.GenerateDrillingPattern(PanelFor(s), BuildDrillOperations(s.Placements)))
	}
	return docs
}

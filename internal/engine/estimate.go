package engine

import (
	"math"

	"github.com/piwi3910/PanelCut/internal/model"
)

// SheetEstimate holds the purchasing estimate for one material group.
type SheetEstimate struct {
	Group             GroupKey `json:"group"`
	PieceCount        int      `json:"piece_count"`
	TotalPieceArea    float64  `json:"total_piece_area"`    // sq mm including kerf allowance
	SheetArea         float64  `json:"sheet_area"`          // sq mm
	SheetsNeededExact float64  `json:"sheets_needed_exact"` // fractional number of sheets
	SheetsNeededMin   int      `json:"sheets_needed_min"`   // ceiling of exact
	SheetsWithWaste   int      `json:"sheets_with_waste"`   // including the waste factor
	WastePercent      float64  `json:"waste_percent"`
}

// EstimateSheets computes, per material group, how many sheets to buy.
// Every piece is inflated by one kerf in both directions and an additional
// waste percentage is applied on top of the exact sheet count.
func EstimateSheets(pieces []model.CutPiece, settings model.LayoutSettings, wastePercent float64) []SheetEstimate {
	settings = settings.Sanitized()
	sheetArea := settings.SheetWidth * settings.SheetHeight
	kerf := settings.KerfWidth

	var estimates []SheetEstimate
	for _, g := range GroupPieces(pieces, settings.DefaultMaterial) {
		var total float64
		for _, p := range g.Pieces {
			total += (p.Width + kerf) * (p.Height + kerf)
		}

		exact := total / sheetArea
		minSheets := int(math.Ceil(exact))
		withWaste := int(math.Ceil(exact * (1.0 + wastePercent/100.0)))
		if withWaste < minSheets {
			withWaste = minSheets
		}

		estimates = append(estimates, SheetEstimate{
			Group:             g.Key,
			PieceCount:        len(g.Pieces),
			TotalPieceArea:    total,
			SheetArea:         sheetArea,
			SheetsNeededExact: exact,
			SheetsNeededMin:   minSheets,
			SheetsWithWaste:   withWaste,
			WastePercent:      wastePercent,
		})
	}
	return estimates
}

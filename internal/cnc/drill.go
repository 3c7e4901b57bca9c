package cnc

import "github.com/piwi3910/PanelCut/internal/model"

// Placeholder corner-hole policy applied to every placed piece.
const (
	DrillMargin   = 25.0 // inset from each corner, mm
	DrillDiameter = 5.0  // mm
	DrillDepth    = 10.0 // mm
)

// BuildDrillOperations emits four vertical holes per placement, in placement
// order: top-left, top-right, bottom-right, bottom-left, each inset by
// DrillMargin. Coordinates are in sheet space.
func BuildDrillOperations(placements []model.CutPlacement) []model.CncDrillOperation {
	ops := make([]model.CncDrillOperation, 0, len(placements)*4)
	for _, p := range placements {
		left := p.X + DrillMargin
		right := p.X + p.Width - DrillMargin
		top := p.Y + DrillMargin
		bottom := p.Y + p.Height - DrillMargin

		for _, c := range [4][2]float64{
			{left, top},
			{right, top},
			{right, bottom},
			{left, bottom},
		} {
			ops = append(ops, model.CncDrillOperation{
				X:        c[0],
				Y:        c[1],
				Z:        0,
				Diameter: DrillDiameter,
				Depth:    DrillDepth,
				Type:     model.DrillVertical,
			})
		}
	}
	return ops
}

// BuildLayoutDrillOperations collects the holes of every sheet in result order.
func BuildLayoutDrillOperations(layout model.CutLayoutResult) []model.CncDrillOperation {
	var ops []model.CncDrillOperation
	for _, s := range layout.Sheets {
		ops = append(ops, BuildDrillOperations(s.Placements)...)
	}
	return ops
}

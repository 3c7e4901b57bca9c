package model

import (
	"math"
	"sort"
)

// Offcut represents a usable rectangular remnant area left over after cutting.
type Offcut struct {
	ID         string  `json:"id"`
	GroupIndex int     `json:"group_index"`
	SheetIndex int     `json:"sheet_index"`
	MaterialID string  `json:"material_id,omitempty"`
	Thickness  float64 `json:"thickness"`
	X          float64 `json:"x"`      // Position on the sheet (mm from left)
	Y          float64 `json:"y"`      // Position on the sheet (mm from top)
	Width      float64 `json:"width"`  // Usable width (mm)
	Height     float64 `json:"height"` // Usable height (mm)
}

// Area returns the area of the offcut in square mm.
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// MinOffcutDimension is the minimum width or height (in mm) for a remnant
// to be considered a usable offcut. Remnants smaller than this are waste.
const MinOffcutDimension = 50.0

// MinOffcutArea is the minimum area (in sq mm) for a remnant to be considered usable.
const MinOffcutArea = 10000.0 // 100mm x 100mm equivalent

// DetectOffcuts finds the strips to the right of and below the placed
// pieces. The right strip spans the full sheet height; the bottom strip stops
// where the right strip begins so the two never overlap. One kerf is kept
// between the pieces and each strip.
func DetectOffcuts(sr SheetResult, kerf float64) []Offcut {
	sheetW := sr.Sheet.Width
	sheetH := sr.Sheet.Height

	offcut := func(x, y, w, h float64) Offcut {
		return Offcut{
			ID:         NewPieceID(),
			GroupIndex: sr.GroupIndex,
			SheetIndex: sr.SheetIndex,
			MaterialID: sr.Sheet.MaterialID,
			Thickness:  sr.Sheet.Thickness,
			X:          x,
			Y:          y,
			Width:      w,
			Height:     h,
		}
	}

	if len(sr.Placements) == 0 {
		return []Offcut{offcut(0, 0, sheetW, sheetH)}
	}

	var maxPartRight, maxPartBottom float64
	for _, p := range sr.Placements {
		maxPartRight = math.Max(maxPartRight, p.X+p.Width+kerf)
		maxPartBottom = math.Max(maxPartBottom, p.Y+p.Height+kerf)
	}

	var offcuts []Offcut

	rightStripW := sheetW - maxPartRight
	if usable(rightStripW, sheetH) {
		offcuts = append(offcuts, offcut(maxPartRight, 0, rightStripW, sheetH))
	}

	bottomStripH := sheetH - maxPartBottom
	usableBottomW := math.Min(maxPartRight, sheetW)
	if usable(usableBottomW, bottomStripH) {
		offcuts = append(offcuts, offcut(0, maxPartBottom, usableBottomW, bottomStripH))
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})

	return offcuts
}

func usable(w, h float64) bool {
	return w >= MinOffcutDimension && h >= MinOffcutDimension && w*h >= MinOffcutArea
}

// DetectAllOffcuts finds offcuts across all sheets of a layout, in sheet order.
func DetectAllOffcuts(layout CutLayoutResult, kerf float64) []Offcut {
	var all []Offcut
	for _, sheet := range layout.Sheets {
		all = append(all, DetectOffcuts(sheet, kerf)...)
	}
	return all
}

// TotalOffcutArea returns the total area of all offcuts in square mm.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}

package cnc

import (
	"fmt"
	"strings"

	"github.com/piwi3910/PanelCut/internal/model"
)

// Record literals of the cutting-path document.
const (
	CuttingPathHeader = `TPA\ALBATROS\EDICAD\00.00:0`

	sheetNamePrefix = "$="
	dimensionPrefix = "::UNm"
	partPrefix      = "; PART"
	pointPrefix     = "PT"
	segmentPrefix   = "LN"
	routeOperation  = "OP ROUT T=1"
)

// modeRecords follow every sheet's dimension record.
var modeRecords = []string{"::MODE ABS", "::UNIT MM", "::FACE 1"}

// point is a contour vertex in sheet coordinates.
type point struct {
	X, Y float64
}

// GenerateCuttingPath produces the cutting-path document for every sheet of
// the layout, in result order, with placements in placement order.
func (g *Generator) GenerateCuttingPath(layout model.CutLayoutResult) string {
	var b strings.Builder

	writeLine(&b, CuttingPathHeader)
	for i, sheet := range layout.Sheets {
		g.writeSheet(&b, sheet, i+1)
		for _, p := range sheet.Placements {
			g.writePlacement(&b, p)
		}
	}
	return b.String()
}

func (g *Generator) writeSheet(b *strings.Builder, sheet model.SheetResult, n int) {
	writeLine(b, fmt.Sprintf("%sSHEET%d", sheetNamePrefix, n))
	writeLine(b, fmt.Sprintf("%s DL=%s DH=%s DS=%s X0=0.00 Y0=0.00 Z0=0.00",
		dimensionPrefix, format(sheet.Sheet.Width), format(sheet.Sheet.Height), format(sheet.Sheet.Thickness)))
	for _, m := range modeRecords {
		writeLine(b, m)
	}
}

func (g *Generator) writePlacement(b *strings.Builder, p model.CutPlacement) {
	writeLine(b, fmt.Sprintf("%s %s BOX %s", partPrefix, cleanText(p.PartName), cleanText(p.BoxID)))

	contour := g.contour(p)
	for _, pt := range contour {
		writeLine(b, fmt.Sprintf("%s X=%s Y=%s", pointPrefix, format(pt.X), format(pt.Y)))
	}

	writeLine(b, routeOperation)

	for i := 0; i+1 < len(contour); i++ {
		writeLine(b, fmt.Sprintf("%s X1=%s Y1=%s X2=%s Y2=%s", segmentPrefix,
			format(contour[i].X), format(contour[i].Y),
			format(contour[i+1].X), format(contour[i+1].Y)))
	}
}

// contour returns the closed rectangle around a placement, clockwise from the
// top-left corner with the first point repeated. The whole path is shifted by
// half a kerf so the blade runs centered in the kerf allowance.
func (g *Generator) contour(p model.CutPlacement) []point {
	off := g.KerfWidth / 2
	x0, y0 := p.X+off, p.Y+off
	x1, y1 := p.X+p.Width+off, p.Y+p.Height+off
	return []point{
		{x0, y0},
		{x1, y0},
		{x1, y1},
		{x0, y1},
		{x0, y0},
	}
}

// GenerateCuttingPath is a convenience wrapper for New(kerf).GenerateCuttingPath.
func GenerateCuttingPath(layout model.CutLayoutResult, kerf float64) string {
	return New(kerf).GenerateCuttingPath(layout)
}

package cnc

import (
	"fmt"
	"strings"

	"github.com/piwi3910/PanelCut/internal/model"
)

// GenerateDrillingPattern produces the drilling-pattern document: one panel
// block followed by one macro block per operation, in the given order.
func (g *Generator) GenerateDrillingPattern(panel model.CncPanel, ops []model.CncDrillOperation) string {
	var b strings.Builder

	writeLine(&b, "BEGIN MAINDATA")
	writeParam(&b, "LPX", format(panel.Width))
	writeParam(&b, "LPY", format(panel.Height))
	writeParam(&b, "LPZ", format(panel.Thickness))
	writeLine(&b, "END MAINDATA")

	z := panel.Thickness / 2
	for _, op := range ops {
		b.WriteByte('\n')
		g.writeDrill(&b, panel, op, z)
	}
	return b.String()
}

func (g *Generator) writeDrill(b *strings.Builder, panel model.CncPanel, op model.CncDrillOperation, z float64) {
	typ := op.Type
	if typ != model.DrillHorizontal {
		typ = model.DrillVertical
	}
	name := "BV"
	if typ == model.DrillHorizontal {
		name = "BH"
	}

	writeLine(b, "BEGIN MACRO")
	writeParam(b, "NAME", name)
	writeMacroParam(b, "TYPE", fmt.Sprintf("%d", typ.Code()))
	writeMacroParam(b, "TNM", fmt.Sprintf("%q", string(typ)))
	writeMacroParam(b, "QUADRANT", fmt.Sprintf("%d", quadrant(op.X, panel.Width)))
	writeMacroParam(b, "X", format(op.X))
	writeMacroParam(b, "Y", format(op.Y))
	writeMacroParam(b, "Z", format(z))
	writeMacroParam(b, "DP", format(op.Depth))
	writeMacroParam(b, "DIA", format(op.Diameter))
	writeLine(b, "END MACRO")
}

// quadrant is 1 for holes on the left half of the panel, 2 otherwise.
func quadrant(x, panelLength float64) int {
	if x <= panelLength/2 {
		return 1
	}
	return 2
}

func writeParam(b *strings.Builder, key, value string) {
	writeLine(b, "\t"+key+"="+value)
}

func writeMacroParam(b *strings.Builder, name, value string) {
	writeLine(b, "\tPARAM,NAME="+name+",VALUE="+value)
}

// GenerateDrillingPattern is a convenience wrapper for New(0).GenerateDrillingPattern.
func GenerateDrillingPattern(panel model.CncPanel, ops []model.CncDrillOperation) string {
	return New(0).GenerateDrillingPattern(panel, ops)
}

package export

import (
	"fmt"

	"github.com/piwi3910/PanelCut/internal/cnc"
	"github.com/piwi3910/PanelCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

// sheetGap separates consecutive sheets laid side by side in the drawing.
const sheetGap = 100.0

// ExportDXF writes every sheet of the layout into one DXF drawing. Each
// sheet gets a SHEET<n> layer holding its outline and the routed contours
// (shifted by half the kerf, as in the cutting path) and a SHEET<n>_DRILL
// layer holding the corner holes. Sheets are placed left to right and the
// Y axis is flipped so the drawing reads the same way as the layout.
func ExportDXF(path string, layout model.CutLayoutResult, kerf float64) error {
	if len(layout.Sheets) == 0 {
		return fmt.Errorf("no sheets to draw")
	}

	d := dxf.NewDrawing()
	off := cnc.New(kerf).KerfWidth / 2

	originX := 0.0
	for i, sheet := range layout.Sheets {
		w := &sheetWriter{d: d, originX: originX, height: sheet.Sheet.Height}
		layer := fmt.Sprintf("SHEET%d", i+1)

		if _, err := d.AddLayer(layer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("add layer %s: %w", layer, err)
		}
		if err := w.rect(0, 0, sheet.Sheet.Width, sheet.Sheet.Height); err != nil {
			return err
		}
		for _, p := range sheet.Placements {
			if err := w.rect(p.X+off, p.Y+off, p.Width, p.Height); err != nil {
				return fmt.Errorf("draw %s: %w", p.PartName, err)
			}
		}

		if _, err := d.AddLayer(layer+"_DRILL", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("add layer %s_DRILL: %w", layer, err)
		}
		for _, op := range cnc.BuildDrillOperations(sheet.Placements) {
			if _, err := d.Circle(w.x(op.X), w.y(op.Y), 0, op.Diameter/2); err != nil {
				return fmt.Errorf("draw hole: %w", err)
			}
		}

		originX += sheet.Sheet.Width + sheetGap
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save dxf %s: %w", path, err)
	}
	return nil
}

type sheetWriter struct {
	d       *drawing.Drawing
	originX float64
	height  float64
}

func (w *sheetWriter) x(v float64) float64 { return w.originX + v }
func (w *sheetWriter) y(v float64) float64 { return w.height - v }

// rect draws a closed rectangle as four LINE entities.
func (w *sheetWriter) rect(x, y, width, height float64) error {
	corners := [5][2]float64{
		{x, y}, {x + width, y}, {x + width, y + height}, {x, y + height}, {x, y},
	}
	for i := 0; i < 4; i++ {
		a, b := corners[i], corners[i+1]
		if _, err := w.d.Line(w.x(a[0]), w.y(a[1]), 0, w.x(b[0]), w.y(b[1]), 0); err != nil {
			return err
		}
	}
	return nil
}

package export

import (
	"fmt"
	"io"

	"github.com/piwi3910/PanelCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// Report worksheet names.
const (
	SheetsTab     = "Sheets"
	PlacementsTab = "Placements"
	UnplacedTab   = "Unplaced"
	OffcutsTab    = "Offcuts"
)

var (
	sheetsHeader     = []interface{}{"Group", "Sheet", "Material", "Thickness", "Width", "Height", "Pieces", "Used Area", "Efficiency %"}
	placementsHeader = []interface{}{"Group", "Sheet", "Part", "Box", "Piece ID", "X", "Y", "Width", "Height", "Rotation"}
	unplacedHeader   = []interface{}{"Part", "Box", "Piece ID", "Material", "Width", "Height", "Thickness"}
	offcutsHeader    = []interface{}{"Group", "Sheet", "Material", "Thickness", "X", "Y", "Width", "Height"}
)

// BuildReport lays the layout out as a workbook with one row per sheet,
// one row per placement, one row per piece that did not fit and one row per
// reusable offcut. The caller owns the returned file and must Close it.
func BuildReport(layout model.CutLayoutResult, kerf float64) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetsTab); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{PlacementsTab, UnplacedTab, OffcutsTab} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	var rows []reportRow
	rows = append(rows, reportRow{SheetsTab, sheetsHeader}, reportRow{PlacementsTab, placementsHeader}, reportRow{UnplacedTab, unplacedHeader}, reportRow{OffcutsTab, offcutsHeader})

	for _, sheet := range layout.Sheets {
		rows = append(rows, reportRow{SheetsTab, []interface{}{
			sheet.GroupIndex + 1,
			sheet.SheetIndex + 1,
			sheet.Sheet.MaterialID,
			sheet.Sheet.Thickness,
			sheet.Sheet.Width,
			sheet.Sheet.Height,
			len(sheet.Placements),
			sheet.UsedArea(),
			round2(sheet.Efficiency()),
		}})

		for _, p := range sheet.Placements {
			rows = append(rows, reportRow{PlacementsTab, []interface{}{
				sheet.GroupIndex + 1,
				p.SheetIndex + 1,
				p.PartName,
				p.BoxID,
				p.PieceID,
				p.X,
				p.Y,
				p.Width,
				p.Height,
				p.Rotation,
			}})
		}
	}

	for _, piece := range layout.Unplaced {
		rows = append(rows, reportRow{UnplacedTab, []interface{}{
			piece.PartName,
			piece.BoxID,
			piece.ID,
			piece.MaterialID,
			piece.Width,
			piece.Height,
			piece.Thickness,
		}})
	}

	for _, o := range model.DetectAllOffcuts(layout, kerf) {
		rows = append(rows, reportRow{OffcutsTab, []interface{}{
			o.GroupIndex + 1,
			o.SheetIndex + 1,
			o.MaterialID,
			o.Thickness,
			o.X,
			o.Y,
			o.Width,
			o.Height,
		}})
	}

	next := map[string]int{}
	for _, r := range rows {
		next[r.tab]++
		cell, err := excelize.CoordinatesToCellName(1, next[r.tab])
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(r.tab, cell, &r.values); err != nil {
			f.Close()
			return nil, fmt.Errorf("write %s row %d: %w", r.tab, next[r.tab], err)
		}
	}

	return f, nil
}

type reportRow struct {
	tab    string
	values []interface{}
}

// WriteReport writes the report workbook to w.
func WriteReport(w io.Writer, layout model.CutLayoutResult, kerf float64) error {
	f, err := BuildReport(layout, kerf)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ExportReport saves the report workbook to path.
func ExportReport(path string, layout model.CutLayoutResult, kerf float64) error {
	f, err := BuildReport(layout, kerf)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report %s: %w", path, err)
	}
	return nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

// Package engine lays normalized panel pieces out on stock sheets.
package engine

import (
	"sort"

	"github.com/piwi3910/PanelCut/internal/model"
	"github.com/piwi3910/PanelCut/internal/monitoring"
)

// Engine runs the shelf-packing layout.
type Engine struct {
	Settings model.LayoutSettings
}

func New(settings model.LayoutSettings) *Engine {
	return &Engine{Settings: settings.Sanitized()}
}

// Layout normalizes raw items and lays them out. See LayoutPieces.
func (e *Engine) Layout(items []model.RawItem) model.CutLayoutResult {
	return e.LayoutPieces(NormalizeItems(items, e.Settings.DefaultThickness))
}

// LayoutPieces groups pieces by material and thickness and packs every group
// onto its own sequence of sheets. Sheet indices restart at 0 per group;
// GroupIndex tells the sequences apart. Pieces that do not fit on an empty
// sheet are reported in Unplaced.
func (e *Engine) LayoutPieces(pieces []model.CutPiece) model.CutLayoutResult {
	result := model.CutLayoutResult{}

	for gi, g := range GroupPieces(pieces, e.Settings.DefaultMaterial) {
		sheets, unplaced := e.layoutGroup(gi, g)
		result.Sheets = append(result.Sheets, sheets...)
		result.Unplaced = append(result.Unplaced, unplaced...)
	}
	return result
}

// Layout is a convenience wrapper running a fresh Engine.
func Layout(items []model.RawItem, settings model.LayoutSettings) model.CutLayoutResult {
	return New(settings).Layout(items)
}

// sheetState is the sheet currently being filled for a group.
type sheetState struct {
	result model.SheetResult
	packer *shelfPacker
}

func (e *Engine) newSheet(groupIndex, sheetIndex int, def model.SheetDefinition) *sheetState {
	return &sheetState{
		result: model.SheetResult{
			Sheet:      def,
			GroupIndex: groupIndex,
			SheetIndex: sheetIndex,
		},
		packer: newShelfPacker(def.Width, def.Height, e.Settings.KerfWidth),
	}
}

func (e *Engine) layoutGroup(groupIndex int, g PieceGroup) ([]model.SheetResult, []model.CutPiece) {
	if len(g.Pieces) == 0 {
		return nil, nil
	}

	// Sort by area descending (largest first = less fragmentation)
	sorted := make([]model.CutPiece, len(g.Pieces))
	copy(sorted, g.Pieces)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Area() > sorted[j].Area()
	})

	def := model.SheetDefinition{
		Width:        e.Settings.SheetWidth,
		Height:       e.Settings.SheetHeight,
		Thickness:    g.Key.Thickness,
		MaterialID:   sorted[0].MaterialID,
		MaterialName: sorted[0].MaterialName,
	}

	var sheets []model.SheetResult
	var unplaced []model.CutPiece
	current := e.newSheet(groupIndex, 0, def)

	for _, piece := range sorted {
		if e.place(current, piece) {
			continue
		}
		if len(current.result.Placements) == 0 {
			// Already on an empty sheet: the piece can never fit.
			monitoring.Logf("layout: dropping %s (box %s) %.1fx%.1fmm: larger than %.1fx%.1fmm sheet",
				piece.PartName, piece.BoxID, piece.Width, piece.Height, def.Width, def.Height)
			unplaced = append(unplaced, piece)
			continue
		}

		sheets = append(sheets, current.result)
		current = e.newSheet(groupIndex, current.result.SheetIndex+1, def)
		if !e.place(current, piece) {
			monitoring.Logf("layout: dropping %s (box %s) %.1fx%.1fmm: does not fit a fresh sheet",
				piece.PartName, piece.BoxID, piece.Width, piece.Height)
			unplaced = append(unplaced, piece)
		}
	}

	if len(current.result.Placements) > 0 {
		sheets = append(sheets, current.result)
	}
	return sheets, unplaced
}

// place tries the piece in its own orientation, then rotated when allowed.
func (e *Engine) place(s *sheetState, piece model.CutPiece) bool {
	if ok, x, y := s.packer.insert(piece.Width, piece.Height); ok {
		s.add(piece, x, y, piece.Width, piece.Height, 0)
		return true
	}
	if piece.CanRotate() {
		if ok, x, y := s.packer.insert(piece.Height, piece.Width); ok {
			s.add(piece, x, y, piece.Height, piece.Width, 90)
			return true
		}
	}
	return false
}

func (s *sheetState) add(piece model.CutPiece, x, y, w, h float64, rotation int) {
	s.result.Placements = append(s.result.Placements, model.CutPlacement{
		X:          x,
		Y:          y,
		Width:      w,
		Height:     h,
		Rotation:   rotation,
		SheetIndex: s.result.SheetIndex,
		PieceID:    piece.ID,
		BoxID:      piece.BoxID,
		PartName:   piece.PartName,
		MaterialID: piece.MaterialID,
	})
}

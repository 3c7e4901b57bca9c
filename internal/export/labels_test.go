package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PanelCut/internal/model"
)

func buildTestLayout() model.CutLayoutResult {
	return model.CutLayoutResult{
		Sheets: []model.SheetResult{
			{
				Sheet: model.SheetDefinition{Width: 2750, Height: 1830, Thickness: 19, MaterialID: "oak"},
				Placements: []model.CutPlacement{
					{X: 0, Y: 0, Width: 600, Height: 400, PieceID: "a1", BoxID: "cab1", PartName: "Side Panel", MaterialID: "oak"},
					{X: 603, Y: 0, Width: 300, Height: 500, Rotation: 90, PieceID: "b2", BoxID: "cab1", PartName: "Top", MaterialID: "oak"},
				},
			},
			{
				Sheet:      model.SheetDefinition{Width: 2750, Height: 1830, Thickness: 8, MaterialID: "mdf"},
				GroupIndex: 1,
				Placements: []model.CutPlacement{
					{X: 0, Y: 0, Width: 800, Height: 500, PieceID: "c3", BoxID: "cab2", PartName: "Back Panel", MaterialID: "mdf"},
				},
			},
		},
		Unplaced: []model.CutPiece{
			{ID: "d4", Width: 3000, Height: 2000, Thickness: 19, Quantity: 1, BoxID: "cab3", PartName: "Tabletop", MaterialID: "oak"},
		},
	}
}

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestLayout()); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	if err := ExportLabels(path, model.CutLayoutResult{}); err == nil {
		t.Fatal("expected error for empty layout, got nil")
	}
}

func TestExportLabels_NoPlacements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no_placements.pdf")

	layout := model.CutLayoutResult{
		Sheets: []model.SheetResult{{Sheet: model.SheetDefinition{Width: 1000, Height: 500}}},
	}
	if err := ExportLabels(path, layout); err == nil {
		t.Fatal("expected error for layout with no placements, got nil")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(buildTestLayout())

	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}

	first := labels[0]
	if first.PartName != "Side Panel" || first.BoxID != "cab1" || first.PieceID != "a1" {
		t.Errorf("unexpected identity: %+v", first)
	}
	if first.Width != 600 || first.Height != 400 || first.Thickness != 19 {
		t.Errorf("wrong dimensions: %+v", first)
	}
	if first.Rotated {
		t.Error("expected first label not rotated")
	}

	if !labels[1].Rotated {
		t.Error("expected second label to be rotated")
	}
	if labels[1].X != 603 {
		t.Errorf("expected x 603, got %v", labels[1].X)
	}

	third := labels[2]
	if third.Group != 1 || third.SheetIndex != 0 || third.Thickness != 8 || third.MaterialID != "mdf" {
		t.Errorf("unexpected sheet attribution: %+v", third)
	}
}

func TestExportLabels_ManyParts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many_labels.pdf")

	// 35 placements span two label pages; copies share a piece ID
	placements := make([]model.CutPlacement, 35)
	for i := range placements {
		placements[i] = model.CutPlacement{
			X: float64(i * 110), Y: 10,
			Width: 100, Height: 50,
			PieceID:  "same",
			PartName: fmt.Sprintf("A very long part name that needs truncating %d", i),
		}
	}

	layout := model.CutLayoutResult{
		Sheets: []model.SheetResult{{
			Sheet:      model.SheetDefinition{Width: 5000, Height: 3000, Thickness: 19},
			Placements: placements,
		}},
	}

	if err := ExportLabels(path, layout); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
}

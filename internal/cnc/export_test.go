package cnc

import (
	"strings"
	"testing"

	"github.com/piwi3910/PanelCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDrillOperations_CornerOrder(t *testing.T) {
	ops := BuildDrillOperations([]model.CutPlacement{
		{X: 10, Y: 20, Width: 600, Height: 400},
	})

	require.Len(t, ops, 4)
	want := [][2]float64{{35, 45}, {585, 45}, {585, 395}, {35, 395}}
	for i, op := range ops {
		assert.Equal(t, want[i][0], op.X, "op %d x", i)
		assert.Equal(t, want[i][1], op.Y, "op %d y", i)
		assert.Equal(t, 0.0, op.Z)
		assert.Equal(t, 5.0, op.Diameter)
		assert.Equal(t, 10.0, op.Depth)
		assert.Equal(t, model.DrillVertical, op.Type)
	}
}

func TestBuildDrillOperations_PlacementOrder(t *testing.T) {
	ops := BuildDrillOperations([]model.CutPlacement{
		{X: 500, Y: 0, Width: 100, Height: 100},
		{X: 0, Y: 0, Width: 100, Height: 100},
	})
	require.Len(t, ops, 8)
	assert.Equal(t, 525.0, ops[0].X)
	assert.Equal(t, 25.0, ops[4].X)

	assert.Empty(t, BuildDrillOperations(nil))
}

func TestBuildLayoutDrillOperations(t *testing.T) {
	layout := model.CutLayoutResult{Sheets: []model.SheetResult{
		{Placements: []model.CutPlacement{{Width: 100, Height: 100}}},
		{Placements: []model.CutPlacement{{Width: 100, Height: 100}, {X: 200, Width: 100, Height: 100}}},
	}}
	assert.Len(t, BuildLayoutDrillOperations(layout), 12)
}

func TestExport_UsesFirstSheetAsPanel(t *testing.T) {
	layout := newTestLayout()
	layout.Sheets = append(layout.Sheets, model.SheetResult{
		Sheet:      model.SheetDefinition{Width: 1000, Height: 800, Thickness: 8},
		Placements: []model.CutPlacement{{Width: 200, Height: 200, PartName: "Back"}},
	})

	docs := Export(layout, 3)

	assert.Equal(t, model.CncPanel{Width: 2750, Height: 1830, Thickness: 19, MaterialID: "oak"}, docs.Panel)
	assert.Len(t, docs.Drills, 4, "holes come from the representative sheet only")
	assert.True(t, strings.HasPrefix(docs.CuttingPath, CuttingPathHeader+"\n"))
	assert.Contains(t, docs.CuttingPath, "; PART Back BOX")
	assert.Contains(t, docs.DrillingPattern, "\tLPX=2750.00\n")
	assert.Equal(t, 4, strings.Count(docs.DrillingPattern, "BEGIN MACRO"))
	assert.Contains(t, docs.DrillingPattern, "PARAM,NAME=Z,VALUE=9.50")
}

func TestExport_EmptyLayoutFallsBackToDefaults(t *testing.T) {
	docs := Export(model.CutLayoutResult{}, 3)

	assert.Equal(t, DefaultPanel(), docs.Panel)
	assert.Equal(t, CuttingPathHeader+"\n", docs.CuttingPath)
	assert.Equal(t, "BEGIN MAINDATA\n\tLPX=2750.00\n\tLPY=1830.00\n\tLPZ=19.00\nEND MAINDATA\n", docs.DrillingPattern)
	assert.Empty(t, docs.Drills)
}

func TestExportSheets(t *testing.T) {
	layout := newTestLayout()
	layout.Sheets = append(layout.Sheets, model.SheetResult{
		Sheet:      model.SheetDefinition{Width: 1000, Height: 800, Thickness: 8},
		Placements: []model.CutPlacement{{Width: 200, Height: 200}},
	})

	docs := ExportSheets(layout)
	require.Len(t, docs, 2)
	assert.Contains(t, docs[0], "LPX=2750.00")
	assert.Contains(t, docs[1], "LPX=1000.00")
	assert.Contains(t, docs[1], "PARAM,NAME=Z,VALUE=4.00")
}

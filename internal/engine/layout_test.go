package engine

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/piwi3910/PanelCut/internal/model"
	"github.com/piwi3910/PanelCut/internal/monitoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings(w, h, kerf float64) model.LayoutSettings {
	s := model.DefaultSettings()
	s.SheetWidth = w
	s.SheetHeight = h
	s.KerfWidth = kerf
	return s
}

func item(name string, w, h float64, qty int) model.RawItem {
	return model.RawItem{
		BoxID:      "box1",
		Name:       name,
		Dimensions: []float64{w, h, 19},
		Thickness:  19,
		Quantity:   qty,
		MaterialID: "oak",
	}
}

func muteLog(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	original := monitoring.Logf
	monitoring.SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	t.Cleanup(func() { monitoring.Logf = original })
	return &lines
}

func assertWithinSheets(t *testing.T, result model.CutLayoutResult) {
	t.Helper()
	for _, sheet := range result.Sheets {
		for i, p := range sheet.Placements {
			assert.LessOrEqual(t, p.X+p.Width, sheet.Sheet.Width, "placement %d (%s) exceeds sheet width", i, p.PartName)
			assert.LessOrEqual(t, p.Y+p.Height, sheet.Sheet.Height, "placement %d (%s) exceeds sheet height", i, p.PartName)
			assert.GreaterOrEqual(t, p.X, 0.0)
			assert.GreaterOrEqual(t, p.Y, 0.0)
			assert.Equal(t, sheet.SheetIndex, p.SheetIndex)
		}
	}
}

func assertNoOverlap(t *testing.T, result model.CutLayoutResult, kerf float64) {
	t.Helper()
	for _, sheet := range result.Sheets {
		ps := sheet.Placements
		for i := 0; i < len(ps); i++ {
			for j := i + 1; j < len(ps); j++ {
				a, b := ps[i], ps[j]
				separated := a.X+a.Width+kerf <= b.X+1e-9 || b.X+b.Width+kerf <= a.X+1e-9 ||
					a.Y+a.Height+kerf <= b.Y+1e-9 || b.Y+b.Height+kerf <= a.Y+1e-9
				assert.True(t, separated, "placements %d and %d overlap on sheet %d", i, j, sheet.SheetIndex)
			}
		}
	}
}

func TestLayout_SinglePieceAtOrigin(t *testing.T) {
	result := Layout([]model.RawItem{item("Side", 600, 400, 1)}, testSettings(2750, 1830, 3))

	require.Len(t, result.Sheets, 1)
	require.Len(t, result.Sheets[0].Placements, 1)
	assert.Empty(t, result.Unplaced)

	p := result.Sheets[0].Placements[0]
	assert.Equal(t, 0.0, p.X)
	assert.Equal(t, 0.0, p.Y)
	assert.Equal(t, 0, p.Rotation)
	assert.Equal(t, 600.0, p.Width)
	assert.Equal(t, 400.0, p.Height)
	assert.Equal(t, "Side", p.PartName)
	assert.Equal(t, "box1", p.BoxID)

	sheet := result.Sheets[0].Sheet
	assert.Equal(t, 2750.0, sheet.Width)
	assert.Equal(t, 1830.0, sheet.Height)
	assert.Equal(t, 19.0, sheet.Thickness)
	assert.Equal(t, "oak", sheet.MaterialID)
}

func TestLayout_KerfBetweenPiecesInRow(t *testing.T) {
	result := Layout([]model.RawItem{item("Shelf", 600, 400, 2)}, testSettings(2750, 1830, 3))

	require.Len(t, result.Sheets, 1)
	ps := result.Sheets[0].Placements
	require.Len(t, ps, 2)
	assert.Equal(t, 0.0, ps[0].X)
	assert.Equal(t, 603.0, ps[1].X, "second piece starts one kerf after the first")
	assert.Equal(t, 0.0, ps[1].Y)
}

func TestLayout_NewRowAddsKerf(t *testing.T) {
	it := item("Door", 600, 400, 2)
	it.Grain = model.GrainLength
	result := Layout([]model.RawItem{it}, testSettings(1000, 1000, 3))

	require.Len(t, result.Sheets, 1)
	ps := result.Sheets[0].Placements
	require.Len(t, ps, 2)
	assert.Equal(t, 0.0, ps[1].X)
	assert.Equal(t, 403.0, ps[1].Y, "new row starts one kerf below the previous row")
	assert.Equal(t, 0, ps[1].Rotation)
}

func TestLayout_RowHeightGrowsWithTallestPiece(t *testing.T) {
	items := []model.RawItem{
		{Name: "Tall", Dimensions: []float64{300, 250}, Quantity: 1, Grain: model.GrainLength},
		{Name: "Short", Dimensions: []float64{300, 100}, Quantity: 1, Grain: model.GrainLength},
		{Name: "Next", Dimensions: []float64{300, 100}, Quantity: 1, Grain: model.GrainLength},
	}
	result := Layout(items, testSettings(700, 1000, 0))

	require.Len(t, result.Sheets, 1)
	ps := result.Sheets[0].Placements
	require.Len(t, ps, 3)
	assert.Equal(t, "Tall", ps[0].PartName)
	assert.Equal(t, 300.0, ps[1].X)
	assert.Equal(t, 0.0, ps[2].X)
	assert.Equal(t, 250.0, ps[2].Y)
}

func TestLayout_RotatesWhenOnlyRotatedFits(t *testing.T) {
	result := Layout([]model.RawItem{item("Long", 800, 400, 1)}, testSettings(500, 1000, 0))

	require.Empty(t, result.Unplaced)
	require.Len(t, result.Sheets, 1)
	p := result.Sheets[0].Placements[0]
	assert.Equal(t, 90, p.Rotation)
	assert.Equal(t, 400.0, p.Width)
	assert.Equal(t, 800.0, p.Height)
}

func TestLayout_GrainPreventsRotation(t *testing.T) {
	_ = muteLog(t)
	it := item("Long", 800, 400, 1)
	it.Grain = model.GrainWidth
	result := Layout([]model.RawItem{it}, testSettings(500, 1000, 0))

	assert.Empty(t, result.Sheets)
	require.Len(t, result.Unplaced, 1)
	assert.Equal(t, "Long", result.Unplaced[0].PartName)
}

func TestLayout_GrainPiecesNeverRotated(t *testing.T) {
	_ = muteLog(t)
	var items []model.RawItem
	for i := 0; i < 12; i++ {
		it := item(fmt.Sprintf("P%d", i), float64(300+i*40), float64(200+i*15), 2)
		if i%2 == 0 {
			it.Grain = model.GrainLength
		}
		items = append(items, it)
	}
	pieces := NormalizeItems(items, 19)
	grain := map[string]model.Grain{}
	for _, p := range pieces {
		grain[p.ID] = p.Grain
	}

	result := New(testSettings(1200, 900, 3)).LayoutPieces(pieces)
	for _, sheet := range result.Sheets {
		for _, p := range sheet.Placements {
			if grain[p.PieceID] != model.GrainNone {
				assert.Equal(t, 0, p.Rotation, "grain piece %s was rotated", p.PartName)
			}
		}
	}
}

func TestLayout_OverflowStartsNewSheet(t *testing.T) {
	result := Layout([]model.RawItem{item("Full", 1000, 500, 3)}, testSettings(1000, 500, 0))

	require.Len(t, result.Sheets, 3)
	for i, sheet := range result.Sheets {
		assert.Equal(t, i, sheet.SheetIndex)
		assert.Equal(t, 0, sheet.GroupIndex)
		require.Len(t, sheet.Placements, 1)
		assert.Equal(t, i, sheet.Placements[0].SheetIndex)
	}
	assert.Empty(t, result.Unplaced)
}

func TestLayout_OversizePieceDropped(t *testing.T) {
	logs := muteLog(t)
	items := []model.RawItem{
		item("Huge", 3000, 2000, 1),
		item("Normal", 600, 400, 1),
	}
	result := Layout(items, testSettings(2750, 1830, 3))

	require.Len(t, result.Unplaced, 1)
	assert.Equal(t, "Huge", result.Unplaced[0].PartName)
	require.Len(t, result.Sheets, 1)
	assert.Equal(t, 0, result.Sheets[0].SheetIndex, "dropping a piece must not consume a sheet index")
	for _, p := range result.Sheets[0].Placements {
		assert.NotEqual(t, "Huge", p.PartName)
	}
	require.Len(t, *logs, 1)
	assert.Contains(t, (*logs)[0], "Huge")
}

func TestLayout_GroupsByThickness(t *testing.T) {
	thin := item("Back", 600, 400, 1)
	thin.Thickness = 8
	thick := item("Side", 600, 400, 1)

	result := Layout([]model.RawItem{thick, thin}, testSettings(2750, 1830, 3))

	require.Len(t, result.Sheets, 2)
	assert.Equal(t, 19.0, result.Sheets[0].Sheet.Thickness)
	assert.Equal(t, 8.0, result.Sheets[1].Sheet.Thickness)
	assert.Equal(t, 0, result.Sheets[0].SheetIndex)
	assert.Equal(t, 0, result.Sheets[1].SheetIndex, "sheet numbering restarts per group")
	assert.NotEqual(t, result.Sheets[0].GroupIndex, result.Sheets[1].GroupIndex)
	assert.Equal(t, "Side", result.Sheets[0].Placements[0].PartName)
	assert.Equal(t, "Back", result.Sheets[1].Placements[0].PartName)
}

func TestLayout_SameMaterialAndThicknessShareSheet(t *testing.T) {
	a := item("A", 600, 400, 1)
	b := item("B", 500, 300, 1)
	b.BoxID = "box2"

	result := Layout([]model.RawItem{a, b}, testSettings(2750, 1830, 3))

	require.Len(t, result.Sheets, 1)
	assert.Len(t, result.Sheets[0].Placements, 2)
}

func TestLayout_MissingMaterialUsesDefaultGroup(t *testing.T) {
	a := item("A", 600, 400, 1)
	a.MaterialID = ""
	b := item("B", 600, 400, 1)
	b.MaterialID = "material"

	result := Layout([]model.RawItem{a, b}, testSettings(2750, 1830, 3))
	require.Len(t, result.Sheets, 1)
	assert.Len(t, result.Sheets[0].Placements, 2)
}

func TestLayout_LargerAreaPlacedFirst(t *testing.T) {
	items := []model.RawItem{
		item("Small", 200, 100, 1),
		item("Medium", 400, 300, 1),
		item("Large", 800, 600, 1),
	}
	result := Layout(items, testSettings(2750, 1830, 3))

	require.Len(t, result.Sheets, 1)
	ps := result.Sheets[0].Placements
	require.Len(t, ps, 3)
	assert.Equal(t, "Large", ps[0].PartName)
	assert.Equal(t, "Medium", ps[1].PartName)
	assert.Equal(t, "Small", ps[2].PartName)
	for i := 1; i < len(ps); i++ {
		assert.GreaterOrEqual(t, ps[i-1].Width*ps[i-1].Height, ps[i].Width*ps[i].Height)
	}
}

func TestLayout_EqualAreaKeepsInputOrder(t *testing.T) {
	items := []model.RawItem{
		item("First", 400, 300, 1),
		item("Second", 600, 200, 1),
	}
	result := Layout(items, testSettings(2750, 1830, 3))

	ps := result.Sheets[0].Placements
	assert.Equal(t, "First", ps[0].PartName)
	assert.Equal(t, "Second", ps[1].PartName)
}

func TestLayout_EmptyInput(t *testing.T) {
	result := Layout(nil, model.DefaultSettings())
	assert.Empty(t, result.Sheets)
	assert.Empty(t, result.Unplaced)
}

func TestLayout_RandomInputsStayInBoundsWithoutOverlap(t *testing.T) {
	_ = muteLog(t)
	rng := rand.New(rand.NewSource(42))
	var items []model.RawItem
	for i := 0; i < 60; i++ {
		it := model.RawItem{
			BoxID:      fmt.Sprintf("box%d", i%4),
			Name:       fmt.Sprintf("P%d", i),
			Dimensions: []float64{50 + rng.Float64()*1500, 50 + rng.Float64()*900, 19},
			Thickness:  []float64{16, 19}[i%2],
			Quantity:   1 + rng.Intn(3),
			MaterialID: []string{"oak", "mdf", ""}[i%3],
		}
		if i%5 == 0 {
			it.Grain = model.GrainLength
		}
		items = append(items, it)
	}

	kerf := 3.2
	result := Layout(items, testSettings(2750, 1830, kerf))

	assertWithinSheets(t, result)
	assertNoOverlap(t, result, kerf)

	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	assert.Equal(t, total, result.PlacementCount()+len(result.Unplaced), "every piece is either placed or reported")
}

func TestLayout_Deterministic(t *testing.T) {
	pieces := NormalizeItems([]model.RawItem{
		item("A", 700, 500, 3),
		item("B", 900, 300, 2),
		item("C", 1200, 800, 1),
	}, 19)

	eng := New(testSettings(2000, 1000, 3))
	first := eng.LayoutPieces(pieces)
	second := eng.LayoutPieces(pieces)
	assert.Equal(t, first, second)
}

func TestNew_SanitizesSettings(t *testing.T) {
	eng := New(model.LayoutSettings{SheetWidth: 0, SheetHeight: -5, KerfWidth: -1})
	assert.Equal(t, model.DefaultSheetWidth, eng.Settings.SheetWidth)
	assert.Equal(t, model.DefaultSheetHeight, eng.Settings.SheetHeight)
	assert.Equal(t, 0.0, eng.Settings.KerfWidth)
}

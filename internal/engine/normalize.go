package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/PanelCut/internal/model"
)

// minDimension is the smallest length any piece dimension is clamped to.
const minDimension = 1.0

// NormalizeItem turns a raw design item into unit-quantity 2D pieces.
// The two largest physical dimensions form the cutting face; the explicit
// thickness is used instead of the smallest dimension. A quantity of N
// yields N identical pieces; anything below 1 still yields one.
func NormalizeItem(item model.RawItem, defaultThickness float64) []model.CutPiece {
	dims := make([]float64, 0, 3)
	for _, d := range item.Dimensions {
		dims = append(dims, clampDimension(d))
	}
	for len(dims) < 2 {
		dims = append(dims, minDimension)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(dims)))

	thickness := item.Thickness
	if !(thickness > 0) || math.IsInf(thickness, 0) {
		thickness = defaultThickness
	}
	thickness = clampDimension(thickness)

	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}

	piece := model.CutPiece{
		ID:           model.NewPieceID(),
		Width:        dims[0],
		Height:       dims[1],
		Thickness:    thickness,
		Quantity:     1,
		BoxID:        item.BoxID,
		PartName:     item.Name,
		MaterialID:   item.MaterialID,
		MaterialName: item.MaterialName,
		Grain:        item.Grain,
	}

	pieces := make([]model.CutPiece, qty)
	for i := range pieces {
		pieces[i] = piece
	}
	return pieces
}

// NormalizeItems normalizes every item in order.
func NormalizeItems(items []model.RawItem, defaultThickness float64) []model.CutPiece {
	var pieces []model.CutPiece
	for _, item := range items {
		pieces = append(pieces, NormalizeItem(item, defaultThickness)...)
	}
	return pieces
}

func clampDimension(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < minDimension {
		return minDimension
	}
	return v
}

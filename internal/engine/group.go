package engine

import (
	"fmt"

	"github.com/piwi3910/PanelCut/internal/model"
)

// GroupKey identifies pieces that may share a sheet.
type GroupKey struct {
	MaterialID string
	Thickness  float64
}

func (k GroupKey) String() string {
	return fmt.Sprintf("%s/%.1fmm", k.MaterialID, k.Thickness)
}

// PieceGroup holds the pieces of a single (material, thickness) bucket.
type PieceGroup struct {
	Key    GroupKey
	Pieces []model.CutPiece
}

// GroupPieces buckets pieces by material id and thickness. Pieces without a
// material id fall into defaultMaterial. Groups come back in order of first
// appearance so repeated runs over the same input lay out identically.
func GroupPieces(pieces []model.CutPiece, defaultMaterial string) []PieceGroup {
	if defaultMaterial == "" {
		defaultMaterial = model.DefaultMaterialID
	}

	var groups []PieceGroup
	index := make(map[GroupKey]int)

	for _, p := range pieces {
		mat := p.MaterialID
		if mat == "" {
			mat = defaultMaterial
		}
		key := GroupKey{MaterialID: mat, Thickness: p.Thickness}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, PieceGroup{Key: key})
		}
		groups[i].Pieces = append(groups[i].Pieces, p)
	}
	return groups
}

package engine

// shelfPacker fills one sheet row by row, left to right.
// Kerf is only reserved between pieces, never along the sheet edges.
type shelfPacker struct {
	width, height float64
	kerf          float64

	cursorX   float64
	cursorY   float64
	rowHeight float64
}

func newShelfPacker(width, height, kerf float64) *shelfPacker {
	return &shelfPacker{
		width:  width,
		height: height,
		kerf:   kerf,
	}
}

// insert tries to place a w x h rectangle, first at the end of the current
// row, then at the start of a new row. Returns success and position.
func (sp *shelfPacker) insert(w, h float64) (bool, float64, float64) {
	if ok, x, y := sp.fitSameRow(w, h); ok {
		sp.cursorX = x + w
		if h > sp.rowHeight {
			sp.rowHeight = h
		}
		return true, x, y
	}
	if ok, y := sp.fitNewRow(w, h); ok {
		sp.cursorY = y
		sp.cursorX = w
		sp.rowHeight = h
		return true, 0, y
	}
	return false, 0, 0
}

func (sp *shelfPacker) fitSameRow(w, h float64) (bool, float64, float64) {
	x := sp.cursorX
	if sp.cursorX > 0 {
		x += sp.kerf
	}
	if x+w <= sp.width && sp.cursorY+h <= sp.height {
		return true, x, sp.cursorY
	}
	return false, 0, 0
}

func (sp *shelfPacker) fitNewRow(w, h float64) (bool, float64) {
	y := sp.cursorY + sp.rowHeight
	if sp.rowHeight > 0 {
		y += sp.kerf
	}
	if w <= sp.width && y+h <= sp.height {
		return true, y
	}
	return false, 0
}

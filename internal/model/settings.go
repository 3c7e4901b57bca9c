package model

import "math"

// Default stock and tooling values used when nothing else is configured.
const (
	DefaultSheetWidth     = 2750.0
	DefaultSheetHeight    = 1830.0
	DefaultSheetThickness = 19.0
	DefaultKerfWidth      = 3.0
	DefaultMaterialID     = "material"
)

// LayoutSettings holds the sheet configuration for a layout run.
type LayoutSettings struct {
	SheetWidth       float64 `json:"sheet_width" toml:"sheet_width"`             // mm
	SheetHeight      float64 `json:"sheet_height" toml:"sheet_height"`           // mm
	KerfWidth        float64 `json:"kerf_width" toml:"kerf_width"`               // Blade width in mm
	DefaultThickness float64 `json:"default_thickness" toml:"default_thickness"` // Used when an item has none
	DefaultMaterial  string  `json:"default_material" toml:"default_material"`   // Group key for items without material id
}

func DefaultSettings() LayoutSettings {
	return LayoutSettings{
		SheetWidth:       DefaultSheetWidth,
		SheetHeight:      DefaultSheetHeight,
		KerfWidth:        DefaultKerfWidth,
		DefaultThickness: DefaultSheetThickness,
		DefaultMaterial:  DefaultMaterialID,
	}
}

// Sanitized returns a copy with unusable values replaced: non-positive or
// non-finite sheet sizes and thickness fall back to defaults, a negative or
// non-finite kerf becomes zero.
func (s LayoutSettings) Sanitized() LayoutSettings {
	if !positive(s.SheetWidth) {
		s.SheetWidth = DefaultSheetWidth
	}
	if !positive(s.SheetHeight) {
		s.SheetHeight = DefaultSheetHeight
	}
	if !positive(s.DefaultThickness) {
		s.DefaultThickness = DefaultSheetThickness
	}
	if math.IsNaN(s.KerfWidth) || math.IsInf(s.KerfWidth, 0) || s.KerfWidth < 0 {
		s.KerfWidth = 0
	}
	if s.DefaultMaterial == "" {
		s.DefaultMaterial = DefaultMaterialID
	}
	return s
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

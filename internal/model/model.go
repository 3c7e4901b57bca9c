package model

import (
	"strings"

	"github.com/google/uuid"
)

// Grain represents the grain direction constraint for a piece.
type Grain int

const (
	GrainNone   Grain = iota // No grain constraint, can rotate freely
	GrainLength              // Grain runs along the piece length (width axis)
	GrainWidth               // Grain runs across the piece
)

func (g Grain) String() string {
	switch g {
	case GrainLength:
		return "length"
	case GrainWidth:
		return "width"
	default:
		return "none"
	}
}

// ParseGrain converts a grain direction string to a Grain value.
// It returns the grain and whether the string was recognized.
func ParseGrain(s string) (Grain, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "length", "l", "along":
		return GrainLength, true
	case "width", "w", "across":
		return GrainWidth, true
	case "", "none", "n", "-":
		return GrainNone, true
	default:
		return GrainNone, false
	}
}

// NewPieceID returns a short random identifier shared by all copies of one item.
func NewPieceID() string {
	return uuid.New().String()[:8]
}

// RawItem is one line of a furniture design's cut list before normalization.
// Dimensions are the physical measurements in no particular order.
type RawItem struct {
	BoxID        string    `json:"box_id"`
	Name         string    `json:"name"`
	Dimensions   []float64 `json:"dimensions"`
	Thickness    float64   `json:"thickness"` // 0 means absent
	Quantity     int       `json:"quantity"`
	MaterialID   string    `json:"material_id,omitempty"`
	MaterialName string    `json:"material_name,omitempty"`
	Grain        Grain     `json:"grain"`
}

// SheetDefinition represents available stock.
type SheetDefinition struct {
	Width        float64 `json:"width"`     // mm
	Height       float64 `json:"height"`    // mm
	Thickness    float64 `json:"thickness"` // mm
	MaterialID   string  `json:"material_id,omitempty"`
	MaterialName string  `json:"material_name,omitempty"`
}

// Area returns the sheet area in square mm.
func (s SheetDefinition) Area() float64 {
	return s.Width * s.Height
}

// CutPiece is a normalized 2D piece to be cut.
type CutPiece struct {
	ID           string  `json:"id"`
	Width        float64 `json:"width"`     // mm, the longer face dimension
	Height       float64 `json:"height"`    // mm
	Thickness    float64 `json:"thickness"` // mm
	Quantity     int     `json:"quantity"`
	BoxID        string  `json:"box_id"`
	PartName     string  `json:"part_name"`
	MaterialID   string  `json:"material_id,omitempty"`
	MaterialName string  `json:"material_name,omitempty"`
	Grain        Grain   `json:"grain"`
}

// Area returns the face area of the piece.
func (p CutPiece) Area() float64 {
	return p.Width * p.Height
}

// CanRotate reports whether turning the piece by 90° yields a different footprint
// that the grain constraint allows.
func (p CutPiece) CanRotate() bool {
	return p.Grain == GrainNone && p.Width != p.Height
}

// CutPlacement represents a single piece placed on a sheet.
type CutPlacement struct {
	X          float64 `json:"x"`        // Position from left edge (mm)
	Y          float64 `json:"y"`        // Position from top edge (mm)
	Width      float64 `json:"width"`    // Placed width after rotation
	Height     float64 `json:"height"`   // Placed height after rotation
	Rotation   int     `json:"rotation"` // 0 or 90 degrees
	SheetIndex int     `json:"sheet_index"`
	PieceID    string  `json:"piece_id"`
	BoxID      string  `json:"box_id"`
	PartName   string  `json:"part_name"`
	MaterialID string  `json:"material_id,omitempty"`
}

// Rotated reports whether the piece was turned by 90°.
func (p CutPlacement) Rotated() bool {
	return p.Rotation == 90
}

// SheetResult represents one stock sheet with its placed pieces, in placement order.
type SheetResult struct {
	Sheet      SheetDefinition `json:"sheet"`
	GroupIndex int             `json:"group_index"`
	SheetIndex int             `json:"sheet_index"` // restarts at 0 in every group
	Placements []CutPlacement  `json:"placements"`
}

// UsedArea returns the total area used by placed pieces.
func (sr SheetResult) UsedArea() float64 {
	var total float64
	for _, p := range sr.Placements {
		total += p.Width * p.Height
	}
	return total
}

// TotalArea returns the stock sheet area.
func (sr SheetResult) TotalArea() float64 {
	return sr.Sheet.Area()
}

// Efficiency returns the usage percentage.
func (sr SheetResult) Efficiency() float64 {
	ta := sr.TotalArea()
	if ta == 0 {
		return 0
	}
	return (sr.UsedArea() / ta) * 100.0
}

// CutLayoutResult holds the full layout across all material groups.
type CutLayoutResult struct {
	Sheets   []SheetResult `json:"sheets"`
	Unplaced []CutPiece    `json:"unplaced,omitempty"`
}

// TotalEfficiency returns overall material usage percentage.
func (lr CutLayoutResult) TotalEfficiency() float64 {
	var usedArea, totalArea float64
	for _, s := range lr.Sheets {
		usedArea += s.UsedArea()
		totalArea += s.TotalArea()
	}
	if totalArea == 0 {
		return 0
	}
	return (usedArea / totalArea) * 100.0
}

// PlacementCount returns the number of placements over all sheets.
func (lr CutLayoutResult) PlacementCount() int {
	n := 0
	for _, s := range lr.Sheets {
		n += len(s.Placements)
	}
	return n
}

// CncPanel is the representative sheet used in machine document headers.
type CncPanel struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Thickness  float64 `json:"thickness"`
	MaterialID string  `json:"material_id,omitempty"`
}

// DrillType is the spindle orientation of a drill operation.
type DrillType string

const (
	DrillVertical   DrillType = "vertical"
	DrillHorizontal DrillType = "horizontal"
)

// Code returns the numeric type code used by drilling machines.
func (t DrillType) Code() int {
	if t == DrillHorizontal {
		return 2
	}
	return 1
}

// CncDrillOperation is a single hole.
type CncDrillOperation struct {
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Z        float64   `json:"z"`
	Diameter float64   `json:"diameter"`
	Depth    float64   `json:"depth"`
	Type     DrillType `json:"type"`
}

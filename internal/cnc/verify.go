package cnc

import (
	"fmt"
	"math"
)

// tolerance absorbs the two-decimal rounding of the document.
const tolerance = 0.011

// Problem is one defect found in a cutting-path document.
type Problem struct {
	Sheet   int // 1-based position in the document
	Part    string
	Message string
}

func (p Problem) String() string {
	if p.Part == "" {
		return fmt.Sprintf("sheet %d: %s", p.Sheet, p.Message)
	}
	return fmt.Sprintf("sheet %d, %s: %s", p.Sheet, p.Part, p.Message)
}

type bounds struct {
	minX, minY, maxX, maxY float64
}

// VerifyCuttingPath checks a parsed document written with the given kerf:
// every contour must be a closed 5-point rectangle with four segments, stay
// on its sheet once the half-kerf shift is removed, and not overlap another
// contour on the same sheet.
func VerifyCuttingPath(doc PathDocument, kerf float64) []Problem {
	var problems []Problem

	if doc.Header != CuttingPathHeader {
		problems = append(problems, Problem{Message: fmt.Sprintf("unexpected header %q", doc.Header)})
	}

	off := kerf / 2
	for si, sheet := range doc.Sheets {
		n := si + 1
		var boxes []bounds
		var names []string

		for _, c := range sheet.Contours {
			if len(c.Points) != 5 {
				problems = append(problems, Problem{Sheet: n, Part: c.Part, Message: fmt.Sprintf("expected 5 points, got %d", len(c.Points))})
				continue
			}
			if c.Points[0] != c.Points[4] {
				problems = append(problems, Problem{Sheet: n, Part: c.Part, Message: "contour is not closed"})
			}
			if c.Segments != 4 {
				problems = append(problems, Problem{Sheet: n, Part: c.Part, Message: fmt.Sprintf("expected 4 segments, got %d", c.Segments)})
			}

			bb := contourBounds(c.Points)
			if bb.minX-off < -tolerance || bb.minY-off < -tolerance ||
				bb.maxX-off > sheet.Width+tolerance || bb.maxY-off > sheet.Height+tolerance {
				problems = append(problems, Problem{Sheet: n, Part: c.Part, Message: "contour leaves the sheet"})
			}

			for i, other := range boxes {
				if overlaps(bb, other) {
					problems = append(problems, Problem{Sheet: n, Part: c.Part, Message: fmt.Sprintf("overlaps %s", names[i])})
				}
			}
			boxes = append(boxes, bb)
			names = append(names, c.Part)
		}
	}

	return problems
}

func contourBounds(pts []Point) bounds {
	b := bounds{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
	for _, p := range pts {
		b.minX = math.Min(b.minX, p.X)
		b.minY = math.Min(b.minY, p.Y)
		b.maxX = math.Max(b.maxX, p.X)
		b.maxY = math.Max(b.maxY, p.Y)
	}
	return b
}

// overlaps returns true if two rectangles overlap (not just touch).
func overlaps(a, b bounds) bool {
	return a.minX < b.maxX-tolerance && a.maxX > b.minX+tolerance &&
		a.minY < b.maxY-tolerance && a.maxY > b.minY+tolerance
}

package cnc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PathSheet is one sheet section of a parsed cutting-path document.
type PathSheet struct {
	Name      string
	Width     float64
	Height    float64
	Thickness float64
	Contours  []Contour
}

// Contour is one part's programmed path.
type Contour struct {
	Part       string
	Box        string
	Points     []Point
	Segments   int
	Operations int
}

// Point is a parsed contour vertex.
type Point struct {
	X, Y float64
}

// PathDocument is a parsed cutting-path document.
type PathDocument struct {
	Header string
	Sheets []PathSheet
}

var fieldRe = regexp.MustCompile(`([A-Z][A-Z0-9]*)=(-?\d+(?:\.\d+)?)`)

// ParseCuttingPath reads a cutting-path document back into sheets and
// contours. Unknown records are skipped; records outside their section are
// reported as errors.
func ParseCuttingPath(doc string) (PathDocument, error) {
	var out PathDocument

	lines := strings.Split(strings.TrimRight(doc, "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return out, fmt.Errorf("empty document")
	}
	out.Header = lines[0]

	for i, line := range lines[1:] {
		lineNum := i + 2
		line = strings.TrimRight(line, "\r")

		switch {
		case strings.HasPrefix(line, sheetNamePrefix):
			out.Sheets = append(out.Sheets, PathSheet{Name: strings.TrimPrefix(line, sheetNamePrefix)})

		case strings.HasPrefix(line, dimensionPrefix):
			sheet, err := currentSheet(&out, lineNum)
			if err != nil {
				return out, err
			}
			f := fields(line)
			sheet.Width, sheet.Height, sheet.Thickness = f["DL"], f["DH"], f["DS"]

		case strings.HasPrefix(line, partPrefix):
			sheet, err := currentSheet(&out, lineNum)
			if err != nil {
				return out, err
			}
			// The part name may be empty, so split before trimming.
			rest := strings.TrimPrefix(line, partPrefix)
			c := Contour{Part: rest}
			if idx := strings.LastIndex(rest, " BOX "); idx >= 0 {
				c.Part, c.Box = rest[:idx], rest[idx+len(" BOX "):]
			} else if strings.HasSuffix(rest, " BOX") {
				c.Part = strings.TrimSuffix(rest, " BOX")
			}
			c.Part, c.Box = strings.TrimSpace(c.Part), strings.TrimSpace(c.Box)
			sheet.Contours = append(sheet.Contours, c)

		case strings.HasPrefix(line, pointPrefix+" "):
			c, err := currentContour(&out, lineNum)
			if err != nil {
				return out, err
			}
			f := fields(line)
			c.Points = append(c.Points, Point{X: f["X"], Y: f["Y"]})

		case strings.HasPrefix(line, segmentPrefix+" "):
			c, err := currentContour(&out, lineNum)
			if err != nil {
				return out, err
			}
			c.Segments++

		case strings.HasPrefix(line, "OP "):
			c, err := currentContour(&out, lineNum)
			if err != nil {
				return out, err
			}
			c.Operations++
		}
	}

	return out, nil
}

func currentSheet(doc *PathDocument, lineNum int) (*PathSheet, error) {
	if len(doc.Sheets) == 0 {
		return nil, fmt.Errorf("line %d: record before any sheet", lineNum)
	}
	return &doc.Sheets[len(doc.Sheets)-1], nil
}

func currentContour(doc *PathDocument, lineNum int) (*Contour, error) {
	sheet, err := currentSheet(doc, lineNum)
	if err != nil {
		return nil, err
	}
	if len(sheet.Contours) == 0 {
		return nil, fmt.Errorf("line %d: contour record before any part", lineNum)
	}
	return &sheet.Contours[len(sheet.Contours)-1], nil
}

func fields(line string) map[string]float64 {
	out := make(map[string]float64)
	for _, m := range fieldRe.FindAllStringSubmatch(line, -1) {
		if v, err := strconv.ParseFloat(m[2], 64); err == nil {
			out[m[1]] = v
		}
	}
	return out
}

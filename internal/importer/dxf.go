package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/PanelCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

type point struct {
	X, Y float64
}

// segment is a line between two points, used for chaining loose LINE
// entities into closed shapes.
type segment struct {
	start point
	end   point
}

// ImportDXF imports panels from a DXF drawing. Each closed shape
// (LWPOLYLINE or chain of connected LINEs) becomes one raw item sized by
// its bounding box. Circles are treated as holes and skipped.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var shapes [][]point
	var segments []segment
	holes := 0

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			var pts []point
			for _, v := range e.Vertices {
				pts = append(pts, point{X: v[0], Y: v[1]})
			}
			if len(pts) >= 3 {
				shapes = append(shapes, pts)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			holes++

		case *entity.Line:
			segments = append(segments, segment{
				start: point{X: e.Start[0], Y: e.Start[1]},
				end:   point{X: e.End[0], Y: e.End[1]},
			})
		}
	}

	shapes = append(shapes, chainSegments(segments, 0.01)...)
	if holes > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d circles (drill holes)", holes))
	}

	if len(shapes) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, shape := range shapes {
		width, height := shapeSize(shape)
		if width < 0.01 || height < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f mm)", width, height))
			continue
		}

		result.Items = append(result.Items, model.RawItem{
			Name:       fmt.Sprintf("DXF Part %d", i+1),
			Dimensions: []float64{width, height},
			Quantity:   1,
		})
	}

	return result
}

func shapeSize(pts []point) (float64, float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return maxX - minX, maxY - minY
}

// chainSegments connects individual segments into closed shapes.
// tolerance is the maximum distance between endpoints to consider them connected.
func chainSegments(segs []segment, tolerance float64) [][]point {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var shapes [][]point

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Open chains are not panels
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			shapes = append(shapes, chain[:len(chain)-1])
		}
	}

	// Largest first for consistent ordering
	sort.SliceStable(shapes, func(i, j int) bool {
		wi, hi := shapeSize(shapes[i])
		wj, hj := shapeSize(shapes[j])
		return wi*hi > wj*hj
	})

	return shapes
}

func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}

// Package importer provides CSV and Excel import functionality for cut lists.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/PanelCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []model.RawItem
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name         int
	Box          int
	Length       int
	Width        int
	Depth        int
	Thickness    int
	Quantity     int
	Material     int
	MaterialName int
	Grain        int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":          {"name", "part", "part name", "label", "description", "desc", "piece", "item"},
	"box":           {"box", "box id", "cabinet", "module", "assembly", "carcass"},
	"length":        {"length", "len", "l", "height", "h"},
	"width":         {"width", "w"},
	"depth":         {"depth", "d"},
	"thickness":     {"thickness", "thick", "thk", "t"},
	"quantity":      {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"material":      {"material", "material id", "mat"},
	"material_name": {"material name", "finish", "decor"},
	"grain":         {"grain", "grain direction", "grain dir", "direction"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (name, box, length, width, depth, thickness, quantity, material,
// grain) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name: -1, Box: -1, Length: -1, Width: -1, Depth: -1,
		Thickness: -1, Quantity: -1, Material: -1, MaterialName: -1, Grain: -1,
	}
	slots := map[string]*int{
		"name":          &mapping.Name,
		"box":           &mapping.Box,
		"length":        &mapping.Length,
		"width":         &mapping.Width,
		"depth":         &mapping.Depth,
		"thickness":     &mapping.Thickness,
		"quantity":      &mapping.Quantity,
		"material":      &mapping.Material,
		"material_name": &mapping.MaterialName,
		"grain":         &mapping.Grain,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if *slots[role] == -1 {
						*slots[role] = i
					}
				}
			}
		}
	}

	// Aliases such as "width" or "part" are also valid data values, so a
	// header must carry text where the length and width numbers would be.
	positional := positionalMapping()
	if !isHeader || anyNumeric(row, mapping.Length, mapping.Width, positional.Length, positional.Width) {
		return positional, false
	}
	return mapping, true
}

// anyNumeric reports whether any of the cells at idxs parses as a number.
func anyNumeric(row []string, idxs ...int) bool {
	for _, idx := range idxs {
		if _, err := strconv.ParseFloat(getCell(row, idx), 64); err == nil {
			return true
		}
	}
	return false
}

func positionalMapping() ColumnMapping {
	return ColumnMapping{
		Name:         0,
		Box:          1,
		Length:       2,
		Width:        3,
		Depth:        4,
		Thickness:    5,
		Quantity:     6,
		Material:     7,
		MaterialName: -1,
		Grain:        8,
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseRequired(row []string, idx int, rowLabel, column string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, column)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, column, s)
	}
	if v <= 0 {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, column)
	}
	return v, ""
}

// parseRow extracts a RawItem from a row using the given column mapping.
// Returns the item, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, itemCount int) (model.RawItem, string, []string) {
	var warnings []string

	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Part %d", itemCount+1)
	}

	length, errMsg := parseRequired(row, mapping.Length, rowLabel, "length")
	if errMsg != "" {
		return model.RawItem{}, errMsg, nil
	}
	width, errMsg := parseRequired(row, mapping.Width, rowLabel, "width")
	if errMsg != "" {
		return model.RawItem{}, errMsg, nil
	}
	dims := []float64{length, width}

	if depthStr := getCell(row, mapping.Depth); depthStr != "" {
		depth, err := strconv.ParseFloat(depthStr, 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: Invalid depth '%s', ignored", rowLabel, depthStr))
		} else {
			dims = append(dims, depth)
		}
	}

	var thickness float64
	if tStr := getCell(row, mapping.Thickness); tStr != "" {
		t, err := strconv.ParseFloat(tStr, 64)
		if err != nil || t <= 0 {
			warnings = append(warnings, fmt.Sprintf("%s: Invalid thickness '%s', using default", rowLabel, tStr))
		} else {
			thickness = t
		}
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		q, err := strconv.Atoi(qtyStr)
		if err != nil {
			return model.RawItem{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
		}
		if q <= 0 {
			return model.RawItem{}, fmt.Sprintf("%s: quantity must be positive", rowLabel), nil
		}
		qty = q
	}

	item := model.RawItem{
		BoxID:        getCell(row, mapping.Box),
		Name:         name,
		Dimensions:   dims,
		Thickness:    thickness,
		Quantity:     qty,
		MaterialID:   getCell(row, mapping.Material),
		MaterialName: getCell(row, mapping.MaterialName),
	}

	if grainStr := getCell(row, mapping.Grain); grainStr != "" {
		grain, ok := model.ParseGrain(grainStr)
		if ok {
			item.Grain = grain
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown grain direction '%s', defaulting to none", rowLabel, grainStr))
		}
	}

	return item, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports cut-list items from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports items from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}
	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	return csvReader.ReadAll()
}

// ImportExcel imports items from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	return importWorkbook(f)
}

// ImportExcelFromReader imports items from an Excel workbook stream.
func ImportExcelFromReader(r io.Reader) ImportResult {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	return importWorkbook(f)
}

func importWorkbook(f *excelize.File) ImportResult {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Excel file has no sheets"}}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read Excel data: %v", err)}}
	}

	if len(rows) == 0 {
		return ImportResult{Errors: []string{"Sheet is empty"}}
	}

	return importFromRows(rows, "Row", nil)
}

// Import dispatches on the file extension: .xlsx/.xlsm go through Excel,
// .dxf through ImportDXF, everything else is read as CSV.
func Import(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	case ".dxf":
		return ImportDXF(path)
	default:
		return ImportCSV(path)
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) > mapping.Length {
		// No recognized header: an unrecognized one still has text where the length goes
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][mapping.Length]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		item, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Items))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Items = append(result.Items, item)
	}

	return result
}

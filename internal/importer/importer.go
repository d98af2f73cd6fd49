// Package importer reads layer sequences from CSV and Excel files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/EndGrain/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Layers   []model.Layer
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Wood  int
	Width int
	Angle int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"wood":  {"wood", "material", "species"},
	"width": {"width", "w", "thickness"},
	"angle": {"angle", "trailing angle", "trailing_angle", "bevel"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := newCSVReader(bytes.NewReader(data), delim)
		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only consider delimiters that produce more than 1 column
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

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

func newCSVReader(r io.Reader, delimiter rune) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // Allow variable field counts
	return reader
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (wood, width, angle) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Wood: -1, Width: -1, Angle: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "wood":
					if mapping.Wood == -1 {
						mapping.Wood = i
					}
				case "width":
					if mapping.Width == -1 {
						mapping.Width = i
					}
				case "angle":
					if mapping.Angle == -1 {
						mapping.Angle = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Wood: 0, Width: 1, Angle: 2}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseWood resolves a palette name or a 1-based palette number.
func parseWood(s string, woods []model.WoodInfo) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(woods) {
			return -1, false
		}
		return n - 1, true
	}
	return model.WoodIndexByName(woods, s)
}

// parseRow extracts a Layer from a row using the given column mapping.
// Returns the layer and any error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, woods []model.WoodInfo) (model.Layer, string) {
	woodStr := getCell(row, mapping.Wood)
	if woodStr == "" {
		return model.Layer{}, fmt.Sprintf("%s: Missing wood value", rowLabel)
	}
	woodIndex, ok := parseWood(woodStr, woods)
	if !ok {
		return model.Layer{}, fmt.Sprintf("%s: Unknown wood '%s'", rowLabel, woodStr)
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.Layer{}, fmt.Sprintf("%s: Missing width value", rowLabel)
	}
	width, err := strconv.ParseFloat(widthStr, 64)
	if err != nil {
		return model.Layer{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr)
	}
	if math.IsNaN(width) || math.IsInf(width, 0) {
		return model.Layer{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr)
	}
	if width <= 0 {
		return model.Layer{}, fmt.Sprintf("%s: Width must be positive", rowLabel)
	}

	angle := 0.0
	if angleStr := getCell(row, mapping.Angle); angleStr != "" {
		angle, err = strconv.ParseFloat(strings.TrimSuffix(angleStr, "°"), 64)
		if err != nil {
			return model.Layer{}, fmt.Sprintf("%s: Invalid angle '%s'", rowLabel, angleStr)
		}
		if math.IsNaN(angle) {
			return model.Layer{}, fmt.Sprintf("%s: Invalid angle '%s'", rowLabel, angleStr)
		}
		if angle < model.MinTrailingAngle || angle > model.MaxTrailingAngle {
			return model.Layer{}, fmt.Sprintf("%s: Angle must be between %g and %g", rowLabel, model.MinTrailingAngle, model.MaxTrailingAngle)
		}
	}

	return model.Layer{WoodIndex: woodIndex, Width: width, TrailingAngle: angle}, ""
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

// ImportCSV imports layers from a CSV file, resolving woods against the
// given palette. Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string, woods []model.WoodInfo) ImportResult {
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
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := newCSVReader(bytes.NewReader(data), delimiter).ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", woods, result.Warnings)
}

// ImportCSVFromReader imports layers from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, woods []model.WoodInfo) ImportResult {
	result := ImportResult{}

	records, err := newCSVReader(reader, delimiter).ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", woods, nil)
}

// ImportExcel imports layers from the first sheet of an Excel workbook.
func ImportExcel(path string, woods []model.WoodInfo) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", woods, nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, woods []model.WoodInfo, initialWarnings []string) ImportResult {
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
		if mapping.Wood == -1 {
			missing = append(missing, "Wood")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 2 {
		// A non-numeric width means an unrecognised header; skip it but keep
		// the positional mapping
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
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
		layer, errMsg := parseRow(row, mapping, rowLabel, woods)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Layers = append(result.Layers, layer)
	}

	return result
}

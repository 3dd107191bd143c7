package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pivolan/gograph"
	"github.com/pivolan/gograph/domain/models"
)

// headerSampleRows is how many leading rows the header analysis reads.
const headerSampleRows = 10

// analyzeHeaders decides whether the first row holds column names. When
// most of its cells look like headers the row is used, cleaned into
// identifiers; otherwise synthetic column_N names are generated and the
// first row counts as data.
func analyzeHeaders(records [][]string) models.HeaderAnalysis {
	analysis := models.HeaderAnalysis{FirstRowIsData: true}
	if len(records) == 0 {
		return analysis
	}
	firstRow := records[0]
	if len(firstRow) == 0 {
		return analysis
	}

	headerLike := 0
	for _, cell := range firstRow {
		if isLikelyHeader(cell) {
			headerLike++
		}
	}
	if float64(headerLike)/float64(len(firstRow)) > 0.5 {
		analysis.FirstRowIsData = false
	}

	headers := make([]string, len(firstRow))
	if analysis.FirstRowIsData {
		for i := range firstRow {
			headers[i] = columnName(i)
		}
		analysis.FirstDataRow = firstRow
	} else {
		seen := map[string]int{}
		for i, cell := range firstRow {
			name := cleanHeaderName(cell, i)
			if n, ok := seen[name]; ok {
				seen[name] = n + 1
				name = fmt.Sprintf("%s_%d", name, n)
			}
			seen[name] = 1
			headers[i] = name
		}
		if len(records) > 1 {
			analysis.FirstDataRow = records[1]
		}
	}
	analysis.Headers = headers
	return analysis
}

// isLikelyHeader reports whether a cell reads as a column name rather
// than data: not a number, not a date, and at least 30% letters.
func isLikelyHeader(cell string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return false
	}
	if isNumericData(cell) || isDateData(cell) {
		return false
	}
	letters := 0
	runes := []rune(cell)
	for _, r := range runes {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return float64(letters)/float64(len(runes)) >= 0.3
}

func isNumericData(cell string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	return err == nil
}

var dateFormats = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

func isDateData(cell string) bool {
	cell = strings.TrimSpace(cell)
	for _, format := range dateFormats {
		if _, err := time.Parse(format, cell); err == nil {
			return true
		}
	}
	return false
}

// cleanHeaderName turns a raw header cell into a safe identifier.
// Unusable cells fall back to the positional column name.
func cleanHeaderName(cell string, i int) string {
	name := gograph.Slug(cell)
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		return columnName(i)
	}
	return name
}

func columnName(i int) string {
	return fmt.Sprintf("column_%d", i+1)
}

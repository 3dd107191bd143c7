package main

import (
	"bytes"
	"crypto/md5"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pivolan/gograph/domain/models"
)

const (
	inferRowLimit   = 50000
	insertBatchSize = 5000
)

// typesWeight orders inferred types from narrow to wide. A column gets
// the widest type seen across the sampled rows.
var typesWeight = map[string]int{
	"":           0,
	"DateTime64": 1,
	"Date":       2,
	"Int64":      3,
	"Float64":    4,
	"String":     5,
}

func detectType(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return "Int64"
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return "Float64"
	}
	if _, err := time.Parse("2006-01-02 15:04:05.999999", value); err == nil {
		return "DateTime64"
	}
	if _, err := time.Parse("2006-01-02 15:04:05", value); err == nil {
		return "DateTime64"
	}
	if _, err := time.Parse("2006-01-02", value); err == nil {
		return "Date"
	}
	return "String"
}

func widerType(current, candidate string) string {
	if typesWeight[candidate] > typesWeight[current] {
		return candidate
	}
	return current
}

func columnType(name string) string {
	switch name {
	case "DateTime64":
		return "Nullable(DateTime64(6))"
	case "", "String":
		return "Nullable(String)"
	default:
		return fmt.Sprintf("Nullable(%s)", name)
	}
}

func getMD5String(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// tableNameFor derives a table name from the first columns plus a hash
// of the file path, so re-uploads of the same file reuse one table.
func tableNameFor(headers []string, filePath string) models.TableName {
	n := len(headers)
	if n > 3 {
		n = 3
	}
	name := strings.Join(headers[:n], "_") + "_" + getMD5String(filePath)[:6]
	return models.TableName(name)
}

func createTableSQL(table models.TableName, headers, types []string) string {
	fields := make([]string, 0, len(headers)+1)
	fields = append(fields, "id UInt64")
	for i, header := range headers {
		fields = append(fields, fmt.Sprintf("%s %s", header, columnType(types[i])))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s) ENGINE = ReplacingMergeTree PRIMARY KEY (id)",
		table, strings.Join(fields, ", "))
}

// inferSchema reads the file once: header analysis on the first rows,
// then type inference over at most inferRowLimit data rows.
func inferSchema(filePath string) (models.HeaderAnalysis, []string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return models.HeaderAnalysis{}, nil, fmt.Errorf("error opening %s: %v", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	sample := [][]string{}
	for len(sample) < headerSampleRows {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.HeaderAnalysis{}, nil, fmt.Errorf("error reading %s: %v", filePath, err)
		}
		sample = append(sample, record)
	}
	if len(sample) == 0 {
		return models.HeaderAnalysis{}, nil, fmt.Errorf("file %s is empty", filePath)
	}

	analysis := analyzeHeaders(sample)
	types := make([]string, len(analysis.Headers))

	update := func(record []string) {
		for i, value := range record {
			if i >= len(types) {
				return
			}
			types[i] = widerType(types[i], detectType(value))
		}
	}

	dataRows := sample
	if !analysis.FirstRowIsData {
		dataRows = sample[1:]
	}
	seen := 0
	for _, record := range dataRows {
		update(record)
		seen++
	}
	for seen < inferRowLimit {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.HeaderAnalysis{}, nil, fmt.Errorf("error reading %s: %v", filePath, err)
		}
		update(record)
		seen++
	}
	return analysis, types, nil
}

func insertBatchSQL(table models.TableName, buf *bytes.Buffer) string {
	return fmt.Sprintf("INSERT INTO %s FORMAT CSV\n%s", table, buf.String())
}

// importCSV creates a table for the file and loads it in batches.
func importCSV(db *gorm.DB, filePath string) (models.TableName, error) {
	analysis, types, err := inferSchema(filePath)
	if err != nil {
		return "", err
	}
	table := tableNameFor(analysis.Headers, filePath)
	if err := db.Exec(createTableSQL(table, analysis.Headers, types)).Error; err != nil {
		return "", fmt.Errorf("error creating table %s: %v", table, err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("error opening %s: %v", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	if !analysis.FirstRowIsData {
		if _, err := reader.Read(); err != nil {
			return "", fmt.Errorf("error skipping header of %s: %v", filePath, err)
		}
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	id := uint64(0)
	batched := 0
	flush := func() error {
		writer.Flush()
		if buf.Len() == 0 {
			return nil
		}
		if err := db.Exec(insertBatchSQL(table, buf)).Error; err != nil {
			return fmt.Errorf("error inserting into %s: %v", table, err)
		}
		buf.Reset()
		batched = 0
		return nil
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("error reading %s: %v", filePath, err)
		}
		row := make([]string, len(analysis.Headers)+1)
		id++
		row[0] = strconv.FormatUint(id, 10)
		for i := range analysis.Headers {
			value := ""
			if i < len(record) {
				value = record[i]
			}
			if value == "" && types[i] != "String" && types[i] != "" {
				value = `\N`
			}
			row[i+1] = value
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("error encoding row %d: %v", id, err)
		}
		batched++
		if batched >= insertBatchSize {
			if err := flush(); err != nil {
				return "", err
			}
		}
	}
	if err := flush(); err != nil {
		return "", err
	}
	return table, nil
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pivolan/go_utils"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pivolan/gograph/config"
	"github.com/pivolan/gograph/domain/models"
)

// openDB connects to ClickHouse over its MySQL protocol port.
func openDB() (*gorm.DB, error) {
	cfg := config.GetConfig()
	return gorm.Open(mysql.Open(cfg.DbDsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func getColumnAndTypeList(db *gorm.DB, table models.TableName) ([]models.ColumnInfo, error) {
	tx := db.Raw(fmt.Sprintf("DESCRIBE TABLE %s", table))
	if tx.Error != nil {
		return nil, tx.Error
	}
	var columns []models.ColumnInfo
	tx.Scan(&columns)
	return columns, nil
}

func isNumericType(t string) bool {
	return go_utils.InArray(t, []string{"Int64", "Float64", "Nullable(Int64)", "Nullable(Float64)"})
}

func isDateType(t string) bool {
	return strings.HasPrefix(t, "Date") || strings.HasPrefix(t, "Nullable(Date")
}

func excludeColumn(name string) bool {
	return go_utils.InArray(name, []string{"id", "slug"})
}

var summaryMethods = []string{"uniq", "avg", "min", "max", "median", "quantile(0.01)", "quantile(0.99)"}

// summarySQL selects count() plus one aggregate per numeric column and
// method, aliased method__column so the row parses back per column.
func summarySQL(columns []models.ColumnInfo, table models.TableName) string {
	fields := []string{"count() as cnt"}
	for _, column := range columns {
		if excludeColumn(column.Name) || !isNumericType(column.Type) {
			continue
		}
		for _, method := range summaryMethods {
			alias := removeSpecialChars(method)
			fields = append(fields, fmt.Sprintf("%s(%s) as %s__%s", method, column.Name, alias, column.Name))
		}
	}
	return "SELECT " + strings.Join(fields, ", ") + " FROM " + string(table)
}

func removeSpecialChars(s string) string {
	var b strings.Builder
	for _, c := range s {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// parseSummaryRow splits method__column aliases back into per-column
// summaries. The count applies to every column.
func parseSummaryRow(row map[string]interface{}) map[string]models.ColumnSummary {
	out := map[string]models.ColumnSummary{}
	for key, value := range row {
		parts := strings.Split(key, "__")
		if len(parts) != 2 {
			continue
		}
		method, column := parts[0], parts[1]
		s := out[column]
		switch method {
		case "uniq":
			s.Uniq = toInt64(value)
		case "avg":
			s.Avg = toFloat64(value)
		case "min":
			s.Min = toFloat64(value)
		case "max":
			s.Max = toFloat64(value)
		case "median":
			s.Median = toFloat64(value)
		case "quantile001":
			s.Quantile001 = toFloat64(value)
		case "quantile099":
			s.Quantile099 = toFloat64(value)
		}
		out[column] = s
	}
	if cnt, ok := row["cnt"]; ok {
		for column, s := range out {
			s.Count = toInt64(cnt)
			out[column] = s
		}
	}
	return out
}

// gorm scans ClickHouse aggregates as int64, float64 or string
// depending on the wire type.
func toFloat64(v interface{}) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case int64:
		return float64(value)
	case string:
		f, _ := strconv.ParseFloat(value, 64)
		return f
	}
	return 0
}

func toInt64(v interface{}) int64 {
	switch value := v.(type) {
	case int64:
		return value
	case float64:
		return int64(value)
	case string:
		n, _ := strconv.ParseInt(value, 10, 64)
		return n
	}
	return 0
}

func summarizeTable(db *gorm.DB, table models.TableName) (map[string]models.ColumnSummary, error) {
	columns, err := getColumnAndTypeList(db, table)
	if err != nil {
		return nil, fmt.Errorf("error describing %s: %v", table, err)
	}
	row := map[string]interface{}{}
	tx := db.Raw(summarySQL(columns, table))
	tx.Scan(row)
	if tx.Error != nil {
		return nil, fmt.Errorf("error summarizing %s: %v", table, tx.Error)
	}
	return parseSummaryRow(row), nil
}

// bordersSQL asks ClickHouse for evenly spaced quantiles of a column,
// used as histogram bucket borders.
func bordersSQL(table models.TableName, column string, buckets int) string {
	qs := make([]string, buckets+1)
	for i := range qs {
		qs[i] = strconv.FormatFloat(float64(i)/float64(buckets), 'g', -1, 64)
	}
	return fmt.Sprintf("SELECT quantiles(%s)(%s) as borders FROM %s",
		strings.Join(qs, ", "), column, table)
}

// parseBorders parses the ClickHouse array literal "[1,2,3]".
func parseBorders(s string) ([]float64, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	if s == "" {
		return nil, fmt.Errorf("empty borders array")
	}
	parts := strings.Split(s, ",")
	borders := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("error parsing border %q: %v", part, err)
		}
		borders[i] = v
	}
	return borders, nil
}

func bucketCountSQL(table models.TableName, column string, low, high float64, last bool) string {
	op := "<"
	if last {
		op = "<="
	}
	return fmt.Sprintf("SELECT %f as low, %f as high, count(*) as cnt FROM %s WHERE %s >= %f AND %s %s %f",
		low, high, table, column, low, column, op, high)
}

// histogramBuckets builds a histogram of a numeric column: quantile
// borders first, then one count per bucket.
func histogramBuckets(db *gorm.DB, table models.TableName, column string, buckets int) ([]models.HistogramBucket, error) {
	var result struct {
		Borders string
	}
	if err := db.Raw(bordersSQL(table, column, buckets)).Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("error getting quantiles: %v", err)
	}
	borders, err := parseBorders(result.Borders)
	if err != nil {
		return nil, err
	}

	data := make([]models.HistogramBucket, 0, len(borders)-1)
	for i := 0; i < len(borders)-1; i++ {
		if borders[i] == borders[i+1] {
			continue
		}
		var bucket models.HistogramBucket
		sql := bucketCountSQL(table, column, borders[i], borders[i+1], i == len(borders)-2)
		if err := db.Raw(sql).Scan(&bucket).Error; err != nil {
			return nil, fmt.Errorf("error counting bucket: %v", err)
		}
		data = append(data, bucket)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("column %s has no value spread to bucket", column)
	}
	return data, nil
}

var timeUnits = []string{"hour", "day", "week", "month", "year"}

func dateBucketsSQL(table models.TableName, column, unit string) (string, error) {
	if !go_utils.InArray(unit, timeUnits) {
		return "", fmt.Errorf("unsupported time unit %q, use one of: %s", unit, strings.Join(timeUnits, ", "))
	}
	return fmt.Sprintf("SELECT toString(date_trunc('%s', %s)) as date, count(*) as cnt FROM %s WHERE %s IS NOT NULL GROUP BY date ORDER BY date",
		unit, column, table, column), nil
}

func dateBuckets(db *gorm.DB, table models.TableName, column, unit string) ([]models.DateCount, error) {
	sql, err := dateBucketsSQL(table, column, unit)
	if err != nil {
		return nil, err
	}
	var counts []models.DateCount
	if err := db.Raw(sql).Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("error grouping by %s: %v", unit, err)
	}
	return counts, nil
}

func rangeSQL(table models.TableName, column string) string {
	return fmt.Sprintf("SELECT min(%s) as low, max(%s) as high FROM %s", column, column, table)
}

func gridCellsSQL(table models.TableName, xcol, ycol string, xlow, xwidth, ylow, ywidth float64) string {
	return fmt.Sprintf("SELECT toInt32(floor((%[1]s - %[3]f) / %[4]f)) as xb, toInt32(floor((%[2]s - %[5]f) / %[6]f)) as yb, count(*) as cnt FROM %[7]s GROUP BY xb, yb",
		xcol, ycol, xlow, xwidth, ylow, ywidth, table)
}

// gridCells counts rows per cell of a cells × cells grid spanning the
// two columns' value ranges.
func gridCells(db *gorm.DB, table models.TableName, xcol, ycol string, cells int) ([]models.GridCell, models.HistogramBucket, models.HistogramBucket, error) {
	var xr, yr models.HistogramBucket
	if err := db.Raw(rangeSQL(table, xcol)).Scan(&xr).Error; err != nil {
		return nil, xr, yr, fmt.Errorf("error getting range of %s: %v", xcol, err)
	}
	if err := db.Raw(rangeSQL(table, ycol)).Scan(&yr).Error; err != nil {
		return nil, xr, yr, fmt.Errorf("error getting range of %s: %v", ycol, err)
	}
	xwidth := (xr.High - xr.Low) / float64(cells)
	ywidth := (yr.High - yr.Low) / float64(cells)
	if xwidth <= 0 || ywidth <= 0 {
		return nil, xr, yr, fmt.Errorf("columns %s, %s have no value spread to grid", xcol, ycol)
	}
	var rows []models.GridCell
	sql := gridCellsSQL(table, xcol, ycol, xr.Low, xwidth, yr.Low, ywidth)
	if err := db.Raw(sql).Scan(&rows).Error; err != nil {
		return nil, xr, yr, fmt.Errorf("error counting grid cells: %v", err)
	}
	return rows, xr, yr, nil
}

func samplePairsSQL(table models.TableName, xcol, ycol string, limit int) string {
	return fmt.Sprintf("SELECT %s as x, %s as y FROM %s ORDER BY rand() LIMIT %d", xcol, ycol, table, limit)
}

func samplePairs(db *gorm.DB, table models.TableName, xcol, ycol string, limit int) ([]models.PairRow, error) {
	var rows []models.PairRow
	if err := db.Raw(samplePairsSQL(table, xcol, ycol, limit)).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("error sampling %s, %s: %v", xcol, ycol, err)
	}
	return rows, nil
}

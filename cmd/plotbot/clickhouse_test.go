package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pivolan/gograph/domain/models"
)

func TestSummarySQL(t *testing.T) {
	columns := []models.ColumnInfo{
		{Name: "id", Type: "UInt64"},
		{Name: "price", Type: "Float64"},
		{Name: "name", Type: "Nullable(String)"},
		{Name: "qty", Type: "Nullable(Int64)"},
	}
	sql := summarySQL(columns, "events_abc123")

	if !strings.HasPrefix(sql, "SELECT count() as cnt, ") {
		t.Errorf("summary should start with the row count, got %q", sql)
	}
	if !strings.HasSuffix(sql, " FROM events_abc123") {
		t.Errorf("summary should select from the table, got %q", sql)
	}
	for _, want := range []string{
		"uniq(price) as uniq__price",
		"avg(price) as avg__price",
		"median(price) as median__price",
		"quantile(0.01)(price) as quantile001__price",
		"quantile(0.99)(price) as quantile099__price",
		"min(qty) as min__qty",
		"max(qty) as max__qty",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("summary misses %q:\n%s", want, sql)
		}
	}
	for _, banned := range []string{"id", "name"} {
		if strings.Contains(sql, "__"+banned) {
			t.Errorf("summary should skip column %s:\n%s", banned, sql)
		}
	}
}

func TestRemoveSpecialChars(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"quantile(0.01)", "quantile001"},
		{"avg", "avg"},
		{"median", "median"},
	}
	for _, tt := range tests {
		if got := removeSpecialChars(tt.input); got != tt.want {
			t.Errorf("removeSpecialChars(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseSummaryRow(t *testing.T) {
	row := map[string]interface{}{
		"cnt":                 int64(100),
		"uniq__price":         int64(42),
		"avg__price":          2.5,
		"min__price":          "0.5",
		"max__price":          9.0,
		"median__price":       3.0,
		"quantile001__price":  0.75,
		"quantile099__price":  8.25,
		"uniq__qty":           int64(7),
		"not_an_alias_column": 1.0,
	}
	summaries := parseSummaryRow(row)

	price, ok := summaries["price"]
	if !ok {
		t.Fatalf("summaries missing price: %v", summaries)
	}
	want := models.ColumnSummary{
		Count: 100, Uniq: 42,
		Avg: 2.5, Min: 0.5, Max: 9.0, Median: 3.0,
		Quantile001: 0.75, Quantile099: 8.25,
	}
	if price != want {
		t.Errorf("price summary = %+v, want %+v", price, want)
	}
	if qty := summaries["qty"]; qty.Uniq != 7 || qty.Count != 100 {
		t.Errorf("qty summary = %+v, want uniq 7 count 100", qty)
	}
	if _, ok := summaries["not_an_alias_column"]; ok {
		t.Error("keys without a method prefix should be ignored")
	}
}

func TestBordersSQL(t *testing.T) {
	got := bordersSQL("t1", "price", 4)
	want := "SELECT quantiles(0, 0.25, 0.5, 0.75, 1)(price) as borders FROM t1"
	if got != want {
		t.Errorf("bordersSQL = %q, want %q", got, want)
	}
}

func TestParseBorders(t *testing.T) {
	borders, err := parseBorders("[1,2.5,3]")
	if err != nil {
		t.Fatalf("parseBorders: %v", err)
	}
	if !reflect.DeepEqual(borders, []float64{1, 2.5, 3}) {
		t.Errorf("borders = %v", borders)
	}

	if _, err := parseBorders("[]"); err == nil {
		t.Error("empty array should fail")
	}
	if _, err := parseBorders("[1, oops]"); err == nil {
		t.Error("junk values should fail")
	}
}

func TestBucketCountSQL(t *testing.T) {
	got := bucketCountSQL("t1", "price", 0, 10, false)
	want := "SELECT 0.000000 as low, 10.000000 as high, count(*) as cnt FROM t1 WHERE price >= 0.000000 AND price < 10.000000"
	if got != want {
		t.Errorf("bucketCountSQL = %q, want %q", got, want)
	}

	last := bucketCountSQL("t1", "price", 10, 20, true)
	if !strings.Contains(last, "price <= 20.000000") {
		t.Errorf("last bucket should close the range: %q", last)
	}
}

func TestDateBucketsSQL(t *testing.T) {
	got, err := dateBucketsSQL("t1", "created_at", "day")
	if err != nil {
		t.Fatalf("dateBucketsSQL: %v", err)
	}
	want := "SELECT toString(date_trunc('day', created_at)) as date, count(*) as cnt FROM t1 WHERE created_at IS NOT NULL GROUP BY date ORDER BY date"
	if got != want {
		t.Errorf("dateBucketsSQL = %q, want %q", got, want)
	}

	if _, err := dateBucketsSQL("t1", "created_at", "fortnight"); err == nil {
		t.Error("unsupported unit should fail")
	}
}

func TestGridCellsSQL(t *testing.T) {
	got := gridCellsSQL("t1", "x", "y", 0, 2.5, 10, 5)
	want := "SELECT toInt32(floor((x - 0.000000) / 2.500000)) as xb, toInt32(floor((y - 10.000000) / 5.000000)) as yb, count(*) as cnt FROM t1 GROUP BY xb, yb"
	if got != want {
		t.Errorf("gridCellsSQL = %q, want %q", got, want)
	}
}

func TestRangeAndSampleSQL(t *testing.T) {
	if got, want := rangeSQL("t1", "price"), "SELECT min(price) as low, max(price) as high FROM t1"; got != want {
		t.Errorf("rangeSQL = %q, want %q", got, want)
	}
	if got, want := samplePairsSQL("t1", "a", "b", 500), "SELECT a as x, b as y FROM t1 ORDER BY rand() LIMIT 500"; got != want {
		t.Errorf("samplePairsSQL = %q, want %q", got, want)
	}
}

func TestTypePredicates(t *testing.T) {
	numeric := []string{"Int64", "Float64", "Nullable(Int64)", "Nullable(Float64)"}
	for _, typ := range numeric {
		if !isNumericType(typ) {
			t.Errorf("isNumericType(%q) = false", typ)
		}
	}
	for _, typ := range []string{"String", "Nullable(String)", "Date"} {
		if isNumericType(typ) {
			t.Errorf("isNumericType(%q) = true", typ)
		}
	}

	dates := []string{"Date", "DateTime64(6)", "Nullable(Date)", "Nullable(DateTime64(6))"}
	for _, typ := range dates {
		if !isDateType(typ) {
			t.Errorf("isDateType(%q) = false", typ)
		}
	}
	if isDateType("Int64") || isDateType("String") {
		t.Error("isDateType should reject non-date types")
	}

	if !excludeColumn("id") || !excludeColumn("slug") || excludeColumn("price") {
		t.Error("excludeColumn should hide id and slug only")
	}
}

func TestToFloat64AndToInt64(t *testing.T) {
	if toFloat64(int64(3)) != 3 || toFloat64(2.5) != 2.5 || toFloat64("1.25") != 1.25 || toFloat64(nil) != 0 {
		t.Error("toFloat64 coercion is off")
	}
	if toInt64(int64(3)) != 3 || toInt64(2.9) != 2 || toInt64("17") != 17 || toInt64(nil) != 0 {
		t.Error("toInt64 coercion is off")
	}
}

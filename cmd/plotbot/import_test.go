package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDetectType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"  ", ""},
		{"42", "Int64"},
		{"-17", "Int64"},
		{"3.14", "Float64"},
		{"1e5", "Float64"},
		{"2024-01-01", "Date"},
		{"2024-01-01 10:30:00", "DateTime64"},
		{"2024-01-01 10:30:00.123456", "DateTime64"},
		{"hello", "String"},
		{"123abc", "String"},
	}
	for _, tt := range tests {
		if got := detectType(tt.input); got != tt.want {
			t.Errorf("detectType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestWiderType(t *testing.T) {
	tests := []struct {
		current, candidate, want string
	}{
		{"", "Int64", "Int64"},
		{"Int64", "", "Int64"},
		{"Int64", "Float64", "Float64"},
		{"Float64", "Int64", "Float64"},
		{"Date", "String", "String"},
		{"DateTime64", "Date", "Date"},
	}
	for _, tt := range tests {
		if got := widerType(tt.current, tt.candidate); got != tt.want {
			t.Errorf("widerType(%q, %q) = %q, want %q", tt.current, tt.candidate, got, tt.want)
		}
	}
}

func TestColumnType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Int64", "Nullable(Int64)"},
		{"Float64", "Nullable(Float64)"},
		{"Date", "Nullable(Date)"},
		{"DateTime64", "Nullable(DateTime64(6))"},
		{"String", "Nullable(String)"},
		{"", "Nullable(String)"},
	}
	for _, tt := range tests {
		if got := columnType(tt.input); got != tt.want {
			t.Errorf("columnType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGetMD5String(t *testing.T) {
	if got := getMD5String("hello"); got != "5d41402abc4b2a76b9719d911017c592" {
		t.Errorf("getMD5String(hello) = %q", got)
	}
}

func TestTableNameFor(t *testing.T) {
	table := tableNameFor([]string{"name", "qty", "price", "extra"}, "/tmp/upload.csv")
	name := string(table)
	if !strings.HasPrefix(name, "name_qty_price_") {
		t.Errorf("table name should join the first three headers, got %q", name)
	}
	if len(name) != len("name_qty_price_")+6 {
		t.Errorf("table name should end in a six char hash, got %q", name)
	}

	short := string(tableNameFor([]string{"a"}, "/tmp/x.csv"))
	if !strings.HasPrefix(short, "a_") {
		t.Errorf("short header lists should use every header, got %q", short)
	}

	again := tableNameFor([]string{"name", "qty", "price", "extra"}, "/tmp/upload.csv")
	if table != again {
		t.Error("same file should map to the same table")
	}
}

func TestCreateTableSQL(t *testing.T) {
	got := createTableSQL("t1", []string{"name", "qty"}, []string{"String", "Int64"})
	want := "CREATE TABLE IF NOT EXISTS t1 (id UInt64, name Nullable(String), qty Nullable(Int64)) ENGINE = ReplacingMergeTree PRIMARY KEY (id)"
	if got != want {
		t.Errorf("createTableSQL = %q, want %q", got, want)
	}
}

func TestInsertBatchSQL(t *testing.T) {
	buf := bytes.NewBufferString("1,foo\n2,bar\n")
	got := insertBatchSQL("t1", buf)
	if got != "INSERT INTO t1 FORMAT CSV\n1,foo\n2,bar\n" {
		t.Errorf("insertBatchSQL = %q", got)
	}
}

func TestInferSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	content := strings.Join([]string{
		"Name,Qty,Price,When",
		"alpha,1,2.5,2024-01-01",
		"beta,2,3.5,2024-01-02",
		"gamma,3,4,2024-01-03",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	analysis, types, err := inferSchema(path)
	if err != nil {
		t.Fatalf("inferSchema: %v", err)
	}
	if !reflect.DeepEqual(analysis.Headers, []string{"name", "qty", "price", "when"}) {
		t.Errorf("Headers = %v", analysis.Headers)
	}
	if analysis.FirstRowIsData {
		t.Error("first row should be recognized as headers")
	}
	if !reflect.DeepEqual(types, []string{"String", "Int64", "Float64", "Date"}) {
		t.Errorf("types = %v", types)
	}
}

func TestInferSchemaHeaderlessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.csv")
	content := "1,2.5\n2,3.5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	analysis, types, err := inferSchema(path)
	if err != nil {
		t.Fatalf("inferSchema: %v", err)
	}
	if !reflect.DeepEqual(analysis.Headers, []string{"column_1", "column_2"}) {
		t.Errorf("Headers = %v", analysis.Headers)
	}
	if !analysis.FirstRowIsData {
		t.Error("numeric first row is data")
	}
	if !reflect.DeepEqual(types, []string{"Int64", "Float64"}) {
		t.Errorf("types = %v", types)
	}
}

func TestInferSchemaEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := inferSchema(path); err == nil {
		t.Error("empty file should fail")
	}
}

package main

import (
	"reflect"
	"testing"
)

func TestAnalyzeHeaders(t *testing.T) {
	tests := []struct {
		name          string
		records       [][]string
		wantHeaders   []string
		wantIsData    bool
		wantFirstData []string
	}{
		{
			name: "Valid headers",
			records: [][]string{
				{"Name", "Age", "Email", "Phone"},
				{"John", "30", "john@example.com", "555-0101"},
			},
			wantHeaders:   []string{"name", "age", "email", "phone"},
			wantIsData:    false,
			wantFirstData: []string{"John", "30", "john@example.com", "555-0101"},
		},
		{
			name: "Numeric data",
			records: [][]string{
				{"123", "456", "789", "101"},
			},
			wantHeaders:   []string{"column_1", "column_2", "column_3", "column_4"},
			wantIsData:    true,
			wantFirstData: []string{"123", "456", "789", "101"},
		},
		{
			name: "Date data",
			records: [][]string{
				{"2024-01-01", "2024-01-02", "2024-01-03"},
			},
			wantHeaders:   []string{"column_1", "column_2", "column_3"},
			wantIsData:    true,
			wantFirstData: []string{"2024-01-01", "2024-01-02", "2024-01-03"},
		},
		{
			name: "Headers with special characters",
			records: [][]string{
				{"User Name!", "Age#", "Email@", "Phone$"},
			},
			wantHeaders: []string{"user_name", "age", "email", "phone"},
			wantIsData:  false,
		},
		{
			name: "Duplicate headers",
			records: [][]string{
				{"Name", "Name", "Name", "Age"},
			},
			wantHeaders: []string{"name", "name_1", "name_2", "age"},
			wantIsData:  false,
		},
		{
			name: "Empty cells",
			records: [][]string{
				{"", "", "", ""},
			},
			wantHeaders:   []string{"column_1", "column_2", "column_3", "column_4"},
			wantIsData:    true,
			wantFirstData: []string{"", "", "", ""},
		},
		{
			name: "Already clean headers",
			records: [][]string{
				{"product_name", "sales_quantity", "unit_price", "total_revenue"},
			},
			wantHeaders: []string{"product_name", "sales_quantity", "unit_price", "total_revenue"},
			wantIsData:  false,
		},
		{
			name: "Half header-like row is data",
			records: [][]string{
				{"John", "30", "john@example.com", "123-456-7890"},
			},
			wantHeaders:   []string{"column_1", "column_2", "column_3", "column_4"},
			wantIsData:    true,
			wantFirstData: []string{"John", "30", "john@example.com", "123-456-7890"},
		},
		{
			name: "Cyrillic headers transliterate",
			records: [][]string{
				{"Имя", "Возраст"},
			},
			wantHeaders: []string{"imia", "vozrast"},
			wantIsData:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzeHeaders(tt.records)

			if !reflect.DeepEqual(got.Headers, tt.wantHeaders) {
				t.Errorf("Headers = %v, want %v", got.Headers, tt.wantHeaders)
			}
			if got.FirstRowIsData != tt.wantIsData {
				t.Errorf("FirstRowIsData = %v, want %v", got.FirstRowIsData, tt.wantIsData)
			}
			if tt.wantFirstData != nil && !reflect.DeepEqual(got.FirstDataRow, tt.wantFirstData) {
				t.Errorf("FirstDataRow = %v, want %v", got.FirstDataRow, tt.wantFirstData)
			}
		})
	}
}

func TestIsLikelyHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Empty string", "", false},
		{"Simple header", "Name", true},
		{"Header with space", "User Name", true},
		{"Number", "123", false},
		{"Decimal", "123.45", false},
		{"Date", "2024-01-01", false},
		{"DateTime", "2024-01-01 10:30:00", false},
		{"Special characters", "User#Name!", true},
		{"Only special chars", "###", false},
		{"Mixed content", "User123", true},
		{"Cyrillic", "колонка1", true},
		{"Email", "test@email.com", true},
		{"Phone", "+1-234-567-8900", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isLikelyHeader(tt.input); got != tt.want {
				t.Errorf("isLikelyHeader(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanHeaderName(t *testing.T) {
	tests := []struct {
		name string
		cell string
		pos  int
		want string
	}{
		{"Lowercases", "Name", 0, "name"},
		{"Spaces to underscore", "User Name", 1, "user_name"},
		{"Strips symbols", "Total Revenue ($)", 2, "total_revenue"},
		{"Leading digit falls back", "2024 sales", 3, "column_4"},
		{"Empty falls back", "!!!", 4, "column_5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanHeaderName(tt.cell, tt.pos); got != tt.want {
				t.Errorf("cleanHeaderName(%q, %d) = %q, want %q", tt.cell, tt.pos, got, tt.want)
			}
		})
	}
}

func TestIsDateData(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"ISO date", "2024-01-01", true},
		{"DateTime", "2024-01-01 10:30:00", true},
		{"DateTime with micros", "2024-01-01 10:30:00.123456", true},
		{"RFC3339", "2024-01-01T10:30:00Z", true},
		{"Plain text", "abc", false},
		{"Number", "20240101", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDateData(tt.input); got != tt.want {
				t.Errorf("isDateData(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

package models

// TableName identifies an imported dataset table in ClickHouse.
type TableName string

type ColumnInfo struct {
	Name string
	Type string // Date DateTime64 Int64 Float64 String
}

// HeaderAnalysis describes how the first CSV row was interpreted.
type HeaderAnalysis struct {
	Headers        []string
	FirstRowIsData bool
	FirstDataRow   []string
}

// ColumnSummary holds the aggregate statistics of one numeric column.
type ColumnSummary struct {
	Count       int64
	Uniq        int64
	Avg         float64
	Min         float64
	Max         float64
	Median      float64
	Quantile001 float64
	Quantile099 float64
}

// HistogramBucket is one value range with the number of rows in it.
type HistogramBucket struct {
	Low   float64 `gorm:"column:low"`
	High  float64 `gorm:"column:high"`
	Count int64   `gorm:"column:cnt"`
}

// DateCount is one truncated date with the number of rows in it.
type DateCount struct {
	Date  string `gorm:"column:date"`
	Count int64  `gorm:"column:cnt"`
}

// GridCell is one cell of a two-column density grid.
type GridCell struct {
	XBucket int   `gorm:"column:xb"`
	YBucket int   `gorm:"column:yb"`
	Count   int64 `gorm:"column:cnt"`
}

// PairRow is one (x, y) sample taken from two numeric columns.
type PairRow struct {
	X float64 `gorm:"column:x"`
	Y float64 `gorm:"column:y"`
}

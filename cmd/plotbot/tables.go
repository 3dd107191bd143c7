package main

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pivolan/gograph/domain/models"
)

func newTableWriter() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleDefault)
	return t
}

// formatStats renders pasted-numbers statistics as a text table.
func formatStats(stats NumberStats) string {
	t := newTableWriter()
	t.AppendHeader(table.Row{"metric", "value"})
	t.AppendRows([]table.Row{
		{"count", stats.Count},
		{"min", roundToTwo(stats.Min)},
		{"max", roundToTwo(stats.Max)},
		{"sum", roundToTwo(stats.Sum)},
		{"mean", roundToTwo(stats.Mean)},
		{"median", roundToTwo(stats.Median)},
		{"std dev", roundToTwo(stats.StdDev)},
	})
	qs := make([]float64, 0, len(stats.Quantiles))
	for q := range stats.Quantiles {
		qs = append(qs, q)
	}
	sort.Float64s(qs)
	for _, q := range qs {
		t.AppendRow(table.Row{fmt.Sprintf("quantile %g", q), roundToTwo(stats.Quantiles[q])})
	}
	t.AppendRow(table.Row{"outliers", len(stats.Outliers)})
	return t.Render()
}

// formatColumns renders the column list of an imported table.
func formatColumns(columns []models.ColumnInfo) string {
	t := newTableWriter()
	t.AppendHeader(table.Row{"column", "type"})
	for _, column := range columns {
		if excludeColumn(column.Name) {
			continue
		}
		t.AppendRow(table.Row{column.Name, column.Type})
	}
	return t.Render()
}

// formatSummaries renders per-column aggregates in column order.
func formatSummaries(columns []models.ColumnInfo, summaries map[string]models.ColumnSummary) string {
	t := newTableWriter()
	t.AppendHeader(table.Row{"column", "count", "uniq", "avg", "min", "max", "median", "q0.01", "q0.99"})
	for _, column := range columns {
		s, ok := summaries[column.Name]
		if !ok {
			continue
		}
		t.AppendRow(table.Row{
			column.Name,
			s.Count,
			s.Uniq,
			roundToTwo(s.Avg),
			roundToTwo(s.Min),
			roundToTwo(s.Max),
			roundToTwo(s.Median),
			roundToTwo(s.Quantile001),
			roundToTwo(s.Quantile099),
		})
	}
	return t.Render()
}

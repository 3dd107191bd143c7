package gograph

import (
	"fmt"

	"github.com/pivolan/go_utils"
)

var meshPalettes = []string{"heat", "rainbow"}

type meshParams struct {
	palette string
}

// MeshOpt configures a ColorMesh.
type MeshOpt func(*meshParams)

// MeshPalette selects the color palette: heat or rainbow.
func MeshPalette(name string) MeshOpt { return func(p *meshParams) { p.palette = name } }

// ColorMesh is a rectangular grid of values rendered as a heatmap.
// A figure tracks at most one mesh at a time, and it never appears in
// the legend.
type ColorMesh struct {
	name    string
	xs, ys  []float64
	values  [][]float64
	palette string
}

// NewColorMesh builds a mesh over the grid xs × ys. values is indexed
// [row][col] with one row per y and one column per x.
func NewColorMesh(xs, ys []float64, values [][]float64, name string, opts ...MeshOpt) (*ColorMesh, error) {
	if name == "" {
		return nil, &OptionError{Option: "name", Reason: "must not be empty"}
	}
	if len(xs) == 0 || len(ys) == 0 {
		return nil, &OptionError{Option: "data", Reason: "grid axes must not be empty"}
	}
	for i, v := range xs {
		if !finite(v) {
			return nil, &OptionError{Option: "data", Reason: fmt.Sprintf("x value %d is not finite", i)}
		}
	}
	for i, v := range ys {
		if !finite(v) {
			return nil, &OptionError{Option: "data", Reason: fmt.Sprintf("y value %d is not finite", i)}
		}
	}
	if len(values) != len(ys) {
		return nil, &OptionError{Option: "data", Reason: fmt.Sprintf("want %d value rows, got %d", len(ys), len(values))}
	}
	rows := make([][]float64, len(values))
	for r, row := range values {
		if len(row) != len(xs) {
			return nil, &OptionError{Option: "data", Reason: fmt.Sprintf("row %d has %d values, want %d", r, len(row), len(xs))}
		}
		for c, v := range row {
			if !finite(v) {
				return nil, &OptionError{Option: "data", Reason: fmt.Sprintf("value at row %d col %d is not finite", r, c)}
			}
		}
		rows[r] = append([]float64(nil), row...)
	}
	p := meshParams{palette: "heat"}
	for _, opt := range opts {
		opt(&p)
	}
	if !go_utils.InArray(p.palette, meshPalettes) {
		return nil, &OptionError{Option: "palette", Value: p.palette, Valid: meshPalettes}
	}
	return &ColorMesh{
		name:    name,
		xs:      append([]float64(nil), xs...),
		ys:      append([]float64(nil), ys...),
		values:  rows,
		palette: p.palette,
	}, nil
}

func (m *ColorMesh) Name() string        { return m.name }
func (m *ColorMesh) Legendable() bool    { return false }
func (m *ColorMesh) XGrid() []float64    { return m.xs }
func (m *ColorMesh) YGrid() []float64    { return m.ys }
func (m *ColorMesh) Values() [][]float64 { return m.values }
func (m *ColorMesh) Palette() string     { return m.palette }

// Value returns the cell value at grid position (col, row).
func (m *ColorMesh) Value(col, row int) float64 { return m.values[row][col] }

// ValueSpan returns the min and max over all cells.
func (m *ColorMesh) ValueSpan() Span {
	s := Span{Min: m.values[0][0], Max: m.values[0][0]}
	for _, row := range m.values {
		rs, _ := spanOf(row)
		s = s.Union(rs)
	}
	return s
}

func (m *ColorMesh) Extent() (Extent, bool) {
	xs, okX := spanOf(m.xs)
	ys, okY := spanOf(m.ys)
	if !okX || !okY {
		return Extent{}, false
	}
	return Extent{X: xs, Y: ys}, true
}

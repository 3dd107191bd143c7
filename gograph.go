// Package gograph tracks named artists (lines, points, annotations,
// meshes) on chart surfaces. A Figure keeps an insertion-ordered
// registry of artists, re-derives the axis limits from the union of
// their data extents after every change and rebuilds the legend to
// match. Render backends for go-chart, go-echarts and gonum/plot live
// under render/.
package gograph

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var slugRe = regexp.MustCompile(`[^a-z0-9_]+`)

// Slug turns a title into a safe file name: transliterated to ASCII,
// lowercased, runs of other characters collapsed to underscores.
func Slug(s string) string {
	s = strings.ToLower(unidecode.Unidecode(s))
	s = slugRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// RenderFunc writes one figure, typically by asserting its surface to a
// concrete backend and rendering it.
type RenderFunc func(fig *Figure, w io.Writer) error

// Window arranges figures in a fixed grid, the way a multi-panel chart
// page does.
type Window struct {
	title string
	rows  int
	cols  int
	figs  []*Figure
}

// WindowOpt configures a Window.
type WindowOpt func(*Window)

// WindowTitle names the window; exports use it for page titles.
func WindowTitle(title string) WindowOpt { return func(w *Window) { w.title = title } }

// NewWindow builds a rows × cols grid, calling build for every cell in
// row-major order.
func NewWindow(rows, cols int, build func(row, col int) (*Figure, error), opts ...WindowOpt) (*Window, error) {
	if rows < 1 || cols < 1 {
		return nil, &OptionError{Option: "grid", Value: fmt.Sprintf("%dx%d", rows, cols), Reason: "needs at least one row and column"}
	}
	if build == nil {
		return nil, &OptionError{Option: "build", Reason: "must not be nil"}
	}
	w := &Window{rows: rows, cols: cols, figs: make([]*Figure, rows*cols)}
	for _, opt := range opts {
		opt(w)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			fig, err := build(r, c)
			if err != nil {
				return nil, fmt.Errorf("error building figure at %d,%d: %v", r, c, err)
			}
			if fig == nil {
				return nil, fmt.Errorf("error building figure at %d,%d: got nil", r, c)
			}
			w.figs[r*cols+c] = fig
		}
	}
	return w, nil
}

func (w *Window) Title() string { return w.title }
func (w *Window) Rows() int     { return w.rows }
func (w *Window) Cols() int     { return w.cols }

// Figure returns the figure at (row, col).
func (w *Window) Figure(row, col int) (*Figure, error) {
	if row < 0 || row >= w.rows || col < 0 || col >= w.cols {
		return nil, &OptionError{Option: "position", Value: fmt.Sprintf("%d,%d", row, col), Reason: fmt.Sprintf("outside the %dx%d grid", w.rows, w.cols)}
	}
	return w.figs[row*w.cols+col], nil
}

// Figures returns all figures in row-major order.
func (w *Window) Figures() []*Figure {
	return append([]*Figure(nil), w.figs...)
}

// Each visits every figure in row-major order.
func (w *Window) Each(fn func(row, col int, fig *Figure)) {
	for r := 0; r < w.rows; r++ {
		for c := 0; c < w.cols; c++ {
			fn(r, c, w.figs[r*w.cols+c])
		}
	}
}

// ClearAll clears every figure in the grid.
func (w *Window) ClearAll() {
	for _, fig := range w.figs {
		fig.Clear()
	}
}

// SaveImages renders every figure into dir as <slug(title)>.<ext>,
// falling back to the grid position for untitled figures. Duplicate
// names get a numeric suffix.
func (w *Window) SaveImages(dir, ext string, render RenderFunc) error {
	if render == nil {
		return &OptionError{Option: "render", Reason: "must not be nil"}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating %s: %v", dir, err)
	}
	seen := map[string]int{}
	var failed error
	w.Each(func(row, col int, fig *Figure) {
		if failed != nil {
			return
		}
		name := Slug(fig.Title())
		if name == "" {
			name = fmt.Sprintf("figure_%d_%d", row, col)
		}
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n)
		} else {
			seen[name] = 1
		}
		path := filepath.Join(dir, name+"."+strings.TrimPrefix(ext, "."))
		file, err := os.Create(path)
		if err != nil {
			failed = fmt.Errorf("error creating %s: %v", path, err)
			return
		}
		if err := render(fig, file); err != nil {
			file.Close()
			failed = fmt.Errorf("error rendering %s: %v", path, err)
			return
		}
		if err := file.Close(); err != nil {
			failed = fmt.Errorf("error writing %s: %v", path, err)
		}
	})
	return failed
}

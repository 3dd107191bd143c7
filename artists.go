package gograph

import (
	"fmt"
	"image/color"
	"math"

	"github.com/pivolan/go_utils"
)

// Artist is a named visual element tracked by a Figure: it knows its
// name, its data extent and whether it belongs in the legend.
type Artist interface {
	Name() string
	// Extent returns the data bounding box. The second result is false
	// for artists without one (fraction-positioned text).
	Extent() (Extent, bool)
	Legendable() bool
}

// artist3D marks artists that carry z data. Figures created with
// WithProjection3D accept only these.
type artist3D interface {
	threeDimensional()
}

// Text coordinate systems.
const (
	CoordsData     = "data"
	CoordsFraction = "fraction"
)

var (
	lineStyles = []string{"solid", "dashed", "dotted", "dashdot"}
	markers    = []string{"circle", "square", "triangle", "diamond", "cross", "plus"}
	coordsOpts = []string{CoordsData, CoordsFraction}
)

type lineParams struct {
	color string
	width float64
	style string
}

// LineOpt configures a Line or Straight.
type LineOpt func(*lineParams)

// LineColor sets the stroke color by palette name or hex.
func LineColor(name string) LineOpt { return func(p *lineParams) { p.color = name } }

// LineWidth sets the stroke width in points.
func LineWidth(w float64) LineOpt { return func(p *lineParams) { p.width = w } }

// LineStyle sets the dash pattern: solid, dashed, dotted or dashdot.
func LineStyle(style string) LineOpt { return func(p *lineParams) { p.style = style } }

func (p *lineParams) validate() (color.RGBA, error) {
	c, err := ParseColor(p.color)
	if err != nil {
		return color.RGBA{}, err
	}
	if p.width <= 0 {
		return color.RGBA{}, &OptionError{Option: "linewidth", Value: fmt.Sprintf("%v", p.width), Reason: "must be positive"}
	}
	if !go_utils.InArray(p.style, lineStyles) {
		return color.RGBA{}, &OptionError{Option: "linestyle", Value: p.style, Valid: lineStyles}
	}
	return c, nil
}

func checkSeries(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return &OptionError{Option: "data", Reason: fmt.Sprintf("x and y lengths differ (%d != %d)", len(xs), len(ys))}
	}
	if len(xs) == 0 {
		return &OptionError{Option: "data", Reason: "needs at least one point"}
	}
	for i := range xs {
		if !finite(xs[i]) || !finite(ys[i]) {
			return &OptionError{Option: "data", Reason: fmt.Sprintf("point %d is not finite", i)}
		}
	}
	return nil
}

// Line is a polyline through the given points.
type Line struct {
	name   string
	xs, ys []float64
	color  color.RGBA
	width  float64
	style  string
}

// NewLine builds a line artist. x and y must be the same non-zero
// length and finite.
func NewLine(x, y []float64, name string, opts ...LineOpt) (*Line, error) {
	if name == "" {
		return nil, &OptionError{Option: "name", Reason: "must not be empty"}
	}
	if err := checkSeries(x, y); err != nil {
		return nil, err
	}
	p := lineParams{color: "k", width: 1, style: "solid"}
	for _, opt := range opts {
		opt(&p)
	}
	c, err := p.validate()
	if err != nil {
		return nil, err
	}
	return &Line{
		name:  name,
		xs:    append([]float64(nil), x...),
		ys:    append([]float64(nil), y...),
		color: c,
		width: p.width,
		style: p.style,
	}, nil
}

func (l *Line) Name() string      { return l.name }
func (l *Line) Legendable() bool  { return true }
func (l *Line) XData() []float64  { return l.xs }
func (l *Line) YData() []float64  { return l.ys }
func (l *Line) Color() color.RGBA { return l.color }
func (l *Line) Width() float64    { return l.width }
func (l *Line) Style() string     { return l.style }

func (l *Line) Extent() (Extent, bool) {
	xs, okX := spanOf(l.xs)
	ys, okY := spanOf(l.ys)
	if !okX || !okY {
		return Extent{}, false
	}
	return Extent{X: xs, Y: ys}, true
}

// Straight is an unbounded line through a point with a direction.
// Backends clip it to the visible range; only the anchor point
// contributes to the extent.
type Straight struct {
	name   string
	x, y   float64
	dx, dy float64
	color  color.RGBA
	width  float64
	style  string
}

// NewStraight builds a straight-line artist through (x, y) along
// (dx, dy). The direction must not be zero.
func NewStraight(x, y, dx, dy float64, name string, opts ...LineOpt) (*Straight, error) {
	if name == "" {
		return nil, &OptionError{Option: "name", Reason: "must not be empty"}
	}
	if !finite(x) || !finite(y) || !finite(dx) || !finite(dy) {
		return nil, &OptionError{Option: "data", Reason: "point and direction must be finite"}
	}
	if dx == 0 && dy == 0 {
		return nil, &OptionError{Option: "direction", Reason: "must not be zero"}
	}
	p := lineParams{color: "k", width: 1, style: "solid"}
	for _, opt := range opts {
		opt(&p)
	}
	c, err := p.validate()
	if err != nil {
		return nil, err
	}
	return &Straight{name: name, x: x, y: y, dx: dx, dy: dy, color: c, width: p.width, style: p.style}, nil
}

func (s *Straight) Name() string                { return s.name }
func (s *Straight) Legendable() bool            { return true }
func (s *Straight) Point() (x, y float64)       { return s.x, s.y }
func (s *Straight) Direction() (dx, dy float64) { return s.dx, s.dy }
func (s *Straight) Color() color.RGBA           { return s.color }
func (s *Straight) Width() float64              { return s.width }
func (s *Straight) Style() string               { return s.style }

func (s *Straight) Extent() (Extent, bool) {
	return Extent{X: Span{Min: s.x, Max: s.x}, Y: Span{Min: s.y, Max: s.y}}, true
}

// Clip intersects the line with the view rectangle vx × vy, returning a
// drawable segment. When the line misses the view the segment collapses
// to the anchor point.
func (s *Straight) Clip(vx, vy Span) (x1, y1, x2, y2 float64) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for _, axis := range []struct{ p, d, lo, hi float64 }{
		{s.x, s.dx, vx.Min, vx.Max},
		{s.y, s.dy, vy.Min, vy.Max},
	} {
		if axis.d == 0 {
			if axis.p < axis.lo || axis.p > axis.hi {
				return s.x, s.y, s.x, s.y
			}
			continue
		}
		t1 := (axis.lo - axis.p) / axis.d
		t2 := (axis.hi - axis.p) / axis.d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}
	if tmin > tmax {
		return s.x, s.y, s.x, s.y
	}
	return s.x + tmin*s.dx, s.y + tmin*s.dy, s.x + tmax*s.dx, s.y + tmax*s.dy
}

type pointsParams struct {
	colors []string
	sizes  []float64
	marker string
}

// PointsOpt configures a Points artist.
type PointsOpt func(*pointsParams)

// PointColor sets one color for all points, or one per point.
func PointColor(names ...string) PointsOpt { return func(p *pointsParams) { p.colors = names } }

// PointSize sets one size (point diameter) for all points, or one per
// point.
func PointSize(sizes ...float64) PointsOpt { return func(p *pointsParams) { p.sizes = sizes } }

// PointMarker sets the marker glyph: circle, square, triangle, diamond,
// cross or plus.
func PointMarker(marker string) PointsOpt { return func(p *pointsParams) { p.marker = marker } }

// Points is a scatter of markers with scalar or per-point color and
// size.
type Points struct {
	name   string
	xs, ys []float64
	colors []color.RGBA
	sizes  []float64
	marker string
}

// NewPoints builds a scatter artist. Per-point color and size slices
// must match the data length.
func NewPoints(x, y []float64, name string, opts ...PointsOpt) (*Points, error) {
	if name == "" {
		return nil, &OptionError{Option: "name", Reason: "must not be empty"}
	}
	if err := checkSeries(x, y); err != nil {
		return nil, err
	}
	p := pointsParams{colors: []string{"k"}, sizes: []float64{6}, marker: "circle"}
	for _, opt := range opts {
		opt(&p)
	}
	if len(p.colors) != 1 && len(p.colors) != len(x) {
		return nil, &OptionError{Option: "color", Reason: fmt.Sprintf("want 1 or %d colors, got %d", len(x), len(p.colors))}
	}
	if len(p.sizes) != 1 && len(p.sizes) != len(x) {
		return nil, &OptionError{Option: "size", Reason: fmt.Sprintf("want 1 or %d sizes, got %d", len(x), len(p.sizes))}
	}
	colors := make([]color.RGBA, len(p.colors))
	for i, name := range p.colors {
		c, err := ParseColor(name)
		if err != nil {
			return nil, err
		}
		colors[i] = c
	}
	for _, s := range p.sizes {
		if s <= 0 || !finite(s) {
			return nil, &OptionError{Option: "size", Value: fmt.Sprintf("%v", s), Reason: "must be positive"}
		}
	}
	if !go_utils.InArray(p.marker, markers) {
		return nil, &OptionError{Option: "marker", Value: p.marker, Valid: markers}
	}
	return &Points{
		name:   name,
		xs:     append([]float64(nil), x...),
		ys:     append([]float64(nil), y...),
		colors: colors,
		sizes:  append([]float64(nil), p.sizes...),
		marker: p.marker,
	}, nil
}

func (p *Points) Name() string     { return p.name }
func (p *Points) Legendable() bool { return true }
func (p *Points) XData() []float64 { return p.xs }
func (p *Points) YData() []float64 { return p.ys }
func (p *Points) Marker() string   { return p.marker }
func (p *Points) Len() int         { return len(p.xs) }

// ColorAt returns the color of point i, resolving a scalar color for
// every index.
func (p *Points) ColorAt(i int) color.RGBA {
	if len(p.colors) == 1 {
		return p.colors[0]
	}
	return p.colors[i]
}

// SizeAt returns the size of point i.
func (p *Points) SizeAt(i int) float64 {
	if len(p.sizes) == 1 {
		return p.sizes[0]
	}
	return p.sizes[i]
}

func (p *Points) Extent() (Extent, bool) {
	xs, okX := spanOf(p.xs)
	ys, okY := spanOf(p.ys)
	if !okX || !okY {
		return Extent{}, false
	}
	return Extent{X: xs, Y: ys}, true
}

type textParams struct {
	coords string
	dx, dy float64
	color  string
}

// TextOpt configures a Text artist.
type TextOpt func(*textParams)

// TextCoords selects the coordinate system for the anchor point:
// CoordsData (default) or CoordsFraction of the drawing area.
func TextCoords(coords string) TextOpt { return func(p *textParams) { p.coords = coords } }

// TextOffset shifts the text by (dx, dy) pixels from its anchor.
func TextOffset(dx, dy float64) TextOpt { return func(p *textParams) { p.dx, p.dy = dx, dy } }

// TextColor sets the text color.
func TextColor(name string) TextOpt { return func(p *textParams) { p.color = name } }

// Text is an annotation. It never appears in the legend, and in
// fraction coordinates it does not contribute to the data extent.
type Text struct {
	name    string
	x, y    float64
	content string
	coords  string
	dx, dy  float64
	color   color.RGBA
}

// NewText builds a text artist anchored at (x, y).
func NewText(x, y float64, content, name string, opts ...TextOpt) (*Text, error) {
	if name == "" {
		return nil, &OptionError{Option: "name", Reason: "must not be empty"}
	}
	if content == "" {
		return nil, &OptionError{Option: "content", Reason: "must not be empty"}
	}
	if !finite(x) || !finite(y) {
		return nil, &OptionError{Option: "data", Reason: "anchor must be finite"}
	}
	p := textParams{coords: CoordsData, color: "k"}
	for _, opt := range opts {
		opt(&p)
	}
	if !go_utils.InArray(p.coords, coordsOpts) {
		return nil, &OptionError{Option: "coords", Value: p.coords, Valid: coordsOpts}
	}
	c, err := ParseColor(p.color)
	if err != nil {
		return nil, err
	}
	return &Text{name: name, x: x, y: y, content: content, coords: p.coords, dx: p.dx, dy: p.dy, color: c}, nil
}

func (t *Text) Name() string             { return t.name }
func (t *Text) Legendable() bool         { return false }
func (t *Text) Content() string          { return t.content }
func (t *Text) Anchor() (x, y float64)   { return t.x, t.y }
func (t *Text) Coords() string           { return t.coords }
func (t *Text) Offset() (dx, dy float64) { return t.dx, t.dy }
func (t *Text) Color() color.RGBA        { return t.color }

func (t *Text) Extent() (Extent, bool) {
	if t.coords == CoordsFraction {
		return Extent{}, false
	}
	return Extent{X: Span{Min: t.x, Max: t.x}, Y: Span{Min: t.y, Max: t.y}}, true
}

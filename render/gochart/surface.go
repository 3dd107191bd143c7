// Package gochart renders figures with wcharczuk/go-chart. The surface
// retains attached artists and materializes a chart.Chart on demand, so
// every render reflects the figure's current registry.
package gochart

import (
	"fmt"
	"image/color"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pivolan/gograph"
)

// Surface draws 2D artists: Line, Straight, Points and Text. Meshes and
// 3D artists are rejected at Attach.
type Surface struct {
	width  int
	height int

	title  string
	xlabel string
	ylabel string

	keys    []string
	artists map[string]gograph.Artist
	hidden  map[string]bool

	legend []gograph.LegendEntry

	xlim *gograph.Span
	ylim *gograph.Span
}

// Option configures a Surface.
type Option func(*Surface)

// WithSize sets the rendered image size in pixels.
func WithSize(width, height int) Option {
	return func(s *Surface) { s.width, s.height = width, height }
}

func New(opts ...Option) *Surface {
	s := &Surface{
		width:   1280,
		height:  720,
		artists: map[string]gograph.Artist{},
		hidden:  map[string]bool{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Surface) Attach(key string, a gograph.Artist) error {
	switch a.(type) {
	case *gograph.Line, *gograph.Straight, *gograph.Points, *gograph.Text:
	default:
		return fmt.Errorf("unsupported artist type %T", a)
	}
	if _, ok := s.artists[key]; ok {
		return fmt.Errorf("artist %q already attached", key)
	}
	s.artists[key] = a
	s.keys = append(s.keys, key)
	return nil
}

func (s *Surface) Detach(key string) error {
	if _, ok := s.artists[key]; !ok {
		return fmt.Errorf("artist %q not attached", key)
	}
	delete(s.artists, key)
	delete(s.hidden, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Surface) SetVisible(key string, visible bool) error {
	if _, ok := s.artists[key]; !ok {
		return fmt.Errorf("artist %q not attached", key)
	}
	s.hidden[key] = !visible
	return nil
}

func (s *Surface) SetXLim(min, max float64) { s.xlim = &gograph.Span{Min: min, Max: max} }
func (s *Surface) SetYLim(min, max float64) { s.ylim = &gograph.Span{Min: min, Max: max} }

func (s *Surface) AutoLimits() { s.xlim, s.ylim = nil, nil }

func (s *Surface) SetLegend(entries []gograph.LegendEntry) {
	s.legend = append([]gograph.LegendEntry(nil), entries...)
}

func (s *Surface) SetLabels(title, xlabel, ylabel string) {
	s.title, s.xlabel, s.ylabel = title, xlabel, ylabel
}

// RenderPNG writes the current state as a PNG image.
func (s *Surface) RenderPNG(w io.Writer) error { return s.render(chart.PNG, w) }

// RenderSVG writes the current state as an SVG document.
func (s *Surface) RenderSVG(w io.Writer) error { return s.render(chart.SVG, w) }

func (s *Surface) render(rp chart.RendererProvider, w io.Writer) error {
	ch, err := s.buildChart()
	if err != nil {
		return err
	}
	if err := ch.Render(rp, w); err != nil {
		return fmt.Errorf("error rendering chart: %v", err)
	}
	return nil
}

func (s *Surface) buildChart() (chart.Chart, error) {
	vx, vy := s.viewSpans()
	labels := map[string]string{}
	for _, e := range s.legend {
		labels[e.Key] = e.Label
	}

	var series []chart.Series
	for _, key := range s.keys {
		if s.hidden[key] {
			continue
		}
		sr, err := s.seriesFor(key, s.artists[key], labels[key], vx, vy)
		if err != nil {
			return chart.Chart{}, err
		}
		series = append(series, sr)
	}
	if len(series) == 0 {
		return chart.Chart{}, fmt.Errorf("nothing to render: no visible artists")
	}

	ch := chart.Chart{
		Title:  s.title,
		Width:  s.width,
		Height: s.height,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
			FillColor: drawing.ColorWhite,
		},
		XAxis:  chart.XAxis{Name: s.xlabel},
		YAxis:  chart.YAxis{Name: s.ylabel},
		Series: series,
	}
	if s.xlim != nil {
		ch.XAxis.Range = &chart.ContinuousRange{Min: s.xlim.Min, Max: s.xlim.Max}
	}
	if s.ylim != nil {
		ch.YAxis.Range = &chart.ContinuousRange{Min: s.ylim.Min, Max: s.ylim.Max}
	}
	if len(s.legend) > 0 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch, nil
}

func (s *Surface) seriesFor(key string, a gograph.Artist, label string, vx, vy gograph.Span) (chart.Series, error) {
	switch t := a.(type) {
	case *gograph.Line:
		xs, ys := padSinglePoint(t.XData(), t.YData())
		return chart.ContinuousSeries{
			Name:    label,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor:     toDrawing(t.Color()),
				StrokeWidth:     t.Width(),
				StrokeDashArray: dashArray(t.Style()),
			},
		}, nil
	case *gograph.Straight:
		x1, y1, x2, y2 := t.Clip(vx, vy)
		return chart.ContinuousSeries{
			Name:    label,
			XValues: []float64{x1, x2},
			YValues: []float64{y1, y2},
			Style: chart.Style{
				StrokeColor:     toDrawing(t.Color()),
				StrokeWidth:     t.Width(),
				StrokeDashArray: dashArray(t.Style()),
			},
		}, nil
	case *gograph.Points:
		return s.pointsSeries(t, label), nil
	case *gograph.Text:
		x, y := t.Anchor()
		if t.Coords() == gograph.CoordsFraction {
			x = vx.Min + x*vx.Width()
			y = vy.Min + y*vy.Width()
		}
		return chart.AnnotationSeries{
			Annotations: []chart.Value2{{XValue: x, YValue: y, Label: t.Content()}},
			Style: chart.Style{
				StrokeColor: toDrawing(t.Color()),
				FontColor:   toDrawing(t.Color()),
			},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported artist type %T", a)
	}
}

func (s *Surface) pointsSeries(p *gograph.Points, label string) chart.Series {
	xs, ys := padSinglePoint(p.XData(), p.YData())
	style := chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    p.SizeAt(0),
		DotColor:    toDrawing(p.ColorAt(0)),
	}
	n := p.Len()
	style.DotColorProvider = func(_, _ chart.Range, i int, _, _ float64) drawing.Color {
		if i >= n {
			i = n - 1
		}
		return toDrawing(p.ColorAt(i))
	}
	style.DotWidthProvider = func(_, _ chart.Range, i int, _, _ float64) float64 {
		if i >= n {
			i = n - 1
		}
		return p.SizeAt(i)
	}
	return chart.ContinuousSeries{Name: label, XValues: xs, YValues: ys, Style: style}
}

// viewSpans returns the axis ranges used to place straights and
// fraction-positioned text: the fixed limits when set, otherwise the
// padded union of the visible extents.
func (s *Surface) viewSpans() (gograph.Span, gograph.Span) {
	if s.xlim != nil && s.ylim != nil {
		return *s.xlim, *s.ylim
	}
	var union gograph.Extent
	ok := false
	for _, key := range s.keys {
		if s.hidden[key] {
			continue
		}
		e, has := s.artists[key].Extent()
		if !has {
			continue
		}
		if !ok {
			union, ok = e, true
			continue
		}
		union = union.Union(e)
	}
	vx, vy := gograph.Span{Min: 0, Max: 1}, gograph.Span{Min: 0, Max: 1}
	if ok {
		vx = union.X.Pad(gograph.DefaultMargin, 1)
		vy = union.Y.Pad(gograph.DefaultMargin, 1)
	}
	if s.xlim != nil {
		vx = *s.xlim
	}
	if s.ylim != nil {
		vy = *s.ylim
	}
	return vx, vy
}

// padSinglePoint duplicates a lone point so go-chart can compute a
// range for the series.
func padSinglePoint(xs, ys []float64) ([]float64, []float64) {
	if len(xs) != 1 {
		return xs, ys
	}
	return []float64{xs[0], xs[0]}, []float64{ys[0], ys[0]}
}

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func dashArray(style string) []float64 {
	switch style {
	case "dashed":
		return []float64{5.0, 5.0}
	case "dotted":
		return []float64{2.0, 2.0}
	case "dashdot":
		return []float64{5.0, 2.0, 2.0, 2.0}
	default:
		return nil
	}
}

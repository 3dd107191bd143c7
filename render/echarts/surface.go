// Package echarts renders figures as self-contained HTML pages with
// go-echarts. It is the widest backend: besides the 2D artists it
// draws ColorMesh grids as heatmaps and the 3D artists as line3D and
// scatter3D charts.
package echarts

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pivolan/gograph"
)

// Surface retains attached artists and materializes echarts charts on
// Render.
type Surface struct {
	width  string
	height string

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

// WithSize sets the chart canvas size, e.g. "900px", "520px".
func WithSize(width, height string) Option {
	return func(s *Surface) { s.width, s.height = width, height }
}

func New(options ...Option) *Surface {
	s := &Surface{
		width:   "900px",
		height:  "520px",
		artists: map[string]gograph.Artist{},
		hidden:  map[string]bool{},
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *Surface) Attach(key string, a gograph.Artist) error {
	switch a.(type) {
	case *gograph.Line, *gograph.Straight, *gograph.Points, *gograph.Text,
		*gograph.ColorMesh, *gograph.Line3D, *gograph.Points3D, *gograph.Text3D:
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

// Render writes an HTML page with every visible artist.
func (s *Surface) Render(w io.Writer) error {
	built, err := s.buildCharts()
	if err != nil {
		return err
	}
	page := components.NewPage()
	if s.title != "" {
		page.PageTitle = s.title
	}
	page.AddCharts(built...)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("error rendering page: %v", err)
	}
	return nil
}

func (s *Surface) buildCharts() ([]components.Charter, error) {
	labels := map[string]string{}
	legendData := make([]string, 0, len(s.legend))
	for _, e := range s.legend {
		labels[e.Key] = e.Label
		legendData = append(legendData, e.Label)
	}
	name := func(key string) string {
		if label, ok := labels[key]; ok {
			return label
		}
		return key
	}
	vx, vy := s.viewSpans()

	var (
		line      *charts.Line
		scatter   *charts.Scatter
		line3d    *charts.Line3D
		scatter3d *charts.Scatter3D
		meshes    []*charts.HeatMap
		visible   int
	)
	for _, key := range s.keys {
		if s.hidden[key] {
			continue
		}
		visible++
		switch t := s.artists[key].(type) {
		case *gograph.Line:
			if line == nil {
				line = charts.NewLine()
			}
			line.AddSeries(name(key), lineData(t.XData(), t.YData()), lineStyle(t.Color(), t.Width(), t.Style()))
		case *gograph.Straight:
			if line == nil {
				line = charts.NewLine()
			}
			x1, y1, x2, y2 := t.Clip(vx, vy)
			line.AddSeries(name(key), lineData([]float64{x1, x2}, []float64{y1, y2}), lineStyle(t.Color(), t.Width(), t.Style()))
		case *gograph.Points:
			if scatter == nil {
				scatter = charts.NewScatter()
			}
			scatter.AddSeries(name(key), scatterData(t),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: gograph.HexColor(t.ColorAt(0))}))
		case *gograph.Text:
			if scatter == nil {
				scatter = charts.NewScatter()
			}
			x, y := t.Anchor()
			if t.Coords() == gograph.CoordsFraction {
				x = vx.Min + x*vx.Width()
				y = vy.Min + y*vy.Width()
			}
			scatter.AddSeries(name(key), []opts.ScatterData{{Value: []interface{}{x, y}, SymbolSize: 1}},
				charts.WithLabelOpts(opts.Label{
					Show:      opts.Bool(true),
					Formatter: t.Content(),
					Position:  "top",
					Color:     gograph.HexColor(t.Color()),
				}))
		case *gograph.ColorMesh:
			meshes = append(meshes, s.heatmap(t, name(key)))
		case *gograph.Line3D:
			if line3d == nil {
				line3d = charts.NewLine3D()
				line3d.SetGlobalOptions(s.threeDOptions()...)
			}
			line3d.AddSeries(name(key), chart3DData(t.XData(), t.YData(), t.ZData()),
				charts.WithLineStyleOpts(opts.LineStyle{Color: gograph.HexColor(t.Color()), Width: float32(t.Width())}))
		case *gograph.Points3D:
			if scatter3d == nil {
				scatter3d = charts.NewScatter3D()
				scatter3d.SetGlobalOptions(s.threeDOptions()...)
			}
			scatter3d.AddSeries(name(key), chart3DData(t.XData(), t.YData(), t.ZData()),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: gograph.HexColor(t.ColorAt(0))}))
		case *gograph.Text3D:
			if scatter3d == nil {
				scatter3d = charts.NewScatter3D()
				scatter3d.SetGlobalOptions(s.threeDOptions()...)
			}
			x, y := t.Anchor()
			scatter3d.AddSeries(name(key), []opts.Chart3DData{{Value: []interface{}{x, y, t.Z()}}},
				charts.WithLabelOpts(opts.Label{
					Show:      opts.Bool(true),
					Formatter: t.Content(),
					Color:     gograph.HexColor(t.Color()),
				}))
		}
	}
	if visible == 0 {
		return nil, fmt.Errorf("nothing to render: no visible artists")
	}

	var built []components.Charter
	if line != nil && scatter != nil {
		line.Overlap(scatter)
		scatter = nil
	}
	if line != nil {
		line.SetGlobalOptions(s.cartesianOptions(legendData)...)
		built = append(built, line)
	}
	if scatter != nil {
		scatter.SetGlobalOptions(s.cartesianOptions(legendData)...)
		built = append(built, scatter)
	}
	for _, hm := range meshes {
		built = append(built, hm)
	}
	if line3d != nil {
		built = append(built, line3d)
	}
	if scatter3d != nil {
		built = append(built, scatter3d)
	}
	return built, nil
}

func (s *Surface) cartesianOptions(legendData []string) []charts.GlobalOpts {
	xaxis := opts.XAxis{Name: s.xlabel, Type: "value"}
	yaxis := opts.YAxis{Name: s.ylabel, Type: "value"}
	if s.xlim != nil {
		xaxis.Min, xaxis.Max = s.xlim.Min, s.xlim.Max
	}
	if s.ylim != nil {
		yaxis.Min, yaxis.Max = s.ylim.Min, s.ylim.Max
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: s.width, Height: s.height}),
		charts.WithTitleOpts(opts.Title{Title: s.title}),
		charts.WithXAxisOpts(xaxis),
		charts.WithYAxisOpts(yaxis),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(len(legendData) > 0), Data: legendData}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func (s *Surface) threeDOptions() []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: s.width, Height: s.height}),
		charts.WithTitleOpts(opts.Title{Title: s.title}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: s.xlabel, Type: "value"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: s.ylabel, Type: "value"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Type: "value"}),
	}
}

func (s *Surface) heatmap(m *gograph.ColorMesh, seriesName string) *charts.HeatMap {
	hm := charts.NewHeatMap()
	xs := m.XGrid()
	ys := m.YGrid()
	xcats := make([]string, len(xs))
	for i, v := range xs {
		xcats[i] = fmt.Sprintf("%g", v)
	}
	ycats := make([]string, len(ys))
	for i, v := range ys {
		ycats[i] = fmt.Sprintf("%g", v)
	}
	data := make([]opts.HeatMapData, 0, len(xs)*len(ys))
	for row := range ys {
		for col := range xs {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{col, row, m.Value(col, row)}})
		}
	}
	span := m.ValueSpan()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: s.width, Height: s.height}),
		charts.WithXAxisOpts(opts.XAxis{Name: s.xlabel, Type: "category", Data: xcats}),
		charts.WithYAxisOpts(opts.YAxis{Name: s.ylabel, Type: "category", Data: ycats}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(span.Min),
			Max:        float32(span.Max),
			InRange:    &opts.VisualMapInRange{Color: paletteColors(m.Palette())},
		}),
	)
	hm.SetXAxis(xcats).AddSeries(seriesName, data)
	return hm
}

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

func lineData(xs, ys []float64) []opts.LineData {
	data := make([]opts.LineData, len(xs))
	for i := range xs {
		data[i] = opts.LineData{Value: []interface{}{xs[i], ys[i]}}
	}
	return data
}

func scatterData(p *gograph.Points) []opts.ScatterData {
	data := make([]opts.ScatterData, p.Len())
	for i := 0; i < p.Len(); i++ {
		data[i] = opts.ScatterData{
			Value:      []interface{}{p.XData()[i], p.YData()[i]},
			Symbol:     symbolFor(p.Marker()),
			SymbolSize: int(math.Round(p.SizeAt(i))),
		}
	}
	return data
}

func chart3DData(xs, ys, zs []float64) []opts.Chart3DData {
	data := make([]opts.Chart3DData, len(xs))
	for i := range xs {
		data[i] = opts.Chart3DData{Value: []interface{}{xs[i], ys[i], zs[i]}}
	}
	return data
}

func lineStyle(c color.RGBA, width float64, style string) charts.SeriesOpts {
	return charts.WithLineStyleOpts(opts.LineStyle{
		Color: gograph.HexColor(c),
		Width: float32(width),
		Type:  dashType(style),
	})
}

func dashType(style string) string {
	switch style {
	case "dashed", "dashdot":
		return "dashed"
	case "dotted":
		return "dotted"
	default:
		return "solid"
	}
}

func symbolFor(marker string) string {
	switch marker {
	case "square":
		return "rect"
	case "triangle":
		return "triangle"
	case "diamond":
		return "diamond"
	default:
		return "circle"
	}
}

func paletteColors(palette string) []string {
	if palette == "rainbow" {
		return []string{"#0000ff", "#00ffff", "#00ff00", "#ffff00", "#ff0000"}
	}
	return []string{"#fff5f0", "#fb6a4a", "#67000d"}
}

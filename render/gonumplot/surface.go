// Package gonumplot renders figures with gonum.org/v1/plot. It covers
// the 2D artists plus ColorMesh (as a heatmap); 3D artists are
// rejected.
package gonumplot

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pivolan/gograph"
)

// Surface retains attached artists and materializes a plot.Plot on
// Render.
type Surface struct {
	width  vg.Length
	height vg.Length

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

// WithSize sets the canvas size in inches.
func WithSize(widthIn, heightIn float64) Option {
	return func(s *Surface) {
		s.width = vg.Length(widthIn) * vg.Inch
		s.height = vg.Length(heightIn) * vg.Inch
	}
}

func New(opts ...Option) *Surface {
	s := &Surface{
		width:   8 * vg.Inch,
		height:  5 * vg.Inch,
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
	case *gograph.Line, *gograph.Straight, *gograph.Points, *gograph.Text, *gograph.ColorMesh:
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
func (s *Surface) RenderPNG(w io.Writer) error { return s.render("png", w) }

// RenderSVG writes the current state as an SVG document.
func (s *Surface) RenderSVG(w io.Writer) error { return s.render("svg", w) }

func (s *Surface) render(format string, w io.Writer) error {
	p, err := s.buildPlot()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(s.width, s.height, format)
	if err != nil {
		return fmt.Errorf("error rendering plot: %v", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("error writing plot: %v", err)
	}
	return nil
}

func (s *Surface) buildPlot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.title
	p.X.Label.Text = s.xlabel
	p.Y.Label.Text = s.ylabel

	labels := map[string]string{}
	for _, e := range s.legend {
		labels[e.Key] = e.Label
	}
	vx, vy := s.viewSpans()

	visible := 0
	for _, key := range s.keys {
		if s.hidden[key] {
			continue
		}
		visible++
		thumb, err := s.addArtist(p, s.artists[key], vx, vy)
		if err != nil {
			return nil, err
		}
		if label, ok := labels[key]; ok && thumb != nil {
			p.Legend.Add(label, thumb)
		}
	}
	if visible == 0 {
		return nil, fmt.Errorf("nothing to render: no visible artists")
	}
	if s.xlim != nil {
		p.X.Min, p.X.Max = s.xlim.Min, s.xlim.Max
	}
	if s.ylim != nil {
		p.Y.Min, p.Y.Max = s.ylim.Min, s.ylim.Max
	}
	p.Legend.Top = true
	return p, nil
}

func (s *Surface) addArtist(p *plot.Plot, a gograph.Artist, vx, vy gograph.Span) (plot.Thumbnailer, error) {
	switch t := a.(type) {
	case *gograph.Line:
		ln, err := plotter.NewLine(toXYs(t.XData(), t.YData()))
		if err != nil {
			return nil, fmt.Errorf("error building line: %v", err)
		}
		ln.LineStyle = lineStyle(t.Color(), t.Width(), t.Style())
		p.Add(ln)
		return ln, nil
	case *gograph.Straight:
		x1, y1, x2, y2 := t.Clip(vx, vy)
		ln, err := plotter.NewLine(plotter.XYs{{X: x1, Y: y1}, {X: x2, Y: y2}})
		if err != nil {
			return nil, fmt.Errorf("error building straight: %v", err)
		}
		ln.LineStyle = lineStyle(t.Color(), t.Width(), t.Style())
		p.Add(ln)
		return ln, nil
	case *gograph.Points:
		sc, err := plotter.NewScatter(toXYs(t.XData(), t.YData()))
		if err != nil {
			return nil, fmt.Errorf("error building scatter: %v", err)
		}
		shape := glyphFor(t.Marker())
		sc.GlyphStyle = draw.GlyphStyle{
			Color:  t.ColorAt(0),
			Radius: vg.Points(t.SizeAt(0) / 2),
			Shape:  shape,
		}
		sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{
				Color:  t.ColorAt(i),
				Radius: vg.Points(t.SizeAt(i) / 2),
				Shape:  shape,
			}
		}
		p.Add(sc)
		return sc, nil
	case *gograph.Text:
		x, y := t.Anchor()
		if t.Coords() == gograph.CoordsFraction {
			x = vx.Min + x*vx.Width()
			y = vy.Min + y*vy.Width()
		}
		lbl, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    plotter.XYs{{X: x, Y: y}},
			Labels: []string{t.Content()},
		})
		if err != nil {
			return nil, fmt.Errorf("error building label: %v", err)
		}
		for i := range lbl.TextStyle {
			lbl.TextStyle[i].Color = t.Color()
		}
		p.Add(lbl)
		return nil, nil
	case *gograph.ColorMesh:
		h := plotter.NewHeatMap(meshGrid{t}, paletteFor(t.Palette()))
		p.Add(h)
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported artist type %T", a)
	}
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

// meshGrid adapts a ColorMesh to plotter.GridXYZ.
type meshGrid struct {
	m *gograph.ColorMesh
}

func (g meshGrid) Dims() (c, r int)   { return len(g.m.XGrid()), len(g.m.YGrid()) }
func (g meshGrid) Z(c, r int) float64 { return g.m.Value(c, r) }
func (g meshGrid) X(c int) float64    { return g.m.XGrid()[c] }
func (g meshGrid) Y(r int) float64    { return g.m.YGrid()[r] }

func toXYs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

func lineStyle(c color.RGBA, width float64, style string) draw.LineStyle {
	ls := draw.LineStyle{Color: c, Width: vg.Points(width)}
	switch style {
	case "dashed":
		ls.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	case "dotted":
		ls.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	case "dashdot":
		ls.Dashes = []vg.Length{vg.Points(5), vg.Points(2), vg.Points(2), vg.Points(2)}
	}
	return ls
}

func glyphFor(marker string) draw.GlyphDrawer {
	switch marker {
	case "square":
		return draw.BoxGlyph{}
	case "triangle":
		return draw.PyramidGlyph{}
	case "diamond":
		return draw.SquareGlyph{}
	case "cross":
		return draw.CrossGlyph{}
	case "plus":
		return draw.PlusGlyph{}
	default:
		return draw.CircleGlyph{}
	}
}

func paletteFor(name string) palette.Palette {
	if name == "rainbow" {
		return palette.Rainbow(12, palette.Blue, palette.Red, 1, 1, 1)
	}
	return palette.Heat(12, 1)
}

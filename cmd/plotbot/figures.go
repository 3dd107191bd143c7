package main

import (
	"fmt"

	"github.com/pivolan/gograph"
	"github.com/pivolan/gograph/domain/models"
)

const densityBuckets = 40

// densityCurve estimates the value distribution with a fixed-bucket
// histogram normalized to unit area.
func densityCurve(numbers []float64, buckets int) ([]float64, []float64) {
	min, max := numbers[0], numbers[0]
	for _, v := range numbers {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return []float64{min}, []float64{1}
	}
	width := (max - min) / float64(buckets)
	counts := make([]float64, buckets)
	for _, v := range numbers {
		i := int((v - min) / width)
		if i >= buckets {
			i = buckets - 1
		}
		counts[i]++
	}
	xs := make([]float64, buckets)
	ys := make([]float64, buckets)
	total := float64(len(numbers))
	for i := range counts {
		xs[i] = min + (float64(i)+0.5)*width
		ys[i] = counts[i] / (total * width)
	}
	return xs, ys
}

// densityFigure plots the distribution of pasted numbers with vertical
// guides at the median and tail quantiles.
func densityFigure(s gograph.Surface, numbers []float64, stats NumberStats) (*gograph.Figure, error) {
	if len(numbers) == 0 {
		return nil, fmt.Errorf("no numbers to plot")
	}
	fig, err := gograph.New(s,
		gograph.WithTitle(fmt.Sprintf("Density of %d numbers", stats.Count)),
		gograph.WithXLabel("value"),
		gograph.WithYLabel("density"),
	)
	if err != nil {
		return nil, err
	}
	xs, ys := densityCurve(numbers, densityBuckets)
	curve, err := gograph.NewLine(xs, ys, "density",
		gograph.LineColor("steelblue"), gograph.LineWidth(2))
	if err != nil {
		return nil, err
	}
	if err := fig.Add(curve); err != nil {
		return nil, err
	}

	guides := []struct {
		x     float64
		name  string
		style string
	}{
		{stats.Median, "median", "dashed"},
		{stats.Quantiles[0.01], "q0.01", "dotted"},
		{stats.Quantiles[0.99], "q0.99", "dotted"},
	}
	for _, g := range guides {
		guide, err := gograph.NewStraight(g.x, 0, 0, 1, g.name,
			gograph.LineColor("gray"), gograph.LineStyle(g.style))
		if err != nil {
			return nil, err
		}
		if err := fig.Add(guide); err != nil {
			return nil, err
		}
	}

	note, err := gograph.NewText(0.02, 0.95,
		fmt.Sprintf("mean %.4g, std dev %.4g", stats.Mean, stats.StdDev), "note",
		gograph.TextCoords(gograph.CoordsFraction))
	if err != nil {
		return nil, err
	}
	if err := fig.Add(note); err != nil {
		return nil, err
	}
	return fig, nil
}

// histogramFigure draws bucket counts as a staircase line.
func histogramFigure(s gograph.Surface, column string, buckets []models.HistogramBucket) (*gograph.Figure, error) {
	if len(buckets) == 0 {
		return nil, fmt.Errorf("no buckets to plot")
	}
	fig, err := gograph.New(s,
		gograph.WithTitle(fmt.Sprintf("Histogram of %s", column)),
		gograph.WithXLabel(column),
		gograph.WithYLabel("rows"),
	)
	if err != nil {
		return nil, err
	}
	xs := make([]float64, 0, len(buckets)*2)
	ys := make([]float64, 0, len(buckets)*2)
	for _, b := range buckets {
		xs = append(xs, b.Low, b.High)
		ys = append(ys, float64(b.Count), float64(b.Count))
	}
	steps, err := gograph.NewLine(xs, ys, "frequency",
		gograph.LineColor("steelblue"), gograph.LineWidth(2))
	if err != nil {
		return nil, err
	}
	if err := fig.Add(steps); err != nil {
		return nil, err
	}
	return fig, nil
}

// timeSeriesFigure draws row counts per time bucket and marks the peak.
func timeSeriesFigure(s gograph.Surface, column, unit string, counts []models.DateCount) (*gograph.Figure, error) {
	if len(counts) == 0 {
		return nil, fmt.Errorf("no date buckets to plot")
	}
	xlabel := unit
	if len(counts) > 1 {
		xlabel = fmt.Sprintf("%s (%s .. %s)", unit, counts[0].Date, counts[len(counts)-1].Date)
	}
	fig, err := gograph.New(s,
		gograph.WithTitle(fmt.Sprintf("Rows per %s by %s", unit, column)),
		gograph.WithXLabel(xlabel),
		gograph.WithYLabel("rows"),
	)
	if err != nil {
		return nil, err
	}

	xs := make([]float64, len(counts))
	ys := make([]float64, len(counts))
	peak := 0
	for i, c := range counts {
		xs[i] = float64(i)
		ys[i] = float64(c.Count)
		if c.Count > counts[peak].Count {
			peak = i
		}
	}
	line, err := gograph.NewLine(xs, ys, "rows", gograph.LineColor("seagreen"), gograph.LineWidth(2))
	if err != nil {
		return nil, err
	}
	if err := fig.Add(line); err != nil {
		return nil, err
	}
	marker, err := gograph.NewPoints([]float64{xs[peak]}, []float64{ys[peak]}, "peak",
		gograph.PointColor("red"), gograph.PointSize(6))
	if err != nil {
		return nil, err
	}
	if err := fig.AddWithLabel(marker, fmt.Sprintf("peak %s", counts[peak].Date)); err != nil {
		return nil, err
	}
	return fig, nil
}

// heatmapFigure turns grid cell counts into a ColorMesh spanning the two
// column ranges. Cells outside the grid are clamped to the border.
func heatmapFigure(s gograph.Surface, xcol, ycol string, cells []models.GridCell, xr, yr models.HistogramBucket, n int) (*gograph.Figure, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("no grid cells to plot")
	}
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}
	clamp := func(i int) int {
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}
	for _, c := range cells {
		values[clamp(c.YBucket)][clamp(c.XBucket)] += float64(c.Count)
	}
	xw := (xr.High - xr.Low) / float64(n)
	yw := (yr.High - yr.Low) / float64(n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = xr.Low + (float64(i)+0.5)*xw
		ys[i] = yr.Low + (float64(i)+0.5)*yw
	}

	fig, err := gograph.New(s,
		gograph.WithTitle(fmt.Sprintf("Density of %s vs %s", xcol, ycol)),
		gograph.WithXLabel(xcol),
		gograph.WithYLabel(ycol),
	)
	if err != nil {
		return nil, err
	}
	mesh, err := gograph.NewColorMesh(xs, ys, values, "density", gograph.MeshPalette("heat"))
	if err != nil {
		return nil, err
	}
	if err := fig.Add(mesh); err != nil {
		return nil, err
	}
	return fig, nil
}

// scatterFigure plots sampled column pairs.
func scatterFigure(s gograph.Surface, xcol, ycol string, rows []models.PairRow) (*gograph.Figure, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to plot")
	}
	fig, err := gograph.New(s,
		gograph.WithTitle(fmt.Sprintf("%s vs %s", xcol, ycol)),
		gograph.WithXLabel(xcol),
		gograph.WithYLabel(ycol),
	)
	if err != nil {
		return nil, err
	}
	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, row := range rows {
		xs[i] = row.X
		ys[i] = row.Y
	}
	points, err := gograph.NewPoints(xs, ys, "samples",
		gograph.PointColor("steelblue"), gograph.PointSize(4))
	if err != nil {
		return nil, err
	}
	if err := fig.AddWithLabel(points, fmt.Sprintf("%d samples", len(rows))); err != nil {
		return nil, err
	}
	return fig, nil
}

package gograph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineValidation(t *testing.T) {
	_, err := NewLine([]float64{1, 2}, []float64{1}, "a")
	assert.True(t, IsOption(err), "length mismatch: %v", err)

	_, err = NewLine(nil, nil, "a")
	assert.True(t, IsOption(err), "empty data: %v", err)

	_, err = NewLine([]float64{1}, []float64{1}, "")
	assert.True(t, IsOption(err), "empty name: %v", err)

	_, err = NewLine([]float64{1, math.NaN()}, []float64{1, 2}, "a")
	assert.True(t, IsOption(err), "non finite data: %v", err)

	_, err = NewLine([]float64{1, 2}, []float64{1, 2}, "a", LineColor("nope"))
	assert.True(t, IsOption(err), "bad color: %v", err)

	_, err = NewLine([]float64{1, 2}, []float64{1, 2}, "a", LineStyle("wavy"))
	assert.True(t, IsOption(err), "bad style: %v", err)
	assert.Contains(t, err.Error(), "solid, dashed, dotted, dashdot")

	_, err = NewLine([]float64{1, 2}, []float64{1, 2}, "a", LineWidth(-1))
	assert.True(t, IsOption(err), "bad width: %v", err)
}

func TestLineCopiesData(t *testing.T) {
	xs := []float64{1, 2, 3}
	ys := []float64{4, 5, 6}
	l, err := NewLine(xs, ys, "a")
	require.NoError(t, err)

	xs[0] = 100
	ext, ok := l.Extent()
	require.True(t, ok)
	assert.Equal(t, Span{Min: 1, Max: 3}, ext.X)
	assert.Equal(t, Span{Min: 4, Max: 6}, ext.Y)
}

func TestStraight(t *testing.T) {
	_, err := NewStraight(0, 0, 0, 0, "s")
	assert.True(t, IsOption(err), "zero direction: %v", err)

	s, err := NewStraight(1, 2, 0, 1, "s", LineColor("r"), LineStyle("dashed"))
	require.NoError(t, err)
	assert.True(t, s.Legendable())

	ext, ok := s.Extent()
	require.True(t, ok)
	assert.Equal(t, Span{Min: 1, Max: 1}, ext.X)
	assert.Equal(t, Span{Min: 2, Max: 2}, ext.Y)
}

func TestStraightClip(t *testing.T) {
	vx := Span{Min: 0, Max: 10}
	vy := Span{Min: 0, Max: 4}

	vertical, err := NewStraight(5, 1, 0, 1, "v")
	require.NoError(t, err)
	x1, y1, x2, y2 := vertical.Clip(vx, vy)
	assert.Equal(t, 5.0, x1)
	assert.Equal(t, 5.0, x2)
	assert.Equal(t, 0.0, y1)
	assert.Equal(t, 4.0, y2)

	diagonal, err := NewStraight(0, 0, 1, 1, "d")
	require.NoError(t, err)
	x1, y1, x2, y2 = diagonal.Clip(vx, vy)
	assert.Equal(t, 0.0, x1)
	assert.Equal(t, 0.0, y1)
	assert.Equal(t, 4.0, x2)
	assert.Equal(t, 4.0, y2)

	outside, err := NewStraight(5, 20, 1, 0, "o")
	require.NoError(t, err)
	x1, y1, x2, y2 = outside.Clip(vx, vy)
	assert.Equal(t, [4]float64{5, 20, 5, 20}, [4]float64{x1, y1, x2, y2})
}

func TestNewPointsValidation(t *testing.T) {
	xs := []float64{1, 2, 3}
	ys := []float64{4, 5, 6}

	_, err := NewPoints(xs, ys, "p", PointColor("r", "g"))
	assert.True(t, IsOption(err), "color count: %v", err)

	_, err = NewPoints(xs, ys, "p", PointSize(1, 2))
	assert.True(t, IsOption(err), "size count: %v", err)

	_, err = NewPoints(xs, ys, "p", PointSize(0))
	assert.True(t, IsOption(err), "zero size: %v", err)

	_, err = NewPoints(xs, ys, "p", PointMarker("star"))
	assert.True(t, IsOption(err), "bad marker: %v", err)

	p, err := NewPoints(xs, ys, "p", PointColor("r", "g", "b"), PointSize(4))
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), p.ColorAt(0).R)
	assert.Equal(t, uint8(0x80), p.ColorAt(1).G)
	assert.Equal(t, 4.0, p.SizeAt(2))
	assert.Equal(t, "circle", p.Marker())
}

func TestText(t *testing.T) {
	_, err := NewText(0, 0, "", "t")
	assert.True(t, IsOption(err), "empty content: %v", err)

	_, err = NewText(0, 0, "hi", "t", TextCoords("screen"))
	assert.True(t, IsOption(err), "bad coords: %v", err)

	data, err := NewText(3, 4, "hi", "t")
	require.NoError(t, err)
	assert.False(t, data.Legendable())
	ext, ok := data.Extent()
	require.True(t, ok)
	assert.Equal(t, Span{Min: 3, Max: 3}, ext.X)

	frac, err := NewText(0.5, 0.9, "hi", "t", TextCoords(CoordsFraction), TextOffset(5, -5))
	require.NoError(t, err)
	_, ok = frac.Extent()
	assert.False(t, ok, "fraction text has no data extent")
	dx, dy := frac.Offset()
	assert.Equal(t, 5.0, dx)
	assert.Equal(t, -5.0, dy)
}

func TestArtists3D(t *testing.T) {
	xs := []float64{0, 1}
	ys := []float64{0, 1}

	_, err := NewLine3D(xs, ys, []float64{0}, "l")
	assert.True(t, IsOption(err), "z length: %v", err)

	l, err := NewLine3D(xs, ys, []float64{-2, 5}, "l", LineColor("b"))
	require.NoError(t, err)
	ext, ok := l.Extent()
	require.True(t, ok)
	assert.True(t, ext.HasZ)
	assert.Equal(t, Span{Min: -2, Max: 5}, ext.Z)

	p, err := NewPoints3D(xs, ys, []float64{1, 1}, "p")
	require.NoError(t, err)
	ext, ok = p.Extent()
	require.True(t, ok)
	assert.Equal(t, Span{Min: 1, Max: 1}, ext.Z)

	txt, err := NewText3D(1, 2, 3, "mark", "t")
	require.NoError(t, err)
	assert.Equal(t, 3.0, txt.Z())
	assert.False(t, txt.Legendable())
}

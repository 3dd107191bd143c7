package gograph

import "fmt"

// Three dimensional artist variants. They extend the 2D artists with a
// z series and are accepted only by figures created with
// WithProjection3D.

func checkZ(zs []float64, n int) error {
	if len(zs) != n {
		return &OptionError{Option: "data", Reason: fmt.Sprintf("z length %d does not match %d points", len(zs), n)}
	}
	for i, v := range zs {
		if !finite(v) {
			return &OptionError{Option: "data", Reason: fmt.Sprintf("z value %d is not finite", i)}
		}
	}
	return nil
}

// Line3D is a polyline in three dimensions.
type Line3D struct {
	Line
	zs []float64
}

func NewLine3D(x, y, z []float64, name string, opts ...LineOpt) (*Line3D, error) {
	base, err := NewLine(x, y, name, opts...)
	if err != nil {
		return nil, err
	}
	if err := checkZ(z, len(x)); err != nil {
		return nil, err
	}
	return &Line3D{Line: *base, zs: append([]float64(nil), z...)}, nil
}

func (l *Line3D) ZData() []float64 { return l.zs }

func (l *Line3D) Extent() (Extent, bool) {
	ext, ok := l.Line.Extent()
	if !ok {
		return Extent{}, false
	}
	zs, okZ := spanOf(l.zs)
	if !okZ {
		return Extent{}, false
	}
	ext.Z = zs
	ext.HasZ = true
	return ext, true
}

func (*Line3D) threeDimensional() {}

// Points3D is a scatter in three dimensions.
type Points3D struct {
	Points
	zs []float64
}

func NewPoints3D(x, y, z []float64, name string, opts ...PointsOpt) (*Points3D, error) {
	base, err := NewPoints(x, y, name, opts...)
	if err != nil {
		return nil, err
	}
	if err := checkZ(z, len(x)); err != nil {
		return nil, err
	}
	return &Points3D{Points: *base, zs: append([]float64(nil), z...)}, nil
}

func (p *Points3D) ZData() []float64 { return p.zs }

func (p *Points3D) Extent() (Extent, bool) {
	ext, ok := p.Points.Extent()
	if !ok {
		return Extent{}, false
	}
	zs, okZ := spanOf(p.zs)
	if !okZ {
		return Extent{}, false
	}
	ext.Z = zs
	ext.HasZ = true
	return ext, true
}

func (*Points3D) threeDimensional() {}

// Text3D is an annotation anchored in three dimensions.
type Text3D struct {
	Text
	z float64
}

func NewText3D(x, y, z float64, content, name string, opts ...TextOpt) (*Text3D, error) {
	base, err := NewText(x, y, content, name, opts...)
	if err != nil {
		return nil, err
	}
	if !finite(z) {
		return nil, &OptionError{Option: "data", Reason: "anchor must be finite"}
	}
	return &Text3D{Text: *base, z: z}, nil
}

func (t *Text3D) Z() float64 { return t.z }

func (t *Text3D) Extent() (Extent, bool) {
	ext, ok := t.Text.Extent()
	if !ok {
		return Extent{}, false
	}
	ext.Z = Span{Min: t.z, Max: t.z}
	ext.HasZ = true
	return ext, true
}

func (*Text3D) threeDimensional() {}

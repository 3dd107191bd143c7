package gograph

import "math"

// Span is a closed interval on a single axis.
type Span struct {
	Min float64
	Max float64
}

// Width returns Max - Min.
func (s Span) Width() float64 { return s.Max - s.Min }

// Union returns the smallest span covering both s and o.
func (s Span) Union(o Span) Span {
	return Span{Min: math.Min(s.Min, o.Min), Max: math.Max(s.Max, o.Max)}
}

// Pad widens the span by margin (a fraction of the width) on each side.
// A degenerate span widens symmetrically by epsilon instead, so a single
// point or a flat line still gets a visible range.
func (s Span) Pad(margin, epsilon float64) Span {
	w := s.Width()
	if w <= 0 {
		return Span{Min: s.Min - epsilon, Max: s.Max + epsilon}
	}
	return Span{Min: s.Min - w*margin, Max: s.Max + w*margin}
}

// Extent is the data bounding box of an artist. HasZ marks extents of
// three dimensional artists.
type Extent struct {
	X    Span
	Y    Span
	Z    Span
	HasZ bool
}

// Union returns the elementwise union of two extents.
func (e Extent) Union(o Extent) Extent {
	u := Extent{X: e.X.Union(o.X), Y: e.Y.Union(o.Y)}
	switch {
	case e.HasZ && o.HasZ:
		u.Z = e.Z.Union(o.Z)
		u.HasZ = true
	case e.HasZ:
		u.Z = e.Z
		u.HasZ = true
	case o.HasZ:
		u.Z = o.Z
		u.HasZ = true
	}
	return u
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// spanOf scans values for finite min and max. Reports false when no
// finite value is present.
func spanOf(values []float64) (Span, bool) {
	s := Span{Min: math.Inf(1), Max: math.Inf(-1)}
	ok := false
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		ok = true
	}
	if !ok {
		return Span{}, false
	}
	return s, true
}

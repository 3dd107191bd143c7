package gograph

import (
	"math"
	"testing"
)

func TestSpanPad(t *testing.T) {
	tests := []struct {
		name    string
		span    Span
		margin  float64
		epsilon float64
		want    Span
	}{
		{
			name:    "proportional margin",
			span:    Span{Min: 0, Max: 3},
			margin:  0.05,
			epsilon: 1e-3,
			want:    Span{Min: -0.15, Max: 3.15},
		},
		{
			name:    "unit width",
			span:    Span{Min: 2, Max: 3},
			margin:  0.05,
			epsilon: 1e-3,
			want:    Span{Min: 1.95, Max: 3.05},
		},
		{
			name:    "degenerate uses epsilon",
			span:    Span{Min: 4, Max: 4},
			margin:  0.05,
			epsilon: 1e-3,
			want:    Span{Min: 3.999, Max: 4.001},
		},
		{
			name:    "zero margin keeps bounds",
			span:    Span{Min: -1, Max: 1},
			margin:  0,
			epsilon: 1e-3,
			want:    Span{Min: -1, Max: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.span.Pad(tt.margin, tt.epsilon)
			if math.Abs(got.Min-tt.want.Min) > 1e-12 || math.Abs(got.Max-tt.want.Max) > 1e-12 {
				t.Errorf("Pad() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanUnion(t *testing.T) {
	a := Span{Min: 0, Max: 1}
	b := Span{Min: 2, Max: 3}
	got := a.Union(b)
	if got.Min != 0 || got.Max != 3 {
		t.Errorf("Union() = %v, want {0 3}", got)
	}
}

func TestExtentUnionZ(t *testing.T) {
	flat := Extent{X: Span{0, 1}, Y: Span{0, 1}}
	deep := Extent{X: Span{2, 3}, Y: Span{2, 3}, Z: Span{-1, 1}, HasZ: true}

	got := flat.Union(deep)
	if !got.HasZ {
		t.Fatal("union lost the z span")
	}
	if got.Z != (Span{-1, 1}) {
		t.Errorf("Z = %v, want {-1 1}", got.Z)
	}
	if got.X != (Span{0, 3}) || got.Y != (Span{0, 3}) {
		t.Errorf("X, Y = %v, %v, want {0 3}, {0 3}", got.X, got.Y)
	}
}

func TestSpanOf(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Span
		wantOK bool
	}{
		{"plain", []float64{3, 1, 2}, Span{Min: 1, Max: 3}, true},
		{"single", []float64{5}, Span{Min: 5, Max: 5}, true},
		{"skips non finite", []float64{math.NaN(), 1, math.Inf(1), 4}, Span{Min: 1, Max: 4}, true},
		{"empty", nil, Span{}, false},
		{"all non finite", []float64{math.NaN(), math.Inf(-1)}, Span{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := spanOf(tt.values)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("spanOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

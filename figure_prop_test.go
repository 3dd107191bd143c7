package gograph_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/pivolan/gograph"
	"github.com/pivolan/gograph/surfacetest"
)

// Drives a figure with a random add/remove/clear sequence against a
// plain map+slice model and checks the bookkeeping invariants after
// every step.
func TestFigureTrackingProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		fake := surfacetest.New()
		fig, err := gograph.New(fake)
		require.NoError(rt, err)

		type entry struct {
			key string
			x   gograph.Span
			y   gograph.Span
		}
		var model []entry
		tracked := func(key string) int {
			for i, e := range model {
				if e.key == key {
					return i
				}
			}
			return -1
		}

		keys := []string{"a", "b", "c", "d", "e", "f"}
		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 9).Draw(rt, "op") {
			case 0, 1, 2, 3, 4: // add
				key := rapid.SampledFrom(keys).Draw(rt, "addKey")
				x0 := rapid.Float64Range(-100, 100).Draw(rt, "x0")
				w := rapid.Float64Range(0, 50).Draw(rt, "w")
				y0 := rapid.Float64Range(-100, 100).Draw(rt, "y0")
				h := rapid.Float64Range(0, 50).Draw(rt, "h")
				l, err := gograph.NewLine([]float64{x0, x0 + w}, []float64{y0, y0 + h}, key)
				require.NoError(rt, err)

				err = fig.Add(l)
				if tracked(key) >= 0 {
					require.True(rt, gograph.IsDuplicateKey(err), "add %q: %v", key, err)
				} else {
					require.NoError(rt, err)
					model = append(model, entry{key: key, x: gograph.Span{Min: x0, Max: x0 + w}, y: gograph.Span{Min: y0, Max: y0 + h}})
				}
			case 5, 6, 7: // remove
				key := rapid.SampledFrom(keys).Draw(rt, "removeKey")
				err := fig.Remove(key)
				if idx := tracked(key); idx >= 0 {
					require.NoError(rt, err)
					model = append(model[:idx], model[idx+1:]...)
				} else {
					require.True(rt, gograph.IsNotFound(err), "remove %q: %v", key, err)
				}
			case 8: // visibility must not disturb tracking
				key := rapid.SampledFrom(keys).Draw(rt, "hideKey")
				hide := rapid.Bool().Draw(rt, "hide")
				err := fig.SetVisible(key, !hide)
				if tracked(key) >= 0 {
					require.NoError(rt, err)
				} else {
					require.True(rt, gograph.IsNotFound(err))
				}
			case 9: // clear
				fig.Clear()
				model = nil
			}

			// tracked keys match the model, in insertion order
			want := make([]string, len(model))
			for j, e := range model {
				want[j] = e.key
			}
			require.Equal(rt, want, fig.Names(), "step %d", i)
			for _, e := range model {
				require.True(rt, fig.Contains(e.key))
			}

			// legend mirrors the tracked keys
			require.Equal(rt, want, labelsOf(fake.Legend), "step %d legend", i)

			// limits are the padded union of the tracked extents
			if len(model) == 0 {
				require.True(rt, fake.Auto, "step %d: no artists, limits must be auto", i)
				continue
			}
			ux, uy := model[0].x, model[0].y
			for _, e := range model[1:] {
				ux = ux.Union(e.x)
				uy = uy.Union(e.y)
			}
			wantX := ux.Pad(gograph.DefaultMargin, gograph.DefaultEpsilon)
			wantY := uy.Pad(gograph.DefaultMargin, gograph.DefaultEpsilon)
			require.InDelta(rt, wantX.Min, fake.XMin, 1e-9, "step %d", i)
			require.InDelta(rt, wantX.Max, fake.XMax, 1e-9, "step %d", i)
			require.InDelta(rt, wantY.Min, fake.YMin, 1e-9, "step %d", i)
			require.InDelta(rt, wantY.Max, fake.YMax, 1e-9, "step %d", i)
		}
	})
}

func labelsOf(entries []gograph.LegendEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}

// Figure.Limits must agree with what lands on the surface.
func TestFigureLimitsMatchSurface(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		fake := surfacetest.New()
		fig, err := gograph.New(fake)
		require.NoError(rt, err)

		n := rapid.IntRange(1, 8).Draw(rt, "artists")
		for i := 0; i < n; i++ {
			x0 := rapid.Float64Range(-1000, 1000).Draw(rt, "x0")
			y0 := rapid.Float64Range(-1000, 1000).Draw(rt, "y0")
			p, err := gograph.NewPoints([]float64{x0}, []float64{y0}, fmt.Sprintf("p%d", i))
			require.NoError(rt, err)
			require.NoError(rt, fig.Add(p))
		}

		x, y, ok := fig.Limits()
		require.True(rt, ok)
		require.Equal(rt, fake.XMin, x.Min)
		require.Equal(rt, fake.XMax, x.Max)
		require.Equal(rt, fake.YMin, y.Min)
		require.Equal(rt, fake.YMax, y.Max)
	})
}

package gograph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/gograph"
	"github.com/pivolan/gograph/surfacetest"
)

func legendFigure(t *testing.T) (*gograph.Figure, *surfacetest.Surface) {
	t.Helper()
	fake := surfacetest.New()
	fig, err := gograph.New(fake)
	require.NoError(t, err)
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, fig.Add(line(t, name, []float64{0, 1}, []float64{0, 1})))
	}
	return fig, fake
}

func TestLegendSelect(t *testing.T) {
	fig, fake := legendFigure(t)

	require.NoError(t, fig.Legend().Select("c", "a"))
	// selection never reorders: entries follow insertion order
	assert.Equal(t, []string{"a", "c"}, fake.LegendLabels())

	require.NoError(t, fig.Legend().Add("b"))
	assert.Equal(t, []string{"a", "b", "c"}, fake.LegendLabels())

	require.NoError(t, fig.Legend().Deselect("a", "b"))
	assert.Equal(t, []string{"c"}, fake.LegendLabels())

	fig.Legend().SelectAll()
	assert.Equal(t, []string{"a", "b", "c"}, fake.LegendLabels())

	fig.Legend().DeselectAll()
	assert.Empty(t, fake.LegendLabels())
}

func TestLegendSelectUnknownKey(t *testing.T) {
	fig, fake := legendFigure(t)

	err := fig.Legend().Select("a", "ghost")
	assert.True(t, gograph.IsNotFound(err))
	assert.Equal(t, []string{"a", "b", "c"}, fake.LegendLabels(), "failed select changes nothing")
}

func TestLegendRejectsNonLegendable(t *testing.T) {
	fig, _ := legendFigure(t)
	note, err := gograph.NewText(0, 0, "note", "note")
	require.NoError(t, err)
	require.NoError(t, fig.Add(note))

	err = fig.Legend().Select("note")
	assert.True(t, gograph.IsOption(err))
}

func TestLegendDeselectFromAllMode(t *testing.T) {
	fig, fake := legendFigure(t)

	require.NoError(t, fig.Legend().Deselect("b"))
	assert.Equal(t, []string{"a", "c"}, fake.LegendLabels())

	// artists added later stay out until selected while in subset mode
	require.NoError(t, fig.Add(line(t, "d", []float64{0, 1}, []float64{0, 1})))
	assert.Equal(t, []string{"a", "c"}, fake.LegendLabels())

	require.NoError(t, fig.Legend().Add("d"))
	assert.Equal(t, []string{"a", "c", "d"}, fake.LegendLabels())
}

func TestLegendRemovedArtistDropsOut(t *testing.T) {
	fig, fake := legendFigure(t)
	require.NoError(t, fig.Legend().Select("a", "b"))
	require.NoError(t, fig.Remove("a"))
	assert.Equal(t, []string{"b"}, fake.LegendLabels())

	// re-adding under the old key starts unselected in subset mode
	require.NoError(t, fig.Add(line(t, "a", []float64{0, 1}, []float64{0, 1})))
	assert.Equal(t, []string{"b"}, fake.LegendLabels())
}

package gograph

// LegendEntry is one legend line: the tracked artist key and the label
// shown for it.
type LegendEntry struct {
	Key   string
	Label string
}

// Surface is the retained drawing target a Figure mutates. Render
// backends implement it; surfacetest provides a recording fake.
//
// Attach and Detach may fail (unsupported artist kind, unknown key); a
// Figure propagates such errors without changing its own state. The
// remaining methods are unconditional.
type Surface interface {
	// Attach hands an artist to the surface under its key.
	Attach(key string, a Artist) error
	// Detach removes a previously attached artist.
	Detach(key string) error
	// SetVisible toggles drawing of an attached artist without
	// detaching it.
	SetVisible(key string, visible bool) error
	// SetXLim and SetYLim fix the axis ranges.
	SetXLim(min, max float64)
	SetYLim(min, max float64)
	// AutoLimits restores the surface's own auto-scaling.
	AutoLimits()
	// SetLegend replaces the legend with the given entries, in order.
	// An empty slice hides the legend.
	SetLegend(entries []LegendEntry)
	// SetLabels sets the title and axis labels.
	SetLabels(title, xlabel, ylabel string)
}

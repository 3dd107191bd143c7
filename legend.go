package gograph

// Legend controls which tracked artists appear in the surface legend.
// By default every legendable artist is shown. Entries always follow
// the figure's insertion order; artists that opt out of the legend
// (text, meshes) never appear.
type Legend struct {
	fig      *Figure
	all      bool
	selected map[string]bool
}

// Entries returns the current legend lines in insertion order.
func (l *Legend) Entries() []LegendEntry {
	var entries []LegendEntry
	for _, key := range l.fig.keys {
		if !l.fig.artists[key].Legendable() {
			continue
		}
		if !l.all && !l.selected[key] {
			continue
		}
		entries = append(entries, LegendEntry{Key: key, Label: l.fig.labelFor(key)})
	}
	return entries
}

// Select restricts the legend to exactly the given keys. Unknown keys
// fail with NotFoundError, artists without a legend entry with
// OptionError; a failed call changes nothing.
func (l *Legend) Select(keys ...string) error {
	if err := l.check(keys); err != nil {
		return err
	}
	l.all = false
	l.selected = map[string]bool{}
	for _, key := range keys {
		l.selected[key] = true
	}
	l.fig.rebuildLegend()
	return nil
}

// Add extends the current selection with the given keys.
func (l *Legend) Add(keys ...string) error {
	if err := l.check(keys); err != nil {
		return err
	}
	if l.all {
		return nil
	}
	for _, key := range keys {
		l.selected[key] = true
	}
	l.fig.rebuildLegend()
	return nil
}

// Deselect drops the given keys from the legend.
func (l *Legend) Deselect(keys ...string) error {
	if err := l.check(keys); err != nil {
		return err
	}
	if l.all {
		l.all = false
		l.selected = map[string]bool{}
		for _, key := range l.fig.keys {
			if l.fig.artists[key].Legendable() {
				l.selected[key] = true
			}
		}
	}
	for _, key := range keys {
		delete(l.selected, key)
	}
	l.fig.rebuildLegend()
	return nil
}

// SelectAll restores the default of showing every legendable artist.
func (l *Legend) SelectAll() {
	l.all = true
	l.selected = map[string]bool{}
	l.fig.rebuildLegend()
}

// DeselectAll empties the legend until keys are selected again.
func (l *Legend) DeselectAll() {
	l.all = false
	l.selected = map[string]bool{}
	l.fig.rebuildLegend()
}

func (l *Legend) check(keys []string) error {
	for _, key := range keys {
		a, ok := l.fig.artists[key]
		if !ok {
			return &NotFoundError{Key: key, Known: l.fig.Names()}
		}
		if !a.Legendable() {
			return &OptionError{Option: "legend", Value: key, Reason: "artist has no legend entry"}
		}
	}
	return nil
}

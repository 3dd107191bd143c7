package gograph

import (
	"fmt"

	"github.com/pivolan/go_utils"
)

// AutoscaleMode selects which axes a figure rescales after a change.
type AutoscaleMode string

const (
	AutoscaleAll    AutoscaleMode = "all"
	AutoscaleWidth  AutoscaleMode = "width"
	AutoscaleHeight AutoscaleMode = "height"
	AutoscaleNone   AutoscaleMode = "none"
)

var autoscaleModes = []string{
	string(AutoscaleAll),
	string(AutoscaleWidth),
	string(AutoscaleHeight),
	string(AutoscaleNone),
}

// Defaults for the limit padding.
const (
	DefaultMargin  = 0.05
	DefaultEpsilon = 1e-3
)

// Figure tracks named artists on a surface. Every successful add or
// remove re-derives the axis limits from the union of the tracked
// extents and rebuilds the legend in insertion order. A failed
// operation leaves figure, surface and legend untouched.
//
// A figure is not safe for concurrent use.
type Figure struct {
	surface Surface

	title     string
	xlabel    string
	ylabel    string
	autoscale AutoscaleMode
	margin    float64
	epsilon   float64
	threeD    bool

	keys    []string
	artists map[string]Artist
	labels  map[string]string
	hidden  map[string]bool
	meshKey string
	legend  *Legend

	ext   Extent
	extOK bool
}

// Option configures a Figure at construction.
type Option func(*Figure)

func WithTitle(title string) Option  { return func(f *Figure) { f.title = title } }
func WithXLabel(label string) Option { return func(f *Figure) { f.xlabel = label } }
func WithYLabel(label string) Option { return func(f *Figure) { f.ylabel = label } }

// WithAutoscale selects the rescaled axes: all (default), width, height
// or none.
func WithAutoscale(mode AutoscaleMode) Option { return func(f *Figure) { f.autoscale = mode } }

// WithMargin sets the proportional padding applied to each side of the
// derived limits.
func WithMargin(margin float64) Option { return func(f *Figure) { f.margin = margin } }

// WithEpsilon sets the absolute padding used when an axis span is
// degenerate.
func WithEpsilon(epsilon float64) Option { return func(f *Figure) { f.epsilon = epsilon } }

// WithProjection3D makes the figure accept three dimensional artists
// (and only those).
func WithProjection3D() Option { return func(f *Figure) { f.threeD = true } }

// New builds a figure over the given surface.
func New(surface Surface, opts ...Option) (*Figure, error) {
	if surface == nil {
		return nil, &OptionError{Option: "surface", Reason: "must not be nil"}
	}
	f := &Figure{
		surface:   surface,
		autoscale: AutoscaleAll,
		margin:    DefaultMargin,
		epsilon:   DefaultEpsilon,
		artists:   map[string]Artist{},
		labels:    map[string]string{},
		hidden:    map[string]bool{},
	}
	for _, opt := range opts {
		opt(f)
	}
	if !go_utils.InArray(string(f.autoscale), autoscaleModes) {
		return nil, &OptionError{Option: "autoscale", Value: string(f.autoscale), Valid: autoscaleModes}
	}
	if f.margin < 0 || !finite(f.margin) {
		return nil, &OptionError{Option: "margin", Value: fmt.Sprintf("%v", f.margin), Reason: "must be zero or positive"}
	}
	if f.epsilon <= 0 || !finite(f.epsilon) {
		return nil, &OptionError{Option: "epsilon", Value: fmt.Sprintf("%v", f.epsilon), Reason: "must be positive"}
	}
	f.legend = &Legend{fig: f, all: true, selected: map[string]bool{}}
	surface.SetLabels(f.title, f.xlabel, f.ylabel)
	return f, nil
}

// Surface returns the surface the figure draws on.
func (f *Figure) Surface() Surface { return f.surface }

// Title returns the figure title.
func (f *Figure) Title() string { return f.title }

// Legend returns the figure's legend for subset selection.
func (f *Figure) Legend() *Legend { return f.legend }

// Add tracks an artist under its name, attaches it to the surface,
// rescales and rebuilds the legend. Adding a tracked name fails with
// DuplicateKeyError.
func (f *Figure) Add(a Artist) error { return f.add(a, "", false) }

// AddWithLabel is Add with a legend label different from the artist
// name.
func (f *Figure) AddWithLabel(a Artist, label string) error { return f.add(a, label, false) }

// Replace swaps the tracked artist of the same name, keeping its
// insertion position. A new name is appended like Add.
func (f *Figure) Replace(a Artist) error { return f.add(a, "", true) }

// ReplaceWithLabel is Replace with a legend label.
func (f *Figure) ReplaceWithLabel(a Artist, label string) error { return f.add(a, label, true) }

func (f *Figure) add(a Artist, label string, replace bool) error {
	if a == nil {
		return &OptionError{Option: "artist", Reason: "must not be nil"}
	}
	key := a.Name()
	if key == "" {
		return &OptionError{Option: "name", Reason: "must not be empty"}
	}
	_, is3D := a.(artist3D)
	if is3D && !f.threeD {
		return &OptionError{Option: "artist", Value: key, Reason: "3d artists need a figure built with WithProjection3D"}
	}
	if !is3D && f.threeD {
		return &OptionError{Option: "artist", Value: key, Reason: "3d figures accept only 3d artists"}
	}
	_, tracked := f.artists[key]
	if tracked && !replace {
		return &DuplicateKeyError{Key: key, Hint: "use Replace to overwrite it"}
	}
	if _, isMesh := a.(*ColorMesh); isMesh && f.meshKey != "" && f.meshKey != key {
		return &DuplicateKeyError{Key: f.meshKey, Hint: "a figure holds one mesh, remove or replace it"}
	}
	if tracked {
		if err := f.surface.Detach(key); err != nil {
			return err
		}
		if err := f.surface.Attach(key, a); err != nil {
			// put the old artist back so the surface matches the registry
			old := f.artists[key]
			if restoreErr := f.surface.Attach(key, old); restoreErr != nil {
				return fmt.Errorf("error attaching replacement for %q: %v (restore failed: %v)", key, err, restoreErr)
			}
			return err
		}
	} else {
		if err := f.surface.Attach(key, a); err != nil {
			return err
		}
		f.keys = append(f.keys, key)
	}
	f.artists[key] = a
	f.hidden[key] = false
	if label != "" {
		f.labels[key] = label
	} else {
		delete(f.labels, key)
	}
	if _, isMesh := a.(*ColorMesh); isMesh {
		f.meshKey = key
	} else if f.meshKey == key {
		f.meshKey = ""
	}
	f.rescale()
	f.rebuildLegend()
	return nil
}

// Remove untracks and detaches the named artist, then rescales and
// rebuilds the legend. Unknown names fail with NotFoundError.
func (f *Figure) Remove(key string) error {
	if _, ok := f.artists[key]; !ok {
		return &NotFoundError{Key: key, Known: f.Names()}
	}
	if err := f.surface.Detach(key); err != nil {
		return err
	}
	delete(f.artists, key)
	delete(f.labels, key)
	delete(f.hidden, key)
	delete(f.legend.selected, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
	if f.meshKey == key {
		f.meshKey = ""
	}
	f.rescale()
	f.rebuildLegend()
	return nil
}

// Get returns the tracked artist for key.
func (f *Figure) Get(key string) (Artist, error) {
	a, ok := f.artists[key]
	if !ok {
		return nil, &NotFoundError{Key: key, Known: f.Names()}
	}
	return a, nil
}

// Contains reports whether key is tracked.
func (f *Figure) Contains(key string) bool {
	_, ok := f.artists[key]
	return ok
}

// Len returns the number of tracked artists.
func (f *Figure) Len() int { return len(f.keys) }

// Names returns the tracked keys in insertion order.
func (f *Figure) Names() []string {
	return append([]string(nil), f.keys...)
}

// Artists returns the tracked artists in insertion order.
func (f *Figure) Artists() []Artist {
	out := make([]Artist, 0, len(f.keys))
	for _, key := range f.keys {
		out = append(out, f.artists[key])
	}
	return out
}

// SetVisible toggles drawing of a tracked artist. Hidden artists stay
// tracked, keep their extent contribution and their legend entry.
func (f *Figure) SetVisible(key string, visible bool) error {
	if _, ok := f.artists[key]; !ok {
		return &NotFoundError{Key: key, Known: f.Names()}
	}
	if err := f.surface.SetVisible(key, visible); err != nil {
		return err
	}
	f.hidden[key] = !visible
	return nil
}

// Visible reports whether the named artist is drawn.
func (f *Figure) Visible(key string) (bool, error) {
	if _, ok := f.artists[key]; !ok {
		return false, &NotFoundError{Key: key, Known: f.Names()}
	}
	return !f.hidden[key], nil
}

// Clear detaches every artist, empties the legend and hands limit
// control back to the surface.
func (f *Figure) Clear() {
	for _, key := range f.keys {
		_ = f.surface.Detach(key)
	}
	f.keys = nil
	f.artists = map[string]Artist{}
	f.labels = map[string]string{}
	f.hidden = map[string]bool{}
	f.meshKey = ""
	f.legend.all = true
	f.legend.selected = map[string]bool{}
	f.ext = Extent{}
	f.extOK = false
	f.surface.AutoLimits()
	f.rebuildLegend()
}

// Limits returns the padded union of the tracked extents. ok is false
// while no tracked artist contributes an extent; the surface then keeps
// its own auto-scaling.
func (f *Figure) Limits() (x, y Span, ok bool) {
	if !f.extOK {
		return Span{}, Span{}, false
	}
	return f.ext.X.Pad(f.margin, f.epsilon), f.ext.Y.Pad(f.margin, f.epsilon), true
}

func (f *Figure) labelFor(key string) string {
	if label, ok := f.labels[key]; ok {
		return label
	}
	return key
}

func (f *Figure) unionExtent() (Extent, bool) {
	var ext Extent
	ok := false
	for _, key := range f.keys {
		e, has := f.artists[key].Extent()
		if !has {
			continue
		}
		if !ok {
			ext = e
			ok = true
			continue
		}
		ext = ext.Union(e)
	}
	return ext, ok
}

func (f *Figure) rescale() {
	f.ext, f.extOK = f.unionExtent()
	if f.autoscale == AutoscaleNone {
		return
	}
	if !f.extOK {
		f.surface.AutoLimits()
		return
	}
	x := f.ext.X.Pad(f.margin, f.epsilon)
	y := f.ext.Y.Pad(f.margin, f.epsilon)
	switch f.autoscale {
	case AutoscaleAll:
		f.surface.SetXLim(x.Min, x.Max)
		f.surface.SetYLim(y.Min, y.Max)
	case AutoscaleWidth:
		f.surface.SetXLim(x.Min, x.Max)
	case AutoscaleHeight:
		f.surface.SetYLim(y.Min, y.Max)
	}
}

func (f *Figure) rebuildLegend() {
	f.surface.SetLegend(f.legend.Entries())
}

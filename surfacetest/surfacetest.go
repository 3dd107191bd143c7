// Package surfacetest provides a recording Surface for exercising
// figures without a render backend.
package surfacetest

import (
	"fmt"

	"github.com/pivolan/gograph"
)

// Surface records every mutation a figure performs. Limits, legend and
// attached artists are exposed as plain fields for assertions, and
// AttachErr/DetachErr inject failures per key.
type Surface struct {
	Title  string
	XLabel string
	YLabel string

	Artists map[string]gograph.Artist
	Order   []string
	Hidden  map[string]bool

	Auto                   bool
	XMin, XMax, YMin, YMax float64
	XSet, YSet             bool

	Legend []gograph.LegendEntry

	Calls []string

	AttachErr map[string]error
	DetachErr map[string]error
}

func New() *Surface {
	return &Surface{
		Artists:   map[string]gograph.Artist{},
		Hidden:    map[string]bool{},
		Auto:      true,
		AttachErr: map[string]error{},
		DetachErr: map[string]error{},
	}
}

func (s *Surface) Attach(key string, a gograph.Artist) error {
	if err := s.AttachErr[key]; err != nil {
		return err
	}
	if _, ok := s.Artists[key]; ok {
		return fmt.Errorf("artist %q already attached", key)
	}
	s.Artists[key] = a
	s.Order = append(s.Order, key)
	s.Calls = append(s.Calls, "attach "+key)
	return nil
}

func (s *Surface) Detach(key string) error {
	if err := s.DetachErr[key]; err != nil {
		return err
	}
	if _, ok := s.Artists[key]; !ok {
		return fmt.Errorf("artist %q not attached", key)
	}
	delete(s.Artists, key)
	delete(s.Hidden, key)
	for i, k := range s.Order {
		if k == key {
			s.Order = append(s.Order[:i], s.Order[i+1:]...)
			break
		}
	}
	s.Calls = append(s.Calls, "detach "+key)
	return nil
}

func (s *Surface) SetVisible(key string, visible bool) error {
	if _, ok := s.Artists[key]; !ok {
		return fmt.Errorf("artist %q not attached", key)
	}
	s.Hidden[key] = !visible
	s.Calls = append(s.Calls, fmt.Sprintf("visible %s %v", key, visible))
	return nil
}

func (s *Surface) SetXLim(min, max float64) {
	s.XMin, s.XMax, s.XSet, s.Auto = min, max, true, false
	s.Calls = append(s.Calls, "xlim")
}

func (s *Surface) SetYLim(min, max float64) {
	s.YMin, s.YMax, s.YSet, s.Auto = min, max, true, false
	s.Calls = append(s.Calls, "ylim")
}

func (s *Surface) AutoLimits() {
	s.Auto = true
	s.XSet, s.YSet = false, false
	s.Calls = append(s.Calls, "auto")
}

func (s *Surface) SetLegend(entries []gograph.LegendEntry) {
	s.Legend = append([]gograph.LegendEntry(nil), entries...)
	s.Calls = append(s.Calls, "legend")
}

func (s *Surface) SetLabels(title, xlabel, ylabel string) {
	s.Title, s.XLabel, s.YLabel = title, xlabel, ylabel
	s.Calls = append(s.Calls, "labels")
}

// LegendLabels returns just the labels, in order.
func (s *Surface) LegendLabels() []string {
	out := make([]string, 0, len(s.Legend))
	for _, e := range s.Legend {
		out = append(out, e.Label)
	}
	return out
}

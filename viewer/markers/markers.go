// Package markers implements an in-memory marker sink for the alignment engine.
package markers

import (
	"slices"
	"sync"

	"znkr.io/sidediff/viewer/align"
)

// Marker is a single marker drawn in one of the documents.
type Marker struct {
	Handle align.Handle
	Extent align.Extent
	Class  string
	Format align.Format
}

// Set is a set of markers for both documents. The zero value is not usable, use [New].
type Set struct {
	mu      sync.Mutex
	next    align.Handle
	markers [2]map[align.Handle]Marker // indexed by align.Side
}

var _ align.MarkerSink = (*Set)(nil)

// New creates an empty set.
func New() *Set {
	return &Set{
		markers: [2]map[align.Handle]Marker{
			make(map[align.Handle]Marker),
			make(map[align.Handle]Marker),
		},
	}
}

// AddMarker implements [align.MarkerSink].
func (s *Set) AddMarker(side align.Side, ext align.Extent, class string, format align.Format) align.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.markers[side][s.next] = Marker{
		Handle: s.next,
		Extent: ext,
		Class:  class,
		Format: format,
	}
	return s.next
}

// RemoveMarker implements [align.MarkerSink].
func (s *Set) RemoveMarker(h align.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.markers {
		delete(m, h)
	}
}

// Markers returns the markers of one side in the order they were added.
func (s *Set) Markers(side align.Side) []Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make([]Marker, 0, len(s.markers[side]))
	for _, m := range s.markers[side] {
		ret = append(ret, m)
	}
	slices.SortFunc(ret, func(a, b Marker) int { return int(a.Handle - b.Handle) })
	return ret
}

// Len returns the number of markers on both sides.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.markers[align.Left]) + len(s.markers[align.Right])
}

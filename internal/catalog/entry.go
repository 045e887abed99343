package catalog

import (
	"math"
	"time"
)

// Entry represents one cataloged observation.
//
// String fields use "" for absent values, pointer fields use nil, and ID
// is 0 until the store assigns one. Wavemin and Wavemax are always
// nanometre values; raw source units never reach an Entry.
type Entry struct {
	ID                   int64
	Source               string
	Provider             string
	Physobs              string
	FileID               string
	ObservationTimeStart *time.Time
	ObservationTimeEnd   *time.Time
	Instrument           string
	Size                 *float64 // kilobytes
	Wavemin              *float64 // nanometres
	Wavemax              *float64 // nanometres
	Path                 string
	DownloadTime         *time.Time
	Starred              bool
	HeaderEntries        []HeaderEntry
	Tags                 []Tag
}

// Equal reports whether two entries describe the same observation.
//
// The comparison is structural with two deliberate exceptions: an
// unassigned ID on either side matches any ID, and the wavelength bounds
// are compared after rounding to 10 decimal digits to absorb unit
// conversion noise. Header entries must match elementwise in order; tags
// are compared as sets.
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.ID != other.ID && e.ID != 0 && other.ID != 0 {
		return false
	}
	if e.Source != other.Source ||
		e.Provider != other.Provider ||
		e.Physobs != other.Physobs ||
		e.FileID != other.FileID ||
		e.Instrument != other.Instrument ||
		e.Path != other.Path ||
		e.Starred != other.Starred {
		return false
	}
	if !timesEqual(e.ObservationTimeStart, other.ObservationTimeStart) ||
		!timesEqual(e.ObservationTimeEnd, other.ObservationTimeEnd) ||
		!timesEqual(e.DownloadTime, other.DownloadTime) {
		return false
	}
	if !floatsEqual(e.Size, other.Size) {
		return false
	}
	if !wavesEqual(e.Wavemin, other.Wavemin) || !wavesEqual(e.Wavemax, other.Wavemax) {
		return false
	}
	if len(e.HeaderEntries) != len(other.HeaderEntries) {
		return false
	}
	for i := range e.HeaderEntries {
		if !e.HeaderEntries[i].Equal(other.HeaderEntries[i]) {
			return false
		}
	}
	return tagSetsEqual(e.Tags, other.Tags)
}

// AddTag attaches a tag by name, ignoring duplicates.
func (e *Entry) AddTag(name string) {
	if e.HasTag(name) {
		return
	}
	e.Tags = append(e.Tags, Tag{Name: name})
}

// RemoveTag detaches a tag by name. Returns true when the tag was present.
func (e *Entry) RemoveTag(name string) bool {
	for i, tag := range e.Tags {
		if tag.Name == name {
			e.Tags = append(e.Tags[:i], e.Tags[i+1:]...)
			return true
		}
	}
	return false
}

// HasTag reports whether a tag with the given name is attached.
func (e *Entry) HasTag(name string) bool {
	for _, tag := range e.Tags {
		if tag.Name == name {
			return true
		}
	}
	return false
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func floatsEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func wavesEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return round10(*a) == round10(*b)
}

func round10(v float64) float64 {
	return math.Round(v*1e10) / 1e10
}

func tagSetsEqual(a, b []Tag) bool {
	if len(a) != len(b) {
		return false
	}
	names := make(map[string]struct{}, len(a))
	for _, tag := range a {
		names[tag.Name] = struct{}{}
	}
	for _, tag := range b {
		if _, ok := names[tag.Name]; !ok {
			return false
		}
	}
	return true
}

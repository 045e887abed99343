package catalog_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"heliocat/internal/catalog"
	"heliocat/internal/units"
	"heliocat/internal/vso"
)

func floatPtr(v float64) *float64 { return &v }

func sampleBlock() vso.QueryResultBlock {
	return vso.QueryResultBlock{
		Source:     "SOHO",
		Provider:   "SDAC",
		Physobs:    "intensity",
		Fileid:     "/archive/soho/eit/lz/2001/01/efz20010101.010014",
		Instrument: "EIT",
		Size:       floatPtr(2059.0),
		Time:       vso.TimeRange{Start: "20010101010014", End: "20010101010027"},
		Wave:       vso.Wave{Waveunit: "Angstrom", Wavemin: floatPtr(171), Wavemax: floatPtr(195)},
	}
}

func TestNewFromQueryResultBlock(t *testing.T) {
	entry, err := catalog.NewFromQueryResultBlock(sampleBlock(), "")
	if err != nil {
		t.Fatalf("NewFromQueryResultBlock failed: %v", err)
	}

	if entry.Source != "SOHO" || entry.Provider != "SDAC" || entry.Instrument != "EIT" {
		t.Fatalf("string fields mis-copied: %+v", entry)
	}
	if entry.Physobs != "intensity" || entry.FileID == "" {
		t.Fatalf("physobs/fileid mis-copied: %+v", entry)
	}
	if entry.Size == nil || *entry.Size != 2059.0 {
		t.Fatalf("size mis-copied: %v", entry.Size)
	}
	wantStart := time.Date(2001, 1, 1, 1, 0, 14, 0, time.UTC)
	if entry.ObservationTimeStart == nil || !entry.ObservationTimeStart.Equal(wantStart) {
		t.Fatalf("unexpected start time: %v", entry.ObservationTimeStart)
	}
	if entry.Wavemin == nil || math.Abs(*entry.Wavemin-17.1) > 1e-9 {
		t.Fatalf("expected wavemin 17.1 nm, got %v", entry.Wavemin)
	}
	if entry.Wavemax == nil || math.Abs(*entry.Wavemax-19.5) > 1e-9 {
		t.Fatalf("expected wavemax 19.5 nm, got %v", entry.Wavemax)
	}
}

func TestNewFromQueryResultBlockIndependentBounds(t *testing.T) {
	block := sampleBlock()
	block.Wave.Wavemax = nil
	entry, err := catalog.NewFromQueryResultBlock(block, "")
	if err != nil {
		t.Fatalf("NewFromQueryResultBlock failed: %v", err)
	}
	if entry.Wavemin == nil || entry.Wavemax != nil {
		t.Fatalf("expected only wavemin set, got %v / %v", entry.Wavemin, entry.Wavemax)
	}
}

func TestNewFromQueryResultBlockMissingWaveunit(t *testing.T) {
	block := sampleBlock()
	block.Wave.Waveunit = ""
	_, err := catalog.NewFromQueryResultBlock(block, "")
	var notFound *units.WaveunitNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected WaveunitNotFoundError, got %v", err)
	}

	entry, err := catalog.NewFromQueryResultBlock(block, "angstrom")
	if err != nil {
		t.Fatalf("expected default waveunit to apply: %v", err)
	}
	if entry.Wavemin == nil || math.Abs(*entry.Wavemin-17.1) > 1e-9 {
		t.Fatalf("expected wavemin 17.1 nm, got %v", entry.Wavemin)
	}
}

func TestNewFromQueryResultBlockBadWaveunitWithoutBounds(t *testing.T) {
	block := sampleBlock()
	block.Wave = vso.Wave{Waveunit: "nonsense"}
	_, err := catalog.NewFromQueryResultBlock(block, "")
	var notConvertible *units.WaveunitNotConvertibleError
	if !errors.As(err, &notConvertible) {
		t.Fatalf("unit resolution should fail even with no bounds, got %v", err)
	}
}

func TestEntriesFromQueryResultLazy(t *testing.T) {
	result := vso.QueryResponse{sampleBlock(), sampleBlock(), sampleBlock()}

	var seen int
	for entry, err := range catalog.EntriesFromQueryResult(result, "") {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry == nil {
			t.Fatal("expected an entry")
		}
		seen++
		if seen == 2 {
			break // abandoning mid-iteration must be safe
		}
	}
	if seen != 2 {
		t.Fatalf("expected to consume 2 entries, got %d", seen)
	}
}

func TestEntriesFromQueryResultStopsOnError(t *testing.T) {
	bad := sampleBlock()
	bad.Wave.Waveunit = "nonsense"
	result := vso.QueryResponse{sampleBlock(), bad, sampleBlock()}

	var entries int
	var failures int
	for _, err := range catalog.EntriesFromQueryResult(result, "") {
		if err != nil {
			failures++
			continue
		}
		entries++
	}
	if entries != 1 || failures != 1 {
		t.Fatalf("expected iteration to stop at the failing block, got %d entries and %d failures", entries, failures)
	}
}

package catalog

import (
	"fmt"
	"iter"

	"heliocat/internal/timeutil"
	"heliocat/internal/units"
	"heliocat/internal/vso"
)

// NewFromQueryResultBlock builds an entry from one remote query result
// block. Wavelength bounds are converted to nanometres using the block's
// waveunit, or defaultWaveunit when the block names none; resolution
// failures surface as the unit normalizer's error kinds even when both
// bounds are absent.
func NewFromQueryResultBlock(block vso.QueryResultBlock, defaultWaveunit string) (*Entry, error) {
	entry := &Entry{
		Source:     block.Source,
		Provider:   block.Provider,
		Physobs:    block.Physobs,
		FileID:     block.Fileid,
		Instrument: block.Instrument,
	}
	if block.Size != nil {
		size := *block.Size
		entry.Size = &size
	}

	if block.Time.Start != "" {
		start, err := timeutil.ParseCompact(block.Time.Start)
		if err != nil {
			return nil, fmt.Errorf("query block %s: %w", block.Fileid, err)
		}
		entry.ObservationTimeStart = &start
	}
	if block.Time.End != "" {
		end, err := timeutil.ParseCompact(block.Time.End)
		if err != nil {
			return nil, fmt.Errorf("query block %s: %w", block.Fileid, err)
		}
		entry.ObservationTimeEnd = &end
	}

	waveunit := block.Wave.Waveunit
	if waveunit == "" {
		if defaultWaveunit == "" {
			return nil, &units.WaveunitNotFoundError{Subject: blockSubject(block)}
		}
		waveunit = defaultWaveunit
	}
	unit, err := units.Resolve(waveunit)
	if err != nil {
		return nil, err
	}
	if block.Wave.Wavemin != nil {
		wavemin := unit.ToNanometres(*block.Wave.Wavemin)
		entry.Wavemin = &wavemin
	}
	if block.Wave.Wavemax != nil {
		wavemax := unit.ToNanometres(*block.Wave.Wavemax)
		entry.Wavemax = &wavemax
	}
	return entry, nil
}

// EntriesFromQueryResult lazily maps NewFromQueryResultBlock over a query
// response. No block is read until the sequence is advanced; iteration
// stops at the first failing block, yielding its error.
func EntriesFromQueryResult(result vso.QueryResponse, defaultWaveunit string) iter.Seq2[*Entry, error] {
	return func(yield func(*Entry, error) bool) {
		for _, block := range result {
			entry, err := NewFromQueryResultBlock(block, defaultWaveunit)
			if !yield(entry, err) || err != nil {
				return
			}
		}
	}
}

func blockSubject(block vso.QueryResultBlock) string {
	if block.Fileid != "" {
		return "query result block " + block.Fileid
	}
	return "query result block"
}

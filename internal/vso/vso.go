// Package vso holds the record types returned by remote catalog
// searches. The network client producing them lives elsewhere; the
// catalog only consumes the blocks.
package vso

// TimeRange carries the observation time bounds of a result block in the
// compact yyyymmddHHMMSS form the remote service uses.
type TimeRange struct {
	Start string
	End   string
}

// Wave carries the wavelength range of a result block in the unit named
// by Waveunit. Min and Max may be independently absent.
type Wave struct {
	Waveunit string
	Wavemin  *float64
	Wavemax  *float64
}

// QueryResultBlock is one record of a remote catalog search result,
// prior to normalization into a catalog entry.
type QueryResultBlock struct {
	Source     string
	Provider   string
	Physobs    string
	Fileid     string
	Instrument string
	Size       *float64 // kilobytes
	Time       TimeRange
	Wave       Wave
}

// QueryResponse is the full result of one remote search.
type QueryResponse []QueryResultBlock

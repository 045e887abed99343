// Package timeutil parses the heterogeneous timestamp formats found in
// FITS headers and remote query results.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Layouts tried by Parse, most specific first. FITS headers are not
// consistent: ISO-8601 with or without fractional seconds, a space
// instead of the T separator, bare dates, and the compact yyyymmddHHMMSS
// form used by VSO all occur in the wild.
var layouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006/01/02T15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"20060102150405",
	"20060102",
}

// Parse interprets value as an observation timestamp. All values are
// treated as UTC; FITS headers carry no zone information.
func Parse(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("parse time: empty value")
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse time: unrecognized format %q", trimmed)
}

// ParseCompact parses the fixed yyyymmddHHMMSS layout used by query
// result blocks.
func ParseCompact(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("parse time: empty value")
	}
	t, err := time.ParseInLocation("20060102150405", trimmed, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time: %w", err)
	}
	return t, nil
}

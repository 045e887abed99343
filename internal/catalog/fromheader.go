package catalog

import (
	"fmt"
	"strconv"

	"heliocat/internal/fitshdr"
	"heliocat/internal/timeutil"
	"heliocat/internal/units"
)

// NewFromHeader builds an entry from a decoded FITS header.
//
// Every card becomes a HeaderEntry in file order. Recognized keys
// additionally populate entry fields: INSTRUME, WAVELNTH (converted to
// nanometres using the header's waveunit or defaultWaveunit), and the
// DATE-OBS/DATE_OBS and DATE-END/DATE_END observation time bounds.
//
// When the header names no waveunit and defaultWaveunit is empty, the
// error is a *units.WaveunitNotFoundError carrying subject; an
// unresolvable label yields *units.WaveunitNotConvertibleError. On
// failure the returned entry still holds the header entries collected so
// far and must be discarded by the caller.
func NewFromHeader(header fitshdr.Header, defaultWaveunit, subject string) (*Entry, error) {
	entry := &Entry{}
	for _, card := range header.Cards() {
		entry.HeaderEntries = append(entry.HeaderEntries, HeaderEntry{
			Key:   card.Key,
			Value: headerValueString(card.Key, card.Value),
		})
	}

	waveunit := fitshdr.ExtractWaveunit(header)
	if waveunit == "" {
		if defaultWaveunit == "" {
			return entry, &units.WaveunitNotFoundError{Subject: subject}
		}
		waveunit = defaultWaveunit
	}
	unit, err := units.Resolve(waveunit)
	if err != nil {
		return entry, err
	}

	for _, card := range header.Cards() {
		switch card.Key {
		case "INSTRUME":
			entry.Instrument = headerValueString(card.Key, card.Value)
		case "WAVELNTH":
			value, ok := numericValue(card.Value)
			if !ok {
				return entry, fmt.Errorf("wavelnth value %v in %s is not numeric", card.Value, subject)
			}
			wavemin := unit.ToNanometres(value)
			wavemax := wavemin
			entry.Wavemin = &wavemin
			entry.Wavemax = &wavemax
		// DATE-END and DATE_END are not part of the FITS standard, but
		// plenty of observatory files carry one of them.
		case "DATE-END", "DATE_END":
			t, err := timeutil.Parse(headerValueString(card.Key, card.Value))
			if err != nil {
				return entry, fmt.Errorf("%s in %s: %w", card.Key, subject, err)
			}
			entry.ObservationTimeEnd = &t
		case "DATE-OBS", "DATE_OBS":
			t, err := timeutil.Parse(headerValueString(card.Key, card.Value))
			if err != nil {
				return entry, fmt.Errorf("%s in %s: %w", card.Key, subject, err)
			}
			entry.ObservationTimeStart = &t
		}
	}
	return entry, nil
}

// headerValueString renders a card value for storage. KEYCOMMENTS and
// empty-key cards legally carry non-string values, so everything funnels
// through an explicit string coercion.
func headerValueString(key string, value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

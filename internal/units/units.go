package units

import (
	"fmt"
	"strings"
)

// Physical constants (SI, 2019 exact values).
const (
	speedOfLight  = 299792458.0     // m/s
	planckEV      = 4.135667696e-15 // eV*s
	metresPerNano = 1e-9
)

type kind int

const (
	kindLength kind = iota
	kindFrequency
	kindEnergy
)

// Unit is a resolved wavelength unit. Conversion to and from nanometres
// applies spectral equivalence: frequency and energy units convert through
// nu = c/lambda and E = h*c/lambda respectively.
type Unit struct {
	label  string
	kind   kind
	factor float64 // to metres, hertz, or electronvolts depending on kind
}

// Label returns the label the unit was resolved from.
func (u Unit) Label() string { return u.label }

var unitTable = map[string]struct {
	kind   kind
	factor float64
}{
	"angstrom":    {kindLength, 1e-10},
	"angstroms":   {kindLength, 1e-10},
	"aa":          {kindLength, 1e-10},
	"pm":          {kindLength, 1e-12},
	"picometer":   {kindLength, 1e-12},
	"picometre":   {kindLength, 1e-12},
	"nm":          {kindLength, 1e-9},
	"nanometer":   {kindLength, 1e-9},
	"nanometers":  {kindLength, 1e-9},
	"nanometre":   {kindLength, 1e-9},
	"nanometres":  {kindLength, 1e-9},
	"um":          {kindLength, 1e-6},
	"micron":      {kindLength, 1e-6},
	"microns":     {kindLength, 1e-6},
	"micrometer":  {kindLength, 1e-6},
	"micrometre":  {kindLength, 1e-6},
	"mm":          {kindLength, 1e-3},
	"millimeter":  {kindLength, 1e-3},
	"millimetre":  {kindLength, 1e-3},
	"cm":          {kindLength, 1e-2},
	"centimeter":  {kindLength, 1e-2},
	"centimetre":  {kindLength, 1e-2},
	"m":           {kindLength, 1.0},
	"meter":       {kindLength, 1.0},
	"metre":       {kindLength, 1.0},
	"km":          {kindLength, 1e3},
	"kilometer":   {kindLength, 1e3},
	"kilometre":   {kindLength, 1e3},
	"hz":          {kindFrequency, 1.0},
	"khz":         {kindFrequency, 1e3},
	"mhz":         {kindFrequency, 1e6},
	"ghz":         {kindFrequency, 1e9},
	"thz":         {kindFrequency, 1e12},
	"ev":          {kindEnergy, 1.0},
	"kev":         {kindEnergy, 1e3},
	"mev":         {kindEnergy, 1e6},
}

// Resolve maps a waveunit label onto a convertible Unit. Matching is
// case-insensitive. An unknown label yields WaveunitNotConvertibleError.
func Resolve(label string) (Unit, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	entry, ok := unitTable[key]
	if !ok {
		return Unit{}, &WaveunitNotConvertibleError{Waveunit: label}
	}
	return Unit{label: label, kind: entry.kind, factor: entry.factor}, nil
}

// ToNanometres converts a value expressed in the unit into nanometres.
func (u Unit) ToNanometres(value float64) float64 {
	switch u.kind {
	case kindFrequency:
		return speedOfLight / (value * u.factor) / metresPerNano
	case kindEnergy:
		return planckEV * speedOfLight / (value * u.factor) / metresPerNano
	default:
		return value * u.factor / metresPerNano
	}
}

// FromNanometres converts a nanometre wavelength back into the unit.
// Frequency and energy conversions are self-inverse, so the same spectral
// relations apply in both directions.
func (u Unit) FromNanometres(value float64) float64 {
	metres := value * metresPerNano
	switch u.kind {
	case kindFrequency:
		return speedOfLight / metres / u.factor
	case kindEnergy:
		return planckEV * speedOfLight / metres / u.factor
	default:
		return metres / u.factor
	}
}

// Normalize converts value from the labeled unit into nanometres.
//
// A nil value passes through untouched. When label is empty, defaultLabel
// is used instead; if that is empty too, the conversion fails with
// WaveunitNotFoundError carrying subject (a path or block description)
// for diagnostics.
func Normalize(value *float64, label, defaultLabel, subject string) (*float64, error) {
	if value == nil {
		return nil, nil
	}
	effective := strings.TrimSpace(label)
	if effective == "" {
		effective = strings.TrimSpace(defaultLabel)
		if effective == "" {
			return nil, &WaveunitNotFoundError{Subject: subject}
		}
	}
	unit, err := Resolve(effective)
	if err != nil {
		return nil, err
	}
	nm := unit.ToNanometres(*value)
	return &nm, nil
}

// WaveunitNotFoundError reports a wavelength value with no unit label in
// its source and no default supplied by the caller.
type WaveunitNotFoundError struct {
	// Subject describes where the unit was looked for (a file path or a
	// query result block identifier).
	Subject string
}

func (e *WaveunitNotFoundError) Error() string {
	return fmt.Sprintf("wavelength unit cannot be found in %s", e.Subject)
}

// WaveunitNotConvertibleError reports a unit label that does not resolve
// to any known wavelength, frequency, or energy unit.
type WaveunitNotConvertibleError struct {
	Waveunit string
}

func (e *WaveunitNotConvertibleError) Error() string {
	return fmt.Sprintf("waveunit %q cannot be converted to a known unit", e.Waveunit)
}

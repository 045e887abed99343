// Package units normalizes wavelength values into nanometres.
//
// FITS headers and remote query results express wavelengths in whatever
// unit the instrument team preferred, including spectral-equivalent
// frequency and energy units. Everything stored in the catalog goes
// through this package first so that wavemin/wavemax are always
// comparable nanometre values.
package units

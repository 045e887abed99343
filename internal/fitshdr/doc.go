// Package fitshdr reads FITS header blocks.
//
// Only the textual header is understood here: 80-byte cards packed into
// 2880-byte records, terminated by an END card. Image payloads and
// extension HDUs are never touched; the catalog reads the primary header
// and nothing else.
package fitshdr

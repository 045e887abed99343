package catalog_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"heliocat/internal/catalog"
	"heliocat/internal/testsupport"
)

var jp2Signature = []byte{0x00, 0x00, 0x00, 0x0c, 0x6a, 0x50, 0x20, 0x20, 0x0d, 0x0a, 0x87, 0x0a}

// scanFixture builds a directory with one FITS file at the top level, one
// in a subdirectory, and assorted non-FITS noise.
func scanFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	testsupport.WriteFITS(t, filepath.Join(dir, "top.fits"),
		testsupport.FITSHeaderCard{Key: "INSTRUME", Value: "'EIT'"},
		testsupport.FITSHeaderCard{Key: "WAVELNTH", Value: "195"},
		testsupport.FITSHeaderCard{Key: "WAVEUNIT", Value: "'Angstrom'"},
	)

	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	testsupport.WriteFITS(t, filepath.Join(sub, "deep.fits"),
		testsupport.FITSHeaderCard{Key: "INSTRUME", Value: "'AIA_3'"},
		testsupport.FITSHeaderCard{Key: "WAVELNTH", Value: "171"},
		testsupport.FITSHeaderCard{Key: "WAVEUNIT", Value: "'Angstrom'"},
	)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an observation"), 0o644); err != nil {
		t.Fatalf("write noise file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sneaky.fits.bak"), append(jp2Signature, make([]byte, 32)...), 0o644); err != nil {
		t.Fatalf("write jp2 noise file: %v", err)
	}
	return dir
}

func collect(t *testing.T, dir string, opts catalog.ScanOptions) []catalog.ScannedEntry {
	t.Helper()
	var out []catalog.ScannedEntry
	for scanned, err := range catalog.EntriesFromDirectory(dir, opts) {
		if err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		out = append(out, scanned)
	}
	return out
}

func TestEntriesFromDirectoryTopLevel(t *testing.T) {
	dir := scanFixture(t)
	entries := collect(t, dir, catalog.ScanOptions{})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry from non-recursive scan, got %d", len(entries))
	}
	if entries[0].Path != filepath.Join(dir, "top.fits") {
		t.Fatalf("unexpected path: %s", entries[0].Path)
	}
	if entries[0].Entry.Instrument != "EIT" {
		t.Fatalf("unexpected instrument: %q", entries[0].Entry.Instrument)
	}
}

func TestEntriesFromDirectoryRecursive(t *testing.T) {
	dir := scanFixture(t)
	entries := collect(t, dir, catalog.ScanOptions{Recursive: true})
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries from recursive scan, got %d", len(entries))
	}
}

func TestEntriesFromDirectoryPattern(t *testing.T) {
	dir := scanFixture(t)
	entries := collect(t, dir, catalog.ScanOptions{Recursive: true, Pattern: "*deep*"})
	if len(entries) != 1 {
		t.Fatalf("expected pattern to keep only the nested file, got %d entries", len(entries))
	}
	if filepath.Base(entries[0].Path) != "deep.fits" {
		t.Fatalf("unexpected path: %s", entries[0].Path)
	}
}

func TestEntriesFromDirectoryAbandonedEarly(t *testing.T) {
	dir := scanFixture(t)
	var seen int
	for _, err := range catalog.EntriesFromDirectory(dir, catalog.ScanOptions{Recursive: true}) {
		if err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		seen++
		break
	}
	if seen != 1 {
		t.Fatalf("expected to stop after first entry, got %d", seen)
	}
}

func TestEntriesFromDirectoryMissingWaveunitPropagates(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFITS(t, filepath.Join(dir, "nounits.fits"),
		testsupport.FITSHeaderCard{Key: "WAVELNTH", Value: "171"},
	)

	var sawError bool
	for _, err := range catalog.EntriesFromDirectory(dir, catalog.ScanOptions{}) {
		if err != nil {
			sawError = true
		}
	}
	if !sawError {
		t.Fatal("expected waveunit failure to surface from the scan")
	}

	// Supplying a default waveunit makes the same scan succeed.
	entries := collect(t, dir, catalog.ScanOptions{DefaultWaveunit: "angstrom"})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry with default waveunit, got %d", len(entries))
	}
}

func TestNewFromFITSPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aia.fits")
	testsupport.WriteFITS(t, path,
		testsupport.FITSHeaderCard{Key: "INSTRUME", Value: "'AIA_3'"},
		testsupport.FITSHeaderCard{Key: "WAVELNTH", Value: "171"},
		testsupport.FITSHeaderCard{Key: "WAVEUNIT", Value: "'Angstrom'"},
	)

	entry, err := catalog.NewFromFITSPath(path, "")
	if err != nil {
		t.Fatalf("NewFromFITSPath failed: %v", err)
	}
	if entry.Instrument != "AIA_3" {
		t.Fatalf("unexpected instrument: %q", entry.Instrument)
	}
	if entry.Wavemin == nil || math.Abs(*entry.Wavemin-17.1) > 1e-9 {
		t.Fatalf("unexpected wavemin: %v", entry.Wavemin)
	}
}

package catalog_test

import (
	"errors"
	"strings"
	"testing"

	"heliocat/internal/catalog"
)

func TestFormatTableValidation(t *testing.T) {
	if _, err := catalog.FormatTable(nil, []string{"source"}); !errors.Is(err, catalog.ErrEmptyEntries) {
		t.Fatalf("expected ErrEmptyEntries, got %v", err)
	}
	if _, err := catalog.FormatTable([]*catalog.Entry{sampleEntry()}, nil); !errors.Is(err, catalog.ErrEmptyColumns) {
		t.Fatalf("expected ErrEmptyColumns, got %v", err)
	}
}

func TestFormatTableLayout(t *testing.T) {
	out, err := catalog.FormatTable([]*catalog.Entry{sampleEntry()}, []string{"source", "instrument", "wavemin"})
	if err != nil {
		t.Fatalf("FormatTable failed: %v", err)
	}

	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected header, ruler, and data rows, got:\n%s", out)
	}
	header := lines[0]
	for _, col := range []string{"source", "instrument", "wavemin"} {
		if !strings.Contains(header, col) {
			t.Fatalf("header row missing %q:\n%s", col, out)
		}
	}
	if !strings.Contains(lines[1], "------") || !strings.Contains(lines[1], "----------") {
		t.Fatalf("expected ruler row of dashes:\n%s", out)
	}
	if !strings.Contains(lines[2], "SDO") || !strings.Contains(lines[2], "AIA_3") || !strings.Contains(lines[2], "17.1") {
		t.Fatalf("unexpected data row:\n%s", out)
	}
}

func TestFormatTableStarred(t *testing.T) {
	starred := sampleEntry()
	starred.Starred = true
	plain := sampleEntry()

	out, err := catalog.FormatTable([]*catalog.Entry{starred, plain}, []string{"starred"})
	if err != nil {
		t.Fatalf("FormatTable failed: %v", err)
	}
	if !strings.Contains(out, "Yes") || !strings.Contains(out, "No") {
		t.Fatalf("expected Yes and No renderings:\n%s", out)
	}
}

func TestFormatTableTags(t *testing.T) {
	entry := sampleEntry()
	out, err := catalog.FormatTable([]*catalog.Entry{entry}, []string{"tags"})
	if err != nil {
		t.Fatalf("FormatTable failed: %v", err)
	}
	if !strings.Contains(out, "aia, euv") {
		t.Fatalf("expected comma-joined tags:\n%s", out)
	}

	entry.Tags = nil
	out, err = catalog.FormatTable([]*catalog.Entry{entry}, []string{"tags"})
	if err != nil {
		t.Fatalf("FormatTable failed: %v", err)
	}
	if !strings.Contains(out, "N/A") {
		t.Fatalf("expected N/A for tagless entry:\n%s", out)
	}
}

func TestFormatTableUnsetValues(t *testing.T) {
	out, err := catalog.FormatTable([]*catalog.Entry{{}}, []string{"id", "source", "size", "download_time"})
	if err != nil {
		t.Fatalf("FormatTable failed: %v", err)
	}
	if strings.Count(out, "N/A") < 4 {
		t.Fatalf("expected N/A for every unset column:\n%s", out)
	}
}

func TestFormatTableUnknownColumn(t *testing.T) {
	_, err := catalog.FormatTable([]*catalog.Entry{sampleEntry()}, []string{"bogus"})
	if err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("expected unknown column error, got %v", err)
	}
}

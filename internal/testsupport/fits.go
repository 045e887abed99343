package testsupport

import (
	"fmt"
	"os"
	"strings"
	"testing"
)

// FITSHeaderCard describes one header card for a generated test file.
// Value must already be in FITS notation ('string', T/F, or a number).
type FITSHeaderCard struct {
	Key     string
	Value   string
	Comment string
}

// WriteFITS writes a minimal FITS file containing a single header block
// with the standard SIMPLE/BITPIX/NAXIS preamble, the given cards, and an
// END card, padded to a full 2880-byte record.
func WriteFITS(t testing.TB, path string, cards ...FITSHeaderCard) {
	t.Helper()

	preamble := []FITSHeaderCard{
		{Key: "SIMPLE", Value: "T", Comment: "conforms to FITS standard"},
		{Key: "BITPIX", Value: "8"},
		{Key: "NAXIS", Value: "0"},
	}

	var b strings.Builder
	for _, card := range append(preamble, cards...) {
		b.WriteString(renderCard(card))
	}
	b.WriteString(padCard("END"))
	for b.Len()%2880 != 0 {
		b.WriteString(strings.Repeat(" ", 80))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write fits fixture: %v", err)
	}
}

func renderCard(card FITSHeaderCard) string {
	if card.Key == "" {
		return padCard("        " + card.Value)
	}
	line := fmt.Sprintf("%-8s= %20s", card.Key, card.Value)
	if card.Comment != "" {
		line += " / " + card.Comment
	}
	return padCard(line)
}

func padCard(line string) string {
	if len(line) > 80 {
		return line[:80]
	}
	return line + strings.Repeat(" ", 80-len(line))
}

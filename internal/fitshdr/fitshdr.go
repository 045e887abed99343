package fitshdr

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

const (
	recordSize = 2880
	cardSize   = 80
)

// KeyComments is the synthetic key under which per-card comments are
// collected. It appears as the final card of a decoded header when any
// card carried a comment.
const KeyComments = "KEYCOMMENTS"

// Card is one 80-byte header card, decoded.
type Card struct {
	Key     string
	Value   any
	Comment string
}

// Header is an ordered sequence of decoded cards from one header block.
type Header struct {
	cards []Card
}

// NewHeader builds a header from already-decoded cards, preserving their
// order. Useful for callers holding header data that did not come from a
// file on disk.
func NewHeader(cards ...Card) Header {
	copied := make([]Card, len(cards))
	copy(copied, cards)
	return Header{cards: copied}
}

// Cards returns the cards in file order.
func (h Header) Cards() []Card {
	return h.cards
}

// Get returns the value of the first card with the given key.
func (h Header) Get(key string) (any, bool) {
	for _, card := range h.cards {
		if card.Key == key {
			return card.Value, true
		}
	}
	return nil, false
}

// comment returns the comment of the first card with the given key.
func (h Header) comment(key string) (string, bool) {
	for _, card := range h.cards {
		if card.Key == key {
			return card.Comment, true
		}
	}
	return "", false
}

// ReadHeader decodes the primary header block of the FITS file at path.
// The block may span multiple 2880-byte records; reading stops at the
// END card. Extension headers are ignored.
func ReadHeader(path string) (Header, error) {
	file, err := os.Open(path)
	if err != nil {
		return Header{}, fmt.Errorf("open fits file: %w", err)
	}
	defer file.Close()
	return readHeader(file, path)
}

func readHeader(r io.Reader, name string) (Header, error) {
	var header Header
	record := make([]byte, recordSize)
	comments := map[string]string{}

	for {
		if _, err := io.ReadFull(r, record); err != nil {
			return Header{}, fmt.Errorf("read fits header from %s: %w", name, err)
		}
		for offset := 0; offset < recordSize; offset += cardSize {
			card, end := parseCard(record[offset : offset+cardSize])
			if end {
				if len(comments) > 0 {
					header.cards = append(header.cards, Card{Key: KeyComments, Value: commentMap(comments)})
				}
				return header, nil
			}
			if card.Key == "" && card.Value == nil {
				continue // fully blank card
			}
			header.cards = append(header.cards, card)
			if card.Comment != "" {
				comments[card.Key] = card.Comment
			}
		}
	}
}

// commentMap renders collected comments deterministically, key-sorted.
type commentMap map[string]string

func (m commentMap) String() string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, m[key]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func parseCard(raw []byte) (Card, bool) {
	text := string(raw)
	key := strings.TrimRight(text[:8], " ")

	if key == "END" {
		return Card{}, true
	}

	// COMMENT, HISTORY, and keyword-less cards carry free text instead of
	// a value indicator.
	if len(text) < 10 || text[8:10] != "= " {
		body := strings.TrimSpace(text[8:])
		if key == "" && body == "" {
			return Card{}, false
		}
		return Card{Key: key, Value: body}, false
	}

	value, comment := splitValue(text[10:])
	return Card{Key: key, Value: parseValue(value), Comment: comment}, false
}

// splitValue separates the value field from the trailing "/ comment",
// respecting quoted strings (a slash inside quotes is data).
func splitValue(field string) (string, string) {
	inString := false
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case '\'':
			inString = !inString
		case '/':
			if !inString {
				return strings.TrimSpace(field[:i]), strings.TrimSpace(field[i+1:])
			}
		}
	}
	return strings.TrimSpace(field), ""
}

func parseValue(value string) any {
	if value == "" {
		return nil
	}
	if strings.HasPrefix(value, "'") {
		inner := strings.TrimSuffix(strings.TrimPrefix(value, "'"), "'")
		// FITS escapes a quote inside a string by doubling it.
		return strings.TrimRight(strings.ReplaceAll(inner, "''", "'"), " ")
	}
	switch value {
	case "T":
		return true
	case "F":
		return false
	}
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

// ExtractWaveunit looks for a wavelength unit in the header: first a
// WAVEUNIT card, then a bracketed or parenthesized label in the WAVELNTH
// card comment ("[Angstrom]", "(nm)", "in angstroms"). Returns "" when
// no unit can be found.
func ExtractWaveunit(header Header) string {
	if value, ok := header.Get("WAVEUNIT"); ok {
		if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	comment, ok := header.comment("WAVELNTH")
	if !ok {
		return ""
	}
	if unit := between(comment, '[', ']'); unit != "" {
		return unit
	}
	if unit := between(comment, '(', ')'); unit != "" {
		return unit
	}
	fields := strings.Fields(comment)
	for i, field := range fields {
		if strings.EqualFold(field, "in") && i+1 < len(fields) {
			return strings.Trim(fields[i+1], ".,")
		}
	}
	return ""
}

func between(s string, opening, closing byte) string {
	start := strings.IndexByte(s, opening)
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(s[start+1:], closing)
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(s[start+1 : start+1+end])
}

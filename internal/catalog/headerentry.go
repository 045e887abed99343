package catalog

// HeaderEntry is one FITS header card as recorded on an entry. Header
// entries are owned by exactly one entry and keep the order they had in
// the source header.
type HeaderEntry struct {
	ID    int64 // assigned by the store; 0 until persisted
	Key   string
	Value string
}

// Equal reports whether two header entries match. An unassigned ID on
// either side matches any ID, so entries read back from the store compare
// equal to the freshly ingested ones they came from.
func (h HeaderEntry) Equal(other HeaderEntry) bool {
	if h.ID != other.ID && h.ID != 0 && other.ID != 0 {
		return false
	}
	return h.Key == other.Key && h.Value == other.Value
}

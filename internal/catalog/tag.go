package catalog

// Tag is a named label shared between entries. The name is the identity:
// two tags with the same name are the same tag, and many entries may
// reference it.
type Tag struct {
	Name string
}

// Equal reports whether two tags carry the same name.
func (t Tag) Equal(other Tag) bool {
	return t.Name == other.Name
}

func (t Tag) String() string {
	return t.Name
}

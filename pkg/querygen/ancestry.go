package querygen

// Ancestor is one step of an ancestry path: a selected field and the base
// type it resolves to.
type Ancestor struct {
	Field string
	Type  string
}

// AncestryPath is the sequence of fields selected from the operation root
// down to the current field. Paths are values: Extend never modifies the
// receiver, so sibling branches never see each other's entries.
type AncestryPath []Ancestor

// Extend returns a new path with one more entry.
func (p AncestryPath) Extend(field, typeName string) AncestryPath {
	next := make(AncestryPath, len(p), len(p)+1)
	copy(next, p)
	return append(next, Ancestor{Field: field, Type: typeName})
}

// HasType reports whether typeName was already entered somewhere on the path.
//
// This is the only cycle guard. It prunes the first re-entry of a type even
// when the re-entry would not recurse forever.
func (p AncestryPath) HasType(typeName string) bool {
	for _, a := range p {
		if a.Type == typeName {
			return true
		}
	}
	return false
}

// Has reports whether the exact (field, type) pair is on the path.
func (p AncestryPath) Has(field, typeName string) bool {
	for _, a := range p {
		if a.Field == field && a.Type == typeName {
			return true
		}
	}
	return false
}

// Fields returns the field names along the path.
func (p AncestryPath) Fields() []string {
	names := make([]string, len(p))
	for i, a := range p {
		names[i] = a.Field
	}
	return names
}

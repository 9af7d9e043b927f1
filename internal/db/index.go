package db

import (
	"errors"
	"strconv"
)

// IndexFieldType enumerates supported index field types.
type IndexFieldType int

const (
	// IndexFieldNumeric is a numeric field (range filters, sorting).
	IndexFieldNumeric IndexFieldType = iota
	// IndexFieldTag is an exact-value field (equality, substring patterns, sorting).
	IndexFieldTag
	// IndexFieldText is a tokenized full-text field.
	IndexFieldText
)

func (t IndexFieldType) String() string {
	switch t {
	case IndexFieldNumeric:
		return "NUMERIC"
	case IndexFieldTag:
		return "TAG"
	case IndexFieldText:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// IndexField describes a single field in an index schema.
// Name is the document property; Alias is the key queries refer to.
// One property may be indexed several times under different aliases.
type IndexField struct {
	Name  string
	Alias string
	Type  IndexFieldType

	// Multi marks an array property; each element is indexed.
	Multi bool
	// Sortable keeps the value available for ordering.
	Sortable bool

	// TAG options
	CaseSensitive bool
	SuffixTrie    bool
}

// Key returns the name queries use for the field.
func (f *IndexField) Key() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// IndexDefinition is a complete search index definition over a JSON collection.
type IndexDefinition struct {
	Collection string
	Fields     []IndexField
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Collection == "" {
		return errors.New("collection is required")
	}
	if !IsValidIdentifier(idx.Collection) {
		return errors.New("collection contains invalid characters")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		key := f.Key()
		if !IsValidIdentifier(key) {
			return errors.New("invalid field key: " + key)
		}
		if seen[key] {
			return errors.New("duplicate field name: " + key)
		}
		seen[key] = true
	}

	return nil
}

// Field returns the field indexed under key.
func (idx *IndexDefinition) Field(key string) (IndexField, bool) {
	for i := range idx.Fields {
		if idx.Fields[i].Key() == key {
			return idx.Fields[i], true
		}
	}
	return IndexField{}, false
}

// IsValidIdentifier returns true if s matches [a-zA-Z0-9_:-]+.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == ':' || r == '-'
		if !isAlpha && !isDigit && !isSpecial {
			return false
		}
	}
	return true
}

package db

import "strings"

// FieldOption tweaks a field added through IndexBuilder.
type FieldOption func(*IndexField)

// As indexes the property under a different key.
func As(alias string) FieldOption {
	return func(f *IndexField) { f.Alias = alias }
}

// Sortable keeps the field available for ordering.
func Sortable() FieldOption {
	return func(f *IndexField) { f.Sortable = true }
}

// CaseSensitive disables case folding of TAG values.
func CaseSensitive() FieldOption {
	return func(f *IndexField) { f.CaseSensitive = true }
}

// SuffixTrie enables efficient substring matching on TAG values.
func SuffixTrie() FieldOption {
	return func(f *IndexField) { f.SuffixTrie = true }
}

// Multi marks an array property.
func Multi() FieldOption {
	return func(f *IndexField) { f.Multi = true }
}

// IndexBuilder is a fluent builder for index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an index over collection.
func NewIndex(collection string) *IndexBuilder {
	return &IndexBuilder{def: IndexDefinition{Collection: collection}}
}

// Numeric adds a NUMERIC field to the index.
func (b *IndexBuilder) Numeric(name string, opts ...FieldOption) *IndexBuilder {
	return b.add(name, IndexFieldNumeric, opts)
}

// Tag adds a TAG field to the index.
func (b *IndexBuilder) Tag(name string, opts ...FieldOption) *IndexBuilder {
	return b.add(name, IndexFieldTag, opts)
}

// Text adds a TEXT field to the index.
func (b *IndexBuilder) Text(name string, opts ...FieldOption) *IndexBuilder {
	return b.add(name, IndexFieldText, opts)
}

func (b *IndexBuilder) add(name string, typ IndexFieldType, opts []FieldOption) *IndexBuilder {
	f := IndexField{Name: name, Type: typ}
	for _, o := range opts {
		o(&f)
	}
	b.def.Fields = append(b.def.Fields, f)
	return b
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	def := b.def
	def.Fields = append([]IndexField(nil), b.def.Fields...)
	return &def, nil
}

// MustBuild calls Build and panics on error.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// String returns a debug representation of the schema.
func (idx *IndexDefinition) String() string {
	parts := []string{"INDEX", idx.Collection, "SCHEMA"}
	for i := range idx.Fields {
		f := &idx.Fields[i]
		parts = append(parts, f.Name)
		if f.Multi {
			parts[len(parts)-1] += "[*]"
		}
		if f.Alias != "" {
			parts = append(parts, "AS", f.Alias)
		}
		parts = append(parts, f.Type.String())
		if f.CaseSensitive {
			parts = append(parts, "CASESENSITIVE")
		}
		if f.SuffixTrie {
			parts = append(parts, "WITHSUFFIXTRIE")
		}
		if f.Sortable {
			parts = append(parts, "SORTABLE")
		}
	}
	return strings.Join(parts, " ")
}

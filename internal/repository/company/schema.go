package company

import (
	"github.com/kailas-cloud/companydex/internal/db"
	domcomp "github.com/kailas-cloud/companydex/internal/domain/company"
)

// Collection is the store collection holding company documents.
const Collection = "companies"

// Index keys for the tokenized copies of name and tags.
const (
	keyNameText = "name_text"
	keyTagsText = "tags_text"
)

// textFields are the keys the full-text leaf searches across.
var textFields = []string{keyNameText, domcomp.FieldDescription, keyTagsText}

// IndexDefinition returns the search index over company documents.
// name and location allow substring patterns, industry and tags match exactly.
func IndexDefinition() *db.IndexDefinition {
	return db.NewIndex(Collection).
		Tag(domcomp.FieldName, db.SuffixTrie(), db.Sortable()).
		Text(domcomp.FieldName, db.As(keyNameText)).
		Tag(domcomp.FieldIndustry, db.CaseSensitive(), db.Sortable()).
		Tag(domcomp.FieldLocation, db.SuffixTrie(), db.Sortable()).
		Numeric(domcomp.FieldSize, db.Sortable()).
		Numeric(domcomp.FieldFoundedYear, db.Sortable()).
		Numeric(domcomp.FieldCreatedAt, db.Sortable()).
		Numeric(domcomp.FieldUpdatedAt, db.Sortable()).
		Text(domcomp.FieldDescription).
		Tag(domcomp.FieldTags, db.Multi(), db.CaseSensitive()).
		Text(domcomp.FieldTags, db.As(keyTagsText), db.Multi()).
		MustBuild()
}

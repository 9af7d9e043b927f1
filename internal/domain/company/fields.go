package company

// Searchable field names, shared by the filter builder, sort specs and index schemas.
const (
	FieldName        = "name"
	FieldIndustry    = "industry"
	FieldLocation    = "location"
	FieldSize        = "size"
	FieldFoundedYear = "foundedYear"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldCreatedAt   = "createdAt"
	FieldUpdatedAt   = "updatedAt"
)

package db

import (
	"github.com/kailas-cloud/companydex/internal/domain/search/filter"
	"github.com/kailas-cloud/companydex/internal/domain/search/sort"
)

// FindQuery is the input for a filtered, ordered page read.
type FindQuery struct {
	Collection string
	Filter     filter.Expression
	// TextFields are the indexed keys a full-text condition is matched against.
	TextFields []string
	Sort       sort.Spec
	Offset     int
	Limit      int
}

// CountQuery is the input for counting the records matching a filter.
type CountQuery struct {
	Collection string
	Filter     filter.Expression
	TextFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit. Source holds the raw JSON document.
type SearchEntry struct {
	ID     string
	Score  float64
	Source []byte
}

package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade; consumers depend on the narrow sub-interfaces
type Store interface {
	Pinger
	DocumentStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DocumentStore provides JSON document operations addressed by collection and id.
type DocumentStore interface {
	PutDocument(ctx context.Context, collection, id string, data []byte) error
	GetDocument(ctx context.Context, collection, id string) ([]byte, error)
	DeleteDocument(ctx context.Context, collection, id string) error
	DocumentExists(ctx context.Context, collection, id string) (bool, error)
}

// IndexManager provides search index lifecycle operations.
// Indexes are named after the collection they cover.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, collection string) error
	IndexExists(ctx context.Context, collection string) (bool, error)
	SupportsTextSearch(ctx context.Context) bool
}

// Searcher provides filtered, sorted and paginated reads over an index.
type Searcher interface {
	Find(ctx context.Context, q *FindQuery) (*SearchResult, error)
	Count(ctx context.Context, q *CountQuery) (int, error)
}

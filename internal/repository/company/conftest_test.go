package company

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/companydex/internal/db"
	domcomp "github.com/kailas-cloud/companydex/internal/domain/company"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	putFn         func(ctx context.Context, collection, id string, data []byte) error
	getFn         func(ctx context.Context, collection, id string) ([]byte, error)
	deleteFn      func(ctx context.Context, collection, id string) error
	existsFn      func(ctx context.Context, collection, id string) (bool, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn func(ctx context.Context, collection string) (bool, error)
	findFn        func(ctx context.Context, q *db.FindQuery) (*db.SearchResult, error)
	countFn       func(ctx context.Context, q *db.CountQuery) (int, error)
	noText        bool
}

func (m *mockStore) PutDocument(ctx context.Context, collection, id string, data []byte) error {
	if m.putFn != nil {
		return m.putFn(ctx, collection, id, data)
	}
	return nil
}

func (m *mockStore) GetDocument(ctx context.Context, collection, id string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, collection, id)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) DeleteDocument(ctx context.Context, collection, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, collection, id)
	}
	return nil
}

func (m *mockStore) DocumentExists(ctx context.Context, collection, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, collection, id)
	}
	return false, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, collection string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, collection)
	}
	return true, nil
}

func (m *mockStore) SupportsTextSearch(_ context.Context) bool {
	return !m.noText
}

func (m *mockStore) Find(ctx context.Context, q *db.FindQuery) (*db.SearchResult, error) {
	if m.findFn != nil {
		return m.findFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) Count(ctx context.Context, q *db.CountQuery) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, q)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testCompany(t *testing.T) domcomp.Company {
	t.Helper()
	size := 120.0
	c, err := domcomp.New("c-1", domcomp.Fields{
		Name:     "Acme",
		Industry: "Software",
		Location: "Berlin",
		Size:     &size,
		Tags:     []string{"ai", "b2b"},
	}, testTime)
	if err != nil {
		t.Fatalf("company.New: %v", err)
	}
	return c
}

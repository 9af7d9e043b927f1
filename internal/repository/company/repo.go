// Package company persists company records in a db.Store collection.
package company

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/companydex/internal/db"
	"github.com/kailas-cloud/companydex/internal/domain"
	domcomp "github.com/kailas-cloud/companydex/internal/domain/company"
	"github.com/kailas-cloud/companydex/internal/domain/search/filter"
	"github.com/kailas-cloud/companydex/internal/domain/search/sort"
)

// Store operation names used in errors, logs and metric labels.
const (
	OpFind        = "find"
	OpCount       = "count"
	OpGet         = "get"
	OpCreate      = "create"
	OpReplace     = "replace"
	OpDelete      = "delete"
	OpEnsureIndex = "ensure_index"
	OpIndexExists = "index_exists"
)

// store is the consumer interface for company persistence (ISP).
type store interface {
	PutDocument(ctx context.Context, collection, id string, data []byte) error
	GetDocument(ctx context.Context, collection, id string) ([]byte, error)
	DeleteDocument(ctx context.Context, collection, id string) error
	DocumentExists(ctx context.Context, collection, id string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, collection string) (bool, error)
	SupportsTextSearch(ctx context.Context) bool
	Find(ctx context.Context, q *db.FindQuery) (*db.SearchResult, error)
	Count(ctx context.Context, q *db.CountQuery) (int, error)
}

// Repo implements usecase/company.Repository.
type Repo struct {
	store store
}

// New creates a company repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Find returns one ordered page of companies matching expr.
func (r *Repo) Find(
	ctx context.Context, expr filter.Expression, spec sort.Spec, skip, limit int,
) ([]domcomp.Company, error) {
	if err := r.checkText(ctx, OpFind, expr); err != nil {
		return nil, err
	}

	res, err := r.store.Find(ctx, &db.FindQuery{
		Collection: Collection,
		Filter:     expr,
		TextFields: textFields,
		Sort:       spec,
		Offset:     skip,
		Limit:      limit,
	})
	if err != nil {
		return nil, storeErr(OpFind, err)
	}

	items := make([]domcomp.Company, 0, len(res.Entries))
	for _, e := range res.Entries {
		c, err := decodeDoc(e.ID, e.Source)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, nil
}

// Count returns the number of companies matching expr.
func (r *Repo) Count(ctx context.Context, expr filter.Expression) (int, error) {
	if err := r.checkText(ctx, OpCount, expr); err != nil {
		return 0, err
	}

	n, err := r.store.Count(ctx, &db.CountQuery{
		Collection: Collection,
		Filter:     expr,
		TextFields: textFields,
	})
	if err != nil {
		return 0, storeErr(OpCount, err)
	}
	return n, nil
}

// Get returns a company by ID.
func (r *Repo) Get(ctx context.Context, id string) (domcomp.Company, error) {
	raw, err := r.store.GetDocument(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domcomp.Company{}, domain.ErrCompanyNotFound
		}
		return domcomp.Company{}, storeErr(OpGet, err)
	}
	return decodeDoc(id, raw)
}

// Create stores a new company.
func (r *Repo) Create(ctx context.Context, c *domcomp.Company) error {
	return r.put(ctx, OpCreate, c)
}

// Replace overwrites an existing company. Missing IDs yield domain.ErrCompanyNotFound.
func (r *Repo) Replace(ctx context.Context, c *domcomp.Company) error {
	exists, err := r.store.DocumentExists(ctx, Collection, c.ID())
	if err != nil {
		return storeErr(OpReplace, err)
	}
	if !exists {
		return domain.ErrCompanyNotFound
	}
	return r.put(ctx, OpReplace, c)
}

// Delete removes a company.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.DeleteDocument(ctx, Collection, id); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.ErrCompanyNotFound
		}
		return storeErr(OpDelete, err)
	}
	return nil
}

// EnsureIndex creates the company search index unless it already exists.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	if err := r.store.CreateIndex(ctx, IndexDefinition()); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return storeErr(OpEnsureIndex, err)
	}
	return nil
}

// IndexExists reports whether the company search index is present.
func (r *Repo) IndexExists(ctx context.Context) (bool, error) {
	ok, err := r.store.IndexExists(ctx, Collection)
	if err != nil {
		return false, storeErr(OpIndexExists, err)
	}
	return ok, nil
}

func (r *Repo) put(ctx context.Context, op string, c *domcomp.Company) error {
	data, err := json.Marshal(buildDoc(c))
	if err != nil {
		return fmt.Errorf("marshal company: %w", err)
	}
	if err := r.store.PutDocument(ctx, Collection, c.ID(), data); err != nil {
		return storeErr(op, err)
	}
	return nil
}

func (r *Repo) checkText(ctx context.Context, op string, expr filter.Expression) error {
	if _, ok := expr.Text(); ok && !r.store.SupportsTextSearch(ctx) {
		return domain.NewStoreError(op, domain.ErrStoreQuery, domain.ErrTextSearchNotSupported)
	}
	return nil
}

// storeErr classifies a db error into the domain store taxonomy.
func storeErr(op string, err error) error {
	switch {
	case errors.Is(err, db.ErrRejected), errors.Is(err, db.ErrIndexNotFound):
		return domain.NewStoreError(op, domain.ErrStoreQuery, err)
	case errors.Is(err, db.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return domain.NewStoreError(op, domain.ErrStoreUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

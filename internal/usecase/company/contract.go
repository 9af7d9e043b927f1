package company

import (
	"context"
	"time"

	domcomp "github.com/kailas-cloud/companydex/internal/domain/company"
	"github.com/kailas-cloud/companydex/internal/domain/search/filter"
	"github.com/kailas-cloud/companydex/internal/domain/search/sort"
)

// Repository is the document store contract for companies.
type Repository interface {
	Find(ctx context.Context, expr filter.Expression, spec sort.Spec, skip, limit int) ([]domcomp.Company, error)
	Count(ctx context.Context, expr filter.Expression) (int, error)
	Get(ctx context.Context, id string) (domcomp.Company, error)
	Create(ctx context.Context, c *domcomp.Company) error
	Replace(ctx context.Context, c *domcomp.Company) error
	Delete(ctx context.Context, id string) error
}

// IDGenerator issues identifiers for new companies.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

package company

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/companydex/internal/domain"
	domcomp "github.com/kailas-cloud/companydex/internal/domain/company"
	"github.com/kailas-cloud/companydex/internal/domain/search/filter"
	"github.com/kailas-cloud/companydex/internal/domain/search/sort"
	"github.com/kailas-cloud/companydex/internal/metrics"
)

// repository is the surface InstrumentedRepo decorates.
type repository interface {
	Find(ctx context.Context, expr filter.Expression, spec sort.Spec, skip, limit int) ([]domcomp.Company, error)
	Count(ctx context.Context, expr filter.Expression) (int, error)
	Get(ctx context.Context, id string) (domcomp.Company, error)
	Create(ctx context.Context, c *domcomp.Company) error
	Replace(ctx context.Context, c *domcomp.Company) error
	Delete(ctx context.Context, id string) error
	EnsureIndex(ctx context.Context) error
	IndexExists(ctx context.Context) (bool, error)
}

// InstrumentedRepo wraps a repository with store metrics and logging.
type InstrumentedRepo struct {
	inner   repository
	backend string
	logger  *zap.Logger
}

// NewInstrumented wraps inner. backend labels metrics ("redis", "elasticsearch").
func NewInstrumented(inner repository, backend string, logger *zap.Logger) *InstrumentedRepo {
	return &InstrumentedRepo{inner: inner, backend: backend, logger: logger}
}

// Find delegates and records the operation.
func (p *InstrumentedRepo) Find(
	ctx context.Context, expr filter.Expression, spec sort.Spec, skip, limit int,
) ([]domcomp.Company, error) {
	start := time.Now()
	items, err := p.inner.Find(ctx, expr, spec, skip, limit)
	p.observe(OpFind, start, err,
		zap.Stringer("filter", expr),
		zap.Stringer("sort", spec),
		zap.Int("skip", skip),
		zap.Int("limit", limit),
		zap.Int("returned", len(items)),
	)
	return items, err
}

// Count delegates and records the operation and the match count.
func (p *InstrumentedRepo) Count(ctx context.Context, expr filter.Expression) (int, error) {
	start := time.Now()
	n, err := p.inner.Count(ctx, expr)
	p.observe(OpCount, start, err, zap.Stringer("filter", expr), zap.Int("total", n))
	if err == nil {
		metrics.ListResultSize.WithLabelValues(p.backend).Observe(float64(n))
	}
	return n, err
}

// Get delegates and records the operation.
func (p *InstrumentedRepo) Get(ctx context.Context, id string) (domcomp.Company, error) {
	start := time.Now()
	c, err := p.inner.Get(ctx, id)
	p.observe(OpGet, start, err, zap.String("id", id))
	return c, err
}

// Create delegates and records the operation.
func (p *InstrumentedRepo) Create(ctx context.Context, c *domcomp.Company) error {
	start := time.Now()
	err := p.inner.Create(ctx, c)
	p.observe(OpCreate, start, err, zap.String("id", c.ID()))
	return err
}

// Replace delegates and records the operation.
func (p *InstrumentedRepo) Replace(ctx context.Context, c *domcomp.Company) error {
	start := time.Now()
	err := p.inner.Replace(ctx, c)
	p.observe(OpReplace, start, err, zap.String("id", c.ID()))
	return err
}

// Delete delegates and records the operation.
func (p *InstrumentedRepo) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := p.inner.Delete(ctx, id)
	p.observe(OpDelete, start, err, zap.String("id", id))
	return err
}

// EnsureIndex delegates and records the operation.
func (p *InstrumentedRepo) EnsureIndex(ctx context.Context) error {
	start := time.Now()
	err := p.inner.EnsureIndex(ctx)
	p.observe(OpEnsureIndex, start, err)
	return err
}

// IndexExists delegates and records the operation.
func (p *InstrumentedRepo) IndexExists(ctx context.Context) (bool, error) {
	start := time.Now()
	ok, err := p.inner.IndexExists(ctx)
	p.observe(OpIndexExists, start, err)
	return ok, err
}

func (p *InstrumentedRepo) observe(op string, start time.Time, err error, fields ...zap.Field) {
	duration := time.Since(start)
	outcome := Outcome(err)

	metrics.StoreOperationDuration.WithLabelValues(p.backend, op).Observe(duration.Seconds())
	metrics.StoreOperationsTotal.WithLabelValues(p.backend, op, outcome).Inc()

	fields = append(fields,
		zap.String("backend", p.backend),
		zap.String("operation", op),
		zap.Duration("duration", duration),
	)
	switch outcome {
	case outcomeOK, outcomeNotFound:
		p.logger.Debug("Store operation completed", fields...)
	case outcomeRejected:
		p.logger.Warn("Store rejected operation", append(fields, zap.Error(err))...)
	default:
		p.logger.Error("Store operation failed", append(fields, zap.Error(err))...)
	}
}

const (
	outcomeOK          = "ok"
	outcomeNotFound    = "not_found"
	outcomeRejected    = "rejected"
	outcomeUnavailable = "unavailable"
	outcomeError       = "error"
)

// Outcome maps an operation error to its metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, domain.ErrNotFound):
		return outcomeNotFound
	case errors.Is(err, domain.ErrStoreQuery):
		return outcomeRejected
	case errors.Is(err, domain.ErrStoreUnavailable):
		return outcomeUnavailable
	default:
		return outcomeError
	}
}

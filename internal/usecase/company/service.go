// Package company implements company listing and single-record use cases.
package company

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/companydex/internal/domain"
	domcomp "github.com/kailas-cloud/companydex/internal/domain/company"
	"github.com/kailas-cloud/companydex/internal/domain/search/filter"
	"github.com/kailas-cloud/companydex/internal/domain/search/page"
	"github.com/kailas-cloud/companydex/internal/domain/search/params"
	"github.com/kailas-cloud/companydex/internal/domain/search/sort"
	"github.com/kailas-cloud/companydex/internal/logger"
)

// Service runs company queries and CRUD against a Repository.
type Service struct {
	repo  Repository
	newID IDGenerator
	now   Clock
}

// New creates a company service with random UUIDs and the wall clock.
func New(repo Repository) *Service {
	return &Service{
		repo:  repo,
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithIDGenerator overrides ID generation.
func (s *Service) WithIDGenerator(gen IDGenerator) *Service {
	if gen != nil {
		s.newID = gen
	}
	return s
}

// WithClock overrides the time source.
func (s *Service) WithClock(c Clock) *Service {
	if c != nil {
		s.now = c
	}
	return s
}

// List builds a filter from p and returns one page of matching companies.
// The page and the total are fetched concurrently; either failure fails the call.
func (s *Service) List(ctx context.Context, p params.Params) (page.Result[domcomp.Company], error) {
	expr := filter.FromParams(p)
	spec := sort.Parse(p.Sort)
	req := page.Normalize(p.Page, p.Limit)

	logger.FromContext(ctx).Debug("Listing companies",
		zap.Stringer("filter", expr),
		zap.Stringer("sort", spec),
		zap.Int("page", req.Page),
		zap.Int("limit", req.Limit),
	)

	var (
		items []domcomp.Company
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.Find(gctx, expr, spec, req.Skip(), req.Limit)
		if err != nil {
			return fmt.Errorf("find companies: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, expr)
		if err != nil {
			return fmt.Errorf("count companies: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return page.Result[domcomp.Company]{}, err
	}

	return page.NewResult(items, total, req), nil
}

// Get returns a company by ID.
func (s *Service) Get(ctx context.Context, id string) (domcomp.Company, error) {
	if id == "" {
		return domcomp.Company{}, domain.ErrCompanyNotFound
	}
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return domcomp.Company{}, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// Create validates f and stores a new company with a fresh ID.
func (s *Service) Create(ctx context.Context, f domcomp.Fields) (domcomp.Company, error) {
	c, err := domcomp.New(s.newID(), f, s.now())
	if err != nil {
		return domcomp.Company{}, err
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return domcomp.Company{}, fmt.Errorf("create company: %w", err)
	}
	return c, nil
}

// Update applies a partial update and returns the stored result.
func (s *Service) Update(ctx context.Context, id string, p domcomp.Patch) (domcomp.Company, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return domcomp.Company{}, err
	}
	if p.IsEmpty() {
		return current, nil
	}

	updated, err := p.Apply(current, s.now())
	if err != nil {
		return domcomp.Company{}, err
	}
	if err := s.repo.Replace(ctx, &updated); err != nil {
		return domcomp.Company{}, fmt.Errorf("replace company: %w", err)
	}
	return updated, nil
}

// Delete removes a company and returns its ID.
func (s *Service) Delete(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", domain.ErrCompanyNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return "", fmt.Errorf("delete company: %w", err)
	}
	return id, nil
}

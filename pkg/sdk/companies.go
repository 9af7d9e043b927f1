package companydex

import (
	"context"
	"fmt"
	"time"

	domcomp "github.com/kailas-cloud/companydex/internal/domain/company"
	"github.com/kailas-cloud/companydex/internal/domain/search/page"
	"github.com/kailas-cloud/companydex/internal/domain/search/params"
)

// companyUseCase is the internal interface for company operations.
type companyUseCase interface {
	List(ctx context.Context, p params.Params) (page.Result[domcomp.Company], error)
	Get(ctx context.Context, id string) (domcomp.Company, error)
	Create(ctx context.Context, f domcomp.Fields) (domcomp.Company, error)
	Update(ctx context.Context, id string, p domcomp.Patch) (domcomp.Company, error)
	Delete(ctx context.Context, id string) (string, error)
}

// CompanyService provides company queries and CRUD.
type CompanyService struct {
	svc companyUseCase
	obs *observer
}

// List returns one page of companies matching q, plus the total match count.
func (s *CompanyService) List(ctx context.Context, q Query) (_ Page, err error) {
	start := time.Now()
	defer func() { s.obs.observe("company.list", start, err) }()

	res, err := s.svc.List(ctx, q.toParams())
	if err != nil {
		return Page{}, fmt.Errorf("list companies: %w", err)
	}
	return pageFromDomain(res), nil
}

// Get returns the company with the given id, or ErrCompanyNotFound.
func (s *CompanyService) Get(ctx context.Context, id string) (_ Company, err error) {
	start := time.Now()
	defer func() { s.obs.observe("company.get", start, err) }()

	c, err := s.svc.Get(ctx, id)
	if err != nil {
		return Company{}, fmt.Errorf("get company %s: %w", id, err)
	}
	return companyFromDomain(&c), nil
}

// Create stores a new company under a generated id.
func (s *CompanyService) Create(ctx context.Context, in CompanyInput) (_ Company, err error) {
	start := time.Now()
	defer func() { s.obs.observe("company.create", start, err) }()

	c, err := s.svc.Create(ctx, in.toFields())
	if err != nil {
		return Company{}, fmt.Errorf("create company: %w", err)
	}
	return companyFromDomain(&c), nil
}

// Update merges p into the stored company and returns the result.
func (s *CompanyService) Update(ctx context.Context, id string, p CompanyPatch) (_ Company, err error) {
	start := time.Now()
	defer func() { s.obs.observe("company.update", start, err) }()

	c, err := s.svc.Update(ctx, id, p.toDomain())
	if err != nil {
		return Company{}, fmt.Errorf("update company %s: %w", id, err)
	}
	return companyFromDomain(&c), nil
}

// Delete removes the company with the given id.
func (s *CompanyService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("company.delete", start, err) }()

	if _, err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete company %s: %w", id, err)
	}
	return nil
}

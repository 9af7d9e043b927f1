package companydex

import (
	"context"

	domcomp "github.com/kailas-cloud/companydex/internal/domain/company"
	"github.com/kailas-cloud/companydex/internal/domain/search/page"
	"github.com/kailas-cloud/companydex/internal/domain/search/params"
	healthuc "github.com/kailas-cloud/companydex/internal/usecase/health"
)

// --- companyUseCase mock ---

type mockCompanyUC struct {
	listFn   func(ctx context.Context, p params.Params) (page.Result[domcomp.Company], error)
	getFn    func(ctx context.Context, id string) (domcomp.Company, error)
	createFn func(ctx context.Context, f domcomp.Fields) (domcomp.Company, error)
	updateFn func(ctx context.Context, id string, p domcomp.Patch) (domcomp.Company, error)
	deleteFn func(ctx context.Context, id string) (string, error)
}

func (m *mockCompanyUC) List(ctx context.Context, p params.Params) (page.Result[domcomp.Company], error) {
	return m.listFn(ctx, p)
}

func (m *mockCompanyUC) Get(ctx context.Context, id string) (domcomp.Company, error) {
	return m.getFn(ctx, id)
}

func (m *mockCompanyUC) Create(ctx context.Context, f domcomp.Fields) (domcomp.Company, error) {
	return m.createFn(ctx, f)
}

func (m *mockCompanyUC) Update(ctx context.Context, id string, p domcomp.Patch) (domcomp.Company, error) {
	return m.updateFn(ctx, id, p)
}

func (m *mockCompanyUC) Delete(ctx context.Context, id string) (string, error) {
	return m.deleteFn(ctx, id)
}

// --- indexUseCase mock ---

type mockIndexUC struct {
	ensureFn func(ctx context.Context) error
	existsFn func(ctx context.Context) (bool, error)
}

func (m *mockIndexUC) EnsureIndex(ctx context.Context) error {
	return m.ensureFn(ctx)
}

func (m *mockIndexUC) IndexExists(ctx context.Context) (bool, error) {
	return m.existsFn(ctx)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}

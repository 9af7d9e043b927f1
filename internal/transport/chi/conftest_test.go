package chi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/companydex/internal/domain"
	domcomp "github.com/kailas-cloud/companydex/internal/domain/company"
	"github.com/kailas-cloud/companydex/internal/domain/search/filter"
	"github.com/kailas-cloud/companydex/internal/domain/search/sort"
	companyuc "github.com/kailas-cloud/companydex/internal/usecase/company"
	healthuc "github.com/kailas-cloud/companydex/internal/usecase/health"
)

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// mockRepo implements usecase/company.Repository.
type mockRepo struct {
	findFn    func(ctx context.Context, expr filter.Expression, spec sort.Spec, skip, limit int) ([]domcomp.Company, error)
	countFn   func(ctx context.Context, expr filter.Expression) (int, error)
	getFn     func(ctx context.Context, id string) (domcomp.Company, error)
	createFn  func(ctx context.Context, c *domcomp.Company) error
	replaceFn func(ctx context.Context, c *domcomp.Company) error
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockRepo) Find(
	ctx context.Context, expr filter.Expression, spec sort.Spec, skip, limit int,
) ([]domcomp.Company, error) {
	if m.findFn != nil {
		return m.findFn(ctx, expr, spec, skip, limit)
	}
	return []domcomp.Company{}, nil
}

func (m *mockRepo) Count(ctx context.Context, expr filter.Expression) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, expr)
	}
	return 0, nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domcomp.Company, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domcomp.Company{}, domain.ErrCompanyNotFound
}

func (m *mockRepo) Create(ctx context.Context, c *domcomp.Company) error {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return nil
}

func (m *mockRepo) Replace(ctx context.Context, c *domcomp.Company) error {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, c)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(context.Context) error { return m.err }

type mockIndex struct{ exists bool }

func (m *mockIndex) IndexExists(context.Context) (bool, error) { return m.exists, nil }

func newTestRouter(t *testing.T, repo *mockRepo, pingErr error) http.Handler {
	t.Helper()
	svc := companyuc.New(repo).
		WithIDGenerator(func() string { return "new-id" }).
		WithClock(func() time.Time { return testTime })
	health := healthuc.New(&mockPinger{err: pingErr}, &mockIndex{exists: true})

	r := chi.NewRouter()
	NewServer(svc, health, zap.NewNop()).Mount(r)
	return r
}

func testCompany(id, name string) domcomp.Company {
	size := 50.0
	return domcomp.Reconstruct(id, domcomp.Fields{
		Name:     name,
		Industry: "Software",
		Size:     &size,
		Tags:     []string{"ai"},
	}, testTime, testTime)
}

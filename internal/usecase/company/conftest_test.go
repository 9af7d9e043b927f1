package company

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/kailas-cloud/companydex/internal/domain"
	domcomp "github.com/kailas-cloud/companydex/internal/domain/company"
	"github.com/kailas-cloud/companydex/internal/domain/search/filter"
	"github.com/kailas-cloud/companydex/internal/domain/search/sort"
)

// memRepo is an in-memory Repository that evaluates filter expressions.
type memRepo struct {
	mu       sync.Mutex
	items    map[string]domcomp.Company
	order    []string
	findErr  error
	countErr error
	putErr   error
}

func newMemRepo(cs ...domcomp.Company) *memRepo {
	r := &memRepo{items: make(map[string]domcomp.Company)}
	for _, c := range cs {
		r.items[c.ID()] = c
		r.order = append(r.order, c.ID())
	}
	return r
}

func (r *memRepo) Find(
	ctx context.Context, expr filter.Expression, spec sort.Spec, skip, limit int,
) ([]domcomp.Company, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	matched := r.match(expr)
	slices.SortStableFunc(matched, func(a, b domcomp.Company) int {
		for _, f := range spec {
			c := compareField(&a, &b, f.Name)
			if f.Direction == sort.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	if skip >= len(matched) {
		return []domcomp.Company{}, nil
	}
	return matched[skip:min(skip+limit, len(matched))], ctx.Err()
}

func (r *memRepo) Count(ctx context.Context, expr filter.Expression) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return len(r.match(expr)), ctx.Err()
}

func (r *memRepo) Get(_ context.Context, id string) (domcomp.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return domcomp.Company{}, domain.ErrCompanyNotFound
	}
	return c, nil
}

func (r *memRepo) Create(_ context.Context, c *domcomp.Company) error {
	if r.putErr != nil {
		return r.putErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID()] = *c
	r.order = append(r.order, c.ID())
	return nil
}

func (r *memRepo) Replace(_ context.Context, c *domcomp.Company) error {
	if r.putErr != nil {
		return r.putErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID()]; !ok {
		return domain.ErrCompanyNotFound
	}
	r.items[c.ID()] = *c
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrCompanyNotFound
	}
	delete(r.items, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return nil
}

func (r *memRepo) match(expr filter.Expression) []domcomp.Company {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domcomp.Company{}
	for _, id := range r.order {
		c := r.items[id]
		if matches(&c, expr) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c *domcomp.Company, expr filter.Expression) bool {
	for _, cond := range expr.Conditions() {
		if !matchCondition(c, cond) {
			return false
		}
	}
	return true
}

func matchCondition(c *domcomp.Company, cond filter.Condition) bool {
	switch cond.Kind() {
	case filter.KindText:
		haystack := strings.ToLower(c.Name() + " " + c.Description() + " " + strings.Join(c.Tags(), " "))
		for _, term := range strings.Fields(strings.ToLower(cond.Value())) {
			if strings.Contains(haystack, term) {
				return true
			}
		}
		return false
	case filter.KindPattern:
		return strings.Contains(strings.ToLower(stringField(c, cond.Key())), strings.ToLower(cond.Value()))
	case filter.KindExact:
		return stringField(c, cond.Key()) == cond.Value()
	case filter.KindRange:
		v := numberField(c, cond.Key())
		return v != nil && cond.Range().Contains(*v)
	case filter.KindAll:
		return c.HasTags(cond.Values())
	default:
		return false
	}
}

func stringField(c *domcomp.Company, key string) string {
	switch key {
	case domcomp.FieldName:
		return c.Name()
	case domcomp.FieldIndustry:
		return c.Industry()
	case domcomp.FieldLocation:
		return c.Location()
	default:
		return ""
	}
}

func numberField(c *domcomp.Company, key string) *float64 {
	switch key {
	case domcomp.FieldSize:
		return c.Size()
	case domcomp.FieldFoundedYear:
		return c.FoundedYear()
	case domcomp.FieldCreatedAt:
		v := float64(c.CreatedAt().UnixMilli())
		return &v
	default:
		return nil
	}
}

func compareField(a, b *domcomp.Company, key string) int {
	if key == domcomp.FieldName || key == domcomp.FieldIndustry || key == domcomp.FieldLocation {
		return cmp.Compare(stringField(a, key), stringField(b, key))
	}
	va, vb := numberField(a, key), numberField(b, key)
	switch {
	case va == nil && vb == nil:
		return 0
	case va == nil:
		return -1
	case vb == nil:
		return 1
	default:
		return cmp.Compare(*va, *vb)
	}
}

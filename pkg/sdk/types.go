package companydex

import (
	"strconv"
	"time"

	domcomp "github.com/kailas-cloud/companydex/internal/domain/company"
	"github.com/kailas-cloud/companydex/internal/domain/search/page"
	"github.com/kailas-cloud/companydex/internal/domain/search/params"
)

// Company is a directory record.
type Company struct {
	ID          string
	Name        string
	Industry    string
	Location    string
	Size        *float64
	FoundedYear *float64
	Website     string
	Description string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CompanyInput holds the writable fields of a new company. Name is required.
type CompanyInput struct {
	Name        string
	Industry    string
	Location    string
	Size        *float64
	FoundedYear *float64
	Website     string
	Description string
	Tags        []string
}

// CompanyPatch is a partial company update. Nil fields are unchanged.
type CompanyPatch struct {
	Name        *string
	Industry    *string
	Location    *string
	Size        *float64
	FoundedYear *float64
	Website     *string
	Description *string
	Tags        *[]string
}

// Query selects one page of companies. Zero values mean "not specified".
//
// Search matches any of its words in name, description or tags.
// Name and Location match as case-insensitive substrings; Industry matches exactly.
// Tags and Tag are merged and every one of them must be present.
// Sort is a comma-separated list of fields, "-" prefixed for descending.
type Query struct {
	Search      string
	Name        string
	Industry    string
	Location    string
	Tags        []string
	Tag         string
	SizeMin     *float64
	SizeMax     *float64
	FoundedFrom *float64
	FoundedTo   *float64
	Sort        string
	Page        int
	Limit       int
}

// Page is one page of a query result.
type Page struct {
	Items []Company
	Total int
	Page  int
	Limit int
	Pages int
}

// --- Converters ---

func (q Query) toParams() params.Params {
	p := params.Params{
		Search:      optString(q.Search),
		Name:        optString(q.Name),
		Industry:    optString(q.Industry),
		Location:    optString(q.Location),
		Tag:         optString(q.Tag),
		SizeMin:     optFloat(q.SizeMin),
		SizeMax:     optFloat(q.SizeMax),
		FoundedFrom: optFloat(q.FoundedFrom),
		FoundedTo:   optFloat(q.FoundedTo),
		Sort:        optString(q.Sort),
		Page:        optInt(q.Page),
		Limit:       optInt(q.Limit),
	}
	if len(q.Tags) > 0 {
		p.Tags = append([]string(nil), q.Tags...)
	}
	return p
}

func (in CompanyInput) toFields() domcomp.Fields {
	return domcomp.Fields{
		Name:        in.Name,
		Industry:    in.Industry,
		Location:    in.Location,
		Size:        in.Size,
		FoundedYear: in.FoundedYear,
		Website:     in.Website,
		Description: in.Description,
		Tags:        in.Tags,
	}
}

func (p CompanyPatch) toDomain() domcomp.Patch {
	return domcomp.Patch{
		Name:        p.Name,
		Industry:    p.Industry,
		Location:    p.Location,
		Size:        p.Size,
		FoundedYear: p.FoundedYear,
		Website:     p.Website,
		Description: p.Description,
		Tags:        p.Tags,
	}
}

func companyFromDomain(c *domcomp.Company) Company {
	return Company{
		ID:          c.ID(),
		Name:        c.Name(),
		Industry:    c.Industry(),
		Location:    c.Location(),
		Size:        c.Size(),
		FoundedYear: c.FoundedYear(),
		Website:     c.Website(),
		Description: c.Description(),
		Tags:        c.Tags(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func pageFromDomain(r page.Result[domcomp.Company]) Page {
	items := make([]Company, 0, len(r.Items))
	for i := range r.Items {
		items = append(items, companyFromDomain(&r.Items[i]))
	}
	return Page{
		Items: items,
		Total: r.Total,
		Page:  r.Page,
		Limit: r.Limit,
		Pages: r.Pages(),
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optFloat(f *float64) *string {
	if f == nil {
		return nil
	}
	s := strconv.FormatFloat(*f, 'f', -1, 64)
	return &s
}

func optInt(n int) *string {
	if n == 0 {
		return nil
	}
	s := strconv.Itoa(n)
	return &s
}

package chi

import (
	"time"

	domcomp "github.com/kailas-cloud/companydex/internal/domain/company"
	"github.com/kailas-cloud/companydex/internal/domain/search/page"
)

// companyResponse is the wire form of a company.
type companyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Industry    string    `json:"industry"`
	Location    string    `json:"location"`
	Size        *float64  `json:"size,omitempty"`
	FoundedYear *float64  `json:"foundedYear,omitempty"`
	Website     string    `json:"website"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// companyRequest is the body of POST and PUT. Absent fields stay nil.
type companyRequest struct {
	Name        *string   `json:"name"`
	Industry    *string   `json:"industry"`
	Location    *string   `json:"location"`
	Size        *float64  `json:"size"`
	FoundedYear *float64  `json:"foundedYear"`
	Website     *string   `json:"website"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
}

type pageMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type listResponse struct {
	Success bool              `json:"success"`
	Data    []companyResponse `json:"data"`
	Meta    pageMeta          `json:"meta"`
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

func companyToResponse(c *domcomp.Company) companyResponse {
	tags := c.Tags()
	if tags == nil {
		tags = []string{}
	}
	return companyResponse{
		ID:          c.ID(),
		Name:        c.Name(),
		Industry:    c.Industry(),
		Location:    c.Location(),
		Size:        c.Size(),
		FoundedYear: c.FoundedYear(),
		Website:     c.Website(),
		Description: c.Description(),
		Tags:        tags,
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func pageToResponse(res page.Result[domcomp.Company]) listResponse {
	data := make([]companyResponse, len(res.Items))
	for i := range res.Items {
		data[i] = companyToResponse(&res.Items[i])
	}
	return listResponse{
		Success: true,
		Data:    data,
		Meta: pageMeta{
			Total: res.Total,
			Page:  res.Page,
			Limit: res.Limit,
			Pages: res.Pages(),
		},
	}
}

func (req *companyRequest) toFields() domcomp.Fields {
	var tags []string
	if req.Tags != nil {
		tags = *req.Tags
	}
	return domcomp.Fields{
		Name:        deref(req.Name),
		Industry:    deref(req.Industry),
		Location:    deref(req.Location),
		Size:        req.Size,
		FoundedYear: req.FoundedYear,
		Website:     deref(req.Website),
		Description: deref(req.Description),
		Tags:        tags,
	}
}

func (req *companyRequest) toPatch() domcomp.Patch {
	return domcomp.Patch{
		Name:        req.Name,
		Industry:    req.Industry,
		Location:    req.Location,
		Size:        req.Size,
		FoundedYear: req.FoundedYear,
		Website:     req.Website,
		Description: req.Description,
		Tags:        req.Tags,
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

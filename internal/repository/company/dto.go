package company

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	domcomp "github.com/kailas-cloud/companydex/internal/domain/company"
)

// companyDoc is the stored JSON shape. Timestamps are unix milliseconds
// so both backends can range and sort on them numerically.
type companyDoc struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Industry    string   `json:"industry,omitempty"`
	Location    string   `json:"location,omitempty"`
	Size        *float64 `json:"size,omitempty"`
	FoundedYear *float64 `json:"foundedYear,omitempty"`
	Website     string   `json:"website,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt"`
}

func buildDoc(c *domcomp.Company) companyDoc {
	tags := c.Tags()
	if tags == nil {
		tags = []string{}
	}
	return companyDoc{
		ID:          c.ID(),
		Name:        c.Name(),
		Industry:    c.Industry(),
		Location:    c.Location(),
		Size:        c.Size(),
		FoundedYear: c.FoundedYear(),
		Website:     c.Website(),
		Description: c.Description(),
		Tags:        tags,
		CreatedAt:   c.CreatedAt().UnixMilli(),
		UpdatedAt:   c.UpdatedAt().UnixMilli(),
	}
}

func (d *companyDoc) toDomain(fallbackID string) domcomp.Company {
	id := d.ID
	if id == "" {
		id = fallbackID
	}
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return domcomp.Reconstruct(id, domcomp.Fields{
		Name:        d.Name,
		Industry:    d.Industry,
		Location:    d.Location,
		Size:        d.Size,
		FoundedYear: d.FoundedYear,
		Website:     d.Website,
		Description: d.Description,
		Tags:        tags,
	}, time.UnixMilli(d.CreatedAt).UTC(), time.UnixMilli(d.UpdatedAt).UTC())
}

// decodeDoc accepts a bare JSON object or a JSONPath result array
// holding a single object (RedisJSON with an explicit $ path).
func decodeDoc(id string, raw []byte) (domcomp.Company, error) {
	raw = bytes.TrimSpace(raw)
	var doc companyDoc
	if len(raw) > 0 && raw[0] == '[' {
		var docs []companyDoc
		if err := json.Unmarshal(raw, &docs); err != nil {
			return domcomp.Company{}, fmt.Errorf("unmarshal company %s: %w", id, err)
		}
		if len(docs) == 0 {
			return domcomp.Company{}, fmt.Errorf("empty document for company %s", id)
		}
		doc = docs[0]
	} else if err := json.Unmarshal(raw, &doc); err != nil {
		return domcomp.Company{}, fmt.Errorf("unmarshal company %s: %w", id, err)
	}
	return doc.toDomain(id), nil
}

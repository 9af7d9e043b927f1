package company

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/companydex/internal/domain"
)

// Company is a directory record. Values are immutable once constructed.
type Company struct {
	id          string
	name        string
	industry    string
	location    string
	size        *float64
	foundedYear *float64
	website     string
	description string
	tags        []string
	createdAt   time.Time
	updatedAt   time.Time
}

// Fields is the writable part of a company, as supplied by a client.
type Fields struct {
	Name        string
	Industry    string
	Location    string
	Size        *float64
	FoundedYear *float64
	Website     string
	Description string
	Tags        []string
}

// New validates and creates a Company. Strings are trimmed; name is required.
func New(id string, f Fields, now time.Time) (Company, error) {
	if id == "" {
		return Company{}, fmt.Errorf("company id is required: %w", domain.ErrInvalidCompany)
	}
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return Company{}, fmt.Errorf("name is required: %w", domain.ErrInvalidCompany)
	}

	return Company{
		id:          id,
		name:        name,
		industry:    strings.TrimSpace(f.Industry),
		location:    strings.TrimSpace(f.Location),
		size:        cloneFloat(f.Size),
		foundedYear: cloneFloat(f.FoundedYear),
		website:     strings.TrimSpace(f.Website),
		description: strings.TrimSpace(f.Description),
		tags:        cloneTags(f.Tags),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct creates a Company without validation (storage hydration).
func Reconstruct(id string, f Fields, createdAt, updatedAt time.Time) Company {
	return Company{
		id:          id,
		name:        f.Name,
		industry:    f.Industry,
		location:    f.Location,
		size:        f.Size,
		foundedYear: f.FoundedYear,
		website:     f.Website,
		description: f.Description,
		tags:        f.Tags,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the company identifier.
func (c *Company) ID() string { return c.id }

// Name returns the company name.
func (c *Company) Name() string { return c.name }

// Industry returns the industry label.
func (c *Company) Industry() string { return c.industry }

// Location returns the free-form location.
func (c *Company) Location() string { return c.location }

// Size returns the head count, nil when unknown.
func (c *Company) Size() *float64 { return c.size }

// FoundedYear returns the founding year, nil when unknown.
func (c *Company) FoundedYear() *float64 { return c.foundedYear }

// Website returns the website URL.
func (c *Company) Website() string { return c.website }

// Description returns the description text.
func (c *Company) Description() string { return c.description }

// Tags returns the tag collection.
func (c *Company) Tags() []string { return c.tags }

// CreatedAt returns the creation timestamp.
func (c *Company) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the last modification timestamp.
func (c *Company) UpdatedAt() time.Time { return c.updatedAt }

// Fields returns a copy of the writable fields.
func (c *Company) Fields() Fields {
	return Fields{
		Name:        c.name,
		Industry:    c.industry,
		Location:    c.location,
		Size:        cloneFloat(c.size),
		FoundedYear: cloneFloat(c.foundedYear),
		Website:     c.website,
		Description: c.description,
		Tags:        cloneTags(c.tags),
	}
}

// HasTags reports whether the company carries every tag in required.
func (c *Company) HasTags(required []string) bool {
	have := make(map[string]struct{}, len(c.tags))
	for _, t := range c.tags {
		have[t] = struct{}{}
	}
	for _, t := range required {
		if _, ok := have[t]; !ok {
			return false
		}
	}
	return true
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// cloneTags trims each tag and drops empty ones.
func cloneTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

package company

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/companydex/internal/domain"
)

// Patch is a partial company update. Nil fields are unchanged.
type Patch struct {
	Name        *string
	Industry    *string
	Location    *string
	Size        *float64
	FoundedYear *float64
	Website     *string
	Description *string
	Tags        *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Industry == nil && p.Location == nil && p.Size == nil &&
		p.FoundedYear == nil && p.Website == nil && p.Description == nil && p.Tags == nil
}

// Apply returns a copy of c with the patch merged in and updatedAt set to now.
// An empty patch returns c unchanged.
func (p Patch) Apply(c Company, now time.Time) (Company, error) {
	if p.IsEmpty() {
		return c, nil
	}

	f := c.Fields()
	if p.Name != nil {
		f.Name = strings.TrimSpace(*p.Name)
		if f.Name == "" {
			return Company{}, fmt.Errorf("name must not be empty: %w", domain.ErrInvalidCompany)
		}
	}
	if p.Industry != nil {
		f.Industry = strings.TrimSpace(*p.Industry)
	}
	if p.Location != nil {
		f.Location = strings.TrimSpace(*p.Location)
	}
	if p.Size != nil {
		f.Size = cloneFloat(p.Size)
	}
	if p.FoundedYear != nil {
		f.FoundedYear = cloneFloat(p.FoundedYear)
	}
	if p.Website != nil {
		f.Website = strings.TrimSpace(*p.Website)
	}
	if p.Description != nil {
		f.Description = strings.TrimSpace(*p.Description)
	}
	if p.Tags != nil {
		f.Tags = cloneTags(*p.Tags)
	}

	return Reconstruct(c.id, f, c.createdAt, now), nil
}

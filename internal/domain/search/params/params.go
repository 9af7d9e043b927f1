// Package params holds the listing query parameters with explicit presence.
package params

import "strings"

// Params is the set of listing query parameters. A nil field was not supplied.
// Tags holds every occurrence of the tags parameter; each one is a comma-joined list.
type Params struct {
	Search      *string
	Name        *string
	Industry    *string
	Location    *string
	Tag         *string
	Tags        []string
	SizeMin     *string
	SizeMax     *string
	FoundedFrom *string
	FoundedTo   *string
	Sort        *string
	Page        *string
	Limit       *string
}

// Value returns the trimmed value and whether it was specified.
// Absent and blank values are both unspecified.
func Value(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	v := strings.TrimSpace(*p)
	return v, v != ""
}

// Ptr returns a pointer to s. Handy for building Params literals.
func Ptr(s string) *string { return &s }

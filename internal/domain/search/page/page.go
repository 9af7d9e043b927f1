// Package page normalizes pagination input and assembles paged results.
package page

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Pagination bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit within int for every valid limit.
	MaxPage = math.MaxInt / MaxLimit
)

// Request is a normalized page request: Page >= 1 and 1 <= Limit <= MaxLimit.
type Request struct {
	Page  int
	Limit int
}

// Normalize parses raw page and limit values. Absent or non-integer input
// takes the default; out-of-range input is clamped. It never fails.
func Normalize(pageRaw, limitRaw *string) Request {
	p := parseInt(pageRaw, DefaultPage)
	switch {
	case p < 1:
		p = 1
	case p > MaxPage:
		p = MaxPage
	}
	l := parseInt(limitRaw, DefaultLimit)
	switch {
	case l < 1:
		l = 1
	case l > MaxLimit:
		l = MaxLimit
	}
	return Request{Page: p, Limit: l}
}

// Skip returns the number of records preceding the page.
func (r Request) Skip() int {
	return (r.Page - 1) * r.Limit
}

func parseInt(raw *string, def int) int {
	if raw == nil {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(*raw))
	if errors.Is(err, strconv.ErrRange) {
		// Atoi saturates to MaxInt/MinInt; the caller clamps.
		return v
	}
	if err != nil {
		return def
	}
	return v
}

// Result is one page of an ordered result set.
type Result[T any] struct {
	Items []T
	Total int
	Page  int
	Limit int
}

// NewResult assembles a page. A nil items slice becomes empty.
func NewResult[T any](items []T, total int, req Request) Result[T] {
	if items == nil {
		items = []T{}
	}
	return Result[T]{Items: items, Total: total, Page: req.Page, Limit: req.Limit}
}

// Pages returns ceil(Total/Limit); zero when there are no records.
func (r Result[T]) Pages() int {
	if r.Total <= 0 || r.Limit <= 0 {
		return 0
	}
	return (r.Total + r.Limit - 1) / r.Limit
}

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrCompanyNotFound signals a company id that does not resolve to a record.
	ErrCompanyNotFound = fmt.Errorf("company %w", ErrNotFound)
	// ErrInvalidCompany signals a write payload that fails field typing.
	ErrInvalidCompany = errors.New("invalid company")
	// ErrStoreUnavailable signals a connectivity or timeout failure talking to the document store.
	ErrStoreUnavailable = errors.New("document store unavailable")
	// ErrStoreQuery signals that the document store rejected the constructed query.
	ErrStoreQuery = errors.New("document store rejected query")
	// ErrTextSearchNotSupported signals that the backend lacks a full-text primitive.
	ErrTextSearchNotSupported = errors.New("full-text search not supported by backend")
)

// StoreError keeps the failing store operation next to the classified sentinel.
type StoreError struct {
	Op   string
	Kind error
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind.Error(), e.Op, e.Err)
}

// Unwrap exposes both the sentinel kind and the underlying cause to errors.Is.
func (e *StoreError) Unwrap() []error { return []error{e.Kind, e.Err} }

// NewStoreError creates a classified store error. kind should be ErrStoreUnavailable or ErrStoreQuery.
func NewStoreError(op string, kind, err error) error {
	return &StoreError{Op: op, Kind: kind, Err: err}
}

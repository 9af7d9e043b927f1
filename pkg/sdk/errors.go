package companydex

import "github.com/kailas-cloud/companydex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound               = domain.ErrNotFound
	ErrCompanyNotFound        = domain.ErrCompanyNotFound
	ErrInvalidCompany         = domain.ErrInvalidCompany
	ErrStoreUnavailable       = domain.ErrStoreUnavailable
	ErrStoreQuery             = domain.ErrStoreQuery
	ErrTextSearchNotSupported = domain.ErrTextSearchNotSupported
)

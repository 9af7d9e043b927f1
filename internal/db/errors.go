package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound   = errors.New("db: key not found")
	ErrIndexNotFound = errors.New("db: index not found")
	ErrIndexExists   = errors.New("db: index already exists")

	// ErrUnavailable marks connectivity failures: refused connections, timeouts, 5xx.
	ErrUnavailable = errors.New("db: unavailable")
	// ErrRejected marks requests the server refused to execute (bad query, unknown sort field).
	ErrRejected = errors.New("db: request rejected")
)

// Op constants map to Redis command names for error context.
const (
	OpPing        = "PING"
	OpCreateIndex = "FT.CREATE"
	OpDropIndex   = "FT.DROPINDEX"
	OpIndexInfo   = "FT.INFO"
	OpSearch      = "FT.SEARCH"
	OpAggregate   = "FT.AGGREGATE"
	OpJSONSet     = "JSON.SET"
	OpJSONGet     = "JSON.GET"
	OpDel         = "DEL"
	OpExists      = "EXISTS"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

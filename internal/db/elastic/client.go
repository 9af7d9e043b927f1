// Package elastic implements db.Store on Elasticsearch 8 via go-elasticsearch.
package elastic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/companydex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// DefaultIndexPrefix namespaces every index the store creates.
const DefaultIndexPrefix = "companydex-"

// DefaultMaxResultWindow is the index.max_result_window set on created indexes.
// Elasticsearch rejects from+size beyond it, so Find caps pages at the window.
const DefaultMaxResultWindow = 1_000_000

// Operation names used in db.Error.
const (
	opPing          = "ping"
	opIndicesCreate = "indices.create"
	opIndicesDelete = "indices.delete"
	opIndicesExists = "indices.exists"
	opIndex         = "index"
	opGet           = "get"
	opDelete        = "delete"
	opExists        = "exists"
	opSearch        = "search"
	opCount         = "count"
)

// Config holds connection parameters for an Elasticsearch store.
type Config struct {
	Addresses   []string
	Username    string
	Password    string
	IndexPrefix string
	// MaxResultWindow bounds from+size of a search. Zero means DefaultMaxResultWindow.
	MaxResultWindow int
	// Transport overrides the HTTP transport (tests, custom TLS).
	Transport http.RoundTripper
}

// Store implements db.Store on Elasticsearch. Each collection is one index.
type Store struct {
	client *elasticsearch.Client
	prefix string
	window int
}

// NewStore creates an Elasticsearch store.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("addresses is required")
	}

	esCfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
		Transport: cfg.Transport,
	}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	prefix := cfg.IndexPrefix
	if prefix == "" {
		prefix = DefaultIndexPrefix
	}
	window := cfg.MaxResultWindow
	if window <= 0 {
		window = DefaultMaxResultWindow
	}
	return &Store{client: client, prefix: strings.ToLower(prefix), window: window}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return unavailable(opPing, err)
	}
	defer closeBody(res)
	if res.IsError() {
		return responseError(opPing, res)
	}
	return nil
}

// Close is a no-op: the HTTP transport holds no dedicated connections.
func (s *Store) Close() {}

// WaitForReady polls Ping until the cluster responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

func (s *Store) indexName(collection string) string {
	return s.prefix + strings.ToLower(collection)
}

// --- Error classification ---

// errorBody is the error envelope Elasticsearch returns on 4xx/5xx.
type errorBody struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
}

func unavailable(op string, err error) error {
	return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrUnavailable, err)}
}

// responseError classifies an error response: 5xx is unavailability,
// 4xx is a rejection. A missing index additionally matches db.ErrIndexNotFound.
func responseError(op string, res *esapi.Response) error {
	reason, typ := readReason(res)
	switch {
	case res.StatusCode >= http.StatusInternalServerError:
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %s", db.ErrUnavailable, reason)}
	case typ == "index_not_found_exception":
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w: %s", db.ErrRejected, db.ErrIndexNotFound, reason)}
	default:
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %s", db.ErrRejected, reason)}
	}
}

// readReason extracts error.reason and error.type, falling back to the status line.
func readReason(res *esapi.Response) (reason, typ string) {
	if res.Body == nil {
		return res.Status(), ""
	}
	var body errorBody
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil || body.Error.Reason == "" {
		return res.Status(), body.Error.Type
	}
	return body.Error.Type + ": " + body.Error.Reason, body.Error.Type
}

func closeBody(res *esapi.Response) {
	if res != nil && res.Body != nil {
		_, _ = io.Copy(io.Discard, res.Body)
		_ = res.Body.Close()
	}
}

package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/companydex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// DefaultKeyPrefix namespaces every key and index the store creates.
const DefaultKeyPrefix = "companydex:"

// Config holds connection parameters for a Redis store.
type Config struct {
	Addrs     []string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
}

// Store implements db.Store via rueidis for Redis Stack (RediSearch + RedisJSON).
type Store struct {
	client rueidis.Client
	prefix string
}

// NewStore creates a Redis store via rueidis.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
		AlwaysRESP2:  true, // FT.SEARCH / FT.AGGREGATE parsing expects RESP2 arrays
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{client: client, prefix: prefix}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	cmd := s.b().Ping().Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return wrapErr(db.OpPing, err)
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
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

func (s *Store) do(ctx context.Context, cmd rueidis.Completed) rueidis.RedisResult {
	return s.client.Do(ctx, cmd)
}

func (s *Store) b() rueidis.Builder {
	return s.client.B()
}

// keyPrefix is the prefix shared by all documents of a collection.
func (s *Store) keyPrefix(collection string) string {
	return s.prefix + collection + ":"
}

func (s *Store) docKey(collection, id string) string {
	return s.keyPrefix(collection) + id
}

func (s *Store) indexName(collection string) string {
	return s.prefix + collection + ":idx"
}

// wrapErr attaches the command name and classifies err: a server reply
// is a rejection, anything else (dial, timeout, closed client) is unavailability.
func wrapErr(op string, err error) error {
	kind := db.ErrUnavailable
	if _, ok := rueidis.IsRedisErr(err); ok {
		kind = db.ErrRejected
	}
	return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", kind, err)}
}

// isRedisErr checks if err is a Redis server error containing substr (case-insensitive).
func isRedisErr(err error, substr string) bool {
	re, ok := rueidis.IsRedisErr(err)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(re.Error()), strings.ToLower(substr))
}

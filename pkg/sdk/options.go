package companydex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Store drivers.
const (
	driverRedis         = "redis"
	driverElasticsearch = "elasticsearch"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string // "redis" or "elasticsearch"
	addrs     []string
	username  string
	password  string
	keyPrefix string

	readinessTimeout time.Duration
	maxResultWindow  int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis Stack instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithElasticsearch configures the client to connect to an Elasticsearch cluster.
func WithElasticsearch(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverElasticsearch
		c.addrs = append([]string(nil), addrs...)
	})
}

// WithCredentials sets the username and password for either backend.
func WithCredentials(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithKeyPrefix namespaces keys and indexes.
// Defaults to "companydex:" for Redis and "companydex-" for Elasticsearch.
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithMaxResultWindow sets index.max_result_window on Elasticsearch indexes.
// Pages starting past the window come back empty. Default: 1,000,000.
func WithMaxResultWindow(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxResultWindow = n
	})
}

// WithReadinessTimeout bounds the initial wait for the store. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

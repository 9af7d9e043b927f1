package companydex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/companydex/internal/db"
	dbElastic "github.com/kailas-cloud/companydex/internal/db/elastic"
	dbRedis "github.com/kailas-cloud/companydex/internal/db/redis"
	companyrepo "github.com/kailas-cloud/companydex/internal/repository/company"
	companyuc "github.com/kailas-cloud/companydex/internal/usecase/company"
	healthuc "github.com/kailas-cloud/companydex/internal/usecase/health"
)

const defaultReadinessTimeout = 10 * time.Second

// Внутренний интерфейс для подмены в тестах.
type indexUseCase interface {
	EnsureIndex(ctx context.Context) error
	IndexExists(ctx context.Context) (bool, error)
}

// Client is the companydex SDK entry point.
type Client struct {
	store      db.Store
	companySvc companyUseCase
	indexSvc   indexUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a companydex Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{readinessTimeout: defaultReadinessTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("companydex: database address required (use WithRedis or WithElasticsearch)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("companydex: database not ready: %w", err)
	}

	return wireClient(store, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.addrs,
			Username:  cfg.username,
			Password:  cfg.password,
			KeyPrefix: cfg.keyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("companydex: create redis store: %w", err)
		}
		return s, nil
	case driverElasticsearch:
		s, err := dbElastic.NewStore(dbElastic.Config{
			Addresses:       cfg.addrs,
			Username:        cfg.username,
			Password:        cfg.password,
			IndexPrefix:     cfg.keyPrefix,
			MaxResultWindow: cfg.maxResultWindow,
		})
		if err != nil {
			return nil, fmt.Errorf("companydex: create elasticsearch store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("companydex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, obs *observer) *Client {
	repo := companyrepo.New(store)

	return &Client{
		store:      store,
		companySvc: companyuc.New(repo),
		indexSvc:   repo,
		healthSvc:  healthuc.New(store, repo),
		obs:        obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// EnsureIndex creates the company search index unless it already exists.
// Call it once before the first write against a fresh store.
func (c *Client) EnsureIndex(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("index.ensure", start, err) }()

	if err = c.indexSvc.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}
	return nil
}

// IndexExists reports whether the company search index exists.
func (c *Client) IndexExists(ctx context.Context) (_ bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe("index.exists", start, err) }()

	ok, err := c.indexSvc.IndexExists(ctx)
	if err != nil {
		return false, fmt.Errorf("index exists: %w", err)
	}
	return ok, nil
}

// Companies returns the company service.
func (c *Client) Companies() *CompanyService {
	return &CompanyService{svc: c.companySvc, obs: c.obs}
}

// Package config loads the per-environment YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverRedis         = "redis"
	DriverElasticsearch = "elasticsearch"
)

// Config holds the companydex API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CORSConfig holds cross-origin settings. "*" allows any origin.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxAgeSec      int      `yaml:"max_age_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds document store connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, elasticsearch (default: redis)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`         // redis only
	KeyPrefix        string   `yaml:"key_prefix"` // redis key prefix or elasticsearch index prefix
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	QueryTimeoutSec  int      `yaml:"query_timeout_sec"`
	MaxResultWindow  int      `yaml:"max_result_window"` // elasticsearch only
}

// RateLimitConfig holds per-client request budgets. RequestsPerMinute 0 disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	Burst             int `yaml:"burst"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file, when present, is loaded first so ${VAR} references can use it.
func Load(env string) (Config, error) {
	if err := loadDotEnv(dotEnvCandidates()...); err != nil {
		return Config{}, err
	}
	return LoadFile(findConfigPath(env))
}

// LoadFile reads, expands, defaults and validates one YAML file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverRedis
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.QueryTimeoutSec <= 0 {
		c.Database.QueryTimeoutSec = 5
	}
	if c.Database.KeyPrefix == "" {
		switch c.Database.Driver {
		case DriverElasticsearch:
			c.Database.KeyPrefix = "companydex-"
		default:
			c.Database.KeyPrefix = "companydex:"
		}
	}
	if c.Database.Driver == DriverElasticsearch && c.Database.MaxResultWindow <= 0 {
		c.Database.MaxResultWindow = 1_000_000
	}
	if c.RateLimit.RequestsPerMinute > 0 && c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = max(c.RateLimit.RequestsPerMinute/10, 1)
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if c.CORS.MaxAgeSec <= 0 {
		c.CORS.MaxAgeSec = 300
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverRedis, DriverElasticsearch:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q",
			DriverRedis, DriverElasticsearch, c.Database.Driver)
	}
	if len(c.Database.Addrs) == 0 {
		return errors.New("database.addrs is required")
	}
	for i, a := range c.Database.Addrs {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("database.addrs[%d] is empty", i)
		}
	}
	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate_limit values must not be negative")
	}
	for i, o := range c.CORS.AllowedOrigins {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("cors.allowed_origins[%d] is empty", i)
		}
	}
	return nil
}

// dotEnvCandidates lists .env in the working directory, then in the project root.
func dotEnvCandidates() []string {
	candidates := []string{".env"}
	if root := projectRoot(); root != "" {
		candidates = append(candidates, filepath.Join(root, ".env"))
	}
	return candidates
}

// loadDotEnv loads the first existing file of paths.
// Variables already set in the environment win. A missing file is not an error.
func loadDotEnv(paths ...string) error {
	for _, path := range paths {
		err := godotenv.Load(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		return nil
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	if root := projectRoot(); root != "" {
		if path := filepath.Join(root, "config", filename); fileExists(path) {
			return path
		}
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

// projectRoot is two levels above this source file (internal/config).
func projectRoot() string {
	_, b, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return filepath.Dir(filepath.Dir(filepath.Dir(b)))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

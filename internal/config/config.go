package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/peerlink/matchmaker/internal/localstate"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// EnvPrefix is the prefix of every environment variable read by New.
const EnvPrefix = "MATCH_BACKEND"

// Config holds the configuration for the match service.
// Environment variables are parsed from the MATCH_BACKEND_ prefix.
type Config struct {
	// Build target selects high-level environment: local, cloud-dev, cloud
	BuildTarget string `envconfig:"BUILD_TARGET" default:"cloud-dev"`

	// Derived when "auto": local -> sqlite, cloud targets -> postgres
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Store Configuration
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:""`

	// Embedding Configuration
	EmbedProvider       string `envconfig:"EMBED_PROVIDER" default:"ollama"`
	EmbedModel          string `envconfig:"EMBED_MODEL" default:"nomic-embed-text"`
	OllamaURL           string `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	OpenAIAPIKey        string `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIBaseURL       string `envconfig:"OPENAI_BASE_URL" default:""`
	EmbedTimeoutSeconds int    `envconfig:"EMBED_TIMEOUT_SECONDS" default:"10"`
	EmbedMaxAttempts    int    `envconfig:"EMBED_MAX_ATTEMPTS" default:"1"`

	// Circuit breaker around the provider; 0 failures disables it
	EmbedBreakerFailures    int `envconfig:"EMBED_BREAKER_FAILURES" default:"5"`
	EmbedBreakerOpenSeconds int `envconfig:"EMBED_BREAKER_OPEN_SECONDS" default:"30"`

	// Matching
	MatchTopK int `envconfig:"MATCH_TOP_K" default:"3"`

	// Embedding cache: memory | redis | none
	CacheDriver     string `envconfig:"CACHE_DRIVER" default:"memory"`
	CacheSize       int    `envconfig:"CACHE_SIZE" default:"4096"`
	CacheTTLSeconds int    `envconfig:"CACHE_TTL_SECONDS" default:"86400"`
	RedisAddr       string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword   string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB         int    `envconfig:"REDIS_DB" default:"0"`

	// Mentor directory
	MentorsCSVPath             string `envconfig:"MENTORS_CSV_PATH" default:"data/mentors.csv"`
	DirectoryPageSize          int    `envconfig:"DIRECTORY_PAGE_SIZE" default:"12"`
	DirectorySessionTTLMinutes int    `envconfig:"DIRECTORY_SESSION_TTL_MINUTES" default:"60"`
	DirectoryMaxSessions       int    `envconfig:"DIRECTORY_MAX_SESSIONS" default:"10000"`

	// Health / bootstrap
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
	BootstrapTimeoutSeconds   int `envconfig:"BOOTSTRAP_TIMEOUT_SECONDS" default:"5"`
}

// ResolveDefaults validates BuildTarget and derives DBDriver when set to "auto" or empty.
func (c *Config) ResolveDefaults() error {
	var defaultDB string

	switch c.BuildTarget {
	case "cloud-dev", "cloud":
		defaultDB = "postgres"
	case "local":
		defaultDB = "sqlite"
	default:
		return fmt.Errorf("unsupported BUILD_TARGET: %s", c.BuildTarget)
	}

	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = defaultDB
	}
	allowedDB := map[string]bool{"postgres": true, "sqlite": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == "sqlite" && c.SQLitePath == "" {
		path, err := localstate.DBPath()
		if err != nil {
			return err
		}
		c.SQLitePath = path
	}

	c.EmbedProvider = strings.ToLower(c.EmbedProvider)
	switch c.EmbedProvider {
	case "ollama", "openai":
	default:
		return fmt.Errorf("unsupported EMBED_PROVIDER: %s", c.EmbedProvider)
	}

	c.CacheDriver = strings.ToLower(c.CacheDriver)
	switch c.CacheDriver {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("unsupported CACHE_DRIVER: %s", c.CacheDriver)
	}

	if c.MatchTopK <= 0 {
		return fmt.Errorf("MATCH_TOP_K must be positive, got %d", c.MatchTopK)
	}
	if c.EmbedMaxAttempts < 1 {
		c.EmbedMaxAttempts = 1
	}
	if c.DirectoryPageSize <= 0 {
		c.DirectoryPageSize = 12
	}
	return nil
}

// New creates a new Config by parsing environment variables
// prefixed with MATCH_BACKEND_, e.g. MATCH_BACKEND_HTTP_PORT.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("embed_provider", cfg.EmbedProvider).
		Str("embed_model", cfg.EmbedModel).
		Int("match_top_k", cfg.MatchTopK).
		Str("cache_driver", cfg.CacheDriver).
		Str("mentors_csv", cfg.MentorsCSVPath).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Bool("openai_key_present", cfg.OpenAIAPIKey != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		BuildTarget:                "local",
		DBDriver:                   "sqlite",
		Environment:                EnvTesting,
		LogLevel:                   "debug",
		HTTPPort:                   8080,
		EmbedProvider:              "ollama",
		EmbedModel:                 "nomic-embed-text",
		OllamaURL:                  "http://localhost:11434",
		EmbedTimeoutSeconds:        2,
		EmbedMaxAttempts:           1,
		EmbedBreakerFailures:       0,
		EmbedBreakerOpenSeconds:    1,
		MatchTopK:                  3,
		CacheDriver:                "memory",
		CacheSize:                  128,
		CacheTTLSeconds:            60,
		DirectoryPageSize:          12,
		DirectorySessionTTLMinutes: 5,
		DirectoryMaxSessions:       100,
		HealthIntervalSeconds:      1,
		HealthProbeTimeoutSeconds:  1,
		BootstrapTimeoutSeconds:    1,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

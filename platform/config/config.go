// Package config provides application configuration loaded from the
// environment. Configuration-level defects (missing required values, invalid
// scoring weights) are reported at load time so a misconfigured deployment
// never serves requests.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DatabaseConfig exposes database settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig exposes HTTP server settings.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// AnthropicConfig exposes LLM collaborator settings.
type AnthropicConfig interface {
	GetAnthropicAPIKey() string
	GetAnthropicModel() string
	GetLLMTimeout() time.Duration
}

// ClayConfig exposes Clay CRM settings.
type ClayConfig interface {
	GetClayAPIKey() string
	GetClayBaseURL() string
	IsClayEnabled() bool
}

// SchedulerConfig exposes asynq/redis settings.
type SchedulerConfig interface {
	GetRedisURL() string
	GetAsynqQueueName() string
	GetWorkerConcurrency() int
}

// EmailConfig exposes outbound SMTP settings.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// MinIOConfig exposes object storage settings for PDF collateral.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinioBucketCollateral() string
	IsMinIOEnabled() bool
}

// Config holds all application settings.
type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL string

	AnthropicAPIKey string
	AnthropicModel  string
	LLMTimeout      time.Duration
	ResearchTimeout time.Duration

	ClayAPIKey  string
	ClayBaseURL string

	RedisURL          string
	AsynqQueue        string
	WorkerConcurrency int

	EmailEnabled     bool
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string

	MinIOEndpoint         string
	MinIOAccessKey        string
	MinIOSecretKey        string
	MinIOUseSSL           bool
	MinioBucketCollateral string

	CORSAllowAll bool
	CORSOrigins  []string

	BatchConcurrency   int
	RateLimitPerMinute int

	BenchmarksPath string
	Scoring        ScoringConfig
}

// Load reads configuration from the environment (and .env if present) and
// validates it. An error here is a deployment defect, not a runtime condition.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	scoring, err := loadScoring()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		LLMTimeout:      mustDuration(getEnv("LLM_TIMEOUT", "60s")),
		ResearchTimeout: mustDuration(getEnv("RESEARCH_TIMEOUT", "10s")),

		ClayAPIKey:  getEnv("CLAY_API_KEY", ""),
		ClayBaseURL: getEnv("CLAY_BASE_URL", "https://api.clay.com/v1"),

		RedisURL:          getEnv("REDIS_URL", ""),
		AsynqQueue:        getEnv("ASYNQ_QUEUE", "outbound"),
		WorkerConcurrency: mustInt(getEnv("WORKER_CONCURRENCY", "4"), 4),

		EmailEnabled:     strings.EqualFold(getEnv("EMAIL_ENABLED", "false"), "true"),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         mustInt(getEnv("SMTP_PORT", "587"), 587),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Tune Outbound"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),

		MinIOEndpoint:         getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:        getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:        getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:           strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinioBucketCollateral: getEnv("MINIO_BUCKET_COLLATERAL", "tune-collateral"),

		CORSAllowAll: corsAllowAll,
		CORSOrigins:  corsOrigins,

		BatchConcurrency:   mustInt(getEnv("BATCH_CONCURRENCY", "3"), 3),
		RateLimitPerMinute: mustInt(getEnv("RATE_LIMIT_PER_MINUTE", "60"), 60),

		BenchmarksPath: getEnv("BENCHMARKS_PATH", "benchmarks.yaml"),
		Scoring:        scoring,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	if cfg.EmailEnabled && (cfg.SMTPHost == "" || cfg.EmailFromAddress == "") {
		return nil, fmt.Errorf("SMTP_HOST and EMAIL_FROM_ADDRESS are required when EMAIL_ENABLED is true")
	}
	if cfg.BatchConcurrency < 1 {
		return nil, fmt.Errorf("BATCH_CONCURRENCY must be at least 1")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func mustFloat(value string, fallback float64) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return f
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}

// Interface implementations.

func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

func (c *Config) GetAnthropicAPIKey() string   { return c.AnthropicAPIKey }
func (c *Config) GetAnthropicModel() string    { return c.AnthropicModel }
func (c *Config) GetLLMTimeout() time.Duration { return c.LLMTimeout }

func (c *Config) GetClayAPIKey() string  { return c.ClayAPIKey }
func (c *Config) GetClayBaseURL() string { return c.ClayBaseURL }
func (c *Config) IsClayEnabled() bool    { return c.ClayAPIKey != "" }

func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueue }
func (c *Config) GetWorkerConcurrency() int { return c.WorkerConcurrency }

func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

func (c *Config) GetMinIOEndpoint() string         { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string        { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string        { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool             { return c.MinIOUseSSL }
func (c *Config) GetMinioBucketCollateral() string { return c.MinioBucketCollateral }
func (c *Config) IsMinIOEnabled() bool             { return c.MinIOEndpoint != "" }

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Observation frame
	Site SiteConfig

	// Engine
	Engine EngineConfig

	// Database (journal store)
	Database DatabaseConfig

	// Redis (report cache)
	Redis RedisConfig

	// Journal
	Journal JournalConfig

	// Kafka (journal fan-out)
	Kafka KafkaConfig

	// API
	API APIConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// SiteConfig describes where and in which civil timezone the sky is observed.
// The defaults are the historical Chang'an observatory.
type SiteConfig struct {
	Name      string
	Latitude  float64
	Longitude float64
	Timezone  string
}

// EngineConfig selects swappable engine parts
type EngineConfig struct {
	EclipseForecaster string // node, disabled
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	URL      string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// JournalConfig controls the periodic report journal
type JournalConfig struct {
	Enabled  bool
	Schedule string // cron expression with seconds
	Workers  int    // backfill concurrency
}

// KafkaConfig holds the optional journal publisher settings
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// APIConfig holds HTTP surface tuning
type APIConfig struct {
	RateLimit      float64 // requests per second, 0 disables
	RateBurst      int
	CacheTTL       time.Duration
	StreamInterval time.Duration
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Site: SiteConfig{
			Name:      getEnv("SITE_NAME", "长安"),
			Latitude:  getEnvAsFloat("SITE_LATITUDE", 34.2667),
			Longitude: getEnvAsFloat("SITE_LONGITUDE", 108.9333),
			Timezone:  getEnv("DAYAN_TIMEZONE", "Asia/Shanghai"),
		},

		Engine: EngineConfig{
			EclipseForecaster: strings.ToLower(getEnv("ECLIPSE_FORECASTER", "node")),
		},

		// Database
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			Name:            getEnv("DB_NAME", "dayan"),
			User:            getEnv("DB_USER", "dayan"),
			Password:        getEnv("DB_PASSWORD", ""),
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Journal: JournalConfig{
			Enabled:  getEnvAsBool("JOURNAL_ENABLED", false),
			Schedule: getEnv("JOURNAL_SCHEDULE", "0 0 * * * *"),
			Workers:  getEnvAsInt("JOURNAL_WORKERS", 4),
		},

		Kafka: KafkaConfig{
			Brokers: getEnvAsList("KAFKA_BROKERS"),
			Topic:   getEnv("KAFKA_TOPIC", "dayan.journal"),
		},

		API: APIConfig{
			RateLimit:      getEnvAsFloat("API_RATE_LIMIT", 20),
			RateBurst:      getEnvAsInt("API_RATE_BURST", 40),
			CacheTTL:       getEnvAsDuration("REPORT_CACHE_TTL", "1m"),
			StreamInterval: getEnvAsDuration("STREAM_INTERVAL", "5s"),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Monitoring
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Site.Latitude < -90 || c.Site.Latitude > 90 {
		return fmt.Errorf("SITE_LATITUDE must be within [-90, 90], got %v", c.Site.Latitude)
	}
	if c.Site.Longitude < -180 || c.Site.Longitude > 180 {
		return fmt.Errorf("SITE_LONGITUDE must be within [-180, 180], got %v", c.Site.Longitude)
	}

	if c.Engine.EclipseForecaster != "node" && c.Engine.EclipseForecaster != "disabled" {
		return fmt.Errorf("ECLIPSE_FORECASTER must be one of: node, disabled")
	}

	// The journal is the only consumer of the database
	if c.Journal.Enabled && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when JOURNAL_ENABLED=true")
	}
	if c.Journal.Schedule == "" {
		return fmt.Errorf("JOURNAL_SCHEDULE must not be empty")
	}

	return nil
}

// KafkaEnabled reports whether journal entries should be published
func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0 && c.Kafka.Topic != ""
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsList splits a comma separated value, dropping blanks
func getEnvAsList(key string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

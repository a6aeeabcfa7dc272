package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Environment string
	Port        string
	LogLevel    string

	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Matching MatchingConfig

	CatalogCacheTTL   time.Duration
	WorkerConcurrency int
	CORSAllowOrigins  string
	OTLPEndpoint      string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders a lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string
	Password string
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	Issuer     string
	BcryptCost int
}

type StorageConfig struct {
	Driver    string // local | s3
	UploadDir string
	AWSRegion string
	AWSBucket string
}

type MatchingConfig struct {
	Recommender  string // heuristic | semantic
	ScanLimit    int
	OpenAIAPIKey string
}

// IsDevelopment reports whether internal error details may be returned to clients
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads configuration from a .env file, if present, and the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	tokenTTL, err := time.ParseDuration(getEnv("JWT_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("CATALOG_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL: %w", err)
	}

	scanLimit, err := strconv.Atoi(getEnv("RECOMMENDATION_SCAN_LIMIT", "1000"))
	if err != nil || scanLimit < 0 {
		return nil, fmt.Errorf("invalid RECOMMENDATION_SCAN_LIMIT: %q", os.Getenv("RECOMMENDATION_SCAN_LIMIT"))
	}

	workers, err := strconv.Atoi(getEnv("WORKER_CONCURRENCY", "2"))
	if err != nil || workers < 1 {
		return nil, fmt.Errorf("invalid WORKER_CONCURRENCY: %q", os.Getenv("WORKER_CONCURRENCY"))
	}

	cfg := &Config{
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "5000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASS"),
			Name:     getEnv("DB_NAME", "nexthire"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASS"),
		},
		Auth: AuthConfig{
			JWTSecret:  os.Getenv("JWT_SECRET"),
			TokenTTL:   tokenTTL,
			Issuer:     getEnv("JWT_ISSUER", "nexthire"),
			BcryptCost: 10,
		},
		Storage: StorageConfig{
			Driver:    strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
			UploadDir: getEnv("UPLOAD_DIR", "uploads"),
			AWSRegion: os.Getenv("AWS_REGION"),
			AWSBucket: os.Getenv("AWS_BUCKET"),
		},
		Matching: MatchingConfig{
			Recommender:  strings.ToLower(getEnv("RECOMMENDER", "heuristic")),
			ScanLimit:    scanLimit,
			OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		},
		CatalogCacheTTL:   cacheTTL,
		WorkerConcurrency: workers,
		CORSAllowOrigins:  getEnv("CORS_ALLOW_ORIGINS", "*"),
		OTLPEndpoint:      os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.AWSBucket == "" {
			return fmt.Errorf("AWS_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER: %q", c.Storage.Driver)
	}

	switch c.Matching.Recommender {
	case "heuristic":
	case "semantic":
		if c.Matching.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when RECOMMENDER=semantic")
		}
	default:
		return fmt.Errorf("invalid RECOMMENDER: %q", c.Matching.Recommender)
	}

	if c.Auth.JWTSecret == "" && !c.IsDevelopment() {
		return fmt.Errorf("JWT_SECRET is required outside development")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

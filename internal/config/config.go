package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// KeycloakConfig holds the identity-provider connection settings. Issuer is
// the realm URL (`<base>/realms/<realm>`); admin operations authenticate with
// the client-credentials grant.
type KeycloakConfig struct {
	BaseURL      string
	Realm        string
	ClientID     string
	ClientSecret string
	// Timeout bounds every request to the provider, token refresh included.
	Timeout time.Duration
}

func (k KeycloakConfig) Issuer() string {
	return fmt.Sprintf("%s/realms/%s", k.BaseURL, k.Realm)
}

// MinioConfig holds the object-store settings for probing-chart photos.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// KafkaConfig holds the notification event broker settings. When Brokers is
// empty the service falls back to the in-process channel publisher.
type KafkaConfig struct {
	Brokers []string
}

type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	Keycloak KeycloakConfig
	Minio    MinioConfig
	Kafka    KafkaConfig

	// MaxUploadSize bounds multipart photo uploads, in bytes.
	MaxUploadSize int64
}

// LoadConfig reads configuration from the environment, loading .env first
// when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		Keycloak: KeycloakConfig{
			BaseURL:      getEnv("KEYCLOAK_BASE_URL", ""),
			Realm:        getEnv("KEYCLOAK_REALM", ""),
			ClientID:     getEnv("KEYCLOAK_CLIENT_ID", ""),
			ClientSecret: getEnv("KEYCLOAK_CLIENT_SECRET", ""),
			Timeout:      getEnvDuration("KEYCLOAK_TIMEOUT", 10*time.Second),
		},
		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "medical-registry"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(getEnv("KAFKA_BROKERS", "")),
		},
		MaxUploadSize: getEnvInt64("MAX_UPLOAD_SIZE", 5*1024*1024),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Keycloak.BaseURL == "" || cfg.Keycloak.Realm == "" {
		return nil, fmt.Errorf("KEYCLOAK_BASE_URL and KEYCLOAK_REALM are required")
	}
	if cfg.Keycloak.ClientID == "" || cfg.Keycloak.ClientSecret == "" {
		return nil, fmt.Errorf("KEYCLOAK_CLIENT_ID and KEYCLOAK_CLIENT_SECRET are required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates runtime configuration for the PDF vault API.
type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Blob     BlobConfig
	Upload   UploadConfig
	CORS     CORSConfig
	Metrics  MetricsConfig
}

// ServerConfig parameterizes the HTTP server.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Address returns the listen address in host:port form.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// PostgresConfig contains PostgreSQL connection details.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// DSN returns the PostgreSQL DSN string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

// MigrateURL returns the connection URL in the form golang-migrate expects.
func (p PostgresConfig) MigrateURL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

// BlobBackend selects where uploaded bytes live.
type BlobBackend string

const (
	// BlobBackendDisk stores blobs in a local directory.
	BlobBackendDisk BlobBackend = "disk"
	// BlobBackendMinIO stores blobs in a MinIO/S3 bucket.
	BlobBackendMinIO BlobBackend = "minio"
)

// BlobConfig selects and parameterizes the blob backend.
type BlobConfig struct {
	Backend BlobBackend
	Dir     string
	MinIO   MinIOConfig
}

// MinIOConfig carries MinIO connection and bucket information.
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
}

// UploadConfig bounds what the upload endpoint accepts.
type UploadConfig struct {
	MaxSizeBytes int64
}

// CORSConfig lists the origins allowed to call the API cross-origin.
type CORSConfig struct {
	AllowedOrigins []string
}

// MetricsConfig groups observability settings.
type MetricsConfig struct {
	PrometheusPath string
}

const defaultMaxUploadSize = 50 * 1024 * 1024 // 50 MiB

// Load reads configuration values from environment variables, applying defaults.
func Load() (Config, error) {
	backend := BlobBackend(strings.ToLower(getString("PDFVAULT_BLOB_BACKEND", string(BlobBackendDisk))))
	if backend != BlobBackendDisk && backend != BlobBackendMinIO {
		return Config{}, fmt.Errorf("unknown blob backend %q", backend)
	}

	cfg := Config{
		Server: ServerConfig{
			Host:         getString("PDFVAULT_API_HOST", "0.0.0.0"),
			Port:         getInt("PDFVAULT_API_PORT", 8080),
			ReadTimeout:  getDuration("PDFVAULT_API_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDuration("PDFVAULT_API_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDuration("PDFVAULT_API_IDLE_TIMEOUT", 60*time.Second),
		},
		Postgres: PostgresConfig{
			Host:     getString("POSTGRES_HOST", "localhost"),
			Port:     getInt("POSTGRES_PORT", 5432),
			User:     getString("POSTGRES_USER", "pdfvault_app"),
			Password: getString("POSTGRES_PASSWORD", "change-me"),
			Database: getString("POSTGRES_DB", "pdfvault"),
			SSLMode:  strings.ToLower(getString("POSTGRES_SSL_MODE", "disable")),
		},
		Blob: BlobConfig{
			Backend: backend,
			Dir:     getString("PDFVAULT_BLOB_DIR", "./uploads"),
			MinIO: MinIOConfig{
				Endpoint:        getString("MINIO_ENDPOINT", "localhost:9000"),
				AccessKeyID:     getString("MINIO_ROOT_USER", "pdfvault"),
				SecretAccessKey: getString("MINIO_ROOT_PASSWORD", "change-me-strong-password"),
				Bucket:          getString("MINIO_BUCKET", "pdfvault"),
				UseSSL:          getBool("MINIO_USE_SSL", false),
				Region:          getString("MINIO_REGION", ""),
			},
		},
		Upload: UploadConfig{
			MaxSizeBytes: getInt64("PDFVAULT_MAX_UPLOAD_BYTES", defaultMaxUploadSize),
		},
		CORS: CORSConfig{
			AllowedOrigins: getStringSlice("PDFVAULT_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Metrics: MetricsConfig{
			PrometheusPath: getString("PDFVAULT_METRICS_PATH", "/metrics"),
		},
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getStringSlice(key string, fallback []string) []string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.ToLower(strings.TrimSpace(val))
		switch val {
		case "1", "true", "t", "yes", "y":
			return true
		case "0", "false", "f", "no", "n":
			return false
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}

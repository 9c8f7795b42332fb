package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration.
// Populated from environment variables with sane local defaults.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	MinIO    MinIOConfig
	Redis    RedisConfig
	Session  SessionConfig
	OAuth    OAuthConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Path string // sqlite database file
}

// StorageConfig selects the asset store backend.
// Driver "disk" writes under Root; "minio" uses the MinIO section.
type StorageConfig struct {
	Driver       string // disk, minio
	Root         string // content root for the disk driver
	PublicPrefix string // prefix prepended to stored filenames in responses
	MaxUploadMB  int64
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	Name   string
	Secret string
}

// OAuthConfig describes the external provider the auth endpoints
// delegate to. StateSecret signs the state parameter.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	RedirectURL  string
	Scope        string
	StateSecret  string
}

type CORSConfig struct {
	AllowedOrigin string
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Gallery API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "thanks_images.db"),
		},
		Storage: StorageConfig{
			Driver:       getEnv("STORAGE_DRIVER", "disk"),
			Root:         getEnv("STORAGE_ROOT", "static/uploads/thanks"),
			PublicPrefix: getEnv("STORAGE_PUBLIC_PREFIX", "/img/thanks"),
			MaxUploadMB:  int64(getEnvInt("STORAGE_MAX_UPLOAD_MB", 10)),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "gallery"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Name:   getEnv("SESSION_NAME", "gallery_session"),
			Secret: getEnv("SESSION_SECRET", "dev-session-secret-change-in-production"),
		},
		OAuth: OAuthConfig{
			ClientID:     getEnv("OAUTH_CLIENT_ID", ""),
			ClientSecret: getEnv("OAUTH_CLIENT_SECRET", ""),
			AuthURL:      getEnv("OAUTH_AUTH_URL", ""),
			TokenURL:     getEnv("OAUTH_TOKEN_URL", ""),
			UserInfoURL:  getEnv("OAUTH_USERINFO_URL", ""),
			RedirectURL:  getEnv("OAUTH_REDIRECT_URL", "http://localhost:8080/callback"),
			Scope:        getEnv("OAUTH_SCOPE", "openid profile"),
			StateSecret:  getEnv("OAUTH_STATE_SECRET", "dev-state-secret-change-in-production"),
		},
		CORS: CORSConfig{
			AllowedOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks production-critical settings
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.Session.Secret == "dev-session-secret-change-in-production" {
			return fmt.Errorf("SESSION_SECRET must be set in production")
		}
		if c.OAuth.StateSecret == "dev-state-secret-change-in-production" {
			return fmt.Errorf("OAUTH_STATE_SECRET must be set in production")
		}

		if c.OAuth.ClientID == "" {
			fmt.Println("WARNING: OAuth client not configured - login endpoints will not work")
		}
	}

	switch c.Storage.Driver {
	case "disk", "minio":
	default:
		return fmt.Errorf("unknown storage driver: %s", c.Storage.Driver)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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

func getEnvBool(key string, defaultValue bool) bool {
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

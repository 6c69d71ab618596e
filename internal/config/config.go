package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cepip-app-go/pkg/logger"
)

type Config struct {
	HTTPPort string
	Env      string
	DB       DBConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Copy     CopyConfig

	LookupCacheTTL  time.Duration
	ShutdownTimeout time.Duration
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Migrate         bool
}

type AuthConfig struct {
	JWTSecret      string
	TokenTTL       time.Duration
	GoogleClientID string
	CertsURL       string
	SkipAuth       bool
	MockUserEmail  string
	MockUserName   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// CopyConfig drives the batch copy utility.
type CopyConfig struct {
	SourceDSN      string
	TargetDSN      string
	Tables         []string
	ExcludedTables []string
	ConnectRetries int
}

func Load(log logger.Logger) (Config, error) {
	err := loadDotEnv(log)
	if err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	return Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", getEnv("DATABASE_URL", "")),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "cepip"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			Migrate:         getEnvBool("DB_MIGRATE", true),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("SECRET_KEY", ""),
			TokenTTL:       getEnvDuration("AUTH_TOKEN_TTL", 24*time.Hour),
			GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
			CertsURL:       getEnv("GOOGLE_CERTS_URL", ""),
			SkipAuth:       getEnvBool("AUTH_SKIP", false),
			MockUserEmail:  getEnv("AUTH_MOCK_USER_EMAIL", "dev@cepip.local"),
			MockUserName:   getEnv("AUTH_MOCK_USER_NAME", "Developer"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		},
		LookupCacheTTL:  getEnvDuration("LOOKUP_CACHE_TTL", 5*time.Minute),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		Copy: CopyConfig{
			SourceDSN:      getEnv("COPY_SOURCE_DSN", ""),
			TargetDSN:      getEnv("COPY_TARGET_DSN", ""),
			Tables:         getEnvList("COPY_TABLES", nil),
			ExcludedTables: getEnvList("COPY_EXCLUDED_TABLES", []string{"users", "schema_migrations"}),
			ConnectRetries: getEnvInt("COPY_CONNECT_RETRIES", 3),
		},
	}, nil
}

// Validate reports settings the server cannot run without.
func (c Config) Validate() error {
	if c.Auth.JWTSecret == "" && !c.Auth.SkipAuth {
		return fmt.Errorf("SECRET_KEY is required unless AUTH_SKIP is set")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// getEnvList splits a comma separated value, dropping blank entries.
func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}

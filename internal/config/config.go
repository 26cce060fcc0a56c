package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/tourbook/catalog/db"
	"github.com/tourbook/catalog/internal/types"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"3000"`
	DBDriver    string `envconfig:"DB_DRIVER" default:"postgres"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"true"`

	JWTSecret         string        `envconfig:"JWT_SECRET"`
	JWTTTL            time.Duration `envconfig:"JWT_TTL" default:"168h"`
	AdminUsername     string        `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH"`

	ClientURL            string   `envconfig:"CLIENT_URL"`
	ExtraAllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS"`
	LogLevel             string   `envconfig:"LOG_LEVEL" default:"info"`
	ServiceName          string   `envconfig:"SERVICE_NAME" default:"tours-catalog"`
	OTLPExporterEndpoint string   `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	WebhookURL           string        `envconfig:"WEBHOOK_URL"`
	WebhookFormat        string        `envconfig:"WEBHOOK_FORMAT" default:"json"`
	StorageProbeInterval time.Duration `envconfig:"STORAGE_PROBE_INTERVAL" default:"30s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case db.DriverPostgres, db.DriverMySQL, db.DriverSQLite, db.DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.DBDriver != db.DriverMemory && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for DB_DRIVER=%s", c.DBDriver)
	}

	if c.StorageProbeInterval <= 0 {
		return errors.New("STORAGE_PROBE_INTERVAL must be positive")
	}

	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}

	return nil
}

// AllowedOrigins is the development defaults plus CLIENT_URL and
// ALLOWED_ORIGINS.
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, len(types.DefaultOrigins))
	copy(origins, types.DefaultOrigins)

	if c.ClientURL != "" {
		origins = append(origins, c.ClientURL)
	}

	for _, origin := range c.ExtraAllowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}

// AdminEnabled reports whether admin login can succeed.
func (c *Config) AdminEnabled() bool {
	return c.JWTSecret != "" && c.AdminPasswordHash != ""
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/vendops/inventory-admin/internal/core/domain"
)

const minSecretLength = 16

type Config struct {
	Port       string `env:"PORT,        default=8080"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	Timezone   string `env:"TIMEZONE,    default=UTC"`
	ReportCron string `env:"REPORT_CRON"`

	Auth  AuthConfig
	Reset ResetConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET, required"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=12h"`
	CookieSecure  bool          `env:"COOKIE_SECURE,  default=false"`
	AdminUsername string        `env:"ADMIN_USERNAME, default=admin"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
}

type ResetConfig struct {
	Policy string `env:"RESET_POLICY, default=unselect"`
}

type MongoConfig struct {
	URI          string `env:"MONGO_URI,          default=mongodb://localhost:27017"`
	Database     string `env:"MONGO_DB,           default=inventory_admin"`
	Transactions bool   `env:"MONGO_TRANSACTIONS, default=false"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads an optional env file and then the process environment. An empty
// envFile loads ./.env when present.
func Load(ctx context.Context, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}
	return process(ctx, envconfig.OsLookuper())
}

func process(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < minSecretLength {
		return fmt.Errorf("config: JWT_SECRET must be at least %d characters", minSecretLength)
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive, got %s", c.Auth.SessionTTL)
	}
	if _, err := domain.ParseResetPolicy(c.Reset.Policy); err != nil {
		return fmt.Errorf("config: RESET_POLICY: %w", err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: TIMEZONE: %w", err)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Location returns the zone calendar days are taken in. Validate guarantees
// it loads; UTC is the fallback.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) ResetPolicy() domain.ResetPolicy {
	p, err := domain.ParseResetPolicy(c.Reset.Policy)
	if err != nil {
		return domain.ResetUnselect
	}
	return p
}

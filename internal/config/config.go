package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server
	Port        int    `env:"PORT" envDefault:"8080"`
	APIKey      string `env:"API_KEY"` // API key for the admin API
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"gamevault"`
	Version     string `env:"VERSION" envDefault:"dev"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogDir    string `env:"LOG_DIR"` // empty logs to stdout only

	// Database
	DBUser             string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword         string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost             string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort             string        `env:"DB_PORT" envDefault:"5432"`
	DBName             string        `env:"DB_NAME" envDefault:"gamevault"`
	DBMaxConns         int           `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMaxConnIdleTime  time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"5m"`
	DBMaxConnLifetime  time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	SlowQueryThreshold time.Duration `env:"DB_SLOW_QUERY_THRESHOLD" envDefault:"500ms"`
	RunMigrations      bool          `env:"RUN_MIGRATIONS" envDefault:"true"`

	// Session lifecycle
	AutosaveInterval        time.Duration `env:"AUTOSAVE_INTERVAL" envDefault:"5m"`
	PlaytimeInterval        time.Duration `env:"PLAYTIME_INTERVAL" envDefault:"1m"`
	VehicleAutosaveInterval time.Duration `env:"VEHICLE_AUTOSAVE_INTERVAL" envDefault:"5m"`
	SaveConcurrency         int           `env:"SAVE_CONCURRENCY" envDefault:"8"`

	// Starting balances used when the settings table has no override
	StartingCash int64 `env:"STARTING_CASH" envDefault:"1000"`
	StartingBank int64 `env:"STARTING_BANK" envDefault:"5000"`

	// Background work
	WorkerCount           int           `env:"WORKER_COUNT" envDefault:"4"`
	WorkerQueueSize       int           `env:"WORKER_QUEUE_SIZE" envDefault:"64"`
	JobTimeout            time.Duration `env:"JOB_TIMEOUT" envDefault:"2m"`
	ActivityRetentionDays int           `env:"ACTIVITY_RETENTION_DAYS" envDefault:"30"`
	MaintenanceInterval   time.Duration `env:"MAINTENANCE_INTERVAL" envDefault:"1h"`

	// Events
	EventMaxRetries int           `env:"EVENT_MAX_RETRIES" envDefault:"5"`
	EventRetryDelay time.Duration `env:"EVENT_RETRY_DELAY" envDefault:"2s"`
	DeadLetterPath  string        `env:"DEAD_LETTER_PATH" envDefault:"logs/deadletter.jsonl"`

	// Admin API
	RateLimitPerSecond float64  `env:"RATE_LIMIT_PER_SECOND" envDefault:"20"`
	RateLimitBurst     int      `env:"RATE_LIMIT_BURST" envDefault:"40"`
	TrustedProxies     []string `env:"TRUSTED_PROXIES" envSeparator:","`
	MaxRequestBytes    int64    `env:"MAX_REQUEST_BYTES" envDefault:"1048576"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// GetAdminConnString returns a connection string for the maintenance database,
// used to create the application database before it exists.
func (c *Config) GetAdminConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
	)
}

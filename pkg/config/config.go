package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App         AppConfig
	Upstream    UpstreamConfig
	JWT         JWTConfig
	Journal     JournalConfig
	Redis       RedisConfig
	Sessions    SessionConfig
	Idempotency IdempotencyConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Journal.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CONDOPOS_APP_ENV" required:"true"`
	Port         string `envconfig:"CONDOPOS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CONDOPOS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CONDOPOS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points at the settlement backend that owns catalog, stock
// and resident ledgers. This service never mutates those directly.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"CONDOPOS_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"CONDOPOS_UPSTREAM_TIMEOUT" default:"10s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CONDOPOS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CONDOPOS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CONDOPOS_JWT_EXPIRATION_MINUTES" default:"480"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// JournalConfig configures the local sales journal database.
type JournalConfig struct {
	Driver string `envconfig:"CONDOPOS_JOURNAL_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"CONDOPOS_JOURNAL_DSN" default:"condopos-journal.db"`

	MaxOpenConns    int           `envconfig:"CONDOPOS_JOURNAL_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"CONDOPOS_JOURNAL_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"CONDOPOS_JOURNAL_CONN_MAX_LIFETIME" default:"1h"`
}

func (j JournalConfig) validate() error {
	switch j.Driver {
	case JournalDriverSQLite, JournalDriverPostgres:
		return nil
	}
	return fmt.Errorf("unsupported journal driver %q", j.Driver)
}

type RedisConfig struct {
	URL          string        `envconfig:"CONDOPOS_REDIS_URL"`
	Address      string        `envconfig:"CONDOPOS_REDIS_ADDR"`
	Password     string        `envconfig:"CONDOPOS_REDIS_PASSWORD"`
	DB           int           `envconfig:"CONDOPOS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CONDOPOS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CONDOPOS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CONDOPOS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CONDOPOS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CONDOPOS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all. The
// checkout idempotency guard is skipped when it is absent.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// SessionConfig bounds the lifetime of idle terminal sessions.
type SessionConfig struct {
	IdleTTL       time.Duration `envconfig:"CONDOPOS_SESSION_IDLE_TTL" default:"12h"`
	SweepInterval time.Duration `envconfig:"CONDOPOS_SESSION_SWEEP_INTERVAL" default:"10m"`
}

type IdempotencyConfig struct {
	CheckoutTTL time.Duration `envconfig:"CONDOPOS_IDEMPOTENCY_CHECKOUT_TTL" default:"168h"`
}

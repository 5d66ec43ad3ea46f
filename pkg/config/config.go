package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

type Config struct {
	App         AppConfig
	DB          DBConfig
	Redis       RedisConfig
	CatalogAPI  CatalogAPIConfig
	Installment InstallmentConfig
	Session     SessionConfig
	RateLimit   RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STELLANTIS_APP_ENV" required:"true"`
	Port         string `envconfig:"STELLANTIS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STELLANTIS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STELLANTIS_LOG_WARN_STACK" default:"false"`
}

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STELLANTIS_DB_DSN"`
	Driver string `envconfig:"STELLANTIS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"STELLANTIS_DB_HOST"`
	Port     int    `envconfig:"STELLANTIS_DB_PORT" default:"5432"`
	User     string `envconfig:"STELLANTIS_DB_USER"`
	Password string `envconfig:"STELLANTIS_DB_PASSWORD"`
	Name     string `envconfig:"STELLANTIS_DB_NAME"`
	SSLMode  string `envconfig:"STELLANTIS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STELLANTIS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STELLANTIS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STELLANTIS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STELLANTIS_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"STELLANTIS_DB_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STELLANTIS_REDIS_URL"`
	Address      string        `envconfig:"STELLANTIS_REDIS_ADDR"`
	Password     string        `envconfig:"STELLANTIS_REDIS_PASSWORD"`
	DB           int           `envconfig:"STELLANTIS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STELLANTIS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STELLANTIS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STELLANTIS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STELLANTIS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STELLANTIS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CatalogAPIConfig points at the remote vehicle catalog backend.
type CatalogAPIConfig struct {
	BaseURL        string        `envconfig:"STELLANTIS_CATALOG_API_BASE_URL" required:"true"`
	RequestTimeout time.Duration `envconfig:"STELLANTIS_CATALOG_API_TIMEOUT" default:"10s"`
	CacheTTL       time.Duration `envconfig:"STELLANTIS_CATALOG_CACHE_TTL" default:"15m"`
}

// InstallmentConfig drives the financing widget defaults.
type InstallmentConfig struct {
	Months []int `envconfig:"STELLANTIS_INSTALLMENT_MONTHS" default:"12,24,36,48,60"`
}

type SessionConfig struct {
	TTL time.Duration `envconfig:"STELLANTIS_SESSION_TTL" default:"2h"`

	SweepInterval time.Duration `envconfig:"STELLANTIS_SESSION_SWEEP_INTERVAL" default:"5m"`
}

// RateLimitConfig throttles session creation per client IP.
type RateLimitConfig struct {
	SessionCreateLimit  int64         `envconfig:"STELLANTIS_RATE_LIMIT_SESSION_CREATE" default:"30"`
	SessionCreateWindow time.Duration `envconfig:"STELLANTIS_RATE_LIMIT_SESSION_WINDOW" default:"1m"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	required := map[string]string{
		"STELLANTIS_DB_HOST": db.Host,
		"STELLANTIS_DB_USER": db.User,
		"STELLANTIS_DB_NAME": db.Name,
	}
	for _, key := range []string{"STELLANTIS_DB_HOST", "STELLANTIS_DB_USER", "STELLANTIS_DB_NAME"} {
		if required[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either STELLANTIS_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

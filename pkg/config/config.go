package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "sellermock"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	Mock         MockConfig
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
	Env          string `envconfig:"SELLERMOCK_APP_ENV" default:"dev"`
	Port         string `envconfig:"SELLERMOCK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SELLERMOCK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SELLERMOCK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"SELLERMOCK_DB_DSN"`

	Host     string `envconfig:"SELLERMOCK_DB_HOST"`
	Port     int    `envconfig:"SELLERMOCK_DB_PORT" default:"5432"`
	User     string `envconfig:"SELLERMOCK_DB_USER"`
	Password string `envconfig:"SELLERMOCK_DB_PASSWORD"`
	Name     string `envconfig:"SELLERMOCK_DB_NAME"`
	SSLMode  string `envconfig:"SELLERMOCK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SELLERMOCK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SELLERMOCK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SELLERMOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SELLERMOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SELLERMOCK_REDIS_URL"`
	Address      string        `envconfig:"SELLERMOCK_REDIS_ADDR"`
	Password     string        `envconfig:"SELLERMOCK_REDIS_PASSWORD"`
	DB           int           `envconfig:"SELLERMOCK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SELLERMOCK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SELLERMOCK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SELLERMOCK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SELLERMOCK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SELLERMOCK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// RateLimitConfig throttles inbound requests per client IP, mirroring the
// request quotas the real marketplace API enforces.
type RateLimitConfig struct {
	Window   time.Duration `envconfig:"SELLERMOCK_RATE_LIMIT_WINDOW" default:"1s"`
	Requests int           `envconfig:"SELLERMOCK_RATE_LIMIT_REQUESTS" default:"0"`
}

func (r RateLimitConfig) Enabled() bool {
	return r.Window > 0 && r.Requests > 0
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SELLERMOCK_AUTO_MIGRATE" default:"false"`
}

// MockConfig tunes the simulated lifecycles of asynchronous resources.
type MockConfig struct {
	FeedProcessingStart time.Duration `envconfig:"SELLERMOCK_FEED_PROCESSING_START" default:"30s"`
	FeedProcessingDone  time.Duration `envconfig:"SELLERMOCK_FEED_PROCESSING_DONE" default:"2m"`
	ExportProcessing    time.Duration `envconfig:"SELLERMOCK_EXPORT_PROCESSING" default:"30s"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for env, value := range map[string]string{
		"SELLERMOCK_DB_HOST": db.Host,
		"SELLERMOCK_DB_USER": db.User,
		"SELLERMOCK_DB_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either SELLERMOCK_DB_DSN or %s are required", strings.Join(missing, ", "))
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

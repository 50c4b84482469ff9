package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "DAPUR"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Dashboard    DashboardConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"DAPUR_APP_ENV" default:"dev"`
	Port         string `envconfig:"DAPUR_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"DAPUR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DAPUR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DAPUR_DB_DSN"`
	Driver string `envconfig:"DAPUR_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"DAPUR_DB_HOST"`
	Port     int    `envconfig:"DAPUR_DB_PORT" default:"5432"`
	User     string `envconfig:"DAPUR_DB_USER"`
	Password string `envconfig:"DAPUR_DB_PASSWORD"`
	Name     string `envconfig:"DAPUR_DB_NAME"`
	SSLMode  string `envconfig:"DAPUR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DAPUR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DAPUR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DAPUR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DAPUR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DAPUR_REDIS_URL"`
	Address      string        `envconfig:"DAPUR_REDIS_ADDR"`
	Password     string        `envconfig:"DAPUR_REDIS_PASSWORD"`
	DB           int           `envconfig:"DAPUR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DAPUR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DAPUR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DAPUR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DAPUR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DAPUR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint is configured at all. The cache is
// optional; without it dashboard reads go straight to the database.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type DashboardConfig struct {
	CacheTTL      time.Duration `envconfig:"DAPUR_DASHBOARD_CACHE_TTL" default:"30s"`
	LowStockLimit int           `envconfig:"DAPUR_DASHBOARD_LOW_STOCK_LIMIT" default:"5"`
	RecentSales   int           `envconfig:"DAPUR_DASHBOARD_RECENT_SALES" default:"5"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"DAPUR_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"DAPUR_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if strings.EqualFold(db.Driver, DriverSQLite) {
		db.DSN = "file:dapursupply.db?cache=shared"
		return nil
	}

	missing := []string{}
	required := map[string]string{
		"DAPUR_DB_HOST": db.Host,
		"DAPUR_DB_USER": db.User,
		"DAPUR_DB_NAME": db.Name,
	}
	for _, key := range []string{"DAPUR_DB_HOST", "DAPUR_DB_USER", "DAPUR_DB_NAME"} {
		if required[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either DAPUR_DB_DSN or %s are required", strings.Join(missing, ", "))
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

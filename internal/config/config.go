package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "PETADOPT"

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	DB       DBConfig
	Redis    RedisConfig
	Password PasswordConfig
	Checkout CheckoutConfig
	Seed     SeedConfig
}

type AppConfig struct {
	Env       string `envconfig:"PETADOPT_APP_ENV" default:"dev"`
	Name      string `envconfig:"PETADOPT_APP_NAME" default:"pet-adoption-platform"`
	Port      string `envconfig:"PETADOPT_PORT" default:"8080"`
	LogLevel  string `envconfig:"PETADOPT_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"PETADOPT_LOG_FORMAT" default:"json"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, "dev")
}

type StorageConfig struct {
	Driver string `envconfig:"PETADOPT_STORAGE_DRIVER" default:"memory"`
}

type DBConfig struct {
	DSN             string        `envconfig:"PETADOPT_DB_DSN"`
	MaxOpenConns    int           `envconfig:"PETADOPT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"PETADOPT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"PETADOPT_DB_CONN_MAX_LIFETIME" default:"30m"`
	ConnMaxIdleTime time.Duration `envconfig:"PETADOPT_DB_CONN_MAX_IDLE_TIME" default:"5m"`
}

type RedisConfig struct {
	URL       string        `envconfig:"PETADOPT_REDIS_URL"`
	Address   string        `envconfig:"PETADOPT_REDIS_ADDR" default:"localhost:6379"`
	Password  string        `envconfig:"PETADOPT_REDIS_PASSWORD"`
	DB        int           `envconfig:"PETADOPT_REDIS_DB" default:"0"`
	Namespace string        `envconfig:"PETADOPT_REDIS_NAMESPACE" default:"petadopt"`
	Timeout   time.Duration `envconfig:"PETADOPT_REDIS_TIMEOUT" default:"3s"`
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"PETADOPT_BCRYPT_COST" default:"10"`
}

type CheckoutConfig struct {
	GatewayDelay time.Duration `envconfig:"PETADOPT_CHECKOUT_GATEWAY_DELAY" default:"2s"`
}

type SeedConfig struct {
	OnStart bool `envconfig:"PETADOPT_SEED_ON_START" default:"true"`
}

// Load lee PETADOPT_* del entorno. El .env (si existe) lo carga main.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverMemory, DriverRedis, DriverSQLite:
	case DriverPostgres:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("%s_DB_DSN is required for the postgres driver", EnvPrefix)
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.Checkout.GatewayDelay < 0 {
		return fmt.Errorf("%s_CHECKOUT_GATEWAY_DELAY must not be negative", EnvPrefix)
	}
	return nil
}

// SQLiteDSN usa DB_DSN como ruta si viene; si no, una base en memoria.
func (c DBConfig) SQLiteDSN() string {
	if strings.TrimSpace(c.DSN) != "" {
		return c.DSN
	}
	return "file::memory:?cache=shared"
}

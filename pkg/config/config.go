package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/packlane/storefront/pkg/enums"
)

// EnvPrefix is empty because every field carries its fully-qualified variable name.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Catalog  CatalogConfig
	Redis    RedisConfig
	Session  SessionConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return a.Env == AppEnvDev
}

func (a AppConfig) IsProd() bool {
	return a.Env == AppEnvProd
}

// CatalogConfig points at the external catalog service the storefront browses.
type CatalogConfig struct {
	BaseURL  string        `envconfig:"STOREFRONT_CATALOG_BASE_URL" required:"true"`
	Timeout  time.Duration `envconfig:"STOREFRONT_CATALOG_TIMEOUT" default:"10s"`
	CacheTTL time.Duration `envconfig:"STOREFRONT_CATALOG_CACHE_TTL" default:"5m"`
}

// RedisConfig is optional: when neither URL nor address is set the catalog
// client runs uncached.
type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type SessionConfig struct {
	TTL           time.Duration `envconfig:"STOREFRONT_SESSION_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"STOREFRONT_SESSION_SWEEP_INTERVAL" default:"1m"`
}

// CheckoutConfig pins down two checkout behaviors:
// what "back" does from checkout, and whether a completed order empties the cart.
type CheckoutConfig struct {
	BackPolicy string `envconfig:"STOREFRONT_CHECKOUT_BACK_POLICY" default:"reopen-cart"`
	ClearCart  bool   `envconfig:"STOREFRONT_CHECKOUT_CLEAR_CART" default:"false"`
}

func (c CheckoutConfig) validate() error {
	if _, err := enums.ParseCheckoutBackPolicy(c.BackPolicy); err != nil {
		return fmt.Errorf("invalid checkout config: %w", err)
	}
	return nil
}

// Policy returns the parsed back policy; Load guarantees it is valid.
func (c CheckoutConfig) Policy() enums.CheckoutBackPolicy {
	policy, err := enums.ParseCheckoutBackPolicy(c.BackPolicy)
	if err != nil {
		return enums.CheckoutBackReopenCart
	}
	return policy
}

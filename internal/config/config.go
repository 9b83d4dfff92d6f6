package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/affirmed-honey/dulin2/pkg/config"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"dulin"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"dulin_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"dulin"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	DBMaxConns   int32  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns   int32  `env:"DB_MIN_CONNS" envDefault:"5"`

	// Redis
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	CartTTLHours  int    `env:"CART_TTL_HOURS" envDefault:"168"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Auth
	JWTSecret       string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	SessionHours    int    `env:"SESSION_HOURS" envDefault:"24"`
	RememberMeHours int    `env:"REMEMBER_ME_HOURS" envDefault:"168"`

	// Pricing. The tax rate is in basis points and amounts in kobo.
	TaxRateBP                 int64 `env:"TAX_RATE_BP" envDefault:"750"`
	FreeShippingThresholdKobo int64 `env:"FREE_SHIPPING_THRESHOLD_KOBO" envDefault:"5000000"`
	FlatShippingFeeKobo       int64 `env:"FLAT_SHIPPING_FEE_KOBO" envDefault:"150000"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.TaxRateBP < 0 || c.TaxRateBP > 10000 {
		return fmt.Errorf("invalid tax rate: %d basis points", c.TaxRateBP)
	}
	if c.FlatShippingFeeKobo < 0 || c.FreeShippingThresholdKobo < 0 {
		return fmt.Errorf("shipping amounts must not be negative")
	}
	return nil
}

// CartTTL returns the cart expiry as a duration.
func (c *Config) CartTTL() time.Duration {
	return time.Duration(c.CartTTLHours) * time.Hour
}

// SessionExpiry returns the normal session token lifetime.
func (c *Config) SessionExpiry() time.Duration {
	return time.Duration(c.SessionHours) * time.Hour
}

// RememberExpiry returns the "remember me" token lifetime.
func (c *Config) RememberExpiry() time.Duration {
	return time.Duration(c.RememberMeHours) * time.Hour
}

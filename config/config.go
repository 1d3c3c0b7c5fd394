package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Env string

const (
	LOCAL Env = "local"
	PROD  Env = "prod"
)

type Store string

const (
	STORE_DYNAMO   Store = "dynamo"
	STORE_POSTGRES Store = "postgres"
)

type Config struct {
	Env        Env `env:"ENV" env-default:"local" env-description:"local or prod"`
	HttpServer HttpServer
	Store      StoreConfig
	Email      EmailConfig
	Checkout   CheckoutConfig
	Tracing    TracingConfig
}

type HttpServer struct {
	Host          string        `env:"HOST" env-default:"localhost"`
	Port          string        `env:"PORT" env-default:"8080"`
	AllowedOrigin string        `env:"ALLOWED_ORIGIN" env-default:"" env-description:"CORS origin allowed in prod"`
	ReadTimeout   time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
}

type StoreConfig struct {
	Kind            Store  `env:"STORE" env-default:"dynamo" env-description:"dynamo or postgres"`
	DynamoTableName string `env:"DYNAMO_TABLE_NAME" env-default:"WorkshopRegistration"`
	DynamoEndpoint  string `env:"DYNAMO_ENDPOINT" env-default:"" env-description:"override endpoint, e.g. DynamoDB Local"`
	PostgresDSN     string `env:"POSTGRES_DSN" env-default:""`
}

type EmailConfig struct {
	Enabled bool   `env:"EMAIL_ENABLED" env-default:"false"`
	From    string `env:"EMAIL_FROM" env-default:"inscricoes@adaptare.com.br"`
}

type CheckoutConfig struct {
	SessionTTL time.Duration `env:"CHECKOUT_SESSION_TTL" env-default:"30m"`
}

// TracingConfig turns on OTLP trace export. The exporter itself is
// configured through the standard OTEL_EXPORTER_OTLP_* variables.
type TracingConfig struct {
	Enabled bool `env:"TRACING_ENABLED" env-default:"false"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.HttpServer.Host, c.HttpServer.Port)
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read config from environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case LOCAL, PROD:
	default:
		return fmt.Errorf("unknown ENV %q", c.Env)
	}

	switch c.Store.Kind {
	case STORE_DYNAMO:
		if c.Store.DynamoTableName == "" {
			return fmt.Errorf("DYNAMO_TABLE_NAME is required when STORE=%s", STORE_DYNAMO)
		}
	case STORE_POSTGRES:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when STORE=%s", STORE_POSTGRES)
		}
	default:
		return fmt.Errorf("unknown STORE %q", c.Store.Kind)
	}

	if c.Env == PROD && c.HttpServer.AllowedOrigin == "" {
		return fmt.Errorf("ALLOWED_ORIGIN is required when ENV=%s", PROD)
	}
	if c.Checkout.SessionTTL <= 0 {
		return fmt.Errorf("CHECKOUT_SESSION_TTL must be positive")
	}

	return nil
}

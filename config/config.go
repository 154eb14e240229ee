package config

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type (
	APP struct {
		Name      string `env:"SERVICE_NAME, default=personmanager"`
		Host      string `env:"SERVICE_HOST, default=0.0.0.0"`
		Port      string `env:"SERVICE_PORT, default=8000"`
		Env       string `env:"SERVICE_ENV, default=production"`
		JWTSecret string `env:"SERVICE_JWT_SECRET, required"`
	}
	DB struct {
		User     string `env:"POSTGRES_USER"`
		Password string `env:"POSTGRES_PASSWORD"`
		Name     string `env:"POSTGRES_DB"`
		Host     string `env:"POSTGRES_HOST, default=localhost"`
		Port     string `env:"POSTGRES_PORT, default=5432"`
	}
	Redis struct {
		Addr string `env:"REDIS_ADDR, default=localhost:6379"`
		DB   int    `env:"REDIS_DB, default=0"`
	}
	Session struct {
		// Store selects the session backend: "postgres" or "redis".
		Store      string        `env:"SESSION_STORE, default=postgres"`
		TTL        time.Duration `env:"SESSION_TTL, default=336h"`
		CookieName string        `env:"SESSION_COOKIE_NAME, default=sessionid"`
		Secure     bool          `env:"SESSION_COOKIE_SECURE, default=false"`
	}
	MQ struct {
		Enabled        bool   `env:"RABBITMQ_ENABLED, default=true"`
		User           string `env:"RABBITMQ_USER"`
		Password       string `env:"RABBITMQ_PASSWORD"`
		Vhost          string `env:"RABBITMQ_VHOST"`
		Host           string `env:"RABBITMQ_HOST"`
		AmqpPort       string `env:"RABBITMQ_AMQP_PORT, default=5672"`
		Exchange       string `env:"RABBITMQ_EXCHANGE, default=person.events"`
		ExchangeType   string `env:"RABBITMQ_EXCHANGE_TYPE, default=direct"`
		QueueName      string `env:"RABBITMQ_QUEUE_NAME, default=person.audit"`
		// ConnectionName labels the connection in the broker UI.
		ConnectionName string `env:"RABBITMQ_CONNECTION_NAME, default=personmanagerapi"`
	}
	Seed struct {
		AdminPassword string `env:"SEED_ADMIN_PASSWORD, default=admin123"`
		GuestPassword string `env:"SEED_GUEST_PASSWORD, default=guest123"`
	}

	Config struct {
		App     APP
		DB      DB
		Redis   Redis
		Session Session
		MQ      MQ
		Seed    Seed
	}
)

func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

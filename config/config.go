package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port string `env:"PORT" envDefault:"8080" validate:"required"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`
	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	JWTSecret   string `env:"JWT_SECRET,required" validate:"required,min=32"`
	TokenTTLMin int    `env:"TOKEN_TTL_MIN" envDefault:"30" validate:"min=1,max=1440"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`

	WeatherAPIKey     string `env:"WEATHER_API_KEY,required" validate:"required"`
	WeatherTimeoutSec int    `env:"WEATHER_TIMEOUT_SEC" envDefault:"10" validate:"min=1,max=60"`
	ForecastDays      int    `env:"FORECAST_DAYS" envDefault:"14" validate:"min=1,max=15"`

	NotifyIntervalDays int    `env:"NOTIFY_INTERVAL_DAYS" envDefault:"14" validate:"min=1,max=90"`
	NotifyCron         string `env:"NOTIFY_CRON" envDefault:"0 8 * * *" validate:"required"`
	NotifyBatch        int    `env:"NOTIFY_BATCH" envDefault:"100" validate:"min=1,max=1000"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMin) * time.Minute
}

func (c *Config) WeatherTimeout() time.Duration {
	return time.Duration(c.WeatherTimeoutSec) * time.Second
}

func (c *Config) NotifyInterval() time.Duration {
	return time.Duration(c.NotifyIntervalDays) * 24 * time.Hour
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

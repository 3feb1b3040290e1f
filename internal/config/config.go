// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Env      string `mapstructure:"APP_ENV" validate:"required"`
	LogLevel string `mapstructure:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`

	DBDriver                 string `mapstructure:"DB_DRIVER" validate:"required,oneof=postgres sqlite"`
	DBHost                   string `mapstructure:"DB_HOST" validate:"required_if=DBDriver postgres"`
	DBPort                   string `mapstructure:"DB_PORT" validate:"required_if=DBDriver postgres"`
	DBUser                   string `mapstructure:"DB_USER"`
	DBPassword               string `mapstructure:"DB_PASSWORD"`
	DBName                   string `mapstructure:"DB_NAME" validate:"required_if=DBDriver postgres"`
	DBSSLMode                string `mapstructure:"DB_SSLMODE" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	DBSQLitePath             string `mapstructure:"DB_SQLITE_PATH" validate:"required_if=DBDriver sqlite"`
	DBSchemaMode             string `mapstructure:"DB_SCHEMA_MODE" validate:"omitempty,oneof=sql auto hybrid"`
	DBMaxOpenConns           int    `mapstructure:"DB_MAX_OPEN_CONNS" validate:"gte=1"`
	DBMaxIdleConns           int    `mapstructure:"DB_MAX_IDLE_CONNS" validate:"gte=0,ltefield=DBMaxOpenConns"`
	DBConnMaxLifetimeMinutes int    `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES" validate:"gte=1"`

	RedisURL       string `mapstructure:"REDIS_URL"`
	NameLockTTLMs  int    `mapstructure:"NAME_LOCK_TTL_MS" validate:"gte=100"`
	NameLockWaitMs int    `mapstructure:"NAME_LOCK_WAIT_MS" validate:"gte=0"`

	TracingEnabled      bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter     string  `mapstructure:"TRACING_EXPORTER" validate:"omitempty,oneof=stdout otlp"`
	OTLPEndpoint        string  `mapstructure:"OTLP_ENDPOINT" validate:"required_if=TracingExporter otlp"`
	TracingSamplerRatio float64 `mapstructure:"TRACING_SAMPLER_RATIO" validate:"gte=0,lte=1"`
}

var validate = validator.New()

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base file is optional; env vars and defaults cover everything.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read profile config 'config.%s.yml': %w", env, err)
			}
			slog.Info("no profile-specific config found, using env and defaults", slog.String("env", env))
		} else {
			slog.Info("loaded profile-specific configuration", slog.String("file", "config."+env+".yml"))
		}
	}

	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "inkwell")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_SQLITE_PATH", "inkwell.db")
	viper.SetDefault("DB_SCHEMA_MODE", "sql")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 5)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("NAME_LOCK_TTL_MS", 5000)
	viper.SetDefault("NAME_LOCK_WAIT_MS", 2000)
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "")
	viper.SetDefault("TRACING_SAMPLER_RATIO", 1.0)
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.DBSSLMode = strings.ToLower(strings.TrimSpace(c.DBSSLMode))
	c.DBSchemaMode = strings.ToLower(strings.TrimSpace(c.DBSchemaMode))
	c.TracingExporter = strings.ToLower(strings.TrimSpace(c.TracingExporter))
}

// IsProduction reports whether the config targets a production-like environment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// NameLockTTL is how long a per-name write lock is held before it expires.
func (c *Config) NameLockTTL() time.Duration {
	return time.Duration(c.NameLockTTLMs) * time.Millisecond
}

// NameLockWait is how long a writer waits for a per-name lock.
func (c *Config) NameLockWait() time.Duration {
	return time.Duration(c.NameLockWaitMs) * time.Millisecond
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s failed %q check (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return err
	}

	if !c.IsProduction() {
		return nil
	}

	// Strict checks for production
	if c.DBDriver != "postgres" {
		return errors.New("DB_DRIVER must be postgres in production")
	}
	if c.DBPassword == "password" || c.DBPassword == "" {
		return errors.New("a strong DB_PASSWORD is required in production")
	}
	if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
		return errors.New("DB_SSLMODE must not be 'disable' in production")
	}
	if c.DBSchemaMode == "auto" {
		return errors.New("DB_SCHEMA_MODE=auto is not allowed in production")
	}
	if c.RedisURL == "" {
		slog.Warn("REDIS_URL is empty in production; author name locks are process-local")
	}

	return nil
}

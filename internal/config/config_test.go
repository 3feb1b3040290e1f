package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:                      "development",
		LogLevel:                 "info",
		DBDriver:                 "postgres",
		DBHost:                   "localhost",
		DBPort:                   "5432",
		DBUser:                   "user",
		DBPassword:               "password",
		DBName:                   "inkwell",
		DBSSLMode:                "disable",
		DBSchemaMode:             "hybrid",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 5,
		NameLockTTLMs:            5000,
		NameLockWaitMs:           2000,
		TracingExporter:          "stdout",
		TracingSamplerRatio:      1,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"Defaults are valid", func(_ *Config) {}, false},
		{"Unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"Postgres without host", func(c *Config) { c.DBHost = "" }, true},
		{"SQLite without path", func(c *Config) { c.DBDriver = "sqlite"; c.DBSQLitePath = "" }, true},
		{"SQLite with path", func(c *Config) { c.DBDriver = "sqlite"; c.DBSQLitePath = "dev.db" }, false},
		{"Unknown schema mode", func(c *Config) { c.DBSchemaMode = "yolo" }, true},
		{"Idle above open", func(c *Config) { c.DBMaxIdleConns = 50 }, true},
		{"Zero open conns", func(c *Config) { c.DBMaxOpenConns = 0 }, true},
		{"Lock TTL too small", func(c *Config) { c.NameLockTTLMs = 10 }, true},
		{"OTLP without endpoint", func(c *Config) { c.TracingExporter = "otlp" }, true},
		{"OTLP with endpoint", func(c *Config) { c.TracingExporter = "otlp"; c.OTLPEndpoint = "localhost:4318" }, false},
		{"Sampler ratio above one", func(c *Config) { c.TracingSamplerRatio = 1.5 }, true},
		{"Bad log level", func(c *Config) { c.LogLevel = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateProduction(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"Weak password", func(_ *Config) {}, true},
		{"SSL disabled", func(c *Config) { c.DBPassword = "s3cure-pa55" }, true},
		{"SQLite driver", func(c *Config) {
			c.DBPassword = "s3cure-pa55"
			c.DBSSLMode = "require"
			c.DBDriver = "sqlite"
			c.DBSQLitePath = "prod.db"
		}, true},
		{"Auto schema mode", func(c *Config) {
			c.DBPassword = "s3cure-pa55"
			c.DBSSLMode = "require"
			c.DBSchemaMode = "auto"
		}, true},
		{"Hardened", func(c *Config) {
			c.DBPassword = "s3cure-pa55"
			c.DBSSLMode = "verify-full"
			c.DBSchemaMode = "sql"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = "production"
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvOverridesAndNormalization(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "  SQLite ")
	t.Setenv("DB_SQLITE_PATH", "file::memory:")
	t.Setenv("DB_SCHEMA_MODE", "AUTO")
	t.Setenv("NAME_LOCK_WAIT_MS", "250")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "test", c.Env)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "auto", c.DBSchemaMode)
	assert.Equal(t, 250, c.NameLockWaitMs)
	assert.Equal(t, int64(250), c.NameLockWait().Milliseconds())
	assert.Equal(t, int64(5000), c.NameLockTTL().Milliseconds())
}

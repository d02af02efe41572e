package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database drivers understood by database.Open.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR" validate:"required"`
	GinMode         string        `mapstructure:"GIN_MODE" validate:"required,oneof=debug release test"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`

	DBDriver         string        `mapstructure:"DB_DRIVER" validate:"required,oneof=postgres mysql sqlite"`
	DBHost           string        `mapstructure:"DB_HOST"`
	DBPort           string        `mapstructure:"DB_PORT"`
	DBUser           string        `mapstructure:"DB_USER"`
	DBPassword       string        `mapstructure:"DB_PASSWORD"`
	DBName           string        `mapstructure:"DB_NAME"`
	DBSchema         string        `mapstructure:"DB_SCHEMA"`
	DBSSLMode        string        `mapstructure:"DB_SSLMODE"`
	DBDSN            string        `mapstructure:"DB_DSN" validate:"required_if=DBDriver sqlite"`
	DBMaxOpenConns   int           `mapstructure:"DB_MAX_OPEN_CONNS" validate:"gte=1"`
	DBMaxIdleConns   int           `mapstructure:"DB_MAX_IDLE_CONNS" validate:"gte=0"`
	DBConnectTimeout time.Duration `mapstructure:"DB_CONNECT_TIMEOUT" validate:"required"`

	ExternalAPIURL     string        `mapstructure:"EXTERNAL_API_URL" validate:"required,url"`
	ExternalAPITimeout time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT" validate:"required"`
}

var keys = []string{
	"APP_ENV", "HTTP_ADDR", "GIN_MODE", "SHUTDOWN_TIMEOUT",
	"LOG_LEVEL", "LOG_FORMAT",
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"DB_SCHEMA", "DB_SSLMODE", "DB_DSN", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
	"DB_CONNECT_TIMEOUT",
	"EXTERNAL_API_URL", "EXTERNAL_API_TIMEOUT",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads .env (if present) and the process environment, applies defaults
// and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "taskuser")
	v.SetDefault("DB_PASSWORD", "taskpassword")
	v.SetDefault("DB_NAME", "tasks")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONNECT_TIMEOUT", "30s")
	v.SetDefault("EXTERNAL_API_URL", "https://jsonplaceholder.typicode.com")
	v.SetDefault("EXTERNAL_API_TIMEOUT", "10s")

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &c, nil
}

// DSN returns the connection string for the configured driver. DB_DSN, when
// set, wins over the individual DB_* settings.
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}

	switch c.DBDriver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUser,
			c.DBPassword,
			c.DBHost,
			c.DBPort,
			c.DBName,
		)
	default:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.DBUser, c.DBPassword),
			Host:   c.DBHost + ":" + c.DBPort,
			Path:   c.DBName,
		}
		q := u.Query()
		if c.DBSSLMode != "" {
			q.Set("sslmode", c.DBSSLMode)
		}
		if c.DBSchema != "" {
			q.Set("search_path", c.DBSchema)
		}
		u.RawQuery = q.Encode()
		return u.String()
	}
}

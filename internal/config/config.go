// Package config loads the process-wide configuration record from the
// environment. It is read once at start and shared read-only by every
// component.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Database holds everything the connection provider needs.
type Database struct {
	Host        string `env:"DB_HOST" validate:"required"`
	Port        int    `env:"DB_PORT" validate:"gte=1,lte=65535"`
	Name        string `env:"DB_NAME" validate:"required"`
	User        string `env:"DB_USER" validate:"required"`
	Password    string `env:"DB_PASSWORD"`
	SSLMode     string `env:"DB_SSLMODE" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	SSLRootCert string `env:"DB_SSLROOTCERT"`
	MaxConns    int    `env:"DB_MAX_CONNS" validate:"gte=0"`
}

// Config holds all application configuration
type Config struct {
	ServerAddress     string `env:"SERVER_ADDRESS" validate:"required"`
	Environment       string `env:"ENVIRONMENT" validate:"oneof=development production"`
	LogLevel          string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	CORSAllowedOrigin string `env:"CORS_ALLOWED_ORIGIN" validate:"required"`

	Database Database
}

// Load reads the environment into a Config and validates it.
func Load() (*Config, error) {
	port, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	maxConns, err := getEnvInt("DB_MAX_CONNS", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerAddress:     getEnv("SERVER_ADDRESS", ":8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),

		Database: Database{
			Host:        os.Getenv("DB_HOST"),
			Port:        port,
			Name:        getEnv("DB_NAME", "postgres"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    os.Getenv("DB_PASSWORD"),
			SSLMode:     getEnv("DB_SSLMODE", "verify-full"),
			SSLRootCert: os.Getenv("DB_SSLROOTCERT"),
			MaxConns:    maxConns,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its validate tag and reports the
// offending environment variables by name.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, fe.Field()+" is required")
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		default:
			problems = append(problems, fmt.Sprintf("%s failed %s=%s (value %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid configuration: %s must be an integer, got %q", key, value)
	}
	return n, nil
}

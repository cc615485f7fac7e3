// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds configuration for both services, loaded from file or
// environment variables. Each binary reads the fields it needs.
type Config struct {
	JWTSecret       string  `mapstructure:"JWT_SECRET"`
	IdentityPort    string  `mapstructure:"IDENTITY_PORT"`
	ContentPort     string  `mapstructure:"CONTENT_PORT"`
	DBHost          string  `mapstructure:"DB_HOST"`
	DBPort          string  `mapstructure:"DB_PORT"`
	DBUser          string  `mapstructure:"DB_USER"`
	DBPassword      string  `mapstructure:"DB_PASSWORD"`
	DBSSLMode       string  `mapstructure:"DB_SSLMODE"`
	IdentityDBName  string  `mapstructure:"IDENTITY_DB_NAME"`
	ContentDBName   string  `mapstructure:"CONTENT_DB_NAME"`
	RedisURL        string  `mapstructure:"REDIS_URL"`
	AllowedOrigins  string  `mapstructure:"ALLOWED_ORIGINS"`
	Env             string  `mapstructure:"APP_ENV"`
	IdentityBaseURL string  `mapstructure:"IDENTITY_BASE_URL"`
	ResolverTimeout int     `mapstructure:"RESOLVER_TIMEOUT_MS"`
	FeatureFlags    string  `mapstructure:"FEATURE_FLAGS"`
	PageSizeDefault int     `mapstructure:"PAGE_SIZE_DEFAULT"`
	PageSizeMax     int     `mapstructure:"PAGE_SIZE_MAX"`
	TracingEnabled  bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint    string  `mapstructure:"OTLP_ENDPOINT"`
	SamplerRatio    float64 `mapstructure:"TRACING_SAMPLER_RATIO"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// Initial read to get APP_ENV if set in base config
	// We intentionally ignore this error as the config file may not exist yet
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("profile-specific config 'config.%s.yml' could not be read: %w", env, err)
			}
		} else {
			log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
		}
	}

	// Set default values for development
	viper.SetDefault("IDENTITY_PORT", "8471")
	viper.SetDefault("CONTENT_PORT", "8472")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("IDENTITY_DB_NAME", "quill_identity")
	viper.SetDefault("CONTENT_DB_NAME", "quill_content")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("IDENTITY_BASE_URL", "http://localhost:8471")
	viper.SetDefault("RESOLVER_TIMEOUT_MS", 2000)
	viper.SetDefault("FEATURE_FLAGS", "")
	viper.SetDefault("PAGE_SIZE_DEFAULT", 10)
	viper.SetDefault("PAGE_SIZE_MAX", 10)
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACING_SAMPLER_RATIO", 1.0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.IdentityPort == "" || c.ContentPort == "" {
		return errors.New("IDENTITY_PORT and CONTENT_PORT are required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IdentityBaseURL == "" {
		return errors.New("IDENTITY_BASE_URL is required")
	}
	if c.PageSizeDefault <= 0 || c.PageSizeMax <= 0 {
		return errors.New("PAGE_SIZE_DEFAULT and PAGE_SIZE_MAX must be positive")
	}
	if c.PageSizeDefault > c.PageSizeMax {
		return errors.New("PAGE_SIZE_DEFAULT must not exceed PAGE_SIZE_MAX")
	}

	isProduction := c.Env == "production" || c.Env == "prod"

	// Strict checks for production
	if isProduction {
		if c.JWTSecret == "your-secret-key-change-in-production" {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
		if len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
		if c.DBPassword == "password" || c.DBPassword == "" {
			return errors.New("a strong DB_PASSWORD is required in production")
		}
		if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
			log.Println("WARNING: DB_SSLMODE is 'disable' in production. It is highly recommended to use SSL for database connections.")
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	} else {
		// Development/Test warnings
		if len(c.JWTSecret) < 32 {
			log.Println("WARNING: JWT_SECRET is shorter than 32 characters. Consider using a stronger secret for production.")
		}
	}

	return nil
}

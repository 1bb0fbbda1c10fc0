package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		MinConns        int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		AccessSecret          string `yaml:"access_secret" env:"JWT_ACCESS_SECRET"`
		VerifySecret          string `yaml:"verify_secret" env:"JWT_VERIFY_SECRET"`
		ResetSecret           string `yaml:"reset_secret" env:"JWT_RESET_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		VerifyTokenExpiration string `yaml:"verify_token_expiration" env:"JWT_VERIFY_TOKEN_EXPIRATION"`
		ResetTokenExpiration  string `yaml:"reset_token_expiration" env:"JWT_RESET_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Auth struct {
		// BcryptCost is the work factor for password and one-time code
		// hashes. Lower it for tests, raise it for production.
		BcryptCost int `yaml:"bcrypt_cost" env:"AUTH_BCRYPT_COST"`
	} `yaml:"auth"`

	SMTP struct {
		Host     string `yaml:"host" env:"SMTP_HOST"`
		Port     int    `yaml:"port" env:"SMTP_PORT"`
		Username string `yaml:"username" env:"SMTP_USERNAME"`
		Password string `yaml:"password" env:"SMTP_PASSWORD"`
		From     string `yaml:"from" env:"SMTP_FROM"`
		Enabled  bool   `yaml:"enabled" env:"SMTP_ENABLED"`
	} `yaml:"smtp"`

	Cookie struct {
		// Secure marks cookies as HTTPS-only; disabled for local development
		Secure bool `yaml:"secure" env:"COOKIE_SECURE"`
		// AccessHTTPOnly controls the httpOnly flag on the accessToken cookie.
		// Verification and reset cookies are always httpOnly.
		AccessHTTPOnly bool   `yaml:"access_http_only" env:"COOKIE_ACCESS_HTTP_ONLY"`
		Domain         string `yaml:"domain" env:"COOKIE_DOMAIN"`
	} `yaml:"cookie"`

	Storage struct {
		Path    string `yaml:"path" env:"STORAGE_PATH"`
		BaseURL string `yaml:"base_url" env:"STORAGE_BASE_URL"`
	} `yaml:"storage"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from an optional .env file, a YAML file
// and environment variables, in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "kin"
	config.Database.SSLMode = "disable"
	config.Database.MaxConns = 20
	config.Database.MinConns = 2
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "360h" // 15 days
	config.JWT.VerifyTokenExpiration = "5m"
	config.JWT.ResetTokenExpiration = "5m"
	config.JWT.Issuer = "kin.app"

	config.Auth.BcryptCost = 12

	config.SMTP.Port = 587
	config.SMTP.Enabled = false

	config.Cookie.Secure = false
	config.Cookie.AccessHTTPOnly = true

	config.Storage.Path = "./uploads"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if config.JWT.VerifySecret == "" {
		return fmt.Errorf("JWT verify secret is required")
	}
	if config.JWT.ResetSecret == "" {
		return fmt.Errorf("JWT reset secret is required")
	}

	for name, value := range map[string]string{
		"access token expiration": config.JWT.AccessTokenExpiration,
		"verify token expiration": config.JWT.VerifyTokenExpiration,
		"reset token expiration":  config.JWT.ResetTokenExpiration,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	return nil
}

// GetPostgresConnectionString returns the postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// AccessTokenTTL returns the parsed access token lifetime
func (c *Config) AccessTokenTTL() time.Duration {
	return mustDuration(c.JWT.AccessTokenExpiration, 360*time.Hour)
}

// VerifyTokenTTL returns the parsed verification token lifetime
func (c *Config) VerifyTokenTTL() time.Duration {
	return mustDuration(c.JWT.VerifyTokenExpiration, 5*time.Minute)
}

// ResetTokenTTL returns the parsed reset token lifetime
func (c *Config) ResetTokenTTL() time.Duration {
	return mustDuration(c.JWT.ResetTokenExpiration, 5*time.Minute)
}

func mustDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

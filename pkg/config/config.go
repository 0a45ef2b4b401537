package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MinJWTSecretLength is the HS256 key size.
const MinJWTSecretLength = 32

type AppConfig struct {
	Environment  string
	EnforceHTTPS bool

	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Mail      MailConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string
	Path   string
	URL    string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	CodeTTL   time.Duration
}

type MailConfig struct {
	// Driver is "smtp" or "log".
	Driver   string
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type TelemetryConfig struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	MetricsPort    string
	OTLPEndpoint   string
	LokiURL        string
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Environment:  "development",
		EnforceHTTPS: false,
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "database.db",
		},
		Auth: AuthConfig{
			TokenTTL: time.Hour,
			CodeTTL:  15 * time.Minute,
		},
		Mail: MailConfig{
			Driver: "log",
			Port:   587,
			From:   "no-reply@blogapp.local",
		},
		Telemetry: TelemetryConfig{
			Enabled:        false,
			ServiceName:    "blogapp",
			ServiceVersion: "1.0.0",
			MetricsPort:    "9090",
			OTLPEndpoint:   "localhost:4317",
		},
	}
}

// Load reads an optional .env file and then the process environment. All
// problems are collected and returned as a single error.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	var errs []string
	cfg := GetDefaultConfig()

	cfg.Environment = getOptionalEnv("ENVIRONMENT", cfg.Environment)
	cfg.EnforceHTTPS = getOptionalEnvBool("ENFORCE_HTTPS", cfg.IsProduction(), &errs)

	cfg.Server.Port = getOptionalEnv("PORT", cfg.Server.Port)
	cfg.Server.ReadTimeout = getOptionalEnvDuration("SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout, &errs)
	cfg.Server.WriteTimeout = getOptionalEnvDuration("SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout, &errs)

	cfg.Database.Driver = strings.ToLower(getOptionalEnv("DB_DRIVER", cfg.Database.Driver))
	cfg.Database.Path = getOptionalEnv("DATABASE_PATH", cfg.Database.Path)
	switch cfg.Database.Driver {
	case "sqlite":
	case "postgres":
		cfg.Database.URL = getRequiredEnv("DATABASE_URL", &errs)
	default:
		errs = append(errs, fmt.Sprintf("invalid value for DB_DRIVER: expected sqlite or postgres, got '%s'", cfg.Database.Driver))
	}

	cfg.Auth.JWTSecret = getRequiredEnv("JWT_SECRET", &errs)
	if cfg.Auth.JWTSecret != "" && len(cfg.Auth.JWTSecret) < MinJWTSecretLength {
		errs = append(errs, fmt.Sprintf("invalid value for JWT_SECRET: must be at least %d bytes", MinJWTSecretLength))
	}
	cfg.Auth.TokenTTL = getOptionalEnvDuration("JWT_EXPIRATION", cfg.Auth.TokenTTL, &errs)
	cfg.Auth.CodeTTL = getOptionalEnvDuration("VERIFICATION_CODE_TTL", cfg.Auth.CodeTTL, &errs)

	cfg.Mail.Driver = strings.ToLower(getOptionalEnv("MAIL_DRIVER", cfg.Mail.Driver))
	cfg.Mail.From = getOptionalEnv("MAIL_FROM", cfg.Mail.From)
	switch cfg.Mail.Driver {
	case "log":
	case "smtp":
		cfg.Mail.Host = getRequiredEnv("SMTP_HOST", &errs)
		cfg.Mail.Port = getOptionalEnvInt("SMTP_PORT", cfg.Mail.Port, &errs)
		cfg.Mail.Username = getOptionalEnv("SMTP_USERNAME", "")
		cfg.Mail.Password = getOptionalEnv("SMTP_PASSWORD", "")
	default:
		errs = append(errs, fmt.Sprintf("invalid value for MAIL_DRIVER: expected smtp or log, got '%s'", cfg.Mail.Driver))
	}

	cfg.Telemetry.Enabled = getOptionalEnvBool("TELEMETRY_ENABLED", cfg.Telemetry.Enabled, &errs)
	cfg.Telemetry.ServiceName = getOptionalEnv("SERVICE_NAME", cfg.Telemetry.ServiceName)
	cfg.Telemetry.ServiceVersion = getOptionalEnv("SERVICE_VERSION", cfg.Telemetry.ServiceVersion)
	cfg.Telemetry.MetricsPort = getOptionalEnv("METRICS_PORT", cfg.Telemetry.MetricsPort)
	cfg.Telemetry.OTLPEndpoint = getOptionalEnv("OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
	cfg.Telemetry.LokiURL = getOptionalEnv("LOKI_URL", "")

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return cfg, nil
}

func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return value
}

func getOptionalEnvBool(key string, defaultValue bool, errs *[]string) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected boolean, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return value
}

func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return value
}

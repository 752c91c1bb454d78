// Package config holds client configuration, loaded from the environment
// with optional .env overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all quizdesk configuration.
type Config struct {
	// BaseURL is the API origin every request is issued against.
	BaseURL string

	// RequestTimeout is the per-request deadline. Callers may override
	// per call; this is the default. Default: 10s.
	RequestTimeout time.Duration

	// ErrorLogging mirrors log entries to the console.
	ErrorLogging bool

	// ErrorReporting forwards error-level entries to the external sink.
	ErrorReporting bool

	// RollbarToken enables the Rollbar sink when set.
	RollbarToken string

	// Environment tags external reports. Default: "production".
	Environment string

	// MaxRetries is the default retry budget for recoverable operations.
	// Default: 3.
	MaxRetries int

	// RetryDelay is the base delay between retries. Default: 1s.
	RetryDelay time.Duration

	// LogLevel is the minimum retained log level.
	// Values: "error", "warn", "info", "debug". Default: "error".
	LogLevel string

	// ShowErrorDetails surfaces developer messages and stacks in
	// boundary UI.
	ShowErrorDetails bool

	// CredentialPath overrides where the credential record is stored.
	// Empty means the default XDG config location.
	CredentialPath string
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		BaseURL:        "https://upskilling-egypt.com:3005/api",
		RequestTimeout: 10 * time.Second,
		ErrorLogging:   true,
		ErrorReporting: false,
		Environment:    "production",
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
		LogLevel:       "error",
	}
}

// envPrefix namespaces all quizdesk environment variables.
const envPrefix = "QUIZDESK"

// Load builds a Config from the environment, falling back to defaults.
// A .env file next to the working directory is applied first when present.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}

	def := Default()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("request_timeout", def.RequestTimeout)
	v.SetDefault("error_logging", def.ErrorLogging)
	v.SetDefault("error_reporting", def.ErrorReporting)
	v.SetDefault("rollbar_token", "")
	v.SetDefault("environment", def.Environment)
	v.SetDefault("max_retries", def.MaxRetries)
	v.SetDefault("retry_delay", def.RetryDelay)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("show_error_details", def.ShowErrorDetails)
	v.SetDefault("credential_path", "")

	cfg := Config{
		BaseURL:          v.GetString("base_url"),
		RequestTimeout:   v.GetDuration("request_timeout"),
		ErrorLogging:     v.GetBool("error_logging"),
		ErrorReporting:   v.GetBool("error_reporting"),
		RollbarToken:     v.GetString("rollbar_token"),
		Environment:      v.GetString("environment"),
		MaxRetries:       v.GetInt("max_retries"),
		RetryDelay:       v.GetDuration("retry_delay"),
		LogLevel:         v.GetString("log_level"),
		ShowErrorDetails: v.GetBool("show_error_details"),
		CredentialPath:   v.GetString("credential_path"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the client cannot run with.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%s_BASE_URL must not be empty", envPrefix)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got %d", c.MaxRetries)
	}
	switch strings.ToLower(c.LogLevel) {
	case "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("unknown log level: %q", c.LogLevel)
	}
	if c.ErrorReporting && c.RollbarToken == "" {
		return fmt.Errorf("%s_ROLLBAR_TOKEN is required when error reporting is enabled", envPrefix)
	}
	return nil
}

// DefaultCredentialPath resolves the credential record path in priority
// order: the configured override, $XDG_CONFIG_HOME/quizdesk/userData.json,
// then ~/.config/quizdesk/userData.json.
func (c Config) DefaultCredentialPath() (string, error) {
	if c.CredentialPath != "" {
		return c.CredentialPath, ensureDir(c.CredentialPath)
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	p := filepath.Join(configHome, "quizdesk", "userData.json")
	return p, ensureDir(p)
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

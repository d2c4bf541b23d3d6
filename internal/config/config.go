// Package config provides configuration management using the Singleton pattern.
// It loads configuration from .env, environment variables and config.yaml using Viper.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"
)

// OpenRouter defaults. The adapter uses the same values when an option is
// left at its zero value.
const (
	DefaultOpenRouterBaseURL        = "https://openrouter.ai/api/v1"
	DefaultOpenRouterReferer        = "https://github.com/hpn/freetier-router"
	DefaultOpenRouterTitle          = "Freetier Router"
	DefaultOpenRouterTimeoutSeconds = 120
	// The free tier enforces its own limits server-side, so this stays conservative.
	DefaultOpenRouterMaxTokens = 4096
)

// Configuration holds all application configuration values.
// The OpenRouter credential is deliberately absent: the adapter reads it
// from the environment itself.
type Configuration struct {
	// Server configuration
	Server ServerConfig `json:"server" mapstructure:"server"`

	// OpenRouter adapter configuration
	OpenRouter OpenRouterConfig `json:"openrouter" mapstructure:"openrouter"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	// Host is the server bind address.
	Host string `json:"host" mapstructure:"host"`

	// Port is the server port number.
	Port int `json:"port" mapstructure:"port"`

	ReadTimeoutSeconds     int `json:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds    int `json:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" mapstructure:"shutdown_timeout_seconds"`
}

// OpenRouterConfig holds the non-secret adapter settings.
type OpenRouterConfig struct {
	// BaseURL is the API root; /chat/completions is appended.
	BaseURL string `json:"base_url" mapstructure:"base_url"`

	// Referer and Title are sent as OpenRouter identification headers.
	Referer string `json:"referer" mapstructure:"referer"`
	Title   string `json:"title" mapstructure:"title"`

	// TimeoutSeconds bounds a single generate call.
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds"`

	// MaxTokens caps generated tokens per call.
	MaxTokens int `json:"max_tokens" mapstructure:"max_tokens"`

	// Aliases adds entries to the built-in alias table.
	Aliases map[string]string `json:"aliases" mapstructure:"aliases"`
}

// Timeout returns the call timeout as a duration.
func (c OpenRouterConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" mapstructure:"level"`

	// Format is the log format (json, text).
	Format string `json:"format" mapstructure:"format"`
}

// SlogLevel converts the configured level into an slog.Level.
func (c LoggingConfig) SlogLevel() slog.Level {
	switch c.Level {
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

// configInstance holds the singleton configuration instance.
var (
	configInstance *Configuration
	configOnce     sync.Once
	configErr      error
)

// GetConfig returns the singleton Configuration instance.
// It initializes the configuration on first call using the default config path.
func GetConfig() (*Configuration, error) {
	configOnce.Do(func() {
		configInstance, configErr = loadConfig("")
	})
	return configInstance, configErr
}

// GetConfigWithPath returns the singleton Configuration instance with a custom config path.
func GetConfigWithPath(configPath string) (*Configuration, error) {
	configOnce.Do(func() {
		configInstance, configErr = loadConfig(configPath)
	})
	return configInstance, configErr
}

// MustGetConfig returns the singleton Configuration instance.
// It panics if the configuration cannot be loaded.
func MustGetConfig() *Configuration {
	cfg, err := GetConfig()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// ResetConfig resets the singleton instance.
// This is primarily used for testing purposes.
func ResetConfig() {
	configOnce = sync.Once{}
	configInstance = nil
	configErr = nil
}

// Validate validates the configuration and returns an error if required fields are missing.
func (c *Configuration) Validate() error {
	var validationErrors []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		validationErrors = append(validationErrors, "server.port must be between 1 and 65535")
	}

	if c.OpenRouter.BaseURL == "" {
		validationErrors = append(validationErrors, "openrouter.base_url is required")
	} else if u, err := url.Parse(c.OpenRouter.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"openrouter.base_url '%s' must be an absolute http(s) URL", c.OpenRouter.BaseURL,
		))
	}

	if c.OpenRouter.TimeoutSeconds <= 0 {
		validationErrors = append(validationErrors, "openrouter.timeout_seconds must be positive")
	}

	if c.OpenRouter.MaxTokens <= 0 {
		validationErrors = append(validationErrors, "openrouter.max_tokens must be positive")
	}

	for alias, vendorID := range c.OpenRouter.Aliases {
		if vendorID == "" {
			validationErrors = append(validationErrors, fmt.Sprintf("openrouter.aliases.%s must not be empty", alias))
		}
	}

	if c.Logging.Level != "" && !isValidLogLevel(c.Logging.Level) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level '%s' is invalid, must be one of: debug, info, warn, error",
			c.Logging.Level,
		))
	}

	if c.Logging.Format != "" && c.Logging.Format != "json" && c.Logging.Format != "text" {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format '%s' is invalid, must be one of: json, text",
			c.Logging.Format,
		))
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	return nil
}

// isValidLogLevel checks if the log level is valid.
func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

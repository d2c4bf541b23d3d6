// Package config provides configuration management using the Singleton pattern.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultConfigName = "config"
	defaultConfigType = "yaml"
	envPrefix         = "FREETIER_ROUTER"

	// DefaultDotEnvFile is loaded before anything else when present.
	DefaultDotEnvFile = ".env"
)

// loadConfig loads the configuration from .env, environment variables and files.
// Priority order (highest to lowest):
// 1. Process environment variables (prefixed with FREETIER_ROUTER_)
// 2. Variables from .env (never override the process environment)
// 3. config.yaml
// 4. Default values
func loadConfig(configPath string) (*Configuration, error) {
	if err := LoadDotEnv(DefaultDotEnvFile); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Configure Viper
	v.SetConfigName(defaultConfigName)
	v.SetConfigType(defaultConfigType)

	// Add config search paths
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/freetier-router")
		v.AddConfigPath("$HOME/.freetier-router")
	}

	// Enable environment variable override
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "[CONFIG] Config file not found, using environment variables and defaults\n")
		} else {
			return nil, &ConfigError{
				Op:  "read",
				Err: fmt.Errorf("failed to read config file: %w", err),
			}
		}
	}

	// Unmarshal configuration
	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{
			Op:  "unmarshal",
			Err: fmt.Errorf("failed to unmarshal config: %w", err),
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadDotEnv loads variables from the given dotenv files into the process
// environment. Variables that are already set are left untouched and missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return &ConfigError{
				Op:  "dotenv",
				Err: fmt.Errorf("failed to load %s: %w", path, err),
			}
		}
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_seconds", 30)
	// Must outlive a full generate call.
	v.SetDefault("server.write_timeout_seconds", 150)
	v.SetDefault("server.shutdown_timeout_seconds", 15)

	// OpenRouter defaults
	v.SetDefault("openrouter.base_url", DefaultOpenRouterBaseURL)
	v.SetDefault("openrouter.referer", DefaultOpenRouterReferer)
	v.SetDefault("openrouter.title", DefaultOpenRouterTitle)
	v.SetDefault("openrouter.timeout_seconds", DefaultOpenRouterTimeoutSeconds)
	v.SetDefault("openrouter.max_tokens", DefaultOpenRouterMaxTokens)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

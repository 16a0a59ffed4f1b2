package serialx

import (
	"fmt"
	"os"
	"strconv"
)

// LoadConfigFromEnvironment loads configuration from environment variables.
//
// Optional environment variables:
//   - SERIALX_RAW_STRINGS: write strings unescaped (default: false)
//   - SERIALX_LOG_LEVEL: debug, info, warn or error (default: info when a format is set)
//   - SERIALX_LOG_FORMAT: json, text or console (default: json when a level is set)
//
// Logging stays disabled when neither log variable is set.
//
// Example usage:
//
//	cfg, err := serialx.LoadConfigFromEnvironment()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s, err := serialx.New(serialx.WithConfig(cfg))
func LoadConfigFromEnvironment() (Config, error) {
	var cfg Config

	if raw := os.Getenv(EnvRawStrings); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s must be a boolean, got '%s'", ErrInvalidConfiguration, EnvRawStrings, raw)
		}
		cfg.RawStrings = v
	}

	if os.Getenv(EnvLogLevel) != "" || os.Getenv(EnvLogFormat) != "" {
		cfg.LogLevel = getEnvOrDefault(EnvLogLevel, DefaultLogLevel)
		cfg.LogFormat = getEnvOrDefault(EnvLogFormat, DefaultLogFormat)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// NewFromEnv creates a Serializer configured from the environment, followed
// by opts.
func NewFromEnv(opts ...Option) (*Serializer, error) {
	cfg, err := LoadConfigFromEnvironment()
	if err != nil {
		return nil, err
	}
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}

// getEnvOrDefault returns the value of an environment variable, or
// defaultValue when it is unset or empty.
func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

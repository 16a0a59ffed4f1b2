package serialx

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hengadev/errsx"

	"github.com/hengadev/serialx/internal/monitoring"
)

// Config holds the process level settings of a Serializer. It is usually
// loaded with LoadConfigFromEnvironment and applied with WithConfig.
//
// Example usage:
//
//	cfg, err := serialx.LoadConfigFromEnvironment()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s, err := serialx.New(serialx.WithConfig(cfg))
type Config struct {
	// RawStrings writes strings without escaping them.
	RawStrings bool

	// LogLevel is debug, info, warn or error. Empty disables logging.
	LogLevel string

	// LogFormat is json, text or console.
	LogFormat string
}

// Validate checks the log settings and reports every problem at once.
func (c *Config) Validate() error {
	var errs errsx.Map
	if c.LogLevel != "" {
		if _, err := monitoring.ParseLogLevel(c.LogLevel); err != nil {
			errs.Set("log level", err)
		}
	}
	if c.LogFormat != "" {
		if _, err := monitoring.ParseLogFormat(c.LogFormat); err != nil {
			errs.Set("log format", err)
		}
	}
	if !errs.IsEmpty() {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errs.AsError())
	}
	return nil
}

// Logger builds the slog logger described by the configuration, writing to
// stderr.
func (c *Config) Logger() (*slog.Logger, error) {
	level, err := monitoring.ParseLogLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	format, err := monitoring.ParseLogFormat(c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return monitoring.NewLogger(monitoring.LoggerConfig{
		Level:     level,
		Format:    format,
		Output:    os.Stderr,
		Component: "serializer",
		Version:   Version,
	}), nil
}

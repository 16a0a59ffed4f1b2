package serialx

// Environment variable names
const (
	// EnvRawStrings disables string escaping when set to a true value.
	EnvRawStrings = "SERIALX_RAW_STRINGS"

	// EnvLogLevel is one of debug, info, warn or error.
	EnvLogLevel = "SERIALX_LOG_LEVEL"

	// EnvLogFormat is one of json, text or console.
	EnvLogFormat = "SERIALX_LOG_FORMAT"
)

// Default values
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

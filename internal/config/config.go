// Package config defines client configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Load layers defaults, an optional YAML file, and SWING_* env vars.
// - External errors must be wrapped via this package's error helpers.
package config

import "context"

// Default client settings.
const (
	defaultBaseURL        = "http://localhost:8000"
	defaultTimeoutSeconds = 300
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// BaseURL locates the remote analysis service, e.g. "http://localhost:8000".
	BaseURL string `koanf:"base_url"`

	// TimeoutSeconds bounds one analyze request. Video processing is slow,
	// so the default is generous, but a request never hangs forever.
	TimeoutSeconds int `koanf:"timeout_seconds"`

	// DefaultHand is used when a submission never picked a hand.
	DefaultHand string `koanf:"default_hand"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		BaseURL:        defaultBaseURL,
		TimeoutSeconds: defaultTimeoutSeconds,
		DefaultHand:    "right",
	}
}

package godbc

import (
	"time"

	"github.com/eatonphil/godbc/internal/logging"
)

// Config holds configuration shared by the backend adapters.
type Config struct {
	// Logger receives adapter diagnostics. Defaults to a no-op logger.
	Logger Logger

	// QueryTimeout bounds each native call. Zero means no timeout. On
	// expiry the operation fails with an ordinary error; any partially
	// read result set is simply abandoned.
	QueryTimeout time.Duration
}

// DefaultConfig returns a Config with default settings.
func DefaultConfig() *Config {
	return &Config{
		Logger: logging.NewNopLogger(),
	}
}

// Option configures a Config.
type Option func(*Config)

// WithLogger sets the logger used for adapter diagnostics.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithQueryTimeout bounds every native call made through a connection.
func WithQueryTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.QueryTimeout = d
	}
}

// NewConfig applies options over DefaultConfig.
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

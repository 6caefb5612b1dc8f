package config

import (
	"time"
)

// Config represents the application configuration
type Config struct {
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	HTTP    HTTPConfig    `mapstructure:"http" yaml:"http"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
	Quiet     bool   `mapstructure:"quiet" yaml:"quiet"`
}

// HTTPConfig contains transport settings
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and applies defaults for invalid values
func (c *Config) Validate() error {
	if c.HTTP.Timeout < time.Second {
		c.HTTP.Timeout = DefaultTimeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}

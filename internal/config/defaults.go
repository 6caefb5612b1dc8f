package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Default values
const (
	// Transport defaults
	DefaultTimeout = 10 * time.Minute

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".repopick"
	}
	return filepath.Join(home, ".repopick")
}

// setDefaults registers default values on a viper instance
func setDefaults(v *viper.Viper) {
	v.SetDefault("output.directory", "")
	v.SetDefault("output.quiet", false)
	v.SetDefault("http.timeout", DefaultTimeout)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

package config

import (
	"github.com/spf13/viper"
)

// Load loads configuration from defaults, an optional config file, and CLI
// flag bindings. Uses the global viper instance so cobra flag bindings are
// visible. No process environment variables are consulted.
func Load() (*Config, error) {
	return loadFrom(viper.GetViper())
}

// LoadWithViper loads configuration from a caller-owned viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	return loadFrom(v)
}

func loadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	v.AddConfigPath(".")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

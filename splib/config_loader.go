package splib

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadConfigFromViper loads the library configuration from Viper.
func LoadConfigFromViper() (Config, error) {
	cfg := DefaultConfig()

	if viper.IsSet("library.backend") {
		cfg.Backend = viper.GetString("library.backend")
	}
	if viper.IsSet("library.path") {
		cfg.Path = viper.GetString("library.path")
	}
	if viper.IsSet("library.cache.max_bytes") {
		cfg.CacheMaxBytes = viper.GetInt64("library.cache.max_bytes")
	}
	if viper.IsSet("library.badger.in_memory") {
		cfg.Badger.InMemory = viper.GetBool("library.badger.in_memory")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid library configuration: %w", err)
	}
	return cfg, nil
}

// SetDefaults sets default values in Viper for the library configuration.
func SetDefaults() {
	defaults := DefaultConfig()

	viper.SetDefault("library.backend", defaults.Backend)
	viper.SetDefault("library.path", defaults.Path)
	viper.SetDefault("library.cache.max_bytes", defaults.CacheMaxBytes)
	viper.SetDefault("library.badger.in_memory", defaults.Badger.InMemory)
}

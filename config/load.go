package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/specular-eng/specular/errors"
)

// ConfigFileName is the project configuration file Specular looks for.
const ConfigFileName = "specular.toml"

var (
	globalConfig  *Config
	viperInstance *viper.Viper
)

// Load reads the Specular configuration using Viper. The result is cached
// for the lifetime of the process; use Reset to force a reload.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	return initViper()
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}

	return &config, nil
}

// Default returns a config populated with defaults only, ignoring files
// and the environment.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)

	var config Config
	// Unmarshal from defaults cannot fail: the keys mirror the struct.
	_ = v.Unmarshal(&config)
	return &config
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	// Environment variables override files: SPECULAR_PROJECT_NAME etc.
	v.SetEnvPrefix("SPECULAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path := FindProjectConfig(); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		// Best effort: a malformed file surfaces on Unmarshal, a missing
		// one leaves defaults in place.
		_ = v.ReadInConfig()
	}

	viperInstance = v
	return v
}

// FindProjectConfig searches for specular.toml by walking up the directory
// tree from the working directory. Returns the path to the first config
// file found, or empty string if none found.
func FindProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, stop searching
			break
		}
		dir = parent
	}

	return ""
}

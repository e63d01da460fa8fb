package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config represents the complete configuration structure for dockhand.
type Config struct {
	Remediation RemediationConfig `mapstructure:"remediation"`
	Analysis    AnalysisConfig    `mapstructure:"analysis"`
}

// RemediationConfig controls how Dockerfiles are rewritten.
type RemediationConfig struct {
	User        string `mapstructure:"user"`
	BaseTag     string `mapstructure:"base_tag"`
	Healthcheck string `mapstructure:"healthcheck"`
}

// AnalysisConfig controls manifest discovery and smell detection.
type AnalysisConfig struct {
	MaxManifestSize string `mapstructure:"max_manifest_size"`
	Baseline        string `mapstructure:"baseline"`
}

var (
	globalViper  *viper.Viper
	globalConfig *Config
)

// InitializeViper initializes the global Viper instance with config file and defaults.
// This should be called once during application initialization.
func InitializeViper(configFile string) error {
	v := viper.New()

	setDefaults(v)

	// If a config file is explicitly specified, use it
	if configFile != "" {
		v.SetConfigFile(configFile)
		log.Debug().Str("path", configFile).Msg("Using specified config file")
	} else {
		// Look for config in standard locations
		v.SetConfigName("dockhand")
		v.SetConfigType("yaml")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "dockhand"))
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")

		log.Debug().Msg("Searching for config file in standard locations")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Debug().Msg("No config file found, using defaults and command-line flags")
		} else {
			return fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Loaded config file")
	}

	// Read from environment variables with DOCKHAND_ prefix
	v.SetEnvPrefix("DOCKHAND")
	v.AutomaticEnv()

	globalViper = v
	return nil
}

// LoadConfig initializes Viper and unmarshals the result into the global
// Config used by the flag-priority helpers. Setting DOCKHAND_NO_CONFIG
// skips config file loading entirely, which keeps e2e tests deterministic.
func LoadConfig(configFile string) (*Config, error) {
	if os.Getenv("DOCKHAND_NO_CONFIG") != "" {
		v := viper.New()
		setDefaults(v)
		v.SetEnvPrefix("DOCKHAND")
		v.AutomaticEnv()
		globalViper = v
	} else if err := InitializeViper(configFile); err != nil {
		return nil, err
	}

	cfg, err := UnmarshalConfig()
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	return cfg, nil
}

// GetViper returns the global Viper instance
func GetViper() *viper.Viper {
	if globalViper == nil {
		// If Viper hasn't been initialized, initialize with defaults
		if err := InitializeViper(""); err != nil {
			log.Fatal().Err(err).Msg("Failed to auto-initialize Viper configuration")
		}
	}
	return globalViper
}

// BindCommandFlags binds a command's changed flags to namespaced Viper keys.
// This enables automatic priority handling: CLI flags > config file > defaults.
func BindCommandFlags(cmd *cobra.Command, flagMappings map[string]string) error {
	v := GetViper()
	for flagName, viperKey := range flagMappings {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			// Try parent flags
			flag = cmd.InheritedFlags().Lookup(flagName)
		}
		if flag != nil {
			if err := v.BindPFlag(viperKey, flag); err != nil {
				return fmt.Errorf("failed to bind flag %s to key %s: %w", flagName, viperKey, err)
			}
		}
	}
	return nil
}

// GetString retrieves a string value using Viper's native priority handling
func GetString(key string) string {
	return GetViper().GetString(key)
}

// GetBool retrieves a bool value using Viper's native priority handling
func GetBool(key string) bool {
	return GetViper().GetBool(key)
}

// GetInt retrieves an int value using Viper's native priority handling
func GetInt(key string) int {
	return GetViper().GetInt(key)
}

// UnmarshalConfig unmarshals the configuration into a Config struct
func UnmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := GetViper().Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return config, nil
}

// setDefaults sets default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("remediation.user", "appuser")
	v.SetDefault("remediation.base_tag", "stable")
	v.SetDefault("remediation.healthcheck", "CMD curl --fail http://localhost || exit 1")

	v.SetDefault("analysis.max_manifest_size", "1MiB")
	v.SetDefault("analysis.baseline", "")
}

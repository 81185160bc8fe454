package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the application configuration resolved from file, environment
// and command-line flags.
type Config struct {
	Database struct {
		Type string `mapstructure:"type" yaml:"type"`
		DSN  string `mapstructure:"dsn" yaml:"dsn"`
	} `mapstructure:"database" yaml:"database"`
	Server struct {
		Addr string `mapstructure:"addr" yaml:"addr"`
	} `mapstructure:"server" yaml:"server"`
	Backup struct {
		Dir string `mapstructure:"dir" yaml:"dir"`
	} `mapstructure:"backup" yaml:"backup"`
	Language string `mapstructure:"language" yaml:"language"`
	Debug    bool   `mapstructure:"debug" yaml:"debug"`
}

// Defaults returns the default configuration values keyed for viper.
func Defaults() map[string]any {
	return map[string]any{
		"database.type": "sqlite",
		"database.dsn":  "./sgpi.db",
		"server.addr":   ":8420",
		"backup.dir":    filepath.Join(".", "data", "backups"),
		"language":      "en",
		"debug":         false,
	}
}

// getConfigPath returns the full path for the configuration file.
func getConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		// System-wide configuration paths
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "SGPI")
		default: // Linux, macOS, etc.
			configDir = "/etc/sgpi"
		}
	} else {
		// User-specific configuration paths
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "sgpi")
	}

	return filepath.Join(configDir, "sgpi.yaml"), nil
}

// LoadConfig resolves the configuration for a command: defaults, then config
// file, then environment (SGPI_*), then bound flags, highest precedence last.
// bindings maps viper keys to flag names (e.g. "database.type" -> "db-type")
// so flags keep conventional names while feeding nested config keys.
// The second return value is the path of the config file that was read, or
// empty when none was found; callers use it to detect a first run.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, bindings map[string]string, additionalConfigFilePath *string) (T, string, error) {
	var c T
	v := viper.New()

	// 1. Set defaults
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 2. Set up file search paths
	v.SetConfigName("sgpi")
	v.SetConfigType("yaml")

	// 3. Add explicit config file path if provided via --config flag.
	// This has the highest precedence for file-based configuration.
	if additionalConfigFilePath != nil && *additionalConfigFilePath != "" {
		v.SetConfigFile(*additionalConfigFilePath)
	}

	// 4. Add standard config locations
	if userConfigPath, err := getConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := getConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".") // Look for sgpi.yaml in current dir

	// 5. Read in the primary config file.
	var usedFile string
	if err := v.ReadInConfig(); err != nil {
		// It's okay if the file is not found, but other errors are fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, "", err
		}
	} else {
		usedFile = v.ConfigFileUsed()
	}

	// 6. Read from environment variables
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("sgpi")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 7. Bind command-line flags
	if cmd != nil {
		for key, flagName := range bindings {
			if f := cmd.Flags().Lookup(flagName); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, "", err
				}
			}
		}
	}

	// parse config
	if err := v.Unmarshal(&c); err != nil {
		return c, "", err
	}

	return c, usedFile, nil
}

// WriteConfigFile persists the given configuration as YAML to the standard
// location (user or system scope).
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := getConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600: the DSN may carry database credentials.
	return os.WriteFile(path, data, 0600)
}

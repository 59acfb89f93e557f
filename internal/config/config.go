// Package config handles adminhelper configuration using Viper.
//
// Configuration sources (in priority order):
//  1. Command-line flags
//  2. Environment variables (ADMINHELPER_*)
//  3. Config file (~/.config/adminhelper/config.yaml)
//  4. Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DefaultRestartTimeout bounds how long a waiting restart blocks on the
	// elevated instance. The user may take time to answer the prompt.
	DefaultRestartTimeout = 5 * time.Minute

	keyRestartWait    = "restart.wait"
	keyRestartTimeout = "restart.timeout"
	keyLogVerbose     = "log.verbose"
)

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"wait":    keyRestartWait,
	"timeout": keyRestartTimeout,
	"verbose": keyLogVerbose,
}

// Config holds the adminhelper configuration.
type Config struct {
	v *viper.Viper
}

// Load reads configuration from all sources. Flags present in fs override
// the other sources; fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(keyRestartWait, false)
	v.SetDefault(keyRestartTimeout, DefaultRestartTimeout)
	v.SetDefault(keyLogVerbose, false)

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "adminhelper"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("ADMINHELPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			flag := fs.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
			}
		}
	}

	return &Config{v: v}, nil
}

// Validate rejects settings no command can act on.
func (c *Config) Validate() error {
	if t := c.RestartTimeout(); t < 0 {
		return fmt.Errorf("restart timeout must not be negative, got %s", t)
	}
	return nil
}

// RestartWait reports whether a restart waits for the elevated instance.
func (c *Config) RestartWait() bool {
	return c.v.GetBool(keyRestartWait)
}

// RestartTimeout returns how long a waiting restart blocks.
func (c *Config) RestartTimeout() time.Duration {
	return c.v.GetDuration(keyRestartTimeout)
}

// Verbose reports whether debug logging is enabled.
func (c *Config) Verbose() bool {
	return c.v.GetBool(keyLogVerbose)
}

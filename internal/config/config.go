// Package config loads lcicore's runtime settings (resolution strategy,
// solver tolerances, log level) from a config file, environment variables,
// and command-line flags, with that precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Settings holds the resolved runtime configuration for a CLI invocation.
type Settings struct {
	v *viper.Viper
}

// Load builds a Settings from, in ascending precedence: built-in defaults,
// a config file (./lcicore.yaml, then ~/.config/lcicore/config.yaml),
// and LCICORE_-prefixed environment variables.
func Load() (*Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("strategy", "first")
	v.SetDefault("quantity", "default")
	v.SetDefault("threshold", 1e-8)
	v.SetDefault("max-iterations", 100)
	v.SetDefault("recursion-budget", 18000)
	v.SetDefault("log-level", "info")

	v.SetEnvPrefix("LCICORE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configured := false
	if cwd, err := os.Getwd(); err == nil {
		path := filepath.Join(cwd, "lcicore.yaml")
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			configured = true
		}
	}
	if !configured {
		if dir, err := os.UserConfigDir(); err == nil {
			path := filepath.Join(dir, "lcicore", "config.yaml")
			if _, err := os.Stat(path); err == nil {
				v.SetConfigFile(path)
				configured = true
			}
		}
	}
	if configured {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	return &Settings{v: v}, nil
}

// Strategy returns the configured termination-resolution strategy name.
func (s *Settings) Strategy() string { return s.v.GetString("strategy") }

// Quantity returns the configured allocation quantity id.
func (s *Settings) Quantity() string { return s.v.GetString("quantity") }

// Threshold returns the configured LCI solver convergence threshold.
func (s *Settings) Threshold() float64 { return s.v.GetFloat64("threshold") }

// MaxIterations returns the configured LCI solver iteration budget.
func (s *Settings) MaxIterations() int { return s.v.GetInt("max-iterations") }

// RecursionBudget returns the configured traversal recursion depth cap.
func (s *Settings) RecursionBudget() int { return s.v.GetInt("recursion-budget") }

// LogLevel returns the configured zap log level name.
func (s *Settings) LogLevel() string { return s.v.GetString("log-level") }

// BindFlags ties cmd's persistent flags to their matching config keys, so
// a flag set explicitly on the command line overrides the config file and
// environment value for that key.
func (s *Settings) BindFlags(cmd *cobra.Command) error {
	for _, key := range []string{"strategy", "quantity", "threshold", "max-iterations", "recursion-budget", "log-level"} {
		flag := cmd.Flags().Lookup(key)
		if flag == nil {
			continue
		}
		if err := s.v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("config: bind flag %q: %w", key, err)
		}
	}
	return nil
}

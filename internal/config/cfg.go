// Package config handles all configuration logic for gnome-monitor-config.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dsrosen6/gnome-monitor-config/internal/manager"
	"github.com/spf13/viper"
)

const (
	cfgDirName     = "gnome-monitor-config"
	cfgFileName    = "config.toml"
	layoutFileName = "layouts.toml"
	envPrefix      = "GMC"

	keyLogLevel      = "log_level"
	keyDefaultMethod = "default_method"
	keyLabelLinger   = "label_linger"
	keyLayoutFile    = "layout_file"
)

type Config struct {
	path          string
	LogLevel      string        `mapstructure:"log_level"`
	DefaultMethod string        `mapstructure:"default_method"`
	LabelLinger   time.Duration `mapstructure:"label_linger"`
	LayoutFile    string        `mapstructure:"layout_file"`
}

// DefaultPath returns $XDG_CONFIG_HOME/gnome-monitor-config/config.toml.
func DefaultPath() (string, error) {
	uc, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config directory path: %w", err)
	}
	return filepath.Join(uc, cfgDirName, cfgFileName), nil
}

// InitConfig loads the config file at path, or the default path when empty.
// A missing file is created with the defaults. GMC_* environment variables
// override file values.
func InitConfig(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	return readConfig(path)
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	setDefaults(v, path)
	return v
}

func setDefaults(v *viper.Viper, path string) {
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyDefaultMethod, manager.MethodTemporary.String())
	v.SetDefault(keyLabelLinger, "20s")
	v.SetDefault(keyLayoutFile, filepath.Join(filepath.Dir(path), layoutFileName))
}

func readConfig(path string) (*Config, error) {
	v := newViper(path)

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("checking config file: %w", err)
		}

		slog.Info("no config file found; creating default", "path", path)
		d := viper.New()
		setDefaults(d, path)
		if err := write(d, path); err != nil {
			return nil, fmt.Errorf("creating default config file: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.path = path
	cfg.LayoutFile = expandHome(cfg.LayoutFile)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	slog.Debug("config loaded", "path", path, "log_level", cfg.LogLevel,
		"default_method", cfg.DefaultMethod, "label_linger", cfg.LabelLinger, "layout_file", cfg.LayoutFile)
	return cfg, nil
}

func (c *Config) Path() string {
	return c.path
}

func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}

	if _, err := c.Method(); err != nil {
		return err
	}

	if c.LabelLinger < 0 {
		return fmt.Errorf("label_linger must not be negative: %s", c.LabelLinger)
	}

	return nil
}

// Level returns the configured slog level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("parsing log_level: %w", err)
	}
	return l, nil
}

func (c *Config) Method() (manager.Method, error) {
	m, err := manager.ParseMethod(c.DefaultMethod)
	if err != nil {
		return 0, fmt.Errorf("parsing default_method: %w", err)
	}
	return m, nil
}

// Write saves the config to its path.
func (c *Config) Write() error {
	v := viper.New()
	v.Set(keyLogLevel, c.LogLevel)
	v.Set(keyDefaultMethod, c.DefaultMethod)
	v.Set(keyLabelLinger, c.LabelLinger.String())
	v.Set(keyLayoutFile, c.LayoutFile)
	return write(v, c.path)
}

func write(v *viper.Viper, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("checking and/or creating config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

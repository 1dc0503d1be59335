// Package config loads autograde settings from a config file, the
// environment, and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. AUTOGRADE_BUILD_DIR.
const EnvPrefix = "AUTOGRADE"

// Config is the top-level autograde configuration.
type Config struct {
	BuildDir    string   `mapstructure:"build_dir"`
	Layout      string   `mapstructure:"layout"`
	Policy      string   `mapstructure:"policy"`
	ReportDir   string   `mapstructure:"report_dir"`
	Formats     []string `mapstructure:"formats"`
	HistoryDB   string   `mapstructure:"history_db"`
	LogLevel    string   `mapstructure:"log_level"`
	Concurrency int      `mapstructure:"concurrency"`
	Output      Output   `mapstructure:"output"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from cfgFile, or from autograde.yaml in the
// working directory when cfgFile is empty, and returns a Config with all
// defaults applied. A missing default config file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("build_dir", DefaultBuildDir)
	v.SetDefault("layout", DefaultLayout)
	v.SetDefault("policy", DefaultPolicy)
	v.SetDefault("report_dir", "")
	v.SetDefault("formats", DefaultFormats)
	v.SetDefault("history_db", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("concurrency", 0)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(DefaultConfigDir)
		v.SetConfigName("autograde")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	cfg.BuildDir = expandPath(cfg.BuildDir)
	cfg.Policy = expandPath(cfg.Policy)
	cfg.HistoryDB = expandPath(cfg.HistoryDB)
	cfg.ReportDir = expandPath(cfg.ReportDir)
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.Output.Width <= 0 {
		cfg.Output.Width = DefaultOutput.Width
	}
	return &cfg, nil
}

// Reports returns the report directory, which defaults to a subdirectory
// of the build directory.
func (c *Config) Reports() string {
	if c.ReportDir != "" {
		return c.ReportDir
	}
	return filepath.Join(c.BuildDir, ReportSubdir)
}

// ParseLevel maps a log_level name onto a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q (want debug, info, warn or error)", name)
	}
	return l, nil
}

// Package config loads vidsum settings from a YAML file, VIDSUM_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "VIDSUM"

// Config is the resolved configuration.
type Config struct {
	Server    string        `mapstructure:"server"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	DBPath    string        `mapstructure:"db"`
	History   bool          `mapstructure:"history"`
	Log       struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"log"`
	Batch struct {
		Workers int     `mapstructure:"workers"`
		Rate    float64 `mapstructure:"rate"` // requests per second, 0 = unlimited
	} `mapstructure:"batch"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper, version string) {
	v.SetDefault("server", "http://localhost:5000")
	v.SetDefault("timeout", 0)
	v.SetDefault("user_agent", "vidsum/"+version)
	v.SetDefault("db", "./data/vidsum.db")
	v.SetDefault("history", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("batch.workers", 2)
	v.SetDefault("batch.rate", 1.0)
}

// Load reads configFile when given, otherwise looks for vidsum.yaml in the
// working directory and $HOME/.config/vidsum. A missing file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("vidsum")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/vidsum")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, cfg.Validate()
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server must be an absolute http(s) URL, got %q", c.Server)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("batch workers must be greater than 0")
	}
	if c.Batch.Rate < 0 {
		return fmt.Errorf("batch rate must not be negative")
	}
	return nil
}

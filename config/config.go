// Package config loads runtime settings from the environment and an
// optional config file.
package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

const EnvPrefix = "DOMBOOK"

type Config struct {
	LogLevel          string        `mapstructure:"log_level"`
	LogFormat         string        `mapstructure:"log_format"`
	Color             string        `mapstructure:"color"`
	BarWidth          int           `mapstructure:"bar_width"`
	BroadcastInterval time.Duration `mapstructure:"broadcast_interval"`
	Tape              bool          `mapstructure:"tape"`
}

var ErrInvalidConfig = errors.New("invalid config")

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("color", "auto")
	v.SetDefault("bar_width", 25)
	v.SetDefault("broadcast_interval", 250*time.Millisecond)
	v.SetDefault("tape", true)
}

// Load reads DOMBOOK_* variables and, when DOMBOOK_CONFIG names a file,
// that file first. Environment wins over the file.
func Load() (Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return errors.Wrapf(ErrInvalidConfig, "log_format %q", c.LogFormat)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return errors.Wrapf(ErrInvalidConfig, "color %q", c.Color)
	}
	if c.BarWidth <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "bar_width %d", c.BarWidth)
	}
	if c.BroadcastInterval <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "broadcast_interval %s", c.BroadcastInterval)
	}
	return nil
}

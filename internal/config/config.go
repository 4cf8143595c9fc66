// Package config loads the namecard configuration from defaults, an optional
// YAML file, NAMECARD_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alovak/namecard/card"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. NAMECARD_ACCESS_KEY.
const EnvPrefix = "NAMECARD"

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"addr":           "http_addr",
	"backend":        "backend",
	"endpoint-url":   "endpoint_url",
	"access-key":     "access_key",
	"database-url":   "database_url",
	"default-handle": "default_handle",
	"log-level":      "log_level",
	"log-format":     "log_format",
}

// Load reads the configuration. path may be empty, in which case namecard.yaml
// is looked up in the working directory and skipped when absent. flags may be
// nil.
func Load(path string, flags *pflag.FlagSet) (*card.Config, error) {
	v := viper.New()
	setDefaults(v, card.DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("namecard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &card.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *card.Config) {
	v.SetDefault("http_addr", d.HTTPAddr)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("endpoint_url", d.EndpointURL)
	v.SetDefault("access_key", d.AccessKey)
	v.SetDefault("database_url", d.DatabaseURL)
	v.SetDefault("table", d.Table)
	v.SetDefault("default_handle", d.DefaultHandle)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("rate_limit", d.RateLimit)
	v.SetDefault("rate_burst", d.RateBurst)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
}

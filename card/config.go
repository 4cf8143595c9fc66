package card

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alovak/namecard/card/models"
)

// ErrConfiguration is wrapped by every error returned from Config.Validate.
var ErrConfiguration = errors.New("configuration error")

// Backends supported by NewRepository.
const (
	BackendPostgREST = "postgrest"
	BackendPostgres  = "postgres"
	BackendMemory    = "memory"
)

// Config is a configuration for the namecard application
type Config struct {
	HTTPAddr string `mapstructure:"http_addr"`

	// Backend selects the card store: postgrest (default), postgres or memory.
	Backend string `mapstructure:"backend"`
	// EndpointURL is the Supabase project URL, e.g. https://abc123.supabase.co
	EndpointURL string `mapstructure:"endpoint_url"`
	// AccessKey is the public (anon) API key. Never the service key.
	AccessKey   string `mapstructure:"access_key"`
	DatabaseURL string `mapstructure:"database_url"`
	Table       string `mapstructure:"table"`

	// DefaultHandle is shown when the path names no handle.
	DefaultHandle string `mapstructure:"default_handle"`

	// Cards seeds the memory backend.
	Cards []models.SeedCard `mapstructure:"cards"`

	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// RateLimit is requests per second per client; 0 disables limiting.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:       "localhost:8080",
		Backend:        BackendPostgREST,
		Table:          "cards",
		RequestTimeout: 10 * time.Second,
		RateBurst:      20,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Validate checks that the selected backend has what it needs to connect.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case BackendPostgREST, "":
		var missing []string
		if c.EndpointURL == "" {
			missing = append(missing, "endpoint_url")
		}
		if c.AccessKey == "" {
			missing = append(missing, "access_key")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: missing %s", ErrConfiguration, strings.Join(missing, ", "))
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: missing database_url", ErrConfiguration)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: unsupported backend %q", ErrConfiguration, c.Backend)
	}
	return nil
}

// setupMessage is the instructional text shown in place of a card when the
// store is not configured.
func (c *Config) setupMessage() string {
	if strings.ToLower(c.Backend) == BackendPostgres {
		return "Card store is not configured. Set database_url (NAMECARD_DATABASE_URL)."
	}
	return "Card store is not configured. Set endpoint_url and access_key (NAMECARD_ENDPOINT_URL, NAMECARD_ACCESS_KEY)."
}

func (c *Config) table() string {
	if c.Table == "" {
		return "cards"
	}
	return c.Table
}

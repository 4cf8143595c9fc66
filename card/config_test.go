package card

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"postgrest missing both", func(c *Config) {}, "missing endpoint_url, access_key"},
		{"postgrest missing key", func(c *Config) { c.EndpointURL = "https://x.supabase.co" }, "missing access_key"},
		{"postgrest ok", func(c *Config) { c.EndpointURL = "https://x.supabase.co"; c.AccessKey = "anon" }, ""},
		{"postgres missing dsn", func(c *Config) { c.Backend = BackendPostgres }, "missing database_url"},
		{"postgres ok", func(c *Config) { c.Backend = BackendPostgres; c.DatabaseURL = "postgres://localhost/x" }, ""},
		{"memory", func(c *Config) { c.Backend = BackendMemory }, ""},
		{"unknown", func(c *Config) { c.Backend = "mongo" }, `unsupported backend "mongo"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(cfg)

			err := cfg.Validate()
			if c.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.True(t, errors.Is(err, ErrConfiguration))
			require.Contains(t, err.Error(), c.wantErr)
		})
	}
}

func TestConfig_SetupMessage(t *testing.T) {
	cfg := DefaultConfig()
	require.Contains(t, cfg.setupMessage(), "endpoint_url and access_key")

	cfg.Backend = BackendPostgres
	require.Contains(t, cfg.setupMessage(), "database_url")
}

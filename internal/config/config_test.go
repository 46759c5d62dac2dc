package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads all config from env", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("LISTEN_ADDR", ":9090")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("OTLP_ENDPOINT", "collector:4318")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
		require.Equal(t, ":9090", cfg.ListenAddr)
		require.Equal(t, "debug", cfg.LogLevel)
		require.Equal(t, "collector:4318", cfg.OTLPEndpoint)
	})

	t.Run("fails without DATABASE_URL", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "DATABASE_URL")
	})

	t.Run("applies listen address default", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("LISTEN_ADDR", "")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	})

	t.Run("parses session TTL hours", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("SESSION_TTL_HOURS", "24")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	})

	t.Run("uses TTL default for invalid values", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("SESSION_TTL_HOURS", "invalid")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, DefaultSessionTTL, cfg.SessionTTL)
	})

	t.Run("rejects non-positive TTL", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("SESSION_TTL_HOURS", "-3")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, DefaultSessionTTL, cfg.SessionTTL)
	})

	t.Run("parses LOG_JSON flag", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/test")
		t.Setenv("LOG_JSON", "true")

		cfg, err := Load()
		require.NoError(t, err)
		require.True(t, cfg.LogJSON)
	})
}

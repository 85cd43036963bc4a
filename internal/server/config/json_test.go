package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("loads every field", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"endpoint_addr_http":              "www.example:9000",
			"storage":                         "memory",
			"database_dsn":                    "dsn",
			"secret_key":                      "my_secret_key",
			"access_token_validity_duration":  "1m",
			"refresh_token_validity_duration": "3m",
			"s3_root_user":                    "user",
			"s3_root_password":                "password",
			"s3_bucket":                       "bucket",
			"s3_region":                       "region",
			"s3_base_endpoint":                "base_endpoint",
			"auth_rate_limit":                 0,
			"auth_rate_burst":                 1,
			"log_level":                       "warn",
		})
		os.Args = []string{"testbin", "-config", path}

		cfg := defaultConfig()
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "memory", cfg.Storage)
		assert.Equal(t, "dsn", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 1*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 3*time.Minute, cfg.RefreshTokenValidityDuration)
		assert.Equal(t, "user", cfg.S3RootUser)
		assert.Equal(t, "password", cfg.S3RootPassword)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "base_endpoint", cfg.S3BaseEndpoint)
		assert.Equal(t, 0.0, cfg.AuthRateLimit, "explicit zero disables the limiter")
		assert.Equal(t, 1, cfg.AuthRateBurst)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{"secret_key": "only-this"})
		os.Args = []string{"testbin", "-c", path}

		cfg := defaultConfig()
		parseJson(cfg)

		want := defaultConfig()
		want.SecretKey = "only-this"
		assert.Equal(t, want, cfg)
	})

	t.Run("no config flag", func(t *testing.T) {
		os.Args = []string{"testbin"}
		cfg := defaultConfig()
		parseJson(cfg)
		assert.Equal(t, defaultConfig(), cfg)
	})

	t.Run("invalid json panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ nope`), 0o600))
		os.Args = []string{"testbin", "-config", bad}
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(t.TempDir(), "missing.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
